package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
	"github.com/keiri-app/keiri-backend/internal/dto"
	"github.com/keiri-app/keiri-backend/internal/middleware"
)

// journalHandler handles HTTP requests related to journal entries and the
// chart of accounts.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers the tenant-nested journal routes, the flat
// per-entry routes and the chart of accounts.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	tenantJournal := rg.Group("/tenants/:tenant_id/journal")
	{
		tenantJournal.POST("/generate", h.generateEntries)
		tenantJournal.POST("/entries", h.createEntry)
		tenantJournal.GET("/entries", h.listEntries)
	}

	entries := rg.Group("/journal-entries")
	{
		entries.GET("/:entry_id", h.getEntry)
		entries.PUT("/:entry_id", h.updateEntry)
		entries.POST("/:entry_id/confirm", h.confirmEntry)
		entries.DELETE("/:entry_id", h.deleteEntry)
	}

	rg.GET("/subjects", h.listSubjects)
}

// generateEntries godoc
// @Summary Generate journal entries from pending vouchers
// @Description Drafts one entry per pending voucher and persists the valid ones, committing per voucher. Vouchers whose draft fails validation stay pending and are reported with their problems.
// @Tags journal
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param selection body dto.GenerateEntriesRequest false "Voucher IDs; empty means all pending"
// @Success 200 {object} portssvc.GenerationResult
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Employees may not generate entries"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal/generate [post]
func (h *journalHandler) generateEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.GenerateEntriesRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		logger.Warn("Failed to bind JSON for generate entries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.journalService.GenerateFromVouchers(c.Request.Context(), actor, c.Param("tenant_id"), req.VoucherIDs)
	if err != nil {
		respondError(c, logger, err, "generate journal entries")
		return
	}

	logger.Info("Journal generation finished",
		slog.Int("generated", result.Generated),
		slog.Int("skipped", len(result.Skipped)))
	c.JSON(http.StatusOK, result)
}

// createEntry godoc
// @Summary Create a journal entry manually
// @Description Persists a manually written entry after validation. Manual entries are never marked auto-generated.
// @Tags journal
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param entry body dto.CreateEntryRequest true "Entry lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Validation problems"
// @Failure 403 {object} map[string]string "Employees may not write entries"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal/entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create entry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), actor, req.ToJournalEntry(c.Param("tenant_id")))
	if err != nil {
		respondError(c, logger, err, "create journal entry")
		return
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List the journal entries of a tenant
// @Description Returns a page of entries, newest first, with a continuation token for the next page.
// @Tags journal
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param limit query int false "Page size (default 50, max 100)"
// @Param nextToken query string false "Continuation token from a previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid page token"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/journal/entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	var nextToken *string
	if params.NextToken != "" {
		nextToken = &params.NextToken
	}

	entries, token, err := h.journalService.ListEntries(c.Request.Context(), actor, c.Param("tenant_id"), params.Limit, nextToken)
	if err != nil {
		respondError(c, logger, err, "list journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEntriesResponse(entries, token))
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags journal
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /journal-entries/{entry_id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.GetEntry(c.Request.Context(), actor, c.Param("entry_id"))
	if err != nil {
		respondError(c, logger, err, "get journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update an unconfirmed journal entry
// @Description Replaces the entry lines after validation. Confirmed entries are immutable.
// @Tags journal
// @Accept json
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Param entry body dto.UpdateEntryRequest true "Entry lines"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Validation problems"
// @Failure 409 {object} map[string]string "Entry already confirmed"
// @Security BearerAuth
// @Router /journal-entries/{entry_id} [put]
func (h *journalHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update entry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	current, err := h.journalService.GetEntry(c.Request.Context(), actor, c.Param("entry_id"))
	if err != nil {
		respondError(c, logger, err, "get journal entry")
		return
	}
	req.Apply(current)

	updated, err := h.journalService.UpdateEntry(c.Request.Context(), actor, *current)
	if err != nil {
		respondError(c, logger, err, "update journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(updated))
}

// confirmEntry godoc
// @Summary Confirm a journal entry
// @Description Marks an entry as reviewed. Confirmation is one-way and requires the entry to validate cleanly. Confirming twice is a no-op.
// @Tags journal
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Entry does not validate"
// @Failure 404 {object} map[string]string "Entry not found"
// @Security BearerAuth
// @Router /journal-entries/{entry_id}/confirm [post]
func (h *journalHandler) confirmEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.journalService.ConfirmEntry(c.Request.Context(), actor, c.Param("entry_id"))
	if err != nil {
		respondError(c, logger, err, "confirm journal entry")
		return
	}

	logger.Info("Journal entry confirmed", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete an unconfirmed journal entry
// @Description Removes the entry. Its source voucher, if any, returns to pending.
// @Tags journal
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already confirmed"
// @Security BearerAuth
// @Router /journal-entries/{entry_id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.journalService.DeleteEntry(c.Request.Context(), actor, c.Param("entry_id")); err != nil {
		respondError(c, logger, err, "delete journal entry")
		return
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", c.Param("entry_id")))
	c.Status(http.StatusNoContent)
}

// listSubjects godoc
// @Summary List the chart of account subjects
// @Tags journal
// @Produce json
// @Param type query string false "Filter by subject type (資産, 負債, 純資産, 収益, 費用)"
// @Success 200 {object} dto.ListSubjectsResponse
// @Failure 400 {object} map[string]string "Unknown subject type"
// @Security BearerAuth
// @Router /subjects [get]
func (h *journalHandler) listSubjects(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var subjectType *string
	if t := c.Query("type"); t != "" {
		subjectType = &t
	}

	subjects, err := h.journalService.ListSubjects(c.Request.Context(), subjectType)
	if err != nil {
		respondError(c, logger, err, "list subjects")
		return
	}
	c.JSON(http.StatusOK, dto.ListSubjectsResponse{Subjects: subjects})
}
