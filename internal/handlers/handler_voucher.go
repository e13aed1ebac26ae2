package handlers

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
	"github.com/keiri-app/keiri-backend/internal/dto"
	"github.com/keiri-app/keiri-backend/internal/middleware"
	"github.com/keiri-app/keiri-backend/internal/platform/config"
)

// voucherHandler handles HTTP requests related to captured receipts.
type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
	uploadDir      string
}

func newVoucherHandler(vs portssvc.VoucherSvcFacade, uploadDir string) *voucherHandler {
	return &voucherHandler{voucherService: vs, uploadDir: uploadDir}
}

// registerVoucherRoutes registers both the tenant-nested collection routes and
// the flat per-voucher routes.
func registerVoucherRoutes(rg *gin.RouterGroup, cfg *config.Config, voucherService portssvc.VoucherSvcFacade) {
	h := newVoucherHandler(voucherService, cfg.UploadDir)

	tenantVouchers := rg.Group("/tenants/:tenant_id/vouchers")
	{
		tenantVouchers.POST("", h.ingestVoucher)
		tenantVouchers.GET("", h.listVouchers)
	}

	vouchers := rg.Group("/vouchers")
	{
		vouchers.GET("/:voucher_id", h.getVoucher)
		vouchers.PUT("/:voucher_id", h.updateVoucher)
		vouchers.DELETE("/:voucher_id", h.deleteVoucher)
	}
}

// ingestVoucher godoc
// @Summary Upload and ingest a receipt
// @Description Stores the uploaded receipt image and runs the capture pipeline: text extraction, optional AI cleanup, field extraction and counter-party matching. The voucher lands in pending status even when extraction yields nothing.
// @Tags vouchers
// @Accept multipart/form-data
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param image formData file true "Receipt image"
// @Param description formData string false "Free-form note"
// @Success 201 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Missing image"
// @Failure 403 {object} map[string]string "Outside the actor's tenant"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/vouchers [post]
func (h *voucherHandler) ingestVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Receipt image is required"})
		return
	}

	imagePath := filepath.Join(h.uploadDir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, imagePath); err != nil {
		logger.Error("Failed to store uploaded receipt", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded receipt"})
		return
	}

	voucher, err := h.voucherService.IngestVoucher(c.Request.Context(), actor, c.Param("tenant_id"),
		imagePath, c.PostForm("description"))
	if err != nil {
		respondError(c, logger, err, "ingest voucher")
		return
	}

	logger.Info("Voucher ingested",
		slog.String("voucher_id", voucher.VoucherID),
		slog.String("tenant_id", voucher.TenantID))
	c.JSON(http.StatusCreated, dto.ToVoucherResponse(voucher))
}

// listVouchers godoc
// @Summary List the vouchers of a tenant
// @Tags vouchers
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param status query string false "Filter by status (pending, processing, done)"
// @Success 200 {object} dto.ListVouchersResponse
// @Failure 403 {object} map[string]string "Outside the actor's tenant"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/vouchers [get]
func (h *voucherHandler) listVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListVouchersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	var status *domain.VoucherStatus
	if params.Status != "" {
		s := domain.VoucherStatus(params.Status)
		status = &s
	}

	vouchers, err := h.voucherService.ListVouchers(c.Request.Context(), actor, c.Param("tenant_id"), status)
	if err != nil {
		respondError(c, logger, err, "list vouchers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListVouchersResponse(vouchers))
}

// getVoucher godoc
// @Summary Get a voucher
// @Tags vouchers
// @Produce json
// @Param voucher_id path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 404 {object} map[string]string "Voucher not found"
// @Security BearerAuth
// @Router /vouchers/{voucher_id} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voucher, err := h.voucherService.GetVoucher(c.Request.Context(), actor, c.Param("voucher_id"))
	if err != nil {
		respondError(c, logger, err, "get voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// updateVoucher godoc
// @Summary Correct a voucher's extracted fields
// @Description Overlays the provided fields onto a voucher that has not been journalized yet.
// @Tags vouchers
// @Accept json
// @Produce json
// @Param voucher_id path string true "Voucher ID"
// @Param voucher body dto.UpdateVoucherRequest true "Fields to correct"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Voucher already journalized"
// @Security BearerAuth
// @Router /vouchers/{voucher_id} [put]
func (h *voucherHandler) updateVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update voucher", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	current, err := h.voucherService.GetVoucher(c.Request.Context(), actor, c.Param("voucher_id"))
	if err != nil {
		respondError(c, logger, err, "get voucher")
		return
	}
	req.Apply(current)

	updated, err := h.voucherService.UpdateVoucher(c.Request.Context(), actor, *current)
	if err != nil {
		respondError(c, logger, err, "update voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(updated))
}

// deleteVoucher godoc
// @Summary Delete a voucher
// @Description Removes a voucher that has not been journalized yet.
// @Tags vouchers
// @Produce json
// @Param voucher_id path string true "Voucher ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Voucher not found"
// @Failure 409 {object} map[string]string "Voucher already journalized"
// @Security BearerAuth
// @Router /vouchers/{voucher_id} [delete]
func (h *voucherHandler) deleteVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.voucherService.DeleteVoucher(c.Request.Context(), actor, c.Param("voucher_id")); err != nil {
		respondError(c, logger, err, "delete voucher")
		return
	}

	logger.Info("Voucher deleted", slog.String("voucher_id", c.Param("voucher_id")))
	c.Status(http.StatusNoContent)
}
