package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
	"github.com/keiri-app/keiri-backend/internal/dto"
	"github.com/keiri-app/keiri-backend/internal/middleware"
)

// adminHandler handles HTTP requests related to administrator accounts and
// their per-scope grants.
type adminHandler struct {
	adminService portssvc.AdminSvcFacade
}

func newAdminHandler(as portssvc.AdminSvcFacade) *adminHandler {
	return &adminHandler{adminService: as}
}

// registerAdminRoutes registers routes for administrator management.
// Employees hold no administrative rank and are kept out entirely.
func registerAdminRoutes(rg *gin.RouterGroup, adminService portssvc.AdminSvcFacade) {
	h := newAdminHandler(adminService)

	admins := rg.Group("/admins", middleware.RequireTiers(domain.TierSystem, domain.TierTenant, domain.TierStore))
	{
		admins.POST("", h.createAdmin)
		admins.GET("", h.listAdmins)
		admins.GET("/:admin_id", h.getAdmin)
		admins.PUT("/:admin_id", h.updateAdmin)
		admins.POST("/:admin_id/toggle-active", h.toggleActive)
		admins.PUT("/:admin_id/permission", h.setManagePermission)
		admins.POST("/ownership/transfer", h.transferOwnership)
		admins.DELETE("/:admin_id", h.deleteAdmin)
	}
}

// scopeFromQuery reads tier/tenantID/storeID query parameters into a scope.
func scopeFromQuery(c *gin.Context) domain.Scope {
	return domain.Scope{
		Tier:     domain.Tier(c.Query("tier")),
		TenantID: c.Query("tenantID"),
		StoreID:  c.Query("storeID"),
	}
}

// createAdmin godoc
// @Summary Create an administrator
// @Description Creates an admin account and grants it into the scope. The first admin of an empty scope becomes its owner. If the login ID already names an account of the same tier, only a new grant is added.
// @Tags admins
// @Accept json
// @Produce json
// @Param admin body dto.CreateAdminRequest true "Admin details and target scope"
// @Success 201 {object} dto.AdminResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "No manage permission in scope"
// @Failure 409 {object} map[string]string "Already granted or login ID taken"
// @Security BearerAuth
// @Router /admins [post]
func (h *adminHandler) createAdmin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create admin", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	admin, err := h.adminService.CreateAdmin(c.Request.Context(), actor, req.Scope.ToScope(),
		req.LoginID, req.Name, req.Email, req.Password, req.CanManageAdmins)
	if err != nil {
		respondError(c, logger, err, "create admin")
		return
	}

	logger.Info("Admin created", slog.String("admin_id", admin.AdminID), slog.String("scope", req.Scope.ToScope().Key()))
	c.JSON(http.StatusCreated, dto.ToAdminResponse(admin))
}

// listAdmins godoc
// @Summary List the admins of a scope
// @Description Lists the grants of a scope, owner first. Any admin granted into the scope may list it.
// @Tags admins
// @Produce json
// @Param tier query string true "Scope tier"
// @Param tenantID query string false "Tenant ID for tenant and store scopes"
// @Param storeID query string false "Store ID for store scopes"
// @Success 200 {object} dto.ListGrantsResponse
// @Failure 403 {object} map[string]string "Not granted into the scope"
// @Security BearerAuth
// @Router /admins [get]
func (h *adminHandler) listAdmins(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	grants, err := h.adminService.ListAdmins(c.Request.Context(), actor, scopeFromQuery(c))
	if err != nil {
		respondError(c, logger, err, "list admins")
		return
	}
	c.JSON(http.StatusOK, dto.ToListGrantsResponse(grants))
}

// getAdmin godoc
// @Summary Get an administrator
// @Tags admins
// @Produce json
// @Param admin_id path string true "Admin ID"
// @Success 200 {object} dto.AdminResponse
// @Failure 404 {object} map[string]string "Admin not found"
// @Security BearerAuth
// @Router /admins/{admin_id} [get]
func (h *adminHandler) getAdmin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	admin, err := h.adminService.GetAdmin(c.Request.Context(), actor, c.Param("admin_id"))
	if err != nil {
		respondError(c, logger, err, "get admin")
		return
	}
	c.JSON(http.StatusOK, dto.ToAdminResponse(admin))
}

// updateAdmin godoc
// @Summary Update an administrator's profile
// @Tags admins
// @Accept json
// @Produce json
// @Param admin_id path string true "Admin ID"
// @Param admin body dto.UpdateAdminRequest true "Profile fields"
// @Success 200 {object} dto.AdminResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Admin not found"
// @Security BearerAuth
// @Router /admins/{admin_id} [put]
func (h *adminHandler) updateAdmin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update admin", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	admin, err := h.adminService.UpdateAdmin(c.Request.Context(), actor, c.Param("admin_id"), req.Name, req.Email)
	if err != nil {
		respondError(c, logger, err, "update admin")
		return
	}
	c.JSON(http.StatusOK, dto.ToAdminResponse(admin))
}

// toggleActive godoc
// @Summary Toggle an admin's active flag
// @Description Flips the active flag of an admin in the scope. Acting on yourself or on the scope owner is rejected.
// @Tags admins
// @Accept json
// @Produce json
// @Param admin_id path string true "Admin ID"
// @Param scope body dto.ToggleActiveRequest true "Scope the toggle applies to"
// @Success 200 {object} dto.GrantResponse
// @Failure 403 {object} map[string]string "No manage permission, self, or owner target"
// @Failure 404 {object} map[string]string "Admin not granted into scope"
// @Security BearerAuth
// @Router /admins/{admin_id}/toggle-active [post]
func (h *adminHandler) toggleActive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ToggleActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for toggle active", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	grant, err := h.adminService.ToggleActive(c.Request.Context(), actor, req.Scope.ToScope(), c.Param("admin_id"))
	if err != nil {
		respondError(c, logger, err, "toggle admin active flag")
		return
	}

	logger.Info("Admin active flag toggled", slog.String("admin_id", c.Param("admin_id")))
	c.JSON(http.StatusOK, dto.ToGrantResponse(grant))
}

// setManagePermission godoc
// @Summary Set the manage-admins permission
// @Description Grants or revokes the manage-admins flag. Scope owner only; the owner's own flags are immutable.
// @Tags admins
// @Accept json
// @Produce json
// @Param admin_id path string true "Admin ID"
// @Param permission body dto.SetPermissionRequest true "Scope and flag value"
// @Success 200 {object} dto.GrantResponse
// @Failure 403 {object} map[string]string "Caller is not the scope owner"
// @Failure 404 {object} map[string]string "Admin not granted into scope"
// @Security BearerAuth
// @Router /admins/{admin_id}/permission [put]
func (h *adminHandler) setManagePermission(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.SetPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for set permission", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	grant, err := h.adminService.SetManagePermission(c.Request.Context(), actor, req.Scope.ToScope(),
		c.Param("admin_id"), *req.CanManageAdmins)
	if err != nil {
		respondError(c, logger, err, "set manage permission")
		return
	}

	logger.Info("Manage permission set",
		slog.String("admin_id", c.Param("admin_id")),
		slog.Bool("can_manage_admins", *req.CanManageAdmins))
	c.JSON(http.StatusOK, dto.ToGrantResponse(grant))
}

// transferOwnership godoc
// @Summary Transfer scope ownership
// @Description Moves ownership from the acting owner to another active admin granted into the same scope.
// @Tags admins
// @Accept json
// @Produce json
// @Param transfer body dto.TransferOwnershipRequest true "Scope and new owner"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Caller is not the scope owner"
// @Failure 404 {object} map[string]string "New owner not granted into scope"
// @Security BearerAuth
// @Router /admins/ownership/transfer [post]
func (h *adminHandler) transferOwnership(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for transfer ownership", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.adminService.TransferOwnership(c.Request.Context(), actor, req.Scope.ToScope(), req.NewOwnerID); err != nil {
		respondError(c, logger, err, "transfer ownership")
		return
	}

	logger.Info("Ownership transferred",
		slog.String("scope", req.Scope.ToScope().Key()),
		slog.String("new_owner_id", req.NewOwnerID))
	c.Status(http.StatusNoContent)
}

// deleteAdmin godoc
// @Summary Remove an admin from a scope
// @Description Removes the admin's grant. When that was the last grant the account is removed too. Deleting yourself or the scope owner is rejected.
// @Tags admins
// @Produce json
// @Param admin_id path string true "Admin ID"
// @Param tier query string true "Scope tier"
// @Param tenantID query string false "Tenant ID for tenant and store scopes"
// @Param storeID query string false "Store ID for store scopes"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "No manage permission, self, or owner target"
// @Failure 404 {object} map[string]string "Admin not granted into scope"
// @Security BearerAuth
// @Router /admins/{admin_id} [delete]
func (h *adminHandler) deleteAdmin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.adminService.DeleteAdmin(c.Request.Context(), actor, scopeFromQuery(c), c.Param("admin_id")); err != nil {
		respondError(c, logger, err, "delete admin")
		return
	}

	logger.Info("Admin removed from scope", slog.String("admin_id", c.Param("admin_id")))
	c.Status(http.StatusNoContent)
}
