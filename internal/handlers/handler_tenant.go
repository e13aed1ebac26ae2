package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
	"github.com/keiri-app/keiri-backend/internal/dto"
	"github.com/keiri-app/keiri-backend/internal/middleware"
)

// tenantHandler handles HTTP requests related to tenants.
type tenantHandler struct {
	tenantService portssvc.TenantSvcFacade
}

func newTenantHandler(ts portssvc.TenantSvcFacade) *tenantHandler {
	return &tenantHandler{tenantService: ts}
}

// registerTenantRoutes registers routes for tenant management.
func registerTenantRoutes(rg *gin.RouterGroup, tenantService portssvc.TenantSvcFacade) {
	h := newTenantHandler(tenantService)

	tenants := rg.Group("/tenants")
	{
		tenants.POST("", h.createTenant)
		tenants.GET("", h.listTenants)
		tenants.GET("/:tenant_id", h.getTenant)
		tenants.PUT("/:tenant_id", h.updateTenant)
		tenants.PUT("/:tenant_id/ai-settings", h.updateAISettings)
		tenants.DELETE("/:tenant_id", h.deleteTenant)
	}
}

// createTenant godoc
// @Summary Create a tenant
// @Description Creates a tenant together with its first tenant admin, who becomes the tenant scope owner. System admins only.
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenant body dto.CreateTenantRequest true "Tenant details and first admin"
// @Success 201 {object} dto.TenantResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Not a system admin"
// @Failure 409 {object} map[string]string "Slug already taken"
// @Security BearerAuth
// @Router /tenants [post]
func (h *tenantHandler) createTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create tenant", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	firstAdmin := domain.Administrator{
		LoginID: req.FirstAdmin.LoginID,
		Name:    req.FirstAdmin.Name,
		Email:   req.FirstAdmin.Email,
	}
	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), actor, req.Name, req.Slug, firstAdmin, req.FirstAdmin.Password)
	if err != nil {
		respondError(c, logger, err, "create tenant")
		return
	}

	logger.Info("Tenant created", slog.String("tenant_id", tenant.TenantID), slog.String("slug", tenant.Slug))
	c.JSON(http.StatusCreated, dto.ToTenantResponse(tenant))
}

// listTenants godoc
// @Summary List all tenants
// @Description Lists every tenant. System admins only.
// @Tags tenants
// @Produce json
// @Param includeInactive query bool false "Include deactivated tenants"
// @Success 200 {object} dto.ListTenantsResponse
// @Failure 403 {object} map[string]string "Not a system admin"
// @Security BearerAuth
// @Router /tenants [get]
func (h *tenantHandler) listTenants(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	includeInactive, _ := strconv.ParseBool(c.DefaultQuery("includeInactive", "false"))
	tenants, err := h.tenantService.ListTenants(c.Request.Context(), actor, includeInactive)
	if err != nil {
		respondError(c, logger, err, "list tenants")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTenantsResponse(tenants))
}

// getTenant godoc
// @Summary Get a tenant
// @Tags tenants
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Success 200 {object} dto.TenantResponse
// @Failure 403 {object} map[string]string "Outside the actor's tenant"
// @Failure 404 {object} map[string]string "Tenant not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id} [get]
func (h *tenantHandler) getTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tenant, err := h.tenantService.GetTenant(c.Request.Context(), actor, c.Param("tenant_id"))
	if err != nil {
		respondError(c, logger, err, "get tenant")
		return
	}
	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// updateTenant godoc
// @Summary Update a tenant's profile
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param tenant body dto.UpdateTenantRequest true "Profile fields"
// @Success 200 {object} dto.TenantResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Tenant not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id} [put]
func (h *tenantHandler) updateTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update tenant", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), actor, c.Param("tenant_id"), req.Name, *req.IsActive)
	if err != nil {
		respondError(c, logger, err, "update tenant")
		return
	}
	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// updateAISettings godoc
// @Summary Update a tenant's AI settings
// @Description Replaces the tenant's text-completion configuration. API keys are stored but never echoed back.
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param settings body dto.UpdateAISettingsRequest true "AI configuration"
// @Success 200 {object} dto.TenantResponse
// @Failure 403 {object} map[string]string "Outside the actor's tenant"
// @Failure 404 {object} map[string]string "Tenant not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/ai-settings [put]
func (h *tenantHandler) updateAISettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateAISettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update AI settings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenant, err := h.tenantService.UpdateAISettings(c.Request.Context(), actor, c.Param("tenant_id"), req.ToAISettings())
	if err != nil {
		respondError(c, logger, err, "update AI settings")
		return
	}

	logger.Info("AI settings updated", slog.String("tenant_id", tenant.TenantID))
	c.JSON(http.StatusOK, dto.ToTenantResponse(tenant))
}

// deleteTenant godoc
// @Summary Delete a tenant
// @Description Removes the tenant and everything under it. The acting system admin must re-authenticate with their password.
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param confirmation body dto.DeleteTenantRequest true "Re-authentication password"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Not a system admin or wrong password"
// @Failure 404 {object} map[string]string "Tenant not found"
// @Security BearerAuth
// @Router /tenants/{tenant_id} [delete]
func (h *tenantHandler) deleteTenant(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.DeleteTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for delete tenant", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.tenantService.DeleteTenant(c.Request.Context(), actor, c.Param("tenant_id"), req.Password); err != nil {
		respondError(c, logger, err, "delete tenant")
		return
	}

	logger.Info("Tenant deleted", slog.String("tenant_id", c.Param("tenant_id")))
	c.Status(http.StatusNoContent)
}
