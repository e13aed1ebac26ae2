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

// storeHandler handles HTTP requests related to stores.
type storeHandler struct {
	storeService portssvc.StoreSvcFacade
}

func newStoreHandler(ss portssvc.StoreSvcFacade) *storeHandler {
	return &storeHandler{storeService: ss}
}

// registerStoreRoutes registers both the tenant-nested collection routes and
// the flat per-store routes.
func registerStoreRoutes(rg *gin.RouterGroup, storeService portssvc.StoreSvcFacade) {
	h := newStoreHandler(storeService)

	tenantStores := rg.Group("/tenants/:tenant_id/stores")
	{
		tenantStores.POST("", h.createStore)
		tenantStores.GET("", h.listStores)
	}

	stores := rg.Group("/stores")
	{
		stores.GET("/:store_id", h.getStore)
		stores.PUT("/:store_id", h.updateStore)
		stores.DELETE("/:store_id", h.deleteStore)
	}
}

// createStore godoc
// @Summary Create a store
// @Description Creates a store together with its first store admin, who becomes the store scope owner.
// @Tags stores
// @Accept json
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param store body dto.CreateStoreRequest true "Store details and first admin"
// @Success 201 {object} dto.StoreResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Outside the actor's tenant"
// @Failure 409 {object} map[string]string "Slug already taken in tenant"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/stores [post]
func (h *storeHandler) createStore(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create store", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	firstAdmin := domain.Administrator{
		LoginID: req.FirstAdmin.LoginID,
		Name:    req.FirstAdmin.Name,
		Email:   req.FirstAdmin.Email,
	}
	store, err := h.storeService.CreateStore(c.Request.Context(), actor, c.Param("tenant_id"),
		req.Name, req.Slug, firstAdmin, req.FirstAdmin.Password)
	if err != nil {
		respondError(c, logger, err, "create store")
		return
	}

	logger.Info("Store created", slog.String("store_id", store.StoreID), slog.String("tenant_id", store.TenantID))
	c.JSON(http.StatusCreated, dto.ToStoreResponse(store))
}

// listStores godoc
// @Summary List the stores of a tenant
// @Tags stores
// @Produce json
// @Param tenant_id path string true "Tenant ID"
// @Param includeInactive query bool false "Include deactivated stores"
// @Success 200 {object} dto.ListStoresResponse
// @Failure 403 {object} map[string]string "Outside the actor's tenant"
// @Security BearerAuth
// @Router /tenants/{tenant_id}/stores [get]
func (h *storeHandler) listStores(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	includeInactive, _ := strconv.ParseBool(c.DefaultQuery("includeInactive", "false"))
	stores, err := h.storeService.ListStores(c.Request.Context(), actor, c.Param("tenant_id"), includeInactive)
	if err != nil {
		respondError(c, logger, err, "list stores")
		return
	}
	c.JSON(http.StatusOK, dto.ToListStoresResponse(stores))
}

// getStore godoc
// @Summary Get a store
// @Tags stores
// @Produce json
// @Param store_id path string true "Store ID"
// @Success 200 {object} dto.StoreResponse
// @Failure 404 {object} map[string]string "Store not found"
// @Security BearerAuth
// @Router /stores/{store_id} [get]
func (h *storeHandler) getStore(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	store, err := h.storeService.GetStore(c.Request.Context(), actor, c.Param("store_id"))
	if err != nil {
		respondError(c, logger, err, "get store")
		return
	}
	c.JSON(http.StatusOK, dto.ToStoreResponse(store))
}

// updateStore godoc
// @Summary Update a store's profile
// @Tags stores
// @Accept json
// @Produce json
// @Param store_id path string true "Store ID"
// @Param store body dto.UpdateStoreRequest true "Profile fields"
// @Success 200 {object} dto.StoreResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Store not found"
// @Security BearerAuth
// @Router /stores/{store_id} [put]
func (h *storeHandler) updateStore(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update store", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	store, err := h.storeService.UpdateStore(c.Request.Context(), actor, c.Param("store_id"), req.Name, *req.IsActive)
	if err != nil {
		respondError(c, logger, err, "update store")
		return
	}
	c.JSON(http.StatusOK, dto.ToStoreResponse(store))
}

// deleteStore godoc
// @Summary Delete a store
// @Description Removes a store together with its admin grants and employee assignments.
// @Tags stores
// @Produce json
// @Param store_id path string true "Store ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Outside the actor's tenant"
// @Failure 404 {object} map[string]string "Store not found"
// @Security BearerAuth
// @Router /stores/{store_id} [delete]
func (h *storeHandler) deleteStore(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.storeService.DeleteStore(c.Request.Context(), actor, c.Param("store_id")); err != nil {
		respondError(c, logger, err, "delete store")
		return
	}

	logger.Info("Store deleted", slog.String("store_id", c.Param("store_id")))
	c.Status(http.StatusNoContent)
}
