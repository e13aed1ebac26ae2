package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
	"github.com/keiri-app/keiri-backend/internal/dto"
	"github.com/keiri-app/keiri-backend/internal/middleware"
)

// authHandler handles login, bootstrap and scope selection.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

func newAuthHandler(as portssvc.AuthSvcFacade) *authHandler {
	return &authHandler{authService: as}
}

// registerAuthRoutes registers the public authentication routes. Login and
// bootstrap are rate limited per client IP.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvcFacade, loginLimiter *limiter.Limiter) {
	h := newAuthHandler(authService)

	auth := r.Group("/auth", middleware.RateLimit(loginLimiter))
	{
		auth.POST("/login", h.login)
		auth.POST("/bootstrap", h.bootstrap)
	}
}

// registerScopeRoutes registers the authenticated scope-selection routes.
func registerScopeRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade) {
	h := newAuthHandler(authService)

	auth := rg.Group("/auth")
	{
		auth.GET("/scopes", h.listScopes)
		auth.POST("/select-scope", h.selectScope)
		auth.PUT("/password", h.changePassword)
	}
}

// login godoc
// @Summary Log in
// @Description Verifies credentials for the given tier and issues a JWT. Employees pass tier "employee" and their tenant slug.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Invalid credentials"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for login", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	token, expiresAt, actor, err := h.authService.Login(c.Request.Context(), domain.Tier(req.Tier), req.TenantSlug, req.LoginID, req.Password)
	if err != nil {
		respondError(c, logger, err, "log in")
		return
	}

	logger.Info("Login succeeded", slog.String("actor_id", actor.ID), slog.String("tier", string(actor.Tier)))
	c.JSON(http.StatusOK, dto.ToLoginResponse(token, expiresAt, actor))
}

// bootstrap godoc
// @Summary Create the first system administrator
// @Description Creates the initial system admin when none exists yet. Fails once the system scope has an owner.
// @Tags auth
// @Accept json
// @Produce json
// @Param admin body dto.BootstrapRequest true "First system admin"
// @Success 201 {object} dto.AdminResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "System already bootstrapped"
// @Router /auth/bootstrap [post]
func (h *authHandler) bootstrap(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BootstrapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for bootstrap", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	admin, err := h.authService.Bootstrap(c.Request.Context(), req.LoginID, req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, logger, err, "bootstrap system admin")
		return
	}

	logger.Info("System bootstrapped", slog.String("admin_id", admin.AdminID))
	c.JSON(http.StatusCreated, dto.ToAdminResponse(admin))
}

// listScopes godoc
// @Summary List selectable scopes
// @Description Lists the scopes the authenticated admin holds grants in.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.ListGrantsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /auth/scopes [get]
func (h *authHandler) listScopes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	grants, err := h.authService.ListSelectableScopes(c.Request.Context(), actor)
	if err != nil {
		respondError(c, logger, err, "list scopes")
		return
	}
	c.JSON(http.StatusOK, dto.ToListGrantsResponse(grants))
}

// selectScope godoc
// @Summary Select a scope
// @Description Narrows the session to one granted scope and issues a replacement token.
// @Tags auth
// @Accept json
// @Produce json
// @Param scope body dto.SelectScopeRequest true "Scope to select"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "No grant in that scope"
// @Security BearerAuth
// @Router /auth/select-scope [post]
func (h *authHandler) selectScope(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.SelectScopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for select scope", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	token, expiresAt, narrowed, err := h.authService.SelectScope(c.Request.Context(), actor, req.Scope.ToScope())
	if err != nil {
		respondError(c, logger, err, "select scope")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoginResponse(token, expiresAt, narrowed))
}

// changePassword godoc
// @Summary Change own password
// @Description Replaces the caller's password after confirming the current one.
// @Tags auth
// @Accept json
// @Produce json
// @Param passwords body dto.ChangePasswordRequest true "Current and new password"
// @Success 204
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Password confirmation failed"
// @Security BearerAuth
// @Router /auth/password [put]
func (h *authHandler) changePassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for change password", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), actor, req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, logger, err, "change password")
		return
	}
	c.Status(http.StatusNoContent)
}
