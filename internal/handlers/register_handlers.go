package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"

	"github.com/keiri-app/keiri-backend/internal/apperrors"
	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
	"github.com/keiri-app/keiri-backend/internal/middleware"
	"github.com/keiri-app/keiri-backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	loginLimiter *limiter.Limiter,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, services.Auth, loginLimiter)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(services.Auth))

	registerScopeRoutes(v1, services.Auth)
	registerAdminRoutes(v1, services.Admin)
	registerTenantRoutes(v1, services.Tenant)
	registerStoreRoutes(v1, services.Store)
	registerEmployeeRoutes(v1, services.Employee)
	registerVoucherRoutes(v1, cfg, services.Voucher)
	registerCompanyRoutes(v1, services.Company)
	registerJournalRoutes(v1, services.Journal)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// respondError translates a service error into an HTTP response. Internal
// failures are logged and masked behind a generic message.
func respondError(c *gin.Context, logger *slog.Logger, err error, action string) {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": "Failed to " + action})
		return
	}
	var fieldErr *apperrors.FieldConflictError
	if errors.As(err, &fieldErr) {
		c.JSON(status, gin.H{"error": fieldErr.Error(), "field": fieldErr.Field})
		return
	}
	logger.Warn("Refused to "+action, slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}
