package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/keiri-app/keiri-backend/internal/core/ports/services"
)

// AuthMiddleware creates a Gin middleware handler that validates bearer
// tokens and stores the resulting actor in the request context.
func AuthMiddleware(authSvc portssvc.AuthSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		if logger == nil {
			logger = slog.Default()
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		actor, err := authSvc.ParseToken(c.Request.Context(), parts[1])
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		enrichedLogger := logger.With(
			slog.String("actor_id", actor.ID),
			slog.String("tier", string(actor.Tier)),
		)
		ctx := WithActor(c.Request.Context(), *actor)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
