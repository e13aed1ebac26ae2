package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

// RequireTiers creates a Gin middleware that rejects actors outside the
// allowed tiers. It must run after AuthMiddleware.
func RequireTiers(allowed ...domain.Tier) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActorFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if err := actor.Authorize(allowed...); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient tier for this resource"})
			return
		}
		c.Next()
	}
}
