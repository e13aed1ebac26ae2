package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// RateLimit creates a Gin middleware for rate limiting requests by client IP.
// Applied to the login endpoints to slow down credential guessing.
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		limitCtx, err := limiterInstance.Get(c.Request.Context(), ip)
		if err != nil {
			logger := GetLoggerFromCtx(c.Request.Context())
			if logger == nil {
				logger = slog.Default()
			}
			logger.Error("Failed to get rate limit context",
				slog.String("ip", ip), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error during rate limit check"})
			return
		}

		if limitCtx.Reached {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
			return
		}

		c.Next()
	}
}
