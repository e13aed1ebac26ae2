package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/keiri-app/keiri-backend/internal/core/domain"
)

const actorCtxKey = contextKey("actor")

// WithActor stores the authenticated actor in a standard context.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey, actor)
}

// GetActorFromCtx retrieves the authenticated actor from a standard context.
func GetActorFromCtx(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey).(domain.Actor)
	return actor, ok
}

// GetActorFromContext retrieves the authenticated actor from the Gin context.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	return GetActorFromCtx(c.Request.Context())
}
