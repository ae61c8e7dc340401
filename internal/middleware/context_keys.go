package middleware

import (
	"context"

	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// actorKey stores the authenticated domain.Actor in the request context.
const actorKey = contextKey("actor")

// WithActor returns a copy of ctx carrying the actor.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActorFromContext retrieves the authenticated actor set by AuthMiddleware.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	actor, ok := c.Request.Context().Value(actorKey).(domain.Actor)
	if !ok || actor.UserID == "" {
		return domain.Actor{}, false
	}
	return actor, true
}
