package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// ctxKey is a private type for request context keys so values stored by this
// package cannot collide with keys from other packages.
type ctxKey string

const (
	ctxKeyUserID ctxKey = "user_id"
	ctxKeyLogger ctxKey = "logger"
)

// withUserID returns a context carrying the authenticated user's ID.
func withUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, userID)
}

// GetUserIDFromContext returns the authenticated user's ID set by
// AuthMiddleware, and false when the request carries no authenticated user.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(ctxKeyUserID).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
