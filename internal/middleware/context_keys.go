package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/vidora-app/vidora_backend/internal/core/domain"
)

const (
	userIDKey    = contextKey("userID")
	principalKey = contextKey("principal")
)

// GetUserIDFromContext retrieves the authenticated user ID set by
// AuthMiddleware. The boolean reports whether a user is authenticated.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok
}

// GetPrincipalFromContext retrieves the authenticated user set by
// AuthMiddleware.
func GetPrincipalFromContext(c *gin.Context) (*domain.User, bool) {
	user, ok := c.Request.Context().Value(principalKey).(*domain.User)
	return user, ok
}

func withPrincipal(ctx context.Context, user *domain.User) context.Context {
	ctx = context.WithValue(ctx, userIDKey, user.UserID)
	return context.WithValue(ctx, principalKey, user)
}
