package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/vidora-app/vidora_backend/internal/core/ports/services"
)

// AuthMiddleware authenticates the request from the access token cookie or,
// when absent, from the Authorization Bearer header. The token that is
// actually presented is always the one verified. Any failure aborts with 401;
// the reason is logged but never echoed to the client.
func AuthMiddleware(authSvc portssvc.AuthSvcFacade, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString := extractAccessToken(c, cookieName)
		if tokenString == "" {
			logger.Warn("Access token missing from cookie and Authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		user, err := authSvc.AuthenticateRequest(c.Request.Context(), tokenString)
		if err != nil {
			logger.Warn("Access token rejected", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		enrichedLogger := logger.With(slog.String("user_id", user.UserID))
		ctx := withPrincipal(c.Request.Context(), user)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// OptionalAuthMiddleware resolves the viewer identity when a token is
// presented but lets anonymous requests through. An invalid token is treated
// as anonymous rather than rejected.
func OptionalAuthMiddleware(authSvc portssvc.AuthSvcFacade, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractAccessToken(c, cookieName)
		if tokenString == "" {
			c.Next()
			return
		}

		user, err := authSvc.AuthenticateRequest(c.Request.Context(), tokenString)
		if err != nil {
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(withPrincipal(c.Request.Context(), user))
		c.Next()
	}
}

func extractAccessToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
