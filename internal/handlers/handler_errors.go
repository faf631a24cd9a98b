package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidora-app/vidora_backend/internal/apperrors"
	"github.com/vidora-app/vidora_backend/internal/middleware"
)

// ErrorResponse is the uniform error envelope for all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondWithError maps a service error onto the uniform envelope. Internal
// detail is logged but never echoed to the client; unknown errors collapse to
// a plain 500.
func respondWithError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var status int
	var msg string
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status, msg = http.StatusBadRequest, "Invalid request"
	case errors.Is(err, apperrors.ErrDuplicate):
		status, msg = http.StatusConflict, "Resource already exists"
	case errors.Is(err, apperrors.ErrRefreshTokenExpired):
		status, msg = http.StatusUnauthorized, "Refresh token expired"
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, msg = http.StatusUnauthorized, "Invalid credentials or token"
	case errors.Is(err, apperrors.ErrForbidden):
		status, msg = http.StatusForbidden, "Forbidden"
	case errors.Is(err, apperrors.ErrNotFound):
		status, msg = http.StatusNotFound, "Resource not found"
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		status, msg = http.StatusServiceUnavailable, "Service temporarily unavailable"
	case errors.Is(err, apperrors.ErrUpload):
		status, msg = http.StatusBadGateway, "Media storage failure"
	default:
		status, msg = http.StatusInternalServerError, "Internal server error"
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.Int("status", status), slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}

	c.JSON(status, ErrorResponse{Error: msg})
}
