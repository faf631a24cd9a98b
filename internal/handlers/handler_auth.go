package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/vidora-app/vidora_backend/internal/apperrors"
	portssvc "github.com/vidora-app/vidora_backend/internal/core/ports/services"
	"github.com/vidora-app/vidora_backend/internal/dto"
	"github.com/vidora-app/vidora_backend/internal/middleware"
	"github.com/vidora-app/vidora_backend/internal/platform/config"
)

// AuthHandler handles registration and the session token lifecycle.
type AuthHandler struct {
	authService portssvc.AuthSvcFacade
	cfg         *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AuthSvcFacade, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: as,
		cfg:         cfg,
	}
}

// registerAuthRoutes sets up registration and session routes under /users.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, authService portssvc.AuthSvcFacade) {
	h := NewAuthHandler(authService, cfg)

	// Credential endpoints get a tight per-IP limit: 5 requests per minute.
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	users := r.Group("/api/v1/users")
	{
		users.POST("/register", limitMiddleware, h.Register)
		users.POST("/login", limitMiddleware, h.Login)
		users.POST("/refresh-token", h.RefreshToken)
	}

	authRequired := users.Group("", middleware.AuthMiddleware(authService, cfg.AccessTokenCookieName))
	{
		authRequired.POST("/logout", h.Logout)
		authRequired.POST("/update-password", h.UpdatePassword)
	}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user account from a multipart form. The avatar file is mandatory, the cover image optional.
// @Tags auth
// @Accept mpfd
// @Produce json
// @Param fullName formData string true "Full name"
// @Param email formData string true "Email"
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param avatar formData file true "Avatar image"
// @Param coverImage formData file false "Cover image"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterUserRequest
	if err := c.ShouldBind(&req); err != nil {
		logger.Warn("Failed to bind registration form", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	avatarHeader, err := c.FormFile("avatar")
	if err != nil {
		respondWithError(c, fmt.Errorf("avatar file is required: %w", apperrors.ErrValidation))
		return
	}
	avatar, closeAvatar, err := openUpload(avatarHeader)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer closeAvatar()

	var coverImage *dto.MediaUpload
	if coverHeader, err := c.FormFile("coverImage"); err == nil {
		var closeCover func()
		coverImage, closeCover, err = openUpload(coverHeader)
		if err != nil {
			respondWithError(c, err)
			return
		}
		defer closeCover()
	}

	user, err := h.authService.Register(c.Request.Context(), req, avatar, coverImage)
	if err != nil {
		respondWithError(c, err)
		return
	}

	logger.Info("User registered", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials, issues an access/refresh token pair and sets both as httpOnly cookies.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	user, pair, err := h.authService.Login(c.Request.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.setSessionCookies(c, pair)
	c.JSON(http.StatusOK, dto.LoginResponse{
		User:         dto.ToUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout godoc
// @Summary Log out
// @Description Clears the stored refresh token and both session cookies. Idempotent.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondWithError(c, err)
		return
	}

	h.clearSessionCookies(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// RefreshToken godoc
// @Summary Rotate the session
// @Description Exchanges a valid refresh token (cookie or body) for a new token pair. The old refresh token is invalidated.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest false "Refresh token when not sent as a cookie"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} ErrorResponse
// @Router /users/refresh-token [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	presented, _ := c.Cookie(h.cfg.RefreshTokenCookieName)
	if presented == "" {
		var req dto.RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			presented = req.RefreshToken
		}
	}
	if presented == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token required"})
		return
	}

	_, pair, err := h.authService.RefreshSession(c.Request.Context(), presented)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.setSessionCookies(c, pair)
	c.JSON(http.StatusOK, dto.RefreshTokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// UpdatePassword godoc
// @Summary Change password
// @Description Re-verifies the old password, replaces the hash and revokes the stored refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param passwords body dto.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/update-password [post]
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func (h *AuthHandler) setSessionCookies(c *gin.Context, pair *portssvc.TokenPair) {
	c.SetSameSite(http.SameSiteLaxMode)
	secure := h.cfg.IsProduction
	c.SetCookie(h.cfg.AccessTokenCookieName, pair.AccessToken,
		int(h.cfg.AccessTokenDuration.Seconds()), "/", h.cfg.CookieDomain, secure, true)
	c.SetCookie(h.cfg.RefreshTokenCookieName, pair.RefreshToken,
		int(h.cfg.RefreshTokenDuration.Seconds()), "/", h.cfg.CookieDomain, secure, true)
}

func (h *AuthHandler) clearSessionCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	secure := h.cfg.IsProduction
	c.SetCookie(h.cfg.AccessTokenCookieName, "", -1, "/", h.cfg.CookieDomain, secure, true)
	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, "/", h.cfg.CookieDomain, secure, true)
}
