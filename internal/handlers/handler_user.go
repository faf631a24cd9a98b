package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vidora-app/vidora_backend/internal/apperrors"
	"github.com/vidora-app/vidora_backend/internal/core/domain"
	portssvc "github.com/vidora-app/vidora_backend/internal/core/ports/services"
	"github.com/vidora-app/vidora_backend/internal/dto"
	"github.com/vidora-app/vidora_backend/internal/middleware"
)

// userHandler handles profile, channel and watch history requests.
type userHandler struct {
	userService  portssvc.UserSvcFacade
	videoService portssvc.VideoSvcFacade
}

func newUserHandler(us portssvc.UserSvcFacade, vs portssvc.VideoSvcFacade) *userHandler {
	return &userHandler{
		userService:  us,
		videoService: vs,
	}
}

// registerUserRoutes registers the authenticated user profile routes.
// The channel profile route is registered separately because it only needs
// optional authentication.
func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, videoService portssvc.VideoSvcFacade) {
	h := newUserHandler(userService, videoService)

	users := rg.Group("/users")
	{
		users.GET("/current", h.getCurrentUser)
		users.PATCH("/update-details", h.updateDetails)
		users.PATCH("/update-avatar", h.updateAvatar)
		users.PATCH("/update-cover-image", h.updateCoverImage)
		users.GET("/watch-history", h.getWatchHistory)
	}
}

// registerChannelRoutes registers the public channel profile route.
func registerChannelRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newUserHandler(userService, nil)
	rg.GET("/users/channel/:username", h.getChannelProfile)
}

// getCurrentUser godoc
// @Summary Get the authenticated user
// @Description Returns the principal resolved from the presented access token.
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/current [get]
func (h *userHandler) getCurrentUser(c *gin.Context) {
	user, ok := middleware.GetPrincipalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateDetails godoc
// @Summary Update profile details
// @Description Changes the full name and/or email of the authenticated user.
// @Tags users
// @Accept json
// @Produce json
// @Param details body dto.UpdateUserDetailsRequest true "Fields to change"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/update-details [patch]
func (h *userHandler) updateDetails(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateUserDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.UpdateUserDetails(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateAvatar godoc
// @Summary Replace the avatar image
// @Tags users
// @Accept mpfd
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/update-avatar [patch]
func (h *userHandler) updateAvatar(c *gin.Context) {
	h.updateMedia(c, "avatar", h.userService.UpdateAvatar)
}

// updateCoverImage godoc
// @Summary Replace the cover image
// @Tags users
// @Accept mpfd
// @Produce json
// @Param coverImage formData file true "Cover image"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/update-cover-image [patch]
func (h *userHandler) updateCoverImage(c *gin.Context) {
	h.updateMedia(c, "coverImage", h.userService.UpdateCoverImage)
}

func (h *userHandler) updateMedia(c *gin.Context, field string, update func(ctx context.Context, userID string, upload *dto.MediaUpload) (*domain.User, error)) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	fh, err := c.FormFile(field)
	if err != nil {
		respondWithError(c, fmt.Errorf("%s file is required: %w", field, apperrors.ErrValidation))
		return
	}
	upload, closeUpload, err := openUpload(fh)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer closeUpload()

	user, err := update(c.Request.Context(), userID, upload)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// getChannelProfile godoc
// @Summary Get a channel profile
// @Description Returns the channel's public profile with subscriber counts. When the request is authenticated, isSubscribed reflects the viewer.
// @Tags users
// @Produce json
// @Param username path string true "Channel username"
// @Success 200 {object} domain.ChannelProfile
// @Failure 404 {object} ErrorResponse
// @Router /users/channel/{username} [get]
func (h *userHandler) getChannelProfile(c *gin.Context) {
	username := c.Param("username")
	viewerID, _ := middleware.GetUserIDFromContext(c)

	profile, err := h.userService.GetChannelProfile(c.Request.Context(), username, viewerID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// getWatchHistory godoc
// @Summary Get watch history
// @Description Returns the authenticated user's watched videos, most recent first.
// @Tags users
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.WatchHistoryResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/watch-history [get]
func (h *userHandler) getWatchHistory(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.videoService.GetWatchHistory(c.Request.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, err)
		return
	}

	items := make([]dto.WatchHistoryItem, len(entries))
	for i := range entries {
		items[i] = dto.WatchHistoryItem{
			Video:         dto.ToVideoResponse(&entries[i].Video),
			OwnerUsername: entries[i].OwnerUsername,
			OwnerFullName: entries[i].OwnerFullName,
			OwnerAvatar:   entries[i].OwnerAvatar,
			WatchedAt:     entries[i].WatchedAt.Format(time.RFC3339),
		}
	}
	c.JSON(http.StatusOK, dto.WatchHistoryResponse{History: items})
}
