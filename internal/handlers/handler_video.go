package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vidora-app/vidora_backend/internal/apperrors"
	portssvc "github.com/vidora-app/vidora_backend/internal/core/ports/services"
	"github.com/vidora-app/vidora_backend/internal/dto"
	"github.com/vidora-app/vidora_backend/internal/middleware"
)

// videoHandler handles video metadata requests.
type videoHandler struct {
	videoService portssvc.VideoSvcFacade
}

func newVideoHandler(vs portssvc.VideoSvcFacade) *videoHandler {
	return &videoHandler{videoService: vs}
}

// registerVideoRoutes registers the video routes. Listing and fetching are
// public; fetching with a resolved viewer also records watch history, which is
// why the group carries optional authentication. Creation requires auth.
func registerVideoRoutes(public *gin.RouterGroup, authed *gin.RouterGroup, videoService portssvc.VideoSvcFacade) {
	h := newVideoHandler(videoService)

	videos := public.Group("/videos")
	{
		videos.GET("", h.listVideos)
		videos.GET("/:videoID", h.getVideo)
	}

	authed.POST("/videos", h.createVideo)
}

// createVideo godoc
// @Summary Register video metadata
// @Description Records the metadata of an already-uploaded video file. The thumbnail image is stored by the backend.
// @Tags videos
// @Accept mpfd
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param videoFileURL formData string true "URL of the uploaded video file"
// @Param durationSeconds formData number true "Duration in seconds"
// @Param isPublished formData boolean false "Publish immediately"
// @Param thumbnail formData file true "Thumbnail image"
// @Success 201 {object} dto.VideoResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security BearerAuth
// @Router /videos [post]
func (h *videoHandler) createVideo(c *gin.Context) {
	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	fh, err := c.FormFile("thumbnail")
	if err != nil {
		respondWithError(c, fmt.Errorf("thumbnail file is required: %w", apperrors.ErrValidation))
		return
	}
	thumbnail, closeThumbnail, err := openUpload(fh)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer closeThumbnail()

	video, err := h.videoService.CreateVideo(c.Request.Context(), ownerID, req, thumbnail)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToVideoResponse(video))
}

// getVideo godoc
// @Summary Get a video
// @Description Returns video metadata. Authenticated requests increment the view counter and record watch history.
// @Tags videos
// @Produce json
// @Param videoID path string true "Video ID"
// @Success 200 {object} dto.VideoResponse
// @Failure 404 {object} ErrorResponse
// @Router /videos/{videoID} [get]
func (h *videoHandler) getVideo(c *gin.Context) {
	viewerID, _ := middleware.GetUserIDFromContext(c)

	video, err := h.videoService.GetVideo(c.Request.Context(), c.Param("videoID"), viewerID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToVideoResponse(video))
}

// listVideos godoc
// @Summary List published videos
// @Tags videos
// @Produce json
// @Param owner query string false "Filter by owner user ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListVideosResponse
// @Router /videos [get]
func (h *videoHandler) listVideos(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	videos, err := h.videoService.ListVideos(c.Request.Context(), c.Query("owner"), params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, err)
		return
	}

	out := make([]dto.VideoResponse, len(videos))
	for i := range videos {
		out[i] = dto.ToVideoResponse(&videos[i])
	}
	c.JSON(http.StatusOK, dto.ListVideosResponse{Videos: out})
}
