package services

import (
	"context"

	"github.com/vidora-app/vidora_backend/internal/core/domain"
	"github.com/vidora-app/vidora_backend/internal/dto"
)

// VideoSvcFacade manages video metadata and per-user watch history.
type VideoSvcFacade interface {
	// CreateVideo registers metadata for an uploaded video, storing the
	// thumbnail, and returns the created record.
	CreateVideo(ctx context.Context, ownerID string, req dto.CreateVideoRequest, thumbnail *dto.MediaUpload) (*domain.Video, error)

	// GetVideo returns a video's metadata. When viewerID is non-empty the view
	// counter is incremented and a watch-history row is recorded.
	GetVideo(ctx context.Context, videoID, viewerID string) (*domain.Video, error)

	// ListVideos returns published videos, optionally filtered by owner.
	ListVideos(ctx context.Context, ownerID string, limit, offset int) ([]domain.Video, error)

	// GetWatchHistory returns the viewer's history joined with video and
	// channel data, most recent first.
	GetWatchHistory(ctx context.Context, userID string, limit, offset int) ([]domain.WatchHistoryEntry, error)
}
