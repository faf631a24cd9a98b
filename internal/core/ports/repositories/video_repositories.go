package repositories

import (
	"context"

	"github.com/vidora-app/vidora_backend/internal/core/domain"
)

// VideoReader defines read operations for video metadata
type VideoReader interface {
	// FindVideoByID retrieves a single video's metadata.
	FindVideoByID(ctx context.Context, videoID string) (*domain.Video, error)

	// ListVideos returns published videos, newest first. ownerID filters by
	// channel when non-empty.
	ListVideos(ctx context.Context, ownerID string, limit, offset int) ([]domain.Video, error)
}

// VideoWriter defines write operations for video metadata
type VideoWriter interface {
	// SaveVideo persists a new video metadata record.
	SaveVideo(ctx context.Context, video domain.Video) error

	// IncrementViews bumps the view counter by one.
	IncrementViews(ctx context.Context, videoID string) error
}

// WatchHistoryRepository records and reads per-user watch history.
type WatchHistoryRepository interface {
	// RecordWatch appends a watch-history row for the user.
	RecordWatch(ctx context.Context, userID, videoID string) error

	// ListWatchHistory joins the user's history with video and owner data,
	// most recently watched first.
	ListWatchHistory(ctx context.Context, userID string, limit, offset int) ([]domain.WatchHistoryEntry, error)
}

// VideoRepositoryFacade combines all video-related repository interfaces
type VideoRepositoryFacade interface {
	VideoReader
	VideoWriter
	WatchHistoryRepository
}
