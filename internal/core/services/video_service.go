package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vidora-app/vidora_backend/internal/apperrors"
	"github.com/vidora-app/vidora_backend/internal/core/domain"
	portsrepo "github.com/vidora-app/vidora_backend/internal/core/ports/repositories"
	portssvc "github.com/vidora-app/vidora_backend/internal/core/ports/services"
	"github.com/vidora-app/vidora_backend/internal/dto"
)

// videoService implements VideoSvcFacade.
type videoService struct {
	videoRepo portsrepo.VideoRepositoryFacade
	media     portssvc.MediaStorage
}

// NewVideoService creates a new instance of videoService.
func NewVideoService(videoRepo portsrepo.VideoRepositoryFacade, media portssvc.MediaStorage) portssvc.VideoSvcFacade {
	return &videoService{
		videoRepo: videoRepo,
		media:     media,
	}
}

// CreateVideo registers metadata for an already-uploaded video file.
func (s *videoService) CreateVideo(ctx context.Context, ownerID string, req dto.CreateVideoRequest, thumbnail *dto.MediaUpload) (*domain.Video, error) {
	if thumbnail == nil {
		return nil, fmt.Errorf("thumbnail is required: %w", apperrors.ErrValidation)
	}

	thumbnailURL, err := s.media.Store(ctx, "thumbnails", thumbnail)
	if err != nil {
		return nil, fmt.Errorf("failed to store thumbnail: %w", apperrors.ErrUpload)
	}

	now := time.Now()
	video := domain.Video{
		VideoID:         uuid.NewString(),
		OwnerID:         ownerID,
		Title:           req.Title,
		Description:     req.Description,
		VideoFileURL:    req.VideoFileURL,
		ThumbnailURL:    thumbnailURL,
		DurationSeconds: req.DurationSeconds,
		IsPublished:     req.IsPublished,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.videoRepo.SaveVideo(ctx, video); err != nil {
		return nil, fmt.Errorf("failed to save video: %w", err)
	}

	return &video, nil
}

// GetVideo returns a video's metadata. A non-empty viewerID counts the view
// and appends to that viewer's watch history; both writes are best-effort and
// never fail the read.
func (s *videoService) GetVideo(ctx context.Context, videoID, viewerID string) (*domain.Video, error) {
	video, err := s.videoRepo.FindVideoByID(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if viewerID != "" {
		if err := s.videoRepo.IncrementViews(ctx, videoID); err == nil {
			video.Views++
		}
		_ = s.videoRepo.RecordWatch(ctx, viewerID, videoID)
	}

	return video, nil
}

// ListVideos returns published videos, optionally filtered by owner.
func (s *videoService) ListVideos(ctx context.Context, ownerID string, limit, offset int) ([]domain.Video, error) {
	return s.videoRepo.ListVideos(ctx, ownerID, limit, offset)
}

// GetWatchHistory returns the viewer's history, most recent first.
func (s *videoService) GetWatchHistory(ctx context.Context, userID string, limit, offset int) ([]domain.WatchHistoryEntry, error) {
	return s.videoRepo.ListWatchHistory(ctx, userID, limit, offset)
}
