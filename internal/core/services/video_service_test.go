package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vidora-app/vidora_backend/internal/apperrors"
	"github.com/vidora-app/vidora_backend/internal/core/domain"
	portssvc "github.com/vidora-app/vidora_backend/internal/core/ports/services"
	"github.com/vidora-app/vidora_backend/internal/core/services"
	"github.com/vidora-app/vidora_backend/internal/dto"
)

// --- Mock VideoRepository ---
type MockVideoRepository struct {
	mock.Mock
	SaveVideoFn        func(ctx context.Context, video domain.Video) error
	FindVideoByIDFn    func(ctx context.Context, videoID string) (*domain.Video, error)
	ListVideosFn       func(ctx context.Context, ownerID string, limit, offset int) ([]domain.Video, error)
	IncrementViewsFn   func(ctx context.Context, videoID string) error
	RecordWatchFn      func(ctx context.Context, userID, videoID string) error
	ListWatchHistoryFn func(ctx context.Context, userID string, limit, offset int) ([]domain.WatchHistoryEntry, error)
}

func (m *MockVideoRepository) SaveVideo(ctx context.Context, video domain.Video) error {
	if m.SaveVideoFn != nil {
		return m.SaveVideoFn(ctx, video)
	}
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *MockVideoRepository) FindVideoByID(ctx context.Context, videoID string) (*domain.Video, error) {
	if m.FindVideoByIDFn != nil {
		return m.FindVideoByIDFn(ctx, videoID)
	}
	args := m.Called(ctx, videoID)
	var video *domain.Video
	if args.Get(0) != nil {
		video = args.Get(0).(*domain.Video)
	}
	return video, args.Error(1)
}

func (m *MockVideoRepository) ListVideos(ctx context.Context, ownerID string, limit, offset int) ([]domain.Video, error) {
	if m.ListVideosFn != nil {
		return m.ListVideosFn(ctx, ownerID, limit, offset)
	}
	args := m.Called(ctx, ownerID, limit, offset)
	var videos []domain.Video
	if args.Get(0) != nil {
		videos = args.Get(0).([]domain.Video)
	}
	return videos, args.Error(1)
}

func (m *MockVideoRepository) IncrementViews(ctx context.Context, videoID string) error {
	if m.IncrementViewsFn != nil {
		return m.IncrementViewsFn(ctx, videoID)
	}
	args := m.Called(ctx, videoID)
	return args.Error(0)
}

func (m *MockVideoRepository) RecordWatch(ctx context.Context, userID, videoID string) error {
	if m.RecordWatchFn != nil {
		return m.RecordWatchFn(ctx, userID, videoID)
	}
	args := m.Called(ctx, userID, videoID)
	return args.Error(0)
}

func (m *MockVideoRepository) ListWatchHistory(ctx context.Context, userID string, limit, offset int) ([]domain.WatchHistoryEntry, error) {
	if m.ListWatchHistoryFn != nil {
		return m.ListWatchHistoryFn(ctx, userID, limit, offset)
	}
	args := m.Called(ctx, userID, limit, offset)
	var entries []domain.WatchHistoryEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.WatchHistoryEntry)
	}
	return entries, args.Error(1)
}

type VideoServiceTestSuite struct {
	suite.Suite
	mockVideoRepo *MockVideoRepository
	mockMedia     *MockMediaStorage
	service       portssvc.VideoSvcFacade
}

func (s *VideoServiceTestSuite) SetupTest() {
	s.mockVideoRepo = new(MockVideoRepository)
	s.mockMedia = new(MockMediaStorage)
	s.service = services.NewVideoService(s.mockVideoRepo, s.mockMedia)
}

func TestVideoService(t *testing.T) {
	suite.Run(t, new(VideoServiceTestSuite))
}

func (s *VideoServiceTestSuite) createRequest() dto.CreateVideoRequest {
	return dto.CreateVideoRequest{
		Title:           "First upload",
		Description:     "A description",
		VideoFileURL:    "https://media.test/videos/file.mp4",
		DurationSeconds: 120.5,
		IsPublished:     true,
	}
}

func (s *VideoServiceTestSuite) TestCreateVideo_Success() {
	ctx := context.Background()
	s.mockMedia.StoreFn = func(ctx context.Context, folder string, upload *dto.MediaUpload) (string, error) {
		s.Equal("thumbnails", folder)
		return "https://media.test/thumbnails/obj.png", nil
	}

	var saved domain.Video
	s.mockVideoRepo.SaveVideoFn = func(ctx context.Context, video domain.Video) error {
		saved = video
		return nil
	}

	video, err := s.service.CreateVideo(ctx, "owner-1", s.createRequest(), testUpload())

	s.Require().NoError(err)
	s.NotEmpty(video.VideoID)
	s.Equal("owner-1", video.OwnerID)
	s.Equal("https://media.test/thumbnails/obj.png", video.ThumbnailURL)
	s.True(video.IsPublished)
	s.Equal(video.VideoID, saved.VideoID)
}

func (s *VideoServiceTestSuite) TestCreateVideo_MissingThumbnail() {
	_, err := s.service.CreateVideo(context.Background(), "owner-1", s.createRequest(), nil)
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (s *VideoServiceTestSuite) TestCreateVideo_ThumbnailUploadFails() {
	s.mockMedia.StoreFn = func(ctx context.Context, folder string, upload *dto.MediaUpload) (string, error) {
		return "", errors.New("bucket unreachable")
	}

	_, err := s.service.CreateVideo(context.Background(), "owner-1", s.createRequest(), testUpload())
	s.Require().ErrorIs(err, apperrors.ErrUpload)
}

func (s *VideoServiceTestSuite) TestGetVideo_AuthenticatedViewerCountsView() {
	ctx := context.Background()
	stored := &domain.Video{VideoID: "video-1", OwnerID: "owner-1", Views: 7}

	s.mockVideoRepo.FindVideoByIDFn = func(ctx context.Context, videoID string) (*domain.Video, error) {
		v := *stored
		return &v, nil
	}

	incremented := false
	s.mockVideoRepo.IncrementViewsFn = func(ctx context.Context, videoID string) error {
		incremented = true
		return nil
	}

	var watchedBy string
	s.mockVideoRepo.RecordWatchFn = func(ctx context.Context, userID, videoID string) error {
		watchedBy = userID
		return nil
	}

	video, err := s.service.GetVideo(ctx, "video-1", "viewer-1")

	s.Require().NoError(err)
	s.True(incremented)
	s.Equal("viewer-1", watchedBy)
	s.Equal(int64(8), video.Views)
}

func (s *VideoServiceTestSuite) TestGetVideo_AnonymousViewerDoesNotCount() {
	ctx := context.Background()
	s.mockVideoRepo.FindVideoByIDFn = func(ctx context.Context, videoID string) (*domain.Video, error) {
		return &domain.Video{VideoID: "video-1", Views: 7}, nil
	}
	s.mockVideoRepo.IncrementViewsFn = func(ctx context.Context, videoID string) error {
		s.Fail("IncrementViews must not be called for anonymous viewers")
		return nil
	}

	video, err := s.service.GetVideo(ctx, "video-1", "")

	s.Require().NoError(err)
	s.Equal(int64(7), video.Views)
}

func (s *VideoServiceTestSuite) TestGetVideo_WatchRecordFailureDoesNotFailRead() {
	ctx := context.Background()
	s.mockVideoRepo.FindVideoByIDFn = func(ctx context.Context, videoID string) (*domain.Video, error) {
		return &domain.Video{VideoID: "video-1"}, nil
	}
	s.mockVideoRepo.IncrementViewsFn = func(ctx context.Context, videoID string) error {
		return errors.New("write failed")
	}
	s.mockVideoRepo.RecordWatchFn = func(ctx context.Context, userID, videoID string) error {
		return errors.New("write failed")
	}

	video, err := s.service.GetVideo(ctx, "video-1", "viewer-1")

	s.Require().NoError(err)
	s.Equal(int64(0), video.Views)
}

func (s *VideoServiceTestSuite) TestGetVideo_NotFound() {
	s.mockVideoRepo.FindVideoByIDFn = func(ctx context.Context, videoID string) (*domain.Video, error) {
		return nil, apperrors.ErrNotFound
	}

	_, err := s.service.GetVideo(context.Background(), "ghost", "")
	s.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (s *VideoServiceTestSuite) TestGetWatchHistory() {
	ctx := context.Background()
	watchedAt := time.Now()
	s.mockVideoRepo.ListWatchHistoryFn = func(ctx context.Context, userID string, limit, offset int) ([]domain.WatchHistoryEntry, error) {
		s.Equal("viewer-1", userID)
		return []domain.WatchHistoryEntry{{
			Video:         domain.Video{VideoID: "video-1"},
			OwnerUsername: "bobchannel",
			WatchedAt:     watchedAt,
		}}, nil
	}

	entries, err := s.service.GetWatchHistory(ctx, "viewer-1", 20, 0)

	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal("bobchannel", entries[0].OwnerUsername)
}
