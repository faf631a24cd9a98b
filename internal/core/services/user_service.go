package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vidora-app/vidora_backend/internal/apperrors"
	"github.com/vidora-app/vidora_backend/internal/core/domain"
	portsrepo "github.com/vidora-app/vidora_backend/internal/core/ports/repositories"
	portssvc "github.com/vidora-app/vidora_backend/internal/core/ports/services"
	"github.com/vidora-app/vidora_backend/internal/dto"
)

// userService implements UserSvcFacade: profile reads and mutations plus the
// aggregated channel view, with a read-through cache in front of the
// aggregation query.
type userService struct {
	userRepo portsrepo.UserRepositoryFacade
	subRepo  portsrepo.SubscriptionRepositoryFacade
	media    portssvc.MediaStorage
	cache    portssvc.ChannelProfileCache
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, subRepo portsrepo.SubscriptionRepositoryFacade, media portssvc.MediaStorage, cache portssvc.ChannelProfileCache) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		subRepo:  subRepo,
		media:    media,
		cache:    cache,
	}
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

// GetChannelProfile returns the aggregated channel view. Cache outages fall
// through to the store; the read path never fails on the cache.
func (s *userService) GetChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, fmt.Errorf("username is required: %w", apperrors.ErrValidation)
	}

	if payload, ok := s.cache.GetChannelProfile(ctx, username, viewerID); ok {
		var profile domain.ChannelProfile
		if err := json.Unmarshal(payload, &profile); err == nil {
			return &profile, nil
		}
		// Corrupt entry: drop it and fall through to the store.
		s.cache.InvalidateChannel(ctx, username)
	}

	profile, err := s.subRepo.GetChannelProfile(ctx, username, viewerID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(profile); err == nil {
		s.cache.SetChannelProfile(ctx, username, viewerID, payload)
	}

	return profile, nil
}

// UpdateUserDetails changes full name and/or email.
func (s *userService) UpdateUserDetails(ctx context.Context, userID string, req dto.UpdateUserDetailsRequest) (*domain.User, error) {
	if req.FullName == nil && req.Email == nil {
		return nil, fmt.Errorf("nothing to update: %w", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		fullName := strings.TrimSpace(*req.FullName)
		if fullName == "" {
			return nil, fmt.Errorf("fullName must not be empty: %w", apperrors.ErrValidation)
		}
		user.FullName = fullName
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email == "" {
			return nil, fmt.Errorf("email must not be empty: %w", apperrors.ErrValidation)
		}
		user.Email = email
	}
	user.UpdatedAt = time.Now()

	if err := s.userRepo.UpdateUserDetails(ctx, *user); err != nil {
		return nil, err
	}

	s.cache.InvalidateChannel(ctx, user.Username)
	return user, nil
}

// UpdateAvatar stores the uploaded image and persists its URL.
func (s *userService) UpdateAvatar(ctx context.Context, userID string, upload *dto.MediaUpload) (*domain.User, error) {
	return s.updateMedia(ctx, userID, upload, "avatars", s.userRepo.UpdateAvatarURL, func(u *domain.User, url string) { u.AvatarURL = url })
}

// UpdateCoverImage stores the uploaded image and persists its URL.
func (s *userService) UpdateCoverImage(ctx context.Context, userID string, upload *dto.MediaUpload) (*domain.User, error) {
	return s.updateMedia(ctx, userID, upload, "covers", s.userRepo.UpdateCoverImageURL, func(u *domain.User, url string) { u.CoverImageURL = url })
}

func (s *userService) updateMedia(ctx context.Context, userID string, upload *dto.MediaUpload, folder string, persist func(context.Context, string, string) error, apply func(*domain.User, string)) (*domain.User, error) {
	if upload == nil {
		return nil, fmt.Errorf("file is required: %w", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.media.Store(ctx, folder, upload)
	if err != nil {
		return nil, fmt.Errorf("failed to store media: %w", apperrors.ErrUpload)
	}

	if err := persist(ctx, userID, url); err != nil {
		return nil, err
	}
	apply(user, url)

	s.cache.InvalidateChannel(ctx, user.Username)
	return user, nil
}
