package services

import (
	"context"

	"github.com/vidora-app/vidora_backend/internal/core/domain"
	"github.com/vidora-app/vidora_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetChannelProfile returns the aggregated channel view for username, with
	// subscription state computed relative to viewerID.
	GetChannelProfile(ctx context.Context, username, viewerID string) (*domain.ChannelProfile, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// UpdateUserDetails changes full name and/or email.
	UpdateUserDetails(ctx context.Context, userID string, req dto.UpdateUserDetailsRequest) (*domain.User, error)

	// UpdateAvatar stores the uploaded image and persists its URL.
	UpdateAvatar(ctx context.Context, userID string, upload *dto.MediaUpload) (*domain.User, error)

	// UpdateCoverImage stores the uploaded image and persists its URL.
	UpdateCoverImage(ctx context.Context, userID string, upload *dto.MediaUpload) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
