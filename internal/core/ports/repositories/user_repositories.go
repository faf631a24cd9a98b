package repositories

import (
	"context"

	"github.com/vidora-app/vidora_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsername retrieves a user by their unique username.
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindUserByUsernameOrEmail retrieves a user matching either identity field.
	FindUserByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the
	// username or email is already taken.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUserDetails updates mutable profile fields (full name, email).
	UpdateUserDetails(ctx context.Context, user domain.User) error

	// UpdateAvatarURL replaces the stored avatar URL.
	UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error

	// UpdateCoverImageURL replaces the stored cover image URL.
	UpdateCoverImageURL(ctx context.Context, userID, coverImageURL string) error

	// UpdatePasswordHash replaces the stored credential hash.
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error
}

// SessionTokenWriter defines operations over the single stored refresh token.
type SessionTokenWriter interface {
	// SetRefreshToken stores token as the user's only valid refresh token,
	// unconditionally replacing whatever was there.
	SetRefreshToken(ctx context.Context, userID, token string) error

	// RotateRefreshToken atomically replaces oldToken with newToken. It fails
	// with apperrors.ErrUnauthorized when the stored value no longer equals
	// oldToken, so two concurrent rotations of the same token cannot both win.
	RotateRefreshToken(ctx context.Context, userID, oldToken, newToken string) error

	// ClearRefreshToken removes the stored refresh token. Idempotent.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	SessionTokenWriter
}
