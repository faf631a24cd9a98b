package services

import (
	"context"

	"github.com/vidora-app/vidora_backend/internal/core/domain"
	"github.com/vidora-app/vidora_backend/internal/dto"
	"github.com/vidora-app/vidora_backend/internal/utils"
)

// TokenPair is a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenSvcFacade issues and verifies the signed, time-bound session tokens.
type TokenSvcFacade interface {
	// IssueAccessToken creates a short-lived access token for the user.
	IssueAccessToken(userID string) (string, error)

	// IssueRefreshToken creates a long-lived refresh token for the user.
	IssueRefreshToken(userID string) (string, error)

	// Verify validates the presented token string for the expected kind
	// (utils.TokenKindAccess or utils.TokenKindRefresh). It fails with
	// apperrors.ErrUnauthorized on bad signature or wrong kind, and with
	// apperrors.ErrRefreshTokenExpired when a refresh token is past expiry.
	Verify(tokenString, expectedKind string) (*utils.SessionClaims, error)
}

// AuthSvcFacade is the session authority: it orchestrates credential checks,
// token pair issuance/rotation, and request authentication against the
// single-refresh-token-per-user record in the user store.
type AuthSvcFacade interface {
	// Register creates a user record with a hashed credential and stored
	// profile media. Fails with apperrors.ErrValidation, ErrDuplicate, or
	// ErrUpload.
	Register(ctx context.Context, req dto.RegisterUserRequest, avatar *dto.MediaUpload, coverImage *dto.MediaUpload) (*domain.User, error)

	// Login verifies credentials and issues a token pair, persisting the new
	// refresh token on the user record (invalidating any prior one).
	Login(ctx context.Context, usernameOrEmail, password string) (*domain.User, *TokenPair, error)

	// Logout clears the stored refresh token unconditionally. Idempotent.
	Logout(ctx context.Context, userID string) error

	// RefreshSession verifies the presented refresh token, requires it to
	// exactly match the stored value, and rotates it for a new pair. Reuse of
	// a rotated or revoked token fails with apperrors.ErrUnauthorized.
	RefreshSession(ctx context.Context, presentedRefreshToken string) (*domain.User, *TokenPair, error)

	// AuthenticateRequest verifies the presented access token and resolves the
	// principal. Any verification failure or missing user fails with
	// apperrors.ErrUnauthorized.
	AuthenticateRequest(ctx context.Context, presentedAccessToken string) (*domain.User, error)

	// ChangePassword re-verifies the old password before replacing the hash,
	// then revokes the stored refresh token so existing sessions must log in
	// again.
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
}
