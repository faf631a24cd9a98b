package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vidora-app/vidora_backend/internal/apperrors"
	"github.com/vidora-app/vidora_backend/internal/core/domain"
	portsrepo "github.com/vidora-app/vidora_backend/internal/core/ports/repositories"
	portssvc "github.com/vidora-app/vidora_backend/internal/core/ports/services"
	"github.com/vidora-app/vidora_backend/internal/dto"
	"github.com/vidora-app/vidora_backend/internal/platform/config"
	"github.com/vidora-app/vidora_backend/internal/utils"
)

// authService is the session authority. It owns the login/logout/refresh/
// authenticate state machine over the single refresh-token field of the user
// record; no session state lives in process memory, so instances scale
// horizontally.
type authService struct {
	cfg      *config.Config
	userRepo portsrepo.UserRepositoryFacade
	tokens   portssvc.TokenSvcFacade
	media    portssvc.MediaStorage
}

// NewAuthService creates a new instance of authService.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepositoryFacade, tokens portssvc.TokenSvcFacade, media portssvc.MediaStorage) portssvc.AuthSvcFacade {
	return &authService{
		cfg:      cfg,
		userRepo: userRepo,
		tokens:   tokens,
		media:    media,
	}
}

// storeCtx bounds a single user-store call with the configured timeout.
func (s *authService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.StoreTimeout)
}

// wrapStoreErr converts deadline expiry into ErrStoreUnavailable so callers
// see an infrastructure fault, not an ambiguous failure.
func wrapStoreErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("user store timed out: %w", apperrors.ErrStoreUnavailable)
	}
	return err
}

// Register creates a user record with a hashed credential. The avatar is
// mandatory; its upload failure aborts registration with ErrUpload.
func (s *authService) Register(ctx context.Context, req dto.RegisterUserRequest, avatar *dto.MediaUpload, coverImage *dto.MediaUpload) (*domain.User, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))

	if fullName == "" || email == "" || username == "" || req.Password == "" {
		return nil, fmt.Errorf("all fields are required: %w", apperrors.ErrValidation)
	}
	if avatar == nil {
		return nil, fmt.Errorf("avatar is required: %w", apperrors.ErrValidation)
	}

	for _, identity := range []string{username, email} {
		findCtx, cancel := s.storeCtx(ctx)
		existing, err := s.userRepo.FindUserByUsernameOrEmail(findCtx, identity)
		cancel()
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, wrapStoreErr(err)
		}
		if existing != nil {
			return nil, fmt.Errorf("username or email already taken: %w", apperrors.ErrDuplicate)
		}
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	avatarURL, err := s.media.Store(ctx, "avatars", avatar)
	if err != nil {
		return nil, fmt.Errorf("failed to store avatar: %w", apperrors.ErrUpload)
	}

	coverImageURL := ""
	if coverImage != nil {
		coverImageURL, err = s.media.Store(ctx, "covers", coverImage)
		if err != nil {
			return nil, fmt.Errorf("failed to store cover image: %w", apperrors.ErrUpload)
		}
	}

	now := time.Now()
	user := domain.User{
		UserID:        uuid.NewString(),
		Username:      username,
		Email:         email,
		FullName:      fullName,
		PasswordHash:  passwordHash,
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	saveCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.userRepo.SaveUser(saveCtx, user); err != nil {
		return nil, wrapStoreErr(err)
	}

	return &user, nil
}

// Login verifies credentials and issues a fresh token pair. Persisting the new
// refresh token replaces any prior value, so at most one refresh token is ever
// valid per user.
func (s *authService) Login(ctx context.Context, usernameOrEmail, password string) (*domain.User, *portssvc.TokenPair, error) {
	identity := strings.ToLower(strings.TrimSpace(usernameOrEmail))
	if identity == "" || password == "" {
		return nil, nil, fmt.Errorf("username/email and password are required: %w", apperrors.ErrValidation)
	}

	findCtx, cancel := s.storeCtx(ctx)
	user, err := s.userRepo.FindUserByUsernameOrEmail(findCtx, identity)
	cancel()
	if err != nil {
		return nil, nil, wrapStoreErr(err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrUnauthorized)
	}

	pair, err := s.issuePair(user.UserID)
	if err != nil {
		return nil, nil, err
	}

	setCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.userRepo.SetRefreshToken(setCtx, user.UserID, pair.RefreshToken); err != nil {
		return nil, nil, wrapStoreErr(err)
	}
	user.RefreshToken = pair.RefreshToken

	return user, pair, nil
}

// Logout clears the stored refresh token. Clearing an already-empty token is
// not an error, which makes the operation idempotent.
func (s *authService) Logout(ctx context.Context, userID string) error {
	clearCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.userRepo.ClearRefreshToken(clearCtx, userID); err != nil {
		return wrapStoreErr(err)
	}
	return nil
}

// RefreshSession rotates the refresh token: the presented token must verify
// AND exactly match the stored value, and the replacement is written with a
// compare-and-swap so a concurrent rotation of the same token cannot also
// succeed.
func (s *authService) RefreshSession(ctx context.Context, presentedRefreshToken string) (*domain.User, *portssvc.TokenPair, error) {
	claims, err := s.tokens.Verify(presentedRefreshToken, utils.TokenKindRefresh)
	if err != nil {
		return nil, nil, err
	}

	findCtx, cancel := s.storeCtx(ctx)
	user, err := s.userRepo.FindUserByID(findCtx, claims.Subject)
	cancel()
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, fmt.Errorf("unknown token subject: %w", apperrors.ErrUnauthorized)
		}
		return nil, nil, wrapStoreErr(err)
	}

	// Reuse of a rotated or revoked token presents a validly signed token that
	// no longer matches the stored value. Constant-time compare keeps the
	// mismatch position from leaking.
	if user.RefreshToken == "" ||
		subtle.ConstantTimeCompare([]byte(user.RefreshToken), []byte(presentedRefreshToken)) != 1 {
		return nil, nil, fmt.Errorf("refresh token mismatch: %w", apperrors.ErrUnauthorized)
	}

	pair, err := s.issuePair(user.UserID)
	if err != nil {
		return nil, nil, err
	}

	rotateCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.userRepo.RotateRefreshToken(rotateCtx, user.UserID, presentedRefreshToken, pair.RefreshToken); err != nil {
		return nil, nil, wrapStoreErr(err)
	}
	user.RefreshToken = pair.RefreshToken

	return user, pair, nil
}

// AuthenticateRequest resolves the principal behind a presented access token.
func (s *authService) AuthenticateRequest(ctx context.Context, presentedAccessToken string) (*domain.User, error) {
	claims, err := s.tokens.Verify(presentedAccessToken, utils.TokenKindAccess)
	if err != nil {
		return nil, err
	}

	findCtx, cancel := s.storeCtx(ctx)
	defer cancel()
	user, err := s.userRepo.FindUserByID(findCtx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("user no longer exists: %w", apperrors.ErrUnauthorized)
		}
		return nil, wrapStoreErr(err)
	}

	return user, nil
}

// ChangePassword re-verifies the old password before replacing the hash, then
// revokes the stored refresh token so every existing session has to log in
// again with the new credential.
func (s *authService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("new password is required: %w", apperrors.ErrValidation)
	}

	findCtx, cancel := s.storeCtx(ctx)
	user, err := s.userRepo.FindUserByID(findCtx, userID)
	cancel()
	if err != nil {
		return wrapStoreErr(err)
	}

	if !utils.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return fmt.Errorf("old password does not match: %w", apperrors.ErrUnauthorized)
	}

	newHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	updateCtx, updateCancel := s.storeCtx(ctx)
	defer updateCancel()
	if err := s.userRepo.UpdatePasswordHash(updateCtx, userID, newHash); err != nil {
		return wrapStoreErr(err)
	}

	clearCtx, clearCancel := s.storeCtx(ctx)
	defer clearCancel()
	if err := s.userRepo.ClearRefreshToken(clearCtx, userID); err != nil {
		return wrapStoreErr(err)
	}

	return nil
}

func (s *authService) issuePair(userID string) (*portssvc.TokenPair, error) {
	accessToken, err := s.tokens.IssueAccessToken(userID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.tokens.IssueRefreshToken(userID)
	if err != nil {
		return nil, err
	}
	return &portssvc.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
