package services

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vidora-app/vidora_backend/internal/apperrors"
	portssvc "github.com/vidora-app/vidora_backend/internal/core/ports/services"
	"github.com/vidora-app/vidora_backend/internal/platform/config"
	"github.com/vidora-app/vidora_backend/internal/utils"
)

// tokenService implements TokenSvcFacade. Access and refresh tokens are signed
// JWTs with distinct secrets and lifetimes; the secrets are read-only
// configuration loaded at startup.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// IssueAccessToken creates a short-lived access token for the given user.
func (s *tokenService) IssueAccessToken(userID string) (string, error) {
	token, err := utils.GenerateSessionToken(userID, utils.TokenKindAccess, s.cfg.AccessTokenSecret, s.cfg.AccessTokenDuration, s.cfg.TokenIssuer)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return token, nil
}

// IssueRefreshToken creates a long-lived refresh token for the given user.
func (s *tokenService) IssueRefreshToken(userID string) (string, error) {
	token, err := utils.GenerateSessionToken(userID, utils.TokenKindRefresh, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenDuration, s.cfg.TokenIssuer)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return token, nil
}

// Verify validates the presented token string against the secret for the
// expected kind. Failure modes (bad signature, wrong kind, malformed token)
// collapse into ErrUnauthorized: verification fails closed and callers never
// learn why. The one distinguished case is an expired refresh token, which
// surfaces ErrRefreshTokenExpired so clients know to log in again.
func (s *tokenService) Verify(tokenString, expectedKind string) (*utils.SessionClaims, error) {
	var secret string
	switch expectedKind {
	case utils.TokenKindAccess:
		secret = s.cfg.AccessTokenSecret
	case utils.TokenKindRefresh:
		secret = s.cfg.RefreshTokenSecret
	default:
		return nil, fmt.Errorf("unknown token kind %q: %w", expectedKind, apperrors.ErrUnauthorized)
	}

	claims, err := utils.ParseAndValidateSessionToken(tokenString, expectedKind, secret)
	if err != nil {
		if expectedKind == utils.TokenKindRefresh && errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("token verification failed: %w", apperrors.ErrRefreshTokenExpired)
		}
		return nil, fmt.Errorf("token verification failed: %w", apperrors.ErrUnauthorized)
	}
	return claims, nil
}
