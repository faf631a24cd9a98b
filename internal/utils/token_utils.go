package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token kinds carried in the token_type claim. Access and refresh tokens are
// signed with distinct secrets, so a token of one kind never verifies as the
// other even before the claim check.
const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

// SessionClaims are the claims carried by both access and refresh tokens.
type SessionClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a token of the given kind for userID.
func GenerateSessionToken(userID, kind, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		TokenType: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateSessionToken parses the presented token string, validates its
// signature and standard claims, and checks the token kind. It returns the
// claims if everything holds, or an error otherwise. Expired tokens fail here
// regardless of signature validity.
func ParseAndValidateSessionToken(tokenString, expectedKind, secretKey string) (*SessionClaims, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Don't forget to validate the alg is what you expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err // Includes token expired, signature invalid, etc.
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.TokenType != expectedKind {
		return nil, fmt.Errorf("unexpected token type %q: %w", claims.TokenType, jwt.ErrTokenInvalidClaims)
	}
	if claims.Subject == "" {
		return nil, errors.New("token subject missing")
	}

	return claims, nil
}
