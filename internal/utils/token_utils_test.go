package utils_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidora-app/vidora_backend/internal/utils"
)

const (
	testAccessSecret  = "access-secret"
	testRefreshSecret = "refresh-secret"
	testIssuer        = "vidora-test"
)

func TestGenerateAndValidateSessionToken(t *testing.T) {
	token, err := utils.GenerateSessionToken("user-1", utils.TokenKindAccess, testAccessSecret, time.Hour, testIssuer)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.ParseAndValidateSessionToken(token, utils.TokenKindAccess, testAccessSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, utils.TokenKindAccess, claims.TokenType)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestValidateSessionToken_WrongKind(t *testing.T) {
	token, err := utils.GenerateSessionToken("user-1", utils.TokenKindRefresh, testRefreshSecret, time.Hour, testIssuer)
	require.NoError(t, err)

	_, err = utils.ParseAndValidateSessionToken(token, utils.TokenKindAccess, testRefreshSecret)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidClaims)
}

func TestValidateSessionToken_WrongSecret(t *testing.T) {
	token, err := utils.GenerateSessionToken("user-1", utils.TokenKindAccess, testAccessSecret, time.Hour, testIssuer)
	require.NoError(t, err)

	_, err = utils.ParseAndValidateSessionToken(token, utils.TokenKindAccess, "some-other-secret")
	require.Error(t, err)
}

func TestValidateSessionToken_Expired(t *testing.T) {
	token, err := utils.GenerateSessionToken("user-1", utils.TokenKindAccess, testAccessSecret, -time.Minute, testIssuer)
	require.NoError(t, err)

	_, err = utils.ParseAndValidateSessionToken(token, utils.TokenKindAccess, testAccessSecret)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateSessionToken_EmptySubject(t *testing.T) {
	token, err := utils.GenerateSessionToken("", utils.TokenKindAccess, testAccessSecret, time.Hour, testIssuer)
	require.NoError(t, err)

	_, err = utils.ParseAndValidateSessionToken(token, utils.TokenKindAccess, testAccessSecret)
	require.Error(t, err)
}

func TestValidateSessionToken_Garbage(t *testing.T) {
	_, err := utils.ParseAndValidateSessionToken("definitely.not.ajwt", utils.TokenKindAccess, testAccessSecret)
	require.Error(t, err)
}

// A token signed with "none" must never validate, even if an attacker crafts
// the right claims.
func TestValidateSessionToken_UnsignedAlgRejected(t *testing.T) {
	claims := utils.SessionClaims{
		TokenType: utils.TokenKindAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = utils.ParseAndValidateSessionToken(token, utils.TokenKindAccess, testAccessSecret)
	require.Error(t, err)
}
