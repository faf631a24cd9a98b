package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vidora-app/vidora_backend/internal/apperrors"
	"github.com/vidora-app/vidora_backend/internal/core/domain"
	portssvc "github.com/vidora-app/vidora_backend/internal/core/ports/services"
	"github.com/vidora-app/vidora_backend/internal/core/services"
	"github.com/vidora-app/vidora_backend/internal/dto"
	"github.com/vidora-app/vidora_backend/internal/platform/config"
	"github.com/vidora-app/vidora_backend/internal/utils"
)

// --- Mock UserRepository (based on authService usage) ---
type MockUserRepository struct {
	mock.Mock
	FindUserByIDFn              func(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsernameFn        func(ctx context.Context, username string) (*domain.User, error)
	FindUserByUsernameOrEmailFn func(ctx context.Context, usernameOrEmail string) (*domain.User, error)
	SaveUserFn                  func(ctx context.Context, user domain.User) error
	UpdateUserDetailsFn         func(ctx context.Context, user domain.User) error
	UpdateAvatarURLFn           func(ctx context.Context, userID, avatarURL string) error
	UpdateCoverImageURLFn       func(ctx context.Context, userID, coverImageURL string) error
	UpdatePasswordHashFn        func(ctx context.Context, userID, passwordHash string) error
	SetRefreshTokenFn           func(ctx context.Context, userID, token string) error
	RotateRefreshTokenFn        func(ctx context.Context, userID, oldToken, newToken string) error
	ClearRefreshTokenFn         func(ctx context.Context, userID string) error
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if m.FindUserByIDFn != nil {
		return m.FindUserByIDFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.FindUserByUsernameFn != nil {
		return m.FindUserByUsernameFn(ctx, username)
	}
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*domain.User, error) {
	if m.FindUserByUsernameOrEmailFn != nil {
		return m.FindUserByUsernameOrEmailFn(ctx, usernameOrEmail)
	}
	args := m.Called(ctx, usernameOrEmail)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	if m.SaveUserFn != nil {
		return m.SaveUserFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUserDetails(ctx context.Context, user domain.User) error {
	if m.UpdateUserDetailsFn != nil {
		return m.UpdateUserDetailsFn(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error {
	if m.UpdateAvatarURLFn != nil {
		return m.UpdateAvatarURLFn(ctx, userID, avatarURL)
	}
	args := m.Called(ctx, userID, avatarURL)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateCoverImageURL(ctx context.Context, userID, coverImageURL string) error {
	if m.UpdateCoverImageURLFn != nil {
		return m.UpdateCoverImageURLFn(ctx, userID, coverImageURL)
	}
	args := m.Called(ctx, userID, coverImageURL)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	if m.UpdatePasswordHashFn != nil {
		return m.UpdatePasswordHashFn(ctx, userID, passwordHash)
	}
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) SetRefreshToken(ctx context.Context, userID, token string) error {
	if m.SetRefreshTokenFn != nil {
		return m.SetRefreshTokenFn(ctx, userID, token)
	}
	args := m.Called(ctx, userID, token)
	return args.Error(0)
}

func (m *MockUserRepository) RotateRefreshToken(ctx context.Context, userID, oldToken, newToken string) error {
	if m.RotateRefreshTokenFn != nil {
		return m.RotateRefreshTokenFn(ctx, userID, oldToken, newToken)
	}
	args := m.Called(ctx, userID, oldToken, newToken)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	if m.ClearRefreshTokenFn != nil {
		return m.ClearRefreshTokenFn(ctx, userID)
	}
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock MediaStorage ---
type MockMediaStorage struct {
	mock.Mock
	StoreFn func(ctx context.Context, folder string, upload *dto.MediaUpload) (string, error)
}

func (m *MockMediaStorage) Store(ctx context.Context, folder string, upload *dto.MediaUpload) (string, error) {
	if m.StoreFn != nil {
		return m.StoreFn(ctx, folder, upload)
	}
	args := m.Called(ctx, folder, upload)
	return args.String(0), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		AccessTokenSecret:    "test-access-secret",
		AccessTokenDuration:  time.Hour,
		RefreshTokenSecret:   "test-refresh-secret",
		RefreshTokenDuration: 24 * time.Hour,
		TokenIssuer:          "vidora-test",
		StoreTimeout:         time.Second,
	}
}

func testUpload() *dto.MediaUpload {
	return &dto.MediaUpload{
		Reader:      strings.NewReader("fake image bytes"),
		Size:        16,
		Filename:    "avatar.png",
		ContentType: "image/png",
	}
}

type AuthServiceTestSuite struct {
	suite.Suite
	cfg          *config.Config
	mockUserRepo *MockUserRepository
	mockMedia    *MockMediaStorage
	tokenSvc     portssvc.TokenSvcFacade
	service      portssvc.AuthSvcFacade
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.cfg = testConfig()
	s.mockUserRepo = new(MockUserRepository)
	s.mockMedia = new(MockMediaStorage)
	s.tokenSvc = services.NewTokenService(s.cfg)
	s.service = services.NewAuthService(s.cfg, s.mockUserRepo, s.tokenSvc, s.mockMedia)
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (s *AuthServiceTestSuite) registerRequest() dto.RegisterUserRequest {
	return dto.RegisterUserRequest{
		FullName: "Alice Example",
		Email:    "alice@x.com",
		Username: "alice",
		Password: "secret123",
	}
}

func (s *AuthServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := s.registerRequest()

	s.mockUserRepo.FindUserByUsernameOrEmailFn = func(ctx context.Context, identity string) (*domain.User, error) {
		return nil, apperrors.ErrNotFound
	}
	s.mockMedia.StoreFn = func(ctx context.Context, folder string, upload *dto.MediaUpload) (string, error) {
		return "https://media.test/" + folder + "/obj.png", nil
	}

	var saved domain.User
	s.mockUserRepo.SaveUserFn = func(ctx context.Context, user domain.User) error {
		saved = user
		return nil
	}

	created, err := s.service.Register(ctx, req, testUpload(), nil)

	s.Require().NoError(err)
	s.Require().NotNil(created)
	s.Equal("alice", created.Username)
	s.Equal("alice@x.com", created.Email)
	s.NotEmpty(created.UserID)
	s.Equal("https://media.test/avatars/obj.png", created.AvatarURL)
	s.Empty(created.CoverImageURL)

	// The stored record must never contain the plaintext password.
	s.NotEqual(req.Password, saved.PasswordHash)
	s.NotContains(saved.PasswordHash, req.Password)
	s.True(utils.CheckPasswordHash(req.Password, saved.PasswordHash))
	s.False(utils.CheckPasswordHash("not-the-password", saved.PasswordHash))
	s.Empty(saved.RefreshToken)
}

func (s *AuthServiceTestSuite) TestRegister_DuplicateUsername() {
	ctx := context.Background()
	existing := &domain.User{UserID: "existing", Username: "alice"}
	s.mockUserRepo.FindUserByUsernameOrEmailFn = func(ctx context.Context, identity string) (*domain.User, error) {
		return existing, nil
	}

	created, err := s.service.Register(ctx, s.registerRequest(), testUpload(), nil)

	s.Require().ErrorIs(err, apperrors.ErrDuplicate)
	s.Nil(created)
}

func (s *AuthServiceTestSuite) TestRegister_MissingAvatar() {
	created, err := s.service.Register(context.Background(), s.registerRequest(), nil, nil)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.Nil(created)
}

func (s *AuthServiceTestSuite) TestRegister_MissingFields() {
	req := s.registerRequest()
	req.Email = "   "

	created, err := s.service.Register(context.Background(), req, testUpload(), nil)

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.Nil(created)
}

func (s *AuthServiceTestSuite) TestRegister_AvatarUploadFails() {
	ctx := context.Background()
	s.mockUserRepo.FindUserByUsernameOrEmailFn = func(ctx context.Context, identity string) (*domain.User, error) {
		return nil, apperrors.ErrNotFound
	}
	s.mockMedia.StoreFn = func(ctx context.Context, folder string, upload *dto.MediaUpload) (string, error) {
		return "", apperrors.ErrUpload
	}

	created, err := s.service.Register(ctx, s.registerRequest(), testUpload(), nil)

	s.Require().ErrorIs(err, apperrors.ErrUpload)
	s.Nil(created)
}

// storedAlice returns a persisted-looking user with a real bcrypt hash.
func (s *AuthServiceTestSuite) storedAlice(password string) *domain.User {
	hash, err := utils.HashPassword(password)
	s.Require().NoError(err)
	return &domain.User{
		UserID:       "user-alice",
		Username:     "alice",
		Email:        "alice@x.com",
		FullName:     "Alice Example",
		PasswordHash: hash,
	}
}

func (s *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	alice := s.storedAlice("secret123")

	s.mockUserRepo.FindUserByUsernameOrEmailFn = func(ctx context.Context, identity string) (*domain.User, error) {
		s.Equal("alice", identity)
		return alice, nil
	}

	var storedToken string
	s.mockUserRepo.SetRefreshTokenFn = func(ctx context.Context, userID, token string) error {
		s.Equal(alice.UserID, userID)
		storedToken = token
		return nil
	}

	user, pair, err := s.service.Login(ctx, "Alice", "secret123")

	s.Require().NoError(err)
	s.Require().NotNil(pair)
	s.Equal(alice.UserID, user.UserID)

	// Both tokens verify for their kind immediately after issuance.
	accessClaims, err := s.tokenSvc.Verify(pair.AccessToken, utils.TokenKindAccess)
	s.Require().NoError(err)
	s.Equal(alice.UserID, accessClaims.Subject)

	refreshClaims, err := s.tokenSvc.Verify(pair.RefreshToken, utils.TokenKindRefresh)
	s.Require().NoError(err)
	s.Equal(alice.UserID, refreshClaims.Subject)

	// The issued refresh token is exactly what was persisted.
	s.Equal(pair.RefreshToken, storedToken)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	alice := s.storedAlice("secret123")
	s.mockUserRepo.FindUserByUsernameOrEmailFn = func(ctx context.Context, identity string) (*domain.User, error) {
		return alice, nil
	}

	user, pair, err := s.service.Login(ctx, "alice", "wrong-password")

	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	s.Nil(user)
	s.Nil(pair)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownUser() {
	s.mockUserRepo.FindUserByUsernameOrEmailFn = func(ctx context.Context, identity string) (*domain.User, error) {
		return nil, apperrors.ErrNotFound
	}

	user, pair, err := s.service.Login(context.Background(), "nobody", "whatever")

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(user)
	s.Nil(pair)
}

func (s *AuthServiceTestSuite) TestLogin_EmptyCredentials() {
	_, _, err := s.service.Login(context.Background(), "", "")
	s.Require().ErrorIs(err, apperrors.ErrValidation)
}

// stateStore wires the mock to an in-memory refresh token field with
// compare-and-swap rotation, mirroring the real repository semantics.
func (s *AuthServiceTestSuite) stateStore(alice *domain.User) {
	s.mockUserRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		if userID != alice.UserID {
			return nil, apperrors.ErrNotFound
		}
		u := *alice
		return &u, nil
	}
	s.mockUserRepo.FindUserByUsernameOrEmailFn = func(ctx context.Context, identity string) (*domain.User, error) {
		u := *alice
		return &u, nil
	}
	s.mockUserRepo.SetRefreshTokenFn = func(ctx context.Context, userID, token string) error {
		alice.RefreshToken = token
		return nil
	}
	s.mockUserRepo.RotateRefreshTokenFn = func(ctx context.Context, userID, oldToken, newToken string) error {
		if alice.RefreshToken != oldToken {
			return apperrors.ErrUnauthorized
		}
		alice.RefreshToken = newToken
		return nil
	}
	s.mockUserRepo.ClearRefreshTokenFn = func(ctx context.Context, userID string) error {
		alice.RefreshToken = ""
		return nil
	}
}

func (s *AuthServiceTestSuite) TestRefreshSession_RotationRejectsReuse() {
	ctx := context.Background()
	alice := s.storedAlice("secret123")
	s.stateStore(alice)

	_, pair, err := s.service.Login(ctx, "alice", "secret123")
	s.Require().NoError(err)
	firstRefresh := pair.RefreshToken

	// First rotation succeeds and replaces the stored token.
	_, rotated, err := s.service.RefreshSession(ctx, firstRefresh)
	s.Require().NoError(err)
	s.NotEqual(firstRefresh, rotated.RefreshToken)
	s.Equal(rotated.RefreshToken, alice.RefreshToken)

	// Reusing the first token must fail: it is validly signed but no longer
	// matches the stored value.
	_, _, err = s.service.RefreshSession(ctx, firstRefresh)
	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestRefreshSession_AfterLogout() {
	ctx := context.Background()
	alice := s.storedAlice("secret123")
	s.stateStore(alice)

	_, pair, err := s.service.Login(ctx, "alice", "secret123")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Logout(ctx, alice.UserID))
	s.Empty(alice.RefreshToken)

	_, _, err = s.service.RefreshSession(ctx, pair.RefreshToken)
	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestRefreshSession_ExpiredToken() {
	expired, err := utils.GenerateSessionToken("user-alice", utils.TokenKindRefresh,
		s.cfg.RefreshTokenSecret, -time.Minute, s.cfg.TokenIssuer)
	s.Require().NoError(err)

	_, _, err = s.service.RefreshSession(context.Background(), expired)
	s.Require().ErrorIs(err, apperrors.ErrRefreshTokenExpired)
}

func (s *AuthServiceTestSuite) TestRefreshSession_AccessTokenRejected() {
	ctx := context.Background()
	alice := s.storedAlice("secret123")
	s.stateStore(alice)

	_, pair, err := s.service.Login(ctx, "alice", "secret123")
	s.Require().NoError(err)

	// An access token is the wrong kind and signed with the wrong secret.
	_, _, err = s.service.RefreshSession(ctx, pair.AccessToken)
	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestRefreshSession_StoreTimeout() {
	ctx := context.Background()
	token, err := utils.GenerateSessionToken("user-alice", utils.TokenKindRefresh,
		s.cfg.RefreshTokenSecret, time.Hour, s.cfg.TokenIssuer)
	s.Require().NoError(err)

	s.mockUserRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		return nil, context.DeadlineExceeded
	}

	_, _, err = s.service.RefreshSession(ctx, token)
	s.Require().ErrorIs(err, apperrors.ErrStoreUnavailable)
}

func (s *AuthServiceTestSuite) TestAuthenticateRequest_Success() {
	ctx := context.Background()
	alice := s.storedAlice("secret123")
	s.stateStore(alice)

	_, pair, err := s.service.Login(ctx, "alice", "secret123")
	s.Require().NoError(err)

	principal, err := s.service.AuthenticateRequest(ctx, pair.AccessToken)
	s.Require().NoError(err)
	s.Equal(alice.UserID, principal.UserID)
}

func (s *AuthServiceTestSuite) TestAuthenticateRequest_UserGone() {
	token, err := utils.GenerateSessionToken("ghost", utils.TokenKindAccess,
		s.cfg.AccessTokenSecret, time.Hour, s.cfg.TokenIssuer)
	s.Require().NoError(err)

	s.mockUserRepo.FindUserByIDFn = func(ctx context.Context, userID string) (*domain.User, error) {
		return nil, apperrors.ErrNotFound
	}

	_, err = s.service.AuthenticateRequest(context.Background(), token)
	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestAuthenticateRequest_GarbageToken() {
	_, err := s.service.AuthenticateRequest(context.Background(), "not-a-token")
	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestChangePassword_WrongOldPassword() {
	alice := s.storedAlice("secret123")
	s.stateStore(alice)

	err := s.service.ChangePassword(context.Background(), alice.UserID, "wrong", "newpassword1")
	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func (s *AuthServiceTestSuite) TestChangePassword_RevokesRefreshToken() {
	ctx := context.Background()
	alice := s.storedAlice("secret123")
	s.stateStore(alice)

	var newHash string
	s.mockUserRepo.UpdatePasswordHashFn = func(ctx context.Context, userID, passwordHash string) error {
		newHash = passwordHash
		return nil
	}

	_, pair, err := s.service.Login(ctx, "alice", "secret123")
	s.Require().NoError(err)

	s.Require().NoError(s.service.ChangePassword(ctx, alice.UserID, "secret123", "newpassword1"))

	s.True(utils.CheckPasswordHash("newpassword1", newHash))
	s.Empty(alice.RefreshToken)

	// The pre-change refresh token is no longer usable.
	_, _, err = s.service.RefreshSession(ctx, pair.RefreshToken)
	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}
