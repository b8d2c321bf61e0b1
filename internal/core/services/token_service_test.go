package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fxtrack/fxtrack/internal/apperrors"
	"github.com/fxtrack/fxtrack/internal/core/domain"
	portssvc "github.com/fxtrack/fxtrack/internal/core/ports/services"
	"github.com/fxtrack/fxtrack/internal/core/services"
	"github.com/fxtrack/fxtrack/internal/dto"
	"github.com/fxtrack/fxtrack/internal/utils"
	"github.com/fxtrack/fxtrack/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Test Suite ---
type TokenServiceTestSuite struct {
	suite.Suite
	mockUserSvc *MockUserService
	cfg         *config.Config
	service     portssvc.TokenSvcFacade
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.mockUserSvc = new(MockUserService)
	suite.cfg = &config.Config{
		JWTSecret:                  "test-secret-key-that-is-long-enough",
		JWTExpiryDuration:          time.Hour,
		JWTIssuer:                  "fxtrack-test",
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	suite.service = services.NewTokenService(suite.cfg, suite.mockUserSvc)
}

// --- Test Cases ---

func (suite *TokenServiceTestSuite) TestGenerateAccessToken() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString()}

	token, expiresAt, err := suite.service.GenerateAccessToken(ctx, user)

	suite.Require().NoError(err)
	suite.NotEmpty(token)
	suite.WithinDuration(time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := utils.ParseAndValidateJWT(token, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal(user.UserID, claims.Subject)
	suite.Equal(suite.cfg.JWTIssuer, claims.Issuer)
}

func (suite *TokenServiceTestSuite) TestGenerateRefreshToken() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString()}

	raw, expiry, err := suite.service.GenerateRefreshToken(ctx, user)

	suite.Require().NoError(err)
	suite.NotEmpty(raw)
	suite.WithinDuration(time.Now().Add(24*time.Hour), expiry, time.Minute)

	// Consecutive tokens must differ.
	raw2, _, err := suite.service.GenerateRefreshToken(ctx, user)
	suite.Require().NoError(err)
	suite.NotEqual(raw, raw2)
}

func (suite *TokenServiceTestSuite) TestValidateAndParseRefreshToken_Success() {
	ctx := context.Background()
	raw := "some-raw-refresh-token"
	expiry := time.Now().Add(time.Hour)
	user := &domain.User{
		UserID:                 uuid.NewString(),
		RefreshTokenHash:       utils.HashRefreshToken(raw),
		RefreshTokenExpiryTime: &expiry,
	}
	suite.mockUserSvc.On("GetUserByID", ctx, user.UserID).Return(user, nil).Once()

	got, err := suite.service.ValidateAndParseRefreshToken(ctx, user.UserID, raw)

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *TokenServiceTestSuite) TestValidateAndParseRefreshToken_Expired() {
	ctx := context.Background()
	raw := "some-raw-refresh-token"
	expiry := time.Now().Add(-time.Hour)
	user := &domain.User{
		UserID:                 uuid.NewString(),
		RefreshTokenHash:       utils.HashRefreshToken(raw),
		RefreshTokenExpiryTime: &expiry,
	}
	suite.mockUserSvc.On("GetUserByID", ctx, user.UserID).Return(user, nil).Once()

	_, err := suite.service.ValidateAndParseRefreshToken(ctx, user.UserID, raw)

	suite.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
}

func (suite *TokenServiceTestSuite) TestValidateAndParseRefreshToken_HashMismatch() {
	ctx := context.Background()
	expiry := time.Now().Add(time.Hour)
	user := &domain.User{
		UserID:                 uuid.NewString(),
		RefreshTokenHash:       utils.HashRefreshToken("the-real-token"),
		RefreshTokenExpiryTime: &expiry,
	}
	suite.mockUserSvc.On("GetUserByID", ctx, user.UserID).Return(user, nil).Once()

	_, err := suite.service.ValidateAndParseRefreshToken(ctx, user.UserID, "a-forged-token")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidateAndParseRefreshToken_NoStoredToken() {
	ctx := context.Background()
	user := &domain.User{UserID: uuid.NewString()}
	suite.mockUserSvc.On("GetUserByID", ctx, user.UserID).Return(user, nil).Once()

	_, err := suite.service.ValidateAndParseRefreshToken(ctx, user.UserID, "anything")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidateAndParseRefreshToken_UnknownUser() {
	ctx := context.Background()
	userID := uuid.NewString()
	suite.mockUserSvc.On("GetUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.ValidateAndParseRefreshToken(ctx, userID, "anything")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
