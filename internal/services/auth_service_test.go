package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gstbill/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceTestSuite struct {
	suite.Suite
	userRepo    *MockUserRepository
	refreshRepo *MockRefreshTokenRepository
	service     AuthService
	userID      uuid.UUID
	ctx         context.Context
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.userRepo = new(MockUserRepository)
	suite.refreshRepo = new(MockRefreshTokenRepository)
	suite.service = NewAuthService(suite.userRepo, suite.refreshRepo, "test-secret", 15*time.Minute, 24*time.Hour)
	suite.userID = uuid.New()
	suite.ctx = context.Background()
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (suite *AuthServiceTestSuite) activeUser(password string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(suite.T(), err)
	return &models.User{
		ID:           suite.userID,
		Email:        "ops@example.com",
		PasswordHash: string(hash),
		Active:       true,
	}
}

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	suite.userRepo.On("GetByEmail", suite.ctx, "ops@example.com").Return(suite.activeUser("correct-horse"), nil)
	suite.refreshRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	tokens, err := suite.service.Login(suite.ctx, "ops@example.com", "correct-horse")
	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), tokens.AccessToken)
	assert.NotEmpty(suite.T(), tokens.RefreshToken)

	claims, err := suite.service.ValidateToken(tokens.AccessToken)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.userID.String(), claims.UserID)
	assert.Equal(suite.T(), suite.userID.String(), claims.Subject)
	assert.Equal(suite.T(), "gstbill-auth", claims.Issuer)
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	suite.userRepo.On("GetByEmail", suite.ctx, "ops@example.com").Return(suite.activeUser("correct-horse"), nil)

	_, err := suite.service.Login(suite.ctx, "ops@example.com", "wrong")
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	suite.userRepo.On("GetByEmail", suite.ctx, "nobody@example.com").Return(nil, errors.New("no rows in result set"))

	_, err := suite.service.Login(suite.ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLogin_InactiveUser() {
	user := suite.activeUser("correct-horse")
	user.Active = false
	suite.userRepo.On("GetByEmail", suite.ctx, "ops@example.com").Return(user, nil)

	_, err := suite.service.Login(suite.ctx, "ops@example.com", "correct-horse")
	assert.ErrorIs(suite.T(), err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestRefresh_RotatesToken() {
	stored := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    suite.userID,
		TokenHash: hashToken("old-refresh-token"),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	suite.refreshRepo.On("GetByHash", suite.ctx, hashToken("old-refresh-token")).Return(stored, nil)
	suite.refreshRepo.On("Revoke", suite.ctx, stored.ID).Return(nil)
	suite.refreshRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	tokens, err := suite.service.Refresh(suite.ctx, "old-refresh-token")
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), "old-refresh-token", tokens.RefreshToken)
	suite.refreshRepo.AssertCalled(suite.T(), "Revoke", suite.ctx, stored.ID)
}

func (suite *AuthServiceTestSuite) TestRefresh_RevokedToken() {
	stored := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    suite.userID,
		ExpiresAt: time.Now().Add(time.Hour),
		Revoked:   true,
	}
	suite.refreshRepo.On("GetByHash", suite.ctx, mock.AnythingOfType("string")).Return(stored, nil)

	_, err := suite.service.Refresh(suite.ctx, "revoked-token")
	assert.ErrorIs(suite.T(), err, ErrInvalidRefresh)
}

func (suite *AuthServiceTestSuite) TestRefresh_ExpiredToken() {
	stored := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    suite.userID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	suite.refreshRepo.On("GetByHash", suite.ctx, mock.AnythingOfType("string")).Return(stored, nil)

	_, err := suite.service.Refresh(suite.ctx, "expired-token")
	assert.ErrorIs(suite.T(), err, ErrInvalidRefresh)
	suite.refreshRepo.AssertNotCalled(suite.T(), "Revoke")
}

func (suite *AuthServiceTestSuite) TestRefresh_UnknownToken() {
	suite.refreshRepo.On("GetByHash", suite.ctx, mock.AnythingOfType("string")).Return(nil, errors.New("no rows in result set"))

	_, err := suite.service.Refresh(suite.ctx, "missing-token")
	assert.ErrorIs(suite.T(), err, ErrInvalidRefresh)
}

func (suite *AuthServiceTestSuite) TestValidateToken_WrongSecret() {
	other := NewAuthService(suite.userRepo, suite.refreshRepo, "other-secret", 15*time.Minute, 24*time.Hour)
	suite.userRepo.On("GetByEmail", suite.ctx, "ops@example.com").Return(suite.activeUser("pw"), nil)
	suite.refreshRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	tokens, err := other.Login(suite.ctx, "ops@example.com", "pw")
	assert.NoError(suite.T(), err)

	_, err = suite.service.ValidateToken(tokens.AccessToken)
	assert.Error(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestValidateToken_Garbage() {
	_, err := suite.service.ValidateToken("not.a.jwt")
	assert.Error(suite.T(), err)
}

func (suite *AuthServiceTestSuite) TestCleanupExpiredTokens() {
	suite.refreshRepo.On("DeleteExpired", suite.ctx, mock.AnythingOfType("time.Time")).Return(int64(5), nil)

	count, err := suite.service.CleanupExpiredTokens(suite.ctx)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(5), count)
}

func (suite *AuthServiceTestSuite) TestHashPassword() {
	hash, err := suite.service.HashPassword("s3cret-pass")
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret-pass")))
}
