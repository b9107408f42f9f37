package tests

import (
	"testing"
	"time"

	"github.com/dpetrovsky/mailhub/app/dto"
	"github.com/dpetrovsky/mailhub/app/services"
	businessflow "github.com/dpetrovsky/mailhub/business_flow"
	"github.com/dpetrovsky/mailhub/repository"
	testingutil "github.com/dpetrovsky/mailhub/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthFlow(t *testing.T) {
	err := testingutil.TestWithDB(func(testDB *testingutil.TestDB) error {
		userRepo := repository.NewUserRepository(testDB.DB)
		auditRepo := repository.NewAuditLogRepository(testDB.DB)

		// No Redis in tests; revocation is a no-op then
		tokenService, err := services.NewTokenService(
			1*time.Hour, 24*time.Hour, "test-issuer", "test-audience",
			false, "", "", "test-secret-key", nil)
		require.NoError(t, err)

		authFlow := businessflow.NewAuthFlow(userRepo, auditRepo, tokenService, testDB.DB)
		metadata := businessflow.NewClientMetadata("127.0.0.1", "test-agent", "test-request")
		ctx := testingutil.CreateTestContext()

		t.Run("SuccessfulSignup", func(t *testing.T) {
			result, err := authFlow.Signup(ctx, &dto.SignupRequest{
				Email:     "new.user@example.com",
				Password:  "SecurePass123!",
				FirstName: "New",
				LastName:  "User",
			}, metadata)
			require.NoError(t, err)
			assert.NotEmpty(t, result.AccessToken)
			assert.NotEmpty(t, result.RefreshToken)
			assert.Equal(t, "new.user@example.com", result.User.Email)
			assert.False(t, result.User.IsStaff)

			stored, err := userRepo.ByEmail(ctx, "new.user@example.com")
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.NotEqual(t, "SecurePass123!", stored.PasswordHash)
		})

		t.Run("DuplicateEmailRejected", func(t *testing.T) {
			result, err := authFlow.Signup(ctx, &dto.SignupRequest{
				Email:     "new.user@example.com",
				Password:  "AnotherPass123!",
				FirstName: "Copy",
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsEmailAlreadyExists(err))
		})

		t.Run("SuccessfulLogin", func(t *testing.T) {
			result, err := authFlow.Login(ctx, &dto.LoginRequest{
				Email:    "new.user@example.com",
				Password: "SecurePass123!",
			}, metadata)
			require.NoError(t, err)
			assert.NotEmpty(t, result.AccessToken)

			stored, err := userRepo.ByEmail(ctx, "new.user@example.com")
			require.NoError(t, err)
			assert.NotNil(t, stored.LastLoginAt)

			claims, err := tokenService.ValidateToken(ctx, result.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, stored.ID, claims.UserID)
			assert.Equal(t, "access", claims.TokenType)
		})

		t.Run("WrongPasswordRejected", func(t *testing.T) {
			result, err := authFlow.Login(ctx, &dto.LoginRequest{
				Email:    "new.user@example.com",
				Password: "WrongPass123!",
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsIncorrectPassword(err))
		})

		t.Run("UnknownEmailRejected", func(t *testing.T) {
			result, err := authFlow.Login(ctx, &dto.LoginRequest{
				Email:    "nobody@example.com",
				Password: "SecurePass123!",
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsUserNotFound(err))
		})

		t.Run("InactiveAccountRejected", func(t *testing.T) {
			stored, err := userRepo.ByEmail(ctx, "new.user@example.com")
			require.NoError(t, err)
			require.NoError(t, testDB.DB.Model(stored).Update("is_active", false).Error)

			result, err := authFlow.Login(ctx, &dto.LoginRequest{
				Email:    "new.user@example.com",
				Password: "SecurePass123!",
			}, metadata)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, businessflow.IsAccountInactive(err))

			require.NoError(t, testDB.DB.Model(stored).Update("is_active", true).Error)
		})

		t.Run("Logout", func(t *testing.T) {
			login, err := authFlow.Login(ctx, &dto.LoginRequest{
				Email:    "new.user@example.com",
				Password: "SecurePass123!",
			}, metadata)
			require.NoError(t, err)

			stored, err := userRepo.ByEmail(ctx, "new.user@example.com")
			require.NoError(t, err)

			result, err := authFlow.Logout(ctx, &dto.LogoutRequest{
				UserID: stored.ID,
				Token:  login.AccessToken,
			}, metadata)
			require.NoError(t, err)
			assert.NotEmpty(t, result.Message)
		})

		return nil
	})
	require.NoError(t, err)
}
