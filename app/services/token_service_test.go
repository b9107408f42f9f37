package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, accessTTL time.Duration) TokenService {
	t.Helper()
	svc, err := NewTokenService(accessTTL, 24*time.Hour, "test-issuer", "test-audience",
		false, "", "", "test-secret-key", nil)
	require.NoError(t, err)
	return svc
}

func TestGenerateAndValidateTokens(t *testing.T) {
	svc := newTestTokenService(t, 1*time.Hour)

	accessToken, refreshToken, err := svc.GenerateTokens(42)
	require.NoError(t, err)
	require.NotEmpty(t, accessToken)
	require.NotEmpty(t, refreshToken)
	assert.NotEqual(t, accessToken, refreshToken)

	claims, err := svc.ValidateToken(context.Background(), accessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "access", claims.TokenType)
	assert.NotEmpty(t, claims.TokenID)

	refreshClaims, err := svc.ValidateToken(context.Background(), refreshToken)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.TokenType)
	assert.NotEqual(t, claims.TokenID, refreshClaims.TokenID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestTokenService(t, 1*time.Hour)
	other, err := NewTokenService(1*time.Hour, 24*time.Hour, "test-issuer", "test-audience",
		false, "", "", "another-secret-key", nil)
	require.NoError(t, err)

	accessToken, _, err := svc.GenerateTokens(1)
	require.NoError(t, err)

	_, err = other.ValidateToken(context.Background(), accessToken)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestTokenService(t, -1*time.Minute)

	accessToken, _, err := svc.GenerateTokens(1)
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), accessToken)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateGarbageToken(t *testing.T) {
	svc := newTestTokenService(t, 1*time.Hour)

	_, err := svc.ValidateToken(context.Background(), "not.a.token")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshTokenRequiresRefreshType(t *testing.T) {
	svc := newTestTokenService(t, 1*time.Hour)

	accessToken, refreshToken, err := svc.GenerateTokens(7)
	require.NoError(t, err)

	// Access token is not accepted for refresh
	_, _, err = svc.RefreshToken(context.Background(), accessToken)
	require.Error(t, err)

	newAccess, newRefresh, err := svc.RefreshToken(context.Background(), refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)

	claims, err := svc.ValidateToken(context.Background(), newAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
}

func TestRevokeTokenWithoutRedisIsNoOp(t *testing.T) {
	svc := newTestTokenService(t, 1*time.Hour)

	accessToken, _, err := svc.GenerateTokens(9)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeToken(context.Background(), accessToken))

	// Without a revocation store the token stays valid
	_, err = svc.ValidateToken(context.Background(), accessToken)
	require.NoError(t, err)
}

func TestRequiresSecretWithoutRSA(t *testing.T) {
	_, err := NewTokenService(1*time.Hour, 24*time.Hour, "test-issuer", "test-audience",
		false, "", "", "", nil)
	require.Error(t, err)
}
