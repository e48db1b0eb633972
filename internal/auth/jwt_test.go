package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reserve-se/reserve-se/internal/config"
	"github.com/reserve-se/reserve-se/internal/models"
)

func newTestManager(accessTTL time.Duration) *JWTManager {
	return NewJWTManager(&config.JWTConfig{
		Secret:          "test-secret",
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: time.Hour,
	})
}

func testUser() *models.User {
	return &models.User{
		ID:       uuid.New(),
		Email:    "admin@hotel-luna.example",
		Role:     "admin",
		TenantID: uuid.New(),
	}
}

func TestTokenPairRoundTrip(t *testing.T) {
	m := newTestManager(15 * time.Minute)
	user := testUser()

	access, refresh, err := m.GenerateTokenPair(user)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := m.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.Role, claims.Role)
	assert.Equal(t, user.TenantID, claims.TenantID)
	assert.Equal(t, "booking-server", claims.Issuer)

	userID, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	_, err := m.ValidateToken("not-a-token")
	assert.Error(t, err)

	_, err = m.ValidateRefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	m := newTestManager(15 * time.Minute)
	access, _, err := m.GenerateTokenPair(testUser())
	require.NoError(t, err)

	other := NewJWTManager(&config.JWTConfig{
		Secret:          "other-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	_, err = other.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	m := newTestManager(-time.Minute)
	access, _, err := m.GenerateTokenPair(testUser())
	require.NoError(t, err)

	_, err = m.ValidateToken(access)
	assert.Error(t, err)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	m := newTestManager(15 * time.Minute)
	user := testUser()

	_, refresh, err := m.GenerateTokenPair(user)
	require.NoError(t, err)

	// A refresh token carries no role or tenant claims
	claims, err := m.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, claims.UserID)
	assert.Empty(t, claims.Role)
}
