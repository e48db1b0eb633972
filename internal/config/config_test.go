package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  name: booking-server
jwt:
  secret: test-secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenTTL)
	assert.Equal(t, 30, cfg.Booking.MaxStayNights)
	assert.Equal(t, 365, cfg.Booking.MaxHorizonDays)
	assert.False(t, cfg.Server.IsProduction())
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	path := writeConfig(t, `
server:
  name: booking-server
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRequiresDSNInProduction(t *testing.T) {
	path := writeConfig(t, `
server:
  environment: production
jwt:
  secret: test-secret
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://env/booking")

	path := writeConfig(t, `
jwt:
  secret: file-secret
api:
  port: 8080
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 9090, cfg.API.Port)
	assert.Equal(t, "postgres://env/booking", cfg.Database.DSN)
}
