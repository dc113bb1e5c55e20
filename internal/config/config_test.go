package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvRequiresEncryptionKey(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrMissingEncryptionKey)
}

func TestFromEnvRequiresJWTSecret(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "key")
	t.Setenv("JWT_SECRET", "")

	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestFromEnvDefaultsAndLists(t *testing.T) {
	t.Setenv("ENCRYPTION_KEY", "key")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "")
	t.Setenv("SCYLLA_HOSTS", "10.0.0.1, 10.0.0.2,")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("SMTP_PORT", "not-a-port")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.Scylla.Hosts)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, 587, cfg.SMTP.Port)
}
