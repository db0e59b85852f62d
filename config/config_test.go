package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"ENV", "PORT", "DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"DB_SSLMODE", "JWT_SECRET", "CORS_ORIGIN", "BALANCE_CACHE_TTL", "WEBHOOK_TIMEOUT",
		"LOW_BALANCE_THRESHOLD", "LOG_LEVEL", "LOG_FORMAT", "TRUST_PROXY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 60*time.Second, cfg.BalanceCacheTTL)
	assert.Equal(t, 30*time.Second, cfg.WebhookTimeout)
	assert.Equal(t, "2", cfg.LowBalanceThreshold.String())
	assert.True(t, cfg.Logging.Development)
	assert.False(t, cfg.AuthEnabled())
	assert.False(t, cfg.TrustProxy)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("PORT", ":8080")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TRUST_PROXY", "true")
	t.Setenv("BALANCE_CACHE_TTL", "90")
	t.Setenv("WEBHOOK_TIMEOUT", "5s")
	t.Setenv("LOW_BALANCE_THRESHOLD", "10.5")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "rocket")
	t.Setenv("DB_NAME", "boost")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.AuthEnabled())
	assert.True(t, cfg.TrustProxy)
	assert.Equal(t, 90*time.Second, cfg.BalanceCacheTTL)
	assert.Equal(t, 5*time.Second, cfg.WebhookTimeout)
	assert.Equal(t, "10.5", cfg.LowBalanceThreshold.String())
	assert.False(t, cfg.Logging.Development)
	assert.Equal(t, "host=db port=5432 user=rocket password= dbname=boost sslmode=disable", cfg.DatabaseURL)

	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/x")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost/x", cfg.DatabaseURL)
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("BALANCE_CACHE_TTL", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "BALANCE_CACHE_TTL")

	clearEnv(t)
	t.Setenv("LOW_BALANCE_THRESHOLD", "low")
	_, err = Load()
	assert.ErrorContains(t, err, "LOW_BALANCE_THRESHOLD")
}
