package config

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_TYPE", "mongo")

	cfg, err := LoadConfig(discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "mongo", cfg.DBType)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "procurement", cfg.MongoDatabase)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.R2.Enabled())
}

func TestLoadConfigR2(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_TYPE", "mongo")
	t.Setenv("R2_BUCKET", "exports")
	t.Setenv("R2_ACCOUNT_ID", "acct")
	t.Setenv("R2_PUBLIC_URL", "https://cdn.example.com")

	cfg, err := LoadConfig(discardLogger())
	require.NoError(t, err)
	assert.True(t, cfg.R2.Enabled())
	assert.Equal(t, "exports", cfg.R2.Bucket)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(discardLogger())
	require.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadConfigPostgresNeedsURL(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("POSTGRES_URL", "")

	_, err := LoadConfig(discardLogger())
	require.ErrorContains(t, err, "POSTGRES_URL")
}

func TestLoadConfigRejectsUnknownDB(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_TYPE", "sqlite")

	_, err := LoadConfig(discardLogger())
	require.ErrorContains(t, err, "DB_TYPE not supported")
}

func TestLoadClientConfig(t *testing.T) {
	t.Setenv("VENDORCTL_BASE_URL", "http://api.local")
	t.Setenv("VENDORCTL_TIMEOUT", "3s")

	cfg, err := LoadClientConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://api.local", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, 5, cfg.PageSize)
}

func TestLoadConfigMemory(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_TYPE", "memory")
	t.Setenv("LOGIN_RATE_LIMIT", "3")

	cfg, err := LoadConfig(discardLogger())
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.DBType)
	assert.Equal(t, 3, cfg.LoginRateLimit)
}
