package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.True(t, cfg.App.IsProd())
	assert.Equal(t, "http://localhost:8000", cfg.Upstream.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, "nearbuy_session", cfg.Session.CookieName)
	assert.Equal(t, 720*time.Hour, cfg.Session.TokenTTL)
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	require.NoError(t, os.Unsetenv(EnvAppEnv))

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_RedisRequiredForRedisBackend(t *testing.T) {
	setMinimalEnv(t)
	require.NoError(t, os.Unsetenv(EnvRedisURL))

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_MemoryBackendSkipsRedis(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvSessionBackend, "memory")
	require.NoError(t, os.Unsetenv(EnvRedisURL))

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Session.UsesRedis())
}

func TestLoad_InvalidSessionBackend(t *testing.T) {
	setMinimalEnv(t)
	t.Setenv(EnvSessionBackend, "postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvSessionBackend)
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvPort, "8081")
	t.Setenv(EnvUpstreamBaseURL, "http://localhost:8000")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvSessionBackend, "redis")
}
