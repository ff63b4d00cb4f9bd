package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "localhost:6379", cfg.Redis.URI)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 5*time.Minute, cfg.Session.RevalidateAfter)
	assert.Equal(t, 15*time.Second, cfg.Upstream.Timeout)
	assert.False(t, cfg.IsDev)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("REDIS_URI", "redis.internal:6379")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("SESSION_REVALIDATE_AFTER", "30s")
	t.Setenv("UPSTREAM_BASE_URL", "https://api.example.com")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":9999", cfg.HTTP.Addr)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.URI)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, 30*time.Second, cfg.Session.RevalidateAfter)
	assert.Equal(t, "https://api.example.com", cfg.Upstream.BaseURL)
}

func TestSanitizeClampsSessionWindows(t *testing.T) {
	cfg := AppConfig{
		Session: SessionConfig{TTL: -1, RevalidateAfter: 0},
	}
	cfg.Sanitize()
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 5*time.Minute, cfg.Session.RevalidateAfter)

	cfg = AppConfig{
		Session: SessionConfig{TTL: time.Minute, RevalidateAfter: time.Hour},
	}
	cfg.Sanitize()
	assert.Equal(t, time.Minute, cfg.Session.RevalidateAfter,
		"revalidation window may not exceed the session lifetime")
}

func TestNodeEnvEnablesDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()
	assert.True(t, cfg.IsDev)
}
