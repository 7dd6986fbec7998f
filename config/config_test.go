package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "minicms", cfg.Service.Name)
	assert.Equal(t, "8080", cfg.Service.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "cms_session", cfg.Session.CookieName)
	assert.Equal(t, 1440, cfg.Session.TTLMinutes)
	assert.Equal(t, int64(2*1024*1024), cfg.Uploads.MaxBytes)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SESSION_TTL_MINUTES", "30")
	t.Setenv("TRACING_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Service.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 30*time.Minute, cfg.GetSessionTTLDuration())
	assert.True(t, cfg.Tracing.Enabled)
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.Database.URL = ""
	require.Error(t, cfg.Validate())

	cfg.Database.URL = "postgres://localhost:5432/minicms"
	require.NoError(t, cfg.Validate())

	cfg.Session.TTLMinutes = 0
	require.Error(t, cfg.Validate())
}

func TestDurationAccessors(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "5")
	t.Setenv("READINESS_DRAIN_DELAY_SECONDS", "2")

	cfg := Load()

	assert.Equal(t, 5*time.Second, cfg.GetShutdownTimeoutDuration())
	assert.Equal(t, 2*time.Second, cfg.GetReadinessDrainDelayDuration())
}
