package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.Server.BaseURL)
	assert.Equal(t, 30, cfg.Server.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "dev", cfg.Log.Environment)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("server:\n  base_url: https://sola.example.com\n  timeout_seconds: 5\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://sola.example.com", cfg.Server.BaseURL)
	assert.Equal(t, 5, cfg.Server.TimeoutSeconds)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, "dev", cfg.Log.Environment)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  base_url: https://file.example.com\n"), 0o600))

	t.Setenv("SOLA_BACKEND_URL", "https://env.example.com")
	t.Setenv("SOLA_TIMEOUT_SECONDS", "7")
	t.Setenv("SOLA_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.Server.BaseURL)
	assert.Equal(t, 7, cfg.Server.TimeoutSeconds)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a mapping"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.NoError(t, Validate(cfg))

	cfg.Server.BaseURL = "not-a-url"
	cfg.Server.TimeoutSeconds = 0
	cfg.Log.Level = "loud"
	cfg.Log.Environment = "staging"

	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SOLA_BACKEND_URL")
	assert.Contains(t, err.Error(), "timeout")
	assert.Contains(t, err.Error(), "log level")
	assert.Contains(t, err.Error(), "environment")
}
