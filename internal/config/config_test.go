package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"OUTBREAKWATCH_CONFIG_PATH",
	"OUTBREAKWATCH_API_BASE_URL",
	"OUTBREAKWATCH_API_KEY",
	"OUTBREAKWATCH_API_KEY_PLACEMENT",
	"OUTBREAKWATCH_API_TIMEOUT",
	"OUTBREAKWATCH_LOG_LEVEL",
	"OUTBREAKWATCH_MCP_TRANSPORT",
	"OUTBREAKWATCH_MCP_HOST",
	"OUTBREAKWATCH_MCP_PORT",
	"OUTBREAKWATCH_MCP_TOKEN",
	"OUTBREAKWATCH_METRICS_ENABLED",
	"OUTBREAKWATCH_SANDBOX_DB_PATH",
	"OUTBREAKWATCH_SANDBOX_HOST",
	"OUTBREAKWATCH_SANDBOX_PORT",
	"OUTBREAKWATCH_SANDBOX_API_KEY",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "header", cfg.API.KeyPlacement)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "127.0.0.1:8080", cfg.MCP.Addr())
	assert.ErrorIs(t, cfg.Validate(), ErrMissingBaseURL)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://api.example.org/
  key: file-key
  key_placement: query
  timeout: 5s
log:
  level: debug
mcp:
  transport: http
  port: 9090
metrics:
  enabled: true
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.org/", cfg.API.BaseURL)
	assert.Equal(t, "file-key", cfg.API.Key)
	assert.Equal(t, "query", cfg.API.KeyPlacement)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "http", cfg.MCP.Transport)
	assert.Equal(t, "127.0.0.1", cfg.MCP.Host)
	assert.Equal(t, 9090, cfg.MCP.Port)
	assert.True(t, cfg.Metrics.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: https://file.example.org\n"), 0o600))

	t.Setenv("OUTBREAKWATCH_CONFIG_PATH", path)
	t.Setenv("OUTBREAKWATCH_API_BASE_URL", "https://env.example.org")
	t.Setenv("OUTBREAKWATCH_API_KEY", "secret")
	t.Setenv("OUTBREAKWATCH_API_TIMEOUT", "2m")
	t.Setenv("OUTBREAKWATCH_MCP_PORT", "7000")
	t.Setenv("OUTBREAKWATCH_MCP_TOKEN", "tok")
	t.Setenv("OUTBREAKWATCH_METRICS_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.org", cfg.API.BaseURL)
	assert.Equal(t, "secret", cfg.API.Key)
	assert.Equal(t, 2*time.Minute, cfg.API.Timeout)
	assert.Equal(t, 7000, cfg.MCP.Port)
	assert.Equal(t, "tok", cfg.MCP.Token)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_InvalidEnv(t *testing.T) {
	for key, value := range map[string]string{
		"OUTBREAKWATCH_API_TIMEOUT":     "soon",
		"OUTBREAKWATCH_MCP_PORT":        "eighty",
		"OUTBREAKWATCH_METRICS_ENABLED": "maybe",
		"OUTBREAKWATCH_SANDBOX_PORT":    "high",
	} {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestValidate(t *testing.T) {
	base := Default()
	base.API.BaseURL = "https://api.example.org"
	require.NoError(t, base.Validate())

	badTransport := base
	badTransport.MCP.Transport = "sse"
	assert.ErrorContains(t, badTransport.Validate(), "unknown mcp transport")

	badPort := base
	badPort.MCP.Port = 0
	assert.ErrorContains(t, badPort.Validate(), "port out of range")

	badTimeout := base
	badTimeout.API.Timeout = 0
	assert.ErrorContains(t, badTimeout.Validate(), "timeout must be positive")
}

func TestLoad_Sandbox(t *testing.T) {
	clearEnv(t)
	t.Setenv("OUTBREAKWATCH_SANDBOX_DB_PATH", ":memory:")
	t.Setenv("OUTBREAKWATCH_SANDBOX_PORT", "9191")
	t.Setenv("OUTBREAKWATCH_SANDBOX_API_KEY", "sandbox-key")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.Sandbox.DBPath)
	assert.Equal(t, "127.0.0.1:9191", cfg.Sandbox.Addr())
	assert.NoError(t, cfg.Sandbox.Validate())

	noKey := cfg.Sandbox
	noKey.APIKey = " "
	assert.ErrorContains(t, noKey.Validate(), "api key is required")

	badPort := cfg.Sandbox
	badPort.Port = 70000
	assert.ErrorContains(t, badPort.Validate(), "port out of range")
}
