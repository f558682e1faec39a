package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range envBindings {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLM.Model)
	assert.Equal(t, 20*time.Second, cfg.LLM.Timeout)
	assert.Empty(t, cfg.LLM.APIKey)
	assert.Equal(t, "2025-02-04", cfg.Anniversary.StartDate)
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: "4000"
  mode: debug
llm:
  model: gemini-2.0-flash
  timeout: 15s
  generation:
    temperature: 0.9
anniversary:
  start_date: "2024-12-24"
  timezone: UTC
`)
	t.Setenv("PORT", "8080")
	t.Setenv("GEMINI_API_KEY", "  secret  ")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, http://b.example")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	assert.InDelta(t, 0.9, cfg.LLM.Generation.Temperature, 1e-9)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.AllowedOrigins)

	start, err := cfg.Anniversary.Start()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC), start)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad start date", "anniversary:\n  start_date: \"04/02/2025\"\n"},
		{"bad timezone", "anniversary:\n  timezone: Mars/Olympus\n"},
		{"bad port", "server:\n  port: http\n"},
		{"bad log format", "log:\n  format: xml\n"},
		{"origin without scheme", "server:\n  allowed_origins:\n    - localhost:5173\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoadAcceptsWildcardOrigin(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "*")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
}
