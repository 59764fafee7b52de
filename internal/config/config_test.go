package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"port": 8080,
		"database_url": "postgres://localhost/valuations",
		"pdftotext": "/usr/bin/pdftotext",
		"rate_limit_per_minute": 30,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres://localhost/valuations", cfg.DatabaseURL)
	assert.Equal(t, "/usr/bin/pdftotext", cfg.Pdftotext)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := &Config{APIKey: "file-key"}
	require.NoError(t, cfg.FromEnv())

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	assert.Equal(t, "file-key", cfg.APIKey, "file value wins over environment")
}

func TestFromEnv_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	cfg := &Config{}
	assert.Error(t, cfg.FromEnv())
}

func TestValidate(t *testing.T) {
	valid := Config{Port: 8080, RateLimitPerMinute: 20}
	assert.NoError(t, valid.Validate())

	badPort := Config{Port: 70000}
	assert.Error(t, badPort.Validate())

	badLimit := Config{RateLimitPerMinute: -1}
	assert.Error(t, badLimit.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{APIKey: "cli-key"}
	defaults := Config{
		Port:        8080,
		APIKey:      "file-key",
		DatabaseURL: "postgres://file/db",
		Pdftotext:   "/usr/bin/pdftotext",
	}

	merged := cfg.MergeWithDefaults(defaults)

	assert.Equal(t, "cli-key", merged.APIKey, "explicit value wins")
	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, "postgres://file/db", merged.DatabaseURL)
	assert.Equal(t, "/usr/bin/pdftotext", merged.Pdftotext)
	assert.Equal(t, 20, merged.RateLimitPerMinute, "rate limit defaults when unset everywhere")
}
