package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Point at a path that does not exist; defaults should apply.
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5001/api", cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Contains(t, cfg.CredentialsFile, "credentials.json")
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
api_url: https://hr.example.com/api
timeout_seconds: 5
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://hr.example.com/api", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout())
	assert.Equal(t, "debug", cfg.LogLevel)
	// Unset keys keep their defaults
	assert.Contains(t, cfg.CredentialsFile, "credentials.json")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "api_url: https://file.example.com/api\n")
	t.Setenv("STAFFDECK_API_URL", "https://env.example.com/api")
	t.Setenv("STAFFDECK_TIMEOUT_SECONDS", "30")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com/api", cfg.APIURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "api_url: [unclosed\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONFIG-001")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"empty api url", func(c *Config) { c.APIURL = "" }, true},
		{"zero timeout", func(c *Config) { c.TimeoutSeconds = 0 }, true},
		{"negative timeout", func(c *Config) { c.TimeoutSeconds = -1 }, true},
		{"empty credentials path", func(c *Config) { c.CredentialsFile = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
