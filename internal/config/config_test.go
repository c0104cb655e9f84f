package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FLEET_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, int64(16777216), cfg.Upload.MaxSizeBytes)
	assert.Equal(t, 2*time.Hour, cfg.Upload.SessionTTL)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, 50.0, cfg.Security.RateLimit.RPS)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FLEET_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("FLEET_SERVER_PORT", "9090")
	t.Setenv("FLEET_LOGGING_LEVEL", "debug")
	t.Setenv("FLEET_UPLOAD_SESSION_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 30*time.Minute, cfg.Upload.SessionTTL)
}

func TestLoad_FileOverridesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 7070\nlogging:\n  level: warn\n"), 0o644))

	t.Setenv("FLEET_CONFIG_FILE", path)
	t.Setenv("FLEET_SERVER_PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	// Fields absent from the file keep their env/default values.
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map\n"), 0o644))
	t.Setenv("FLEET_CONFIG_FILE", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "port too low", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: true},
		{name: "port too high", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: true},
		{name: "zero upload limit", mutate: func(c *Config) { c.Upload.MaxSizeBytes = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.Server.Port = 8080
			cfg.Upload.MaxSizeBytes = 1024
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
