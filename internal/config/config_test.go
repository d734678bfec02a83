package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "centavo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "/login", cfg.Server.LoginPath)
	assert.Equal(t, "/auth/recover", cfg.Server.RecoverPath)
	assert.Equal(t, "http://localhost:9090", cfg.API.BaseURL)
	assert.Equal(t, Duration(15*time.Second), cfg.API.Timeout)
	assert.Equal(t, "centavo_session", cfg.Session.CookieName)
}

func TestLoadLayersFileOverDefaults(t *testing.T) {
	path := writeConfigFile(t, `
server:
  addr: ":3000"
api:
  base_url: "https://api.centavo.example"
session:
  cookie_name: "sid"
logging:
  level: "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, "https://api.centavo.example", cfg.API.BaseURL)
	assert.Equal(t, "sid", cfg.Session.CookieName)
	assert.Equal(t, "debug", cfg.Logging.Level)

	assert.Equal(t, "/login", cfg.Server.LoginPath, "unset fields keep defaults")
	assert.Equal(t, Duration(15*time.Second), cfg.API.Timeout)
}

func TestLoadParsesDurationStrings(t *testing.T) {
	path := writeConfigFile(t, `
api:
  timeout: 45s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Duration(45*time.Second), cfg.API.Timeout)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfigFile(t, `
api:
  timeout: soon
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfigFile(t, "server: [not a map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, true},
		{"relative login path", func(c *Config) { c.Server.LoginPath = "login" }, true},
		{"relative recover path", func(c *Config) { c.Server.RecoverPath = "auth/recover" }, true},
		{"empty base URL", func(c *Config) { c.API.BaseURL = "" }, true},
		{"negative timeout", func(c *Config) { c.API.Timeout = Duration(-time.Second) }, true},
		{"negative rate", func(c *Config) { c.API.RequestsPerSecond = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
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
