// Package config implements configuration management for the gateway:
// a single YAML file describing the HTTP surface, the remote finance API,
// the session cookies, and logging. Configuration is loaded once at startup
// into an explicit value that is passed to the components that need it;
// there is no global configuration state.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/centavo-app/centavo/internal/logging"
	"github.com/centavo-app/centavo/internal/session"
)

// Duration wraps time.Duration so YAML files can spell timeouts as
// human-readable strings such as "15s". yaml.v3 only decodes bare
// time.Duration from integer nanoseconds, which nobody writes by hand.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var ns int64
	if err := node.Decode(&ns); err == nil {
		*d = Duration(ns)
		return nil
	}

	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("invalid duration: %s", node.Value)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// ServerConfig describes the browser-facing HTTP surface.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	LoginPath   string `yaml:"login_path"`
	RecoverPath string `yaml:"recover_path"`
}

// APIConfig describes the remote finance API collaborator.
type APIConfig struct {
	BaseURL string   `yaml:"base_url"`
	Timeout Duration `yaml:"timeout"`
	// RequestsPerSecond throttles outbound traffic; zero disables the limiter.
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// Config is the complete gateway configuration.
type Config struct {
	Server  ServerConfig   `yaml:"server"`
	API     APIConfig      `yaml:"api"`
	Session session.Config `yaml:"session"`
	Logging logging.Config `yaml:"logging"`
}

// Default returns the configuration used when no file is provided.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:        ":8080",
			LoginPath:   "/login",
			RecoverPath: "/auth/recover",
		},
		API: APIConfig{
			BaseURL: "http://localhost:9090",
			Timeout: Duration(15 * time.Second),
		},
		Session: session.DefaultConfig(),
		Logging: logging.DefaultConfig(),
	}
}

// Load reads and parses the configuration file at path, layering it over the
// defaults. An empty path yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate ensures the configuration is complete enough to start.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}
	if c.Server.LoginPath == "" || c.Server.LoginPath[0] != '/' {
		return fmt.Errorf("server.login_path must be an absolute path")
	}
	if c.Server.RecoverPath == "" || c.Server.RecoverPath[0] != '/' {
		return fmt.Errorf("server.recover_path must be an absolute path")
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url cannot be empty")
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout cannot be negative")
	}
	if c.API.RequestsPerSecond < 0 {
		return fmt.Errorf("api.requests_per_second cannot be negative")
	}
	return nil
}
