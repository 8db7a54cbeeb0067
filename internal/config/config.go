package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines client and MCP server configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Log     LogConfig     `yaml:"log"`
	MCP     MCPConfig     `yaml:"mcp"`
	Metrics MetricsConfig `yaml:"metrics"`
	Sandbox SandboxConfig `yaml:"sandbox"`
}

type APIConfig struct {
	BaseURL      string        `yaml:"base_url"`
	Key          string        `yaml:"key"`
	KeyPlacement string        `yaml:"key_placement"`
	Timeout      time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type MCPConfig struct {
	Transport string `yaml:"transport"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Token     string `yaml:"token"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// SandboxConfig configures the local API server used for development.
type SandboxConfig struct {
	DBPath string `yaml:"db_path"`
	Host   string `yaml:"host"`
	Port   int    `yaml:"port"`
	APIKey string `yaml:"api_key"`
}

// ErrMissingBaseURL is returned by Validate when no API base URL is set.
var ErrMissingBaseURL = errors.New("api base url is required (set OUTBREAKWATCH_API_BASE_URL)")

// Default returns the configuration used before any file or environment
// overrides are applied.
func Default() Config {
	return Config{
		API: APIConfig{
			KeyPlacement: "header",
			Timeout:      30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		MCP: MCPConfig{
			Transport: "stdio",
			Host:      "127.0.0.1",
			Port:      8080,
		},
		Sandbox: SandboxConfig{
			DBPath: "./data/sandbox.db",
			Host:   "127.0.0.1",
			Port:   8081,
		},
	}
}

// Load reads configuration from an optional YAML file and environment
// variables. path overrides OUTBREAKWATCH_CONFIG_PATH when non-empty.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("OUTBREAKWATCH_CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if v := os.Getenv("OUTBREAKWATCH_API_BASE_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("OUTBREAKWATCH_API_KEY"); v != "" {
		cfg.API.Key = v
	}
	if v := os.Getenv("OUTBREAKWATCH_API_KEY_PLACEMENT"); v != "" {
		cfg.API.KeyPlacement = v
	}
	if v := os.Getenv("OUTBREAKWATCH_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid OUTBREAKWATCH_API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = d
	}
	if v := os.Getenv("OUTBREAKWATCH_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("OUTBREAKWATCH_MCP_TRANSPORT"); v != "" {
		cfg.MCP.Transport = v
	}
	if v := os.Getenv("OUTBREAKWATCH_MCP_HOST"); v != "" {
		cfg.MCP.Host = v
	}
	if v := os.Getenv("OUTBREAKWATCH_MCP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid OUTBREAKWATCH_MCP_PORT: %w", err)
		}
		cfg.MCP.Port = port
	}
	if v := os.Getenv("OUTBREAKWATCH_MCP_TOKEN"); v != "" {
		cfg.MCP.Token = v
	}
	if v := os.Getenv("OUTBREAKWATCH_METRICS_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid OUTBREAKWATCH_METRICS_ENABLED: %w", err)
		}
		cfg.Metrics.Enabled = enabled
	}
	if v := os.Getenv("OUTBREAKWATCH_SANDBOX_DB_PATH"); v != "" {
		cfg.Sandbox.DBPath = v
	}
	if v := os.Getenv("OUTBREAKWATCH_SANDBOX_HOST"); v != "" {
		cfg.Sandbox.Host = v
	}
	if v := os.Getenv("OUTBREAKWATCH_SANDBOX_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid OUTBREAKWATCH_SANDBOX_PORT: %w", err)
		}
		cfg.Sandbox.Port = port
	}
	if v := os.Getenv("OUTBREAKWATCH_SANDBOX_API_KEY"); v != "" {
		cfg.Sandbox.APIKey = v
	}

	return cfg, nil
}

// Validate checks the settings every command needs.
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return ErrMissingBaseURL
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive, got %s", c.API.Timeout)
	}
	switch c.MCP.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("unknown mcp transport %q (want stdio or http)", c.MCP.Transport)
	}
	if c.MCP.Port <= 0 || c.MCP.Port > 65535 {
		return fmt.Errorf("mcp port out of range: %d", c.MCP.Port)
	}
	return nil
}

// Addr returns the host:port the HTTP MCP transport listens on.
func (c MCPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks the settings the sandbox server needs.
func (c SandboxConfig) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.New("sandbox api key is required (set OUTBREAKWATCH_SANDBOX_API_KEY)")
	}
	if c.DBPath == "" {
		return errors.New("sandbox db path is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("sandbox port out of range: %d", c.Port)
	}
	return nil
}

// Addr returns the host:port the sandbox server listens on.
func (c SandboxConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
