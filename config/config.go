// Package config defines the taskbookd application configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level taskbookd configuration.
type Config struct {
	Server   ServerConfig `json:"server" yaml:"server"`
	Auth     AuthConfig   `json:"auth" yaml:"auth"`
	DBPath   string       `json:"db_path" yaml:"db_path"`
	LogLevel string       `json:"log_level" yaml:"log_level"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"` // listen address, e.g., ":8080"
}

// AuthConfig controls token issuance.
type AuthConfig struct {
	JWTSecret string        `json:"jwt_secret" yaml:"jwt_secret"`
	TokenTTL  time.Duration `json:"token_ttl" yaml:"token_ttl"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Auth: AuthConfig{
			TokenTTL: 7 * 24 * time.Hour,
		},
		DBPath:   "./taskbook.db",
		LogLevel: "info",
	}
}

// Load reads a YAML config file, applies environment overrides, and returns
// the parsed configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// FromEnv returns the default config with environment overrides applied,
// for running without a config file.
func FromEnv() *Config {
	cfg := DefaultConfig()
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("TASKBOOK_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("TASKBOOK_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("TASKBOOK_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
}
