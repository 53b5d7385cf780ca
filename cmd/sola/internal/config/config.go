// Package config loads client configuration from an optional YAML file
// layered under environment variables. Environment always wins.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete client configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig locates the remote Sola service.
type ServerConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the request timeout as a duration.
func (s ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// LogConfig mirrors pkg/logger's options.
type LogConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Environment string `yaml:"env"`   // dev, prod
	File        string `yaml:"file"`  // empty for stdout
}

// DefaultPath returns the default config file location
// (~/.config/sola/config.yaml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "sola", "config.yaml"), nil
}

// Load builds the configuration: defaults, then the YAML file at path
// (skipped when absent), then environment variables. An empty path means
// DefaultPath.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		Log: LogConfig{
			Level:       "info",
			Environment: "dev",
		},
	}

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	applyEnv(cfg)

	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.BaseURL = getEnv("SOLA_BACKEND_URL", cfg.Server.BaseURL)
	if v := os.Getenv("SOLA_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.Server.TimeoutSeconds = secs
		}
	}
	cfg.Log.Level = getEnv("SOLA_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Environment = getEnv("SOLA_ENV", cfg.Log.Environment)
	cfg.Log.File = getEnv("SOLA_LOG_FILE", cfg.Log.File)
}

// Validate checks the configuration and reports every problem at once.
func Validate(cfg *Config) error {
	var errs []string

	u, err := url.Parse(cfg.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("invalid SOLA_BACKEND_URL: %q (must be an absolute http(s) URL)", cfg.Server.BaseURL))
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, fmt.Sprintf("invalid SOLA_BACKEND_URL scheme: %q", u.Scheme))
	}

	if cfg.Server.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Sprintf("invalid timeout: %ds (must be positive)", cfg.Server.TimeoutSeconds))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Log.Level] {
		errs = append(errs, fmt.Sprintf("invalid log level: %s (must be: debug, info, warn, error)", cfg.Log.Level))
	}

	validEnvs := map[string]bool{"dev": true, "prod": true}
	if !validEnvs[cfg.Log.Environment] {
		errs = append(errs, fmt.Sprintf("invalid environment: %s (must be: dev, prod)", cfg.Log.Environment))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// getEnv returns the environment value or the fallback when unset.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
