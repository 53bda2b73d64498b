// Package config provides configuration loading for templatesd.
//
// Configuration is read from an optional YAML file and overridden by
// environment variables. Hosted platforms that inject a PORT variable
// (Render, Heroku-style) take precedence over the configured server port.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the complete templatesd configuration.
type Config struct {
	Server        ServerConfig        `koanf:"server"`
	Firebase      FirebaseConfig      `koanf:"firebase"`
	Cache         CacheConfig         `koanf:"cache"`
	Clone         CloneConfig         `koanf:"clone"`
	Logging       LoggingConfig       `koanf:"logging"`
	Observability ObservabilityConfig `koanf:"observability"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// FirebaseConfig holds the Cloud Functions catalog backend configuration.
//
// The catalog is served by public callable functions under
// https://<region>-<project_id>.cloudfunctions.net. BaseURL, when set,
// overrides the derived URL (useful for tests and self-hosted mirrors).
type FirebaseConfig struct {
	Enabled   bool          `koanf:"enabled"`
	ProjectID string        `koanf:"project_id"`
	Region    string        `koanf:"region"`
	BaseURL   string        `koanf:"base_url"`
	Timeout   time.Duration `koanf:"timeout"`
	// RatePerSecond bounds outbound calls to the catalog backend.
	RatePerSecond float64 `koanf:"rate_per_second"`
}

// CacheConfig holds catalog cache configuration.
type CacheConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

// CloneConfig holds template clone configuration.
type CloneConfig struct {
	// DefaultBranch is used when a template's git metadata omits the branch.
	DefaultBranch string `koanf:"default_branch"`
	// Timeout bounds a single clone operation.
	Timeout time.Duration `koanf:"timeout"`
}

// LoggingConfig holds structured logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ObservabilityConfig holds OpenTelemetry configuration.
type ObservabilityConfig struct {
	EnableTelemetry bool   `koanf:"enable_telemetry"`
	ServiceName     string `koanf:"service_name"`
	OTLPEndpoint    string `koanf:"otlp_endpoint"`
}

// ServerName is the MCP implementation name advertised to clients.
const ServerName = "universe-templates"

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			ShutdownTimeout: 10 * time.Second,
		},
		Firebase: FirebaseConfig{
			Enabled:       true,
			ProjectID:     "memex-desktop",
			Region:        "us-central1",
			Timeout:       30 * time.Second,
			RatePerSecond: 5,
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		Clone: CloneConfig{
			DefaultBranch: "main",
			Timeout:       5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Observability: ObservabilityConfig{
			EnableTelemetry: false,
			ServiceName:     "templatesd",
			OTLPEndpoint:    "localhost:4318",
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 1-65535)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}

	if c.Firebase.Enabled {
		if c.Firebase.BaseURL == "" {
			if c.Firebase.ProjectID == "" {
				return errors.New("firebase project_id required when firebase is enabled")
			}
			if c.Firebase.Region == "" {
				return errors.New("firebase region required when firebase is enabled")
			}
		}
		if c.Firebase.Timeout <= 0 {
			return errors.New("firebase timeout must be positive")
		}
		if c.Firebase.RatePerSecond <= 0 {
			return errors.New("firebase rate_per_second must be positive")
		}
	}

	if c.Cache.TTL <= 0 {
		return errors.New("cache ttl must be positive")
	}
	if c.Clone.Timeout <= 0 {
		return errors.New("clone timeout must be positive")
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging format must be 'json' or 'console', got %q", c.Logging.Format)
	}

	if c.Observability.EnableTelemetry && c.Observability.ServiceName == "" {
		return errors.New("service name required when telemetry is enabled")
	}

	return nil
}
