// Package config provides the sparkhub CLI configuration: where the
// backend lives, where local state is kept, and how output is rendered.
// Values come from sparkhub.yaml, environment variables (SPARKHUB_*), and
// CLI flags, in increasing order of precedence.
package config

import (
	"net/url"
	"time"
)

// Config is the top-level CLI configuration.
type Config struct {
	// API configures the backend connection.
	API APIConfig `yaml:"api" mapstructure:"api"`

	// Session configures where the persisted session lives.
	Session SessionConfig `yaml:"session" mapstructure:"session"`

	// History configures the local call-history database.
	History HistoryConfig `yaml:"history" mapstructure:"history"`

	// Log configures diagnostic logging (stderr, never stdout).
	Log LogConfig `yaml:"log" mapstructure:"log"`

	// Output selects how command results are rendered.
	// Valid values: "text", "json", "yaml". Defaults to "text".
	Output string `yaml:"output" mapstructure:"output" validate:"omitempty,oneof=text json yaml"`

	// Metrics configures the optional local /metrics endpoint.
	Metrics MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// APIConfig configures the backend connection.
type APIConfig struct {
	// BaseURL is the API root (e.g., "http://localhost:8080/api").
	// Defaults to "http://localhost:8080/api" if empty.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// AssetOrigin is the origin prepended to server-relative asset paths
	// (cover images, avatars). Defaults to the BaseURL origin if empty.
	AssetOrigin string `yaml:"asset_origin" mapstructure:"asset_origin" validate:"omitempty,http_origin"`

	// Timeout is the fixed per-request ceiling (e.g., "10s").
	// Defaults to "10s" if empty.
	Timeout string `yaml:"timeout" mapstructure:"timeout" validate:"omitempty"`

	// CacheTTL is the short-lived GET read-cache window (e.g., "5s").
	// "0" disables the cache. Defaults to "5s" if empty.
	CacheTTL string `yaml:"cache_ttl" mapstructure:"cache_ttl" validate:"omitempty"`
}

// SessionConfig configures the persisted session snapshot.
type SessionConfig struct {
	// Path is the session file location.
	// Defaults to ~/.sparkhub/session.json if empty.
	Path string `yaml:"path" mapstructure:"path"`
}

// HistoryConfig configures the local call-history database.
type HistoryConfig struct {
	// Enabled turns call-history recording on or off.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Path is the SQLite database location.
	// Defaults to ~/.sparkhub/history.db if empty.
	Path string `yaml:"path" mapstructure:"path"`

	// Retention is how long entries are kept (e.g., "168h").
	// Defaults to "168h" (one week) if empty.
	Retention string `yaml:"retention" mapstructure:"retention" validate:"omitempty"`
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	// Level sets the minimum log level.
	// Valid values: "debug", "info", "warn", "error".
	// Defaults to "warn" if empty: a CLI stays quiet unless asked.
	Level string `yaml:"level" mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
}

// MetricsConfig configures the optional prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address (e.g., "127.0.0.1:9090").
	// Empty disables the endpoint.
	Addr string `yaml:"addr" mapstructure:"addr" validate:"omitempty,hostname_port"`
}

// Defaults applied by SetDefaults.
const (
	DefaultBaseURL   = "http://localhost:8080/api"
	DefaultTimeout   = "10s"
	DefaultCacheTTL  = "5s"
	DefaultRetention = "168h"
	DefaultLogLevel  = "warn"
	DefaultOutput    = "text"
)

// SetDefaults fills in default values for optional fields.
func (c *Config) SetDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.API.Timeout == "" {
		c.API.Timeout = DefaultTimeout
	}
	if c.API.CacheTTL == "" {
		c.API.CacheTTL = DefaultCacheTTL
	}
	if c.History.Retention == "" {
		c.History.Retention = DefaultRetention
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
}

// RequestTimeout returns the parsed API timeout.
func (c *Config) RequestTimeout() (time.Duration, error) {
	return time.ParseDuration(c.API.Timeout)
}

// ReadCacheTTL returns the parsed read-cache window; zero disables it.
func (c *Config) ReadCacheTTL() (time.Duration, error) {
	if c.API.CacheTTL == "0" {
		return 0, nil
	}
	return time.ParseDuration(c.API.CacheTTL)
}

// HistoryRetention returns the parsed history retention window.
func (c *Config) HistoryRetention() (time.Duration, error) {
	return time.ParseDuration(c.History.Retention)
}

// ResolvedAssetOrigin returns the configured asset origin, falling back to
// the BaseURL's scheme://host when unset.
func (c *Config) ResolvedAssetOrigin() string {
	if c.API.AssetOrigin != "" {
		return c.API.AssetOrigin
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
