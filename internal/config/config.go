// Package config defines the vicegrip YAML configuration schema and its loader.
package config

import (
	"fmt"
	"log/slog"
	"time"
)

// LogLevel controls log verbosity for the vicegrip CLI.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Slog maps l onto the corresponding [slog.Level]. Unrecognised or empty
// values map to [slog.LevelInfo].
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config is the root of the vicegrip configuration file.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Retry    RetryConfig    `yaml:"retry"`
	Monitor  MonitorConfig  `yaml:"monitor"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	LogLevel LogLevel       `yaml:"log_level"`
	Validate ValidateConfig `yaml:"validate"`
}

// ServerConfig locates the emulator's JSON-RPC endpoint.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Path string `yaml:"path"`
}

// URL returns the full HTTP endpoint for the configured server.
func (s ServerConfig) URL() string {
	return fmt.Sprintf("http://%s:%d%s", s.Host, s.Port, s.Path)
}

// RetryConfig tunes the retry and back-off schedule. BaseDelay and
// BaseTimeout are expressed in seconds so fractional values like 0.5
// read naturally in YAML.
type RetryConfig struct {
	MaxRetries  int     `yaml:"max_retries"`
	BaseDelay   float64 `yaml:"base_delay"`
	BaseTimeout float64 `yaml:"base_timeout"`
}

// BaseDelayDuration returns the initial back-off delay as a [time.Duration].
func (r RetryConfig) BaseDelayDuration() time.Duration {
	return time.Duration(r.BaseDelay * float64(time.Second))
}

// BaseTimeoutDuration returns the first-attempt timeout as a [time.Duration].
func (r RetryConfig) BaseTimeoutDuration() time.Duration {
	return time.Duration(r.BaseTimeout * float64(time.Second))
}

// ValidateConfig controls client-side argument checking.
type ValidateConfig struct {
	// Disabled turns off argument validation, forwarding every call to
	// the server untouched.
	Disabled bool `yaml:"disabled"`
}

// MonitorConfig controls where call records are persisted.
type MonitorConfig struct {
	// LogPath is the JSONL reliability log. Empty means the default
	// under the user's home directory.
	LogPath string `yaml:"log_path"`
	// PostgresDSN, when set, mirrors every record into Postgres in
	// addition to the JSONL log.
	PostgresDSN string `yaml:"postgres_dsn"`
}

// MetricsConfig controls the optional Prometheus metrics endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}
