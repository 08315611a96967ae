package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults mirror the stock emulator binary protocol bridge settings.
const (
	DefaultHost        = "127.0.0.1"
	DefaultPort        = 6510
	DefaultPath        = "/mcp"
	DefaultMaxRetries  = 3
	DefaultBaseDelay   = 0.5
	DefaultBaseTimeout = 10.0
	DefaultListen      = "127.0.0.1:9464"
)

// Default returns a Config populated with the stock settings. Loading a
// file overrides only the fields the file sets.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
			Path: DefaultPath,
		},
		Retry: RetryConfig{
			MaxRetries:  DefaultMaxRetries,
			BaseDelay:   DefaultBaseDelay,
			BaseTimeout: DefaultBaseTimeout,
		},
		Metrics: MetricsConfig{
			Listen: DefaultListen,
		},
		LogLevel: LogInfo,
	}
}

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader] and
// [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	if cfg.Server.Host == "" {
		errs = append(errs, errors.New("server.host must not be empty"))
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d is out of range 1-65535", cfg.Server.Port))
	}
	if cfg.Server.Path == "" || cfg.Server.Path[0] != '/' {
		errs = append(errs, fmt.Errorf("server.path %q must start with /", cfg.Server.Path))
	}
	if cfg.Retry.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("retry.max_retries %d must not be negative", cfg.Retry.MaxRetries))
	}
	if cfg.Retry.BaseDelay < 0 {
		errs = append(errs, fmt.Errorf("retry.base_delay %v must not be negative", cfg.Retry.BaseDelay))
	}
	if cfg.Retry.BaseTimeout <= 0 {
		errs = append(errs, fmt.Errorf("retry.base_timeout %v must be positive", cfg.Retry.BaseTimeout))
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Listen == "" {
		errs = append(errs, errors.New("metrics.listen must be set when metrics.enabled is true"))
	}

	return errors.Join(errs...)
}
