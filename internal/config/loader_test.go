package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/retroharness/vicegrip/internal/config"
)

func TestLoadFromReader_Defaults(t *testing.T) {
	t.Parallel()
	cfg, err := config.LoadFromReader(strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	if got, want := cfg.Server.URL(), "http://127.0.0.1:6510/mcp"; got != want {
		t.Errorf("Server.URL() = %q, want %q", got, want)
	}
	if cfg.Retry.MaxRetries != 3 {
		t.Errorf("Retry.MaxRetries = %d, want 3", cfg.Retry.MaxRetries)
	}
	if got, want := cfg.Retry.BaseDelayDuration(), 500*time.Millisecond; got != want {
		t.Errorf("BaseDelayDuration() = %v, want %v", got, want)
	}
	if got, want := cfg.Retry.BaseTimeoutDuration(), 10*time.Second; got != want {
		t.Errorf("BaseTimeoutDuration() = %v, want %v", got, want)
	}
	if cfg.Validate.Disabled {
		t.Error("Validate.Disabled = true, want false by default")
	}
	if cfg.LogLevel != config.LogInfo {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, config.LogInfo)
	}
}

func TestLoadFromReader_Overrides(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  host: c64.lan
  port: 8080
  path: /rpc
retry:
  max_retries: 5
  base_delay: 0.25
  base_timeout: 2.5
monitor:
  log_path: /tmp/rel.jsonl
  postgres_dsn: postgres://localhost/vicegrip
metrics:
  enabled: true
  listen: 0.0.0.0:9464
log_level: debug
validate:
  disabled: true
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadFromReader() error = %v", err)
	}
	if got, want := cfg.Server.URL(), "http://c64.lan:8080/rpc"; got != want {
		t.Errorf("Server.URL() = %q, want %q", got, want)
	}
	if cfg.Retry.MaxRetries != 5 {
		t.Errorf("Retry.MaxRetries = %d, want 5", cfg.Retry.MaxRetries)
	}
	if got, want := cfg.Retry.BaseDelayDuration(), 250*time.Millisecond; got != want {
		t.Errorf("BaseDelayDuration() = %v, want %v", got, want)
	}
	if cfg.Monitor.LogPath != "/tmp/rel.jsonl" {
		t.Errorf("Monitor.LogPath = %q", cfg.Monitor.LogPath)
	}
	if cfg.Monitor.PostgresDSN != "postgres://localhost/vicegrip" {
		t.Errorf("Monitor.PostgresDSN = %q", cfg.Monitor.PostgresDSN)
	}
	if !cfg.Metrics.Enabled {
		t.Error("Metrics.Enabled = false, want true")
	}
	if !cfg.Validate.Disabled {
		t.Error("Validate.Disabled = false, want true")
	}
	if cfg.LogLevel != config.LogDebug {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadFromReader_UnknownFieldRejected(t *testing.T) {
	t.Parallel()
	_, err := config.LoadFromReader(strings.NewReader("serverr:\n  host: oops\n"))
	if err == nil {
		t.Fatal("expected error for unknown top-level field, got nil")
	}
	if !strings.Contains(err.Error(), "decode yaml") {
		t.Errorf("error should mention decode yaml, got: %v", err)
	}
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	t.Parallel()
	yaml := `
server:
  host: ""
  port: 99999
  path: mcp
retry:
  max_retries: -1
  base_delay: -0.5
  base_timeout: 0
log_level: loud
metrics:
  enabled: true
  listen: ""
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	for _, want := range []string{
		"log_level",
		"server.host",
		"server.port",
		"server.path",
		"retry.max_retries",
		"retry.base_delay",
		"retry.base_timeout",
		"metrics.listen",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s, got: %v", want, err)
		}
	}
}

func TestLogLevel_Slog(t *testing.T) {
	t.Parallel()
	tests := []struct {
		level config.LogLevel
		want  string
	}{
		{config.LogDebug, "DEBUG"},
		{config.LogInfo, "INFO"},
		{config.LogWarn, "WARN"},
		{config.LogError, "ERROR"},
		{config.LogLevel(""), "INFO"},
		{config.LogLevel("loud"), "INFO"},
	}
	for _, tt := range tests {
		if got := tt.level.Slog().String(); got != tt.want {
			t.Errorf("LogLevel(%q).Slog() = %v, want %v", tt.level, got, tt.want)
		}
	}
}
