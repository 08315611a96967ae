// Command vicegrip is a resilient command-line client for the VICE C64
// emulator's JSON-RPC bridge.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/retroharness/vicegrip/internal/audit"
	"github.com/retroharness/vicegrip/internal/config"
	"github.com/retroharness/vicegrip/internal/health"
	"github.com/retroharness/vicegrip/internal/monitor"
	"github.com/retroharness/vicegrip/internal/observe"
	"github.com/retroharness/vicegrip/internal/schema"
	"github.com/retroharness/vicegrip/pkg/vice"
)

const usageText = `usage: vicegrip [flags] <command> [arguments]

Commands:
  call <tool> [json-args]   execute one tool, e.g. call vice.ping
  stats                     aggregate reliability statistics from the log
  failures [n]              the n most recent failed calls (default 10)
  audit                     diff the embedded catalogue against the server
  probe [tool ...]          measure round-trip latency per tool
  tools                     list the tools the catalogue knows

Flags:
`

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to the YAML configuration file (optional)")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usageText)
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vicegrip: %v\n", err)
		return 1
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel.Slog(),
	}))
	slog.SetDefault(logger)

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{ServiceName: "vicegrip"})
		if err != nil {
			slog.Error("could not initialise telemetry", "err", err)
			return 1
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Warn("telemetry shutdown", "err", err)
			}
		}()
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "call":
		return runCall(ctx, cfg, rest)
	case "stats":
		return runStats(cfg)
	case "failures":
		return runFailures(cfg, rest)
	case "audit":
		return runAudit(ctx, cfg)
	case "probe":
		return runProbe(ctx, cfg, rest)
	case "tools":
		return runTools()
	default:
		fmt.Fprintf(os.Stderr, "vicegrip: unknown command %q\n", cmd)
		flag.Usage()
		return 2
	}
}

// loadConfig reads the named config file, or falls back to defaults when no
// path is given and no vicegrip.yaml exists in the working directory.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if _, err := os.Stat("vicegrip.yaml"); err == nil {
			path = "vicegrip.yaml"
		} else {
			return config.Default(), nil
		}
	}
	return config.Load(path)
}

// newClient builds the resilient client from config.
func newClient(cfg *config.Config) (*vice.Client, error) {
	var store monitor.Store
	fileStore, err := fileStoreFor(cfg)
	if err != nil {
		return nil, err
	}
	store = fileStore

	if cfg.Monitor.PostgresDSN != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		pg, err := monitor.NewPostgresStore(ctx, cfg.Monitor.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect reliability database: %w", err)
		}
		store = monitor.NewTeeStore(fileStore, pg)
	}

	return vice.NewClient(vice.Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		Path:           cfg.Server.Path,
		MaxRetries:     cfg.Retry.MaxRetries,
		BaseDelay:      cfg.Retry.BaseDelayDuration(),
		BaseTimeout:    cfg.Retry.BaseTimeoutDuration(),
		SkipValidation: cfg.Validate.Disabled,
		Store:          store,
	})
}

func fileStoreFor(cfg *config.Config) (*monitor.FileStore, error) {
	if cfg.Monitor.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Monitor.LogPath), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		return monitor.NewFileStore(cfg.Monitor.LogPath), nil
	}
	return monitor.DefaultFileStore()
}

func runCall(ctx context.Context, cfg *config.Config, args []string) int {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "usage: vicegrip call <tool> [json-args]")
		return 2
	}
	tool := args[0]

	var toolArgs map[string]any
	if len(args) == 2 {
		if err := json.Unmarshal([]byte(args[1]), &toolArgs); err != nil {
			fmt.Fprintf(os.Stderr, "vicegrip: arguments must be a JSON object: %v\n", err)
			return 2
		}
	}

	client, err := newClient(cfg)
	if err != nil {
		slog.Error("could not build client", "err", err)
		return 1
	}
	defer client.Close()

	if cfg.Metrics.Enabled {
		stopListener := serveOps(cfg.Metrics.Listen, client)
		defer stopListener()
	}

	result, err := client.Call(ctx, tool, toolArgs)
	if err != nil {
		slog.Error("call failed", "tool", tool, "err", err)
		return 1
	}
	printJSON(result)
	return 0
}

func runStats(cfg *config.Config) int {
	m, err := loadLog(cfg)
	if err != nil {
		slog.Error("could not read reliability log", "err", err)
		return 1
	}
	stats := m.Stats()

	fmt.Printf("total calls:    %d\n", stats.TotalCalls)
	fmt.Printf("failures:       %d\n", stats.Failures)
	fmt.Printf("failure rate:   %.1f%%\n", stats.FailureRate*100)
	fmt.Printf("avg latency:    %.1fms\n", stats.AvgLatencyMs)
	if len(stats.FailuresByTool) > 0 {
		fmt.Println("failures by tool:")
		for _, tool := range sortedKeys(stats.FailuresByTool) {
			fmt.Printf("  %-40s %d\n", tool, stats.FailuresByTool[tool])
		}
	}
	return 0
}

func runFailures(cfg *config.Config, args []string) int {
	n := 10
	if len(args) == 1 {
		if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil || n < 0 {
			fmt.Fprintln(os.Stderr, "usage: vicegrip failures [n]")
			return 2
		}
	}

	m, err := loadLog(cfg)
	if err != nil {
		slog.Error("could not read reliability log", "err", err)
		return 1
	}

	failures := m.RecentFailures(n)
	if len(failures) == 0 {
		fmt.Println("no recorded failures")
		return 0
	}
	for _, e := range failures {
		fmt.Printf("%s  %-40s retries=%d fallback=%v  %s\n",
			e.Timestamp.Format(time.RFC3339), e.Tool, e.RetryCount, e.FallbackUsed, e.Error)
	}
	return 0
}

func loadLog(cfg *config.Config) (*monitor.Monitor, error) {
	path := cfg.Monitor.LogPath
	if path == "" {
		fs, err := monitor.DefaultFileStore()
		if err != nil {
			return nil, err
		}
		path = fs.Path()
	}
	entries, err := monitor.ReadLog(path)
	if err != nil {
		return nil, err
	}
	return monitor.FromEntries(entries), nil
}

func runAudit(ctx context.Context, cfg *config.Config) int {
	auditor := audit.New(cfg.Server.URL())
	report, err := auditor.Run(ctx, schema.Default())
	if err != nil {
		slog.Error("audit failed", "err", err)
		return 1
	}
	fmt.Println(report)
	if !report.Clean() {
		return 1
	}
	return 0
}

func runProbe(ctx context.Context, cfg *config.Config, args []string) int {
	client, err := newClient(cfg)
	if err != nil {
		slog.Error("could not build client", "err", err)
		return 1
	}
	defer client.Close()

	tools := args
	if len(tools) == 0 {
		tools = schema.Default().Names()
	}

	results, err := audit.Probe(ctx, client, tools, 4)
	if err != nil {
		slog.Error("probe aborted", "err", err)
		return 1
	}

	exit := 0
	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = "error: " + r.Err.Error()
			exit = 1
		}
		fmt.Printf("%-40s %8.1fms  %s\n", r.Tool, float64(r.Latency.Microseconds())/1000, status)
	}
	return exit
}

func runTools() int {
	for _, name := range schema.Default().Names() {
		fmt.Println(name)
	}
	return 0
}

// serveOps starts the metrics/health listener in the background and returns
// a function that shuts it down.
func serveOps(addr string, client *vice.Client) func() {
	mux := http.NewServeMux()
	health.New(health.EmulatorChecker(client.Ping)).Register(mux)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Warn("metrics listener", "err", err)
		}
	}()
	slog.Info("metrics listening", "addr", addr)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(out))
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
