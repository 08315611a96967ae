// Package vice is the public client for driving a VICE C64 emulator through
// its JSON-RPC bridge.
//
// A [Client] wraps the resilient call engine: every call is validated against
// the embedded tool catalogue, retried with exponential back-off on transport
// failures, switched once to the direct encoding on protocol errors, and
// recorded in the reliability log. The typed methods (e.g. [Client.ReadMemory],
// [Client.TypeText]) cover the full tool surface; [Client.Call] takes any tool
// name and raw arguments for the rest.
//
// Typical usage:
//
//	client, err := vice.Connect(ctx, vice.Config{})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	data, err := client.ReadMemory(ctx, "$0400", 40, nil)
package vice

import (
	"context"
	"fmt"
	"time"

	"github.com/retroharness/vicegrip/internal/engine"
	"github.com/retroharness/vicegrip/internal/monitor"
	"github.com/retroharness/vicegrip/internal/observe"
	"github.com/retroharness/vicegrip/internal/transport"
	"github.com/retroharness/vicegrip/pkg/types"
)

// Config configures a [Client]. The zero value targets a local emulator
// with stock settings.
type Config struct {
	// Host, Port and Path locate the JSON-RPC endpoint. Defaults:
	// 127.0.0.1, 6510, /mcp.
	Host string
	Port int
	Path string

	// MaxRetries, BaseDelay and BaseTimeout tune the retry schedule; zero
	// values take the engine defaults (3 retries, 500ms, 10s).
	MaxRetries  int
	BaseDelay   time.Duration
	BaseTimeout time.Duration

	// SkipValidation forwards calls to the server without client-side
	// argument checking.
	SkipValidation bool

	// LogPath overrides the reliability log location. Empty means
	// ~/.vicegrip/reliability.jsonl.
	LogPath string

	// Store overrides the reliability store entirely; when set, LogPath is
	// ignored.
	Store monitor.Store

	// Transport overrides the HTTP layer. Tests use this.
	Transport transport.Doer

	// Metrics overrides the metrics sink. Nil uses the process-wide
	// default instruments.
	Metrics *observe.Metrics
}

// URL returns the endpoint this config points at, with defaults applied.
func (c Config) URL() string {
	host := c.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := c.Port
	if port == 0 {
		port = 6510
	}
	path := c.Path
	if path == "" {
		path = "/mcp"
	}
	return fmt.Sprintf("http://%s:%d%s", host, port, path)
}

// Client is a resilient VICE emulator client. Safe for concurrent use.
type Client struct {
	engine *engine.Engine
	store  monitor.Store
}

// NewClient builds a Client from cfg without contacting the server.
func NewClient(cfg Config) (*Client, error) {
	store := cfg.Store
	if store == nil {
		if cfg.LogPath != "" {
			store = monitor.NewFileStore(cfg.LogPath)
		} else {
			fs, err := monitor.DefaultFileStore()
			if err != nil {
				return nil, fmt.Errorf("vice: open reliability log: %w", err)
			}
			store = fs
		}
	}

	e := engine.New(engine.Config{
		URL:            cfg.URL(),
		MaxRetries:     cfg.MaxRetries,
		BaseDelay:      cfg.BaseDelay,
		BaseTimeout:    cfg.BaseTimeout,
		SkipValidation: cfg.SkipValidation,
		Transport:      cfg.Transport,
		Monitor:        monitor.New(store),
		Metrics:        cfg.Metrics,
	})
	return &Client{engine: e, store: store}, nil
}

// Connect builds a Client and verifies the server is reachable with a ping.
func Connect(ctx context.Context, cfg Config) (*Client, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := client.Ping(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("vice: server unreachable at %s: %w", cfg.URL(), err)
	}
	return client, nil
}

// Call executes a named tool with raw arguments. It is the generic
// entry point underlying every typed method.
func (c *Client) Call(ctx context.Context, tool string, args map[string]any) (any, error) {
	return c.engine.Call(ctx, tool, args)
}

// Stats returns aggregate reliability statistics for this client's calls.
func (c *Client) Stats() types.Stats {
	return c.engine.Monitor().Stats()
}

// RecentFailures returns up to n most recent failed calls, oldest first.
func (c *Client) RecentFailures(n int) []types.LogEntry {
	return c.engine.Monitor().RecentFailures(n)
}

// Close releases the reliability store if it holds resources.
func (c *Client) Close() error {
	if closer, ok := c.store.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
