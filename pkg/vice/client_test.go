package vice

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/retroharness/vicegrip/pkg/types"
)

// okResponse is a successful tools/call reply whose text content decodes to
// {"status": "ok"}.
const okResponse = `{"jsonrpc":"2.0","id":1,"result":{"content":[{"type":"text","text":"{\"status\": \"ok\"}"}]}}`

// captureTransport records every request body and replies with a canned
// success.
type captureTransport struct {
	mu     sync.Mutex
	bodies [][]byte
}

func (c *captureTransport) Post(_ context.Context, _ string, body []byte, _ time.Duration) (int, []byte, error) {
	c.mu.Lock()
	c.bodies = append(c.bodies, body)
	c.mu.Unlock()
	return 200, []byte(okResponse), nil
}

// lastArguments decodes the most recent request and returns the tool name
// and arguments from its tools/call params.
func (c *captureTransport) lastArguments(t *testing.T) (tool string, args map[string]any) {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.bodies) == 0 {
		t.Fatal("no requests captured")
	}
	var req struct {
		Method string `json:"method"`
		Params struct {
			Name      string         `json:"name"`
			Arguments map[string]any `json:"arguments"`
		} `json:"params"`
	}
	if err := json.Unmarshal(c.bodies[len(c.bodies)-1], &req); err != nil {
		t.Fatalf("decode captured request: %v", err)
	}
	if req.Method != "tools/call" {
		t.Fatalf("method = %q, want tools/call", req.Method)
	}
	return req.Params.Name, req.Params.Arguments
}

// memStore keeps records in memory.
type memStore struct {
	mu      sync.Mutex
	entries []types.LogEntry
}

func (m *memStore) Append(e types.LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func testClient(t *testing.T) (*Client, *captureTransport) {
	t.Helper()
	ct := &captureTransport{}
	client, err := NewClient(Config{
		Store:     &memStore{},
		Transport: ct,
	})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client, ct
}

func TestConfig_URLDefaults(t *testing.T) {
	t.Parallel()
	if got, want := (Config{}).URL(), "http://127.0.0.1:6510/mcp"; got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
	cfg := Config{Host: "c64.lan", Port: 8080, Path: "/rpc"}
	if got, want := cfg.URL(), "http://c64.lan:8080/rpc"; got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

func TestConnect_PingsServer(t *testing.T) {
	t.Parallel()
	ct := &captureTransport{}
	client, err := Connect(context.Background(), Config{Store: &memStore{}, Transport: ct})
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close()

	tool, _ := ct.lastArguments(t)
	if tool != "vice.ping" {
		t.Errorf("connect probe tool = %q, want vice.ping", tool)
	}
}

func TestConnect_UnreachableServer(t *testing.T) {
	t.Parallel()
	refused := &types.TransportError{Err: errors.New("connection refused")}
	_, err := Connect(context.Background(), Config{
		Store:      &memStore{},
		MaxRetries: 1,
		BaseDelay:  time.Millisecond,
		Transport: doerFunc(func(context.Context, string, []byte, time.Duration) (int, []byte, error) {
			return 0, nil, refused
		}),
	})
	var exhausted *types.ExhaustionError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Connect() error = %v, want ExhaustionError", err)
	}
}

type doerFunc func(ctx context.Context, url string, body []byte, timeout time.Duration) (int, []byte, error)

func (f doerFunc) Post(ctx context.Context, url string, body []byte, timeout time.Duration) (int, []byte, error) {
	return f(ctx, url, body, timeout)
}

func TestTypedWrappers_ArgumentShaping(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		call     func(ctx context.Context, c *Client) error
		wantTool string
		wantArgs map[string]any
	}{
		{
			name: "no-arg tool sends empty object",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Registers(ctx)
				return err
			},
			wantTool: "vice.registers.get",
			wantArgs: map[string]any{},
		},
		{
			name: "required args positional",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.SetRegister(ctx, "PC", 0xc000)
				return err
			},
			wantTool: "vice.registers.set",
			wantArgs: map[string]any{"register": "PC", "value": float64(0xc000)},
		},
		{
			name: "nil options omitted entirely",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.ReadMemory(ctx, "$0400", 40, nil)
				return err
			},
			wantTool: "vice.memory.read",
			wantArgs: map[string]any{"address": "$0400", "size": float64(40)},
		},
		{
			name: "set options included, unset omitted",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Step(ctx, &StepOptions{Count: Int(3)})
				return err
			},
			wantTool: "vice.execution.step",
			wantArgs: map[string]any{"count": float64(3)},
		},
		{
			name: "numeric address passes through",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.Disassemble(ctx, 0xc000, &DisassembleOptions{ShowSymbols: Bool(true)})
				return err
			},
			wantTool: "vice.disassemble",
			wantArgs: map[string]any{"address": float64(0xc000), "show_symbols": true},
		},
		{
			name: "array arguments",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.WriteMemory(ctx, 0x0400, []int{1, 2, 3})
				return err
			},
			wantTool: "vice.memory.write",
			wantArgs: map[string]any{
				"address": float64(0x0400),
				"data":    []any{float64(1), float64(2), float64(3)},
			},
		},
		{
			name: "string options",
			call: func(ctx context.Context, c *Client) error {
				_, err := c.PressKey(ctx, "a", &KeyOptions{
					Modifiers: []string{"shift"},
					HoldMs:    Int(50),
				})
				return err
			},
			wantTool: "vice.keyboard.key_press",
			wantArgs: map[string]any{
				"key":       "a",
				"modifiers": []any{"shift"},
				"hold_ms":   float64(50),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			client, ct := testClient(t)
			if err := tt.call(context.Background(), client); err != nil {
				t.Fatalf("call error = %v", err)
			}
			tool, args := ct.lastArguments(t)
			if tool != tt.wantTool {
				t.Errorf("tool = %q, want %q", tool, tt.wantTool)
			}
			if !argsEqual(args, tt.wantArgs) {
				t.Errorf("arguments = %#v, want %#v", args, tt.wantArgs)
			}
		})
	}
}

func TestCall_UnwrapsTextContent(t *testing.T) {
	t.Parallel()
	client, _ := testClient(t)
	result, err := client.Ping(context.Background())
	if err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	m, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("result type = %T, want map", result)
	}
	if m["status"] != "ok" {
		t.Errorf("result = %v, want status ok", m)
	}
}

func TestStatsAndRecentFailures(t *testing.T) {
	t.Parallel()
	client, _ := testClient(t)
	ctx := context.Background()

	if _, err := client.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	// Validation failure recorded as a failed call without reaching the wire.
	if _, err := client.Call(ctx, "vice.registers.set", map[string]any{"register": "A"}); err == nil {
		t.Fatal("expected validation error, got nil")
	}

	stats := client.Stats()
	if stats.TotalCalls != 2 {
		t.Errorf("TotalCalls = %d, want 2", stats.TotalCalls)
	}
	if stats.Failures != 1 {
		t.Errorf("Failures = %d, want 1", stats.Failures)
	}

	failures := client.RecentFailures(10)
	if len(failures) != 1 {
		t.Fatalf("len(RecentFailures) = %d, want 1", len(failures))
	}
	if failures[0].Tool != "vice.registers.set" {
		t.Errorf("failure tool = %q, want vice.registers.set", failures[0].Tool)
	}
}

// argsEqual compares decoded-JSON argument maps, tolerating the []any vs
// typed-slice difference introduced by the round-trip.
func argsEqual(got, want map[string]any) bool {
	raw1, err1 := json.Marshal(got)
	raw2, err2 := json.Marshal(want)
	return err1 == nil && err2 == nil && string(raw1) == string(raw2)
}
