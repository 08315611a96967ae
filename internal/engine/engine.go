// Package engine implements the dispatch/retry controller that owns the
// lifecycle of one logical tool call: client-side validation, encoding
// choice, retries with exponential back-off and timeout escalation, the
// single free fallback from the wrapped to the direct encoding, and the
// production of exactly one reliability log entry per call.
//
// The controller is stateless across calls except for the process-wide
// request-id counter and the shared reliability monitor; any number of
// logical calls may be in flight concurrently.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/retroharness/vicegrip/internal/monitor"
	"github.com/retroharness/vicegrip/internal/observe"
	"github.com/retroharness/vicegrip/internal/resilience"
	"github.com/retroharness/vicegrip/internal/rpc"
	"github.com/retroharness/vicegrip/internal/schema"
	"github.com/retroharness/vicegrip/internal/transport"
	"github.com/retroharness/vicegrip/pkg/types"
)

// Config holds the knobs for an [Engine]. Zero-value fields are replaced
// with defaults by [New]; dependency fields left nil get production
// implementations.
type Config struct {
	// URL is the JSON-RPC endpoint, e.g. "http://127.0.0.1:6510/mcp".
	URL string

	// MaxRetries is the number of retries after the first attempt, so a
	// call makes at most MaxRetries+1 network attempts. Default: 3.
	MaxRetries int

	// BaseDelay is the back-off base: the sleep before the retry following
	// attempt n is BaseDelay × 2^n. Default: 500ms.
	BaseDelay time.Duration

	// BaseTimeout is the first attempt's wall-clock budget; attempt n gets
	// BaseTimeout × 1.5^n. Default: 10s.
	BaseTimeout time.Duration

	// SkipValidation disables client-side schema validation.
	SkipValidation bool

	// Registry supplies the tool schemas. Default: [schema.Default].
	Registry *schema.Registry

	// Transport performs the network sends. Default: [transport.NewHTTPDoer].
	Transport transport.Doer

	// Monitor receives one log entry per logical call. Default: a monitor
	// without durable persistence.
	Monitor *monitor.Monitor

	// Metrics receives per-call instrument updates. Default:
	// [observe.DefaultMetrics].
	Metrics *observe.Metrics
}

// Engine is the dispatch/retry controller. Safe for concurrent use; each
// call's retry state is private to that call.
type Engine struct {
	url            string
	maxRetries     int
	baseDelay      time.Duration
	baseTimeout    time.Duration
	skipValidation bool

	registry  *schema.Registry
	transport transport.Doer
	monitor   *monitor.Monitor
	metrics   *observe.Metrics

	// idCounter issues request ids. Ids are unique for the lifetime of the
	// engine and never reused, even across retries of one logical call.
	idCounter atomic.Int64

	// sleep is swappable so retry tests run without real back-off waits.
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates an Engine from cfg, applying defaults for zero-value fields.
func New(cfg Config) *Engine {
	if cfg.URL == "" {
		cfg.URL = "http://127.0.0.1:6510/mcp"
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 500 * time.Millisecond
	}
	if cfg.BaseTimeout <= 0 {
		cfg.BaseTimeout = 10 * time.Second
	}
	if cfg.Registry == nil {
		cfg.Registry = schema.Default()
	}
	if cfg.Transport == nil {
		cfg.Transport = transport.NewHTTPDoer()
	}
	if cfg.Monitor == nil {
		cfg.Monitor = monitor.New(nil)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = observe.DefaultMetrics()
	}
	return &Engine{
		url:            cfg.URL,
		maxRetries:     cfg.MaxRetries,
		baseDelay:      cfg.BaseDelay,
		baseTimeout:    cfg.BaseTimeout,
		skipValidation: cfg.SkipValidation,
		registry:       cfg.Registry,
		transport:      cfg.Transport,
		monitor:        cfg.Monitor,
		metrics:        cfg.Metrics,
		sleep:          resilience.Sleep,
	}
}

// Monitor returns the engine's reliability monitor.
func (e *Engine) Monitor() *monitor.Monitor { return e.monitor }

// Registry returns the engine's schema registry.
func (e *Engine) Registry() *schema.Registry { return e.registry }

// Call executes one logical tool call and returns the decoded result.
//
// Arguments are validated against the registry before any network activity;
// a non-empty violation list aborts with a [*types.ValidationError] and is
// recorded as a synthetic failed call with zero attempts. Undeclared
// argument keys are forwarded to the server but logged and counted.
//
// The returned error is one of the typed failures in [types]: a
// [*types.ToolError] surfaces immediately without retry, a
// [*types.ProtocolError] is returned as itself when retries end on a
// protocol failure, and transport-level exhaustion yields a
// [*types.ExhaustionError] wrapping the last concrete failure.
func (e *Engine) Call(ctx context.Context, tool string, args map[string]any) (any, error) {
	ctx, span := observe.StartSpan(ctx, "vicegrip.call",
		trace.WithAttributes(attribute.String("tool", tool)))
	defer span.End()

	start := time.Now()

	if !e.skipValidation {
		violations, unknown := e.registry.Validate(tool, args)
		for _, key := range unknown {
			observe.Logger(ctx).Warn("unexpected parameter, forwarding anyway",
				"tool", tool, "param", key)
			e.metrics.RecordUnexpectedParam(ctx, tool, key)
		}
		if len(violations) > 0 {
			err := &types.ValidationError{
				Tool:       tool,
				Violations: violations,
				Code:       rpc.CodeInvalidParams,
			}
			e.metrics.RecordValidationFailure(ctx, tool)
			e.finish(ctx, tool, start, err, 0, false)
			return nil, err
		}
	}

	return e.dispatch(ctx, tool, args, start)
}

// dispatch runs the retry loop for one validated call.
func (e *Engine) dispatch(ctx context.Context, tool string, args map[string]any, start time.Time) (any, error) {
	var (
		lastErr  error
		fallback bool
		attempts int
	)

loop:
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		attempts = attempt + 1
		timeout := resilience.Timeout(e.baseTimeout, attempt)

		var (
			body []byte
			err  error
		)
		id := e.idCounter.Add(1)
		if fallback {
			body, err = rpc.EncodeDirect(id, tool, args)
		} else {
			body, err = rpc.EncodeWrapped(id, tool, args)
		}
		if err != nil {
			// Unmarshalable argument values cannot succeed on retry.
			err = fmt.Errorf("engine: %w", err)
			e.finish(ctx, tool, start, err, attempt, fallback)
			return nil, err
		}

		result, err := e.attempt(ctx, body, timeout)
		if err == nil {
			e.finish(ctx, tool, start, nil, attempt, fallback)
			return result, nil
		}
		lastErr = err

		var (
			toolErr      *types.ToolError
			protoErr     *types.ProtocolError
			transportErr *types.TransportError
		)
		switch {
		case errors.As(err, &toolErr):
			// Tool-level rejections are terminal.
			e.finish(ctx, tool, start, err, attempt, fallback)
			return nil, err

		case errors.As(err, &protoErr):
			observe.Logger(ctx).Info("protocol error",
				"tool", tool,
				"attempt", attempt+1,
				"max_attempts", e.maxRetries+1,
				"code", protoErr.Code,
				"error", protoErr.Message)
			if !fallback {
				// First protocol error means the server likely rejects the
				// wrapped envelope, not that it is overloaded: switch to the
				// direct encoding and retry immediately with no delay.
				fallback = true
				e.metrics.RecordFallback(ctx, tool)
				continue
			}
			if attempt < e.maxRetries {
				if err := e.sleep(ctx, resilience.Delay(e.baseDelay, attempt)); err != nil {
					break loop // cancelled mid-back-off
				}
			}

		case errors.As(err, &transportErr):
			observe.Logger(ctx).Info("transport error",
				"tool", tool,
				"attempt", attempt+1,
				"max_attempts", e.maxRetries+1,
				"timeout", transportErr.Timeout,
				"error", err)
			if attempt < e.maxRetries {
				if err := e.sleep(ctx, resilience.Delay(e.baseDelay, attempt)); err != nil {
					break loop
				}
			}

		default:
			// Decode yields only the classified errors above; treat anything
			// else like a transport failure and keep retrying.
			observe.Logger(ctx).Info("unclassified call error",
				"tool", tool, "attempt", attempt+1, "error", err)
			if attempt < e.maxRetries {
				if err := e.sleep(ctx, resilience.Delay(e.baseDelay, attempt)); err != nil {
					break loop
				}
			}
		}
	}

	// Retry budget spent. A final protocol failure surfaces as itself; a
	// transport failure is wrapped so callers see the attempt count.
	finalErr := lastErr
	var transportErr *types.TransportError
	if errors.As(lastErr, &transportErr) {
		finalErr = &types.ExhaustionError{Tool: tool, Attempts: attempts, Err: lastErr}
	}
	e.finish(ctx, tool, start, finalErr, attempts-1, fallback)
	return nil, finalErr
}

// attempt performs one network round trip and decodes the response.
func (e *Engine) attempt(ctx context.Context, body []byte, timeout time.Duration) (any, error) {
	// The response body, not the HTTP status, determines the outcome: the
	// server answers JSON-RPC errors with 200, and a proxy's HTML error page
	// classifies as a protocol failure in DecodeResponse.
	_, respBody, err := e.transport.Post(ctx, e.url, body, timeout)
	if err != nil {
		return nil, err
	}
	return rpc.DecodeResponse(respBody)
}

// finish records the single terminal log entry and metrics for a call.
func (e *Engine) finish(ctx context.Context, tool string, start time.Time, err error, retryCount int, fallbackUsed bool) {
	elapsed := time.Since(start)
	entry := types.LogEntry{
		Timestamp:    time.Now().UTC(),
		Tool:         tool,
		DurationMs:   float64(elapsed) / float64(time.Millisecond),
		Success:      err == nil,
		RetryCount:   retryCount,
		FallbackUsed: fallbackUsed,
	}
	if err != nil {
		entry.Error = err.Error()
		if code, ok := types.ErrorCode(err); ok {
			entry.ErrorCode = &code
		}
	}
	e.monitor.Record(entry)
	e.metrics.RecordCall(ctx, tool, elapsed.Seconds(), err == nil)
	e.metrics.RecordRetries(ctx, tool, retryCount)
}
