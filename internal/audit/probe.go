package audit

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// Caller executes a single emulator tool call. It is satisfied by the
// resilient engine; tests substitute a fake.
type Caller interface {
	Call(ctx context.Context, tool string, args map[string]any) (any, error)
}

// ProbeResult records one probed tool's round-trip outcome.
type ProbeResult struct {
	Tool    string
	Latency time.Duration
	Err     error
}

// Probe calls every named tool once with empty arguments and measures
// round-trip latency. Probes run concurrently through an [errgroup] limited
// to maxInFlight goroutines; if ctx is cancelled, outstanding probes are
// abandoned and the context error is returned.
//
// Tools that require parameters will typically fail their probe. That is
// intentional: the latency and the error itself are still useful signal for
// judging endpoint health.
func Probe(ctx context.Context, caller Caller, tools []string, maxInFlight int) ([]ProbeResult, error) {
	if maxInFlight <= 0 {
		maxInFlight = 4
	}

	results := make([]ProbeResult, len(tools))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxInFlight)

	for i, name := range tools {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			_, err := caller.Call(gctx, name, nil)
			results[i] = ProbeResult{
				Tool:    name,
				Latency: time.Since(start),
				Err:     err,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Tool < results[j].Tool })
	return results, nil
}
