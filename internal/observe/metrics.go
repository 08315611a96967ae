// Package observe provides application-wide observability primitives for
// vicegrip: OpenTelemetry metrics, call tracing, and structured logging
// helpers.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can be
// scraped from a standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all vicegrip metrics.
const meterName = "github.com/retroharness/vicegrip"

// Metrics holds all OpenTelemetry metric instruments for the call engine.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// CallDuration tracks end-to-end logical call latency, including all
	// retries and back-off sleeps. Use with attributes:
	//   attribute.String("tool", ...), attribute.String("status", ...)
	CallDuration metric.Float64Histogram

	// Calls counts completed logical calls. Use with attributes:
	//   attribute.String("tool", ...), attribute.String("status", ...)
	Calls metric.Int64Counter

	// Retries counts network attempts beyond each call's first attempt.
	// Use with attribute: attribute.String("tool", ...)
	Retries metric.Int64Counter

	// Fallbacks counts calls that switched from the wrapped to the direct
	// encoding. Use with attribute: attribute.String("tool", ...)
	Fallbacks metric.Int64Counter

	// ValidationFailures counts calls rejected client-side before any
	// network activity. Use with attribute: attribute.String("tool", ...)
	ValidationFailures metric.Int64Counter

	// UnexpectedParams counts arguments forwarded to the server that the
	// local schema does not declare. Use with attributes:
	//   attribute.String("tool", ...), attribute.String("param", ...)
	UnexpectedParams metric.Int64Counter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// a local emulator round trip plus retry back-off tails.
var latencyBuckets = []float64{
	0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.CallDuration, err = m.Float64Histogram("vicegrip.call.duration",
		metric.WithDescription("End-to-end logical call latency, retries included."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Calls, err = m.Int64Counter("vicegrip.calls",
		metric.WithDescription("Completed logical calls by tool and status."),
	); err != nil {
		return nil, err
	}
	if met.Retries, err = m.Int64Counter("vicegrip.retries",
		metric.WithDescription("Network attempts beyond the first, by tool."),
	); err != nil {
		return nil, err
	}
	if met.Fallbacks, err = m.Int64Counter("vicegrip.fallbacks",
		metric.WithDescription("Calls that fell back to the direct encoding, by tool."),
	); err != nil {
		return nil, err
	}
	if met.ValidationFailures, err = m.Int64Counter("vicegrip.validation.failures",
		metric.WithDescription("Calls rejected by client-side validation, by tool."),
	); err != nil {
		return nil, err
	}
	if met.UnexpectedParams, err = m.Int64Counter("vicegrip.unexpected_params",
		metric.WithDescription("Undeclared arguments forwarded to the server, by tool and param."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it
// on first call using [otel.GetMeterProvider]. Subsequent calls return the
// same pointer. Panics if instrument creation fails (should not happen with
// the global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordCall records one completed logical call with its duration.
func (m *Metrics) RecordCall(ctx context.Context, tool string, seconds float64, success bool) {
	status := "ok"
	if !success {
		status = "error"
	}
	attrs := metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("status", status),
	)
	m.Calls.Add(ctx, 1, attrs)
	m.CallDuration.Record(ctx, seconds, attrs)
}

// RecordRetries records n retries for tool. No-op when n is zero.
func (m *Metrics) RecordRetries(ctx context.Context, tool string, n int) {
	if n <= 0 {
		return
	}
	m.Retries.Add(ctx, int64(n), metric.WithAttributes(attribute.String("tool", tool)))
}

// RecordFallback records one encoding fallback for tool.
func (m *Metrics) RecordFallback(ctx context.Context, tool string) {
	m.Fallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("tool", tool)))
}

// RecordValidationFailure records one client-side rejection for tool.
func (m *Metrics) RecordValidationFailure(ctx context.Context, tool string) {
	m.ValidationFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("tool", tool)))
}

// RecordUnexpectedParam records one undeclared argument for tool.
func (m *Metrics) RecordUnexpectedParam(ctx context.Context, tool, param string) {
	m.UnexpectedParams.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("param", param),
	))
}
