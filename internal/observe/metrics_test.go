package observe

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// newTestMetrics returns a Metrics instance backed by a ManualReader for
// programmatic metric inspection.
func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

// collect gathers all metric data from the reader.
func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

// findMetric searches for a metric by name across all scope metrics.
func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestNewMetrics_CreatesWithoutError(t *testing.T) {
	m, _ := newTestMetrics(t)
	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}
}

func TestRecordCall(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordCall(ctx, "vice.ping", 0.05, true)
	m.RecordCall(ctx, "vice.ping", 1.2, false)

	rm := collect(t, reader)

	calls := findMetric(rm, "vicegrip.calls")
	if calls == nil {
		t.Fatal("vicegrip.calls not found")
	}
	sum, ok := calls.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("vicegrip.calls data type = %T", calls.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 2 {
		t.Errorf("calls total = %d, want 2", total)
	}

	dur := findMetric(rm, "vicegrip.call.duration")
	if dur == nil {
		t.Fatal("vicegrip.call.duration not found")
	}
	hist, ok := dur.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("duration data type = %T", dur.Data)
	}
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	if count != 2 {
		t.Errorf("duration observations = %d, want 2", count)
	}
}

func TestRecordRetries_SkipsZero(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordRetries(ctx, "vice.ping", 0)
	rm := collect(t, reader)
	if found := findMetric(rm, "vicegrip.retries"); found != nil {
		sum := found.Data.(metricdata.Sum[int64])
		if len(sum.DataPoints) != 0 {
			t.Errorf("retries recorded for n=0: %v", sum.DataPoints)
		}
	}

	m.RecordRetries(ctx, "vice.ping", 3)
	rm = collect(t, reader)
	retries := findMetric(rm, "vicegrip.retries")
	if retries == nil {
		t.Fatal("vicegrip.retries not found")
	}
	sum := retries.Data.(metricdata.Sum[int64])
	if len(sum.DataPoints) != 1 || sum.DataPoints[0].Value != 3 {
		t.Errorf("retries datapoints = %v, want single value 3", sum.DataPoints)
	}
}

func TestRecordFallbackAndValidation(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordFallback(ctx, "vice.ping")
	m.RecordValidationFailure(ctx, "vice.registers.set")
	m.RecordUnexpectedParam(ctx, "vice.memory.read", "bogus")

	rm := collect(t, reader)
	for _, name := range []string{
		"vicegrip.fallbacks",
		"vicegrip.validation.failures",
		"vicegrip.unexpected_params",
	} {
		met := findMetric(rm, name)
		if met == nil {
			t.Errorf("%s not found", name)
			continue
		}
		sum, ok := met.Data.(metricdata.Sum[int64])
		if !ok || len(sum.DataPoints) != 1 || sum.DataPoints[0].Value != 1 {
			t.Errorf("%s = %+v, want single datapoint of 1", name, met.Data)
		}
	}
}
