// Package monitor implements the reliability monitor: an append-only,
// process-lifetime log of every completed logical call, an optional durable
// store, and aggregate statistics computed on demand.
//
// Recording never fails from the caller's point of view — persistence
// errors are swallowed and logged at debug level so that observability can
// never break the primary call path.
package monitor

import (
	"log/slog"
	"sync"

	"github.com/retroharness/vicegrip/pkg/types"
)

// Monitor records call outcomes and serves aggregate statistics.
// Safe for concurrent use.
type Monitor struct {
	mu      sync.Mutex
	entries []types.LogEntry
	store   Store
}

// New returns a Monitor that mirrors every recorded entry to store.
// A nil store disables durable persistence; the in-memory log still works.
func New(store Store) *Monitor {
	return &Monitor{store: store}
}

// FromEntries returns a Monitor pre-populated with entries, without a
// durable store. Used to compute statistics over a previously written log.
func FromEntries(entries []types.LogEntry) *Monitor {
	m := New(nil)
	m.entries = append(m.entries, entries...)
	return m
}

// Record appends entry to the in-memory log and attempts to persist it.
// Exactly one entry is expected per logical call, produced at its terminal
// outcome. Entries are never mutated or deleted afterwards.
func (m *Monitor) Record(entry types.LogEntry) {
	m.mu.Lock()
	m.entries = append(m.entries, entry)
	m.mu.Unlock()

	if m.store == nil {
		return
	}
	if err := m.store.Append(entry); err != nil {
		slog.Debug("could not persist reliability log entry",
			"tool", entry.Tool, "error", err)
	}
}

// Stats computes aggregate statistics with a single linear scan of the
// in-memory log. An empty log yields zero-valued aggregates.
func (m *Monitor) Stats() types.Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats := types.Stats{FailuresByTool: map[string]int{}}
	stats.TotalCalls = len(m.entries)
	if stats.TotalCalls == 0 {
		return stats
	}

	var totalMs float64
	for _, e := range m.entries {
		totalMs += e.DurationMs
		if !e.Success {
			stats.Failures++
			stats.FailuresByTool[e.Tool]++
		}
	}
	stats.FailureRate = float64(stats.Failures) / float64(stats.TotalCalls)
	stats.AvgLatencyMs = totalMs / float64(stats.TotalCalls)
	return stats
}

// Entries returns a copy of the full in-memory log in chronological order.
func (m *Monitor) Entries() []types.LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.LogEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

// RecentFailures returns the last n failed entries in chronological order.
func (m *Monitor) RecentFailures(n int) []types.LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	var failures []types.LogEntry
	for _, e := range m.entries {
		if !e.Success {
			failures = append(failures, e)
		}
	}
	if n >= 0 && len(failures) > n {
		failures = failures[len(failures)-n:]
	}
	return failures
}
