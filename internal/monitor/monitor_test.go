package monitor

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/retroharness/vicegrip/pkg/types"
)

func entry(tool string, success bool, durationMs float64) types.LogEntry {
	e := types.LogEntry{
		Timestamp:  time.Now().UTC(),
		Tool:       tool,
		DurationMs: durationMs,
		Success:    success,
	}
	if !success {
		e.Error = "boom"
	}
	return e
}

func TestStats_EmptyLog(t *testing.T) {
	t.Parallel()
	m := New(nil)

	got := m.Stats()
	if got.TotalCalls != 0 {
		t.Errorf("TotalCalls = %d, want 0", got.TotalCalls)
	}
	if got.FailureRate != 0.0 {
		t.Errorf("FailureRate = %v, want 0.0", got.FailureRate)
	}
	if got.AvgLatencyMs != 0.0 {
		t.Errorf("AvgLatencyMs = %v, want 0.0", got.AvgLatencyMs)
	}
	if len(got.FailuresByTool) != 0 {
		t.Errorf("FailuresByTool = %v, want empty", got.FailuresByTool)
	}
}

func TestStats_Aggregates(t *testing.T) {
	t.Parallel()
	m := New(nil)

	// 3 successes and 2 failures for vice.ping, 1 failure for vice.backtrace.
	for range 3 {
		m.Record(entry("vice.ping", true, 10))
	}
	m.Record(entry("vice.ping", false, 40))
	m.Record(entry("vice.ping", false, 40))
	m.Record(entry("vice.backtrace", false, 40))

	got := m.Stats()
	if got.TotalCalls != 6 {
		t.Errorf("TotalCalls = %d, want 6", got.TotalCalls)
	}
	if got.Failures != 3 {
		t.Errorf("Failures = %d, want 3", got.Failures)
	}
	if got.FailureRate != 0.5 {
		t.Errorf("FailureRate = %v, want 0.5", got.FailureRate)
	}
	if got.AvgLatencyMs != 25 {
		t.Errorf("AvgLatencyMs = %v, want 25", got.AvgLatencyMs)
	}
	if got.FailuresByTool["vice.ping"] != 2 {
		t.Errorf("FailuresByTool[vice.ping] = %d, want 2", got.FailuresByTool["vice.ping"])
	}
	if got.FailuresByTool["vice.backtrace"] != 1 {
		t.Errorf("FailuresByTool[vice.backtrace] = %d, want 1", got.FailuresByTool["vice.backtrace"])
	}
}

func TestRecentFailures_ChronologicalTail(t *testing.T) {
	t.Parallel()
	m := New(nil)

	m.Record(entry("a", false, 1))
	m.Record(entry("b", true, 1))
	m.Record(entry("c", false, 1))
	m.Record(entry("d", false, 1))

	got := m.RecentFailures(2)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Tool != "c" || got[1].Tool != "d" {
		t.Errorf("tools = %s, %s; want c, d", got[0].Tool, got[1].Tool)
	}

	if got := m.RecentFailures(10); len(got) != 3 {
		t.Errorf("len = %d, want all 3 failures", len(got))
	}
}

// captureStore records appended entries in memory.
type captureStore struct {
	mu      sync.Mutex
	entries []types.LogEntry
}

func (c *captureStore) Append(e types.LogEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, e)
	return nil
}

// failingStore always errors, to prove persistence failures are swallowed.
type failingStore struct{}

func (failingStore) Append(types.LogEntry) error { return errors.New("disk full") }

func TestRecord_StoreFailureIsSwallowed(t *testing.T) {
	t.Parallel()
	m := New(failingStore{})

	m.Record(entry("vice.ping", true, 5))

	if got := m.Stats().TotalCalls; got != 1 {
		t.Errorf("TotalCalls = %d, want 1 despite store failure", got)
	}
}

func TestRecord_Concurrent(t *testing.T) {
	t.Parallel()
	m := New(nil)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Record(entry("vice.ping", true, 1))
		}()
	}
	wg.Wait()

	if got := m.Stats().TotalCalls; got != 50 {
		t.Errorf("TotalCalls = %d, want 50", got)
	}
}

func TestFileStore_AppendsJSONLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "reliability.jsonl")
	fs := NewFileStore(path)

	first := entry("vice.ping", true, 12.5)
	second := entry("vice.memory.read", false, 80)
	if err := fs.Append(first); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := fs.Append(second); err != nil {
		t.Fatalf("Append: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var lines []types.LogEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e types.LogEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("line is not valid JSON: %v", err)
		}
		lines = append(lines, e)
	}
	if len(lines) != 2 {
		t.Fatalf("log has %d lines, want 2", len(lines))
	}
	if lines[0].Tool != "vice.ping" || lines[0].Success != true {
		t.Errorf("first line = %+v", lines[0])
	}
	if lines[1].Tool != "vice.memory.read" || lines[1].Error != "boom" {
		t.Errorf("second line = %+v", lines[1])
	}
}

func TestFileStore_MissingDirErrors(t *testing.T) {
	t.Parallel()

	fs := NewFileStore(filepath.Join(t.TempDir(), "no", "such", "dir", "log.jsonl"))
	if err := fs.Append(entry("vice.ping", true, 1)); err == nil {
		t.Error("Append into missing directory succeeded, want error")
	}
}

func TestReadLog_RoundTripAndTruncatedLine(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "reliability.jsonl")
	fs := NewFileStore(path)
	if err := fs.Append(entry("vice.ping", true, 5)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := fs.Append(entry("vice.memory.read", false, 20)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	// Simulate a crash mid-write.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	if _, err := f.WriteString(`{"ts":"2026-`); err != nil {
		t.Fatalf("write partial line: %v", err)
	}
	f.Close()

	entries, err := ReadLog(path)
	if err != nil {
		t.Fatalf("ReadLog: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2 (truncated line skipped)", len(entries))
	}
	if entries[0].Tool != "vice.ping" || entries[1].Tool != "vice.memory.read" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestReadLog_MissingFile(t *testing.T) {
	t.Parallel()

	entries, err := ReadLog(filepath.Join(t.TempDir(), "absent.jsonl"))
	if err != nil {
		t.Fatalf("ReadLog: %v", err)
	}
	if entries != nil {
		t.Errorf("entries = %v, want nil for missing file", entries)
	}
}

func TestTeeStore_FansOutAndJoinsErrors(t *testing.T) {
	t.Parallel()

	good := &captureStore{}
	bad := &failingStore{}
	tee := NewTeeStore(good, nil, bad)

	err := tee.Append(entry("vice.ping", true, 5))
	if err == nil {
		t.Fatal("Append: want joined error from failing sink, got nil")
	}
	if len(good.entries) != 1 {
		t.Errorf("healthy sink got %d entries, want 1 despite sibling failure", len(good.entries))
	}
}
