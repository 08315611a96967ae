package types

import "time"

// LogEntry is the durable record of one completed logical call. Exactly one
// entry is produced per call, at its terminal outcome — intermediate retried
// attempts are folded into RetryCount and FallbackUsed. Entries are
// append-only and never mutated after creation.
//
// The JSON field names match the line format of the on-disk reliability log.
type LogEntry struct {
	// Timestamp is the UTC time the call completed.
	Timestamp time.Time `json:"ts"`

	// Tool is the logical tool name that was invoked.
	Tool string `json:"tool"`

	// DurationMs is the total wall-clock duration of the logical call in
	// milliseconds, including all retries and back-off sleeps.
	DurationMs float64 `json:"duration_ms"`

	// Success reports whether the call returned a decoded result.
	Success bool `json:"success"`

	// Error holds the terminal error message for failed calls.
	Error string `json:"error,omitempty"`

	// ErrorCode holds the JSON-RPC error code when one was observed.
	ErrorCode *int `json:"error_code,omitempty"`

	// RetryCount is the number of attempts beyond the first.
	RetryCount int `json:"retry_count"`

	// FallbackUsed reports whether the call ever switched from the wrapped
	// to the direct encoding.
	FallbackUsed bool `json:"fallback_used"`
}

// Stats holds aggregate reliability statistics, recomputed on demand from
// the full in-memory log. A zero Stats value is returned for an empty log.
type Stats struct {
	// TotalCalls is the number of recorded logical calls.
	TotalCalls int `json:"total_calls"`

	// Failures is the number of calls with Success == false.
	Failures int `json:"failures"`

	// FailureRate is Failures / TotalCalls, or 0 when no calls are recorded.
	FailureRate float64 `json:"failure_rate"`

	// AvgLatencyMs is the mean call duration across all recorded calls.
	AvgLatencyMs float64 `json:"avg_latency_ms"`

	// FailuresByTool counts failed calls grouped by tool name.
	FailuresByTool map[string]int `json:"failures_by_tool"`
}
