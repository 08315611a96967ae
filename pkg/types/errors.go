// Package types defines the shared types used across all vicegrip packages.
//
// These types form the lingua franca between the call engine, the reliability
// monitor, and the public client. Each package defines its own domain types,
// but cross-cutting data structures and the error taxonomy live here to avoid
// circular imports.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports client-side parameter validation failures.
// It is raised before any network activity and is never retried.
type ValidationError struct {
	// Tool is the tool name whose arguments failed validation.
	Tool string

	// Violations holds one human-readable string per schema violation.
	// Always non-empty.
	Violations []string

	// Code is the JSON-RPC error code attached to the failure
	// (conventionally -32602, invalid params).
	Code int
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

// ProtocolError reports a JSON-RPC protocol-level failure: an unparsable or
// malformed response body, or an error code in the reserved protocol band.
// Protocol errors drive the encoding fallback and are retried with back-off.
type ProtocolError struct {
	Message string
	Code    int
	Data    any
}

func (e *ProtocolError) Error() string {
	return e.Message
}

// ToolError reports that the server understood the call and rejected it at
// the tool level (an error code outside the protocol band). Tool errors are
// terminal — they are surfaced to the caller without any retry.
type ToolError struct {
	Message string
	Code    int
	Data    any
}

func (e *ToolError) Error() string {
	return e.Message
}

// TransportError reports a failure below the JSON-RPC layer: connection
// refused, DNS failure, generic I/O failure, or a per-attempt timeout.
// Transport errors are retried with back-off.
type TransportError struct {
	// Timeout is true when the attempt's wall-clock budget expired.
	Timeout bool

	// Err is the underlying transport failure.
	Err error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("request timed out: %v", e.Err)
	}
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ExhaustionError is synthesized when the retry budget is spent without a
// success or a terminal tool error. It wraps the last concrete failure so
// callers can inspect the final cause with errors.As.
type ExhaustionError struct {
	// Tool is the tool name of the exhausted logical call.
	Tool string

	// Attempts is the total number of network attempts made.
	Attempts int

	// Err is the last observed failure.
	Err error
}

func (e *ExhaustionError) Error() string {
	var te *TransportError
	if errors.As(e.Err, &te) {
		return fmt.Sprintf("failed to connect after %d attempts: %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("call to %s failed after %d attempts: %v", e.Tool, e.Attempts, e.Err)
}

func (e *ExhaustionError) Unwrap() error { return e.Err }

// ErrorCode extracts the JSON-RPC error code carried by err, walking the
// wrap chain. The second return value reports whether a code was found.
func ErrorCode(err error) (int, bool) {
	for err != nil {
		switch e := err.(type) {
		case *ValidationError:
			return e.Code, true
		case *ProtocolError:
			return e.Code, true
		case *ToolError:
			return e.Code, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return 0, false
		}
		err = u.Unwrap()
	}
	return 0, false
}
