// Package rpc implements the JSON-RPC 2.0 payload codec for the VICE MCP
// server: the two alternative request encodings for a logical tool call,
// response decoding with result unwrapping, and classification of error
// codes into protocol-level and tool-level failures.
package rpc

// JSON-RPC 2.0 reserved error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Server-specific error codes returned by the VICE MCP server.
const (
	CodeNotImplemented  = -32000
	CodeEmulatorRunning = -32001
	CodeInvalidAddress  = -32002
	CodeInvalidValue    = -32003
	CodeSnapshotFailed  = -32004
)

// The protocol band covers the reserved JSON-RPC codes (parse error through
// internal error). Codes in this band mean the request's shape or dispatch
// was rejected and trigger the encoding fallback; everything else — including
// the server's -32000..-32004 range — is a tool-level error and is terminal.
const (
	protocolBandMin = -32799
	protocolBandMax = -32600
)

// InProtocolBand reports whether code signals a protocol-level problem.
func InProtocolBand(code int) bool {
	return code >= protocolBandMin && code <= protocolBandMax
}
