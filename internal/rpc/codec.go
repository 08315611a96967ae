package rpc

import (
	"encoding/json"
	"fmt"
)

// MethodToolsCall is the fixed envelope method used by the wrapped encoding.
const MethodToolsCall = "tools/call"

// request is the JSON-RPC 2.0 request envelope shared by both encodings.
type request struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      int64  `json:"id"`
}

// wrappedParams nests the tool name and arguments inside the tools/call
// envelope.
type wrappedParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// EncodeWrapped builds a JSON-RPC request using the tools/call envelope:
// the tool name and arguments are nested inside params.
func EncodeWrapped(id int64, tool string, args map[string]any) ([]byte, error) {
	if args == nil {
		args = map[string]any{}
	}
	body, err := json.Marshal(request{
		JSONRPC: "2.0",
		Method:  MethodToolsCall,
		Params:  wrappedParams{Name: tool, Arguments: args},
		ID:      id,
	})
	if err != nil {
		return nil, fmt.Errorf("rpc: encode wrapped %s: %w", tool, err)
	}
	return body, nil
}

// EncodeDirect builds a JSON-RPC request using the tool name itself as the
// method and the arguments as params.
func EncodeDirect(id int64, tool string, args map[string]any) ([]byte, error) {
	if args == nil {
		args = map[string]any{}
	}
	body, err := json.Marshal(request{
		JSONRPC: "2.0",
		Method:  tool,
		Params:  args,
		ID:      id,
	})
	if err != nil {
		return nil, fmt.Errorf("rpc: encode direct %s: %w", tool, err)
	}
	return body, nil
}
