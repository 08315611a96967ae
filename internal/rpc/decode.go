package rpc

import (
	"encoding/json"
	"fmt"

	"github.com/retroharness/vicegrip/pkg/types"
)

// DecodeResponse parses a JSON-RPC response body and returns the unwrapped
// result value.
//
// An unparsable or non-object body yields a [types.ProtocolError]. An error
// member is classified by code: protocol-band codes become
// [types.ProtocolError], everything else becomes [types.ToolError].
//
// Result unwrapping preserves the server's tools/call envelope behavior: a
// result object whose "content" field is a single {type: "text", text: ...}
// block has its text parsed as JSON when possible (falling back to the raw
// string); any other content shape is returned as-is, and a result without
// a content field is returned verbatim.
func DecodeResponse(body []byte) (any, error) {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &types.ProtocolError{
			Message: fmt.Sprintf("invalid JSON in response: %v", err),
			Code:    CodeParseError,
		}
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, &types.ProtocolError{
			Message: "response is not a JSON object",
			Code:    CodeInvalidRequest,
		}
	}

	if rawErr, present := obj["error"]; present {
		return nil, classifyError(rawErr)
	}
	return unwrapResult(obj["result"]), nil
}

// classifyError turns a response's error member into a typed error.
// A malformed (non-object) error member is given code -1.
func classifyError(raw any) error {
	code := -1
	message := fmt.Sprintf("%v", raw)
	var data any

	if errObj, ok := raw.(map[string]any); ok {
		if c, ok := errObj["code"].(float64); ok {
			code = int(c)
		}
		if m, ok := errObj["message"].(string); ok {
			message = m
		}
		data = errObj["data"]
	}

	if InProtocolBand(code) {
		return &types.ProtocolError{Message: message, Code: code, Data: data}
	}
	return &types.ToolError{Message: message, Code: code, Data: data}
}

// unwrapResult extracts the payload from the tools/call result envelope.
func unwrapResult(result any) any {
	obj, ok := result.(map[string]any)
	if !ok {
		return result
	}
	content, present := obj["content"]
	if !present {
		return result
	}
	blocks, ok := content.([]any)
	if !ok || len(blocks) != 1 {
		return content
	}
	block, ok := blocks[0].(map[string]any)
	if !ok || block["type"] != "text" {
		return content
	}
	text, _ := block["text"].(string)
	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return text
	}
	return decoded
}
