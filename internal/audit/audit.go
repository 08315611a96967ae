// Package audit compares the embedded tool catalogue against what a live
// emulator endpoint actually advertises.
//
// The emulator bridge speaks MCP over streamable HTTP, so the audit connects
// with the official MCP Go SDK (github.com/modelcontextprotocol/go-sdk), lists
// the server's tools, and diffs them against the catalogue that drives
// client-side validation. Drift between the two shows up as tools missing on
// either side or as disagreement about which parameters are required.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/retroharness/vicegrip/internal/schema"
)

// RemoteTool is the subset of a server-advertised tool the audit cares about.
type RemoteTool struct {
	Name     string
	Required []string
	Params   []string
}

// Auditor lists tools from a live MCP endpoint.
type Auditor struct {
	endpoint string
	client   *mcpsdk.Client
}

// New creates an Auditor for the MCP endpoint at the given URL.
func New(endpoint string) *Auditor {
	client := mcpsdk.NewClient(
		&mcpsdk.Implementation{Name: "vicegrip-audit", Version: "1.0.0"},
		nil,
	)
	return &Auditor{endpoint: endpoint, client: client}
}

// Run connects to the endpoint, lists its tools, and diffs them against reg.
func (a *Auditor) Run(ctx context.Context, reg *schema.Registry) (*Report, error) {
	remote, err := a.ListRemote(ctx)
	if err != nil {
		return nil, err
	}
	return Diff(remote, reg), nil
}

// ListRemote fetches the server's advertised tool list over streamable HTTP.
func (a *Auditor) ListRemote(ctx context.Context) ([]RemoteTool, error) {
	transport := &mcpsdk.StreamableClientTransport{Endpoint: a.endpoint}
	session, err := a.client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, fmt.Errorf("audit: connect to %q: %w", a.endpoint, err)
	}
	defer session.Close()

	var remote []RemoteTool
	for tool, err := range session.Tools(ctx, nil) {
		if err != nil {
			return nil, fmt.Errorf("audit: list tools from %q: %w", a.endpoint, err)
		}
		remote = append(remote, remoteFromSDK(*tool))
	}
	sort.Slice(remote, func(i, j int) bool { return remote[i].Name < remote[j].Name })
	return remote, nil
}

// remoteFromSDK extracts the tool name and parameter lists from an SDK tool.
func remoteFromSDK(t mcpsdk.Tool) RemoteTool {
	rt := RemoteTool{Name: t.Name}
	m := schemaToMap(t.InputSchema)
	if props, ok := m["properties"].(map[string]any); ok {
		for name := range props {
			rt.Params = append(rt.Params, name)
		}
		sort.Strings(rt.Params)
	}
	if req, ok := m["required"].([]any); ok {
		for _, v := range req {
			if s, ok := v.(string); ok {
				rt.Required = append(rt.Required, s)
			}
		}
		sort.Strings(rt.Required)
	}
	return rt
}

// schemaToMap normalises an input schema of unknown concrete type into a
// plain map via a JSON round-trip.
func schemaToMap(s any) map[string]any {
	if s == nil {
		return map[string]any{"type": "object"}
	}
	if m, ok := s.(map[string]any); ok {
		return m
	}
	data, err := json.Marshal(s)
	if err != nil {
		return map[string]any{"type": "object"}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]any{"type": "object"}
	}
	return m
}
