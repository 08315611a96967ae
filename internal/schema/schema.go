package schema

import (
	"fmt"
	"sort"
)

// Param is one declared parameter: a name and its expected [Kind].
type Param struct {
	Name string
	Kind Kind
}

// ToolSchema declares the parameters a single tool accepts. Required
// parameters must be present with a matching kind; optional parameters are
// kind-checked only when supplied. Order is preserved so that violation
// messages are deterministic.
type ToolSchema struct {
	Required []Param
	Optional []Param
}

// Registry is an immutable mapping from tool name to [ToolSchema],
// populated once at construction and never mutated. Safe for concurrent use.
type Registry struct {
	schemas map[string]ToolSchema
}

// NewRegistry builds a Registry from the given schema map. The map is
// copied, so callers may reuse or modify their copy afterwards.
func NewRegistry(schemas map[string]ToolSchema) *Registry {
	m := make(map[string]ToolSchema, len(schemas))
	for name, s := range schemas {
		m[name] = s
	}
	return &Registry{schemas: m}
}

// Lookup returns the schema registered for name, if any.
func (r *Registry) Lookup(name string) (ToolSchema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// Names returns all registered tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks args against the schema registered for tool.
//
// It returns a list of violation strings (empty means valid) and a list of
// argument keys the schema does not declare. Unknown keys are not
// violations — they are forwarded to the server verbatim — but callers
// should surface them through their observability sink.
//
// A tool with no registered schema produces no violations: the registry is
// advisory, not a gate against calling undocumented tools.
func (r *Registry) Validate(tool string, args map[string]any) (violations, unknown []string) {
	s, ok := r.schemas[tool]
	if !ok {
		return nil, nil
	}

	for _, p := range s.Required {
		v, present := args[p.Name]
		if !present {
			violations = append(violations,
				fmt.Sprintf("missing required parameter %q for %s", p.Name, tool))
			continue
		}
		if !p.Kind.Matches(v) {
			violations = append(violations,
				fmt.Sprintf("parameter %q for %s must be %s, got %s",
					p.Name, tool, p.Kind, jsonTypeName(v)))
		}
	}

	for _, p := range s.Optional {
		v, present := args[p.Name]
		if present && !p.Kind.Matches(v) {
			violations = append(violations,
				fmt.Sprintf("parameter %q for %s must be %s, got %s",
					p.Name, tool, p.Kind, jsonTypeName(v)))
		}
	}

	known := make(map[string]struct{}, len(s.Required)+len(s.Optional))
	for _, p := range s.Required {
		known[p.Name] = struct{}{}
	}
	for _, p := range s.Optional {
		known[p.Name] = struct{}{}
	}
	for key := range args {
		if _, ok := known[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	return violations, unknown
}
