package audit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/retroharness/vicegrip/internal/schema"
)

// Report summarises the drift between the embedded catalogue and a server's
// advertised tool list.
type Report struct {
	// MissingOnServer lists catalogue tools the server does not advertise.
	MissingOnServer []string
	// ExtraOnServer lists server tools absent from the catalogue.
	ExtraOnServer []string
	// RequiredMismatches lists tools whose required-parameter sets disagree.
	RequiredMismatches []RequiredMismatch
}

// RequiredMismatch records a disagreement over a tool's required parameters.
type RequiredMismatch struct {
	Tool           string
	CatalogueOnly  []string
	ServerOnly     []string
}

// Clean reports whether the catalogue and server agree exactly.
func (r *Report) Clean() bool {
	return len(r.MissingOnServer) == 0 && len(r.ExtraOnServer) == 0 && len(r.RequiredMismatches) == 0
}

// String renders the report for CLI output.
func (r *Report) String() string {
	if r.Clean() {
		return "catalogue matches server"
	}
	var b strings.Builder
	for _, name := range r.MissingOnServer {
		fmt.Fprintf(&b, "missing on server: %s\n", name)
	}
	for _, name := range r.ExtraOnServer {
		fmt.Fprintf(&b, "extra on server: %s\n", name)
	}
	for _, m := range r.RequiredMismatches {
		fmt.Fprintf(&b, "required mismatch: %s (catalogue-only: %v, server-only: %v)\n",
			m.Tool, m.CatalogueOnly, m.ServerOnly)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Diff compares remote against the catalogue in reg. All result slices are
// sorted by tool name.
func Diff(remote []RemoteTool, reg *schema.Registry) *Report {
	report := &Report{}

	remoteByName := make(map[string]RemoteTool, len(remote))
	for _, rt := range remote {
		remoteByName[rt.Name] = rt
	}

	for _, name := range reg.Names() {
		rt, ok := remoteByName[name]
		if !ok {
			report.MissingOnServer = append(report.MissingOnServer, name)
			continue
		}
		ts, _ := reg.Lookup(name)
		catalogueOnly, serverOnly := requiredDelta(ts, rt.Required)
		if len(catalogueOnly) > 0 || len(serverOnly) > 0 {
			report.RequiredMismatches = append(report.RequiredMismatches, RequiredMismatch{
				Tool:          name,
				CatalogueOnly: catalogueOnly,
				ServerOnly:    serverOnly,
			})
		}
	}

	for _, rt := range remote {
		if _, ok := reg.Lookup(rt.Name); !ok {
			report.ExtraOnServer = append(report.ExtraOnServer, rt.Name)
		}
	}
	sort.Strings(report.ExtraOnServer)

	return report
}

// requiredDelta returns the required parameters present only in the
// catalogue and only on the server, both sorted.
func requiredDelta(ts schema.ToolSchema, serverRequired []string) (catalogueOnly, serverOnly []string) {
	inCatalogue := make(map[string]bool, len(ts.Required))
	for _, p := range ts.Required {
		inCatalogue[p.Name] = true
	}
	inServer := make(map[string]bool, len(serverRequired))
	for _, name := range serverRequired {
		inServer[name] = true
	}

	for name := range inCatalogue {
		if !inServer[name] {
			catalogueOnly = append(catalogueOnly, name)
		}
	}
	for name := range inServer {
		if !inCatalogue[name] {
			serverOnly = append(serverOnly, name)
		}
	}
	sort.Strings(catalogueOnly)
	sort.Strings(serverOnly)
	return catalogueOnly, serverOnly
}
