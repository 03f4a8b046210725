package metadata

import (
	"context"

	"github.com/tidwall/gjson"

	"github.com/matzehuels/cargorecipe/pkg/errors"
)

// Node is one resolved package.
type Node struct {
	ID string `json:"id"`
}

// Graph is the resolved dependency graph of a workspace, in cargo's order.
type Graph struct {
	Nodes []Node `json:"nodes"`
}

// IDs returns the package IDs of all nodes in order.
func (g *Graph) IDs() []string {
	ids := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// Request describes one resolution.
type Request struct {
	// ManifestPath is the Cargo.toml to resolve.
	ManifestPath string

	// AllFeatures enables every feature of every workspace member.
	AllFeatures bool

	// Refresh skips cached results. The fresh result is still stored.
	Refresh bool

	// ToolVersion is the detected cargo version, used in cache keys.
	ToolVersion string
}

// Resolver resolves a workspace into a Graph.
type Resolver interface {
	Resolve(ctx context.Context, req Request) (*Graph, error)
}

// ParseGraph extracts resolve.nodes[].id from cargo metadata JSON output.
// Output without a resolve section, as produced by --no-deps, is an error.
func ParseGraph(data []byte) (*Graph, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New(errors.ErrCodeResolution, "cargo metadata output is not valid JSON")
	}
	resolve := gjson.GetBytes(data, "resolve")
	if !resolve.Exists() || resolve.Type == gjson.Null {
		return nil, errors.New(errors.ErrCodeResolution, "cargo metadata output has no resolve section")
	}

	g := &Graph{}
	for _, id := range resolve.Get("nodes.#.id").Array() {
		g.Nodes = append(g.Nodes, Node{ID: id.String()})
	}
	return g, nil
}
