package adventure

import (
	"slices"

	"github.com/matzehuels/clickmap/pkg/digraph"
	"github.com/matzehuels/clickmap/pkg/errors"
	"github.com/matzehuels/clickmap/pkg/markup"
)

// MetaRoot marks the start node in the graph's node metadata.
const MetaRoot = "root"

// Built is the frozen result of building an adventure's graph.
type Built struct {
	RootID int
	Edges  []digraph.Edge
	Graph  *digraph.Graph

	containers map[int]bool
	degrees    map[int]int
	maxDegree  int
}

// Build turns an extraction into a graph. Nodes are the distinct ids that
// appear in edges plus the root, which is added even when it has no choices.
// Edges are exactly the extracted pairs, duplicates included.
func Build(ex *markup.Extraction) (*Built, error) {
	if ex == nil {
		return nil, errors.New(errors.ErrCodeInternal, "nil extraction")
	}

	g := digraph.New(nil)
	g.EnsureNode(ex.RootID).Meta[MetaRoot] = true

	edges := make([]digraph.Edge, 0, len(ex.Edges))
	for _, e := range ex.Edges {
		g.EnsureNode(e.From)
		g.EnsureNode(e.To)
		de := digraph.Edge{From: e.From, To: e.To}
		if err := g.AddEdge(de); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "edge %d -> %d", e.From, e.To)
		}
		edges = append(edges, de)
	}

	b := &Built{
		RootID:     ex.RootID,
		Edges:      edges,
		Graph:      g,
		containers: make(map[int]bool, len(ex.Nodes)),
		degrees:    g.Degrees(),
	}
	for _, n := range ex.Nodes {
		b.containers[n.ID] = true
	}
	for _, d := range b.degrees {
		b.maxDegree = max(b.maxDegree, d)
	}
	return b, nil
}

// NodeCount returns the number of nodes in the graph.
func (b *Built) NodeCount() int { return b.Graph.NodeCount() }

// Degree returns the node's total degree (in + out).
func (b *Built) Degree(id int) int { return b.degrees[id] }

// MaxDegree returns the largest total degree in the graph.
func (b *Built) MaxDegree() int { return b.maxDegree }

// DanglingTargets returns link targets that have no node container in the
// page, in ascending order.
func (b *Built) DanglingTargets() []int {
	var ids []int
	for _, id := range b.Graph.NodeIDs() {
		if !b.containers[id] {
			ids = append(ids, id)
		}
	}
	return ids
}

// Unreachable returns nodes that cannot be reached from the root.
func (b *Built) Unreachable() []int {
	return b.Graph.Unreachable(b.RootID)
}

// EdgesFrom returns the targets of every edge leaving id, in edge order.
func (b *Built) EdgesFrom(id int) []int {
	return slices.Clone(b.Graph.Children(id))
}
