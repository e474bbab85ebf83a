package digraph

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")
)

// Metadata stores arbitrary key-value pairs attached to nodes or the graph.
// Metadata maps are never nil after a node is added.
type Metadata map[string]any

// Node is a vertex of the graph.
type Node struct {
	ID   int      // Unique identifier within one graph
	Meta Metadata // Arbitrary key-value metadata (never nil after AddNode)
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From int
	To   int
}

// Graph is a directed multigraph.
//
// The zero value is not usable - use New to create a valid Graph instance.
type Graph struct {
	nodes    map[int]*Node
	edges    []Edge
	outgoing map[int][]int
	incoming map[int][]int
	meta     Metadata
}

// New creates an empty Graph with optional graph-level metadata.
func New(meta Metadata) *Graph {
	if meta == nil {
		meta = Metadata{}
	}
	return &Graph{
		nodes:    make(map[int]*Node),
		outgoing: make(map[int][]int),
		incoming: make(map[int][]int),
		meta:     meta,
	}
}

// Meta returns the graph-level metadata map.
func (g *Graph) Meta() Metadata { return g.meta }

// AddNode adds a node to the graph.
// Returns ErrDuplicateNodeID if a node with the same ID already exists.
func (g *Graph) AddNode(n Node) error {
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	node := &n
	g.nodes[node.ID] = node
	return nil
}

// EnsureNode adds a node with the given id unless it already exists and
// returns the stored node.
func (g *Graph) EnsureNode(id int) *Node {
	if n, ok := g.nodes[id]; ok {
		return n
	}
	n := &Node{ID: id, Meta: Metadata{}}
	g.nodes[id] = n
	return n
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode if an endpoint is
// missing. Adding the same pair twice stores two edges.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// Node returns the node with the given ID and true, or nil and false if not found.
func (g *Graph) Node(id int) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes sorted by ID.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, id := range g.NodeIDs() {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// NodeIDs returns all node IDs in ascending order.
func (g *Graph) NodeIDs() []int {
	return slices.Sorted(maps.Keys(g.nodes))
}

// Edges returns a copy of all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph, parallel edges included.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Children returns the targets of the node's outgoing edges, one entry per
// edge. The returned slice should not be modified.
func (g *Graph) Children(id int) []int { return g.outgoing[id] }

// Parents returns the sources of the node's incoming edges, one entry per
// edge. The returned slice should not be modified.
func (g *Graph) Parents(id int) []int { return g.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
func (g *Graph) OutDegree(id int) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
func (g *Graph) InDegree(id int) int { return len(g.incoming[id]) }

// Degree returns the total degree (in + out) of the node.
func (g *Graph) Degree(id int) int { return g.InDegree(id) + g.OutDegree(id) }

// Degrees returns the total degree of every node.
func (g *Graph) Degrees() map[int]int {
	m := make(map[int]int, len(g.nodes))
	for id := range g.nodes {
		m[id] = g.Degree(id)
	}
	return m
}

// Sources returns the IDs of nodes with no incoming edges, ascending.
func (g *Graph) Sources() []int {
	var ids []int
	for _, id := range g.NodeIDs() {
		if len(g.incoming[id]) == 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// Sinks returns the IDs of nodes with no outgoing edges, ascending.
func (g *Graph) Sinks() []int {
	var ids []int
	for _, id := range g.NodeIDs() {
		if len(g.outgoing[id]) == 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// Reachable returns the IDs of all nodes reachable from start by following
// edges, start included, in ascending order. Returns nil if start is not in
// the graph.
func (g *Graph) Reachable(start int) []int {
	if _, ok := g.nodes[start]; !ok {
		return nil
	}
	seen := map[int]bool{start: true}
	stack := []int{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range g.outgoing[id] {
			if !seen[c] {
				seen[c] = true
				stack = append(stack, c)
			}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Unreachable returns the IDs of nodes that cannot be reached from start,
// in ascending order.
func (g *Graph) Unreachable(start int) []int {
	reach := make(map[int]bool)
	for _, id := range g.Reachable(start) {
		reach[id] = true
	}
	var ids []int
	for _, id := range g.NodeIDs() {
		if !reach[id] {
			ids = append(ids, id)
		}
	}
	return ids
}
