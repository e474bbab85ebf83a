// Package digraph provides a directed multigraph keyed by integer node ids.
//
// # Overview
//
// A Clickventure is a set of numbered passages connected by choices. Choices
// may loop back to earlier passages and two choices in the same passage may
// lead to the same place, so the graph is neither acyclic nor simple:
// parallel edges and self-loops are kept exactly as they were added.
//
// # Basic Usage
//
//	g := digraph.New(nil)
//	_ = g.AddNode(digraph.Node{ID: 1})
//	_ = g.AddNode(digraph.Node{ID: 2})
//	_ = g.AddEdge(digraph.Edge{From: 1, To: 2})
//	_ = g.AddEdge(digraph.Edge{From: 1, To: 2}) // parallel edge, kept
//
//	g.Degree(1)    // 2
//	g.EdgeCount()  // 2
//
// # Degree
//
// [Graph.Degree] is the total degree (in + out). Every parallel edge counts,
// and a self-loop contributes one to each side, so it adds two.
//
// # Concurrency
//
// Graph is not safe for concurrent mutation. Once built it may be read from
// multiple goroutines.
package digraph
