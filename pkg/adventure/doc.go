// Package adventure assembles one Clickventure into a directed graph.
//
// An [Adventure] wraps a parsed article page. It starts out unbuilt: only the
// URL and title are known. [Adventure.EnsureBuilt] runs node extraction once,
// freezes the edge list, and builds the graph together with per-node degrees
// and the node count. Later calls return the same [Built] value without
// touching the markup again. A failed build leaves the adventure unbuilt and
// returns no partial graph.
//
// Graph policy: the graph is a multigraph. A node that links to the same
// target twice produces two edges, both of which count toward degree and are
// drawn by the renderer.
package adventure
