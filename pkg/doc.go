// Package pkg holds the clickmap libraries.
//
// # Overview
//
// Clickmap turns ClickHole "Clickventure" articles, which are
// choose-your-own-adventure stories spread over numbered passages, into
// node-link diagrams. Data flows in one direction:
//
//	article URL
//	     ↓
//	[fetch] (HTTP, optional [cache])
//	     ↓
//	[markup] (start node, nodes, links → edge list)
//	     ↓
//	[adventure] (Unbuilt → Built, [digraph] multigraph)
//	     ↓
//	[render/nodelink] (Graphviz layout → png/svg)
//
// [collection] discovers article URLs from the listing pages and runs the
// pipeline for each, recording failures without stopping.
//
// Supporting packages: [errors] (coded errors), [config] (TOML settings),
// [observability] (event hooks), [buildinfo] (version).
//
// [fetch]: github.com/matzehuels/clickmap/pkg/fetch
// [cache]: github.com/matzehuels/clickmap/pkg/cache
// [markup]: github.com/matzehuels/clickmap/pkg/markup
// [adventure]: github.com/matzehuels/clickmap/pkg/adventure
// [digraph]: github.com/matzehuels/clickmap/pkg/digraph
// [render/nodelink]: github.com/matzehuels/clickmap/pkg/render/nodelink
// [collection]: github.com/matzehuels/clickmap/pkg/collection
// [errors]: github.com/matzehuels/clickmap/pkg/errors
// [config]: github.com/matzehuels/clickmap/pkg/config
// [observability]: github.com/matzehuels/clickmap/pkg/observability
// [buildinfo]: github.com/matzehuels/clickmap/pkg/buildinfo
package pkg
