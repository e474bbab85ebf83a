// Package nodelink renders adventure graphs as node-link diagrams.
//
// # Overview
//
// [ToDOT] converts a built adventure into Graphviz DOT source. The start node
// is drawn blue, half transparent and larger than the rest; every stored edge
// is drawn, so repeated choices show up as parallel arrows. The title is
// wrapped to a configurable column width and placed above the drawing.
//
// [Renderer] lays the DOT out in-process with go-graphviz (force-directed
// "neato" by default), then optionally saves the image and opens it in the
// system viewer. Each render owns one Graphviz instance, which is released
// before Render returns whether or not saving or displaying succeeded.
//
// # Usage
//
//	r := nodelink.NewRenderer(nodelink.Config{
//	    Save:    true,
//	    SaveDir: "./results",
//	})
//	res, err := r.Render(ctx, adv)
//
// # Styling
//
// Config.Style is forwarded verbatim as Graphviz node attributes for all
// non-root nodes, for example {"fillcolor": "seagreen", "style": "filled"}.
// Attribute names must be identifiers; anything else is rejected with an
// INVALID_OPTION error before Graphviz runs.
package nodelink
