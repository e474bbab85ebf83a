// Package markup extracts the branching structure of a Clickventure from
// parsed article HTML.
//
// # Markup Contract
//
// A Clickventure page is a flat list of node containers. Each container is a
// div carrying the clickventure-node class and a numeric data-node-id
// attribute. Exactly one container is the starting node; historically the
// site marked it with either clickventure-start or clickventure-node-start,
// so both spellings are tried in that order.
//
// Inside a node, every outgoing choice is a div with the
// clickventure-node-link class and a numeric data-target-node attribute.
// Some choices additionally carry clickventure-float. Floating links are
// ordinary choices styled differently; skipping them disconnects the graph.
//
// # Usage
//
//	doc, _ := goquery.NewDocumentFromReader(body)
//	ex, err := markup.Extract(doc)
//	if err != nil {
//	    // ROOT_NOT_FOUND or INVALID_MARKUP
//	}
//	fmt.Println(ex.RootID, len(ex.Edges))
//
// Extraction is all-or-nothing: a missing start node or a single
// unparsable attribute fails the whole page and no partial result is
// returned.
package markup
