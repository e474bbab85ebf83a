package markup

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/matzehuels/clickmap/pkg/errors"
)

// Start node selectors, in the order they are tried. The site used both
// spellings at different times.
var rootSelectors = []string{
	"div.clickventure-node.clickventure-start",
	"div.clickventure-node.clickventure-node-start",
}

const (
	nodeSelector      = "div.clickventure-node:not(.clickventure-start):not(.clickventure-node-start)"
	linkSelector      = "div.clickventure-node-link:not(.clickventure-float)"
	floatLinkSelector = "div.clickventure-node-link.clickventure-float"
)

// Edge is one directed (from, to) pair produced by a link.
type Edge struct {
	From int
	To   int
}

// Node is one node container with its outgoing links.
// Links hold normal links first, then floating links, each in document order.
type Node struct {
	ID    int
	Start bool
	Links []Link
	Text  string
}

// Extraction is the result of walking a page's node markup.
//
// Nodes lists the start node first followed by every other node container in
// document order. Edges holds one entry per link in the same order, so the
// root's choices always come first.
type Extraction struct {
	RootID int
	Nodes  []Node
	Edges  []Edge
}

// Extract locates the start node and every other node container in doc and
// returns their links as an ordered edge list.
//
// Returns a ROOT_NOT_FOUND error when neither start node spelling is present,
// and an INVALID_MARKUP error when any node id or link target is missing or
// non-numeric. On error the returned Extraction is nil.
func Extract(doc *goquery.Document) (*Extraction, error) {
	root := findRoot(doc)
	if root == nil {
		return nil, errors.New(errors.ErrCodeRootNotFound, "no start node found (tried %s)", strings.Join(rootSelectors, ", "))
	}

	rootNode, err := parseNode(root, true)
	if err != nil {
		return nil, err
	}

	ex := &Extraction{RootID: rootNode.ID}
	ex.add(rootNode)

	var walkErr error
	doc.Find(nodeSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		n, err := parseNode(sel, false)
		if err != nil {
			walkErr = err
			return false
		}
		ex.add(n)
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return ex, nil
}

func (e *Extraction) add(n Node) {
	e.Nodes = append(e.Nodes, n)
	for _, l := range n.Links {
		e.Edges = append(e.Edges, Edge{From: n.ID, To: l.Target})
	}
}

// NodeIDs returns the ids of all node containers in extraction order.
func (e *Extraction) NodeIDs() []int {
	ids := make([]int, len(e.Nodes))
	for i, n := range e.Nodes {
		ids[i] = n.ID
	}
	return ids
}

// FindNode returns the node container whose data-node-id equals id,
// regardless of whether it is the start node.
// Returns a NOT_FOUND error if no container carries that id.
func FindNode(doc *goquery.Document, id int) (*Node, error) {
	sel := doc.Find(fmt.Sprintf(`div.clickventure-node[%s="%d"]`, AttrNodeID, id)).First()
	if sel.Length() == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no node with %s=%d", AttrNodeID, id)
	}
	start := sel.HasClass("clickventure-start") || sel.HasClass("clickventure-node-start")
	n, err := parseNode(sel, start)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func findRoot(doc *goquery.Document) *goquery.Selection {
	for _, s := range rootSelectors {
		if sel := doc.Find(s).First(); sel.Length() > 0 {
			return sel
		}
	}
	return nil
}

func parseNode(sel *goquery.Selection, start bool) (Node, error) {
	id, err := RequiredIntAttr(sel.Get(0), AttrNodeID)
	if err != nil {
		return Node{}, err
	}

	n := Node{ID: id, Start: start, Text: cleanText(sel.Text())}
	for _, group := range []struct {
		selector string
		float    bool
	}{
		{linkSelector, false},
		{floatLinkSelector, true},
	} {
		var linkErr error
		sel.Find(group.selector).EachWithBreak(func(_ int, ls *goquery.Selection) bool {
			l, err := parseLink(ls, group.float)
			if err != nil {
				linkErr = errors.Wrap(errors.ErrCodeInvalidMarkup, err, "node %d", id)
				return false
			}
			n.Links = append(n.Links, l)
			return true
		})
		if linkErr != nil {
			return Node{}, linkErr
		}
	}
	return n, nil
}
