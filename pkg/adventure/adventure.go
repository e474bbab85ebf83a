package adventure

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/matzehuels/clickmap/pkg/errors"
	"github.com/matzehuels/clickmap/pkg/markup"
	"github.com/matzehuels/clickmap/pkg/observability"
)

// Adventure is one Clickventure article: its source URL, title and, once
// built, its graph.
type Adventure struct {
	URL   string
	Title string

	doc   *goquery.Document
	built *Built
}

// New creates an unbuilt Adventure from an already parsed page.
func New(url string, doc *goquery.Document) *Adventure {
	return &Adventure{
		URL:   url,
		Title: markup.Title(doc),
		doc:   doc,
	}
}

// Parse reads an HTML page from r and creates an unbuilt Adventure.
// Returns an INVALID_MARKUP error if the document cannot be parsed.
func Parse(url string, r io.Reader) (*Adventure, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMarkup, err, "parse %s", url)
	}
	return New(url, doc), nil
}

// IsBuilt reports whether the graph has been built.
func (a *Adventure) IsBuilt() bool { return a.built != nil }

// Built returns the built graph, or nil if EnsureBuilt has not yet succeeded.
func (a *Adventure) Built() *Built { return a.built }

// Document returns the parsed page.
func (a *Adventure) Document() *goquery.Document { return a.doc }

// EnsureBuilt extracts the node structure and builds the graph on the first
// call. Subsequent calls return the cached result.
//
// On failure the adventure stays unbuilt and the error carries the
// extraction code (ROOT_NOT_FOUND or INVALID_MARKUP).
func (a *Adventure) EnsureBuilt(ctx context.Context) (*Built, error) {
	if a.built != nil {
		return a.built, nil
	}
	if a.doc == nil {
		return nil, errors.New(errors.ErrCodeInternal, "adventure %s has no document", a.URL)
	}

	hooks := observability.Pipeline()
	hooks.OnExtractStart(ctx, a.URL)
	start := time.Now()

	ex, err := markup.Extract(a.doc)
	if err != nil {
		hooks.OnExtractComplete(ctx, a.URL, 0, 0, time.Since(start), err)
		return nil, err
	}
	b, err := Build(ex)
	if err != nil {
		hooks.OnExtractComplete(ctx, a.URL, 0, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnExtractComplete(ctx, a.URL, b.NodeCount(), len(b.Edges), time.Since(start), nil)

	a.built = b
	return b, nil
}

// RootID returns the start node's id. It panics if the adventure is unbuilt.
func (a *Adventure) RootID() int {
	if a.built == nil {
		panic("adventure: RootID called before EnsureBuilt")
	}
	return a.built.RootID
}

// String returns the heading used when listing adventures.
func (a *Adventure) String() string {
	return fmt.Sprintf("~~CLICKHOLE CLICKVENTURE: %s~~", a.Title)
}
