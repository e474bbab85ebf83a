package markup

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// Link is one outgoing choice found inside a node container.
// Links are immutable once parsed.
type Link struct {
	Target int    // Node id the choice leads to
	Label  string // Visible choice text, whitespace-normalized
	Float  bool   // Whether the choice used the floating link markup
}

// String renders the link as "Node <target>: <label>".
func (l Link) String() string {
	return fmt.Sprintf("Node %d: %s", l.Target, l.Label)
}

// parseLink builds a Link from a single link container.
func parseLink(sel *goquery.Selection, float bool) (Link, error) {
	n := sel.Get(0)
	target, err := RequiredIntAttr(n, AttrTargetNode)
	if err != nil {
		return Link{}, err
	}
	return Link{Target: target, Label: cleanText(sel.Text()), Float: float}, nil
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// cleanText drops non-printable runes and collapses runs of whitespace.
func cleanText(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch {
		case unicode.IsSpace(c):
			b.WriteRune(' ')
		case unicode.IsPrint(c):
			b.WriteRune(c)
		}
	}
	out := strings.TrimSpace(b.String())
	return innerWhitespace.ReplaceAllString(out, " ")
}
