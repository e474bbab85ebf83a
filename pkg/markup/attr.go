package markup

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/matzehuels/clickmap/pkg/errors"
)

// Attribute names of the markup contract.
const (
	AttrNodeID     = "data-node-id"
	AttrTargetNode = "data-target-node"
)

// Attr returns the value of the named attribute on n.
// The second result reports whether the attribute is present.
func Attr(n *html.Node, name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// RequiredIntAttr returns the named attribute of n parsed as an integer.
// A missing or non-numeric attribute yields an INVALID_MARKUP error; callers
// treat it as fatal for the page rather than skipping the element.
func RequiredIntAttr(n *html.Node, name string) (int, error) {
	raw, ok := Attr(n, name)
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidMarkup, "missing %s attribute on %s", name, describe(n))
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidMarkup, err, "%s=%q on %s is not an integer", name, raw, describe(n))
	}
	return v, nil
}

// describe renders an element as <tag class="..."> for error messages.
func describe(n *html.Node) string {
	if n == nil {
		return "<nil>"
	}
	if class, ok := Attr(n, "class"); ok {
		return "<" + n.Data + ` class="` + strings.TrimSpace(class) + `">`
	}
	return "<" + n.Data + ">"
}
