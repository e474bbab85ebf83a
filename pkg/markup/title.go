package markup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlaceholderTitle is used when a page has no usable <title>.
const PlaceholderTitle = "no title found"

// titleSuffixLen is the length of the boilerplate the site appends to every
// page title.
const titleSuffixLen = 13

// Title returns the page title with the site's fixed-length suffix removed.
// Whitespace, including non-breaking spaces, is collapsed to single spaces
// first and non-printable runes are dropped. Pages without a title element, or whose title is no longer than the
// suffix, yield [PlaceholderTitle].
func Title(doc *goquery.Document) string {
	sel := doc.Find("title").First()
	if sel.Length() == 0 {
		return PlaceholderTitle
	}
	return StripTitleSuffix(cleanText(sel.Text()))
}

// StripTitleSuffix removes the last 13 runes of raw and trims whitespace.
func StripTitleSuffix(raw string) string {
	r := []rune(raw)
	if len(r) <= titleSuffixLen {
		return PlaceholderTitle
	}
	t := strings.TrimSpace(string(r[:len(r)-titleSuffixLen]))
	if t == "" {
		return PlaceholderTitle
	}
	return t
}
