package collection

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/matzehuels/clickmap/pkg/errors"
	"github.com/matzehuels/clickmap/pkg/observability"
)

// Site describes where articles are listed.
type Site struct {
	// ListingURL is a format string taking the page number.
	ListingURL string

	// Origin is the base that article links are resolved against.
	Origin string

	// Pages lists the listing pages to visit, in order.
	Pages []int
}

// DefaultSite returns the Clickhole listing: pages 1 through 5.
func DefaultSite() Site {
	return Site{
		ListingURL: "http://www.clickhole.com/features/clickventure/?page=%d",
		Origin:     "http://clickhole.com",
		Pages:      []int{1, 2, 3, 4, 5},
	}
}

// Discover visits every listing page and collects the first hyperlink of
// each article entry, resolved against the site origin.
//
// A listing page that cannot be fetched aborts discovery. Articles without
// a hyperlink are skipped.
func (d *Driver) Discover(ctx context.Context) (urls []string, err error) {
	start := time.Now()
	defer func() {
		observability.Pipeline().OnDiscoverComplete(ctx, len(d.site.Pages), len(urls), time.Since(start), err)
	}()

	origin, err := url.Parse(d.site.Origin)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "site origin %q", d.site.Origin)
	}

	for _, page := range d.site.Pages {
		listing := fmt.Sprintf(d.site.ListingURL, page)
		doc, err := d.fetcher.Document(ctx, listing)
		if err != nil {
			return nil, err
		}
		found := ArticleLinks(doc, origin)
		d.logger.Debug("Listing page", "page", page, "articles", len(found))
		urls = append(urls, found...)
	}

	d.logger.Infof("Found %d articles.", len(urls))
	return urls, nil
}

// ArticleLinks returns the first hyperlink target of every <article> in doc,
// resolved against origin.
func ArticleLinks(doc *goquery.Document, origin *url.URL) []string {
	var urls []string
	doc.Find("article").Each(func(_ int, art *goquery.Selection) {
		href, ok := art.Find("a[href]").First().Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		urls = append(urls, origin.ResolveReference(ref).String())
	})
	return urls
}
