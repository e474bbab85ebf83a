package collection

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/clickmap/pkg/errors"
	"github.com/matzehuels/clickmap/pkg/fetch"
)

func listing(hrefs ...string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, h := range hrefs {
		fmt.Fprintf(&b, `<article><h2><a href="%s">title</a></h2><a href="/other">more</a></article>`, h)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func TestDiscover(t *testing.T) {
	pages := map[string]string{
		"1": listing("/clickventure/escape-the-bear-1", "/clickventure/intern-2"),
		"2": listing("/clickventure/escape-the-bear-1", "https://elsewhere.com/abs") + `<article><p>no link</p></article>`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, ok := pages[r.URL.Query().Get("page")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(page))
	}))
	defer srv.Close()

	d := NewDriver(fetch.New(fetch.Options{}), &fakeRenderer{}, WithSite(Site{
		ListingURL: srv.URL + "/features/clickventure/?page=%d",
		Origin:     "http://clickhole.com",
		Pages:      []int{1, 2},
	}))

	urls, err := d.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	want := []string{
		"http://clickhole.com/clickventure/escape-the-bear-1",
		"http://clickhole.com/clickventure/intern-2",
		"http://clickhole.com/clickventure/escape-the-bear-1",
		"https://elsewhere.com/abs",
	}
	if diff := cmp.Diff(want, urls); diff != "" {
		t.Errorf("urls mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscover_ListingFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	d := NewDriver(fetch.New(fetch.Options{}), &fakeRenderer{}, WithSite(Site{
		ListingURL: srv.URL + "/?page=%d",
		Origin:     "http://clickhole.com",
		Pages:      []int{1},
	}))
	if _, err := d.Discover(context.Background()); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
	if _, err := d.Batch(context.Background()); err == nil {
		t.Error("Batch should return the discovery error")
	}
}

func TestArticleLinks(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(listing("a/b", "../c")))
	if err != nil {
		t.Fatal(err)
	}
	origin, _ := url.Parse("http://clickhole.com")
	got := ArticleLinks(doc, origin)
	want := []string{"http://clickhole.com/a/b", "http://clickhole.com/c"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("links mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultSite(t *testing.T) {
	s := DefaultSite()
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, s.Pages); diff != "" {
		t.Errorf("Pages mismatch (-want +got):\n%s", diff)
	}
	if got := fmt.Sprintf(s.ListingURL, 3); got != "http://www.clickhole.com/features/clickventure/?page=3" {
		t.Errorf("listing url = %s", got)
	}
}
