// Package fetch retrieves HTML pages over HTTP.
//
// [Client] wraps a resty client with a fixed timeout and user agent, maps
// failures onto coded errors (NOT_FOUND, TIMEOUT, NETWORK_ERROR) and can
// serve repeated requests from a [cache.Cache]. Requests are reported to the
// registered [observability.HTTPHooks].
package fetch

import (
	"bytes"
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/matzehuels/clickmap/pkg/buildinfo"
	"github.com/matzehuels/clickmap/pkg/cache"
	"github.com/matzehuels/clickmap/pkg/errors"
	"github.com/matzehuels/clickmap/pkg/observability"
)

// DefaultTimeout applies when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent applies when Options.UserAgent is empty.
var DefaultUserAgent = buildinfo.UserAgent()

// Options configures a Client.
type Options struct {
	Timeout   time.Duration
	UserAgent string

	// Cache stores page bodies. Nil disables caching.
	Cache    cache.Cache
	CacheTTL time.Duration
	Keyer    cache.Keyer
}

// Client fetches pages.
type Client struct {
	http  *resty.Client
	cache cache.Cache
	ttl   time.Duration
	keyer cache.Keyer
}

// New creates a Client.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	if opts.Keyer == nil {
		opts.Keyer = cache.NewDefaultKeyer()
	}

	client := resty.New()
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)
	instrument(client)

	return &Client{
		http:  client,
		cache: opts.Cache,
		ttl:   opts.CacheTTL,
		keyer: opts.Keyer,
	}
}

// Get returns the body of the page at rawURL.
//
// A 404 yields NOT_FOUND, a timeout TIMEOUT, and every other transport
// failure or non-2xx status NETWORK_ERROR. Cache failures never fail the
// request.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := errors.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	key := c.keyer.PageKey(rawURL)
	if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "page")
		return data, nil
	}
	observability.Cache().OnCacheMiss(ctx, "page")

	resp, err := c.http.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, classify(rawURL, err)
	}
	if err := checkStatus(rawURL, resp.StatusCode()); err != nil {
		return nil, err
	}

	body := resp.Body()
	if err := c.cache.Set(ctx, key, body, c.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, "page", len(body))
	}
	return body, nil
}

// Document fetches rawURL and parses it as HTML.
// Returns an INVALID_MARKUP error if the body cannot be parsed.
func (c *Client) Document(ctx context.Context, rawURL string) (*goquery.Document, error) {
	body, err := c.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMarkup, err, "parse %s", rawURL)
	}
	return doc, nil
}

func checkStatus(rawURL string, code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s: status %d", rawURL, code)
	default:
		return errors.New(errors.ErrCodeNetwork, "%s: status %d", rawURL, code)
	}
}

func classify(rawURL string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s", rawURL)
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return errors.Wrap(errors.ErrCodeTimeout, err, "fetch %s", rawURL)
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", rawURL)
}

func instrument(client *resty.Client) {
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		host, path := splitURL(req.URL)
		observability.HTTP().OnRequest(req.Context(), req.Method, host, path)
		return nil
	})
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		host, path := splitURL(res.Request.URL)
		observability.HTTP().OnResponse(res.Request.Context(), res.Request.Method, host, path, res.StatusCode(), res.Time())
		return nil
	})
	client.OnError(func(req *resty.Request, err error) {
		host, path := splitURL(req.URL)
		observability.HTTP().OnError(req.Context(), req.Method, host, path, err)
	})
}

func splitURL(raw string) (host, path string) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", raw
	}
	return u.Host, u.Path
}
