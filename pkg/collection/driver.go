package collection

import (
	"context"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/clickmap/pkg/adventure"
	"github.com/matzehuels/clickmap/pkg/errors"
	"github.com/matzehuels/clickmap/pkg/render/nodelink"
)

// Fetcher retrieves and parses pages.
type Fetcher interface {
	Document(ctx context.Context, url string) (*goquery.Document, error)
}

// Renderer draws one adventure.
type Renderer interface {
	Render(ctx context.Context, a *adventure.Adventure) (*nodelink.Result, error)
}

// Kind tags the stage at which an article failed.
type Kind string

const (
	KindInput      Kind = "input"      // URL is malformed or not http(s)
	KindNetwork    Kind = "network"    // page could not be retrieved
	KindParse      Kind = "parse"      // page is not parseable HTML
	KindExtraction Kind = "extraction" // node markup missing or malformed
	KindRender     Kind = "render"     // layout, drawing, saving or display failed
	KindInternal   Kind = "internal"   // unexpected panic
)

// Failure records one article that could not be processed.
type Failure struct {
	URL  string
	Kind Kind
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s (%s): %v", f.URL, f.Kind, f.Err)
}

// Success records one processed article.
type Success struct {
	Adventure *adventure.Adventure
	Result    *nodelink.Result
}

// Report is the outcome of a batch run.
type Report struct {
	RunID     string
	Successes []Success
	Failures  []Failure
}

// Adventures returns the successfully built adventures in input order.
func (r *Report) Adventures() []*adventure.Adventure {
	out := make([]*adventure.Adventure, len(r.Successes))
	for i, s := range r.Successes {
		out[i] = s.Adventure
	}
	return out
}

// Observer is told when each article of a run starts and finishes.
// Exactly one of s and f is non-nil in ArticleDone.
type Observer interface {
	ArticleStart(ctx context.Context, n, total int, url string)
	ArticleDone(ctx context.Context, url string, s *Success, f *Failure)
}

type noopObserver struct{}

func (noopObserver) ArticleStart(context.Context, int, int, string) {}
func (noopObserver) ArticleDone(context.Context, string, *Success, *Failure) {}

// Driver runs discovery and batch processing.
type Driver struct {
	fetcher  Fetcher
	renderer Renderer
	site     Site
	logger   *log.Logger
	observer Observer
}

// Option configures a Driver.
type Option func(*Driver)

// WithSite overrides the listing location.
func WithSite(s Site) Option {
	return func(d *Driver) { d.site = s }
}

// WithLogger sets the logger for progress and failure lines.
func WithLogger(l *log.Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithObserver reports per-article progress to o.
func WithObserver(o Observer) Option {
	return func(d *Driver) { d.observer = o }
}

// NewDriver creates a Driver.
func NewDriver(f Fetcher, r Renderer, opts ...Option) *Driver {
	d := &Driver{
		fetcher:  f,
		renderer: r,
		site:     DefaultSite(),
		logger:   log.New(io.Discard),
		observer: noopObserver{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run processes urls sequentially. Each failure is logged and recorded and
// processing continues with the next URL.
//
// The only error returned is the context's: when ctx is cancelled the run
// stops before the next article and the partial report is returned along
// with ctx.Err(). The article interrupted by the cancellation is not
// recorded.
func (d *Driver) Run(ctx context.Context, urls []string) (*Report, error) {
	rep := &Report{RunID: uuid.NewString()}
	logger := d.logger.With("run", rep.RunID[:8])

	for i, u := range urls {
		if err := ctx.Err(); err != nil {
			logger.Warn("Run cancelled", "done", i, "remaining", len(urls)-i)
			return rep, err
		}
		logger.Debug("Processing article", "n", i+1, "of", len(urls), "url", u)
		d.observer.ArticleStart(ctx, i+1, len(urls), u)
		s, f := d.process(ctx, u)
		d.observer.ArticleDone(ctx, u, s, f)

		if f != nil {
			if err := ctx.Err(); err != nil {
				logger.Warn("Run cancelled", "done", i, "remaining", len(urls)-i)
				return rep, err
			}
			logger.Warn("Failed to process "+u, "kind", f.Kind, "err", errors.UserMessage(f.Err))
			rep.Failures = append(rep.Failures, *f)
			continue
		}

		b := s.Adventure.Built()
		if dangling := b.DanglingTargets(); len(dangling) > 0 {
			logger.Warn("Links to missing nodes", "title", s.Adventure.Title, "nodes", dangling)
		}
		if unreachable := b.Unreachable(); len(unreachable) > 0 {
			logger.Warn("Nodes unreachable from start", "title", s.Adventure.Title, "nodes", unreachable)
		}
		logger.Debug("Rendered", "title", s.Adventure.Title, "nodes", b.NodeCount(), "edges", len(b.Edges))
		rep.Successes = append(rep.Successes, *s)
	}
	return rep, nil
}

// Batch discovers article URLs and runs them. A discovery failure or a
// cancelled context is returned as an error; article failures are not.
func (d *Driver) Batch(ctx context.Context) (*Report, error) {
	urls, err := d.Discover(ctx)
	if err != nil {
		return nil, err
	}
	return d.Run(ctx, urls)
}

func (d *Driver) process(ctx context.Context, u string) (s *Success, f *Failure) {
	defer func() {
		if r := recover(); r != nil {
			s, f = nil, &Failure{URL: u, Kind: KindInternal, Err: errors.New(errors.ErrCodeInternal, "panic: %v", r)}
		}
	}()

	doc, err := d.fetcher.Document(ctx, u)
	if err != nil {
		return nil, &Failure{URL: u, Kind: fetchKind(err), Err: err}
	}

	a := adventure.New(u, doc)
	if _, err := a.EnsureBuilt(ctx); err != nil {
		return nil, &Failure{URL: u, Kind: KindExtraction, Err: err}
	}

	res, err := d.renderer.Render(ctx, a)
	if err != nil {
		return nil, &Failure{URL: u, Kind: KindRender, Err: err}
	}
	return &Success{Adventure: a, Result: res}, nil
}

func fetchKind(err error) Kind {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput:
		return KindInput
	case errors.ErrCodeInvalidMarkup:
		return KindParse
	default:
		return KindNetwork
	}
}
