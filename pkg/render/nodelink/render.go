package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/matzehuels/clickmap/pkg/adventure"
	"github.com/matzehuels/clickmap/pkg/errors"
	"github.com/matzehuels/clickmap/pkg/markup"
	"github.com/matzehuels/clickmap/pkg/observability"
)

// Supported output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// Defaults used for zero Config fields.
const (
	DefaultFigSize   = 30.0
	DefaultWrapWidth = 25
	DefaultEngine    = "neato"
	DefaultFormat    = FormatPNG
)

var engines = map[string]graphviz.Layout{
	"circo": graphviz.CIRCO,
	"dot":   graphviz.DOT,
	"fdp":   graphviz.FDP,
	"neato": graphviz.NEATO,
	"sfdp":  graphviz.SFDP,
	"twopi": graphviz.TWOPI,
}

var formats = map[string]graphviz.Format{
	FormatPNG: graphviz.PNG,
	FormatSVG: graphviz.SVG,
}

// Engines returns the supported layout engine names, sorted.
func Engines() []string { return slices.Sorted(maps.Keys(engines)) }

// Formats returns the supported output formats, sorted.
func Formats() []string { return slices.Sorted(maps.Keys(formats)) }

// Config configures a Renderer. Zero values fall back to the package
// defaults.
type Config struct {
	FigSize      float64           // Figure width and height in inches
	Show         bool              // Open the image in the system viewer
	Save         bool              // Write the image to SaveDir
	SaveDir      string            // Existing directory for saved images
	WrapWidth    int               // Title wrap width in columns
	Engine       string            // Graphviz layout engine
	Format       string            // png or svg
	SizeByDegree bool              // Scale nodes by total degree
	Style        map[string]string // Graphviz node attributes for non-root nodes
}

func (c Config) withDefaults() Config {
	if c.FigSize <= 0 {
		c.FigSize = DefaultFigSize
	}
	if c.WrapWidth <= 0 {
		c.WrapWidth = DefaultWrapWidth
	}
	if c.Engine == "" {
		c.Engine = DefaultEngine
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.SaveDir == "" {
		c.SaveDir = "."
	}
	return c
}

// Validate checks the engine, format and, when saving, the save directory.
func (c Config) Validate() error {
	c = c.withDefaults()
	if _, ok := engines[c.Engine]; !ok {
		return errors.New(errors.ErrCodeInvalidOption, "unknown layout engine %q (want one of %s)", c.Engine, strings.Join(Engines(), ", "))
	}
	if _, ok := formats[c.Format]; !ok {
		return errors.New(errors.ErrCodeInvalidOption, "unsupported format %q (want one of %s)", c.Format, strings.Join(Formats(), ", "))
	}
	if c.Save {
		return errors.ValidateDir(c.SaveDir)
	}
	return nil
}

// Result describes one rendered adventure.
type Result struct {
	Title  string
	Format string
	Data   []byte
	Path   string // Empty unless the image was saved
}

// Renderer draws adventures.
//
// Images shown without being saved are written to one temporary preview
// directory per Renderer, see [Renderer.PreviewDir]. The directory is left
// in place because viewers open files asynchronously.
type Renderer struct {
	cfg    Config
	viewer Viewer
	logger *log.Logger
	open   func(ctx context.Context, dot, engine string) (*figure, error)

	previewOnce sync.Once
	previewDir  string
	previewErr  error
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithViewer replaces the system image viewer.
func WithViewer(v Viewer) Option {
	return func(r *Renderer) { r.viewer = v }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// NewRenderer creates a Renderer for cfg.
func NewRenderer(cfg Config, opts ...Option) *Renderer {
	r := &Renderer{
		cfg:    cfg.withDefaults(),
		viewer: SystemViewer{},
		logger: log.New(io.Discard),
		open:   openFigure,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PreviewDir returns the directory holding unsaved previews, or "" if no
// preview has been written yet.
func (r *Renderer) PreviewDir() string {
	if r.previewErr != nil {
		return ""
	}
	return r.previewDir
}

// Config returns the effective configuration.
func (r *Renderer) Config() Config { return r.cfg }

// Render builds the adventure's graph if necessary, lays it out and draws
// it. The image is saved and displayed according to the configuration.
//
// Errors from building, layout, saving or displaying are returned; none
// are swallowed.
func (r *Renderer) Render(ctx context.Context, a *adventure.Adventure) (res *Result, err error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := a.EnsureBuilt(ctx)
	if err != nil {
		return nil, err
	}

	dot, err := ToDOT(a.Title, b, DOTOptions{
		FigSize:      r.cfg.FigSize,
		WrapWidth:    r.cfg.WrapWidth,
		SizeByDegree: r.cfg.SizeByDegree,
		Style:        r.cfg.Style,
	})
	if err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, a.Title, r.cfg.Format)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, a.Title, r.cfg.Format, time.Since(start), err) }()

	fig, err := r.open(ctx, dot, r.cfg.Engine)
	if err != nil {
		return nil, err
	}
	defer fig.Close()

	data, err := fig.draw(ctx, r.cfg.Format)
	if err != nil {
		return nil, err
	}
	res = &Result{Title: a.Title, Format: r.cfg.Format, Data: data}

	if r.cfg.Save {
		res.Path = filepath.Join(r.cfg.SaveDir, Filename(a.Title, r.cfg.Format))
		if err := os.WriteFile(res.Path, data, 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRender, err, "save %s", res.Path)
		}
		r.logger.Debug("Saved figure", "path", res.Path, "bytes", len(data))
	}

	if r.cfg.Show {
		if err := r.show(ctx, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (r *Renderer) show(ctx context.Context, res *Result) error {
	path := res.Path
	if path == "" {
		var err error
		if path, err = r.writePreview(res); err != nil {
			return err
		}
	}
	r.logger.Debug("Opening viewer", "path", path)
	if err := r.viewer.View(ctx, path); err != nil {
		return errors.Wrap(errors.ErrCodeRender, err, "display %s", path)
	}
	return nil
}

func (r *Renderer) writePreview(res *Result) (string, error) {
	r.previewOnce.Do(func() {
		r.previewDir, r.previewErr = os.MkdirTemp("", "clickmap-preview-")
	})
	if r.previewErr != nil {
		return "", errors.Wrap(errors.ErrCodeRender, r.previewErr, "create preview directory")
	}

	stem := strings.TrimSuffix(Filename(res.Title, res.Format), "."+res.Format)
	f, err := os.CreateTemp(r.previewDir, stem+"-*."+res.Format)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeRender, err, "create preview file")
	}
	if _, err := f.Write(res.Data); err != nil {
		f.Close()
		return "", errors.Wrap(errors.ErrCodeRender, err, "write preview file")
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(errors.ErrCodeRender, err, "write preview file")
	}
	return f.Name(), nil
}

// figure is one Graphviz instance holding a parsed graph. It must be closed.
type figure struct {
	gv     *graphviz.Graphviz
	g      *cgraph.Graph
	closed bool
}

func openFigure(ctx context.Context, dot, engine string) (*figure, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		gv.Close()
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	gv.SetLayout(engines[engine])
	return &figure{gv: gv, g: g}, nil
}

func (f *figure) draw(ctx context.Context, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.gv.Render(ctx, f.g, formats[format], &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "layout %s", format)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

func (f *figure) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	gerr := f.g.Close()
	if err := f.gv.Close(); err != nil {
		return err
	}
	return gerr
}

var unsafeFilename = regexp.MustCompile(`[/\\:*?"<>|\x00-\x1f]`)

// Filename returns "<title>.<format>" with path separators and characters
// that are invalid on common filesystems replaced by underscores.
func Filename(title, format string) string {
	name := strings.Trim(unsafeFilename.ReplaceAllString(title, "_"), " .")
	if name == "" {
		name = markup.PlaceholderTitle
	}
	return name + "." + format
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg element so the drawing scales with
// its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
