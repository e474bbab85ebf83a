package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/clickmap/pkg/adventure"
	"github.com/matzehuels/clickmap/pkg/errors"
)

const page = `<html><head><title>Escape The Bear0123456789abc</title></head><body>
<div class="clickventure-node clickventure-start" data-node-id="1">
  <div class="clickventure-node-link" data-target-node="2">Run</div>
  <div class="clickventure-node-link clickventure-float" data-target-node="3">Hide</div>
</div>
<div class="clickventure-node" data-node-id="2">
  <div class="clickventure-node-link" data-target-node="1">Go back</div>
</div>
<div class="clickventure-node" data-node-id="3"></div>
</body></html>`

type fakeViewer struct{ paths []string }

func (v *fakeViewer) View(_ context.Context, path string) error {
	v.paths = append(v.paths, path)
	return nil
}

type failingViewer struct{}

func (failingViewer) View(context.Context, string) error {
	return fmt.Errorf("no display")
}

func mustAdventure(t *testing.T) *adventure.Adventure {
	t.Helper()
	a, err := adventure.Parse("http://clickhole.com/article/1", strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestConfig_Validate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		cfg  Config
		code errors.Code
	}{
		{"defaults", Config{}, ""},
		{"svg", Config{Format: "svg", Engine: "dot"}, ""},
		{"bad engine", Config{Engine: "spring"}, errors.ErrCodeInvalidOption},
		{"bad format", Config{Format: "gif"}, errors.ErrCodeInvalidOption},
		{"save dir exists", Config{Save: true, SaveDir: dir}, ""},
		{"save dir missing", Config{Save: true, SaveDir: filepath.Join(dir, "missing")}, errors.ErrCodeInvalidPath},
		{"missing dir ignored without save", Config{SaveDir: filepath.Join(dir, "missing")}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRender_SaveAndShow(t *testing.T) {
	dir := t.TempDir()
	viewer := &fakeViewer{}
	r := NewRenderer(Config{Save: true, Show: true, SaveDir: dir, Format: FormatSVG}, WithViewer(viewer))

	a := mustAdventure(t)
	res, err := r.Render(context.Background(), a)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	wantPath := filepath.Join(dir, "Escape The Bear.svg")
	if res.Path != wantPath {
		t.Errorf("Path = %q, want %q", res.Path, wantPath)
	}
	data, err := os.ReadFile(wantPath)
	if err != nil {
		t.Fatalf("saved file: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("saved file is not SVG")
	}
	if len(viewer.paths) != 1 || viewer.paths[0] != wantPath {
		t.Errorf("viewer paths = %v, want [%s]", viewer.paths, wantPath)
	}
	if !a.IsBuilt() {
		t.Error("Render should build the adventure")
	}
}

func TestRender_NoSideEffects(t *testing.T) {
	dir := t.TempDir()
	viewer := &fakeViewer{}
	r := NewRenderer(Config{SaveDir: dir, Format: FormatSVG}, WithViewer(viewer))

	res, err := r.Render(context.Background(), mustAdventure(t))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if res.Path != "" {
		t.Errorf("Path = %q, want empty", res.Path)
	}
	if len(res.Data) == 0 {
		t.Error("expected rendered data")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("save dir has %d entries, want 0", len(entries))
	}
	if len(viewer.paths) != 0 {
		t.Error("viewer should not be called")
	}
}

func TestRender_MissingSaveDir(t *testing.T) {
	r := NewRenderer(Config{Save: true, SaveDir: filepath.Join(t.TempDir(), "nope")})

	_, err := r.Render(context.Background(), mustAdventure(t))
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("error = %v, want INVALID_PATH", err)
	}
}

func TestRender_BadStyle(t *testing.T) {
	r := NewRenderer(Config{Format: FormatSVG, Style: map[string]string{"not valid": "x"}})

	_, err := r.Render(context.Background(), mustAdventure(t))
	if !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("error = %v, want INVALID_OPTION", err)
	}
}

func TestRender_ReleasesFigure(t *testing.T) {
	tests := []struct {
		name      string
		cfg       func(dir string) Config
		viewer    Viewer
		afterOpen func(dir string)
		code      errors.Code
	}{
		{
			name:   "success",
			cfg:    func(dir string) Config { return Config{Save: true, SaveDir: dir, Format: FormatSVG} },
			viewer: &fakeViewer{},
		},
		{
			name:      "save dir removed after validation",
			cfg:       func(dir string) Config { return Config{Save: true, SaveDir: dir, Format: FormatSVG} },
			viewer:    &fakeViewer{},
			afterOpen: func(dir string) { os.RemoveAll(dir) },
			code:      errors.ErrCodeRender,
		},
		{
			name:   "viewer fails",
			cfg:    func(dir string) Config { return Config{Show: true, Format: FormatSVG} },
			viewer: failingViewer{},
			code:   errors.ErrCodeRender,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "maps")
			if err := os.Mkdir(dir, 0o755); err != nil {
				t.Fatal(err)
			}

			r := NewRenderer(tt.cfg(dir), WithViewer(tt.viewer))
			t.Cleanup(func() {
				if d := r.PreviewDir(); d != "" {
					os.RemoveAll(d)
				}
			})
			var fig *figure
			r.open = func(ctx context.Context, dot, engine string) (*figure, error) {
				f, err := openFigure(ctx, dot, engine)
				fig = f
				if err == nil && tt.afterOpen != nil {
					tt.afterOpen(dir)
				}
				return f, err
			}

			_, err := r.Render(context.Background(), mustAdventure(t))
			if tt.code == "" && err != nil {
				t.Fatalf("Render() error: %v", err)
			}
			if tt.code != "" && !errors.Is(err, tt.code) {
				t.Fatalf("error = %v, want %s", err, tt.code)
			}
			if fig == nil {
				t.Fatal("figure was never opened")
			}
			if !fig.closed {
				t.Error("figure not released")
			}
		})
	}
}

func TestRender_PreviewsShareDirectory(t *testing.T) {
	viewer := &fakeViewer{}
	r := NewRenderer(Config{Show: true, Format: FormatSVG}, WithViewer(viewer))
	if r.PreviewDir() != "" {
		t.Error("no preview directory before the first preview")
	}

	for range 2 {
		if _, err := r.Render(context.Background(), mustAdventure(t)); err != nil {
			t.Fatalf("Render() error: %v", err)
		}
	}
	dir := r.PreviewDir()
	t.Cleanup(func() { os.RemoveAll(dir) })

	if len(viewer.paths) != 2 {
		t.Fatalf("viewer paths = %v, want 2", viewer.paths)
	}
	if viewer.paths[0] == viewer.paths[1] {
		t.Error("each preview should get its own file")
	}
	for _, p := range viewer.paths {
		if filepath.Dir(p) != dir {
			t.Errorf("preview %s outside %s", p, dir)
		}
		if !strings.HasPrefix(filepath.Base(p), "Escape The Bear-") {
			t.Errorf("preview %s not named after the title", p)
		}
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Errorf("preview dir has %d entries, want 2", len(entries))
	}
}

func TestRender_ExtractionErrorPropagates(t *testing.T) {
	a, err := adventure.Parse("u", strings.NewReader("<html><body>nothing</body></html>"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = NewRenderer(Config{Format: FormatSVG}).Render(context.Background(), a)
	if !errors.Is(err, errors.ErrCodeRootNotFound) {
		t.Errorf("error = %v, want ROOT_NOT_FOUND", err)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Escape The Bear", "Escape The Bear.png"},
		{"Either/Or", "Either_Or.png"},
		{`What? "Really"`, "What_ _Really_.png"},
		{"...", "no title found.png"},
	}
	for _, tt := range tests {
		if got := Filename(tt.title, "png"); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
