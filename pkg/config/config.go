// Package config loads clickmap settings from TOML.
//
// Settings start from [Default]. A file named on the command line is decoded
// on top of the defaults, so keys it omits keep their default values. A
// sibling "<name>.local.toml" is merged over that for machine-specific
// overrides:
//
//	cfg, err := config.Load("clickmap.toml") // also reads clickmap.local.toml
//
// Durations are written as strings ("30s", "24h").
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"

	"github.com/matzehuels/clickmap/pkg/collection"
	"github.com/matzehuels/clickmap/pkg/errors"
	"github.com/matzehuels/clickmap/pkg/fetch"
	"github.com/matzehuels/clickmap/pkg/render/nodelink"
)

// AppName names the cache directory and Redis key prefix.
const AppName = "clickmap"

// Config is the full configuration.
type Config struct {
	Site   Site   `toml:"site"`
	HTTP   HTTP   `toml:"http"`
	Cache  Cache  `toml:"cache"`
	Render Render `toml:"render"`

	// Batch overrides Render for the batch command. Unset fields fall back
	// to Render.
	Batch Render `toml:"batch"`
}

// Site describes the listing pages.
type Site struct {
	ListingURL string `toml:"listing_url"`
	Origin     string `toml:"origin"`
	Pages      []int  `toml:"pages"`
}

// HTTP configures page retrieval.
type HTTP struct {
	Timeout   time.Duration `toml:"timeout"`
	UserAgent string        `toml:"user_agent"`
}

// Cache configures the page cache.
type Cache struct {
	Enabled  bool          `toml:"enabled"`
	Dir      string        `toml:"dir"`
	TTL      time.Duration `toml:"ttl"`
	RedisURL string        `toml:"redis_url"`
}

// Render configures drawing. Zero values mean "use the default".
type Render struct {
	FigSize      float64           `toml:"figsize"`
	Show         *bool             `toml:"show"`
	Save         *bool             `toml:"save"`
	SaveDir      string            `toml:"save_dir"`
	WrapWidth    int               `toml:"wrap_width"`
	Engine       string            `toml:"engine"`
	Format       string            `toml:"format"`
	SizeByDegree *bool             `toml:"size_by_degree"`
	Style        map[string]string `toml:"style"`
}

// BatchStyle is applied under the user's batch style: seagreen at 70%
// opacity, filled.
var BatchStyle = map[string]string{
	"style":     "filled",
	"fillcolor": "#2e8b57b3",
	"color":     "#2e8b57b3",
}

// Default returns the built-in configuration.
func Default() Config {
	site := collection.DefaultSite()
	return Config{
		Site: Site{
			ListingURL: site.ListingURL,
			Origin:     site.Origin,
			Pages:      site.Pages,
		},
		HTTP: HTTP{
			Timeout:   fetch.DefaultTimeout,
			UserAgent: fetch.DefaultUserAgent,
		},
		Cache: Cache{
			TTL: 24 * time.Hour,
		},
		Render: Render{
			FigSize:   nodelink.DefaultFigSize,
			Show:      ptr(false),
			Save:      ptr(false),
			SaveDir:   "ClickVenture Results",
			WrapWidth: nodelink.DefaultWrapWidth,
			Engine:    nodelink.DefaultEngine,
			Format:    nodelink.DefaultFormat,
		},
		Batch: Render{
			FigSize:   10,
			Save:      ptr(true),
			WrapWidth: 60,
		},
	}
}

// Load reads path (and its .local variant) over the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeInvalidPath, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidOption, err, "config %s", path)
	}

	local := localPath(path)
	if _, err := os.Stat(local); err == nil {
		var override Config
		if _, err := toml.DecodeFile(local, &override); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInvalidOption, err, "config %s", local)
		}
		if err := mergo.Merge(&cfg, override, mergo.WithOverride); err != nil {
			return cfg, errors.Wrap(errors.ErrCodeInternal, err, "merge %s", local)
		}
	}
	return cfg, nil
}

func localPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + ".local" + ext
}

// SiteConfig converts the [site] section.
func (c Config) SiteConfig() collection.Site {
	return collection.Site{
		ListingURL: c.Site.ListingURL,
		Origin:     c.Site.Origin,
		Pages:      c.Site.Pages,
	}
}

// RenderConfig converts the [render] section.
func (c Config) RenderConfig() nodelink.Config {
	return c.Render.toNodelink()
}

// BatchRenderConfig returns [batch] with unset fields taken from [render].
// The batch style is merged key by key: user keys win over [render.style],
// which wins over BatchStyle.
func (c Config) BatchRenderConfig() (nodelink.Config, error) {
	r := c.Batch
	r.Style = mergeStyles(c.Batch.Style, c.Render.Style, BatchStyle)

	base := c.Render
	base.Style = nil
	if err := mergo.Merge(&r, base); err != nil {
		return nodelink.Config{}, errors.Wrap(errors.ErrCodeInternal, err, "merge batch config")
	}
	return r.toNodelink(), nil
}

func mergeStyles(layers ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, l := range layers {
		// Earlier layers win; mergo only fills missing keys.
		_ = mergo.Merge(&out, l)
	}
	return out
}

func (r Render) toNodelink() nodelink.Config {
	return nodelink.Config{
		FigSize:      r.FigSize,
		Show:         deref(r.Show),
		Save:         deref(r.Save),
		SaveDir:      r.SaveDir,
		WrapWidth:    r.WrapWidth,
		Engine:       r.Engine,
		Format:       r.Format,
		SizeByDegree: deref(r.SizeByDegree),
		Style:        r.Style,
	}
}

// FetchOptions converts the [http] section. The cache is attached by the
// caller.
func (c Config) FetchOptions() fetch.Options {
	return fetch.Options{
		Timeout:   c.HTTP.Timeout,
		UserAgent: c.HTTP.UserAgent,
		CacheTTL:  c.Cache.TTL,
	}
}

// CacheDir returns the configured cache directory, defaulting to
// $XDG_CACHE_HOME/clickmap or ~/.cache/clickmap.
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

func ptr[T any](v T) *T { return &v }

func deref(b *bool) bool { return b != nil && *b }
