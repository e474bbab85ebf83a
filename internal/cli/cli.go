package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/clickmap/pkg/buildinfo"
	"github.com/matzehuels/clickmap/pkg/cache"
	"github.com/matzehuels/clickmap/pkg/config"
	"github.com/matzehuels/clickmap/pkg/fetch"
)

// Log levels accepted by New. --verbose switches to LogDebug.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
	verbose    bool
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          config.AppName,
		Short:        "Clickmap draws ClickHole Clickventures as graphs",
		Long:         `Clickmap scrapes choose-your-own-adventure articles, extracts the branching structure of their passages and renders each one as a node-link diagram with the starting passage highlighted.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log fetch, cache and render details")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML configuration file")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the page cache even if configured")

	root.AddCommand(c.mapCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Fetcher Factory
// =============================================================================

// newFetcher creates a page fetcher backed by the configured cache.
// The returned cache must be closed by the caller.
func (c *CLI) newFetcher(ctx context.Context) (*fetch.Client, cache.Cache, error) {
	pc, keyer, err := c.newCache(ctx)
	if err != nil {
		return nil, nil, err
	}
	opts := c.cfg.FetchOptions()
	opts.Cache = pc
	opts.Keyer = keyer
	return fetch.New(opts), pc, nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	logger := loggerFromContext(ctx)
	if c.noCache || !c.cfg.Cache.Enabled {
		return cache.NewNullCache(), nil, nil
	}
	if url := c.cfg.Cache.RedisURL; url != "" {
		rc, err := cache.NewRedisCache(ctx, url)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("Using redis page cache")
		return rc, cache.NewScopedKeyer(nil, config.AppName+":"), nil
	}
	dir, err := c.cfg.CacheDir()
	if err != nil {
		logger.Warn("No cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Using file page cache", "dir", dir)
	return fc, nil, nil
}
