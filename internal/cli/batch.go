package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/clickmap/pkg/collection"
	"github.com/matzehuels/clickmap/pkg/errors"
	"github.com/matzehuels/clickmap/pkg/render/nodelink"
)

// listCommand creates the command that prints discovered article URLs.
func (c *CLI) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List Clickventure article URLs from the listing pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			fetcher, pc, err := c.newFetcher(ctx)
			if err != nil {
				return err
			}
			defer pc.Close()

			d := collection.NewDriver(fetcher, nil,
				collection.WithSite(c.cfg.SiteConfig()),
				collection.WithLogger(loggerFromContext(ctx)))
			urls, err := d.Discover(ctx)
			if err != nil {
				return err
			}
			for _, u := range urls {
				fmt.Println(u)
			}
			return nil
		},
	}
}

// batchCommand creates the command that draws every discovered article.
func (c *CLI) batchCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "batch [url...]",
		Short: "Draw every Clickventure from the listing pages",
		Long: `Discover article URLs from the listing pages (or take them from the
arguments) and draw each one. Images are saved by default.

A failing article is reported and skipped. The batch runs to the end
unless it is interrupted, in which case the partial summary is printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			rcfg, err := c.cfg.BatchRenderConfig()
			if err != nil {
				return err
			}
			rcfg = flags.apply(cmd, rcfg)
			if err := rcfg.Validate(); err != nil {
				return err
			}

			fetcher, pc, err := c.newFetcher(ctx)
			if err != nil {
				return err
			}
			defer pc.Close()

			renderer := nodelink.NewRenderer(rcfg, nodelink.WithLogger(logger))
			d := collection.NewDriver(fetcher, renderer,
				collection.WithSite(c.cfg.SiteConfig()),
				collection.WithLogger(logger),
				collection.WithObserver(&articleProgress{w: os.Stderr}))

			prog := newProgress(logger)
			var rep *collection.Report
			if len(args) > 0 {
				for _, u := range args {
					if err := errors.ValidateURL(u); err != nil {
						return err
					}
				}
				rep, err = d.Run(ctx, args)
			} else {
				rep, err = d.Batch(ctx)
			}
			if rep == nil {
				return err
			}
			prog.done(fmt.Sprintf("Processed %d articles", len(rep.Successes)+len(rep.Failures)))

			printSummary(rep)
			if dir := renderer.PreviewDir(); dir != "" {
				printDetail("Previews kept in %s", dir)
			}
			if err != nil {
				printWarning("Batch interrupted: %d rendered, %d failed", len(rep.Successes), len(rep.Failures))
				return err
			}
			if len(rep.Failures) > 0 {
				printWarning("%d rendered, %d failed", len(rep.Successes), len(rep.Failures))
			} else {
				printSuccess("%d rendered", len(rep.Successes))
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// articleProgress shows one spinner per article while a batch runs.
// Failures are reported by the driver's log, so a failed article only
// clears its spinner line.
type articleProgress struct {
	w        io.Writer
	n, total int
	spinner  *Spinner
}

func (p *articleProgress) ArticleStart(ctx context.Context, n, total int, url string) {
	p.n, p.total = n, total
	p.spinner = newSpinner(ctx, p.w, fmt.Sprintf("[%d/%d] %s", n, total, url))
	p.spinner.Start()
}

func (p *articleProgress) ArticleDone(_ context.Context, _ string, s *collection.Success, _ *collection.Failure) {
	if p.spinner == nil {
		return
	}
	if s != nil {
		p.spinner.StopWithSuccess(fmt.Sprintf("[%d/%d] %s", p.n, p.total, s.Adventure.Title))
	} else {
		p.spinner.Stop()
	}
	p.spinner = nil
}

// printSummary renders the batch report as tables on stdout.
func printSummary(rep *collection.Report) {
	if len(rep.Successes) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"#", "Title", "Nodes", "Edges", "File"})
		for i, s := range rep.Successes {
			b := s.Adventure.Built()
			path := s.Result.Path
			if path == "" {
				path = "-"
			}
			t.AppendRow(table.Row{i + 1, s.Adventure.Title, b.NodeCount(), len(b.Edges), path})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	}

	if len(rep.Failures) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"URL", "Stage", "Error"})
		for _, f := range rep.Failures {
			t.AppendRow(table.Row{f.URL, string(f.Kind), errors.UserMessage(f.Err)})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	}
}
