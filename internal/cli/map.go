package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clickmap/pkg/adventure"
	"github.com/matzehuels/clickmap/pkg/errors"
	"github.com/matzehuels/clickmap/pkg/render/nodelink"
)

// mapCommand creates the command that draws a single article.
func (c *CLI) mapCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "map [url]",
		Short: "Draw one Clickventure as a graph",
		Long: `Fetch a Clickventure article, extract its passages and choices, and draw the result.

Nothing is written unless --save or --out is given.`,
		Example: `  clickmap map http://clickhole.com/clickventure/escape-the-bear-1 --out ./maps
  clickmap map URL --show --format svg --style fillcolor=gold`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			url := args[0]
			if err := errors.ValidateURL(url); err != nil {
				return err
			}

			rcfg := flags.apply(cmd, c.cfg.RenderConfig())
			if err := rcfg.Validate(); err != nil {
				return err
			}

			fetcher, pc, err := c.newFetcher(ctx)
			if err != nil {
				return err
			}
			defer pc.Close()

			prog := newProgress(logger)
			doc, err := fetcher.Document(ctx, url)
			if err != nil {
				return err
			}
			a := adventure.New(url, doc)
			b, err := a.EnsureBuilt(ctx)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Extracted %d nodes", b.NodeCount()))

			spinner := newSpinner(ctx, os.Stderr, "Rendering "+a.Title+"...")
			spinner.Start()
			renderer := nodelink.NewRenderer(rcfg, nodelink.WithLogger(logger))
			res, err := renderer.Render(ctx, a)
			if err != nil {
				spinner.StopWithError("Render failed")
				return err
			}
			spinner.Stop()

			printSuccess("%s", a)
			printStats(b.NodeCount(), len(b.Edges), b.RootID)
			if d := b.DanglingTargets(); len(d) > 0 {
				printWarning("Links point to missing nodes: %v", d)
			}
			if u := b.Unreachable(); len(u) > 0 {
				printWarning("Nodes unreachable from the start: %v", u)
			}
			if res.Path != "" {
				printFile(res.Path)
			} else if dir := renderer.PreviewDir(); dir != "" {
				printDetail("Preview kept in %s", dir)
			} else {
				printNextStep("Save the image", "clickmap map "+url+" --out .")
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
