package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/clickmap/pkg/render/nodelink"
)

// renderFlags holds the drawing flags shared by map and batch.
type renderFlags struct {
	save         bool
	show         bool
	saveDir      string
	format       string
	engine       string
	figSize      float64
	wrapWidth    int
	sizeByDegree bool
	style        map[string]string
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.BoolVar(&f.save, "save", false, "save the image to --out")
	fl.BoolVar(&f.show, "show", false, "open the image in the system viewer")
	fl.StringVarP(&f.saveDir, "out", "o", "", "existing directory for saved images")
	fl.StringVarP(&f.format, "format", "f", "", "image format: "+strings.Join(nodelink.Formats(), ", "))
	fl.StringVar(&f.engine, "engine", "", "graphviz layout engine: "+strings.Join(nodelink.Engines(), ", "))
	fl.Float64Var(&f.figSize, "figsize", 0, "figure width and height in inches")
	fl.IntVar(&f.wrapWidth, "wrap", 0, "title wrap width in columns")
	fl.BoolVar(&f.sizeByDegree, "size-by-degree", false, "scale nodes by their number of links")
	fl.StringToStringVar(&f.style, "style", nil, "graphviz node attribute, e.g. --style fillcolor=gold (repeatable)")

	_ = cmd.RegisterFlagCompletionFunc("format", fixedCompletion(nodelink.Formats()))
	_ = cmd.RegisterFlagCompletionFunc("engine", fixedCompletion(nodelink.Engines()))
	_ = cmd.MarkFlagDirname("out")
}

func fixedCompletion(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// apply overrides cfg with every flag the user set explicitly.
func (f *renderFlags) apply(cmd *cobra.Command, cfg nodelink.Config) nodelink.Config {
	fl := cmd.Flags()
	if fl.Changed("save") {
		cfg.Save = f.save
	}
	if fl.Changed("show") {
		cfg.Show = f.show
	}
	if fl.Changed("out") {
		cfg.SaveDir = f.saveDir
		if !fl.Changed("save") {
			cfg.Save = true
		}
	}
	if fl.Changed("format") {
		cfg.Format = f.format
	}
	if fl.Changed("engine") {
		cfg.Engine = f.engine
	}
	if fl.Changed("figsize") {
		cfg.FigSize = f.figSize
	}
	if fl.Changed("wrap") {
		cfg.WrapWidth = f.wrapWidth
	}
	if fl.Changed("size-by-degree") {
		cfg.SizeByDegree = f.sizeByDegree
	}
	if len(f.style) > 0 {
		style := make(map[string]string, len(cfg.Style)+len(f.style))
		for k, v := range cfg.Style {
			style[k] = v
		}
		for k, v := range f.style {
			style[k] = v
		}
		cfg.Style = style
	}
	return cfg
}
