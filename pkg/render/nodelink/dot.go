package nodelink

import (
	"bytes"
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/matzehuels/clickmap/pkg/adventure"
	"github.com/matzehuels/clickmap/pkg/errors"
)

const (
	// rootColor is blue at 40% opacity.
	rootColor = "#0000ff66"

	// Marker areas in square points, as used for the degree scaling.
	rootArea    = 1000.0
	defaultArea = 300.0
)

// DOTOptions controls DOT generation.
type DOTOptions struct {
	// FigSize is the width and height of the figure in inches.
	FigSize float64

	// WrapWidth is the maximum number of columns per title line.
	WrapWidth int

	// SizeByDegree scales each non-root node by its total degree.
	SizeByDegree bool

	// Style holds Graphviz node attributes applied to non-root nodes.
	Style map[string]string
}

// ToDOT converts a built adventure to Graphviz DOT source.
// Returns an INVALID_OPTION error if a style attribute name is not an
// identifier.
func ToDOT(title string, b *adventure.Built, opts DOTOptions) (string, error) {
	if b == nil {
		return "", errors.New(errors.ErrCodeInternal, "adventure graph not built")
	}
	style, err := fmtStyle(opts.Style)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  label=%s;\n", quote(wrapTitle(title, opts.WrapWidth)))
	buf.WriteString("  labelloc=t;\n")
	if opts.FigSize > 0 {
		fmt.Fprintf(&buf, "  fontsize=%s;\n", fmtFloat(opts.FigSize*2))
		fmt.Fprintf(&buf, "  size=\"%s,%s!\";\n", fmtFloat(opts.FigSize), fmtFloat(opts.FigSize))
	}
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=white;\n")
	fmt.Fprintf(&buf, "  node [shape=circle, label=\"\", fixedsize=true, width=%s", fmtFloat(areaToInches(defaultArea)))
	if len(style) > 0 {
		buf.WriteString(", " + strings.Join(style, ", "))
	}
	buf.WriteString("];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("\n")

	for _, id := range b.Graph.NodeIDs() {
		if id == b.RootID {
			fmt.Fprintf(&buf, "  %d [style=filled, fillcolor=%s, color=%s, width=%s];\n",
				id, quote(rootColor), quote(rootColor), fmtFloat(areaToInches(rootArea)))
			continue
		}
		if opts.SizeByDegree && b.MaxDegree() > 0 {
			fmt.Fprintf(&buf, "  %d [width=%s];\n", id, fmtFloat(degreeWidth(b.Degree(id), b.MaxDegree())))
			continue
		}
		fmt.Fprintf(&buf, "  %d;\n", id)
	}

	buf.WriteString("\n")
	for _, e := range b.Edges {
		fmt.Fprintf(&buf, "  %d -> %d;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func fmtStyle(style map[string]string) ([]string, error) {
	attrs := make([]string, 0, len(style))
	for _, k := range slices.Sorted(maps.Keys(style)) {
		if err := errors.ValidateAttrName(k); err != nil {
			return nil, err
		}
		attrs = append(attrs, k+"="+quote(style[k]))
	}
	return attrs, nil
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", `\n`, "\n", `\n`, "\r", `\n`)

// quote returns s as a DOT double-quoted string. Only quotes and
// backslashes are escaped; line breaks become centered \n breaks and every
// other rune is written as is.
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

func wrapTitle(title string, width int) string {
	if width <= 0 {
		return title
	}
	return ansi.Wrap(title, width, "")
}

// degreeWidth grows node area exponentially with degree: 300·e^(3.5·d/max).
func degreeWidth(deg, maxDeg int) float64 {
	area := defaultArea * math.Exp(3.5*float64(deg)/float64(maxDeg))
	return areaToInches(area)
}

// areaToInches converts a marker area in square points to a diameter in inches.
func areaToInches(area float64) float64 {
	return math.Sqrt(area) / 72
}

func fmtFloat(f float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", f), "0"), ".")
}
