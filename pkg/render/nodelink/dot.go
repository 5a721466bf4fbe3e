package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/FabioUrbina/rdkit/pkg/mol"
	"github.com/FabioUrbina/rdkit/pkg/render"
)

// Options configures node-link rendering of a molecular graph.
type Options struct {
	// Detailed adds the atom index, charge and hydrogen count to each
	// node label. When false, only the element symbol is shown.
	Detailed bool

	// UseCoords pins nodes at the molecule's 2D coordinates (neato with
	// pos="x,y!"). When false or when the molecule has no coordinates,
	// Graphviz lays the graph out itself.
	UseCoords bool
}

// ToDOT converts a molecule to an undirected Graphviz graph. The resulting
// DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Bond orders are drawn with parallel edges (a colour list of
// "black:invis:black" for doubles), aromatic bonds dashed and query bonds
// dotted, so the output doubles as a quick visual check of a document's
// connectivity.
func ToDOT(m *mol.Molecule, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	pinned := opts.UseCoords && m.HasCoords()
	if pinned {
		buf.WriteString("  layout=neato;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14, width=0.3, fixedsize=false];\n")
	buf.WriteString("  edge [penwidth=2];\n")
	buf.WriteString("\n")

	for i := range m.Atoms {
		attrs := fmtAtomAttrs(m, i, opts.Detailed)
		if pinned {
			p := m.Coords[i]
			attrs = append(attrs, fmt.Sprintf("pos=\"%.3f,%.3f!\"", p.X, p.Y))
		}
		fmt.Fprintf(&buf, "  a%d [%s];\n", i, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for bi := range m.Bonds {
		b := &m.Bonds[bi]
		fmt.Fprintf(&buf, "  a%d -- a%d [%s];\n", b.Begin, b.End, strings.Join(fmtBondAttrs(b), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAtomAttrs(m *mol.Molecule, i int, detailed bool) []string {
	a := &m.Atoms[i]
	label := a.Symbol()
	if a.Label != "" {
		label = a.Label
	}
	if detailed {
		parts := []string{label, fmt.Sprintf("#%d", i)}
		if a.Charge != 0 {
			parts = append(parts, fmt.Sprintf("q=%+d", a.Charge))
		}
		if a.NumHs != 0 {
			parts = append(parts, fmt.Sprintf("H%d", a.NumHs))
		}
		label = strings.Join(parts, "\n")
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if a.Element != 6 {
		attrs = append(attrs, "fontcolor=\"#1f5fbf\"")
	}
	if a.IsQuery() {
		attrs = append(attrs, "style=\"filled,dashed\"", "fillcolor=lightgrey")
	}
	return attrs
}

func fmtBondAttrs(b *mol.Bond) []string {
	var attrs []string
	switch b.Type {
	case mol.BondDouble:
		attrs = append(attrs, "color=\"black:invis:black\"")
	case mol.BondTriple:
		attrs = append(attrs, "color=\"black:invis:black:invis:black\"")
	case mol.BondAromatic:
		attrs = append(attrs, "style=dashed")
	case mol.BondDative, mol.BondDativeL, mol.BondDativeR:
		attrs = append(attrs, "dir=forward", "arrowhead=normal")
	case mol.BondZero, mol.BondHydrogen:
		attrs = append(attrs, "style=dotted", "color=grey40")
	}
	if b.IsComplexQuery() {
		attrs = append(attrs, "style=dotted", "color=grey50")
	}
	if b.Dir == mol.DirBeginWedge || b.Dir == mol.DirBeginDash {
		attrs = append(attrs, "penwidth=4")
	}
	if len(attrs) == 0 {
		attrs = append(attrs, "color=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

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

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
