package moldraw

import (
	"strings"

	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
	"github.com/FabioUrbina/rdkit/pkg/render/text"
)

// minLegendHeight is the smallest legend strip, in pixels, given to a
// single molecule.
const minLegendHeight = 20

// legendHeight is the strip reserved under the molecule for legend: a
// twentieth of the panel, in whole pixels.
func legendHeight(legend string, panelH float64, withMin bool) float64 {
	if legend == "" {
		return 0
	}
	h := float64(int(0.05 * panelH))
	if withMin {
		h = max(h, minLegendHeight)
	}
	return h
}

// legendLines splits a legend on newlines, dropping empty lines.
func legendLines(legend string) []string {
	var out []string
	for _, l := range strings.Split(legend, "\n") {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// drawLegend draws legend centred at the bottom of the panel at
// LegendFontSize pixels, shrunk to fit the legend strip and the panel
// width.
func (d *Drawer) drawLegend(legend string) {
	lines := legendLines(legend)
	if len(lines) == 0 {
		return
	}
	defer d.withStyle()()
	fs := d.text.FontScale()
	defer d.text.SetFontScale(fs, true)

	measure := func() (blocks []text.Block, heights []float64, total, width float64) {
		for _, l := range lines {
			b := d.text.Aligned(l, text.AlignMiddle)
			e := b.Extremes()
			blocks = append(blocks, b)
			heights = append(heights, e.Height())
			total += e.Height()
			width = max(width, e.Width())
		}
		return blocks, heights, total, width
	}

	scale := fs * d.opts.LegendFontSize / d.text.FontSize()
	d.text.SetFontScale(scale, true)
	blocks, heights, total, width := measure()
	if lh := d.tr.LegendH; lh > 0 && total > lh {
		scale *= lh / total
		d.text.SetFontScale(scale, true)
		blocks, heights, total, width = measure()
	}
	if width > d.tr.PanelW {
		scale *= d.tr.PanelW / width
		d.text.SetFontScale(scale, true)
		blocks, heights, total, _ = measure()
	}

	d.c.SetColour(d.opts.LegendColour)
	d.c.SetTag(canvas.Tag{Kind: canvas.TagLegend, Index: -1})
	x := d.tr.XOffset + d.tr.PanelW/2
	y := d.tr.YOffset + d.tr.PanelH - total
	for i, b := range blocks {
		b.Draw(d.c, geom.Pt(x, y+heights[i]/2))
		y += heights[i]
	}
}
