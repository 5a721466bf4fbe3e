package moldraw

import (
	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
	"github.com/FabioUrbina/rdkit/pkg/render/text"
)

// maxRadicalSpots is the most electrons drawn for one atom.
const maxRadicalSpots = 4

// radicalSpotRadius is the radius of one radical electron in molecule
// units at unit font scale.
func (d *Drawer) radicalSpotRadius() float64 { return 0.2 * d.opts.MultipleBondOffset }

// placeRadical finds a box for the radical electrons of atom beside its
// label: on the label's own side first, then N, E, S and W. When every
// side clashes the electrons go north anyway.
func (d *Drawer) placeRadical(ctx *renderContext, atom, count int) radical {
	count = min(count, maxRadicalSpots)
	spot := d.radicalSpotRadius()
	at := ctx.coords[atom]
	block := d.labelBlock(ctx, atom)

	var ext geom.Rect
	if block.Empty() {
		ext = geom.NewRect(at.Sub(geom.Pt(3*spot, 3*spot)), at.Add(geom.Pt(3*spot, 3*spot)))
	} else {
		e := block.Extremes()
		ext = geom.NewRect(at.Add(e.Min), at.Add(e.Max))
	}
	size := float64(4*count-2) * spot

	rectFor := func(o text.Orient) geom.Rect {
		var c, half geom.Point
		switch o {
		case text.OrientE:
			c = geom.Pt(ext.Max.X+3*spot, at.Y)
			half = geom.Pt(0.75*spot, size/2)
		case text.OrientW:
			c = geom.Pt(ext.Min.X-3*spot, at.Y)
			half = geom.Pt(0.75*spot, size/2)
		case text.OrientS:
			c = geom.Pt(at.X, ext.Min.Y-1.5*spot)
			half = geom.Pt(size/2, 1.5*spot)
		default:
			c = geom.Pt(at.X, ext.Max.Y+1.5*spot)
			half = geom.Pt(size/2, 1.5*spot)
		}
		return geom.NewRect(c.Sub(half), c.Add(half))
	}
	fits := func(r geom.Rect) bool {
		sr := []text.StringRect{{Width: r.Width(), Height: r.Height()}}
		c := r.Centre()
		if !block.Empty() && text.RectsIntersect(sr, c, block.Rects, at, 0) {
			return false
		}
		return d.noteClash(ctx, sr, c, atom) == clashNone
	}

	own := ctx.labels[atom].orient
	if own == text.OrientC {
		own = text.OrientN
	}
	order := []text.Orient{own}
	for _, o := range []text.Orient{text.OrientN, text.OrientE, text.OrientS, text.OrientW} {
		if o != own {
			order = append(order, o)
		}
	}
	for _, o := range order {
		if r := rectFor(o); fits(r) {
			return radical{atom: atom, count: count, rect: r, orient: o}
		}
	}
	return radical{atom: atom, count: count, rect: rectFor(text.OrientN), orient: text.OrientN}
}

// radicalSpots returns the centres of the electrons of r, spread along the
// long side of its box.
func radicalSpots(r radical, spot float64) []geom.Point {
	c := r.rect.Centre()
	along := geom.Pt(1, 0)
	width := r.rect.Width()
	if r.orient == text.OrientE || r.orient == text.OrientW {
		along = geom.Pt(0, 1)
		width = r.rect.Height()
	}
	at := func(f float64) geom.Point { return c.Add(along.Mul(f)) }
	switch r.count {
	case 1:
		return []geom.Point{c}
	case 2:
		return []geom.Point{at(2 * spot), at(-2 * spot)}
	case 3:
		return []geom.Point{c, at(-0.5*width + spot), at(0.5*width - spot)}
	default:
		return []geom.Point{at(6 * spot), at(-6 * spot), at(2 * spot), at(-2 * spot)}
	}
}

// drawRadicals draws the radical electrons as filled dots. The dots keep
// their size relative to the labels when the font size is clamped.
func (d *Drawer) drawRadicals(ctx *renderContext) {
	if len(ctx.radicals) == 0 {
		return
	}
	defer d.withStyle()()
	spot := d.radicalSpotRadius() * d.text.FontScale() / d.tr.Scale
	d.c.SetColour(d.opts.SymbolColour)
	d.c.SetFill(true)
	d.c.SetDash(canvas.DashNone)
	d.scaleBondWidth = false
	d.setLineWidth(0)
	corner := geom.Pt(spot, spot)
	for _, r := range ctx.radicals {
		d.c.SetTag(canvas.Tag{Kind: canvas.TagAtom, Index: r.atom, Atoms: []int{r.atom}})
		for _, p := range radicalSpots(r, spot) {
			d.drawEllipse(p.Sub(corner), p.Add(corner))
		}
	}
}
