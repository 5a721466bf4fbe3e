package moldraw

import (
	"math"
	"slices"

	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/mol"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
)

// hydrogenBondGrey is the colour of hydrogen bonds.
var hydrogenBondGrey = canvas.RGB(0.2, 0.2, 0.2)

// bondRequest is everything needed to draw one bond, resolved fresh for
// each draw.
type bondRequest struct {
	bond       int
	begin, end int
	typ        mol.BondType
	dir        mol.BondDir
	stereo     mol.BondStereo
	query      mol.QueryKind
	negated    bool

	c1, c2     geom.Point // ends in molecule space, trimmed for labels
	col1, col2 canvas.Colour
	highlight  bool
	sep        float64 // gap between the lines of a multiple bond
}

// drawBonds draws every bond of the molecule once.
func (d *Drawer) drawBonds(ctx *renderContext) {
	m := ctx.mol
	for i := range m.Atoms {
		for _, bi := range m.AtomBonds(i) {
			nbr := m.Bonds[bi].Other(i)
			if i < nbr {
				d.drawBond(ctx, bi)
			}
		}
	}
}

// newBondRequest resolves bond bi for drawing.
func (d *Drawer) newBondRequest(ctx *renderContext, bi int) bondRequest {
	b := &ctx.mol.Bonds[bi]
	r := bondRequest{
		bond:    bi,
		begin:   b.Begin,
		end:     b.End,
		typ:     b.Type,
		dir:     b.Dir,
		stereo:  b.Stereo,
		query:   b.Query,
		negated: b.QueryNegated,
		c1:      ctx.coords[b.Begin],
		c2:      ctx.coords[b.End],
	}

	r.sep = d.bondSeparation(r.c1, r.c2)

	r.c1 = d.adjustBondEndForLabel(ctx, b.Begin, ctx.coords[b.End], r.c1)
	r.c2 = d.adjustBondEndForLabel(ctx, b.End, ctx.coords[b.Begin], r.c2)

	r.highlight = d.hl != nil && slices.Contains(d.hl.Bonds, bi)
	return r
}

func (d *Drawer) drawBond(ctx *renderContext, bi int) {
	defer d.withStyle()()
	r := d.newBondRequest(ctx, bi)

	switch {
	case d.bondColours != nil:
		cols := d.bondColours[bi]
		r.col1, r.col2 = cols[0], cols[1]
	case !r.highlight:
		r.col1 = d.atomColour(ctx, r.begin, false)
		r.col2 = d.atomColour(ctx, r.end, false)
	default:
		r.col1 = d.opts.HighlightColour
		if c, ok := d.hl.BondColours[bi]; ok {
			r.col1 = c
		}
		r.col2 = r.col1
		w := d.highlightBondWidth(bi)
		if !d.opts.ContinuousHighlight {
			w /= 4
		}
		d.setLineWidth(w)
	}

	if ctx.mol.Bonds[bi].IsComplexQuery() {
		d.drawQueryBond(ctx, r)
		return
	}
	d.drawNormalBond(ctx, r)
}

// adjustBondEndForLabel moves the end of a bond at atom back from its label
// so the line stops at the glyph boxes, then by the extra label padding.
func (d *Drawer) adjustBondEndForLabel(ctx *renderContext, atom int, nbr, end geom.Point) geom.Point {
	if ctx.labels[atom].symbol == "" {
		return end
	}
	block := d.labelBlock(ctx, atom)
	pad := 0.1 * d.text.FontSize() / d.tr.Scale
	anchor := ctx.coords[atom]

	best, found := end, false
	bestD := 0.0
	for _, sr := range block.Rects {
		p := geom.ClipToRect(nbr, end, sr.Bounds(anchor, pad))
		if p == end {
			continue
		}
		if dd := p.Sub(nbr).LengthSq(); !found || dd < bestD {
			best, bestD, found = p, dd, true
		}
	}
	if d.opts.AdditionalAtomLabelPadding > 0 {
		best = best.Add(best.DirectionTo(nbr).Mul(d.opts.AdditionalAtomLabelPadding))
	}
	return best
}

// tagBond tags what follows as bond bi, or as its half nearer atom when
// bonds are split.
func (d *Drawer) tagBond(r bondRequest, atoms ...int) {
	if len(atoms) == 0 {
		atoms = []int{r.begin, r.end}
	}
	d.c.SetTag(canvas.Tag{Kind: canvas.TagBond, Index: r.bond, Atoms: atoms})
}

// bondLine draws one line of a bond, split in two tagged halves when
// SplitBonds is on.
func (d *Drawer) bondLine(r bondRequest, p1, p2 geom.Point, col1, col2 canvas.Colour) {
	if !d.opts.SplitBonds {
		d.tagBond(r)
		d.drawLine(p1, p2, col1, col2)
		return
	}
	mid := geom.Mid(p1, p2)
	d.tagBond(r, r.begin)
	d.drawLine(p1, mid, col1, col1)
	d.tagBond(r, r.end)
	d.drawLine(mid, p2, col2, col2)
}

// useHighlightWidth switches to the highlight width scaling for a
// highlighted bond.
func (d *Drawer) useHighlightWidth(r bondRequest) {
	if r.highlight {
		d.setScaleBondWidth(d.opts.ScaleHighlightBondWidth)
	}
}

func (d *Drawer) drawNormalBond(ctx *renderContext, r bondRequest) {
	m := ctx.mol
	switch r.typ {
	case mol.BondDouble, mol.BondAromatic:
		l1, l2 := doubleBondLines(m, r.bond, r.c1, r.c2, ctx.coords, r.sep)
		d.useHighlightWidth(r)
		d.bondLine(r, l1.a, l1.b, r.col1, r.col2)
		if r.typ == mol.BondAromatic {
			d.c.SetDash(canvas.DashDashes)
		}
		d.bondLine(r, l2.a, l2.b, r.col1, r.col2)
		d.c.SetDash(canvas.DashNone)

	case mol.BondDative, mol.BondDativeL, mol.BondDativeR:
		d.drawDativeBond(r)

	case mol.BondZero:
		d.c.SetDash(canvas.DashShort)
		d.useHighlightWidth(r)
		d.bondLine(r, r.c1, r.c2, r.col1, r.col2)
		d.c.SetDash(canvas.DashNone)

	case mol.BondHydrogen:
		d.c.SetDash(canvas.DashDots)
		d.useHighlightWidth(r)
		d.bondLine(r, r.c1, r.c2, hydrogenBondGrey, hydrogenBondGrey)
		d.c.SetDash(canvas.DashNone)

	case mol.BondSingle:
		switch r.dir {
		case mol.DirBeginWedge, mol.DirBeginDash:
			d.drawWedgedBond(ctx, r)
			return
		case mol.DirUnknown:
			d.tagBond(r)
			d.drawWavyLine(r.c1, r.c2, r.col1, r.col2, wavySegments, wavyVertOffset)
			return
		}
		d.useHighlightWidth(r)
		d.bondLine(r, r.c1, r.c2, r.col1, r.col2)

	case mol.BondTriple:
		d.useHighlightWidth(r)
		d.bondLine(r, r.c1, r.c2, r.col1, r.col2)
		l1, l2 := tripleBondLines(m, r.bond, r.c1, r.c2, r.sep)
		d.bondLine(r, l1.a, l1.b, r.col1, r.col2)
		d.bondLine(r, l2.a, l2.b, r.col1, r.col2)

	case mol.BondUnspecified, mol.BondOther:
		d.useHighlightWidth(r)
		d.bondLine(r, r.c1, r.c2, r.col1, r.col2)
	}
}

// drawWedgedBond draws a solid or hashed wedge that is narrow at the
// stereocentre. The wedge is turned round when only the end atom carries a
// chiral tag.
func (d *Drawer) drawWedgedBond(ctx *renderContext, r bondRequest) {
	atoms := ctx.mol.Atoms
	c1, c2 := r.c1, r.c2
	col1, col2 := r.col1, r.col2
	near, far := r.begin, r.end
	if !atoms[r.begin].Chiral.IsChiral() && atoms[r.end].Chiral.IsChiral() {
		c1, c2 = c2, c1
		col1, col2 = col2, col1
		near, far = far, near
	}
	if d.opts.SingleColourWedgeBonds {
		col1, col2 = d.opts.SymbolColour, d.opts.SymbolColour
	}

	disp := geom.Perpendicular(c1, c2).Mul(0.15)
	if d.tr.Scale > 40 {
		disp = disp.Mul(0.6)
	}
	end1, end2 := c2.Add(disp), c2.Sub(disp)

	if !d.opts.SplitBonds {
		d.tagBond(r)
	} else {
		d.tagBond(r, near)
	}
	d.c.SetColour(col1)

	if r.dir == mol.DirBeginDash {
		d.c.SetFill(false)
		factor := d.tr.Scale * c1.Sub(c2).LengthSq()
		var n int
		switch {
		case factor < 20:
			n = 3
		case factor < 30:
			n = 4
		case factor < 45:
			n = 5
		default:
			n = 6
		}
		d.setLineWidth(1)
		e1, e2 := end1.Sub(c1), end2.Sub(c1)
		for i := 1; i <= n; i++ {
			if i == n/2+1 {
				d.c.SetColour(col2)
				if d.opts.SplitBonds {
					d.tagBond(r, far)
				}
			}
			f := float64(i) / float64(n)
			d.rawLine(c1.Add(e1.Mul(f)), c1.Add(e2.Mul(f)), true, true)
		}
		return
	}

	d.c.SetFill(true)
	if col1.Equal(col2) && !d.opts.SplitBonds {
		d.drawTriangle(c1, end1, end2)
		return
	}
	mid1 := c1.Add(end1.Sub(c1).Mul(0.5))
	mid2 := c1.Add(end2.Sub(c1).Mul(0.5))
	d.drawTriangle(c1, mid1, mid2)
	if d.opts.SplitBonds {
		d.tagBond(r, far)
	}
	d.c.SetColour(col2)
	d.drawTriangle(mid1, end2, end1)
	d.drawTriangle(mid1, mid2, end2)
}

// drawDativeBond draws the first half as a line and the second as an
// arrow pointing at the acceptor.
func (d *Drawer) drawDativeBond(r bondRequest) {
	if d.opts.SplitBonds {
		d.tagBond(r, r.begin)
	} else {
		d.tagBond(r)
	}
	mid := geom.Mid(r.c1, r.c2)
	d.drawLine(r.c1, mid, r.col1, r.col1)

	if d.opts.SplitBonds {
		d.tagBond(r, r.end)
	}
	// The head overshoots its tip, so stop short of the atom.
	const frac = 0.2
	end := r.c2.Add(mid.Sub(r.c2).Mul(frac))
	d.drawArrow(mid, end, r.col2, true, frac, math.Pi/6)
}

// atomColour returns the colour for atom i from the palette. With
// withHighlight set, a highlighted atom takes its highlight colour unless
// highlights are drawn as circles or continuous bands.
func (d *Drawer) atomColour(ctx *renderContext, i int, withHighlight bool) canvas.Colour {
	col := d.opts.atomColour(mol.ElementSymbol(ctx.atomicNums[i]))
	if !withHighlight || d.hl == nil || d.opts.CircleAtoms || d.opts.ContinuousHighlight {
		return col
	}
	if slices.Contains(d.hl.Atoms, i) {
		col = d.opts.HighlightColour
		if c, ok := d.hl.AtomColours[i]; ok {
			col = c
		}
	}
	return col
}
