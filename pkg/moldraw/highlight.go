package moldraw

import (
	"math"
	"slices"

	"github.com/FabioUrbina/rdkit/pkg/errors"
	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/mol"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
)

// Highlights picks atoms and bonds to draw in a highlight colour.
type Highlights struct {
	Atoms []int `json:"atoms,omitempty"`
	// Bonds defaults to every bond between two highlighted atoms when nil.
	Bonds []int `json:"bonds,omitempty"`

	AtomColours map[int]canvas.Colour `json:"atom_colours,omitempty"`
	BondColours map[int]canvas.Colour `json:"bond_colours,omitempty"`

	// Radii overrides HighlightRadius per atom.
	Radii map[int]float64 `json:"radii,omitempty"`
	// LineWidthMultipliers overrides HighlightBondWidthMultiplier per bond.
	LineWidthMultipliers map[int]int `json:"line_width_multipliers,omitempty"`
}

// MultiHighlights gives every highlighted atom and bond one or more
// colours. Atoms with several colours are drawn as pie slices, bonds as
// parallel stripes.
type MultiHighlights struct {
	Atoms                map[int][]canvas.Colour `json:"atoms,omitempty"`
	Bonds                map[int][]canvas.Colour `json:"bonds,omitempty"`
	Radii                map[int]float64         `json:"radii,omitempty"`
	LineWidthMultipliers map[int]int             `json:"line_width_multipliers,omitempty"`
}

// validate checks every index against m.
func (h *Highlights) validate(m *mol.Molecule) error {
	if h == nil {
		return nil
	}
	na, nb := len(m.Atoms), len(m.Bonds)
	for _, a := range h.Atoms {
		if a < 0 || a >= na {
			return errors.Precondition("highlight atom %d out of range", a)
		}
	}
	for _, b := range h.Bonds {
		if b < 0 || b >= nb {
			return errors.Precondition("highlight bond %d out of range", b)
		}
	}
	return nil
}

// resolved returns a copy of h whose Bonds are filled in from the atoms
// when they were left nil.
func (h *Highlights) resolved(m *mol.Molecule) *Highlights {
	if h == nil {
		return nil
	}
	out := *h
	if out.Bonds == nil {
		out.Bonds = bondsBetween(m, h.Atoms)
	}
	return &out
}

// bondsBetween returns the bonds whose atoms are both in atoms.
func bondsBetween(m *mol.Molecule, atoms []int) []int {
	var out []int
	for bi, b := range m.Bonds {
		if slices.Contains(atoms, b.Begin) && slices.Contains(atoms, b.End) {
			out = append(out, bi)
		}
	}
	return out
}

// flatten converts multi-colour highlights to the single-colour form used
// for layout.
func (h *MultiHighlights) flatten() *Highlights {
	out := &Highlights{
		Radii:                h.Radii,
		LineWidthMultipliers: h.LineWidthMultipliers,
		Bonds:                []int{},
	}
	for a := range h.Atoms {
		out.Atoms = append(out.Atoms, a)
	}
	slices.Sort(out.Atoms)
	return out
}

func (h *MultiHighlights) validate(m *mol.Molecule) error {
	for b := range h.Bonds {
		if b < 0 || b >= len(m.Bonds) {
			return errors.Precondition("highlight bond %d out of range", b)
		}
	}
	return h.flatten().validate(m)
}

// highlightBondWidth is the line width of a highlighted bond: the bond
// line width times the multiplier. Outline highlights use half the
// multiplier.
func (d *Drawer) highlightBondWidth(bi int) float64 {
	bwm := d.opts.HighlightBondWidthMultiplier
	if !d.opts.FillHighlights {
		bwm = max(1, bwm/2)
	}
	if d.hl != nil {
		if m, ok := d.hl.LineWidthMultipliers[bi]; ok {
			bwm = m
		}
	}
	return d.lineWidth * float64(bwm)
}

func (d *Drawer) highlightRadius(atom int) float64 {
	r := d.opts.HighlightRadius
	if d.hl != nil {
		if v, ok := d.hl.Radii[atom]; ok && v > 0 {
			r = v
		}
	}
	return r
}

// calcLabelEllipse returns the highlight ellipse for atom. It covers the
// atom's label with some room to spare, and is never smaller than the
// highlight radius.
func (d *Drawer) calcLabelEllipse(ctx *renderContext, atom int) (centre geom.Point, rx, ry float64) {
	centre = ctx.coords[atom]
	rx = d.highlightRadius(atom)
	ry = rx
	if d.opts.AtomHighlightsAreCircles || ctx.labels[atom].symbol == "" {
		return centre, rx, ry
	}
	ext := d.labelBlock(ctx, atom).Extremes()
	rx = max(rx, math.Sqrt2/2*ext.Width())
	ry = max(ry, math.Sqrt2/2*ext.Height())
	return centre.Add(ext.Centre()), rx, ry
}

// drawHighlightedAtom draws the highlight ellipse of atom, split into
// equal arcs starting at the top when there are several colours.
func (d *Drawer) drawHighlightedAtom(ctx *renderContext, atom int, cols []canvas.Colour) {
	centre, rx, ry := d.calcLabelEllipse(ctx, atom)
	defer d.withStyle()()
	d.c.SetTag(canvas.Tag{Kind: canvas.TagHighlight, Index: atom, Atoms: []int{atom}})
	d.c.SetDash(canvas.DashNone)
	if d.opts.FillHighlights {
		d.c.SetFill(true)
	} else {
		d.setLineWidth(d.highlightBondWidth(-1))
		d.c.SetFill(false)
	}

	if len(cols) == 1 {
		d.c.SetColour(cols[0])
		if d.opts.FillHighlights {
			d.setLineWidth(1)
		}
		off := geom.Pt(rx, ry)
		d.drawEllipse(centre.Sub(off), centre.Add(off))
		return
	}
	size := 360 / float64(len(cols))
	start := -90.0
	for _, col := range cols {
		d.c.SetColour(col)
		d.drawArc(centre, rx, ry, start, start+size)
		start += size
	}
}

// drawContinuousHighlights draws the highlighted bonds as thick lines and
// the highlighted atoms as ellipses, underneath the molecule.
func (d *Drawer) drawContinuousHighlights(ctx *renderContext) {
	hl := d.hl
	if hl == nil {
		return
	}
	defer d.withStyle()()
	tgt := max(2, d.highlightBondWidth(-1))

	m := ctx.mol
	for _, bi := range hl.Bonds {
		b := &m.Bonds[bi]
		col := d.opts.HighlightColour
		if c, ok := hl.BondColours[bi]; ok {
			col = c
		}
		d.c.SetTag(canvas.Tag{Kind: canvas.TagHighlight, Index: bi, Atoms: []int{b.Begin, b.End}})
		d.setLineWidth(tgt)
		d.setScaleBondWidth(d.opts.ScaleHighlightBondWidth)
		d.drawLine(ctx.coords[b.Begin], ctx.coords[b.End], col, col)
	}

	for _, a := range hl.Atoms {
		col := d.opts.HighlightColour
		if c, ok := hl.AtomColours[a]; ok {
			col = c
		}
		d.drawHighlightedAtom(ctx, a, []canvas.Colour{col})
	}
}

// drawCircleHighlights draws a plain circle of the highlight radius round
// every highlighted atom.
func (d *Drawer) drawCircleHighlights(ctx *renderContext) {
	defer d.withStyle()()
	d.c.SetFill(d.opts.FillHighlights)
	for _, a := range d.hl.Atoms {
		col := d.opts.HighlightColour
		if c, ok := d.hl.AtomColours[a]; ok {
			col = c
		}
		d.c.SetColour(col)
		d.c.SetTag(canvas.Tag{Kind: canvas.TagHighlight, Index: a, Atoms: []int{a}})
		r := d.highlightRadius(a)
		off := geom.Pt(r, r)
		d.drawEllipse(ctx.coords[a].Sub(off), ctx.coords[a].Add(off))
	}
}

// drawHighlightedBonds draws multi-colour bond highlights as a band 1.4
// highlight radii wide, or as outlines trimmed where they meet the atom
// ellipses when highlights are not filled.
func (d *Drawer) drawHighlightedBonds(ctx *renderContext, bonds map[int][]canvas.Colour) {
	m := ctx.mol
	rad := 0.7 * d.opts.HighlightRadius
	for _, bi := range sortedKeys(bonds) {
		cols := bonds[bi]
		func() {
			defer d.withStyle()()
			if !d.opts.FillHighlights {
				d.setLineWidth(d.highlightBondWidth(bi))
			}
			b := &m.Bonds[bi]
			d.c.SetTag(canvas.Tag{Kind: canvas.TagHighlight, Index: bi, Atoms: []int{b.Begin, b.End}})
			c1, c2 := ctx.coords[b.Begin], ctx.coords[b.End]
			// Coincident atoms leave no band to draw; their ellipses cover it.
			if c1.Sub(c2).Length() < 1.0e-6 {
				return
			}
			perp := geom.Perpendicular(c1, c2)

			trimmed := func(p1, p2 geom.Point) {
				ce, rx, ry := d.calcLabelEllipse(ctx, b.Begin)
				p1 = geom.ClipLineToEllipse(p2, p1, ce, rx, ry)
				ce, rx, ry = d.calcLabelEllipse(ctx, b.End)
				p2 = geom.ClipLineToEllipse(p1, p2, ce, rx, ry)
				d.setScaleBondWidth(d.opts.ScaleHighlightBondWidth)
				d.rawLine(p1, p2, true, true)
			}

			if len(cols) < 2 {
				col := d.opts.HighlightColour
				if len(cols) == 1 {
					col = cols[0]
				}
				d.c.SetColour(col)
				off := perp.Mul(rad)
				if d.opts.FillHighlights {
					d.drawPolygon([]geom.Point{c1.Add(off), c2.Add(off), c2.Sub(off), c1.Sub(off)})
				} else {
					trimmed(c1.Add(off), c2.Add(off))
					trimmed(c1.Sub(off), c2.Sub(off))
				}
				return
			}

			colRad := 2 * rad / float64(len(cols))
			if d.opts.FillHighlights {
				p1, p2 := c1.Sub(perp.Mul(rad)), c2.Sub(perp.Mul(rad))
				step := perp.Mul(colRad)
				for _, col := range cols {
					d.c.SetColour(col)
					d.drawPolygon([]geom.Point{p1, p1.Add(step), p2.Add(step), p2})
					p1, p2 = p1.Add(step), p2.Add(step)
				}
				return
			}
			// Even stripes from the bottom, odd ones from the top.
			step := 0
			for i, col := range cols {
				d.c.SetColour(col)
				off := perp.Mul(rad - float64(step)*colRad)
				if i%2 == 0 {
					trimmed(c1.Sub(off), c2.Sub(off))
				} else {
					trimmed(c1.Add(off), c2.Add(off))
					step++
				}
			}
		}()
	}
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
