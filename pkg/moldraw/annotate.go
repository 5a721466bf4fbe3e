package moldraw

import (
	"math"
	"slices"

	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/mol"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
	"github.com/FabioUrbina/rdkit/pkg/render/text"
)

// Clash scores for a candidate note position. Lower is better; a bond
// running through a note is the worst outcome.
const (
	clashNone = iota
	clashNote
	clashLabel
	clashBond
)

const (
	noteRadiusStep = 0.25
	noteAngleStep  = math.Pi / 6
)

var bondNoteFractions = []float64{0.5, 0.33, 0.66, 0.25, 0.75}

// labelBlock returns the glyph boxes of atom's label in molecule units at
// the current scale, relative to the atom.
func (d *Drawer) labelBlock(ctx *renderContext, atom int) text.Block {
	l := ctx.labels[atom]
	if l.symbol == "" {
		return text.Block{}
	}
	return d.text.Label(l.symbol, l.orient).Scaled(1 / d.tr.Scale)
}

// blockAt lays s out with a temporary font scale.
func (d *Drawer) blockAt(fontScale float64, s string, align text.Align) text.Block {
	fs := d.text.FontScale()
	d.text.SetFontScale(fontScale, true)
	defer d.text.SetFontScale(fs, true)
	return d.text.Aligned(s, align).Scaled(1 / d.tr.Scale)
}

// noteBlock lays out an atom or bond note at the annotation size.
func (d *Drawer) noteBlock(s string, align text.Align) text.Block {
	return d.blockAt(d.opts.AnnotationFontScale, s, align)
}

// bondSeparation is the gap between the lines of a multiple bond drawn
// between c1 and c2.
func (d *Drawer) bondSeparation(c1, c2 geom.Point) float64 {
	sep := d.opts.MultipleBondOffset
	// Documents drawn with unit bond lengths would get crowded lines.
	if c1.Sub(c2).LengthSq() < 1.4 {
		sep *= 0.6
	}
	return sep
}

// noteStartAngle is the direction, in radians, in which the search for a
// place for atom's note begins: away from its bonds where possible.
func noteStartAngle(ctx *renderContext, atom int) float64 {
	m := ctx.mol
	nbrs := m.Neighbours(atom)
	if len(nbrs) == 0 {
		return math.Pi / 2
	}
	at := ctx.coords[atom]
	vecs := make([]geom.Point, len(nbrs))
	for i, nb := range nbrs {
		vecs[i] = at.DirectionTo(ctx.coords[nb])
	}

	var v geom.Point
	switch len(vecs) {
	case 1:
		if ctx.labels[atom].symbol == "" {
			// A note at the end of a bond to carbon looks like a label.
			v = geom.Pt(vecs[0].Y, -vecs[0].X)
		} else {
			v = vecs[0].Neg()
		}
	case 2:
		v = vecs[0].Add(vecs[1])
		switch {
		case v.LengthSq() <= 1e-6:
			v = geom.Pt(-vecs[0].Y, vecs[0].X)
		case m.Atoms[atom].NumHs == 0 || m.Atoms[atom].Element == 6:
			v = v.Neg()
		}
	default:
		discrim := 4 * math.Pi / float64(len(vecs))
		found := false
	pairs:
		for i := 0; i < len(vecs)-1; i++ {
			for j := i + 1; j < len(vecs); j++ {
				if math.Acos(max(-1, min(1, vecs[i].Dot(vecs[j])))) < discrim {
					v = vecs[i].Add(vecs[j]).Normalized()
					found = true
					break pairs
				}
			}
		}
		if !found {
			v = vecs[0].Add(vecs[1]).Neg()
		}
	}
	return math.Atan2(v.Y, v.X)
}

// noteClash scores rects anchored at pos against the bonds of atoms, every
// atom label (those of atoms first) and the notes placed so far.
func (d *Drawer) noteClash(ctx *renderContext, rects []text.StringRect, pos geom.Point, atoms ...int) int {
	m := ctx.mol
	pad := d.lineWidth * 0.02
	for _, atom := range atoms {
		for _, bi := range m.AtomBonds(atom) {
			b := &m.Bonds[bi]
			c1, c2 := ctx.coords[b.Begin], ctx.coords[b.End]
			if text.LineIntersectsRects(rects, pos, c1, c2, pad) {
				return clashBond
			}
			var l1, l2 segment
			switch b.Type {
			case mol.BondDouble, mol.BondAromatic:
				l1, l2 = doubleBondLines(m, bi, c1, c2, ctx.coords, d.bondSeparation(c1, c2))
			case mol.BondTriple:
				l1, l2 = tripleBondLines(m, bi, c1, c2, d.bondSeparation(c1, c2))
			default:
				continue
			}
			if text.LineIntersectsRects(rects, pos, l1.a, l1.b, pad) ||
				text.LineIntersectsRects(rects, pos, l2.a, l2.b, pad) {
				return clashBond
			}
		}
	}

	hits := func(i int) bool {
		lb := d.labelBlock(ctx, i)
		return !lb.Empty() && text.RectsIntersect(rects, pos, lb.Rects, ctx.coords[i], 0)
	}
	for _, atom := range atoms {
		if hits(atom) {
			return clashLabel
		}
	}
	for i := range ctx.labels {
		if !slices.Contains(atoms, i) && hits(i) {
			return clashLabel
		}
	}

	for i := range ctx.annotations {
		a := &ctx.annotations[i]
		if text.RectsIntersect(rects, pos, a.rects(), a.pos, 0) {
			return clashNote
		}
	}
	return clashNone
}

// leastBad tracks the best rejected candidate of a placement search.
type leastBad struct {
	pos   geom.Point
	score int
	seen  bool
}

func (l *leastBad) offer(pos geom.Point, score int) {
	if !l.seen || score < l.score {
		l.pos, l.score, l.seen = pos, score, true
	}
}

// placeAtomNote finds a place for note beside atom by walking round the
// atom at three radii, starting from noteStartAngle. The innermost radius
// is skipped when the atom has a label.
func (d *Drawer) placeAtomNote(ctx *renderContext, atom int, note string, align text.Align) annotation {
	a := annotation{
		text:      note,
		block:     d.noteBlock(note, align),
		align:     align,
		scaleText: true,
		tag:       canvas.Tag{Kind: canvas.TagAnnotation, Index: atom, Atoms: []int{atom}},
	}
	at := ctx.coords[atom]
	start := noteStartAngle(ctx, atom)

	var worst leastBad
	for j := 1; j <= 3; j++ {
		if j == 1 && ctx.labels[atom].symbol != "" {
			continue
		}
		rad := float64(j) * noteRadiusStep
		for i := 0; i < 12; i++ {
			ang := start + float64(i)*noteAngleStep
			pos := at.Add(geom.Pt(math.Cos(ang), math.Sin(ang)).Mul(rad))
			score := d.noteClash(ctx, a.rects(), pos, atom)
			if score == clashNone {
				a.pos = pos
				return a
			}
			worst.offer(pos, score)
		}
	}
	a.pos = worst.pos
	d.log.Warn("placement failed", "note", note, "atom", atom, "clash", worst.score)
	return a
}

// placeBondNote finds a place for note beside bond bi, trying points along
// the bond at growing distances on either side. Multiple bonds skip the
// nearest offset.
func (d *Drawer) placeBondNote(ctx *renderContext, bi int, note string) annotation {
	b := &ctx.mol.Bonds[bi]
	a := annotation{
		text:      note,
		block:     d.noteBlock(note, text.AlignMiddle),
		align:     text.AlignMiddle,
		scaleText: true,
		tag:       canvas.Tag{Kind: canvas.TagAnnotation, Index: bi, Atoms: []int{b.Begin, b.End}},
	}
	c1, c2 := ctx.coords[b.Begin], ctx.coords[b.End]
	perp := geom.Perpendicular(c1, c2)
	bv := c2.Sub(c1)
	step := d.opts.MultipleBondOffset

	var worst leastBad
	for _, f := range bondNoteFractions {
		mid := c1.Add(bv.Mul(f))
		for j := 1; j <= 5; j++ {
			if j == 1 && b.Type.IsMultiple() {
				continue
			}
			off := perp.Mul(float64(j) * step)
			for _, pos := range []geom.Point{mid.Add(off), mid.Sub(off)} {
				score := d.noteClash(ctx, a.rects(), pos, b.Begin, b.End)
				if score == clashNone {
					a.pos = pos
					return a
				}
				worst.offer(pos, score)
			}
		}
	}
	a.pos = worst.pos
	d.log.Warn("placement failed", "note", note, "bond", bi, "clash", worst.score)
	return a
}

// placeMolNote puts the molecule note towards the top right of the atoms.
func (d *Drawer) placeMolNote(ctx *renderContext, note string) annotation {
	centroid := geom.Centroid(ctx.coords)
	maxPt := geom.Bounds(ctx.coords...).Max
	return annotation{
		text:  note,
		pos:   centroid.Add(maxPt.Sub(centroid).Mul(0.9)),
		block: d.blockAt(1, note, text.AlignStart),
		align: text.AlignStart,
		tag:   canvas.Tag{Kind: canvas.TagAnnotation, Index: -1},
	}
}

// drawAnnotation draws a placed note. Scaled notes are drawn at the
// annotation font scale with no lower font size limit, so they stay
// smaller than the labels they were placed against.
func (d *Drawer) drawAnnotation(a *annotation) {
	defer d.withStyle()()
	col := d.opts.AnnotationColour
	if a.colour != nil {
		col = *a.colour
	}
	d.c.SetColour(col)
	d.c.SetTag(a.tag)
	if a.scaleText {
		fs := d.text.FontScale()
		d.text.SetFontScale(d.opts.AnnotationFontScale*fs, true)
		defer d.text.SetFontScale(fs, true)
	}
	d.drawText(a.text, a.pos, a.align)
}
