package moldraw

import (
	"slices"

	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/mol"
)

// multipleBondTruncation is how much of the bond length the extra lines of
// a multiple bond lose at each non-terminal end.
const multipleBondTruncation = 0.15

// segment is a line in molecule space.
type segment struct{ a, b geom.Point }

// doubleBondLines returns the two lines of double bond bi whose begin and
// end atoms are drawn at c1 and c2. sep is the distance between the lines.
func doubleBondLines(m *mol.Molecule, bi int, c1, c2 geom.Point, coords []geom.Point, sep float64) (segment, segment) {
	b := &m.Bonds[bi]
	switch {
	case m.Degree(b.Begin) == 1 || m.Degree(b.End) == 1 || m.IsLinearAtom(b.Begin) || m.IsLinearAtom(b.End):
		perp := geom.Perpendicular(c1, c2).Mul(sep / 2)
		return segment{c1.Add(perp), c2.Add(perp)}, segment{c1.Sub(perp), c2.Sub(perp)}

	case b.Dir == mol.DirEitherDouble || b.Stereo == mol.StereoAny:
		perp := geom.Perpendicular(c1, c2).Mul(sep / 2)
		return segment{c1.Add(perp), c2.Sub(perp)}, segment{c1.Sub(perp), c2.Add(perp)}
	}

	var perp geom.Point
	ok := false
	if m.IsRingBond(bi) {
		perp, ok = bondInsideRing(m, bi, c1, c2, coords)
	} else {
		perp, ok = bondInsideDoubleBond(m, bi, coords)
	}
	if !ok {
		perp = geom.Perpendicular(c1, c2)
	}
	bv := c1.Sub(c2)
	off := perp.Mul(sep)
	inner := segment{
		c1.Sub(bv.Mul(multipleBondTruncation)).Add(off),
		c2.Add(bv.Mul(multipleBondTruncation)).Add(off),
	}
	return segment{c1, c2}, inner
}

// tripleBondLines returns the two outer lines of triple bond bi, each sep
// away from the bond axis and shortened at ends that are not terminal.
func tripleBondLines(m *mol.Molecule, bi int, c1, c2 geom.Point, sep float64) (segment, segment) {
	b := &m.Bonds[bi]
	trunc := func(atom int) float64 {
		if m.Degree(atom) == 1 {
			return 0
		}
		return multipleBondTruncation
	}
	t1, t2 := trunc(b.Begin), trunc(b.End)
	perp := geom.Perpendicular(c1, c2).Mul(sep)
	bv := c1.Sub(c2)
	s := c1.Sub(bv.Mul(t1))
	f := c2.Add(bv.Mul(t2))
	return segment{s.Add(perp), f.Add(perp)}, segment{s.Sub(perp), f.Sub(perp)}
}

// bondInsideRing returns the perpendicular to ring bond bi that points into
// its ring. For a bond shared by several rings, a ring whose bonds all
// match the bond's aromaticity wins, so the second line of a Kekulé bond
// sits inside the aromatic ring. ok is false when no ring neighbour is
// found at the begin atom.
func bondInsideRing(m *mol.Molecule, bi int, c1, c2 geom.Point, coords []geom.Point) (perp geom.Point, ok bool) {
	rings := m.BondRings()
	in := m.RingsWithBond(bi)
	if len(in) == 0 {
		return geom.Point{}, false
	}
	b := &m.Bonds[bi]

	inside := func(ring []int) (geom.Point, bool) {
		for _, b2 := range m.AtomBonds(b.Begin) {
			if b2 == bi || !slices.Contains(ring, b2) {
				continue
			}
			a3 := m.Bonds[b2].Other(b.Begin)
			return geom.InnerPerpendicular(c1, c2, coords[a3]), true
		}
		return geom.Point{}, false
	}

	if len(in) > 1 {
		for _, ri := range in {
			ring := rings[ri]
			if !slices.ContainsFunc(ring, func(rb int) bool { return m.Bonds[rb].Aromatic != b.Aromatic }) {
				if p, ok := inside(ring); ok {
					return p, true
				}
			}
		}
	}
	return inside(rings[in[0]])
}

// bondInsideDoubleBond returns the perpendicular to chain bond bi that
// points into the angle made with another bond on its more connected atom.
func bondInsideDoubleBond(m *mol.Molecule, bi int, coords []geom.Point) (geom.Point, bool) {
	b := &m.Bonds[bi]
	bondAtom, endAtom := b.Begin, b.End
	if m.Degree(b.Begin) <= 1 {
		bondAtom, endAtom = b.End, b.Begin
	}
	for _, b2 := range m.AtomBonds(bondAtom) {
		if b2 == bi {
			continue
		}
		a3 := m.Bonds[b2].Other(bondAtom)
		return geom.InnerPerpendicular(coords[endAtom], coords[bondAtom], coords[a3]), true
	}
	return geom.Point{}, false
}
