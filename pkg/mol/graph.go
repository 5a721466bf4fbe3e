package mol

import (
	"fmt"
	"math"
	"slices"

	"github.com/FabioUrbina/rdkit/pkg/geom"
)

// NumAtoms returns the number of atoms.
func (m *Molecule) NumAtoms() int { return len(m.Atoms) }

// AtomBonds returns the indices of the bonds incident on atom i, in bond
// order.
func (m *Molecule) AtomBonds(i int) []int {
	var out []int
	for bi := range m.Bonds {
		if m.Bonds[bi].Begin == i || m.Bonds[bi].End == i {
			out = append(out, bi)
		}
	}
	return out
}

// Neighbours returns the atoms bonded to atom i, in bond order.
func (m *Molecule) Neighbours(i int) []int {
	var out []int
	for bi := range m.Bonds {
		b := &m.Bonds[bi]
		switch i {
		case b.Begin:
			out = append(out, b.End)
		case b.End:
			out = append(out, b.Begin)
		}
	}
	return out
}

// Degree returns the number of explicit bonds on atom i.
func (m *Molecule) Degree(i int) int {
	n := 0
	for bi := range m.Bonds {
		if m.Bonds[bi].Begin == i || m.Bonds[bi].End == i {
			n++
		}
	}
	return n
}

// BondBetween returns the index of the bond joining atoms a and b.
func (m *Molecule) BondBetween(a, b int) (int, bool) {
	for bi := range m.Bonds {
		bd := &m.Bonds[bi]
		if (bd.Begin == a && bd.End == b) || (bd.Begin == b && bd.End == a) {
			return bi, true
		}
	}
	return -1, false
}

// Clone returns a deep copy of m.
func (m *Molecule) Clone() *Molecule {
	c := &Molecule{
		Name:   m.Name,
		Note:   m.Note,
		Atoms:  make([]Atom, len(m.Atoms)),
		Bonds:  make([]Bond, len(m.Bonds)),
		Coords: slices.Clone(m.Coords),
	}
	for i, a := range m.Atoms {
		a.List = slices.Clone(a.List)
		c.Atoms[i] = a
	}
	for i, b := range m.Bonds {
		b.EndPoints = slices.Clone(b.EndPoints)
		c.Bonds[i] = b
	}
	for _, sg := range m.SGroups {
		sg.Atoms = slices.Clone(sg.Atoms)
		sg.Bonds = slices.Clone(sg.Bonds)
		sg.DataFields = slices.Clone(sg.DataFields)
		brk := make([][]geom.Point, len(sg.Brackets))
		for i, b := range sg.Brackets {
			brk[i] = slices.Clone(b)
		}
		sg.Brackets = brk
		c.SGroups = append(c.SGroups, sg)
	}
	for _, g := range m.StereoGroups {
		c.StereoGroups = append(c.StereoGroups, StereoGroup{Type: g.Type, Atoms: slices.Clone(g.Atoms)})
	}
	for _, ln := range m.LinkNodes {
		c.LinkNodes = append(c.LinkNodes, LinkNode{Min: ln.Min, Max: ln.Max, BondAtoms: slices.Clone(ln.BondAtoms)})
	}
	return c
}

// Validate checks that every index in m refers to an existing atom or bond
// and that coordinates, if present, cover every atom.
func (m *Molecule) Validate() error {
	n := len(m.Atoms)
	if len(m.Coords) != 0 && len(m.Coords) != n {
		return fmt.Errorf("%w: %d coordinates for %d atoms", ErrInvalid, len(m.Coords), n)
	}
	for bi, b := range m.Bonds {
		if b.Begin < 0 || b.Begin >= n || b.End < 0 || b.End >= n {
			return fmt.Errorf("%w: bond %d joins atoms %d and %d", ErrInvalid, bi, b.Begin, b.End)
		}
		if b.Begin == b.End {
			return fmt.Errorf("%w: bond %d is a loop on atom %d", ErrInvalid, bi, b.Begin)
		}
	}
	for si, sg := range m.SGroups {
		for _, a := range sg.Atoms {
			if a < 0 || a >= n {
				return fmt.Errorf("%w: substance group %d references atom %d", ErrInvalid, si, a)
			}
		}
		for _, b := range sg.Bonds {
			if b < 0 || b >= len(m.Bonds) {
				return fmt.Errorf("%w: substance group %d references bond %d", ErrInvalid, si, b)
			}
		}
		for _, brk := range sg.Brackets {
			if len(brk) < 2 {
				return fmt.Errorf("%w: substance group %d has a bracket with %d points", ErrInvalid, si, len(brk))
			}
		}
	}
	for gi, g := range m.StereoGroups {
		for _, a := range g.Atoms {
			if a < 0 || a >= n {
				return fmt.Errorf("%w: stereo group %d references atom %d", ErrInvalid, gi, a)
			}
		}
	}
	for li, ln := range m.LinkNodes {
		for _, ba := range ln.BondAtoms {
			if ba[0] < 0 || ba[0] >= n || ba[1] < 0 || ba[1] >= n {
				return fmt.Errorf("%w: link node %d references atoms %v", ErrInvalid, li, ba)
			}
		}
	}
	return nil
}

// MeanBondLength returns the average bond length in molecule space, or 0
// when there are no bonds or no coordinates.
func (m *Molecule) MeanBondLength() float64 {
	if !m.HasCoords() || len(m.Bonds) == 0 {
		return 0
	}
	var sum float64
	for _, b := range m.Bonds {
		sum += geom.Dist(m.Coords[b.Begin], m.Coords[b.End])
	}
	return sum / float64(len(m.Bonds))
}

// Centre translates the coordinates so that the centre of their bounding
// box is at the origin.
func (m *Molecule) Centre() {
	if len(m.Coords) == 0 {
		return
	}
	c := geom.Bounds(m.Coords...).Centre()
	for i := range m.Coords {
		m.Coords[i] = m.Coords[i].Sub(c)
	}
	for si := range m.SGroups {
		for bi := range m.SGroups[si].Brackets {
			for pi := range m.SGroups[si].Brackets[bi] {
				m.SGroups[si].Brackets[bi][pi] = m.SGroups[si].Brackets[bi][pi].Sub(c)
			}
		}
	}
}

// Rotate turns the coordinates, and any bracket points, clockwise by deg
// degrees about the origin.
func (m *Molecule) Rotate(deg float64) {
	if deg == 0 {
		return
	}
	theta := -deg * math.Pi / 180
	for i := range m.Coords {
		m.Coords[i] = m.Coords[i].Rotate(theta)
	}
	for si := range m.SGroups {
		for bi := range m.SGroups[si].Brackets {
			for pi := range m.SGroups[si].Brackets[bi] {
				m.SGroups[si].Brackets[bi][pi] = m.SGroups[si].Brackets[bi][pi].Rotate(theta)
			}
		}
	}
}

// Fragments returns, for every atom, the index of the connected component
// it belongs to. Components are numbered in order of their lowest atom.
func (m *Molecule) Fragments() []int {
	frag := make([]int, len(m.Atoms))
	for i := range frag {
		frag[i] = -1
	}
	next := 0
	for start := range m.Atoms {
		if frag[start] >= 0 {
			continue
		}
		stack := []int{start}
		frag[start] = next
		for len(stack) > 0 {
			a := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, nb := range m.Neighbours(a) {
				if frag[nb] < 0 {
					frag[nb] = next
					stack = append(stack, nb)
				}
			}
		}
		next++
	}
	return frag
}

// IsLinearAtom reports whether atom i has exactly two bonds of the same
// type lying on a straight line, as in an allene centre.
func (m *Molecule) IsLinearAtom(i int) bool {
	if !m.HasCoords() {
		return false
	}
	bonds := m.AtomBonds(i)
	if len(bonds) != 2 {
		return false
	}
	b1, b2 := &m.Bonds[bonds[0]], &m.Bonds[bonds[1]]
	if b1.Type != b2.Type {
		return false
	}
	at := m.Coords[i]
	v1 := m.Coords[b1.Other(i)].Sub(at).Normalized()
	v2 := m.Coords[b2.Other(i)].Sub(at).Normalized()
	return v1.Dot(v2) < -0.95
}
