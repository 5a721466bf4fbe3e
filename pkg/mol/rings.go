package mol

import (
	"slices"
	"strconv"
	"strings"
)

type ringInfo struct {
	bondRings [][]int
}

// BondRings returns the rings of m, each as a list of bond indices. Every
// ring bond lies on at least one returned ring; for each bond the smallest
// ring through it is found and duplicates are dropped.
//
// Rings are perceived once and cached, so bonds must not be added or
// removed after the first call.
func (m *Molecule) BondRings() [][]int {
	if m.rings == nil {
		m.rings = perceiveRings(m)
	}
	return m.rings.bondRings
}

// RingsWithBond returns the indices (into BondRings) of the rings that
// contain bond b.
func (m *Molecule) RingsWithBond(b int) []int {
	var out []int
	for ri, ring := range m.BondRings() {
		if slices.Contains(ring, b) {
			out = append(out, ri)
		}
	}
	return out
}

// IsRingBond reports whether bond b lies on any ring.
func (m *Molecule) IsRingBond(b int) bool { return len(m.RingsWithBond(b)) > 0 }

func perceiveRings(m *Molecule) *ringInfo {
	info := &ringInfo{}
	seen := make(map[string]bool)
	for bi := range m.Bonds {
		ring := smallestRingThrough(m, bi)
		if ring == nil {
			continue
		}
		key := ringKey(ring)
		if seen[key] {
			continue
		}
		seen[key] = true
		info.bondRings = append(info.bondRings, ring)
	}
	return info
}

// smallestRingThrough does a breadth-first search from one end of bond bi
// to the other without using bi itself.
func smallestRingThrough(m *Molecule, bi int) []int {
	from, to := m.Bonds[bi].Begin, m.Bonds[bi].End
	via := make([]int, len(m.Atoms)) // bond used to reach each atom
	for i := range via {
		via[i] = -2
	}
	via[from] = -1
	queue := []int{from}
	for len(queue) > 0 && via[to] == -2 {
		a := queue[0]
		queue = queue[1:]
		for _, nb := range m.AtomBonds(a) {
			if nb == bi {
				continue
			}
			o := m.Bonds[nb].Other(a)
			if via[o] != -2 {
				continue
			}
			via[o] = nb
			queue = append(queue, o)
		}
	}
	if via[to] == -2 {
		return nil
	}
	ring := []int{bi}
	for a := to; a != from; {
		b := via[a]
		ring = append(ring, b)
		a = m.Bonds[b].Other(a)
	}
	return ring
}

func ringKey(ring []int) string {
	s := slices.Clone(ring)
	slices.Sort(s)
	parts := make([]string, len(s))
	for i, b := range s {
		parts[i] = strconv.Itoa(b)
	}
	return strings.Join(parts, ",")
}
