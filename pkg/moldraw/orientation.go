package moldraw

import (
	"math"
	"slices"

	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/mol"
	"github.com/FabioUrbina/rdkit/pkg/render/text"
)

// Anything steeper than 70 degrees counts as vertical. The NH of an indole
// as usually laid out (about 72 degrees) is then N or S, while two amino
// groups hanging off the bottom of a ring stay E and W.
var vertSlope = math.Tan(70 * math.Pi / 180)

// hsListedFirst are the elements whose hydrogens go before the symbol on an
// isolated atom (H2O, HCl).
var hsListedFirst = []int{8, 9, 16, 17, 34, 35, 52, 53, 84, 85}

// atomOrientation picks the side an atom label grows towards: away from
// the atom's bonds.
func atomOrientation(m *mol.Molecule, coords []geom.Point, i int) text.Orient {
	nbrs := m.Neighbours(i)
	if len(nbrs) == 0 {
		if slices.Contains(hsListedFirst, m.Atoms[i].Element) {
			return text.OrientW
		}
		return text.OrientE
	}

	at := coords[i]
	var sum geom.Point
	for _, nb := range nbrs {
		sum = sum.Add(coords[nb].Sub(at))
	}

	islope := 1000.0
	if math.Abs(sum.X) > 1e-4 {
		islope = sum.Y / sum.X
	}
	horizontal := func() text.Orient {
		if sum.X > 0 {
			return text.OrientW
		}
		return text.OrientE
	}
	if math.Abs(islope) <= vertSlope {
		return horizontal()
	}

	orient := text.OrientN
	if sum.Y > 0 {
		orient = text.OrientS
	}
	switch len(nbrs) {
	case 1:
		// Terminal atoms are never N or S.
		return text.OrientE
	case 3:
		// A steep bond on the label side would put the Hs on top of it.
		steep := math.Tan(80 * math.Pi / 180)
		for _, nb := range nbrs {
			v := coords[nb].Sub(at)
			if math.Abs(v.Y) <= steep*math.Abs(v.X) {
				continue
			}
			if v.Y < 0 && orient == text.OrientS {
				return text.OrientN
			}
			if v.Y > 0 && orient == text.OrientN {
				return text.OrientS
			}
		}
	}
	return orient
}
