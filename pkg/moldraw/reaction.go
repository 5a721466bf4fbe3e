package moldraw

import (
	"math"
	"slices"

	"github.com/FabioUrbina/rdkit/pkg/errors"
	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/mol"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
	"github.com/FabioUrbina/rdkit/pkg/render/text"
)

// Reaction layout, in molecule units.
const (
	reactionSpacing = 1.0
	agentScale      = 0.45
	// The arrow head is this fraction of the arrow.
	reactionArrowFrac = 0.05
)

// reactionRole says which part of a reaction an atom came from.
type reactionRole uint8

const (
	roleReactant reactionRole = iota
	roleAgent
	roleProduct
)

// reactionLayout is a reaction flattened into one molecule, with the
// positions of the plus signs and the arrow.
type reactionLayout struct {
	mol        *mol.Molecule
	roles      []reactionRole
	pluses     []float64
	arrowBegin geom.Point
	arrowEnd   geom.Point
}

// placeComponent lays m out in a row starting at offset, leaving room for
// atom labels, and returns the copy and the offset for the next component.
// With shift set the copy is scaled by coordScale and raised by vShift and
// the y range is left alone.
func (d *Drawer) placeComponent(m *mol.Molecule, offset float64, minY, maxY *float64, shift bool, coordScale, vShift float64) (*mol.Molecule, float64) {
	mc := m.Clone()
	if !mc.HasCoords() {
		return mc, offset
	}
	type size struct{ w, h float64 }
	sizes := make([]size, len(mc.Atoms))
	orients := make([]text.Orient, len(mc.Atoms))
	minX := math.Inf(1)
	for i := range mc.Atoms {
		orients[i] = atomOrientation(mc, mc.Coords, i)
		if sym := d.atomSymbol(mc, i, orients[i]); sym != "" {
			e := d.text.Label(sym, orients[i]).Extremes()
			sizes[i] = size{e.Width(), e.Height()}
		}
		x := mc.Coords[i].X
		if orients[i] == text.OrientW {
			x -= sizes[i].w
		} else {
			x -= sizes[i].w / 2
		}
		minX = min(minX, x*coordScale)
	}
	offset -= minX

	maxX := math.Inf(-1)
	for i := range mc.Atoms {
		p := mc.Coords[i]
		p.Y = p.Y*coordScale + vShift
		w, h := sizes[i].w, sizes[i].h/2
		if orients[i] != text.OrientE {
			w /= 2
		}
		if !shift {
			*maxY = max(*maxY, p.Y+h)
			*minY = min(*minY, p.Y-h)
		}
		p.X = p.X*coordScale + offset
		maxX = max(maxX, p.X+w)
		mc.Coords[i] = p
	}
	return mc, maxX + reactionSpacing
}

// layoutReaction puts reactants, agents and products in a row: reactants
// separated by plus signs, the arrow with the agents shrunk above it, then
// the products. Label sizes are measured at unit scale.
func (d *Drawer) layoutReaction(rxn *mol.Reaction) *reactionLayout {
	saved := d.saveState()
	d.tr.Scale = 1
	d.text.SetFontScale(1, true)
	defer d.restore(saved)

	minY, maxY := math.Inf(1), math.Inf(-1)
	offset := 0.0
	var reactants, agents, products []*mol.Molecule
	var pluses, productPluses []float64

	for i, m := range rxn.Reactants {
		if i > 0 {
			pluses = append(pluses, offset)
			offset += reactionSpacing
		}
		var mc *mol.Molecule
		mc, offset = d.placeComponent(m, offset, &minY, &maxY, false, 1, 0)
		reactants = append(reactants, mc)
	}
	arrowBegin := geom.Pt(offset, 0)
	offset += reactionSpacing
	agentStart := offset

	// Products first for the full y range; they move right afterwards.
	offset = 0
	for i, m := range rxn.Products {
		if i > 0 {
			productPluses = append(productPluses, offset)
			offset += reactionSpacing
		}
		var mc *mol.Molecule
		mc, offset = d.placeComponent(m, offset, &minY, &maxY, false, 1, 0)
		products = append(products, mc)
	}
	if math.IsInf(maxY, 0) {
		minY, maxY = 0, 0
	}

	offset = agentStart
	vShift := 1.1 * maxY / 2
	for _, m := range rxn.Agents {
		var mc *mol.Molecule
		mc, offset = d.placeComponent(m, offset, &minY, &maxY, true, agentScale, vShift)
		agents = append(agents, mc)
	}
	arrowEnd := geom.Pt(offset, 0)
	if len(agents) == 0 {
		arrowEnd.X = offset + 3*reactionSpacing
	}

	offset = arrowEnd.X + 1.5*reactionSpacing
	for _, mc := range products {
		for i := range mc.Coords {
			mc.Coords[i].X += offset
		}
	}
	for _, p := range productPluses {
		pluses = append(pluses, p+offset)
	}
	arrowBegin.Y = minY + (maxY-minY)/2
	arrowEnd.Y = arrowBegin.Y

	lay := &reactionLayout{pluses: pluses, arrowBegin: arrowBegin, arrowEnd: arrowEnd}
	lay.mol, lay.roles = mergeComponents(
		[][]*mol.Molecule{reactants, agents, products},
		[]reactionRole{roleReactant, roleAgent, roleProduct},
	)
	return lay
}

// mergeComponents joins molecules into one, recording the role of every
// atom.
func mergeComponents(groups [][]*mol.Molecule, roles []reactionRole) (*mol.Molecule, []reactionRole) {
	out := &mol.Molecule{}
	var atomRoles []reactionRole
	for gi, group := range groups {
		for _, m := range group {
			base := len(out.Atoms)
			out.Atoms = append(out.Atoms, m.Atoms...)
			out.Coords = append(out.Coords, m.Coords...)
			for _, b := range m.Bonds {
				b.Begin += base
				b.End += base
				for k := range b.EndPoints {
					b.EndPoints[k] += base
				}
				out.Bonds = append(out.Bonds, b)
			}
			for range m.Atoms {
				atomRoles = append(atomRoles, roles[gi])
			}
		}
	}
	return out, atomRoles
}

// reactantHighlights colours each reactant fragment with its own palette
// colour, and every product atom mapped to a reactant atom with the colour
// of that reactant. Bonds within a coloured fragment are coloured too. Map
// numbers used this way are cleared so they are not drawn.
func reactantHighlights(m *mol.Molecule, roles []reactionRole, palette []canvas.Colour) *Highlights {
	hl := &Highlights{
		Bonds:       []int{},
		AtomColours: make(map[int]canvas.Colour),
		BondColours: make(map[int]canvas.Colour),
	}
	if len(palette) == 0 {
		return hl
	}
	frags := m.Fragments()
	mapFrag := make(map[int]int)

	mark := func(a int, col canvas.Colour, same func(nb int) bool) {
		hl.Atoms = append(hl.Atoms, a)
		hl.AtomColours[a] = col
		m.Atoms[a].MapNumber = 0
		for _, nb := range m.Neighbours(a) {
			if nb < a && same(nb) {
				if bi, ok := m.BondBetween(a, nb); ok {
					hl.Bonds = append(hl.Bonds, bi)
					hl.BondColours[bi] = col
				}
			}
		}
	}

	for a := range m.Atoms {
		mapNum := m.Atoms[a].MapNumber
		if roles[a] != roleReactant || mapNum == 0 {
			continue
		}
		mapFrag[mapNum] = frags[a]
		mark(a, palette[frags[a]%len(palette)], func(nb int) bool { return frags[nb] == frags[a] })
	}
	for a := range m.Atoms {
		mapNum := m.Atoms[a].MapNumber
		if roles[a] != roleProduct || mapNum == 0 {
			continue
		}
		f, ok := mapFrag[mapNum]
		if !ok {
			continue
		}
		col := palette[f%len(palette)]
		mark(a, col, func(nb int) bool {
			c, ok := hl.AtomColours[nb]
			return ok && c.Equal(col)
		})
	}
	slices.Sort(hl.Bonds)
	return hl
}

// DrawReaction draws a reaction scheme in the current panel. With
// highlightByReactant, atoms are coloured by the reactant they come from,
// following atom map numbers into the products; colours overrides
// HighlightColourPalette when given.
func (d *Drawer) DrawReaction(rxn *mol.Reaction, highlightByReactant bool, colours []canvas.Colour) error {
	if rxn == nil {
		return errors.Precondition("no reaction to draw")
	}
	for _, group := range [][]*mol.Molecule{rxn.Reactants, rxn.Agents, rxn.Products} {
		for _, m := range group {
			if err := checkMolecule(m); err != nil {
				return err
			}
			if !m.HasCoords() {
				return errors.Precondition("reaction component %q has no coordinates", m.Name)
			}
		}
	}

	// The components are laid out as given.
	orig := d.opts
	d.opts.Rotate = 0
	d.opts.CentreMoleculesBeforeDrawing = false
	defer func() { d.opts = orig }()

	lay := d.layoutReaction(rxn)
	var hl *Highlights
	if highlightByReactant {
		palette := d.opts.HighlightColourPalette
		if len(colours) > 0 {
			palette = colours
		}
		hl = reactantHighlights(lay.mol, lay.roles, palette)
	}

	d.tr.LegendH = 0
	d.setHighlights(lay.mol, hl)
	defer d.clearHighlights()
	ctx, release, err := d.setupDrawMolecule(lay.mol, lay.arrowBegin, lay.arrowEnd)
	if err != nil {
		return err
	}
	defer release()
	if !ctx.hasCoords() {
		return nil
	}
	d.drawMolecule(ctx, nil, nil)

	defer d.withStyle()()
	fs := d.text.FontScale()
	defer d.text.SetFontScale(fs, true)
	d.setFontScale(2 * fs * d.opts.LegendFontSize / d.text.FontSize())
	d.c.SetColour(d.opts.SymbolColour)
	d.c.SetTag(canvas.Tag{Index: -1})
	for _, x := range lay.pluses {
		d.drawText("+", geom.Pt(x, lay.arrowBegin.Y), text.AlignMiddle)
	}
	d.drawArrow(lay.arrowBegin, lay.arrowEnd, d.opts.SymbolColour, false, reactionArrowFrac, math.Pi/6)
	return nil
}
