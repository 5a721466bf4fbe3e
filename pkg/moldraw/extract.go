package moldraw

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/FabioUrbina/rdkit/pkg/errors"
	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/mol"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
	"github.com/FabioUrbina/rdkit/pkg/render/text"
)

const (
	// Fraction of a bracket's length used for its hooks.
	bracketHookFrac = 0.1
	// Link node brackets cross the bond a third of the way along and are a
	// third of the bond long.
	linkCrossingFrac = 0.333
	linkLengthFrac   = 0.333
)

// setupDrawMolecule pushes a context for m and fills it with everything
// needed to draw: coordinates, labels, notes, radicals and extra shapes.
// The outermost molecule is also scaled to its panel unless a scale was
// fixed. extent adds molecule-space points the scale must also cover. The
// returned func pops the context and must always be called.
func (d *Drawer) setupDrawMolecule(m *mol.Molecule, extent ...geom.Point) (*renderContext, func(), error) {
	ctx, release := d.push()
	ctx.extent = extent
	if !m.HasCoords() {
		return ctx, release, nil
	}

	mc := m.Clone()
	var shift geom.Point
	if d.opts.CentreMoleculesBeforeDrawing {
		mc.Centre()
		shift = mc.Coords[0].Sub(m.Coords[0])
	}
	simplifyStereoGroups(mc, d.opts.SimplifiedStereoGroupLabel)
	mc.Rotate(d.opts.Rotate)
	ctx.mol = mc

	base := d.opts.BaseFontSize
	if mbl := mc.MeanBondLength(); mbl > 0 && mbl < 1 {
		base *= 0.75
	}
	d.text.SetBaseFontSize(base)

	// Extraction works at unit scale and font scale so placed notes can be
	// rescaled later.
	saved := d.saveState()
	d.tr.Scale = 1
	d.text.SetFontScale(1, true)
	err := d.extract(ctx, shift)
	d.restore(saved)
	if err != nil {
		release()
		return nil, func() {}, err
	}

	if d.outermost() && d.needsScale {
		d.calculateScale(ctx, d.tr.PanelW, d.tr.drawHeight())
	}
	return ctx, release, nil
}

// simplifyStereoGroups replaces a single OR or AND stereo group that
// covers every stereocentre with a molecule note, and drops the CIP codes
// of its atoms. A molecule that already has a note is left alone.
func simplifyStereoGroups(m *mol.Molecule, on bool) {
	if !on || m.Note != "" || len(m.StereoGroups) != 1 {
		return
	}
	g := m.StereoGroups[0]
	for i, a := range m.Atoms {
		if a.Chiral.IsChiral() && !slices.Contains(g.Atoms, i) {
			return
		}
	}
	switch g.Type {
	case mol.StereoGroupOr:
		m.Note = "OR enantiomer"
		m.StereoGroups = nil
	case mol.StereoGroupAnd:
		m.Note = "AND enantiomer"
		m.StereoGroups = nil
	}
	for _, a := range g.Atoms {
		m.Atoms[a].CIPCode = ""
	}
}

func (d *Drawer) extract(ctx *renderContext, shift geom.Point) error {
	m := ctx.mol
	n := len(m.Atoms)
	ctx.coords = slices.Clone(m.Coords)
	ctx.atomicNums = make([]int, n)
	ctx.labels = make([]atomLabel, n)
	for i := range m.Atoms {
		if !m.Atoms[i].ComplexQuery {
			ctx.atomicNums[i] = m.Atoms[i].Element
		}
	}
	for i := range m.Atoms {
		orient := atomOrientation(m, ctx.coords, i)
		ctx.labels[i] = atomLabel{symbol: d.atomSymbol(m, i, orient), orient: orient}
	}

	if err := d.extractVariableBonds(ctx); err != nil {
		return err
	}
	d.extractAtomNotes(ctx)
	d.extractBondNotes(ctx)
	if d.opts.IncludeRadicals {
		for i, a := range m.Atoms {
			if a.Radicals > 0 {
				ctx.radicals = append(ctx.radicals, d.placeRadical(ctx, i, a.Radicals))
			}
		}
	}
	d.extractDataGroups(ctx, shift)
	d.extractBrackets(ctx)
	if m.Note != "" {
		ctx.annotations = append(ctx.annotations, d.placeMolNote(ctx, m.Note))
	}
	d.extractLinkNodes(ctx)
	return nil
}

// stereoLabels returns the stereo note of every atom that has one: the CIP
// code, qualified by the enhanced stereo group the atom belongs to.
func stereoLabels(m *mol.Molecule) map[int]string {
	out := make(map[int]string)
	for i, a := range m.Atoms {
		if a.CIPCode != "" {
			out[i] = "(" + a.CIPCode + ")"
		}
	}
	var nOr, nAnd int
	for _, g := range m.StereoGroups {
		var lab string
		switch g.Type {
		case mol.StereoGroupOr:
			nOr++
			lab = "or" + strconv.Itoa(nOr)
		case mol.StereoGroupAnd:
			nAnd++
			lab = "and" + strconv.Itoa(nAnd)
		}
		for _, a := range g.Atoms {
			switch {
			case lab != "":
				out[a] = lab
			case m.Atoms[a].CIPCode != "":
				out[a] = "abs (" + m.Atoms[a].CIPCode + ")"
			}
		}
	}
	return out
}

// joinNote prefixes note with an index when indices are requested.
func joinNote(add bool, idx int, note string) string {
	if !add {
		return note
	}
	if note == "" {
		return strconv.Itoa(idx)
	}
	return strconv.Itoa(idx) + "," + note
}

func (d *Drawer) extractAtomNotes(ctx *renderContext) {
	m := ctx.mol
	var stereo map[int]string
	if d.opts.AddStereoAnnotation {
		stereo = stereoLabels(m)
	}
	for i, a := range m.Atoms {
		note := a.Note
		if s, ok := stereo[i]; ok {
			note = s
		}
		note = joinNote(d.opts.AddAtomIndices, i, note)
		if note == "" {
			continue
		}
		ctx.annotations = append(ctx.annotations, d.placeAtomNote(ctx, i, note, text.AlignMiddle))
	}
}

func (d *Drawer) extractBondNotes(ctx *renderContext) {
	m := ctx.mol
	for bi, b := range m.Bonds {
		note := b.Note
		if d.opts.AddStereoAnnotation && b.Type == mol.BondDouble {
			switch b.Stereo {
			case mol.StereoE, mol.StereoTrans:
				note = "(E)"
			case mol.StereoZ, mol.StereoCis:
				note = "(Z)"
			}
		}
		note = joinNote(d.opts.AddBondIndices, bi, note)
		if note == "" {
			continue
		}
		ctx.annotations = append(ctx.annotations, d.placeBondNote(ctx, bi, note))
	}
}

// extractDataGroups places the text of data substance groups, at the
// position recorded in the group when there is one.
func (d *Drawer) extractDataGroups(ctx *renderContext, shift geom.Point) {
	m := ctx.mol
	theta := -d.opts.Rotate * math.Pi / 180
	for _, sg := range m.SGroups {
		if sg.Type != "DAT" || len(sg.DataFields) == 0 {
			continue
		}
		note := strings.Join(sg.DataFields, "|")
		pos, relative, err := mol.ParseFieldDisp(sg.FieldDisp)
		if err != nil {
			if len(sg.Atoms) == 0 {
				continue
			}
			ctx.annotations = append(ctx.annotations, d.placeAtomNote(ctx, sg.Atoms[0], note, text.AlignStart))
			continue
		}
		switch {
		case relative && len(sg.Atoms) > 0:
			pos = ctx.coords[sg.Atoms[0]].Add(pos.Rotate(theta))
		case relative:
			continue
		default:
			pos = pos.Add(shift).Rotate(theta)
		}
		var atoms []int
		if len(sg.Atoms) > 0 {
			atoms = slices.Clone(sg.Atoms)
		}
		ctx.annotations = append(ctx.annotations, annotation{
			text:      note,
			pos:       pos,
			block:     d.noteBlock(note, text.AlignStart),
			align:     text.AlignStart,
			scaleText: true,
			tag:       canvas.Tag{Kind: canvas.TagAnnotation, Index: -1, Atoms: atoms},
		})
	}
}

// extractVariableBonds turns each variable attachment bond into a marker
// round every atom it may attach to and a band through them. The dummy
// atom standing in for the group loses its label.
func (d *Drawer) extractVariableBonds(ctx *renderContext) error {
	m := ctx.mol
	for bi, b := range m.Bonds {
		if len(b.EndPoints) == 0 {
			continue
		}
		dummy := b.Begin
		if m.Atoms[dummy].Element != 0 && m.Atoms[b.End].Element == 0 {
			dummy = b.End
		}
		r := d.opts.VariableAtomRadius
		off := geom.Pt(r, r)
		var pts []geom.Point
		atoms := make([]int, 0, len(b.EndPoints))
		for _, ep := range b.EndPoints {
			a := ep - 1
			if a < 0 || a >= len(m.Atoms) {
				return errors.Precondition("bad variation point index %d on bond %d", ep, bi)
			}
			p := ctx.coords[a]
			pts = append(pts, p)
			atoms = append(atoms, a)
			ctx.preShapes = append(ctx.preShapes, shape{
				kind:      shapeEllipse,
				points:    []geom.Point{p.Sub(off), p.Add(off)},
				fill:      true,
				lineWidth: 1,
				colour:    d.opts.VariableAttachmentColour,
				atoms:     []int{a},
			})
		}
		if len(pts) > 1 {
			ctx.preShapes = append(ctx.preShapes, shape{
				kind:           shapePolyline,
				points:         pts,
				lineWidth:      d.lineWidth * d.opts.VariableBondWidthMultiplier,
				scaleLineWidth: d.opts.ScaleBondWidth,
				colour:         d.opts.VariableAttachmentColour,
				atoms:          atoms,
			})
		}
		ctx.labels[dummy].symbol = ""
	}
	return nil
}

// bracketPoints returns the polyline of a bracket from p1 to p2 with hooks
// turned towards ref.
func bracketPoints(p1, p2, ref geom.Point) []geom.Point {
	hook := geom.Perpendicular(p1, p2).Mul(bracketHookFrac * geom.Dist(p1, p2))
	if ref.Sub(geom.Mid(p1, p2)).Dot(hook) < 0 {
		hook = hook.Neg()
	}
	return []geom.Point{p1.Add(hook), p1, p2, p2.Add(hook)}
}

// extractBrackets draws the brackets of substance groups. The connection
// type goes at the top of the last bracket and the group label at its
// bottom, both outside the bracket.
func (d *Drawer) extractBrackets(ctx *renderContext) {
	m := ctx.mol
	for _, sg := range m.SGroups {
		if sg.Type == "DAT" || len(sg.Brackets) == 0 {
			continue
		}
		var ref geom.Point
		if len(sg.Atoms) > 0 {
			pts := make([]geom.Point, len(sg.Atoms))
			for i, a := range sg.Atoms {
				pts[i] = ctx.coords[a]
			}
			ref = geom.Centroid(pts)
		}
		var last []geom.Point
		for _, brk := range sg.Brackets {
			if len(brk) < 2 {
				continue
			}
			last = bracketPoints(brk[0], brk[1], ref)
			ctx.postShapes = append(ctx.postShapes, shape{
				kind:           shapePolyline,
				points:         last,
				lineWidth:      d.lineWidth,
				scaleLineWidth: d.opts.ScaleBondWidth,
				colour:         d.opts.SymbolColour,
				atoms:          slices.Clone(sg.Atoms),
			})
		}
		if last == nil {
			continue
		}

		top, topHook := last[1], last[0]
		bot, botHook := last[2], last[3]
		if bot.Y > top.Y {
			top, topHook, bot, botHook = bot, botHook, top, topHook
		}
		if sg.Connect != "" {
			ctx.annotations = append(ctx.annotations, d.bracketLabel(sg.Connect, top, topHook, sg.Atoms))
		}
		if sg.Label != "" {
			ctx.annotations = append(ctx.annotations, d.bracketLabel(sg.Label, bot, botHook, sg.Atoms))
		}
	}
}

func (d *Drawer) bracketLabel(s string, corner, hook geom.Point, atoms []int) annotation {
	align := text.AlignMiddle
	if hook.X < corner.X {
		align = text.AlignStart
	}
	return annotation{
		text:      s,
		pos:       corner.Add(corner.Sub(hook)),
		block:     d.noteBlock(s, align),
		align:     align,
		scaleText: true,
		tag:       canvas.Tag{Kind: canvas.TagAnnotation, Index: -1, Atoms: slices.Clone(atoms)},
	}
}

// extractLinkNodes draws a short bracket across each outer bond of a link
// node and labels the rightmost one with the repeat range.
func (d *Drawer) extractLinkNodes(ctx *renderContext) {
	for _, ln := range ctx.mol.LinkNodes {
		labelPt := geom.Pt(math.Inf(-1), 0)
		var labelPerp geom.Point
		var atoms []int
		for _, pair := range ln.BondAtoms {
			start, end := ctx.coords[pair[0]], ctx.coords[pair[1]]
			v := end.Sub(start)
			crossing := start.Add(v.Mul(linkCrossingFrac))
			perp := geom.Pt(v.Y, -v.X).Mul(linkLengthFrac)
			p1, p2 := crossing.Add(perp.Div(2)), crossing.Sub(perp.Div(2))
			ctx.postShapes = append(ctx.postShapes, shape{
				kind:           shapePolyline,
				points:         bracketPoints(p1, p2, start),
				lineWidth:      d.lineWidth,
				scaleLineWidth: d.opts.ScaleBondWidth,
				colour:         d.opts.SymbolColour,
				atoms:          []int{pair[0], pair[1]},
			})
			atoms = append(atoms, pair[0])
			for _, p := range []geom.Point{p1, p2} {
				if p.X > labelPt.X {
					labelPt, labelPerp = p, crossing.Sub(start)
				}
			}
		}
		if len(ln.BondAtoms) == 0 {
			continue
		}
		if l := labelPerp.Length(); l > 0 {
			labelPt = labelPt.Add(labelPerp.Div(l * 5))
		}
		label := fmt.Sprintf("(%d-%d)", ln.Min, ln.Max)
		ctx.annotations = append(ctx.annotations, annotation{
			text:      label,
			pos:       labelPt,
			block:     d.noteBlock(label, text.AlignStart),
			align:     text.AlignStart,
			scaleText: true,
			tag:       canvas.Tag{Kind: canvas.TagAnnotation, Index: -1, Atoms: atoms},
		})
	}
}
