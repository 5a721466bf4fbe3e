package moldraw

import (
	"slices"

	"github.com/FabioUrbina/rdkit/pkg/errors"
	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/mol"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
)

var (
	attachmentGrey  = canvas.RGB(0.5, 0.5, 0.5)
	closeContactRed = canvas.RGB(1, 0, 0)
)

const (
	// attachmentLength is the length of the wavy mark drawn across a dummy
	// attachment point.
	attachmentLength = 1.0
	// Half the side of the box round an atom in close contact.
	closeContactSize = 0.1
)

func checkMolecule(m *mol.Molecule) error {
	if m == nil {
		return errors.Precondition("no molecule to draw")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMolecule, err, "invalid molecule %q", m.Name)
	}
	return nil
}

// DrawMolecule draws m in the current panel with an optional legend
// underneath. Atoms and bonds in hl are highlighted. A molecule without
// coordinates draws nothing.
func (d *Drawer) DrawMolecule(m *mol.Molecule, legend string, hl *Highlights) error {
	if err := checkMolecule(m); err != nil {
		return err
	}
	if err := hl.validate(m); err != nil {
		return err
	}
	d.tr.LegendH = legendHeight(legend, d.tr.PanelH, true)
	d.setHighlights(m, hl)
	defer d.clearHighlights()

	ctx, release, err := d.setupDrawMolecule(m)
	if err != nil {
		return err
	}
	defer release()
	d.drawMolecule(ctx, nil, nil)
	d.drawLegend(legend)
	return nil
}

// setHighlights installs hl for the next drawing. Without explicit bonds,
// continuous highlighting joins every pair of highlighted neighbours.
func (d *Drawer) setHighlights(m *mol.Molecule, hl *Highlights) {
	if hl == nil {
		d.hl = nil
		return
	}
	if d.opts.ContinuousHighlight {
		d.hl = hl.resolved(m)
		return
	}
	out := *hl
	if out.Bonds == nil {
		out.Bonds = []int{}
	}
	d.hl = &out
}

func (d *Drawer) clearHighlights() {
	d.hl = nil
	d.bondColours = nil
}

// DrawMoleculeWithHighlights draws m with atoms and bonds that may carry
// several highlight colours each. Atom highlights are split into equal
// arcs and bond highlights into parallel stripes.
func (d *Drawer) DrawMoleculeWithHighlights(m *mol.Molecule, legend string, mh *MultiHighlights) error {
	if err := checkMolecule(m); err != nil {
		return err
	}
	if mh == nil {
		mh = &MultiHighlights{}
	}
	if err := mh.validate(m); err != nil {
		return err
	}
	d.tr.LegendH = legendHeight(legend, d.tr.PanelH, false)
	d.hl = mh.flatten()
	defer d.clearHighlights()

	ctx, release, err := d.setupDrawMolecule(m)
	if err != nil {
		return err
	}
	defer release()
	if !ctx.hasCoords() {
		return nil
	}

	// Plain bonds go on top of the highlights. A bond whose atom colours
	// are not both among its highlight colours is drawn black so it stays
	// visible.
	d.bondColours = make(map[int][2]canvas.Colour, len(ctx.mol.Bonds))
	for bi, b := range ctx.mol.Bonds {
		col1 := d.atomColour(ctx, b.Begin, false)
		col2 := d.atomColour(ctx, b.End, false)
		if cols, ok := mh.Bonds[bi]; ok {
			if !slices.ContainsFunc(cols, col1.Equal) || !slices.ContainsFunc(cols, col2.Equal) {
				col1, col2 = canvas.Black, canvas.Black
			}
		}
		d.bondColours[bi] = [2]canvas.Colour{col1, col2}
	}
	labelCols := make([]canvas.Colour, len(ctx.mol.Atoms))
	for i := range labelCols {
		labelCols[i] = d.atomColour(ctx, i, false)
		if cols, ok := mh.Atoms[i]; ok && slices.ContainsFunc(cols, labelCols[i].Equal) {
			labelCols[i] = canvas.Black
		}
	}

	under := func() {
		defer d.withStyle()()
		d.c.SetFill(d.opts.FillHighlights)
		d.drawHighlightedBonds(ctx, mh.Bonds)
		for _, a := range sortedKeys(mh.Atoms) {
			d.drawHighlightedAtom(ctx, a, mh.Atoms[a])
		}
	}
	d.drawMolecule(ctx, under, labelCols)
	d.drawLegend(legend)
	return nil
}

// DrawMolecules draws ms in a grid of panels with one shared scale, so
// equal bond lengths look equal across panels. legends and hls may be nil;
// otherwise they need one entry per molecule. Nil molecules leave their
// panel empty.
func (d *Drawer) DrawMolecules(ms []*mol.Molecule, legends []string, hls []*Highlights) error {
	if legends != nil && len(legends) != len(ms) {
		return errors.Precondition("%d legends for %d molecules", len(legends), len(ms))
	}
	if hls != nil && len(hls) != len(ms) {
		return errors.Precondition("%d highlight sets for %d molecules", len(hls), len(ms))
	}
	for i, m := range ms {
		if m == nil {
			continue
		}
		if err := checkMolecule(m); err != nil {
			return err
		}
		if hls != nil {
			if err := hls[i].validate(m); err != nil {
				return err
			}
		}
	}
	legendAt := func(i int) string {
		if legends == nil {
			return ""
		}
		return legends[i]
	}
	hlAt := func(i int) *Highlights {
		if hls == nil {
			return nil
		}
		return hls[i]
	}
	var legendH float64
	for i := range ms {
		legendH = max(legendH, legendHeight(legendAt(i), d.tr.PanelH, true))
	}
	defer d.clearHighlights()

	if d.needsScale {
		boxes := make([]geom.Rect, len(ms))
		for i, m := range ms {
			if m == nil {
				continue
			}
			d.TabulaRasa()
			d.tr.LegendH = legendH
			d.setHighlights(m, hlAt(i))
			ctx, release, err := d.setupDrawMolecule(m)
			if err != nil {
				return err
			}
			if ctx.hasCoords() {
				boxes[i] = d.tr.paddedBox()
			}
			release()
		}
		d.TabulaRasa()
		d.tr.LegendH = legendH
		d.globalScale(boxes)
	}

	nCols := max(1, int(d.c.Width()/d.tr.PanelW))
	nRows := max(1, int(d.c.Height()/d.tr.PanelH))
	for i, m := range ms {
		if m == nil {
			d.panels = append(d.panels, nil)
			continue
		}
		row, col := 0, 0
		if nRows > 1 {
			row = i / nCols
		}
		if nCols > 1 {
			col = i % nCols
		}
		d.SetOffset(float64(col)*d.tr.PanelW, float64(row)*d.tr.PanelH)
		d.setHighlights(m, hlAt(i))
		if err := d.drawOne(m, legendAt(i)); err != nil {
			return err
		}
	}
	return nil
}

func (d *Drawer) drawOne(m *mol.Molecule, legend string) error {
	ctx, release, err := d.setupDrawMolecule(m)
	if err != nil {
		return err
	}
	defer release()
	d.drawMolecule(ctx, nil, nil)
	d.drawLegend(legend)
	return nil
}

// drawMolecule draws a set-up molecule: extra shapes, highlights, bonds,
// then labels and notes. under, when given, replaces the usual highlight
// pass. labelCols overrides the label colour of each atom.
func (d *Drawer) drawMolecule(ctx *renderContext, under func(), labelCols []canvas.Colour) {
	if !ctx.hasCoords() {
		d.panels = append(d.panels, nil)
		return
	}
	d.clearBackground()
	defer d.withStyle()()
	d.setLineWidth(d.lineWidth)

	d.drawShapes(ctx.preShapes)
	switch {
	case under != nil:
		under()
	case d.hl == nil:
	case d.opts.ContinuousHighlight:
		d.drawContinuousHighlights(ctx)
	case d.opts.CircleAtoms:
		d.drawCircleHighlights(ctx)
	}
	d.drawBonds(ctx)
	d.finishMoleculeDraw(ctx, labelCols)
}

// clearBackground fills the whole canvas once per drawer.
func (d *Drawer) clearBackground() {
	if !d.outermost() || !d.opts.ClearBackground || d.cleared {
		return
	}
	d.cleared = true
	defer d.withStyle()()
	d.c.SetTag(canvas.Tag{})
	d.c.SetColour(d.opts.BackgroundColour)
	d.c.SetDash(canvas.DashNone)
	d.c.SetFill(true)
	w, h := d.c.Width(), d.c.Height()
	d.c.DrawPolygon([]geom.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}})
}

// finishMoleculeDraw puts everything that sits on top of the bonds:
// attachment marks, atom labels, notes, radicals, brackets and close
// contact flags. It also records where the atoms ended up.
func (d *Drawer) finishMoleculeDraw(ctx *renderContext, labelCols []canvas.Colour) {
	m := ctx.mol
	if d.opts.DummiesAreAttachments {
		for i, a := range m.Atoms {
			if a.Element != 0 || m.Degree(i) != 1 || a.Label != "" || hasLabel(d.opts.AtomLabels, i) {
				continue
			}
			bi := m.AtomBonds(i)[0]
			if len(m.Bonds[bi].EndPoints) > 0 {
				continue
			}
			func() {
				defer d.withStyle()()
				d.c.SetTag(canvas.Tag{Kind: canvas.TagAtom, Index: i, Atoms: []int{i}})
				nb := m.Bonds[bi].Other(i)
				d.drawAttachmentLine(ctx.coords[nb], ctx.coords[i], attachmentGrey, attachmentLength, wavySegments)
			}()
		}
	}

	for i, l := range ctx.labels {
		if l.symbol == "" {
			continue
		}
		col := d.atomColour(ctx, i, true)
		if labelCols != nil {
			col = labelCols[i]
		}
		d.drawAtomLabel(ctx, i, col)
	}
	for i := range ctx.annotations {
		d.drawAnnotation(&ctx.annotations[i])
	}
	d.drawRadicals(ctx)
	d.drawShapes(ctx.postShapes)
	if d.opts.FlagCloseContactsDist >= 0 {
		d.flagCloseContacts(ctx)
	}

	pos := make([]geom.Point, len(ctx.coords))
	for i, p := range ctx.coords {
		pos[i] = d.tr.ToDevice(p)
	}
	d.panels = append(d.panels, pos)
}

func (d *Drawer) drawAtomLabel(ctx *renderContext, i int, col canvas.Colour) {
	defer d.withStyle()()
	l := ctx.labels[i]
	d.c.SetColour(col)
	d.c.SetTag(canvas.Tag{Kind: canvas.TagAtom, Index: i, Atoms: []int{i}})
	d.text.Label(l.symbol, l.orient).Draw(d.c, d.tr.ToDevice(ctx.coords[i]))
}

func (d *Drawer) drawShapes(shapes []shape) {
	for _, s := range shapes {
		func() {
			defer d.withStyle()()
			d.c.SetTag(canvas.Tag{Index: -1, Atoms: s.atoms})
			d.c.SetColour(s.colour)
			d.c.SetDash(canvas.DashNone)
			d.c.SetFill(s.fill)
			d.scaleBondWidth = s.scaleLineWidth
			d.setLineWidth(s.lineWidth)
			switch s.kind {
			case shapeEllipse:
				d.drawEllipse(s.points[0], s.points[1])
			case shapePolyline:
				d.drawPolygon(s.points)
			}
		}()
	}
}

// flagCloseContacts boxes every atom that is within FlagCloseContactsDist
// pixels of another.
func (d *Drawer) flagCloseContacts(ctx *renderContext) {
	tol := float64(int(d.opts.FlagCloseContactsDist * d.opts.FlagCloseContactsDist))
	dev := make([]geom.Point, len(ctx.coords))
	for i, p := range ctx.coords {
		dev[i] = d.tr.ToDevice(p)
	}
	flagged := make([]bool, len(dev))
	for i := range dev {
		for j := i + 1; j < len(dev); j++ {
			if dev[i].Sub(dev[j]).LengthSq() <= tol {
				flagged[i], flagged[j] = true, true
			}
		}
	}

	defer d.withStyle()()
	d.c.SetColour(closeContactRed)
	d.c.SetFill(false)
	d.c.SetDash(canvas.DashNone)
	d.scaleBondWidth = false
	d.setLineWidth(1)
	off := geom.Pt(closeContactSize, closeContactSize)
	for i, f := range flagged {
		if !f {
			continue
		}
		d.c.SetTag(canvas.Tag{Kind: canvas.TagAtom, Index: i, Atoms: []int{i}})
		d.drawRect(ctx.coords[i].Sub(off), ctx.coords[i].Add(off))
	}
}
