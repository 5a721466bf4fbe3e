package moldraw

import (
	"math"

	"github.com/FabioUrbina/rdkit/pkg/errors"
	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/mol"
)

const (
	// Spans narrower than minSpan are widened to one unit.
	minSpan = 1e-4
	// The scale search stops when a pass changes the scale by less than
	// this many pixels per unit.
	scaleTolerance     = 0.1
	maxScaleIterations = 20
)

// unitSpans widens a degenerate span of r to one unit centred on it.
func unitSpans(r geom.Rect) geom.Rect {
	if r.Empty() {
		return r
	}
	lo, hi := r.Min, r.Max
	if hi.X-lo.X < minSpan {
		lo.X, hi.X = lo.X-0.5, lo.X+0.5
	}
	if hi.Y-lo.Y < minSpan {
		lo.Y, hi.Y = lo.Y-0.5, lo.Y+0.5
	}
	return geom.NewRect(lo, hi)
}

// molBox is the box of the atoms and the extra shapes of ctx.
func molBox(ctx *renderContext) geom.Rect {
	box := geom.Bounds(ctx.coords...).Union(geom.Bounds(ctx.extent...))
	for _, shapes := range [][]shape{ctx.preShapes, ctx.postShapes} {
		for _, s := range shapes {
			box = box.Union(geom.Bounds(s.points...))
		}
	}
	return box
}

// footprint is the box of everything drawn for ctx when the drawing scale
// is scale: atoms and shapes, atom labels, highlight ellipses, radicals and
// annotations. It leaves the drawer at that scale.
func (d *Drawer) footprint(ctx *renderContext, scale float64) geom.Rect {
	d.tr.Scale = scale
	d.setFontScale(scale)
	box := molBox(ctx)

	for i := range ctx.labels {
		lb := d.labelBlock(ctx, i)
		if lb.Empty() {
			continue
		}
		e := lb.Extremes()
		at := ctx.coords[i]
		box = box.Union(geom.NewRect(at.Add(e.Min), at.Add(e.Max)))
	}

	if d.hl != nil {
		for _, a := range d.hl.Atoms {
			c, rx, ry := d.calcLabelEllipse(ctx, a)
			off := geom.Pt(rx, ry)
			box = box.Union(geom.NewRect(c.Sub(off), c.Add(off)))
		}
	}

	// Radicals and notes were laid out at unit font scale.
	f := d.text.FontScale() / scale
	for _, r := range ctx.radicals {
		at := ctx.coords[r.atom]
		box = box.Union(geom.NewRect(
			at.Add(r.rect.Min.Sub(at).Mul(f)),
			at.Add(r.rect.Max.Sub(at).Mul(f)),
		))
	}
	for i := range ctx.annotations {
		a := &ctx.annotations[i]
		if a.block.Empty() {
			continue
		}
		e := a.block.Scaled(f).Extremes()
		box = box.Union(geom.NewRect(a.pos.Add(e.Min), a.pos.Add(e.Max)))
	}
	return box
}

// calculateScale fits ctx into a width x height area. Labels and notes do
// not scale with the drawing, so the box they need depends on the scale
// being computed; the search repeats until it settles. Each pass starts
// from the bare molecule, so running it twice gives the same transform.
func (d *Drawer) calculateScale(ctx *renderContext, width, height float64) {
	base := unitSpans(molBox(ctx))
	if base.Empty() {
		return
	}
	scale := min(width/base.Width(), height/base.Height())
	box := base
	for i := 0; i < maxScaleIterations && scale > minSpan; i++ {
		box = unitSpans(d.footprint(ctx, scale))
		next := min(width/box.Width(), height/box.Height())
		settled := math.Abs(next-scale) < scaleTolerance
		scale = next
		if settled {
			break
		}
	}

	d.setRange(box)
	scale = min(width/d.tr.XRange, height/d.tr.YRange)
	fix := 0.0
	if d.opts.FixedBondLength > 0 {
		fix = d.opts.FixedBondLength
	}
	if d.opts.FixedScale > 0 {
		fix = width * d.opts.FixedScale
	}
	if fix > 0 && scale > fix {
		scale = fix
	}
	d.applyScale(scale, width, height)
}

// setRange sets the molecule-space range from box with padding added on
// every side.
func (d *Drawer) setRange(box geom.Rect) {
	pad := d.opts.Padding
	d.tr.XRange, d.tr.YRange = box.Width(), box.Height()
	d.tr.XMin = box.Min.X - pad*d.tr.XRange
	d.tr.YMin = box.Min.Y - pad*d.tr.YRange
	d.tr.XRange *= 1 + 2*pad
	d.tr.YRange *= 1 + 2*pad
}

func (d *Drawer) applyScale(scale, width, height float64) {
	d.tr.Scale = scale
	d.setFontScale(scale)
	d.tr.centrePicture(width, height)
	d.needsScale = false
}

// SetScale fixes the transform so the molecule-space box minv-maxv fills a
// width x height area. When m is given its atoms are added to the box. The
// next drawing uses this transform instead of fitting its own molecule.
func (d *Drawer) SetScale(width, height float64, minv, maxv geom.Point, m *mol.Molecule) error {
	if width <= 0 || height <= 0 {
		return errors.Precondition("scale area must be positive, got %vx%v", width, height)
	}
	box := geom.NewRect(minv, maxv)
	if m != nil && m.HasCoords() {
		box = box.Union(geom.Bounds(m.Coords...))
	}
	d.setRange(unitSpans(box))
	d.applyScale(min(width/d.tr.XRange, height/d.tr.YRange), width, height)
	return nil
}

// globalScale fits every box of a batch with one shared transform.
func (d *Drawer) globalScale(boxes []geom.Rect) {
	var all geom.Rect
	for _, b := range boxes {
		all = all.Union(b)
	}
	if all.Empty() {
		return
	}
	d.tr.XMin, d.tr.YMin = all.Min.X, all.Min.Y
	d.tr.XRange, d.tr.YRange = max(all.Width(), minSpan), max(all.Height(), minSpan)
	h := d.tr.drawHeight()
	d.applyScale(min(d.tr.PanelW/d.tr.XRange, h/d.tr.YRange), d.tr.PanelW, h)
}

// paddedBox returns the molecule-space range of the current transform.
func (t *Transform) paddedBox() geom.Rect {
	return geom.NewRect(geom.Pt(t.XMin, t.YMin), geom.Pt(t.XMin+t.XRange, t.YMin+t.YRange))
}
