package moldraw

import (
	"math"

	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
	"github.com/FabioUrbina/rdkit/pkg/render/text"
)

// Wavy line defaults: number of half waves and their height in molecule
// units.
const (
	wavySegments   = 16
	wavyVertOffset = 0.05
)

// withStyle snapshots the canvas style and the logical line width. The
// returned func restores both:
//
//	defer d.withStyle()()
func (d *Drawer) withStyle() func() {
	st := d.c.Style()
	lw, sbw := d.lineWidth, d.scaleBondWidth
	return func() {
		d.lineWidth, d.scaleBondWidth = lw, sbw
		st.Apply(d.c)
	}
}

// setLineWidth sets the logical line width, converting it for the canvas.
func (d *Drawer) setLineWidth(w float64) {
	d.lineWidth = w
	d.c.SetLineWidth(d.drawLineWidth())
}

// setScaleBondWidth switches scaling of line widths with the drawing.
func (d *Drawer) setScaleBondWidth(on bool) {
	d.scaleBondWidth = on
	d.c.SetLineWidth(d.drawLineWidth())
}

// drawLineWidth converts the logical line width to pixels.
func (d *Drawer) drawLineWidth() float64 {
	w := d.lineWidth
	if d.scaleBondWidth {
		w = max(0, w*d.tr.Scale*0.02)
	}
	return w
}

func (d *Drawer) toDevice(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = d.tr.ToDevice(p)
	}
	return out
}

// drawLine draws p1-p2, switching from col1 to col2 at the midpoint when
// they differ.
func (d *Drawer) drawLine(p1, p2 geom.Point, col1, col2 canvas.Colour) {
	if col1.Equal(col2) {
		d.c.SetColour(col1)
		d.rawLine(p1, p2, true, true)
		return
	}
	mid := geom.Mid(p1, p2)
	d.c.SetColour(col1)
	d.rawLine(p1, mid, true, false)
	d.c.SetColour(col2)
	d.rawLine(mid, p2, false, true)
}

// rawLine draws one segment in the current colour. In comic mode it is a
// hand-drawn polyline whose ends jitter as requested.
func (d *Drawer) rawLine(p1, p2 geom.Point, jitterBegin, jitterEnd bool) {
	a, b := d.tr.ToDevice(p1), d.tr.ToDevice(p2)
	if !d.opts.ComicMode {
		d.c.DrawLine(a, b)
		return
	}
	fill := d.c.Style().Fill
	d.c.SetFill(false)
	d.c.DrawPolygon(geom.HanddrawnLine(a, b, d.tr.Scale, jitterBegin, jitterEnd))
	d.c.SetFill(fill)
}

// drawPolygon draws a polygon given in molecule space with the current
// style.
func (d *Drawer) drawPolygon(pts []geom.Point) {
	if len(pts) < 2 {
		return
	}
	d.c.DrawPolygon(d.toDevice(pts))
}

// drawTriangle draws a triangle, hand-drawn in comic mode.
func (d *Drawer) drawTriangle(p1, p2, p3 geom.Point) {
	if !d.opts.ComicMode {
		d.drawPolygon([]geom.Point{p1, p2, p3})
		return
	}
	a, b, c := d.tr.ToDevice(p1), d.tr.ToDevice(p2), d.tr.ToDevice(p3)
	var pts []geom.Point
	pts = append(pts, geom.HanddrawnLine(a, b, d.tr.Scale, true, true)...)
	pts = append(pts, geom.HanddrawnLine(b, c, d.tr.Scale, true, true)...)
	pts = append(pts, geom.HanddrawnLine(c, a, d.tr.Scale, true, true)...)
	d.c.DrawPolygon(pts)
}

// drawEllipse draws the ellipse inscribed in the box p1-p2.
func (d *Drawer) drawEllipse(p1, p2 geom.Point) {
	a, b := d.tr.ToDevice(p1), d.tr.ToDevice(p2)
	d.c.DrawEllipse(a, b)
}

// drawArc draws an elliptical arc from ang1 to ang2 degrees. A filled arc
// is closed through the centre to make a sector.
func (d *Drawer) drawArc(centre geom.Point, rx, ry, ang1, ang2 float64) {
	pts := geom.ArcPoints(centre, rx, ry, ang1, ang2)
	if d.c.Style().Fill {
		pts = append(pts, centre)
	}
	d.drawPolygon(pts)
}

// drawRect draws the axis-aligned box with corners p1 and p2. An unfilled
// box is closed explicitly.
func (d *Drawer) drawRect(p1, p2 geom.Point) {
	pts := []geom.Point{p1, geom.Pt(p1.X, p2.Y), p2, geom.Pt(p2.X, p1.Y)}
	if !d.c.Style().Fill {
		pts = append(pts, p1)
	}
	d.drawPolygon(pts)
}

// drawArrow draws a line from begin to end with a head at end. frac is the
// head length as a fraction of the line, angle its half-angle in radians.
func (d *Drawer) drawArrow(begin, end geom.Point, col canvas.Colour, asPolygon bool, frac, angle float64) {
	delta := begin.Sub(end)
	sin, cos := math.Sincos(angle)
	p1 := end.Add(geom.Pt(delta.X*cos+delta.Y*sin, delta.Y*cos-delta.X*sin).Mul(frac))
	p2 := end.Add(geom.Pt(delta.X*cos-delta.Y*sin, delta.Y*cos+delta.X*sin).Mul(frac))

	d.drawLine(begin, end, col, col)
	if !asPolygon {
		d.drawLine(end, p1, col, col)
		d.drawLine(end, p2, col, col)
		return
	}
	fill := d.c.Style().Fill
	d.c.SetFill(true)
	d.drawPolygon([]geom.Point{p1, end, p2})
	d.c.SetFill(fill)
}

// drawWavyLine draws a wavy line from p1 to p2. Canvases without a native
// wavy line get a zig-zag.
func (d *Drawer) drawWavyLine(p1, p2 geom.Point, col1, col2 canvas.Colour, nSegments int, vertOffset float64) {
	if w, ok := d.c.(canvas.WavyLiner); ok {
		w.DrawWavyLine(d.tr.ToDevice(p1), d.tr.ToDevice(p2), col1, col2, nSegments, vertOffset*d.tr.Scale)
		return
	}
	perp := geom.Perpendicular(p1, p2).Mul(vertOffset)
	step := p2.Sub(p1).Div(float64(nSegments))
	pts := []geom.Point{p1}
	for i := 0; i < nSegments; i++ {
		side := perp
		if i%2 == 1 {
			side = side.Neg()
		}
		pts = append(pts, p1.Add(step.Mul(float64(i)+0.5)).Add(side))
	}
	pts = append(pts, p2)

	fill := d.c.Style().Fill
	d.c.SetFill(false)
	defer d.c.SetFill(fill)
	if col1.Equal(col2) {
		d.c.SetColour(col1)
		d.drawPolygon(pts)
		return
	}
	half := len(pts) / 2
	d.c.SetColour(col1)
	d.drawPolygon(pts[:half+1])
	d.c.SetColour(col2)
	d.drawPolygon(pts[half:])
}

// drawAttachmentLine draws a wavy line of length len across p2,
// perpendicular to p1-p2.
func (d *Drawer) drawAttachmentLine(p1, p2 geom.Point, col canvas.Colour, length float64, nSegments int) {
	perp := geom.Perpendicular(p1, p2).Mul(length / 2)
	d.drawWavyLine(p2.Sub(perp), p2.Add(perp), col, col, nSegments, wavyVertOffset)
}

// drawText draws s aligned on a molecule-space point.
func (d *Drawer) drawText(s string, at geom.Point, align text.Align) {
	d.text.Aligned(s, align).Draw(d.c, d.tr.ToDevice(at))
}

// =============================================================================
// Molecule-space drawing for callers
// =============================================================================

// DrawLine draws a line between two molecule-space points, changing colour
// at the midpoint when col1 and col2 differ.
func (d *Drawer) DrawLine(p1, p2 geom.Point, col1, col2 canvas.Colour) {
	defer d.withStyle()()
	d.c.SetLineWidth(d.drawLineWidth())
	d.drawLine(p1, p2, col1, col2)
}

// DrawPolygon draws a polygon given in molecule space.
func (d *Drawer) DrawPolygon(pts []geom.Point, col canvas.Colour, fill bool) {
	defer d.withStyle()()
	d.c.SetColour(col)
	d.c.SetFill(fill)
	d.drawPolygon(pts)
}

// DrawEllipse draws the ellipse inscribed in the molecule-space box p1-p2.
func (d *Drawer) DrawEllipse(p1, p2 geom.Point, col canvas.Colour, fill bool) {
	defer d.withStyle()()
	d.c.SetColour(col)
	d.c.SetFill(fill)
	d.drawEllipse(p1, p2)
}

// DrawArc draws a circular arc between two angles in degrees.
func (d *Drawer) DrawArc(centre geom.Point, radius, ang1, ang2 float64, col canvas.Colour, fill bool) {
	defer d.withStyle()()
	d.c.SetColour(col)
	d.c.SetFill(fill)
	d.drawArc(centre, radius, radius, ang1, ang2)
}

// DrawRect draws an axis-aligned rectangle.
func (d *Drawer) DrawRect(p1, p2 geom.Point, col canvas.Colour, fill bool) {
	defer d.withStyle()()
	d.c.SetColour(col)
	d.c.SetFill(fill)
	d.drawRect(p1, p2)
}

// DrawArrow draws an arrow from begin to end. The head is frac of the
// arrow long and opens by angle radians either side.
func (d *Drawer) DrawArrow(begin, end geom.Point, col canvas.Colour, asPolygon bool, frac, angle float64) {
	defer d.withStyle()()
	d.drawArrow(begin, end, col, asPolygon, frac, angle)
}

// DrawWavyLine draws a wavy line between two molecule-space points.
func (d *Drawer) DrawWavyLine(p1, p2 geom.Point, col1, col2 canvas.Colour) {
	defer d.withStyle()()
	d.drawWavyLine(p1, p2, col1, col2, wavySegments, wavyVertOffset)
}

// DrawAttachmentLine draws a wavy attachment mark across p2.
func (d *Drawer) DrawAttachmentLine(p1, p2 geom.Point, col canvas.Colour, length float64) {
	defer d.withStyle()()
	d.drawAttachmentLine(p1, p2, col, length, wavySegments)
}

// DrawString draws marked-up text on a molecule-space point.
func (d *Drawer) DrawString(s string, at geom.Point, align text.Align, col canvas.Colour) {
	defer d.withStyle()()
	d.c.SetColour(col)
	d.drawText(s, at, align)
}
