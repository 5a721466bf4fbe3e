package moldraw

import "github.com/FabioUrbina/rdkit/pkg/geom"

// Transform maps molecule space (y up, arbitrary units) to device space
// (y down, pixels) for one panel.
type Transform struct {
	Scale          float64 `json:"scale"`
	XMin, YMin     float64 `json:"-"`
	XRange, YRange float64 `json:"-"`
	XTrans, YTrans float64 `json:"-"`

	// Offset of the panel within the canvas.
	XOffset, YOffset float64 `json:"-"`

	PanelW, PanelH float64 `json:"-"`
	LegendH        float64 `json:"-"`
}

// identity returns the transform used while extracting a molecule: unit
// scale, no translation.
func identity(panelW, panelH float64) Transform {
	return Transform{Scale: 1, PanelW: panelW, PanelH: panelH, XRange: 1, YRange: 1}
}

// ToDevice converts a molecule-space point to device space.
func (t *Transform) ToDevice(p geom.Point) geom.Point {
	x := t.Scale*(p.X-t.XMin+t.XTrans) + t.XOffset
	y := t.PanelH - t.LegendH - t.Scale*(p.Y-t.YMin+t.YTrans) + t.YOffset
	return geom.Pt(x, y)
}

// ToMolecule converts a device-space point to molecule space.
func (t *Transform) ToMolecule(d geom.Point) geom.Point {
	x := (d.X-t.XOffset)/t.Scale + t.XMin - t.XTrans
	y := t.YMin - t.YTrans - ((d.Y-t.YOffset)-t.PanelH+t.LegendH)/t.Scale
	return geom.Pt(x, y)
}

// drawHeight is the panel height available to the molecule.
func (t *Transform) drawHeight() float64 { return t.PanelH - t.LegendH }

// centrePicture sets the translation that puts the middle of the
// molecule's box at the middle of a width x height area.
func (t *Transform) centrePicture(width, height float64) {
	xMid := t.XMin + t.XRange/2
	yMid := t.YMin + t.YRange/2
	midX := t.Scale * (xMid - t.XMin)
	midY := height - t.Scale*(yMid-t.YMin)
	t.XTrans = (width/2 - midX) / t.Scale
	t.YTrans = (midY - height/2) / t.Scale
}
