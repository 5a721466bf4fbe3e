package moldraw

import "github.com/FabioUrbina/rdkit/pkg/geom"

// AtomPositions returns the device position of every atom drawn so far,
// one slice per panel in drawing order. Panels left empty (a nil molecule
// or one without coordinates) have a nil slice.
func (d *Drawer) AtomPositions() [][]geom.Point {
	out := make([][]geom.Point, len(d.panels))
	for i, p := range d.panels {
		if p != nil {
			out[i] = append([]geom.Point(nil), p...)
		}
	}
	return out
}

// Metadata describes a finished drawing for clients that want to map
// pixels back to atoms.
type Metadata struct {
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Scale  float64        `json:"scale"`
	Atoms  [][]geom.Point `json:"atoms"`
}

// Metadata returns the canvas size, the final scale and the atom positions.
func (d *Drawer) Metadata() Metadata {
	return Metadata{
		Width:  d.c.Width(),
		Height: d.c.Height(),
		Scale:  d.tr.Scale,
		Atoms:  d.AtomPositions(),
	}
}
