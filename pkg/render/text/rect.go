package text

import "github.com/FabioUrbina/rdkit/pkg/geom"

// StringRect is the box around one drawn glyph, relative to the anchor
// of the string it belongs to, in a y-up frame.
type StringRect struct {
	Trans   geom.Point `json:"trans"`    // glyph origin (baseline left) from the anchor
	Offset  geom.Point `json:"offset"`   // extra displacement applied after layout
	GCentre geom.Point `json:"g_centre"` // box centre from the glyph origin
	Width   float64    `json:"width"`
	Height  float64    `json:"height"`
	YShift  float64    `json:"y_shift"` // sub/superscript baseline shift, included in Trans
}

// Centre returns the box centre relative to the anchor.
func (r StringRect) Centre() geom.Point {
	return r.Trans.Add(r.Offset).Add(r.GCentre)
}

// Bounds returns the box placed at anchor and grown by padding.
func (r StringRect) Bounds(anchor geom.Point, padding float64) geom.Rect {
	c := anchor.Add(r.Centre())
	h := geom.Pt(r.Width/2+padding, r.Height/2+padding)
	return geom.NewRect(c.Sub(h), c.Add(h))
}

// Scaled returns r with every length multiplied by f.
func (r StringRect) Scaled(f float64) StringRect {
	r.Trans = r.Trans.Mul(f)
	r.Offset = r.Offset.Mul(f)
	r.GCentre = r.GCentre.Mul(f)
	r.Width *= f
	r.Height *= f
	r.YShift *= f
	return r
}

// RectsIntersect reports whether any box of a placed at aAt overlaps any
// box of b placed at bAt, with each box grown by padding.
func RectsIntersect(a []StringRect, aAt geom.Point, b []StringRect, bAt geom.Point, padding float64) bool {
	for _, ra := range a {
		ba := ra.Bounds(aAt, padding)
		for _, rb := range b {
			if ba.Overlaps(rb.Bounds(bAt, padding)) {
				return true
			}
		}
	}
	return false
}

// LineIntersectsRects reports whether segment p1-p2 touches any of the
// boxes placed at anchor.
func LineIntersectsRects(rects []StringRect, anchor, p1, p2 geom.Point, padding float64) bool {
	for _, r := range rects {
		if LineIntersectsRect(r.Bounds(anchor, 0), p1, p2, padding) {
			return true
		}
	}
	return false
}

// LineIntersectsRect reports whether segment p1-p2 crosses an edge of r
// grown by padding, or lies wholly inside it.
func LineIntersectsRect(r geom.Rect, p1, p2 geom.Point, padding float64) bool {
	return geom.SegmentIntersectsRect(p1, p2, r, padding)
}
