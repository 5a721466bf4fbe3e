package geom

import "math"

// Rect is an axis-aligned box. The zero Rect is empty; Extend on an empty
// Rect starts a fresh box.
type Rect struct {
	Min, Max Point
	valid    bool
}

// NewRect returns the smallest Rect containing a and b.
func NewRect(a, b Point) Rect {
	return Rect{
		Min:   Point{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max:   Point{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
		valid: true,
	}
}

// Bounds returns the bounding box of pts.
func Bounds(pts ...Point) Rect {
	var r Rect
	for _, p := range pts {
		r = r.Extend(p)
	}
	return r
}

// Empty reports whether no point has been added to r.
func (r Rect) Empty() bool { return !r.valid }

// Extend returns r grown to contain p.
func (r Rect) Extend(p Point) Rect {
	if !r.valid {
		return Rect{Min: p, Max: p, valid: true}
	}
	r.Min.X = math.Min(r.Min.X, p.X)
	r.Min.Y = math.Min(r.Min.Y, p.Y)
	r.Max.X = math.Max(r.Max.X, p.X)
	r.Max.Y = math.Max(r.Max.Y, p.Y)
	return r
}

// Union returns the smallest Rect containing r and o.
func (r Rect) Union(o Rect) Rect {
	if !o.valid {
		return r
	}
	return r.Extend(o.Min).Extend(o.Max)
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }
func (r Rect) Centre() Point   { return Mid(r.Min, r.Max) }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return r.valid && p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Overlaps reports whether r and o share any area.
func (r Rect) Overlaps(o Rect) bool {
	if !r.valid || !o.valid {
		return false
	}
	return r.Min.X < o.Max.X && o.Min.X < r.Max.X && r.Min.Y < o.Max.Y && o.Min.Y < r.Max.Y
}

// Inset returns r shrunk by d on every side; negative d grows it.
func (r Rect) Inset(d float64) Rect {
	if !r.valid {
		return r
	}
	r.Min = r.Min.Add(Point{d, d})
	r.Max = r.Max.Sub(Point{d, d})
	return r
}

// Corners returns the four corners of r, counter-clockwise from Min.
func (r Rect) Corners() [4]Point {
	return [4]Point{r.Min, {r.Max.X, r.Min.Y}, r.Max, {r.Min.X, r.Max.Y}}
}
