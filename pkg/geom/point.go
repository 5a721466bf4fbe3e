package geom

import "math"

// Point is a 2D coordinate. Whether it is in molecule space or device space
// is decided by the caller; nothing in this package converts between them.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(f float64) Point   { return Point{p.X * f, p.Y * f} }
func (p Point) Div(f float64) Point   { return Point{p.X / f, p.Y / f} }
func (p Point) Neg() Point            { return Point{-p.X, -p.Y} }
func (p Point) Dot(q Point) float64   { return p.X*q.X + p.Y*q.Y }
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// LengthSq returns the squared Euclidean length.
func (p Point) LengthSq() float64 { return p.X*p.X + p.Y*p.Y }

// Length returns the Euclidean length.
func (p Point) Length() float64 { return math.Sqrt(p.LengthSq()) }

// Normalized returns the unit vector in the direction of p. The zero
// vector is returned unchanged.
func (p Point) Normalized() Point {
	l := p.Length()
	if l == 0 {
		return p
	}
	return p.Div(l)
}

// DirectionTo returns the unit vector from p to q.
func (p Point) DirectionTo(q Point) Point { return q.Sub(p).Normalized() }

// Rotate returns p rotated by theta radians about the origin.
func (p Point) Rotate(theta float64) Point {
	s, c := math.Sincos(theta)
	return Point{p.X*c - p.Y*s, p.X*s + p.Y*c}
}

// Mid returns the midpoint of a and b.
func Mid(a, b Point) Point { return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2} }

// Lerp returns a + (b-a)*t.
func Lerp(a, b Point, t float64) Point { return a.Add(b.Sub(a).Mul(t)) }

// Dist returns the distance between a and b.
func Dist(a, b Point) float64 { return b.Sub(a).Length() }

// Perpendicular returns the unit vector at 90 degrees to the direction a->b.
// It is the zero vector when a == b.
func Perpendicular(a, b Point) Point {
	d := b.Sub(a)
	return Point{-d.Y, d.X}.Normalized()
}

// InnerPerpendicular returns the perpendicular to a->b, oriented towards
// the side on which the path a->b->c bends.
func InnerPerpendicular(a, b, c Point) Point {
	perp := Perpendicular(a, b)
	bend := a.Sub(b).Sub(b.Sub(c))
	if perp.Dot(bend) < 0 {
		return perp.Neg()
	}
	return perp
}

// Centroid returns the mean of pts, or the origin for an empty slice.
func Centroid(pts []Point) Point {
	var c Point
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Div(float64(len(pts)))
}

// Near reports whether a and b are within tol of each other on both axes.
func Near(a, b Point, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}
