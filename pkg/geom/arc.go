package geom

import "math"

// ArcPoints samples the elliptical arc about centre from ang1 to ang2
// degrees (anticlockwise in a y-up frame) in steps of at most 5 degrees.
func ArcPoints(centre Point, rx, ry, ang1, ang2 float64) []Point {
	steps := 1 + int((ang2-ang1)/5.0)
	incr := (ang2 - ang1) / float64(steps) * math.Pi / 180.0
	start := ang1 * math.Pi / 180.0
	pts := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		s, c := math.Sincos(start + float64(i)*incr)
		pts = append(pts, Point{centre.X + rx*c, centre.Y + ry*s})
	}
	return pts
}

// ClipLineToEllipse returns p2 moved to where the line p1->p2 meets the
// ellipse with the given centre and radii. Of two crossings the one nearer
// p1 is used, provided it lies between p1 and p2. p2 is returned unchanged
// when the line misses the ellipse, when both crossings fall outside the
// segment, when either radius is effectively zero, or when p1 and p2
// coincide.
func ClipLineToEllipse(p1, p2, centre Point, rx, ry float64) Point {
	if rx < 1.0e-6 || ry < 1.0e-6 {
		return p2
	}
	a := p1.Sub(centre)
	b := p2.Sub(centre)
	d := b.Sub(a)
	a2, b2 := rx*rx, ry*ry

	qa := d.X*d.X/a2 + d.Y*d.Y/b2
	if qa < 1.0e-12 {
		return p2
	}
	qb := 2*a.X*d.X/a2 + 2*a.Y*d.Y/b2
	qc := a.X*a.X/a2 + a.Y*a.Y/b2 - 1
	at := func(t float64) Point { return a.Add(d.Mul(t)).Add(centre) }

	disc := qb*qb - 4*qa*qc
	switch {
	case disc < 0:
		return p2
	case math.Abs(disc) < 1.0e-6:
		if t := -qb / (2 * qa); t >= 0 && t <= 1 {
			return at(t)
		}
		return p2
	}
	rt := math.Sqrt(disc)
	t1 := (-qb + rt) / (2 * qa)
	t2 := (-qb - rt) / (2 * qa)
	ok1 := t1 >= 0 && t1 <= 1
	ok2 := t2 >= 0 && t2 <= 1
	switch {
	case ok1 && ok2:
		return at(math.Min(t1, t2))
	case ok1:
		return at(t1)
	case ok2:
		return at(t2)
	}
	return p2
}
