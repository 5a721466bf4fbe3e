package geom

import (
	"math"
	"math/rand/v2"
)

// HanddrawnLine returns a wobbly polyline approximating the segment
// a->b in device space, for the comic drawing style. scale is the number of
// device units per molecule unit and sets the size of the wobble.
// shiftBegin and shiftEnd jitter the end points themselves.
//
// The jitter is seeded from the end points, so the same segment always
// wobbles the same way.
func HanddrawnLine(a, b Point, scale float64, shiftBegin, shiftEnd bool) []Point {
	seed := math.Float64bits(a.X*31+a.Y) ^ math.Float64bits(b.X*17+b.Y)
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))

	amp := 0.015 * scale
	jitter := func(p Point) Point {
		return Point{p.X + (rng.Float64()-0.5)*amp, p.Y + (rng.Float64()-0.5)*amp}
	}

	length := Dist(a, b)
	segs := max(2, int(length/(0.3*math.Max(scale, 1))))
	perp := Perpendicular(a, b)

	pts := make([]Point, 0, segs+1)
	start := a
	if shiftBegin {
		start = jitter(a)
	}
	pts = append(pts, start)
	for i := 1; i < segs; i++ {
		p := Lerp(a, b, float64(i)/float64(segs))
		pts = append(pts, p.Add(perp.Mul((rng.Float64()-0.5)*amp)))
	}
	end := b
	if shiftEnd {
		end = jitter(b)
	}
	return append(pts, end)
}
