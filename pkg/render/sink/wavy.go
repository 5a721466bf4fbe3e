package sink

import (
	"github.com/FabioUrbina/rdkit/pkg/geom"
)

// waveSegment is one quadratic curve of a wavy line.
type waveSegment struct {
	Ctrl, End geom.Point
}

// wave splits p1-p2 into n quadratic segments whose control points sit
// alternately off to either side by off.
func wave(p1, p2 geom.Point, n int, off float64) []waveSegment {
	n = max(n, 1)
	step := p2.Sub(p1).Div(float64(n))
	perp := geom.Perpendicular(p1, p2).Mul(off)
	segs := make([]waveSegment, n)
	for i := range n {
		a := p1.Add(step.Mul(float64(i)))
		side := perp
		if i%2 == 1 {
			side = perp.Neg()
		}
		segs[i] = waveSegment{
			Ctrl: a.Add(step.Mul(0.5)).Add(side),
			End:  a.Add(step),
		}
	}
	return segs
}
