package geom

import (
	"math"
	"testing"
)

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestPerpendicular(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want Point
	}{
		{"along x", Pt(0, 0), Pt(2, 0), Pt(0, 1)},
		{"along y", Pt(0, 0), Pt(0, 3), Pt(-1, 0)},
		{"diagonal", Pt(1, 1), Pt(2, 2), Pt(-math.Sqrt2/2, math.Sqrt2/2)},
		{"degenerate", Pt(1, 1), Pt(1, 1), Pt(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Perpendicular(tt.a, tt.b)
			if !Near(got, tt.want, 1e-12) {
				t.Errorf("Perpendicular() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInnerPerpendicular(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c Point
		wantY   float64
	}{
		{"bends up", Pt(0, 0), Pt(1, 0), Pt(1.5, 1), 1},
		{"bends down", Pt(0, 0), Pt(1, 0), Pt(1.5, -1), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InnerPerpendicular(tt.a, tt.b, tt.c)
			if !near(got.Y, tt.wantY, 1e-12) || !near(got.X, 0, 1e-12) {
				t.Errorf("InnerPerpendicular() = %v, want (0, %v)", got, tt.wantY)
			}
		})
	}
}

func TestSegmentsIntersect(t *testing.T) {
	tests := []struct {
		name           string
		a1, a2, b1, b2 Point
		wantOK         bool
		want           Point
	}{
		{"cross", Pt(0, 0), Pt(2, 2), Pt(0, 2), Pt(2, 0), true, Pt(1, 1)},
		{"parallel", Pt(0, 0), Pt(1, 0), Pt(0, 1), Pt(1, 1), false, Point{}},
		{"short of each other", Pt(0, 0), Pt(1, 1), Pt(3, 0), Pt(2, 1), false, Point{}},
		{"touching at end", Pt(0, 0), Pt(1, 0), Pt(1, -1), Pt(1, 1), true, Pt(1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SegmentsIntersect(tt.a1, tt.a2, tt.b1, tt.b2)
			if ok != tt.wantOK {
				t.Fatalf("SegmentsIntersect() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !Near(got, tt.want, 1e-12) {
				t.Errorf("SegmentsIntersect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSegmentIntersectsRect(t *testing.T) {
	r := NewRect(Pt(0, 0), Pt(1, 1))
	tests := []struct {
		name    string
		a, b    Point
		padding float64
		want    bool
	}{
		{"crosses", Pt(-1, 0.5), Pt(2, 0.5), 0, true},
		{"inside", Pt(0.2, 0.2), Pt(0.8, 0.8), 0, true},
		{"outside", Pt(2, 2), Pt(3, 3), 0, false},
		{"caught by padding", Pt(-1, 1.05), Pt(2, 1.05), 0.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SegmentIntersectsRect(tt.a, tt.b, r, tt.padding); got != tt.want {
				t.Errorf("SegmentIntersectsRect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClipToRect(t *testing.T) {
	r := NewRect(Pt(0.9, -0.1), Pt(1.1, 0.1))
	got := ClipToRect(Pt(0, 0), Pt(1, 0), r)
	if !Near(got, Pt(0.9, 0), 1e-12) {
		t.Errorf("ClipToRect() = %v, want (0.9, 0)", got)
	}

	miss := ClipToRect(Pt(0, 0), Pt(1, 0), NewRect(Pt(5, 5), Pt(6, 6)))
	if miss != Pt(1, 0) {
		t.Errorf("ClipToRect() on a miss = %v, want end unchanged", miss)
	}
}

func TestRect(t *testing.T) {
	var r Rect
	if !r.Empty() {
		t.Fatal("zero Rect should be empty")
	}
	r = Bounds(Pt(1, 2), Pt(-1, 5), Pt(0, 0))
	if r.Width() != 2 || r.Height() != 5 {
		t.Errorf("Bounds() = %v x %v, want 2 x 5", r.Width(), r.Height())
	}
	if c := r.Centre(); c != Pt(0, 2.5) {
		t.Errorf("Centre() = %v, want (0, 2.5)", c)
	}
	if !r.Overlaps(NewRect(Pt(0.5, 0.5), Pt(3, 3))) {
		t.Error("Overlaps() = false for overlapping rects")
	}
	if r.Overlaps(NewRect(Pt(2, 0), Pt(3, 3))) {
		t.Error("Overlaps() = true for disjoint rects")
	}
}

func TestArcPoints(t *testing.T) {
	pts := ArcPoints(Pt(0, 0), 1, 1, 0, 90)
	if len(pts) != 20 {
		t.Fatalf("len(ArcPoints) = %d, want 20", len(pts))
	}
	if !Near(pts[0], Pt(1, 0), 1e-12) {
		t.Errorf("first point = %v, want (1, 0)", pts[0])
	}
	if !Near(pts[len(pts)-1], Pt(0, 1), 1e-12) {
		t.Errorf("last point = %v, want (0, 1)", pts[len(pts)-1])
	}
	for _, p := range pts {
		if !near(p.Length(), 1, 1e-12) {
			t.Errorf("point %v is off the circle", p)
		}
	}
}

func TestClipLineToEllipse(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Point
		want   Point
	}{
		{"enters circle", Pt(-3, 0), Pt(0, 0), Pt(-1, 0)},
		{"misses", Pt(-3, 5), Pt(3, 5), Pt(3, 5)},
		{"both crossings beyond end", Pt(-5, 0), Pt(-3, 0), Pt(-3, 0)},
		{"passes through, nearest to start", Pt(-3, 0), Pt(3, 0), Pt(-1, 0)},
		{"tangent inside segment", Pt(-3, 1), Pt(3, 1), Pt(0, 1)},
		{"tangent beyond end", Pt(-3, 1), Pt(-2, 1), Pt(-2, 1)},
		{"zero length", Pt(0.5, 0), Pt(0.5, 0), Pt(0.5, 0)},
		{"zero length outside", Pt(4, 4), Pt(4, 4), Pt(4, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClipLineToEllipse(tt.p1, tt.p2, Pt(0, 0), 1, 1)
			if !Near(got, tt.want, 1e-9) {
				t.Errorf("ClipLineToEllipse() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := ClipLineToEllipse(Pt(-3, 0), Pt(0, 0), Pt(0, 0), 0, 1); got != Pt(0, 0) {
		t.Errorf("zero radius should leave the end alone, got %v", got)
	}
}

func TestHanddrawnLineDeterministic(t *testing.T) {
	a := HanddrawnLine(Pt(0, 0), Pt(100, 0), 40, true, true)
	b := HanddrawnLine(Pt(0, 0), Pt(100, 0), 40, true, true)
	if len(a) != len(b) || len(a) < 3 {
		t.Fatalf("len = %d and %d, want equal and at least 3", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a[i], b[i])
		}
	}
	c := HanddrawnLine(Pt(0, 0), Pt(100, 0), 40, false, false)
	if c[0] != Pt(0, 0) || c[len(c)-1] != Pt(100, 0) {
		t.Errorf("unshifted ends moved: %v, %v", c[0], c[len(c)-1])
	}
}
