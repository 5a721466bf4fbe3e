package geom

// SegmentsIntersect reports whether segment a1-a2 crosses segment b1-b2,
// and if so where. Parallel segments never intersect.
func SegmentsIntersect(a1, a2, b1, b2 Point) (Point, bool) {
	s1 := a2.Sub(a1)
	s2 := b2.Sub(b1)

	d := -s2.X*s1.Y + s1.X*s2.Y
	if d == 0 {
		return Point{}, false
	}
	s := (-s1.Y*(a1.X-b1.X) + s1.X*(a1.Y-b1.Y)) / d
	t := (s2.X*(a1.Y-b1.Y) - s2.Y*(a1.X-b1.X)) / d

	if s >= 0 && s <= 1 && t >= 0 && t <= 1 {
		return a1.Add(s1.Mul(t)), true
	}
	return Point{}, false
}

// SegmentIntersectsRect reports whether segment a-b touches r grown by
// padding, including the case where the segment lies wholly inside.
func SegmentIntersectsRect(a, b Point, r Rect, padding float64) bool {
	if r.Empty() {
		return false
	}
	r = r.Inset(-padding)
	if r.Contains(a) && r.Contains(b) {
		return true
	}
	c := r.Corners()
	for i := range c {
		if _, ok := SegmentsIntersect(a, b, c[i], c[(i+1)%4]); ok {
			return true
		}
	}
	return false
}

// ClipToRect moves end back along the segment start->end to the first
// point where it meets r, if the segment enters r. It returns end
// unchanged when there is no crossing.
func ClipToRect(start, end Point, r Rect) Point {
	if r.Empty() {
		return end
	}
	best, found := end, false
	bestD := 0.0
	c := r.Corners()
	for i := range c {
		ip, ok := SegmentsIntersect(start, end, c[i], c[(i+1)%4])
		if !ok {
			continue
		}
		if d := ip.Sub(start).LengthSq(); !found || d < bestD {
			best, bestD, found = ip, d, true
		}
	}
	return best
}
