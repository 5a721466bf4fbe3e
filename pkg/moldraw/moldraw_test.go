package moldraw

import (
	"math"
	"testing"

	"github.com/FabioUrbina/rdkit/pkg/errors"
	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/mol"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
	"github.com/FabioUrbina/rdkit/pkg/render/text"
)

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func nearPt(a, b geom.Point, tol float64) bool {
	return near(a.X, b.X, tol) && near(a.Y, b.Y, tol)
}

func newTestDrawer(t *testing.T, w, h float64, opts ...Option) (*Drawer, *canvas.Recorder) {
	t.Helper()
	rec := canvas.NewRecorder(w, h)
	opts = append([]Option{WithMeasurer(text.ApproxMeasurer{})}, opts...)
	d, err := New(rec, -1, -1, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d, rec
}

func carbons(n int) []mol.Atom {
	atoms := make([]mol.Atom, n)
	for i := range atoms {
		atoms[i] = mol.Atom{Element: 6}
	}
	return atoms
}

func ethane() *mol.Molecule {
	return &mol.Molecule{
		Name:   "ethane",
		Atoms:  carbons(2),
		Bonds:  []mol.Bond{{Begin: 0, End: 1, Type: mol.BondSingle}},
		Coords: []geom.Point{{X: 0, Y: 0}, {X: 1.5, Y: 0}},
	}
}

// benzene is a Kekulé ring with double bonds 0, 2 and 4.
func benzene() *mol.Molecule {
	m := &mol.Molecule{Name: "benzene", Atoms: carbons(6)}
	for i := 0; i < 6; i++ {
		m.Atoms[i].NumHs = 1
		ang := (30 + 60*float64(i)) * math.Pi / 180
		m.Coords = append(m.Coords, geom.Pt(1.5*math.Cos(ang), 1.5*math.Sin(ang)))
		typ := mol.BondSingle
		if i%2 == 0 {
			typ = mol.BondDouble
		}
		m.Bonds = append(m.Bonds, mol.Bond{Begin: i, End: (i + 1) % 6, Type: typ, Aromatic: true})
	}
	return m
}

func lineOps(rec *canvas.Recorder, bi int) []canvas.Op {
	return rec.Filter(func(op canvas.Op) bool {
		return op.Kind == canvas.OpLine && op.Style.Tag.Kind == canvas.TagBond && op.Style.Tag.Index == bi
	})
}

func TestTransformRoundTrip(t *testing.T) {
	tr := Transform{
		Scale: 37.5, XMin: -1.2, YMin: -2.5, XRange: 4, YRange: 5,
		XTrans: 0.3, YTrans: -0.2, XOffset: 300, YOffset: 150,
		PanelW: 300, PanelH: 300, LegendH: 15,
	}
	tests := []struct {
		name string
		p    geom.Point
	}{
		{"origin", geom.Pt(0, 0)},
		{"corner", geom.Pt(-1.2, -2.5)},
		{"positive", geom.Pt(2.75, 1.3)},
		{"far", geom.Pt(-40, 125)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tr.ToMolecule(tr.ToDevice(tt.p))
			if !nearPt(got, tt.p, 1e-9) {
				t.Errorf("ToMolecule(ToDevice(%v)) = %v", tt.p, got)
			}
		})
	}
}

func TestTransformFlipsY(t *testing.T) {
	tr := identity(100, 100)
	lo, hi := tr.ToDevice(geom.Pt(0, 0)), tr.ToDevice(geom.Pt(0, 1))
	if hi.Y >= lo.Y {
		t.Errorf("higher molecule y should be higher on screen: %v vs %v", hi, lo)
	}
}

func TestDoubleBondLines(t *testing.T) {
	// trans-2-butene: the double bond joins two atoms of degree 2.
	m := &mol.Molecule{
		Atoms: carbons(4),
		Bonds: []mol.Bond{
			{Begin: 0, End: 1, Type: mol.BondSingle},
			{Begin: 1, End: 2, Type: mol.BondDouble},
			{Begin: 2, End: 3, Type: mol.BondSingle},
		},
		Coords: []geom.Point{{X: 0, Y: 0}, {X: 1.3, Y: 0.75}, {X: 2.6, Y: 0}, {X: 3.9, Y: 0.75}},
	}
	const sep = 0.3
	c1, c2 := m.Coords[1], m.Coords[2]
	outer, inner := doubleBondLines(m, 1, c1, c2, m.Coords, sep)

	if outer.a != c1 || outer.b != c2 {
		t.Errorf("outer line = %v, want the bond itself", outer)
	}
	bv := c2.Sub(c1)
	iv := inner.b.Sub(inner.a)
	if !near(bv.Cross(iv), 0, 1e-9) {
		t.Errorf("lines not parallel: cross = %v", bv.Cross(iv))
	}
	dist := math.Abs(bv.Cross(inner.a.Sub(c1))) / bv.Length()
	if !near(dist, sep, 1e-9) {
		t.Errorf("offset = %v, want %v", dist, sep)
	}
	if want := 0.7 * bv.Length(); !near(iv.Length(), want, 1e-9) {
		t.Errorf("inner length = %v, want %v", iv.Length(), want)
	}
	if start := inner.a.Sub(c1).Dot(bv) / bv.Length(); !near(start, 0.15*bv.Length(), 1e-9) {
		t.Errorf("inner line starts %v along the bond, want %v", start, 0.15*bv.Length())
	}
}

func TestDoubleBondTerminalIsCentred(t *testing.T) {
	m := &mol.Molecule{
		Atoms:  []mol.Atom{{Element: 6}, {Element: 8}},
		Bonds:  []mol.Bond{{Begin: 0, End: 1, Type: mol.BondDouble}},
		Coords: []geom.Point{{X: 0, Y: 0}, {X: 1.5, Y: 0}},
	}
	l1, l2 := doubleBondLines(m, 0, m.Coords[0], m.Coords[1], m.Coords, 0.3)
	if !near(l1.a.Y, 0.15, 1e-9) || !near(l2.a.Y, -0.15, 1e-9) {
		t.Errorf("lines at y = %v and %v, want +-0.15", l1.a.Y, l2.a.Y)
	}
	if !near(l1.b.X-l1.a.X, 1.5, 1e-9) {
		t.Errorf("terminal double bond lines should not be truncated")
	}
}

func TestWedgeNarrowsAtStereocentre(t *testing.T) {
	build := func(begin, end int) *mol.Molecule {
		atoms := carbons(4)
		atoms[0].Chiral = mol.ChiralCW
		return &mol.Molecule{
			Atoms: atoms,
			Bonds: []mol.Bond{
				{Begin: begin, End: end, Type: mol.BondSingle, Dir: mol.DirBeginWedge},
				{Begin: 0, End: 2, Type: mol.BondSingle},
				{Begin: 0, End: 3, Type: mol.BondSingle},
			},
			Coords: []geom.Point{{X: 0, Y: 0}, {X: 1.5, Y: 0}, {X: -0.75, Y: 1.3}, {X: -0.75, Y: -1.3}},
		}
	}
	tests := []struct {
		name       string
		begin, end int
	}{
		{"stereocentre first", 0, 1},
		{"stereocentre last", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, rec := newTestDrawer(t, 300, 300)
			if err := d.DrawMolecule(build(tt.begin, tt.end), "", nil); err != nil {
				t.Fatalf("DrawMolecule() error = %v", err)
			}
			pos := d.AtomPositions()[0]
			polys := rec.Filter(func(op canvas.Op) bool {
				return op.Kind == canvas.OpPolygon && op.Style.Tag.Kind == canvas.TagBond && op.Style.Tag.Index == 0
			})
			if len(polys) != 1 || len(polys[0].Points) != 3 {
				t.Fatalf("wedge drawn as %d polygons, want one triangle", len(polys))
			}
			pts := polys[0].Points
			if !nearPt(pts[0], pos[0], 1e-6) {
				t.Errorf("wedge apex at %v, want stereocentre %v", pts[0], pos[0])
			}
			if mid := geom.Mid(pts[1], pts[2]); !nearPt(mid, pos[1], 1e-6) {
				t.Errorf("wide end centred at %v, want %v", mid, pos[1])
			}
			want := 0.3 * d.Scale()
			if d.Scale() > 40 {
				want *= 0.6
			}
			if got := geom.Dist(pts[1], pts[2]); !near(got, want, 1e-6) {
				t.Errorf("wide end = %v px, want %v", got, want)
			}
			if !polys[0].Style.Fill {
				t.Error("solid wedge should be filled")
			}
		})
	}
}

func TestHashedWedgeDashCount(t *testing.T) {
	m := ethane()
	m.Atoms[0].Chiral = mol.ChiralCCW
	m.Bonds[0].Dir = mol.DirBeginDash
	d, rec := newTestDrawer(t, 300, 300)
	if err := d.DrawMolecule(m, "", nil); err != nil {
		t.Fatalf("DrawMolecule() error = %v", err)
	}
	if n := len(lineOps(rec, 0)); n < 3 || n > 6 {
		t.Errorf("hashed wedge has %d dashes, want 3 to 6", n)
	}
}

func TestScaleIsIdempotent(t *testing.T) {
	m := benzene()
	m.Atoms[0] = mol.Atom{Element: 7, Note: "amine"}
	d, _ := newTestDrawer(t, 400, 300)
	ctx, release, err := d.setupDrawMolecule(m)
	if err != nil {
		t.Fatalf("setupDrawMolecule() error = %v", err)
	}
	defer release()

	first := d.Transform()
	d.calculateScale(ctx, d.tr.PanelW, d.tr.drawHeight())
	second := d.Transform()
	if !near(first.Scale, second.Scale, scaleTolerance) {
		t.Errorf("scale changed from %v to %v", first.Scale, second.Scale)
	}
	if !near(first.XTrans, second.XTrans, scaleTolerance) || !near(first.YTrans, second.YTrans, scaleTolerance) {
		t.Errorf("translation changed from (%v, %v) to (%v, %v)",
			first.XTrans, first.YTrans, second.XTrans, second.YTrans)
	}
}

func TestTwoAtomsFitSymmetrically(t *testing.T) {
	d, _ := newTestDrawer(t, 300, 300)
	if err := d.DrawMolecule(ethane(), "", nil); err != nil {
		t.Fatalf("DrawMolecule() error = %v", err)
	}
	pos := d.AtomPositions()
	if len(pos) != 1 || len(pos[0]) != 2 {
		t.Fatalf("AtomPositions() = %v, want one panel of two atoms", pos)
	}
	a, b := pos[0][0], pos[0][1]
	for _, p := range []geom.Point{a, b} {
		if p.X < 0 || p.X > 300 || p.Y < 0 || p.Y > 300 {
			t.Errorf("atom at %v is off the canvas", p)
		}
	}
	if !near(a.X, 300-b.X, 1e-6) {
		t.Errorf("margins differ: left %v, right %v", a.X, 300-b.X)
	}
	if !near(a.Y, 150, 1e-6) || !near(b.Y, 150, 1e-6) {
		t.Errorf("atoms at y = %v, %v, want 150", a.Y, b.Y)
	}
	// Default padding is 5% of the range on each side.
	if want := 300 / 1.65; !near(d.Scale(), want, 1e-6) {
		t.Errorf("Scale() = %v, want %v", d.Scale(), want)
	}
}

func TestBenzeneInnerLines(t *testing.T) {
	m := benzene()
	d, rec := newTestDrawer(t, 300, 300)
	if err := d.DrawMolecule(m, "", nil); err != nil {
		t.Fatalf("DrawMolecule() error = %v", err)
	}
	pos := d.AtomPositions()[0]
	centre := geom.Centroid(pos)
	for bi, b := range m.Bonds {
		if b.Type != mol.BondDouble {
			continue
		}
		bondLen := geom.Dist(pos[b.Begin], pos[b.End])
		lines := lineOps(rec, bi)
		if len(lines) != 2 {
			t.Fatalf("bond %d drawn with %d lines, want 2", bi, len(lines))
		}
		full, inner := lines[0], lines[1]
		if got := geom.Dist(full.Points[0], full.Points[1]); !near(got, bondLen, 1e-6) {
			t.Errorf("bond %d: full line %v, want %v", bi, got, bondLen)
		}
		if got := geom.Dist(inner.Points[0], inner.Points[1]); got > 0.85*bondLen {
			t.Errorf("bond %d: inner line %v longer than 0.85 x %v", bi, got, bondLen)
		}
		fullMid := geom.Mid(full.Points[0], full.Points[1])
		innerMid := geom.Mid(inner.Points[0], inner.Points[1])
		if geom.Dist(innerMid, centre) >= geom.Dist(fullMid, centre) {
			t.Errorf("bond %d: second line is outside the ring", bi)
		}
	}
}

func TestAtomNoteSkipsInnerRadiusWithSymbol(t *testing.T) {
	m := &mol.Molecule{
		Atoms:  []mol.Atom{{Element: 6}, {Element: 8, Note: "x"}},
		Bonds:  []mol.Bond{{Begin: 0, End: 1, Type: mol.BondSingle}},
		Coords: []geom.Point{{X: 0, Y: 0}, {X: 1.5, Y: 0}},
	}
	d, _ := newTestDrawer(t, 300, 300)
	ctx, release, err := d.setupDrawMolecule(m)
	if err != nil {
		t.Fatalf("setupDrawMolecule() error = %v", err)
	}
	defer release()
	if ctx.labels[1].symbol == "" {
		t.Fatal("oxygen should have a symbol")
	}
	if len(ctx.annotations) != 1 {
		t.Fatalf("got %d annotations, want 1", len(ctx.annotations))
	}
	r := geom.Dist(ctx.annotations[0].pos, ctx.coords[1])
	if r < 2*noteRadiusStep-1e-9 {
		t.Errorf("note placed at radius %v, want at least %v", r, 2*noteRadiusStep)
	}
}

func TestAnnotationsDoNotOverlap(t *testing.T) {
	m := ethane()
	m.Atoms[0].Note = "first"
	m.Atoms[1].Note = "second"
	m.Bonds[0].Note = "bond"
	o := DefaultOptions()
	o.AddAtomIndices = true
	d, _ := newTestDrawer(t, 300, 300, WithOptions(o))
	ctx, release, err := d.setupDrawMolecule(m)
	if err != nil {
		t.Fatalf("setupDrawMolecule() error = %v", err)
	}
	defer release()
	if len(ctx.annotations) != 3 {
		t.Fatalf("got %d annotations, want 3", len(ctx.annotations))
	}
	for i := range ctx.annotations {
		for j := i + 1; j < len(ctx.annotations); j++ {
			a, b := &ctx.annotations[i], &ctx.annotations[j]
			if text.RectsIntersect(a.rects(), a.pos, b.rects(), b.pos, 0) {
				t.Errorf("%q overlaps %q", a.text, b.text)
			}
		}
	}
	if ctx.annotations[0].text != "0,first" {
		t.Errorf("atom note = %q, want index prefix", ctx.annotations[0].text)
	}
}

func TestNoteStartAngle(t *testing.T) {
	m := ethane()
	ctx := &renderContext{mol: m, coords: m.Coords, labels: make([]atomLabel, 2)}
	tests := []struct {
		name   string
		symbol string
		want   float64
	}{
		{"unlabelled turns off the bond", "", -math.Pi / 2},
		{"labelled points away from the bond", "O", math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx.labels[0].symbol = tt.symbol
			got := noteStartAngle(ctx, 0)
			if !near(math.Cos(got), math.Cos(tt.want), 1e-9) || !near(math.Sin(got), math.Sin(tt.want), 1e-9) {
				t.Errorf("noteStartAngle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPreconditions(t *testing.T) {
	badVariable := ethane()
	badVariable.Atoms[0].Element = 0
	badVariable.Bonds[0].EndPoints = []int{7}

	tests := []struct {
		name string
		draw func(d *Drawer) error
	}{
		{"nil molecule", func(d *Drawer) error { return d.DrawMolecule(nil, "", nil) }},
		{"highlight atom out of range", func(d *Drawer) error {
			return d.DrawMolecule(ethane(), "", &Highlights{Atoms: []int{5}})
		}},
		{"highlight bond out of range", func(d *Drawer) error {
			return d.DrawMolecule(ethane(), "", &Highlights{Atoms: []int{0}, Bonds: []int{3}})
		}},
		{"multi highlight bond out of range", func(d *Drawer) error {
			return d.DrawMoleculeWithHighlights(ethane(), "", &MultiHighlights{
				Bonds: map[int][]canvas.Colour{9: {canvas.Black}},
			})
		}},
		{"legend count mismatch", func(d *Drawer) error {
			return d.DrawMolecules([]*mol.Molecule{ethane(), ethane()}, []string{"one"}, nil)
		}},
		{"highlight count mismatch", func(d *Drawer) error {
			return d.DrawMolecules([]*mol.Molecule{ethane()}, nil, []*Highlights{nil, nil})
		}},
		{"bad variation point", func(d *Drawer) error { return d.DrawMolecule(badVariable, "", nil) }},
		{"nil reaction", func(d *Drawer) error { return d.DrawReaction(nil, false, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, rec := newTestDrawer(t, 300, 300)
			err := tt.draw(d)
			if !errors.Is(err, errors.ErrCodePrecondition) {
				t.Fatalf("error = %v, want %s", err, errors.ErrCodePrecondition)
			}
			if n := len(rec.Ops()); n != 0 {
				t.Errorf("%d ops drawn after a contract violation", n)
			}
		})
	}
}

func TestNewRejectsZeroPanel(t *testing.T) {
	_, err := New(canvas.NewRecorder(300, 300), 0, 300)
	if !errors.Is(err, errors.ErrCodePrecondition) {
		t.Errorf("New() error = %v, want %s", err, errors.ErrCodePrecondition)
	}
}

func TestInvalidMolecule(t *testing.T) {
	m := ethane()
	m.Bonds[0].End = 4
	d, _ := newTestDrawer(t, 300, 300)
	if err := d.DrawMolecule(m, "", nil); !errors.Is(err, errors.ErrCodeInvalidMolecule) {
		t.Errorf("DrawMolecule() error = %v, want %s", err, errors.ErrCodeInvalidMolecule)
	}
}

func TestNoCoordinatesDrawsNothing(t *testing.T) {
	m := ethane()
	m.Coords = nil
	d, rec := newTestDrawer(t, 300, 300)
	if err := d.DrawMolecule(m, "", nil); err != nil {
		t.Fatalf("DrawMolecule() error = %v", err)
	}
	if n := len(rec.Ops()); n != 0 {
		t.Errorf("got %d ops, want none", n)
	}
	if pos := d.AtomPositions(); len(pos) != 1 || pos[0] != nil {
		t.Errorf("AtomPositions() = %v, want one empty panel", pos)
	}
}

func TestLegendHeight(t *testing.T) {
	tests := []struct {
		name    string
		legend  string
		panelH  float64
		withMin bool
		want    float64
	}{
		{"no legend", "", 300, true, 0},
		{"minimum", "x", 300, true, 20},
		{"no minimum", "x", 300, false, 15},
		{"tall panel", "x", 1000, true, 50},
		{"whole pixels", "x", 410, false, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := legendHeight(tt.legend, tt.panelH, tt.withMin); got != tt.want {
				t.Errorf("legendHeight() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLegendDrawnInStrip(t *testing.T) {
	d, rec := newTestDrawer(t, 300, 300)
	if err := d.DrawMolecule(ethane(), "ethane\nC2H6", nil); err != nil {
		t.Fatalf("DrawMolecule() error = %v", err)
	}
	ops := rec.Filter(func(op canvas.Op) bool { return op.Style.Tag.Kind == canvas.TagLegend })
	if len(ops) != len("ethane")+len("C2H6") {
		t.Fatalf("got %d legend glyphs, want %d", len(ops), len("ethane")+len("C2H6"))
	}
	for _, op := range ops {
		if op.Points[0].Y < 300-minLegendHeight-1e-6 {
			t.Errorf("legend glyph %q at y = %v, above the legend strip", op.Text, op.Points[0].Y)
		}
	}
	for _, p := range d.AtomPositions()[0] {
		if p.Y > 300-minLegendHeight {
			t.Errorf("atom at %v is inside the legend strip", p)
		}
	}
}

func TestDrawMoleculesGrid(t *testing.T) {
	rec := canvas.NewRecorder(600, 300)
	d, err := New(rec, 300, 300, WithMeasurer(text.ApproxMeasurer{}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	big := ethane()
	big.Coords[1] = geom.Pt(3, 0)
	if err := d.DrawMolecules([]*mol.Molecule{ethane(), big}, []string{"a", "b"}, nil); err != nil {
		t.Fatalf("DrawMolecules() error = %v", err)
	}
	pos := d.AtomPositions()
	if len(pos) != 2 {
		t.Fatalf("got %d panels, want 2", len(pos))
	}
	for _, p := range pos[0] {
		if p.X < 0 || p.X > 300 {
			t.Errorf("first panel atom at %v", p)
		}
	}
	for _, p := range pos[1] {
		if p.X < 300 || p.X > 600 {
			t.Errorf("second panel atom at %v", p)
		}
	}
	// One scale for both panels: bond lengths keep their ratio.
	l0 := geom.Dist(pos[0][0], pos[0][1])
	l1 := geom.Dist(pos[1][0], pos[1][1])
	if !near(l1, 2*l0, 1e-6) {
		t.Errorf("bond lengths %v and %v, want ratio 2", l0, l1)
	}
}

func TestDrawMoleculesNilEntry(t *testing.T) {
	rec := canvas.NewRecorder(600, 300)
	d, err := New(rec, 300, 300, WithMeasurer(text.ApproxMeasurer{}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := d.DrawMolecules([]*mol.Molecule{nil, ethane()}, nil, nil); err != nil {
		t.Fatalf("DrawMolecules() error = %v", err)
	}
	pos := d.AtomPositions()
	if len(pos) != 2 || pos[0] != nil || len(pos[1]) != 2 {
		t.Errorf("AtomPositions() = %v", pos)
	}
}

func TestMultiHighlightArcs(t *testing.T) {
	red, blue := canvas.RGB(1, 0, 0), canvas.RGB(0, 0, 1)
	d, rec := newTestDrawer(t, 300, 300)
	err := d.DrawMoleculeWithHighlights(ethane(), "", &MultiHighlights{
		Atoms: map[int][]canvas.Colour{0: {red, blue}},
	})
	if err != nil {
		t.Fatalf("DrawMoleculeWithHighlights() error = %v", err)
	}
	count := func(c canvas.Colour) int {
		return len(rec.Filter(func(op canvas.Op) bool {
			return op.Kind == canvas.OpPolygon && op.Style.Colour.Equal(c) && op.Style.Tag.Kind == canvas.TagHighlight
		}))
	}
	if count(red) != 1 || count(blue) != 1 {
		t.Errorf("got %d red and %d blue arcs, want one each", count(red), count(blue))
	}
}

func TestSimplifyStereoGroups(t *testing.T) {
	tests := []struct {
		name     string
		typ      mol.StereoGroupType
		atoms    []int
		wantNote string
	}{
		{"or covers all", mol.StereoGroupOr, []int{0, 1}, "OR enantiomer"},
		{"and covers all", mol.StereoGroupAnd, []int{0, 1}, "AND enantiomer"},
		{"partial group", mol.StereoGroupOr, []int{0}, ""},
		{"absolute", mol.StereoGroupAbsolute, []int{0, 1}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ethane()
			m.Atoms[0].Chiral, m.Atoms[1].Chiral = mol.ChiralCW, mol.ChiralCCW
			m.StereoGroups = []mol.StereoGroup{{Type: tt.typ, Atoms: tt.atoms}}
			simplifyStereoGroups(m, true)
			if m.Note != tt.wantNote {
				t.Errorf("Note = %q, want %q", m.Note, tt.wantNote)
			}
		})
	}
}

func TestReactantHighlights(t *testing.T) {
	m := &mol.Molecule{
		Atoms: []mol.Atom{
			{Element: 6, MapNumber: 1}, {Element: 8, MapNumber: 2}, // reactant
			{Element: 6, MapNumber: 1}, {Element: 8, MapNumber: 2}, // product
		},
		Bonds: []mol.Bond{
			{Begin: 0, End: 1, Type: mol.BondSingle},
			{Begin: 2, End: 3, Type: mol.BondSingle},
		},
	}
	roles := []reactionRole{roleReactant, roleReactant, roleProduct, roleProduct}
	palette := []canvas.Colour{canvas.RGB(1, 0, 0), canvas.RGB(0, 1, 0)}
	hl := reactantHighlights(m, roles, palette)

	if len(hl.Atoms) != 4 {
		t.Fatalf("highlighted %d atoms, want 4", len(hl.Atoms))
	}
	for a, c := range hl.AtomColours {
		if !c.Equal(palette[0]) {
			t.Errorf("atom %d coloured %v, want the first reactant colour", a, c)
		}
		if m.Atoms[a].MapNumber != 0 {
			t.Errorf("atom %d keeps map number %d", a, m.Atoms[a].MapNumber)
		}
	}
	if len(hl.Bonds) != 2 {
		t.Errorf("highlighted bonds %v, want both", hl.Bonds)
	}
}

func TestDrawReaction(t *testing.T) {
	butane := &mol.Molecule{
		Atoms: carbons(4),
		Bonds: []mol.Bond{
			{Begin: 0, End: 1, Type: mol.BondSingle},
			{Begin: 1, End: 2, Type: mol.BondSingle},
			{Begin: 2, End: 3, Type: mol.BondSingle},
		},
		Coords: []geom.Point{{X: 0, Y: 0}, {X: 1.3, Y: 0.75}, {X: 2.6, Y: 0}, {X: 3.9, Y: 0.75}},
	}
	rxn := &mol.Reaction{
		Reactants: []*mol.Molecule{ethane(), ethane()},
		Products:  []*mol.Molecule{butane},
	}
	d, rec := newTestDrawer(t, 600, 200)
	if err := d.DrawReaction(rxn, false, nil); err != nil {
		t.Fatalf("DrawReaction() error = %v", err)
	}
	pos := d.AtomPositions()
	if len(pos) != 1 || len(pos[0]) != 8 {
		t.Fatalf("AtomPositions() = %v, want one panel of 8 atoms", pos)
	}
	maxReactant := math.Inf(-1)
	for _, p := range pos[0][:4] {
		maxReactant = max(maxReactant, p.X)
	}
	for _, p := range pos[0][4:] {
		if p.X <= maxReactant {
			t.Errorf("product atom at %v is left of the reactants", p)
		}
	}
	pluses := rec.Filter(func(op canvas.Op) bool { return op.Kind == canvas.OpString && op.Text == "+" })
	if len(pluses) != 1 {
		t.Errorf("got %d plus signs, want 1", len(pluses))
	}
	if d.Options().Rotate != DefaultOptions().Rotate {
		t.Error("options not restored after drawing")
	}
}

func TestAtomSymbol(t *testing.T) {
	tests := []struct {
		name string
		atom mol.Atom
		opts func(*Options)
		want string
	}{
		{"bare carbon", mol.Atom{Element: 6}, nil, ""},
		{"hydroxyl", mol.Atom{Element: 8, NumHs: 1}, nil, "OH"},
		{"ammonium", mol.Atom{Element: 7, NumHs: 3, Charge: 1}, nil, "N<sup>+</sup>H<sub>3</sub>"},
		{"isotope", mol.Atom{Element: 6, Isotope: 13}, nil, "<sup>13</sup>C"},
		{"deuterium", mol.Atom{Element: 1, Isotope: 2}, func(o *Options) { o.AtomLabelDeuteriumTritium = true }, "<lit>D</lit>"},
		{"atom list", mol.Atom{Element: 6, List: []int{6, 7}, ListNegated: true}, nil, "<lit>![C,N]</lit>"},
		{"no labels", mol.Atom{Element: 8}, func(o *Options) { o.NoAtomLabels = true }, ""},
		{"mapped", mol.Atom{Element: 8, MapNumber: 4}, nil, "O:4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			if tt.opts != nil {
				tt.opts(&o)
			}
			d, _ := newTestDrawer(t, 100, 100, WithOptions(o))
			m := ethane()
			m.Atoms[1] = tt.atom
			if got := d.atomSymbol(m, 1, text.OrientE); got != tt.want {
				t.Errorf("atomSymbol() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFixedBondLengthCapsScale(t *testing.T) {
	o := DefaultOptions()
	o.FixedBondLength = 20
	d, _ := newTestDrawer(t, 300, 300, WithOptions(o))
	if err := d.DrawMolecule(ethane(), "", nil); err != nil {
		t.Fatalf("DrawMolecule() error = %v", err)
	}
	if d.Scale() != 20 {
		t.Errorf("Scale() = %v, want 20", d.Scale())
	}
	pos := d.AtomPositions()[0]
	if !near(pos[0].X+pos[1].X, 300, 1e-6) {
		t.Errorf("small drawing is not centred: %v", pos)
	}
}

func TestSetScale(t *testing.T) {
	d, _ := newTestDrawer(t, 200, 200)
	if err := d.SetScale(200, 200, geom.Pt(-1, -1), geom.Pt(1, 1), nil); err != nil {
		t.Fatalf("SetScale() error = %v", err)
	}
	if want := 200 / 2.2; !near(d.Scale(), want, 1e-9) {
		t.Errorf("Scale() = %v, want %v", d.Scale(), want)
	}
	if got := d.ToDevice(geom.Pt(0, 0)); !nearPt(got, geom.Pt(100, 100), 1e-9) {
		t.Errorf("ToDevice(origin) = %v, want the centre", got)
	}
	if err := d.SetScale(0, 200, geom.Point{}, geom.Point{}, nil); !errors.Is(err, errors.ErrCodePrecondition) {
		t.Errorf("SetScale(0, ...) error = %v", err)
	}
}

func TestMoleculeSpacePrimitives(t *testing.T) {
	tests := []struct {
		name       string
		draw       func(d *Drawer)
		wantKind   canvas.OpKind
		wantPoints int
		wantFill   bool
	}{
		{"open rect", func(d *Drawer) { d.DrawRect(geom.Pt(-0.5, -0.5), geom.Pt(0.5, 0.5), canvas.Red, false) }, canvas.OpPolygon, 5, false},
		{"filled rect", func(d *Drawer) { d.DrawRect(geom.Pt(-0.5, -0.5), geom.Pt(0.5, 0.5), canvas.Red, true) }, canvas.OpPolygon, 4, true},
		{"arc", func(d *Drawer) { d.DrawArc(geom.Pt(0, 0), 1, 0, 90, canvas.Black, false) }, canvas.OpPolygon, 20, false},
		{"sector", func(d *Drawer) { d.DrawArc(geom.Pt(0, 0), 1, 0, 90, canvas.Black, true) }, canvas.OpPolygon, 21, true},
		{"attachment", func(d *Drawer) { d.DrawAttachmentLine(geom.Pt(0, 0), geom.Pt(1, 0), canvas.Black, 1) }, canvas.OpPolygon, wavySegments + 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, rec := newTestDrawer(t, 200, 200)
			if err := d.SetScale(200, 200, geom.Pt(-1, -1), geom.Pt(1, 1), nil); err != nil {
				t.Fatal(err)
			}
			rec.Reset()
			tt.draw(d)
			ops := rec.Kind(tt.wantKind)
			if len(ops) != 1 {
				t.Fatalf("got %d %s ops, want 1", len(ops), tt.wantKind)
			}
			if len(ops[0].Points) != tt.wantPoints || ops[0].Style.Fill != tt.wantFill {
				t.Errorf("points = %d fill = %v, want %d %v", len(ops[0].Points), ops[0].Style.Fill, tt.wantPoints, tt.wantFill)
			}
		})
	}
}

func TestDrawArrow(t *testing.T) {
	d, rec := newTestDrawer(t, 200, 200)
	if err := d.SetScale(200, 200, geom.Pt(-1, -1), geom.Pt(1, 1), nil); err != nil {
		t.Fatal(err)
	}
	rec.Reset()
	d.DrawArrow(geom.Pt(-1, 0), geom.Pt(1, 0), canvas.Black, true, 0.1, math.Pi/6)

	if n := len(rec.Kind(canvas.OpLine)); n != 1 {
		t.Errorf("shaft lines = %d, want 1", n)
	}
	heads := rec.Kind(canvas.OpPolygon)
	if len(heads) != 1 || len(heads[0].Points) != 3 || !heads[0].Style.Fill {
		t.Fatalf("head = %+v", heads)
	}
	if tip := heads[0].Points[1]; !nearPt(tip, d.ToDevice(geom.Pt(1, 0)), 1e-9) {
		t.Errorf("tip = %v, want the arrow end", tip)
	}
	if d.c.Style().Fill {
		t.Error("fill state leaked out of DrawArrow")
	}
}

func TestShortBondsShrinkFont(t *testing.T) {
	tests := []struct {
		name   string
		length float64
		want   float64
	}{
		{"standard bonds", 1.5, text.DefaultBaseFontSize},
		{"unit bonds", 1.0, text.DefaultBaseFontSize},
		{"short bonds", 0.5, 0.75 * text.DefaultBaseFontSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ethane()
			m.Coords[1] = geom.Pt(tt.length, 0)
			d, _ := newTestDrawer(t, 300, 300)
			// Twice, so a repeated layout cannot shrink the font again.
			for i := 0; i < 2; i++ {
				_, release, err := d.setupDrawMolecule(m)
				if err != nil {
					t.Fatalf("setupDrawMolecule() error = %v", err)
				}
				release()
				if got := d.text.BaseFontSize(); !near(got, tt.want, 1e-12) {
					t.Fatalf("pass %d: base font size = %v, want %v", i+1, got, tt.want)
				}
			}
		})
	}
}
