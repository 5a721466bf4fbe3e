package canvas

import (
	"encoding/json"
	"testing"

	"github.com/FabioUrbina/rdkit/pkg/geom"
)

func TestParseColour(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Colour
		wantErr bool
	}{
		{"six digits", "#ff0000", Red, false},
		{"three digits", "#fff", White, false},
		{"with alpha", "#00000080", RGBA(0, 0, 0, 128.0/255), false},
		{"no hash", "000000", Black, false},
		{"bad length", "#12345", Colour{}, true},
		{"bad digits", "#gggggg", Colour{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColour(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColour(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseColour(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColourString(t *testing.T) {
	if got := RGB(0.5, 0.5, 0.5).String(); got != "#808080" {
		t.Errorf("String() = %q", got)
	}
	if got := RGBA(1, 0, 0, 0.5).String(); got != "#ff000080" {
		t.Errorf("String() = %q", got)
	}
}

func TestColourJSON(t *testing.T) {
	var s struct {
		C Colour `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"c":"#0000ff"}`), &s); err != nil {
		t.Fatal(err)
	}
	if !s.C.Equal(RGB(0, 0, 1)) {
		t.Errorf("decoded %v", s.C)
	}
}

func TestDashSVG(t *testing.T) {
	if got := DashDashes.SVG(2); got != "12.0,12.0" {
		t.Errorf("SVG() = %q", got)
	}
	if got := DashNone.SVG(2); got != "" {
		t.Errorf("SVG() of solid = %q", got)
	}
}

func TestTagClass(t *testing.T) {
	tests := []struct {
		name string
		tag  Tag
		want string
	}{
		{"none", Tag{}, ""},
		{"atom", Tag{Kind: TagAtom, Index: 2, Atoms: []int{2}}, "atom-2"},
		{"bond", Tag{Kind: TagBond, Index: 0, Atoms: []int{0, 1}}, "bond-0 atom-0 atom-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tag.Class(); got != tt.want {
				t.Errorf("Class() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(100, 50)
	r.SetColour(Red)
	r.SetDash(DashDots)
	r.DrawLine(geom.Pt(0, 0), geom.Pt(1, 1))
	r.SetDash(DashNone)
	r.SetFill(true)
	r.DrawPolygon([]geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}})

	ops := r.Ops()
	if len(ops) != 2 {
		t.Fatalf("got %d ops, want 2", len(ops))
	}
	if !ops[0].Style.Dash.Equal(DashDots) || !ops[0].Style.Colour.Equal(Red) {
		t.Errorf("line style = %+v", ops[0].Style)
	}
	if !ops[1].Style.Fill || ops[1].Style.Dash != nil {
		t.Errorf("polygon style = %+v", ops[1].Style)
	}
	if got := len(r.Kind(OpPolygon)); got != 1 {
		t.Errorf("Kind(OpPolygon) = %d ops", got)
	}

	var replay Recorder
	replay.State = NewState()
	r.Replay(&replay)
	if len(replay.Ops()) != 2 {
		t.Errorf("Replay() recorded %d ops", len(replay.Ops()))
	}
}
