package canvas

import (
	"strconv"
	"strings"

	"github.com/FabioUrbina/rdkit/pkg/geom"
)

// Canvas receives drawing primitives in device space: x to the right, y
// down, in pixels. Line colour, width, dash and fill are state set before
// each primitive, as on most 2D graphics contexts.
type Canvas interface {
	Width() float64
	Height() float64

	Style() Style
	SetColour(c Colour)
	SetLineWidth(w float64)
	SetDash(d Dash)
	SetFill(fill bool)
	SetTag(t Tag)

	DrawLine(p1, p2 geom.Point)
	// DrawPolygon draws a closed shape when fill is on and an open
	// polyline otherwise.
	DrawPolygon(pts []geom.Point)
	// DrawEllipse draws the ellipse inscribed in the box with corners
	// p1 and p2.
	DrawEllipse(p1, p2 geom.Point)
	// DrawString draws s with its baseline starting at pos, at the given
	// font size in pixels.
	DrawString(s string, pos geom.Point, size float64)
}

// WavyLiner is implemented by canvases with a native wavy line. Callers
// fall back to a zig-zag polyline otherwise.
type WavyLiner interface {
	DrawWavyLine(p1, p2 geom.Point, col1, col2 Colour, nSegments int, vertOffset float64)
}

// Dash is a dash pattern in multiples of the line width. A nil Dash is a
// solid line.
type Dash []float64

var (
	DashNone   Dash
	DashDots   = Dash{2, 6}
	DashDashes = Dash{6, 6}
	DashShort  = Dash{2, 2}
)

// SVG returns the pattern as a stroke-dasharray value for line width w.
func (d Dash) SVG(w float64) string {
	parts := make([]string, len(d))
	for i, v := range d {
		parts[i] = strconv.FormatFloat(v*w, 'f', 1, 64)
	}
	return strings.Join(parts, ",")
}

// Equal reports whether d and o are the same pattern.
func (d Dash) Equal(o Dash) bool {
	if len(d) != len(o) {
		return false
	}
	for i := range d {
		if d[i] != o[i] {
			return false
		}
	}
	return true
}

// TagKind says what a group of primitives depicts.
type TagKind string

const (
	TagNone       TagKind = ""
	TagAtom       TagKind = "atom"
	TagBond       TagKind = "bond"
	TagHighlight  TagKind = "highlight"
	TagAnnotation TagKind = "annotation"
	TagLegend     TagKind = "legend"
)

// Tag labels the primitives that follow so output formats can group them
// (SVG classes, JSON hit-test records).
type Tag struct {
	Kind  TagKind `json:"kind,omitempty"`
	Index int     `json:"index"`
	Atoms []int   `json:"atoms,omitempty"`
}

// Class returns an SVG class string such as "bond-3 atom-0 atom-1".
func (t Tag) Class() string {
	if t.Kind == TagNone {
		return ""
	}
	parts := []string{string(t.Kind) + "-" + strconv.Itoa(t.Index)}
	if t.Kind != TagAtom {
		for _, a := range t.Atoms {
			parts = append(parts, "atom-"+strconv.Itoa(a))
		}
	}
	return strings.Join(parts, " ")
}

// Style is a snapshot of a canvas's drawing state.
type Style struct {
	Colour    Colour  `json:"colour"`
	LineWidth float64 `json:"line_width"`
	Dash      Dash    `json:"dash,omitempty"`
	Fill      bool    `json:"fill,omitempty"`
	Tag       Tag     `json:"tag"`
}

// Apply sets every field of s on c.
func (s Style) Apply(c Canvas) {
	c.SetColour(s.Colour)
	c.SetLineWidth(s.LineWidth)
	c.SetDash(s.Dash)
	c.SetFill(s.Fill)
	c.SetTag(s.Tag)
}

// State implements the state half of [Canvas]. Concrete canvases embed it.
type State struct {
	style Style
}

// NewState returns black, 1px, solid, unfilled state.
func NewState() State {
	return State{style: Style{Colour: Black, LineWidth: 1}}
}

func (s *State) Style() Style           { return s.style }
func (s *State) SetColour(c Colour)     { s.style.Colour = c }
func (s *State) SetLineWidth(w float64) { s.style.LineWidth = w }
func (s *State) SetDash(d Dash)         { s.style.Dash = d }
func (s *State) SetFill(fill bool)      { s.style.Fill = fill }
func (s *State) SetTag(t Tag)           { s.style.Tag = t }
