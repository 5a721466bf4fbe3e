package canvas

import (
	"slices"

	"github.com/FabioUrbina/rdkit/pkg/geom"
)

// OpKind is the primitive recorded by an [Op].
type OpKind string

const (
	OpLine    OpKind = "line"
	OpPolygon OpKind = "polygon"
	OpEllipse OpKind = "ellipse"
	OpString  OpKind = "string"
)

// Op is one recorded drawing call with the state it was drawn in.
type Op struct {
	Kind   OpKind       `json:"kind"`
	Points []geom.Point `json:"points"`
	Text   string       `json:"text,omitempty"`
	Size   float64      `json:"size,omitempty"`
	Style  Style        `json:"style"`
}

// Recorder is a Canvas that keeps every call in order. It backs the JSON
// output and the drawing engine's tests.
type Recorder struct {
	State
	width, height float64
	ops           []Op
}

// NewRecorder returns an empty recorder of the given device size.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{State: NewState(), width: width, height: height}
}

func (r *Recorder) Width() float64  { return r.width }
func (r *Recorder) Height() float64 { return r.height }

func (r *Recorder) DrawLine(p1, p2 geom.Point) {
	r.add(Op{Kind: OpLine, Points: []geom.Point{p1, p2}})
}

func (r *Recorder) DrawPolygon(pts []geom.Point) {
	r.add(Op{Kind: OpPolygon, Points: slices.Clone(pts)})
}

func (r *Recorder) DrawEllipse(p1, p2 geom.Point) {
	r.add(Op{Kind: OpEllipse, Points: []geom.Point{p1, p2}})
}

func (r *Recorder) DrawString(s string, pos geom.Point, size float64) {
	r.add(Op{Kind: OpString, Points: []geom.Point{pos}, Text: s, Size: size})
}

func (r *Recorder) add(op Op) {
	op.Style = r.style
	op.Style.Dash = slices.Clone(op.Style.Dash)
	op.Style.Tag.Atoms = slices.Clone(op.Style.Tag.Atoms)
	r.ops = append(r.ops, op)
}

// Ops returns the recorded calls.
func (r *Recorder) Ops() []Op { return r.ops }

// Reset discards the recorded calls and restores default state.
func (r *Recorder) Reset() {
	r.ops = nil
	r.State = NewState()
}

// Filter returns the ops for which keep returns true.
func (r *Recorder) Filter(keep func(Op) bool) []Op {
	var out []Op
	for _, op := range r.ops {
		if keep(op) {
			out = append(out, op)
		}
	}
	return out
}

// Kind returns the ops of one kind.
func (r *Recorder) Kind(k OpKind) []Op {
	return r.Filter(func(op Op) bool { return op.Kind == k })
}

// Tagged returns the ops drawn under the given tag kind and index.
func (r *Recorder) Tagged(kind TagKind, index int) []Op {
	return r.Filter(func(op Op) bool {
		return op.Style.Tag.Kind == kind && op.Style.Tag.Index == index
	})
}

// Replay draws the recorded calls onto c.
func (r *Recorder) Replay(c Canvas) {
	for _, op := range r.ops {
		op.Style.Apply(c)
		switch op.Kind {
		case OpLine:
			c.DrawLine(op.Points[0], op.Points[1])
		case OpPolygon:
			c.DrawPolygon(op.Points)
		case OpEllipse:
			c.DrawEllipse(op.Points[0], op.Points[1])
		case OpString:
			c.DrawString(op.Text, op.Points[0], op.Size)
		}
	}
}
