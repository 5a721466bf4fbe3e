package sink

import (
	"encoding/json"

	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/moldraw"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	meta   *moldraw.Metadata
	legend string
	kinds  map[canvas.TagKind]bool
}

// WithMetadata adds the scale and atom positions of a finished drawing, so
// clients can map pixels back to atoms.
func WithMetadata(m moldraw.Metadata) JSONOption {
	return func(r *jsonRenderer) { r.meta = &m }
}

// WithLegend records the legend text of a single-molecule drawing.
func WithLegend(s string) JSONOption { return func(r *jsonRenderer) { r.legend = s } }

// WithKinds keeps only primitives tagged with one of the given kinds. With
// no kinds, everything is kept.
func WithKinds(kinds ...canvas.TagKind) JSONOption {
	return func(r *jsonRenderer) {
		r.kinds = make(map[canvas.TagKind]bool, len(kinds))
		for _, k := range kinds {
			r.kinds[k] = true
		}
	}
}

type jsonOutput struct {
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Scale  float64        `json:"scale,omitempty"`
	Legend string         `json:"legend,omitempty"`
	Atoms  [][]geom.Point `json:"atoms,omitempty"`
	Ops    []jsonOp       `json:"ops"`
}

type jsonOp struct {
	Kind   string        `json:"kind"`
	Points []geom.Point  `json:"points"`
	Text   string        `json:"text,omitempty"`
	Size   float64       `json:"size,omitempty"`
	Colour canvas.Colour `json:"colour"`
	Width  float64       `json:"line_width,omitempty"`
	Dash   canvas.Dash   `json:"dash,omitempty"`
	Fill   bool          `json:"fill,omitempty"`
	Tag    *canvas.Tag   `json:"tag,omitempty"`
}

// RenderJSON exports the primitives captured by rec as a pretty-printed
// JSON document. Each primitive keeps its tag, so the output doubles as a
// hit-test map: a client can find the bond or atom under a point without
// parsing SVG.
//
// RenderJSON does not modify rec and returns an error only if marshaling
// fails.
func RenderJSON(rec *canvas.Recorder, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:  rec.Width(),
		Height: rec.Height(),
		Legend: r.legend,
		Ops:    []jsonOp{},
	}
	if r.meta != nil {
		out.Scale = r.meta.Scale
		out.Atoms = r.meta.Atoms
	}
	for _, op := range rec.Ops() {
		if len(r.kinds) > 0 && !r.kinds[op.Style.Tag.Kind] {
			continue
		}
		out.Ops = append(out.Ops, toJSONOp(op))
	}
	return json.MarshalIndent(out, "", "  ")
}

func toJSONOp(op canvas.Op) jsonOp {
	j := jsonOp{
		Kind:   string(op.Kind),
		Points: op.Points,
		Text:   op.Text,
		Size:   op.Size,
		Colour: op.Style.Colour,
		Width:  op.Style.LineWidth,
		Dash:   op.Style.Dash,
		Fill:   op.Style.Fill,
	}
	if op.Style.Tag.Kind != canvas.TagNone {
		tag := op.Style.Tag
		j.Tag = &tag
	}
	return j
}
