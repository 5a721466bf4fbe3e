package moldraw

import (
	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/mol"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
	"github.com/FabioUrbina/rdkit/pkg/render/text"
)

// renderContext holds everything extracted from one molecule for drawing.
// coords, atomicNums and labels always have one entry per atom.
type renderContext struct {
	mol        *mol.Molecule // private copy, centred and rotated
	coords     []geom.Point
	atomicNums []int
	labels     []atomLabel

	annotations []annotation
	radicals    []radical

	preShapes  []shape
	postShapes []shape

	// Extra points the drawing must fit, such as a reaction arrow.
	extent []geom.Point
}

func (ctx *renderContext) hasCoords() bool { return len(ctx.coords) > 0 }

// push starts a new context on the stack. The returned func pops it and
// must always be called.
func (d *Drawer) push() (*renderContext, func()) {
	ctx := &renderContext{}
	d.contexts = append(d.contexts, ctx)
	return ctx, func() {
		d.contexts = d.contexts[:len(d.contexts)-1]
	}
}

// outermost reports whether the molecule being set up is the top-level
// drawing rather than a reaction component.
func (d *Drawer) outermost() bool { return len(d.contexts) == 1 }

// annotation is a piece of text attached to the drawing: an atom or bond
// note, a bracket label, a data field or the molecule note.
type annotation struct {
	text      string
	pos       geom.Point // anchor in molecule space
	block     text.Block // glyph rects in molecule units, relative to pos
	align     text.Align
	scaleText bool
	colour    *canvas.Colour
	tag       canvas.Tag
}

// rects returns the annotation's glyph boxes placed in molecule space.
func (a *annotation) rects() []text.StringRect { return a.block.Rects }

type shapeKind uint8

const (
	shapePolyline shapeKind = iota
	shapeEllipse
)

// shape is extra geometry drawn before or after the molecule: brackets,
// variable attachment markers, link node brackets.
type shape struct {
	kind           shapeKind
	points         []geom.Point // molecule space
	fill           bool
	lineWidth      float64
	scaleLineWidth bool
	colour         canvas.Colour
	atoms          []int
}

// radical is the dot mark for the unpaired electrons of one atom.
type radical struct {
	atom   int
	count  int
	rect   geom.Rect // molecule space
	orient text.Orient
}
