package moldraw

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/FabioUrbina/rdkit/pkg/errors"
	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
	"github.com/FabioUrbina/rdkit/pkg/render/text"
)

// Drawer lays out molecules and draws them onto a canvas. It is not safe
// for concurrent use; give each goroutine its own Drawer.
type Drawer struct {
	c    canvas.Canvas
	opts Options
	log  *log.Logger
	text *text.Drawer

	tr         Transform
	needsScale bool

	// Stack of molecules being drawn. Reactions push one per component.
	contexts     []*renderContext
	activeMolIdx int

	// Device position of every atom drawn, per panel.
	panels [][]geom.Point

	// Highlights of the molecule currently being drawn, and explicit
	// per-bond colours that override atom colours.
	hl          *Highlights
	bondColours map[int][2]canvas.Colour

	lineWidth      float64
	scaleBondWidth bool

	// The background is cleared by the first drawing only.
	cleared bool
}

// Option configures a Drawer.
type Option func(*Drawer)

// WithOptions replaces the drawing options.
func WithOptions(o Options) Option { return func(d *Drawer) { d.opts = o } }

// WithLogger sets the logger used for placement warnings.
func WithLogger(l *log.Logger) Option { return func(d *Drawer) { d.log = l } }

// WithMeasurer sets the font metrics used to size labels.
func WithMeasurer(m text.Measurer) Option {
	return func(d *Drawer) { d.text = text.NewDrawer(m) }
}

// New returns a drawer for c with panels of panelW x panelH pixels. A
// negative panel size means the whole canvas.
func New(c canvas.Canvas, panelW, panelH float64, opts ...Option) (*Drawer, error) {
	if panelW < 0 {
		panelW = c.Width()
	}
	if panelH < 0 {
		panelH = c.Height()
	}
	if panelW == 0 || panelH == 0 {
		return nil, errors.Precondition("panel size must not be zero, got %vx%v", panelW, panelH)
	}
	if err := errors.ValidateDimensions(panelW, panelH); err != nil {
		return nil, err
	}

	d := &Drawer{
		c:          c,
		opts:       DefaultOptions(),
		needsScale: true,
	}
	for _, opt := range opts {
		opt(d)
	}
	if err := d.opts.Validate(); err != nil {
		return nil, err
	}
	if d.log == nil {
		d.log = log.New(io.Discard)
	}
	if d.text == nil {
		d.text = text.NewDrawer(nil)
	}
	d.text.SetBaseFontSize(d.opts.BaseFontSize)
	d.text.SetFontLimits(d.opts.MinFontSize, d.opts.MaxFontSize)

	d.tr = identity(panelW, panelH)
	d.lineWidth = d.opts.BondLineWidth
	d.scaleBondWidth = d.opts.ScaleBondWidth
	return d, nil
}

// Options returns the drawing options in use.
func (d *Drawer) Options() Options { return d.opts }

// Transform returns the current molecule-to-device transform.
func (d *Drawer) Transform() Transform { return d.tr }

// Scale returns the number of pixels per molecule unit.
func (d *Drawer) Scale() float64 { return d.tr.Scale }

// FontSize returns the current label font size in pixels.
func (d *Drawer) FontSize() float64 { return d.text.FontSize() }

// ToDevice converts a molecule-space point with the current transform.
func (d *Drawer) ToDevice(p geom.Point) geom.Point { return d.tr.ToDevice(p) }

// ToMolecule converts a device-space point with the current transform.
func (d *Drawer) ToMolecule(p geom.Point) geom.Point { return d.tr.ToMolecule(p) }

// SetOffset moves the panel origin, in device space.
func (d *Drawer) SetOffset(x, y float64) {
	d.tr.XOffset, d.tr.YOffset = x, y
}

// Offset returns the panel origin.
func (d *Drawer) Offset() geom.Point { return geom.Pt(d.tr.XOffset, d.tr.YOffset) }

// TabulaRasa resets the scale state to identity so the next drawing is
// laid out from scratch. Recorded atom positions are discarded.
func (d *Drawer) TabulaRasa() {
	d.tr.Scale = 1
	d.text.SetFontScale(1, true)
	d.tr.XMin, d.tr.YMin = 0, 0
	d.tr.XRange, d.tr.YRange = 1, 1
	d.tr.XTrans, d.tr.YTrans = 0, 0
	d.tr.XOffset, d.tr.YOffset = 0, 0
	d.needsScale = true
	d.panels = nil
}

// scaleState is the part of the drawer a nested layout may disturb.
type scaleState struct {
	tr        Transform
	fontScale float64
}

func (d *Drawer) saveState() scaleState {
	return scaleState{tr: d.tr, fontScale: d.text.FontScale()}
}

func (d *Drawer) restore(s scaleState) {
	d.tr = s.tr
	d.text.SetFontScale(s.fontScale, true)
}

// setFontScale sets the label font scale within the configured limits.
func (d *Drawer) setFontScale(s float64) { d.text.SetFontScale(s, false) }
