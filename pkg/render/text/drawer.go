package text

import (
	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
)

// Orient is the side of its anchor a label grows towards. OrientC is a
// label with no preferred side; it is laid out like OrientE.
type Orient uint8

const (
	OrientC Orient = iota
	OrientN
	OrientE
	OrientS
	OrientW
)

func (o Orient) String() string {
	return [...]string{"C", "N", "E", "S", "W"}[o]
}

// Align positions a single-line string horizontally on its anchor.
type Align uint8

const (
	AlignMiddle Align = iota
	AlignStart
	AlignEnd
)

func (a Align) String() string {
	return [...]string{"middle", "start", "end"}[a]
}

// Default font sizing. The base size is in molecule units: at a font
// scale equal to the drawing scale, text is BaseFontSize molecule units
// tall, within the pixel limits.
const (
	DefaultBaseFontSize = 0.6
	DefaultMinFontSize  = 6
	DefaultMaxFontSize  = 40
)

// Drawer lays out and draws short marked-up strings: atom labels,
// annotations and legends.
type Drawer struct {
	m            Measurer
	fontScale    float64
	baseFontSize float64
	minFontSize  float64
	maxFontSize  float64
}

// NewDrawer returns a drawer with the default font sizes and a font
// scale of 1.
func NewDrawer(m Measurer) *Drawer {
	if m == nil {
		m = ApproxMeasurer{}
	}
	return &Drawer{
		m:            m,
		fontScale:    1,
		baseFontSize: DefaultBaseFontSize,
		minFontSize:  DefaultMinFontSize,
		maxFontSize:  DefaultMaxFontSize,
	}
}

func (d *Drawer) FontScale() float64    { return d.fontScale }
func (d *Drawer) BaseFontSize() float64 { return d.baseFontSize }

// FontSize returns the current font size in pixels.
func (d *Drawer) FontSize() float64 { return d.fontScale * d.baseFontSize }

func (d *Drawer) SetBaseFontSize(s float64) { d.baseFontSize = s }

// SetFontLimits sets the pixel size limits. A non-positive value removes
// that limit.
func (d *Drawer) SetFontLimits(minSize, maxSize float64) {
	d.minFontSize, d.maxFontSize = minSize, maxSize
}

// SetFontScale sets the font scale. Unless ignoreLimits is set, the scale
// is clamped so the font size stays within the pixel limits.
func (d *Drawer) SetFontScale(s float64, ignoreLimits bool) {
	d.fontScale = s
	if ignoreLimits {
		return
	}
	fs := d.FontSize()
	if d.maxFontSize > 0 && fs > d.maxFontSize {
		d.fontScale = d.maxFontSize / d.baseFontSize
	}
	if d.minFontSize > 0 && fs < d.minFontSize {
		d.fontScale = d.minFontSize / d.baseFontSize
	}
}

// Block is a laid-out string: one rect per glyph relative to the anchor,
// in a y-up frame.
type Block struct {
	Rects []StringRect
	runes []rune
	sizes []float64
}

// Empty reports whether the block has no glyphs.
func (b Block) Empty() bool { return len(b.Rects) == 0 }

// Extremes returns the bounding box of all glyphs relative to the anchor.
func (b Block) Extremes() geom.Rect {
	var r geom.Rect
	for _, sr := range b.Rects {
		r = r.Union(sr.Bounds(geom.Point{}, 0))
	}
	return r
}

// Scaled returns a copy with all lengths, font sizes included, multiplied
// by f.
func (b Block) Scaled(f float64) Block {
	out := Block{
		Rects: make([]StringRect, len(b.Rects)),
		runes: b.runes,
		sizes: make([]float64, len(b.sizes)),
	}
	for i, r := range b.Rects {
		out.Rects[i] = r.Scaled(f)
	}
	for i, s := range b.sizes {
		out.sizes[i] = s * f
	}
	return out
}

// Draw draws the glyphs on c with the anchor at the device point at. The
// canvas colour is used as is.
func (b Block) Draw(c canvas.Canvas, at geom.Point) {
	for i, r := range b.Rects {
		o := r.Trans.Add(r.Offset)
		c.DrawString(string(b.runes[i]), geom.Pt(at.X+o.X, at.Y-o.Y), b.sizes[i])
	}
}

// Label lays out an atom label growing towards orient. The first piece
// (the element symbol with any isotope) is centred on the anchor and the
// remaining pieces follow in the direction of orient.
func (d *Drawer) Label(s string, orient Orient) Block {
	glyphs, literal := parseMarkup(s)
	pieces := splitPieces(glyphs, literal)
	fs := d.FontSize()

	var out Block
	var prev Block
	for k, piece := range pieces {
		pb := d.layout(piece)
		if pb.Empty() {
			continue
		}
		nb := normalBox(pb)
		var shift geom.Point
		switch {
		case k == 0 || prev.Empty():
			shift = nb.Centre().Neg()
		case orient == OrientN || orient == OrientS:
			dy := float64(k) * fs
			if orient == OrientS {
				dy = -dy
			}
			first := out.Rects[0]
			shift = geom.Pt(-nb.Centre().X, first.Trans.Y-first.YShift+dy)
		case orient == OrientW:
			shift = geom.Pt(prev.Rects[0].Trans.X-advance(pb), prev.Rects[0].Trans.Y-prev.Rects[0].YShift)
		default:
			last := prev.Rects[len(prev.Rects)-1]
			shift = geom.Pt(prev.Rects[0].Trans.X+advance(prev), last.Trans.Y-last.YShift)
		}
		for i := range pb.Rects {
			pb.Rects[i].Trans = pb.Rects[i].Trans.Add(shift)
		}
		out.Rects = append(out.Rects, pb.Rects...)
		out.runes = append(out.runes, pb.runes...)
		out.sizes = append(out.sizes, pb.sizes...)
		prev = pb
	}
	return out
}

// Aligned lays out s on one line, vertically centred on the anchor and
// aligned horizontally by align.
func (d *Drawer) Aligned(s string, align Align) Block {
	glyphs, _ := parseMarkup(s)
	b := d.layout(glyphs)
	if b.Empty() {
		return b
	}
	ext := b.Extremes()
	shift := geom.Pt(0, -normalBox(b).Centre().Y)
	switch align {
	case AlignStart:
		shift.X = -ext.Min.X
	case AlignEnd:
		shift.X = -ext.Max.X
	default:
		shift.X = -ext.Centre().X
	}
	for i := range b.Rects {
		b.Rects[i].Trans = b.Rects[i].Trans.Add(shift)
	}
	return b
}

// layout places glyphs left to right from the origin.
func (d *Drawer) layout(glyphs []glyph) Block {
	fs := d.FontSize()
	b := Block{
		Rects: make([]StringRect, 0, len(glyphs)),
		runes: make([]rune, 0, len(glyphs)),
		sizes: make([]float64, 0, len(glyphs)),
	}
	x := 0.0
	for _, g := range glyphs {
		size, shift := fs, 0.0
		switch g.mode {
		case Superscript:
			size, shift = fs*scriptScale, fs*superShift
		case Subscript:
			size, shift = fs*scriptScale, fs*subShift
		}
		adv, asc, desc := d.m.Metrics(g.r)
		adv, asc, desc = adv*size, asc*size, desc*size
		b.Rects = append(b.Rects, StringRect{
			Trans:   geom.Pt(x, shift),
			GCentre: geom.Pt(adv/2, (asc-desc)/2),
			Width:   adv,
			Height:  asc + desc,
			YShift:  shift,
		})
		b.runes = append(b.runes, g.r)
		b.sizes = append(b.sizes, size)
		x += adv
	}
	return b
}

// normalBox is the bounding box of the full-size glyphs, or of all glyphs
// when there are none.
func normalBox(b Block) geom.Rect {
	var r geom.Rect
	for _, sr := range b.Rects {
		if sr.YShift == 0 {
			r = r.Union(sr.Bounds(geom.Point{}, 0))
		}
	}
	if r.Empty() {
		return b.Extremes()
	}
	return r
}

func advance(b Block) float64 {
	w := 0.0
	for _, r := range b.Rects {
		w += r.Width
	}
	return w
}
