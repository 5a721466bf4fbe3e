package sink

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/FabioUrbina/rdkit/pkg/fonts"
	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
)

// PNGOption configures a [PNGCanvas].
type PNGOption func(*pngConfig)

type pngConfig struct {
	scale float64
	ttf   []byte
}

// WithScale sets the number of image pixels per canvas unit (default 1;
// 2 gives a double-resolution image of the same drawing).
func WithScale(s float64) PNGOption {
	return func(c *pngConfig) {
		if s > 0 {
			c.scale = s
		}
	}
}

// WithFont draws text with the TrueType or OpenType font in ttf instead
// of Go Regular.
func WithFont(ttf []byte) PNGOption { return func(c *pngConfig) { c.ttf = ttf } }

// PNGCanvas is a [canvas.Canvas] that rasterises directly with gg, so it
// needs no external converter.
type PNGCanvas struct {
	canvas.State
	width, height float64
	scale         float64
	dc            *gg.Context
	font          *opentype.Font
	faces         map[float64]font.Face
}

// NewPNG returns a transparent raster canvas of the given size in canvas
// units.
func NewPNG(width, height float64, opts ...PNGOption) (*PNGCanvas, error) {
	cfg := pngConfig{scale: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	var (
		f   *opentype.Font
		err error
	)
	if cfg.ttf != nil {
		f, err = opentype.Parse(cfg.ttf)
	} else {
		f, err = fonts.Regular()
	}
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	w := int(math.Ceil(width * cfg.scale))
	h := int(math.Ceil(height * cfg.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid PNG size %vx%v", width, height)
	}
	dc := gg.NewContext(w, h)
	dc.SetLineCapButt()
	return &PNGCanvas{
		State:  canvas.NewState(),
		width:  width,
		height: height,
		scale:  cfg.scale,
		dc:     dc,
		font:   f,
		faces:  make(map[float64]font.Face),
	}, nil
}

func (p *PNGCanvas) Width() float64  { return p.width }
func (p *PNGCanvas) Height() float64 { return p.height }

func (p *PNGCanvas) DrawLine(p1, p2 geom.Point) {
	a, b := p.px(p1), p.px(p2)
	p.applyStroke()
	p.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	p.dc.Stroke()
}

func (p *PNGCanvas) DrawPolygon(pts []geom.Point) {
	if len(pts) < 2 {
		return
	}
	p.applyStroke()
	p.dc.NewSubPath()
	for i, pt := range pts {
		q := p.px(pt)
		if i == 0 {
			p.dc.MoveTo(q.X, q.Y)
		} else {
			p.dc.LineTo(q.X, q.Y)
		}
	}
	if p.Style().Fill {
		p.dc.ClosePath()
		p.dc.FillPreserve()
	}
	p.dc.Stroke()
}

func (p *PNGCanvas) DrawEllipse(p1, p2 geom.Point) {
	a, b := p.px(p1), p.px(p2)
	c := geom.Mid(a, b)
	p.applyStroke()
	p.dc.DrawEllipse(c.X, c.Y, math.Abs(b.X-a.X)/2, math.Abs(b.Y-a.Y)/2)
	if p.Style().Fill {
		p.dc.FillPreserve()
	}
	p.dc.Stroke()
}

func (p *PNGCanvas) DrawString(s string, pos geom.Point, size float64) {
	face, err := p.face(size * p.scale)
	if err != nil {
		return
	}
	q := p.px(pos)
	p.setColour(p.Style().Colour)
	p.dc.SetFontFace(face)
	p.dc.DrawString(s, q.X, q.Y)
}

// DrawWavyLine draws p1-p2 as a run of quadratic curves, the first half
// in col1 and the second in col2.
func (p *PNGCanvas) DrawWavyLine(p1, p2 geom.Point, col1, col2 canvas.Colour, nSegments int, vertOffset float64) {
	segs := wave(p1, p2, nSegments, vertOffset)
	saved := p.Style().Colour
	defer p.SetColour(saved)

	half := len(segs)
	if !col1.Equal(col2) {
		half = (len(segs) + 1) / 2
	}
	stroke := func(start geom.Point, part []waveSegment, col canvas.Colour) {
		if len(part) == 0 {
			return
		}
		p.SetColour(col)
		p.applyStroke()
		s := p.px(start)
		p.dc.MoveTo(s.X, s.Y)
		for _, seg := range part {
			c, e := p.px(seg.Ctrl), p.px(seg.End)
			p.dc.QuadraticTo(c.X, c.Y, e.X, e.Y)
		}
		p.dc.Stroke()
	}
	stroke(p1, segs[:half], col1)
	if half < len(segs) {
		stroke(segs[half-1].End, segs[half:], col2)
	}
}

// Image returns the raster drawn so far.
func (p *PNGCanvas) Image() image.Image { return p.dc.Image() }

// Encode writes the image to w as PNG.
func (p *PNGCanvas) Encode(w io.Writer) error { return p.dc.EncodePNG(w) }

// Bytes returns the image encoded as PNG.
func (p *PNGCanvas) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Close releases the font faces opened for text.
func (p *PNGCanvas) Close() error {
	var first error
	for size, f := range p.faces {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
		delete(p.faces, size)
	}
	return first
}

func (p *PNGCanvas) px(pt geom.Point) geom.Point { return pt.Mul(p.scale) }

func (p *PNGCanvas) setColour(c canvas.Colour) { p.dc.SetRGBA(c.R, c.G, c.B, c.A) }

// applyStroke copies the line state to gg, which keeps widths and dashes
// in image pixels.
func (p *PNGCanvas) applyStroke() {
	st := p.Style()
	p.setColour(st.Colour)
	w := st.LineWidth * p.scale
	p.dc.SetLineWidth(w)
	if len(st.Dash) == 0 {
		p.dc.SetDash()
		return
	}
	dashes := make([]float64, len(st.Dash))
	for i, v := range st.Dash {
		dashes[i] = v * w
	}
	p.dc.SetDash(dashes...)
}

// face returns a face of the given pixel size, rounded to a tenth of a
// pixel so repeated sizes share one face.
func (p *PNGCanvas) face(size float64) (font.Face, error) {
	size = math.Max(1, math.Round(size*10)/10)
	if f, ok := p.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(p.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	p.faces[size] = f
	return f, nil
}
