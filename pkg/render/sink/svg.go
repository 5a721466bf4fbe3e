package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/FabioUrbina/rdkit/pkg/fonts"
	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
)

const atomInteractionCSS = `
    path, ellipse, text { transition: opacity 0.2s ease; }
    svg.hovering .dim { opacity: 0.25; }`

const atomInteractionJS = `
    (function () {
      const svg = document.currentScript.closest('svg');
      const atomsOf = el => Array.from(el.classList).filter(c => c.startsWith('atom-'));
      svg.querySelectorAll('[class*="atom-"]').forEach(el => {
        el.addEventListener('mouseenter', () => {
          const atoms = atomsOf(el);
          svg.classList.add('hovering');
          svg.querySelectorAll('path, ellipse, text').forEach(o => {
            o.classList.toggle('dim', !atomsOf(o).some(a => atoms.includes(a)));
          });
        });
        el.addEventListener('mouseleave', () => {
          svg.classList.remove('hovering');
          svg.querySelectorAll('.dim').forEach(o => o.classList.remove('dim'));
        });
      });
    })();`

// SVGOption configures an [SVGCanvas].
type SVGOption func(*SVGCanvas)

// WithComicFont sets the text font family to the hand-written one used
// with comic mode.
func WithComicFont() SVGOption { return func(s *SVGCanvas) { s.family = fonts.ComicFamily } }

// WithFontFamily sets the CSS font-family of all text.
func WithFontFamily(f string) SVGOption { return func(s *SVGCanvas) { s.family = f } }

// WithInteraction adds a small script that fades everything not touching
// the atom under the pointer.
func WithInteraction() SVGOption { return func(s *SVGCanvas) { s.interactive = true } }

// SVGCanvas is a [canvas.Canvas] that writes SVG elements. Each primitive
// carries the current tag as its class, so bonds and atoms can be styled
// or scripted after the fact.
type SVGCanvas struct {
	canvas.State
	width, height float64
	family        string
	interactive   bool
	body          bytes.Buffer
}

// NewSVG returns an empty SVG canvas of the given size in pixels.
func NewSVG(width, height float64, opts ...SVGOption) *SVGCanvas {
	s := &SVGCanvas{
		State:  canvas.NewState(),
		width:  width,
		height: height,
		family: fonts.SansFamily,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SVGCanvas) Width() float64  { return s.width }
func (s *SVGCanvas) Height() float64 { return s.height }

func (s *SVGCanvas) DrawLine(p1, p2 geom.Point) {
	fmt.Fprintf(&s.body, `<path%s d="M %s L %s" style="%s" />`+"\n",
		s.classAttr(), coord(p1), coord(p2), s.strokeStyle(false))
}

func (s *SVGCanvas) DrawPolygon(pts []geom.Point) {
	if len(pts) < 2 {
		return
	}
	var d strings.Builder
	d.WriteString("M " + coord(pts[0]))
	for _, p := range pts[1:] {
		d.WriteString(" L " + coord(p))
	}
	fill := s.Style().Fill
	if fill {
		d.WriteString(" Z")
	}
	fmt.Fprintf(&s.body, `<path%s d="%s" style="%s" />`+"\n", s.classAttr(), d.String(), s.strokeStyle(fill))
}

func (s *SVGCanvas) DrawEllipse(p1, p2 geom.Point) {
	c := geom.Mid(p1, p2)
	fmt.Fprintf(&s.body, `<ellipse%s cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" style="%s" />`+"\n",
		s.classAttr(), c.X, c.Y, math.Abs(p2.X-p1.X)/2, math.Abs(p2.Y-p1.Y)/2, s.strokeStyle(s.Style().Fill))
}

func (s *SVGCanvas) DrawString(str string, pos geom.Point, size float64) {
	col := s.Style().Colour
	fmt.Fprintf(&s.body, `<text%s x="%.1f" y="%.1f" font-size="%.1f" font-family="%s" fill="%s"%s>%s</text>`+"\n",
		s.classAttr(), pos.X, pos.Y, size, escapeXML(s.family), col.Hex(), opacityAttr("fill-opacity", col), escapeXML(str))
}

// DrawWavyLine draws p1-p2 as a run of quadratic curves, the first half
// in col1 and the second in col2.
func (s *SVGCanvas) DrawWavyLine(p1, p2 geom.Point, col1, col2 canvas.Colour, nSegments int, vertOffset float64) {
	segs := wave(p1, p2, nSegments, vertOffset)
	saved := s.Style().Colour
	defer s.SetColour(saved)

	half := len(segs)
	if !col1.Equal(col2) {
		half = (len(segs) + 1) / 2
	}
	write := func(start geom.Point, part []waveSegment, col canvas.Colour) {
		if len(part) == 0 {
			return
		}
		s.SetColour(col)
		var d strings.Builder
		d.WriteString("M " + coord(start))
		for _, seg := range part {
			d.WriteString(" Q " + coord(seg.Ctrl) + " " + coord(seg.End))
		}
		fmt.Fprintf(&s.body, `<path%s d="%s" style="%s" />`+"\n", s.classAttr(), d.String(), s.strokeStyle(false))
	}
	write(p1, segs[:half], col1)
	if half < len(segs) {
		write(segs[half-1].End, segs[half:], col2)
	}
}

// Bytes returns the complete SVG document.
func (s *SVGCanvas) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.width, s.height, s.width, s.height)
	if s.interactive {
		fmt.Fprintf(&buf, "<style>%s\n</style>\n", atomInteractionCSS)
	}
	buf.Write(s.body.Bytes())
	if s.interactive {
		fmt.Fprintf(&buf, "<script><![CDATA[%s\n]]></script>\n", atomInteractionJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// WriteTo writes the complete SVG document to w.
func (s *SVGCanvas) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.Bytes())
	return int64(n), err
}

// Reset discards everything drawn so far.
func (s *SVGCanvas) Reset() { s.body.Reset() }

func (s *SVGCanvas) classAttr() string {
	if c := s.Style().Tag.Class(); c != "" {
		return fmt.Sprintf(` class="%s"`, c)
	}
	return ""
}

// strokeStyle returns the inline style for the current state. Filled
// shapes are filled and outlined in the same colour.
func (s *SVGCanvas) strokeStyle(fill bool) string {
	st := s.Style()
	var b strings.Builder
	if fill {
		fmt.Fprintf(&b, "fill:%s;", st.Colour.Hex())
		if !st.Colour.Opaque() {
			fmt.Fprintf(&b, "fill-opacity:%.2f;", st.Colour.A)
		}
	} else {
		b.WriteString("fill:none;")
	}
	fmt.Fprintf(&b, "stroke:%s;stroke-width:%.1fpx;stroke-linecap:butt;stroke-linejoin:miter", st.Colour.Hex(), st.LineWidth)
	if !st.Colour.Opaque() {
		fmt.Fprintf(&b, ";stroke-opacity:%.2f", st.Colour.A)
	}
	if len(st.Dash) > 0 {
		fmt.Fprintf(&b, ";stroke-dasharray:%s", st.Dash.SVG(st.LineWidth))
	}
	return b.String()
}

func opacityAttr(name string, c canvas.Colour) string {
	if c.Opaque() {
		return ""
	}
	return fmt.Sprintf(` %s="%.2f"`, name, c.A)
}

func coord(p geom.Point) string { return fmt.Sprintf("%.1f,%.1f", p.X, p.Y) }

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
