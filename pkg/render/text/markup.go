package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Mode is the typesetting mode of a glyph.
type Mode uint8

const (
	Normal Mode = iota
	Superscript
	Subscript
)

// Sub- and superscripts are drawn smaller and off the baseline, as
// fractions of the font size.
const (
	scriptScale = 0.75
	superShift  = 0.5
	subShift    = -0.2
)

type glyph struct {
	r    rune
	mode Mode
}

var tags = []struct {
	tag  string
	mode Mode
	open bool
}{
	{"<sup>", Superscript, true},
	{"</sup>", Superscript, false},
	{"<sub>", Subscript, true},
	{"</sub>", Subscript, false},
}

// parseMarkup splits s into glyphs, applying <sup> and <sub>. A label
// wrapped in <lit> is reported as literal and is never broken into
// pieces for orientation.
func parseMarkup(s string) (glyphs []glyph, literal bool) {
	s = norm.NFC.String(s)
	if rest, ok := strings.CutPrefix(s, "<lit>"); ok {
		literal = true
		s = strings.TrimSuffix(rest, "</lit>")
	}

	mode := Normal
outer:
	for len(s) > 0 {
		if s[0] == '<' {
			for _, t := range tags {
				if strings.HasPrefix(s, t.tag) {
					if t.open {
						mode = t.mode
					} else {
						mode = Normal
					}
					s = s[len(t.tag):]
					continue outer
				}
			}
		}
		r, size := utf8.DecodeRuneInString(s)
		glyphs = append(glyphs, glyph{r: r, mode: mode})
		s = s[size:]
	}
	return glyphs, literal
}

// splitPieces breaks a label into the units that move as a block when the
// label is oriented: "NH<sub>2</sub>" becomes "N" and "H2". A new piece
// starts at each upper-case normal glyph once the current piece has a
// normal glyph, so an isotope superscript stays with its element.
func splitPieces(glyphs []glyph, literal bool) [][]glyph {
	if literal || len(glyphs) == 0 {
		return [][]glyph{glyphs}
	}
	var pieces [][]glyph
	var cur []glyph
	hasNormal := false
	for _, g := range glyphs {
		if g.mode == Normal && unicode.IsUpper(g.r) && hasNormal {
			pieces = append(pieces, cur)
			cur, hasNormal = nil, false
		}
		cur = append(cur, g)
		if g.mode == Normal {
			hasNormal = true
		}
	}
	return append(pieces, cur)
}

// StripMarkup returns s without markup tags.
func StripMarkup(s string) string {
	glyphs, _ := parseMarkup(s)
	var b strings.Builder
	for _, g := range glyphs {
		b.WriteRune(g.r)
	}
	return b.String()
}
