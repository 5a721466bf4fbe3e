package text

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Measurer reports glyph metrics at a font size of 1. Ascent is measured
// up from the baseline, descent down from it; both are non-negative.
type Measurer interface {
	Metrics(r rune) (advance, ascent, descent float64)
}

// ApproxMeasurer is a fixed-pitch metric that needs no font. Every glyph
// advances 0.6 (0.3 for a space), rises 0.7 above the baseline, and the
// letters g, j, p, q and y drop 0.2 below it.
type ApproxMeasurer struct{}

func (ApproxMeasurer) Metrics(r rune) (advance, ascent, descent float64) {
	if r == ' ' {
		return 0.3, 0, 0
	}
	if strings.ContainsRune("gjpqy", r) {
		return 0.6, 0.7, 0.2
	}
	return 0.6, 0.7, 0
}

// measureSize is the size the face is opened at. Metrics are divided by
// it, so the value only affects rounding.
const measureSize = 100

type metrics struct{ advance, ascent, descent float64 }

// FaceMeasurer measures glyphs with a TrueType or OpenType face.
// Results are cached per rune; it is safe for concurrent use.
type FaceMeasurer struct {
	mu    sync.RWMutex
	face  font.Face
	cache map[rune]metrics
}

// NewFaceMeasurer opens the font in ttf, or Go Regular when ttf is nil.
func NewFaceMeasurer(ttf []byte) (*FaceMeasurer, error) {
	if ttf == nil {
		ttf = goregular.TTF
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    measureSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("open face: %w", err)
	}
	return &FaceMeasurer{face: face, cache: make(map[rune]metrics)}, nil
}

func (m *FaceMeasurer) Metrics(r rune) (advance, ascent, descent float64) {
	m.mu.RLock()
	v, ok := m.cache[r]
	m.mu.RUnlock()
	if ok {
		return v.advance, v.ascent, v.descent
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	bounds, adv, ok := m.face.GlyphBounds(r)
	if !ok {
		bounds, adv, _ = m.face.GlyphBounds('?')
	}
	v = metrics{
		advance: float64(adv) / 64 / measureSize,
		ascent:  max(0, float64(-bounds.Min.Y)/64/measureSize),
		descent: max(0, float64(bounds.Max.Y)/64/measureSize),
	}
	m.cache[r] = v
	return v.advance, v.ascent, v.descent
}
