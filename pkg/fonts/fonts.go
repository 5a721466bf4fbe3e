// Package fonts provides the fonts used to draw and measure atom labels.
//
// The TrueType data comes from the Go font family in golang.org/x/image,
// compiled into the binary, so rendering needs no system fonts. SVG output
// names a CSS family instead and leaves the choice to the viewer.
package fonts

import (
	"sync"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// SansFamily is the CSS font-family for normal drawings.
const SansFamily = `'Go', 'DejaVu Sans', 'Helvetica', 'Arial', sans-serif`

// ComicFamily is the CSS font-family for comic-mode drawings.
const ComicFamily = `'xkcd Script', 'Comic Sans MS', 'Bradley Hand', 'Segoe Script', sans-serif`

// RegularTTF returns Go Regular.
func RegularTTF() []byte { return goregular.TTF }

// Parsed fonts (computed once on first access).
var (
	regular     *opentype.Font
	regularErr  error
	regularOnce sync.Once
)

// Regular returns Go Regular parsed for rasterising. The result is cached
// after the first call and is safe to share between goroutines.
func Regular() (*opentype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = opentype.Parse(goregular.TTF)
	})
	return regular, regularErr
}
