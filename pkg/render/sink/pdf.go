package sink

import (
	"context"

	"github.com/FabioUrbina/rdkit/pkg/render"
)

// RenderPDF converts a finished SVG canvas to PDF.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, s *SVGCanvas) ([]byte, error) {
	return render.ToPDF(ctx, s.Bytes())
}
