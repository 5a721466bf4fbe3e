package pipeline

import (
	"context"

	"github.com/FabioUrbina/rdkit/pkg/cache"
	"github.com/FabioUrbina/rdkit/pkg/errors"
	molio "github.com/FabioUrbina/rdkit/pkg/io"
	"github.com/FabioUrbina/rdkit/pkg/render/nodelink"
)

// FormatDOT is the Graphviz source format, only valid for graph exports.
const FormatDOT = "dot"

// GraphOptions configures a node-link export of one molecule.
type GraphOptions struct {
	Format    string  `json:"format,omitempty"`
	Index     int     `json:"index,omitempty"`
	Detailed  bool    `json:"detailed,omitempty"`
	UseCoords bool    `json:"use_coords,omitempty"`
	PNGScale  float64 `json:"png_scale,omitempty"`
}

func (o *GraphOptions) setDefaults() error {
	if o.Format == "" {
		o.Format = FormatSVG
	}
	switch o.Format {
	case FormatDOT, FormatSVG, FormatPNG, FormatPDF:
	default:
		return errors.New(errors.ErrCodeInvalidOptions, "invalid graph format: %q (must be one of: dot, svg, png, pdf)", o.Format)
	}
	if o.Index < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "molecule index must not be negative, got %d", o.Index)
	}
	if o.PNGScale <= 0 {
		o.PNGScale = DefaultPNGScale
	}
	return nil
}

func (o GraphOptions) keyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		Format:    o.Format,
		Index:     o.Index,
		Detailed:  o.Detailed,
		UseCoords: o.UseCoords,
	}
}

// RenderGraph exports the molecular graph of one molecule of doc through
// Graphviz.
func RenderGraph(ctx context.Context, doc *molio.Document, opts GraphOptions) ([]byte, error) {
	if err := opts.setDefaults(); err != nil {
		return nil, err
	}
	if opts.Index >= len(doc.Molecules) || doc.Molecules[opts.Index] == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"molecule %d out of range (document has %d)", opts.Index, len(doc.Molecules))
	}
	dot := nodelink.ToDOT(doc.Molecules[opts.Index], nodelink.Options{
		Detailed:  opts.Detailed,
		UseCoords: opts.UseCoords,
	})

	artifacts := make(map[string][]byte, 1)
	err := encode(ctx, artifacts, opts.Format, func() ([]byte, error) {
		switch opts.Format {
		case FormatDOT:
			return []byte(dot), nil
		case FormatPNG:
			return nodelink.RenderPNG(ctx, dot, opts.PNGScale)
		case FormatPDF:
			return nodelink.RenderPDF(ctx, dot)
		default:
			return nodelink.RenderSVG(ctx, dot)
		}
	})
	if err != nil {
		return nil, err
	}
	return artifacts[opts.Format], nil
}
