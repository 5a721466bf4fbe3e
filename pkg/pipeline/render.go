package pipeline

import (
	"context"
	"slices"
	"time"

	"github.com/FabioUrbina/rdkit/pkg/errors"
	molio "github.com/FabioUrbina/rdkit/pkg/io"
	"github.com/FabioUrbina/rdkit/pkg/moldraw"
	"github.com/FabioUrbina/rdkit/pkg/observability"
	"github.com/FabioUrbina/rdkit/pkg/render"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
	"github.com/FabioUrbina/rdkit/pkg/render/sink"
	"github.com/FabioUrbina/rdkit/pkg/render/text"
)

// Render draws doc and encodes it in every requested format. The drawing
// is done once per kind of canvas: SVG and PDF share one, PNG and JSON
// have their own.
func Render(ctx context.Context, doc *molio.Document, opts Options, m text.Measurer) (map[string][]byte, moldraw.Metadata, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, moldraw.Metadata{}, err
	}
	w, h := CanvasSize(doc, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))
	var meta moldraw.Metadata
	wants := func(f string) bool { return slices.Contains(opts.Formats, f) }

	if wants(FormatSVG) || wants(FormatPDF) {
		svg := sink.NewSVG(w, h, svgOptions(opts)...)
		var err error
		if meta, err = Draw(ctx, svg, doc, opts, m); err != nil {
			return nil, meta, err
		}
		if wants(FormatSVG) {
			if err := encode(ctx, artifacts, FormatSVG, func() ([]byte, error) { return svg.Bytes(), nil }); err != nil {
				return nil, meta, err
			}
		}
		if wants(FormatPDF) {
			if err := encode(ctx, artifacts, FormatPDF, func() ([]byte, error) {
				if !render.Available() {
					return nil, errors.New(errors.ErrCodeUnsupported, "pdf output requires rsvg-convert")
				}
				return sink.RenderPDF(ctx, svg)
			}); err != nil {
				return nil, meta, err
			}
		}
	}

	if wants(FormatPNG) {
		png, err := sink.NewPNG(w, h, sink.WithScale(opts.PNGScale))
		if err != nil {
			return nil, meta, errors.Wrap(errors.ErrCodeInternal, err, "create png canvas")
		}
		defer png.Close()
		if meta, err = Draw(ctx, png, doc, opts, m); err != nil {
			return nil, meta, err
		}
		if err := encode(ctx, artifacts, FormatPNG, png.Bytes); err != nil {
			return nil, meta, err
		}
	}

	if wants(FormatJSON) {
		rec := canvas.NewRecorder(w, h)
		var err error
		if meta, err = Draw(ctx, rec, doc, opts, m); err != nil {
			return nil, meta, err
		}
		jsonOpts := []sink.JSONOption{sink.WithMetadata(meta)}
		if opts.Mode == ModeMolecule {
			jsonOpts = append(jsonOpts, sink.WithLegend(opts.Legend))
		}
		if err := encode(ctx, artifacts, FormatJSON, func() ([]byte, error) {
			return sink.RenderJSON(rec, jsonOpts...)
		}); err != nil {
			return nil, meta, err
		}
	}
	return artifacts, meta, nil
}

func svgOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.Interactive {
		out = append(out, sink.WithInteraction())
	}
	if opts.Draw.ComicMode {
		out = append(out, sink.WithComicFont())
	}
	return out
}

// encode runs one encoder with hooks, storing its output under format.
func encode(ctx context.Context, artifacts map[string][]byte, format string, fn func() ([]byte, error)) error {
	hooks := observability.Render()
	hooks.OnEncodeStart(ctx, format)
	start := time.Now()
	data, err := fn()
	if err != nil && errors.GetCode(err) == "" {
		err = errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
	}
	hooks.OnEncodeComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		return err
	}
	artifacts[format] = data
	return nil
}
