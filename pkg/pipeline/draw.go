package pipeline

import (
	"context"
	"time"

	"github.com/FabioUrbina/rdkit/pkg/errors"
	molio "github.com/FabioUrbina/rdkit/pkg/io"
	"github.com/FabioUrbina/rdkit/pkg/mol"
	"github.com/FabioUrbina/rdkit/pkg/moldraw"
	"github.com/FabioUrbina/rdkit/pkg/observability"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
	"github.com/FabioUrbina/rdkit/pkg/render/text"
)

// CanvasSize returns the size in pixels of the drawing of doc. Grids grow
// with the number of molecules; other modes use Width and Height.
func CanvasSize(doc *molio.Document, opts Options) (w, h float64) {
	if opts.Mode != ModeGrid {
		return opts.Width, opts.Height
	}
	n := max(1, len(doc.Molecules))
	cols := min(max(1, opts.Columns), n)
	rows := (n + cols - 1) / cols
	return float64(cols) * opts.PanelWidth, float64(rows) * opts.PanelHeight
}

// Draw lays out doc and draws it on c, which must be [CanvasSize] big.
// With a nil measurer the drawer's approximate metrics are used.
func Draw(ctx context.Context, c canvas.Canvas, doc *molio.Document, opts Options, m text.Measurer) (moldraw.Metadata, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return moldraw.Metadata{}, err
	}
	if err := ctx.Err(); err != nil {
		return moldraw.Metadata{}, err
	}
	hooks := observability.Render()
	hooks.OnDrawStart(ctx, opts.Mode, atomCount(doc))
	start := time.Now()

	meta, err := draw(c, doc, opts, m)
	hooks.OnDrawComplete(ctx, opts.Mode, time.Since(start), err)
	return meta, err
}

func draw(c canvas.Canvas, doc *molio.Document, opts Options, m text.Measurer) (moldraw.Metadata, error) {
	drawerOpts := []moldraw.Option{
		moldraw.WithOptions(opts.Draw),
		moldraw.WithLogger(opts.Logger),
	}
	if m != nil {
		drawerOpts = append(drawerOpts, moldraw.WithMeasurer(m))
	}

	panelW, panelH := -1.0, -1.0
	if opts.Mode == ModeGrid {
		panelW, panelH = opts.PanelWidth, opts.PanelHeight
	}
	d, err := moldraw.New(c, panelW, panelH, drawerOpts...)
	if err != nil {
		return moldraw.Metadata{}, err
	}

	switch opts.Mode {
	case ModeMolecule:
		if len(doc.Molecules) == 0 {
			return moldraw.Metadata{}, errors.New(errors.ErrCodeInvalidInput, "document has no molecules")
		}
		if opts.Index >= len(doc.Molecules) {
			return moldraw.Metadata{}, errors.New(errors.ErrCodeInvalidInput,
				"molecule %d out of range (document has %d)", opts.Index, len(doc.Molecules))
		}
		target := doc.Molecules[opts.Index]
		legend := opts.Legend
		if legend == "" && !opts.NoLegends && target != nil {
			legend = target.Name
		}
		err = d.DrawMolecule(target, legend, opts.Highlights)

	case ModeGrid:
		if len(doc.Molecules) == 0 {
			return moldraw.Metadata{}, errors.New(errors.ErrCodeInvalidInput, "document has no molecules")
		}
		var legends []string
		if !opts.NoLegends {
			legends = make([]string, len(doc.Molecules))
			for i, dm := range doc.Molecules {
				if dm != nil {
					legends[i] = dm.Name
				}
			}
		}
		err = d.DrawMolecules(doc.Molecules, legends, nil)

	case ModeReaction:
		if doc.Reaction == nil {
			return moldraw.Metadata{}, errors.New(errors.ErrCodeInvalidInput, "document has no reaction")
		}
		err = d.DrawReaction(doc.Reaction, opts.HighlightByReactant, nil)
	}
	if err != nil {
		return moldraw.Metadata{}, err
	}
	return d.Metadata(), nil
}

func atomCount(doc *molio.Document) int {
	n := 0
	for _, m := range doc.Molecules {
		if m != nil {
			n += len(m.Atoms)
		}
	}
	if r := doc.Reaction; r != nil {
		for _, group := range [][]*mol.Molecule{r.Reactants, r.Agents, r.Products} {
			for _, m := range group {
				if m != nil {
					n += len(m.Atoms)
				}
			}
		}
	}
	return n
}
