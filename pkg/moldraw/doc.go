// Package moldraw lays out and draws 2D depictions of molecules.
//
// # Overview
//
// A [Drawer] takes a [mol.Molecule] with 2D coordinates and turns it into
// calls on a [canvas.Canvas]: lines and polygons for bonds, strings for
// atom labels and notes, ellipses and arcs for highlights. The package never
// rasterises anything itself; the sinks in render/sink turn the canvas calls
// into SVG, PNG, PDF or JSON.
//
// # Basic Usage
//
// Create a canvas, wrap it in a drawer and draw:
//
//	rec := canvas.NewRecorder(300, 300)
//	d, err := moldraw.New(rec, -1, -1)
//	if err != nil {
//		return err
//	}
//	if err := d.DrawMolecule(m, "ethanol", nil); err != nil {
//		return err
//	}
//
// A negative panel size means the whole canvas. [Drawer.DrawMolecules]
// draws a grid of panels with one shared scale, and [Drawer.DrawReaction]
// draws a reaction scheme with plus signs and an arrow.
//
// # Coordinate Spaces
//
// Molecule space has y pointing up and arbitrary units, usually with bonds
// about 1.5 long. Device space is in pixels with y pointing down. The
// [Transform] maps one to the other; [Drawer.ToDevice] and
// [Drawer.ToMolecule] are exact inverses.
//
// # Layout
//
// Drawing a molecule happens in two passes. Extraction works on a private
// copy of the molecule at unit scale: it centres and rotates the copy,
// resolves atom labels and their orientation, and places every note,
// radical and bracket so it does not overlap the bonds or other text.
// Scaling then finds the largest scale at which the atoms, labels, notes
// and highlights all fit the panel. Labels do not grow with the scale, so
// the search repeats until the scale settles; [Options.FixedBondLength]
// and [Options.FixedScale] cap the result.
//
// # Bonds
//
// Each bond is drawn from its type, direction and stereo:
//
//   - single, double, triple and aromatic bonds as one to three lines,
//     with ring double bonds drawn inside the ring and shortened
//   - wedges as filled triangles, hashes as a fan of lines
//   - dative bonds as arrows, zero-order bonds dotted
//   - query bonds with split dashes or a short label
//
// Lines are trimmed back where they meet an atom label.
//
// # Highlighting
//
// [Highlights] colours atoms and bonds with one colour each; with
// [Options.ContinuousHighlight] they are drawn as thick strokes under the
// bonds, otherwise as circles round the atoms. [MultiHighlights] allows
// several colours per atom or bond, drawn as equal arcs and parallel
// stripes.
//
// # Errors
//
// Contract violations, such as out-of-range highlight indices or mismatched
// legend counts, return an [errors.Error] with code PRECONDITION before
// anything is drawn. A molecule without coordinates draws nothing and is
// not an error. Annotations that cannot be placed without overlap are put
// in the least bad spot and logged as warnings.
//
// # Concurrency
//
// A Drawer is not safe for concurrent use. Render independent molecules on
// separate drawers; see [pipeline.Runner.RenderBatch].
//
// [errors.Error]: github.com/FabioUrbina/rdkit/pkg/errors.Error
// [pipeline.Runner.RenderBatch]: github.com/FabioUrbina/rdkit/pkg/pipeline.Runner.RenderBatch
package moldraw
