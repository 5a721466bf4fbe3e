// Package sink provides the output formats for molecule drawings.
//
// # Overview
//
// A "sink" is where the primitives of a [moldraw.Drawer] end up. Some sinks
// are canvases the drawer paints on directly; the others convert a
// finished canvas:
//
//   - SVG: [SVGCanvas], vector output with one class per atom and bond
//   - PNG: [PNGCanvas], rasterised in-process with gg
//   - PDF: [RenderPDF], converted from SVG (requires rsvg-convert)
//   - JSON: [RenderJSON], the recorded primitives for external tools
//
// # SVG Output
//
// Every element carries the tag of the atom or bond it depicts as its
// class, for example "bond-3 atom-0 atom-1", so a stylesheet or script can
// pick out parts of the molecule:
//
//	svg := sink.NewSVG(300, 300, sink.WithInteraction())
//	d, _ := moldraw.New(svg, -1, -1)
//	if err := d.DrawMolecule(m, "", nil); err != nil {
//		return err
//	}
//	os.WriteFile("mol.svg", svg.Bytes(), 0o644)
//
// # SVG Options
//
//   - [WithInteraction]: fade everything not bonded to the hovered atom
//   - [WithComicFont]: hand-written font family, for comic mode
//   - [WithFontFamily]: any CSS font-family
//
// # PNG Output
//
// [PNGCanvas] draws with github.com/fogleman/gg and the Go fonts, so its
// text metrics match [text.FaceMeasurer]. [WithScale] renders at a higher
// resolution without changing the layout.
//
// # JSON Output
//
// [RenderJSON] turns a [canvas.Recorder] into a list of primitives with
// their colours and tags, plus the atom positions from
// [moldraw.Drawer.Metadata] when [WithMetadata] is given.
//
// # PDF Output
//
// [RenderPDF] and [RenderPNGFromSVG] shell out to rsvg-convert. Install it
// with:
//
//	brew install librsvg      # macOS
//	apt install librsvg2-bin  # Linux
//
// [text.FaceMeasurer]: github.com/FabioUrbina/rdkit/pkg/render/text.FaceMeasurer
package sink
