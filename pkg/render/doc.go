// Package render holds the output side of molecule drawing.
//
// # Overview
//
// The drawing engine in package moldraw never writes a file format. It
// issues line, polygon, ellipse and text calls against a [canvas.Canvas].
// The subpackages here supply those canvases and the formats around them:
//
//   - [canvas]: the Canvas contract, colours, dash patterns and a
//     recording canvas
//   - [text]: string measurement, sub/superscript markup and label layout
//   - [sink]: SVG and PNG canvases plus JSON export of recorded calls
//   - [nodelink]: a Graphviz view of the bond graph
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := sink.NewSVG(300, 300) // draw into it, then:
//	pdf, err := render.ToPDF(ctx, svg.Bytes())
//	png, err := render.ToPNG(ctx, svg.Bytes(), 2.0) // 2x scale
//
// PNG output does not need librsvg: [sink.PNG] rasterizes directly.
//
// [canvas]: github.com/FabioUrbina/rdkit/pkg/render/canvas
// [text]: github.com/FabioUrbina/rdkit/pkg/render/text
// [sink]: github.com/FabioUrbina/rdkit/pkg/render/sink
// [sink.PNG]: github.com/FabioUrbina/rdkit/pkg/render/sink.PNG
// [nodelink]: github.com/FabioUrbina/rdkit/pkg/render/nodelink
// [canvas.Canvas]: github.com/FabioUrbina/rdkit/pkg/render/canvas.Canvas
package render
