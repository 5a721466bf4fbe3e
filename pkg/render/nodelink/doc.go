// Package nodelink renders a molecule's bond graph as a node-link diagram.
//
// # Overview
//
// This package turns a [mol.Molecule] into Graphviz DOT and renders it with
// the embedded Graphviz build in go-graphviz. Atoms become circles labelled
// with their element symbol and bonds become edges styled by order. It is
// a debugging view of a document's connectivity, independent of the
// structure-diagram engine in package moldraw.
//
// # Usage
//
//	dot := nodelink.ToDOT(m, nodelink.Options{UseCoords: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//	png, err := nodelink.RenderPNG(ctx, dot, 2.0)
//
// # Options
//
//   - Detailed: node labels also show the atom index, charge and H count
//   - UseCoords: pin nodes to the molecule's 2D coordinates via neato
//
// [mol.Molecule]: github.com/FabioUrbina/rdkit/pkg/mol.Molecule
package nodelink
