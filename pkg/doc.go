// Package pkg provides the libraries behind moldraw, a 2D molecule and
// reaction depiction engine.
//
// # Overview
//
// A molecule with 2D coordinates goes in; a drawing comes out. Layout
// decisions (scaling, label placement, multiple-bond geometry, highlights,
// annotations) live in one engine that draws against an abstract canvas,
// so every output format shares them.
//
//  1. [mol] - Molecule model: atoms, bonds, coordinates, substance groups,
//     stereo groups, rings and reactions
//  2. [io] - JSON and BSON documents of molecules and reactions
//  3. [moldraw] - The drawing engine: molecules, grids and reaction schemes
//  4. [render] - Canvases and formats: SVG, PNG, PDF, recorded JSON, Graphviz
//  5. [pipeline] - Orchestration (load → draw → encode) with caching
//
// # Architecture
//
// The typical data flow:
//
//	JSON / BSON document
//	         ↓
//	    [io] package (decode, validate)
//	         ↓
//	    [moldraw] package (scale, place labels, draw bonds and highlights)
//	         ↓
//	    [render/canvas] implementation (SVG, PNG or recorder)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
// Draw the first molecule of a document to SVG:
//
//	import (
//	    "context"
//	    "os"
//
//	    "github.com/FabioUrbina/rdkit/pkg/pipeline"
//	)
//
//	doc, _ := pipeline.LoadFile(context.Background(), "aspirin.json")
//	opts := pipeline.DefaultOptions()
//	artifacts, _, _ := pipeline.Render(context.Background(), doc, opts, nil)
//	os.WriteFile("aspirin.svg", artifacts["svg"], 0o644)
//
// Supporting packages: [geom] (points, rectangles, intersections, arcs),
// [errors] (error codes shared by the CLI and the HTTP service), [cache]
// (file, Redis and null caches with content-addressed keys),
// [observability] (hooks for logging and tracing), [fonts] (bundled
// faces) and [buildinfo] (version stamping).
//
// [mol]: https://pkg.go.dev/github.com/FabioUrbina/rdkit/pkg/mol
// [io]: https://pkg.go.dev/github.com/FabioUrbina/rdkit/pkg/io
// [moldraw]: https://pkg.go.dev/github.com/FabioUrbina/rdkit/pkg/moldraw
// [render]: https://pkg.go.dev/github.com/FabioUrbina/rdkit/pkg/render
// [render/canvas]: https://pkg.go.dev/github.com/FabioUrbina/rdkit/pkg/render/canvas
// [pipeline]: https://pkg.go.dev/github.com/FabioUrbina/rdkit/pkg/pipeline
// [geom]: https://pkg.go.dev/github.com/FabioUrbina/rdkit/pkg/geom
// [errors]: https://pkg.go.dev/github.com/FabioUrbina/rdkit/pkg/errors
// [cache]: https://pkg.go.dev/github.com/FabioUrbina/rdkit/pkg/cache
// [observability]: https://pkg.go.dev/github.com/FabioUrbina/rdkit/pkg/observability
// [fonts]: https://pkg.go.dev/github.com/FabioUrbina/rdkit/pkg/fonts
// [buildinfo]: https://pkg.go.dev/github.com/FabioUrbina/rdkit/pkg/buildinfo
package pkg
