// Package canvas defines the drawing surface the molecule engine renders
// onto.
//
// A [Canvas] keeps a small amount of state (colour, line width, dash,
// fill and a [Tag]) and draws four primitives in device space: lines,
// polygons, ellipses and strings. Everything else the engine needs (arcs,
// arrows, wedges, wavy lines) is built from these.
//
// [Recorder] keeps every call and is the canvas used in tests and for
// JSON export. Concrete image formats live in package sink.
package canvas
