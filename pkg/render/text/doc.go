// Package text measures and lays out the short strings in a molecule
// drawing.
//
// # Markup
//
// Labels use a tiny markup: <sup>...</sup> and <sub>...</sub> for
// superscripts and subscripts, and a leading <lit> to mark a label that
// must be drawn exactly as written. Strings are NFC-normalised before
// layout.
//
// # Layout
//
// [Drawer.Label] lays out an atom label towards an [Orient]. The label is
// broken into pieces at upper-case letters ("NH<sub>2</sub>" is "N" and
// "H2"), the first piece is centred on the atom and the others follow
// east, west, north or south. [Drawer.Aligned] lays out a plain line of
// text with an [Align].
//
// The result is a [Block]: one [StringRect] per glyph in a y-up frame
// relative to the anchor. The drawing engine scales blocks into molecule
// space to test for collisions and draws them in device space.
//
// # Font Size
//
// The font size in pixels is FontScale * BaseFontSize, clamped to the
// minimum and maximum sizes unless the caller asks to ignore them.
// Glyph metrics come from a [Measurer]: [FaceMeasurer] uses a real font
// (Go Regular by default), [ApproxMeasurer] a fixed-pitch approximation
// that needs no font data.
package text
