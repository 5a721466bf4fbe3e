// Package mol defines the molecular graph that the drawing engine consumes.
//
// # Overview
//
// A [Molecule] is a list of [Atom] values, a list of [Bond] values joining
// them by index, and optionally one 2D coordinate per atom. Coordinates are
// produced elsewhere (a depiction algorithm or a sketcher); this package
// only stores them.
//
// Beyond the plain graph a molecule can carry the extra structure that
// affects how it is drawn:
//
//   - [SubstanceGroup]: polymer brackets, data groups and their labels
//   - [StereoGroup]: enhanced stereo (ABS, AND, OR) groups
//   - [LinkNode]: repeatable atoms with a (min-max) count
//   - Query atoms and bonds, classified by [QueryKind]
//   - Variable attachment bonds via [Bond.EndPoints]
//
// # Rings
//
// [Molecule.BondRings] perceives rings lazily: for every bond the smallest
// cycle through it is found and duplicates are dropped. The result is
// enough to decide on which side of a ring bond the second line of a
// double bond belongs.
//
// # Serialization
//
// All types carry json and bson tags. Enumerations marshal to readable
// strings in JSON:
//
//	{
//	  "name": "ethene",
//	  "atoms": [{"z": 6, "hs": 2}, {"z": 6, "hs": 2}],
//	  "bonds": [{"begin": 0, "end": 1, "type": "double"}],
//	  "coords": [{"x": 0, "y": 0}, {"x": 1.5, "y": 0}]
//	}
//
// Reading and writing whole documents lives in package io.
package mol
