// Package io reads and writes molecule documents as JSON or BSON.
//
// # Overview
//
// A [Document] holds the molecules to draw and, optionally, a reaction.
// JSON is the human-editable format; BSON is accepted for documents
// exported from document stores and is what the HTTP service takes when
// clients send application/bson.
//
// # JSON Format
//
// A document has two optional top-level keys:
//
//	{
//	  "molecules": [
//	    {
//	      "name": "methanol",
//	      "atoms": [{"z": 6, "hs": 3}, {"z": 8, "hs": 1}],
//	      "bonds": [{"begin": 0, "end": 1, "type": "single"}],
//	      "coords": [{"x": 0, "y": 0}, {"x": 1.5, "y": 0}]
//	    }
//	  ],
//	  "reaction": {"reactants": [...], "agents": [...], "products": [...]}
//	}
//
// A bare molecule object is also accepted and is read as a one-molecule
// document. Field names for atoms, bonds and groups are documented on the
// types in package mol.
//
// # Import
//
// Use [Import] to read a file, with the format taken from the extension,
// or [ReadJSON] / [ReadBSON] for any io.Reader:
//
//	doc, err := io.Import("caffeine.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Every molecule is validated on the way in, so indices in a returned
// document are always in range.
//
// # Export
//
// [Export], [WriteJSON] and [WriteBSON] write a document back out.
// Coordinates are preserved exactly, so a document can be read, rotated or
// re-centred, and written again.
package io
