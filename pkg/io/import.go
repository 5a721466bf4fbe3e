package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/FabioUrbina/rdkit/pkg/mol"
)

// Document formats.
const (
	FormatJSON = "json"
	FormatBSON = "bson"
)

// Document is the on-disk unit: a list of molecules, a reaction, or both.
type Document struct {
	Molecules []*mol.Molecule `json:"molecules,omitempty" bson:"molecules,omitempty"`
	Reaction  *mol.Reaction   `json:"reaction,omitempty" bson:"reaction,omitempty"`
}

// Len returns the number of molecules in the document, reaction components
// included.
func (d *Document) Len() int {
	n := len(d.Molecules)
	if d.Reaction != nil {
		n += len(d.Reaction.Reactants) + len(d.Reaction.Agents) + len(d.Reaction.Products)
	}
	return n
}

// ReadJSON decodes a document from r.
//
// The input is either a document object with "molecules" and/or "reaction"
// keys, or a single bare molecule object (one with an "atoms" key):
//
//	{"atoms": [{"z": 8}], "bonds": [], "coords": [{"x": 0, "y": 0}]}
//
// Every molecule is validated with [mol.Molecule.Validate]; the first
// failure is returned wrapped with the molecule's position.
func ReadJSON(r io.Reader) (*Document, error) {
	var raw map[string]json.RawMessage
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	var doc Document
	if _, bare := raw["atoms"]; bare {
		var m mol.Molecule
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode molecule: %w", err)
		}
		doc.Molecules = []*mol.Molecule{&m}
	} else if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &doc, doc.validate()
}

// ReadBSON decodes a document from a single BSON document read from r.
// Unlike JSON, BSON input must always be a document with "molecules"
// and/or "reaction" keys.
func ReadBSON(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	var doc Document
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &doc, doc.validate()
}

// Read decodes a document in the given format.
func Read(r io.Reader, format string) (*Document, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatBSON:
		return ReadBSON(r)
	}
	return nil, fmt.Errorf("unknown document format %q", format)
}

// Decode is Read for an in-memory buffer.
func Decode(data []byte, format string) (*Document, error) {
	return Read(bytes.NewReader(data), format)
}

// Import reads the document at path, choosing the format from its
// extension with [FormatFromPath].
func Import(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	doc, err := Read(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// FormatFromPath returns FormatBSON for ".bson" files and FormatJSON for
// everything else.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".bson") {
		return FormatBSON
	}
	return FormatJSON
}

func (d *Document) validate() error {
	for i, m := range d.Molecules {
		if m == nil {
			continue
		}
		if err := m.Validate(); err != nil {
			return fmt.Errorf("molecule %d: %w", i, err)
		}
	}
	if d.Reaction == nil {
		return nil
	}
	groups := []struct {
		name string
		mols []*mol.Molecule
	}{
		{"reactant", d.Reaction.Reactants},
		{"agent", d.Reaction.Agents},
		{"product", d.Reaction.Products},
	}
	for _, g := range groups {
		for i, m := range g.mols {
			if m == nil {
				return fmt.Errorf("%s %d: missing", g.name, i)
			}
			if err := m.Validate(); err != nil {
				return fmt.Errorf("%s %d: %w", g.name, i, err)
			}
		}
	}
	return nil
}
