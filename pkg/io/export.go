package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.mongodb.org/mongo-driver/bson"
)

// WriteJSON encodes doc as indented JSON and writes it to w.
// The output can be re-read with [ReadJSON].
func WriteJSON(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteBSON encodes doc as a single BSON document and writes it to w.
func WriteBSON(doc *Document, w io.Writer) error {
	data, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Export writes doc to path, choosing the format from its extension with
// [FormatFromPath].
func Export(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if FormatFromPath(path) == FormatBSON {
		return WriteBSON(doc, f)
	}
	return WriteJSON(doc, f)
}
