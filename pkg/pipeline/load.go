package pipeline

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/FabioUrbina/rdkit/pkg/errors"
	molio "github.com/FabioUrbina/rdkit/pkg/io"
	"github.com/FabioUrbina/rdkit/pkg/observability"
)

// Load decodes a molecule document in the given format ("json" or "bson").
func Load(ctx context.Context, r io.Reader, format string) (*molio.Document, error) {
	hooks := observability.Render()
	hooks.OnLoadStart(ctx, format)
	start := time.Now()

	doc, err := molio.Read(r, format)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s document", format)
		hooks.OnLoadComplete(ctx, format, 0, time.Since(start), err)
		return nil, err
	}
	hooks.OnLoadComplete(ctx, format, doc.Len(), time.Since(start), nil)
	return doc, nil
}

// LoadFile reads the document at path, choosing the format from the
// extension. A path of "-" reads JSON from stdin.
func LoadFile(ctx context.Context, path string) (*molio.Document, error) {
	if path == "-" {
		return Load(ctx, os.Stdin, molio.FormatJSON)
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	doc, err := Load(ctx, f, molio.FormatFromPath(path))
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return doc, nil
}
