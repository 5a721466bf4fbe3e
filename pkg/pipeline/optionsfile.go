package pipeline

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/FabioUrbina/rdkit/pkg/errors"
)

// LoadOptionsFile reads a TOML options file over opts. Keys missing from
// the file keep their current values, so callers start from
// [DefaultOptions] and apply command-line flags afterwards:
//
//	mode = "grid"
//	columns = 3
//
//	[draw]
//	bond_line_width = 1.5
//	add_atom_indices = true
//	highlight_colour = "#ffb3b3"
//
// Unknown keys are an error, to catch typos.
func LoadOptionsFile(path string, opts *Options) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "options file %s not found", path)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "open options file %s", path)
	}
	defer f.Close()
	if err := DecodeOptions(f, opts); err != nil {
		return errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return nil
}

// DecodeOptions reads TOML options from r over opts.
func DecodeOptions(r io.Reader, opts *Options) error {
	md, err := toml.NewDecoder(r).Decode(opts)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOptions, err, "decode options")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidOptions, "unknown option keys: %s", strings.Join(keys, ", "))
	}
	opts.validated = false
	return nil
}

// WriteOptions writes opts as TOML, in the layout [LoadOptionsFile] reads.
func WriteOptions(w io.Writer, opts Options) error {
	return toml.NewEncoder(w).Encode(opts)
}
