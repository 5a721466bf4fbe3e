// Package pipeline provides the load → draw → encode pipeline behind the
// CLI and the HTTP server.
//
// By centralizing this logic, the command line and the server produce the
// same bytes for the same document and options, and share one cache.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode a JSON or BSON molecule document
//  2. Draw: Lay out and draw one molecule, a grid, or a reaction
//  3. Encode: Produce SVG, PNG, PDF or JSON output
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.DefaultOptions()
//	opts.Formats = []string{"svg", "png"}
//	result, err := runner.Execute(ctx, doc, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Render many documents in parallel:
//
//	results, err := runner.RenderBatch(ctx, jobs, 4)
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/FabioUrbina/rdkit/pkg/cache"
	"github.com/FabioUrbina/rdkit/pkg/errors"
	"github.com/FabioUrbina/rdkit/pkg/moldraw"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default width in pixels of a single drawing.
	DefaultWidth = 300.0

	// DefaultHeight is the default height in pixels of a single drawing.
	DefaultHeight = 300.0

	// DefaultPanelWidth is the default panel width of a grid.
	DefaultPanelWidth = 250.0

	// DefaultPanelHeight is the default panel height of a grid.
	DefaultPanelHeight = 200.0

	// DefaultColumns is the default number of grid columns.
	DefaultColumns = 4

	// DefaultReactionWidth and DefaultReactionHeight size reaction schemes.
	DefaultReactionWidth  = 800.0
	DefaultReactionHeight = 250.0

	// DefaultPNGScale renders PNGs at twice the nominal size.
	DefaultPNGScale = 2.0
)

// Drawing modes.
const (
	ModeMolecule = "molecule"
	ModeGrid     = "grid"
	ModeReaction = "reaction"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidModes is the set of supported drawing modes.
var ValidModes = map[string]bool{
	ModeMolecule: true,
	ModeGrid:     true,
	ModeReaction: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one render request. It supports
// JSON for server requests and TOML for option files.
type Options struct {
	Mode    string   `toml:"mode" json:"mode,omitempty"`
	Formats []string `toml:"formats" json:"formats,omitempty"`

	// Size of a single drawing or a reaction, in pixels.
	Width  float64 `toml:"width" json:"width,omitempty"`
	Height float64 `toml:"height" json:"height,omitempty"`

	// Grid layout.
	PanelWidth  float64 `toml:"panel_width" json:"panel_width,omitempty"`
	PanelHeight float64 `toml:"panel_height" json:"panel_height,omitempty"`
	Columns     int     `toml:"columns" json:"columns,omitempty"`

	// Index picks the molecule drawn in molecule mode.
	Index int `toml:"-" json:"index,omitempty"`
	// Legend overrides the molecule name under a single drawing.
	Legend string `toml:"legend" json:"legend,omitempty"`
	// NoLegends suppresses the molecule names under drawings.
	NoLegends bool `toml:"no_legends" json:"no_legends,omitempty"`

	// Highlights of the drawn molecule in molecule mode.
	Highlights *moldraw.Highlights `toml:"-" json:"highlights,omitempty"`
	// HighlightByReactant colours reaction atoms by their reactant.
	HighlightByReactant bool `toml:"highlight_by_reactant" json:"highlight_by_reactant,omitempty"`

	// Interactive adds hover highlighting to SVG output.
	Interactive bool `toml:"interactive" json:"interactive,omitempty"`
	// PNGScale is the number of PNG pixels per canvas pixel.
	PNGScale float64 `toml:"png_scale" json:"png_scale,omitempty"`

	Draw moldraw.Options `toml:"draw" json:"draw"`

	// Runtime options (not serialized)
	Logger  *log.Logger `toml:"-" json:"-"`
	Refresh bool        `toml:"-" json:"-"`

	validated bool
}

// DefaultOptions returns options for a single SVG drawing.
func DefaultOptions() Options {
	return Options{Draw: moldraw.DefaultOptions()}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DocHash is the content hash of the document.
	DocHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Metadata describes the drawing. It is empty when every artifact
	// came from the cache.
	Metadata moldraw.Metadata

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit is true when every artifact came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Molecules int
	Atoms     int
	// RenderTime covers drawing and encoding of the formats not served
	// from the cache.
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidOptions, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateMode checks that a drawing mode is valid.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return errors.New(errors.ErrCodeInvalidOptions, "invalid mode: %q (must be one of: molecule, grid, reaction)", mode)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Mode == "" {
		o.Mode = ModeMolecule
	}
	if err := ValidateMode(o.Mode); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)

	defW, defH := DefaultWidth, DefaultHeight
	if o.Mode == ModeReaction {
		defW, defH = DefaultReactionWidth, DefaultReactionHeight
	}
	if o.Width == 0 {
		o.Width = defW
	}
	if o.Height == 0 {
		o.Height = defH
	}
	if o.PanelWidth == 0 {
		o.PanelWidth = DefaultPanelWidth
	}
	if o.PanelHeight == 0 {
		o.PanelHeight = DefaultPanelHeight
	}
	if o.Columns <= 0 {
		o.Columns = DefaultColumns
	}
	if o.PNGScale <= 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Index < 0 {
		return errors.New(errors.ErrCodeInvalidOptions, "molecule index must not be negative, got %d", o.Index)
	}
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if err := errors.ValidateDimensions(o.PanelWidth, o.PanelHeight); err != nil {
		return err
	}
	if o.Draw.BaseFontSize == 0 {
		// A zero Draw block means none was given.
		o.Draw = moldraw.DefaultOptions()
	}
	if err := o.Draw.Validate(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// RenderKeyOpts returns cache key options for one output format.
func (o *Options) RenderKeyOpts(format string) cache.RenderKeyOpts {
	k := cache.RenderKeyOpts{
		Mode:        o.Mode,
		Format:      format,
		Width:       o.Width,
		Height:      o.Height,
		OptionsHash: o.optionsHash(),
	}
	switch o.Mode {
	case ModeGrid:
		k.Width, k.Height = 0, 0
		k.PanelWidth, k.PanelHeight = o.PanelWidth, o.PanelHeight
	case ModeMolecule:
		k.Index = o.Index
		k.Legend = o.Legend
	}
	return k
}

// optionsHash hashes everything else that changes the output.
func (o *Options) optionsHash() string {
	data, err := json.Marshal(struct {
		Draw                moldraw.Options     `json:"draw"`
		Highlights          *moldraw.Highlights `json:"highlights"`
		HighlightByReactant bool                `json:"hbr"`
		NoLegends           bool                `json:"no_legends"`
		Columns             int                 `json:"columns"`
		Interactive         bool                `json:"interactive"`
		PNGScale            float64             `json:"png_scale"`
	}{o.Draw, o.Highlights, o.HighlightByReactant, o.NoLegends, o.Columns, o.Interactive, o.PNGScale})
	if err != nil {
		return fmt.Sprintf("unhashable:%v", err)
	}
	return cache.Hash(data)
}

func dedupe(ss []string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out
}
