package moldraw

import (
	"fmt"

	"github.com/FabioUrbina/rdkit/pkg/errors"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
	"github.com/FabioUrbina/rdkit/pkg/render/text"
)

// Options controls every aspect of a drawing. The zero value is not
// useful; start from DefaultOptions.
//
// Lengths without a unit are in molecule space. Line widths are in
// pixels unless ScaleBondWidth is set.
type Options struct {
	// Layout
	Padding                      float64       `toml:"padding" json:"padding"`                     // Fraction of each span added on both sides
	FixedBondLength              float64       `toml:"fixed_bond_length" json:"fixed_bond_length"` // Maximum scale in pixels per unit; <= 0 disables
	FixedScale                   float64       `toml:"fixed_scale" json:"fixed_scale"`             // Maximum scale as a fraction of the panel width; <= 0 disables
	Rotate                       float64       `toml:"rotate" json:"rotate"`                       // Clockwise, in degrees
	CentreMoleculesBeforeDrawing bool          `toml:"centre_molecules" json:"centre_molecules"`
	ClearBackground              bool          `toml:"clear_background" json:"clear_background"`
	BackgroundColour             canvas.Colour `toml:"background_colour" json:"background_colour"`

	// Bonds
	BondLineWidth              float64 `toml:"bond_line_width" json:"bond_line_width"`
	ScaleBondWidth             bool    `toml:"scale_bond_width" json:"scale_bond_width"`
	ScaleHighlightBondWidth    bool    `toml:"scale_highlight_bond_width" json:"scale_highlight_bond_width"`
	MultipleBondOffset         float64 `toml:"multiple_bond_offset" json:"multiple_bond_offset"` // Gap between the lines of a double bond
	AdditionalAtomLabelPadding float64 `toml:"additional_atom_label_padding" json:"additional_atom_label_padding"`
	SplitBonds                 bool    `toml:"split_bonds" json:"split_bonds"`
	SingleColourWedgeBonds     bool    `toml:"single_colour_wedge_bonds" json:"single_colour_wedge_bonds"`
	ComicMode                  bool    `toml:"comic_mode" json:"comic_mode"`

	// Atom labels
	NoAtomLabels              bool                     `toml:"no_atom_labels" json:"no_atom_labels"`
	AtomLabels                map[int]string           `toml:"-" json:"atom_labels,omitempty"` // Per-atom label overrides
	AtomLabelDeuteriumTritium bool                     `toml:"atom_label_deuterium_tritium" json:"atom_label_deuterium_tritium"`
	ExplicitMethyl            bool                     `toml:"explicit_methyl" json:"explicit_methyl"`
	IsotopeLabels             bool                     `toml:"isotope_labels" json:"isotope_labels"`
	DummyIsotopeLabels        bool                     `toml:"dummy_isotope_labels" json:"dummy_isotope_labels"`
	DummiesAreAttachments     bool                     `toml:"dummies_are_attachments" json:"dummies_are_attachments"`
	AtomColourPalette         map[string]canvas.Colour `toml:"atom_colour_palette" json:"atom_colour_palette,omitempty"` // By element symbol; "default" for the rest
	SymbolColour              canvas.Colour            `toml:"symbol_colour" json:"symbol_colour"`

	// Fonts
	BaseFontSize float64 `toml:"base_font_size" json:"base_font_size"`
	MinFontSize  float64 `toml:"min_font_size" json:"min_font_size"`
	MaxFontSize  float64 `toml:"max_font_size" json:"max_font_size"`

	// Annotations
	AnnotationColour           canvas.Colour `toml:"annotation_colour" json:"annotation_colour"`
	AnnotationFontScale        float64       `toml:"annotation_font_scale" json:"annotation_font_scale"`
	AddAtomIndices             bool          `toml:"add_atom_indices" json:"add_atom_indices"`
	AddBondIndices             bool          `toml:"add_bond_indices" json:"add_bond_indices"`
	AddStereoAnnotation        bool          `toml:"add_stereo_annotation" json:"add_stereo_annotation"`
	SimplifiedStereoGroupLabel bool          `toml:"simplified_stereo_group_label" json:"simplified_stereo_group_label"`
	IncludeRadicals            bool          `toml:"include_radicals" json:"include_radicals"`

	// Legend
	LegendFontSize float64       `toml:"legend_font_size" json:"legend_font_size"` // Pixels
	LegendColour   canvas.Colour `toml:"legend_colour" json:"legend_colour"`

	// Highlights
	HighlightColour              canvas.Colour   `toml:"highlight_colour" json:"highlight_colour"`
	HighlightColourPalette       []canvas.Colour `toml:"highlight_colour_palette" json:"highlight_colour_palette,omitempty"`
	ContinuousHighlight          bool            `toml:"continuous_highlight" json:"continuous_highlight"`
	CircleAtoms                  bool            `toml:"circle_atoms" json:"circle_atoms"`
	FillHighlights               bool            `toml:"fill_highlights" json:"fill_highlights"`
	HighlightRadius              float64         `toml:"highlight_radius" json:"highlight_radius"`
	HighlightBondWidthMultiplier int             `toml:"highlight_bond_width_multiplier" json:"highlight_bond_width_multiplier"`
	AtomHighlightsAreCircles     bool            `toml:"atom_highlights_are_circles" json:"atom_highlights_are_circles"`

	// Close contacts are flagged when two atoms are within this many
	// pixels of each other. Negative disables the check.
	FlagCloseContactsDist float64 `toml:"flag_close_contacts_dist" json:"flag_close_contacts_dist"`

	// Variable attachment bonds
	VariableAtomRadius          float64       `toml:"variable_atom_radius" json:"variable_atom_radius"`
	VariableBondWidthMultiplier float64       `toml:"variable_bond_width_multiplier" json:"variable_bond_width_multiplier"`
	VariableAttachmentColour    canvas.Colour `toml:"variable_attachment_colour" json:"variable_attachment_colour"`
}

// DefaultAtomColourPalette colours heteroatoms the conventional way.
func DefaultAtomColourPalette() map[string]canvas.Colour {
	return map[string]canvas.Colour{
		"default": canvas.Black,
		"*":       canvas.RGB(0.1, 0.1, 0.1),
		"H":       canvas.Black,
		"C":       canvas.Black,
		"N":       canvas.RGB(0, 0, 1),
		"O":       canvas.RGB(1, 0, 0),
		"F":       canvas.RGB(0.2, 0.8, 0.8),
		"P":       canvas.RGB(1, 0.5, 0),
		"S":       canvas.RGB(0.8, 0.8, 0),
		"Cl":      canvas.RGB(0, 0.802, 0),
		"Br":      canvas.RGB(0.5, 0.3, 0.1),
		"I":       canvas.RGB(0.63, 0.12, 0.94),
	}
}

// DefaultHighlightColourPalette is used to tell reactant fragments apart.
func DefaultHighlightColourPalette() []canvas.Colour {
	return []canvas.Colour{
		canvas.RGB(1, 1, 0.6),
		canvas.RGB(1, 0.8, 0.6),
		canvas.RGB(0.8, 1, 0.8),
		canvas.RGB(0.6, 0.8, 1),
		canvas.RGB(0.8, 0.6, 1),
		canvas.RGB(1, 0.6, 0.8),
	}
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Padding:          0.05,
		FixedBondLength:  -1,
		FixedScale:       -1,
		ClearBackground:  true,
		BackgroundColour: canvas.White,

		BondLineWidth:           2,
		ScaleHighlightBondWidth: true,
		MultipleBondOffset:      0.3,

		IsotopeLabels:      true,
		DummyIsotopeLabels: true,
		AtomColourPalette:  DefaultAtomColourPalette(),
		SymbolColour:       canvas.Black,

		BaseFontSize: text.DefaultBaseFontSize,
		MinFontSize:  text.DefaultMinFontSize,
		MaxFontSize:  text.DefaultMaxFontSize,

		AnnotationColour:    canvas.Black,
		AnnotationFontScale: 0.5,
		IncludeRadicals:     true,

		LegendFontSize: 16,
		LegendColour:   canvas.Black,

		HighlightColour:              canvas.RGB(1, 0.5, 0.5),
		HighlightColourPalette:       DefaultHighlightColourPalette(),
		ContinuousHighlight:          true,
		FillHighlights:               true,
		HighlightRadius:              0.3,
		HighlightBondWidthMultiplier: 8,

		FlagCloseContactsDist: 3,

		VariableAtomRadius:          0.4,
		VariableBondWidthMultiplier: 16,
		VariableAttachmentColour:    canvas.RGB(0.8, 0.8, 0.8),
	}
}

// Validate rejects options the engine cannot draw with.
func (o *Options) Validate() error {
	check := func(ok bool, format string, args ...any) error {
		if ok {
			return nil
		}
		return errors.New(errors.ErrCodeInvalidOptions, format, args...)
	}
	for _, err := range []error{
		check(o.Padding >= 0 && o.Padding < 0.5, "padding must be in [0, 0.5), got %v", o.Padding),
		check(o.BondLineWidth >= 0, "bond line width must not be negative, got %v", o.BondLineWidth),
		check(o.MultipleBondOffset > 0, "multiple bond offset must be positive, got %v", o.MultipleBondOffset),
		check(o.BaseFontSize > 0, "base font size must be positive, got %v", o.BaseFontSize),
		check(o.MaxFontSize <= 0 || o.MinFontSize <= o.MaxFontSize,
			"min font size %v exceeds max font size %v", o.MinFontSize, o.MaxFontSize),
		check(o.AnnotationFontScale > 0, "annotation font scale must be positive, got %v", o.AnnotationFontScale),
		check(o.LegendFontSize > 0, "legend font size must be positive, got %v", o.LegendFontSize),
		check(o.HighlightRadius >= 0, "highlight radius must not be negative, got %v", o.HighlightRadius),
		check(o.HighlightBondWidthMultiplier >= 0, "highlight bond width multiplier must not be negative"),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// atomColour returns the palette colour for an element symbol.
func (o *Options) atomColour(symbol string) canvas.Colour {
	if c, ok := o.AtomColourPalette[symbol]; ok {
		return c
	}
	if c, ok := o.AtomColourPalette["default"]; ok {
		return c
	}
	return canvas.Black
}

func (o Options) String() string {
	return fmt.Sprintf("Options{padding=%v lw=%v mbo=%v continuous=%v}",
		o.Padding, o.BondLineWidth, o.MultipleBondOffset, o.ContinuousHighlight)
}
