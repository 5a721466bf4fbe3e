package mol

import "github.com/FabioUrbina/rdkit/pkg/geom"

// =============================================================================
// Atoms and Bonds
// =============================================================================

// Atom is a single atom of a molecule. Only Element is required; the rest
// tune how the atom is labelled.
type Atom struct {
	Element   int       `json:"z" bson:"z"`                                 // Atomic number; 0 is a dummy atom
	Isotope   int       `json:"isotope,omitempty" bson:"isotope,omitempty"` // Mass number, 0 if unset
	Charge    int       `json:"charge,omitempty" bson:"charge,omitempty"`
	NumHs     int       `json:"hs,omitempty" bson:"hs,omitempty"` // Total attached hydrogens
	Radicals  int       `json:"radicals,omitempty" bson:"radicals,omitempty"`
	MapNumber int       `json:"map,omitempty" bson:"map,omitempty"`
	Chiral    ChiralTag `json:"chiral,omitempty" bson:"chiral,omitempty"`
	CIPCode   string    `json:"cip,omitempty" bson:"cip,omitempty"` // "R", "S", ...

	// Label replaces the generated symbol. DisplayLabel and DisplayLabelW
	// do the same but allow a different text when the label faces west.
	Label         string `json:"label,omitempty" bson:"label,omitempty"`
	DisplayLabel  string `json:"display_label,omitempty" bson:"display_label,omitempty"`
	DisplayLabelW string `json:"display_label_w,omitempty" bson:"display_label_w,omitempty"`

	// Query atoms: an atom list such as [C,N], optionally negated, or an
	// arbitrary query drawn as "?".
	List         []int `json:"list,omitempty" bson:"list,omitempty"`
	ListNegated  bool  `json:"list_negated,omitempty" bson:"list_negated,omitempty"`
	ComplexQuery bool  `json:"complex_query,omitempty" bson:"complex_query,omitempty"`

	Note string `json:"note,omitempty" bson:"note,omitempty"` // Free text drawn beside the atom
}

// IsQuery reports whether the atom carries any query.
func (a *Atom) IsQuery() bool { return len(a.List) > 0 || a.ComplexQuery }

// Symbol returns the element symbol.
func (a *Atom) Symbol() string { return ElementSymbol(a.Element) }

// Bond joins atoms Begin and End. For wedge bonds Begin is the
// stereocentre.
type Bond struct {
	Begin    int        `json:"begin" bson:"begin"`
	End      int        `json:"end" bson:"end"`
	Type     BondType   `json:"type" bson:"type"`
	Dir      BondDir    `json:"dir,omitempty" bson:"dir,omitempty"`
	Stereo   BondStereo `json:"stereo,omitempty" bson:"stereo,omitempty"`
	Aromatic bool       `json:"aromatic,omitempty" bson:"aromatic,omitempty"` // Kekulé bond in an aromatic ring

	Query        QueryKind `json:"query,omitempty" bson:"query,omitempty"`
	QueryNegated bool      `json:"query_negated,omitempty" bson:"query_negated,omitempty"`

	// EndPoints lists the 1-based atom indices of a variable attachment
	// bond; Begin is then the dummy atom standing in for the group.
	EndPoints []int  `json:"end_points,omitempty" bson:"end_points,omitempty"`
	Attach    string `json:"attach,omitempty" bson:"attach,omitempty"` // "ANY" or "ALL"

	Note string `json:"note,omitempty" bson:"note,omitempty"`
}

// Other returns the atom at the far end of the bond from atom i.
func (b *Bond) Other(i int) int {
	if b.Begin == i {
		return b.End
	}
	return b.Begin
}

// IsComplexQuery reports whether the bond must be drawn as a query glyph
// rather than as an ordinary bond.
func (b *Bond) IsComplexQuery() bool {
	if b.Query == QueryNone {
		return false
	}
	return b.QueryNegated || b.Query != QueryOrder
}

// =============================================================================
// Groups
// =============================================================================

// SubstanceGroup is a molfile Sgroup: a repeat unit, copolymer, data
// group and so on.
type SubstanceGroup struct {
	Type     string         `json:"type" bson:"type"` // "SRU", "COP", "DAT", "MUL", "SUP", ...
	Atoms    []int          `json:"atoms,omitempty" bson:"atoms,omitempty"`
	Bonds    []int          `json:"bonds,omitempty" bson:"bonds,omitempty"` // Crossing bonds
	Brackets [][]geom.Point `json:"brackets,omitempty" bson:"brackets,omitempty"`
	Connect  string         `json:"connect,omitempty" bson:"connect,omitempty"` // "ht", "hh", "eu"
	Label    string         `json:"label,omitempty" bson:"label,omitempty"`     // Subscript, e.g. "n"

	// Data groups.
	FieldName  string   `json:"field_name,omitempty" bson:"field_name,omitempty"`
	DataFields []string `json:"data,omitempty" bson:"data,omitempty"`
	FieldDisp  string   `json:"field_disp,omitempty" bson:"field_disp,omitempty"` // Molfile FIELDDISP record
}

// StereoGroup is an enhanced-stereo group.
type StereoGroup struct {
	Type  StereoGroupType `json:"type" bson:"type"`
	Atoms []int           `json:"atoms" bson:"atoms"`
}

// LinkNode marks a repeatable atom: the atom and its outer bonds may be
// repeated between Min and Max times.
type LinkNode struct {
	Min       int      `json:"min" bson:"min"`
	Max       int      `json:"max" bson:"max"`
	BondAtoms [][2]int `json:"bond_atoms" bson:"bond_atoms"` // (inside, outside) pairs
}

// =============================================================================
// Molecule
// =============================================================================

// Molecule is a molecular graph with optional 2D coordinates, one per
// atom, in molecule space.
type Molecule struct {
	Name         string           `json:"name,omitempty" bson:"name,omitempty"`
	Atoms        []Atom           `json:"atoms" bson:"atoms"`
	Bonds        []Bond           `json:"bonds" bson:"bonds"`
	Coords       []geom.Point     `json:"coords,omitempty" bson:"coords,omitempty"`
	SGroups      []SubstanceGroup `json:"sgroups,omitempty" bson:"sgroups,omitempty"`
	StereoGroups []StereoGroup    `json:"stereo_groups,omitempty" bson:"stereo_groups,omitempty"`
	LinkNodes    []LinkNode       `json:"link_nodes,omitempty" bson:"link_nodes,omitempty"`
	Note         string           `json:"note,omitempty" bson:"note,omitempty"`

	rings *ringInfo
}

// HasCoords reports whether every atom has a 2D position.
func (m *Molecule) HasCoords() bool {
	return len(m.Atoms) > 0 && len(m.Coords) == len(m.Atoms)
}

// Reaction groups the molecules of a reaction scheme.
type Reaction struct {
	Reactants []*Molecule `json:"reactants" bson:"reactants"`
	Agents    []*Molecule `json:"agents,omitempty" bson:"agents,omitempty"`
	Products  []*Molecule `json:"products" bson:"products"`
}
