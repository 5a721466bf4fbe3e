package mol

import (
	"fmt"
	"slices"
)

// BondType is the order of a bond as drawn.
type BondType uint8

const (
	BondUnspecified BondType = iota
	BondSingle
	BondDouble
	BondTriple
	BondAromatic
	BondDative
	BondDativeL
	BondDativeR
	BondZero
	BondHydrogen
	BondOther
)

var bondTypeNames = []string{
	"unspecified", "single", "double", "triple", "aromatic",
	"dative", "dativel", "dativer", "zero", "hydrogen", "other",
}

func (t BondType) String() string { return enumString(bondTypeNames, int(t)) }

func (t BondType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *BondType) UnmarshalText(b []byte) error {
	return enumParse(bondTypeNames, "bond type", b, (*uint8)(t))
}

// IsMultiple reports whether the bond is drawn with more than one line.
func (t BondType) IsMultiple() bool {
	return t == BondDouble || t == BondTriple || t == BondAromatic
}

// BondDir carries wedge and wavy-bond stereo information on single bonds
// and the crossed-bond flag on double bonds.
type BondDir uint8

const (
	DirNone BondDir = iota
	DirBeginWedge
	DirBeginDash
	DirEitherDouble
	DirUnknown
)

var bondDirNames = []string{"none", "wedge", "dash", "either", "unknown"}

func (d BondDir) String() string { return enumString(bondDirNames, int(d)) }

func (d BondDir) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *BondDir) UnmarshalText(b []byte) error {
	return enumParse(bondDirNames, "bond direction", b, (*uint8)(d))
}

// BondStereo is the double-bond stereo descriptor.
type BondStereo uint8

const (
	StereoNone BondStereo = iota
	StereoAny
	StereoZ
	StereoE
	StereoCis
	StereoTrans
)

var bondStereoNames = []string{"none", "any", "Z", "E", "cis", "trans"}

func (s BondStereo) String() string { return enumString(bondStereoNames, int(s)) }

func (s BondStereo) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *BondStereo) UnmarshalText(b []byte) error {
	return enumParse(bondStereoNames, "bond stereo", b, (*uint8)(s))
}

// ChiralTag marks tetrahedral stereocentres.
type ChiralTag uint8

const (
	ChiralNone ChiralTag = iota
	ChiralCW
	ChiralCCW
	ChiralOther
)

var chiralNames = []string{"none", "cw", "ccw", "other"}

func (c ChiralTag) String() string { return enumString(chiralNames, int(c)) }

func (c ChiralTag) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *ChiralTag) UnmarshalText(b []byte) error {
	return enumParse(chiralNames, "chiral tag", b, (*uint8)(c))
}

// IsChiral reports whether the tag specifies a handedness.
func (c ChiralTag) IsChiral() bool { return c == ChiralCW || c == ChiralCCW }

// QueryKind classifies query bonds by how they are drawn. A bond with
// QueryNone, or with QueryOrder and no negation, is drawn as an ordinary
// bond of its Type.
type QueryKind uint8

const (
	QueryNone QueryKind = iota
	QueryOrder
	QuerySingleOrDouble
	QuerySingleOrAromatic
	QueryDoubleOrAromatic
	QueryNull
	QueryRing  // order AND in ring
	QueryChain // order AND not in ring
	QueryOther
)

var queryKindNames = []string{
	"none", "order", "single_or_double", "single_or_aromatic",
	"double_or_aromatic", "null", "ring", "chain", "other",
}

func (q QueryKind) String() string { return enumString(queryKindNames, int(q)) }

func (q QueryKind) MarshalText() ([]byte, error) { return []byte(q.String()), nil }

func (q *QueryKind) UnmarshalText(b []byte) error {
	return enumParse(queryKindNames, "query kind", b, (*uint8)(q))
}

// StereoGroupType is the enhanced-stereo group kind.
type StereoGroupType uint8

const (
	StereoGroupAbsolute StereoGroupType = iota
	StereoGroupOr
	StereoGroupAnd
)

var stereoGroupNames = []string{"ABS", "OR", "AND"}

func (g StereoGroupType) String() string { return enumString(stereoGroupNames, int(g)) }

func (g StereoGroupType) MarshalText() ([]byte, error) { return []byte(g.String()), nil }

func (g *StereoGroupType) UnmarshalText(b []byte) error {
	return enumParse(stereoGroupNames, "stereo group type", b, (*uint8)(g))
}

func enumString(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("unknown(%d)", i)
	}
	return names[i]
}

func enumParse(names []string, what string, b []byte, dst *uint8) error {
	i := slices.Index(names, string(b))
	if i < 0 {
		return fmt.Errorf("unknown %s %q", what, b)
	}
	*dst = uint8(i)
	return nil
}
