package moldraw

import (
	"strconv"
	"strings"

	"github.com/FabioUrbina/rdkit/pkg/mol"
	"github.com/FabioUrbina/rdkit/pkg/render/text"
)

// atomLabel is the resolved label of one atom. An empty symbol means the
// atom is drawn as a bare bond junction.
type atomLabel struct {
	symbol string
	orient text.Orient
}

// atomSymbol builds the marked-up label for atom i. Labels supplied by the
// caller or the document are used as given; generated ones combine the
// isotope, element, map number, charge and hydrogen count.
func (d *Drawer) atomSymbol(m *mol.Molecule, i int, orient text.Orient) string {
	o := &d.opts
	if o.NoAtomLabels {
		return ""
	}
	a := &m.Atoms[i]
	iso := a.Isotope

	var symbol string
	literal := true
	switch {
	case hasLabel(o.AtomLabels, i):
		symbol = o.AtomLabels[i]
	case a.DisplayLabel != "" || a.DisplayLabelW != "":
		symbol = a.DisplayLabel
		if symbol == "" {
			symbol = a.DisplayLabelW
		}
		if orient == text.OrientW && a.DisplayLabelW != "" {
			symbol = a.DisplayLabelW
		}
	case a.Label != "":
		symbol = a.Label
	case o.DummiesAreAttachments && a.Element == 0 && m.Degree(i) == 1:
		return ""
	case len(a.List) > 0:
		symbol = atomListText(a)
	case a.ComplexQuery:
		symbol = "?"
	case o.AtomLabelDeuteriumTritium && a.Element == 1 && (iso == 2 || iso == 3):
		symbol = "D"
		if iso == 3 {
			symbol = "T"
		}
	default:
		literal = false
		symbol = d.builtSymbol(m, i)
	}

	if literal && symbol != "" {
		symbol = "<lit>" + symbol + "</lit>"
	}
	return symbol
}

func hasLabel(labels map[int]string, i int) bool {
	_, ok := labels[i]
	return ok
}

func (d *Drawer) builtSymbol(m *mol.Molecule, i int) string {
	o := &d.opts
	a := &m.Atoms[i]
	degree := m.Degree(i)

	var pre, post []string
	if a.MapNumber != 0 {
		post = append(post, ":"+strconv.Itoa(a.MapNumber))
	}
	if a.Charge != 0 {
		sgn := "+"
		if a.Charge < 0 {
			sgn = "-"
		}
		if q := abs(a.Charge); q > 1 {
			sgn = strconv.Itoa(q) + sgn
		}
		post = append(post, "<sup>"+sgn+"</sup>")
	}

	numH := a.NumHs
	if a.Element == 6 && degree > 0 {
		numH = 0
	}
	if o.ExplicitMethyl && a.Element == 6 && degree == 1 {
		numH = a.NumHs
	}
	if numH > 0 && !a.IsQuery() {
		h := "H"
		if numH > 1 {
			h += "<sub>" + strconv.Itoa(numH) + "</sub>"
		}
		post = append(post, h)
	}

	if a.Isotope != 0 && ((o.IsotopeLabels && a.Element != 0) || (o.DummyIsotopeLabels && a.Element == 0)) {
		pre = append(pre, "<sup>"+strconv.Itoa(a.Isotope)+"</sup>")
	}

	var sb strings.Builder
	for _, s := range pre {
		sb.WriteString(s)
	}
	// Allenes and other linear centres need their C.
	if m.IsLinearAtom(i) || a.Element != 6 || degree == 0 || len(pre) > 0 || len(post) > 0 {
		sb.WriteString(a.Symbol())
	}
	for _, s := range post {
		sb.WriteString(s)
	}
	return sb.String()
}

// atomListText renders an atom list query such as [C,N] or ![O,S].
func atomListText(a *mol.Atom) string {
	var sb strings.Builder
	if a.ListNegated {
		sb.WriteByte('!')
	}
	sb.WriteByte('[')
	for i, z := range a.List {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(mol.ElementSymbol(z))
	}
	sb.WriteByte(']')
	return sb.String()
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
