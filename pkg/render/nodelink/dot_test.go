package nodelink

import (
	"strings"
	"testing"

	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/mol"
)

func acetaldehyde() *mol.Molecule {
	return &mol.Molecule{
		Atoms: []mol.Atom{{Element: 6, NumHs: 3}, {Element: 6, NumHs: 1}, {Element: 8}},
		Bonds: []mol.Bond{
			{Begin: 0, End: 1, Type: mol.BondSingle},
			{Begin: 1, End: 2, Type: mol.BondDouble},
		},
		Coords: []geom.Point{{X: 0, Y: 0}, {X: 1.3, Y: 0.75}, {X: 2.6, Y: 0}},
	}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(acetaldehyde(), Options{})

	if !strings.Contains(dot, "graph G") {
		t.Error("ToDOT() output missing graph declaration")
	}
	if !strings.Contains(dot, `a2 [label="O"`) {
		t.Error("ToDOT() output missing oxygen node")
	}
	if !strings.Contains(dot, "a1 -- a2 [color=\"black:invis:black\"]") {
		t.Error("ToDOT() output missing double bond")
	}
	if strings.Contains(dot, "neato") {
		t.Error("ToDOT() pinned nodes without UseCoords")
	}
}

func TestToDOT_Detailed(t *testing.T) {
	m := acetaldehyde()
	m.Atoms[2].Charge = -1
	dot := ToDOT(m, Options{Detailed: true})

	if !strings.Contains(dot, `#2`) || !strings.Contains(dot, `q=-1`) {
		t.Errorf("ToDOT() detailed output missing index or charge:\n%s", dot)
	}
	if !strings.Contains(dot, `H3`) {
		t.Error("ToDOT() detailed output missing hydrogen count")
	}
}

func TestToDOT_UseCoords(t *testing.T) {
	dot := ToDOT(acetaldehyde(), Options{UseCoords: true})

	if !strings.Contains(dot, "layout=neato") {
		t.Error("ToDOT() missing neato layout")
	}
	if !strings.Contains(dot, `pos="2.600,0.000!"`) {
		t.Error("ToDOT() missing pinned position")
	}
}

func TestToDOT_QueryBond(t *testing.T) {
	m := acetaldehyde()
	m.Bonds[0].Query = mol.QuerySingleOrDouble
	dot := ToDOT(m, Options{})

	if !strings.Contains(dot, "a0 -- a1 [style=dotted") {
		t.Error("ToDOT() query bond not dotted")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 10.00 20.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 10.00 20.00" width="10" height="20"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
}
