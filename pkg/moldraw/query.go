package moldraw

import (
	"slices"

	"github.com/FabioUrbina/rdkit/pkg/geom"
	"github.com/FabioUrbina/rdkit/pkg/mol"
	"github.com/FabioUrbina/rdkit/pkg/render/canvas"
)

// queryDash returns the short dash, tightened at small scales so it still
// reads as dashed.
func (d *Drawer) queryDash() canvas.Dash {
	dash := slices.Clone(canvas.DashShort)
	switch {
	case d.tr.Scale < 10:
		dash[0] /= 4
		dash[1] /= 3
	case d.tr.Scale < 20:
		dash[0] /= 2
		dash[1] /= 1.5
	}
	return dash
}

// drawQueryBond draws a bond whose query cannot be shown as a plain bond
// order. The composite glyphs put the first alternative on the first third
// of the bond and the second on the rest.
func (d *Drawer) drawQueryBond(ctx *renderContext, r bondRequest) {
	m := ctx.mol
	grey := canvas.QueryGrey
	third := geom.Lerp(r.c1, r.c2, 1.0/3.0)
	mid := geom.Mid(r.c1, r.c2)
	tdash := d.queryDash()

	d.c.SetColour(grey)
	d.tagBond(r)
	first := func() {
		if d.opts.SplitBonds {
			d.tagBond(r, r.begin)
		}
	}
	second := func() {
		if d.opts.SplitBonds {
			d.tagBond(r, r.end)
		}
	}
	double := func(p1, p2 geom.Point, dashSecond bool) {
		l1, l2 := doubleBondLines(m, r.bond, p1, p2, ctx.coords, r.sep)
		d.rawLine(l1.a, l1.b, true, true)
		if dashSecond {
			d.c.SetDash(tdash)
		}
		d.rawLine(l2.a, l2.b, true, true)
		d.c.SetDash(canvas.DashNone)
	}

	generic := false
	switch r.query {
	case mol.QuerySingleOrDouble:
		if r.negated {
			generic = true
			break
		}
		first()
		d.rawLine(r.c1, third, true, true)
		second()
		double(third, r.c2, false)

	case mol.QuerySingleOrAromatic:
		if r.negated {
			generic = true
			break
		}
		first()
		d.rawLine(r.c1, third, true, true)
		second()
		double(third, r.c2, true)

	case mol.QueryDoubleOrAromatic:
		if r.negated {
			generic = true
			break
		}
		first()
		double(r.c1, third, false)
		second()
		double(third, r.c2, true)

	case mol.QueryNull:
		d.c.SetDash(tdash)
		d.bondLine(r, r.c1, r.c2, grey, grey)
		d.c.SetDash(canvas.DashNone)

	case mol.QueryRing, mol.QueryChain:
		d.drawRingQueryBond(ctx, r, mid)

	case mol.QueryNone, mol.QueryOrder, mol.QueryOther:
		generic = true
	}

	if generic {
		d.c.SetDash(canvas.DashDots)
		d.useHighlightWidth(r)
		d.bondLine(r, r.c1, r.c2, grey, grey)
		d.c.SetDash(canvas.DashNone)
	}
}

// drawRingQueryBond draws the bond order in grey with a small hexagon at
// the middle for a ring-membership query, or two small circles when the
// query asks for a chain bond.
func (d *Drawer) drawRingQueryBond(ctx *renderContext, r bondRequest, mid geom.Point) {
	r.highlight = false
	r.col1, r.col2 = canvas.QueryGrey, canvas.QueryGrey
	d.drawNormalBond(ctx, r)

	seg := r.c2.Sub(r.c1)
	l := seg.Length()
	if l == 0 {
		return
	}
	d.c.SetColour(canvas.QueryGrey)
	d.c.SetDash(canvas.DashNone)
	d.c.SetFill(false)
	d.scaleBondWidth = false
	d.setLineWidth(1)

	chain := r.query == mol.QueryChain || r.negated
	if !chain {
		seg = seg.Div(l * 6)
		rot := func(p geom.Point) geom.Point {
			return geom.Pt(0.5*p.X-0.866*p.Y, 0.866*p.X+0.5*p.Y)
		}
		r1 := rot(seg)
		r2 := rot(r1)
		d.drawPolygon([]geom.Point{
			mid.Add(seg), mid.Add(r1), mid.Add(r2),
			mid.Sub(seg), mid.Sub(r1), mid.Sub(r2),
			mid.Add(seg),
		})
		return
	}
	seg = seg.Div(l * 10)
	sl := seg.Length()
	corner := geom.Pt(sl, sl)
	for _, c := range []geom.Point{mid.Add(seg), mid.Sub(seg)} {
		d.drawEllipse(c.Add(corner), c.Sub(corner))
	}
}
