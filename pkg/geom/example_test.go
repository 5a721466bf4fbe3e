package geom_test

import (
	"fmt"

	"github.com/FabioUrbina/rdkit/pkg/geom"
)

func ExampleInnerPerpendicular() {
	// Three ring atoms; the second line of the first bond belongs on the
	// side the ring turns towards.
	a, b, c := geom.Pt(0, 0), geom.Pt(1.5, 0), geom.Pt(2.25, 1.3)
	perp := geom.InnerPerpendicular(a, b, c)
	fmt.Printf("%.1f %.1f\n", perp.X+0, perp.Y)
	// Output: 0.0 1.0
}

func ExampleClipLineToEllipse() {
	end := geom.ClipLineToEllipse(geom.Pt(-3, 0), geom.Pt(0, 0), geom.Pt(0, 0), 1, 0.5)
	fmt.Printf("%.2f %.2f\n", end.X, end.Y)
	// Output: -1.00 0.00
}
