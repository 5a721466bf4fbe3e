// Package geom provides the small amount of plane geometry the molecule
// drawer needs: points and vectors, axis-aligned boxes, segment
// intersection, arc sampling and line/ellipse clipping.
//
// # Coordinate Spaces
//
// The package is agnostic about coordinate spaces. Callers decide whether a
// Point is in molecule space (y up, bond lengths around 1.5) or device space
// (y down, pixels); conversion between the two lives in package moldraw.
//
// # Perpendiculars
//
// [Perpendicular] and [InnerPerpendicular] are the building blocks of
// multiple-bond drawing. The inner variant points to the side on which a
// three-point path bends, which is where the second line of a ring double
// bond is drawn:
//
//	perp := geom.InnerPerpendicular(begin, end, thirdAtom)
//	inner := begin.Add(perp.Mul(offset))
package geom
