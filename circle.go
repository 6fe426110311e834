package catchment

import "math"

// Epsilon constants used across the geometric predicates. They are named and
// centralized because nearly every comparison in the classifier, the exact
// engine, and the membership filters depends on one of them.
const (
	// epsTangent separates "touching" from "disjoint" and "contained" in the
	// pairwise classifier. It also guards square roots of near-zero negative
	// values at tangency.
	epsTangent = 1e-12

	// epsContain is the slack for point-in-disk membership tests when
	// filtering candidate boundary vertices.
	epsContain = 1e-9

	// epsMember quantizes boundary point coordinates when building the
	// adjacency used to walk the innermost polygon. Points closer than this
	// are treated as the same vertex.
	epsMember = 1e-9

	// epsArea is the tolerance applied to area invariants: results within
	// epsArea of a bound are floating noise, anything beyond is a defect.
	epsArea = 1e-9
)

// Circle is a disk in the plane. It is a value type; a circle with R <= 0
// has zero area.
type Circle struct {
	Origin Point
	R      float64
}

// C is a convenience function to create a Circle.
func C(x, y, r float64) Circle {
	return Circle{Origin: Pt(x, y), R: r}
}

// Area returns the disk area, zero for non-positive radii.
func (c Circle) Area() float64 {
	if c.R <= 0 {
		return 0
	}
	return math.Pi * c.R * c.R
}

// Distance returns the distance between the centers of two circles.
func (c Circle) Distance(other Circle) float64 {
	return c.Origin.Distance(other.Origin)
}

// Contains reports whether p lies in the closed disk, with epsContain slack
// so points computed to sit exactly on the boundary are not lost to
// floating error.
func (c Circle) Contains(p Point) bool {
	return c.Origin.Distance(p) <= c.R+epsContain
}

// Equal reports whether two circles have exactly equal fields.
//
// Exact comparison is brittle under floating arithmetic; it is kept because
// the engine only ever compares circles that were copied, never recomputed.
// It is isolated here so an epsilon-based variant can be substituted without
// touching call sites.
func (c Circle) Equal(other Circle) bool {
	return c.Origin == other.Origin && c.R == other.R
}

// Bounds returns the axis-aligned bounding box of the disk as
// (minX, minY, maxX, maxY).
func (c Circle) Bounds() (minX, minY, maxX, maxY float64) {
	return c.Origin.X - c.R, c.Origin.Y - c.R, c.Origin.X + c.R, c.Origin.Y + c.R
}

// TargetPoint is a solver input: a location and the exclusive area the
// solved circle around it should occupy. It has no radius; the solver
// produces one.
type TargetPoint struct {
	Origin     Point
	TargetArea float64
}
