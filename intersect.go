package catchment

import "math"

// Relationship labels how two circles relate to each other.
type Relationship int

const (
	// RelNone means the disks are disjoint.
	RelNone Relationship = iota

	// RelInside means one disk is wholly contained in the other.
	RelInside

	// RelEqual means the circles are concentric with equal radii. The
	// underlying model is ambiguous between treating this as containment
	// and as a distinct case, so it is reported distinctly here while the
	// area accounting treats it exactly like RelInside (either disk, they
	// coincide). See Classify.
	RelEqual

	// RelCrossing means the boundaries cross at two points.
	RelCrossing
)

// Intersection is the result of classifying a circle pair: either no
// overlap, one circle inside the other, or a two-point crossing.
type Intersection struct {
	rel      Relationship
	inside   Circle
	a, b     Point
	nearSide bool
}

// Relationship returns the pair's relationship label.
func (ix Intersection) Relationship() Relationship { return ix.rel }

// Inside returns the contained circle. Valid only for RelInside and
// RelEqual (where it returns the first argument of Classify, the circles
// being indistinguishable).
func (ix Intersection) Inside() Circle { return ix.inside }

// Points returns the two boundary crossing points. Valid only for
// RelCrossing.
func (ix Intersection) Points() (Point, Point) { return ix.a, ix.b }

// NearSide reports whether the chord lies on the far side of the smaller
// circle's center, meaning the overlap contains the smaller circle's major
// segment. Valid only for RelCrossing; LensArea dispatches on it to pick
// which segment-area formula applies.
func (ix Intersection) NearSide() bool { return ix.nearSide }

// Overlaps reports whether the pair has any common area.
func (ix Intersection) Overlaps() bool { return ix.rel != RelNone }

// Classify computes the pairwise relationship of two circles.
//
// For a crossing pair the returned points lie on both boundaries within
// numerical tolerance. The chord midpoint sits at projection distance
// v = (R² + d² − r²) / (2d) along the center line from the larger circle's
// center (R the larger radius, r the smaller, d the center distance); the
// points are the midpoint offset by the half-chord height along the
// perpendicular.
//
// Exactly concentric circles of equal radius are genuinely ambiguous in the
// underlying model between "inside" and "equal"; Classify reports RelEqual
// with Inside set to c1 so either reading is available to the caller.
func Classify(c1, c2 Circle) Intersection {
	d := c1.Distance(c2)

	if d > c1.R+c2.R+epsTangent {
		return Intersection{rel: RelNone}
	}

	if d < epsTangent {
		// Concentric. Containment of the smaller in the larger; equal
		// radii get the distinct label.
		switch {
		case c1.R == c2.R:
			return Intersection{rel: RelEqual, inside: c1}
		case c1.R > c2.R:
			return Intersection{rel: RelInside, inside: c2}
		default:
			return Intersection{rel: RelInside, inside: c1}
		}
	}

	if d+c2.R <= c1.R {
		return Intersection{rel: RelInside, inside: c2}
	}
	if d+c1.R <= c2.R {
		return Intersection{rel: RelInside, inside: c1}
	}

	// Two-point crossing. Work from the larger circle's center.
	large, small := c1, c2
	if small.R > large.R {
		large, small = small, large
	}
	R, r := large.R, small.R

	v := (R*R + d*d - r*r) / (2 * d)
	hSq := R*R - v*v
	if hSq < 0 {
		// Floating error at tangency; the branch guards above guarantee a
		// geometric crossing, so the true value is a small non-negative.
		hSq = 0
	}
	h := math.Sqrt(hSq)

	u := small.Origin.Sub(large.Origin).Normalize()
	mid := large.Origin.Add(u.Mul(v))
	perp := u.Perp()

	a := mid.Add(perp.Mul(h))
	b := mid.Sub(perp.Mul(h))

	s := math.Sqrt(R*R - h*h)
	return Intersection{rel: RelCrossing, a: a, b: b, nearSide: s > d}
}

// IntersectsMany returns the members of others that have any non-empty
// pairwise intersection with focal. It is the cheap pre-filter that keeps
// the inclusion-exclusion accumulator's subset enumeration small; feeding
// the accumulator unfiltered obstacle lists is the difference between
// 2^|relevant| and 2^|everything| work.
func IntersectsMany(focal Circle, others []Circle) []Circle {
	var hits []Circle
	for _, o := range others {
		if Classify(focal, o).Overlaps() {
			hits = append(hits, o)
		}
	}
	return hits
}
