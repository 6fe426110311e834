package catchment

import "math"

// SegmentArea returns the area of the minor circular segment cut from a
// circle of radius r by a chord of length l.
//
// The central angle is θ = 2·asin(l/(2r)) and the area 0.5·r²·(θ − sin θ).
// A chord longer than the diameter is a GeometryInputError; a zero-length
// chord cuts nothing and returns 0.
func SegmentArea(r, l float64) (float64, error) {
	if l == 0 {
		return 0, nil
	}
	if l < 0 || l > 2*r+epsTangent {
		return 0, &GeometryInputError{
			Op:     "SegmentArea",
			Detail: "chord length exceeds circle diameter",
		}
	}

	x := l / (2 * r)
	if x > 1 {
		// Chord equal to the diameter within tolerance.
		x = 1
	}
	theta := 2 * math.Asin(x)
	return 0.5 * r * r * (theta - math.Sin(theta)), nil
}

// LensArea returns the area of the overlap of two disks.
//
// Disjoint pairs contribute 0, containment contributes the contained disk's
// full area, and a two-point crossing is the sum of two circular segments:
// both minor segments in the usual configuration, or the smaller circle's
// major segment when the chord falls on the far side of its center.
func LensArea(c1, c2 Circle) (float64, error) {
	return lensArea(c1, c2, Classify(c1, c2))
}

// lensArea computes the lens area from an already classified pair. The
// exact engine calls this directly when its surviving boundary degenerates
// to two points.
func lensArea(c1, c2 Circle, ix Intersection) (float64, error) {
	switch ix.Relationship() {
	case RelNone:
		return 0, nil
	case RelInside, RelEqual:
		return ix.Inside().Area(), nil
	}

	a, b := ix.Points()
	l := a.Distance(b)

	large, small := c1, c2
	if small.R > large.R {
		large, small = small, large
	}

	segLarge, err := SegmentArea(large.R, l)
	if err != nil {
		return 0, err
	}
	segSmall, err := SegmentArea(small.R, l)
	if err != nil {
		return 0, err
	}

	if ix.NearSide() {
		// The chord is beyond the smaller circle's center, so the lens
		// holds the smaller circle's major segment.
		return segLarge + (small.Area() - segSmall), nil
	}
	return segLarge + segSmall, nil
}
