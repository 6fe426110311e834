package catchment

import (
	"log/slog"
	"math"
	"math/bits"

	"gonum.org/v1/gonum/floats"
)

// TotalIntersection returns the area of focal covered by the union of its
// overlaps with the other circles, by inclusion-exclusion: every non-empty
// subset S of the others contributes IntersectAll(S ∪ {focal}) with sign
// +1 for odd |S| and -1 for even |S|.
//
// The enumeration is intentionally exponential: 2^m − 1 subsets for m
// relevant others. That is the documented scalability ceiling of this
// accumulator, bounded in practice by the pre-filter (IntersectsMany is
// applied internally, so only circles that actually touch focal count
// toward m), not by concurrency.
//
// A result outside [0, focal.Area()] or NaN is a sign-accounting defect
// inside the engine and is returned as a NumericConsistencyError, never
// silently replaced by zero or an approximation.
func TotalIntersection(focal Circle, others []Circle) (float64, error) {
	relevant := IntersectsMany(focal, others)
	m := len(relevant)
	if m == 0 {
		return 0, nil
	}
	if m > 20 {
		Logger().Warn("catchment: dense overlap cluster in inclusion-exclusion",
			slog.Int("relevant", m))
	}

	// Collect the signed subset terms and sum them in one stable pass;
	// alternating-sign accumulation is where cancellation hurts most.
	terms := make([]float64, 0, (1<<m)-1)
	subset := make([]Circle, 0, m+1)
	for mask := 1; mask < 1<<m; mask++ {
		subset = subset[:0]
		subset = append(subset, focal)
		for b := 0; b < m; b++ {
			if mask&(1<<b) != 0 {
				subset = append(subset, relevant[b])
			}
		}

		area, err := IntersectAll(subset)
		if err != nil {
			return 0, err
		}
		if bits.OnesCount(uint(mask))%2 == 1 {
			terms = append(terms, area)
		} else {
			terms = append(terms, -area)
		}
	}

	total := floats.Sum(terms)
	if math.IsNaN(total) || total < -epsArea || total > focal.Area()+epsArea {
		return 0, &NumericConsistencyError{
			Op:    "TotalIntersection",
			Value: total,
			Lo:    0,
			Hi:    focal.Area(),
		}
	}

	// Floating noise only; true violations were rejected above.
	return math.Min(math.Max(total, 0), focal.Area()), nil
}
