package catchment

import "log/slog"

// ScaleAll solves a radius for each target point in order, treating every
// previously solved circle as a fixed obstacle for the ones that follow.
// Later targets never affect earlier results, so the output is
// order-dependent: reordering the input changes the radii.
//
// The returned circles align one-to-one with the input order. The first
// target that fails to converge aborts the whole run with a PlacementError
// naming it; no partial output is returned.
//
// ScaleAll is inherently serial: each solve depends on all previous
// results. Parallelizing it would change its semantics.
func ScaleAll(targets []TargetPoint, opts SolveOptions) ([]Circle, error) {
	log := Logger()
	solved := make([]Circle, 0, len(targets))

	for i, t := range targets {
		c, err := ScaleToExclusiveArea(solved, t, opts)
		if err != nil {
			return nil, &PlacementError{Index: i, Err: err}
		}
		solved = append(solved, c)

		log.Info("catchment: placed circle",
			slog.Int("index", i),
			slog.Float64("radius", c.R),
			slog.Float64("target_area", t.TargetArea))
	}
	return solved, nil
}
