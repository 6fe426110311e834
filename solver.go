package catchment

import (
	"log/slog"
	"math"
)

// SolveOptions tunes the exclusive-area radius solver. Zero values select
// the defaults.
type SolveOptions struct {
	// Step is the initial radius adjustment per iteration. Defaults to a
	// tenth of the overlap-free seed radius of the current target.
	Step float64

	// Tol is the absolute tolerance on the exclusive-area residual.
	// Defaults to DefaultTol.
	Tol float64

	// MaxIter caps the iteration count. Defaults to DefaultMaxIter.
	MaxIter int
}

// Solver defaults.
const (
	DefaultTol     = 1e-6
	DefaultMaxIter = 1000
)

func (o SolveOptions) withDefaults(seedRadius float64) SolveOptions {
	if o.Step <= 0 {
		o.Step = seedRadius * 0.1
	}
	if o.Tol <= 0 {
		o.Tol = DefaultTol
	}
	if o.MaxIter <= 0 {
		o.MaxIter = DefaultMaxIter
	}
	return o
}

// ScaleToExclusiveArea searches for a radius around target.Origin whose
// exclusive area - the disk area minus the part covered by the obstacle
// circles - equals target.TargetArea within tolerance.
//
// The search seeds at sqrt(targetArea/π), the exact radius ignoring
// overlap, which is a valid lower bound since overlap only shrinks the
// usable area. Each iteration steps the radius toward the target and halves
// the step whenever the residual changes sign, a bisection-like contraction
// without a formal bracket that stops the walk from oscillating around the
// answer.
//
// Exhausting the iteration budget returns a NonConvergenceError carrying
// the last estimate; the caller may retry with a different step or budget,
// or accept the estimate.
func ScaleToExclusiveArea(obstacles []Circle, target TargetPoint, opts SolveOptions) (Circle, error) {
	if target.TargetArea <= 0 {
		return Circle{}, &GeometryInputError{
			Op:     "ScaleToExclusiveArea",
			Detail: "target area must be positive",
		}
	}

	seed := math.Sqrt(target.TargetArea / math.Pi)
	opts = opts.withDefaults(seed)

	log := Logger()
	r := seed
	step := opts.Step
	prevSign := 0

	var lastResidual float64
	for i := 0; i < opts.MaxIter; i++ {
		c := Circle{Origin: target.Origin, R: r}

		covered, err := TotalIntersection(c, obstacles)
		if err != nil {
			return Circle{}, err
		}
		exclusive := c.Area() - covered
		residual := exclusive - target.TargetArea
		lastResidual = residual

		if math.Abs(residual) < opts.Tol {
			log.Debug("catchment: solver converged",
				slog.Int("iterations", i+1), slog.Float64("radius", r))
			return c, nil
		}

		sign := 1
		if residual > 0 {
			sign = -1 // above target, shrink
		}
		if prevSign != 0 && sign != prevSign {
			// Overshot: the residual switched sides, contract the step.
			step /= 2
		}
		prevSign = sign

		r += step * float64(sign)
		if r < seed {
			// Overlap only removes area, the seed stays a lower bound.
			r = seed
		}

		log.Debug("catchment: solver step",
			slog.Int("iteration", i), slog.Float64("radius", r),
			slog.Float64("residual", residual), slog.Float64("step", step))
	}

	log.Warn("catchment: solver exhausted iteration budget",
		slog.Int("max_iter", opts.MaxIter), slog.Float64("last_radius", r))
	return Circle{}, &NonConvergenceError{
		Iterations: opts.MaxIter,
		LastRadius: r,
		Residual:   lastResidual,
	}
}
