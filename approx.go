package catchment

import (
	"math"

	"github.com/gogeo/catchment/internal/parallel"
	"gonum.org/v1/gonum/floats"
)

// approxGridDim is the fixed grid resolution of IntersectAllApprox. The
// estimator's error shrinks with resolution; 500 per dimension keeps the
// oracle well inside the 0.05 absolute tolerance the tests hold it to.
const approxGridDim = 500

// serialGridThreshold is the grid size below which Overlap skips the worker
// pool; spinning up workers costs more than a few thousand cells.
const serialGridThreshold = 64

// Overlap estimates the area of circle covered by the union of the other
// circles, by sampling: the circle's bounding box is split into a
// samplesPerDim × samplesPerDim grid and each cell whose center lies inside
// the circle and inside at least one other contributes its cell area.
//
// Cells are evaluated in parallel, one grid row per work item, and the
// per-row partial sums are combined with a commutative reduction. The
// floating-point summation order may therefore vary slightly between runs;
// the variance is bounded and accepted.
func Overlap(circle Circle, others []Circle, samplesPerDim int) float64 {
	if circle.R <= 0 || len(others) == 0 || samplesPerDim <= 0 {
		return 0
	}

	minX, minY, maxX, maxY := circle.Bounds()
	dx := (maxX - minX) / float64(samplesPerDim)
	dy := (maxY - minY) / float64(samplesPerDim)
	cellArea := dx * dy

	rowSum := func(row int) float64 {
		y := minY + (float64(row)+0.5)*dy
		sum := 0.0
		for col := 0; col < samplesPerDim; col++ {
			x := minX + (float64(col)+0.5)*dx
			p := Pt(x, y)
			if p.DistanceSq(circle.Origin) > circle.R*circle.R {
				continue
			}
			for _, o := range others {
				if p.DistanceSq(o.Origin) <= o.R*o.R {
					sum += cellArea
					break
				}
			}
		}
		return sum
	}

	if samplesPerDim < serialGridThreshold {
		total := 0.0
		for row := 0; row < samplesPerDim; row++ {
			total += rowSum(row)
		}
		return total
	}

	pool := parallel.NewWorkerPool(0)
	defer pool.Close()

	partials := make([]float64, samplesPerDim)
	work := make([]func(), samplesPerDim)
	for row := 0; row < samplesPerDim; row++ {
		row := row
		work[row] = func() {
			partials[row] = rowSum(row)
		}
	}
	pool.ExecuteAll(work)

	return floats.Sum(partials)
}

// IntersectAllApprox estimates the area common to all circles by sampling
// the intersection of their bounding boxes on a fixed approxGridDim grid:
// (fraction of cell centers inside every circle) × box area.
//
// It exists as a tolerance-bounded oracle for IntersectAll and
// TotalIntersection, never as production output.
func IntersectAllApprox(circles []Circle) float64 {
	switch len(circles) {
	case 0:
		return 0
	case 1:
		return circles[0].Area()
	}

	minX, minY := math.Inf(-1), math.Inf(-1)
	maxX, maxY := math.Inf(1), math.Inf(1)
	for _, c := range circles {
		x0, y0, x1, y1 := c.Bounds()
		minX = math.Max(minX, x0)
		minY = math.Max(minY, y0)
		maxX = math.Min(maxX, x1)
		maxY = math.Min(maxY, y1)
		if minX > maxX || minY > maxY {
			return 0
		}
	}
	if minX >= maxX || minY >= maxY {
		return 0
	}

	dx := (maxX - minX) / approxGridDim
	dy := (maxY - minY) / approxGridDim

	inside := 0
	for i := 0; i < approxGridDim; i++ {
		x := minX + (float64(i)+0.5)*dx
		for j := 0; j < approxGridDim; j++ {
			y := minY + (float64(j)+0.5)*dy
			p := Pt(x, y)

			insideAll := true
			for _, c := range circles {
				if p.DistanceSq(c.Origin) > c.R*c.R {
					insideAll = false
					break
				}
			}
			if insideAll {
				inside++
			}
		}
	}

	boxArea := (maxX - minX) * (maxY - minY)
	return float64(inside) / (approxGridDim * approxGridDim) * boxArea
}
