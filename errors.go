package catchment

import "fmt"

// GeometryInputError reports an invalid primitive input, such as a chord
// length exceeding a circle's diameter. It is fatal to the single
// computation that produced it and not retryable with the same input.
type GeometryInputError struct {
	Op     string // operation that rejected the input
	Detail string
}

func (e *GeometryInputError) Error() string {
	return fmt.Sprintf("catchment: %s: invalid input: %s", e.Op, e.Detail)
}

// NumericConsistencyError reports an accumulated area outside its provable
// bound. It signals a sign-accounting or geometry defect inside the engine,
// never a property of the input; the computation is aborted rather than
// clamped.
type NumericConsistencyError struct {
	Op    string
	Value float64 // the offending result
	Lo    float64 // inclusive lower bound the value violated
	Hi    float64 // inclusive upper bound the value violated
}

func (e *NumericConsistencyError) Error() string {
	return fmt.Sprintf("catchment: %s: area %g outside provable bound [%g, %g]",
		e.Op, e.Value, e.Lo, e.Hi)
}

// NonConvergenceError reports that the radius solver exhausted its iteration
// budget without meeting tolerance. It is recoverable: the caller may retry
// with adjusted step or budget, or accept LastRadius as an estimate.
type NonConvergenceError struct {
	Iterations int
	LastRadius float64
	Residual   float64 // exclusive area minus target at the last iteration
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("catchment: solver did not converge in %d iterations (last r=%g, residual=%g)",
		e.Iterations, e.LastRadius, e.Residual)
}

// DegenerateTopologyError reports that the boundary walk of the exact
// intersection engine could not close its polygon: an unexpected adjacency
// left no next vertex, or the walk closed without visiting every vertex.
// Surfacing this explicitly replaces the silent truncation a naive walk
// would produce.
type DegenerateTopologyError struct {
	At      Point // vertex where the walk stopped
	Visited int   // vertices walked before the failure
	Total   int   // surviving boundary vertices expected on the loop
}

func (e *DegenerateTopologyError) Error() string {
	return fmt.Sprintf("catchment: boundary walk stuck at (%g, %g) after %d of %d vertices",
		e.At.X, e.At.Y, e.Visited, e.Total)
}

// PlacementError wraps the first solver failure inside ScaleAll, naming the
// target point that failed. The run it aborts produces no partial output.
type PlacementError struct {
	Index int // position of the failing target in the input list
	Err   error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("catchment: placement failed at target %d: %v", e.Index, e.Err)
}

func (e *PlacementError) Unwrap() error {
	return e.Err
}
