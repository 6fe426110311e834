package ingest

// Scaler accumulates a weighted average: each observation is added with a
// weight and Ave returns the weighted mean. Project uses it with unit
// weights for the reference location; callers deriving target areas from
// per-facility metrics would feed it distance-falloff weights.
type Scaler struct {
	sum     float64
	weights float64
}

// Add accumulates one observation v with weight w.
func (s *Scaler) Add(v, w float64) {
	s.sum += v * w
	s.weights += w
}

// Ave returns the weighted average and true, or zero and false when
// nothing with positive weight has been added.
func (s *Scaler) Ave() (float64, bool) {
	if s.weights == 0 {
		return 0, false
	}
	return s.sum / s.weights, true
}
