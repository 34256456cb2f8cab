package ensemble

// Result holds the detected expectation values, one entry per detection
// sample. Time starts at zero at the first detection point.
type Result struct {
	Time []float64
	Sx   []float64
	Sy   []float64
	Sz   []float64
}

func newResult(points int) *Result {
	return &Result{
		Time: make([]float64, points),
		Sx:   make([]float64, points),
		Sy:   make([]float64, points),
		Sz:   make([]float64, points),
	}
}

// Points returns the number of detection samples.
func (r *Result) Points() int { return len(r.Time) }

// Map returns the traces keyed by column name, for export.
func (r *Result) Map() map[string][]float64 {
	return map[string][]float64{
		"time": r.Time,
		"sx":   r.Sx,
		"sy":   r.Sy,
		"sz":   r.Sz,
	}
}
