package shapes

// Envelope is a discretized pulse shape: per-slice amplitude, phase
// (radians), and frequency offset, over the slice time axis. All four
// arrays have equal length.
type Envelope struct {
	Times     []float64
	Amplitude []float64
	Phase     []float64
	Freq      []float64
}

// Slices returns the number of time slices.
func (e *Envelope) Slices() int { return len(e.Times) }

// Duration returns the total pulse duration.
func (e *Envelope) Duration() float64 {
	if len(e.Times) == 0 {
		return 0
	}
	return e.Times[len(e.Times)-1]
}

func newEnvelope(duration float64, n int) *Envelope {
	times := linspace(0, duration, n)
	if n == 1 {
		// A one-slice envelope spans the whole pulse; keep the duration
		// recoverable from the time axis.
		times[0] = duration
	}
	return &Envelope{
		Times:     times,
		Amplitude: make([]float64, n),
		Phase:     make([]float64, n),
		Freq:      make([]float64, n),
	}
}

func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}
