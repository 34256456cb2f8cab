package ensemble

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/spinsim/internal/sequence"
)

// ErrNoDetection is returned when a sequence without a detection window
// is simulated.
var ErrNoDetection = errors.New("ensemble: sequence has no detection window")

// Simulator runs sequences over offset distributions using a fixed pool
// of workers.
type Simulator struct {
	workers int
	log     zerolog.Logger
}

// New returns a simulator using the given number of workers. A value
// below 1 selects one worker per CPU.
func New(workers int, log zerolog.Logger) *Simulator {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Simulator{
		workers: workers,
		log:     log.With().Str("component", "ensemble").Logger(),
	}
}

// SimulateAt runs the sequence for a single spin at a fixed detuning
// offset, with no ensemble averaging.
func (s *Simulator) SimulateAt(ctx context.Context, seq *sequence.Sequence, detuning float64) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return runTrajectory(seq, detuning)
}

// Simulate resolves the distribution, runs one trajectory per offset in
// parallel, and returns the weighted average of the detected traces.
func (s *Simulator) Simulate(ctx context.Context, seq *sequence.Sequence, dist Distribution) (*Result, error) {
	samples, err := dist.Resolve()
	if err != nil {
		return nil, err
	}
	det, ok := seq.Detection()
	if !ok {
		return nil, ErrNoDetection
	}

	s.log.Debug().
		Str("sequence", seq.Name()).
		Str("kind", string(dist.Kind)).
		Int("samples", len(samples)).
		Int("points", det.Points).
		Int("workers", s.workers).
		Msg("simulating ensemble")

	n := len(samples)
	results := make([]*Result, n)
	errs := make([]error, n)

	workers := s.workers
	if workers > n {
		workers = n
	}
	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := worker * chunkSize
			end := start + chunkSize
			if end > n {
				end = n
			}
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					return
				}
				results[i], errs[i] = runTrajectory(seq, samples[i].Offset)
			}
		}(w)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			s.log.Error().Err(err).Float64("offset", samples[i].Offset).Msg("trajectory failed")
			return nil, err
		}
	}

	return reduce(results, samples, det.Points), nil
}

// reduce combines per-offset trajectories into one weighted-average
// result, in grid order.
func reduce(results []*Result, samples []Sample, points int) *Result {
	out := newResult(points)
	for i, r := range results {
		w := samples[i].Weight
		floats.AddScaled(out.Sx, w, r.Sx)
		floats.AddScaled(out.Sy, w, r.Sy)
		floats.AddScaled(out.Sz, w, r.Sz)
	}
	copy(out.Time, results[0].Time)
	return out
}
