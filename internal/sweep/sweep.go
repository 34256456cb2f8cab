// Package sweep runs a simulation per point of a parameter grid and
// records how the echo responds, for experiments like echo-decay curves
// over the refocusing delay.
package sweep

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/san-kum/spinsim/internal/analysis"
	"github.com/san-kum/spinsim/internal/ensemble"
	"github.com/san-kum/spinsim/internal/sequence"
)

// ErrInvalidRange wraps sweep-grid validation failures.
var ErrInvalidRange = errors.New("sweep: invalid range")

// Builder constructs the sequence to simulate for one swept value.
type Builder func(value float64) (*sequence.Sequence, error)

// Result holds the echo observables per swept value.
type Result struct {
	Values   []float64
	EchoTime []float64
	EchoAmp  []float64
}

// Range returns steps uniformly spaced values spanning [min, max].
func Range(min, max float64, steps int) ([]float64, error) {
	if steps < 1 {
		return nil, fmt.Errorf("%w: steps must be >= 1, got %d", ErrInvalidRange, steps)
	}
	if max < min {
		return nil, fmt.Errorf("%w: max %v below min %v", ErrInvalidRange, max, min)
	}
	if steps == 1 {
		return []float64{min}, nil
	}
	values := make([]float64, steps)
	step := (max - min) / float64(steps-1)
	for i := range values {
		values[i] = min + step*float64(i)
	}
	return values, nil
}

// Sweeper runs one ensemble simulation per grid point.
type Sweeper struct {
	sim *ensemble.Simulator
	log zerolog.Logger
}

// New returns a sweeper running on the given simulator.
func New(sim *ensemble.Simulator, log zerolog.Logger) *Sweeper {
	return &Sweeper{sim: sim, log: log.With().Str("component", "sweep").Logger()}
}

// Run builds and simulates a sequence per value, in order, and records
// the echo peak of each result. The first failing point aborts the sweep.
func (s *Sweeper) Run(ctx context.Context, values []float64, build Builder, dist ensemble.Distribution) (*Result, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: empty value grid", ErrInvalidRange)
	}

	out := &Result{
		Values:   make([]float64, len(values)),
		EchoTime: make([]float64, len(values)),
		EchoAmp:  make([]float64, len(values)),
	}
	copy(out.Values, values)

	for i, v := range values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		seq, err := build(v)
		if err != nil {
			return nil, fmt.Errorf("sweep: point %d (value %v): %w", i, v, err)
		}
		res, err := s.sim.Simulate(ctx, seq, dist)
		if err != nil {
			return nil, fmt.Errorf("sweep: point %d (value %v): %w", i, v, err)
		}
		peak := analysis.EchoPeak(res)
		out.EchoTime[i] = peak.Time
		out.EchoAmp[i] = peak.Amplitude

		s.log.Debug().Float64("value", v).Float64("echo_time", peak.Time).
			Float64("echo_amp", peak.Amplitude).Msg("sweep point done")
	}
	return out, nil
}
