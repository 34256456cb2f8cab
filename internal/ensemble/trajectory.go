package ensemble

import (
	"fmt"

	"github.com/san-kum/spinsim/internal/evolve"
	"github.com/san-kum/spinsim/internal/sequence"
	"github.com/san-kum/spinsim/internal/shapes"
	"github.com/san-kum/spinsim/internal/spin"
)

// runTrajectory evolves a thermal spin through the sequence at one
// detuning offset and samples the detection window. The density matrix is
// validated after every operation and every detection step.
func runTrajectory(seq *sequence.Sequence, detuning float64) (*Result, error) {
	det, ok := seq.Detection()
	if !ok {
		return nil, ErrNoDetection
	}

	sx, sy := seq.AxisScale()
	scale := evolve.AxisScale{Sx: sx, Sy: sy}

	rho := spin.Thermal()
	for i, op := range seq.Ops() {
		u, err := propagator(op, detuning, scale)
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		rho = spin.Evolve(rho, u)
		if err := spin.CheckDensity(rho, spin.DefaultDensityTol); err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
	}

	r := newResult(det.Points)
	step, err := evolve.FreePrecession(detuning, det.Dt)
	if err != nil {
		return nil, err
	}
	for k := 0; k < det.Points; k++ {
		if k > 0 {
			rho = spin.Evolve(rho, step)
			if err := spin.CheckDensity(rho, spin.DefaultDensityTol); err != nil {
				return nil, fmt.Errorf("detection sample %d: %w", k, err)
			}
		}
		r.Time[k] = float64(k) * det.Dt
		r.Sx[k] = spin.Expect(rho, spin.SX)
		r.Sy[k] = spin.Expect(rho, spin.SY)
		r.Sz[k] = spin.Expect(rho, spin.SZ)
	}
	return r, nil
}

func propagator(op sequence.Operation, detuning float64, scale evolve.AxisScale) (spin.Matrix, error) {
	switch o := op.(type) {
	case sequence.Delay:
		return evolve.FreePrecession(detuning, o.Duration)
	case sequence.Pulse:
		switch o.Kind {
		case sequence.Hard:
			return evolve.Instantaneous(o.Flip, o.Phase, o.Amplitude, scale)
		case sequence.Soft:
			return evolve.Constant(o.Flip, o.Phase, o.Amplitude, o.Duration, detuning, scale)
		case sequence.Shaped:
			env, err := shapes.Generate(o.Shape, o.Duration, o.Slices, o.Params)
			if err != nil {
				return spin.Matrix{}, err
			}
			return evolve.Shaped(env, o.Flip, o.Amplitude, o.PhaseOffset, detuning, scale)
		}
	}
	return spin.Matrix{}, fmt.Errorf("ensemble: unsupported operation %T", op)
}
