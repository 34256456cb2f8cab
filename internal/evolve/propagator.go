// Package evolve builds unitary propagators for pulses and free evolution.
//
// Every constructor returns a validated 2x2 unitary; a propagator that
// fails the unitarity check is never handed to the caller.
package evolve

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate"

	"github.com/san-kum/spinsim/internal/shapes"
	"github.com/san-kum/spinsim/internal/spin"
)

// AxisScale scales the Sx and Sy components of the drive field,
// modeling independent channel amplitudes. Unit scaling leaves the
// standard rotation axis untouched.
type AxisScale struct {
	Sx float64
	Sy float64
}

// UnitScale is the default single-channel configuration.
func UnitScale() AxisScale { return AxisScale{Sx: 1, Sy: 1} }

func (a AxisScale) components(amp, phase float64) (ax, ay float64) {
	sin, cos := math.Sincos(phase)
	return amp * a.Sx * cos, amp * a.Sy * sin
}

// Instantaneous builds the propagator for a zero-duration pulse:
// U = exp(-i * amp*flip * S_phi). Detuning plays no role during an
// instantaneous pulse (true zero-duration limit, the standard pulse-
// sequence convention).
func Instantaneous(flip, phase, amp float64, scale AxisScale) (spin.Matrix, error) {
	ax, ay := scale.components(amp*flip, phase)
	return checked(spin.ExpPauli(ax, ay, 0, 1))
}

// Constant builds the propagator for an unshaped finite-duration pulse:
// Rabi rate omega1 = flip/duration, H = amp*omega1*S_phi + detuning*Sz,
// U = exp(-i*H*duration).
func Constant(flip, phase, amp, duration, detuning float64, scale AxisScale) (spin.Matrix, error) {
	if duration <= 0 {
		return spin.Matrix{}, fmt.Errorf("evolve: finite pulse requires positive duration, got %v", duration)
	}
	ax, ay := scale.components(amp*flip/duration, phase)
	return checked(spin.ExpPauli(ax, ay, detuning, duration))
}

// FreePrecession builds the propagator for free evolution under the
// detuning field: U = exp(-i * detuning * Sz * duration).
func FreePrecession(detuning, duration float64) (spin.Matrix, error) {
	if duration < 0 {
		return spin.Matrix{}, fmt.Errorf("evolve: negative delay duration %v", duration)
	}
	return checked(spin.ExpPauli(0, 0, detuning, duration))
}

// Shaped builds the propagator for a shaped pulse by time slicing: each
// slice contributes exp(-i*H_k*dt) with H_k built from that slice's
// amplitude, phase, and frequency offset, and the full propagator is the
// ordered product U_1*U_2*...*U_n applied left to right in time order.
//
// The envelope amplitude is rescaled so its trapezoidal time integral
// delivers the requested flip angle. The caller chooses the slice count;
// there is no adaptive refinement.
func Shaped(env *shapes.Envelope, flip, amp, phaseOffset, detuning float64, scale AxisScale) (spin.Matrix, error) {
	n := env.Slices()
	if n < 1 {
		return spin.Matrix{}, fmt.Errorf("evolve: empty envelope")
	}
	duration := env.Duration()

	var ampScale, dt float64
	var steps int
	if n == 1 {
		// A single slice is a constant envelope over the full duration.
		if duration <= 0 {
			return spin.Matrix{}, fmt.Errorf("evolve: single-slice envelope requires positive duration")
		}
		if env.Amplitude[0] > 1e-12 {
			ampScale = flip / (env.Amplitude[0] * duration)
		}
		dt = duration
		steps = 1
	} else {
		integral := integrate.Trapezoidal(env.Times, env.Amplitude)
		if integral > 1e-12 {
			ampScale = flip / integral
		}
		dt = duration / float64(n-1)
		steps = n - 1
	}
	ampScale *= amp

	u := spin.I2
	for k := 0; k < steps; k++ {
		ax, ay := scale.components(env.Amplitude[k]*ampScale, env.Phase[k]+phaseOffset)
		u = u.Mul(spin.ExpPauli(ax, ay, detuning+env.Freq[k], dt))
	}
	return checked(u)
}

func checked(u spin.Matrix) (spin.Matrix, error) {
	if err := spin.CheckUnitary(u, spin.DefaultUnitaryTol); err != nil {
		return spin.Matrix{}, err
	}
	return u, nil
}
