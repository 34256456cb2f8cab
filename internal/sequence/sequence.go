// Package sequence describes pulse sequences: an ordered list of pulses
// and delays, an optional detection window, and per-axis drive scaling.
//
// A sequence is assembled with the fluent [Builder] and becomes immutable
// once built; the simulator only reads it.
package sequence

import (
	"github.com/san-kum/spinsim/internal/shapes"
)

// PulseKind selects how a pulse's propagator is constructed.
type PulseKind int

const (
	// Hard is an instantaneous pulse: ideal rotation, no detuning
	// evolution during the pulse.
	Hard PulseKind = iota
	// Soft is a finite-duration pulse with a constant envelope.
	Soft
	// Shaped is a finite-duration pulse with a time-varying envelope.
	Shaped
)

func (k PulseKind) String() string {
	switch k {
	case Hard:
		return "hard"
	case Soft:
		return "soft"
	case Shaped:
		return "shaped"
	}
	return "unknown"
}

// Pulse is one pulse operation. Flip and Phase are radians; Amplitude is
// the relative drive amplitude. Duration, Shape, Params, Slices, and
// PhaseOffset apply only to the kinds that use them.
type Pulse struct {
	Kind        PulseKind
	Flip        float64
	Phase       float64
	Amplitude   float64
	Duration    float64
	Shape       string
	Params      shapes.Params
	Slices      int
	PhaseOffset float64
}

// Delay is a free-precession interval.
type Delay struct {
	Duration float64
}

// Detection defines the output sampling: Points samples spaced Dt apart,
// with free precession continuing between samples.
type Detection struct {
	Dt     float64
	Points int
}

// Operation is either a [Pulse] or a [Delay].
type Operation interface {
	isOperation()
}

func (Pulse) isOperation() {}
func (Delay) isOperation() {}

// Sequence is an immutable pulse-sequence description.
type Sequence struct {
	name      string
	ops       []Operation
	detection *Detection
	sxScale   float64
	syScale   float64
}

// Name returns the sequence's display name.
func (s *Sequence) Name() string { return s.name }

// Ops returns a copy of the operation list in execution order. Pulse
// params are cloned so callers cannot reach back into the sequence.
func (s *Sequence) Ops() []Operation {
	ops := make([]Operation, len(s.ops))
	for i, op := range s.ops {
		if p, ok := op.(Pulse); ok {
			p.Params = p.Params.Clone()
			op = p
		}
		ops[i] = op
	}
	return ops
}

// Detection returns the detection spec, or ok=false when none was set.
func (s *Sequence) Detection() (det Detection, ok bool) {
	if s.detection == nil {
		return Detection{}, false
	}
	return *s.detection, true
}

// AxisScale returns the per-axis drive scaling (1, 1 by default).
func (s *Sequence) AxisScale() (sx, sy float64) {
	return s.sxScale, s.syScale
}
