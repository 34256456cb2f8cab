package sequence

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/spinsim/internal/shapes"
)

// ErrInvalidSequence wraps every builder validation failure.
var ErrInvalidSequence = errors.New("sequence: invalid sequence")

// DefaultSlices is the slice count used by shaped pulses when the caller
// does not override it.
const DefaultSlices = 100

// Builder assembles a [Sequence] with chainable calls. Arguments are
// validated eagerly: the call that introduces a bad value records the
// error, subsequent calls keep chaining, and Build reports the first
// failure.
type Builder struct {
	name      string
	ops       []Operation
	detection *Detection
	sxScale   float64
	syScale   float64
	err       error
}

// New returns an empty builder for a named sequence.
func New(name string) *Builder {
	return &Builder{name: name, sxScale: 1, syScale: 1}
}

// AddPulse appends an instantaneous pulse with unit amplitude.
func (b *Builder) AddPulse(flip, phase float64) *Builder {
	return b.AddHardPulse(flip, phase, 1)
}

// AddHardPulse appends an instantaneous pulse with an explicit relative
// amplitude.
func (b *Builder) AddHardPulse(flip, phase, amplitude float64) *Builder {
	if !b.checkPulse(flip, phase, amplitude) {
		return b
	}
	b.ops = append(b.ops, Pulse{Kind: Hard, Flip: flip, Phase: phase, Amplitude: amplitude})
	return b
}

// AddSoftPulse appends a finite-duration constant-envelope pulse.
func (b *Builder) AddSoftPulse(flip, phase, amplitude, duration float64) *Builder {
	if !b.checkPulse(flip, phase, amplitude) {
		return b
	}
	if duration <= 0 || !isFinite(duration) {
		return b.fail("soft pulse requires positive duration, got %v", duration)
	}
	b.ops = append(b.ops, Pulse{Kind: Soft, Flip: flip, Phase: phase, Amplitude: amplitude, Duration: duration})
	return b
}

// AddShapedPulse appends a shaped pulse. Besides shape-specific options,
// params may carry "slices" (time slices, default 100), "phase_offset"
// (radians), and "amplitude" (relative amplitude, default 1).
func (b *Builder) AddShapedPulse(flip, duration float64, shape string, params shapes.Params) *Builder {
	amplitude := params.Float("amplitude", 1)
	phaseOffset := params.Float("phase_offset", 0)
	slices := params.Int("slices", DefaultSlices)

	if !b.checkPulse(flip, phaseOffset, amplitude) {
		return b
	}
	if duration <= 0 || !isFinite(duration) {
		return b.fail("shaped pulse requires positive duration, got %v", duration)
	}
	if !shapes.Known(shape) {
		return b.fail("unknown shape %q", shape)
	}
	if slices < 1 {
		return b.fail("shaped pulse requires at least 1 slice, got %d", slices)
	}

	p := params.Clone()
	delete(p, "slices")
	delete(p, "phase_offset")
	delete(p, "amplitude")

	b.ops = append(b.ops, Pulse{
		Kind:        Shaped,
		Flip:        flip,
		Amplitude:   amplitude,
		Duration:    duration,
		Shape:       shape,
		Params:      p,
		Slices:      slices,
		PhaseOffset: phaseOffset,
	})
	return b
}

// AddDelay appends a free-precession interval.
func (b *Builder) AddDelay(duration float64) *Builder {
	if duration < 0 || !isFinite(duration) {
		return b.fail("delay duration must be >= 0, got %v", duration)
	}
	b.ops = append(b.ops, Delay{Duration: duration})
	return b
}

// SetDetection sets the output sampling window. A sequence holds at most
// one detection spec.
func (b *Builder) SetDetection(dt float64, points int) *Builder {
	if dt <= 0 || !isFinite(dt) {
		return b.fail("detection time step must be positive, got %v", dt)
	}
	if points < 1 {
		return b.fail("detection sample count must be >= 1, got %d", points)
	}
	if b.detection != nil {
		return b.fail("detection already set")
	}
	b.detection = &Detection{Dt: dt, Points: points}
	return b
}

// SetAxisScale sets independent Sx/Sy drive amplitudes.
func (b *Builder) SetAxisScale(sx, sy float64) *Builder {
	if sx <= 0 || sy <= 0 || !isFinite(sx) || !isFinite(sy) {
		return b.fail("axis scales must be positive, got sx=%v sy=%v", sx, sy)
	}
	b.sxScale, b.syScale = sx, sy
	return b
}

// Err returns the first validation failure recorded so far.
func (b *Builder) Err() error { return b.err }

// Build finalizes the sequence. The returned Sequence owns copies of the
// builder's state and never changes afterwards.
func (b *Builder) Build() (*Sequence, error) {
	if b.err != nil {
		return nil, b.err
	}

	ops := make([]Operation, len(b.ops))
	for i, op := range b.ops {
		if p, ok := op.(Pulse); ok {
			p.Params = p.Params.Clone()
			ops[i] = p
			continue
		}
		ops[i] = op
	}

	var det *Detection
	if b.detection != nil {
		d := *b.detection
		det = &d
	}

	return &Sequence{
		name:      b.name,
		ops:       ops,
		detection: det,
		sxScale:   b.sxScale,
		syScale:   b.syScale,
	}, nil
}

func (b *Builder) checkPulse(flip, phase, amplitude float64) bool {
	if b.err != nil {
		return false
	}
	if !isFinite(flip) {
		b.fail("flip angle must be finite, got %v", flip)
		return false
	}
	if !isFinite(phase) {
		b.fail("phase must be finite, got %v", phase)
		return false
	}
	if amplitude <= 0 || !isFinite(amplitude) {
		b.fail("relative amplitude must be positive, got %v", amplitude)
		return false
	}
	return true
}

func (b *Builder) fail(format string, args ...any) *Builder {
	if b.err == nil {
		b.err = fmt.Errorf("%w: %s", ErrInvalidSequence, fmt.Sprintf(format, args...))
	}
	return b
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
