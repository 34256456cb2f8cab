package shapes

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Shape parameter defaults.
const (
	DefaultSigmaFactor = 4.0
	DefaultBeta        = 5.0
	DefaultWurstN      = 40.0
)

// Known reports whether name is a recognized shape identifier.
func Known(name string) bool {
	switch canonical(name) {
	case "gaussian", "square", "sech", "wurst", "chirp", "noisy":
		return true
	}
	return false
}

func canonical(name string) string {
	if name == "chirped" {
		return "chirp"
	}
	return name
}

// Generate produces the envelope for the named shape, sampled at slices
// points over duration. Fails before any matrix work: ErrUnknownShape for
// an unrecognized identifier, ErrInvalidParameter for duration <= 0 or
// slices < 1.
func Generate(name string, duration float64, slices int, p Params) (*Envelope, error) {
	if !Known(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("%w: duration must be positive, got %v", ErrInvalidParameter, duration)
	}
	if slices < 1 {
		return nil, fmt.Errorf("%w: slice count must be >= 1, got %d", ErrInvalidParameter, slices)
	}
	if p == nil {
		p = Params{}
	}

	switch canonical(name) {
	case "gaussian":
		return gaussian(duration, slices, p.Float("sigma_factor", DefaultSigmaFactor)), nil
	case "square":
		return square(duration, slices, p.Float("rise_time", 0)), nil
	case "sech":
		return sech(duration, slices, p.Float("beta", DefaultBeta)), nil
	case "wurst":
		return wurst(duration, slices,
			p.Float("freq_start", -5), p.Float("freq_end", 5),
			p.Float("wurst_n", DefaultWurstN), p.Float("amplitude_factor", 1)), nil
	case "chirp":
		return chirp(duration, slices, p)
	case "noisy":
		return noisy(duration, slices, p)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
}

func gaussian(duration float64, n int, sigmaFactor float64) *Envelope {
	e := newEnvelope(duration, n)
	center := duration / 2
	sigma := duration / (2 * sigmaFactor)
	for i, t := range e.Times {
		d := (t - center) / sigma
		e.Amplitude[i] = math.Exp(-0.5 * d * d)
	}
	return e
}

func square(duration float64, n int, riseTime float64) *Envelope {
	e := newEnvelope(duration, n)
	for i := range e.Amplitude {
		e.Amplitude[i] = 1
	}
	if riseTime > 0 {
		rise := int(riseTime / duration * float64(n))
		if rise > n/2 {
			rise = n / 2
		}
		for i := 0; i < rise; i++ {
			ramp := float64(i) / float64(rise)
			e.Amplitude[i] = ramp
			e.Amplitude[n-1-i] = ramp
		}
	}
	return e
}

func sech(duration float64, n int, beta float64) *Envelope {
	e := newEnvelope(duration, n)
	for i, t := range e.Times {
		e.Amplitude[i] = 1 / math.Cosh(beta*(2*t/duration-1))
	}
	return e
}

// wurst builds the wideband uniform-rate smooth-truncation envelope:
// amplitude 1 - |sin(pi*(t/T - 1/2))|^n with a linear frequency sweep.
func wurst(duration float64, n int, freqStart, freqEnd, wurstN, ampFactor float64) *Envelope {
	e := newEnvelope(duration, n)
	for i, t := range e.Times {
		s := math.Sin(math.Pi * (t/duration - 0.5))
		a := ampFactor * (1 - math.Pow(math.Abs(s), wurstN))
		if a < 0 {
			a = 0
		}
		e.Amplitude[i] = a
	}
	e.Freq = linspace(freqStart, freqEnd, n)
	sweepPhase(e, duration)
	return e
}

func chirp(duration float64, n int, p Params) (*Envelope, error) {
	envName := p.String("envelope", "gaussian")

	var e *Envelope
	switch envName {
	case "gaussian":
		e = gaussian(duration, n, p.Float("sigma_factor", DefaultSigmaFactor))
	case "square":
		e = square(duration, n, p.Float("rise_time", 0))
	case "sech":
		e = sech(duration, n, p.Float("beta", DefaultBeta))
	default:
		return nil, fmt.Errorf("%w: chirp envelope %q", ErrUnknownShape, envName)
	}

	e.Freq = linspace(p.Float("freq_start", -5), p.Float("freq_end", 5), n)
	sweepPhase(e, duration)
	return e, nil
}

// sweepPhase accumulates the phase implied by the frequency sweep:
// phi[i] = 2*pi * cumsum(freq) * dt.
func sweepPhase(e *Envelope, duration float64) {
	n := len(e.Freq)
	if n < 2 {
		return
	}
	dt := duration / float64(n-1)
	floats.CumSum(e.Phase, e.Freq)
	floats.Scale(2*math.Pi*dt, e.Phase)
}
