package shapes

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// noisy perturbs a base shape with per-slice amplitude, phase, and
// frequency fluctuations drawn from a seeded normal distribution. The
// PRNG is local to the call, so a given seed always reproduces the same
// envelope.
func noisy(duration float64, n int, p Params) (*Envelope, error) {
	base := p.String("base_shape", "gaussian")

	var e *Envelope
	switch base {
	case "gaussian":
		e = gaussian(duration, n, p.Float("sigma_factor", DefaultSigmaFactor))
	case "square":
		e = square(duration, n, p.Float("rise_time", 0))
	case "sech":
		e = sech(duration, n, p.Float("beta", DefaultBeta))
	default:
		return nil, fmt.Errorf("%w: noisy base shape %q", ErrUnknownShape, base)
	}

	ampNoise := p.Float("amp_noise", 0.1)
	phaseNoise := p.Float("phase_noise", 0.1)
	freqNoise := p.Float("freq_noise", 0)
	seed := uint64(p.Int("seed", 0))

	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewPCG(seed, seed)}
	for i := range e.Amplitude {
		e.Amplitude[i] *= 1 + ampNoise*norm.Rand()
		if e.Amplitude[i] < 0 {
			e.Amplitude[i] = 0
		}
		e.Phase[i] += phaseNoise * norm.Rand()
		e.Freq[i] += freqNoise * norm.Rand()
	}
	return e, nil
}
