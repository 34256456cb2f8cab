package ensemble

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidDistribution wraps every distribution validation failure.
var ErrInvalidDistribution = errors.New("ensemble: invalid distribution")

// Kind names a detuning-offset line shape.
type Kind string

const (
	Gaussian    Kind = "gaussian"
	Lorentzian  Kind = "lorentzian"
	Exponential Kind = "exponential"
	Uniform     Kind = "uniform"
)

// Kinds lists the supported line shapes.
func Kinds() []Kind {
	return []Kind{Gaussian, Lorentzian, Exponential, Uniform}
}

// Distribution describes an inhomogeneous detuning distribution sampled
// on a symmetric uniform grid.
type Distribution struct {
	Kind    Kind
	Width   float64
	Samples int

	// MaxOffset overrides the sampled span when positive. By default the
	// grid covers [-5w, 5w], or [-w, w] for the uniform kind.
	MaxOffset float64
}

// Sample is one grid point: a detuning offset and its normalized weight.
type Sample struct {
	Offset float64
	Weight float64
}

// Resolve expands the distribution into its weighted sample grid. Weights
// sum to 1. A single-sample distribution collapses to the on-resonance
// point regardless of kind and width.
func (d Distribution) Resolve() ([]Sample, error) {
	if d.Samples < 1 {
		return nil, fmt.Errorf("%w: sample count must be >= 1, got %d", ErrInvalidDistribution, d.Samples)
	}
	if d.Width < 0 || math.IsNaN(d.Width) || math.IsInf(d.Width, 0) {
		return nil, fmt.Errorf("%w: width must be finite and >= 0, got %v", ErrInvalidDistribution, d.Width)
	}
	if d.Samples == 1 {
		return []Sample{{Offset: 0, Weight: 1}}, nil
	}
	if d.Width == 0 {
		return nil, fmt.Errorf("%w: zero width needs exactly 1 sample, got %d", ErrInvalidDistribution, d.Samples)
	}

	weight, err := d.weightFunc()
	if err != nil {
		return nil, err
	}

	span := d.span()
	n := d.Samples
	offsets := make([]float64, n)
	weights := make([]float64, n)
	step := 2 * span / float64(n-1)
	for i := range offsets {
		offsets[i] = -span + step*float64(i)
		weights[i] = weight(offsets[i])
	}
	total := floats.Sum(weights)
	if total <= 0 {
		return nil, fmt.Errorf("%w: no sample carries weight (width %v, span %v)", ErrInvalidDistribution, d.Width, span)
	}
	floats.Scale(1/total, weights)

	samples := make([]Sample, n)
	for i := range samples {
		samples[i] = Sample{Offset: offsets[i], Weight: weights[i]}
	}
	return samples, nil
}

func (d Distribution) span() float64 {
	if d.MaxOffset > 0 {
		return d.MaxOffset
	}
	if d.Kind == Uniform {
		return d.Width
	}
	return 5 * d.Width
}

func (d Distribution) weightFunc() (func(float64) float64, error) {
	w := d.Width
	switch d.Kind {
	case Gaussian:
		return func(x float64) float64 { return math.Exp(-(x / w) * (x / w)) }, nil
	case Lorentzian:
		return func(x float64) float64 { return 1 / (1 + (x/w)*(x/w)) }, nil
	case Exponential:
		return func(x float64) float64 { return math.Exp(-math.Abs(x) / w) }, nil
	case Uniform:
		return func(x float64) float64 {
			if math.Abs(x) <= w {
				return 1
			}
			return 0
		}, nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidDistribution, d.Kind)
}
