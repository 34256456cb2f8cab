// Package analysis extracts observables from detected traces: echo peak
// location and the frequency spectrum of the transverse signal.
package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/spinsim/internal/ensemble"
)

// ErrShortSignal is returned when a trace is too short to analyze.
var ErrShortSignal = errors.New("analysis: signal too short")

// Peak is the location and height of a transverse-magnetization maximum.
type Peak struct {
	Time      float64
	Amplitude float64
}

// EchoPeak returns the largest transverse magnetization sqrt(Sx^2+Sy^2)
// in the detected window and the time it occurs at.
func EchoPeak(r *ensemble.Result) Peak {
	var p Peak
	for k := range r.Time {
		m := math.Hypot(r.Sx[k], r.Sy[k])
		if m > p.Amplitude {
			p.Amplitude = m
			p.Time = r.Time[k]
		}
	}
	return p
}

// Spectrum is a frequency-domain view of the transverse signal, ordered
// from most negative to most positive frequency. Freq is angular, in the
// same units as detuning offsets.
type Spectrum struct {
	Freq  []float64
	Real  []float64
	Imag  []float64
	Power []float64
}

// ComputeSpectrum Fourier-transforms the complex transverse signal
// Sx + i*Sy of a detected trace. The trace needs at least two uniformly
// spaced samples.
func ComputeSpectrum(r *ensemble.Result) (*Spectrum, error) {
	n := r.Points()
	if n < 2 {
		return nil, ErrShortSignal
	}
	dt := r.Time[1] - r.Time[0]

	signal := make([]complex128, n)
	for k := range signal {
		signal[k] = complex(r.Sx[k], r.Sy[k])
	}
	coeffs := fft.FFT(signal)

	// Reorder so frequencies ascend through zero.
	start := (n + 1) / 2
	s := &Spectrum{
		Freq:  make([]float64, n),
		Real:  make([]float64, n),
		Imag:  make([]float64, n),
		Power: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		k := (start + i) % n
		bin := k
		if bin >= start {
			bin -= n
		}
		c := coeffs[k]
		s.Freq[i] = 2 * math.Pi * float64(bin) / (float64(n) * dt)
		s.Real[i] = real(c)
		s.Imag[i] = imag(c)
		s.Power[i] = cmplx.Abs(c)
	}
	return s, nil
}

// PeakFrequency returns the angular frequency of the strongest spectral
// component.
func (s *Spectrum) PeakFrequency() float64 {
	best := 0
	for i := range s.Power {
		if s.Power[i] > s.Power[best] {
			best = i
		}
	}
	return s.Freq[best]
}
