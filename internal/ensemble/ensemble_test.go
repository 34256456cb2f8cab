package ensemble

import (
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/spinsim/internal/sequence"
)

func hahn(t *testing.T, tau, dt float64, points int, finalDelay bool) *sequence.Sequence {
	t.Helper()
	b := sequence.New("hahn").
		AddPulse(math.Pi/2, 0).
		AddDelay(tau).
		AddPulse(math.Pi, 0)
	if finalDelay {
		b = b.AddDelay(tau)
	}
	seq, err := b.SetDetection(dt, points).Build()
	require.NoError(t, err)
	return seq
}

func TestResolveValidation(t *testing.T) {
	tests := []struct {
		name string
		dist Distribution
	}{
		{"no samples", Distribution{Kind: Gaussian, Width: 1, Samples: 0}},
		{"negative width", Distribution{Kind: Gaussian, Width: -1, Samples: 5}},
		{"nan width", Distribution{Kind: Gaussian, Width: math.NaN(), Samples: 5}},
		{"zero width many samples", Distribution{Kind: Gaussian, Width: 0, Samples: 5}},
		{"unknown kind", Distribution{Kind: "voigt", Width: 1, Samples: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.dist.Resolve()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDistribution)
		})
	}
}

func TestResolveSingleSample(t *testing.T) {
	for _, kind := range Kinds() {
		samples, err := Distribution{Kind: kind, Width: 3, Samples: 1}.Resolve()
		require.NoError(t, err)
		require.Len(t, samples, 1)
		assert.Equal(t, Sample{Offset: 0, Weight: 1}, samples[0])
	}
}

func TestResolveWeights(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			samples, err := Distribution{Kind: kind, Width: 2, Samples: 51}.Resolve()
			require.NoError(t, err)
			require.Len(t, samples, 51)

			sum := 0.0
			for _, s := range samples {
				sum += s.Weight
			}
			assert.InDelta(t, 1.0, sum, 1e-12, "weights must sum to 1")

			// Symmetric grid, symmetric weights.
			n := len(samples)
			for i := 0; i < n/2; i++ {
				assert.InDelta(t, samples[i].Offset, -samples[n-1-i].Offset, 1e-12)
				assert.InDelta(t, samples[i].Weight, samples[n-1-i].Weight, 1e-12)
			}

			if kind == Uniform {
				for _, s := range samples {
					assert.InDelta(t, 1.0/float64(n), s.Weight, 1e-12)
				}
			} else {
				center := samples[n/2].Weight
				assert.Greater(t, center, samples[0].Weight, "center must outweigh the tails")
			}
		})
	}
}

func TestResolveSpan(t *testing.T) {
	samples, err := Distribution{Kind: Gaussian, Width: 2, Samples: 11}.Resolve()
	require.NoError(t, err)
	assert.InDelta(t, -10.0, samples[0].Offset, 1e-12)
	assert.InDelta(t, 10.0, samples[10].Offset, 1e-12)

	samples, err = Distribution{Kind: Uniform, Width: 2, Samples: 11}.Resolve()
	require.NoError(t, err)
	assert.InDelta(t, -2.0, samples[0].Offset, 1e-12)

	samples, err = Distribution{Kind: Gaussian, Width: 2, Samples: 11, MaxOffset: 4}.Resolve()
	require.NoError(t, err)
	assert.InDelta(t, -4.0, samples[0].Offset, 1e-12)
}

func TestResolveUniformRespectsWidth(t *testing.T) {
	// With the span widened past the width, offsets outside [-w, w] carry
	// zero weight and normalization runs over the in-width points only.
	samples, err := Distribution{Kind: Uniform, Width: 1, Samples: 11, MaxOffset: 5}.Resolve()
	require.NoError(t, err)
	require.Len(t, samples, 11)

	for _, s := range samples {
		if math.Abs(s.Offset) <= 1 {
			assert.InDelta(t, 1.0/3.0, s.Weight, 1e-12, "offset %v", s.Offset)
		} else {
			assert.Zero(t, s.Weight, "offset %v", s.Offset)
		}
	}

	// A grid with no point inside the width cannot be normalized.
	_, err = Distribution{Kind: Uniform, Width: 0.1, Samples: 10, MaxOffset: 5}.Resolve()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDistribution)
}

func TestSimulateAtHahnEchoRefocuses(t *testing.T) {
	// pi/2 - tau - pi - tau leaves a detuned spin exactly refocused at the
	// start of detection, independent of the offset.
	seq := hahn(t, 5.0, 0.1, 5, true)
	sim := New(1, zerolog.Nop())

	for _, detuning := range []float64{0, 0.7, 2.0, -3.3} {
		res, err := sim.SimulateAt(context.Background(), seq, detuning)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, math.Abs(res.Sy[0]), 1e-9, "detuning %v", detuning)
		assert.InDelta(t, 0.0, res.Sx[0], 1e-9, "detuning %v", detuning)
		assert.InDelta(t, 0.0, res.Sz[0], 1e-9, "detuning %v", detuning)
	}
}

func TestSimulateSingleSampleMatchesSimulateAt(t *testing.T) {
	seq := hahn(t, 3.0, 0.05, 40, false)
	sim := New(2, zerolog.Nop())

	avg, err := sim.Simulate(context.Background(), seq, Distribution{Kind: Uniform, Width: 0, Samples: 1})
	require.NoError(t, err)
	one, err := sim.SimulateAt(context.Background(), seq, 0)
	require.NoError(t, err)

	assert.Equal(t, one.Sx, avg.Sx)
	assert.Equal(t, one.Sy, avg.Sy)
	assert.Equal(t, one.Sz, avg.Sz)
	assert.Equal(t, one.Time, avg.Time)
}

func TestSimulateDeterministicAcrossWorkers(t *testing.T) {
	seq := hahn(t, 2.0, 0.05, 60, false)
	dist := Distribution{Kind: Lorentzian, Width: 1.5, Samples: 31}

	a, err := New(1, zerolog.Nop()).Simulate(context.Background(), seq, dist)
	require.NoError(t, err)
	b, err := New(4, zerolog.Nop()).Simulate(context.Background(), seq, dist)
	require.NoError(t, err)

	assert.Equal(t, a.Sx, b.Sx)
	assert.Equal(t, a.Sy, b.Sy)
	assert.Equal(t, a.Sz, b.Sz)
}

func TestSimulateRequiresDetection(t *testing.T) {
	seq, err := sequence.New("bare").AddPulse(math.Pi/2, 0).Build()
	require.NoError(t, err)

	sim := New(1, zerolog.Nop())
	_, err = sim.Simulate(context.Background(), seq, Distribution{Kind: Gaussian, Width: 1, Samples: 3})
	assert.ErrorIs(t, err, ErrNoDetection)
	_, err = sim.SimulateAt(context.Background(), seq, 0)
	assert.ErrorIs(t, err, ErrNoDetection)
}

func TestSimulateCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	seq := hahn(t, 2.0, 0.05, 10, false)
	_, err := New(1, zerolog.Nop()).Simulate(ctx, seq, Distribution{Kind: Gaussian, Width: 1, Samples: 5})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnsembleDephasing(t *testing.T) {
	// A single pi/2 pulse followed by detection: the inhomogeneous ensemble
	// decays from full transverse magnetization toward zero.
	seq, err := sequence.New("fid").
		AddPulse(math.Pi/2, 0).
		SetDetection(0.05, 101).
		Build()
	require.NoError(t, err)

	res, err := New(0, zerolog.Nop()).Simulate(context.Background(), seq,
		Distribution{Kind: Gaussian, Width: 2, Samples: 101})
	require.NoError(t, err)

	m0 := math.Hypot(res.Sx[0], res.Sy[0])
	mEnd := math.Hypot(res.Sx[100], res.Sy[100])
	assert.InDelta(t, 0.5, m0, 1e-9)
	assert.Less(t, mEnd, 0.02)
}

func TestHahnEchoEnsemble(t *testing.T) {
	// Detection opens right after the refocusing pulse: dephased at first,
	// echo of the full single-spin amplitude at t = tau.
	const tau = 5.0
	seq := hahn(t, tau, 0.05, 201, false)

	res, err := New(0, zerolog.Nop()).Simulate(context.Background(), seq,
		Distribution{Kind: Gaussian, Width: 2, Samples: 101})
	require.NoError(t, err)

	assert.Less(t, math.Hypot(res.Sx[0], res.Sy[0]), 0.05, "no signal before the echo forms")

	peakTime, peakAmp := peakTransverse(res)
	assert.InDelta(t, tau, peakTime, 0.05)
	assert.InDelta(t, 0.5, peakAmp, 0.01)
}

func TestSelfCheck(t *testing.T) {
	report, err := SelfCheck(context.Background(), zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, report.Diagnostics, 3)
	assert.True(t, report.Passed, "diagnostics: %v", report.Diagnostics)
}
