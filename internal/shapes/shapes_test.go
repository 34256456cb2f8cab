package shapes

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateUnknownShape(t *testing.T) {
	_, err := Generate("triangle", 1.0, 50, nil)
	if !errors.Is(err, ErrUnknownShape) {
		t.Fatalf("expected ErrUnknownShape, got %v", err)
	}
}

func TestGenerateInvalidParameters(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		slices   int
	}{
		{"zero duration", 0, 50},
		{"negative duration", -1.0, 50},
		{"nan duration", math.NaN(), 50},
		{"zero slices", 1.0, 0},
		{"negative slices", 1.0, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate("gaussian", tt.duration, tt.slices, nil)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func TestGaussianEnvelope(t *testing.T) {
	e, err := Generate("gaussian", 2.0, 101, nil)
	if err != nil {
		t.Fatal(err)
	}
	if e.Slices() != 101 {
		t.Fatalf("slices = %d, want 101", e.Slices())
	}

	// Peak at the center, symmetric about it.
	if math.Abs(e.Amplitude[50]-1.0) > 1e-12 {
		t.Errorf("center amplitude = %v, want 1", e.Amplitude[50])
	}
	for i := 0; i < 50; i++ {
		if math.Abs(e.Amplitude[i]-e.Amplitude[100-i]) > 1e-12 {
			t.Fatalf("asymmetric at %d: %v vs %v", i, e.Amplitude[i], e.Amplitude[100-i])
		}
	}
	if e.Amplitude[0] >= e.Amplitude[25] || e.Amplitude[25] >= e.Amplitude[50] {
		t.Error("amplitude not rising toward center")
	}
}

func TestSquareEnvelope(t *testing.T) {
	e, err := Generate("square", 1.0, 20, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, a := range e.Amplitude {
		if a != 1 {
			t.Fatalf("amplitude[%d] = %v, want 1", i, a)
		}
	}

	withRise, err := Generate("square", 1.0, 20, Params{"rise_time": 0.25})
	if err != nil {
		t.Fatal(err)
	}
	if withRise.Amplitude[0] != 0 {
		t.Errorf("rise start = %v, want 0", withRise.Amplitude[0])
	}
	if withRise.Amplitude[10] != 1 {
		t.Errorf("plateau = %v, want 1", withRise.Amplitude[10])
	}
}

func TestSechEnvelope(t *testing.T) {
	e, err := Generate("sech", 4.0, 81, Params{"beta": 5.0})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(e.Amplitude[40]-1.0) > 1e-12 {
		t.Errorf("center = %v, want 1", e.Amplitude[40])
	}
	// sech(+-beta) at the edges.
	want := 1 / math.Cosh(5.0)
	if math.Abs(e.Amplitude[0]-want) > 1e-12 || math.Abs(e.Amplitude[80]-want) > 1e-12 {
		t.Errorf("edges = %v, %v, want %v", e.Amplitude[0], e.Amplitude[80], want)
	}
}

func TestWurstSweepsMonotonically(t *testing.T) {
	e, err := Generate("wurst", 2.0, 64, Params{"freq_start": -10.0, "freq_end": 10.0})
	if err != nil {
		t.Fatal(err)
	}

	if e.Freq[0] != -10 || e.Freq[63] != 10 {
		t.Fatalf("sweep endpoints = %v, %v", e.Freq[0], e.Freq[63])
	}
	for i := 1; i < len(e.Freq); i++ {
		if e.Freq[i] <= e.Freq[i-1] {
			t.Fatalf("sweep not monotone at slice %d: %v <= %v", i, e.Freq[i], e.Freq[i-1])
		}
	}

	// Smooth truncation: zero amplitude at both ends, full in the middle.
	if e.Amplitude[0] > 1e-12 || e.Amplitude[63] > 1e-12 {
		t.Errorf("edges not truncated: %v, %v", e.Amplitude[0], e.Amplitude[63])
	}
	mid := e.Amplitude[32]
	if mid < 0.9 {
		t.Errorf("center amplitude = %v, want near 1", mid)
	}
}

func TestChirpEnvelopes(t *testing.T) {
	for _, env := range []string{"gaussian", "square", "sech"} {
		t.Run(env, func(t *testing.T) {
			e, err := Generate("chirp", 1.0, 32, Params{
				"freq_start": -3.0, "freq_end": 3.0, "envelope": env,
			})
			if err != nil {
				t.Fatal(err)
			}
			if e.Freq[0] != -3 || e.Freq[31] != 3 {
				t.Errorf("sweep endpoints = %v, %v", e.Freq[0], e.Freq[31])
			}
			// Phase must accumulate from the sweep.
			allZero := true
			for _, ph := range e.Phase {
				if ph != 0 {
					allZero = false
					break
				}
			}
			if allZero {
				t.Error("chirp phase not accumulated")
			}
		})
	}

	if _, err := Generate("chirp", 1.0, 32, Params{"envelope": "sawtooth"}); !errors.Is(err, ErrUnknownShape) {
		t.Errorf("expected ErrUnknownShape for bad envelope, got %v", err)
	}
}

func TestChirpedAlias(t *testing.T) {
	if !Known("chirped") {
		t.Fatal("chirped alias not recognized")
	}
	if _, err := Generate("chirped", 1.0, 16, nil); err != nil {
		t.Fatalf("chirped alias failed: %v", err)
	}
}

func TestNoisyReproducible(t *testing.T) {
	p := Params{"base_shape": "square", "amp_noise": 0.2, "phase_noise": 0.1, "seed": 42}

	a, err := Generate("noisy", 1.0, 64, p)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate("noisy", 1.0, 64, p)
	if err != nil {
		t.Fatal(err)
	}

	for i := range a.Amplitude {
		if a.Amplitude[i] != b.Amplitude[i] || a.Phase[i] != b.Phase[i] {
			t.Fatalf("same seed diverged at slice %d", i)
		}
	}

	c, err := Generate("noisy", 1.0, 64, Params{"base_shape": "square", "amp_noise": 0.2, "phase_noise": 0.1, "seed": 43})
	if err != nil {
		t.Fatal(err)
	}
	same := true
	for i := range a.Amplitude {
		if a.Amplitude[i] != c.Amplitude[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical envelopes")
	}

	// Fluctuations stay bounded below by zero.
	for i, amp := range a.Amplitude {
		if amp < 0 {
			t.Fatalf("negative amplitude at slice %d: %v", i, amp)
		}
	}
}

func TestNoisyUnknownBase(t *testing.T) {
	_, err := Generate("noisy", 1.0, 16, Params{"base_shape": "triangle"})
	if !errors.Is(err, ErrUnknownShape) {
		t.Fatalf("expected ErrUnknownShape, got %v", err)
	}
}

func TestEnvelopeDuration(t *testing.T) {
	e, err := Generate("square", 2.5, 11, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d := e.Duration(); math.Abs(d-2.5) > 1e-12 {
		t.Errorf("Duration() = %v, want 2.5", d)
	}
}
