package ensemble

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/san-kum/spinsim/internal/sequence"
)

// CheckReport summarizes a physics self-check run.
type CheckReport struct {
	Passed      bool
	Diagnostics []string
}

// SelfCheck runs a reference Hahn echo over a gaussian ensemble and
// verifies the physics end to end: propagator unitarity and density
// invariants (enforced during the run), full dephasing before the echo,
// and an echo of the right amplitude at the right time.
func SelfCheck(ctx context.Context, log zerolog.Logger) (*CheckReport, error) {
	const (
		tau   = 5.0
		dt    = 0.05
		width = 2.0
	)

	seq, err := sequence.New("hahn self-check").
		AddPulse(math.Pi/2, 0).
		AddDelay(tau).
		AddPulse(math.Pi, 0).
		SetDetection(dt, 201).
		Build()
	if err != nil {
		return nil, err
	}

	res, err := New(0, log).Simulate(ctx, seq, Distribution{Kind: Gaussian, Width: width, Samples: 101})
	if err != nil {
		return nil, fmt.Errorf("ensemble: self-check run: %w", err)
	}

	report := &CheckReport{Passed: true}
	note := func(ok bool, format string, args ...any) {
		status := "ok"
		if !ok {
			status = "FAIL"
			report.Passed = false
		}
		report.Diagnostics = append(report.Diagnostics, fmt.Sprintf("[%s] %s", status, fmt.Sprintf(format, args...)))
	}

	base := math.Hypot(res.Sx[0], res.Sy[0])
	note(base < 0.05, "transverse magnetization %.4f after dephasing delay (expect ~0)", base)

	peakTime, peakAmp := peakTransverse(res)
	note(math.Abs(peakAmp-0.5) < 0.02, "echo amplitude %.4f (expect 0.5)", peakAmp)
	note(math.Abs(peakTime-tau) <= dt, "echo at t=%.3f after refocusing pulse (expect %.3f)", peakTime, tau)

	return report, nil
}

// peakTransverse returns the time and magnitude of the largest transverse
// magnetization in a result.
func peakTransverse(r *Result) (time, amp float64) {
	for k := range r.Time {
		m := math.Hypot(r.Sx[k], r.Sy[k])
		if m > amp {
			amp = m
			time = r.Time[k]
		}
	}
	return time, amp
}
