package config

import "math"

// Presets maps experiment name to named variants. Flip angles are
// radians; wurst sweep bounds are angular frequencies.
var Presets = map[string]map[string]*Config{
	"fid": {
		"basic": {
			Name: "fid basic",
			Sequence: []OpConfig{
				{Type: "pulse", Flip: math.Pi / 2},
			},
			Detection:    DetectionConfig{Dt: 0.05, Points: 201},
			Distribution: DistributionConfig{Kind: "gaussian", Width: 2, Samples: 101},
		},
	},
	"hahn": {
		"narrow": {
			Name: "hahn narrow",
			Sequence: []OpConfig{
				{Type: "pulse", Flip: math.Pi / 2},
				{Type: "delay", Duration: 5},
				{Type: "pulse", Flip: math.Pi},
			},
			Detection:    DetectionConfig{Dt: 0.05, Points: 201},
			Distribution: DistributionConfig{Kind: "gaussian", Width: 1, Samples: 101},
		},
		"broad": {
			Name: "hahn broad",
			Sequence: []OpConfig{
				{Type: "pulse", Flip: math.Pi / 2},
				{Type: "delay", Duration: 5},
				{Type: "pulse", Flip: math.Pi},
			},
			Detection:    DetectionConfig{Dt: 0.02, Points: 501},
			Distribution: DistributionConfig{Kind: "lorentzian", Width: 4, Samples: 201},
		},
		"soft": {
			Name: "hahn soft",
			Sequence: []OpConfig{
				{Type: "soft_pulse", Flip: math.Pi / 2, Duration: 0.2},
				{Type: "delay", Duration: 5},
				{Type: "soft_pulse", Flip: math.Pi, Duration: 0.4},
			},
			Detection:    DetectionConfig{Dt: 0.05, Points: 201},
			Distribution: DistributionConfig{Kind: "gaussian", Width: 1, Samples: 101},
		},
	},
	"stimulated": {
		"standard": {
			Name: "stimulated standard",
			Sequence: []OpConfig{
				{Type: "pulse", Flip: math.Pi / 2},
				{Type: "delay", Duration: 3},
				{Type: "pulse", Flip: math.Pi / 2},
				{Type: "delay", Duration: 6},
				{Type: "pulse", Flip: math.Pi / 2},
			},
			Detection:    DetectionConfig{Dt: 0.05, Points: 161},
			Distribution: DistributionConfig{Kind: "gaussian", Width: 2, Samples: 151},
		},
	},
	"wurst_echo": {
		"standard": {
			Name: "wurst echo",
			Sequence: []OpConfig{
				{Type: "pulse", Flip: math.Pi / 2},
				{Type: "delay", Duration: 25},
				{Type: "shaped_pulse", Flip: 30 * math.Pi, Duration: 20, Shape: "wurst",
					Params: map[string]any{"freq_start": -8.0, "freq_end": 8.0, "slices": 4000}},
			},
			Detection:    DetectionConfig{Dt: 0.1, Points: 701},
			Distribution: DistributionConfig{Kind: "gaussian", Width: 0.5, Samples: 101},
		},
	},
	"inversion": {
		"recovery": {
			Name: "inversion recovery",
			Sequence: []OpConfig{
				{Type: "pulse", Flip: math.Pi},
				{Type: "delay", Duration: 5},
				{Type: "pulse", Flip: math.Pi / 2},
			},
			Detection:    DetectionConfig{Dt: 0.05, Points: 201},
			Distribution: DistributionConfig{Kind: "gaussian", Width: 2, Samples: 101},
		},
		"gaussian": {
			Name: "inversion gaussian",
			Sequence: []OpConfig{
				{Type: "shaped_pulse", Flip: math.Pi, Duration: 2, Shape: "gaussian",
					Params: map[string]any{"slices": 200}},
			},
			Detection:    DetectionConfig{Dt: 0.1, Points: 11},
			Distribution: DistributionConfig{Kind: "gaussian", Width: 0.2, Samples: 51},
		},
		"sech": {
			Name: "inversion sech",
			Sequence: []OpConfig{
				{Type: "shaped_pulse", Flip: 6 * math.Pi, Duration: 10, Shape: "sech",
					Params: map[string]any{"beta": 5.0, "slices": 500}},
			},
			Detection:    DetectionConfig{Dt: 0.1, Points: 11},
			Distribution: DistributionConfig{Kind: "gaussian", Width: 0.5, Samples: 51},
		},
		"wurst": {
			Name: "inversion wurst",
			Sequence: []OpConfig{
				{Type: "shaped_pulse", Flip: 30 * math.Pi, Duration: 20, Shape: "wurst",
					Params: map[string]any{"freq_start": -8.0, "freq_end": 8.0, "slices": 4000}},
			},
			Detection:    DetectionConfig{Dt: 0.1, Points: 11},
			Distribution: DistributionConfig{Kind: "uniform", Width: 1, Samples: 21},
		},
	},
}

func GetPreset(experiment, preset string) *Config {
	variants, ok := Presets[experiment]
	if !ok {
		return nil
	}
	cfg, ok := variants[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(experiment string) []string {
	variants, ok := Presets[experiment]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	return names
}
