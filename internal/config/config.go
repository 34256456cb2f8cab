package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/spinsim/internal/ensemble"
	"github.com/san-kum/spinsim/internal/sequence"
	"github.com/san-kum/spinsim/internal/shapes"
)

const (
	DefaultDt      = 0.05
	DefaultPoints  = 201
	DefaultTau     = 5.0
	DefaultWidth   = 2.0
	DefaultSamples = 101
)

// Config is the YAML description of one experiment: a pulse sequence,
// the detection window, and the offset distribution. Angles are radians,
// detunings and sweep frequencies are angular.
type Config struct {
	Name         string             `yaml:"name"`
	Workers      int                `yaml:"workers"`
	SxScale      float64            `yaml:"sx_scale"`
	SyScale      float64            `yaml:"sy_scale"`
	Sequence     []OpConfig         `yaml:"sequence"`
	Detection    DetectionConfig    `yaml:"detection"`
	Distribution DistributionConfig `yaml:"distribution"`
}

// OpConfig is one sequence entry. Type selects which fields apply:
// "pulse" (flip, phase, amplitude), "soft_pulse" (adds duration),
// "shaped_pulse" (flip, duration, shape, params), "delay" (duration).
// A zero amplitude means 1.
type OpConfig struct {
	Type      string         `yaml:"type"`
	Flip      float64        `yaml:"flip,omitempty"`
	Phase     float64        `yaml:"phase,omitempty"`
	Amplitude float64        `yaml:"amplitude,omitempty"`
	Duration  float64        `yaml:"duration,omitempty"`
	Shape     string         `yaml:"shape,omitempty"`
	Params    map[string]any `yaml:"params,omitempty"`
}

type DetectionConfig struct {
	Dt     float64 `yaml:"dt"`
	Points int     `yaml:"points"`
}

type DistributionConfig struct {
	Kind      string  `yaml:"kind"`
	Width     float64 `yaml:"width"`
	Samples   int     `yaml:"samples"`
	MaxOffset float64 `yaml:"max_offset,omitempty"`
}

// DefaultConfig returns a two-pulse echo over a gaussian ensemble.
func DefaultConfig() *Config {
	return &Config{
		Name:    "hahn",
		SxScale: 1,
		SyScale: 1,
		Sequence: []OpConfig{
			{Type: "pulse", Flip: math.Pi / 2},
			{Type: "delay", Duration: DefaultTau},
			{Type: "pulse", Flip: math.Pi},
		},
		Detection: DetectionConfig{Dt: DefaultDt, Points: DefaultPoints},
		Distribution: DistributionConfig{
			Kind:    string(ensemble.Gaussian),
			Width:   DefaultWidth,
			Samples: DefaultSamples,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildSequence assembles the configured pulse sequence.
func (c *Config) BuildSequence() (*sequence.Sequence, error) {
	b := sequence.New(c.Name)
	for _, op := range c.Sequence {
		amp := op.Amplitude
		if amp == 0 {
			amp = 1
		}
		switch op.Type {
		case "pulse":
			b = b.AddHardPulse(op.Flip, op.Phase, amp)
		case "soft_pulse":
			b = b.AddSoftPulse(op.Flip, op.Phase, amp, op.Duration)
		case "shaped_pulse":
			params := shapes.Params(op.Params).Clone()
			if params == nil {
				params = shapes.Params{}
			}
			if op.Amplitude != 0 {
				params["amplitude"] = op.Amplitude
			}
			if op.Phase != 0 {
				params["phase_offset"] = op.Phase
			}
			b = b.AddShapedPulse(op.Flip, op.Duration, op.Shape, params)
		case "delay":
			b = b.AddDelay(op.Duration)
		default:
			return nil, fmt.Errorf("config: unknown operation type %q", op.Type)
		}
	}
	// Zero scales mean "not set": keep the builder default of 1.
	if c.SxScale > 0 && c.SyScale > 0 {
		b = b.SetAxisScale(c.SxScale, c.SyScale)
	}
	return b.SetDetection(c.Detection.Dt, c.Detection.Points).Build()
}

// BuildDistribution maps the configured distribution. An empty kind
// selects gaussian.
func (c *Config) BuildDistribution() ensemble.Distribution {
	kind := ensemble.Kind(c.Distribution.Kind)
	if kind == "" {
		kind = ensemble.Gaussian
	}
	return ensemble.Distribution{
		Kind:      kind,
		Width:     c.Distribution.Width,
		Samples:   c.Distribution.Samples,
		MaxOffset: c.Distribution.MaxOffset,
	}
}
