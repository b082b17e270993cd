package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultStep        = 0.02
	DefaultPEnd        = 2.0
	DefaultSampleEvery = 0.1
	DefaultPoints      = 64
	DefaultLength      = 10.0
	DefaultSpeed       = 1.0
	DefaultDiffusivity = 0.1
	DefaultWidth       = 0.8
	DefaultAmplitude   = 1.0
)

type Config struct {
	Scenario    string         `yaml:"scenario"`
	Stepper     string         `yaml:"stepper"`
	Step        float64        `yaml:"step"`
	PStart      float64        `yaml:"p_start"`
	PEnd        float64        `yaml:"p_end"`
	SampleEvery float64        `yaml:"sample_every"`
	Grid        GridConfig     `yaml:"grid"`
	Params      ScenarioParams `yaml:"params"`
}

// GridConfig describes the periodic transverse grid: Points samples
// over a span of Length, endpoint excluded.
type GridConfig struct {
	Points int     `yaml:"points"`
	Length float64 `yaml:"length"`
}

type ScenarioParams struct {
	Speed       float64 `yaml:"speed"`
	Diffusivity float64 `yaml:"diffusivity"`
	Width       float64 `yaml:"width"`
	Amplitude   float64 `yaml:"amplitude"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:    "diffusion",
		Stepper:     "rk4",
		Step:        DefaultStep,
		PStart:      0.0,
		PEnd:        DefaultPEnd,
		SampleEvery: DefaultSampleEvery,
		Grid: GridConfig{
			Points: DefaultPoints,
			Length: DefaultLength,
		},
		Params: ScenarioParams{
			Speed:       DefaultSpeed,
			Diffusivity: DefaultDiffusivity,
			Width:       DefaultWidth,
			Amplitude:   DefaultAmplitude,
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

func (c *Config) Validate() error {
	if c.Step <= 0 {
		return fmt.Errorf("config: step must be positive, got %f", c.Step)
	}
	if c.PEnd < c.PStart {
		return fmt.Errorf("config: p_end %f before p_start %f", c.PEnd, c.PStart)
	}
	if c.SampleEvery <= 0 {
		return fmt.Errorf("config: sample_every must be positive, got %f", c.SampleEvery)
	}
	if c.Grid.Points < 2 {
		return fmt.Errorf("config: grid needs at least 2 points, got %d", c.Grid.Points)
	}
	if c.Grid.Length <= 0 {
		return fmt.Errorf("config: grid length must be positive, got %f", c.Grid.Length)
	}
	return nil
}

// SampleSchedule materializes the sampling coordinates: p_start through
// p_end every sample_every, endpoints included. The schedule is finite
// by construction, which is what bounds the integration run.
func (c *Config) SampleSchedule() []float64 {
	var out []float64
	for i := 0; ; i++ {
		p := c.PStart + float64(i)*c.SampleEvery
		if p > c.PEnd+1e-12 {
			break
		}
		out = append(out, p)
	}
	return out
}
