package scenario

import (
	"math"
	"testing"

	"github.com/san-kum/waveprop/internal/config"
	"github.com/san-kum/waveprop/internal/engine"
)

func TestBuildAllScenarios(t *testing.T) {
	cfg := config.DefaultConfig()

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			sc, err := Build(name, cfg)
			if err != nil {
				t.Fatal(err)
			}

			if !sc.X.Uniform() {
				t.Error("scenario grids must be uniform for spectral differentiation")
			}
			if sc.X.Size() != cfg.Grid.Points {
				t.Errorf("expected %d grid points, got %d", cfg.Grid.Points, sc.X.Size())
			}
			if len(sc.Initial.Data) != cfg.Grid.Points {
				t.Errorf("initial profile size %d does not match the grid", len(sc.Initial.Data))
			}

			if _, _, _, err := engine.CheckEquation(sc.Equation); err != nil {
				t.Errorf("scenario equation should validate: %v", err)
			}
		})
	}
}

func TestBuildUnknownScenario(t *testing.T) {
	if _, err := Build("warp", config.DefaultConfig()); err == nil {
		t.Error("expected error for unknown scenario")
	}
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Grid.Points = 1
	if _, err := Build("free", cfg); err == nil {
		t.Error("expected config validation error")
	}
}

func TestGaussianProfile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Params.Amplitude = 2.0

	sc, err := Build("diffusion", cfg)
	if err != nil {
		t.Fatal(err)
	}

	peak := 0.0
	for _, v := range sc.Initial.Data {
		peak = math.Max(peak, real(v))
	}
	if math.Abs(peak-2.0) > 1e-6 {
		t.Errorf("expected peak near the amplitude 2.0, got %f", peak)
	}
}

func TestScenariosRunEndToEnd(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Grid.Points = 16
	cfg.PEnd = 0.2
	cfg.SampleEvery = 0.1

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			sc, err := Build(name, cfg)
			if err != nil {
				t.Fatal(err)
			}

			results, err := engine.Integrate(sc.Equation, sc.Initial, cfg.PStart, engine.Options{
				Stepper: cfg.Stepper,
				Step:    cfg.Step,
				Samplers: map[string]engine.SamplerSpec{
					"field": {Fn: engine.SampleField, Schedule: cfg.SampleSchedule()},
				},
			})
			if err != nil {
				t.Fatal(err)
			}

			joined := results["field"]
			if len(joined.Dims) != 2 {
				t.Fatalf("expected a joined rank-2 result, got rank %d", len(joined.Dims))
			}
			if joined.Dims[0].Size() != len(cfg.SampleSchedule()) {
				t.Errorf("expected %d sampled coordinates, got %d", len(cfg.SampleSchedule()), joined.Dims[0].Size())
			}
		})
	}
}
