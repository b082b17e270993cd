package config

var Presets = map[string]map[string]*Config{
	"diffusion": {
		"gentle": {
			Scenario: "diffusion", Stepper: "rk4", Step: 0.02, PEnd: 4.0, SampleEvery: 0.2,
			Grid:   GridConfig{Points: 64, Length: 10.0},
			Params: ScenarioParams{Diffusivity: 0.05, Width: 0.8, Amplitude: 1.0},
		},
		"fast": {
			Scenario: "diffusion", Stepper: "rk4", Step: 0.005, PEnd: 1.0, SampleEvery: 0.05,
			Grid:   GridConfig{Points: 128, Length: 10.0},
			Params: ScenarioParams{Diffusivity: 0.5, Width: 0.5, Amplitude: 1.0},
		},
	},
	"transport": {
		"drift": {
			Scenario: "transport", Stepper: "rk4", Step: 0.01, PEnd: 5.0, SampleEvery: 0.1,
			Grid:   GridConfig{Points: 128, Length: 10.0},
			Params: ScenarioParams{Speed: 1.0, Width: 0.6, Amplitude: 1.0},
		},
		"sprint": {
			Scenario: "transport", Stepper: "rk4", Step: 0.005, PEnd: 2.0, SampleEvery: 0.05,
			Grid:   GridConfig{Points: 256, Length: 10.0},
			Params: ScenarioParams{Speed: 4.0, Width: 0.6, Amplitude: 1.0},
		},
	},
	"free": {
		"still": {
			Scenario: "free", Stepper: "euler", Step: 0.1, PEnd: 2.0, SampleEvery: 0.5,
			Grid:   GridConfig{Points: 32, Length: 10.0},
			Params: ScenarioParams{Width: 0.8, Amplitude: 1.0},
		},
	},
}

func GetPreset(scenario, name string) *Config {
	group, ok := Presets[scenario]
	if !ok {
		return nil
	}
	cfg, ok := group[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scenario string) []string {
	group, ok := Presets[scenario]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	return names
}
