package config

import "sort"

// Presets are named run configurations for the built-in scenarios. Orbital
// runs get longer horizons than the descents.
var Presets = map[string]*Config{
	"orbit": {
		Scenario: 0, Dt: 0.1, Duration: 8000, Integrator: "verlet",
	},
	"descent-10km": {
		Scenario: 1, Dt: 0.1, Duration: 600, Integrator: "verlet",
	},
	"elliptical": {
		Scenario: 2, Dt: 0.1, Duration: 10000, Integrator: "verlet",
	},
	"escape": {
		Scenario: 3, Dt: 0.1, Duration: 10000, Integrator: "verlet",
	},
	"decay": {
		Scenario: 4, Dt: 0.1, Duration: 20000, Integrator: "verlet",
	},
	"descent-200km": {
		Scenario: 5, Dt: 0.1, Duration: 4000, Integrator: "verlet",
	},
}

// GetPreset returns the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	if out.DataDir == "" {
		out.DataDir = DefaultDataDir
	}
	return &out
}

// ListPresets returns preset names in stable order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
