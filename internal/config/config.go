// Package config loads and saves run configuration as YAML.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt         = 0.1
	DefaultDuration   = 600.0
	DefaultIntegrator = "verlet"
	DefaultDataDir    = ".landersim"
)

type Config struct {
	Scenario   int     `yaml:"scenario"`
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
	Integrator string  `yaml:"integrator"`
	DataDir    string  `yaml:"data_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:   0,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Integrator: DefaultIntegrator,
		DataDir:    DefaultDataDir,
	}
}

// Load reads path on top of the defaults, so missing keys keep their
// default values.
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
