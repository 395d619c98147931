// Package config loads and saves scenario files: YAML descriptions of the
// object to build, from substance definitions down to the layer tree.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one buildable object.
type Config struct {
	Name       string            `yaml:"name"`
	Volume     float64           `yaml:"volume"` // envelope volume, m3
	Substances []SubstanceConfig `yaml:"substances,omitempty"`
	Layers     []LayerConfig     `yaml:"layers"`
}

// SubstanceConfig defines a substance beyond the built-in set.
type SubstanceConfig struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Formula      string  `yaml:"formula,omitempty"`
	Density      float64 `yaml:"density"`
	MeltingPoint float64 `yaml:"melting_point,omitempty"`
	BoilingPoint float64 `yaml:"boiling_point,omitempty"`
	Flammable    bool    `yaml:"flammable,omitempty"`
}

// LayerConfig is one node of the layer tree, core first. A layer is either
// a leaf (substance or constituents set) or a nested composite (layers
// set); mass, density and temperature are required on leaves and act as
// optional overrides on composites.
type LayerConfig struct {
	Substance    string              `yaml:"substance,omitempty"`
	Constituents []ConstituentConfig `yaml:"constituents,omitempty"`
	Layers       []LayerConfig       `yaml:"layers,omitempty"`

	Mass        *float64 `yaml:"mass,omitempty"`
	Density     *float64 `yaml:"density,omitempty"`
	Temperature *float64 `yaml:"temperature,omitempty"`
	Volume      float64  `yaml:"volume,omitempty"` // m3, leaf shape volume
}

// ConstituentConfig is one (substance, proportion) entry of a leaf layer.
type ConstituentConfig struct {
	Substance  string  `yaml:"substance"`
	Proportion float64 `yaml:"proportion"`
}

// Load reads a scenario file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(cfg.Layers) == 0 {
		return nil, fmt.Errorf("scenario %q has no layers", path)
	}
	return cfg, nil
}

// Save writes a scenario file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
