package config

import (
	"fmt"

	"github.com/kherring/matterlab/internal/matter"
	"github.com/kherring/matterlab/internal/shape"
	"github.com/kherring/matterlab/internal/substance"
)

// RegisterSubstances adds the scenario's own substance definitions to reg.
func RegisterSubstances(cfg *Config, reg *substance.Registry) {
	for _, sc := range cfg.Substances {
		reg.Register(&substance.Substance{
			ID:           sc.ID,
			Name:         sc.Name,
			Formula:      sc.Formula,
			Density:      sc.Density,
			MeltingPoint: sc.MeltingPoint,
			BoilingPoint: sc.BoilingPoint,
			Flammable:    sc.Flammable,
		})
	}
}

// Build assembles the scenario into a composite, resolving substance IDs
// through reg. Scenario-local substances must be registered first.
func Build(cfg *Config, reg *substance.Registry) (*matter.Composite, error) {
	components := make([]matter.Node, 0, len(cfg.Layers))
	for i := range cfg.Layers {
		n, err := buildLayer(&cfg.Layers[i], reg)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		components = append(components, n)
	}
	return matter.NewComposite(components, shape.NewVolume(cfg.Volume))
}

func buildLayer(lc *LayerConfig, reg *substance.Registry) (matter.Node, error) {
	if len(lc.Layers) > 0 {
		return buildComposite(lc, reg)
	}
	return buildLeaf(lc, reg)
}

func buildComposite(lc *LayerConfig, reg *substance.Registry) (matter.Node, error) {
	children := make([]matter.Node, 0, len(lc.Layers))
	for i := range lc.Layers {
		n, err := buildLayer(&lc.Layers[i], reg)
		if err != nil {
			return nil, fmt.Errorf("sublayer %d: %w", i, err)
		}
		children = append(children, n)
	}
	c, err := matter.NewComposite(children, shape.NewVolume(lc.Volume))
	if err != nil {
		return nil, err
	}
	if lc.Mass != nil {
		c.OverrideMass(*lc.Mass)
	}
	if lc.Density != nil {
		c.OverrideDensity(*lc.Density)
	}
	if lc.Temperature != nil {
		c.OverrideTemperature(*lc.Temperature)
	}
	return c, nil
}

func buildLeaf(lc *LayerConfig, reg *substance.Registry) (matter.Node, error) {
	if lc.Mass == nil {
		return nil, fmt.Errorf("leaf layer needs a mass")
	}

	if lc.Substance != "" {
		s, ok := reg.Lookup(lc.Substance)
		if !ok {
			return nil, fmt.Errorf("unknown substance %q", lc.Substance)
		}
		density := s.Density
		if lc.Density != nil {
			density = *lc.Density
		}
		m := matter.NewMaterial(shape.NewVolume(lc.Volume), *lc.Mass, density)
		m.Add(s, 1)
		if lc.Temperature != nil {
			m.SetTemperature(*lc.Temperature)
		}
		return m, nil
	}

	if len(lc.Constituents) == 0 {
		return nil, fmt.Errorf("leaf layer needs a substance or constituents")
	}
	if lc.Density == nil {
		return nil, fmt.Errorf("multi-constituent layer needs a density")
	}
	m := matter.NewMaterial(shape.NewVolume(lc.Volume), *lc.Mass, *lc.Density)
	for _, cc := range lc.Constituents {
		s, ok := reg.Lookup(cc.Substance)
		if !ok {
			return nil, fmt.Errorf("unknown substance %q", cc.Substance)
		}
		m.Add(s, cc.Proportion)
	}
	if lc.Temperature != nil {
		m.SetTemperature(*lc.Temperature)
	}
	return m, nil
}
