package matter

import (
	"encoding/json"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kherring/matterlab/internal/shape"
	"github.com/kherring/matterlab/internal/substance"
)

// The codec round-trips any node through a tagged-union JSON encoding:
// "kind" distinguishes leaves from composites (and the empty sentinel).
// Substances are stored by ID and resolved against a registry on decode.

const (
	kindMaterial  = "material"
	kindComposite = "composite"
	kindEmpty     = "empty"
)

type shapeJSON struct {
	Position [3]float64 `json:"position"`
	Rotation [4]float64 `json:"rotation"`
	Volume   float64    `json:"volume"`
}

type constituentJSON struct {
	Substance  string  `json:"substance"`
	Proportion float64 `json:"proportion"`
}

type nodeJSON struct {
	Kind         string            `json:"kind"`
	Shape        *shapeJSON        `json:"shape,omitempty"`
	Mass         *float64          `json:"mass,omitempty"`
	Density      *float64          `json:"density,omitempty"`
	Temperature  *float64          `json:"temperature,omitempty"`
	Constituents []constituentJSON `json:"constituents,omitempty"`
	Components   []nodeJSON        `json:"components,omitempty"`
}

// MarshalNode encodes a node as indented JSON.
func MarshalNode(n Node) ([]byte, error) {
	enc, err := encodeNode(n)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(enc, "", "  ")
}

// UnmarshalNode decodes a node, resolving substance IDs through reg.
func UnmarshalNode(data []byte, reg *substance.Registry) (Node, error) {
	var enc nodeJSON
	if err := json.Unmarshal(data, &enc); err != nil {
		return nil, err
	}
	return decodeNode(&enc, reg)
}

func encodeShape(sh shape.Shape) *shapeJSON {
	p := sh.Position()
	r := sh.Rotation()
	return &shapeJSON{
		Position: [3]float64{p.X, p.Y, p.Z},
		Rotation: [4]float64{r.Real, r.Imag, r.Jmag, r.Kmag},
		Volume:   sh.Volume(),
	}
}

func decodeShape(enc *shapeJSON) shape.Shape {
	if enc == nil {
		return shape.Shape{}
	}
	return shape.New(
		r3.Vec{X: enc.Position[0], Y: enc.Position[1], Z: enc.Position[2]},
		quat.Number{Real: enc.Rotation[0], Imag: enc.Rotation[1], Jmag: enc.Rotation[2], Kmag: enc.Rotation[3]},
		enc.Volume,
	)
}

func encodeConstituents(cs Constituents) []constituentJSON {
	out := make([]constituentJSON, 0, len(cs))
	for s, p := range cs {
		out = append(out, constituentJSON{Substance: s.ID, Proportion: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Substance < out[j].Substance })
	return out
}

func encodeNode(n Node) (*nodeJSON, error) {
	switch v := n.(type) {
	case *Material:
		enc := &nodeJSON{
			Kind:         kindMaterial,
			Shape:        encodeShape(v.shape),
			Density:      ptr(v.density),
			Constituents: encodeConstituents(v.constituents),
		}
		if v.hasMass {
			enc.Mass = ptr(v.mass)
		}
		if v.hasTemp {
			enc.Temperature = ptr(v.temperature)
		}
		return enc, nil
	case *Composite:
		enc := &nodeJSON{
			Kind:  kindComposite,
			Shape: encodeShape(v.shape),
		}
		if v.hasMass {
			enc.Mass = ptr(v.mass)
		}
		if v.hasDensity {
			enc.Density = ptr(v.density)
		}
		if v.hasTemp {
			enc.Temperature = ptr(v.temperature)
		}
		for _, child := range v.components {
			childEnc, err := encodeNode(child)
			if err != nil {
				return nil, err
			}
			enc.Components = append(enc.Components, *childEnc)
		}
		return enc, nil
	default:
		if n != nil && n.IsEmpty() {
			return &nodeJSON{Kind: kindEmpty}, nil
		}
		return nil, fmt.Errorf("cannot encode node of type %T", n)
	}
}

func decodeNode(enc *nodeJSON, reg *substance.Registry) (Node, error) {
	switch enc.Kind {
	case kindEmpty:
		return Empty, nil
	case kindMaterial:
		m := &Material{
			constituents: make(Constituents, len(enc.Constituents)),
			shape:        decodeShape(enc.Shape),
		}
		if enc.Mass != nil {
			m.mass = *enc.Mass
			m.hasMass = true
		}
		if enc.Density != nil {
			m.density = *enc.Density
		}
		if enc.Temperature != nil {
			m.SetTemperature(*enc.Temperature)
		}
		for _, ce := range enc.Constituents {
			s, ok := reg.Lookup(ce.Substance)
			if !ok {
				return nil, fmt.Errorf("unknown substance %q", ce.Substance)
			}
			m.constituents[s] = ce.Proportion
		}
		return m, nil
	case kindComposite:
		if len(enc.Components) == 0 {
			return nil, fmt.Errorf("composite needs at least one component")
		}
		components := make([]Node, len(enc.Components))
		for i := range enc.Components {
			child, err := decodeNode(&enc.Components[i], reg)
			if err != nil {
				return nil, err
			}
			components[i] = child
		}
		c, err := NewComposite(components, decodeShape(enc.Shape))
		if err != nil {
			return nil, err
		}
		if enc.Mass != nil {
			c.OverrideMass(*enc.Mass)
		}
		if enc.Density != nil {
			c.OverrideDensity(*enc.Density)
		}
		if enc.Temperature != nil {
			c.OverrideTemperature(*enc.Temperature)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown node kind %q", enc.Kind)
	}
}

func ptr(v float64) *float64 { return &v }
