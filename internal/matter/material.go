package matter

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kherring/matterlab/internal/shape"
	"github.com/kherring/matterlab/internal/substance"
)

// Material is a single homogeneous physical object: a chemical composition
// plus shape, mass, density and an optional temperature. It is the terminal
// node of the composite tree; the structural accessors (Core, Surface,
// Homogenized) all return the material itself.
type Material struct {
	constituents Constituents
	shape        shape.Shape
	mass         float64
	hasMass      bool
	density      float64 // kg/m3, explicit, never derived from mass/volume
	temperature  float64
	hasTemp      bool
}

// NewMaterial creates a material with the given shape, mass and density and
// an empty composition. Temperature starts unset (ambient).
func NewMaterial(sh shape.Shape, mass, density float64) *Material {
	return &Material{
		constituents: make(Constituents),
		shape:        sh,
		mass:         mass,
		hasMass:      true,
		density:      density,
	}
}

// NewMaterialOf creates a material made entirely of a single substance,
// taking its density from the substance.
func NewMaterialOf(s *substance.Substance, sh shape.Shape, mass float64) *Material {
	m := NewMaterial(sh, mass, s.Density)
	m.Add(s, 1)
	return m
}

func (m *Material) Mass() float64    { return m.mass }
func (m *Material) Density() float64 { return m.density }

func (m *Material) Temperature() (float64, bool) { return m.temperature, m.hasTemp }

// SetTemperature sets the material's temperature in K.
func (m *Material) SetTemperature(t float64) {
	m.temperature = t
	m.hasTemp = true
}

// ClearTemperature marks the temperature as unspecified.
func (m *Material) ClearTemperature() {
	m.temperature = 0
	m.hasTemp = false
}

func (m *Material) Constituents() Constituents {
	out := make(Constituents, len(m.constituents))
	for s, p := range m.constituents {
		out[s] = p
	}
	return out
}

func (m *Material) Shape() shape.Shape    { return m.shape }
func (m *Material) Position() r3.Vec      { return m.shape.Position() }
func (m *Material) Rotation() quat.Number { return m.shape.Rotation() }
func (m *Material) IsEmpty() bool         { return false }

// SetPosition replaces the shape with a copy placed at p.
func (m *Material) SetPosition(p r3.Vec) { m.shape = m.shape.CloneAtPosition(p) }

// SetRotation replaces the shape with a copy oriented by q.
func (m *Material) SetRotation(q quat.Number) { m.shape = m.shape.CloneWithRotation(q) }

func (m *Material) Core() Node        { return m }
func (m *Material) Surface() Node     { return m }
func (m *Material) Homogenized() Node { return m }

// SetShape replaces the material's shape wholesale.
func (m *Material) SetShape(sh shape.Shape) { m.shape = sh }

func (m *Material) Clone() Node { return m.CloneScaled(1) }

// CloneScaled returns a deep copy carrying a fraction of the material: mass
// and shape volume both scale, so the density is unchanged.
func (m *Material) CloneScaled(fraction float64) Node {
	if fraction <= 0 {
		return Empty
	}
	c := &Material{
		constituents: m.Constituents(),
		shape:        m.shape.CloneScaled(fraction),
		mass:         m.mass * fraction,
		hasMass:      m.hasMass,
		density:      m.density,
		temperature:  m.temperature,
		hasTemp:      m.hasTemp,
	}
	return c
}

// Split partitions the material into parallel clones at the given mass
// proportions, collected into a composite sharing this material's shape.
// The proportion rules match Composite.Split.
func (m *Material) Split(proportions ...float64) Node {
	return splitNode(m, m.shape, proportions)
}

// Add upserts the proportion for a substance. No normalization is applied.
func (m *Material) Add(s *substance.Substance, proportion float64) {
	m.constituents[s] = proportion
}

// AddAll upserts a batch of proportions.
func (m *Material) AddAll(parts []Constituent) {
	for _, p := range parts {
		m.constituents[p.Substance] = p.Proportion
	}
}

// Remove deletes all constituents matching the predicate.
func (m *Material) Remove(pred func(s *substance.Substance, proportion float64) bool) {
	for s, p := range m.constituents {
		if pred(s, p) {
			delete(m.constituents, s)
		}
	}
}

// Equal reports structural equality: same shape, mass presence and value,
// density, temperature, and constituent set. Constituent comparison is
// order-independent and keyed by substance identity.
func (m *Material) Equal(other Node) bool {
	o, ok := other.(*Material)
	if !ok {
		return false
	}
	if m.shape != o.shape {
		return false
	}
	if m.hasMass != o.hasMass || !approxEqual(m.mass, o.mass) {
		return false
	}
	if !approxEqual(m.density, o.density) {
		return false
	}
	if m.hasTemp != o.hasTemp || !approxEqual(m.temperature, o.temperature) {
		return false
	}
	if len(m.constituents) != len(o.constituents) {
		return false
	}
	for s, p := range m.constituents {
		op, ok := o.constituents[s]
		if !ok || !approxEqual(p, op) {
			return false
		}
	}
	return true
}
