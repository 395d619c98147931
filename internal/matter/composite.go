package matter

import (
	"fmt"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kherring/matterlab/internal/shape"
	"github.com/kherring/matterlab/internal/substance"
)

// Composite is a material built from an ordered sequence of component
// materials, core first and surface last. Mass, density and temperature are
// aggregated from the components unless explicitly overridden.
//
// A composite always holds at least one component. Mutators that would drop
// the count to zero return the Empty sentinel, and mutators that drop it to
// exactly one return that component directly instead of a one-element
// composite.
//
// Composites are not safe for concurrent mutation; a composite belongs to
// one logical owner at a time.
type Composite struct {
	components []Node
	shape      shape.Shape

	mass        float64
	hasMass     bool
	density     float64
	hasDensity  bool
	temperature float64
	hasTemp     bool
}

// NewComposite creates a composite from a non-empty component list and an
// envelope shape. The slice is copied; the components are not.
func NewComposite(components []Node, sh shape.Shape) (*Composite, error) {
	if len(components) == 0 {
		return nil, fmt.Errorf("composite needs at least one component")
	}
	c := &Composite{
		components: make([]Node, len(components)),
		shape:      sh,
	}
	copy(c.components, components)
	return c, nil
}

// OverrideMass pins the composite's mass instead of summing components.
func (c *Composite) OverrideMass(mass float64) {
	c.mass = mass
	c.hasMass = true
}

// OverrideDensity pins the composite's density instead of deriving it.
func (c *Composite) OverrideDensity(density float64) {
	c.density = density
	c.hasDensity = true
}

// OverrideTemperature pins the composite's temperature instead of averaging
// component temperatures.
func (c *Composite) OverrideTemperature(t float64) {
	c.temperature = t
	c.hasTemp = true
}

// Components returns a copy of the component list, core first.
func (c *Composite) Components() []Node {
	out := make([]Node, len(c.components))
	copy(out, c.components)
	return out
}

// Len returns the number of direct components.
func (c *Composite) Len() int { return len(c.components) }

// Mass returns the override if set, otherwise the sum of component masses.
func (c *Composite) Mass() float64 {
	if c.hasMass {
		return c.mass
	}
	total := 0.0
	for _, n := range c.components {
		total += n.Mass()
	}
	return total
}

// Density returns the override if set, otherwise total component mass over
// total component shape volume. A zero total volume yields 0.
func (c *Composite) Density() float64 {
	if c.hasDensity {
		return c.density
	}
	mass, volume := 0.0, 0.0
	for _, n := range c.components {
		mass += n.Mass()
		volume += n.Shape().Volume()
	}
	return safeDiv(mass, volume)
}

// Temperature returns the override if set, otherwise the mass-weighted
// average over the components that define a temperature. Components without
// one are excluded from both the numerator and the weighting mass base; if
// none defines a temperature the composite's is undefined.
func (c *Composite) Temperature() (float64, bool) {
	if c.hasTemp {
		return c.temperature, true
	}
	weighted, massBase := 0.0, 0.0
	any := false
	for _, n := range c.components {
		t, ok := n.Temperature()
		if !ok {
			continue
		}
		any = true
		weighted += t * n.Mass()
		massBase += n.Mass()
	}
	if !any {
		return 0, false
	}
	return safeDiv(weighted, massBase), true
}

// Constituents aggregates the components' constituents, scaling each
// component's proportions by its mass fraction of the whole and summing on
// collision. With a total mass of ~0 every contribution is 0.
func (c *Composite) Constituents() Constituents {
	total := c.Mass()
	out := make(Constituents)
	for _, n := range c.components {
		frac := safeDiv(n.Mass(), total)
		if frac == 0 {
			continue
		}
		for s, p := range n.Constituents() {
			out[s] += p * frac
		}
	}
	return out
}

func (c *Composite) Shape() shape.Shape    { return c.shape }
func (c *Composite) Position() r3.Vec      { return c.shape.Position() }
func (c *Composite) Rotation() quat.Number { return c.shape.Rotation() }

// SetShape replaces the composite's envelope shape wholesale.
func (c *Composite) SetShape(sh shape.Shape) { c.shape = sh }

// SetPosition replaces the envelope with a copy placed at p.
func (c *Composite) SetPosition(p r3.Vec) { c.shape = c.shape.CloneAtPosition(p) }

// SetRotation replaces the envelope with a copy oriented by q.
func (c *Composite) SetRotation(q quat.Number) { c.shape = c.shape.CloneWithRotation(q) }

// IsEmpty reports whether the composite has zero components. Constructed
// composites never do; only the Empty sentinel is empty.
func (c *Composite) IsEmpty() bool { return len(c.components) == 0 }

// Core returns the innermost component.
func (c *Composite) Core() Node { return c.components[0] }

// Surface returns the outermost component.
func (c *Composite) Surface() Node { return c.components[len(c.components)-1] }

// Homogenized collapses the hierarchy into a single leaf carrying the
// composite's aggregate mass, density, temperature and constituents.
func (c *Composite) Homogenized() Node {
	m := &Material{
		constituents: c.Constituents(),
		shape:        c.shape,
		mass:         c.Mass(),
		hasMass:      true,
		density:      c.Density(),
	}
	if t, ok := c.Temperature(); ok {
		m.SetTemperature(t)
	}
	return m
}

func (c *Composite) Clone() Node { return c.CloneScaled(1) }

// CloneScaled deep-copies the composite, cloning every component at the same
// fraction. Mass and envelope volume scale together, so a derived density is
// unchanged. An explicit mass override is scaled along; density and
// temperature overrides carry over unchanged.
func (c *Composite) CloneScaled(fraction float64) Node {
	if fraction <= 0 {
		return Empty
	}
	out := &Composite{
		components:  make([]Node, len(c.components)),
		shape:       c.shape.CloneScaled(fraction),
		hasMass:     c.hasMass,
		density:     c.density,
		hasDensity:  c.hasDensity,
		temperature: c.temperature,
		hasTemp:     c.hasTemp,
	}
	if c.hasMass {
		out.mass = c.mass * fraction
	}
	for i, n := range c.components {
		out.components[i] = n.CloneScaled(fraction)
	}
	return out
}

// Add broadcasts a constituent upsert to every component. The proportion is
// not distributed: each component independently gains it as stated.
func (c *Composite) Add(s *substance.Substance, proportion float64) {
	for _, n := range c.components {
		n.Add(s, proportion)
	}
}

// AddAll broadcasts a batch of constituent upserts to every component.
func (c *Composite) AddAll(parts []Constituent) {
	for _, n := range c.components {
		n.AddAll(parts)
	}
}

// Remove broadcasts a constituent removal to every component.
func (c *Composite) Remove(pred func(s *substance.Substance, proportion float64) bool) {
	for _, n := range c.components {
		n.Remove(pred)
	}
}

// Equal reports structural equality: same shape, same mass/density/
// temperature override presence and values, and the same multiset of
// components. Component order does not matter; each component is matched
// against a so-far-unmatched equal component on the other side.
func (c *Composite) Equal(other Node) bool {
	o, ok := other.(*Composite)
	if !ok {
		return false
	}
	if c.shape != o.shape {
		return false
	}
	if c.hasMass != o.hasMass || !approxEqual(c.mass, o.mass) {
		return false
	}
	if c.hasDensity != o.hasDensity || !approxEqual(c.density, o.density) {
		return false
	}
	if c.hasTemp != o.hasTemp || !approxEqual(c.temperature, o.temperature) {
		return false
	}
	if len(c.components) != len(o.components) {
		return false
	}
	used := make([]bool, len(o.components))
outer:
	for _, n := range c.components {
		for j, m := range o.components {
			if used[j] || !n.Equal(m) {
				continue
			}
			used[j] = true
			continue outer
		}
		return false
	}
	return true
}
