package matter

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/kherring/matterlab/internal/shape"
)

// The structural mutators below share one redistribution algorithm: to give
// a new or resized component a mass proportion p of the whole, every other
// component is scaled down uniformly by (1-p), and the component itself is
// cloned at whatever fraction makes its mass equal p times the previous
// total. Proportions outside (0,1) are not errors: <=0 is a no-op and >=1
// hands the whole object over to the new component.
//
// Every mutator rebuilds the component slice and assigns it in one step
// after all computation succeeds, so a failed call leaves no partial state.

func (c *Composite) componentMass() float64 {
	total := 0.0
	for _, n := range c.components {
		total += n.Mass()
	}
	return total
}

func (c *Composite) checkIndex(index, min int) error {
	if index < min || index >= len(c.components) {
		return fmt.Errorf("component index %d out of range [%d,%d)", index, min, len(c.components))
	}
	return nil
}

// scaledFor clones n so that its mass lands on target. With a degenerate
// target (zero total mass or a massless n) the clone is taken unscaled
// rather than dividing by zero.
func scaledFor(n Node, target float64) Node {
	frac := safeDiv(target, n.Mass())
	if frac <= 0 {
		return n.Clone()
	}
	return n.CloneScaled(frac)
}

// collapse applies the tri-state return contract to a rebuilt component
// list: empty sentinel at zero components, the sole survivor at one, the
// composite itself otherwise.
func (c *Composite) collapse(next []Node) Node {
	switch len(next) {
	case 0:
		return Empty
	case 1:
		return next[0]
	default:
		c.components = next
		return c
	}
}

// AddComponent appends a component at the surface end without touching the
// existing components' masses.
func (c *Composite) AddComponent(n Node) {
	c.components = append(c.components, n)
}

// AddComponents appends several components at the surface end.
func (c *Composite) AddComponents(ns ...Node) {
	c.components = append(c.components, ns...)
}

// InsertComponent inserts a clone of n at index (append if index < 0) so
// that it makes up the given proportion of the composite's mass, scaling
// every existing component down by (1-proportion) to make room.
//
// proportion <= 0 returns the composite unchanged; proportion >= 1 returns
// n itself, which now stands for the whole object.
func (c *Composite) InsertComponent(n Node, proportion float64, index int) (Node, error) {
	if index >= 0 {
		if err := c.checkIndex(index, 0); err != nil {
			return nil, err
		}
	}
	if proportion <= 0 {
		return c, nil
	}
	if proportion >= 1 {
		return n, nil
	}

	massTotal := c.componentMass()
	ratio := 1 - proportion
	next := make([]Node, 0, len(c.components)+1)
	for _, existing := range c.components {
		next = append(next, existing.CloneScaled(ratio))
	}

	inserted := scaledFor(n, massTotal*proportion)
	if index < 0 {
		next = append(next, inserted)
	} else {
		next = append(next[:index], append([]Node{inserted}, next[index:]...)...)
	}
	c.components = next
	return c, nil
}

// SetComponent replaces the component at index with a clone of n holding
// the given proportion of the composite's mass. The other components are
// rescaled by 1-(proportion-current), where current is the replaced
// component's present mass proportion: replacing a component at its own
// proportion leaves the siblings untouched. When the new proportion is
// below the current one that ratio exceeds 1 and the siblings grow; the
// asymmetry is deliberate and pinned by tests.
func (c *Composite) SetComponent(index int, n Node, proportion float64) (Node, error) {
	if err := c.checkIndex(index, 0); err != nil {
		return nil, err
	}
	if proportion <= 0 {
		return c, nil
	}
	if proportion >= 1 {
		return n, nil
	}

	massTotal := c.componentMass()
	current := safeDiv(c.components[index].Mass(), massTotal)
	ratio := 1 - (proportion - current)

	next := make([]Node, len(c.components))
	for i, existing := range c.components {
		if i == index {
			next[i] = scaledFor(n, massTotal*proportion)
			continue
		}
		next[i] = existing.CloneScaled(ratio)
	}
	c.components = next
	return c, nil
}

// CopyComponent duplicates the component at index and appends the duplicate
// at the surface end holding the given proportion of the composite's mass.
// The proportion is carved out of all existing components uniformly, the
// original included.
func (c *Composite) CopyComponent(index int, proportion float64) (Node, error) {
	if err := c.checkIndex(index, 0); err != nil {
		return nil, err
	}
	if proportion <= 0 {
		return c, nil
	}
	if proportion >= 1 {
		return c.components[index].Clone(), nil
	}

	massTotal := c.componentMass()
	dup := scaledFor(c.components[index], massTotal*proportion)

	ratio := 1 - proportion
	next := make([]Node, 0, len(c.components)+1)
	for _, existing := range c.components {
		next = append(next, existing.CloneScaled(ratio))
	}
	c.components = append(next, dup)
	return c, nil
}

// AddConstituentToComponent adds n inside the component at index: a
// composite component gains it as a further component, a leaf is wrapped
// together with n into a new nested composite sharing the leaf's shape.
// Index 0, the core, cannot be wrapped.
func (c *Composite) AddConstituentToComponent(index int, n Node) error {
	if err := c.checkIndex(index, 1); err != nil {
		return err
	}
	if nested, ok := c.components[index].(*Composite); ok {
		nested.AddComponent(n)
		return nil
	}
	wrapped, err := NewComposite([]Node{c.components[index], n}, c.components[index].Shape())
	if err != nil {
		return err
	}
	c.components[index] = wrapped
	return nil
}

// RemoveAllComponents removes every component matching the predicate and
// applies the tri-state collapse contract to the remainder.
func (c *Composite) RemoveAllComponents(pred func(Node) bool) Node {
	next := make([]Node, 0, len(c.components))
	for _, n := range c.components {
		if !pred(n) {
			next = append(next, n)
		}
	}
	return c.collapse(next)
}

// RemoveComponent removes every component structurally equal to n.
func (c *Composite) RemoveComponent(n Node) Node {
	return c.RemoveAllComponents(func(x Node) bool { return x.Equal(n) })
}

// RemoveConstituentFromComponent removes n from inside the component at
// index: a composite component has n removed recursively and is dropped
// entirely if that empties it; a leaf component structurally equal to n is
// dropped. Anything else is a no-op.
func (c *Composite) RemoveConstituentFromComponent(index int, n Node) (Node, error) {
	if err := c.checkIndex(index, 0); err != nil {
		return nil, err
	}
	child := c.components[index]

	if nested, ok := child.(*Composite); ok {
		res := nested.RemoveComponent(n)
		if res.IsEmpty() {
			return c.removeAt(index), nil
		}
		c.components[index] = res
		return c, nil
	}
	if child.Equal(n) {
		return c.removeAt(index), nil
	}
	return c, nil
}

func (c *Composite) removeAt(index int) Node {
	next := make([]Node, 0, len(c.components)-1)
	next = append(next, c.components[:index]...)
	next = append(next, c.components[index+1:]...)
	return c.collapse(next)
}

// Split partitions the composite into parallel clones of itself at the
// given mass proportions, collected into a new composite sharing this
// composite's shape with no explicit overrides.
//
// No proportions splits into two halves. A single proportion p in (0,1)
// expands to (p, 1-p); outside that range the split is degenerate and the
// composite is returned unchanged. Two or more proportions are renormalized
// to sum to 1 if they do not already.
func (c *Composite) Split(proportions ...float64) Node {
	return splitNode(c, c.shape, proportions)
}

func splitNode(n Node, sh shape.Shape, proportions []float64) Node {
	var ps []float64
	switch len(proportions) {
	case 0:
		ps = []float64{0.5, 0.5}
	case 1:
		p := proportions[0]
		if p <= 0 || p >= 1 {
			return n
		}
		ps = []float64{p, 1 - p}
	default:
		sum := floats.Sum(proportions)
		if sum < epsilon {
			return n
		}
		ps = make([]float64, len(proportions))
		copy(ps, proportions)
		if !approxEqual(sum, 1) {
			floats.Scale(1/sum, ps)
		}
	}

	parts := make([]Node, 0, len(ps))
	for _, p := range ps {
		part := n.CloneScaled(p)
		if part.IsEmpty() {
			continue
		}
		parts = append(parts, part)
	}
	switch len(parts) {
	case 0:
		return n
	case 1:
		return parts[0]
	default:
		return &Composite{components: parts, shape: sh}
	}
}
