package matter

import (
	"testing"

	"github.com/kherring/matterlab/internal/shape"
)

func TestInsertComponentProportion(t *testing.T) {
	c, _, _ := layered(t) // total mass 3
	added := NewMaterialOf(salt, shape.NewVolume(0.001), 5.0)

	res, err := c.InsertComponent(added, 0.25, -1)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	out, ok := res.(*Composite)
	if !ok {
		t.Fatalf("expected composite, got %T", res)
	}

	// Existing components shrink by 1-p, the new one lands at p of the old
	// total, so the total is preserved and the new component's share is p.
	within(t, out.Mass(), 3.0, "total mass after insert")
	within(t, out.Surface().Mass(), 0.75, "inserted component mass")
	within(t, out.Surface().Mass()/out.Mass(), 0.25, "inserted component share")
	if out.Len() != 3 {
		t.Errorf("expected 3 components, got %d", out.Len())
	}
}

func TestInsertComponentAtIndex(t *testing.T) {
	c, _, _ := layered(t)
	added := NewMaterialOf(salt, shape.NewVolume(0.001), 1.0)

	res, err := c.InsertComponent(added, 0.5, 0)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	out := res.(*Composite)
	if out.Len() != 3 {
		t.Fatalf("expected 3 components, got %d", out.Len())
	}
	within(t, out.Core().Mass(), 1.5, "new core mass")
	within(t, out.Core().Constituents()[salt], 1.0, "new core composition")
}

func TestInsertComponentBoundaryClamps(t *testing.T) {
	c, _, _ := layered(t)
	before := c.Clone()
	added := NewMaterialOf(salt, shape.NewVolume(0.001), 1.0)

	res, err := c.InsertComponent(added, 0, -1)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if res != Node(c) || !res.Equal(before) {
		t.Error("proportion 0 should leave the composite untouched")
	}

	res, err = c.InsertComponent(added, 1, -1)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if res != Node(added) {
		t.Error("proportion 1 should hand the whole object to the new material")
	}
}

func TestInsertComponentIndexOutOfRange(t *testing.T) {
	c, _, _ := layered(t)
	added := NewMaterialOf(salt, shape.NewVolume(0.001), 1.0)

	if _, err := c.InsertComponent(added, 0.5, 2); err == nil {
		t.Error("expected error for index past the end")
	}
	if c.Len() != 2 {
		t.Error("failed insert must not mutate the composite")
	}
}

func TestInsertComponentMasslessMaterial(t *testing.T) {
	c, _, _ := layered(t)
	added := NewMaterialOf(salt, shape.NewVolume(0.001), 0)

	res, err := c.InsertComponent(added, 0.5, -1)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	out := res.(*Composite)
	if out.Len() != 3 {
		t.Fatalf("expected 3 components, got %d", out.Len())
	}
	// Degenerate target: the massless material is inserted unscaled, the
	// others still make room.
	within(t, out.Surface().Mass(), 0, "massless insert stays massless")
	within(t, out.Core().Mass(), 1.0, "existing components still rescaled")
}

func TestSetComponentAtOwnProportion(t *testing.T) {
	a := NewMaterialOf(iron, shape.NewVolume(0.001), 2.0)
	b := NewMaterialOf(water, shape.NewVolume(0.002), 2.0)
	c, _ := NewComposite([]Node{a, b}, shape.NewVolume(0.003))

	repl := NewMaterialOf(salt, shape.NewVolume(0.001), 1.0)
	res, err := c.SetComponent(0, repl, 0.5)
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	out := res.(*Composite)

	// Replacing at the component's own proportion leaves the sibling alone.
	within(t, out.Surface().Mass(), 2.0, "sibling mass untouched")
	within(t, out.Core().Mass(), 2.0, "replacement takes the same mass")
	within(t, out.Core().Constituents()[salt], 1.0, "replacement composition")
	within(t, out.Mass(), 4.0, "total preserved")
}

func TestSetComponentShrinkGrowsSiblings(t *testing.T) {
	a := NewMaterialOf(iron, shape.NewVolume(0.001), 2.0)
	b := NewMaterialOf(water, shape.NewVolume(0.002), 2.0)
	c, _ := NewComposite([]Node{a, b}, shape.NewVolume(0.003))

	repl := NewMaterialOf(salt, shape.NewVolume(0.001), 1.0)
	res, err := c.SetComponent(0, repl, 0.25)
	if err != nil {
		t.Fatalf("set failed: %v", err)
	}
	out := res.(*Composite)

	// ratio = 1-(0.25-0.5) = 1.25: shrinking a component below its current
	// share grows the siblings. Kept as-is from the source semantics.
	within(t, out.Surface().Mass(), 2.5, "sibling grown by ratio 1.25")
	within(t, out.Core().Mass(), 1.0, "replacement at target mass")
}

func TestSetComponentClampsAndErrors(t *testing.T) {
	c, _, _ := layered(t)
	repl := NewMaterialOf(salt, shape.NewVolume(0.001), 1.0)

	res, err := c.SetComponent(0, repl, 0)
	if err != nil || res != Node(c) {
		t.Errorf("proportion 0 should be a no-op, got %v, %v", res, err)
	}

	res, err = c.SetComponent(0, repl, 1)
	if err != nil || res != Node(repl) {
		t.Errorf("proportion 1 should return the replacement, got %v, %v", res, err)
	}

	if _, err := c.SetComponent(5, repl, 0.5); err == nil {
		t.Error("expected error for out-of-range index")
	}
	if _, err := c.SetComponent(-1, repl, 0.5); err == nil {
		t.Error("expected error for negative index")
	}
}

func TestCopyComponent(t *testing.T) {
	a := NewMaterialOf(iron, shape.NewVolume(0.001), 1.0)
	b := NewMaterialOf(water, shape.NewVolume(0.003), 3.0)
	c, _ := NewComposite([]Node{a, b}, shape.NewVolume(0.004))

	res, err := c.CopyComponent(1, 0.5)
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	out := res.(*Composite)

	if out.Len() != 3 {
		t.Fatalf("expected 3 components, got %d", out.Len())
	}
	within(t, out.Mass(), 4.0, "total preserved")
	within(t, out.Surface().Mass(), 2.0, "duplicate carries half the total")
	within(t, out.Core().Mass(), 0.5, "original components carved down")
	within(t, out.Surface().Constituents()[water], 1.0, "duplicate composition")

	full, err := c.CopyComponent(0, 1)
	if err != nil {
		t.Fatalf("copy failed: %v", err)
	}
	if _, ok := full.(*Material); !ok {
		t.Errorf("proportion 1 should return a bare copy of the component, got %T", full)
	}

	if _, err := c.CopyComponent(99, 0.5); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

func TestAddConstituentToComponent(t *testing.T) {
	c, _, surf := layered(t)
	extra := NewMaterialOf(salt, shape.NewVolume(0.001), 0.5)

	if err := c.AddConstituentToComponent(0, extra); err == nil {
		t.Error("index 0 (the core) must be rejected")
	}

	if err := c.AddConstituentToComponent(1, extra); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	nested, ok := c.Components()[1].(*Composite)
	if !ok {
		t.Fatalf("expected the leaf to be wrapped into a composite, got %T", c.Components()[1])
	}
	if nested.Len() != 2 {
		t.Fatalf("expected 2 nested components, got %d", nested.Len())
	}
	if nested.Core() != Node(surf) {
		t.Error("the wrapped leaf stays as the nested core")
	}
	if nested.Shape() != surf.Shape() {
		t.Error("the nested composite shares the leaf's shape")
	}

	// A second add lands inside the existing nested composite.
	more := NewMaterialOf(iron, shape.NewVolume(0.001), 0.25)
	if err := c.AddConstituentToComponent(1, more); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if nested.Len() != 3 {
		t.Errorf("expected 3 nested components, got %d", nested.Len())
	}
}

func TestRemoveCollapse(t *testing.T) {
	c, core, surf := layered(t)

	res := c.RemoveComponent(core)
	if res != Node(surf) {
		t.Fatalf("removing down to one component should return that component, got %#v", res)
	}

	c2, core2, surf2 := layered(t)
	res = c2.RemoveAllComponents(func(n Node) bool {
		return n == Node(core2) || n == Node(surf2)
	})
	if !res.IsEmpty() {
		t.Fatalf("removing everything should return the empty sentinel, got %#v", res)
	}

	c3, _, _ := layered(t)
	res = c3.RemoveAllComponents(func(Node) bool { return false })
	if res != Node(c3) {
		t.Error("removing nothing should return the composite itself")
	}
	if c3.Len() != 2 {
		t.Error("removing nothing must leave the components in place")
	}
}

func TestRemoveConstituentFromComponent(t *testing.T) {
	c, _, surf := layered(t)

	// Leaf case: the component equals the target and is dropped, which
	// collapses the two-component composite to its survivor.
	res, err := c.RemoveConstituentFromComponent(1, surf.Clone())
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if m, ok := res.(*Material); !ok || m.Constituents()[iron] != 1.0 {
		t.Fatalf("expected collapse to the iron core, got %#v", res)
	}

	// Mismatch case: no-op.
	c2, _, _ := layered(t)
	stranger := NewMaterialOf(salt, shape.NewVolume(0.001), 1.0)
	res, err = c2.RemoveConstituentFromComponent(1, stranger)
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if res != Node(c2) || c2.Len() != 2 {
		t.Error("removing a non-matching material should be a no-op")
	}

	if _, err := c2.RemoveConstituentFromComponent(9, stranger); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

func TestRemoveConstituentFromNestedComponent(t *testing.T) {
	inner1 := NewMaterialOf(water, shape.NewVolume(0.001), 1.0)
	inner2 := NewMaterialOf(salt, shape.NewVolume(0.001), 1.0)
	nested, _ := NewComposite([]Node{inner1, inner2}, shape.NewVolume(0.002))
	core := NewMaterialOf(iron, shape.NewVolume(0.001), 2.0)
	c, _ := NewComposite([]Node{core, nested}, shape.NewVolume(0.003))

	// Removing one nested component collapses the nested composite to its
	// survivor, which replaces the child entry.
	res, err := c.RemoveConstituentFromComponent(1, inner2.Clone())
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	out := res.(*Composite)
	if out.Len() != 2 {
		t.Fatalf("expected 2 components, got %d", out.Len())
	}
	if surv, ok := out.Components()[1].(*Material); !ok || surv.Constituents()[water] != 1.0 {
		t.Errorf("expected the water leaf to replace the nested composite, got %#v", out.Components()[1])
	}

	// Emptying a nested composite removes the child entry entirely, which
	// here collapses the outer composite too.
	nested2, _ := NewComposite([]Node{inner1.Clone(), inner1.Clone()}, shape.NewVolume(0.002))
	c2, _ := NewComposite([]Node{core.Clone(), nested2}, shape.NewVolume(0.003))
	res, err = c2.RemoveConstituentFromComponent(1, inner1.Clone())
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if m, ok := res.(*Material); !ok {
		t.Errorf("expected collapse to the core leaf, got %T", res)
	} else if m.Constituents()[iron] != 1.0 {
		t.Error("survivor should be the iron core")
	}
}

func TestSplitHalves(t *testing.T) {
	c, _, _ := layered(t) // mass 3, iron 2/3, water 1/3

	res := c.Split()
	out, ok := res.(*Composite)
	if !ok {
		t.Fatalf("expected composite, got %T", res)
	}
	if out.Len() != 2 {
		t.Fatalf("expected 2 parts, got %d", out.Len())
	}
	within(t, out.Core().Mass(), 1.5, "first half mass")
	within(t, out.Surface().Mass(), 1.5, "second half mass")
	within(t, out.Mass(), 3.0, "split preserves total mass")
}

func TestSplitProportionRoundTrip(t *testing.T) {
	c, _, _ := layered(t)
	mass := c.Mass()
	density := c.Density()
	cs := c.Constituents()

	res := c.Split(0.25, 0.75)
	out := res.(*Composite)

	first, second := out.Core(), out.Surface()
	within(t, first.Mass(), mass*0.25, "first part mass")
	within(t, second.Mass(), mass*0.75, "second part mass")
	within(t, first.Mass()+second.Mass(), mass, "mass conservation")
	within(t, first.Density(), density, "parts keep the density")
	within(t, first.Constituents()[iron], cs[iron], "parts keep the constituents")
	within(t, second.Constituents()[water], cs[water], "parts keep the constituents")
}

func TestSplitRenormalizes(t *testing.T) {
	c, _, _ := layered(t)

	res := c.Split(1, 1, 2) // renormalized to 0.25, 0.25, 0.5
	out := res.(*Composite)
	if out.Len() != 3 {
		t.Fatalf("expected 3 parts, got %d", out.Len())
	}
	parts := out.Components()
	within(t, parts[0].Mass(), 0.75, "first part")
	within(t, parts[1].Mass(), 0.75, "second part")
	within(t, parts[2].Mass(), 1.5, "third part")
	within(t, out.Mass(), 3.0, "renormalized split preserves total")
}

func TestSplitDegenerate(t *testing.T) {
	c, _, _ := layered(t)

	if c.Split(0) != Node(c) {
		t.Error("split at 0 is degenerate and returns the composite")
	}
	if c.Split(1) != Node(c) {
		t.Error("split at 1 is degenerate and returns the composite")
	}
	if c.Split(-0.5) != Node(c) {
		t.Error("negative split is degenerate")
	}
}

func TestAppendComponents(t *testing.T) {
	c, _, _ := layered(t)
	x := NewMaterialOf(salt, shape.NewVolume(0.001), 1.0)
	y := NewMaterialOf(salt, shape.NewVolume(0.001), 2.0)

	c.AddComponent(x)
	if c.Len() != 3 || c.Surface() != Node(x) {
		t.Error("AddComponent appends at the surface end")
	}
	within(t, c.Mass(), 4.0, "plain append does not rescale")

	c.AddComponents(y, x.Clone())
	if c.Len() != 5 {
		t.Errorf("expected 5 components, got %d", c.Len())
	}
}
