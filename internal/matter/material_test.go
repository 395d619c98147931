package matter

import (
	"math"
	"testing"

	"github.com/kherring/matterlab/internal/shape"
	"github.com/kherring/matterlab/internal/substance"
)

var (
	iron  = substance.New("iron", "Iron", 7874)
	water = substance.New("water", "Water", 1000)
	salt  = substance.New("salt", "Sodium chloride", 2165)
)

func within(t *testing.T, got, want float64, what string) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s: expected %v, got %v", what, want, got)
	}
}

func TestMaterialProperties(t *testing.T) {
	m := NewMaterialOf(iron, shape.NewVolume(0.001), 7.874)

	within(t, m.Mass(), 7.874, "mass")
	within(t, m.Density(), 7874, "density")

	if _, ok := m.Temperature(); ok {
		t.Error("fresh material should have no temperature")
	}
	m.SetTemperature(293)
	if temp, ok := m.Temperature(); !ok || temp != 293 {
		t.Errorf("expected temperature 293, got %v (%v)", temp, ok)
	}
	m.ClearTemperature()
	if _, ok := m.Temperature(); ok {
		t.Error("temperature should be cleared")
	}
}

func TestMaterialConstituentEdits(t *testing.T) {
	m := NewMaterial(shape.NewVolume(0.001), 1.0, 1200)
	m.Add(water, 0.7)
	m.Add(salt, 0.3)
	m.Add(water, 0.6) // upsert, no normalization

	cs := m.Constituents()
	if len(cs) != 2 {
		t.Fatalf("expected 2 constituents, got %d", len(cs))
	}
	within(t, cs[water], 0.6, "water proportion")
	within(t, cs[salt], 0.3, "salt proportion")

	m.AddAll([]Constituent{{iron, 0.1}, {salt, 0.4}})
	cs = m.Constituents()
	within(t, cs[iron], 0.1, "iron proportion")
	within(t, cs[salt], 0.4, "salt proportion")

	m.Remove(func(s *substance.Substance, p float64) bool { return p < 0.5 })
	cs = m.Constituents()
	if len(cs) != 1 {
		t.Errorf("expected 1 constituent after remove, got %d", len(cs))
	}
	if _, ok := cs[water]; !ok {
		t.Error("water should survive the remove")
	}

	m.Remove(func(*substance.Substance, float64) bool { return false })
	if len(m.Constituents()) != 1 {
		t.Error("non-matching remove should be a no-op")
	}
}

func TestMaterialCloneScaled(t *testing.T) {
	m := NewMaterialOf(water, shape.NewVolume(0.002), 2.0)
	m.SetTemperature(300)

	if !m.CloneScaled(0).IsEmpty() {
		t.Error("clone at fraction 0 should be the empty sentinel")
	}
	if !m.CloneScaled(-1).IsEmpty() {
		t.Error("clone at negative fraction should be the empty sentinel")
	}

	half := m.CloneScaled(0.5)
	within(t, half.Mass(), 1.0, "half clone mass")
	within(t, half.Shape().Volume(), 0.001, "half clone volume scales with mass")
	within(t, half.Density(), 1000, "half clone density")
	if temp, ok := half.Temperature(); !ok || temp != 300 {
		t.Errorf("half clone temperature: got %v (%v)", temp, ok)
	}
	within(t, half.Constituents()[water], 1.0, "half clone water proportion")

	full := m.Clone()
	if !full.Equal(m) {
		t.Error("full clone should equal the original")
	}

	// Clones are independent
	full.Add(salt, 0.5)
	if _, ok := m.Constituents()[salt]; ok {
		t.Error("editing a clone must not touch the original")
	}
}

func TestMaterialAtomicAccessors(t *testing.T) {
	m := NewMaterialOf(iron, shape.NewVolume(0.001), 1.0)

	if m.Core() != Node(m) || m.Surface() != Node(m) || m.Homogenized() != Node(m) {
		t.Error("a leaf is its own core, surface and homogenization")
	}
	if m.IsEmpty() {
		t.Error("a leaf is never empty")
	}
}

func TestMaterialEquality(t *testing.T) {
	a := NewMaterialOf(iron, shape.NewVolume(0.001), 1.0)
	b := NewMaterialOf(iron, shape.NewVolume(0.001), 1.0)
	if !a.Equal(b) {
		t.Error("identically built materials should be equal")
	}
	if a.Hash() != b.Hash() {
		t.Error("equal materials should hash alike")
	}

	b.Add(water, 0.1)
	if a.Equal(b) {
		t.Error("different constituents should break equality")
	}

	c := NewMaterialOf(iron, shape.NewVolume(0.001), 2.0)
	if a.Equal(c) {
		t.Error("different mass should break equality")
	}

	d := NewMaterialOf(iron, shape.NewVolume(0.002), 1.0)
	if a.Equal(d) {
		t.Error("different shape should break equality")
	}

	e := NewMaterialOf(iron, shape.NewVolume(0.001), 1.0)
	e.SetTemperature(300)
	if a.Equal(e) {
		t.Error("different temperature presence should break equality")
	}

	if a.Equal(Empty) {
		t.Error("a material never equals the empty sentinel")
	}
}

func TestMaterialSplit(t *testing.T) {
	m := NewMaterialOf(water, shape.NewVolume(0.004), 4.0)

	res := m.Split(0.25)
	c, ok := res.(*Composite)
	if !ok {
		t.Fatalf("expected a composite from split, got %T", res)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 parts, got %d", c.Len())
	}
	within(t, c.Core().Mass(), 1.0, "first part mass")
	within(t, c.Surface().Mass(), 3.0, "second part mass")
	within(t, c.Mass(), 4.0, "split total mass")

	if m.Split(0) != Node(m) || m.Split(1.5) != Node(m) {
		t.Error("degenerate single-proportion split should return the material unchanged")
	}
}

func TestEmptySentinel(t *testing.T) {
	if !Empty.IsEmpty() {
		t.Fatal("Empty must report empty")
	}
	if Empty.Mass() != 0 || Empty.Density() != 0 {
		t.Error("Empty has zero mass and density")
	}
	if _, ok := Empty.Temperature(); ok {
		t.Error("Empty has no temperature")
	}
	if !Empty.Clone().IsEmpty() || !Empty.CloneScaled(0.5).IsEmpty() {
		t.Error("cloning Empty yields Empty")
	}
	if !Empty.Equal(Empty) {
		t.Error("Empty equals itself")
	}
}
