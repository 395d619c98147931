package substance

import (
	"sync"
	"testing"
)

func TestRegistryLookup(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Lookup("iron"); ok {
		t.Error("empty registry should not resolve anything")
	}

	s := New("iron", "Iron", 7874)
	r.Register(s)

	got, ok := r.Lookup("iron")
	if !ok {
		t.Fatal("registered substance should resolve")
	}
	if got != s {
		t.Error("lookup must return the registered pointer, not a copy")
	}

	if _, ok := r.Lookup("unobtainium"); ok {
		t.Error("missing IDs report false, never an error")
	}
}

func TestRegistrySwap(t *testing.T) {
	r := NewBuiltinRegistry()
	if r.Len() == 0 {
		t.Fatal("builtin registry should not be empty")
	}
	if _, ok := r.Lookup("water"); !ok {
		t.Error("builtins should include water")
	}

	r.Swap(map[string]*Substance{"x": New("x", "X", 1)})
	if r.Len() != 1 {
		t.Errorf("swap should replace the whole store, got %d entries", r.Len())
	}
	if _, ok := r.Lookup("water"); ok {
		t.Error("old entries should be gone after swap")
	}

	r.Swap(nil)
	if r.Len() != 0 {
		t.Error("nil swap should leave an empty store")
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewBuiltinRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Lookup("iron")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Register(New("iron", "Iron", 7874))
			}
		}()
	}
	wg.Wait()
}

func TestRegistryIDs(t *testing.T) {
	r := NewRegistry()
	r.Register(New("b", "B", 1))
	r.Register(New("a", "A", 1))
	ids := r.IDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("expected sorted ids [a b], got %v", ids)
	}
}

func TestPhaseAt(t *testing.T) {
	water := &Substance{ID: "water", MeltingPoint: 273, BoilingPoint: 373}

	if p := water.PhaseAt(200); p != Solid {
		t.Errorf("expected solid, got %v", p)
	}
	if p := water.PhaseAt(300); p != Liquid {
		t.Errorf("expected liquid, got %v", p)
	}
	if p := water.PhaseAt(400); p != Gas {
		t.Errorf("expected gas, got %v", p)
	}

	mystery := &Substance{ID: "mystery"}
	if p := mystery.PhaseAt(5000); p != Solid {
		t.Error("unknown transition points mean the substance never melts")
	}

	wood := &Substance{ID: "wood", MeltingPoint: 600}
	if p := wood.PhaseAt(700); p != Liquid {
		t.Error("a substance without a boiling point never becomes gas")
	}
}
