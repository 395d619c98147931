package substance

import (
	"sort"
	"sync"
)

// Registry is a keyed lookup service for substances. Lookups follow a
// find-or-fail contract: a missing ID reports false, never an error.
//
// The registry is the only shared mutable state in the system. A single
// mutex guards swapping and amending the backing map; the substances
// themselves are immutable once registered.
type Registry struct {
	mu   sync.RWMutex
	byID map[string]*Substance
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Substance)}
}

// NewBuiltinRegistry returns a registry seeded with the built-in substances.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, s := range Builtins() {
		r.Register(s)
	}
	return r
}

// Lookup returns the substance with the given ID, or false if none is
// registered.
func (r *Registry) Lookup(id string) (*Substance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	return s, ok
}

// Register adds or replaces a single substance.
func (r *Registry) Register(s *Substance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[s.ID] = s
}

// Swap replaces the entire backing store with the given map. The map is
// owned by the registry after the call.
func (r *Registry) Swap(byID map[string]*Substance) {
	if byID == nil {
		byID = make(map[string]*Substance)
	}
	r.mu.Lock()
	r.byID = byID
	r.mu.Unlock()
}

// IDs returns all registered IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of registered substances.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Builtins returns the stock substances shipped with the tool. Each call
// returns fresh values so that registries never share pointers.
func Builtins() []*Substance {
	return []*Substance{
		{ID: "iron", Name: "Iron", Formula: "Fe", Density: 7874, MeltingPoint: 1811, BoilingPoint: 3134},
		{ID: "copper", Name: "Copper", Formula: "Cu", Density: 8960, MeltingPoint: 1358, BoilingPoint: 2835},
		{ID: "aluminium", Name: "Aluminium", Formula: "Al", Density: 2700, MeltingPoint: 933, BoilingPoint: 2743},
		{ID: "lead", Name: "Lead", Formula: "Pb", Density: 11340, MeltingPoint: 601, BoilingPoint: 2022},
		{ID: "gold", Name: "Gold", Formula: "Au", Density: 19300, MeltingPoint: 1337, BoilingPoint: 3243},
		{ID: "water", Name: "Water", Formula: "H2O", Density: 1000, MeltingPoint: 273, BoilingPoint: 373},
		{ID: "ethanol", Name: "Ethanol", Formula: "C2H6O", Density: 789, MeltingPoint: 159, BoilingPoint: 351,
			Flammable: true, HeatOfCombustion: 2.97e7},
		{ID: "carbon", Name: "Carbon", Formula: "C", Density: 2267, MeltingPoint: 3823,
			Flammable: true, HeatOfCombustion: 3.28e7},
		{ID: "silica", Name: "Silica", Formula: "SiO2", Density: 2648, MeltingPoint: 1986, BoilingPoint: 3220},
		{ID: "salt", Name: "Sodium chloride", Formula: "NaCl", Density: 2165, MeltingPoint: 1074, BoilingPoint: 1686},
		{ID: "quicklime", Name: "Calcium oxide", Formula: "CaO", Density: 3340, MeltingPoint: 2886},
		{ID: "wood", Name: "Wood", Density: 700, Flammable: true, HeatOfCombustion: 1.6e7},
		{ID: "air", Name: "Air", Density: 1.2},
	}
}
