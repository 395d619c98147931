// Package substance holds the static chemical identities that materials are
// made of: a periodic table, a chemical formula parser, and a registry for
// looking substances up by ID.
//
// Substances are identity values. Two substances are the same substance only
// if they are the same pointer; material code uses *Substance directly as a
// map key and never compares fields.
package substance

// Phase is the physical phase of a substance at some temperature.
type Phase int

const (
	Solid Phase = iota
	Liquid
	Gas
)

func (p Phase) String() string {
	switch p {
	case Solid:
		return "solid"
	case Liquid:
		return "liquid"
	case Gas:
		return "gas"
	}
	return "unknown"
}

// Substance describes a pure chemical or physical substance with its static
// properties. Fields are set once at construction and never mutated.
type Substance struct {
	ID               string
	Name             string
	Formula          string
	Density          float64 // kg/m3 at standard conditions
	MeltingPoint     float64 // K, 0 means unknown
	BoilingPoint     float64 // K, 0 means unknown
	Flammable        bool
	HeatOfCombustion float64 // J/kg, 0 for non-fuels
}

// PhaseAt reports the phase of the substance at the given temperature.
// Unknown transition points are treated as "never crossed": a substance with
// no melting point is always solid, one with no boiling point never boils.
func (s *Substance) PhaseAt(tempK float64) Phase {
	if s.MeltingPoint > 0 && tempK >= s.MeltingPoint {
		if s.BoilingPoint > 0 && tempK >= s.BoilingPoint {
			return Gas
		}
		return Liquid
	}
	return Solid
}

// New creates a substance with the given identity and bulk density. Optional
// properties are set directly on the returned value before first use.
func New(id, name string, density float64) *Substance {
	return &Substance{
		ID:      id,
		Name:    name,
		Density: density,
	}
}
