// Package matter implements the composite-material model: leaf materials
// with an explicit chemical composition, and composites built from ordered
// layers of other materials, with mass-proportional aggregation and
// restructuring across the hierarchy.
//
// A composite's component order runs core to surface: the first component is
// the innermost layer, the last the outermost.
package matter

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kherring/matterlab/internal/shape"
	"github.com/kherring/matterlab/internal/substance"
)

// Constituents maps a substance to its proportion of a material, by mass.
// Proportions conventionally live in [0,1] but are not forced to sum to 1.
type Constituents map[*substance.Substance]float64

// Constituent is one (substance, proportion) pair, used for batch edits.
type Constituent struct {
	Substance  *substance.Substance
	Proportion float64
}

// Node is the capability shared by every material, leaf or composite.
//
// Structural mutators on Composite return Node because an edit can leave
// behind any of three things: the empty sentinel (no components remain), a
// single surviving component (the composite collapses), or the composite
// itself. Callers must not assume the returned node is the receiver.
type Node interface {
	// Mass returns the node's mass in kg.
	Mass() float64
	// Density returns the node's density in kg/m3.
	Density() float64
	// Temperature returns the node's temperature in K, if it has one.
	Temperature() (float64, bool)
	// Constituents returns the node's composition. The returned map is a
	// fresh copy and may be modified freely.
	Constituents() Constituents
	// Shape returns the node's geometric envelope.
	Shape() shape.Shape
	// Position returns the envelope's position.
	Position() r3.Vec
	// Rotation returns the envelope's orientation.
	Rotation() quat.Number
	// IsEmpty reports whether the node is the empty sentinel.
	IsEmpty() bool

	// Core returns the innermost component; a leaf returns itself.
	Core() Node
	// Surface returns the outermost component; a leaf returns itself.
	Surface() Node
	// Homogenized flattens the node into a single leaf carrying its
	// aggregate properties.
	Homogenized() Node

	// Clone returns a deep, independent copy.
	Clone() Node
	// CloneScaled returns a deep copy with mass scaled by fraction. A
	// fraction of zero or less yields the empty sentinel.
	CloneScaled(fraction float64) Node
	// Split partitions the node into parallel clones at the given mass
	// proportions. See Composite.Split for the proportion rules.
	Split(proportions ...float64) Node

	// Add upserts a constituent proportion. On a composite this is a
	// broadcast: every component gains the constituent independently.
	Add(s *substance.Substance, proportion float64)
	// AddAll upserts a batch of constituent proportions.
	AddAll(parts []Constituent)
	// Remove deletes all constituents matching the predicate.
	Remove(pred func(s *substance.Substance, proportion float64) bool)

	// Equal reports structural equality.
	Equal(other Node) bool
	// Hash returns a structural hash consistent with Equal.
	Hash() uint64
}

// Empty is the empty-material sentinel returned by mutators that would
// otherwise leave a composite with no components, and by clones at a
// non-positive mass fraction.
var Empty Node = emptyNode{}

type emptyNode struct{}

func (emptyNode) Mass() float64                { return 0 }
func (emptyNode) Density() float64             { return 0 }
func (emptyNode) Temperature() (float64, bool) { return 0, false }
func (emptyNode) Constituents() Constituents   { return Constituents{} }
func (emptyNode) Shape() shape.Shape           { return shape.Shape{} }
func (emptyNode) Position() r3.Vec             { return r3.Vec{} }
func (emptyNode) Rotation() quat.Number        { return quat.Number{} }
func (emptyNode) IsEmpty() bool                { return true }
func (emptyNode) Core() Node                   { return Empty }
func (emptyNode) Surface() Node                { return Empty }
func (emptyNode) Homogenized() Node            { return Empty }
func (emptyNode) Clone() Node                  { return Empty }
func (emptyNode) CloneScaled(float64) Node     { return Empty }
func (emptyNode) Split(...float64) Node        { return Empty }

func (emptyNode) Add(*substance.Substance, float64)               {}
func (emptyNode) AddAll([]Constituent)                            {}
func (emptyNode) Remove(func(*substance.Substance, float64) bool) {}

func (emptyNode) Equal(other Node) bool { return other != nil && other.IsEmpty() }
func (emptyNode) Hash() uint64          { return 0 }

// epsilon is the tolerance used for float comparison and zero-mass guards.
const epsilon = 1e-9

// safeDiv divides num by den, substituting 0 when the denominator is
// effectively zero. Mass-fraction math must never produce NaN or Inf.
func safeDiv(num, den float64) float64 {
	if math.Abs(den) < epsilon {
		return 0
	}
	return num / den
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}
