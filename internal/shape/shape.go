// Package shape provides the geometric envelope attached to every material:
// a position, an orientation and an enclosed volume. Shapes are immutable
// values; moving or rotating one produces a new shape.
package shape

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Shape is an opaque geometric descriptor. The material model only ever asks
// a shape for its position, rotation and volume, and derives moved or rotated
// copies; it never inspects the underlying geometry.
type Shape struct {
	position r3.Vec
	rotation quat.Number
	volume   float64 // m3
}

// identity is the no-rotation quaternion.
var identity = quat.Number{Real: 1}

// New returns a shape with an explicit position, rotation and volume. Used
// when reconstructing shapes from storage; fresh shapes normally come from
// the NewBox/NewSphere/NewVolume constructors.
func New(position r3.Vec, rotation quat.Number, volume float64) Shape {
	return Shape{position: position, rotation: rotation, volume: volume}
}

// NewVolume returns a shape of the given volume at the origin with no
// rotation.
func NewVolume(volume float64) Shape {
	return Shape{rotation: identity, volume: volume}
}

// NewBox returns a box shape with the given edge lengths in meters.
func NewBox(w, h, d float64) Shape {
	return Shape{rotation: identity, volume: w * h * d}
}

// NewSphere returns a sphere shape with the given radius in meters.
func NewSphere(r float64) Shape {
	return Shape{rotation: identity, volume: 4.0 / 3.0 * math.Pi * r * r * r}
}

// Position returns the shape's position.
func (s Shape) Position() r3.Vec { return s.position }

// Rotation returns the shape's orientation as a unit quaternion.
func (s Shape) Rotation() quat.Number { return s.rotation }

// Volume returns the enclosed volume in m3.
func (s Shape) Volume() float64 { return s.volume }

// CloneAtPosition returns a copy of the shape placed at p.
func (s Shape) CloneAtPosition(p r3.Vec) Shape {
	s.position = p
	return s
}

// CloneWithRotation returns a copy of the shape oriented by q.
func (s Shape) CloneWithRotation(q quat.Number) Shape {
	s.rotation = q
	return s
}

// CloneScaled returns a copy of the shape with its volume scaled by
// fraction. Position and rotation are unchanged.
func (s Shape) CloneScaled(fraction float64) Shape {
	s.volume *= fraction
	return s
}
