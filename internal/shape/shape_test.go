package shape

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestConstructors(t *testing.T) {
	box := NewBox(2, 3, 4)
	if box.Volume() != 24 {
		t.Errorf("expected box volume 24, got %v", box.Volume())
	}

	sphere := NewSphere(1)
	if math.Abs(sphere.Volume()-4.0/3.0*math.Pi) > 1e-12 {
		t.Errorf("unexpected sphere volume %v", sphere.Volume())
	}

	v := NewVolume(0.5)
	if v.Volume() != 0.5 {
		t.Errorf("expected volume 0.5, got %v", v.Volume())
	}
	if v.Position() != (r3.Vec{}) {
		t.Error("fresh shapes sit at the origin")
	}
	if v.Rotation() != (quat.Number{Real: 1}) {
		t.Error("fresh shapes carry the identity rotation")
	}
}

func TestCloneAtPosition(t *testing.T) {
	s := NewBox(1, 1, 1)
	p := r3.Vec{X: 1, Y: 2, Z: 3}

	moved := s.CloneAtPosition(p)
	if moved.Position() != p {
		t.Errorf("expected position %v, got %v", p, moved.Position())
	}
	if moved.Volume() != s.Volume() {
		t.Error("moving must not change the volume")
	}
	if s.Position() != (r3.Vec{}) {
		t.Error("the original shape is immutable")
	}
}

func TestCloneWithRotation(t *testing.T) {
	s := NewBox(1, 1, 1)
	q := quat.Number{Real: 0, Imag: 1} // 180 degrees about x

	rotated := s.CloneWithRotation(q)
	if rotated.Rotation() != q {
		t.Errorf("expected rotation %v, got %v", q, rotated.Rotation())
	}
	if s.Rotation() != (quat.Number{Real: 1}) {
		t.Error("the original shape is immutable")
	}

	// Chained clones compose independent copies.
	both := s.CloneAtPosition(r3.Vec{X: 5}).CloneWithRotation(q)
	if both.Position() != (r3.Vec{X: 5}) || both.Rotation() != q {
		t.Error("chained clones should keep both changes")
	}
}
