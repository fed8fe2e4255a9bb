package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
	v := Vec3{1, 2, 3}
	if got := q.Rotate(v); got != v {
		t.Errorf("identity Rotate(%v) = %v", v, got)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 1, Z: 1, W: 1}.Normalize()
	length := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if abs(length-1) > 0.0001 {
		t.Errorf("Normalized quaternion should have length 1, got %v", length)
	}
}

func TestQuatFromAxisAngleRotate(t *testing.T) {
	q := QuatFromAxisAngle(Up, float32(math.Pi/2))
	got := q.Rotate(Vec3{1, 0, 0})
	// Matches RotateY: +X goes to -Z.
	if abs(got.X) > 1e-5 || abs(got.Y) > 1e-5 || abs(got.Z+1) > 1e-5 {
		t.Errorf("Rotate = %v, want (0, 0, -1)", got)
	}
}

func TestQuatFromTo(t *testing.T) {
	tests := []struct {
		name     string
		from, to Vec3
	}{
		{"same", Vec3{0, 0, 1}, Vec3{0, 0, 1}},
		{"quarter", Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{"oblique", Vec3{0, 0, 1}, Vec3{1, 1, 1}.Normalize()},
		{"opposite", Vec3{0, 0, 1}, Vec3{0, 0, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuatFromTo(tt.from, tt.to).Rotate(tt.from)
			if got.Sub(tt.to).Length() > 1e-4 {
				t.Errorf("QuatFromTo(%v, %v) rotates to %v", tt.from, tt.to, got)
			}
		})
	}
}

func TestQuatMulComposes(t *testing.T) {
	a := QuatFromAxisAngle(Up, 0.3)
	b := QuatFromAxisAngle(Up, 0.4)
	want := QuatFromAxisAngle(Up, 0.7).Rotate(Vec3{1, 0, 0})
	got := a.Mul(b).Rotate(Vec3{1, 0, 0})
	if got.Sub(want).Length() > 1e-5 {
		t.Errorf("Mul composed rotation = %v, want %v", got, want)
	}
}
