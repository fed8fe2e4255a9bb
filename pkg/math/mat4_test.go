package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := LookAt(Vec3{3, 4, 5}, Vec3{}, Up)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestOrthographicCorners(t *testing.T) {
	m := Orthographic(-4, 4, -2, 2, 1, 11)

	tests := []struct {
		in, want Vec3
	}{
		{Vec3{-4, -2, -1}, Vec3{-1, -1, -1}},
		{Vec3{4, 2, -11}, Vec3{1, 1, 1}},
		{Vec3{0, 0, -6}, Vec3{0, 0, 0}},
	}
	for _, tt := range tests {
		got := m.TransformPoint(tt.in)
		if got.Distance(tt.want) > 1e-5 {
			t.Errorf("Orthographic maps %v to %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)

	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestLookAt(t *testing.T) {
	m := LookAt(Vec3{0, 0, 5}, Vec3{}, Up)

	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}
	// The eye maps to the view-space origin.
	got := m.TransformPoint(Vec3{0, 0, 5})
	if got.Length() > 1e-5 {
		t.Errorf("LookAt eye maps to %v, want origin", got)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
