package scene

import "testing"

func TestSnap(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{9.5, 0},
		{10, 10},
		{-0.5, -10},
		{-10, -10},
		{-25, -30},
	}
	for _, tt := range tests {
		if got := snap(tt.in); got != tt.want {
			t.Errorf("snap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
