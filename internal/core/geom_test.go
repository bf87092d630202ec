package core

import (
	"math"
	"testing"
)

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        NewBox(V2(0, 0), V2(10, 10)),
			b:        NewBox(V2(5, 5), V2(10, 10)),
			expected: true,
		},
		{
			name:     "disjoint horizontal",
			a:        NewBox(V2(0, 0), V2(10, 10)),
			b:        NewBox(V2(20, 0), V2(10, 10)),
			expected: false,
		},
		{
			name:     "disjoint vertical",
			a:        NewBox(V2(0, 0), V2(10, 10)),
			b:        NewBox(V2(0, -20), V2(10, 10)),
			expected: false,
		},
		{
			name:     "touching edges (no overlap)",
			a:        NewBox(V2(0, 0), V2(10, 10)),
			b:        NewBox(V2(10, 0), V2(10, 10)),
			expected: false,
		},
		{
			name:     "overlap on x only",
			a:        NewBox(V2(0, 0), V2(10, 10)),
			b:        NewBox(V2(2, 30), V2(10, 10)),
			expected: false,
		},
		{
			name:     "contained box",
			a:        NewBox(V2(0, 0), V2(100, 100)),
			b:        NewBox(V2(3, -4), V2(2, 2)),
			expected: true,
		},
		{
			name:     "sliver overlap",
			a:        NewBox(V2(0, 0), V2(10, 10)),
			b:        NewBox(V2(9.9, 9.9), V2(10, 10)),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxCorners(t *testing.T) {
	b := NewBox(V2(10, 20), V2(4, 6))

	if b.Min() != V2(8, 17) {
		t.Errorf("Min() = %v, expected (8, 17)", b.Min())
	}
	if b.Max() != V2(12, 23) {
		t.Errorf("Max() = %v, expected (12, 23)", b.Max())
	}
}

func TestVec2Arithmetic(t *testing.T) {
	v := V2(1, 2).Add(V2(3, 4)).Scale(2).Sub(V2(1, 1))
	if v != V2(7, 11) {
		t.Errorf("got %v, expected (7, 11)", v)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
		{3, -math.Pi / 2, math.Pi / 2, math.Pi / 2},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
