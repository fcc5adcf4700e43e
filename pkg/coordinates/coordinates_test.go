package coordinates

import (
	"math"
	"testing"
)

// TestNormalizeHeading tests heading normalization
func TestNormalizeHeading(t *testing.T) {
	tests := []struct {
		input float64
		want  float64
	}{
		{0.0, 0.0},
		{359.0, 359.0},
		{360.0, 0.0},
		{361.0, 1.0},
		{-1.0, 359.0},
		{-90.0, 270.0},
		{720.0, 0.0},
		{-1e-15, 0.0},
	}

	for _, tt := range tests {
		got := NormalizeHeading(tt.input)
		if math.Abs(got-tt.want) > 0.0001 {
			t.Errorf("NormalizeHeading(%.1f) = %.4f, want %.1f", tt.input, got, tt.want)
		}
		if got < 0 || got >= 360 {
			t.Errorf("NormalizeHeading(%g) = %g, out of [0,360)", tt.input, got)
		}
	}
}

// TestHeadingVector verifies the screen orientation of headings.
func TestHeadingVector(t *testing.T) {
	tests := []struct {
		name    string
		heading float64
		want    Vec2
	}{
		{"North points up", 0, Vec2{0, -1}},
		{"East points right", 90, Vec2{1, 0}},
		{"South points down", 180, Vec2{0, 1}},
		{"West points left", 270, Vec2{-1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HeadingVector(tt.heading)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

// TestClamp tests the generic clamp helper with floats and ints.
func TestClamp(t *testing.T) {
	if got := Clamp(1.5, 0.0, 1.0); got != 1.0 {
		t.Errorf("Expected 1.0, got %f", got)
	}
	if got := Clamp(-0.5, 0.0, 1.0); got != 0.0 {
		t.Errorf("Expected 0.0, got %f", got)
	}
	if got := Clamp(0.25, 0.0, 1.0); got != 0.25 {
		t.Errorf("Expected 0.25, got %f", got)
	}
	if got := Clamp(7, 0, 5); got != 5 {
		t.Errorf("Expected 5, got %d", got)
	}
	if got := Min(3, 4); got != 3 {
		t.Errorf("Expected 3, got %d", got)
	}
	if got := Max(3.0, 4.0); got != 4.0 {
		t.Errorf("Expected 4, got %f", got)
	}
}

// TestWrapEdge tests the toroidal playfield wrap.
func TestWrapEdge(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		size float64
		want float64
	}{
		{"Inside stays put", 100, 800, 100},
		{"On the high edge stays put", 800, 800, 800},
		{"Past the high edge re-enters at zero", 800.5, 800, 0},
		{"Below zero re-enters at the high edge", -0.1, 800, 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WrapEdge(tt.v, tt.size); got != tt.want {
				t.Errorf("Expected %f, got %f", tt.want, got)
			}
		})
	}
}
