// Package coordinates holds the angle and screen-space helpers shared by the
// flight model and the renderer.
//
// Headings follow the compass convention used throughout hornet: 0° points up
// the screen (negative Y), angles grow clockwise, and every stored heading is
// kept in [0, 360).
package coordinates

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Constants for unit conversions
const (
	// DegreesToRadians converts degrees to radians
	DegreesToRadians = math.Pi / 180.0

	// KnotsToFeetPerSecond converts knots to feet per second
	KnotsToFeetPerSecond = 1.68781

	// StandardGravity is g in ft/s²
	StandardGravity = 32.174
)

// Vec2 is a 2D vector in screen or world space.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Radians converts an angle in degrees to radians.
func Radians(deg float64) float64 {
	return deg * DegreesToRadians
}

// NormalizeHeading ensures a heading is in the range [0, 360).
func NormalizeHeading(heading float64) float64 {
	h := math.Mod(heading, 360.0)
	if h < 0 {
		h += 360.0
	}
	// -1e-15 + 360 rounds to 360 in float64.
	if h >= 360.0 {
		h -= 360.0
	}
	return h
}

// HeadingVector returns the unit vector for a heading on screen: heading 0
// points up (negative Y), heading 90 points right.
func HeadingVector(heading float64) Vec2 {
	rad := Radians(heading)
	return Vec2{X: math.Sin(rad), Y: -math.Cos(rad)}
}

// Clamp restricts x to [low, high].
func Clamp[T constraints.Ordered](x, low, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

// Min returns the smaller of a and b.
func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Lerp linearly interpolates between a and b.
func Lerp(t, a, b float64) float64 {
	return (1-t)*a + t*b
}

// WrapEdge applies the playfield's toroidal wrap to a single axis: leaving
// through the low edge re-enters at the high edge and vice versa. Only one
// wrap is applied per call, matching a per-frame position update.
func WrapEdge(v, size float64) float64 {
	if v < 0 {
		return size
	}
	if v > size {
		return 0
	}
	return v
}
