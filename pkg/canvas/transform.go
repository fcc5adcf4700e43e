package canvas

import "math"

// Affine is a 2D affine transform in the same layout as an HTML canvas
// matrix: x' = A·x + C·y + E, y' = B·x + D·y + F.
type Affine struct {
	A, B, C, D, E, F float64
}

// Identity is the transform that leaves points unchanged.
var Identity = Affine{A: 1, D: 1}

// Mul returns m·n: n is applied first, then m.
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Translate returns m followed, in local space, by a translation.
func (m Affine) Translate(tx, ty float64) Affine {
	return m.Mul(Affine{A: 1, D: 1, E: tx, F: ty})
}

// Rotate returns m followed, in local space, by a clockwise rotation in
// screen coordinates (y down).
func (m Affine) Rotate(radians float64) Affine {
	s, c := math.Sincos(radians)
	return m.Mul(Affine{A: c, B: s, C: -s, D: c})
}

// Scale returns m followed, in local space, by a scale.
func (m Affine) Scale(sx, sy float64) Affine {
	return m.Mul(Affine{A: sx, D: sy})
}

// Apply maps a local point to device space.
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// Invert returns the inverse transform. It reports false for a degenerate
// (zero-area) transform, e.g. a zero vertical scale.
func (m Affine) Invert() (Affine, bool) {
	det := m.A*m.D - m.B*m.C
	if math.Abs(det) < 1e-12 {
		return Affine{}, false
	}
	inv := 1 / det
	return Affine{
		A: m.D * inv,
		B: -m.B * inv,
		C: -m.C * inv,
		D: m.A * inv,
		E: (m.C*m.F - m.D*m.E) * inv,
		F: (m.B*m.E - m.A*m.F) * inv,
	}, true
}
