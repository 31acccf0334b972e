package gstate

import (
	"math"

	"github.com/gnustep/libs-back/internal/path"
)

// Matrix is a 2D affine transformation in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// mapping user space to device space as
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate returns a translation.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Scale returns a scaling.
func Scale(x, y float64) Matrix {
	return Matrix{A: x, E: y}
}

// Rotate returns a rotation by angle radians. With y pointing down the
// rotation is clockwise on screen.
func Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{
		A: cos, B: -sin,
		D: sin, E: cos,
	}
}

// Shear returns a shear.
func Shear(x, y float64) Matrix {
	return Matrix{A: 1, B: x, D: y, E: 1}
}

// Multiply returns m * other: other is applied first.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Apply transforms a point.
func (m Matrix) Apply(p path.Point) path.Point {
	return path.Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// ApplyVector transforms a vector, ignoring the translation.
func (m Matrix) ApplyVector(p path.Point) path.Point {
	return path.Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Invert returns the inverse. ok is false for a singular matrix, in which
// case the identity is returned.
func (m Matrix) Invert() (inv Matrix, ok bool) {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < 1e-10 {
		return Identity(), false
	}
	id := 1 / det
	return Matrix{
		A: m.E * id,
		B: -m.B * id,
		C: (m.B*m.F - m.C*m.E) * id,
		D: -m.D * id,
		E: m.A * id,
		F: (m.C*m.D - m.A*m.F) * id,
	}, true
}

// IsIdentity reports whether m is the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsTranslation reports whether m only translates.
func (m Matrix) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// IsScaleOnly reports whether m keeps axis-aligned rectangles axis-aligned
// without swapping axes.
func (m Matrix) IsScaleOnly() bool {
	return m.B == 0 && m.D == 0
}

// MaxScaleFactor returns the largest factor by which m stretches a
// vector: the largest singular value of the linear part.
func (m Matrix) MaxScaleFactor() float64 {
	if m.IsScaleOnly() {
		return max(math.Abs(m.A), math.Abs(m.E))
	}
	// Eigenvalues of M^T M.
	p := m.A*m.A + m.D*m.D
	q := m.A*m.B + m.D*m.E
	r := m.B*m.B + m.E*m.E
	mid := (p + r) / 2
	d := math.Sqrt((p-r)*(p-r)/4 + q*q)
	return math.Sqrt(mid + d)
}
