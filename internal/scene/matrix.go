package scene

import (
	"math"

	"github.com/example/cutout/internal/geom"
)

// Matrix is a 2D affine transform stored as [a b c d e f], mapping (x, y) to
// (a*x + c*y + e, b*x + d*y + f).
type Matrix [6]float64

// Identity is the transform that leaves points unchanged.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Apply transforms p.
func (m Matrix) Apply(p geom.Point) geom.Point {
	return geom.Pt(m[0]*p.X+m[2]*p.Y+m[4], m[1]*p.X+m[3]*p.Y+m[5])
}

// Mul returns m·n, the transform that applies n first and then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		m[0]*n[0] + m[2]*n[1],
		m[1]*n[0] + m[3]*n[1],
		m[0]*n[2] + m[2]*n[3],
		m[1]*n[2] + m[3]*n[3],
		m[0]*n[4] + m[2]*n[5] + m[4],
		m[1]*n[4] + m[3]*n[5] + m[5],
	}
}

// Invert returns the inverse of m. A singular matrix inverts to Identity.
func (m Matrix) Invert() Matrix {
	det := m[0]*m[3] - m[1]*m[2]
	if det == 0 {
		return Identity
	}
	inv := 1 / det
	return Matrix{
		m[3] * inv,
		-m[1] * inv,
		-m[2] * inv,
		m[0] * inv,
		(m[2]*m[5] - m[3]*m[4]) * inv,
		(m[1]*m[4] - m[0]*m[5]) * inv,
	}
}

func translate(x, y float64) Matrix { return Matrix{1, 0, 0, 1, x, y} }

func scale(sx, sy float64) Matrix { return Matrix{sx, 0, 0, sy, 0, 0} }

func rotate(deg float64) Matrix {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}
