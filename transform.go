package starship

import (
	"errors"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Errors reported by transform operations.
var (
	ErrSingular        = errors.New("starship: transform is not invertible")
	ErrDegenerateScale = errors.New("starship: scale factor too close to zero")
)

const (
	// singularEpsilon is the determinant magnitude below which a matrix is
	// treated as non-invertible.
	singularEpsilon = 1e-12
	// minScale is the smallest accepted absolute scale factor.
	minScale = 1e-9
)

// Affine is a 2D affine matrix laid out as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// A point maps as x' = a*x + c*y + tx, y' = b*x + d*y + ty.
type Affine [6]float64

// identityTransform is the identity affine matrix.
var identityTransform = Affine{1, 0, 0, 1, 0, 0}

// Identity returns the identity transform.
func Identity() Affine {
	return identityTransform
}

// TranslateMatrix returns a pure translation.
func TranslateMatrix(dx, dy float64) Affine {
	return Affine{1, 0, 0, 1, dx, dy}
}

// RotateMatrix returns a rotation by theta radians about (cx, cy).
func RotateMatrix(theta, cx, cy float64) Affine {
	sin, cos := math.Sincos(theta)
	// T(c) * R * T(-c)
	return Affine{
		cos, sin, -sin, cos,
		cx - cos*cx + sin*cy,
		cy - sin*cx - cos*cy,
	}
}

// ScaleMatrix returns a scale about the origin.
func ScaleMatrix(sx, sy float64) Affine {
	return Affine{sx, 0, 0, sy, 0, 0}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
func multiplyAffine(p, c Affine) Affine {
	return Affine{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// Concat returns m composed with other, with other applied first.
// Points map as m.Apply(other.Apply(p)).
func (m Affine) Concat(other Affine) Affine {
	return multiplyAffine(m, other)
}

// Translate right-multiplies a translation, moving in m's current frame.
func (m *Affine) Translate(dx, dy float64) {
	*m = multiplyAffine(*m, TranslateMatrix(dx, dy))
}

// Rotate right-multiplies a rotation by theta radians about (cx, cy) in m's
// current frame.
func (m *Affine) Rotate(theta, cx, cy float64) {
	*m = multiplyAffine(*m, RotateMatrix(theta, cx, cy))
}

// Scale right-multiplies a scale. Factors whose magnitude is below 1e-9 are
// rejected with ErrDegenerateScale and m is left unchanged.
func (m *Affine) Scale(sx, sy float64) error {
	if math.Abs(sx) < minScale || math.Abs(sy) < minScale {
		return ErrDegenerateScale
	}
	*m = multiplyAffine(*m, ScaleMatrix(sx, sy))
	return nil
}

// Determinant returns a*d - c*b.
func (m Affine) Determinant() float64 {
	return m[0]*m[3] - m[2]*m[1]
}

// Invertible reports whether Invert would succeed.
func (m Affine) Invertible() bool {
	det := m.Determinant()
	return det <= -singularEpsilon || det >= singularEpsilon
}

// Invert returns the inverse of m, or ErrSingular if the determinant is
// approximately zero.
func (m Affine) Invert() (Affine, error) {
	det := m.Determinant()
	if det > -singularEpsilon && det < singularEpsilon {
		return identityTransform, ErrSingular
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, nil
}

// Apply maps a single point through m.
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// TransformPoints maps src through m into dst and returns dst. dst is grown
// when shorter than src; passing src as dst transforms in place.
func (m Affine) TransformPoints(dst, src []Vec2) []Vec2 {
	if cap(dst) < len(src) {
		dst = make([]Vec2, len(src))
	}
	dst = dst[:len(src)]
	for i, p := range src {
		dst[i].X, dst[i].Y = m.Apply(p.X, p.Y)
	}
	return dst
}

// Equal reports whether every coefficient of m is within eps of other.
func (m Affine) Equal(other Affine, eps float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > eps {
			return false
		}
	}
	return true
}

// GeoM converts m to an Ebitengine geometry matrix.
func (m Affine) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// linearScale returns the geometric mean of m's axis scale factors, used to
// size strokes drawn in a transformed frame.
func (m Affine) linearScale() float64 {
	return math.Sqrt(math.Abs(m.Determinant()))
}
