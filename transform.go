package drift

import "math"

// Transform is a 2D affine matrix stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
//
// The zero value is the zero matrix, not the identity; use Identity.
// Mutating methods post-multiply in local space and return the receiver so
// calls can be chained:
//
//	t.Translate(10, 0).Rotate(math.Pi / 2).Scale(0.5)
type Transform [6]float64

// identityTransform is the identity affine matrix.
var identityTransform = Transform{1, 0, 0, 1, 0, 0}

// Identity returns the identity transform.
func Identity() Transform {
	return identityTransform
}

// NewTransform returns a transform that translates to (x, y), then rotates by
// angle and scales uniformly by scale.
func NewTransform(x, y, angle, scale float64) Transform {
	t := identityTransform
	t.Translate(x, y).Rotate(angle).Scale(scale)
	return t
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
func multiplyAffine(p, c Transform) Transform {
	return Transform{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m Transform) Transform {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Transform{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m Transform, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// SetIdentity resets t to the identity matrix.
func (t *Transform) SetIdentity() *Transform {
	*t = identityTransform
	return t
}

// SetTransform replaces t with a copy of other.
func (t *Transform) SetTransform(other Transform) *Transform {
	*t = other
	return t
}

// Translate moves t by (dx, dy) in its own local space, so an existing
// rotation or scale affects the direction and length of the move.
func (t *Transform) Translate(dx, dy float64) *Transform {
	t[4] += t[0]*dx + t[2]*dy
	t[5] += t[1]*dx + t[3]*dy
	return t
}

// TranslateParent moves t by (dx, dy) in its parent's space, ignoring the
// local rotation and scale.
func (t *Transform) TranslateParent(dx, dy float64) *Transform {
	t[4] += dx
	t[5] += dy
	return t
}

// Rotate rotates t by angle radians around its local origin.
func (t *Transform) Rotate(angle float64) *Transform {
	if angle == 0 {
		return t
	}
	sin, cos := math.Sincos(angle)
	a, b, c, d := t[0], t[1], t[2], t[3]
	t[0] = a*cos + c*sin
	t[1] = b*cos + d*sin
	t[2] = c*cos - a*sin
	t[3] = d*cos - b*sin
	return t
}

// Scale scales t uniformly by f around its local origin.
func (t *Transform) Scale(f float64) *Transform {
	return t.ScaleXY(f, f)
}

// ScaleXY scales t by (sx, sy) around its local origin.
func (t *Transform) ScaleXY(sx, sy float64) *Transform {
	t[0] *= sx
	t[1] *= sx
	t[2] *= sy
	t[3] *= sy
	return t
}

// Multiply returns t * other (other applied first) without modifying
// either operand.
func (t Transform) Multiply(other Transform) Transform {
	return multiplyAffine(t, other)
}

// Invert returns the inverse of t, or the identity when t is singular.
func (t Transform) Invert() Transform {
	return invertAffine(t)
}

// Apply maps the point v through t.
func (t Transform) Apply(v Vec2) Vec2 {
	x, y := transformPoint(t, v.X, v.Y)
	return Vec2{x, y}
}

// ApplyVector maps the direction v through t, ignoring translation.
func (t Transform) ApplyVector(v Vec2) Vec2 {
	return Vec2{t[0]*v.X + t[2]*v.Y, t[1]*v.X + t[3]*v.Y}
}

// RotationAngle returns the rotation component of t in radians, in (-Pi, Pi].
func (t Transform) RotationAngle() float64 {
	if t[0] == 0 && t[1] == 0 {
		return 0
	}
	return math.Atan2(t[1], t[0])
}

// ScaleFactor returns the length of the transformed X axis, which is the
// uniform scale for transforms built from Translate, Rotate and Scale.
func (t Transform) ScaleFactor() float64 {
	return math.Hypot(t[0], t[1])
}

// Translation returns the translation component of t.
func (t Transform) Translation() Vec2 {
	return Vec2{t[4], t[5]}
}

// SetTranslation replaces the translation component of t, keeping rotation
// and scale.
func (t *Transform) SetTranslation(x, y float64) *Transform {
	t[4] = x
	t[5] = y
	return t
}

// IsIdentity reports whether t is exactly the identity matrix.
func (t Transform) IsIdentity() bool {
	return t == identityTransform
}
