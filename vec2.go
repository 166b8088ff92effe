package drift

import "math"

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API. It is a value type; methods never mutate the receiver.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v multiplied by f.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{v.X * f, v.Y * f}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Rotate returns v rotated by angle radians (clockwise on screen, since Y
// grows downward).
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{cos*v.X - sin*v.Y, sin*v.X + cos*v.Y}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// Length returns the magnitude of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSq returns the squared magnitude of v.
func (v Vec2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalize returns the unit vector in the direction of v, or the zero vector
// when v has no length.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l < 1e-12 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// WithLength returns v rescaled to length l. A zero vector stays zero.
func (v Vec2) WithLength(l float64) Vec2 {
	return v.Normalize().Scale(l)
}

// Perp returns v rotated by 90 degrees: (-Y, X).
func (v Vec2) Perp() Vec2 {
	return Vec2{-v.Y, v.X}
}

// Angle returns the direction of v in radians measured from the positive X
// axis. The zero vector has angle 0.
func (v Vec2) Angle() float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	return math.Atan2(v.Y, v.X)
}

// AngleTo returns the signed angle in radians that rotates v onto o, in
// (-Pi, Pi]. Returns 0 when either vector has no length.
func (v Vec2) AngleTo(o Vec2) float64 {
	if v.LengthSq() < 1e-24 || o.LengthSq() < 1e-24 {
		return 0
	}
	return math.Atan2(v.Cross(o), v.Dot(o))
}

// Distance returns the distance between v and o.
func (v Vec2) Distance(o Vec2) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// Lerp linearly interpolates from v to o by t.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{lerp(v.X, o.X, t), lerp(v.Y, o.Y, t)}
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
