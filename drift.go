package drift

import (
	"math/rand/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default fill color.
var ColorWhite = Color{1, 1, 1, 1}

// Transparent reports whether the color has no visible alpha.
func (c Color) Transparent() bool {
	return c.A <= 0
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// rectFromPoints returns the bounding rectangle of pts. Empty input yields a
// zero Rect.
func rectFromPoints(pts []Vec2) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max] from the global source.
func (r Range) Random() float64 {
	return r.RandomFrom(nil)
}

// RandomFrom returns a random float64 in [Min, Max] drawn from rng, so a
// seeded generator yields a reproducible sequence. A nil rng uses the global
// source.
func (r Range) RandomFrom(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	f := rand.Float64
	if rng != nil {
		f = rng.Float64
	}
	return r.Min + f()*(r.Max-r.Min)
}

// CollisionType is a bitset of collision categories. A node carries exactly
// one bit as its type and any combination as its mask. Games declare their
// own category constants of this type.
type CollisionType uint32

// CollisionNone disables collision participation.
const CollisionNone CollisionType = 0

// Has reports whether any bit of other is set in t.
func (t CollisionType) Has(other CollisionType) bool {
	return t&other != 0
}
