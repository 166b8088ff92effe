package arcade

import "github.com/phanxgames/drift"

// Collision categories.
const (
	TypeLaser    drift.CollisionType = 1 << iota // 1
	TypeAsteroid                                 // 2
	TypeShip                                     // 4
	TypeUFO                                      // 8
	TypeDrop                                     // 16
)

// Canonical shapes. They are shared by every entity of a kind and must be
// treated as read-only; entities that animate vertices use a Clone.
var (
	AsteroidBounds = [...]*drift.Polygon{
		poly(-16, -5, -7, -16, 4, -16, 15, -7, 15, 2, 6, 15, -5, 15, -12, 11, -16, -2),
		poly(-15, -6, -6, -16, 4, -16, 15, -7, 15, 7, 6, 15, -8, 15, -16, 4),
		poly(-16, -4, -8, -15, -2, -16, 9, -16, 15, -4, 15, 8, 7, 15, -7, 15, -16, 5),
		poly(-16, -11, -1, -11, 15, 0, 15, 9, 13, 11, 6, 11, -9, 5, -16, -5),
		poly(15, -16, 14, -5, 6, 6, -5, 15, -16, 12, -16, 2, -11, -7, 1, -14),
	}

	ShipBounds = poly(-11, 8, 0, -18, 11, 8, 11, 13, 4, 17, -4, 17, -11, 13)

	MainThrust  = poly(0, 26, -2, 19, 0, 20, 2, 19)
	LeftThrust  = poly(10, -12, 4, -13, 4, -11)
	RightThrust = poly(-10, -12, -4, -13, -4, -11)

	LaserShape    = poly(0, -15, 1.5, -10, 0, 15, -1.5, -10)
	ParticleShape = poly(0, -5, 1, 2, 0, 5, -1, 2)

	UFOBounds  = poly(-24, 0, -2, -8, 1, -8, 23, 0, 1, 7, -2, 7)
	DropBounds = poly(-7, 0, -5, -5, 0, -7, 5, -5, 7, 0, 5, 5, 0, 7, -5, 5)
)

// Fill colors.
var (
	colorOrange     = drift.Color{R: 1, G: 0.65, B: 0, A: 1}
	colorYellow     = drift.Color{R: 1, G: 1, B: 0, A: 1}
	colorGrey       = drift.Color{R: 0.8, G: 0.8, B: 0.8, A: 1}
	colorAlienLaser = drift.Color{R: 0.27, G: 1, B: 0.27, A: 1}
	colorRock       = drift.Color{R: 0.55, G: 0.5, B: 0.45, A: 1}
	colorHull       = drift.Color{R: 0.75, G: 0.8, B: 0.9, A: 1}
	colorUFO        = drift.Color{R: 0.5, G: 0.9, B: 0.6, A: 1}
	colorEnergy     = drift.Color{R: 0.3, G: 0.6, B: 1, A: 1}
	colorRepair     = drift.Color{R: 1, G: 0.3, B: 0.3, A: 1}
)

// poly builds a polygon from flat x, y pairs.
func poly(xy ...float64) *drift.Polygon {
	pts := make([]drift.Vec2, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		pts = append(pts, drift.Vec2{X: xy[i], Y: xy[i+1]})
	}
	return drift.NewPolygon(pts...)
}
