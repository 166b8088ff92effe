package arcade

import (
	"math"

	"github.com/phanxgames/drift"
)

// ExplosionKind selects the look of an explosion.
type ExplosionKind uint8

const (
	ExplosionRock ExplosionKind = iota
	ExplosionShip
	ExplosionUFO
	ExplosionHit
)

type explosionStyle struct {
	particles int
	color     drift.Color
	scale     float64
	speed     drift.Range
	lifetime  float64
	decay     float64
}

var explosionStyles = [...]explosionStyle{
	ExplosionRock: {11, drift.ColorWhite, 1, drift.Range{Min: 75, Max: 150}, 0.5, 0.25},
	ExplosionShip: {51, colorOrange, 1.5, drift.Range{Min: 15, Max: 65}, 5, 4},
	ExplosionUFO:  {11, colorYellow, 1.5, drift.Range{Min: 15, Max: 40}, 2, 1},
	ExplosionHit:  {11, colorGrey, 1, drift.Range{Min: 50, Max: 100}, 0.25, 0.25},
}

// Explode scatters particles from the position of n. Particles are appended
// to the playfield root and die on their own.
func (g *Game) Explode(n *drift.Node, kind ExplosionKind) {
	st := explosionStyles[ExplosionRock]
	if int(kind) < len(explosionStyles) {
		st = explosionStyles[kind]
	}
	pos := n.Position()
	for range st.particles {
		heading := g.rng.Float64() * 2 * math.Pi
		p := drift.NewPolygonNode("particle", ParticleShape)
		p.Style.Fill = st.color
		p.Transform().Translate(pos.X, pos.Y).Rotate(heading).Scale(st.scale)

		speed := st.speed.RandomFrom(g.rng)
		ph := drift.NewPhysics().SetLifetime(st.lifetime).SetDecay(st.decay)
		ph.Velocity = drift.Vec2{Y: speed}.Rotate(heading)
		p.SetPhysics(ph)
		g.root.AppendChild(p)
	}
}
