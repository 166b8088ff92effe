package arcade

import (
	"math"

	"github.com/phanxgames/drift"
)

// Asteroid is a drifting rock. Large rocks split into four small ones when
// shot.
type Asteroid struct {
	g      *Game
	node   *drift.Node
	bounds *drift.Polygon
	small  bool
}

// newAsteroid creates a rock with a random shape, heading and spin. A rock
// spawned from parent starts at the parent's pose, offset by subID quarter
// turns, and heads away from the parent's course; otherwise it starts just
// outside a random point of the playfield edge.
func newAsteroid(g *Game, small bool, parent *Asteroid, subID int) *Asteroid {
	g.addAsteroid()
	a := &Asteroid{g: g, small: small}
	a.bounds = AsteroidBounds[g.rng.IntN(len(AsteroidBounds))]

	n := drift.NewPolygonNode("asteroid", a.bounds)
	n.Style.Fill = colorRock
	n.UserData = a
	a.node = n

	var heading float64
	if parent != nil {
		away := parent.node.Physics().Velocity.AngleTo(drift.Vec2{Y: 1})
		heading = saneHeading((45+g.rng.Float64()*45)*float64(subID) - away/degToRad)
	} else {
		heading = g.randomHeading()
	}

	speed := g.cfg.Rocks.BaseSpeed + float64(g.level)*g.cfg.Rocks.LevelBonus
	if small {
		speed += g.cfg.Rocks.SmallBonus
	}
	spin := drift.Range{Min: 25, Max: 70}.RandomFrom(g.rng) * degToRad
	if g.rng.IntN(2) == 0 {
		spin = -spin
	}
	p := drift.NewPhysics().SetSpin(spin)
	p.Velocity = drift.Vec2{Y: speed}.Rotate(heading * degToRad)
	n.SetPhysics(p)

	t := n.Transform()
	if parent != nil {
		off := drift.Vec2{Y: 8}.Rotate(math.Pi / 2 * float64(subID))
		t.SetTransform(*parent.node.Transform()).Translate(off.X, off.Y)
	} else {
		t.Rotate(g.rng.Float64() * 2 * math.Pi).Translate(g.spawnRadius(a.bounds), 0)
	}
	if small {
		t.Scale(0.5)
	}

	n.SetCollisionType(TypeAsteroid)
	n.SetBehavior(a)
	return a
}

// Node returns the scene node of the asteroid.
func (a *Asteroid) Node() *drift.Node { return a.node }

// Small reports whether this is a small rock.
func (a *Asteroid) Small() bool { return a.small }

// Update wraps the rock around the playfield.
func (a *Asteroid) Update(n *drift.Node, _ float64) {
	a.g.wrap(n, a.bounds)
}

// destroy clears the rock from the playfield without splitting it.
func (a *Asteroid) destroy() {
	a.shatter(true)
}

// shatter explodes the rock. A large rock leaves four small ones behind
// unless noDescendants is set.
func (a *Asteroid) shatter(noDescendants bool) {
	parent := a.node.Parent()
	if parent == nil {
		return
	}
	a.g.Explode(a.node, ExplosionRock)
	if !noDescendants && !a.small {
		for i := range 4 {
			parent.AppendChild(newAsteroid(a.g, true, a, i).node)
		}
	}
	a.g.removeAsteroid()
	a.node.Remove()
}
