package arcade

import (
	"math"

	"github.com/phanxgames/drift"
)

// UFO is the alien saucer. It changes course now and then, fires alien
// lasers in random directions and leaves a drop behind when destroyed.
type UFO struct {
	g    *Game
	node *drift.Node

	hull       float64
	nextCourse float64
	nextFire   float64
}

func newUFO(g *Game) *UFO {
	u := &UFO{
		g:        g,
		hull:     g.cfg.UFO.Hull,
		nextFire: g.cfg.UFO.FireWait,
	}
	n := drift.NewPolygonNode("ufo", UFOBounds)
	n.Style.Fill = colorUFO
	n.UserData = u
	u.node = n
	n.SetPhysics(drift.NewPhysics())

	rotation := g.rng.Float64() * 2 * math.Pi
	n.Transform().Rotate(rotation).Translate(g.spawnRadius(UFOBounds), 0).Rotate(-rotation)

	n.SetCollisionType(TypeUFO)
	n.SetCollisionMask(TypeAsteroid)
	n.Connect(u.handleCollide)
	n.SetBehavior(u)
	g.ufos++
	return u
}

// Node returns the scene node of the saucer.
func (u *UFO) Node() *drift.Node { return u.node }

// Hull returns the remaining hull points.
func (u *UFO) Hull() float64 { return u.hull }

// Update steers, fires and wraps the saucer.
func (u *UFO) Update(n *drift.Node, dt float64) {
	if u.nextCourse -= dt; u.nextCourse < 0 {
		u.changeCourse()
	}
	if u.nextFire -= dt; u.nextFire < 0 {
		u.fireLaser()
	}
	u.g.wrap(n, UFOBounds)
}

func (u *UFO) changeCourse() {
	g := u.g
	speed := drift.Range{Min: 33, Max: 66}.RandomFrom(g.rng)
	u.node.Physics().Velocity = drift.Vec2{Y: speed}.Rotate(g.randomHeading() * degToRad)
	u.nextCourse = drift.Range{Min: 2.5, Max: 7.5}.RandomFrom(g.rng)
}

func (u *UFO) fireLaser() {
	u.nextFire = u.g.cfg.UFO.FireRate
	parent := u.node.Parent()
	if parent == nil {
		return
	}
	angle := u.g.rng.Float64() * 2 * math.Pi
	offset := -10.0
	if angle > math.Pi/2 && angle < math.Pi*1.5 {
		offset = 10
	}
	l := newLaser(u.g, true)
	l.node.Transform().SetTransform(*u.node.Transform()).Translate(0, offset).Rotate(angle)
	l.node.Physics().Velocity = drift.Vec2{Y: -u.g.cfg.Laser.AlienSpeed}.Rotate(angle)
	parent.AppendChild(l.node)
}

// handleCollide pushes rocks out of the saucer's way: the rock vanishes and
// a fresh one of the same size enters from the edge.
func (u *UFO) handleCollide(_, other *drift.Node) {
	a, ok := other.UserData.(*Asteroid)
	if !ok {
		return
	}
	parent := other.Parent()
	if parent == nil {
		return
	}
	parent.AppendChild(newAsteroid(u.g, a.small, nil, 0).node)
	a.shatter(true)
}

// AddDamage removes hull points and destroys the saucer at zero.
func (u *UFO) AddDamage(damage float64) {
	u.hull = max(0, u.hull-damage)
	if u.hull == 0 {
		u.destroy()
	}
}

func (u *UFO) destroy() {
	if u.node.Parent() == nil {
		return
	}
	g := u.g
	g.Explode(u.node, ExplosionUFO)
	g.register(100*max(g.level, 1), ScoreUFODestroyed)
	if !g.gameOver {
		u.dropStuff()
	}
	u.node.Remove()
	g.ufos--
}

// dropStuff leaves a repair kit or energy behind, whichever the ship can use.
func (u *UFO) dropStuff() {
	s := u.g.ship
	if s == nil {
		return
	}
	var kinds []DropKind
	if s.hull < 100 {
		kinds = append(kinds, DropRepair)
	}
	if s.shield < 150 {
		kinds = append(kinds, DropEnergy)
	}
	if len(kinds) == 0 {
		return
	}
	d := newDrop(u.g, kinds[u.g.rng.IntN(len(kinds))])
	d.node.Transform().SetTransform(*u.node.Transform())
	d.node.Physics().Velocity = u.node.Physics().Velocity
	u.node.Parent().AppendChild(d.node)
}
