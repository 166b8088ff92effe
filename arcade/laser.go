package arcade

import "github.com/phanxgames/drift"

// Laser is a short-lived shot. Player lasers destroy rocks for points and
// damage saucers; alien lasers push rocks around and damage the ship.
type Laser struct {
	g     *Game
	node  *drift.Node
	alien bool
}

func newLaser(g *Game, alien bool) *Laser {
	l := &Laser{g: g, alien: alien}
	n := drift.NewPolygonNode("laser", LaserShape)
	n.UserData = l
	l.node = n

	p := drift.NewPhysics()
	if alien {
		n.Name = "alien-laser"
		n.Style.Fill = colorAlienLaser
		p.SetLifetime(g.cfg.Laser.AlienLifetime).SetDecay(g.cfg.Laser.AlienDecay)
	} else {
		n.Style.Fill = colorOrange
		p.SetLifetime(g.cfg.Laser.Lifetime).SetDecay(g.cfg.Laser.Decay)
	}
	n.SetPhysics(p)

	n.SetCollisionType(TypeLaser)
	n.SetCollisionMask(TypeAsteroid | TypeDrop | TypeUFO | TypeShip)
	n.Connect(l.handleCollide)
	n.SetBehavior(l)
	return l
}

// Node returns the scene node of the laser.
func (l *Laser) Node() *drift.Node { return l.node }

// Alien reports whether the saucer fired this laser.
func (l *Laser) Alien() bool { return l.alien }

// Update wraps the shot around the playfield.
func (l *Laser) Update(n *drift.Node, _ float64) {
	l.g.wrap(n, LaserShape)
}

func (l *Laser) handleCollide(self, other *drift.Node) {
	g := l.g
	switch o := other.UserData.(type) {
	case *Asteroid:
		self.Remove()
		if l.alien {
			if parent := other.Parent(); parent != nil {
				parent.AppendChild(newAsteroid(g, o.small, nil, 0).node)
			}
			o.shatter(true)
			return
		}
		if o.small {
			g.award(50, ScoreSmallShot)
		} else {
			g.award(20, ScoreLargeShot)
		}
		o.shatter(false)
	case *Drop:
		o.destroy()
		self.Remove()
	case *UFO:
		if l.alien {
			return
		}
		g.Explode(self, ExplosionHit)
		self.Remove()
		o.AddDamage(100)
	case *Ship:
		if !l.alien {
			return
		}
		g.Explode(self, ExplosionHit)
		self.Remove()
		o.AddDamage(75)
	}
}
