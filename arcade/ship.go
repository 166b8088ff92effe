package arcade

import (
	"math"

	"github.com/phanxgames/drift"
	"go.uber.org/zap"
)

const degToRad = math.Pi / 180

// Ship is the player's spaceship. Its thrust flames are child nodes that are
// enabled only while the matching thruster fires.
type Ship struct {
	g    *Game
	node *drift.Node

	main, left, right *drift.Node

	thrust   float64
	yawing   bool
	firing   bool
	cooldown float64

	shield float64
	hull   float64
}

func newShip(g *Game) *Ship {
	s := &Ship{g: g, shield: 100, hull: 100}

	n := drift.NewPolygonNode("ship", ShipBounds)
	n.Style.Fill = colorHull
	n.UserData = s
	s.node = n

	s.main = thrustNode("main-thrust", MainThrust)
	s.left = thrustNode("left-thrust", LeftThrust)
	s.right = thrustNode("right-thrust", RightThrust)
	n.AppendChild(s.main)
	n.AppendChild(s.left)
	n.AppendChild(s.right)

	maxSpin := g.cfg.Ship.MaxSpin * degToRad
	n.SetPhysics(drift.NewPhysics().
		SetMaxVelocity(g.cfg.Ship.MaxVelocity).
		SetMaxSpin(maxSpin).
		SetMinSpin(-maxSpin))

	n.SetCollisionType(TypeShip)
	n.SetCollisionMask(TypeAsteroid | TypeDrop | TypeUFO)
	n.Connect(s.handleCollide)
	n.SetBehavior(s)
	return s
}

// thrustNode creates a disabled flame whose tip vertex can be animated
// without touching the shared template.
func thrustNode(name string, template *drift.Polygon) *drift.Node {
	n := drift.NewPolygonNode(name, template.Clone())
	n.Style.Fill = colorOrange
	n.Disable()
	return n
}

// Node returns the scene node of the ship.
func (s *Ship) Node() *drift.Node { return s.node }

// Shield returns the shield strength in percent (up to 150).
func (s *Ship) Shield() float64 { return s.shield }

// Hull returns the hull strength in percent.
func (s *Ship) Hull() float64 { return s.hull }

// Heading returns the ship's rotation in radians, clockwise.
func (s *Ship) Heading() float64 {
	return s.node.Transform().RotationAngle()
}

// SetHeading turns the ship to heading radians.
func (s *Ship) SetHeading(heading float64) {
	s.node.Transform().Rotate(heading - s.Heading())
}

// Firing reports whether the laser cannon is held down.
func (s *Ship) Firing() bool { return s.firing }

// apply maps the frame's controls onto the thrusters and the cannon.
func (s *Ship) apply(c Controls) {
	if c.Thrust {
		s.StartThrust(100)
	} else {
		s.StopThrust()
	}
	switch {
	case c.Left && !c.Right:
		s.YawLeft(100)
	case c.Right && !c.Left:
		s.YawRight(100)
	default:
		// Only on release, so the compensator's braking survives.
		if s.yawing {
			s.StopYaw()
		}
	}
	s.firing = c.Fire
}

// StartThrust fires the main engine at power percent, weakened by hull damage.
func (s *Ship) StartThrust(power float64) {
	s.thrust = s.g.cfg.Ship.Thrust * s.hull / 100 * max(0, power) / 100
	if s.thrust > 0 {
		s.main.Enable()
	}
}

// StopThrust shuts the main engine off.
func (s *Ship) StopThrust() {
	s.thrust = 0
	s.main.Disable()
}

func (s *Ship) yaw() float64 {
	return s.g.cfg.Ship.Yaw * degToRad * s.hull / 100
}

// YawLeft turns counter-clockwise at power percent.
func (s *Ship) YawLeft(power float64) {
	s.node.Physics().SetSpinAcceleration(-s.yaw() * power / 100)
	s.yawing = true
}

// YawRight turns clockwise at power percent.
func (s *Ship) YawRight(power float64) {
	s.node.Physics().SetSpinAcceleration(s.yaw() * power / 100)
	s.yawing = true
}

// StopYaw releases the side thrusters. The rotation compensator then brakes
// any remaining spin.
func (s *Ship) StopYaw() {
	s.node.Physics().SetSpinAcceleration(0)
	s.yawing = false
}

// StartFire holds the laser cannon down.
func (s *Ship) StartFire() { s.firing = true }

// StopFire releases the laser cannon.
func (s *Ship) StopFire() { s.firing = false }

// Update runs after the ship's physics has been integrated.
func (s *Ship) Update(n *drift.Node, dt float64) {
	p := n.Physics()
	if p == nil {
		return
	}

	s.cooldown = max(s.cooldown-dt, 0)
	if s.firing && s.cooldown == 0 && s.hull > 0 {
		s.fireLaser()
		s.cooldown = 1 / (s.g.cfg.Ship.FireRate * s.hull / 100)
	}

	if !s.yawing && s.g.cfg.compensator() && p.Spin != 0 {
		if math.Abs(p.Spin)/degToRad > 1 {
			brake := min(s.yaw(), math.Abs(p.Spin)*5)
			if p.Spin > 0 {
				brake = -brake
			}
			p.SetSpinAcceleration(brake)
		} else {
			p.SetSpin(0)
			p.SetSpinAcceleration(0)
		}
	}

	// Drift to a halt slowly when the engine is off.
	if s.thrust == 0 {
		p.Velocity = p.Velocity.Scale(math.Pow(0.99, dt*30))
	}

	s.animateSide(s.left, LeftThrust, -p.SpinAcceleration)
	s.animateSide(s.right, RightThrust, p.SpinAcceleration)
	s.animateMain()

	if s.thrust > 0 {
		p.Acceleration = drift.Vec2{Y: -s.thrust}.Rotate(s.Heading())
	} else {
		p.Acceleration = drift.Vec2{}
	}

	s.g.wrap(n, ShipBounds)
}

func (s *Ship) animateMain() {
	if s.g.cfg.Ship.Thrust > 0 {
		s.main.Style.Alpha = s.thrust / s.g.cfg.Ship.Thrust
	}
	jitter(s.main, MainThrust, 1, 2, s.g)
}

func (s *Ship) animateSide(flame *drift.Node, template *drift.Polygon, accel float64) {
	if accel <= 0 {
		flame.Disable()
		return
	}
	if yaw := s.g.cfg.Ship.Yaw * degToRad; yaw > 0 {
		flame.Style.Alpha = min(accel/yaw, 1)
	}
	jitter(flame, template, 2, 1, s.g)
	flame.Enable()
}

// jitter moves the flame tip randomly around the template's first vertex.
func jitter(flame *drift.Node, template *drift.Polygon, dx, dy float64, g *Game) {
	orig := template.Vertex(0)
	flame.Bounds().SetVertex(0, drift.Vec2{
		X: orig.X + dx - g.rng.Float64()*2*dx,
		Y: orig.Y + dy - g.rng.Float64()*2*dy,
	})
}

// fireLaser spawns a laser at the nose, inheriting the ship's velocity.
func (s *Ship) fireLaser() {
	parent := s.node.Parent()
	if parent == nil {
		return
	}
	l := newLaser(s.g, false)
	t := s.node.Transform()
	l.node.Transform().SetTransform(*t).Translate(0, -24)
	v := drift.Vec2{Y: -s.g.cfg.Ship.Thrust * 1.2}.Rotate(t.RotationAngle()).Add(s.node.Physics().Velocity)
	l.node.Physics().Velocity = v
	parent.AppendChild(l.node)
}

func (s *Ship) handleCollide(_, other *drift.Node) {
	g := s.g
	switch o := other.UserData.(type) {
	case *Asteroid:
		o.shatter(true)
		if o.small {
			s.AddDamage(25)
			g.award(50, ScoreSmallRammed)
		} else {
			s.AddDamage(100)
			g.award(20, ScoreLargeRammed)
		}
	case *UFO:
		o.destroy()
		s.AddDamage(100)
		g.award(100, ScoreUFORammed)
	case *Drop:
		other.Remove()
		switch o.kind {
		case DropEnergy:
			s.AddShieldEnergy(25)
			g.award(25, ScoreEnergy)
		case DropRepair:
			s.Repair(25)
			g.award(25, ScoreRepairKit)
		}
	}
}

// AddShieldEnergy recharges the shield; the closer to 150 the less it takes.
func (s *Ship) AddShieldEnergy(energy float64) {
	s.shield += max(0, math.Ceil(energy*(150-s.shield)/150))
}

// Repair fixes the hull; the closer to 100 the less it takes.
func (s *Ship) Repair(amount float64) {
	s.hull += max(0, math.Ceil(amount*(100-s.hull)/100))
}

// AddDamage drains the shield first; half of what the shield cannot absorb
// hits the hull. The ship is destroyed when the hull reaches zero.
func (s *Ship) AddDamage(damage float64) {
	damage = math.Trunc(damage)
	rest := math.Trunc(max(0, damage-s.shield) / 2)
	s.shield = max(0, s.shield-damage)
	s.hull = max(0, s.hull-rest)
	if s.hull == 0 {
		s.destroy()
	}
}

func (s *Ship) destroy() {
	if s.node.Parent() == nil {
		return
	}
	s.g.log.Info("ship destroyed", zap.Int("score", s.g.score), zap.Int("level", s.g.level))
	s.g.Explode(s.node, ExplosionShip)
	s.node.Remove()
	s.StopFire()
	s.StopThrust()
	s.StopYaw()
	s.g.endGame()
}
