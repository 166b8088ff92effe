package drift

import "math"

// lifetimeEpsilon absorbs floating-point drift when many frame deltas are
// summed against a lifetime: a remaining lifetime at or below it counts as
// expired.
const lifetimeEpsilon = 1e-9

// Physics holds the kinematic state of a single node. The scene integrates it
// once per frame before the node's update hook runs. All rates are per second.
//
// Game code drives motion by setting Acceleration and SpinAcceleration; the
// integrator owns clamping, decay and lifetime so every entity type behaves
// the same way.
type Physics struct {
	// Velocity is the linear velocity in parent-space units per second.
	Velocity Vec2
	// Spin is the angular velocity in radians per second.
	Spin float64
	// Acceleration is added to Velocity each second.
	Acceleration Vec2
	// SpinAcceleration is added to Spin each second.
	SpinAcceleration float64
	// Decay damps Velocity and Spin by a factor of exp(-Decay) per second.
	Decay float64
	// Lifetime is the remaining lifetime in seconds. When it runs out the
	// node is removed from the tree. +Inf means forever.
	Lifetime float64
	// MaxVelocity caps the magnitude of Velocity. +Inf means no cap.
	MaxVelocity float64
	// MinSpin and MaxSpin clamp Spin.
	MinSpin, MaxSpin float64
	// Scaling is a per-second uniform scale factor applied to the node's
	// transform. 1 means no scaling.
	Scaling float64
}

// NewPhysics returns a Physics with no motion, infinite lifetime and no
// clamping.
func NewPhysics() *Physics {
	return &Physics{
		Lifetime:    math.Inf(1),
		MaxVelocity: math.Inf(1),
		MinSpin:     math.Inf(-1),
		MaxSpin:     math.Inf(1),
		Scaling:     1,
	}
}

// SetVelocity sets the linear velocity.
func (p *Physics) SetVelocity(x, y float64) *Physics {
	p.Velocity = Vec2{x, y}
	return p
}

// SetSpin sets the angular velocity in radians per second.
func (p *Physics) SetSpin(spin float64) *Physics {
	p.Spin = spin
	return p
}

// SetAcceleration sets the linear acceleration.
func (p *Physics) SetAcceleration(x, y float64) *Physics {
	p.Acceleration = Vec2{x, y}
	return p
}

// SetSpinAcceleration sets the angular acceleration.
func (p *Physics) SetSpinAcceleration(a float64) *Physics {
	p.SpinAcceleration = a
	return p
}

// SetDecay sets the damping rate. Negative values are treated as 0.
func (p *Physics) SetDecay(decay float64) *Physics {
	p.Decay = math.Max(decay, 0)
	return p
}

// SetLifetime sets the remaining lifetime in seconds. A lifetime of 0 or less
// expires on the next integration step.
func (p *Physics) SetLifetime(seconds float64) *Physics {
	p.Lifetime = seconds
	return p
}

// SetMaxVelocity caps the speed. Use math.Inf(1) to remove the cap.
func (p *Physics) SetMaxVelocity(v float64) *Physics {
	p.MaxVelocity = v
	return p
}

// SetMinSpin sets the lower spin clamp.
func (p *Physics) SetMinSpin(s float64) *Physics {
	p.MinSpin = s
	return p
}

// SetMaxSpin sets the upper spin clamp.
func (p *Physics) SetMaxSpin(s float64) *Physics {
	p.MaxSpin = s
	return p
}

// SetScaling sets the per-second scale factor.
func (p *Physics) SetScaling(s float64) *Physics {
	p.Scaling = s
	return p
}

// Mortal reports whether the physics has a finite lifetime.
func (p *Physics) Mortal() bool {
	return !math.IsInf(p.Lifetime, 1)
}

// Speed returns the magnitude of Velocity.
func (p *Physics) Speed() float64 {
	return p.Velocity.Length()
}

// step advances the physics state by dt seconds and applies the resulting
// motion to t. It returns false when the lifetime ran out, in which case t is
// left untouched.
func (p *Physics) step(t *Transform, dt float64) bool {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return p.Lifetime > lifetimeEpsilon
	}

	if p.Mortal() {
		p.Lifetime -= dt
		if p.Lifetime <= lifetimeEpsilon {
			return false
		}
	}

	// Semi-implicit Euler: velocity first, then position from the new velocity.
	if p.Acceleration != (Vec2{}) {
		p.Velocity = p.Velocity.Add(p.Acceleration.Scale(dt))
	}
	p.clampVelocity()

	if p.SpinAcceleration != 0 {
		p.Spin += p.SpinAcceleration * dt
	}
	p.clampSpin()

	if p.Decay > 0 {
		f := math.Exp(-p.Decay * dt)
		p.Velocity = p.Velocity.Scale(f)
		p.Spin *= f
	}

	if p.Velocity != (Vec2{}) {
		t.TranslateParent(p.Velocity.X*dt, p.Velocity.Y*dt)
	}
	if p.Spin != 0 {
		t.Rotate(p.Spin * dt)
	}
	if p.Scaling != 1 && p.Scaling > 0 {
		t.Scale(math.Pow(p.Scaling, dt))
	}
	return true
}

// clampVelocity limits the magnitude of Velocity to MaxVelocity.
func (p *Physics) clampVelocity() {
	if math.IsInf(p.MaxVelocity, 1) || math.IsNaN(p.MaxVelocity) {
		return
	}
	max := math.Max(p.MaxVelocity, 0)
	if l := p.Velocity.Length(); l > max {
		if l == 0 {
			return
		}
		p.Velocity = p.Velocity.Scale(max / l)
	}
}

// clampSpin limits Spin to [MinSpin, MaxSpin].
func (p *Physics) clampSpin() {
	if p.Spin > p.MaxSpin {
		p.Spin = p.MaxSpin
	}
	if p.Spin < p.MinSpin {
		p.Spin = p.MinSpin
	}
}
