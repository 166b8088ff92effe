package drift

import (
	"math"
	"testing"
)

func TestNewPhysicsDefaults(t *testing.T) {
	p := NewPhysics()
	if p.Mortal() {
		t.Error("new physics should live forever")
	}
	if !math.IsInf(p.MaxVelocity, 1) || !math.IsInf(p.MaxSpin, 1) || !math.IsInf(p.MinSpin, -1) {
		t.Errorf("clamps should be open: %+v", p)
	}
	if p.Scaling != 1 {
		t.Errorf("Scaling = %v, want 1", p.Scaling)
	}
}

func TestStepVelocity(t *testing.T) {
	p := NewPhysics().SetVelocity(10, -20)
	m := Identity()
	if !p.step(&m, 0.5) {
		t.Fatal("step reported expiry")
	}
	assertVec(t, "translation", m.Translation(), Vec2{5, -10})
}

func TestStepVelocityIsParentSpace(t *testing.T) {
	p := NewPhysics().SetVelocity(10, 0)
	m := NewTransform(0, 0, math.Pi/2, 3)
	p.step(&m, 1)
	assertVec(t, "translation", m.Translation(), Vec2{10, 0})
}

func TestStepAcceleration(t *testing.T) {
	p := NewPhysics().SetAcceleration(0, 10)
	m := Identity()
	p.step(&m, 1)
	assertVec(t, "velocity", p.Velocity, Vec2{0, 10})
	// Position uses the updated velocity.
	assertVec(t, "translation", m.Translation(), Vec2{0, 10})
}

func TestStepMaxVelocityClamp(t *testing.T) {
	p := NewPhysics().SetAcceleration(1000, 1000).SetMaxVelocity(50)
	m := Identity()
	for range 10 {
		p.step(&m, 1.0/60)
		if s := p.Speed(); s > 50+epsilon {
			t.Fatalf("speed %v exceeds max velocity", s)
		}
	}
	assertNear(t, "speed", p.Speed(), 50)
	// The direction is preserved.
	assertNear(t, "direction", p.Velocity.Angle(), math.Pi/4)
}

func TestStepSpinClamp(t *testing.T) {
	p := NewPhysics().SetSpinAcceleration(100).SetMaxSpin(2).SetMinSpin(-1)
	m := Identity()
	p.step(&m, 1)
	assertNear(t, "max spin", p.Spin, 2)
	assertNear(t, "rotation", m.RotationAngle(), 2)

	p.SetSpinAcceleration(-100)
	p.step(&m, 1)
	assertNear(t, "min spin", p.Spin, -1)
}

func TestStepDecay(t *testing.T) {
	p := NewPhysics().SetVelocity(100, 0).SetSpin(2).SetDecay(0.5)
	m := Identity()
	p.step(&m, 1)
	f := math.Exp(-0.5)
	assertNear(t, "velocity", p.Velocity.X, 100*f)
	assertNear(t, "spin", p.Spin, 2*f)

	if NewPhysics().SetDecay(-3).Decay != 0 {
		t.Error("negative decay should be clamped to 0")
	}
}

func TestStepFrameRateIndependent(t *testing.T) {
	run := func(steps int) (*Physics, Transform) {
		p := NewPhysics().SetVelocity(40, 0).SetSpin(1).SetDecay(0.8).SetScaling(0.5)
		m := Identity()
		dt := 1.0 / float64(steps)
		for range steps {
			p.step(&m, dt)
		}
		return p, m
	}
	p30, m30 := run(30)
	p120, m120 := run(120)

	// Decay and scaling are exact for any step count.
	assertNear(t, "speed 30 vs 120", p30.Speed(), p120.Speed())
	assertNear(t, "spin 30 vs 120", p30.Spin, p120.Spin)
	assertNear(t, "scale 30 vs 120", m30.ScaleFactor(), m120.ScaleFactor())
	assertNear(t, "scale", m120.ScaleFactor(), 0.5)
	// Positions converge; the discretization error shrinks with the step.
	if d := m30.Translation().Distance(m120.Translation()); d > 0.5 {
		t.Errorf("positions differ by %v", d)
	}
}

func TestStepLifetime(t *testing.T) {
	p := NewPhysics().SetLifetime(1).SetVelocity(10, 0)
	m := Identity()
	frames := 0
	for p.step(&m, 1.0/60) {
		frames++
		if frames > 100 {
			t.Fatal("lifetime never expired")
		}
	}
	// 60 steps of 1/60 sum to 1 within rounding; the last one expires.
	if frames != 59 {
		t.Errorf("survived %d frames, want 59", frames)
	}
	before := m
	if p.step(&m, 1.0/60) {
		t.Error("expired physics should stay expired")
	}
	if m != before {
		t.Error("expired step must not move the transform")
	}
}

func TestStepZeroLifetimeExpiresImmediately(t *testing.T) {
	p := NewPhysics().SetLifetime(0)
	m := Identity()
	if p.step(&m, 1.0/60) {
		t.Error("zero lifetime should expire on the first step")
	}
}

func TestStepIgnoresBadDelta(t *testing.T) {
	p := NewPhysics().SetVelocity(10, 0).SetLifetime(1)
	m := Identity()
	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if !p.step(&m, dt) {
			t.Errorf("step(%v) expired", dt)
		}
	}
	if !m.IsIdentity() {
		t.Errorf("bad deltas moved the transform: %v", m)
	}
	assertNear(t, "lifetime", p.Lifetime, 1)
}

// A particle thrown at 100 units/s with decay 1 travels (1 - e^-1) * 100
// units in its first second.
func TestParticleDecayDistance(t *testing.T) {
	p := NewPhysics().SetVelocity(100, 0).SetDecay(1).SetLifetime(2)
	m := Identity()
	for range 1000 {
		p.step(&m, 1.0/1000)
	}
	want := (1 - math.Exp(-1)) * 100
	if d := math.Abs(m.Translation().X - want); d > 0.1 {
		t.Errorf("distance = %v, want about %v", m.Translation().X, want)
	}
	assertNear(t, "speed", p.Speed(), 100*math.Exp(-1))
}
