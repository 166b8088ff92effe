package drift

import (
	"math"
	"testing"
)

const (
	typeA CollisionType = 1 << iota
	typeB
	typeC
)

func newCollider(name string, typ, mask CollisionType, x, y float64) *Node {
	n := NewPolygonNode(name, NewRectPolygon(1, 1))
	n.SetCollisionType(typ)
	n.SetCollisionMask(mask)
	n.SetPosition(x, y)
	return n
}

type hit struct{ self, other *Node }

func recordHits(n *Node, hits *[]hit) {
	n.Connect(func(self, other *Node) {
		*hits = append(*hits, hit{self, other})
	})
}

func TestMutualCollisionFiresOncePerSide(t *testing.T) {
	s := NewScene()
	a := newCollider("a", typeA, typeB, 0, 0)
	b := newCollider("b", typeB, typeA, 0, 0)
	var hits []hit
	recordHits(a, &hits)
	recordHits(b, &hits)
	s.Root().AppendChild(a)
	s.Root().AppendChild(b)

	s.Update(0.25)
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	if hits[0].self != a || hits[0].other != b {
		t.Error("a's handler should receive b")
	}
	if hits[1].self != b || hits[1].other != a {
		t.Error("b's handler should receive a")
	}
	st := s.Stats()
	if st.Collidable != 2 || st.Pairs != 1 || st.Hits != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestOneSidedNotification(t *testing.T) {
	s := NewScene()
	laser := newCollider("laser", typeA, typeB, 0, 0)
	rock := newCollider("rock", typeB, CollisionNone, 0.5, 0)
	var hits []hit
	recordHits(laser, &hits)
	recordHits(rock, &hits)
	s.Root().AppendChild(laser)
	s.Root().AppendChild(rock)

	s.Update(frame)
	if len(hits) != 1 || hits[0].self != laser {
		t.Errorf("hits = %v, want only the laser notified", hits)
	}
}

func TestMaskZeroNeverNotified(t *testing.T) {
	s := NewScene()
	var hits []hit
	for i := range 4 {
		n := newCollider("n", typeA, CollisionNone, float64(i)*0.1, 0)
		recordHits(n, &hits)
		s.Root().AppendChild(n)
	}
	s.Update(frame)
	if len(hits) != 0 {
		t.Errorf("hits = %d, want 0", len(hits))
	}
	if s.Stats().Pairs != 0 {
		t.Errorf("Pairs = %d, mask filter should reject all", s.Stats().Pairs)
	}
}

func TestDisjointNeverCollide(t *testing.T) {
	s := NewScene()
	a := newCollider("a", typeA, typeB, 0, 0)
	b := newCollider("b", typeB, typeA, 5, 5)
	var hits []hit
	recordHits(a, &hits)
	recordHits(b, &hits)
	s.Root().AppendChild(a)
	s.Root().AppendChild(b)

	s.Update(frame)
	if len(hits) != 0 {
		t.Errorf("hits = %d, want 0", len(hits))
	}
	if s.Stats().Pairs != 1 || s.Stats().Hits != 0 {
		t.Errorf("stats = %+v", s.Stats())
	}
}

func TestSelfRemovalInHandler(t *testing.T) {
	s := NewScene()
	laser := newCollider("laser", typeA, typeB|typeC, 0, 0)
	rock1 := newCollider("rock1", typeB, typeA, 0, 0)
	rock2 := newCollider("rock2", typeC, typeA, 0, 0)
	laserHits := 0
	laser.Connect(func(self, _ *Node) {
		laserHits++
		self.Remove()
	})
	var rockHits []hit
	recordHits(rock1, &rockHits)
	recordHits(rock2, &rockHits)
	s.Root().AppendChild(laser)
	s.Root().AppendChild(rock1)
	s.Root().AppendChild(rock2)

	s.Update(frame)
	if laserHits != 1 {
		t.Errorf("laser notified %d times, want 1", laserHits)
	}
	// The laser removed itself before either rock heard about it.
	if len(rockHits) != 0 {
		t.Errorf("rocks notified %d times, want 0", len(rockHits))
	}
	if laser.Parent() != nil {
		t.Error("laser should be gone")
	}
}

func TestHandlerRemovesOther(t *testing.T) {
	s := NewScene()
	a := newCollider("a", typeA, typeB, 0, 0)
	b := newCollider("b", typeB, typeA, 0, 0)
	c := newCollider("c", typeA, typeB, 0, 0)
	a.Connect(func(_, other *Node) { other.Remove() })
	bHits, cHits := 0, 0
	b.Connect(func(_, _ *Node) { bHits++ })
	c.Connect(func(_, _ *Node) { cHits++ })
	s.Root().AppendChild(a)
	s.Root().AppendChild(b)
	s.Root().AppendChild(c)

	s.Update(frame)
	if bHits != 0 || cHits != 0 {
		t.Errorf("removed node took part: bHits=%d cHits=%d", bHits, cHits)
	}
}

func TestConnectMaskFiltersByType(t *testing.T) {
	s := NewScene()
	ship := newCollider("ship", typeA, typeB|typeC, 0, 0)
	rock := newCollider("rock", typeB, CollisionNone, 0, 0)
	drop := newCollider("drop", typeC, CollisionNone, 0, 0)
	var rocks, drops []*Node
	ship.ConnectMask(typeB, func(_, other *Node) { rocks = append(rocks, other) })
	ship.ConnectMask(typeC, func(_, other *Node) { drops = append(drops, other) })
	s.Root().AppendChild(ship)
	s.Root().AppendChild(rock)
	s.Root().AppendChild(drop)

	s.Update(frame)
	if len(rocks) != 1 || rocks[0] != rock {
		t.Errorf("rock handler got %v", rocks)
	}
	if len(drops) != 1 || drops[0] != drop {
		t.Errorf("drop handler got %v", drops)
	}
}

func TestCollisionUsesWorldTransform(t *testing.T) {
	s := NewScene()
	group := NewNode("group")
	group.Transform().Translate(100, 0).Scale(2)
	a := newCollider("a", typeA, typeB, 0, 0)
	group.AppendChild(a)
	// The scaled square spans [99, 101] in world space.
	b := newCollider("b", typeB, CollisionNone, 101.4, 0)
	hits := 0
	a.Connect(func(_, _ *Node) { hits++ })
	s.Root().AppendChild(group)
	s.Root().AppendChild(b)

	s.Update(frame)
	if hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
}

func TestDisabledNodesDoNotCollide(t *testing.T) {
	s := NewScene()
	a := newCollider("a", typeA, typeB, 0, 0)
	b := newCollider("b", typeB, typeA, 0, 0)
	hits := 0
	a.Connect(func(_, _ *Node) { hits++ })
	s.Root().AppendChild(a)
	s.Root().AppendChild(b)
	b.Disable()

	s.Update(frame)
	if hits != 0 {
		t.Errorf("hits = %d, want 0", hits)
	}
}

func TestHandlerPanicRecovered(t *testing.T) {
	s := NewScene()
	a := newCollider("a", typeA, typeB, 0, 0)
	b := newCollider("b", typeB, typeA, 0, 0)
	a.Connect(func(_, _ *Node) { panic("bad handler") })
	bHits := 0
	b.Connect(func(_, _ *Node) { bHits++ })
	s.Root().AppendChild(a)
	s.Root().AppendChild(b)

	s.Update(frame)
	if bHits != 1 {
		t.Errorf("bHits = %d, want 1", bHits)
	}
	if s.Stats().Recovered != 1 {
		t.Errorf("Recovered = %d, want 1", s.Stats().Recovered)
	}
}

type recordingSink struct{ events []CollisionEvent }

func (r *recordingSink) EmitCollision(e CollisionEvent) { r.events = append(r.events, e) }

func TestEventSink(t *testing.T) {
	s := NewScene()
	sink := &recordingSink{}
	s.SetEventSink(sink)
	a := newCollider("a", typeA, typeB, 0, 0)
	b := newCollider("b", typeB, CollisionNone, 0, 0)
	s.Root().AppendChild(a)
	s.Root().AppendChild(b)

	s.Update(frame)
	if len(sink.events) != 1 {
		t.Fatalf("events = %d, want 1", len(sink.events))
	}
	e := sink.events[0]
	if e.Frame != 1 || e.A != a.ID || e.B != b.ID || e.TypeA != typeA || e.TypeB != typeB {
		t.Errorf("event = %+v", e)
	}
}

// A particle with lifetime 0.5, decay 2 and speed 100 slows down every frame
// and is gone after half a second.
func TestParticleScenario(t *testing.T) {
	s := NewScene()
	p := NewPolygonNode("particle", NewRegularPolygon(4, 1))
	p.SetPhysics(NewPhysics().SetLifetime(0.5).SetDecay(2).SetVelocity(60, 80))
	s.Root().AppendChild(p)

	last := math.Inf(1)
	elapsed := 0.0
	for p.Parent() != nil {
		speed := p.Physics().Speed()
		if speed > last {
			t.Fatalf("speed rose from %v to %v", last, speed)
		}
		last = speed
		s.Update(0.05)
		elapsed += 0.05
		if elapsed > 0.5+epsilon && p.Parent() != nil {
			t.Fatal("particle outlived its lifetime")
		}
	}
	if elapsed > 0.5+epsilon {
		t.Errorf("removed after %v seconds", elapsed)
	}
}

func TestCollide(t *testing.T) {
	a := newCollider("a", CollisionNone, CollisionNone, 0, 0)
	b := newCollider("b", CollisionNone, CollisionNone, 0.5, 0)
	if !Collide(a, b) {
		t.Error("Collide ignores types and masks")
	}
	b.SetPosition(3, 0)
	if Collide(a, b) {
		t.Error("separated nodes collide")
	}
	if Collide(a, NewNode("no bounds")) || Collide(nil, a) {
		t.Error("nodes without bounds never collide")
	}
}
