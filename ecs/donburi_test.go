package ecs

import (
	"testing"

	"github.com/phanxgames/drift"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitCollision(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []drift.CollisionEvent
	CollisionEventType.Subscribe(world, func(w donburi.World, e drift.CollisionEvent) {
		received = append(received, e)
	})

	sink.EmitCollision(drift.CollisionEvent{Frame: 3, A: 1, B: 2, NameA: "laser", NameB: "rock", TypeA: 1, TypeB: 2})
	sink.EmitCollision(drift.CollisionEvent{Frame: 3, A: 5, B: 6, TypeA: 4, TypeB: 16})

	// Events are queued until processed.
	CollisionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.A != 1 || e0.B != 2 || e0.NameA != "laser" || e0.NameB != "rock" {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.TypeA != 1 || e0.TypeB != 2 {
		t.Errorf("event 0 types: (%v,%v)", e0.TypeA, e0.TypeB)
	}
	if received[1].TypeB != 16 {
		t.Errorf("event 1: %+v", received[1])
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink drift.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_SceneForwarding(t *testing.T) {
	world := donburi.NewWorld()
	scene := drift.NewScene()
	scene.SetEventSink(NewDonburiSink(world))

	a := drift.NewPolygonNode("a", drift.NewRectPolygon(10, 10))
	a.SetCollisionType(1)
	a.SetCollisionMask(2)
	b := drift.NewPolygonNode("b", drift.NewRectPolygon(10, 10))
	b.SetCollisionType(2)
	scene.Root().AppendChild(a)
	scene.Root().AppendChild(b)

	var got []drift.CollisionEvent
	CollisionEventType.Subscribe(world, func(w donburi.World, e drift.CollisionEvent) {
		got = append(got, e)
	})

	scene.Update(1.0 / 60)
	events.ProcessAllEvents(world)

	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Frame != 1 || got[0].NameA != "a" || got[0].NameB != "b" {
		t.Errorf("event: %+v", got[0])
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	CollisionEventType.Subscribe(world, func(w donburi.World, e drift.CollisionEvent) {
		count1++
	})
	CollisionEventType.Subscribe(world, func(w donburi.World, e drift.CollisionEvent) {
		count2++
	})

	sink.EmitCollision(drift.CollisionEvent{A: 1, B: 2})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
