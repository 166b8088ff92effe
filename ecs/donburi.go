// Package ecs provides ECS adapters for drift.
package ecs

import (
	"github.com/phanxgames/drift"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// CollisionEventType is the Donburi event type for drift collision events.
// Subscribe to this in your ECS systems to receive overlapping pairs.
var CollisionEventType = events.NewEventType[drift.CollisionEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Collision events are published to CollisionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) drift.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitCollision(event drift.CollisionEvent) {
	CollisionEventType.Publish(s.world, event)
}
