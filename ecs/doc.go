// Package ecs provides ECS adapters for drift's collision events.
//
// The primary adapter is [NewDonburiSink], which forwards every collision
// the scene reports into a [Donburi] world as a typed event. Subscribe to
// [CollisionEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
