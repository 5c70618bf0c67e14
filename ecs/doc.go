// Package ecs provides ECS adapters for canopy's hover events.
//
// The primary adapter is [NewDonburiSink], which bridges canopy hover events
// (pointer enter and leave over page elements) into a [Donburi] world as
// typed events. Subscribe to [HoverEventType] in your ECS systems to receive
// them. Use [NewDonburiProbeSink] to also receive every ray hit.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
