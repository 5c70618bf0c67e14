// Package ecs provides ECS adapters for canopy.
package ecs

import (
	"github.com/phanxgames/canopy"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// HoverEventType is the Donburi event type for canopy hover events.
// Subscribe to this in your ECS systems to receive enter, leave and probe
// events.
var HoverEventType = events.NewEventType[canopy.HoverEvent]()

type donburiSink struct {
	world donburi.World
	// probes controls whether HoverProbe events, which fire on every
	// pointer move over a mesh, are published.
	probes bool
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Enter and
// leave events are published to HoverEventType and can be consumed with
// events.Subscribe and ProcessEvents. Probe events are dropped.
func NewDonburiSink(world donburi.World) canopy.EventSink {
	return &donburiSink{world: world}
}

// NewDonburiProbeSink is like NewDonburiSink but also publishes HoverProbe
// events.
func NewDonburiProbeSink(world donburi.World) canopy.EventSink {
	return &donburiSink{world: world, probes: true}
}

func (s *donburiSink) EmitHover(event canopy.HoverEvent) {
	if event.Type == canopy.HoverProbe && !s.probes {
		return
	}
	HoverEventType.Publish(s.world, event)
}
