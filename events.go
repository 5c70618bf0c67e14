package canopy

// EventKind identifies a queued input event.
type EventKind uint8

const (
	EventPointerMove EventKind = iota // pointer moved to (X, Y) in CSS pixels
	EventWheel                        // scroll by Y CSS pixels (positive scrolls down)
	EventResize                       // viewport changed to Width×Height at DPR
)

// Event is one queued input. Events are drained once per tick, before the
// scroll state is pulled, in arrival order.
type Event struct {
	Kind EventKind
	X, Y float64
	// Resize fields (valid for EventResize)
	Width, Height float64
	DPR           float64
}

// HoverEventType identifies a kind of hover event.
type HoverEventType uint8

const (
	HoverEnter HoverEventType = iota // pointer entered an element's box
	HoverLeave                       // pointer left an element's box
	HoverProbe                       // the pointer ray hit a mesh
)

// HoverEvent carries hover data to an EventSink.
type HoverEvent struct {
	Type HoverEventType
	// Item is the index of the element in Page.Elements.
	Item int
	Name string
	// X and Y are the pointer position in CSS pixels.
	X, Y float64
	// U and V are the hit coordinate (valid for HoverProbe).
	U, V float64
}

// EventSink is the interface for optional hover event integration.
// When set on a Scene, hover events are forwarded to it as they happen.
type EventSink interface {
	EmitHover(event HoverEvent)
}

// enqueue appends an event to the queue drained by the next tick.
func (s *Scene) enqueue(ev Event) {
	s.events = append(s.events, ev)
}

// drainEvents applies every queued event in order and empties the queue.
func (s *Scene) drainEvents() {
	for i := range s.events {
		ev := &s.events[i]
		switch ev.Kind {
		case EventPointerMove:
			s.pointer = Vec2{ev.X, ev.Y}
			s.hasPointer = true
			s.handlePointer(ev.X, ev.Y)
		case EventWheel:
			if sc, ok := s.scroll.(Scroller); ok {
				sc.ScrollBy(ev.Y)
			}
		case EventResize:
			s.applyResize(ev.Width, ev.Height, ev.DPR)
		}
	}
	s.events = s.events[:0]
}

// handlePointer updates hover enter/leave for every element and probes the
// meshes for the hover coordinate.
func (s *Scene) handlePointer(x, y float64) {
	if s.state != StateRunning {
		return
	}
	s.updateEnterLeave(x, y)

	hit, ok := Probe(x, y, s.viewportW, s.viewportH, s.camera, s.meshes)
	if ok {
		s.emit(HoverEvent{
			Type: HoverProbe,
			Item: hit.Index,
			Name: s.items[hit.Index].Element.Name(),
			X:    x,
			Y:    y,
			U:    hit.UV.X,
			V:    hit.UV.Y,
		})
	}
}

// updateEnterLeave starts Enter or Leave tweens for every non-highlighted
// item whose screen box gained or lost the point (x, y) at the current scroll
// offset.
func (s *Scene) updateEnterLeave(x, y float64) {
	for i, it := range s.items {
		if it.Element.Highlighted() {
			continue
		}
		inside := it.ScreenRect(s.frame.ScrollOffset).Contains(x, y)
		if inside == it.hovered {
			continue
		}
		it.hovered = inside
		ev := HoverEvent{Type: HoverLeave, Item: i, Name: it.Element.Name(), X: x, Y: y}
		if inside {
			ev.Type = HoverEnter
			s.hover.Enter(&it.Mesh.Material.Uniforms)
		} else {
			s.hover.Leave(&it.Mesh.Material.Uniforms)
		}
		s.emit(ev)
	}
}

func (s *Scene) emit(ev HoverEvent) {
	if s.sink != nil {
		s.sink.EmitHover(ev)
	}
}
