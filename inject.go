package canopy

// Injected events use logical (CSS pixel) coordinates, the same space real
// cursor input is converted to. One injected event is moved to the event
// queue per frame; while any are pending, real input is skipped.

// InjectMove queues a pointer move to (x, y).
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, Event{Kind: EventPointerMove, X: x, Y: y})
}

// InjectScroll queues a wheel scroll of dy CSS pixels. Positive values
// scroll the page down.
func (s *Scene) InjectScroll(dy float64) {
	s.injectQueue = append(s.injectQueue, Event{Kind: EventWheel, Y: dy})
}

// InjectResize queues a viewport change.
func (s *Scene) InjectResize(w, h, dpr float64) {
	s.injectQueue = append(s.injectQueue, Event{Kind: EventResize, Width: w, Height: h, DPR: dpr})
}

// InjectSweep queues a straight pointer path from (fromX, fromY) to
// (toX, toY) spread over frames moves. Minimum frames is 1.
func (s *Scene) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// processInjectedInput pops one event from the inject queue onto the event
// queue. Returns true if an event was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	ev := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	s.enqueue(ev)
	return true
}
