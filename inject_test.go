package canopy

import "testing"

func TestInjectOnePerFrame(t *testing.T) {
	s := NewScene(newTestPage())
	s.InjectMove(10, 20)
	s.InjectScroll(100)
	if len(s.injectQueue) != 2 {
		t.Fatalf("inject queue = %d, want 2", len(s.injectQueue))
	}

	if !s.processInjectedInput() {
		t.Fatal("expected an event to be consumed")
	}
	if len(s.events) != 1 || s.events[0].Kind != EventPointerMove || s.events[0].X != 10 || s.events[0].Y != 20 {
		t.Errorf("events = %+v, want one move to (10,20)", s.events)
	}
	if len(s.injectQueue) != 1 {
		t.Errorf("inject queue = %d, want 1", len(s.injectQueue))
	}

	s.processInjectedInput()
	if len(s.events) != 2 || s.events[1].Kind != EventWheel || s.events[1].Y != 100 {
		t.Errorf("events = %+v, want a wheel of 100 second", s.events)
	}
	if s.processInjectedInput() {
		t.Error("empty inject queue should report false")
	}
}

func TestInjectSweep(t *testing.T) {
	s := NewScene(newTestPage())
	s.InjectSweep(0, 100, 400, 300, 4)
	if len(s.injectQueue) != 4 {
		t.Fatalf("inject queue = %d, want 4", len(s.injectQueue))
	}
	want := []Vec2{{100, 150}, {200, 200}, {300, 250}, {400, 300}}
	for i, ev := range s.injectQueue {
		if ev.X != want[i].X || ev.Y != want[i].Y {
			t.Errorf("move %d = (%v,%v), want %v", i, ev.X, ev.Y, want[i])
		}
	}

	s.injectQueue = s.injectQueue[:0]
	s.InjectSweep(0, 0, 50, 50, 0)
	if len(s.injectQueue) != 1 || s.injectQueue[0].X != 50 {
		t.Errorf("zero-frame sweep = %+v, want a single move to the end", s.injectQueue)
	}
}

func TestInjectResize(t *testing.T) {
	s, _ := runningScene(t)
	s.InjectResize(640, 480, 1)
	if err := s.Update(); err != nil {
		t.Fatal(err)
	}
	if w, h := s.Camera().Viewport(); w != 640 || h != 480 {
		t.Errorf("camera viewport = %vx%v, want 640x480", w, h)
	}
}

func TestInjectedMoveHovers(t *testing.T) {
	s, _ := runningScene(t)
	sink := &recordSink{}
	s.SetEventSink(sink)
	s.InjectMove(150, 450)
	if err := s.Update(); err != nil {
		t.Fatal(err)
	}
	if sink.count(HoverEnter) != 1 {
		t.Errorf("enter count = %d, want 1", sink.count(HoverEnter))
	}
	if s.Pointer() != (Vec2{150, 450}) {
		t.Errorf("pointer = %v, want (150,450)", s.Pointer())
	}
}
