package canopy

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Scroll step sizes in CSS pixels.
const (
	wheelStep = 100.0
	keyStep   = 80.0
	pageStep  = 0.9 // fraction of the viewport height
)

// pollInput reads the cursor, wheel and scroll keys and queues the matching
// events. Cursor positions arrive in device pixels and are converted to CSS
// pixels.
func (s *Scene) pollInput() {
	cx, cy := ebiten.CursorPosition()
	if cx != s.lastCursorX || cy != s.lastCursorY {
		s.lastCursorX, s.lastCursorY = cx, cy
		s.enqueue(Event{Kind: EventPointerMove, X: float64(cx) / s.dpr, Y: float64(cy) / s.dpr})
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		s.enqueue(Event{Kind: EventWheel, Y: -wy * wheelStep})
	}

	if dy := s.keyScroll(); dy != 0 {
		s.enqueue(Event{Kind: EventWheel, Y: dy})
	}
}

// keyScroll returns the scroll delta requested by keys pressed this frame.
func (s *Scene) keyScroll() float64 {
	page := s.viewportH * pageStep
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		return keyStep
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		return -keyStep
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		return page
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		return -page
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if shift {
			return -page
		}
		return page
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		return -s.page.Height()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		return s.page.Height()
	}
	return 0
}
