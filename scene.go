package canopy

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// State is the Scene's lifecycle phase.
type State uint8

const (
	StateIdle    State = iota // waiting for the load gate; nothing is drawn
	StateRunning              // meshes assembled; ticking every frame
)

func (st State) String() string {
	switch st {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", uint8(st))
	}
}

// Scene mirrors a Page as a set of shaded image planes and drives them once
// per tick. It starts idle, assembles its meshes when the load gate reports
// ready, and runs from then on.
type Scene struct {
	// ClearColor is the background color of the rendered frame. Zero keeps
	// it transparent.
	ClearColor Color
	// ScreenshotDir is the directory for screenshot output. Defaults to
	// "screenshots".
	ScreenshotDir string

	page   Page
	gate   LoadGate
	scroll ScrollSource
	sink   EventSink
	debug  bool

	camera     *PerspectiveCamera
	meshShader *ebiten.Shader
	items      []*TrackedItem
	meshes     []*Mesh
	hover      *HoverAnimator
	composer   *Composer
	renderPass *RenderPass

	state     State
	frame     FrameContext
	clock     float64 // ms
	viewportW float64
	viewportH float64
	dpr       float64
	pointer   Vec2

	hasPointer   bool
	placedOffset float64

	events      []Event
	injectQueue []Event
	realInput   bool
	lastCursorX int
	lastCursorY int

	updateFunc      func(fc *FrameContext)
	overlay         *statsOverlay
	stats           debugStats
	screenshotQueue []string
	testRunner      *TestRunner
}

// NewScene creates an idle scene for page. The default scroll source is a
// SmoothScroll and the default load gate is always ready.
func NewScene(page Page) *Scene {
	return &Scene{
		ScreenshotDir: "screenshots",
		page:          page,
		gate:          GateFunc(func() bool { return true }),
		scroll:        NewSmoothScroll(),
		camera:        NewPerspectiveCamera(),
		hover:         NewHoverAnimator(),
		dpr:           1,
	}
}

// SetLoadGate replaces the gate polled while the scene is idle.
func (s *Scene) SetLoadGate(gate LoadGate) { s.gate = gate }

// SetScrollSource replaces the scroll source. If it implements Scroller it
// receives wheel and key input and the scrollable extent.
func (s *Scene) SetScrollSource(src ScrollSource) {
	s.scroll = src
	s.updateScrollLimit()
}

// SetEventSink sets the optional hover event bridge.
func (s *Scene) SetEventSink(sink EventSink) { s.sink = sink }

// SetMeshShader overrides the shader used for every mesh. It must be called
// before the scene is assembled.
func (s *Scene) SetMeshShader(shader *ebiten.Shader) { s.meshShader = shader }

// SetUpdateFunc registers a callback run at the end of every running tick,
// after the uniforms have been written.
func (s *Scene) SetUpdateFunc(fn func(fc *FrameContext)) { s.updateFunc = fn }

// SetDebugMode enables or disables per-frame timing stats on stderr and
// assembly warnings.
func (s *Scene) SetDebugMode(enabled bool) { s.debug = enabled }

// State returns the lifecycle phase.
func (s *Scene) State() State { return s.state }

// Page returns the mirrored page.
func (s *Scene) Page() Page { return s.page }

// Camera returns the scene camera.
func (s *Scene) Camera() *PerspectiveCamera { return s.camera }

// Items returns the tracked items in element order. Empty until assembled.
// The returned slice MUST NOT be mutated.
func (s *Scene) Items() []*TrackedItem { return s.items }

// Hover returns the hover animator.
func (s *Scene) Hover() *HoverAnimator { return s.hover }

// Composer returns the post-processing chain, or nil before assembly.
func (s *Scene) Composer() *Composer { return s.composer }

// Frame returns the frame context of the last tick.
func (s *Scene) Frame() FrameContext { return s.frame }

// Pointer returns the last pointer position in CSS pixels.
func (s *Scene) Pointer() Vec2 { return s.pointer }

// Resize queues a viewport change. It is applied at the start of the next
// tick, before anything reads the viewport.
func (s *Scene) Resize(w, h, dpr float64) {
	s.enqueue(Event{Kind: EventResize, Width: w, Height: h, DPR: dpr})
}

// Update advances the scene by one tick. It returns an error if the load gate
// reports a failure.
func (s *Scene) Update() error {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	if !s.processInjectedInput() && s.realInput {
		s.pollInput()
	}
	return s.tick(1.0 / float64(ebiten.TPS()))
}

// tick runs one frame: drain events, then scroll, placement, hover, time
// and scroll speed, in that order. When the offset moved, enter/leave is
// re-checked at the last pointer position after placement.
func (s *Scene) tick(dt float64) error {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.clock += dt * 1000
	s.drainEvents()

	if s.state == StateIdle {
		if !s.gate.Ready() {
			return s.gateErr()
		}
		if !s.assemble() {
			return nil
		}
	}

	fc := &s.frame
	fc.Time = s.clock
	fc.Delta = dt
	fc.ViewportW = s.viewportW
	fc.ViewportH = s.viewportH
	fc.DPR = s.dpr

	s.scroll.Render()
	fc.ScrollOffset = s.scroll.ScrollToRender()
	fc.ScrollSpeed = s.scroll.SpeedTarget()

	placeAll(s.items, fc)
	// Content moving under a still pointer changes which box holds it.
	if s.hasPointer && fc.ScrollOffset != s.placedOffset {
		s.updateEnterLeave(s.pointer.X, s.pointer.Y)
	}
	s.placedOffset = fc.ScrollOffset
	s.hover.Update(float32(dt))

	for _, it := range s.items {
		it.Mesh.Material.Uniforms.Time = fc.Time
	}
	s.composer.Uniforms.Time = fc.Time
	s.composer.Uniforms.ScrollSpeed = fc.ScrollSpeed

	if s.updateFunc != nil {
		s.updateFunc(fc)
	}
	if s.overlay != nil {
		s.overlay.update(dt, fc)
	}
	if s.debug {
		s.stats.tickTime = time.Since(t0)
	}
	return nil
}

// gateErr surfaces a load failure from gates that can report one.
func (s *Scene) gateErr() error {
	eg, ok := s.gate.(interface{ Err() error })
	if !ok {
		return nil
	}
	if err := eg.Err(); err != nil {
		return fmt.Errorf("canopy: page failed to load: %w", err)
	}
	return nil
}

// assemble builds one tracked item per element and the post chain. It
// returns false when the viewport is still unknown.
func (s *Scene) assemble() bool {
	if s.viewportW <= 0 || s.viewportH <= 0 {
		return false
	}
	s.page.Layout(s.viewportW, s.viewportH)

	shader := s.meshShader
	if shader == nil {
		shader = MeshShader()
	}
	base := NewMaterial(shader)

	elements := s.page.Elements()
	s.items = make([]*TrackedItem, 0, len(elements))
	s.meshes = make([]*Mesh, 0, len(elements))
	for _, el := range elements {
		it := NewTrackedItem(el, base)
		if s.debug {
			debugCheckItem(it)
		}
		s.items = append(s.items, it)
		s.meshes = append(s.meshes, it.Mesh)
	}

	s.renderPass = NewRenderPass(s.camera, s.meshes)
	s.composer = NewComposer(s.renderPass, NewDistortionPass())
	s.composer.SetSize(s.viewportW, s.viewportH, s.dpr)
	s.state = StateRunning
	s.updateScrollLimit()
	if s.debug {
		debugLogf("assembled %d items, viewport %.0fx%.0f @%.2g", len(s.items), s.viewportW, s.viewportH, s.dpr)
	}
	return true
}

// applyResize reconfigures the camera, buffers and layout for a new viewport.
func (s *Scene) applyResize(w, h, dpr float64) {
	s.viewportW = w
	s.viewportH = h
	s.dpr = CapDPR(dpr)
	s.camera.Configure(w, h)
	if s.state != StateRunning {
		return
	}
	s.composer.SetSize(w, h, s.dpr)
	s.page.Layout(w, h)
	for _, it := range s.items {
		it.Refresh()
	}
	s.updateScrollLimit()
}

func (s *Scene) updateScrollLimit() {
	sc, ok := s.scroll.(Scroller)
	if !ok || s.state != StateRunning {
		return
	}
	sc.SetLimit(s.page.Height() - s.viewportH)
}

// Draw renders the scene to screen. Nothing is drawn while idle.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.state != StateRunning {
		return
	}
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.renderPass.ClearColor = s.ClearColor
	s.composer.Render(screen)

	if s.overlay != nil {
		s.overlay.draw(screen, s.dpr)
	}
	s.flushScreenshots(screen)

	if s.debug {
		s.stats.drawTime = time.Since(t0)
		s.stats.meshCount = len(s.meshes)
		s.stats.activeTweens = s.hover.Len()
		s.stats.scrollOffset = s.frame.ScrollOffset
		s.stats.scrollSpeed = s.frame.ScrollSpeed
		s.debugLog(s.stats)
	}
}
