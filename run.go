package canopy

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int // logical window width; default 1280
	Height int // logical window height; default 800
	// ShowFPS draws the FPS and scroll overlay.
	ShowFPS bool
	// Debug enables the scene's stderr stats.
	Debug bool
}

// Run opens a resizable window and drives scene until the window closes or
// Update returns an error. Real cursor, wheel and key input is enabled.
func Run(scene *Scene, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 {
		w = 1280
	}
	if h <= 0 {
		h = 800
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if cfg.ShowFPS {
		scene.EnableStatsOverlay()
	}
	if cfg.Debug {
		scene.SetDebugMode(true)
	}
	scene.realInput = true
	return ebiten.RunGame(&game{scene: scene})
}

// game adapts a Scene to ebiten.Game. It renders at device resolution and
// reports size or scale changes to the scene as resize events.
type game struct {
	scene      *Scene
	outW, outH int
	dpr        float64
	screenW    int
	screenH    int
}

func (g *game) Update() error {
	return g.scene.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	dpr := CapDPR(ebiten.Monitor().DeviceScaleFactor())
	if outsideWidth != g.outW || outsideHeight != g.outH || dpr != g.dpr {
		g.outW, g.outH, g.dpr = outsideWidth, outsideHeight, dpr
		g.screenW = int(math.Ceil(float64(outsideWidth) * dpr))
		g.screenH = int(math.Ceil(float64(outsideHeight) * dpr))
		g.scene.Resize(float64(outsideWidth), float64(outsideHeight), dpr)
	}
	return max(g.screenW, 1), max(g.screenH, 1)
}
