package canopy

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// statsOverlay shows FPS, TPS and the scroll state in the top-left corner.
// Its text is refreshed every ~0.5 seconds.
type statsOverlay struct {
	img        *ebiten.Image
	lastUpdate float64
	op         ebiten.DrawImageOptions
}

func newStatsOverlay() *statsOverlay {
	// 140x64 is enough for four DebugPrint lines
	return &statsOverlay{img: ebiten.NewImage(140, 64)}
}

// EnableStatsOverlay turns on the FPS and scroll overlay.
func (s *Scene) EnableStatsOverlay() {
	if s.overlay == nil {
		s.overlay = newStatsOverlay()
	}
}

func (o *statsOverlay) update(dt float64, fc *FrameContext) {
	o.lastUpdate += dt
	if o.lastUpdate < 0.5 {
		return
	}
	o.lastUpdate = 0

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nScroll: %.0f\nSpeed: %.2f",
		ebiten.ActualFPS(), ebiten.ActualTPS(), fc.ScrollOffset, fc.ScrollSpeed))
}

func (o *statsOverlay) draw(screen *ebiten.Image, dpr float64) {
	o.op.GeoM.Reset()
	o.op.GeoM.Scale(dpr, dpr)
	screen.DrawImage(o.img, &o.op)
}
