package canopy

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and scene metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	tickTime     time.Duration
	drawTime     time.Duration
	meshCount    int
	activeTweens int
	scrollOffset float64
	scrollSpeed  float64
}

// debugLog prints timing and scene stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[canopy] tick: %v | draw: %v | total: %v\n",
		stats.tickTime, stats.drawTime, stats.tickTime+stats.drawTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[canopy] meshes: %d | hover tweens: %d | scroll: %.1f | speed: %.3f\n",
		stats.meshCount, stats.activeTweens, stats.scrollOffset, stats.scrollSpeed)
}

func debugLogf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[canopy] "+format+"\n", args...)
}

// debugMaxPlaneSize is the element edge length, in CSS pixels, above which a
// warning is printed.
const debugMaxPlaneSize = 8192

// debugCheckItem warns on stderr about elements that will not render.
func debugCheckItem(it *TrackedItem) {
	name := it.Element.Name()
	switch {
	case it.Width <= 0 || it.Height <= 0:
		debugLogf("warning: element %q has zero area (%.0fx%.0f) and will not render", name, it.Width, it.Height)
	case it.Mesh.Material.Uniforms.Texture == nil:
		debugLogf("warning: element %q has no texture", name)
	case it.Width > debugMaxPlaneSize || it.Height > debugMaxPlaneSize:
		debugLogf("warning: element %q is %.0fx%.0f (threshold %d)", name, it.Width, it.Height, debugMaxPlaneSize)
	}
}
