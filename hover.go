package canopy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultHoverDuration is the length of a hover tween in seconds.
const DefaultHoverDuration = 1.0

// HoverAnimator eases each mesh's HoverState toward 1 on enter and 0 on
// leave. There is no global animation manager; the Scene calls Update once
// per tick.
type HoverAnimator struct {
	Duration float32
	Ease     ease.TweenFunc

	active map[*MeshUniforms]*gween.Tween
}

// NewHoverAnimator creates an animator using a one-second cubic ease-out.
func NewHoverAnimator() *HoverAnimator {
	return &HoverAnimator{
		Duration: DefaultHoverDuration,
		Ease:     ease.OutCubic,
		active:   make(map[*MeshUniforms]*gween.Tween),
	}
}

// Enter starts a tween of u.HoverState toward 1, replacing any tween already
// running on u.
func (a *HoverAnimator) Enter(u *MeshUniforms) {
	a.to(u, 1)
}

// Leave starts a tween of u.HoverState toward 0, replacing any tween already
// running on u.
func (a *HoverAnimator) Leave(u *MeshUniforms) {
	a.to(u, 0)
}

func (a *HoverAnimator) to(u *MeshUniforms, target float32) {
	a.active[u] = gween.New(float32(u.HoverState), target, a.Duration, a.Ease)
}

// Active reports whether u has a tween in flight.
func (a *HoverAnimator) Active(u *MeshUniforms) bool {
	_, ok := a.active[u]
	return ok
}

// Len returns the number of tweens in flight.
func (a *HoverAnimator) Len() int {
	return len(a.active)
}

// Update advances every tween by dt seconds and writes the values back.
// Finished tweens are dropped.
func (a *HoverAnimator) Update(dt float32) {
	for u, tw := range a.active {
		val, done := tw.Update(dt)
		u.HoverState = float64(val)
		if done {
			delete(a.active, u)
		}
	}
}
