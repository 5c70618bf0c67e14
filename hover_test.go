package canopy

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestHoverAnimatorDefaults(t *testing.T) {
	a := NewHoverAnimator()
	if a.Duration != 1 {
		t.Errorf("Duration = %v, want 1", a.Duration)
	}
	if a.Ease == nil {
		t.Error("Ease should default to a cubic ease-out")
	}
}

func TestHoverEnterReachesOne(t *testing.T) {
	a := NewHoverAnimator()
	u := &MeshUniforms{}
	a.Enter(u)
	for range 30 {
		a.Update(1.0 / 60)
	}
	if u.HoverState <= 0 || u.HoverState >= 1 {
		t.Errorf("mid-tween HoverState = %v, want in (0,1)", u.HoverState)
	}
	for range 40 {
		a.Update(1.0 / 60)
	}
	if !approxEqual(u.HoverState, 1, epsilon) {
		t.Errorf("HoverState = %v, want 1", u.HoverState)
	}
	if a.Active(u) {
		t.Error("finished tween should be dropped")
	}
}

func TestHoverEaseOutIsFrontLoaded(t *testing.T) {
	a := NewHoverAnimator()
	u := &MeshUniforms{}
	a.Enter(u)
	a.Update(0.5)
	// Cubic ease-out at half time: 1 - 0.5^3 = 0.875.
	if !approxEqual(u.HoverState, 0.875, 1e-4) {
		t.Errorf("HoverState at t=0.5 = %v, want 0.875", u.HoverState)
	}
}

func TestHoverLeaveMidTweenConvergesToZero(t *testing.T) {
	a := NewHoverAnimator()
	u := &MeshUniforms{}
	a.Enter(u)
	a.Update(0.3)
	mid := u.HoverState
	if mid <= 0 {
		t.Fatalf("HoverState after 0.3s = %v, want > 0", mid)
	}

	a.Leave(u)
	if a.Len() != 1 {
		t.Fatalf("Len = %d, want 1 (leave replaces enter)", a.Len())
	}
	a.Update(0.01)
	if u.HoverState > mid {
		t.Errorf("leave tween moved upward: %v -> %v", mid, u.HoverState)
	}
	for range 100 {
		a.Update(1.0 / 60)
	}
	if !approxEqual(u.HoverState, 0, epsilon) {
		t.Errorf("HoverState = %v, want 0", u.HoverState)
	}
	if a.Len() != 0 {
		t.Errorf("Len = %d, want 0", a.Len())
	}
}

func TestHoverIndependentMeshes(t *testing.T) {
	a := NewHoverAnimator()
	u1, u2 := &MeshUniforms{}, &MeshUniforms{}
	a.Enter(u1)
	a.Update(0.25)
	a.Enter(u2)
	a.Update(0.25)
	if u1.HoverState <= u2.HoverState {
		t.Errorf("u1 started earlier: %v <= %v", u1.HoverState, u2.HoverState)
	}
	if a.Len() != 2 {
		t.Errorf("Len = %d, want 2", a.Len())
	}
}

func TestHoverCustomEase(t *testing.T) {
	a := NewHoverAnimator()
	a.Ease = ease.Linear
	a.Duration = 2
	u := &MeshUniforms{}
	a.Enter(u)
	a.Update(0.5)
	if !approxEqual(u.HoverState, 0.25, 1e-4) {
		t.Errorf("linear HoverState = %v, want 0.25", u.HoverState)
	}
}
