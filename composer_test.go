package canopy

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestCapDPR(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1, 1},
		{1.5, 1.5},
		{2, 2},
		{3, 2},
		{0, 1},
		{-1, 1},
		{math.NaN(), 1},
	}
	for _, tt := range tests {
		if got := CapDPR(tt.in); got != tt.want {
			t.Errorf("CapDPR(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// recordPass logs calls for order checks.
type recordPass struct {
	name  string
	log   *[]string
	sizes [][2]int
	dpr   float64
	srcs  []*ebiten.Image
	dsts  []*ebiten.Image
}

func (p *recordPass) Render(src, dst *ebiten.Image, u *PostUniforms) {
	*p.log = append(*p.log, p.name)
	p.srcs = append(p.srcs, src)
	p.dsts = append(p.dsts, dst)
}

func (p *recordPass) SetSize(w, h int, dpr float64) {
	p.sizes = append(p.sizes, [2]int{w, h})
	p.dpr = dpr
}

func TestComposerSetSize(t *testing.T) {
	var log []string
	a := &recordPass{name: "a", log: &log}
	c := NewComposer(a)

	c.SetSize(1280, 800, 3)
	w, h, dpr := c.Size()
	if w != 2560 || h != 1600 || dpr != 2 {
		t.Errorf("Size = %dx%d @%v, want 2560x1600 @2", w, h, dpr)
	}
	if b := c.read.Bounds(); b.Dx() != 2560 || b.Dy() != 1600 {
		t.Errorf("read buffer = %v, want 2560x1600", b)
	}
	if len(a.sizes) != 1 || a.dpr != 2 {
		t.Errorf("pass SetSize calls = %v dpr=%v", a.sizes, a.dpr)
	}

	// Unchanged inputs keep the buffers.
	read := c.read
	c.SetSize(1280, 800, 2)
	if c.read != read || len(a.sizes) != 1 {
		t.Error("SetSize with unchanged size reallocated")
	}

	c.SetSize(333.3, 100, 1.5)
	w, h, _ = c.Size()
	if w != 500 || h != 150 {
		t.Errorf("fractional Size = %dx%d, want 500x150", w, h)
	}
}

func TestComposerRenderOrder(t *testing.T) {
	var log []string
	a := &recordPass{name: "a", log: &log}
	b := &recordPass{name: "b", log: &log}
	c := NewComposer(a, b)
	c.SetSize(10, 10, 1)

	target := ebiten.NewImage(10, 10)
	c.Render(target)
	if len(log) != 2 || log[0] != "a" || log[1] != "b" {
		t.Fatalf("order = %v, want [a b]", log)
	}
	if a.srcs[0] != nil {
		t.Error("first pass should get a nil source")
	}
	if b.srcs[0] != a.dsts[0] {
		t.Error("second pass should read the first pass output")
	}
	if b.dsts[0] != target {
		t.Error("last pass should write to the target")
	}
}

func TestComposerRenderBeforeSize(t *testing.T) {
	var log []string
	c := NewComposer(&recordPass{name: "a", log: &log})
	c.Render(ebiten.NewImage(4, 4))
	if len(log) != 0 {
		t.Errorf("render before SetSize ran passes: %v", log)
	}
}

func TestDistortionPassNilSource(t *testing.T) {
	p := NewDistortionPassWithShader(nil)
	p.Render(nil, ebiten.NewImage(4, 4), &PostUniforms{})
}

func TestRenderPassTracksDPR(t *testing.T) {
	p := NewRenderPass(NewPerspectiveCamera(), nil)
	p.SetSize(200, 100, 2)
	if p.dpr != 2 {
		t.Errorf("dpr = %v, want 2", p.dpr)
	}
}
