package canopy

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// MaxDPR bounds the device pixel ratio used for offscreen buffers.
const MaxDPR = 2.0

// CapDPR clamps a device scale factor to (0, MaxDPR]. Non-positive values
// fall back to 1.
func CapDPR(scale float64) float64 {
	if scale <= 0 || math.IsNaN(scale) {
		return 1
	}
	return math.Min(scale, MaxDPR)
}

// PostUniforms are the chain-level shader inputs. One instance per Composer.
// The previous pass output is wired by the Composer itself.
type PostUniforms struct {
	ScrollSpeed float64
	Time        float64
}

// Pass is one full-frame step of the post-processing chain.
type Pass interface {
	// Render reads src and writes the pass output into dst. src is nil for
	// the first pass.
	Render(src, dst *ebiten.Image, u *PostUniforms)
	// SetSize is called whenever the chain's buffers are reallocated.
	SetSize(width, height int, dpr float64)
}

// --- RenderPass ---

// RenderPass draws every mesh of the scene, producing the base color buffer.
type RenderPass struct {
	Camera     *PerspectiveCamera
	Meshes     []*Mesh
	ClearColor Color
	dpr        float64
}

// NewRenderPass creates the base scene pass.
func NewRenderPass(cam *PerspectiveCamera, meshes []*Mesh) *RenderPass {
	return &RenderPass{Camera: cam, Meshes: meshes, dpr: 1}
}

// Render clears dst and draws all meshes in order.
func (p *RenderPass) Render(_, dst *ebiten.Image, _ *PostUniforms) {
	dst.Clear()
	if p.ClearColor.A > 0 {
		dst.Fill(p.ClearColor.toRGBA())
	}
	for _, m := range p.Meshes {
		m.draw(dst, p.Camera, p.dpr)
	}
}

// SetSize records the device pixel ratio used to scale projected vertices.
func (p *RenderPass) SetSize(_, _ int, dpr float64) {
	p.dpr = dpr
}

// --- DistortionPass ---

// DistortionPass runs the scroll distortion shader over the previous buffer.
type DistortionPass struct {
	Shader   *ebiten.Shader
	uniforms map[string]any
	shaderOp ebiten.DrawRectShaderOptions
}

// NewDistortionPass creates the distortion pass with the built-in shader.
func NewDistortionPass() *DistortionPass {
	return NewDistortionPassWithShader(DistortionShader())
}

// NewDistortionPassWithShader creates a distortion pass running a custom Kage
// program. The program receives ScrollSpeed and Time uniforms.
func NewDistortionPassWithShader(shader *ebiten.Shader) *DistortionPass {
	return &DistortionPass{
		Shader:   shader,
		uniforms: make(map[string]any, 2),
	}
}

// Render draws src through the shader into dst.
func (p *DistortionPass) Render(src, dst *ebiten.Image, u *PostUniforms) {
	if src == nil {
		return
	}
	p.uniforms["ScrollSpeed"] = float32(u.ScrollSpeed)
	p.uniforms["Time"] = float32(u.Time)
	bounds := src.Bounds()
	p.shaderOp.Images[0] = src
	p.shaderOp.Uniforms = p.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), p.Shader, &p.shaderOp)
}

// SetSize is a no-op; the pass holds no buffers of its own.
func (p *DistortionPass) SetSize(int, int, float64) {}

// --- Composer ---

// Composer runs a fixed, ordered list of passes. Intermediate results
// ping-pong between two offscreen buffers sized in device pixels; the last
// pass writes straight to the target image.
type Composer struct {
	Uniforms PostUniforms

	passes []Pass
	read   *ebiten.Image
	write  *ebiten.Image
	width  int
	height int
	dpr    float64
}

// NewComposer creates a chain over the given passes. The list is fixed for
// the lifetime of the composer.
func NewComposer(passes ...Pass) *Composer {
	return &Composer{passes: passes, dpr: 1}
}

// Passes returns the pass list. The returned slice MUST NOT be mutated.
func (c *Composer) Passes() []Pass {
	return c.passes
}

// Size returns the buffer size in device pixels and the capped pixel ratio.
func (c *Composer) Size() (w, h int, dpr float64) {
	return c.width, c.height, c.dpr
}

// SetSize resizes every buffer to the logical viewport scaled by the capped
// device pixel ratio. Calling it with unchanged inputs keeps the existing
// buffers.
func (c *Composer) SetSize(viewportW, viewportH, dpr float64) {
	dpr = CapDPR(dpr)
	w := max(int(math.Ceil(viewportW*dpr)), 1)
	h := max(int(math.Ceil(viewportH*dpr)), 1)
	if w == c.width && h == c.height && dpr == c.dpr && c.read != nil {
		return
	}
	c.width, c.height, c.dpr = w, h, dpr
	c.read = reallocate(c.read, w, h)
	c.write = reallocate(c.write, w, h)
	for _, p := range c.passes {
		p.SetSize(w, h, dpr)
	}
}

func reallocate(img *ebiten.Image, w, h int) *ebiten.Image {
	if img != nil {
		img.Deallocate()
	}
	return ebiten.NewImageWithOptions(image.Rect(0, 0, w, h), &ebiten.NewImageOptions{Unmanaged: true})
}

// Render runs every pass in order. The final pass renders into target.
func (c *Composer) Render(target *ebiten.Image) {
	if len(c.passes) == 0 || c.read == nil {
		return
	}
	var src *ebiten.Image
	for i, p := range c.passes {
		if i == len(c.passes)-1 {
			p.Render(src, target, &c.Uniforms)
			return
		}
		c.write.Clear()
		p.Render(src, c.write, &c.Uniforms)
		c.read, c.write = c.write, c.read
		src = c.read
	}
}
