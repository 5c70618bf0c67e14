package canopy

import "github.com/hajimehoshi/ebiten/v2"

// --- Kage shader sources ---
// All shaders use //kage:unit pixels. Ebitengine uses premultiplied alpha.
// UV space follows the plane convention: u grows to the right and v grows
// upward, so image-space Y is flipped on the way in and out.

// meshShaderSrc shades one image plane. Coord is the last ray hit in UV space
// and HoverState fades in a ripple around it along with full color.
const meshShaderSrc = `//kage:unit pixels
package main

var Time float
var Coord vec2
var HoverState float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	p := (src - origin) / size
	uv := vec2(p.x, 1-p.y)

	toCoord := uv - Coord
	d := length(toCoord)
	reach := 1 - smoothstep(0.0, 0.5, d)
	ripple := sin(d*30.0-Time/150.0) * 0.006 * HoverState * reach
	suv := uv + normalize(toCoord+vec2(0.0001))*ripple
	suv = clamp(suv, vec2(0), vec2(1))

	c := imageSrc0At(vec2(suv.x, 1-suv.y)*size + origin)
	gray := dot(c.rgb, vec3(0.299, 0.587, 0.114))
	rgb := mix(vec3(gray), c.rgb, 0.35+0.65*HoverState)
	return vec4(rgb, c.a) * color
}
`

// distortionShaderSrc is the scroll-reactive post pass. The horizontal sample
// coordinate is pushed away from the center in proportion to ScrollSpeed and
// a falloff that is strongest in the lower part of the frame. A noisy edge
// near the top blends toward a white flash. Keep in sync with Distort.
const distortionShaderSrc = `//kage:unit pixels
package main

var ScrollSpeed float
var Time float

func hash(p vec3) float {
	return fract(sin(dot(p, vec3(127.1, 311.7, 74.7))) * 43758.5453)
}

func valueNoise(p vec3) float {
	i := floor(p)
	f := fract(p)
	w := f * f * (vec3(3) - 2*f)

	x00 := mix(hash(i), hash(i+vec3(1, 0, 0)), w.x)
	x10 := mix(hash(i+vec3(0, 1, 0)), hash(i+vec3(1, 1, 0)), w.x)
	x01 := mix(hash(i+vec3(0, 0, 1)), hash(i+vec3(1, 0, 1)), w.x)
	x11 := mix(hash(i+vec3(0, 1, 1)), hash(i+vec3(1, 1, 1)), w.x)
	y0 := mix(x00, x10, w.y)
	y1 := mix(x01, x11, w.y)
	return mix(y0, y1, w.z)
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	p := (src - origin) / size
	u := p.x
	v := 1 - p.y

	area := (1-smoothstep(0.6, 1.0, v))*2 - 1
	noise := valueNoise(vec3(u*10, v*10, Time/1000))
	n := smoothstep(0.5, 0.51, noise+area)

	newU := u - (u-0.5)*0.2*area*ScrollSpeed
	newU = clamp(newU, 0, 1-1/size.x)
	c := imageSrc0At(vec2(newU, p.y)*size + origin)
	return mix(vec4(1), c, n)
}
`

// --- Lazy shader compilation (no sync.Once, canopy is single-threaded) ---

var (
	meshShader       *ebiten.Shader
	distortionShader *ebiten.Shader
)

// MeshShader returns the default image-plane shader, compiling it on first use.
func MeshShader() *ebiten.Shader {
	if meshShader == nil {
		s, err := ebiten.NewShader([]byte(meshShaderSrc))
		if err != nil {
			panic("canopy: failed to compile mesh shader: " + err.Error())
		}
		meshShader = s
	}
	return meshShader
}

// DistortionShader returns the scroll distortion post shader, compiling it on
// first use.
func DistortionShader() *ebiten.Shader {
	if distortionShader == nil {
		s, err := ebiten.NewShader([]byte(distortionShaderSrc))
		if err != nil {
			panic("canopy: failed to compile distortion shader: " + err.Error())
		}
		distortionShader = s
	}
	return distortionShader
}
