package canopy

import "math"

// Distortion constants shared with distortionShaderSrc.
const (
	distortStrength  = 0.2
	distortNoiseFreq = 10.0
	distortEdgeLo    = 0.6
	distortEdgeHi    = 1.0
	flashLo          = 0.5
	flashHi          = 0.51
)

// Distort evaluates the post pass for one fragment on the CPU. u and v are in
// UV space (v upward), timeMs is the scene clock. It returns the horizontal
// sample coordinate and the blend weight between the white flash (0) and the
// resampled color (1). newU is clamped to [0, 1]; the GPU shader computes the
// same values and also keeps the last texel column inside the source.
func Distort(u, v, scrollSpeed, timeMs float64) (newU, weight float64) {
	area := Falloff(v)
	noise := ValueNoise3(u*distortNoiseFreq, v*distortNoiseFreq, timeMs/1000)
	weight = smoothstep(flashLo, flashHi, noise+area)
	newU = clamp01(u - (u-0.5)*distortStrength*area*scrollSpeed)
	return newU, weight
}

// Falloff returns the vertical distortion factor in [-1, 1]: 1 across the
// lower part of the frame, easing to -1 at the top edge.
func Falloff(v float64) float64 {
	return (1-smoothstep(distortEdgeLo, distortEdgeHi, v))*2 - 1
}

// ValueNoise3 is smoothed lattice noise in [0, 1].
func ValueNoise3(x, y, z float64) float64 {
	ix, iy, iz := math.Floor(x), math.Floor(y), math.Floor(z)
	fx, fy, fz := x-ix, y-iy, z-iz
	wx := fx * fx * (3 - 2*fx)
	wy := fy * fy * (3 - 2*fy)
	wz := fz * fz * (3 - 2*fz)

	x00 := mix(hash3(ix, iy, iz), hash3(ix+1, iy, iz), wx)
	x10 := mix(hash3(ix, iy+1, iz), hash3(ix+1, iy+1, iz), wx)
	x01 := mix(hash3(ix, iy, iz+1), hash3(ix+1, iy, iz+1), wx)
	x11 := mix(hash3(ix, iy+1, iz+1), hash3(ix+1, iy+1, iz+1), wx)
	y0 := mix(x00, x10, wy)
	y1 := mix(x01, x11, wy)
	return mix(y0, y1, wz)
}

func hash3(x, y, z float64) float64 {
	h := math.Sin(x*127.1+y*311.7+z*74.7) * 43758.5453
	return h - math.Floor(h)
}

func smoothstep(edge0, edge1, x float64) float64 {
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

func mix(a, b, t float64) float64 {
	return a + (b-a)*t
}
