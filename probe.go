package canopy

import "math"

// Hit describes the nearest mesh under the pointer.
type Hit struct {
	// Index is the position of the hit mesh in the candidate slice.
	Index int
	// Distance is the ray parameter at the intersection.
	Distance float64
	Point    Vec3
	UV       Vec2
}

// IntersectPlane intersects the ray with the mesh's flat plane. Vertex
// displacement is ignored. t is the ray parameter and is never negative.
func IntersectPlane(r Ray, m *Mesh) (t float64, uv Vec2, ok bool) {
	if r.Direction.Z == 0 {
		return 0, Vec2{}, false
	}
	t = (m.Position.Z - r.Origin.Z) / r.Direction.Z
	if t < 0 || math.IsInf(t, 0) || math.IsNaN(t) {
		return 0, Vec2{}, false
	}
	uv, ok = m.HitUV(r.At(t))
	return t, uv, ok
}

// Probe casts a ray from the camera through the pointer and tests it against
// every candidate mesh. The nearest hit along the ray wins; its HoverCoord is
// set to the hit UV. On a miss nothing is written and each mesh keeps the
// coordinate of its last hit.
func Probe(px, py, viewportW, viewportH float64, cam *PerspectiveCamera, meshes []*Mesh) (Hit, bool) {
	x, y := ScreenToNDC(px, py, viewportW, viewportH)
	ray := cam.RayFromNDC(x, y)

	best := Hit{Index: -1, Distance: math.Inf(1)}
	for i, m := range meshes {
		t, uv, ok := IntersectPlane(ray, m)
		if !ok || t >= best.Distance {
			continue
		}
		best = Hit{Index: i, Distance: t, Point: ray.At(t), UV: uv}
	}
	if best.Index < 0 {
		return Hit{}, false
	}
	meshes[best.Index].Material.Uniforms.HoverCoord = best.UV
	return best, true
}
