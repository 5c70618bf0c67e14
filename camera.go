package canopy

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Camera defaults. With the camera 1.4 units from the z=0 plane, the field of
// view is derived from the viewport height so that one world unit covers one
// CSS pixel at that depth.
const (
	DefaultFOV  = 10.0
	DefaultNear = 0.01
	DefaultFar  = 10.0
	DefaultZ    = 1.4
	degToRad    = math.Pi / 180
	radToDeg    = 180 / math.Pi
	minViewport = 1.0
)

// Ray is a half-line starting at Origin and extending along Direction, which
// is unit length.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// At returns the point along the ray at parameter t.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// PerspectiveCamera is a pinhole camera sitting on the Z axis at distance Z
// and looking toward the origin. Configure keeps the vertical field of view
// matched to the viewport height so that the z=0 plane maps 1:1 onto pixels.
type PerspectiveCamera struct {
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Aspect is the viewport width divided by its height.
	Aspect float64
	// Near and Far are the clipping plane distances.
	Near, Far float64
	// Z is the camera's distance from the z=0 plane along the view axis.
	Z float64

	viewportW, viewportH float64

	projection    f64.Mat4
	invProjection f64.Mat4
	view          f64.Mat4
	dirty         bool
}

// NewPerspectiveCamera creates a camera with the default parameters. Call
// Configure before use.
func NewPerspectiveCamera() *PerspectiveCamera {
	return &PerspectiveCamera{
		FOV:    DefaultFOV,
		Aspect: 1,
		Near:   DefaultNear,
		Far:    DefaultFar,
		Z:      DefaultZ,
		dirty:  true,
	}
}

// Configure sets the aspect ratio and recomputes the vertical field of view
// for the given viewport size. Calling it repeatedly with the same size
// yields the same state.
func (c *PerspectiveCamera) Configure(viewportW, viewportH float64) {
	viewportW = math.Max(viewportW, minViewport)
	viewportH = math.Max(viewportH, minViewport)
	c.viewportW = viewportW
	c.viewportH = viewportH
	c.Aspect = viewportW / viewportH
	c.FOV = FOVForHeight(viewportH, c.Z)
	c.dirty = true
}

// SetZ moves the camera along the view axis and re-derives the field of view
// from the last configured viewport height.
func (c *PerspectiveCamera) SetZ(z float64) {
	c.Z = z
	if c.viewportH > 0 {
		c.FOV = FOVForHeight(c.viewportH, z)
	}
	c.dirty = true
}

// Viewport returns the size last passed to Configure.
func (c *PerspectiveCamera) Viewport() (w, h float64) {
	return c.viewportW, c.viewportH
}

// MarkDirty forces a recomputation of the projection matrix. Call this after
// writing the exported fields directly.
func (c *PerspectiveCamera) MarkDirty() {
	c.dirty = true
}

// FOVForHeight returns the vertical field of view, in degrees, at which a
// plane of the given height at distance z exactly fills the view.
func FOVForHeight(height, z float64) float64 {
	return 2 * math.Atan(height/2/z) * radToDeg
}

// update recomputes the cached matrices if dirty.
func (c *PerspectiveCamera) update() {
	if !c.dirty {
		return
	}
	c.dirty = false

	f := 1 / math.Tan(c.FOV*degToRad/2)
	n, fa := c.Near, c.Far
	c.projection = f64.Mat4{
		f / c.Aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (fa + n) / (n - fa), 2 * fa * n / (n - fa),
		0, 0, -1, 0,
	}
	// Closed-form inverse of the matrix above.
	a := c.projection[10]
	b := c.projection[11]
	c.invProjection = f64.Mat4{
		c.Aspect / f, 0, 0, 0,
		0, 1 / f, 0, 0,
		0, 0, 0, -1,
		0, 0, 1 / b, a / b,
	}
	c.view = f64.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, -c.Z,
		0, 0, 0, 1,
	}
}

// ProjectionMatrix returns the row-major projection matrix, recomputing it
// first if any parameter changed.
func (c *PerspectiveCamera) ProjectionMatrix() f64.Mat4 {
	c.update()
	return c.projection
}

// ViewMatrix returns the row-major world-to-camera matrix.
func (c *PerspectiveCamera) ViewMatrix() f64.Mat4 {
	c.update()
	return c.view
}

// Project maps a world-space point to viewport pixel coordinates (origin
// top-left, Y down). ok is false for points at or behind the camera.
func (c *PerspectiveCamera) Project(p Vec3) (sx, sy float64, ok bool) {
	c.update()
	eye := mulMat4(c.view, f64.Vec4{p.X, p.Y, p.Z, 1})
	clip := mulMat4(c.projection, eye)
	if clip[3] <= 0 {
		return 0, 0, false
	}
	nx := clip[0] / clip[3]
	ny := clip[1] / clip[3]
	sx = (nx + 1) / 2 * c.viewportW
	sy = (1 - ny) / 2 * c.viewportH
	return sx, sy, true
}

// RayFromNDC returns the world-space ray from the camera through the given
// clip-space point, with x and y in [-1, 1] and y pointing up.
func (c *PerspectiveCamera) RayFromNDC(x, y float64) Ray {
	c.update()
	// Unproject a point on the far side of the near plane, then take the
	// direction from the camera origin. The view matrix is a pure translation.
	eye := mulMat4(c.invProjection, f64.Vec4{x, y, 0.5, 1})
	if eye[3] != 0 {
		eye[0] /= eye[3]
		eye[1] /= eye[3]
		eye[2] /= eye[3]
	}
	origin := Vec3{0, 0, c.Z}
	dir := Vec3{eye[0], eye[1], eye[2]}.Normalize()
	return Ray{Origin: origin, Direction: dir}
}

// RayFromScreen converts viewport pixel coordinates to clip space and returns
// the ray through that point.
func (c *PerspectiveCamera) RayFromScreen(sx, sy float64) Ray {
	x, y := ScreenToNDC(sx, sy, c.viewportW, c.viewportH)
	return c.RayFromNDC(x, y)
}

// ScreenToNDC normalizes pointer coordinates to clip space. Screen Y grows
// downward while clip Y grows upward, hence the sign flip.
func ScreenToNDC(sx, sy, w, h float64) (x, y float64) {
	x = sx/w*2 - 1
	y = -(sy/h*2 - 1)
	return x, y
}

// mulMat4 returns m * v for a row-major matrix.
func mulMat4(m f64.Mat4, v f64.Vec4) f64.Vec4 {
	return f64.Vec4{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2] + m[3]*v[3],
		m[4]*v[0] + m[5]*v[1] + m[6]*v[2] + m[7]*v[3],
		m[8]*v[0] + m[9]*v[1] + m[10]*v[2] + m[11]*v[3],
		m[12]*v[0] + m[13]*v[1] + m[14]*v[2] + m[15]*v[3],
	}
}
