package canopy

import (
	"math"
	"testing"
)

const epsilon = 1e-6

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestCameraDefaults(t *testing.T) {
	cam := NewPerspectiveCamera()
	if cam.FOV != DefaultFOV {
		t.Errorf("FOV = %v, want %v", cam.FOV, DefaultFOV)
	}
	if cam.Near != 0.01 || cam.Far != 10 {
		t.Errorf("Near/Far = %v/%v, want 0.01/10", cam.Near, cam.Far)
	}
	if cam.Z != 1.4 {
		t.Errorf("Z = %v, want 1.4", cam.Z)
	}
}

func TestFOVForHeight(t *testing.T) {
	tests := []struct {
		height, z, want float64
	}{
		{2.8, 1.4, 90},
		{600, 1.4, 2 * math.Atan(300/1.4) * 180 / math.Pi},
		{0, 1.4, 0},
	}
	for _, tt := range tests {
		got := FOVForHeight(tt.height, tt.z)
		if !approxEqual(got, tt.want, epsilon) {
			t.Errorf("FOVForHeight(%v, %v) = %v, want %v", tt.height, tt.z, got, tt.want)
		}
	}
}

func TestCameraConfigure(t *testing.T) {
	cam := NewPerspectiveCamera()
	cam.Configure(800, 600)
	if !approxEqual(cam.Aspect, 800.0/600.0, epsilon) {
		t.Errorf("Aspect = %v, want %v", cam.Aspect, 800.0/600.0)
	}
	if !approxEqual(cam.FOV, FOVForHeight(600, 1.4), epsilon) {
		t.Errorf("FOV = %v, want %v", cam.FOV, FOVForHeight(600, 1.4))
	}
	w, h := cam.Viewport()
	if w != 800 || h != 600 {
		t.Errorf("Viewport = %vx%v, want 800x600", w, h)
	}
}

func TestCameraConfigureIdempotent(t *testing.T) {
	cam := NewPerspectiveCamera()
	cam.Configure(1024, 768)
	fov, aspect, proj := cam.FOV, cam.Aspect, cam.ProjectionMatrix()

	cam.Configure(1024, 768)
	if cam.FOV != fov || cam.Aspect != aspect {
		t.Errorf("second Configure changed FOV/Aspect: %v/%v vs %v/%v", cam.FOV, cam.Aspect, fov, aspect)
	}
	if cam.ProjectionMatrix() != proj {
		t.Error("second Configure changed the projection matrix")
	}
}

func TestCameraConfigureZeroViewport(t *testing.T) {
	cam := NewPerspectiveCamera()
	cam.Configure(0, 0)
	m := cam.ProjectionMatrix()
	for i, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("projection[%d] = %v for zero viewport", i, v)
		}
	}
}

func TestCameraPixelPerfectRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
	}{
		{"landscape", 1280, 800},
		{"portrait", 390, 844},
		{"square", 500, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewPerspectiveCamera()
			cam.Configure(tt.w, tt.h)
			points := []Vec2{{0, 0}, {100, -50}, {-tt.w / 2, tt.h / 2}, {tt.w / 2, -tt.h / 2}}
			for _, p := range points {
				sx, sy, ok := cam.Project(Vec3{p.X, p.Y, 0})
				if !ok {
					t.Fatalf("Project(%v) not visible", p)
				}
				wantX := p.X + tt.w/2
				wantY := tt.h/2 - p.Y
				if !approxEqual(sx, wantX, 1e-6) || !approxEqual(sy, wantY, 1e-6) {
					t.Errorf("Project(%v) = (%v,%v), want (%v,%v)", p, sx, sy, wantX, wantY)
				}
			}
		})
	}
}

func TestCameraProjectBehind(t *testing.T) {
	cam := NewPerspectiveCamera()
	cam.Configure(800, 600)
	if _, _, ok := cam.Project(Vec3{0, 0, 2}); ok {
		t.Error("point behind the camera should not be visible")
	}
}

func TestCameraRayHitsPlaneUnderPointer(t *testing.T) {
	cam := NewPerspectiveCamera()
	cam.Configure(800, 600)

	tests := []struct {
		sx, sy float64
		wantX  float64
		wantY  float64
	}{
		{400, 300, 0, 0},
		{0, 0, -400, 300},
		{800, 600, 400, -300},
		{500, 250, 100, 50},
	}
	for _, tt := range tests {
		r := cam.RayFromScreen(tt.sx, tt.sy)
		if !approxEqual(r.Direction.Len(), 1, epsilon) {
			t.Errorf("direction length = %v, want 1", r.Direction.Len())
		}
		tHit := -r.Origin.Z / r.Direction.Z
		p := r.At(tHit)
		if !approxEqual(p.X, tt.wantX, 1e-6) || !approxEqual(p.Y, tt.wantY, 1e-6) {
			t.Errorf("ray through (%v,%v) hits (%v,%v), want (%v,%v)", tt.sx, tt.sy, p.X, p.Y, tt.wantX, tt.wantY)
		}
	}
}

func TestScreenToNDC(t *testing.T) {
	x, y := ScreenToNDC(0, 0, 800, 600)
	if x != -1 || y != 1 {
		t.Errorf("top-left = (%v,%v), want (-1,1)", x, y)
	}
	x, y = ScreenToNDC(800, 600, 800, 600)
	if x != 1 || y != -1 {
		t.Errorf("bottom-right = (%v,%v), want (1,-1)", x, y)
	}
	x, y = ScreenToNDC(400, 300, 800, 600)
	if x != 0 || y != 0 {
		t.Errorf("center = (%v,%v), want (0,0)", x, y)
	}
}

func TestCameraSetZKeepsPixelMapping(t *testing.T) {
	cam := NewPerspectiveCamera()
	cam.Configure(800, 600)
	cam.SetZ(3)
	sx, sy, ok := cam.Project(Vec3{100, 100, 0})
	if !ok || !approxEqual(sx, 500, 1e-6) || !approxEqual(sy, 200, 1e-6) {
		t.Errorf("Project after SetZ = (%v,%v,%v), want (500,200,true)", sx, sy, ok)
	}
}
