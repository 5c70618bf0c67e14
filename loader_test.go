package canopy

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"testing/fstest"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestImageLoader(t *testing.T) {
	fsys := fstest.MapFS{
		"img/a.png": {Data: encodePNG(t, 40, 20)},
		"img/b.png": {Data: encodePNG(t, 10, 30)},
	}
	a := NewPageImage("a", "img/a.png")
	b := NewPageImage("b", "img/b.png")
	l := NewImageLoader(fsys, []*PageImage{a, b})

	if err := l.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if a.Texture() != nil {
		t.Error("textures must not be attached before Ready")
	}
	if !l.Ready() {
		t.Fatal("Ready = false after decoding finished")
	}
	if a.Texture() == nil || b.Texture() == nil {
		t.Fatal("textures not attached")
	}
	if a.naturalW != 40 || a.naturalH != 20 || b.naturalW != 10 || b.naturalH != 30 {
		t.Errorf("natural sizes = %dx%d, %dx%d", a.naturalW, a.naturalH, b.naturalW, b.naturalH)
	}
	if !l.Ready() {
		t.Error("Ready should stay true")
	}
}

func TestImageLoaderMissingFile(t *testing.T) {
	l := NewImageLoader(fstest.MapFS{}, []*PageImage{NewPageImage("a", "missing.png")})
	if err := l.Wait(); err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if l.Ready() {
		t.Error("Ready should stay false after a failure")
	}
	if l.Err() == nil {
		t.Error("Err should report the failure")
	}
}

func TestImageLoaderBadData(t *testing.T) {
	fsys := fstest.MapFS{"bad.png": {Data: []byte("not an image")}}
	l := NewImageLoader(fsys, []*PageImage{NewPageImage("bad", "bad.png")})
	if err := l.Wait(); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestImageLoaderUnsupportedType(t *testing.T) {
	// A BMP header: recognized as an image but not decodable.
	bmp := append([]byte("BM"), make([]byte, 64)...)
	fsys := fstest.MapFS{"a.bmp": {Data: bmp}}
	l := NewImageLoader(fsys, []*PageImage{NewPageImage("a", "a.bmp")})
	err := l.Wait()
	if err == nil || !strings.Contains(err.Error(), "unsupported image type") {
		t.Errorf("err = %v, want unsupported image type", err)
	}
}

func TestImageLoaderDownscales(t *testing.T) {
	fsys := fstest.MapFS{"big.png": {Data: encodePNG(t, 400, 100)}}
	img := NewPageImage("big", "big.png")
	l := NewImageLoaderSize(fsys, []*PageImage{img}, 200)
	if err := l.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	l.Ready()
	if img.naturalW != 200 || img.naturalH != 50 {
		t.Errorf("natural size = %dx%d, want 200x50", img.naturalW, img.naturalH)
	}
}

func TestFitImage(t *testing.T) {
	tests := []struct {
		w, h, max    int
		wantW, wantH int
	}{
		{100, 50, 200, 100, 50},
		{400, 100, 200, 200, 50},
		{100, 400, 200, 50, 200},
		{300, 300, 0, 300, 300},
	}
	for _, tt := range tests {
		got := fitImage(image.NewRGBA(image.Rect(0, 0, tt.w, tt.h)), tt.max).Bounds()
		if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
			t.Errorf("fitImage(%dx%d, %d) = %dx%d, want %dx%d", tt.w, tt.h, tt.max, got.Dx(), got.Dy(), tt.wantW, tt.wantH)
		}
	}
}

func TestImageLoaderEmpty(t *testing.T) {
	l := NewImageLoader(fstest.MapFS{}, nil)
	if err := l.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if !l.Ready() {
		t.Error("empty loader should be ready")
	}
}

func TestGateFunc(t *testing.T) {
	ready := false
	g := GateFunc(func() bool { return ready })
	if g.Ready() {
		t.Error("Ready = true, want false")
	}
	ready = true
	if !g.Ready() {
		t.Error("Ready = false, want true")
	}
}
