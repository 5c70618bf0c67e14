package canopy

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"runtime"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxTextureSize is the longest texture edge, in pixels, kept by
// NewImageLoader. Larger images are downscaled while decoding.
const DefaultMaxTextureSize = 4096

// decodable lists the MIME types with a registered decoder.
var decodable = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// LoadGate reports when every page image is ready. The Scene stays idle and
// polls Ready once per tick until it returns true; scene assembly never
// begins earlier.
type LoadGate interface {
	Ready() bool
}

// GateFunc adapts a function to LoadGate.
type GateFunc func() bool

// Ready calls f.
func (f GateFunc) Ready() bool { return f() }

// ImageLoader decodes page images in the background and attaches them as
// textures once all of them have decoded. It implements LoadGate.
//
// Decoding runs on worker goroutines; texture upload and every write to the
// PageImages happen inside Ready, on the game goroutine.
type ImageLoader struct {
	targets  []*PageImage
	decoded  []image.Image
	maxSize  int
	done     chan struct{}
	err      error
	uploaded bool
}

// NewImageLoader starts decoding every image's Source from fsys. Supported
// formats are PNG, JPEG, GIF and WebP.
func NewImageLoader(fsys fs.FS, images []*PageImage) *ImageLoader {
	return NewImageLoaderSize(fsys, images, DefaultMaxTextureSize)
}

// NewImageLoaderSize is like NewImageLoader but downscales images whose
// longest edge exceeds maxSize pixels, keeping their aspect ratio. A
// non-positive maxSize keeps every image at full size.
func NewImageLoaderSize(fsys fs.FS, images []*PageImage, maxSize int) *ImageLoader {
	l := &ImageLoader{
		targets: images,
		decoded: make([]image.Image, len(images)),
		maxSize: maxSize,
		done:    make(chan struct{}),
	}
	go l.run(fsys)
	return l
}

func (l *ImageLoader) run(fsys fs.FS) {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, img := range l.targets {
		g.Go(func() error {
			m, err := decodeImage(fsys, img.Source())
			if err != nil {
				return err
			}
			l.decoded[i] = fitImage(m, l.maxSize)
			return nil
		})
	}
	l.err = g.Wait()
	close(l.done)
}

func decodeImage(fsys fs.FS, path string) (image.Image, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("canopy: open image %s: %w", path, err)
	}
	kind, _ := filetype.Match(data)
	if kind == filetype.Unknown || !filetype.IsImage(data) {
		return nil, fmt.Errorf("canopy: %s is not an image", path)
	}
	if !decodable[kind.MIME.Value] {
		return nil, fmt.Errorf("canopy: %s: unsupported image type %s", path, kind.MIME.Value)
	}
	m, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("canopy: decode image %s: %w", path, err)
	}
	return m, nil
}

// fitImage downscales m so its longest edge is at most maxSize.
func fitImage(m image.Image, maxSize int) image.Image {
	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize <= 0 || (w <= maxSize && h <= maxSize) {
		return m
	}
	if w >= h {
		h = max(h*maxSize/w, 1)
		w = maxSize
	} else {
		w = max(w*maxSize/h, 1)
		h = maxSize
	}
	return transform.Resize(m, w, h, transform.Linear)
}

// Ready reports whether every image has decoded and been uploaded. The
// first call after decoding finishes performs the upload.
func (l *ImageLoader) Ready() bool {
	if l.uploaded {
		return true
	}
	select {
	case <-l.done:
	default:
		return false
	}
	if l.err != nil {
		return false
	}
	for i, t := range l.targets {
		t.SetTexture(ebiten.NewImageFromImage(l.decoded[i]))
		l.decoded[i] = nil
	}
	l.uploaded = true
	return true
}

// Err returns the first decode error once loading has finished, or nil.
func (l *ImageLoader) Err() error {
	select {
	case <-l.done:
		return l.err
	default:
		return nil
	}
}

// Wait blocks until decoding finishes and returns its error.
func (l *ImageLoader) Wait() error {
	<-l.done
	return l.err
}

// PageImages returns the header (if any) followed by the grid images.
func (p *GridPage) PageImages() []*PageImage {
	out := make([]*PageImage, 0, len(p.Images)+1)
	if p.Header != nil {
		out = append(out, p.Header)
	}
	return append(out, p.Images...)
}
