package canopy

import (
	"encoding/json"
	"fmt"
	"math"
	"path"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pelletier/go-toml/v2"
)

// Element is one image on the page that gets mirrored as a mesh.
type Element interface {
	// Name identifies the element in events and debug output.
	Name() string
	// Bounds returns the element's box in page space (CSS pixels, origin at
	// the top-left of the document, Y down).
	Bounds() Rect
	// Texture returns the element's image, or nil if it has not loaded.
	Texture() *ebiten.Image
	// Highlighted elements keep their hover effect fully on and ignore
	// pointer enter/leave.
	Highlighted() bool
}

// Page is the document that owns the elements and their layout.
type Page interface {
	// Elements returns the elements in draw order. The set is fixed once the
	// scene is assembled.
	Elements() []Element
	// Layout reflows the page for the given viewport size.
	Layout(viewportW, viewportH float64)
	// Height returns the document height after the last Layout.
	Height() float64
}

// --- PageImage ---

// PageImage is an Element backed by an image file.
type PageImage struct {
	name        string
	src         string
	bounds      Rect
	texture     *ebiten.Image
	naturalW    int
	naturalH    int
	highlighted bool
}

// NewPageImage creates an element for the image at src. The texture is
// attached later by the loader.
func NewPageImage(name, src string) *PageImage {
	return &PageImage{name: name, src: src}
}

func (p *PageImage) Name() string           { return p.name }
func (p *PageImage) Bounds() Rect           { return p.bounds }
func (p *PageImage) Texture() *ebiten.Image { return p.texture }
func (p *PageImage) Highlighted() bool      { return p.highlighted }

// Source returns the path the image is loaded from.
func (p *PageImage) Source() string { return p.src }

// SetTexture attaches the loaded image and records its natural size for
// layout.
func (p *PageImage) SetTexture(img *ebiten.Image) {
	p.texture = img
	if img == nil {
		p.naturalW, p.naturalH = 0, 0
		return
	}
	b := img.Bounds()
	p.naturalW, p.naturalH = b.Dx(), b.Dy()
}

// heightForWidth returns the height that keeps the natural aspect ratio.
// Images with no natural size collapse to zero height.
func (p *PageImage) heightForWidth(w float64) float64 {
	if p.naturalW <= 0 || p.naturalH <= 0 {
		return 0
	}
	return w * float64(p.naturalH) / float64(p.naturalW)
}

// --- GridPage ---

// GridLayout parameters, in CSS pixels.
type GridLayout struct {
	Columns int     `json:"columns" toml:"columns"`
	Gap     float64 `json:"gap" toml:"gap"`
	Padding float64 `json:"padding" toml:"padding"`

	// HeaderHeight caps the header image height. Zero means uncapped.
	HeaderHeight float64 `json:"headerHeight" toml:"header_height"`
}

// DefaultGridLayout is used when a manifest leaves the layout out.
var DefaultGridLayout = GridLayout{Columns: 3, Gap: 32, Padding: 48, HeaderHeight: 520}

// GridPage lays out an optional full-width header image followed by a grid
// of images in fixed-width columns.
type GridPage struct {
	Grid   GridLayout
	Header *PageImage
	Images []*PageImage

	elements []Element
	height   float64
}

// NewGridPage creates a page from a header (may be nil) and grid images.
func NewGridPage(grid GridLayout, header *PageImage, images []*PageImage) *GridPage {
	p := &GridPage{Grid: grid, Header: header, Images: images}
	if header != nil {
		header.highlighted = true
		p.elements = append(p.elements, header)
	}
	for _, img := range images {
		p.elements = append(p.elements, img)
	}
	return p
}

// Elements returns the header first, then the grid images in order.
func (p *GridPage) Elements() []Element { return p.elements }

// Height returns the document height after the last Layout.
func (p *GridPage) Height() float64 { return p.height }

// Layout computes every element's bounds for the viewport width.
func (p *GridPage) Layout(viewportW, _ float64) {
	pad := p.Grid.Padding
	gap := p.Grid.Gap
	inner := math.Max(viewportW-2*pad, 0)
	y := pad

	if p.Header != nil {
		hw := inner
		hh := p.Header.heightForWidth(hw)
		if p.Grid.HeaderHeight > 0 && hh > p.Grid.HeaderHeight {
			hh = p.Grid.HeaderHeight
			hw = hh * float64(p.Header.naturalW) / float64(p.Header.naturalH)
		}
		p.Header.bounds = Rect{X: pad + (inner-hw)/2, Y: y, Width: hw, Height: hh}
		y += hh
		if len(p.Images) > 0 {
			y += gap
		}
	}

	cols := max(p.Grid.Columns, 1)
	colW := math.Max((inner-gap*float64(cols-1))/float64(cols), 0)
	for start := 0; start < len(p.Images); start += cols {
		rowH := 0.0
		end := min(start+cols, len(p.Images))
		for j, img := range p.Images[start:end] {
			h := img.heightForWidth(colW)
			img.bounds = Rect{X: pad + float64(j)*(colW+gap), Y: y, Width: colW, Height: h}
			rowH = math.Max(rowH, h)
		}
		y += rowH
		if end < len(p.Images) {
			y += gap
		}
	}
	p.height = y + pad
}

// --- Manifest ---

type manifestImage struct {
	Name string `json:"name" toml:"name"`
	Src  string `json:"src" toml:"src"`
}

type manifest struct {
	Header *manifestImage  `json:"header" toml:"header"`
	Images []manifestImage `json:"images" toml:"images"`
	Layout *GridLayout     `json:"layout" toml:"layout"`
}

// LoadPage parses a JSON page manifest:
//
//	{
//	  "header": {"name": "hero", "src": "img/hero.jpg"},
//	  "images": [{"name": "a", "src": "img/a.jpg"}],
//	  "layout": {"columns": 3, "gap": 32, "padding": 48, "headerHeight": 520}
//	}
//
// Image paths are resolved by the loader. Missing names default to the source
// path; a missing layout uses DefaultGridLayout.
func LoadPage(jsonData []byte) (*GridPage, error) {
	var m manifest
	if err := json.Unmarshal(jsonData, &m); err != nil {
		return nil, fmt.Errorf("canopy: failed to parse page manifest: %w", err)
	}
	return m.page()
}

// LoadPageTOML parses the TOML form of a page manifest:
//
//	[header]
//	name = "hero"
//	src = "img/hero.jpg"
//
//	[[images]]
//	name = "a"
//	src = "img/a.jpg"
//
//	[layout]
//	columns = 3
//	gap = 32
//	padding = 48
//	header_height = 520
func LoadPageTOML(data []byte) (*GridPage, error) {
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("canopy: failed to parse page manifest: %w", err)
	}
	return m.page()
}

// LoadPageFile parses a manifest, choosing TOML for a .toml name and JSON
// otherwise.
func LoadPageFile(name string, data []byte) (*GridPage, error) {
	if strings.EqualFold(path.Ext(name), ".toml") {
		return LoadPageTOML(data)
	}
	return LoadPage(data)
}

func (m *manifest) page() (*GridPage, error) {
	if m.Header == nil && len(m.Images) == 0 {
		return nil, fmt.Errorf("canopy: page manifest has no images")
	}

	grid := DefaultGridLayout
	if m.Layout != nil {
		grid = *m.Layout
	}
	if grid.Columns <= 0 {
		return nil, fmt.Errorf("canopy: page layout columns must be positive, got %d", grid.Columns)
	}

	toImage := func(mi manifestImage, idx int) (*PageImage, error) {
		if mi.Src == "" {
			return nil, fmt.Errorf("canopy: page image %d has no src", idx)
		}
		name := mi.Name
		if name == "" {
			name = mi.Src
		}
		return NewPageImage(name, mi.Src), nil
	}

	var header *PageImage
	if m.Header != nil {
		h, err := toImage(*m.Header, -1)
		if err != nil {
			return nil, err
		}
		header = h
	}
	images := make([]*PageImage, 0, len(m.Images))
	for i, mi := range m.Images {
		img, err := toImage(mi, i)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return NewGridPage(grid, header, images), nil
}
