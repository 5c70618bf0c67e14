package canopy

// TrackedItem mirrors one page element as a mesh. The geometry is sized once
// at assembly; afterwards only the position and uniforms change.
type TrackedItem struct {
	Element Element
	Top     float64
	Left    float64
	Width   float64
	Height  float64
	Mesh    *Mesh

	hovered bool
}

// Snapshot reads the element's current page geometry.
func Snapshot(el Element) Rect {
	return el.Bounds()
}

// NewTrackedItem snapshots el and builds its mesh with a clone of base.
func NewTrackedItem(el Element, base *Material) *TrackedItem {
	r := Snapshot(el)
	mat := base.Clone()
	mat.Uniforms.Texture = el.Texture()
	if el.Highlighted() {
		mat.Uniforms.HoverState = 1
	}
	return &TrackedItem{
		Element: el,
		Top:     r.Y,
		Left:    r.X,
		Width:   r.Width,
		Height:  r.Height,
		Mesh:    NewMesh(NewPlaneGeometry(r.Width, r.Height, DefaultSegments, DefaultSegments), mat),
	}
}

// Refresh re-reads the element's top-left corner after a reflow. The
// geometry keeps its original size.
func (it *TrackedItem) Refresh() {
	r := Snapshot(it.Element)
	it.Top = r.Y
	it.Left = r.X
}

// Place positions the item's mesh for the given scroll offset. Page space is
// Y-down with its origin at the top-left; world space is Y-up and centered on
// the viewport.
func Place(it *TrackedItem, scrollOffset, viewportW, viewportH float64) {
	it.Mesh.Position.X = it.Width/2 - viewportW/2 + it.Left
	it.Mesh.Position.Y = -(it.Height / 2) + viewportH/2 - it.Top + scrollOffset
}

// ScreenRect returns the item's box in viewport pixels for the given scroll
// offset. It matches where the mesh appears on screen.
func (it *TrackedItem) ScreenRect(scrollOffset float64) Rect {
	return Rect{X: it.Left, Y: it.Top - scrollOffset, Width: it.Width, Height: it.Height}
}

// placeAll positions every item from the frame's scroll offset and viewport.
func placeAll(items []*TrackedItem, fc *FrameContext) {
	for _, it := range items {
		Place(it, fc.ScrollOffset, fc.ViewportW, fc.ViewportH)
	}
}
