package canopy

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultSegments is the grid resolution of each image plane along both axes.
const DefaultSegments = 20

// MeshUniforms is the fixed set of inputs fed to a mesh's shader program.
// Every TrackedItem owns its own copy.
type MeshUniforms struct {
	// Texture is the element's image. Immutable after creation.
	Texture *ebiten.Image
	// Time is the scene clock in milliseconds, updated every frame.
	Time float64
	// HoverCoord is the last ray hit on this mesh in UV space (u to the
	// right, v upward). Written only by the Probe.
	HoverCoord Vec2
	// HoverState blends the hover effect in, in [0, 1]. Written only by the
	// HoverAnimator.
	HoverState float64
}

// DisplaceFunc returns the z offset, in world units, of the plane vertex at
// (u, v). It stands in for a vertex program.
type DisplaceFunc func(u, v float64, uni *MeshUniforms) float64

// Hover bulge parameters. The camera sits 1.4 units from the plane, so the
// amplitude must stay well below that.
const (
	bulgeDepth  = 0.08
	bulgeSigma2 = 2 * 0.22 * 0.22
	waveDepth   = 0.012
	waveFreq    = 24.0
	wavePeriod  = 260.0
)

// HoverBulge raises the plane toward the camera around HoverCoord, scaled by
// HoverState, with a faint traveling ripple.
func HoverBulge(u, v float64, uni *MeshUniforms) float64 {
	if uni.HoverState == 0 {
		return 0
	}
	du := u - uni.HoverCoord.X
	dv := v - uni.HoverCoord.Y
	d2 := du*du + dv*dv
	falloff := math.Exp(-d2 / bulgeSigma2)
	wave := math.Sin(math.Sqrt(d2)*waveFreq - uni.Time/wavePeriod)
	return uni.HoverState * falloff * (bulgeDepth + waveDepth*wave)
}

// Material pairs a shader program with its uniforms. Materials are cloned per
// mesh and never shared.
type Material struct {
	Shader   *ebiten.Shader
	Uniforms MeshUniforms
	// Displace offsets vertices along Z before projection. Nil keeps the
	// plane flat.
	Displace DisplaceFunc

	uniformMap map[string]any
	coord      []float32
	shaderOp   ebiten.DrawTrianglesShaderOptions
}

// NewMaterial creates a material for the given shader with the hover
// coordinate centered.
func NewMaterial(shader *ebiten.Shader) *Material {
	m := &Material{
		Shader:   shader,
		Uniforms: MeshUniforms{HoverCoord: Vec2{0.5, 0.5}},
		Displace: HoverBulge,
	}
	m.initUniformMap()
	return m
}

func (m *Material) initUniformMap() {
	m.coord = make([]float32, 2)
	m.uniformMap = make(map[string]any, 3)
	m.uniformMap["Coord"] = m.coord
}

// Clone returns an independent copy. The texture is shared; every other
// uniform can be changed without affecting the original.
func (m *Material) Clone() *Material {
	c := &Material{
		Shader:   m.Shader,
		Uniforms: m.Uniforms,
		Displace: m.Displace,
	}
	c.initUniformMap()
	return c
}

// flushUniforms copies the typed uniform record into the map Ebitengine
// consumes. Scalar float32 boxing is unavoidable with ebiten's uniform API.
func (m *Material) flushUniforms() map[string]any {
	m.coord[0] = float32(m.Uniforms.HoverCoord.X)
	m.coord[1] = float32(m.Uniforms.HoverCoord.Y)
	m.uniformMap["Time"] = float32(m.Uniforms.Time)
	m.uniformMap["HoverState"] = float32(m.Uniforms.HoverState)
	return m.uniformMap
}

// PlaneGeometry is a flat rectangle centered on its origin in the XY plane,
// subdivided into a grid.
type PlaneGeometry struct {
	Width, Height    float64
	SegmentsX        int
	SegmentsY        int
	uvs              []Vec2
	indices          []uint16
	transformedVerts []ebiten.Vertex
}

// NewPlaneGeometry builds a w×h plane with the given subdivisions. Zero sizes
// are allowed and produce a degenerate plane.
func NewPlaneGeometry(w, h float64, segX, segY int) *PlaneGeometry {
	segX = max(segX, 1)
	segY = max(segY, 1)
	g := &PlaneGeometry{Width: w, Height: h, SegmentsX: segX, SegmentsY: segY}

	cols := segX + 1
	g.uvs = make([]Vec2, 0, cols*(segY+1))
	for iy := 0; iy <= segY; iy++ {
		// Rows run top to bottom; v runs bottom to top.
		v := 1 - float64(iy)/float64(segY)
		for ix := 0; ix <= segX; ix++ {
			g.uvs = append(g.uvs, Vec2{float64(ix) / float64(segX), v})
		}
	}

	g.indices = make([]uint16, 0, segX*segY*6)
	for iy := 0; iy < segY; iy++ {
		for ix := 0; ix < segX; ix++ {
			a := uint16(iy*cols + ix)
			b := uint16((iy+1)*cols + ix)
			c := uint16((iy+1)*cols + ix + 1)
			d := uint16(iy*cols + ix + 1)
			g.indices = append(g.indices, a, b, d, b, c, d)
		}
	}
	return g
}

// VertexCount returns the number of grid vertices.
func (g *PlaneGeometry) VertexCount() int { return len(g.uvs) }

// local returns the plane-space position of the vertex with the given UV.
func (g *PlaneGeometry) local(uv Vec2) (x, y float64) {
	return (uv.X - 0.5) * g.Width, (uv.Y - 0.5) * g.Height
}

// Mesh is one textured plane in the scene.
type Mesh struct {
	Geometry *PlaneGeometry
	Material *Material
	// Position is the world-space center of the plane.
	Position Vec3
}

// NewMesh creates a mesh from a geometry and a material.
func NewMesh(g *PlaneGeometry, m *Material) *Mesh {
	return &Mesh{Geometry: g, Material: m}
}

// HitUV tests p, a world-space point on the mesh's plane, against the plane
// bounds and returns its UV coordinate.
func (m *Mesh) HitUV(p Vec3) (Vec2, bool) {
	g := m.Geometry
	if g.Width <= 0 || g.Height <= 0 {
		return Vec2{}, false
	}
	lx := p.X - m.Position.X
	ly := p.Y - m.Position.Y
	if math.Abs(lx) > g.Width/2 || math.Abs(ly) > g.Height/2 {
		return Vec2{}, false
	}
	return Vec2{lx/g.Width + 0.5, ly/g.Height + 0.5}, true
}

// buildVertices projects every grid vertex through the camera into device
// pixels, writing into the geometry's reusable vertex buffer. Vertices behind
// the camera collapse to the origin.
func (m *Mesh) buildVertices(cam *PerspectiveCamera, dpr float64) []ebiten.Vertex {
	g := m.Geometry
	need := len(g.uvs)
	if cap(g.transformedVerts) < need {
		g.transformedVerts = make([]ebiten.Vertex, need)
	}
	verts := g.transformedVerts[:need]

	tex := m.Material.Uniforms.Texture
	var srcX, srcY, srcW, srcH float32
	if tex != nil {
		b := tex.Bounds()
		srcX, srcY = float32(b.Min.X), float32(b.Min.Y)
		srcW, srcH = float32(b.Dx()), float32(b.Dy())
	}

	uni := &m.Material.Uniforms
	for i, uv := range g.uvs {
		lx, ly := g.local(uv)
		var lz float64
		if m.Material.Displace != nil {
			lz = m.Material.Displace(uv.X, uv.Y, uni)
		}
		sx, sy, ok := cam.Project(Vec3{m.Position.X + lx, m.Position.Y + ly, m.Position.Z + lz})
		if !ok {
			sx, sy = 0, 0
		}
		verts[i] = ebiten.Vertex{
			DstX:   float32(sx * dpr),
			DstY:   float32(sy * dpr),
			SrcX:   srcX + float32(uv.X)*srcW,
			SrcY:   srcY + float32(1-uv.Y)*srcH,
			ColorR: 1,
			ColorG: 1,
			ColorB: 1,
			ColorA: 1,
		}
	}
	g.transformedVerts = verts
	return verts
}

// draw renders the mesh onto dst with its material's shader. Meshes without a
// texture or with zero area are skipped.
func (m *Mesh) draw(dst *ebiten.Image, cam *PerspectiveCamera, dpr float64) {
	mat := m.Material
	if mat.Uniforms.Texture == nil || mat.Shader == nil {
		return
	}
	if m.Geometry.Width <= 0 || m.Geometry.Height <= 0 {
		return
	}
	verts := m.buildVertices(cam, dpr)
	mat.shaderOp.Images[0] = mat.Uniforms.Texture
	mat.shaderOp.Uniforms = mat.flushUniforms()
	dst.DrawTrianglesShader(verts, m.Geometry.indices, mat.Shader, &mat.shaderOp)
}
