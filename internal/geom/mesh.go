package geom

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Layout describes how a mesh's vertex stream is assembled into primitives.
type Layout int

const (
	// LayoutList treats every three vertices as an independent triangle.
	LayoutList Layout = iota
	LayoutStrip
	LayoutFan
)

// Mesh is a triangle list with per-vertex position, texture coordinate and colour.
// Col is the only field expected to change after construction.
type Mesh struct {
	Pos    []mgl32.Vec3
	Norm   []mgl32.Vec3
	UV     []mgl32.Vec2
	Col    []color.RGBA
	Layout Layout
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Pos)
}

// TriangleCount returns the number of triangles in a list-layout mesh.
func (m *Mesh) TriangleCount() int {
	return len(m.Pos) / 3
}

// Triangle returns the three positions of triangle i.
func (m *Mesh) Triangle(i int) (p0, p1, p2 mgl32.Vec3) {
	return m.Pos[i*3], m.Pos[i*3+1], m.Pos[i*3+2]
}

func (m *Mesh) push(p, n mgl32.Vec3, uv mgl32.Vec2) {
	m.Pos = append(m.Pos, p)
	m.Norm = append(m.Norm, n)
	m.UV = append(m.UV, uv)
	m.Col = append(m.Col, color.RGBA{255, 255, 255, 255})
}
