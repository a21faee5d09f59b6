package geom

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Corner layout of the cuboid built by CreateCube:
//
//	     5       6
//	 1       2
//
//	     4       7
//	 0       3
var cubeFaces = [6]struct {
	corners [6]int
	normal  mgl32.Vec3
}{
	{[6]int{0, 1, 2, 0, 2, 3}, mgl32.Vec3{0, 0, -1}}, // south
	{[6]int{3, 2, 6, 3, 6, 7}, mgl32.Vec3{1, 0, 0}},  // east
	{[6]int{7, 6, 5, 7, 5, 4}, mgl32.Vec3{0, 0, 1}},  // north
	{[6]int{4, 5, 1, 4, 1, 0}, mgl32.Vec3{-1, 0, 0}}, // west
	{[6]int{1, 5, 6, 1, 6, 2}, mgl32.Vec3{0, 1, 0}},  // top
	{[6]int{7, 4, 0, 7, 0, 3}, mgl32.Vec3{0, -1, 0}}, // bottom
}

// Texture coordinates shared by both triangles of every face.
var cubeFaceUV = [6]mgl32.Vec2{
	{0, 1}, {0, 0}, {1, 0},
	{0, 1}, {1, 0}, {1, 1},
}

// CreateCube builds a closed cuboid of the given extent whose minimum corner sits at offset.
// The result is 12 counter-clockwise (outward facing) triangles with white vertex colours.
func CreateCube(size, offset mgl32.Vec3) *Mesh {
	corners := [8]mgl32.Vec3{
		{0, 0, 0},
		{0, size.Y(), 0},
		{size.X(), size.Y(), 0},
		{size.X(), 0, 0},
		{0, 0, size.Z()},
		{0, size.Y(), size.Z()},
		{size.X(), size.Y(), size.Z()},
		{size.X(), 0, size.Z()},
	}
	for i := range corners {
		corners[i] = corners[i].Add(offset)
	}

	m := &Mesh{Layout: LayoutList}
	m.Pos = make([]mgl32.Vec3, 0, 36)
	m.Norm = make([]mgl32.Vec3, 0, 36)
	m.UV = make([]mgl32.Vec2, 0, 36)
	m.Col = make([]color.RGBA, 0, 36)

	for _, face := range cubeFaces {
		for i, c := range face.corners {
			m.push(corners[c], face.normal, cubeFaceUV[i])
		}
	}
	return m
}
