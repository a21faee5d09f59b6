package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCreateCubeCounts(t *testing.T) {
	cases := []struct {
		name         string
		size, offset mgl32.Vec3
	}{
		{"unit", mgl32.Vec3{1, 1, 1}, mgl32.Vec3{-0.5, -0.5, -0.5}},
		{"light marker", mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{-0.25, -0.25, -0.25}},
		{"cuboid", mgl32.Vec3{2, 1, 3}, mgl32.Vec3{}},
	}
	for _, tc := range cases {
		m := CreateCube(tc.size, tc.offset)
		if m.TriangleCount() != 12 {
			t.Errorf("%s: got %d triangles, want 12", tc.name, m.TriangleCount())
		}
		if len(m.Pos) != 36 || len(m.UV) != 36 || len(m.Col) != 36 || len(m.Norm) != 36 {
			t.Errorf("%s: array lengths pos=%d uv=%d col=%d norm=%d, want 36", tc.name, len(m.Pos), len(m.UV), len(m.Col), len(m.Norm))
		}
	}
}

func TestCreateCubeBounds(t *testing.T) {
	m := CreateCube(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{-0.5, -0.5, -0.5})
	for i, p := range m.Pos {
		for axis := 0; axis < 3; axis++ {
			if p[axis] != -0.5 && p[axis] != 0.5 {
				t.Fatalf("vertex %d axis %d = %f, want +-0.5", i, axis, p[axis])
			}
		}
	}
}

func TestCreateCubeOutwardWinding(t *testing.T) {
	m := CreateCube(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{-0.5, -0.5, -0.5})
	for tri := 0; tri < m.TriangleCount(); tri++ {
		p0, p1, p2 := m.Triangle(tri)
		n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
		want := m.Norm[tri*3]
		if !n.ApproxEqual(want) {
			t.Errorf("triangle %d: winding normal %v, face normal %v", tri, n, want)
		}
		// Outward: the normal points away from the centre.
		centre := p0.Add(p1).Add(p2).Mul(1.0 / 3.0)
		if centre.Dot(n) <= 0 {
			t.Errorf("triangle %d faces inward", tri)
		}
	}
}

func TestCreateCubeStartsWhite(t *testing.T) {
	m := CreateCube(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{})
	for i, c := range m.Col {
		if c.R != 255 || c.G != 255 || c.B != 255 || c.A != 255 {
			t.Fatalf("vertex %d colour %v, want white", i, c)
		}
	}
}
