package engine

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// nearW rejects triangles with a vertex at or behind the eye.
const nearW = 1e-4

// ScreenVertex is a projected vertex in screen pixels, y growing downward.
type ScreenVertex struct {
	X, Y, Z float32
	U, V    float32
	Col     Pixel
}

// ScreenTriangle is a projected, tinted triangle. Depth is its mean NDC z;
// larger values are further away.
type ScreenTriangle struct {
	V     [3]ScreenVertex
	Depth float32
	Decal *Decal
}

// ProjectObject appends the visible triangles of o, as seen through proj on a
// viewport of the given size, to dst.
func ProjectObject(dst []ScreenTriangle, proj mgl32.Mat4, o Object, viewport image.Point, cull CullMode) []ScreenTriangle {
	m := o.Mesh
	mvp := proj.Mul4(o.Transform)
	w := float32(viewport.X)
	h := float32(viewport.Y)

	for i := 0; i+2 < len(m.Pos); i += 3 {
		var tri ScreenTriangle
		var ndc [3]mgl32.Vec3
		visible := true
		for k := 0; k < 3; k++ {
			clip := mvp.Mul4x1(m.Pos[i+k].Vec4(1))
			if clip.W() <= nearW {
				visible = false
				break
			}
			ndc[k] = clip.Vec3().Mul(1 / clip.W())
		}
		if !visible || culled(ndc, cull) {
			continue
		}

		for k := 0; k < 3; k++ {
			v := &tri.V[k]
			v.X = (ndc[k].X() + 1) * 0.5 * w
			v.Y = (1 - ndc[k].Y()) * 0.5 * h
			v.Z = ndc[k].Z()
			if i+k < len(m.UV) {
				v.U, v.V = m.UV[i+k].X(), m.UV[i+k].Y()
			}
			col := White
			if i+k < len(m.Col) {
				col = m.Col[i+k]
			}
			v.Col = Modulate(col, o.Tint)
		}
		tri.Depth = (ndc[0].Z() + ndc[1].Z() + ndc[2].Z()) / 3
		tri.Decal = o.Decal
		dst = append(dst, tri)
	}
	return dst
}

// culled reports whether the NDC triangle faces away under mode.
func culled(ndc [3]mgl32.Vec3, mode CullMode) bool {
	if mode == CullNone {
		return false
	}
	area := (ndc[1].X()-ndc[0].X())*(ndc[2].Y()-ndc[0].Y()) - (ndc[2].X()-ndc[0].X())*(ndc[1].Y()-ndc[0].Y())
	if mode == CullCCW {
		return area <= 0
	}
	return area >= 0
}
