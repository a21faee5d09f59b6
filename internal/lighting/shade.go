package lighting

import (
	"image/color"

	"hw3d-demo/internal/geom"
)

var black = color.RGBA{0, 0, 0, 255}

// Stats reports what a Shade pass did.
type Stats struct {
	Triangles int
	// Degenerate counts triangles with a zero-area face. They receive ambient light only.
	Degenerate int
}

// Shade recolours every triangle of m from the rig, flat shaded: all three vertices
// of a triangle receive the same additive sum of the lights' contributions.
func Shade(m *geom.Mesh, rig *Rig) Stats {
	var st Stats
	for i := 0; i+2 < len(m.Pos); i += 3 {
		n, ok := FaceNormal(m.Pos[i], m.Pos[i+1], m.Pos[i+2])
		if !ok {
			st.Degenerate++
		}

		c := black
		for j := range rig {
			illum := float32(Ambient)
			if ok {
				illum = Intensity(n, rig[j].Pos)
			}
			c = AddSaturate(c, Contribution(illum, rig[j].Tint))
		}

		m.Col[i] = c
		m.Col[i+1] = c
		m.Col[i+2] = c
		st.Triangles++
	}
	return st
}
