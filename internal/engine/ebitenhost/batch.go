package ebitenhost

import (
	"sort"

	"hw3d-demo/internal/engine"
)

type batch struct {
	start, end int
}

// paintersOrder sorts tris far to near. Ties keep submission order.
func paintersOrder(tris []engine.ScreenTriangle) {
	sort.SliceStable(tris, func(i, j int) bool { return tris[i].Depth > tris[j].Depth })
}

// batches splits tris into runs sharing a decal, each at most limit triangles long.
func batches(tris []engine.ScreenTriangle, limit int) []batch {
	var out []batch
	for start := 0; start < len(tris); {
		end := start + 1
		for end < len(tris) && tris[end].Decal == tris[start].Decal && end-start < limit {
			end++
		}
		out = append(out, batch{start, end})
		start = end
	}
	return out
}
