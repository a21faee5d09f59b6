package ebitenhost

import (
	"testing"

	"hw3d-demo/internal/engine"
)

func TestPaintersOrder(t *testing.T) {
	tris := []engine.ScreenTriangle{{Depth: 0.2}, {Depth: 0.9}, {Depth: 0.5}, {Depth: 0.9}}
	tris[1].V[0].X = 1
	tris[3].V[0].X = 3
	paintersOrder(tris)

	want := []float32{0.9, 0.9, 0.5, 0.2}
	for i, tri := range tris {
		if tri.Depth != want[i] {
			t.Fatalf("order %v, want depths %v", tris, want)
		}
	}
	if tris[0].V[0].X != 1 || tris[1].V[0].X != 3 {
		t.Error("equal depths lost submission order")
	}
}

func TestBatches(t *testing.T) {
	a := engine.NewDecal(engine.NewSprite(1, 1))
	b := engine.NewDecal(engine.NewSprite(1, 1))
	tris := []engine.ScreenTriangle{{Decal: a}, {Decal: a}, {Decal: nil}, {Decal: b}, {Decal: b}, {Decal: b}}

	got := batches(tris, 2)
	want := []batch{{0, 2}, {2, 3}, {3, 5}, {5, 6}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	if len(batches(nil, 10)) != 0 {
		t.Error("empty input produced batches")
	}
}
