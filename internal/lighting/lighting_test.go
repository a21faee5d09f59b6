package lighting

import (
	"image/color"
	"math/rand"
	"testing"

	"hw3d-demo/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

func TestIntensityRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	rv := func() mgl32.Vec3 {
		return mgl32.Vec3{rng.Float32()*2 - 1, rng.Float32()*2 - 1, rng.Float32()*2 - 1}
	}
	for i := 0; i < 1000; i++ {
		n := rv().Normalize()
		got := Intensity(n, rv().Mul(6))
		if got < Ambient || got > Ambient+Diffuse+1e-6 {
			t.Fatalf("intensity %f outside [0.2, 1.0]", got)
		}
	}
}

func TestIntensityFacingAndAway(t *testing.T) {
	n := mgl32.Vec3{0, 1, 0}
	if got := Intensity(n, mgl32.Vec3{0, 6, 0}); got < 0.999 {
		t.Errorf("light straight above: got %f, want 1.0", got)
	}
	if got := Intensity(n, mgl32.Vec3{0, -6, 0}); got != Ambient {
		t.Errorf("light behind face: got %f, want ambient", got)
	}
	if got := Intensity(n, mgl32.Vec3{6, 0, 0}); got != Ambient {
		t.Errorf("grazing light: got %f, want ambient", got)
	}
}

func TestContributionQuantises(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	c := Contribution(Ambient, red)
	// 0.2*255 truncates to 51.
	if c.R != 51 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("got %v, want {51 0 0 255}", c)
	}
	if c := Contribution(1, red); c.R != 255 {
		t.Errorf("full intensity red: got %d", c.R)
	}
}

func TestAddSaturate(t *testing.T) {
	got := AddSaturate(color.RGBA{200, 10, 0, 255}, color.RGBA{100, 10, 0, 255})
	want := color.RGBA{255, 20, 0, 255}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestShadeFlat(t *testing.T) {
	m := geom.CreateCube(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{-0.5, -0.5, -0.5})
	rig := NewRig()
	for _, tm := range []float32{0, 0.37, 1.5, 12.25, 1000} {
		rig.Orbit(tm)
		st := Shade(m, &rig)
		if st.Triangles != 12 || st.Degenerate != 0 {
			t.Fatalf("t=%v: stats %+v", tm, st)
		}
		for i := 0; i < len(m.Col); i += 3 {
			if m.Col[i] != m.Col[i+1] || m.Col[i] != m.Col[i+2] {
				t.Fatalf("t=%v: triangle %d not flat: %v %v %v", tm, i/3, m.Col[i], m.Col[i+1], m.Col[i+2])
			}
		}
	}
}

func TestShadeResetsBeforeAccumulating(t *testing.T) {
	m := geom.CreateCube(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{-0.5, -0.5, -0.5})
	rig := NewRig()
	Shade(m, &rig)
	first := append([]color.RGBA(nil), m.Col...)
	Shade(m, &rig)
	for i := range first {
		if first[i] != m.Col[i] {
			t.Fatalf("vertex %d changed between identical passes: %v -> %v", i, first[i], m.Col[i])
		}
	}
}

func TestShadeChannelsFollowTints(t *testing.T) {
	m := geom.CreateCube(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{-0.5, -0.5, -0.5})
	rig := NewRig()
	// Put the red light straight above; only the top face is fully lit by it.
	rig[0].Pos = mgl32.Vec3{0, 6, 0}
	rig[1].Pos = mgl32.Vec3{0, -6, 0}
	rig[2].Pos = mgl32.Vec3{0, -6, 0}
	Shade(m, &rig)

	top := m.Col[4*6] // top face starts at triangle 8
	if top.R != 255 || top.G != 51 || top.B != 51 {
		t.Errorf("top face: got %v, want {255 51 51}", top)
	}
	bottom := m.Col[5*6]
	if bottom.R != 51 || bottom.G != 255 || bottom.B != 255 {
		t.Errorf("bottom face: got %v, want {51 255 255}", bottom)
	}
}

func TestShadeDegenerateGetsAmbient(t *testing.T) {
	p := mgl32.Vec3{1, 1, 1}
	m := &geom.Mesh{
		Pos: []mgl32.Vec3{p, p, p},
		Col: make([]color.RGBA, 3),
	}
	rig := NewRig()
	st := Shade(m, &rig)
	if st.Degenerate != 1 {
		t.Fatalf("degenerate = %d, want 1", st.Degenerate)
	}
	want := color.RGBA{51, 51, 51, 255}
	if m.Col[0] != want {
		t.Errorf("got %v, want %v", m.Col[0], want)
	}
}

func TestOrbitRadius(t *testing.T) {
	rig := NewRig()
	for _, tm := range []float32{0, 1, 2.5, 100} {
		rig.Orbit(tm)
		for i, l := range rig {
			if r := l.Pos.Len(); r < 5.999 || r > 6.001 {
				t.Errorf("t=%v light %d radius %f, want 6", tm, i, r)
			}
		}
	}
}
