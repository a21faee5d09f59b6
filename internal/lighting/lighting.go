package lighting

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Ambient is the illumination floor every face receives from each light.
	Ambient = 0.2
	// Diffuse is the maximum directional contribution on top of Ambient.
	Diffuse = 0.8
)

// Light is a point light used as a directional source from the origin.
type Light struct {
	Pos  mgl32.Vec3
	Tint color.RGBA
}

// Rig is the fixed set of three coloured lights orbiting the scene.
type Rig [3]Light

// NewRig returns the red, green and blue lights at their t=0 positions.
func NewRig() Rig {
	r := Rig{
		{Tint: color.RGBA{255, 0, 0, 255}},
		{Tint: color.RGBA{0, 255, 0, 255}},
		{Tint: color.RGBA{0, 0, 255, 255}},
	}
	r.Orbit(0)
	return r
}

// Orbit moves each light along its own circle of radius 6 for elapsed time t (seconds).
func (r *Rig) Orbit(t float32) {
	r[0].Pos = mgl32.Vec3{6 * sin(t*2.5), 6 * cos(t*2.5), 0}
	r[1].Pos = mgl32.Vec3{0, 6 * sin(t), 6 * cos(t)}
	r[2].Pos = mgl32.Vec3{6 * cos(t*1.7), 0, 6 * sin(t*1.7)}
}

// FaceNormal returns the normalised cross product of the triangle's two edges from p0.
// ok is false when the triangle is degenerate and the normal has no direction.
func FaceNormal(p0, p1, p2 mgl32.Vec3) (n mgl32.Vec3, ok bool) {
	c := p1.Sub(p0).Cross(p2.Sub(p0))
	l := c.Len()
	if l == 0 || math.IsNaN(float64(l)) {
		return mgl32.Vec3{}, false
	}
	return c.Mul(1 / l), true
}

// Intensity returns the illumination a face with normal n receives from a light at pos.
// The result is always within [Ambient, Ambient+Diffuse].
func Intensity(n, pos mgl32.Vec3) float32 {
	l := pos.Normalize().Mul(-1)
	d := -n.Dot(l)
	if !(d > 0) {
		d = 0
	}
	if d > 1 {
		d = 1
	}
	return d*Diffuse + Ambient
}

// Contribution scales tint by intensity the way the engine multiplies pixels:
// the intensity is quantised to a byte first, then each channel is modulated.
func Contribution(intensity float32, tint color.RGBA) color.RGBA {
	q := uint32(intensity * 255)
	if q > 255 {
		q = 255
	}
	return color.RGBA{
		R: uint8(q * uint32(tint.R) / 255),
		G: uint8(q * uint32(tint.G) / 255),
		B: uint8(q * uint32(tint.B) / 255),
		A: tint.A,
	}
}

// AddSaturate adds two colours channel-wise, clamping each channel at 255.
func AddSaturate(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: addSat(a.R, b.R),
		G: addSat(a.G, b.G),
		B: addSat(a.B, b.B),
		A: addSat(a.A, b.A),
	}
}

func addSat(a, b uint8) uint8 {
	s := uint16(a) + uint16(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func sin(x float32) float32 { return float32(math.Sin(float64(x))) }
func cos(x float32) float32 { return float32(math.Cos(float64(x))) }
