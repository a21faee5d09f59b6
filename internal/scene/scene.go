package scene

import (
	"image"
	"math"

	"hw3d-demo/internal/engine"
	"hw3d-demo/internal/geom"
	"hw3d-demo/internal/lighting"
	"hw3d-demo/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// GridSize is the number of cubes along each side of the grid.
	GridSize = 8

	// Camera orbit rates in radians per second.
	OrbitRateX = 0.1
	OrbitRateY = 0.05

	// CameraDistance is how far the camera sits from the origin.
	CameraDistance = 10

	// Clip planes of the perspective projection.
	NearPlane = 0.1
	FarPlane  = 1000

	// TextureSize is the edge length in pixels of the generated cube texture.
	TextureSize = 128
)

// RenderContext carries per-frame state into the drawing routines.
type RenderContext struct {
	Engine engine.Engine
	DT     float32
	View   mgl32.Mat4
	Proj   mgl32.Mat4
}

// Scene is a grid of lit cubes viewed by a slowly orbiting camera, plus markers for its lights.
type Scene struct {
	Cube      *geom.Mesh
	LightCube *geom.Mesh
	Texture   *engine.Renderable

	Cubes  [GridSize * GridSize]mgl32.Vec3
	Lights lighting.Rig

	// Orbit angles in radians. They grow without bound.
	ThetaX float32
	ThetaY float32
	// LightTime is the total elapsed time driving the light orbits.
	LightTime float32

	view mgl32.Mat4
	proj mgl32.Mat4

	LastShade lighting.Stats
}

// New builds the meshes, the cube grid and the lights. Setup must run before the first Update.
func New() *Scene {
	s := &Scene{
		Cube:      geom.CreateCube(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{-0.5, -0.5, -0.5}),
		LightCube: geom.CreateCube(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{-0.25, -0.25, -0.25}),
		Texture:   engine.NewRenderable(TextureSize, TextureSize),
		Cubes:     CubeGrid(),
		Lights:    lighting.NewRig(),
		ThetaX:    1,
		ThetaY:    2,
		view:      mgl32.Ident4(),
		proj:      mgl32.Ident4(),
	}
	return s
}

// CubeGrid places GridSize x GridSize cubes on a wavy sheet centred on the origin.
func CubeGrid() [GridSize * GridSize]mgl32.Vec3 {
	var cubes [GridSize * GridSize]mgl32.Vec3
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			z := math.Sin(float64(x)) + math.Cos(float64(y))
			cubes[y*GridSize+x] = mgl32.Vec3{float32(x) - 4, float32(z), float32(y) - 4}
		}
	}
	return cubes
}

// Projection returns the fixed perspective used by the demo: a 90 degree frustum whose
// x axis is scaled by height/width, mapping view depth [near, far] to NDC z [0, 1].
func Projection(screen image.Point, near, far float32) mgl32.Mat4 {
	aspect := float32(screen.Y) / float32(screen.X)
	return mgl32.Mat4{
		aspect, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, -(far / (far - near)), -1,
		0, 0, -((far * near) / (far - near)), 0,
	}
}

// Setup uploads the projection, sets culling and paints the cube texture.
func (s *Scene) Setup(e engine.Engine) {
	s.proj = Projection(e.ScreenSize(), NearPlane, FarPlane)
	e.SetProjection(s.proj)
	e.SetCullMode(engine.CullCCW)
	PaintTarget(e, s.Texture)
}

// PaintTarget draws the concentric-circle test pattern into r.
func PaintTarget(e engine.Engine, r *engine.Renderable) {
	c := image.Pt(TextureSize/2, TextureSize/2)
	e.SetDrawTarget(r.Sprite())
	e.Clear(engine.White)
	e.FillCircle(c, 32, engine.Black)
	e.FillCircle(c, 24, engine.Blue)
	e.FillCircle(c, 16, engine.Red)
	e.FillCircle(c, 8, engine.Yellow)
	e.SetDrawTarget(nil)
	r.Decal().Update()
}

// Advance moves the camera orbit and the lights forward by dt seconds.
func (s *Scene) Advance(dt float32) {
	s.ThetaX += dt * OrbitRateX
	s.ThetaY += dt * OrbitRateY
	s.view = ViewMatrix(s.ThetaX, s.ThetaY)

	s.LightTime += dt
	s.Lights.Orbit(s.LightTime)
}

// ViewMatrix places the camera CameraDistance units back from the origin, rotated about X then Y.
func ViewMatrix(thetaX, thetaY float32) mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, -CameraDistance).
		Mul4(mgl32.HomogRotate3DX(thetaX)).
		Mul4(mgl32.HomogRotate3DY(thetaY))
}

// View returns the view matrix computed by the last Advance.
func (s *Scene) View() mgl32.Mat4 { return s.view }

// Projection returns the perspective matrix computed by Setup.
func (s *Scene) Projection() mgl32.Mat4 { return s.proj }

// Update advances the scene and draws it.
func (s *Scene) Update(e engine.Engine, dt float32) {
	s.Advance(dt)
	s.Render(RenderContext{Engine: e, DT: dt, View: s.view, Proj: s.proj})
}

// Render relights the cube mesh and submits every cube and light marker.
func (s *Scene) Render(ctx RenderContext) {
	func() {
		defer profiling.Track("scene.Shade")()
		s.LastShade = lighting.Shade(s.Cube, &s.Lights)
	}()

	defer profiling.Track("scene.Draw")()
	e := ctx.Engine
	e.ClearBuffer(engine.Cyan, true)

	// Translate3D builds a fresh matrix, so each instance is positioned absolutely.
	for _, c := range s.Cubes {
		world := mgl32.Translate3D(c.X(), c.Y(), c.Z())
		e.DrawObject(ctx.View.Mul4(world), s.Texture.Decal(), s.Cube, engine.White)
	}
	for _, l := range s.Lights {
		world := mgl32.Translate3D(l.Pos.X(), l.Pos.Y(), l.Pos.Z())
		e.DrawObject(ctx.View.Mul4(world), nil, s.LightCube, l.Tint)
	}
}
