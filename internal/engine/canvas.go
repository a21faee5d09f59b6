package engine

import (
	"image"

	"hw3d-demo/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

// Object is one queued DrawObject call.
type Object struct {
	Transform mgl32.Mat4
	Decal     *Decal
	Mesh      *geom.Mesh
	Tint      Pixel
}

type decalDraw struct {
	pos   mgl32.Vec2
	decal *Decal
	scale mgl32.Vec2
}

// Canvas implements the drawing half of Engine on the CPU and queues 3D objects
// for the host to present. A frame is composed as: background colour, 3D objects,
// then the screen layer with its decals on top.
type Canvas struct {
	size   image.Point
	layer  *Sprite
	target *Sprite

	proj       mgl32.Mat4
	cull       CullMode
	background Pixel
	clearDepth bool

	objects []Object
	decals  []decalDraw
}

// NewCanvas returns a canvas whose screen layer is w x h pixels.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		size:       image.Pt(w, h),
		layer:      NewSprite(w, h),
		proj:       mgl32.Ident4(),
		cull:       CullNone,
		background: Black,
	}
	c.target = c.layer
	return c
}

func (c *Canvas) ScreenSize() image.Point { return c.size }

func (c *Canvas) SetDrawTarget(s *Sprite) {
	if s == nil {
		s = c.layer
	}
	c.target = s
}

func (c *Canvas) DrawTarget() *Sprite { return c.target }

// Clear fills the current target. On the screen layer it sets the background
// colour and leaves the layer transparent so 3D objects stay visible.
func (c *Canvas) Clear(p Pixel) {
	if c.target == c.layer {
		c.background = p
		c.layer.Clear(Blank)
		return
	}
	c.target.Clear(p)
}

func (c *Canvas) FillCircle(ctr image.Point, r int, p Pixel) { c.target.FillCircle(ctr, r, p) }
func (c *Canvas) DrawLine(a, b image.Point, p Pixel)       { c.target.DrawLine(a, b, p) }
func (c *Canvas) DrawString(pos image.Point, text string, p Pixel) {
	c.target.DrawString(pos, text, p)
}

func (c *Canvas) DrawDecal(pos mgl32.Vec2, d *Decal, scale mgl32.Vec2) {
	if d == nil {
		return
	}
	c.decals = append(c.decals, decalDraw{pos: pos, decal: d, scale: scale})
}

func (c *Canvas) ClearBuffer(p Pixel, depth bool) {
	c.background = p
	c.clearDepth = c.clearDepth || depth
}

func (c *Canvas) SetProjection(m mgl32.Mat4) { c.proj = m }
func (c *Canvas) Projection() mgl32.Mat4     { return c.proj }
func (c *Canvas) SetCullMode(m CullMode)     { c.cull = m }
func (c *Canvas) CullMode() CullMode         { return c.cull }

func (c *Canvas) DrawObject(transform mgl32.Mat4, tex *Decal, mesh *geom.Mesh, tint Pixel) {
	if mesh == nil || len(mesh.Pos) == 0 {
		return
	}
	c.objects = append(c.objects, Object{Transform: transform, Decal: tex, Mesh: mesh, Tint: tint})
}

// Frame is everything queued since the last BeginFrame, ready for presentation.
type Frame struct {
	Background Pixel
	ClearDepth bool
	Projection mgl32.Mat4
	Cull       CullMode
	Objects    []Object
	Layer      *Sprite
}

// BeginFrame drops the previous frame's queue.
func (c *Canvas) BeginFrame() {
	c.objects = c.objects[:0]
	c.decals = c.decals[:0]
	c.clearDepth = false
	c.target = c.layer
}

// EndFrame composites queued decals onto the screen layer and returns the frame.
func (c *Canvas) EndFrame() Frame {
	for _, d := range c.decals {
		c.layer.DrawSprite(image.Pt(int(d.pos.X()), int(d.pos.Y())), d.decal.Sprite(), d.scale.X(), d.scale.Y())
	}
	c.decals = c.decals[:0]
	return Frame{
		Background: c.background,
		ClearDepth: c.clearDepth,
		Projection: c.proj,
		Cull:       c.cull,
		Objects:    c.objects,
		Layer:      c.layer,
	}
}
