package engine

import (
	"image"
	"testing"

	"hw3d-demo/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCanvasClearOnLayerSetsBackground(t *testing.T) {
	c := NewCanvas(32, 32)
	c.BeginFrame()
	c.Clear(Blue)
	c.DrawString(image.Pt(0, 0), "x", White)
	f := c.EndFrame()
	if f.Background != Blue {
		t.Errorf("background = %v, want blue", f.Background)
	}
	if f.Layer.GetPixel(31, 31) != Blank {
		t.Errorf("cleared layer should stay transparent")
	}

	c.BeginFrame()
	c.Clear(Blue)
	c.ClearBuffer(Cyan, true)
	f = c.EndFrame()
	if f.Background != Cyan || !f.ClearDepth {
		t.Errorf("got background %v depth %v, want cyan with depth", f.Background, f.ClearDepth)
	}
}

func TestCanvasOffscreenTarget(t *testing.T) {
	c := NewCanvas(16, 16)
	tex := NewRenderable(8, 8)
	c.SetDrawTarget(tex.Sprite())
	c.Clear(White)
	c.FillCircle(image.Pt(4, 4), 1, Red)
	c.SetDrawTarget(nil)

	if tex.Sprite().GetPixel(0, 0) != White || tex.Sprite().GetPixel(4, 4) != Red {
		t.Error("offscreen drawing did not reach the sprite")
	}
	if c.DrawTarget() != c.EndFrame().Layer {
		t.Error("nil target should restore the screen layer")
	}
}

func TestCanvasQueuesObjectsAndDecals(t *testing.T) {
	c := NewCanvas(64, 64)
	mesh := geom.CreateCube(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{})
	logo := NewSprite(4, 4)
	logo.Clear(Green)

	c.BeginFrame()
	c.DrawObject(mgl32.Ident4(), nil, mesh, White)
	c.DrawObject(mgl32.Ident4(), nil, &geom.Mesh{}, White)
	c.DrawDecal(mgl32.Vec2{10, 10}, NewDecal(logo), mgl32.Vec2{1, 1})
	f := c.EndFrame()

	if len(f.Objects) != 1 {
		t.Fatalf("queued %d objects, want 1 (empty mesh is dropped)", len(f.Objects))
	}
	if f.Layer.GetPixel(11, 11) != Green {
		t.Error("decal was not composited onto the layer")
	}

	c.BeginFrame()
	if f := c.EndFrame(); len(f.Objects) != 0 || f.ClearDepth {
		t.Error("BeginFrame did not reset the queue")
	}
}
