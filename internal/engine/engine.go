package engine

import (
	"image"

	"hw3d-demo/internal/geom"

	"github.com/go-gl/mathgl/mgl32"
)

// CullMode names the winding of front faces; triangles with the other winding are culled.
type CullMode int

const (
	CullNone CullMode = iota
	CullCW
	CullCCW
)

// Engine is the set of drawing and input services a host exposes to the application.
// All calls happen on the host's frame thread.
type Engine interface {
	ScreenSize() image.Point

	// SetDrawTarget redirects 2D drawing into s; nil restores the screen layer.
	SetDrawTarget(s *Sprite)
	DrawTarget() *Sprite
	Clear(p Pixel)
	FillCircle(c image.Point, r int, p Pixel)
	DrawLine(a, b image.Point, p Pixel)
	DrawString(pos image.Point, text string, p Pixel)
	DrawDecal(pos mgl32.Vec2, d *Decal, scale mgl32.Vec2)

	// ClearBuffer clears the 3D background, and the depth buffer when depth is set.
	ClearBuffer(p Pixel, depth bool)
	SetProjection(m mgl32.Mat4)
	SetCullMode(m CullMode)
	// DrawObject submits mesh transformed by transform (model-view). tex may be nil.
	// The mesh must stay unchanged until the frame is presented.
	DrawObject(transform mgl32.Mat4, tex *Decal, mesh *geom.Mesh, tint Pixel)

	// TouchPos is the position of the primary touch (or the mouse cursor).
	TouchPos() image.Point
	Touches() []image.Point
	FPS() int
}

// Application receives the host's lifecycle callbacks. Returning false from
// OnCreate or OnUpdate asks the host to stop its run loop.
type Application interface {
	OnCreate(e Engine) bool
	OnUpdate(e Engine, elapsed float32) bool
	OnDestroy() bool
	// OnSaveStateRequested runs when the OS is about to pause the app.
	OnSaveStateRequested()
	// OnRestoreStateRequested runs on launch and when the app returns to the foreground.
	OnRestoreStateRequested()
	OnLowMemoryWarning()
}
