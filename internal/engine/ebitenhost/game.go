// Package ebitenhost presents an engine.Application through Ebitengine, which
// also backs the Android and iOS builds. Ebitengine has no depth buffer, so 3D
// objects are projected on the CPU and painted far to near.
package ebitenhost

import (
	"context"
	"image"
	"log/slog"
	"sync"
	"time"

	"hw3d-demo/internal/engine"
	"hw3d-demo/internal/profiling"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// maxBatch keeps each DrawTriangles call within uint16 indices.
const maxBatch = 65535 / 3

type decalImage struct {
	img      *ebiten.Image
	revision uint64
}

// Game adapts an engine.Application to ebiten.Game.
type Game struct {
	*engine.Canvas

	lifecycle *engine.Lifecycle
	log       *slog.Logger
	fps       *profiling.FPSCounter
	ctx       context.Context

	// mu serialises Update with lifecycle calls arriving from platform callbacks.
	mu sync.Mutex

	started bool
	focused bool
	touch   image.Point
	touches []image.Point
	ids     []ebiten.TouchID

	frame  engine.Frame
	tris   []engine.ScreenTriangle
	verts  []ebiten.Vertex
	idx    []uint16
	images map[*engine.Decal]*decalImage
	white  *ebiten.Image
	layer  *ebiten.Image
}

// NewGame returns a game presenting app on a w x h screen layer.
func NewGame(app engine.Application, w, h int, log *slog.Logger) *Game {
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "ebitenhost")
	return &Game{
		Canvas:    engine.NewCanvas(w, h),
		lifecycle: engine.NewLifecycle(app, log),
		log:       log,
		fps:       profiling.NewFPSCounter(),
		focused:   true,
		images:    make(map[*engine.Decal]*decalImage),
	}
}

func (g *Game) TouchPos() image.Point  { return g.touch }
func (g *Game) Touches() []image.Point { return g.touches }
func (g *Game) FPS() int               { return g.fps.FPS() }

// PauseNow saves the application's state before returning. Platform shells call
// it from the OS pause callback, where the frame loop may already be suspended.
func (g *Game) PauseNow() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lifecycle.Pause()
}

// ResumeNow restores the state saved by PauseNow.
func (g *Game) ResumeNow() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lifecycle.Resume()
}

// LowMemoryNow forwards an OS memory warning.
func (g *Game) LowMemoryNow() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lifecycle.LowMemory()
}

// Close destroys the application. Call it once RunGame has returned.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lifecycle.Stop()
}

func (g *Game) Update() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	profiling.ResetFrame()
	if g.ctx != nil && g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if !g.started {
		g.started = true
		g.BeginFrame()
		if !g.lifecycle.Start(g) {
			return ebiten.Termination
		}
	}
	g.setFocused(ebiten.IsFocused())
	if inpututil.IsKeyJustPressed(ebiten.KeyF8) {
		g.lifecycle.LowMemory()
	}
	g.pollTouches()

	g.BeginFrame()
	dt := float32(1) / float32(ebiten.TPS())
	var ok bool
	func() {
		defer profiling.Track("app.Update")()
		ok = g.lifecycle.Frame(g, dt)
	}()
	if !ok {
		return ebiten.Termination
	}
	g.frame = g.EndFrame()
	return nil
}

// setFocused pauses or resumes the application when the focus changes.
func (g *Game) setFocused(f bool) {
	if f == g.focused {
		return
	}
	g.focused = f
	g.lifecycle.SetFocused(f)
}

// pollTouches reads touches, falling back to the mouse cursor on desktop.
func (g *Game) pollTouches() {
	g.touches = g.touches[:0]
	g.ids = ebiten.AppendTouchIDs(g.ids[:0])
	for _, id := range g.ids {
		x, y := ebiten.TouchPosition(id)
		g.touches = append(g.touches, image.Pt(x, y))
	}
	if len(g.touches) > 0 {
		g.touch = g.touches[0]
		return
	}
	x, y := ebiten.CursorPosition()
	g.touch = image.Pt(x, y)
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.touches = append(g.touches, g.touch)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.frame.Layer == nil {
		return
	}
	screen.Fill(g.frame.Background)
	func() {
		defer profiling.Track("ebiten.Objects")()
		g.drawObjects(screen)
	}()
	func() {
		defer profiling.Track("ebiten.Layer")()
		g.drawLayer(screen)
	}()
	g.fps.Tick(time.Now())
}

func (g *Game) Layout(_, _ int) (int, int) {
	s := g.ScreenSize()
	return s.X, s.Y
}

func (g *Game) drawObjects(screen *ebiten.Image) {
	f := g.frame
	g.tris = g.tris[:0]
	for _, o := range f.Objects {
		if o.Mesh == nil {
			continue
		}
		g.tris = engine.ProjectObject(g.tris, f.Projection, o, g.ScreenSize(), f.Cull)
	}
	paintersOrder(g.tris)

	if g.white == nil {
		g.white = ebiten.NewImage(3, 3)
		g.white.Fill(engine.White)
	}
	op := &ebiten.DrawTrianglesOptions{}
	live := make(map[*engine.Decal]bool)
	for _, b := range batches(g.tris, maxBatch) {
		d := g.tris[b.start].Decal
		src, sw, sh := g.white, float32(0), float32(0)
		if d != nil {
			live[d] = true
			src = g.decalImage(d)
			sw, sh = float32(src.Bounds().Dx()), float32(src.Bounds().Dy())
		}
		g.verts, g.idx = g.verts[:0], g.idx[:0]
		for _, t := range g.tris[b.start:b.end] {
			for _, v := range t.V {
				sx, sy := float32(1.5), float32(1.5)
				if d != nil {
					sx, sy = v.U*sw, v.V*sh
				}
				g.idx = append(g.idx, uint16(len(g.verts)))
				g.verts = append(g.verts, ebiten.Vertex{
					DstX:   v.X,
					DstY:   v.Y,
					SrcX:   sx,
					SrcY:   sy,
					ColorR: float32(v.Col.R) / 255,
					ColorG: float32(v.Col.G) / 255,
					ColorB: float32(v.Col.B) / 255,
					ColorA: float32(v.Col.A) / 255,
				})
			}
		}
		screen.DrawTriangles(g.verts, g.idx, src, op)
	}

	for d, di := range g.images {
		if !live[d] {
			di.img.Deallocate()
			delete(g.images, d)
		}
	}
}

// decalImage returns the GPU copy of d, refreshed when its revision moves.
func (g *Game) decalImage(d *engine.Decal) *ebiten.Image {
	s := d.Sprite()
	di, ok := g.images[d]
	if ok && di.img.Bounds().Size() != image.Pt(s.Width(), s.Height()) {
		di.img.Deallocate()
		ok = false
	}
	if !ok {
		di = &decalImage{img: ebiten.NewImage(s.Width(), s.Height()), revision: d.Revision() + 1}
		g.images[d] = di
	}
	if di.revision == d.Revision() {
		return di.img
	}
	di.img.WritePixels(s.Pixels())
	di.revision = d.Revision()
	return di.img
}

func (g *Game) drawLayer(screen *ebiten.Image) {
	l := g.frame.Layer
	if g.layer == nil || g.layer.Bounds().Dx() != l.Width() || g.layer.Bounds().Dy() != l.Height() {
		if g.layer != nil {
			g.layer.Deallocate()
		}
		g.layer = ebiten.NewImage(l.Width(), l.Height())
	}
	g.layer.WritePixels(l.Pixels())
	screen.DrawImage(g.layer, nil)
}
