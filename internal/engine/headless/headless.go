// Package headless runs an application without a window, recording what it draws.
package headless

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"hw3d-demo/internal/engine"
	"hw3d-demo/internal/profiling"
)

// Config controls the no-window runner.
type Config struct {
	Width  int
	Height int
	Hz     int
	// Ticks stops the run after N frames; 0 runs until the context ends.
	Ticks uint64
	// PauseEvery simulates an OS pause/resume cycle every N frames; 0 disables it.
	PauseEvery uint64
}

// Recorder is an Engine that presents frames into memory.
type Recorder struct {
	*engine.Canvas

	touches []image.Point
	fps     *profiling.FPSCounter

	// Last is the most recently presented frame.
	Last      engine.Frame
	Triangles []engine.ScreenTriangle
	Frames    uint64
}

// NewRecorder returns a recorder with a w x h screen.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{
		Canvas: engine.NewCanvas(w, h),
		fps:    profiling.NewFPSCounter(),
	}
}

// SetTouches sets the simulated touch points; the first one is the primary touch.
func (r *Recorder) SetTouches(pts ...image.Point) {
	r.touches = append(r.touches[:0], pts...)
}

func (r *Recorder) TouchPos() image.Point {
	if len(r.touches) == 0 {
		return image.Point{}
	}
	return r.touches[0]
}

func (r *Recorder) Touches() []image.Point { return r.touches }
func (r *Recorder) FPS() int               { return r.fps.FPS() }

// Present ends the current frame, projecting its objects the way a GPU host would.
func (r *Recorder) Present(now time.Time) {
	r.Last = r.EndFrame()
	r.Triangles = r.Triangles[:0]
	for _, o := range r.Last.Objects {
		r.Triangles = engine.ProjectObject(r.Triangles, r.Last.Projection, o, r.ScreenSize(), r.Last.Cull)
	}
	r.fps.Tick(now)
	r.Frames++
}

// Step runs one frame of l against r with the given elapsed time.
func (r *Recorder) Step(l *engine.Lifecycle, dt float32) bool {
	r.BeginFrame()
	ok := l.Frame(r, dt)
	r.Present(time.Now())
	return ok
}

// Run drives app at cfg.Hz until the context ends, the tick limit is reached or the
// application stops itself.
func Run(ctx context.Context, app engine.Application, cfg Config, log *slog.Logger) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid headless size: %dx%d", cfg.Width, cfg.Height)
	}
	if log == nil {
		log = slog.Default()
	}

	rec := NewRecorder(cfg.Width, cfg.Height)
	l := engine.NewLifecycle(app, log)
	if !l.Start(rec) {
		return nil
	}
	defer l.Stop()

	d := time.Second / time.Duration(cfg.Hz)
	t := time.NewTicker(d)
	defer t.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			dt := float32(now.Sub(last).Seconds())
			last = now
			if !rec.Step(l, dt) {
				return nil
			}
			if cfg.PauseEvery > 0 && rec.Frames%cfg.PauseEvery == 0 {
				l.Pause()
				l.Resume()
			}
			if cfg.Ticks > 0 && rec.Frames >= cfg.Ticks {
				log.Info("headless run finished", "frames", rec.Frames, "triangles", len(rec.Triangles))
				return nil
			}
		}
	}
}
