// Package glhost presents an engine.Application in a desktop window using
// GLFW and OpenGL 4.1. Run must be called from the main OS thread.
package glhost

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"hw3d-demo/internal/config"
	"hw3d-demo/internal/engine"
	"hw3d-demo/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	// slowFrame is the frame time above which the per-frame breakdown is logged.
	slowFrame = 50 * time.Millisecond
	// pausedFPS caps the loop while the application is paused.
	pausedFPS = 30
)

// Host is the engine.Engine seen by the application while running under GLFW.
type Host struct {
	*engine.Canvas

	window    *glfw.Window
	lifecycle *engine.Lifecycle
	renderer  *renderer
	limiter   frameLimiter
	fps       *profiling.FPSCounter
	log       *slog.Logger
	cfg       config.Config

	touch   image.Point
	touches []image.Point
}

func (h *Host) TouchPos() image.Point  { return h.touch }
func (h *Host) Touches() []image.Point { return h.touches }
func (h *Host) FPS() int               { return h.fps.FPS() }

// Run opens a window, drives app until the window closes, the context ends or
// the application stops, and tears everything down.
func Run(ctx context.Context, app engine.Application, cfg config.Config, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "glhost")

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(cfg)
	if err != nil {
		return err
	}
	defer window.Destroy()

	r, err := newRenderer()
	if err != nil {
		return err
	}
	defer r.dispose()

	lw, lh := cfg.LayerSize()
	h := &Host{
		Canvas:   engine.NewCanvas(lw, lh),
		window:   window,
		renderer: r,
		fps:      profiling.NewFPSCounter(),
		log:      log,
		cfg:      cfg,
	}
	h.lifecycle = engine.NewLifecycle(app, log)
	h.bindCallbacks()

	log.Info("window opened",
		"gl", gl.GoStr(gl.GetString(gl.VERSION)),
		"layer", fmt.Sprintf("%dx%d", lw, lh))

	h.BeginFrame()
	if !h.lifecycle.Start(h) {
		return nil
	}
	defer h.lifecycle.Stop()

	last := time.Now()
	for !window.ShouldClose() {
		if err := ctx.Err(); err != nil {
			return nil
		}
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now
		if !h.tick(now, dt) {
			return nil
		}
	}
	return nil
}

func (h *Host) tick(now time.Time, dt float32) bool {
	profiling.ResetFrame()
	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()
	h.pollTouches()

	h.BeginFrame()
	var ok bool
	func() {
		defer profiling.Track("app.Update")()
		ok = h.lifecycle.Frame(h, dt)
	}()
	if !ok {
		return false
	}

	frame := h.EndFrame()
	h.renderer.render(frame)
	func() { defer profiling.Track("glfw.SwapBuffers")(); h.window.SwapBuffers() }()

	h.fps.Tick(now)
	if took := time.Since(now); took > slowFrame {
		h.log.Warn("slow frame",
			"took", took,
			"update", profiling.Total("app.Update"),
			"gl", profiling.SumWithPrefix("gl."),
			"glfw", profiling.SumWithPrefix("glfw."),
			"breakdown", profiling.TopN(5))
	}

	h.limiter.wait(frameLimit(h.cfg, h.lifecycle.Paused()))
	return true
}

// frameLimit is the rate the software limiter paces to; zero leaves pacing to vsync.
func frameLimit(cfg config.Config, paused bool) int {
	if paused {
		return pausedFPS
	}
	if cfg.Screen.VSync {
		return 0
	}
	return cfg.FPSLimit
}

func setupWindow(cfg config.Config) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	var monitor *glfw.Monitor
	if cfg.Screen.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}
	window, err := glfw.CreateWindow(cfg.Screen.Width, cfg.Screen.Height, cfg.Title, monitor, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("init gl: %w", err)
	}

	if cfg.Screen.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	fw, fh := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fw), int32(fh))
	return window, nil
}

// bindCallbacks maps window events onto the lifecycle: losing focus or being
// iconified pauses the application, getting it back resumes it.
func (h *Host) bindCallbacks() {
	h.window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, hgt int) {
		gl.Viewport(0, 0, int32(w), int32(hgt))
	})
	h.window.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		h.lifecycle.SetFocused(focused)
	})
	h.window.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		h.lifecycle.SetFocused(!iconified)
	})
	h.window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyF8:
			h.lifecycle.LowMemory()
		}
	})
}

// pollTouches reports the cursor as touch 0, in screen layer pixels. The
// touch list holds it only while the left button is down.
func (h *Host) pollTouches() {
	x, y := h.window.GetCursorPos()
	ww, wh := h.window.GetSize()
	size := h.ScreenSize()
	if ww > 0 && wh > 0 {
		x = x * float64(size.X) / float64(ww)
		y = y * float64(size.Y) / float64(wh)
	}
	h.touch = image.Pt(int(x), int(y))

	h.touches = h.touches[:0]
	if h.window.GetMouseButton(glfw.MouseButtonLeft) == glfw.Press {
		h.touches = append(h.touches, h.touch)
	}
}
