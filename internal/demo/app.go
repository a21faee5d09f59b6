// Package demo is the Hardware3D demo application: a lit cube grid, touch
// reporting and a save/restore of a small state vector across OS pauses.
package demo

import (
	"fmt"
	"image"
	_ "image/png"
	"log/slog"
	"os"

	"hw3d-demo/internal/audio"
	"hw3d-demo/internal/config"
	"hw3d-demo/internal/engine"
	"hw3d-demo/internal/savestate"
	"hw3d-demo/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	messageX    = 20
	messageStep = 10
	logoMargin  = 100
)

// DefaultState is the record list written on every pause.
func DefaultState() []savestate.Record {
	return []savestate.Record{
		{Name: "MouseX", Value: 55},
		{Name: "MouseY", Value: 25},
		{Name: "GameLevel", Value: 5},
	}
}

// soundMixer is the part of audio.Mixer the demo uses.
type soundMixer interface {
	LoadSound(path string, loop bool) (int32, error)
	SetVolume(id int32, v float64) error
	Play(id int32) error
	PauseAll()
	ResumeAll()
	Unload(id int32) error
	Close()
}

// App implements engine.Application.
type App struct {
	cfg   config.Config
	log   *slog.Logger
	store *savestate.Store

	scene    *scene.Scene
	messages []string

	logo *engine.Decal

	mixer soundMixer
	song  int32

	// State is rebuilt and saved on every pause; LastState holds what the latest restore read back.
	State     []savestate.Record
	LastState []savestate.Record
}

// New returns the demo. store may be nil, in which case state is not persisted.
func New(cfg config.Config, store *savestate.Store, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	return &App{
		cfg:   cfg,
		log:   log.With("component", "demo"),
		store: store,
		song:  audio.NoSound,
	}
}

func (a *App) Scene() *scene.Scene { return a.scene }
func (a *App) Logo() *engine.Decal { return a.logo }

func (a *App) OnCreate(e engine.Engine) bool {
	a.scene = scene.New()
	a.scene.Setup(e)

	e.SetDrawTarget(nil)
	e.Clear(engine.VeryDarkBlue)

	a.logo = a.loadLogo()
	a.startAudio()

	size := e.ScreenSize()
	a.log.Info("created", "title", a.cfg.Title, "width", size.X, "height", size.Y)
	return true
}

func (a *App) OnUpdate(e engine.Engine, elapsed float32) bool {
	e.SetDrawTarget(nil)
	e.Clear(engine.Blue)

	a.messages = append(a.messages,
		"OneLoneCoder.com",
		"PGE Mobile Release 2.2.X",
		"Now With 3D Support",
		"NOTE: Android FPS = CPU FPS, iOS = GPU FPS",
		fmt.Sprintf("%s - FPS: %d", a.cfg.Title, e.FPS()),
		"---",
	)

	touch := e.TouchPos()
	a.messages = append(a.messages, fmt.Sprintf("Default Touch 0:  X: %d Y: %d", touch.X, touch.Y))
	for _, r := range a.LastState {
		a.messages = append(a.messages, fmt.Sprintf("Restored %s: %d", r.Name, r.Value))
	}

	a.scene.Update(e, elapsed)

	for _, t := range e.Touches() {
		DrawTargetPointer(e, t, 20, 10, engine.White)
	}

	y := messageStep
	for _, m := range a.messages {
		e.DrawString(image.Pt(messageX, y), m, engine.White)
		y += messageStep
	}
	a.messages = a.messages[:0]

	if a.logo == nil {
		a.logo = a.loadLogo()
	}
	size := e.ScreenSize()
	e.DrawDecal(mgl32.Vec2{5, float32(size.Y - logoMargin)}, a.logo, mgl32.Vec2{0.5, 0.5})
	return true
}

func (a *App) OnDestroy() bool {
	if a.mixer != nil {
		if a.song != audio.NoSound {
			if err := a.mixer.Unload(a.song); err != nil {
				a.log.Warn("sample not released", "id", a.song, "error", err)
			}
			a.song = audio.NoSound
		}
		a.mixer.Close()
	}
	a.log.Info("destroyed")
	return true
}

// OnSaveStateRequested writes State to protected storage. The OS allows only a
// few seconds here; failures are logged and otherwise ignored.
func (a *App) OnSaveStateRequested() {
	if a.mixer != nil {
		a.mixer.PauseAll()
	}
	a.State = append(a.State[:0], DefaultState()...)
	if a.store == nil {
		return
	}
	a.store.SaveQuietly(a.State)
}

// OnRestoreStateRequested reloads the state saved by the last pause, if any.
func (a *App) OnRestoreStateRequested() {
	a.LastState = a.LastState[:0]
	if a.store != nil {
		a.LastState = append(a.LastState, a.store.RestoreQuietly()...)
	}
	if a.mixer != nil {
		a.mixer.ResumeAll()
	}
}

// OnLowMemoryWarning drops the logo; it is rebuilt on the next frame.
func (a *App) OnLowMemoryWarning() {
	a.logo = nil
	a.log.Warn("low memory: released logo decal")
}

func (a *App) startAudio() {
	if a.cfg.Audio.Sample == "" {
		return
	}
	if a.mixer == nil {
		a.mixer = audio.NewMixer(a.cfg.Audio.SampleRate, a.log)
	}
	id, err := a.mixer.LoadSound(a.cfg.Audio.Sample, a.cfg.Audio.Loop)
	if err != nil {
		a.log.Warn("sample not loaded", "path", a.cfg.Audio.Sample, "error", err)
		return
	}
	a.song = id
	if err := a.mixer.SetVolume(id, a.cfg.Audio.Volume); err != nil {
		a.log.Warn("sample volume not set", "id", id, "error", err)
	}
	if err := a.mixer.Play(id); err != nil {
		a.log.Warn("sample not started", "id", id, "error", err)
	}
}

func (a *App) loadLogo() *engine.Decal {
	if a.cfg.LogoPath != "" {
		s, err := loadSprite(a.cfg.LogoPath)
		if err == nil {
			return engine.NewDecal(s)
		}
		a.log.Warn("logo not loaded, using built-in badge", "path", a.cfg.LogoPath, "error", err)
	}
	return engine.NewDecal(Badge())
}

func loadSprite(path string) (*engine.Sprite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return engine.SpriteFromImage(img), nil
}
