//go:build android || ios

// Package mobile is the ebitenmobile binding for the Android and iOS shells.
//
// The shell sets the storage directories, then calls StartGame, and calls
// OnPause, OnResume and OnLowMemory from the matching OS callbacks:
//
//	ebitenmobile bind -target android -javapkg com.hw3d.demo -o build/hw3d.aar ./mobile
//	ebitenmobile bind -target ios -o build/HW3D.xcframework ./mobile
package mobile

import (
	"log/slog"
	"os"
	"runtime"
	"sync"

	"hw3d-demo/internal/config"
	"hw3d-demo/internal/demo"
	"hw3d-demo/internal/engine/ebitenhost"
	"hw3d-demo/internal/savestate"

	"github.com/hajimehoshi/ebiten/v2/mobile"
)

var (
	mu    sync.Mutex
	paths savestate.StaticPaths
	game  *ebitenhost.Game
)

// SetInternalStorage records the app's private files directory.
func SetInternalStorage(dir string) {
	mu.Lock()
	defer mu.Unlock()
	paths.Internal = dir
}

// SetExternalStorage records the app's private library directory.
func SetExternalStorage(dir string) {
	mu.Lock()
	defer mu.Unlock()
	paths.External = dir
}

// StartGame builds the demo and hands it to ebitenmobile. Later calls are no-ops.
func StartGame() {
	mu.Lock()
	defer mu.Unlock()
	if game != nil {
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cfg := config.Default()

	var store *savestate.Store
	dir, err := savestate.Dir(runtime.GOOS, paths)
	if err != nil {
		log.Warn("state will not persist", "error", err)
	} else {
		store = savestate.NewStore(dir, log)
	}

	w, h := cfg.LayerSize()
	game = ebitenhost.NewGame(demo.New(cfg, store, log), w, h, log)
	mobile.SetGame(game)
}

// OnPause saves the demo state. It returns once the state file is written, so
// the shell must call it from the OS pause callback itself.
func OnPause() {
	if g := current(); g != nil {
		g.PauseNow()
	}
}

// OnResume restores the state saved by OnPause.
func OnResume() {
	if g := current(); g != nil {
		g.ResumeNow()
	}
}

// OnLowMemory forwards the OS memory warning.
func OnLowMemory() {
	if g := current(); g != nil {
		g.LowMemoryNow()
	}
}

func current() *ebitenhost.Game {
	mu.Lock()
	defer mu.Unlock()
	return game
}

// Dummy is a dummy exported function.
//
// gomobile doesn't compile a package that doesn't include any exported function.
// Dummy forces gomobile to compile this package.
func Dummy() {}
