// Command hw3d-demo runs the Hardware3D demo on the desktop.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"hw3d-demo/internal/config"
	"hw3d-demo/internal/demo"
	"hw3d-demo/internal/engine/ebitenhost"
	"hw3d-demo/internal/engine/glhost"
	"hw3d-demo/internal/engine/headless"
	"hw3d-demo/internal/savestate"

	"github.com/xlab/closer"
)

// GLFW and GL calls must stay on the main thread.
func init() { runtime.LockOSThread() }

func main() {
	configPath := flag.String("config", "hw3d.yaml", "YAML config file; missing means defaults")
	host := flag.String("host", "gl", "Presentation host: gl, ebiten or headless")
	stateDir := flag.String("state-dir", "", "Override the protected storage directory")
	logLevel := flag.String("log-level", "", "Override the config log level (debug, info, warn, error)")
	hz := flag.Int("hz", 60, "Headless frame rate")
	ticks := flag.Uint64("ticks", 0, "Headless frame limit; 0 runs until interrupted")
	pauseEvery := flag.Uint64("pause-every", 0, "Headless: simulate a pause/resume every N frames")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *stateDir != "" {
		cfg.StateDir = *stateDir
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	closer.Bind(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(3 * time.Second):
			log.Warn("shutdown timed out")
		}
	})

	err = run(ctx, *host, cfg, log, headless.Config{Hz: *hz, Ticks: *ticks, PauseEvery: *pauseEvery})
	close(done)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("demo failed", "host", *host, "error", err)
		closer.Exit(1)
	}
	closer.Close()
}

func run(ctx context.Context, host string, cfg config.Config, log *slog.Logger, hc headless.Config) error {
	app := demo.New(cfg, openStore(cfg, log), log)

	switch host {
	case "gl":
		return glhost.Run(ctx, app, cfg, log)
	case "ebiten":
		return ebitenhost.Run(ctx, app, cfg, log)
	case "headless":
		hc.Width, hc.Height = cfg.LayerSize()
		return headless.Run(ctx, app, hc, log)
	default:
		return fmt.Errorf("unknown host %q", host)
	}
}

// openStore returns nil when no storage directory is available; the demo then
// runs without persisting state.
func openStore(cfg config.Config, log *slog.Logger) *savestate.Store {
	dir := cfg.StateDir
	if dir == "" {
		var err error
		dir, err = savestate.Dir(runtime.GOOS, nil)
		if err != nil {
			log.Warn("state will not persist", "error", err)
			return nil
		}
	}
	return savestate.NewStore(dir, log)
}
