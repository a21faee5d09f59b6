package ebitenhost

import (
	"context"
	"fmt"
	"log/slog"

	"hw3d-demo/internal/config"
	"hw3d-demo/internal/engine"

	"github.com/hajimehoshi/ebiten/v2"
)

// Run opens a desktop window through Ebitengine and blocks until the
// application stops, the window closes or ctx ends.
func Run(ctx context.Context, app engine.Application, cfg config.Config, log *slog.Logger) error {
	w, h := cfg.LayerSize()
	g := NewGame(app, w, h, log)
	g.ctx = ctx
	defer g.Close()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetFullscreen(cfg.Screen.Fullscreen)
	ebiten.SetVsyncEnabled(cfg.Screen.VSync)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
