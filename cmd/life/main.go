//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"life-sim/internal/app"
	"life-sim/pkg/sims/life"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	logger := cfg.InstallLogger(os.Stderr)

	scale := max(cfg.Scale, 1)
	screenW, screenH := ebiten.ScreenSizeInFullscreen()
	viewW, viewH := viewportGrid(screenW, screenH, scale)

	engineCfg, err := cfg.EngineConfig(viewW, viewH)
	if err != nil {
		log.Fatal(err)
	}
	sim, err := life.New(engineCfg)
	if err != nil {
		log.Fatal(err)
	}
	size := sim.Size()
	logger.Info("starting", "w", size.W, "h", size.H, "edge", engineCfg.Edge, "neighbors", engineCfg.Neighbors)

	game := app.New(sim, scale, engineCfg.Seed, cfg.HUD)

	ebiten.SetWindowTitle("life - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
