package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/heighthop/config"
	"github.com/milk9111/heighthop/logger"
	"go.uber.org/zap"
)

func main() {
	flags := config.BindFlags(flag.CommandLine)
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatal(err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)
	ebiten.SetTPS(cfg.Game.TPS)

	game, err := NewGame(cfg)
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game exited", zap.Error(err))
	}
}
