package main

import (
	"context"
	"fmt"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/heighthop/assets"
	"github.com/milk9111/heighthop/config"
	"github.com/milk9111/heighthop/ecs"
	"github.com/milk9111/heighthop/ecs/render"
	"github.com/milk9111/heighthop/ecs/system"
	"github.com/milk9111/heighthop/levels"
	"github.com/milk9111/heighthop/logger"
	"github.com/milk9111/heighthop/prefabs"
	"github.com/milk9111/heighthop/sim"
	"go.uber.org/zap"
)

const loadTimeout = 2 * time.Second

type Game struct {
	cfg *config.Config
	log *zap.Logger

	keys    ebitenKeys
	sim     *sim.Simulation
	render  *render.RenderSystem
	sounds  *assets.Sounds
	watcher *prefabs.Watcher
	pauseUI *ebitenui.UI

	paused  bool
	debug   bool
	restart bool
	quit    bool
}

func NewGame(cfg *config.Config) (*Game, error) {
	g := &Game{
		cfg:    cfg,
		log:    logger.Named("game"),
		render: render.NewRenderSystem(),
		sounds: assets.NewSounds(),
		debug:  cfg.Game.Debug,
	}
	g.render.ShowGrid = cfg.Game.ShowGrid

	if err := g.loadLevel(); err != nil {
		return nil, err
	}
	g.pauseUI = NewPauseUI(g)

	if cfg.Dev.WatchPrefabs {
		g.startWatcher()
	}
	return g, nil
}

// loadLevel replaces the running simulation. On error the current one is
// kept.
func (g *Game) loadLevel() error {
	lvl, err := levels.Load(g.cfg.Game.Level)
	if err != nil {
		return err
	}
	if g.cfg.Game.GridSize > 0 {
		lvl.GridSize = g.cfg.Game.GridSize
	}

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()
	s, err := sim.New(ctx, lvl, sim.Options{
		ViewWidth:  float64(g.cfg.Window.Width),
		ViewHeight: float64(g.cfg.Window.Height),
		Keys:       g.keys,
	})
	if err != nil {
		return fmt.Errorf("game: load level %s: %w", lvl.Name, err)
	}

	g.sim = s
	g.log.Info("level loaded",
		zap.String("level", lvl.Name),
		zap.Int("obstacles", len(s.Loaded.Obstacles)),
		zap.Float64("width", lvl.Width),
		zap.Float64("height", lvl.Height),
	)
	return nil
}

// Restart reloads the level from scratch.
func (g *Game) Restart() {
	if err := g.loadLevel(); err != nil {
		g.log.Error("restart failed", zap.Error(err))
		return
	}
	g.paused = false
}

func (g *Game) startWatcher() {
	dirs := prefabs.DiskDirs()
	if dir, ok := levels.DiskDir(); ok {
		dirs = append(dirs, dir)
	}
	if len(dirs) == 0 {
		g.log.Warn("watch requested but no prefab or level directories found on disk")
		return
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		g.log.Error("start watcher", zap.Error(err))
		return
	}
	g.watcher = w
	g.log.Info("watching for changes", zap.Strings("dirs", dirs))
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	open := g.watcher.Drain(func(name string) {
		kind := "prefab"
		switch {
		case prefabs.IsScript(name):
			kind = "script"
		case prefabs.IsLevel(name):
			kind = "level"
		}
		g.log.Info("file changed, reloading", zap.String("file", name), zap.String("kind", kind))
		g.restart = true
	}, func(err error) {
		g.log.Warn("watcher error", zap.Error(err))
	})
	if !open {
		g.watcher = nil
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	g.drainWatcher()

	if g.keys.JustPressed(system.ActionPause) {
		g.paused = !g.paused
	}
	if g.keys.JustPressed(system.ActionDebug) {
		g.debug = !g.debug
		g.log.Debug("debug draws toggled", zap.Bool("on", g.debug))
	}
	if g.keys.JustPressed(system.ActionRestart) {
		g.restart = true
	}
	if g.restart {
		g.restart = false
		g.Restart()
	}

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.handleEvents(g.sim.Step(1 / float64(ebiten.TPS())))
	return nil
}

func (g *Game) handleEvents(events []ecs.Event) {
	for _, evt := range events {
		switch data := evt.Data.(type) {
		case ecs.HeightEvent:
			switch data.Kind {
			case ecs.HeightEventJumpStarted:
				g.sounds.Play(assets.SoundJump)
			case ecs.HeightEventLanded:
				g.sounds.Play(assets.SoundLand)
			}
			g.log.Debug("height",
				zap.String("kind", string(data.Kind)),
				zap.Float64("effective", data.Effective),
				zap.Float64("target", data.Target),
				zap.Int("tick", g.sim.Tick()),
			)
		case ecs.CollisionEvent:
			if data.Kind == ecs.CollisionEventBlocked {
				g.sounds.Play(assets.SoundBlocked)
			}
			g.log.Debug("collision",
				zap.String("kind", string(data.Kind)),
				zap.Stringer("obstacle", data.Obstacle),
				zap.Float64("obstacle_height", data.Height),
				zap.Float64("effective", data.Effective),
			)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.sim.World, screen)
	if g.debug {
		render.DrawPhysicsDebug(g.sim.Physics.Space(), g.sim.World, screen)
		render.DrawHUD(g.sim.World, screen)
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// Close stops the file watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
