// Package sim assembles a playable world from a level: entities, the
// physics space and the fixed system order. The game window and the
// headless simulator both drive it.
package sim

import (
	"context"
	"fmt"

	"github.com/milk9111/heighthop/ecs"
	"github.com/milk9111/heighthop/ecs/component"
	"github.com/milk9111/heighthop/ecs/entity"
	"github.com/milk9111/heighthop/ecs/system"
	"github.com/milk9111/heighthop/height"
	"github.com/milk9111/heighthop/levels"
)

// TickDuration is the fixed step used by headless runs, in seconds.
const TickDuration = 1.0 / 60.0

type Options struct {
	ViewWidth  float64
	ViewHeight float64
	// Keys feeds the input system. Nil leaves the player idle.
	Keys system.KeySource
}

type Simulation struct {
	World     *ecs.World
	Scheduler *ecs.Scheduler
	Physics   *system.PhysicsSystem
	Level     *levels.Level
	Loaded    *entity.LoadedLevel

	tick int
}

// New loads lvl into a fresh world. The physics space is synced before New
// returns so the first tick already sees every obstacle.
func New(ctx context.Context, lvl *levels.Level, opts Options) (*Simulation, error) {
	if lvl == nil {
		return nil, fmt.Errorf("sim: level is nil")
	}
	w := ecs.NewWorld()
	loaded, err := entity.LoadLevelToWorld(ctx, w, lvl, opts.ViewWidth, opts.ViewHeight)
	if err != nil {
		return nil, err
	}

	physics := system.NewPhysicsSystem()
	physics.Sync(w)

	var input ecs.System
	if opts.Keys != nil {
		input = system.NewInputSystem(opts.Keys)
	}
	// Height runs before physics so the collision gate sees this tick's
	// effective height.
	scheduler := ecs.NewScheduler(
		input,
		system.NewPlayerControllerSystem(),
		system.NewHeightSystem(physics),
		physics,
		system.NewCameraSystem(),
	)

	return &Simulation{
		World:     w,
		Scheduler: scheduler,
		Physics:   physics,
		Level:     lvl,
		Loaded:    loaded,
	}, nil
}

// Step advances one tick and returns the events it produced.
func (s *Simulation) Step(dt float64) []ecs.Event {
	s.Scheduler.Update(s.World, dt)
	s.tick++
	return s.World.Events().Drain()
}

func (s *Simulation) Tick() int {
	return s.tick
}

// Height returns the player's height state, or nil before the player exists.
func (s *Simulation) Height() *height.State {
	hc, ok := ecs.Get(s.World, s.Loaded.Player, component.HeightComponent.Kind())
	if !ok {
		return nil
	}
	return hc.State
}

// Sample is one row of the height trace.
type Sample struct {
	Tick      int     `json:"tick"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Base      float64 `json:"base"`
	Target    float64 `json:"target"`
	Effective float64 `json:"effective"`
	Jumping   bool    `json:"jumping"`
	Scale     float64 `json:"scale"`
}

func (s *Simulation) Sample() Sample {
	out := Sample{Tick: s.tick}
	if t, ok := ecs.Get(s.World, s.Loaded.Player, component.TransformComponent.Kind()); ok {
		out.X, out.Y = t.X, t.Y
	}
	if st := s.Height(); st != nil {
		snap := st.Snapshot()
		out.Base = snap.Base
		out.Target = snap.Target
		out.Effective = snap.Effective
		out.Jumping = snap.Jumping
		out.Scale = st.Scale()
	}
	return out
}
