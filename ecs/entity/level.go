package entity

import (
	"context"
	"fmt"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/heighthop/ecs"
	"github.com/milk9111/heighthop/ecs/component"
	"github.com/milk9111/heighthop/height"
	"github.com/milk9111/heighthop/levels"
)

// LoadedLevel holds the entities created by LoadLevelToWorld.
type LoadedLevel struct {
	Bounds    ecs.Entity
	Player    ecs.Entity
	Camera    ecs.Entity
	Obstacles []ecs.Entity
}

// LoadLevelToWorld resolves the level's obstacles and populates the world
// with them, the player at the spawn point and a camera sized to the view.
func LoadLevelToWorld(ctx context.Context, world *ecs.World, lvl *levels.Level, viewW, viewH float64) (*LoadedLevel, error) {
	if world == nil || lvl == nil {
		return nil, fmt.Errorf("load level: world and level are required")
	}

	specs, err := lvl.ResolveObstacles(ctx)
	if err != nil {
		return nil, err
	}

	loaded := &LoadedLevel{}
	loaded.Bounds = ecs.CreateEntity(world)
	if err := ecs.Add(world, loaded.Bounds, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Name:       lvl.Name,
		Width:      lvl.Width,
		Height:     lvl.Height,
		Background: lvl.BackgroundColor(),
		GridSize:   lvl.GridSize,
	}); err != nil {
		return nil, err
	}

	for i, spec := range specs {
		e, err := NewObstacle(world, spec)
		if err != nil {
			return nil, fmt.Errorf("load level: %s: obstacle %d: %w", lvl.Name, i, err)
		}
		loaded.Obstacles = append(loaded.Obstacles, e)
	}

	loaded.Player, err = NewPlayerAt(world, lvl.Spawn.X, lvl.Spawn.Y)
	if err != nil {
		return nil, fmt.Errorf("load level: %s: %w", lvl.Name, err)
	}
	settleOnSpawn(world, loaded.Player, lvl.Spawn)

	loaded.Camera, err = NewCamera(world, viewW, viewH)
	if err != nil {
		return nil, fmt.Errorf("load level: %s: %w", lvl.Name, err)
	}
	if cam, ok := ecs.Get(world, loaded.Camera, component.TransformComponent.Kind()); ok {
		cam.X = lvl.Spawn.X - viewW/2
		cam.Y = lvl.Spawn.Y - viewH/2
	}

	return loaded, nil
}

// settleOnSpawn starts the player at the height of whatever it spawns on,
// so a spawn point inside a tall obstacle does not trap it.
func settleOnSpawn(world *ecs.World, player ecs.Entity, spawn levels.Point) {
	hc, ok := ecs.Get(world, player, component.HeightComponent.Kind())
	if !ok || hc.State == nil {
		return
	}
	radius := 0.0
	if body, ok := ecs.Get(world, player, component.PhysicsBodyComponent.Kind()); ok {
		radius = body.Radius
	}
	center := cp.Vector{X: spawn.X, Y: spawn.Y}

	var under []height.Obstacle
	ecs.ForEach(world, component.ObstacleComponent.Kind(), func(_ ecs.Entity, o *height.Obstacle) {
		if o.OverlapsCircle(center, radius) {
			under = append(under, *o)
		}
	})
	sort.Slice(under, func(i, j int) bool { return under[i].ID < under[j].ID })
	if nearest, ok := height.Nearest(center, under); ok {
		hc.State.SetBase(nearest.Height)
	}
}
