package entity

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/milk9111/heighthop/common"
	"github.com/milk9111/heighthop/ecs"
	"github.com/milk9111/heighthop/ecs/component"
	"github.com/milk9111/heighthop/prefabs"
)

// NewObstacle builds the obstacle prefab around one level rectangle. The
// obstacle's ID is the entity itself.
func NewObstacle(w *ecs.World, spec prefabs.ObstacleSpec) (ecs.Entity, error) {
	e, err := buildEntity(w, "obstacle.yaml", &buildContext{PrefabPath: "obstacle.yaml", Obstacle: &spec})
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, spec.X, spec.Y, 0); err != nil {
		return 0, fmt.Errorf("obstacle: override transform: %w", err)
	}

	if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
		sprite.Shape = component.SpriteRect
		sprite.Width = spec.W
		sprite.Height = spec.H
		sprite.OriginX = spec.W / 2
		sprite.OriginY = spec.H / 2
		sprite.Color = ObstacleShade(spec.Height)
		sprite.Label = strconv.FormatFloat(spec.Height, 'g', -1, 64)
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		body.Width = spec.W
		body.Height = spec.H
		body.Static = true
	}
	return e, nil
}

// ObstacleShade darkens with height so taller obstacles read as higher.
func ObstacleShade(h float64) color.NRGBA {
	c := uint8(common.Clamp(200-25*h, 60, 200))
	return color.NRGBA{R: c, G: c, B: c, A: 255}
}
