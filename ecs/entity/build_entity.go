package entity

import (
	"fmt"
	"image/color"
	"sort"
	"time"

	"github.com/milk9111/heighthop/ecs"
	"github.com/milk9111/heighthop/ecs/component"
	"github.com/milk9111/heighthop/height"
	"github.com/milk9111/heighthop/motion"
	"github.com/milk9111/heighthop/prefabs"
)

type buildContext struct {
	PrefabPath string
	// Obstacle carries the level geometry for obstacle prefabs.
	Obstacle *prefabs.ObstacleSpec
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":   addPlayerTag,
	"camera_tag":   addCameraTag,
	"player":       addPlayer,
	"input":        addInput,
	"height":       addHeight,
	"obstacle":     addObstacle,
	"transform":    addTransform,
	"sprite":       addSprite,
	"render_layer": addRenderLayer,
	"camera":       addCamera,
	"physics_body": addPhysicsBody,
}

var componentBuildOrder = []string{
	"player_tag",
	"camera_tag",
	"player",
	"input",
	"height",
	"obstacle",
	"transform",
	"sprite",
	"render_layer",
	"camera",
	"physics_body",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return buildEntity(w, prefabPath, &buildContext{PrefabPath: prefabPath})
}

func buildEntity(w *ecs.World, prefabPath string, ctx *buildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	names := make([]string, 0, len(remaining))
	for _, name := range componentBuildOrder {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
			delete(remaining, name)
		}
	}
	unknown := make([]string, 0, len(remaining))
	for name := range remaining {
		unknown = append(unknown, name)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, unknown[0])
	}

	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name], ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	tuning := motion.DefaultTuning()
	if spec.Acceleration > 0 {
		tuning.Acceleration = spec.Acceleration
	}
	if spec.Drag > 0 {
		tuning.Drag = spec.Drag
	}
	if spec.MaxSpeed > 0 {
		tuning.MaxSpeed = spec.MaxSpeed
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{Motion: tuning})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type heightSpec = prefabs.HeightComponentSpec

func addHeight(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[heightSpec](raw)
	if err != nil {
		return fmt.Errorf("decode height spec: %w", err)
	}

	tuning := height.DefaultTuning()
	override := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	override(&tuning.AdjustRate, spec.AdjustRate)
	override(&tuning.JumpRise, spec.JumpRise)
	override(&tuning.PassMargin, spec.PassMargin)
	override(&tuning.ScaleFactor, spec.ScaleFactor)
	override(&tuning.BaseScale, spec.BaseScale)
	override(&tuning.MaxHeight, spec.MaxHeight)
	if spec.JumpDurationMS != nil {
		tuning.JumpDuration = time.Duration(*spec.JumpDurationMS * float64(time.Millisecond))
	}

	state, err := height.NewState(tuning)
	if err != nil {
		return err
	}
	state.SetBase(spec.StartHeight)
	return ecs.Add(w, e, component.HeightComponent.Kind(), &component.Height{State: state})
}

func addObstacle(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ObstacleComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode obstacle spec: %w", err)
	}
	if ctx == nil || ctx.Obstacle == nil {
		return fmt.Errorf("obstacle requires level geometry")
	}
	geom := ctx.Obstacle
	value := geom.Height
	if value == 0 {
		value = spec.Height
	}
	o, err := height.NewObstacle(uint64(e), geom.X, geom.Y, geom.W, geom.H, value)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ObstacleComponent.Kind(), &o)
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

var defaultSpriteColor = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	sprite := component.Sprite{
		Width:   spec.Width,
		Height:  spec.Height,
		Radius:  spec.Radius,
		Color:   defaultSpriteColor,
		OriginX: spec.OriginX,
		OriginY: spec.OriginY,
		Label:   spec.Label,
	}
	switch spec.Shape {
	case "", "rect":
		sprite.Shape = component.SpriteRect
	case "circle":
		sprite.Shape = component.SpriteCircle
	default:
		return fmt.Errorf("unknown sprite shape %q", spec.Shape)
	}
	if spec.Color != nil {
		sprite.Color = spec.Color.NRGBA
	}

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Zoom <= 0 {
		spec.Zoom = 1
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		Zoom:       spec.Zoom,
		Smoothness: spec.Smoothness,
	})
}

type physicsBodySpec = prefabs.PhysicsBodyComponentSpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:      spec.Width,
		Height:     spec.Height,
		Radius:     spec.Radius,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
		Static:     spec.Static,
	})
}
