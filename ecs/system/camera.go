package system

import (
	"github.com/milk9111/heighthop/common"
	"github.com/milk9111/heighthop/ecs"
	"github.com/milk9111/heighthop/ecs/component"
)

type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update moves the camera so the player is centered in the view, without
// showing anything outside the level bounds.
func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	if !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}
	if !w.IsAlive(cs.targetEntity) {
		target, ok := w.First(component.PlayerTagComponent.Kind())
		if !ok {
			return
		}
		cs.targetEntity = target
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, cs.camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	targetTransform, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	viewW := cam.ViewWidth / zoom
	viewH := cam.ViewHeight / zoom

	x := targetTransform.X - viewW/2
	y := targetTransform.Y - viewH/2
	if cam.Smoothness > 0 && cam.Smoothness < 1 {
		x = common.Lerp(camTransform.X, x, 1-cam.Smoothness)
		y = common.Lerp(camTransform.Y, y, 1-cam.Smoothness)
	}

	if boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind()); ok {
		if bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind()); ok {
			x = clampView(x, viewW, bounds.Width)
			y = clampView(y, viewH, bounds.Height)
		}
	}

	camTransform.X = x
	camTransform.Y = y
}

// clampView keeps [pos, pos+view] inside [0, world], centering the view
// when the world is smaller than it.
func clampView(pos, view, world float64) float64 {
	if world <= 0 {
		return pos
	}
	if view >= world {
		return (world - view) / 2
	}
	return common.Clamp(pos, 0, world-view)
}
