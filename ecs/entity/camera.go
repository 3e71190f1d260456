package entity

import (
	"fmt"

	"github.com/milk9111/heighthop/ecs"
	"github.com/milk9111/heighthop/ecs/component"
)

// NewCamera builds the camera prefab and sizes its view to the screen.
func NewCamera(w *ecs.World, viewW, viewH float64) (ecs.Entity, error) {
	camera, err := BuildEntity(w, "camera.yaml")
	if err != nil {
		return 0, err
	}
	cam, ok := ecs.Get(w, camera, component.CameraComponent.Kind())
	if !ok {
		return 0, fmt.Errorf("camera: prefab has no camera component")
	}
	cam.ViewWidth = viewW
	cam.ViewHeight = viewH
	return camera, nil
}
