package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/heighthop/ecs"
	"github.com/milk9111/heighthop/ecs/component"
	"github.com/milk9111/heighthop/height"
)

// Overlapper reports the obstacles currently under an entity, sorted by
// ascending obstacle ID.
type Overlapper interface {
	Overlaps(w *ecs.World, e ecs.Entity) []height.Obstacle
}

// HeightSystem advances every player's height state and applies the
// resulting visual scale. It must run before the physics step so the
// traversal gate sees this tick's height.
type HeightSystem struct {
	overlaps Overlapper
}

func NewHeightSystem(overlaps Overlapper) *HeightSystem {
	return &HeightSystem{overlaps: overlaps}
}

func (hs *HeightSystem) Update(w *ecs.World) {
	if hs == nil || w == nil {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.HeightComponent.Kind(),
		component.TransformComponent.Kind(),
	)
	for _, e := range entities {
		hc, ok := ecs.Get(w, e, component.HeightComponent.Kind())
		if !ok || hc.State == nil {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		jump := false
		if input, ok := ecs.Get(w, e, component.InputComponent.Kind()); ok {
			jump = input.JumpPressed
		}

		var overlaps []height.Obstacle
		if hs.overlaps != nil {
			overlaps = hs.overlaps.Overlaps(w, e)
		}

		before := hc.State.Snapshot()
		effective, err := hc.State.Update(cp.Vector{X: transform.X, Y: transform.Y}, overlaps, w.Delta(), jump)
		if err != nil {
			panic("height system: update: " + err.Error())
		}

		scale := hc.State.Scale()
		transform.ScaleX = scale
		transform.ScaleY = scale

		emit := func(kind ecs.HeightEventKind) {
			w.Events().Push(ecs.Event{
				Type: ecs.EventTypeHeight,
				Data: ecs.HeightEvent{Entity: e, Kind: kind, Effective: effective, Target: hc.State.Target()},
			})
		}
		if !before.Jumping && hc.State.Jumping() {
			emit(ecs.HeightEventJumpStarted)
		}
		if before.Jumping && !hc.State.Jumping() {
			emit(ecs.HeightEventLanded)
		}
		if before.Target != hc.State.Target() {
			emit(ecs.HeightEventTargetChanged)
		}
	}
}
