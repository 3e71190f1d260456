package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/heighthop/ecs"
	"github.com/milk9111/heighthop/ecs/component"
	"github.com/milk9111/heighthop/motion"
)

type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.InputComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	)
	for _, e := range entities {
		input, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			continue
		}
		player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		if !ok {
			continue
		}

		// Contacts resolved last step may have changed the body's velocity.
		v := player.Velocity
		if bodyComp.Body != nil {
			v = bodyComp.Body.Velocity()
		}

		next, err := motion.Step(v, cp.Vector{X: input.MoveX, Y: input.MoveY}, w.Delta(), player.Motion)
		if err != nil {
			panic("player controller system: step: " + err.Error())
		}
		player.Velocity = next

		if bodyComp.Body != nil {
			bodyComp.Body.SetVelocityVector(next)
			bodyComp.Body.SetAngle(0)
			bodyComp.Body.SetAngularVelocity(0)
		}
	}
}
