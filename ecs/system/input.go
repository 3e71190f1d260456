package system

import (
	"math"

	"github.com/milk9111/heighthop/ecs"
	"github.com/milk9111/heighthop/ecs/component"
)

// Action is a logical control bound to one or more physical keys.
type Action int

const (
	ActionLeft Action = iota
	ActionRight
	ActionUp
	ActionDown
	ActionJump
	ActionPause
	ActionDebug
	ActionRestart
)

// KeySource reports the level and edge state of actions for the current
// frame. Stick returns the first gamepad's left stick, or zeros.
type KeySource interface {
	Pressed(a Action) bool
	JustPressed(a Action) bool
	Stick() (x, y float64)
}

const stickDeadzone = 0.2

type InputSystem struct {
	keys KeySource
}

func NewInputSystem(keys KeySource) *InputSystem {
	return &InputSystem{keys: keys}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || i.keys == nil || w == nil {
		return
	}

	moveX, moveY := 0.0, 0.0
	if i.keys.Pressed(ActionLeft) {
		moveX -= 1
	}
	if i.keys.Pressed(ActionRight) {
		moveX += 1
	}
	if i.keys.Pressed(ActionUp) {
		moveY -= 1
	}
	if i.keys.Pressed(ActionDown) {
		moveY += 1
	}
	if sx, sy := i.keys.Stick(); math.Hypot(sx, sy) > stickDeadzone {
		moveX, moveY = sx, sy
	}

	jump := i.keys.Pressed(ActionJump)
	jumpPressed := i.keys.JustPressed(ActionJump)

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.MoveX = moveX
		input.MoveY = moveY
		input.Jump = jump
		input.JumpPressed = jumpPressed
	})
}
