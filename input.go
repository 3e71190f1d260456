package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/heighthop/ecs/system"
)

var keyBindings = map[system.Action][]ebiten.Key{
	system.ActionLeft:    {ebiten.KeyA, ebiten.KeyArrowLeft},
	system.ActionRight:   {ebiten.KeyD, ebiten.KeyArrowRight},
	system.ActionUp:      {ebiten.KeyW, ebiten.KeyArrowUp},
	system.ActionDown:    {ebiten.KeyS, ebiten.KeyArrowDown},
	system.ActionJump:    {ebiten.KeySpace},
	system.ActionPause:   {ebiten.KeyEscape},
	system.ActionDebug:   {ebiten.KeyF3},
	system.ActionRestart: {ebiten.KeyR},
}

var padBindings = map[system.Action]ebiten.StandardGamepadButton{
	system.ActionLeft:    ebiten.StandardGamepadButtonLeftLeft,
	system.ActionRight:   ebiten.StandardGamepadButtonLeftRight,
	system.ActionUp:      ebiten.StandardGamepadButtonLeftTop,
	system.ActionDown:    ebiten.StandardGamepadButtonLeftBottom,
	system.ActionJump:    ebiten.StandardGamepadButtonRightBottom,
	system.ActionPause:   ebiten.StandardGamepadButtonCenterRight,
	system.ActionRestart: ebiten.StandardGamepadButtonCenterLeft,
}

// ebitenKeys reads the keyboard and the first standard gamepad.
type ebitenKeys struct{}

func (ebitenKeys) Pressed(a system.Action) bool {
	for _, k := range keyBindings[a] {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	if id, ok := firstGamepad(); ok {
		if b, bound := padBindings[a]; bound && ebiten.IsStandardGamepadButtonPressed(id, b) {
			return true
		}
	}
	return false
}

func (ebitenKeys) JustPressed(a system.Action) bool {
	for _, k := range keyBindings[a] {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	if id, ok := firstGamepad(); ok {
		if b, bound := padBindings[a]; bound && inpututil.IsStandardGamepadButtonJustPressed(id, b) {
			return true
		}
	}
	return false
}

func (ebitenKeys) Stick() (float64, float64) {
	id, ok := firstGamepad()
	if !ok {
		return 0, 0
	}
	x := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	y := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	if math.IsNaN(x) || math.IsNaN(y) {
		return 0, 0
	}
	return x, y
}

func firstGamepad() (ebiten.GamepadID, bool) {
	ids := ebiten.AppendGamepadIDs(nil)
	for _, id := range ids {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			return id, true
		}
	}
	return 0, false
}
