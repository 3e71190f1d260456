// Package motion integrates top-down player velocity from directional input.
package motion

import (
	"errors"
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

const (
	DefaultAcceleration = 600.0
	DefaultDrag         = 600.0
	DefaultMaxSpeed     = 300.0
)

var ErrNegativeDelta = errors.New("motion: negative or NaN delta time")

// Tuning controls how quickly the player speeds up and slows down.
type Tuning struct {
	Acceleration float64
	Drag         float64
	MaxSpeed     float64
}

func DefaultTuning() Tuning {
	return Tuning{
		Acceleration: DefaultAcceleration,
		Drag:         DefaultDrag,
		MaxSpeed:     DefaultMaxSpeed,
	}
}

// Step returns the velocity after one tick. With input the velocity
// accelerates along the normalized input direction; without input it is
// pulled toward zero by drag. The result never exceeds MaxSpeed.
func Step(v, input cp.Vector, dt float64, t Tuning) (cp.Vector, error) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return v, fmt.Errorf("%w: %v", ErrNegativeDelta, dt)
	}

	if input.LengthSq() > 0 {
		dir := input.Normalize()
		v = v.Add(dir.Mult(t.Acceleration * dt))
	} else {
		drag := v.Mult(t.Drag * dt)
		if drag.LengthSq() > v.LengthSq() {
			v = cp.Vector{}
		} else {
			v = v.Sub(drag)
		}
	}

	if t.MaxSpeed >= 0 && v.LengthSq() > t.MaxSpeed*t.MaxSpeed {
		v = v.Normalize().Mult(t.MaxSpeed)
	}
	return v, nil
}
