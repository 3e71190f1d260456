package height

import (
	"fmt"
	"math"
	"time"
)

// PassMargin is how far an obstacle may rise above the player's effective
// height before it starts blocking.
const PassMargin = 1.0

const (
	DefaultAdjustRate   = 2.0
	DefaultJumpRise     = 2.0
	DefaultJumpDuration = 600 * time.Millisecond
	DefaultScaleFactor  = 0.5
	DefaultBaseScale    = 1.0
	DefaultMaxHeight    = 20.0
)

// Tuning holds the height constants for one player.
type Tuning struct {
	// AdjustRate is the maximum change of the base height per second. The
	// base snaps to its target once it is within one step.
	AdjustRate float64
	// JumpRise is the jump offset at the top of the arc.
	JumpRise     float64
	JumpDuration time.Duration
	PassMargin   float64
	ScaleFactor  float64
	BaseScale    float64
	MaxHeight    float64
}

func DefaultTuning() Tuning {
	return Tuning{
		AdjustRate:   DefaultAdjustRate,
		JumpRise:     DefaultJumpRise,
		JumpDuration: DefaultJumpDuration,
		PassMargin:   PassMargin,
		ScaleFactor:  DefaultScaleFactor,
		BaseScale:    DefaultBaseScale,
		MaxHeight:    DefaultMaxHeight,
	}
}

// Validate rejects negative rates and non-positive durations.
func (t Tuning) Validate() error {
	switch {
	case invalidNonNegative(t.AdjustRate):
		return fmt.Errorf("%w: adjust rate %v", ErrInvalidTuning, t.AdjustRate)
	case invalidNonNegative(t.JumpRise):
		return fmt.Errorf("%w: jump rise %v", ErrInvalidTuning, t.JumpRise)
	case t.JumpDuration <= 0:
		return fmt.Errorf("%w: jump duration %v", ErrInvalidTuning, t.JumpDuration)
	case invalidNonNegative(t.PassMargin):
		return fmt.Errorf("%w: pass margin %v", ErrInvalidTuning, t.PassMargin)
	case invalidNonNegative(t.ScaleFactor):
		return fmt.Errorf("%w: scale factor %v", ErrInvalidTuning, t.ScaleFactor)
	case !(t.MaxHeight > 0):
		return fmt.Errorf("%w: max height %v", ErrInvalidTuning, t.MaxHeight)
	}
	return nil
}

func (t Tuning) jumpDurationMS() float64 {
	return float64(t.JumpDuration) / float64(time.Millisecond)
}

func invalidNonNegative(v float64) bool {
	return v < 0 || math.IsNaN(v) || math.IsInf(v, 0)
}
