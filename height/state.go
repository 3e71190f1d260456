// Package height tracks how high a player stands over the obstacle field
// and decides which obstacles it can cross at that height.
package height

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// State is the per-player height state machine. The effective height is
// the base height (which follows the obstacle underfoot) plus the offset
// of an in-flight jump.
type State struct {
	tuning Tuning

	base   float64
	target float64

	jumping     bool
	jumpElapsed float64 // milliseconds
	jumpStart   float64
	jumpPeak    float64
}

// Snapshot is a read-only copy of a State for debug output.
type Snapshot struct {
	Base        float64
	Target      float64
	Effective   float64
	Jumping     bool
	JumpElapsed float64
}

func NewState(t Tuning) (*State, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &State{tuning: t}, nil
}

// Update advances the state by one tick and returns the new effective
// height. overlaps are the obstacles currently under the player and
// jumpRequested must only be true on the tick the jump input was pressed.
// The state is left untouched when an error is returned.
func (s *State) Update(center cp.Vector, overlaps []Obstacle, dt float64, jumpRequested bool) (float64, error) {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return s.Effective(), fmt.Errorf("%w: %v", ErrNegativeDelta, dt)
	}
	for i := range overlaps {
		if h := overlaps[i].Height; h < 0 || math.IsNaN(h) {
			return s.Effective(), fmt.Errorf("%w: obstacle %d has height %v", ErrNegativeHeight, overlaps[i].ID, h)
		}
	}

	s.target = 0
	if under, ok := Nearest(center, overlaps); ok {
		s.target = under.Height
	}
	s.relax(dt)

	// A jump starts at elapsed 0 and advances from the following tick on.
	switch {
	case s.jumping:
		s.jumpElapsed += dt * 1000
		if s.jumpElapsed >= s.tuning.jumpDurationMS() {
			s.jumping = false
			s.jumpElapsed = 0
		}
	case jumpRequested:
		s.jumping = true
		s.jumpElapsed = 0
		s.jumpStart = s.base
		s.jumpPeak = s.jumpStart + s.tuning.JumpRise
	}

	return s.Effective(), nil
}

func (s *State) relax(dt float64) {
	step := s.tuning.AdjustRate * dt
	diff := s.target - s.base
	dist := math.Abs(diff)
	if dist <= step {
		s.base = s.target
		return
	}
	if diff > 0 {
		s.base += step
	} else {
		s.base -= step
	}
}

// JumpOffset evaluates the jump arc elapsedMS milliseconds into a jump
// started from the current tuning. It is zero outside the jump.
func (s *State) JumpOffset(elapsedMS float64) float64 {
	return arc(elapsedMS, s.tuning.jumpDurationMS(), s.tuning.JumpRise)
}

func arc(t, duration, rise float64) float64 {
	if t <= 0 || t >= duration {
		return 0
	}
	half := duration / 2
	if t <= half {
		return rise * t / half
	}
	return rise * (duration - t) / half
}

func (s *State) offset() float64 {
	if !s.jumping {
		return 0
	}
	return arc(s.jumpElapsed, s.tuning.jumpDurationMS(), s.jumpPeak-s.jumpStart)
}

// Effective is the height used for gating and rendering.
func (s *State) Effective() float64 {
	return math.Max(0, s.base+s.offset())
}

func (s *State) Base() float64 {
	return s.base
}

func (s *State) Target() float64 {
	return s.target
}

func (s *State) Jumping() bool {
	return s.jumping
}

func (s *State) Tuning() Tuning {
	return s.tuning
}

// Gate returns the traversal gate configured by the tuning margin.
func (s *State) Gate() Gate {
	return NewGate(s.tuning.PassMargin)
}

// SetBase places the player at h without relaxation, clamped to
// [0, MaxHeight]. Used when spawning on top of an obstacle.
func (s *State) SetBase(h float64) {
	if math.IsNaN(h) {
		h = 0
	}
	s.base = math.Min(math.Max(h, 0), s.tuning.MaxHeight)
	s.target = s.base
}

// Reset drops the player back to the ground and cancels any jump.
func (s *State) Reset() {
	s.base = 0
	s.target = 0
	s.jumping = false
	s.jumpElapsed = 0
	s.jumpStart = 0
	s.jumpPeak = 0
}

// Scale is the visual scale for the current effective height.
func (s *State) Scale() float64 {
	return s.tuning.BaseScale + s.Effective()*s.tuning.ScaleFactor
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Base:        s.base,
		Target:      s.target,
		Effective:   s.Effective(),
		Jumping:     s.jumping,
		JumpElapsed: s.jumpElapsed,
	}
}
