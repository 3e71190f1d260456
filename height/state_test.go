package height

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
)

const tick = 1.0 / 60.0

func mustState(t *testing.T) *State {
	t.Helper()
	s, err := NewState(DefaultTuning())
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	return s
}

func mustObstacle(t *testing.T, id uint64, x, y, w, h, value float64) Obstacle {
	t.Helper()
	o, err := NewObstacle(id, x, y, w, h, value)
	if err != nil {
		t.Fatalf("NewObstacle(%d): %v", id, err)
	}
	return o
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewStateRejectsBadTuning(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"negative_rate", func(tu *Tuning) { tu.AdjustRate = -1 }},
		{"negative_rise", func(tu *Tuning) { tu.JumpRise = -0.5 }},
		{"zero_duration", func(tu *Tuning) { tu.JumpDuration = 0 }},
		{"negative_margin", func(tu *Tuning) { tu.PassMargin = -1 }},
		{"nan_scale", func(tu *Tuning) { tu.ScaleFactor = math.NaN() }},
		{"zero_max_height", func(tu *Tuning) { tu.MaxHeight = 0 }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tu := DefaultTuning()
			c.mutate(&tu)
			if _, err := NewState(tu); !errors.Is(err, ErrInvalidTuning) {
				t.Fatalf("expected ErrInvalidTuning, got %v", err)
			}
		})
	}
}

func TestUpdateRejectsBadInput(t *testing.T) {
	t.Run("negative_dt", func(t *testing.T) {
		s := mustState(t)
		if _, err := s.Update(cp.Vector{}, nil, -tick, true); !errors.Is(err, ErrNegativeDelta) {
			t.Fatalf("expected ErrNegativeDelta, got %v", err)
		}
		if s.Jumping() {
			t.Fatalf("rejected tick must not start a jump")
		}
	})
	t.Run("nan_dt", func(t *testing.T) {
		s := mustState(t)
		if _, err := s.Update(cp.Vector{}, nil, math.NaN(), false); !errors.Is(err, ErrNegativeDelta) {
			t.Fatalf("expected ErrNegativeDelta, got %v", err)
		}
	})
	t.Run("negative_height", func(t *testing.T) {
		s := mustState(t)
		s.SetBase(1)
		bad := Obstacle{ID: 7, Bounds: cp.BB{L: -1, B: -1, R: 1, T: 1}, Height: -2}
		if _, err := s.Update(cp.Vector{}, []Obstacle{bad}, tick, false); !errors.Is(err, ErrNegativeHeight) {
			t.Fatalf("expected ErrNegativeHeight, got %v", err)
		}
		if s.Base() != 1 || s.Target() != 1 {
			t.Fatalf("state changed on error: base=%v target=%v", s.Base(), s.Target())
		}
	})
}

func TestBaseApproachesTargetWithoutOvershoot(t *testing.T) {
	cases := []struct {
		name   string
		start  float64
		target float64
		dt     float64
	}{
		{"rise_small_step", 0, 1, tick},
		{"rise_large_step", 0, 2, 0.5},
		{"fall_small_step", 3, 1, tick},
		{"fall_to_ground", 2, 0, 0.25},
		{"zero_dt", 1, 2, 0},
		{"already_there", 1, 1, tick},
		{"huge_dt", 0.5, 2, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := mustState(t)
			s.SetBase(c.start)
			var overlaps []Obstacle
			if c.target > 0 {
				overlaps = []Obstacle{mustObstacle(t, 1, 0, 0, 100, 100, c.target)}
			}
			for i := 0; i < 200; i++ {
				prev := s.Base()
				if _, err := s.Update(cp.Vector{}, overlaps, c.dt, false); err != nil {
					t.Fatalf("update: %v", err)
				}
				lo, hi := math.Min(prev, c.target), math.Max(prev, c.target)
				if s.Base() < lo || s.Base() > hi {
					t.Fatalf("tick %d: base %v outside [%v, %v]", i, s.Base(), lo, hi)
				}
				if moved := math.Abs(s.Base() - prev); moved > s.Tuning().AdjustRate*c.dt+1e-12 {
					t.Fatalf("tick %d: base moved %v in one step", i, moved)
				}
			}
		})
	}
}

func TestSmallGapRespectsRate(t *testing.T) {
	s := mustState(t)
	under := []Obstacle{mustObstacle(t, 1, 0, 0, 100, 100, 0.009)}
	const dt = 0.001
	limit := s.Tuning().AdjustRate * dt

	if _, err := s.Update(cp.Vector{}, under, dt, false); err != nil {
		t.Fatalf("update: %v", err)
	}
	if !approx(s.Base(), limit) {
		t.Fatalf("expected base %v after one step, got %v", limit, s.Base())
	}
	for i := 0; i < 10; i++ {
		prev := s.Base()
		if _, err := s.Update(cp.Vector{}, under, dt, false); err != nil {
			t.Fatalf("update: %v", err)
		}
		if moved := s.Base() - prev; moved > limit+1e-12 || moved < 0 {
			t.Fatalf("tick %d: base moved %v, limit %v", i, moved, limit)
		}
	}
	if s.Base() != 0.009 {
		t.Fatalf("expected base to settle at 0.009, got %v", s.Base())
	}
}

func TestEmptyOverlapsReturnToGround(t *testing.T) {
	s := mustState(t)
	s.SetBase(3)
	for i := 0; i < 200; i++ {
		if _, err := s.Update(cp.Vector{}, nil, tick, false); err != nil {
			t.Fatalf("update: %v", err)
		}
		if s.Target() != 0 {
			t.Fatalf("tick %d: expected target 0, got %v", i, s.Target())
		}
	}
	if s.Base() != 0 || s.Effective() != 0 {
		t.Fatalf("expected to settle at 0, got base=%v effective=%v", s.Base(), s.Effective())
	}
	for i := 0; i < 10; i++ {
		if _, err := s.Update(cp.Vector{}, nil, tick, false); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	if s.Base() != 0 {
		t.Fatalf("expected to stay at 0, got %v", s.Base())
	}
}

func TestJumpArc(t *testing.T) {
	t.Run("symmetric", func(t *testing.T) {
		s := mustState(t)
		d := float64(DefaultJumpDuration / time.Millisecond)
		if s.JumpOffset(0) != 0 || s.JumpOffset(d) != 0 {
			t.Fatalf("expected zero offset at both ends, got %v and %v", s.JumpOffset(0), s.JumpOffset(d))
		}
		for ms := 0.0; ms <= d; ms += 7.5 {
			a, b := s.JumpOffset(ms), s.JumpOffset(d-ms)
			if !approx(a, b) {
				t.Fatalf("offset(%v)=%v but offset(%v)=%v", ms, a, d-ms, b)
			}
			if a < 0 || a > DefaultJumpRise+1e-9 {
				t.Fatalf("offset(%v)=%v outside [0, rise]", ms, a)
			}
		}
	})

	t.Run("peak_then_land", func(t *testing.T) {
		s := mustState(t)
		if h, err := s.Update(cp.Vector{}, nil, 0, true); err != nil || h != 0 {
			t.Fatalf("start: h=%v err=%v", h, err)
		}
		if !s.Jumping() {
			t.Fatalf("expected jump to start")
		}
		h, err := s.Update(cp.Vector{}, nil, 0.3, false)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if !approx(h, DefaultJumpRise) {
			t.Fatalf("expected peak %v at half duration, got %v", DefaultJumpRise, h)
		}
		h, err = s.Update(cp.Vector{}, nil, 0.3, false)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if h != s.Base() || s.Jumping() {
			t.Fatalf("expected landing at base %v, got %v jumping=%v", s.Base(), h, s.Jumping())
		}
	})

	t.Run("press_tick_stays_at_base", func(t *testing.T) {
		s := mustState(t)
		h, err := s.Update(cp.Vector{}, nil, tick, true)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if h != 0 || !s.Jumping() {
			t.Fatalf("expected jump to start at offset 0, got h=%v jumping=%v", h, s.Jumping())
		}
		h, err = s.Update(cp.Vector{}, nil, tick, false)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if want := s.JumpOffset(tick * 1000); !approx(h, want) {
			t.Fatalf("expected %v one tick in, got %v", want, h)
		}
	})

	t.Run("no_restart_midair", func(t *testing.T) {
		s := mustState(t)
		if _, err := s.Update(cp.Vector{}, nil, 0.1, true); err != nil {
			t.Fatalf("update: %v", err)
		}
		h, err := s.Update(cp.Vector{}, nil, 0.1, true)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		want := s.JumpOffset(100)
		if !approx(h, want) {
			t.Fatalf("second press restarted the jump: got %v want %v", h, want)
		}
	})

	t.Run("from_raised_base", func(t *testing.T) {
		s := mustState(t)
		s.SetBase(1)
		under := []Obstacle{mustObstacle(t, 1, 0, 0, 50, 50, 1)}
		if _, err := s.Update(cp.Vector{}, under, 0, true); err != nil {
			t.Fatalf("update: %v", err)
		}
		h, err := s.Update(cp.Vector{}, under, 0.3, false)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if !approx(h, 1+DefaultJumpRise) {
			t.Fatalf("expected %v at peak, got %v", 1+DefaultJumpRise, h)
		}
	})
}

func TestStandOnObstacleRelaxesBase(t *testing.T) {
	s := mustState(t)
	step := []Obstacle{mustObstacle(t, 1, 0, 0, 75, 75, 1)}
	// 1 unit at DefaultAdjustRate takes 0.5s, i.e. 30 ticks.
	for i := 1; i <= 31; i++ {
		if _, err := s.Update(cp.Vector{}, step, tick, false); err != nil {
			t.Fatalf("update: %v", err)
		}
		if i == 15 && !approx(s.Base(), 0.5) {
			t.Fatalf("expected base 0.5 after 0.25s, got %v", s.Base())
		}
		if i < 29 && s.Base() >= 1 {
			t.Fatalf("tick %d: base reached target early (%v)", i, s.Base())
		}
	}
	if s.Base() != 1 {
		t.Fatalf("expected base 1 after 0.5s, got %v", s.Base())
	}
	for i := 0; i < 30; i++ {
		if _, err := s.Update(cp.Vector{}, step, tick, false); err != nil {
			t.Fatalf("update: %v", err)
		}
	}
	if s.Base() != 1 || s.Effective() != 1 {
		t.Fatalf("expected to hold at 1, got base=%v effective=%v", s.Base(), s.Effective())
	}
}

func TestNearestSelection(t *testing.T) {
	low := mustObstacle(t, 1, -10, 0, 20, 20, 1)
	high := mustObstacle(t, 2, 10, 0, 20, 20, 2)

	cases := []struct {
		name   string
		center cp.Vector
		input  []Obstacle
		want   float64
	}{
		{"equidistant_first_wins", cp.Vector{}, []Obstacle{low, high}, 1},
		{"equidistant_order_matters", cp.Vector{}, []Obstacle{high, low}, 2},
		{"closer_to_high", cp.Vector{X: 4}, []Obstacle{low, high}, 2},
		{"closer_to_low", cp.Vector{X: -1, Y: 3}, []Obstacle{low, high}, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for run := 0; run < 3; run++ {
				s := mustState(t)
				if _, err := s.Update(c.center, c.input, tick, false); err != nil {
					t.Fatalf("update: %v", err)
				}
				if s.Target() != c.want {
					t.Fatalf("run %d: expected target %v, got %v", run, c.want, s.Target())
				}
			}
		})
	}

	if _, ok := Nearest(cp.Vector{}, nil); ok {
		t.Fatalf("expected no nearest obstacle for empty input")
	}
}

func TestSetBaseAndReset(t *testing.T) {
	s := mustState(t)
	s.SetBase(100)
	if s.Base() != DefaultMaxHeight {
		t.Fatalf("expected clamp to %v, got %v", DefaultMaxHeight, s.Base())
	}
	s.SetBase(-3)
	if s.Base() != 0 {
		t.Fatalf("expected clamp to 0, got %v", s.Base())
	}
	s.SetBase(2)
	if _, err := s.Update(cp.Vector{}, []Obstacle{mustObstacle(t, 1, 0, 0, 10, 10, 2)}, tick, true); err != nil {
		t.Fatalf("update: %v", err)
	}
	s.Reset()
	if s.Base() != 0 || s.Jumping() || s.Effective() != 0 {
		t.Fatalf("reset left state %+v", s.Snapshot())
	}
	if s.Scale() != DefaultBaseScale {
		t.Fatalf("expected base scale at ground, got %v", s.Scale())
	}
	s.SetBase(2)
	if want := DefaultBaseScale + 2*DefaultScaleFactor; s.Scale() != want {
		t.Fatalf("expected scale %v, got %v", want, s.Scale())
	}
}
