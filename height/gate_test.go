package height

import "testing"

func TestShouldBlock(t *testing.T) {
	cases := []struct {
		name      string
		obstacle  float64
		effective float64
		want      bool
	}{
		{"floor_at_ground", 0, 0, false},
		{"high_at_ground", 2, 0, true},
		{"low_at_ground", 1, 0, false},
		{"high_just_below_margin", 2, 0.99, true},
		{"high_at_margin", 2, 1, false},
		{"high_mid_jump", 2, 1.5, false},
		{"tower_at_peak", 5, 2, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := mustObstacle(t, 1, 0, 0, 10, 10, c.obstacle)
			if got := ShouldBlock(o, c.effective); got != c.want {
				t.Fatalf("ShouldBlock(%v, %v) = %v, want %v", c.obstacle, c.effective, got, c.want)
			}
		})
	}
}

func TestShouldBlockIsMonotonic(t *testing.T) {
	margins := []float64{0, 0.5, PassMargin, 3}
	heights := []float64{0, 0.5, 1, 2, 3.5, 10}
	for _, m := range margins {
		g := NewGate(m)
		for _, h := range heights {
			o := mustObstacle(t, 1, 0, 0, 10, 10, h)
			passed := false
			for eff := 0.0; eff <= 12; eff += 0.25 {
				blocked := g.ShouldBlock(o, eff)
				if passed && blocked {
					t.Fatalf("margin %v height %v: blocked again at effective %v", m, h, eff)
				}
				if !blocked {
					passed = true
				}
			}
			if !passed {
				t.Fatalf("margin %v height %v: never passable", m, h)
			}
		}
	}
}

func TestStateGateUsesTuningMargin(t *testing.T) {
	tu := DefaultTuning()
	tu.PassMargin = 0
	s, err := NewState(tu)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	o := mustObstacle(t, 1, 0, 0, 10, 10, 1)
	if !s.Gate().ShouldBlock(o, s.Effective()) {
		t.Fatalf("expected zero margin gate to block height 1 at ground")
	}
}
