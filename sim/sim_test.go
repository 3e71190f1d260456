package sim

import (
	"context"
	"testing"

	"github.com/milk9111/heighthop/ecs"
	"github.com/milk9111/heighthop/ecs/system"
	"github.com/milk9111/heighthop/levels"
)

const tick = 1.0 / 60.0

// wallLevel has one height-2 wall across the player's path.
const wallLevel = `{
	"width": 600, "height": 400,
	"spawn": {"x": 100, "y": 200},
	"obstacles": [{"x": 300, "y": 200, "w": 20, "h": 400, "height": 2}]
}`

// plateauLevel has a wide height-2 block the player can land on.
const plateauLevel = `{
	"width": 800, "height": 400,
	"spawn": {"x": 100, "y": 200},
	"obstacles": [{"x": 500, "y": 200, "w": 400, "h": 400, "height": 2}]
}`

func runScript(t *testing.T, src string) (*Simulation, []ecs.Event) {
	t.Helper()
	return runLevel(t, wallLevel, src, nil)
}

// runLevel plays src against the level JSON, calling each after every tick.
func runLevel(t *testing.T, level, src string, each func(Sample)) (*Simulation, []ecs.Event) {
	t.Helper()
	lvl, err := levels.Parse("test", []byte(level))
	if err != nil {
		t.Fatalf("parse level: %v", err)
	}
	segments, err := ParseScript(src)
	if err != nil {
		t.Fatalf("parse script: %v", err)
	}
	keys := NewScriptedKeys(segments)
	s, err := New(context.Background(), lvl, Options{ViewWidth: 320, ViewHeight: 240, Keys: keys})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	var events []ecs.Event
	for !keys.Done() {
		events = append(events, s.Step(tick)...)
		keys.Advance()
		if each != nil {
			each(s.Sample())
		}
	}
	return s, events
}

func TestWallBlocksGroundedPlayer(t *testing.T) {
	s, events := runScript(t, "right*120")
	got := s.Sample()
	if got.X > 275 {
		t.Fatalf("player passed a height-2 wall from the ground: x=%v", got.X)
	}
	if got.Effective != 0 {
		t.Fatalf("expected to stay on the ground, got effective %v", got.Effective)
	}
	blocked := false
	for _, e := range events {
		if c, ok := e.Data.(ecs.CollisionEvent); ok && c.Kind == ecs.CollisionEventBlocked {
			blocked = true
		}
	}
	if !blocked {
		t.Fatalf("expected a blocked collision event")
	}
}

func TestJumpClearsWall(t *testing.T) {
	s, events := runScript(t, "right*37,right+jump,right*60")
	got := s.Sample()
	if got.X < 330 {
		t.Fatalf("expected jump to clear the wall, x=%v", got.X)
	}

	var started, landed bool
	for _, e := range events {
		if h, ok := e.Data.(ecs.HeightEvent); ok {
			switch h.Kind {
			case ecs.HeightEventJumpStarted:
				started = true
			case ecs.HeightEventLanded:
				landed = true
			}
		}
	}
	if !started || !landed {
		t.Fatalf("expected jump start and landing events, started=%v landed=%v", started, landed)
	}
}

func TestLandOnPlateauHoldsPosition(t *testing.T) {
	var (
		landed   bool
		maxX     float64
		minBase  = 2.0
		pushedAt Sample
		pushed   bool
	)
	s, _ := runLevel(t, plateauLevel, "right*38,right+jump,right*25,idle*120", func(got Sample) {
		if got.Jumping {
			landed = false
			return
		}
		if got.Tick < 40 {
			return
		}
		if !landed {
			landed = true
			maxX = got.X
		}
		if got.Base < minBase {
			minBase = got.Base
		}
		if got.X < maxX-1e-6 && !pushed {
			pushed, pushedAt = true, got
		}
		if got.X > maxX {
			maxX = got.X
		}
	})
	if pushed {
		t.Fatalf("player pushed back after landing: %+v (was at x=%v)", pushedAt, maxX)
	}
	got := s.Sample()
	if got.X <= 320 || got.X >= 700 {
		t.Fatalf("expected to rest on the plateau, x=%v", got.X)
	}
	if minBase >= 1 {
		t.Fatalf("expected to land before the base reached the gate, min base %v", minBase)
	}
	if got.Base != 2 || got.Effective != 2 {
		t.Fatalf("expected base to settle at 2, got base=%v effective=%v", got.Base, got.Effective)
	}
}

func TestNewWithoutKeysIdles(t *testing.T) {
	lvl, err := levels.Load("default")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s, err := New(context.Background(), lvl, Options{ViewWidth: 800, ViewHeight: 600})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 30; i++ {
		s.Step(tick)
	}
	got := s.Sample()
	if got.Tick != 30 || got.X != lvl.Spawn.X || got.Y != lvl.Spawn.Y {
		t.Fatalf("idle player moved: %+v", got)
	}
	if got.Scale != 1 {
		t.Fatalf("expected ground scale 1, got %v", got.Scale)
	}
	if _, err := New(context.Background(), nil, Options{}); err == nil {
		t.Fatalf("expected error for nil level")
	}
}

func TestParseScript(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		ticks   []int
		wantErr bool
	}{
		{name: "single", src: "right", ticks: []int{1}},
		{name: "counts", src: "right*30, right+jump ,idle*5", ticks: []int{30, 1, 5}},
		{name: "empty_segments", src: "up,,down*2", ticks: []int{1, 2}},
		{name: "unknown_action", src: "fly*3", wantErr: true},
		{name: "bad_count", src: "left*0", wantErr: true},
		{name: "not_a_number", src: "left*x", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, err := ParseScript(tt.src)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.src)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseScript: %v", err)
			}
			if len(segs) != len(tt.ticks) {
				t.Fatalf("expected %d segments, got %d", len(tt.ticks), len(segs))
			}
			for i, n := range tt.ticks {
				if segs[i].Ticks != n {
					t.Fatalf("segment %d: expected %d ticks, got %d", i, n, segs[i].Ticks)
				}
			}
		})
	}
}

func TestScriptedKeysEdges(t *testing.T) {
	segs, err := ParseScript("jump*2,idle,jump")
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	keys := NewScriptedKeys(segs)
	if keys.Ticks() != 4 {
		t.Fatalf("expected 4 ticks, got %d", keys.Ticks())
	}

	want := []struct{ pressed, just bool }{
		{true, true},
		{true, false},
		{false, false},
		{true, true},
	}
	for i, w := range want {
		if got := keys.Pressed(system.ActionJump); got != w.pressed {
			t.Fatalf("tick %d: Pressed = %v, want %v", i, got, w.pressed)
		}
		if got := keys.JustPressed(system.ActionJump); got != w.just {
			t.Fatalf("tick %d: JustPressed = %v, want %v", i, got, w.just)
		}
		keys.Advance()
	}
	if !keys.Done() || keys.Pressed(system.ActionJump) {
		t.Fatalf("expected script to be exhausted")
	}
}
