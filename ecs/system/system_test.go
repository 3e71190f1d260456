package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/heighthop/ecs"
	"github.com/milk9111/heighthop/ecs/component"
	"github.com/milk9111/heighthop/height"
	"github.com/milk9111/heighthop/motion"
)

const tick = 1.0 / 60.0

func mustAdd[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T], v *T) {
	t.Helper()
	if err := ecs.Add(w, e, kind, v); err != nil {
		t.Fatalf("add: %v", err)
	}
}

func addPlayer(t *testing.T, w *ecs.World, x, y float64) (ecs.Entity, *height.State) {
	t.Helper()
	state, err := height.NewState(height.DefaultTuning())
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{})
	mustAdd(t, w, e, component.PlayerComponent.Kind(), &component.Player{Motion: motion.DefaultTuning()})
	mustAdd(t, w, e, component.HeightComponent.Kind(), &component.Height{State: state})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: 20, Mass: 1})
	return e, state
}

func addObstacle(t *testing.T, w *ecs.World, x, y, width, extent, value float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	o, err := height.NewObstacle(uint64(e), x, y, width, extent, value)
	if err != nil {
		t.Fatalf("NewObstacle: %v", err)
	}
	mustAdd(t, w, e, component.ObstacleComponent.Kind(), &o)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1})
	mustAdd(t, w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: width, Height: extent, Static: true})
	return e
}

func addBounds(t *testing.T, w *ecs.World, width, extent float64) {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Name: "test", Width: width, Height: extent})
}

func drainKinds(w *ecs.World) (heights []ecs.HeightEventKind, collisions []ecs.CollisionEventKind) {
	for _, evt := range w.Events().Drain() {
		switch data := evt.Data.(type) {
		case ecs.HeightEvent:
			heights = append(heights, data.Kind)
		case ecs.CollisionEvent:
			collisions = append(collisions, data.Kind)
		}
	}
	return heights, collisions
}

type fakeKeys struct {
	pressed map[Action]bool
	just    map[Action]bool
	sx, sy  float64
}

func (f fakeKeys) Pressed(a Action) bool     { return f.pressed[a] }
func (f fakeKeys) JustPressed(a Action) bool { return f.just[a] }
func (f fakeKeys) Stick() (float64, float64) { return f.sx, f.sy }

func TestInputSystem(t *testing.T) {
	cases := []struct {
		name string
		keys fakeKeys
		want component.Input
	}{
		{"idle", fakeKeys{}, component.Input{}},
		{"left_up", fakeKeys{pressed: map[Action]bool{ActionLeft: true, ActionUp: true}}, component.Input{MoveX: -1, MoveY: -1}},
		{"opposites_cancel", fakeKeys{pressed: map[Action]bool{ActionLeft: true, ActionRight: true}}, component.Input{}},
		{"jump_edge", fakeKeys{pressed: map[Action]bool{ActionJump: true}, just: map[Action]bool{ActionJump: true}}, component.Input{Jump: true, JumpPressed: true}},
		{"jump_held", fakeKeys{pressed: map[Action]bool{ActionJump: true}}, component.Input{Jump: true}},
		{"stick_overrides", fakeKeys{pressed: map[Action]bool{ActionLeft: true}, sx: 0.5, sy: 0.5}, component.Input{MoveX: 0.5, MoveY: 0.5}},
		{"stick_deadzone", fakeKeys{sx: 0.1, sy: 0.05}, component.Input{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := ecs.CreateEntity(w)
			mustAdd(t, w, e, component.InputComponent.Kind(), &component.Input{MoveX: 9})
			NewInputSystem(c.keys).Update(w)
			got, _ := ecs.Get(w, e, component.InputComponent.Kind())
			if *got != c.want {
				t.Fatalf("expected %+v, got %+v", c.want, *got)
			}
		})
	}
}

func TestPlayerControllerAppliesMotion(t *testing.T) {
	w := ecs.NewWorld()
	w.SetDelta(tick)
	e, _ := addPlayer(t, w, 100, 100)
	input, _ := ecs.Get(w, e, component.InputComponent.Kind())
	input.MoveX = 1

	NewPlayerControllerSystem().Update(w)

	player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !approxEq(player.Velocity.X, motion.DefaultAcceleration*tick) || player.Velocity.Y != 0 {
		t.Fatalf("unexpected velocity %+v", player.Velocity)
	}

	physics := NewPhysicsSystem()
	physics.Sync(w)
	NewPlayerControllerSystem().Update(w)
	body, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if body.Body == nil {
		t.Fatalf("expected body after sync")
	}
	if got := body.Body.Velocity(); !approxEq(got.X, player.Velocity.X) {
		t.Fatalf("body velocity %v does not match player velocity %v", got, player.Velocity)
	}
}

type fixedOverlaps []height.Obstacle

func (f fixedOverlaps) Overlaps(*ecs.World, ecs.Entity) []height.Obstacle { return f }

func TestHeightSystem(t *testing.T) {
	t.Run("jump_scales_and_emits", func(t *testing.T) {
		w := ecs.NewWorld()
		w.SetDelta(tick)
		e, state := addPlayer(t, w, 0, 0)
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		input.JumpPressed = true

		hs := NewHeightSystem(nil)
		hs.Update(w)
		if !state.Jumping() {
			t.Fatalf("expected jump to start")
		}
		heights, _ := drainKinds(w)
		if len(heights) != 1 || heights[0] != ecs.HeightEventJumpStarted {
			t.Fatalf("expected jump_started, got %v", heights)
		}

		input.JumpPressed = false
		hs.Update(w)
		transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		if transform.ScaleX <= 1 || transform.ScaleX != transform.ScaleY {
			t.Fatalf("expected raised uniform scale, got %v,%v", transform.ScaleX, transform.ScaleY)
		}
		for i := 0; i < 40; i++ {
			hs.Update(w)
		}
		heights, _ = drainKinds(w)
		if len(heights) != 1 || heights[0] != ecs.HeightEventLanded {
			t.Fatalf("expected landed, got %v", heights)
		}
		if transform.ScaleX != height.DefaultBaseScale {
			t.Fatalf("expected scale back to base, got %v", transform.ScaleX)
		}
	})

	t.Run("follows_overlaps", func(t *testing.T) {
		w := ecs.NewWorld()
		w.SetDelta(tick)
		_, state := addPlayer(t, w, 0, 0)
		o, err := height.NewObstacle(9, 0, 0, 75, 75, 1)
		if err != nil {
			t.Fatal(err)
		}
		hs := NewHeightSystem(fixedOverlaps{o})
		for i := 0; i < 31; i++ {
			hs.Update(w)
		}
		if state.Base() != 1 {
			t.Fatalf("expected base 1, got %v", state.Base())
		}
		heights, _ := drainKinds(w)
		if len(heights) != 1 || heights[0] != ecs.HeightEventTargetChanged {
			t.Fatalf("expected one target_changed, got %v", heights)
		}
	})

	t.Run("bad_overlap_panics", func(t *testing.T) {
		w := ecs.NewWorld()
		w.SetDelta(tick)
		addPlayer(t, w, 0, 0)
		bad := height.Obstacle{ID: 1, Bounds: cp.BB{L: -1, B: -1, R: 1, T: 1}, Height: -1}
		defer func() {
			if recover() == nil {
				t.Fatalf("expected panic on negative obstacle height")
			}
		}()
		NewHeightSystem(fixedOverlaps{bad}).Update(w)
	})
}

func newScheduler(physics *PhysicsSystem) *ecs.Scheduler {
	return ecs.NewScheduler(
		NewPlayerControllerSystem(),
		NewHeightSystem(physics),
		physics,
	)
}

func TestPhysicsGate(t *testing.T) {
	cases := []struct {
		name       string
		obstacleH  float64
		platformH  float64 // 0 = no platform
		wantPassed bool
		wantEvent  ecs.CollisionEventKind
	}{
		{"ground_level_passes", 0, 0, true, ecs.CollisionEventPassOver},
		{"within_margin_passes", 1, 0, true, ecs.CollisionEventPassOver},
		{"too_high_blocks", 2, 0, false, ecs.CollisionEventBlocked},
		{"step_up_from_platform", 2, 1, true, ecs.CollisionEventPassOver},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			addBounds(t, w, 1000, 400)
			e, state := addPlayer(t, w, 100, 200)
			if c.platformH > 0 {
				// platform spans x [0, 225] and ends where the obstacle starts
				addObstacle(t, w, 112.5, 200, 225, 200, c.platformH)
				state.SetBase(c.platformH)
			}
			addObstacle(t, w, 250, 200, 50, 200, c.obstacleH)
			input, _ := ecs.Get(w, e, component.InputComponent.Kind())
			input.MoveX = 1

			physics := NewPhysicsSystem()
			physics.Sync(w)
			sched := newScheduler(physics)

			var collisions []ecs.CollisionEventKind
			for i := 0; i < 120; i++ {
				sched.Update(w, tick)
				_, cs := drainKinds(w)
				collisions = append(collisions, cs...)
			}

			transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			passed := transform.X > 275+20
			if passed != c.wantPassed {
				t.Fatalf("expected passed=%v, player at x=%v", c.wantPassed, transform.X)
			}
			if !c.wantPassed && transform.X > 225-20+1 {
				t.Fatalf("player penetrated blocking obstacle: x=%v", transform.X)
			}
			if len(collisions) == 0 || collisions[0] != c.wantEvent {
				t.Fatalf("expected first collision event %q, got %v", c.wantEvent, collisions)
			}
		})
	}
}

func TestPhysicsOverlaps(t *testing.T) {
	w := ecs.NewWorld()
	e, state := addPlayer(t, w, 100, 100)
	// created out of order to check sorting by ID
	wall := addObstacle(t, w, 125, 100, 20, 200, 5)
	high := addObstacle(t, w, 100, 100, 40, 40, 2)
	low := addObstacle(t, w, 90, 100, 60, 60, 1)
	far := addObstacle(t, w, 400, 400, 50, 50, 1)

	physics := NewPhysicsSystem()
	physics.Sync(w)

	got := physics.Overlaps(w, e)
	ids := make([]uint64, 0, len(got))
	for _, o := range got {
		ids = append(ids, o.ID)
	}
	// The wall touches the circle but its center is outside and it blocks.
	want := []uint64{uint64(high), uint64(low)}
	if len(ids) != len(want) || ids[0] != want[0] || ids[1] != want[1] {
		t.Fatalf("expected %v, got %v (wall=%d far=%d)", want, ids, wall, far)
	}

	state.SetBase(5)
	got = physics.Overlaps(w, e)
	if len(got) != 3 || got[0].ID != uint64(wall) {
		t.Fatalf("expected the wall to count once passable, got %v", got)
	}
}

func TestPhysicsRemovesDestroyedEntities(t *testing.T) {
	w := ecs.NewWorld()
	e, _ := addPlayer(t, w, 100, 100)
	o := addObstacle(t, w, 100, 100, 40, 40, 1)

	physics := NewPhysicsSystem()
	physics.Sync(w)
	if len(physics.Overlaps(w, e)) != 1 {
		t.Fatalf("expected one overlap before destroy")
	}

	w.DestroyEntity(o)
	physics.Sync(w)
	if got := physics.Overlaps(w, e); len(got) != 0 {
		t.Fatalf("expected no overlaps after destroy, got %v", got)
	}
	if len(physics.obstacleShapes) != 0 {
		t.Fatalf("expected obstacle shape to be removed")
	}
}

func TestCameraFollowsAndClamps(t *testing.T) {
	cases := []struct {
		name         string
		px, py       float64
		wantX, wantY float64
	}{
		{"top_left_clamped", 100, 100, 0, 0},
		{"centered", 800, 600, 400, 300},
		{"bottom_right_clamped", 1500, 1100, 800, 600},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			addBounds(t, w, 1600, 1200)
			addPlayer(t, w, c.px, c.py)
			cam := ecs.CreateEntity(w)
			mustAdd(t, w, cam, component.CameraTagComponent.Kind(), &component.CameraTag{})
			mustAdd(t, w, cam, component.CameraComponent.Kind(), &component.Camera{Zoom: 1, ViewWidth: 800, ViewHeight: 600})
			mustAdd(t, w, cam, component.TransformComponent.Kind(), &component.Transform{})

			NewCameraSystem().Update(w)
			got, _ := ecs.Get(w, cam, component.TransformComponent.Kind())
			if got.X != c.wantX || got.Y != c.wantY {
				t.Fatalf("expected camera at (%v,%v), got (%v,%v)", c.wantX, c.wantY, got.X, got.Y)
			}
		})
	}

	if got := clampView(10, 500, 300); got != -100 {
		t.Fatalf("expected small world to center the view, got %v", got)
	}
}

func approxEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
