package render

import (
	"image/color"
	"strings"
	"testing"

	"github.com/milk9111/heighthop/ecs"
	"github.com/milk9111/heighthop/ecs/component"
	"github.com/milk9111/heighthop/height"
)

func TestSpriteKey(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}

	tests := []struct {
		name string
		a, b component.Sprite
		same bool
	}{
		{"same_rect", component.Sprite{Width: 10, Height: 5, Color: red}, component.Sprite{Width: 10, Height: 5, Color: red, Label: "x"}, true},
		{"rect_color", component.Sprite{Width: 10, Height: 5, Color: red}, component.Sprite{Width: 10, Height: 5, Color: blue}, false},
		{"rect_size", component.Sprite{Width: 10, Height: 5, Color: red}, component.Sprite{Width: 5, Height: 10, Color: red}, false},
		{"circle_ignores_rect_size", component.Sprite{Shape: component.SpriteCircle, Radius: 20, Width: 1}, component.Sprite{Shape: component.SpriteCircle, Radius: 20, Width: 2}, true},
		{"shape", component.Sprite{Shape: component.SpriteCircle, Radius: 5}, component.Sprite{Width: 5, Height: 5}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := spriteKey(&tc.a) == spriteKey(&tc.b); got != tc.same {
				t.Fatalf("keys %q and %q: same=%v, want %v", spriteKey(&tc.a), spriteKey(&tc.b), got, tc.same)
			}
		})
	}
}

func TestImageSize(t *testing.T) {
	for in, want := range map[float64]int{0: 1, -3: 1, 0.5: 1, 40: 40, 40.2: 41} {
		if got := imageSize(in); got != want {
			t.Fatalf("imageSize(%v) = %d, want %d", in, got, want)
		}
	}
}

func TestHUDText(t *testing.T) {
	w := ecs.NewWorld()
	if HUDText(w) != "" {
		t.Fatalf("expected empty HUD without a player")
	}

	state, err := height.NewState(height.DefaultTuning())
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	state.SetBase(1.5)
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		t.Fatal(err)
	}
	if err := ecs.Add(w, e, component.HeightComponent.Kind(), &component.Height{State: state}); err != nil {
		t.Fatal(err)
	}

	got := HUDText(w)
	for _, want := range []string{"base: 1.50", "effective: 1.50", "jumping: false", "scale: 1.75"} {
		if !strings.Contains(got, want) {
			t.Fatalf("HUD %q missing %q", got, want)
		}
	}
}
