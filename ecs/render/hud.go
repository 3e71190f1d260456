package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/heighthop/ecs"
	"github.com/milk9111/heighthop/ecs/component"
	"golang.org/x/image/font/basicfont"
)

var (
	hudFace  text.Face = text.NewGoXFace(basicfont.Face7x13)
	hudColor           = color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	hudBack            = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xc0}
)

const (
	hudPadding     = 6
	hudLineSpacing = 15
)

// HUDText formats the player's height state for the debug overlay.
func HUDText(w *ecs.World) string {
	if w == nil {
		return ""
	}
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return ""
	}
	hc, ok := ecs.Get(w, player, component.HeightComponent.Kind())
	if !ok || hc.State == nil {
		return ""
	}
	snap := hc.State.Snapshot()
	out := fmt.Sprintf("base: %.2f\ntarget: %.2f\neffective: %.2f\njumping: %v\nscale: %.2f",
		snap.Base, snap.Target, snap.Effective, snap.Jumping, hc.State.Scale())
	if t, ok := ecs.Get(w, player, component.TransformComponent.Kind()); ok {
		out += fmt.Sprintf("\npos: %.0f, %.0f", t.X, t.Y)
	}
	return out
}

// DrawHUD prints the height overlay in the top-left corner.
func DrawHUD(w *ecs.World, screen *ebiten.Image) {
	if screen == nil {
		return
	}
	msg := HUDText(w)
	if msg == "" {
		return
	}

	tw, th := text.Measure(msg, hudFace, hudLineSpacing)
	vector.DrawFilledRect(screen, 4, 4, float32(tw)+2*hudPadding, float32(th)+2*hudPadding, hudBack, false)

	op := &text.DrawOptions{}
	op.GeoM.Translate(4+hudPadding, 4+hudPadding)
	op.ColorScale.ScaleWithColor(hudColor)
	op.LineSpacing = hudLineSpacing
	text.Draw(screen, msg, hudFace, op)
}
