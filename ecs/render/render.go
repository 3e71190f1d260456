// Package render draws the ECS world with ebiten. It owns everything that
// touches the GPU so the simulation packages stay headless.
package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/heighthop/ecs"
	"github.com/milk9111/heighthop/ecs/component"
)

var gridColor = color.NRGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}

type RenderSystem struct {
	camEntity ecs.Entity

	ShowGrid   bool
	ShowLabels bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{ShowGrid: true, ShowLabels: true}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	if !ecs.Has(w, r.camEntity, component.CameraComponent.Kind()) {
		if camEntity, ok := w.First(component.CameraComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}
	camX, camY, zoom := cameraTransform(w, r.camEntity)

	if boundsEntity, ok := w.First(component.LevelBoundsComponent.Kind()); ok {
		if bounds, ok := ecs.Get(w, boundsEntity, component.LevelBoundsComponent.Kind()); ok {
			screen.Fill(bounds.Background)
			if r.ShowGrid {
				drawGrid(screen, bounds, camX, camY, zoom)
			}
		}
	}

	entities := w.Query(component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layerOf(w, entities[i]), layerOf(w, entities[j])
		if li != lj {
			return li < lj
		}
		hi, hj := obstacleHeight(w, entities[i]), obstacleHeight(w, entities[j])
		if hi != hj {
			return hi < hj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})

	for _, e := range entities {
		if e == r.camEntity {
			continue
		}

		t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		s, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
		if !ok {
			continue
		}
		img := SpriteImage(s)
		if img == nil {
			continue
		}

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-s.OriginX, -s.OriginY)

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}

		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(t.Rotation)
		op.GeoM.Scale(zoom, zoom)
		op.GeoM.Translate((t.X-camX)*zoom, (t.Y-camY)*zoom)

		screen.DrawImage(img, op)

		if r.ShowLabels && s.Label != "" {
			x := int((t.X-camX)*zoom) - 3*len(s.Label)
			y := int((t.Y-camY)*zoom) - 8
			ebitenutil.DebugPrintAt(screen, s.Label, x, y)
		}
	}
}

// drawGrid draws grid lines over the visible part of the level.
func drawGrid(screen *ebiten.Image, bounds *component.LevelBounds, camX, camY, zoom float64) {
	step := bounds.GridSize
	if step <= 0 {
		return
	}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	minX := math.Max(0, camX)
	maxX := math.Min(bounds.Width, camX+float64(sw)/zoom)
	minY := math.Max(0, camY)
	maxY := math.Min(bounds.Height, camY+float64(sh)/zoom)
	if minX >= maxX || minY >= maxY {
		return
	}

	for x := math.Ceil(minX/step) * step; x <= maxX; x += step {
		sx := float32((x - camX) * zoom)
		vector.StrokeLine(screen, sx, float32((minY-camY)*zoom), sx, float32((maxY-camY)*zoom), 1, gridColor, false)
	}
	for y := math.Ceil(minY/step) * step; y <= maxY; y += step {
		sy := float32((y - camY) * zoom)
		vector.StrokeLine(screen, float32((minX-camX)*zoom), sy, float32((maxX-camX)*zoom), sy, 1, gridColor, false)
	}
}

func layerOf(w *ecs.World, e ecs.Entity) int {
	if layer, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
		return layer.Index
	}
	return 0
}

func obstacleHeight(w *ecs.World, e ecs.Entity) float64 {
	if o, ok := ecs.Get(w, e, component.ObstacleComponent.Kind()); ok {
		return o.Height
	}
	return 0
}

func cameraTransform(w *ecs.World, camEntity ecs.Entity) (float64, float64, float64) {
	camX, camY := 0.0, 0.0
	zoom := 1.0
	if camTransform, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		camX = camTransform.X
		camY = camTransform.Y
	}
	if camComp, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok {
		if camComp.Zoom > 0 {
			zoom = camComp.Zoom
		}
	}
	return camX, camY, zoom
}
