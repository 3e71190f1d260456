package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/heighthop/ecs/entity"
	"github.com/milk9111/heighthop/logger"
	"go.uber.org/zap"
)

const (
	spawnRadius   = 20
	minZoom       = 0.1
	maxZoom       = 4.0
	zoomWheelStep = 1.1
)

var (
	gridColor    = color.NRGBA{R: 0xd0, G: 0xd0, B: 0xd0, A: 0xff}
	boundsColor  = color.NRGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
	selectColor  = color.NRGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}
	previewColor = color.NRGBA{R: 0x3c, G: 0x78, B: 0xff, A: 0x80}
	spawnColor   = color.NRGBA{R: 0x3c, G: 0x78, B: 0xff, A: 0xff}

	digitKeys = []ebiten.Key{ebiten.Key0, ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9}
)

// Editor is the ebiten game for the obstacle editor.
type Editor struct {
	doc     *Doc
	outPath string
	ui      *editorUI

	width, height int

	tool     Tool
	selected int
	height0  float64

	// canvas transform: screen = (world - offset) * zoom
	zoom             float64
	offsetX, offsetY float64
	panning          bool
	lastMX, lastMY   int

	dragging       bool
	dragX0, dragY0 float64
	dragX1, dragY1 float64
}

func NewEditor(doc *Doc, outPath string, width, height int) *Editor {
	e := &Editor{
		doc:      doc,
		outPath:  outPath,
		width:    width,
		height:   height,
		selected: -1,
		height0:  1,
		zoom:     1,
	}
	e.offsetY = -toolbarHeight
	e.ui = buildEditorUI(
		func(t Tool) { e.tool = t },
		e.save,
		e.undo,
	)
	e.refreshStatus()
	return e
}

func (e *Editor) save() {
	if err := e.doc.Save(e.outPath); err != nil {
		logger.Error("save failed", zap.Error(err))
		e.ui.SetStatus("save failed: " + err.Error())
		return
	}
	logger.Info("level saved", zap.String("path", e.doc.Path), zap.Int("obstacles", len(e.doc.Level.Obstacles)))
	e.refreshStatus()
}

func (e *Editor) undo() {
	if e.doc.Undo() {
		e.selected = -1
	}
	e.refreshStatus()
}

func (e *Editor) refreshStatus() {
	dirty := ""
	if e.doc.Dirty {
		dirty = "*"
	}
	sel := "-"
	if e.selected >= 0 && e.selected < len(e.doc.Level.Obstacles) {
		sel = fmt.Sprintf("#%d h=%g", e.selected, e.doc.Level.Obstacles[e.selected].Height)
	}
	e.ui.SetStatus(fmt.Sprintf("%s%s  new height %g  selected %s", e.doc.Level.Name, dirty, e.height0, sel))
}

func (e *Editor) screenToWorld(sx, sy int) (float64, float64) {
	return float64(sx)/e.zoom + e.offsetX, float64(sy)/e.zoom + e.offsetY
}

func (e *Editor) worldToScreen(x, y float64) (float32, float32) {
	return float32((x - e.offsetX) * e.zoom), float32((y - e.offsetY) * e.zoom)
}

func (e *Editor) Update() error {
	e.ui.ui.Update()

	mx, my := ebiten.CursorPosition()
	inCanvas := my >= toolbarHeight
	wx, wy := e.screenToWorld(mx, my)

	e.updatePanZoom(mx, my, inCanvas)
	e.updateKeys()

	if inCanvas && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		switch e.tool {
		case ToolRect:
			e.dragging = true
			e.dragX0, e.dragY0 = wx, wy
		case ToolSelect:
			e.selected = e.doc.HitTest(wx, wy)
		case ToolSpawn:
			e.doc.SetSpawn(wx, wy)
		}
		e.refreshStatus()
	}
	if e.dragging {
		e.dragX1, e.dragY1 = wx, wy
		if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
			e.dragging = false
			if i := e.doc.AddRect(e.dragX0, e.dragY0, wx, wy, e.height0); i >= 0 {
				e.selected = i
			}
			e.refreshStatus()
		}
	}
	return nil
}

func (e *Editor) updatePanZoom(mx, my int, inCanvas bool) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) && inCanvas {
		e.panning = true
		e.lastMX, e.lastMY = mx, my
	}
	if e.panning {
		if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
			e.panning = false
		} else {
			e.offsetX -= float64(mx-e.lastMX) / e.zoom
			e.offsetY -= float64(my-e.lastMY) / e.zoom
			e.lastMX, e.lastMY = mx, my
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 && inCanvas {
		// keep the point under the cursor fixed while zooming
		bx, by := e.screenToWorld(mx, my)
		if wy > 0 {
			e.zoom *= zoomWheelStep
		} else {
			e.zoom /= zoomWheelStep
		}
		e.zoom = math.Max(minZoom, math.Min(maxZoom, e.zoom))
		e.offsetX = bx - float64(mx)/e.zoom
		e.offsetY = by - float64(my)/e.zoom
	}
}

func (e *Editor) updateKeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		e.save()
		return
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		e.undo()
		return
	}

	for n, k := range digitKeys {
		if !inpututil.IsKeyJustPressed(k) {
			continue
		}
		e.height0 = float64(n)
		if e.selected >= 0 {
			if err := e.doc.SetHeight(e.selected, float64(n)); err != nil {
				logger.Warn("set height", zap.Error(err))
			}
		}
		e.refreshStatus()
	}

	if e.selected >= 0 && (inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace)) {
		if err := e.doc.Remove(e.selected); err != nil {
			logger.Warn("remove obstacle", zap.Error(err))
		}
		e.selected = -1
		e.refreshStatus()
	}
}

func (e *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(e.doc.Level.BackgroundColor())
	e.drawGrid(screen)

	for i, o := range e.doc.Level.Obstacles {
		x, y := e.worldToScreen(o.X-o.W/2, o.Y-o.H/2)
		w, h := float32(o.W*e.zoom), float32(o.H*e.zoom)
		vector.DrawFilledRect(screen, x, y, w, h, entity.ObstacleShade(o.Height), false)
		stroke := boundsColor
		width := float32(1)
		if i == e.selected {
			stroke, width = selectColor, 3
		}
		vector.StrokeRect(screen, x, y, w, h, width, stroke, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%g", o.Height), int(x)+4, int(y)+4)
	}

	sx, sy := e.worldToScreen(e.doc.Level.Spawn.X, e.doc.Level.Spawn.Y)
	vector.StrokeCircle(screen, sx, sy, spawnRadius*float32(e.zoom), 2, spawnColor, true)

	if e.dragging {
		x0, y0 := e.worldToScreen(e.doc.snap(math.Min(e.dragX0, e.dragX1)), e.doc.snap(math.Min(e.dragY0, e.dragY1)))
		x1, y1 := e.worldToScreen(e.doc.snap(math.Max(e.dragX0, e.dragX1)), e.doc.snap(math.Max(e.dragY0, e.dragY1)))
		vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, previewColor, false)
	}

	e.ui.ui.Draw(screen)
	ebitenutil.DebugPrintAt(screen, "drag: new obstacle  0-9: height  del: remove  ctrl+s: save  ctrl+z: undo  mmb: pan", 8, e.height-20)
}

func (e *Editor) drawGrid(screen *ebiten.Image) {
	lvl := e.doc.Level
	g := lvl.GridSize
	if g > 0 && g*e.zoom >= 4 {
		for x := 0.0; x <= lvl.Width; x += g {
			x0, y0 := e.worldToScreen(x, 0)
			_, y1 := e.worldToScreen(x, lvl.Height)
			vector.StrokeLine(screen, x0, y0, x0, y1, 1, gridColor, false)
		}
		for y := 0.0; y <= lvl.Height; y += g {
			x0, y0 := e.worldToScreen(0, y)
			x1, _ := e.worldToScreen(lvl.Width, y)
			vector.StrokeLine(screen, x0, y0, x1, y0, 1, gridColor, false)
		}
	}
	x, y := e.worldToScreen(0, 0)
	vector.StrokeRect(screen, x, y, float32(lvl.Width*e.zoom), float32(lvl.Height*e.zoom), 2, boundsColor, false)
}

func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.width, e.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
