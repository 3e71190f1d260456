package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const outlineWidth = 2

func newRectImage(w, h float64, clr color.NRGBA) *ebiten.Image {
	iw, ih := imageSize(w), imageSize(h)
	img := ebiten.NewImage(iw, ih)
	vector.DrawFilledRect(img, 0, 0, float32(iw), float32(ih), clr, false)
	vector.StrokeRect(img, 1, 1, float32(iw)-outlineWidth, float32(ih)-outlineWidth, outlineWidth, darken(clr, 0.7), false)
	return img
}

func newCircleImage(r float64, clr color.NRGBA) *ebiten.Image {
	size := imageSize(2 * r)
	img := ebiten.NewImage(size, size)
	c := float32(size) / 2
	vector.DrawFilledCircle(img, c, c, c, clr, true)
	vector.StrokeCircle(img, c, c, c-1, outlineWidth, darken(clr, 0.6), true)
	return img
}

func imageSize(v float64) int {
	if v < 1 || math.IsNaN(v) {
		return 1
	}
	return int(math.Ceil(v))
}

func darken(c color.NRGBA, f float64) color.NRGBA {
	return color.NRGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}
