package component

import "image/color"

type SpriteShape int

const (
	SpriteRect SpriteShape = iota
	SpriteCircle
)

// Sprite describes a procedurally drawn shape. Images are generated and
// cached by the renderer.
type Sprite struct {
	Shape   SpriteShape
	Width   float64
	Height  float64
	Radius  float64
	Color   color.NRGBA
	OriginX float64
	OriginY float64
	Label   string
}

var SpriteComponent = NewComponent[Sprite]()
