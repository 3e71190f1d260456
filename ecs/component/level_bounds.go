package component

import "image/color"

// LevelBounds stores the world-space size of the loaded level. The world
// spans [0, Width] x [0, Height].
type LevelBounds struct {
	Name       string
	Width      float64
	Height     float64
	Background color.NRGBA
	GridSize   float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
