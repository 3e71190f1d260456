package component

import "github.com/milk9111/heighthop/height"

// Height carries the live height state of a player.
type Height struct {
	State *height.State
}

var HeightComponent = NewComponent[Height]()
