package component

import "github.com/milk9111/heighthop/height"

// Obstacles are stored as the immutable height.Obstacle value. Its ID is
// the owning entity.
var ObstacleComponent = NewComponent[height.Obstacle]()
