package height

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
)

// Obstacle is a static rectangle tagged with a height value. Height 0 is
// ground level.
type Obstacle struct {
	ID     uint64
	Bounds cp.BB
	Height float64
}

// NewObstacle builds an obstacle from its center and extents.
func NewObstacle(id uint64, centerX, centerY, width, extent, value float64) (Obstacle, error) {
	if !(width > 0) || !(extent > 0) || math.IsInf(width, 0) || math.IsInf(extent, 0) {
		return Obstacle{}, fmt.Errorf("%w: obstacle %d is %vx%v", ErrInvalidBounds, id, width, extent)
	}
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return Obstacle{}, fmt.Errorf("%w: obstacle %d has height %v", ErrNegativeHeight, id, value)
	}
	center := cp.Vector{X: centerX, Y: centerY}
	return Obstacle{
		ID:     id,
		Bounds: cp.NewBBForExtents(center, width/2, extent/2),
		Height: value,
	}, nil
}

func (o Obstacle) Center() cp.Vector {
	return o.Bounds.Center()
}

// Size returns the width and vertical extent of the obstacle bounds.
func (o Obstacle) Size() (float64, float64) {
	return o.Bounds.R - o.Bounds.L, o.Bounds.T - o.Bounds.B
}

// OverlapsCircle reports whether a circle intersects the obstacle bounds.
// Touching edges do not count.
func (o Obstacle) OverlapsCircle(center cp.Vector, radius float64) bool {
	if center.X >= o.Bounds.L && center.X <= o.Bounds.R && center.Y >= o.Bounds.B && center.Y <= o.Bounds.T {
		return true
	}
	nx := math.Max(o.Bounds.L, math.Min(center.X, o.Bounds.R))
	ny := math.Max(o.Bounds.B, math.Min(center.Y, o.Bounds.T))
	dx := center.X - nx
	dy := center.Y - ny
	return dx*dx+dy*dy < radius*radius
}

// Nearest returns the obstacle whose center is closest to center. Ties keep
// the earliest obstacle in the slice.
func Nearest(center cp.Vector, obstacles []Obstacle) (Obstacle, bool) {
	best := -1
	bestDist := math.Inf(1)
	for i := range obstacles {
		d := obstacles[i].Center().Sub(center).LengthSq()
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	if best < 0 {
		return Obstacle{}, false
	}
	return obstacles[best], true
}
