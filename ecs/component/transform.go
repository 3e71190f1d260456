package component

// Transform is the world-space pose of an entity. X and Y are the center
// of its collider.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
