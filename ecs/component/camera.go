package component

// Camera follows the player and is clamped to the level bounds. The
// camera entity's Transform holds the top-left corner of the view in
// world space.
type Camera struct {
	Zoom       float64
	Smoothness float64
	ViewWidth  float64
	ViewHeight float64
}

var CameraComponent = NewComponent[Camera]()
