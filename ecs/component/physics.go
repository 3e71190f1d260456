package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// A positive Radius builds a circle collider, otherwise Width and Height
// build a box centered on the transform.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Width      float64
	Height     float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
