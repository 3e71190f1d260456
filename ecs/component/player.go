package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/heighthop/motion"
)

type Player struct {
	Motion   motion.Tuning
	Velocity cp.Vector
}

var PlayerComponent = NewComponent[Player]()
