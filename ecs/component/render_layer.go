package component

// RenderLayer orders drawing; lower indices draw first. Obstacles share a
// layer and are further ordered by height.
type RenderLayer struct {
	Index int
}

const (
	LayerObstacles = 10
	LayerPlayer    = 20
)

var RenderLayerComponent = NewComponent[RenderLayer]()
