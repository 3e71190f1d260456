package component

// Input stores per-frame input state for an entity. MoveX and MoveY are
// in [-1, 1]; JumpPressed is only true on the tick the key went down.
type Input struct {
	MoveX       float64
	MoveY       float64
	Jump        bool
	JumpPressed bool
}

var InputComponent = NewComponent[Input]()
