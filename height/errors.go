package height

import "errors"

var (
	ErrNegativeDelta  = errors.New("height: negative or NaN delta time")
	ErrNegativeHeight = errors.New("height: negative obstacle height")
	ErrInvalidBounds  = errors.New("height: obstacle extents must be positive")
	ErrInvalidTuning  = errors.New("height: invalid tuning")
)
