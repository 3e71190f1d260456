package height

// Gate decides whether an obstacle blocks a player at a given effective
// height. It is consulted once per contact, before the collision response.
type Gate struct {
	Margin float64
}

func NewGate(margin float64) Gate {
	return Gate{Margin: margin}
}

// ShouldBlock reports whether the obstacle rises more than Margin above
// the effective height.
func (g Gate) ShouldBlock(o Obstacle, effective float64) bool {
	return o.Height > effective+g.Margin
}

// ShouldBlock applies the gate with the default PassMargin.
func ShouldBlock(o Obstacle, effective float64) bool {
	return Gate{Margin: PassMargin}.ShouldBlock(o, effective)
}
