package leveling

import "math"

// Curve is an exponential XP-to-level curve. The requirement to leave level
// L is floor(max(Min, Base * Growth^(L-1))).
type Curve struct {
	Base   float64
	Growth float64
	Min    int64
}

// CharacterCurve matches the main character progression.
var CharacterCurve = Curve{Base: 100, Growth: 1.15, Min: 1}

// FarmingCurve is steeper but starts lower; owned by the farm engine.
var FarmingCurve = Curve{Base: 80, Growth: 1.22, Min: 10}

// RequirementFor returns the XP needed to advance from the given level.
func (c Curve) RequirementFor(level int) int64 {
	if level < 1 {
		level = 1
	}
	threshold := int64(c.Base * math.Pow(c.Growth, float64(level-1)))
	if threshold < c.Min {
		return c.Min
	}
	return threshold
}
