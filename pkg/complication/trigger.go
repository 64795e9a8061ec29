package complication

// Trigger makes the single random draw that decides whether a complication
// fires at the given chance.
type Trigger func(chance float64) bool

// Float64Source draws uniform values in [0, 1).
type Float64Source interface {
	Float64() float64
}

// RandomTrigger fires when a draw from src falls below the chance.
func RandomTrigger(src Float64Source) Trigger {
	return func(chance float64) bool {
		if chance <= 0 {
			return false
		}
		return src.Float64() < chance
	}
}

// FixedTrigger fires whenever the chance exceeds draw. Useful for replaying
// a known roll.
func FixedTrigger(draw float64) Trigger {
	return func(chance float64) bool {
		return draw < chance
	}
}
