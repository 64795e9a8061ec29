// Package vitality maps hit points onto status tiers.
package vitality

// Status is a coarse vitality tier.
type Status string

const (
	Healthy  Status = "healthy"
	Wounded  Status = "wounded"
	Critical Status = "critical"
	Dying    Status = "dying"
	Dead     Status = "dead"
)

// Of returns the tier for current/max hit points. Creatures die at zero;
// player characters drop to dying instead.
func Of(hp, maxHP int, mortal bool) Status {
	switch {
	case hp <= 0 && mortal:
		return Dead
	case hp <= 0:
		return Dying
	case maxHP <= 0 || hp >= maxHP:
		return Healthy
	case hp*4 <= maxHP:
		return Critical
	default:
		return Wounded
	}
}

// Alive reports whether the tier can still act.
func (s Status) Alive() bool {
	return s != Dead && s != Dying
}

// Clamp keeps hp within [0, maxHP].
func Clamp(hp, maxHP int) int {
	if hp < 0 {
		return 0
	}
	if maxHP > 0 && hp > maxHP {
		return maxHP
	}
	return hp
}
