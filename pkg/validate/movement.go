package validate

import (
	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

func (v *Validator) move(r *request) action.ValidationResult {
	if r.act.Target == "" {
		return r.invalid("Where do you want to go?")
	}
	if reason, blocked := blockedExit(r.loc, r.act.Target); blocked {
		return r.invalid("You can't go %s: %s", normalize(r.act.Target), reason)
	}
	if here := normalize(r.act.Target); here == normalize(r.loc.Name) || keyForm(here) == r.loc.Key {
		return r.invalid("You are already at %s.", r.loc.DisplayName())
	}

	dir, dest, ok := v.exit(r, r.act.Target)
	if !ok {
		return r.invalid("You can't get to %s from here.", r.act.Target)
	}
	if v.inCombat(r) {
		return r.invalid("You can't walk away while enemies are on you. Try to flee.")
	}
	return v.travel(r, dir, dest)
}

func (v *Validator) leave(r *request) action.ValidationResult {
	if r.act.Target != "" {
		return v.move(r)
	}
	if v.inCombat(r) {
		return r.invalid("You can't walk away while enemies are on you. Try to flee.")
	}

	dir, dest, ok := v.defaultExit(r)
	if !ok {
		if len(r.loc.Exits) == 0 {
			return r.invalid("There is no way out of %s.", r.loc.DisplayName())
		}
		return r.invalid("Which way do you want to leave?")
	}
	return v.travel(r, dir, dest)
}

// defaultExit picks the way back, or the only way out.
func (v *Validator) defaultExit(r *request) (direction, destination string, ok bool) {
	for _, dir := range sortedKeys(r.loc.Exits) {
		if r.loc.Exits[dir] == r.actor.PreviousLocation && r.actor.PreviousLocation != "" {
			return dir, r.loc.Exits[dir], true
		}
	}
	if len(r.loc.Exits) == 1 {
		for dir, dest := range r.loc.Exits {
			return dir, dest, true
		}
	}
	return "", "", false
}

func (v *Validator) travel(r *request, dir, destKey string) action.ValidationResult {
	dest, err := v.world.Location(destKey)
	if err != nil {
		return r.invalid("The way %s leads nowhere.", dir)
	}
	res := r.valid()
	res.ResolvedTarget = dest.Key
	res.Hints.Destination = dest.Key
	res.Hints.Direction = dir
	res.RiskTags = destinationTags(dest, r.actor)
	return res
}

// climbExits are the directions a climb can take.
var climbExits = []string{"up", "down"}

func (v *Validator) climbDestination(r *request) (world.Location, string, bool) {
	query := r.act.Target
	if query == "" {
		for _, d := range climbExits {
			if _, ok := r.loc.Exits[d]; ok {
				query = d
				break
			}
		}
	}
	if query == "" {
		return world.Location{}, "", false
	}
	dir, destKey, ok := v.exit(r, query)
	if !ok {
		return world.Location{}, "", false
	}
	dest, err := v.world.Location(destKey)
	if err != nil {
		return world.Location{}, "", false
	}
	return dest, dir, true
}
