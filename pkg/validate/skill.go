package validate

import (
	"github.com/jwebster45206/turn-authority/pkg/action"
)

func (v *Validator) climb(r *request) action.ValidationResult {
	res := r.valid()
	res.Hints.Attribute = "strength"
	res.Hints.DC = dcParam(r.act, DefaultClimbDC)

	if dest, dir, ok := v.climbDestination(r); ok {
		if v.inCombat(r) {
			return r.invalid("You can't climb away while enemies are on you. Try to flee.")
		}
		res.ResolvedTarget = dest.Key
		res.Hints.Destination = dest.Key
		res.Hints.Direction = dir
		res.RiskTags = destinationTags(dest, r.actor)
		return res
	}
	if !r.loc.Climbable {
		if r.act.Target != "" {
			return r.invalid("You can't climb %s.", r.act.Target)
		}
		return r.invalid("There is nothing to climb here.")
	}
	res.ResolvedTarget = r.loc.Key
	return res
}

func (v *Validator) sneak(r *request) action.ValidationResult {
	res := r.valid()
	res.Hints.Attribute = "dexterity"
	res.Hints.DC = dcParam(r.act, DefaultSneakDC)
	if r.act.Target == "" {
		return res
	}
	if reason, blocked := blockedExit(r.loc, r.act.Target); blocked {
		return r.invalid("You can't sneak %s: %s", normalize(r.act.Target), reason)
	}
	if dir, destKey, ok := v.exit(r, r.act.Target); ok {
		dest, err := v.world.Location(destKey)
		if err != nil {
			return r.invalid("The way %s leads nowhere.", dir)
		}
		res.ResolvedTarget = dest.Key
		res.Hints.Destination = dest.Key
		res.Hints.Direction = dir
		res.RiskTags = destinationTags(dest, r.actor)
		return res
	}
	if e, ok := v.presentEntity(r, r.act.Target); ok {
		res.ResolvedTarget = e.Key
		res.Hints.EntityID = e.ID
		res.RiskTags = entityTags(e)
		return res
	}
	return r.invalid("You can't sneak to %s from here.", r.act.Target)
}

func (v *Validator) pickLock(r *request) action.ValidationResult {
	if r.act.Target == "" {
		return r.invalid("What lock do you want to pick?")
	}
	it, ok := v.reachableItem(r, r.act.Target)
	if !ok {
		return r.invalid("You don't see any %s here.", r.act.Target)
	}
	if !it.Locked {
		return r.invalid("The %s isn't locked.", it.DisplayName())
	}
	dc := it.LockDC
	if dc <= 0 {
		dc = DefaultLockDC
	}
	res := r.valid()
	res.ResolvedTarget = it.Key
	res.Hints.ItemID = it.ID
	res.Hints.Attribute = "dexterity"
	res.Hints.DC = dcParam(r.act, dc)
	res.RiskTags = itemTags(it).Add(action.RiskStealth)
	return res
}
