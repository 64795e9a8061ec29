package validate

import (
	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

func (v *Validator) attack(r *request) action.ValidationResult {
	if r.act.Target == "" {
		return r.invalid("What do you want to attack?")
	}
	e, ok := v.presentEntity(r, r.act.Target)
	if !ok {
		return r.invalid("There is no %s here to attack.", r.act.Target)
	}
	if !e.Alive() {
		return r.invalid("%s is already dead.", e.DisplayName())
	}

	res := r.valid()
	res.ResolvedTarget = e.Key
	res.Hints.EntityID = e.ID
	res.RiskTags = entityTags(e).Add(action.RiskDangerous)

	// weapon: named explicitly, else whatever is in the main hand
	if r.act.IndirectTarget != "" {
		weapon, ok := v.inventoryItem(r, r.act.IndirectTarget)
		if !ok {
			return r.invalid("You aren't carrying any %s.", r.act.IndirectTarget)
		}
		res.ResolvedIndirect = weapon.Key
		res.Hints.ItemID = weapon.ID
		res.RiskTags = res.RiskTags.Add(itemTags(weapon)...)
	} else if id := r.actor.EquippedIn(world.SlotMainHand); id != 0 {
		res.Hints.ItemID = id
	}
	if !e.Hostile {
		res.Warnings = append(res.Warnings, e.DisplayName()+" was not hostile.")
	}
	return res
}

func (v *Validator) defend(r *request) action.ValidationResult {
	res := r.valid()
	if !v.inCombat(r) {
		res.Warnings = append(res.Warnings, "Nothing here threatens you.")
	}
	return res
}

func (v *Validator) flee(r *request) action.ValidationResult {
	if !v.inCombat(r) {
		return r.invalid("There is nothing to flee from.")
	}

	var dir, dest string
	var ok bool
	if r.act.Target != "" {
		if reason, blocked := blockedExit(r.loc, r.act.Target); blocked {
			return r.invalid("You can't flee %s: %s", normalize(r.act.Target), reason)
		}
		dir, dest, ok = v.exit(r, r.act.Target)
		if !ok {
			return r.invalid("You can't flee to %s from here.", r.act.Target)
		}
	} else {
		dir, dest, ok = v.defaultExit(r)
		if !ok {
			keys := sortedKeys(r.loc.Exits)
			if len(keys) == 0 {
				return r.invalid("There is nowhere to run.")
			}
			dir, dest = keys[0], r.loc.Exits[keys[0]]
		}
	}

	res := v.travel(r, dir, dest)
	if res.Valid {
		res.RiskTags = res.RiskTags.Add(action.RiskDangerous)
	}
	return res
}
