package validate

import (
	"strconv"

	"github.com/jwebster45206/turn-authority/pkg/action"
)

func (v *Validator) look(r *request) action.ValidationResult {
	res := r.valid()
	res.ResolvedTarget = r.loc.Key
	return res
}

func (v *Validator) examine(r *request) action.ValidationResult {
	if r.act.Target == "" {
		return r.invalid("What do you want to examine?")
	}
	if it, ok := v.reachableItem(r, r.act.Target); ok {
		res := r.valid()
		res.ResolvedTarget = it.Key
		res.Hints.ItemID = it.ID
		res.RiskTags = itemTags(it)
		return res
	}
	if e, ok := v.presentEntity(r, r.act.Target); ok {
		res := r.valid()
		res.ResolvedTarget = e.Key
		res.Hints.EntityID = e.ID
		res.RiskTags = entityTags(e)
		return res
	}
	if q := normalize(r.act.Target); q == normalize(r.loc.Name) || keyForm(q) == r.loc.Key || q == "room" || q == "area" || q == "surroundings" {
		res := r.valid()
		res.ResolvedTarget = r.loc.Key
		res.Hints.ExamineLocation = true
		return res
	}
	return r.invalid("You don't see any %s here.", r.act.Target)
}

func (v *Validator) search(r *request) action.ValidationResult {
	res := r.valid()
	res.ResolvedTarget = r.loc.Key
	res.Hints.DC = dcParam(r.act, DefaultDC)
	res.Hints.Attribute = "wisdom"
	if r.act.Target != "" {
		it, ok := v.reachableItem(r, r.act.Target)
		if !ok {
			return r.invalid("You don't see any %s to search.", r.act.Target)
		}
		if it.Openable && !it.Open {
			return r.invalid("The %s is closed.", it.DisplayName())
		}
		res.ResolvedTarget = it.Key
		res.Hints.ItemID = it.ID
		res.RiskTags = itemTags(it)
	}
	if v.hasHiddenContents(r.loc.Key) {
		res.RiskTags = res.RiskTags.Add(action.RiskMysterious)
	}
	return res
}

func (v *Validator) wait(r *request) action.ValidationResult {
	minutes := DefaultWaitMinutes
	if raw := r.act.Param("minutes"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return r.invalid("You can't wait for %q minutes.", raw)
		}
		if n > MaxWaitMinutes {
			return r.invalid("That is too long to wait. Try sleeping instead.")
		}
		minutes = n
	}
	res := r.valid()
	res.Hints.Minutes = minutes
	if v.inCombat(r) {
		res.Warnings = append(res.Warnings, "Waiting while enemies are near is risky.")
		res.RiskTags = res.RiskTags.Add(action.RiskHostile)
	}
	return res
}

// rest handles rest and sleep. Neither is possible in combat.
func (v *Validator) rest(r *request) action.ValidationResult {
	if v.inCombat(r) {
		return r.invalid("You can't %s with enemies nearby.", r.act.Kind)
	}
	res := r.valid()
	res.Hints.Minutes = RestMinutes
	if r.act.Kind == action.KindSleep {
		res.Hints.Minutes = SleepMinutes
	}
	return res
}
