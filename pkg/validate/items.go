package validate

import (
	"strings"

	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

func (v *Validator) take(r *request) action.ValidationResult {
	if r.act.Target == "" {
		return r.invalid("What do you want to take?")
	}
	if it, ok := v.inventoryItem(r, r.act.Target); ok {
		return r.invalid("You already have the %s.", it.DisplayName())
	}

	it, ok := v.groundItem(r, r.act.Target)
	if !ok {
		for _, e := range v.world.EntitiesAt(r.loc.Key) {
			if held, ok := matchItem(v.world.ItemsHeldBy(e.Key), r.act.Target); ok {
				return r.invalid("The %s belongs to %s.", held.DisplayName(), e.DisplayName())
			}
		}
		if v.world.Mentioned(r.loc.Key, normalize(r.act.Target)) {
			// the weight is unknown until the item exists; the executor checks it then
			if world.TotalWeight(v.world.Inventory(r.actor.ID)) >= r.pc.CarryCapacity() {
				return r.invalid("You can't carry any more.")
			}
			res := r.valid()
			res.ResolvedTarget = normalize(r.act.Target)
			res.Hints.SpawnOnDemand = true
			res.Hints.SpawnName = normalize(r.act.Target)
			return res
		}
		return r.invalid("You don't see any %s here.", r.act.Target)
	}
	if it.Fixed {
		return r.invalid("The %s can't be carried.", it.DisplayName())
	}

	carried := world.TotalWeight(v.world.Inventory(r.actor.ID))
	if capacity := r.pc.CarryCapacity(); carried+it.Weight > capacity {
		return r.invalid("The %s is too heavy; you can't carry any more.", it.DisplayName())
	}

	res := r.valid()
	res.ResolvedTarget = it.Key
	res.Hints.ItemID = it.ID
	res.RiskTags = itemTags(it)
	return res
}

func (v *Validator) drop(r *request) action.ValidationResult {
	if r.act.Target == "" {
		return r.invalid("What do you want to drop?")
	}
	it, ok := v.inventoryItem(r, r.act.Target)
	if !ok {
		return r.invalid("You aren't carrying any %s.", r.act.Target)
	}
	res := r.valid()
	res.ResolvedTarget = it.Key
	res.Hints.ItemID = it.ID
	if slot, equipped := r.actor.SlotOf(it.ID); equipped {
		res.Hints.Slot = slot
		res.Warnings = append(res.Warnings, "You will unequip the "+it.DisplayName()+" first.")
	}
	return res
}

func (v *Validator) give(r *request) action.ValidationResult {
	if r.act.Target == "" {
		return r.invalid("What do you want to give?")
	}
	if r.act.IndirectTarget == "" {
		return r.invalid("Who do you want to give it to?")
	}
	it, ok := v.inventoryItem(r, r.act.Target)
	if !ok {
		return r.invalid("You aren't carrying any %s.", r.act.Target)
	}
	e, ok := v.presentEntity(r, r.act.IndirectTarget)
	if !ok {
		return r.invalid("There is no %s here.", r.act.IndirectTarget)
	}
	if !e.Alive() {
		return r.invalid("%s can't accept anything now.", e.DisplayName())
	}

	res := r.valid()
	res.ResolvedTarget = it.Key
	res.ResolvedIndirect = e.Key
	res.Hints.ItemID = it.ID
	res.Hints.EntityID = e.ID
	res.RiskTags = itemTags(it).Add(entityTags(e)...).Add(action.RiskSocial)
	return res
}

func (v *Validator) use(r *request) action.ValidationResult {
	if r.act.Target == "" {
		return r.invalid("What do you want to use?")
	}
	it, ok := v.reachableItem(r, r.act.Target)
	if !ok {
		return r.invalid("You don't have or see any %s.", r.act.Target)
	}
	res := r.valid()
	res.ResolvedTarget = it.Key
	res.Hints.ItemID = it.ID
	res.RiskTags = itemTags(it)

	if r.act.IndirectTarget == "" {
		return res
	}
	if other, ok := v.reachableItem(r, r.act.IndirectTarget); ok {
		res.ResolvedIndirect = other.Key
		res.Hints.IndirectItemID = other.ID
		res.RiskTags = res.RiskTags.Add(itemTags(other)...)
		if other.Locked && it.Unlocks != "" && it.Unlocks != other.Key {
			return r.invalid("The %s doesn't fit the %s.", it.DisplayName(), other.DisplayName())
		}
		return res
	}
	if e, ok := v.presentEntity(r, r.act.IndirectTarget); ok {
		res.ResolvedIndirect = e.Key
		res.Hints.EntityID = e.ID
		res.RiskTags = res.RiskTags.Add(entityTags(e)...)
		return res
	}
	return r.invalid("You don't see any %s to use it on.", r.act.IndirectTarget)
}

func (v *Validator) equip(r *request) action.ValidationResult {
	if r.act.Target == "" {
		return r.invalid("What do you want to equip?")
	}
	it, ok := v.inventoryItem(r, r.act.Target)
	if !ok {
		if ground, seen := v.groundItem(r, r.act.Target); seen {
			return r.invalid("You need to pick up the %s first.", ground.DisplayName())
		}
		return r.invalid("You aren't carrying any %s.", r.act.Target)
	}
	if !it.Equippable() {
		return r.invalid("The %s can't be equipped.", it.DisplayName())
	}
	if _, equipped := r.actor.SlotOf(it.ID); equipped {
		return r.invalid("The %s is already equipped.", it.DisplayName())
	}

	slot := it.EquipSlot()
	res := r.valid()
	res.ResolvedTarget = it.Key
	res.Hints.ItemID = it.ID
	res.Hints.Slot = slot
	res.RiskTags = itemTags(it)
	if current := r.actor.EquippedIn(slot); current != 0 {
		res.Hints.ReplacesItemID = current
		if old, err := v.world.Item(current); err == nil {
			res.Warnings = append(res.Warnings, "This replaces the "+old.DisplayName()+".")
		}
	}
	return res
}

func (v *Validator) unequip(r *request) action.ValidationResult {
	if r.act.Target == "" {
		return r.invalid("What do you want to unequip?")
	}
	it, ok := v.inventoryItem(r, r.act.Target)
	if !ok {
		return r.invalid("You aren't carrying any %s.", r.act.Target)
	}
	slot, equipped := r.actor.SlotOf(it.ID)
	if !equipped {
		return r.invalid("The %s isn't equipped.", it.DisplayName())
	}
	res := r.valid()
	res.ResolvedTarget = it.Key
	res.Hints.ItemID = it.ID
	res.Hints.Slot = slot
	return res
}

func (v *Validator) open(r *request) action.ValidationResult {
	return v.openClose(r, true)
}

func (v *Validator) close(r *request) action.ValidationResult {
	return v.openClose(r, false)
}

func (v *Validator) openClose(r *request, opening bool) action.ValidationResult {
	verb := "close"
	if opening {
		verb = "open"
	}
	if r.act.Target == "" {
		return r.invalid("What do you want to %s?", verb)
	}
	it, ok := v.reachableItem(r, r.act.Target)
	if !ok {
		return r.invalid("You don't see any %s here.", r.act.Target)
	}
	switch {
	case !it.Openable:
		return r.invalid("The %s can't be %sed.", it.DisplayName(), strings.TrimSuffix(verb, "e"))
	case opening && it.Open:
		return r.invalid("The %s is already open.", it.DisplayName())
	case !opening && !it.Open:
		return r.invalid("The %s is already closed.", it.DisplayName())
	case opening && it.Locked:
		return r.invalid("The %s is locked.", it.DisplayName())
	}

	res := r.valid()
	res.ResolvedTarget = it.Key
	res.Hints.ItemID = it.ID
	res.RiskTags = itemTags(it)
	if opening && v.hasHiddenContents(r.loc.Key) {
		res.RiskTags = res.RiskTags.Add(action.RiskMysterious)
	}
	return res
}

func (v *Validator) hasHiddenContents(locKey string) bool {
	for _, it := range v.world.ItemsAt(locKey) {
		if it.Hidden {
			return true
		}
	}
	return false
}

// consume handles eat and drink.
func (v *Validator) consume(r *request) action.ValidationResult {
	verb := string(r.act.Kind)
	if r.act.Target == "" {
		return r.invalid("What do you want to %s?", verb)
	}
	it, ok := v.reachableItem(r, r.act.Target)
	if !ok {
		return r.invalid("You don't have or see any %s.", r.act.Target)
	}

	edible := it.Kind == world.ItemFood
	if r.act.Kind == action.KindDrink {
		edible = it.Kind == world.ItemDrink || it.Kind == world.ItemPotion
	}
	if !edible {
		return r.invalid("You can't %s the %s.", verb, it.DisplayName())
	}

	res := r.valid()
	res.ResolvedTarget = it.Key
	res.Hints.ItemID = it.ID
	res.RiskTags = itemTags(it)
	return res
}
