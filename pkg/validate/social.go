package validate

import (
	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

// listener resolves a living NPC who can hold a conversation.
func (v *Validator) listener(r *request, verb string) (world.Entity, *action.ValidationResult) {
	if r.act.Target == "" {
		res := r.invalid("Who do you want to %s?", verb)
		return world.Entity{}, &res
	}
	e, ok := v.presentEntity(r, r.act.Target)
	if !ok {
		res := r.invalid("There is no %s here.", r.act.Target)
		return world.Entity{}, &res
	}
	if !e.Alive() {
		res := r.invalid("%s can no longer answer.", e.DisplayName())
		return world.Entity{}, &res
	}
	if e.Kind == world.EntityCreature {
		res := r.invalid("%s doesn't understand you.", e.DisplayName())
		return world.Entity{}, &res
	}
	return e, nil
}

func (v *Validator) socialResult(r *request, e world.Entity) action.ValidationResult {
	res := r.valid()
	res.ResolvedTarget = e.Key
	res.Hints.EntityID = e.ID
	res.RiskTags = entityTags(e)
	return res
}

func (v *Validator) talk(r *request) action.ValidationResult {
	e, fail := v.listener(r, "talk to")
	if fail != nil {
		return *fail
	}
	return v.socialResult(r, e)
}

func (v *Validator) ask(r *request) action.ValidationResult {
	e, fail := v.listener(r, "ask")
	if fail != nil {
		return *fail
	}
	res := v.socialResult(r, e)
	topic := r.act.IndirectTarget
	if topic == "" {
		topic = r.act.Param("topic")
	}
	topic = normalize(topic)
	res.Hints.Topic = topic
	res.ResolvedIndirect = topic
	if topic != "" {
		if _, known := e.Topics[keyForm(topic)]; !known {
			if _, known = e.Topics[topic]; !known {
				res.Warnings = append(res.Warnings, e.DisplayName()+" may know nothing about that.")
			}
		}
	}
	return res
}

func (v *Validator) persuade(r *request) action.ValidationResult {
	e, fail := v.listener(r, "persuade")
	if fail != nil {
		return *fail
	}
	res := v.socialResult(r, e)
	dc := dcParam(r.act, DefaultDC)
	if e.Hostile {
		dc += HostilePersuadeDC
	}
	res.Hints.DC = dc
	res.Hints.Attribute = "charisma"
	return res
}

func (v *Validator) trade(r *request) action.ValidationResult {
	e, fail := v.listener(r, "trade with")
	if fail != nil {
		return *fail
	}
	if world.Disposition(e.Attitude) == "hostile" {
		return r.invalid("%s refuses to trade with you.", e.DisplayName())
	}
	res := v.socialResult(r, e)
	if r.act.IndirectTarget != "" {
		offer, ok := v.inventoryItem(r, r.act.IndirectTarget)
		if !ok {
			return r.invalid("You aren't carrying any %s to offer.", r.act.IndirectTarget)
		}
		res.ResolvedIndirect = offer.Key
		res.Hints.ItemID = offer.ID
		res.RiskTags = res.RiskTags.Add(itemTags(offer)...)
	}
	if want := r.act.Param("want"); want != "" {
		goods, ok := matchItem(v.world.ItemsHeldBy(e.Key), want)
		if !ok {
			return r.invalid("%s has no %s to trade.", e.DisplayName(), want)
		}
		res.Hints.IndirectItemID = goods.ID
		res.RiskTags = res.RiskTags.Add(itemTags(goods)...)
	}
	return res
}
