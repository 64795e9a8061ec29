package validate

import (
	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

var propertyTags = map[string]action.RiskTag{
	world.PropMagical:    action.RiskMagical,
	world.PropCursed:     action.RiskCursed,
	world.PropValuable:   action.RiskValuable,
	world.PropSacred:     action.RiskSacred,
	world.PropDangerous:  action.RiskDangerous,
	world.PropMysterious: action.RiskMysterious,
}

func tagsFor(props []string) action.RiskTags {
	var tags action.RiskTags
	for _, p := range props {
		tags = tags.Add(propertyTags[p])
	}
	return tags
}

func itemTags(it world.Item) action.RiskTags {
	return tagsFor(it.Properties)
}

func entityTags(e world.Entity) action.RiskTags {
	tags := tagsFor(e.Properties)
	if e.Hostile && e.Alive() {
		tags = tags.Add(action.RiskHostile)
	}
	return tags
}

// destinationTags classifies a location the actor is about to enter.
func destinationTags(dest world.Location, state world.ActorState) action.RiskTags {
	tags := tagsFor(dest.Properties)
	switch world.ClassifyDanger(dest) {
	case world.DangerDangerous, world.DangerHostile:
		tags = tags.Add(action.RiskDangerous)
	}
	if !state.HasVisited(dest.Key) {
		tags = tags.Add(action.RiskFirstTime)
	}
	return tags
}

// contextTags apply to every valid action: where it happens and what kind
// of action it is.
func (v *Validator) contextTags(r *request) action.RiskTags {
	tags := tagsFor(r.loc.Properties)
	switch world.ClassifyDanger(r.loc) {
	case world.DangerDangerous, world.DangerHostile:
		tags = tags.Add(action.RiskDangerous)
	}
	switch {
	case r.act.Category() == action.CategorySocial:
		tags = tags.Add(action.RiskSocial)
	case r.act.Kind == action.KindSneak:
		tags = tags.Add(action.RiskStealth)
	case r.act.Kind == action.KindCustom:
		tags = tags.Add(action.RiskFirstTime)
	}
	return tags
}
