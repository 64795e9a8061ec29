package complication

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/turn-authority/pkg/action"
)

type fallbackRule struct {
	tag   action.RiskTag
	build func(place string) Complication
}

// Rules are checked in order; the first tag present wins.
var fallbackRules = []fallbackRule{
	{action.RiskDangerous, costHP},
	{action.RiskHostile, costHP},
	{action.RiskCursed, func(place string) Complication {
		return Complication{
			Kind:        KindCost,
			Description: "A creeping chill settles in; something here does not want to be disturbed.",
			Effects:     []Effect{{Type: EffectResourceLoss, Target: "fatigue", Amount: 15}},
		}
	}},
	{action.RiskSocial, func(place string) Complication {
		return Complication{
			Kind:        KindInterruption,
			Description: fmt.Sprintf("Someone else in %s cuts in before the exchange can finish.", place),
			Effects:     []Effect{{Type: EffectTimeAdvance, Amount: 5}},
		}
	}},
	{action.RiskMysterious, discovery},
	{action.RiskMagical, discovery},
}

// Fallback builds a deterministic complication from the risk tags. It never
// fails and always returns a well-formed complication.
func Fallback(tags action.RiskTags, locationName string) Complication {
	place := "the area"
	if locationName != "" {
		place = cases.Title(language.English).String(locationName)
	}
	for _, rule := range fallbackRules {
		if tags.Has(rule.tag) {
			return rule.build(place)
		}
	}
	return discovery(place)
}

func costHP(place string) Complication {
	return Complication{
		Kind:        KindCost,
		Description: fmt.Sprintf("Something in %s bites back; the attempt leaves a fresh wound.", place),
		Effects:     []Effect{{Type: EffectHPLoss, Amount: 2}},
	}
}

func discovery(place string) Complication {
	fact := fmt.Sprintf("There is more to %s than first appeared.", place)
	return Complication{
		Kind:          KindDiscovery,
		Description:   fmt.Sprintf("A detail in %s catches the eye that was easy to miss before.", place),
		Effects:       []Effect{{Type: EffectRevealFact, Value: fact}},
		NewFacts:      []string{fact},
		Foreshadowing: "It may matter later.",
	}
}
