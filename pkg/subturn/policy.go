package subturn

import (
	"slices"
	"strings"

	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/complication"
)

// Status governs whether a chain proceeds after a step.
type Status string

const (
	// Continue records the step and moves on.
	Continue Status = "CONTINUE"
	// OfferChoice executes the step, then halts so the player can decide
	// whether to go on with the remaining actions.
	OfferChoice Status = "OFFER_CHOICE"
	// Abandon halts without executing the step.
	Abandon Status = "ABANDON"
)

// IncapacitatingStatuses cannot be acted through.
var IncapacitatingStatuses = []string{
	"unconscious", "paralyzed", "broken_leg", "broken_arm",
	"stunned", "dead", "dying", "incapacitated",
}

// Rule maps a complication to a continuation status. Remaining holds the
// actions after the one that triggered the complication.
type Rule struct {
	Name    string
	Status  Status
	Matches func(c *complication.Complication, remaining []action.Action) bool
}

// Policy is an ordered rule table; the first matching rule wins and no
// match means Continue.
type Policy []Rule

// DefaultPolicy abandons on incapacitation or when a hostile arrival makes
// the rest of the plan implausible, and offers a choice after a real cost.
var DefaultPolicy = Policy{
	{Name: "incapacitating_status", Status: Abandon, Matches: incapacitates},
	{Name: "hostile_arrival", Status: Abandon, Matches: hostileInterrupts},
	{Name: "significant_cost", Status: OfferChoice, Matches: significantCost},
}

// Classify returns the status for a complication and the name of the rule
// that decided it.
func (p Policy) Classify(c *complication.Complication, remaining []action.Action) (Status, string) {
	if c == nil {
		return Continue, ""
	}
	for _, r := range p {
		if r.Matches(c, remaining) {
			return r.Status, r.Name
		}
	}
	return Continue, ""
}

func incapacitates(c *complication.Complication, _ []action.Action) bool {
	for _, eff := range c.EffectsOf(complication.EffectStatusAdd) {
		status := eff.Value
		if status == "" {
			status = eff.Target
		}
		status = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(status)), " ", "_")
		if slices.Contains(IncapacitatingStatuses, status) {
			return true
		}
	}
	return false
}

// hostileInterrupts holds when a hostile spawns and something other than
// fighting is still planned.
func hostileInterrupts(c *complication.Complication, remaining []action.Action) bool {
	hostile := slices.ContainsFunc(c.EffectsOf(complication.EffectSpawnEntity), func(e complication.Effect) bool {
		return e.Hostile
	})
	if !hostile {
		return false
	}
	return slices.ContainsFunc(remaining, func(a action.Action) bool {
		return a.Category() != action.CategoryCombat
	})
}

func significantCost(c *complication.Complication, _ []action.Action) bool {
	return c.HasEffect(complication.EffectHPLoss) || c.HasEffect(complication.EffectStatusAdd)
}
