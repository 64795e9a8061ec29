package execute

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

func (e *Executor) inventory(x *execution) (action.ExecutionResult, error) {
	items := e.world.Inventory(x.actor.ID)
	if len(items) == 0 {
		return x.ok("You are carrying nothing."), nil
	}
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.DisplayName()
		if slot, ok := x.actor.SlotOf(it.ID); ok {
			names[i] += " (" + strings.ReplaceAll(slot, "_", " ") + ")"
		}
	}
	res := x.ok(fmt.Sprintf("You are carrying: %s.", strings.Join(names, ", ")))
	res.Metadata.Extra = map[string]string{
		"weight":   fmt.Sprintf("%.1f", world.TotalWeight(items)),
		"capacity": fmt.Sprintf("%.1f", x.pc.CarryCapacity()),
	}
	return res, nil
}

func (e *Executor) status(x *execution) (action.ExecutionResult, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "HP %d/%d (%s).", x.actor.HP, x.actor.MaxHP, x.actor.Vitality())
	for _, need := range []string{world.NeedHunger, world.NeedThirst, world.NeedFatigue} {
		fmt.Fprintf(&b, " %s %d.", need, x.actor.Needs[need])
	}
	if len(x.actor.Statuses) > 0 {
		statuses := slices.Clone(x.actor.Statuses)
		slices.Sort(statuses)
		fmt.Fprintf(&b, " Conditions: %s.", strings.Join(statuses, ", "))
	}
	res := x.ok(b.String())
	res.Metadata.Extra = map[string]string{"vital_status": string(x.actor.Vitality())}
	return res, nil
}

// custom runs the plan a planning collaborator produced for freeform input.
// Without a plan the attempt is recorded but changes nothing.
func (e *Executor) custom(x *execution) (action.ExecutionResult, error) {
	raw := x.act.RawInput()
	plan, ok := x.plans.Lookup(raw)
	if !ok {
		res := x.ok(fmt.Sprintf("You try to %s.", raw))
		res.Metadata.Extra = map[string]string{"unplanned": "true"}
		return res, nil
	}
	if err := plan.Validate(); err != nil {
		return action.ExecutionResult{}, fmt.Errorf("malformed plan: %w", err)
	}

	report := e.applyEffects(x.ctx, plan.Effects, x.actor.ID, x.loc.Key)
	if len(report.Skipped) > 0 {
		e.logger.Warn("Plan effects skipped", "input", raw, "skipped", report.Skipped)
	}
	res := x.ok(plan.Outcome, report.Changes...)
	if len(report.NewFacts) > 0 || len(report.SpawnedEntities) > 0 {
		res.Metadata.Extra = map[string]string{}
		if len(report.NewFacts) > 0 {
			res.Metadata.Extra["new_facts"] = strings.Join(report.NewFacts, "; ")
		}
		if len(report.SpawnedEntities) > 0 {
			res.Metadata.Extra["spawned"] = strings.Join(report.SpawnedEntities, ", ")
		}
	}
	return res, nil
}
