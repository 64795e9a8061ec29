package execute

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

// Recovery applied by rest and sleep.
const (
	RestHeal        = 2
	RestFatigue     = 30
	SleepNeedGrowth = 20
)

func (e *Executor) look(x *execution) (action.ExecutionResult, error) {
	res := x.ok(describeLocation(x.loc, e.visibleItems(x.loc.Key), e.world.EntitiesAt(x.loc.Key)))
	res.Metadata.Extra = map[string]string{"location": x.loc.Key}
	return res, nil
}

func (e *Executor) visibleItems(locationKey string) []world.Item {
	var out []world.Item
	for _, it := range e.world.ItemsAt(locationKey) {
		if !it.Hidden {
			out = append(out, it)
		}
	}
	return out
}

func describeLocation(loc world.Location, items []world.Item, entities []world.Entity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are in %s.", loc.DisplayName())
	if len(loc.Exits) > 0 {
		fmt.Fprintf(&b, " Exits: %s.", strings.Join(sortedKeys(loc.Exits), ", "))
	}
	if len(items) > 0 {
		names := make([]string, len(items))
		for i, it := range items {
			names[i] = it.DisplayName()
		}
		fmt.Fprintf(&b, " You see: %s.", strings.Join(names, ", "))
	}
	var present []string
	for _, ent := range entities {
		name := ent.DisplayName()
		if !ent.Alive() {
			name += " (dead)"
		}
		present = append(present, name)
	}
	if len(present) > 0 {
		fmt.Fprintf(&b, " Present: %s.", strings.Join(present, ", "))
	}
	return b.String()
}

func (e *Executor) examine(x *execution) (action.ExecutionResult, error) {
	switch {
	case x.vr.Hints.ItemID != 0:
		it, err := e.item(x.vr.Hints.ItemID)
		if err != nil {
			return action.ExecutionResult{}, err
		}
		outcome := fmt.Sprintf("You examine the %s.", it.DisplayName())
		if it.Description != "" {
			outcome += " " + it.Description
		}
		if it.Openable {
			state := "closed"
			if it.Open {
				state = "open"
			}
			if it.Locked {
				state = "locked"
			}
			outcome += fmt.Sprintf(" It is %s.", state)
		}
		res := x.ok(outcome)
		res.Metadata.Extra = map[string]string{"item": it.Key}
		return res, nil
	case x.vr.Hints.EntityID != 0:
		ent, err := e.entity(x)
		if err != nil {
			return action.ExecutionResult{}, err
		}
		outcome := fmt.Sprintf("You examine %s, who looks %s.", ent.DisplayName(), ent.Status())
		if ent.Description != "" {
			outcome += " " + ent.Description
		}
		res := x.ok(outcome)
		res.Metadata.Extra = map[string]string{"entity": ent.Key, "vital_status": string(ent.Status())}
		return res, nil
	case x.vr.Hints.ExamineLocation:
		outcome := fmt.Sprintf("You study %s.", x.loc.DisplayName())
		if x.loc.Description != "" {
			outcome += " " + x.loc.Description
		}
		return x.ok(outcome), nil
	default:
		return action.ExecutionResult{}, errNoEffect
	}
}

// search rolls a check; a pass reveals hidden items at the location.
func (e *Executor) search(x *execution) (action.ExecutionResult, error) {
	check, err := e.check(x)
	if err != nil {
		return action.ExecutionResult{}, err
	}
	res := x.ok("")
	res.Metadata.Check = check
	res.Success = check.Passed
	if !check.Passed {
		res.Outcome = fmt.Sprintf("You search but find nothing (%d vs DC %d).", check.Total, check.DC)
		return res, nil
	}

	var found []string
	facts := &action.ItemFacts{}
	for _, it := range e.world.ItemsAt(x.loc.Key) {
		if !it.Hidden {
			continue
		}
		if err := e.world.Reveal(it.ID); err != nil {
			return action.ExecutionResult{}, fmt.Errorf("failed to reveal %s: %w", it.Key, err)
		}
		facts.Revealed = append(facts.Revealed, it.ID)
		found = append(found, it.DisplayName())
		res.StateChanges = append(res.StateChanges, "revealed: "+it.Key)
	}
	if len(found) == 0 {
		res.Outcome = "You search carefully. There is nothing hidden here."
		return res, nil
	}
	res.Outcome = fmt.Sprintf("You search and find: %s.", strings.Join(found, ", "))
	res.Metadata.Items = facts
	return res, nil
}

func (e *Executor) wait(x *execution) (action.ExecutionResult, error) {
	minutes := x.vr.Hints.Minutes
	if minutes <= 0 {
		return action.ExecutionResult{}, errNoEffect
	}
	clock := e.world.AdvanceTime(minutes)
	res := x.ok(fmt.Sprintf("You wait for %d minutes.", minutes), "time: +"+strconv.Itoa(minutes)+"m")
	res.Metadata.Time = &action.TimeFacts{MinutesAdvanced: minutes, Clock: clock}
	return res, nil
}

func (e *Executor) rest(x *execution) (action.ExecutionResult, error) {
	minutes := x.vr.Hints.Minutes
	after, err := e.world.HealActor(x.actor.ID, RestHeal)
	if err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to heal: %w", err)
	}
	fatigue, err := e.world.SatisfyNeed(x.actor.ID, world.NeedFatigue, RestFatigue)
	if err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to ease fatigue: %w", err)
	}
	if err := e.world.RemoveStatus(x.actor.ID, StatusDefending); err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to lower guard: %w", err)
	}
	clock := e.world.AdvanceTime(minutes)

	res := x.ok(fmt.Sprintf("You rest for %d minutes.", minutes),
		"time: +"+strconv.Itoa(minutes)+"m",
		fmt.Sprintf("hp: %d -> %d", x.actor.HP, after.HP),
		fmt.Sprintf("%s: %d", world.NeedFatigue, fatigue))
	res.Metadata.Time = &action.TimeFacts{MinutesAdvanced: minutes, Clock: clock}
	res.Metadata.Need = &action.NeedFacts{Need: world.NeedFatigue, Satisfied: RestFatigue, NewValue: fatigue, Healed: after.HP - x.actor.HP}
	return res, nil
}

// sleep restores all hit points and fatigue while hunger and thirst grow.
func (e *Executor) sleep(x *execution) (action.ExecutionResult, error) {
	minutes := x.vr.Hints.Minutes
	after, err := e.world.HealActor(x.actor.ID, x.actor.MaxHP)
	if err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to heal: %w", err)
	}
	if _, err := e.world.SatisfyNeed(x.actor.ID, world.NeedFatigue, world.MaxNeed); err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to ease fatigue: %w", err)
	}
	changes := []string{
		"time: +" + strconv.Itoa(minutes) + "m",
		fmt.Sprintf("hp: %d -> %d", x.actor.HP, after.HP),
		world.NeedFatigue + ": 0",
	}
	for _, need := range []string{world.NeedHunger, world.NeedThirst} {
		v, err := e.world.IncreaseNeed(x.actor.ID, need, SleepNeedGrowth)
		if err != nil {
			return action.ExecutionResult{}, fmt.Errorf("failed to update %s: %w", need, err)
		}
		changes = append(changes, fmt.Sprintf("%s: %d", need, v))
	}
	if err := e.world.RemoveStatus(x.actor.ID, StatusDefending); err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to lower guard: %w", err)
	}
	// the clock only moves once the actor writes have landed
	clock := e.world.AdvanceTime(minutes)

	res := x.ok(fmt.Sprintf("You sleep for %d hours.", minutes/60), changes...)
	res.Metadata.Time = &action.TimeFacts{MinutesAdvanced: minutes, Clock: clock}
	res.Metadata.Need = &action.NeedFacts{Need: world.NeedFatigue, Satisfied: world.MaxNeed, Healed: after.HP - x.actor.HP}
	return res, nil
}
