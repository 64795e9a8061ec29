package execute

import (
	"fmt"
	"maps"
	"slices"

	"github.com/jwebster45206/d20"

	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/dice"
)

// StatusHidden is set by a successful sneak.
const StatusHidden = "hidden"

// checkSkills names the trained skill each check kind uses when the
// character has it.
var checkSkills = map[action.Kind]string{
	action.KindClimb:    "athletics",
	action.KindSneak:    "stealth",
	action.KindPickLock: "sleight_of_hand",
	action.KindPersuade: "persuasion",
	action.KindSearch:   "investigation",
}

// check rolls d20 plus the trained skill or hinted attribute modifier
// against the hinted DC.
func (e *Executor) check(x *execution) (*action.CheckFacts, error) {
	attr := x.vr.Hints.Attribute
	dc := x.vr.Hints.DC
	if dc <= 0 {
		dc = 10
	}
	skill := checkSkills[x.act.Kind]
	out, err := e.dice.Resolve(func(r *d20.Roller) (*d20.RollBuilder, error) {
		return x.pc.SkillCheck(r, skill, attr)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to roll check: %w", err)
	}
	facts := &action.CheckFacts{
		Attribute: attr,
		Roll:      dice.Natural(out),
		Total:     out.Value,
		DC:        dc,
		Passed:    out.Value >= dc,
	}
	facts.Modifier = facts.Total - facts.Roll
	if skill != "" && x.pc.Actor != nil && x.pc.Actor.HasAttribute(skill) {
		facts.Skill = skill
	}
	return facts, nil
}

// climb moves only on a passed check; climbing in place just reports the roll.
func (e *Executor) climb(x *execution) (action.ExecutionResult, error) {
	check, err := e.check(x)
	if err != nil {
		return action.ExecutionResult{}, err
	}
	if !check.Passed {
		res := x.ok(fmt.Sprintf("You fail to find a hold and slip back (%d vs DC %d).", check.Total, check.DC))
		res.Success = false
		res.Metadata.Check = check
		return res, nil
	}
	if x.vr.Hints.Destination == "" {
		res := x.ok(fmt.Sprintf("You climb up and take in the view of %s.", x.loc.DisplayName()))
		res.Metadata.Check = check
		return res, nil
	}
	res, err := e.relocate(x, x.vr.Hints.Destination, x.vr.Hints.Direction, "climb")
	if err != nil {
		return action.ExecutionResult{}, err
	}
	res.Metadata.Check = check
	return res, nil
}

func (e *Executor) sneak(x *execution) (action.ExecutionResult, error) {
	check, err := e.check(x)
	if err != nil {
		return action.ExecutionResult{}, err
	}
	if !check.Passed {
		res := x.ok(fmt.Sprintf("You try to move quietly but make noise (%d vs DC %d).", check.Total, check.DC))
		res.Success = false
		res.Metadata.Check = check
		return res, nil
	}

	var res action.ExecutionResult
	if x.vr.Hints.Destination != "" {
		moved, err := e.relocate(x, x.vr.Hints.Destination, x.vr.Hints.Direction, "sneak")
		if err != nil {
			return action.ExecutionResult{}, err
		}
		res = moved
	} else if x.vr.Hints.EntityID != 0 {
		ent, err := e.entity(x)
		if err != nil {
			return action.ExecutionResult{}, err
		}
		res = x.ok(fmt.Sprintf("You slip up on %s unseen.", ent.DisplayName()))
	} else {
		res = x.ok("You move into the shadows unseen.")
	}
	if err := e.world.AddStatus(x.actor.ID, StatusHidden); err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to hide: %w", err)
	}
	res.StateChanges = append(res.StateChanges, "status: +"+StatusHidden)
	res.Metadata.Check = check
	return res, nil
}

func (e *Executor) pickLock(x *execution) (action.ExecutionResult, error) {
	it, err := e.item(x.vr.Hints.ItemID)
	if err != nil {
		return action.ExecutionResult{}, err
	}
	check, err := e.check(x)
	if err != nil {
		return action.ExecutionResult{}, err
	}
	if !check.Passed {
		res := x.ok(fmt.Sprintf("The lock on the %s resists you (%d vs DC %d).", it.DisplayName(), check.Total, check.DC))
		res.Success = false
		res.Metadata.Check = check
		return res, nil
	}
	if err := e.world.SetLocked(it.ID, false); err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to unlock: %w", err)
	}
	res := x.ok(fmt.Sprintf("You pick the lock on the %s.", it.DisplayName()), "unlocked: "+it.Key)
	res.Metadata.Check = check
	return res, nil
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
