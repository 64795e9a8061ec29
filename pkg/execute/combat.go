package execute

import (
	"fmt"
	"slices"

	"github.com/jwebster45206/d20"

	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/dice"
	"github.com/jwebster45206/turn-authority/pkg/vitality"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

const (
	// UnarmedDamage is rolled when the attacker holds no weapon.
	UnarmedDamage = "1d4"
	// BetrayalAttitude is applied when attacking someone who was not hostile.
	BetrayalAttitude = -40
	// StatusDefending is set by the defend action.
	StatusDefending = "defending"
)

// attack rolls d20 plus attack bonus against the target's AC. A natural 20
// always hits and doubles the damage dice; a natural 1 always misses.
func (e *Executor) attack(x *execution) (action.ExecutionResult, error) {
	target, err := e.entity(x)
	if err != nil {
		return action.ExecutionResult{}, err
	}

	weaponDamage := UnarmedDamage
	armed := false
	if id := x.vr.Hints.ItemID; id != 0 {
		weapon, err := e.item(id)
		if err != nil {
			return action.ExecutionResult{}, err
		}
		if weapon.Damage != "" {
			if !dice.Valid(weapon.Damage) {
				return action.ExecutionResult{}, fmt.Errorf("bad damage on %s: %q", weapon.Key, weapon.Damage)
			}
			weaponDamage = weapon.Damage
			armed = true
		}
	}
	damage := dice.WithModifier(weaponDamage, x.pc.Modifier("strength"))

	attackRoll, err := e.dice.Resolve(func(r *d20.Roller) (*d20.RollBuilder, error) {
		return x.pc.AttackRoll(r, armed)
	})
	if err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to roll attack: %w", err)
	}
	roll := dice.Natural(attackRoll)
	facts := &action.AttackFacts{
		TargetID:    target.ID,
		Target:      target.Key,
		Roll:        roll,
		AttackBonus: attackRoll.Value - roll,
		Total:       attackRoll.Value,
		TargetAC:    target.AC,
		Critical:    roll == 20,
		Fumble:      roll == 1,
		DamageDice:  damage,
		PreviousHP:  target.HP,
		NewHP:       target.HP,
		VitalStatus: string(target.Status()),
	}
	facts.Hit = !facts.Fumble && (facts.Critical || facts.Total >= target.AC)

	var changes []string
	if !target.Hostile {
		if _, err := e.world.AdjustAttitude(target.ID, BetrayalAttitude); err != nil {
			return action.ExecutionResult{}, fmt.Errorf("failed to update attitude: %w", err)
		}
		changes = append(changes, fmt.Sprintf("attitude %s: %+d", target.Key, BetrayalAttitude))
	}

	if !facts.Hit {
		res := x.ok(fmt.Sprintf("You attack %s and miss (%d vs AC %d).", target.DisplayName(), facts.Total, target.AC), changes...)
		res.Success = false
		res.Metadata.Attack = facts
		return res, nil
	}

	rolls, total, err := e.rollDamage(damage, facts.Critical)
	if err != nil {
		return action.ExecutionResult{}, err
	}
	after, status, err := e.world.DamageEntity(target.ID, total)
	if err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to apply damage: %w", err)
	}
	facts.DamageRolls = rolls
	facts.Damage = total
	facts.NewHP = after.HP
	facts.VitalStatus = string(status)
	facts.Killed = status == vitality.Dead

	outcome := fmt.Sprintf("You hit %s for %d damage.", target.DisplayName(), total)
	if facts.Critical {
		outcome = fmt.Sprintf("You land a critical hit on %s for %d damage.", target.DisplayName(), total)
	}
	if facts.Killed {
		outcome += fmt.Sprintf(" %s falls.", target.DisplayName())
	}
	changes = append(changes, fmt.Sprintf("hp %s: %d -> %d", target.Key, target.HP, after.HP))

	res := x.ok(outcome, changes...)
	res.Metadata.Attack = facts
	return res, nil
}

// rollDamage rolls notation. A critical rolls the dice a second time and keeps
// one copy of the flat modifier. Damage never drops below zero.
func (e *Executor) rollDamage(notation string, critical bool) ([]int, int, error) {
	out, err := e.dice.Roll(notation)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to roll damage: %w", err)
	}
	rolls := slices.Clone(out.DiceRolls)
	total := out.Value
	if critical {
		extra, err := e.dice.Roll(notation)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to roll damage: %w", err)
		}
		rolls = append(rolls, extra.DiceRolls...)
		total += dice.Sum(extra)
	}
	return rolls, max(total, 0), nil
}

func (e *Executor) defend(x *execution) (action.ExecutionResult, error) {
	if x.actor.HasStatus(StatusDefending) {
		return x.ok("You keep your guard up."), nil
	}
	if err := e.world.AddStatus(x.actor.ID, StatusDefending); err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to raise guard: %w", err)
	}
	return x.ok("You raise your guard.", "status: +"+StatusDefending), nil
}

// hostilesAt counts living hostile entities at a location.
func (e *Executor) hostilesAt(locationKey string) []world.Entity {
	var out []world.Entity
	for _, ent := range e.world.EntitiesAt(locationKey) {
		if ent.Hostile && ent.Alive() {
			out = append(out, ent)
		}
	}
	return out
}
