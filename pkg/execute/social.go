package execute

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

// Attitude shifts from persuasion.
const (
	PersuadeSuccessAttitude = 15
	PersuadeFailureAttitude = -5
)

func socialFacts(e world.Entity, change int) *action.SocialFacts {
	return &action.SocialFacts{
		EntityID:    e.ID,
		Entity:      e.Key,
		Attitude:    e.Attitude,
		Change:      change,
		Disposition: world.Disposition(e.Attitude),
	}
}

func (e *Executor) talk(x *execution) (action.ExecutionResult, error) {
	ent, err := e.entity(x)
	if err != nil {
		return action.ExecutionResult{}, err
	}
	disposition := world.Disposition(ent.Attitude)
	res := x.ok(fmt.Sprintf("You talk with %s, who seems %s.", ent.DisplayName(), disposition))
	res.Metadata.Social = socialFacts(ent, 0)
	return res, nil
}

func (e *Executor) ask(x *execution) (action.ExecutionResult, error) {
	ent, err := e.entity(x)
	if err != nil {
		return action.ExecutionResult{}, err
	}
	topic := x.vr.Hints.Topic
	res := x.ok(fmt.Sprintf("You ask %s about %s.", ent.DisplayName(), topic))
	if topic == "" {
		res.Outcome = fmt.Sprintf("You ask %s a question.", ent.DisplayName())
	}
	res.Metadata.Social = socialFacts(ent, 0)

	answer, known := ent.Topics[strings.ReplaceAll(topic, " ", "_")]
	if !known {
		answer, known = ent.Topics[topic]
	}
	res.Metadata.Extra = map[string]string{"topic": topic, "known": fmt.Sprint(known)}
	if known {
		res.Metadata.Extra["answer"] = answer
	}
	return res, nil
}

func (e *Executor) persuade(x *execution) (action.ExecutionResult, error) {
	ent, err := e.entity(x)
	if err != nil {
		return action.ExecutionResult{}, err
	}
	check, err := e.check(x)
	if err != nil {
		return action.ExecutionResult{}, err
	}
	delta := PersuadeFailureAttitude
	if check.Passed {
		delta = PersuadeSuccessAttitude
	}
	after, err := e.world.AdjustAttitude(ent.ID, delta)
	if err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to update attitude: %w", err)
	}

	outcome := fmt.Sprintf("You fail to persuade %s (%d vs DC %d).", ent.DisplayName(), check.Total, check.DC)
	if check.Passed {
		outcome = fmt.Sprintf("You persuade %s (%d vs DC %d).", ent.DisplayName(), check.Total, check.DC)
	}
	res := x.ok(outcome, fmt.Sprintf("attitude %s: %+d", ent.Key, delta))
	res.Success = check.Passed
	res.Metadata.Check = check
	res.Metadata.Social = socialFacts(after, delta)
	return res, nil
}

// trade swaps the offered item for the wanted one. Either side may be
// missing: an offer alone is a sale, a want alone needs a friendly partner.
func (e *Executor) trade(x *execution) (action.ExecutionResult, error) {
	ent, err := e.entity(x)
	if err != nil {
		return action.ExecutionResult{}, err
	}
	offerID, wantID := x.vr.Hints.ItemID, x.vr.Hints.IndirectItemID
	if offerID == 0 && wantID == 0 {
		res := x.ok(fmt.Sprintf("You browse what %s has to offer.", ent.DisplayName()))
		res.Metadata.Social = socialFacts(ent, 0)
		return res, nil
	}
	if offerID == 0 {
		switch world.Disposition(ent.Attitude) {
		case "friendly", "devoted":
		default:
			res := x.ok(fmt.Sprintf("%s wants something in return.", ent.DisplayName()))
			res.Success = false
			res.Metadata.Social = socialFacts(ent, 0)
			return res, nil
		}
	}

	facts := &action.ItemFacts{InventoryChanged: true}
	var changes []string
	var gave, got string
	if offerID != 0 {
		offer, err := e.item(offerID)
		if err != nil {
			return action.ExecutionResult{}, err
		}
		if slot, equipped := x.actor.SlotOf(offer.ID); equipped {
			if err := e.world.Unequip(x.actor.ID, slot); err != nil {
				return action.ExecutionResult{}, fmt.Errorf("failed to unequip: %w", err)
			}
		}
		if err := e.world.TransferItem(offer.ID, world.WithEntity(ent.Key)); err != nil {
			return action.ExecutionResult{}, fmt.Errorf("failed to hand over: %w", err)
		}
		facts.Removed = []int{offer.ID}
		changes = append(changes, "inventory: -"+offer.Key)
		gave = offer.DisplayName()
	}
	if wantID != 0 {
		want, err := e.item(wantID)
		if err != nil {
			return action.ExecutionResult{}, err
		}
		if err := e.world.TransferItem(want.ID, world.WithActor(x.actor.ID)); err != nil {
			return action.ExecutionResult{}, fmt.Errorf("failed to receive: %w", err)
		}
		facts.Acquired = []int{want.ID}
		changes = append(changes, "inventory: +"+want.Key)
		got = want.DisplayName()
	}

	var outcome string
	switch {
	case gave != "" && got != "":
		outcome = fmt.Sprintf("You trade the %s to %s for the %s.", gave, ent.DisplayName(), got)
	case gave != "":
		outcome = fmt.Sprintf("You trade the %s to %s.", gave, ent.DisplayName())
	default:
		outcome = fmt.Sprintf("%s hands you the %s.", ent.DisplayName(), got)
	}
	res := x.ok(outcome, changes...)
	res.Metadata.Items = facts
	res.Metadata.Social = socialFacts(ent, 0)
	return res, nil
}
