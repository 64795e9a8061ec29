package execute

import (
	"fmt"

	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

// GiftAttitude is the attitude an NPC gains when given an item.
const GiftAttitude = 10

func (e *Executor) item(id int) (world.Item, error) {
	if id == 0 {
		return world.Item{}, fmt.Errorf("no item was resolved")
	}
	it, err := e.world.Item(id)
	if err != nil {
		return world.Item{}, fmt.Errorf("failed to load item: %w", err)
	}
	return it, nil
}

func (e *Executor) entity(x *execution) (world.Entity, error) {
	if x.vr.Hints.EntityID == 0 {
		return world.Entity{}, fmt.Errorf("no one was resolved")
	}
	ent, err := e.world.Entity(x.vr.Hints.EntityID)
	if err != nil {
		return world.Entity{}, fmt.Errorf("failed to load entity: %w", err)
	}
	return ent, nil
}

func (e *Executor) take(x *execution) (action.ExecutionResult, error) {
	facts := &action.ItemFacts{InventoryChanged: true}

	id := x.vr.Hints.ItemID
	if x.vr.Hints.SpawnOnDemand {
		spawned, err := e.spawnMentioned(x, x.vr.Hints.SpawnName)
		if err != nil {
			return action.ExecutionResult{}, err
		}
		id = spawned.ID
		facts.Spawned = append(facts.Spawned, id)
	}

	it, err := e.item(id)
	if err != nil {
		return action.ExecutionResult{}, err
	}
	// spawned items are weighed only once they exist; they stay where they are
	carried := world.TotalWeight(e.world.Inventory(x.actor.ID))
	if carried+it.Weight > x.pc.CarryCapacity() {
		res := x.ok(fmt.Sprintf("The %s is too heavy; you can't carry any more.", it.DisplayName()))
		res.Success = false
		res.Metadata.Items = &action.ItemFacts{Spawned: facts.Spawned}
		return res, nil
	}
	if err := e.world.TransferItem(it.ID, world.WithActor(x.actor.ID)); err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to pick up: %w", err)
	}
	facts.Acquired = []int{it.ID}

	res := x.ok(fmt.Sprintf("You take the %s.", it.DisplayName()), "inventory: +"+it.Key)
	res.Metadata.Items = facts
	return res, nil
}

func (e *Executor) drop(x *execution) (action.ExecutionResult, error) {
	it, err := e.item(x.vr.Hints.ItemID)
	if err != nil {
		return action.ExecutionResult{}, err
	}
	var changes []string
	if slot, equipped := x.actor.SlotOf(it.ID); equipped {
		if err := e.world.Unequip(x.actor.ID, slot); err != nil {
			return action.ExecutionResult{}, fmt.Errorf("failed to unequip: %w", err)
		}
		changes = append(changes, "unequipped: "+slot)
	}
	if err := e.world.TransferItem(it.ID, world.AtLocation(x.loc.Key)); err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to drop: %w", err)
	}
	changes = append(changes, "inventory: -"+it.Key)

	res := x.ok(fmt.Sprintf("You drop the %s.", it.DisplayName()), changes...)
	res.Metadata.Items = &action.ItemFacts{Removed: []int{it.ID}, InventoryChanged: true}
	return res, nil
}

func (e *Executor) give(x *execution) (action.ExecutionResult, error) {
	it, err := e.item(x.vr.Hints.ItemID)
	if err != nil {
		return action.ExecutionResult{}, err
	}
	ent, err := e.entity(x)
	if err != nil {
		return action.ExecutionResult{}, err
	}
	if err := e.world.TransferItem(it.ID, world.WithEntity(ent.Key)); err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to hand over: %w", err)
	}
	after, err := e.world.AdjustAttitude(ent.ID, GiftAttitude)
	if err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to update attitude: %w", err)
	}

	res := x.ok(fmt.Sprintf("You give the %s to %s.", it.DisplayName(), ent.DisplayName()),
		"inventory: -"+it.Key,
		fmt.Sprintf("attitude %s: %+d", ent.Key, GiftAttitude))
	res.Metadata.Items = &action.ItemFacts{Removed: []int{it.ID}, InventoryChanged: true}
	res.Metadata.Social = socialFacts(after, GiftAttitude)
	return res, nil
}

func (e *Executor) use(x *execution) (action.ExecutionResult, error) {
	it, err := e.item(x.vr.Hints.ItemID)
	if err != nil {
		return action.ExecutionResult{}, err
	}

	if id := x.vr.Hints.IndirectItemID; id != 0 {
		other, err := e.item(id)
		if err != nil {
			return action.ExecutionResult{}, err
		}
		if other.Locked && it.Unlocks == other.Key {
			if err := e.world.SetLocked(other.ID, false); err != nil {
				return action.ExecutionResult{}, fmt.Errorf("failed to unlock: %w", err)
			}
			return x.ok(fmt.Sprintf("You unlock the %s with the %s.", other.DisplayName(), it.DisplayName()),
				"unlocked: "+other.Key), nil
		}
		return x.ok(fmt.Sprintf("You use the %s on the %s.", it.DisplayName(), other.DisplayName())), nil
	}

	if x.vr.Hints.EntityID != 0 {
		ent, err := e.entity(x)
		if err != nil {
			return action.ExecutionResult{}, err
		}
		return x.ok(fmt.Sprintf("You use the %s on %s.", it.DisplayName(), ent.DisplayName())), nil
	}

	if it.Kind == world.ItemPotion {
		return e.consume(x)
	}
	return x.ok(fmt.Sprintf("You use the %s.", it.DisplayName())), nil
}

func (e *Executor) equip(x *execution) (action.ExecutionResult, error) {
	it, err := e.item(x.vr.Hints.ItemID)
	if err != nil {
		return action.ExecutionResult{}, err
	}
	slot := x.vr.Hints.Slot
	if slot == "" {
		slot = it.EquipSlot()
	}
	if err := e.world.Equip(x.actor.ID, slot, it.ID); err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to equip: %w", err)
	}

	outcome := fmt.Sprintf("You equip the %s.", it.DisplayName())
	if old := x.vr.Hints.ReplacesItemID; old != 0 {
		if prev, err := e.world.Item(old); err == nil {
			outcome = fmt.Sprintf("You swap the %s for the %s.", prev.DisplayName(), it.DisplayName())
		}
	}
	res := x.ok(outcome, fmt.Sprintf("equipment %s: %s", slot, it.Key))
	res.Metadata.Items = &action.ItemFacts{Equipped: it.ID, Slot: slot, InventoryChanged: true}
	return res, nil
}

func (e *Executor) unequip(x *execution) (action.ExecutionResult, error) {
	it, err := e.item(x.vr.Hints.ItemID)
	if err != nil {
		return action.ExecutionResult{}, err
	}
	if err := e.world.Unequip(x.actor.ID, x.vr.Hints.Slot); err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to unequip: %w", err)
	}
	res := x.ok(fmt.Sprintf("You put away the %s.", it.DisplayName()), "unequipped: "+x.vr.Hints.Slot)
	res.Metadata.Items = &action.ItemFacts{Slot: x.vr.Hints.Slot, InventoryChanged: true}
	return res, nil
}

func (e *Executor) openClose(x *execution) (action.ExecutionResult, error) {
	it, err := e.item(x.vr.Hints.ItemID)
	if err != nil {
		return action.ExecutionResult{}, err
	}
	opening := x.act.Kind == action.KindOpen
	if err := e.world.SetOpen(it.ID, opening); err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to %s: %w", x.act.Kind, err)
	}
	if opening {
		return x.ok(fmt.Sprintf("You open the %s.", it.DisplayName()), "opened: "+it.Key), nil
	}
	return x.ok(fmt.Sprintf("You close the %s.", it.DisplayName()), "closed: "+it.Key), nil
}

// consume handles eat and drink, and using a potion.
func (e *Executor) consume(x *execution) (action.ExecutionResult, error) {
	it, err := e.item(x.vr.Hints.ItemID)
	if err != nil {
		return action.ExecutionResult{}, err
	}

	need := world.NeedHunger
	verb := "eat"
	if it.Kind == world.ItemDrink || it.Kind == world.ItemPotion {
		need = world.NeedThirst
		verb = "drink"
	}

	facts := &action.NeedFacts{Need: need}
	changes := []string{"consumed: " + it.Key}
	if it.Nutrition > 0 {
		v, err := e.world.SatisfyNeed(x.actor.ID, need, it.Nutrition)
		if err != nil {
			return action.ExecutionResult{}, fmt.Errorf("failed to satisfy %s: %w", need, err)
		}
		facts.Satisfied = it.Nutrition
		facts.NewValue = v
		changes = append(changes, fmt.Sprintf("%s: %d", need, v))
	}
	if it.Heal > 0 {
		before := x.actor.HP
		after, err := e.world.HealActor(x.actor.ID, it.Heal)
		if err != nil {
			return action.ExecutionResult{}, fmt.Errorf("failed to heal: %w", err)
		}
		facts.Healed = after.HP - before
		changes = append(changes, fmt.Sprintf("hp: %d -> %d", before, after.HP))
	}
	if err := e.world.DestroyItem(it.ID); err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to use up: %w", err)
	}

	res := x.ok(fmt.Sprintf("You %s the %s.", verb, it.DisplayName()), changes...)
	res.Metadata.Need = facts
	res.Metadata.Items = &action.ItemFacts{Removed: []int{it.ID}, InventoryChanged: it.Holder.Kind == world.HeldByActor}
	return res, nil
}
