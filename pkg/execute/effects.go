package execute

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwebster45206/turn-authority/pkg/actor"
	"github.com/jwebster45206/turn-authority/pkg/complication"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

// EffectReport lists what applying a set of effects changed. Effects that
// could not apply are listed in Skipped and never abort the rest.
type EffectReport struct {
	Changes         []string `json:"changes,omitempty"`
	NewFacts        []string `json:"new_facts,omitempty"`
	SpawnedEntities []string `json:"spawned_entities,omitempty"`
	HostileSpawned  bool     `json:"hostile_spawned,omitempty"`
	StatusesAdded   []string `json:"statuses_added,omitempty"`
	Skipped         []string `json:"skipped,omitempty"`
}

func (r *EffectReport) skip(eff complication.Effect, format string, args ...any) {
	r.Skipped = append(r.Skipped, fmt.Sprintf("%s: %s", eff.Type, fmt.Sprintf(format, args...)))
}

// ApplyComplication applies a complication's mechanical effects to the
// player and the location they are in. Its new facts are carried into the
// report alongside any reveal_fact effects.
func (e *Executor) ApplyComplication(ctx context.Context, c *complication.Complication, pc *actor.PC, locationKey string) (report EffectReport) {
	if c == nil || pc == nil {
		return EffectReport{}
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Applying complication panicked", "complication_type", c.Kind, "panic", r)
			report.Skipped = append(report.Skipped, fmt.Sprintf("panic: %v", r))
		}
	}()

	report = e.applyEffects(ctx, c.Effects, pc.ID(), locationKey)
	for _, f := range c.NewFacts {
		if !containsFold(report.NewFacts, f) {
			report.NewFacts = append(report.NewFacts, f)
		}
	}
	if len(report.Skipped) > 0 {
		e.logger.Warn("Some complication effects were skipped",
			"complication_type", c.Kind,
			"skipped", report.Skipped)
	}
	return report
}

func (e *Executor) applyEffects(ctx context.Context, effects []complication.Effect, actorID, locationKey string) EffectReport {
	var r EffectReport
	for _, eff := range effects {
		e.applyEffect(ctx, &r, eff, actorID, locationKey)
	}
	return r
}

func (e *Executor) applyEffect(ctx context.Context, r *EffectReport, eff complication.Effect, actorID, locationKey string) {
	switch eff.Type {
	case complication.EffectHPLoss:
		before, err := e.world.Actor(actorID)
		if err != nil {
			r.skip(eff, "%v", err)
			return
		}
		after, status, err := e.world.DamageActor(actorID, eff.Amount)
		if err != nil {
			r.skip(eff, "%v", err)
			return
		}
		r.Changes = append(r.Changes, fmt.Sprintf("hp: %d -> %d (%s)", before.HP, after.HP, status))

	case complication.EffectHPGain:
		before, err := e.world.Actor(actorID)
		if err != nil {
			r.skip(eff, "%v", err)
			return
		}
		after, err := e.world.HealActor(actorID, eff.Amount)
		if err != nil {
			r.skip(eff, "%v", err)
			return
		}
		r.Changes = append(r.Changes, fmt.Sprintf("hp: %d -> %d", before.HP, after.HP))

	case complication.EffectResourceLoss, complication.EffectResourceGain:
		e.applyResource(ctx, r, eff, actorID, locationKey)

	case complication.EffectStatusAdd:
		status := effectText(eff)
		if status == "" {
			r.skip(eff, "no status named")
			return
		}
		if err := e.world.AddStatus(actorID, status); err != nil {
			r.skip(eff, "%v", err)
			return
		}
		r.StatusesAdded = append(r.StatusesAdded, status)
		r.Changes = append(r.Changes, "status: +"+status)

	case complication.EffectStatusRemove:
		status := effectText(eff)
		if err := e.world.RemoveStatus(actorID, status); err != nil {
			r.skip(eff, "%v", err)
			return
		}
		r.Changes = append(r.Changes, "status: -"+status)

	case complication.EffectRelationshipChange:
		ent, ok := entityNamed(e.world.EntitiesAt(locationKey), eff.Target)
		if !ok {
			r.skip(eff, "no %q here", eff.Target)
			return
		}
		after, err := e.world.AdjustAttitude(ent.ID, eff.Amount)
		if err != nil {
			r.skip(eff, "%v", err)
			return
		}
		r.Changes = append(r.Changes, fmt.Sprintf("attitude %s: %d -> %d", ent.Key, ent.Attitude, after.Attitude))

	case complication.EffectTimeAdvance:
		if eff.Amount <= 0 {
			r.skip(eff, "non-positive minutes")
			return
		}
		e.world.AdvanceTime(eff.Amount)
		r.Changes = append(r.Changes, fmt.Sprintf("time: +%dm", eff.Amount))

	case complication.EffectSpawnEntity:
		e.spawnEntity(r, eff, locationKey)

	case complication.EffectRevealFact:
		fact := effectText(eff)
		if fact == "" {
			r.skip(eff, "empty fact")
			return
		}
		if !containsFold(r.NewFacts, fact) {
			r.NewFacts = append(r.NewFacts, fact)
		}

	case complication.EffectTensionChange:
		if e.tension == nil {
			r.skip(eff, "no story arcs are tracked")
			return
		}
		v, err := e.tension.AdjustTension(ctx, eff.Target, eff.Amount)
		if err != nil {
			r.skip(eff, "%v", err)
			return
		}
		r.Changes = append(r.Changes, fmt.Sprintf("tension: %+d -> %d", eff.Amount, v))

	default:
		r.skip(eff, "unknown effect")
	}
}

// applyResource treats a need name as the resource; anything else names an
// inventory item that is lost or gained.
func (e *Executor) applyResource(ctx context.Context, r *EffectReport, eff complication.Effect, actorID, locationKey string) {
	target := strings.ToLower(strings.TrimSpace(eff.Target))
	if target == "" {
		target = strings.ToLower(strings.TrimSpace(eff.Value))
	}
	if target == "" {
		r.skip(eff, "no resource named")
		return
	}
	loss := eff.Type == complication.EffectResourceLoss

	switch target {
	case world.NeedHunger, world.NeedThirst, world.NeedFatigue:
		amount := max(eff.Amount, 1)
		var v int
		var err error
		if loss {
			v, err = e.world.IncreaseNeed(actorID, target, amount)
		} else {
			v, err = e.world.SatisfyNeed(actorID, target, amount)
		}
		if err != nil {
			r.skip(eff, "%v", err)
			return
		}
		r.Changes = append(r.Changes, fmt.Sprintf("%s: %d", target, v))
		return
	}

	if loss {
		it, ok := itemNamed(e.world.Inventory(actorID), target)
		if !ok {
			r.skip(eff, "not carrying %q", target)
			return
		}
		if err := e.world.DestroyItem(it.ID); err != nil {
			r.skip(eff, "%v", err)
			return
		}
		r.Changes = append(r.Changes, "inventory: -"+it.Key)
		return
	}

	loc, err := e.world.Location(locationKey)
	if err != nil {
		r.skip(eff, "%v", err)
		return
	}
	it, err := e.items.Materialize(ctx, target, loc)
	if err != nil {
		r.skip(eff, "%v", err)
		return
	}
	spawned, err := e.world.SpawnItem(it, world.WithActor(actorID))
	if err != nil {
		r.skip(eff, "%v", err)
		return
	}
	r.Changes = append(r.Changes, "inventory: +"+spawned.Key)
}

func (e *Executor) spawnEntity(r *EffectReport, eff complication.Effect, locationKey string) {
	template := world.DefaultBystander
	if eff.Hostile {
		template = world.DefaultHostile
	}
	override := &world.Entity{Key: template.Key, Location: locationKey, Hostile: eff.Hostile}
	if name := effectText(eff); name != "" {
		override.Name = name
		override.Key = strings.ReplaceAll(strings.ToLower(name), " ", "_")
	}
	ent := world.NewEntity(&template, override)
	spawned, err := e.world.SpawnEntity(*ent)
	if err != nil {
		r.skip(eff, "%v", err)
		return
	}
	r.SpawnedEntities = append(r.SpawnedEntities, spawned.Key)
	if spawned.Hostile {
		r.HostileSpawned = true
	}
	r.Changes = append(r.Changes, fmt.Sprintf("spawned: %s at %s", spawned.Key, locationKey))
}

// effectText prefers Value and falls back to Target.
func effectText(eff complication.Effect) string {
	if v := strings.TrimSpace(eff.Value); v != "" {
		return v
	}
	return strings.TrimSpace(eff.Target)
}

func entityNamed(list []world.Entity, name string) (world.Entity, bool) {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return world.Entity{}, false
	}
	for _, ent := range list {
		if ent.Key == strings.ReplaceAll(q, " ", "_") || strings.ToLower(ent.Name) == q {
			return ent, true
		}
	}
	for _, ent := range list {
		if strings.Contains(strings.ToLower(ent.Name), q) {
			return ent, true
		}
	}
	return world.Entity{}, false
}

func itemNamed(list []world.Item, name string) (world.Item, bool) {
	key := strings.ReplaceAll(name, " ", "_")
	for _, it := range list {
		if it.Key == key || strings.ToLower(it.Name) == name {
			return it, true
		}
	}
	for _, it := range list {
		if strings.Contains(strings.ToLower(it.DisplayName()), name) {
			return it, true
		}
	}
	return world.Item{}, false
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
