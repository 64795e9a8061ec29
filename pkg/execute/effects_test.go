package execute

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/turn-authority/pkg/complication"
	"github.com/jwebster45206/turn-authority/pkg/dice"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

func TestApplyComplication(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	arcs := complication.NewStaticArcs(complication.Arc{Key: "heist", Phase: complication.PhaseRising, Tension: 40})
	e := New(Deps{World: h.world, Dice: dice.NewScripted(10), Tension: arcs}, quietLogger())

	c := &complication.Complication{
		Kind:        complication.KindCost,
		Description: "An ambush at the well.",
		Effects: []complication.Effect{
			{Type: complication.EffectHPLoss, Amount: 3},
			{Type: complication.EffectStatusAdd, Value: "bleeding"},
			{Type: complication.EffectResourceLoss, Target: "fatigue", Amount: 15},
			{Type: complication.EffectResourceLoss, Target: "bread"},
			{Type: complication.EffectResourceGain, Target: "torch"},
			{Type: complication.EffectRelationshipChange, Target: "Merchant", Amount: -10},
			{Type: complication.EffectTimeAdvance, Amount: 5},
			{Type: complication.EffectSpawnEntity, Value: "Bandit Scout", Hostile: true},
			{Type: complication.EffectRevealFact, Value: "The well hides a tunnel."},
			{Type: complication.EffectTensionChange, Amount: 10},
			{Type: complication.EffectRelationshipChange, Target: "ghost", Amount: 5},
		},
		NewFacts: []string{"The well hides a tunnel.", "Someone is watching."},
	}

	report := e.ApplyComplication(ctx, c, h.pc, "village_square")

	a := h.actor()
	assert.Equal(t, 5, a.HP)
	assert.True(t, a.HasStatus("bleeding"))
	assert.Equal(t, 75, a.Needs[world.NeedFatigue])
	_, err := h.world.Item(2)
	assert.ErrorIs(t, err, world.ErrNotFound, "bread should be lost")

	var torch bool
	for _, it := range h.world.Inventory("hero") {
		if it.Key == "torch" {
			torch = true
		}
	}
	assert.True(t, torch, "torch should be gained")

	assert.Equal(t, 20, h.entity(20).Attitude)
	assert.Equal(t, 5, h.world.Clock())

	require.Equal(t, []string{"bandit_scout"}, report.SpawnedEntities)
	assert.True(t, report.HostileSpawned)
	var scout world.Entity
	for _, ent := range h.world.EntitiesAt("village_square") {
		if ent.Key == "bandit_scout" {
			scout = ent
		}
	}
	assert.Equal(t, "Bandit Scout", scout.Name)
	assert.True(t, scout.Hostile)
	assert.Equal(t, world.DefaultHostile.MaxHP, scout.HP)

	assert.Equal(t, []string{"The well hides a tunnel.", "Someone is watching."}, report.NewFacts)
	assert.Equal(t, []string{"bleeding"}, report.StatusesAdded)

	active, err := arcs.ActiveArc(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, active.Tension)

	require.Len(t, report.Skipped, 1)
	assert.Contains(t, report.Skipped[0], "ghost")
}

func TestApplyComplication_Edges(t *testing.T) {
	ctx := context.Background()

	t.Run("nil complication is a no-op", func(t *testing.T) {
		h := newHarness(t, nil)
		assert.Equal(t, EffectReport{}, h.e.ApplyComplication(ctx, nil, h.pc, "village_square"))
	})

	t.Run("tension without arcs is skipped", func(t *testing.T) {
		h := newHarness(t, nil)
		c := &complication.Complication{Effects: []complication.Effect{{Type: complication.EffectTensionChange, Amount: 5}}}

		report := h.e.ApplyComplication(ctx, c, h.pc, "village_square")

		assert.Len(t, report.Skipped, 1)
		assert.Empty(t, report.Changes)
	})

	t.Run("bystander spawn is not hostile", func(t *testing.T) {
		h := newHarness(t, nil)
		c := &complication.Complication{Effects: []complication.Effect{{Type: complication.EffectSpawnEntity}}}

		report := h.e.ApplyComplication(ctx, c, h.pc, "village_square")

		assert.Equal(t, []string{"stranger"}, report.SpawnedEntities)
		assert.False(t, report.HostileSpawned)
	})

	t.Run("hit points never drop below zero", func(t *testing.T) {
		h := newHarness(t, nil)
		c := &complication.Complication{Effects: []complication.Effect{{Type: complication.EffectHPLoss, Amount: 50}}}

		h.e.ApplyComplication(ctx, c, h.pc, "village_square")

		assert.Equal(t, 0, h.actor().HP)
	})
}

func TestDefaultItemFactory(t *testing.T) {
	it, err := DefaultItemFactory{}.Materialize(context.Background(), "coil of rope", world.Location{})
	require.NoError(t, err)
	assert.Equal(t, "coil_of_rope", it.Key)
	assert.Equal(t, "Coil Of Rope", it.Name)
	assert.Equal(t, world.ItemMisc, it.Kind)

	_, err = DefaultItemFactory{}.Materialize(context.Background(), "  ", world.Location{})
	assert.Error(t, err)
}
