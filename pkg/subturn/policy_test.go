package subturn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/complication"
)

func TestDefaultPolicy_Classify(t *testing.T) {
	walk := []action.Action{action.New(action.KindMove, "north")}
	fight := []action.Action{action.New(action.KindAttack, "wolf")}

	tests := []struct {
		name      string
		effects   []complication.Effect
		remaining []action.Action
		want      Status
		rule      string
	}{
		{name: "no effects", want: Continue},
		{name: "knocked out", effects: []complication.Effect{{Type: complication.EffectStatusAdd, Value: "Unconscious"}}, remaining: walk, want: Abandon, rule: "incapacitating_status"},
		{name: "status named in target", effects: []complication.Effect{{Type: complication.EffectStatusAdd, Target: "broken leg"}}, want: Abandon, rule: "incapacitating_status"},
		{name: "hostile with other plans", effects: []complication.Effect{{Type: complication.EffectSpawnEntity, Hostile: true}}, remaining: walk, want: Abandon, rule: "hostile_arrival"},
		{name: "hostile while fighting", effects: []complication.Effect{{Type: complication.EffectSpawnEntity, Hostile: true}}, remaining: fight, want: Continue},
		{name: "hostile with nothing left", effects: []complication.Effect{{Type: complication.EffectSpawnEntity, Hostile: true}}, want: Continue},
		{name: "bystander", effects: []complication.Effect{{Type: complication.EffectSpawnEntity}}, remaining: walk, want: Continue},
		{name: "hp loss", effects: []complication.Effect{{Type: complication.EffectHPLoss, Amount: 2}}, remaining: walk, want: OfferChoice, rule: "significant_cost"},
		{name: "minor status", effects: []complication.Effect{{Type: complication.EffectStatusAdd, Value: "soaked"}}, remaining: walk, want: OfferChoice, rule: "significant_cost"},
		{name: "time passes", effects: []complication.Effect{{Type: complication.EffectTimeAdvance, Amount: 10}}, remaining: walk, want: Continue},
		{name: "discovery", effects: []complication.Effect{{Type: complication.EffectRevealFact, Value: "A draft."}}, remaining: walk, want: Continue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &complication.Complication{Kind: complication.KindTwist, Effects: tt.effects}
			status, rule := DefaultPolicy.Classify(c, tt.remaining)
			assert.Equal(t, tt.want, status)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestPolicy_NilComplication(t *testing.T) {
	status, rule := DefaultPolicy.Classify(nil, nil)
	assert.Equal(t, Continue, status)
	assert.Empty(t, rule)
}

func TestPolicy_CustomRules(t *testing.T) {
	strict := Policy{{
		Name:   "any_complication",
		Status: Abandon,
		Matches: func(*complication.Complication, []action.Action) bool {
			return true
		},
	}}
	status, rule := strict.Classify(&complication.Complication{}, nil)
	assert.Equal(t, Abandon, status)
	assert.Equal(t, "any_complication", rule)
}
