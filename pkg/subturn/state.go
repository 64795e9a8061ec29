package subturn

import (
	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/complication"
	"github.com/jwebster45206/turn-authority/pkg/execute"
)

// State is the ambient snapshot threaded through a chain. Each step sees
// the state left by the step before it.
type State struct {
	SessionID string `json:"session_id" yaml:"session_id"`
	Turn      int    `json:"turn" yaml:"turn"`
	// SceneContext is handed to the oracle as flavor for generated content.
	SceneContext string `json:"scene_context,omitempty" yaml:"scene_context,omitempty"`
	// TurnsSinceComplication overrides the history lookup when set.
	TurnsSinceComplication *int `json:"turns_since_complication,omitempty" yaml:"turns_since_complication,omitempty"`

	PlayerLocation     string   `json:"player_location" yaml:"player_location"`
	PreviousLocation   string   `json:"previous_location,omitempty" yaml:"previous_location,omitempty"`
	LocationChanged    bool     `json:"location_changed" yaml:"location_changed"`
	TimeAdvanceMinutes int      `json:"time_advance_minutes" yaml:"time_advance_minutes"`
	CombatActive       bool     `json:"combat_active" yaml:"combat_active"`
	InventoryChanged   bool     `json:"inventory_changed" yaml:"inventory_changed"`
	NewFacts           []string `json:"new_facts,omitempty" yaml:"new_facts,omitempty"`
}

// afterExecution folds one execution result into the snapshot.
func (s State) afterExecution(res action.ExecutionResult) State {
	md := res.Metadata
	if mv := md.Movement; mv != nil && mv.To != "" {
		s.PreviousLocation = mv.From
		s.PlayerLocation = mv.To
		s.LocationChanged = true
		if res.Action.Kind == action.KindFlee {
			s.CombatActive = false
		}
	}
	if md.Time != nil {
		s.TimeAdvanceMinutes += md.Time.MinutesAdvanced
	}
	if res.Action.Kind == action.KindAttack {
		s.CombatActive = true
	}
	if md.Items != nil && md.Items.InventoryChanged {
		s.InventoryChanged = true
	}
	return s
}

// afterComplication folds applied complication effects into the snapshot.
func (s State) afterComplication(c *complication.Complication, report execute.EffectReport) State {
	for _, eff := range c.EffectsOf(complication.EffectTimeAdvance) {
		if eff.Amount > 0 {
			s.TimeAdvanceMinutes += eff.Amount
		}
	}
	if report.HostileSpawned {
		s.CombatActive = true
	}
	if c.HasEffect(complication.EffectResourceLoss) || c.HasEffect(complication.EffectResourceGain) {
		s.InventoryChanged = true
	}
	if len(report.NewFacts) > 0 {
		s.NewFacts = append(append([]string(nil), s.NewFacts...), report.NewFacts...)
	}
	return s
}
