// Package complication decides when a multi-action turn is interrupted by a
// narrative complication, and what that complication is.
//
// The probability math is pure and deterministic. Only the trigger draw is
// random, and it is injected so tests can pin it.
package complication

import "slices"

// Kind classifies a complication.
type Kind string

const (
	KindDiscovery    Kind = "discovery"
	KindInterruption Kind = "interruption"
	KindCost         Kind = "cost"
	KindTwist        Kind = "twist"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindDiscovery, KindInterruption, KindCost, KindTwist:
		return true
	}
	return false
}

// EffectType names a mechanical consequence of a complication.
type EffectType string

const (
	EffectHPLoss             EffectType = "hp_loss"
	EffectHPGain             EffectType = "hp_gain"
	EffectResourceLoss       EffectType = "resource_loss"
	EffectResourceGain       EffectType = "resource_gain"
	EffectStatusAdd          EffectType = "status_add"
	EffectStatusRemove       EffectType = "status_remove"
	EffectRelationshipChange EffectType = "relationship_change"
	EffectTimeAdvance        EffectType = "time_advance"
	EffectSpawnEntity        EffectType = "spawn_entity"
	EffectRevealFact         EffectType = "reveal_fact"
	EffectTensionChange      EffectType = "tension_change"
)

var effectTypes = []EffectType{
	EffectHPLoss, EffectHPGain, EffectResourceLoss, EffectResourceGain,
	EffectStatusAdd, EffectStatusRemove, EffectRelationshipChange,
	EffectTimeAdvance, EffectSpawnEntity, EffectRevealFact, EffectTensionChange,
}

// Valid reports whether t is a known effect type.
func (t EffectType) Valid() bool {
	return slices.Contains(effectTypes, t)
}

// Effect is one typed mechanical consequence.
//
// Amount carries numeric values (hit points, minutes, attitude or tension
// deltas, need points). Value carries text (a status name, a fact, the name
// of a spawned entity). Target names what the effect applies to: a need, an
// inventory item, an entity or an arc key. Empty means the player.
type Effect struct {
	Type    EffectType `json:"type" yaml:"type"`
	Target  string     `json:"target,omitempty" yaml:"target,omitempty"`
	Amount  int        `json:"amount,omitempty" yaml:"amount,omitempty"`
	Value   string     `json:"value,omitempty" yaml:"value,omitempty"`
	Hostile bool       `json:"hostile,omitempty" yaml:"hostile,omitempty"` // spawn_entity only
}

// Complication is a narrative interrupt. It adds consequences to the action
// it accompanies and never makes that action fail.
type Complication struct {
	Kind             Kind     `json:"type" yaml:"type"`
	Description      string   `json:"description" yaml:"description"`
	Effects          []Effect `json:"mechanical_effects,omitempty" yaml:"mechanical_effects,omitempty"`
	NewFacts         []string `json:"new_facts,omitempty" yaml:"new_facts,omitempty"`
	// InterruptsAction narrates the complication before the action. Effects
	// are still applied after the action resolves.
	InterruptsAction bool     `json:"interrupts_action" yaml:"interrupts_action"`
	SourceArcKey     string   `json:"source_arc_key,omitempty" yaml:"source_arc_key,omitempty"`
	Foreshadowing    string   `json:"foreshadowing,omitempty" yaml:"foreshadowing,omitempty"`
}

// HasEffect reports whether any effect has the given type.
func (c Complication) HasEffect(t EffectType) bool {
	return slices.ContainsFunc(c.Effects, func(e Effect) bool { return e.Type == t })
}

// EffectsOf returns the effects of the given type in order.
func (c Complication) EffectsOf(t EffectType) []Effect {
	var out []Effect
	for _, e := range c.Effects {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
