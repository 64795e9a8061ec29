package action

import (
	"fmt"
	"maps"
	"strings"
)

// ParamRawInput is the parameter key carrying the player's raw text for custom actions.
const ParamRawInput = "raw_input"

// Action is one mechanical player intent. It is treated as an immutable value.
type Action struct {
	Kind           Kind              `json:"kind" yaml:"kind"`
	Target         string            `json:"target,omitempty" yaml:"target,omitempty"`
	IndirectTarget string            `json:"indirect_target,omitempty" yaml:"indirect_target,omitempty"`
	Manner         string            `json:"manner,omitempty" yaml:"manner,omitempty"` // adverbial modifier, e.g. "quietly"
	Parameters     map[string]string `json:"parameters,omitempty" yaml:"parameters,omitempty"`
}

// New builds an action with the given kind and target.
func New(kind Kind, target string) Action {
	return Action{Kind: kind, Target: target}
}

// Custom builds a freeform action carrying the raw player input.
func Custom(raw string) Action {
	return Action{
		Kind:       KindCustom,
		Parameters: map[string]string{ParamRawInput: raw},
	}
}

// WithIndirect returns a copy of the action with the indirect target set.
func (a Action) WithIndirect(target string) Action {
	a.Parameters = maps.Clone(a.Parameters)
	a.IndirectTarget = target
	return a
}

// WithParam returns a copy of the action with one parameter set.
func (a Action) WithParam(key, value string) Action {
	params := maps.Clone(a.Parameters)
	if params == nil {
		params = make(map[string]string)
	}
	params[key] = value
	a.Parameters = params
	return a
}

// Category is derived from the kind.
func (a Action) Category() Category {
	return a.Kind.Category()
}

// Param returns a parameter value or the empty string.
func (a Action) Param(key string) string {
	if a.Parameters == nil {
		return ""
	}
	return a.Parameters[key]
}

// RawInput returns the raw player text of a custom action.
func (a Action) RawInput() string {
	return a.Param(ParamRawInput)
}

// Describe renders a short player-facing description, e.g. "use bucket on well".
func (a Action) Describe() string {
	if a.Kind == KindCustom {
		if raw := a.RawInput(); raw != "" {
			return raw
		}
		return "do something"
	}
	parts := []string{strings.ReplaceAll(string(a.Kind), "_", " ")}
	if a.Target != "" {
		parts = append(parts, a.Target)
	}
	if a.IndirectTarget != "" {
		parts = append(parts, joinerFor(a.Kind), a.IndirectTarget)
	}
	if a.Manner != "" {
		parts = append(parts, a.Manner)
	}
	return strings.Join(parts, " ")
}

func (a Action) String() string {
	return fmt.Sprintf("%s(%s)", a.Kind, a.Target)
}

func joinerFor(k Kind) string {
	switch k {
	case KindGive:
		return "to"
	case KindTrade:
		return "with"
	case KindAsk:
		return "about"
	default:
		return "on"
	}
}
