package execute

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jwebster45206/turn-authority/pkg/complication"
)

// Plan is what a planning collaborator decided a freeform action does.
type Plan struct {
	Outcome string                `json:"outcome" yaml:"outcome"`
	Effects []complication.Effect `json:"effects,omitempty" yaml:"effects,omitempty"`
}

// Validate rejects plans the executor cannot apply.
func (p Plan) Validate() error {
	if strings.TrimSpace(p.Outcome) == "" {
		return errors.New("plan has no outcome")
	}
	for i, eff := range p.Effects {
		if !eff.Type.Valid() {
			return fmt.Errorf("effect %d has unknown type %q", i, eff.Type)
		}
	}
	return nil
}

// Plans maps freeform input to plans. Keys are matched case-insensitively.
type Plans map[string]Plan

// PlanKey normalizes freeform input for lookup.
func PlanKey(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

// Lookup finds the plan for raw input.
func (p Plans) Lookup(raw string) (Plan, bool) {
	if len(p) == 0 {
		return Plan{}, false
	}
	if plan, ok := p[raw]; ok {
		return plan, true
	}
	want := PlanKey(raw)
	for k, plan := range p {
		if PlanKey(k) == want {
			return plan, true
		}
	}
	return Plan{}, false
}
