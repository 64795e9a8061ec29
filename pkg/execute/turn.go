package execute

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/actor"
)

// TurnResult is the outcome of executing a pre-validated batch of actions
// without chaining.
type TurnResult struct {
	Results      []action.ExecutionResult  `json:"results"`
	Failed       []action.ValidationResult `json:"failed,omitempty"`
	Summary      string                    `json:"summary"`
	StateChanges []string                  `json:"state_changes,omitempty"`
	// Location is where the actor ended up.
	Location string `json:"location"`
}

// ExecuteTurn runs every valid action in order and reports the failed ones
// alongside. Actions are not re-validated between steps; use the subturn
// processor when later actions depend on earlier ones.
func (e *Executor) ExecuteTurn(ctx context.Context, valid, failed []action.ValidationResult, pc *actor.PC, ec Context) TurnResult {
	out := TurnResult{Failed: failed, Location: ec.ActorLocation}
	var lines []string

	for _, vr := range valid {
		if !vr.Valid {
			out.Failed = append(out.Failed, vr)
			continue
		}
		res := e.ExecuteAction(ctx, vr, pc, ec)
		out.Results = append(out.Results, res)
		out.StateChanges = append(out.StateChanges, res.StateChanges...)
		lines = append(lines, res.Outcome)
		if mv := res.Metadata.Movement; mv != nil && res.Success {
			ec.ActorLocation = mv.To
			out.Location = mv.To
		}
	}
	for _, vr := range out.Failed {
		lines = append(lines, fmt.Sprintf("Could not %s: %s", vr.Action.Describe(), vr.Reason))
	}

	if out.Location == "" && pc != nil {
		if st, err := e.world.Actor(pc.ID()); err == nil {
			out.Location = st.Location
		}
	}
	out.Summary = strings.Join(lines, " ")
	e.logger.Debug("Executed turn",
		"executed", len(out.Results),
		"failed", len(out.Failed),
		"location", out.Location)
	return out
}
