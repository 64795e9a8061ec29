package execute

import (
	"fmt"

	"github.com/jwebster45206/turn-authority/pkg/action"
)

// move handles move, enter, leave and flee; the validator resolved the
// destination.
func (e *Executor) move(x *execution) (action.ExecutionResult, error) {
	dest := x.vr.Hints.Destination
	if dest == "" {
		return action.ExecutionResult{}, fmt.Errorf("no destination was resolved")
	}
	return e.relocate(x, dest, x.vr.Hints.Direction, verbFor(x.act.Kind))
}

func verbFor(k action.Kind) string {
	switch k {
	case action.KindFlee:
		return "flee"
	case action.KindClimb:
		return "climb"
	case action.KindSneak:
		return "sneak"
	default:
		return "go"
	}
}

func (e *Executor) relocate(x *execution, destKey, direction, verb string) (action.ExecutionResult, error) {
	from, err := e.world.MoveActor(x.actor.ID, destKey)
	if err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to move: %w", err)
	}
	dest, err := e.world.Location(destKey)
	if err != nil {
		return action.ExecutionResult{}, fmt.Errorf("failed to load destination: %w", err)
	}

	outcome := fmt.Sprintf("You %s to %s.", verb, dest.DisplayName())
	if direction != "" {
		outcome = fmt.Sprintf("You %s %s to %s.", verb, direction, dest.DisplayName())
	}
	res := x.ok(outcome, fmt.Sprintf("location: %s -> %s", from, dest.Key))
	res.Metadata.Movement = &action.MovementFacts{From: from, To: dest.Key}
	return res, nil
}
