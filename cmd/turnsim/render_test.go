package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jwebster45206/turn-authority/internal/sim"
	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/complication"
	"github.com/jwebster45206/turn-authority/pkg/subturn"
)

func TestRenderOdds(t *testing.T) {
	calc := complication.NewCalculator(complication.DefaultConfig())
	out := renderOdds(calc.Calculate(complication.Inputs{
		RiskTags:               action.RiskTags{action.RiskHostile, action.RiskCursed, action.RiskDangerous},
		Arc:                    &complication.Arc{Phase: complication.PhaseClimax, Tension: 100},
		TurnsSinceComplication: complication.NoHistory,
	}))

	assert.Contains(t, out, "tag cursed")
	assert.Contains(t, out, "tag hostile")
	assert.Contains(t, out, "35.0% (capped)")
}

func TestRenderReport(t *testing.T) {
	move := action.New(action.KindMove, "north")
	take := action.New(action.KindTake, "bucket")
	r := &sim.Report{
		Scenario: "Test",
		Turns: []sim.TurnReport{{
			Number: 1,
			Result: subturn.ChainedTurnResult{
				Steps: []subturn.Step{
					{
						Action:       move,
						Validation:   action.ValidationResult{Action: move, Valid: true},
						Execution:    &action.ExecutionResult{Action: move, Success: true, Outcome: "You go north to Old Well."},
						Complication: &complication.Complication{Description: "You twist an ankle."},
						Status:       subturn.OfferChoice,
						Rule:         "significant_cost",
					},
				},
				ChoiceOffered:      true,
				ContinuationPrompt: "You twist an ankle. Do you still want to take bucket?",
			},
			Dropped: []action.Action{take},
		}},
	}

	out := renderReport(r, 60)

	assert.Contains(t, out, "TEST")
	assert.Contains(t, out, "> move north")
	assert.Contains(t, out, "Old Well")
	assert.Contains(t, out, "OFFER_CHOICE: significant_cost")
	assert.Contains(t, out, "Do you still want to take bucket?")
	assert.Contains(t, out, "1 action(s) not taken")
}

func TestCheckScenario(t *testing.T) {
	assert.Empty(t, checkScenario("../../data/scenarios/old_well.yaml"))

	problems := checkScenario("../../data/scenarios/missing.yaml")
	assert.Len(t, problems, 1)
	assert.Contains(t, problems[0], "failed to read scenario")
}
