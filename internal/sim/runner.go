package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/turn-authority/internal/logger"
	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/complication"
	"github.com/jwebster45206/turn-authority/pkg/dice"
	"github.com/jwebster45206/turn-authority/pkg/execute"
	"github.com/jwebster45206/turn-authority/pkg/subturn"
	"github.com/jwebster45206/turn-authority/pkg/validate"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

// Options tune a run. Zero values give a clock-seeded random run with the
// fallback complication table and in-memory history.
type Options struct {
	Seed int64
	// SessionID continues an earlier session so its complication history
	// counts toward cooldown. Empty starts a new session.
	SessionID string
	// World replaces the scenario's world, typically with one saved by an
	// earlier run of the same session.
	World *world.Snapshot
	// PlayedTurns is how many turns the session has already played; turn
	// numbers continue from it.
	PlayedTurns int
	// AcceptChoices carries the remaining actions of an OFFER_CHOICE turn
	// into the next turn instead of dropping them.
	AcceptChoices bool
	Calculator    *complication.Calculator
	Generator     complication.Generator
	History       complication.History
	Items         execute.ItemFactory
	// Dice and Trigger override the seeded sources.
	Dice    dice.Roller
	Trigger complication.Trigger
	Policy  subturn.Policy
}

// TurnReport is one submitted turn and how the chain resolved it.
type TurnReport struct {
	Number  int                       `json:"number"`
	Actions []action.Action           `json:"actions"`
	Result  subturn.ChainedTurnResult `json:"result"`
	// Carried lists actions deferred from the previous turn's choice.
	Carried []action.Action `json:"carried,omitempty"`
	// Dropped lists actions abandoned by this turn.
	Dropped []action.Action `json:"dropped,omitempty"`
}

// Report is the outcome of a whole scenario.
type Report struct {
	SessionID string         `json:"session_id"`
	Scenario  string         `json:"scenario"`
	Seed      int64          `json:"seed"`
	Turns     []TurnReport   `json:"turns"`
	LastTurn  int            `json:"last_turn"`
	Final     world.Snapshot `json:"final_world"`
}

// Run plays every turn of the scenario in order. Each turn runs inside one
// world transaction that is rolled back when the chain is rejected.
func Run(ctx context.Context, sc *Scenario, opts Options, log *slog.Logger) (*Report, error) {
	if log == nil {
		log = slog.Default()
	}
	mem, pc, err := sc.Build()
	if err != nil {
		return nil, err
	}
	if opts.World != nil {
		if err := mem.Restore(*opts.World); err != nil {
			return nil, fmt.Errorf("failed to restore world: %w", err)
		}
		if _, err := mem.Actor(pc.ID()); err != nil {
			return nil, fmt.Errorf("restored world has no actor %q: %w", pc.ID(), err)
		}
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	roller := dice.NewRoller(seed)
	if opts.Dice == nil {
		opts.Dice = roller
	}
	if opts.Trigger == nil {
		opts.Trigger = complication.RandomTrigger(roller)
	}
	if opts.Calculator == nil {
		opts.Calculator = complication.NewCalculator(complication.DefaultConfig())
	}
	if opts.History == nil {
		opts.History = complication.NewMemoryHistory()
	}
	arcs := complication.NewStaticArcs(sc.Arcs...)

	oracle := complication.NewOracle(complication.Deps{
		Calculator: opts.Calculator,
		Trigger:    opts.Trigger,
		Generator:  opts.Generator,
		History:    opts.History,
		Arcs:       arcs,
	}, log)
	proc := subturn.New(subturn.Deps{
		World:     mem,
		Validator: validate.New(mem, log),
		Executor: execute.New(execute.Deps{
			World:   mem,
			Dice:    opts.Dice,
			Items:   opts.Items,
			Tension: arcs,
		}, log),
		Oracle: oracle,
		Policy: opts.Policy,
	}, log)

	report := &Report{SessionID: opts.SessionID, Scenario: sc.Name, Seed: seed, LastTurn: opts.PlayedTurns}
	if report.SessionID == "" {
		report.SessionID = uuid.NewString()
	}
	var carried []action.Action
	for i, submitted := range sc.Turns {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		tr := TurnReport{Number: opts.PlayedTurns + i + 1, Carried: carried}
		turnLog := logger.WithSession(log, report.SessionID, tr.Number)
		tr.Actions = append(append([]action.Action(nil), carried...), submitted...)
		carried = nil

		if err := mem.Begin(); err != nil {
			return report, fmt.Errorf("failed to begin turn %d: %w", tr.Number, err)
		}
		tr.Result = proc.ProcessChain(ctx, tr.Actions, pc, subturn.State{
			SessionID:    report.SessionID,
			Turn:         tr.Number,
			SceneContext: sc.Scene,
		}, sc.Plans)

		if len(tr.Result.Errors) > 0 {
			turnLog.Warn("Rejected turn", "errors", tr.Result.Errors)
			if err := mem.Rollback(); err != nil {
				return report, fmt.Errorf("failed to roll back turn %d: %w", tr.Number, err)
			}
		} else if err := mem.Commit(); err != nil {
			return report, fmt.Errorf("failed to commit turn %d: %w", tr.Number, err)
		}

		switch {
		case tr.Result.ChoiceOffered && opts.AcceptChoices:
			carried = tr.Result.Remaining
		case tr.Result.Halted():
			tr.Dropped = tr.Result.Remaining
		}
		if len(tr.Dropped) > 0 {
			turnLog.Info("Dropped remaining actions", "count", len(tr.Dropped), "status", tr.Result.Status)
		}
		turnLog.Debug("Played turn", "steps", len(tr.Result.Steps), "status", tr.Result.Status)
		report.Turns = append(report.Turns, tr)
		report.LastTurn = tr.Number
	}
	report.Final = mem.Snapshot()
	return report, nil
}
