// Package subturn processes a player's multi-action turn one action at a
// time, re-validating each step against the state the previous step left
// and letting complications pause or halt the chain.
package subturn

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/actor"
	"github.com/jwebster45206/turn-authority/pkg/complication"
	"github.com/jwebster45206/turn-authority/pkg/execute"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

// Validator checks one action against current world state.
type Validator interface {
	Validate(a action.Action, pc *actor.PC, locationOverride string) action.ValidationResult
}

// Executor performs validated actions and applies complication effects.
type Executor interface {
	ExecuteAction(ctx context.Context, vr action.ValidationResult, pc *actor.PC, ec execute.Context) action.ExecutionResult
	ApplyComplication(ctx context.Context, c *complication.Complication, pc *actor.PC, locationKey string) execute.EffectReport
}

// Oracle decides whether a step is interrupted and records what fired.
type Oracle interface {
	Check(ctx context.Context, req complication.CheckRequest) complication.OracleResult
	RecordComplication(ctx context.Context, sessionID string, turn int, res complication.OracleResult) error
}

// Deps are the collaborators of a Processor. Policy defaults to DefaultPolicy.
type Deps struct {
	World     world.Reader
	Validator Validator
	Executor  Executor
	Oracle    Oracle
	Policy    Policy
}

// Step is one processed action of a chain.
type Step struct {
	Index        int                        `json:"index"`
	Action       action.Action              `json:"action"`
	Validation   action.ValidationResult    `json:"validation"`
	Execution    *action.ExecutionResult    `json:"execution,omitempty"`
	Oracle       *complication.OracleResult `json:"oracle,omitempty"`
	Complication *complication.Complication `json:"complication,omitempty"`
	Effects      *execute.EffectReport      `json:"effects,omitempty"`
	// Rule names the policy rule that set Status, if any.
	Rule   string `json:"rule,omitempty"`
	State  State  `json:"state"`
	Status Status `json:"status"`
}

// ChainedTurnResult is the outcome of one chain.
type ChainedTurnResult struct {
	Steps     []Step          `json:"steps"`
	Remaining []action.Action `json:"remaining_actions,omitempty"`
	Final     State           `json:"final_state"`
	// Status is the status of the last processed step.
	Status             Status                     `json:"status"`
	Interrupt          *complication.Complication `json:"interrupt,omitempty"`
	ChoiceOffered      bool                       `json:"choice_offered"`
	ContinuationPrompt string                     `json:"continuation_prompt,omitempty"`
	// Errors holds chain-level structural failures. When set, no steps ran.
	Errors []string `json:"errors,omitempty"`
}

// Halted reports whether the chain stopped before its last action.
func (r ChainedTurnResult) Halted() bool {
	return r.Status == Abandon || r.Status == OfferChoice
}

// Processor runs chains. It holds no per-chain state.
type Processor struct {
	world     world.Reader
	validator Validator
	executor  Executor
	oracle    Oracle
	policy    Policy
	logger    *slog.Logger
}

// New wires a processor. It panics when a collaborator is missing.
func New(deps Deps, logger *slog.Logger) *Processor {
	if deps.World == nil || deps.Validator == nil || deps.Executor == nil || deps.Oracle == nil {
		panic("subturn: world, validator, executor and oracle are required")
	}
	if deps.Policy == nil {
		deps.Policy = DefaultPolicy
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		world:     deps.World,
		validator: deps.Validator,
		executor:  deps.Executor,
		oracle:    deps.Oracle,
		policy:    deps.Policy,
		logger:    logger,
	}
}

// ProcessChain processes actions in order. Executed steps are final; when
// the chain halts, the actions after the halting step are returned as
// Remaining for a later turn.
func (p *Processor) ProcessChain(ctx context.Context, actions []action.Action, pc *actor.PC, initial State, plans execute.Plans) ChainedTurnResult {
	state, errs := p.prepare(pc, initial)
	if len(errs) > 0 {
		p.logger.Error("Chain rejected", "errors", errs)
		return ChainedTurnResult{Final: initial, Status: Abandon, Errors: errs}
	}

	out := ChainedTurnResult{Status: Continue}
	for i, a := range actions {
		step, next := p.processStep(ctx, i, a, actions[i+1:], pc, state, plans)
		state = next
		out.Steps = append(out.Steps, step)
		out.Status = step.Status

		if step.Status == Continue {
			continue
		}
		out.Remaining = slices.Clone(actions[i+1:])
		out.Interrupt = step.Complication
		if step.Status == OfferChoice {
			out.ChoiceOffered = true
			out.ContinuationPrompt = continuationPrompt(step.Complication, actions[i+1])
		}
		break
	}
	out.Final = state

	p.logger.Info("Processed chain",
		"session_id", state.SessionID,
		"turn", state.Turn,
		"actions", len(actions),
		"steps", len(out.Steps),
		"status", out.Status,
		"remaining", len(out.Remaining))
	return out
}

// prepare checks the structural requirements of a chain and resolves the
// starting location.
func (p *Processor) prepare(pc *actor.PC, initial State) (State, []string) {
	var errs []string
	if initial.SessionID == "" {
		errs = append(errs, "missing session context")
	}
	if pc == nil {
		return initial, append(errs, "missing actor")
	}
	st, err := p.world.Actor(pc.ID())
	if err != nil {
		return initial, append(errs, fmt.Sprintf("actor %q is not in the world", pc.ID()))
	}
	state := initial
	if state.PlayerLocation == "" {
		state.PlayerLocation = st.Location
	}
	if _, err := p.world.Location(state.PlayerLocation); err != nil {
		errs = append(errs, fmt.Sprintf("unknown location %q", state.PlayerLocation))
	}
	return state, errs
}

func (p *Processor) processStep(ctx context.Context, i int, a action.Action, remaining []action.Action, pc *actor.PC, state State, plans execute.Plans) (Step, State) {
	step := Step{Index: i, Action: a, Status: Continue}
	step.Validation = p.validator.Validate(a, pc, state.PlayerLocation)
	if !step.Validation.Valid {
		p.logger.Debug("Subturn action invalid, continuing",
			"subturn_index", i,
			"action_kind", a.Kind,
			"reason", step.Validation.Reason)
		step.State = state
		return step, state
	}

	loc, err := p.world.Location(state.PlayerLocation)
	if err != nil {
		loc = world.Location{Key: state.PlayerLocation}
	}
	oracle := p.oracle.Check(ctx, complication.CheckRequest{
		SessionID:              state.SessionID,
		Turn:                   state.Turn,
		ActionsSummary:         a.Describe(),
		SceneContext:           state.SceneContext,
		LocationName:           loc.DisplayName(),
		RiskTags:               step.Validation.RiskTags,
		TurnsSinceComplication: state.TurnsSinceComplication,
		SubturnIndex:           i,
		LocationDanger:         world.ClassifyDanger(loc),
	})
	step.Oracle = &oracle

	ec := execute.Context{ActorLocation: state.PlayerLocation, Plans: plans}
	if !oracle.Triggered || oracle.Complication == nil {
		state = p.execute(ctx, &step, pc, state, ec)
		step.State = state
		return step, state
	}

	c := oracle.Complication
	step.Complication = c
	if err := p.oracle.RecordComplication(ctx, state.SessionID, state.Turn, oracle); err != nil {
		p.logger.Warn("Failed to record complication", "session_id", state.SessionID, "error", err)
	}
	// later steps of this turn are inside the cooldown window
	zero := 0
	state.TurnsSinceComplication = &zero

	status, rule := p.policy.Classify(c, remaining)
	if status == OfferChoice && len(remaining) == 0 {
		status, rule = Continue, ""
	}
	step.Status, step.Rule = status, rule

	// InterruptsAction only orders the narration; effects always land after
	// the action so they cannot pull its target out from under it.
	if status != Abandon {
		state = p.execute(ctx, &step, pc, state, ec)
	}
	state = p.applyComplication(ctx, &step, c, pc, state)

	p.logger.Info("Subturn complication",
		"subturn_index", i,
		"action_kind", a.Kind,
		"complication_type", c.Kind,
		"status", status,
		"rule", rule)
	step.State = state
	return step, state
}

func (p *Processor) execute(ctx context.Context, step *Step, pc *actor.PC, state State, ec execute.Context) State {
	res := p.executor.ExecuteAction(ctx, step.Validation, pc, ec)
	step.Execution = &res
	return state.afterExecution(res)
}

func (p *Processor) applyComplication(ctx context.Context, step *Step, c *complication.Complication, pc *actor.PC, state State) State {
	report := p.executor.ApplyComplication(ctx, c, pc, state.PlayerLocation)
	step.Effects = &report
	return state.afterComplication(c, report)
}

func continuationPrompt(c *complication.Complication, next action.Action) string {
	if c == nil || c.Description == "" {
		return fmt.Sprintf("Do you still want to %s?", next.Describe())
	}
	return fmt.Sprintf("%s Do you still want to %s?", c.Description, next.Describe())
}
