// Package execute performs validated actions against the world store and
// reports what happened as narration-neutral facts.
package execute

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/actor"
	"github.com/jwebster45206/turn-authority/pkg/complication"
	"github.com/jwebster45206/turn-authority/pkg/dice"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

// Context is the per-call execution context. It is passed in on every call
// and never stored on the Executor.
type Context struct {
	// ActorLocation overrides the actor's recorded location when set.
	ActorLocation string
	// Plans maps custom action input to the plan a planning collaborator
	// produced for it.
	Plans Plans
}

// Deps are the collaborators of an Executor. World and Dice are required.
type Deps struct {
	World   world.Store
	Dice    dice.Roller
	Items   ItemFactory
	Tension complication.TensionAdjuster
}

// Executor applies validated actions. It holds no per-call state and is
// safe to reuse across turns.
type Executor struct {
	world   world.Store
	dice    dice.Roller
	items   ItemFactory
	tension complication.TensionAdjuster
	logger  *slog.Logger
}

// execution is the state of one ExecuteAction call.
type execution struct {
	ctx   context.Context
	vr    action.ValidationResult
	act   action.Action
	pc    *actor.PC
	actor world.ActorState
	loc   world.Location
	plans Plans
}

func (x *execution) ok(outcome string, changes ...string) action.ExecutionResult {
	return action.ExecutionResult{Action: x.act, Success: true, Outcome: outcome, StateChanges: changes}
}

type handler func(e *Executor, x *execution) (action.ExecutionResult, error)

var handlers = map[action.Kind]handler{
	action.KindMove:      (*Executor).move,
	action.KindEnter:     (*Executor).move,
	action.KindLeave:     (*Executor).move,
	action.KindTake:      (*Executor).take,
	action.KindDrop:      (*Executor).drop,
	action.KindGive:      (*Executor).give,
	action.KindUse:       (*Executor).use,
	action.KindEquip:     (*Executor).equip,
	action.KindUnequip:   (*Executor).unequip,
	action.KindOpen:      (*Executor).openClose,
	action.KindClose:     (*Executor).openClose,
	action.KindAttack:    (*Executor).attack,
	action.KindDefend:    (*Executor).defend,
	action.KindFlee:      (*Executor).move,
	action.KindTalk:      (*Executor).talk,
	action.KindAsk:       (*Executor).ask,
	action.KindPersuade:  (*Executor).persuade,
	action.KindTrade:     (*Executor).trade,
	action.KindLook:      (*Executor).look,
	action.KindExamine:   (*Executor).examine,
	action.KindSearch:    (*Executor).search,
	action.KindWait:      (*Executor).wait,
	action.KindRest:      (*Executor).rest,
	action.KindSleep:     (*Executor).sleep,
	action.KindEat:       (*Executor).consume,
	action.KindDrink:     (*Executor).consume,
	action.KindClimb:     (*Executor).climb,
	action.KindSneak:     (*Executor).sneak,
	action.KindPickLock:  (*Executor).pickLock,
	action.KindInventory: (*Executor).inventory,
	action.KindStatus:    (*Executor).status,
	action.KindCustom:    (*Executor).custom,
}

// MissingKinds lists action kinds with no executor handler.
func MissingKinds() []action.Kind {
	var missing []action.Kind
	for _, k := range action.AllKinds() {
		if _, ok := handlers[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// New wires an executor. It panics when World or Dice is missing or when an
// action kind has no handler.
func New(deps Deps, logger *slog.Logger) *Executor {
	if deps.World == nil || deps.Dice == nil {
		panic("execute: world store and dice roller are required")
	}
	if missing := MissingKinds(); len(missing) > 0 {
		panic(fmt.Sprintf("execute: no handler for kinds %v", missing))
	}
	if deps.Items == nil {
		deps.Items = DefaultItemFactory{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		world:   deps.World,
		dice:    deps.Dice,
		items:   deps.Items,
		tension: deps.Tension,
		logger:  logger,
	}
}

// errNoEffect marks handlers that ran but could not change anything.
var errNoEffect = errors.New("nothing happens")

// ExecuteAction performs one validated action. Faults never escape: they
// become an unsuccessful result with a descriptive outcome.
func (e *Executor) ExecuteAction(ctx context.Context, vr action.ValidationResult, pc *actor.PC, ec Context) (res action.ExecutionResult) {
	a := vr.Action
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Action execution panicked", "action_kind", a.Kind, "panic", r)
			res = action.Failed(a, fmt.Sprintf("The attempt to %s went wrong.", a.Describe()))
		}
	}()

	if !vr.Valid {
		return action.Failed(a, "The action was not valid: "+vr.Reason)
	}
	if pc == nil {
		return action.Failed(a, "There is no character to act.")
	}
	h, ok := handlers[a.Kind]
	if !ok {
		return action.Failed(a, fmt.Sprintf("Nothing knows how to %s.", a.Kind))
	}

	state, err := e.world.Actor(pc.ID())
	if err != nil {
		return action.Failed(a, "Your character is not in the world.")
	}
	locKey := state.Location
	if ec.ActorLocation != "" {
		locKey = ec.ActorLocation
	}
	loc, err := e.world.Location(locKey)
	if err != nil {
		return action.Failed(a, "You are nowhere the world knows about.")
	}

	x := &execution{ctx: ctx, vr: vr, act: a, pc: pc, actor: state, loc: loc, plans: ec.Plans}
	res, err = h(e, x)
	if err != nil {
		e.logger.Warn("Action execution failed",
			"action_kind", a.Kind,
			"target", a.Target,
			"error", err)
		if errors.Is(err, errNoEffect) {
			return action.Failed(a, fmt.Sprintf("You try to %s, but nothing happens.", a.Describe()))
		}
		return action.Failed(a, fmt.Sprintf("You fail to %s: %v.", a.Describe(), err))
	}
	res.Action = a

	e.logger.Debug("Executed action",
		"action_kind", a.Kind,
		"success", res.Success,
		"outcome", res.Outcome)
	return res
}
