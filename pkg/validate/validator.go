// Package validate decides whether a player action is mechanically legal
// and classifies its risk. Validation only reads the world.
package validate

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/actor"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

// Default check difficulties and durations.
const (
	DefaultDC          = 10
	DefaultClimbDC     = 12
	DefaultSneakDC     = 12
	DefaultLockDC      = 15
	HostilePersuadeDC  = 5 // added when the target is hostile
	DefaultWaitMinutes = 10
	RestMinutes        = 60
	SleepMinutes       = 480
	MaxWaitMinutes     = 24 * 60
)

// request is the context of a single validation call.
type request struct {
	act   action.Action
	pc    *actor.PC
	actor world.ActorState
	loc   world.Location
}

func (r *request) valid() action.ValidationResult {
	return action.ValidationResult{Action: r.act, Valid: true}
}

func (r *request) invalid(format string, args ...any) action.ValidationResult {
	return action.Invalid(r.act, fmt.Sprintf(format, args...))
}

type handler func(v *Validator, r *request) action.ValidationResult

var handlers = map[action.Kind]handler{
	action.KindMove:      (*Validator).move,
	action.KindEnter:     (*Validator).move,
	action.KindLeave:     (*Validator).leave,
	action.KindTake:      (*Validator).take,
	action.KindDrop:      (*Validator).drop,
	action.KindGive:      (*Validator).give,
	action.KindUse:       (*Validator).use,
	action.KindEquip:     (*Validator).equip,
	action.KindUnequip:   (*Validator).unequip,
	action.KindOpen:      (*Validator).open,
	action.KindClose:     (*Validator).close,
	action.KindAttack:    (*Validator).attack,
	action.KindDefend:    (*Validator).defend,
	action.KindFlee:      (*Validator).flee,
	action.KindTalk:      (*Validator).talk,
	action.KindAsk:       (*Validator).ask,
	action.KindPersuade:  (*Validator).persuade,
	action.KindTrade:     (*Validator).trade,
	action.KindLook:      (*Validator).look,
	action.KindExamine:   (*Validator).examine,
	action.KindSearch:    (*Validator).search,
	action.KindWait:      (*Validator).wait,
	action.KindRest:      (*Validator).rest,
	action.KindSleep:     (*Validator).rest,
	action.KindEat:       (*Validator).consume,
	action.KindDrink:     (*Validator).consume,
	action.KindClimb:     (*Validator).climb,
	action.KindSneak:     (*Validator).sneak,
	action.KindPickLock:  (*Validator).pickLock,
	action.KindInventory: (*Validator).meta,
	action.KindStatus:    (*Validator).meta,
	action.KindCustom:    (*Validator).custom,
}

// Validator checks actions against a read-only view of the world.
type Validator struct {
	world  world.Reader
	logger *slog.Logger
}

// New creates a validator. It panics if any action kind lacks a handler.
func New(w world.Reader, logger *slog.Logger) *Validator {
	if w == nil {
		panic("validate: world reader is required")
	}
	if missing := MissingKinds(); len(missing) > 0 {
		panic(fmt.Sprintf("validate: no handler for kinds %v", missing))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{world: w, logger: logger}
}

// MissingKinds lists action kinds with no handler.
func MissingKinds() []action.Kind {
	var missing []action.Kind
	for _, k := range action.AllKinds() {
		if _, ok := handlers[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// Validate checks one action for the character. locationOverride, when set,
// replaces the character's recorded location.
func (v *Validator) Validate(a action.Action, pc *actor.PC, locationOverride string) action.ValidationResult {
	if pc == nil {
		return action.Invalid(a, "There is no character to act.")
	}
	state, err := v.world.Actor(pc.ID())
	if err != nil {
		v.logger.Warn("Actor missing from world", "actor_id", pc.ID(), "error", err)
		return action.Invalid(a, "Your character is not in the world.")
	}

	locKey := state.Location
	if locationOverride != "" {
		locKey = locationOverride
	}
	loc, err := v.world.Location(locKey)
	if err != nil {
		return action.Invalid(a, "You are nowhere the world knows about.")
	}

	h, ok := handlers[a.Kind]
	if !ok {
		return action.Invalid(a, fmt.Sprintf("%q is not something you can do.", a.Kind))
	}

	r := &request{act: a, pc: pc, actor: state, loc: loc}
	res := h(v, r)
	if res.Valid {
		res.RiskTags = res.RiskTags.Add(v.contextTags(r)...)
	}

	v.logger.Debug("Validated action",
		"action_kind", a.Kind,
		"target", a.Target,
		"valid", res.Valid,
		"reason", res.Reason,
		"risk_tags", res.RiskTags.Strings())
	return res
}

// inCombat reports whether a living hostile shares the location.
func (v *Validator) inCombat(r *request) bool {
	for _, e := range v.world.EntitiesAt(r.loc.Key) {
		if e.Hostile && e.Alive() {
			return true
		}
	}
	return false
}

// dcParam reads the "dc" parameter, falling back to def.
func dcParam(a action.Action, def int) int {
	if n, err := strconv.Atoi(a.Param("dc")); err == nil && n > 0 {
		return n
	}
	return def
}
