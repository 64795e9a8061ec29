package validate

import (
	"github.com/jwebster45206/turn-authority/pkg/action"
)

// meta handles inventory and status, which are always allowed.
func (v *Validator) meta(r *request) action.ValidationResult {
	res := r.valid()
	res.ResolvedTarget = r.actor.ID
	return res
}

// custom accepts any freeform action; a planning collaborator decides what
// it does.
func (v *Validator) custom(r *request) action.ValidationResult {
	res := r.valid()
	res.ResolvedTarget = r.act.RawInput()
	return res
}
