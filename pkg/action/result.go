package action

import (
	"slices"
)

// RiskTag marks a validated action for complication weighting. Risk tags
// never affect validity.
type RiskTag string

const (
	RiskDangerous  RiskTag = "dangerous"
	RiskMysterious RiskTag = "mysterious"
	RiskValuable   RiskTag = "valuable"
	RiskHostile    RiskTag = "hostile"
	RiskFirstTime  RiskTag = "first_time"
	RiskSocial     RiskTag = "social"
	RiskMagical    RiskTag = "magical"
	RiskCursed     RiskTag = "cursed"
	RiskSacred     RiskTag = "sacred"
	RiskStealth    RiskTag = "stealth"
)

// RiskTags is an ordered set of risk tags.
type RiskTags []RiskTag

// Add appends tags that are not already present.
func (r RiskTags) Add(tags ...RiskTag) RiskTags {
	for _, t := range tags {
		if t != "" && !slices.Contains(r, t) {
			r = append(r, t)
		}
	}
	return r
}

// Has reports whether the tag is present.
func (r RiskTags) Has(tag RiskTag) bool {
	return slices.Contains(r, tag)
}

// Strings converts the set for logging and persistence.
func (r RiskTags) Strings() []string {
	out := make([]string, len(r))
	for i, t := range r {
		out[i] = string(t)
	}
	return out
}

// Hints carries execution hints resolved during validation. Ids are the
// canonical references the executor re-fetches by; it never re-searches by name.
type Hints struct {
	ItemID          int    `json:"item_id,omitempty"`
	IndirectItemID  int    `json:"indirect_item_id,omitempty"`
	EntityID        int    `json:"entity_id,omitempty"`
	Destination     string `json:"destination,omitempty"`
	Direction       string `json:"direction,omitempty"`
	Slot            string `json:"slot,omitempty"`
	ReplacesItemID  int    `json:"replaces_item_id,omitempty"`
	SpawnOnDemand   bool   `json:"spawn_on_demand,omitempty"`
	SpawnName       string `json:"spawn_name,omitempty"`
	Minutes         int    `json:"minutes,omitempty"`
	DC              int    `json:"dc,omitempty"`
	Attribute       string `json:"attribute,omitempty"`
	Topic           string `json:"topic,omitempty"`
	ExamineLocation bool   `json:"examine_location,omitempty"`
}

// ValidationResult is bound to exactly the action it validated and is never
// mutated after it is returned.
type ValidationResult struct {
	Action           Action   `json:"action"`
	Valid            bool     `json:"valid"`
	Reason           string   `json:"reason,omitempty"`
	Warnings         []string `json:"warnings,omitempty"`
	RiskTags         RiskTags `json:"risk_tags,omitempty"`
	ResolvedTarget   string   `json:"resolved_target,omitempty"`
	ResolvedIndirect string   `json:"resolved_indirect,omitempty"`
	Hints            Hints    `json:"hints"`
}

// Invalid builds a failed validation with a user-facing reason.
func Invalid(a Action, reason string) ValidationResult {
	return ValidationResult{Action: a, Valid: false, Reason: reason}
}

// ExecutionResult is produced once per executed action. Outcome is a factual
// narration seed, never flavor text.
type ExecutionResult struct {
	Action       Action   `json:"action"`
	Success      bool     `json:"success"`
	Outcome      string   `json:"outcome"`
	StateChanges []string `json:"state_changes,omitempty"`
	Metadata     Metadata `json:"metadata"`
}

// Failed builds an unsuccessful execution result.
func Failed(a Action, outcome string) ExecutionResult {
	return ExecutionResult{Action: a, Success: false, Outcome: outcome}
}

// Metadata holds typed facts about an execution. Only the sections relevant
// to the action's category are set; Extra is reserved for heterogeneous
// narration hints.
type Metadata struct {
	Movement *MovementFacts    `json:"movement,omitempty"`
	Attack   *AttackFacts      `json:"attack,omitempty"`
	Items    *ItemFacts        `json:"items,omitempty"`
	Need     *NeedFacts        `json:"need,omitempty"`
	Time     *TimeFacts        `json:"time,omitempty"`
	Check    *CheckFacts       `json:"check,omitempty"`
	Social   *SocialFacts      `json:"social,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

// MovementFacts describes a location change.
type MovementFacts struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// AttackFacts surfaces every number of an attack roll.
type AttackFacts struct {
	TargetID    int    `json:"target_id"`
	Target      string `json:"target"`
	Roll        int    `json:"roll"`
	AttackBonus int    `json:"attack_bonus"`
	Total       int    `json:"total"`
	TargetAC    int    `json:"target_ac"`
	Hit         bool   `json:"hit"`
	Critical    bool   `json:"critical"`
	Fumble      bool   `json:"fumble"`
	DamageDice  string `json:"damage_dice,omitempty"`
	DamageRolls []int  `json:"damage_rolls,omitempty"`
	Damage      int    `json:"damage"`
	PreviousHP  int    `json:"previous_hp"`
	NewHP       int    `json:"new_hp"`
	VitalStatus string `json:"vital_status"`
	Killed      bool   `json:"killed"`
}

// ItemFacts lists items that moved, appeared or disappeared.
type ItemFacts struct {
	Acquired []int  `json:"acquired,omitempty"`
	Removed  []int  `json:"removed,omitempty"`
	Spawned  []int  `json:"spawned,omitempty"`
	Revealed []int  `json:"revealed,omitempty"`
	Equipped int    `json:"equipped,omitempty"`
	Slot     string `json:"slot,omitempty"`
	// InventoryChanged signals downstream caches to refresh.
	InventoryChanged bool `json:"inventory_changed"`
}

// NeedFacts describes a satisfied need.
type NeedFacts struct {
	Need      string `json:"need"`
	Satisfied int    `json:"satisfied"`
	NewValue  int    `json:"new_value"`
	Healed    int    `json:"healed,omitempty"`
}

// TimeFacts describes time passing.
type TimeFacts struct {
	MinutesAdvanced int `json:"minutes_advanced"`
	Clock           int `json:"clock"`
}

// CheckFacts describes a d20 ability check.
type CheckFacts struct {
	Attribute string `json:"attribute"`
	Skill     string `json:"skill,omitempty"` // set when a trained skill replaced the ability modifier
	Roll      int    `json:"roll"`
	Modifier  int    `json:"modifier"`
	Total     int    `json:"total"`
	DC        int    `json:"dc"`
	Passed    bool   `json:"passed"`
}

// SocialFacts describes an attitude change.
type SocialFacts struct {
	EntityID    int    `json:"entity_id"`
	Entity      string `json:"entity"`
	Attitude    int    `json:"attitude"`
	Change      int    `json:"change"`
	Disposition string `json:"disposition"`
}
