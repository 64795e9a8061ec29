package actor

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"

	"github.com/jwebster45206/d20"
	"github.com/jwebster45206/turn-authority/pkg/dice"
)

// Stats5e represents the six core ability scores
type Stats5e struct {
	Strength     int `json:"strength" yaml:"strength"`
	Dexterity    int `json:"dexterity" yaml:"dexterity"`
	Constitution int `json:"constitution" yaml:"constitution"`
	Intelligence int `json:"intelligence" yaml:"intelligence"`
	Wisdom       int `json:"wisdom" yaml:"wisdom"`
	Charisma     int `json:"charisma" yaml:"charisma"`
}

// ToAttributes converts Stats5e to a map for d20.Actor compatibility
func (s *Stats5e) ToAttributes() map[string]int {
	return map[string]int{
		"strength":     s.Strength,
		"dexterity":    s.Dexterity,
		"constitution": s.Constitution,
		"intelligence": s.Intelligence,
		"wisdom":       s.Wisdom,
		"charisma":     s.Charisma,
	}
}

// CarryPerStrength is the weight a character can carry per point of strength.
const CarryPerStrength = 15

// DefaultProficiency is the proficiency bonus used when the spec has none.
const DefaultProficiency = 2

// PCSpec is the serializable specification for a Player Character
type PCSpec struct {
	ID              string         `json:"id" yaml:"id"`
	Name            string         `json:"name,omitempty" yaml:"name,omitempty"`
	Class           string         `json:"class,omitempty" yaml:"class,omitempty"`
	Level           int            `json:"level,omitempty" yaml:"level,omitempty"`
	Race            string         `json:"race,omitempty" yaml:"race,omitempty"`
	Pronouns        string         `json:"pronouns,omitempty" yaml:"pronouns,omitempty"`
	Description     string         `json:"description,omitempty" yaml:"description,omitempty"`
	Stats           Stats5e        `json:"stats,omitempty" yaml:"stats,omitempty"`
	HP              int            `json:"hp,omitempty" yaml:"hp,omitempty"`         // Current HP at load time
	MaxHP           int            `json:"max_hp,omitempty" yaml:"max_hp,omitempty"` // Maximum HP
	AC              int            `json:"ac,omitempty" yaml:"ac,omitempty"`
	Proficiency     int            `json:"proficiency,omitempty" yaml:"proficiency,omitempty"`
	CombatModifiers map[string]int `json:"combat_modifiers,omitempty" yaml:"combat_modifiers,omitempty"`
	Attributes      map[string]int `json:"attributes,omitempty" yaml:"attributes,omitempty"` // Skills, proficiencies, etc.
}

// PC is the runtime representation of a Player Character. Mutable turn state
// (location, current HP, needs, statuses) lives in the world store; the PC
// carries identity and the d20 stat block.
type PC struct {
	Spec  *PCSpec
	Actor *d20.Actor // Built at runtime from PCSpec
}

// NewPCFromSpec creates a PC from a PCSpec
func NewPCFromSpec(spec *PCSpec) (*PC, error) {
	if spec == nil {
		return nil, fmt.Errorf("spec cannot be nil")
	}
	if spec.ID == "" {
		return nil, fmt.Errorf("spec id cannot be empty")
	}

	a, err := buildActor(spec)
	if err != nil {
		return nil, err
	}
	return &PC{Spec: spec, Actor: a}, nil
}

func buildActor(spec *PCSpec) (*d20.Actor, error) {
	allAttrs := spec.Stats.ToAttributes()
	maps.Copy(allAttrs, spec.Attributes)

	a, err := d20.NewActor(spec.ID).
		WithHP(spec.MaxHP).
		WithAC(spec.AC).
		WithAttributes(allAttrs).
		WithCombatModifiers(spec.CombatModifiers).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build actor: %w", err)
	}

	// Set current HP if different from max
	if spec.HP != spec.MaxHP && spec.HP > 0 {
		if err := a.SetHP(spec.HP); err != nil {
			return nil, fmt.Errorf("failed to set HP: %w", err)
		}
	}
	return a, nil
}

// ID returns the character id.
func (pc *PC) ID() string {
	return pc.Spec.ID
}

// Name returns the display name, falling back to the id.
func (pc *PC) Name() string {
	if pc.Spec.Name != "" {
		return pc.Spec.Name
	}
	return pc.Spec.ID
}

// Score returns an ability score or skill value. Missing scores read as 10.
func (pc *PC) Score(attr string) int {
	if pc.Actor != nil {
		if v, ok := pc.Actor.Attribute(strings.ToLower(attr)); ok {
			return v
		}
	}
	return 10
}

// Modifier returns the tabletop modifier for an ability score.
func (pc *PC) Modifier(attr string) int {
	return dice.Modifier(pc.Score(attr))
}

// AC returns armor class.
func (pc *PC) AC() int {
	if pc.Actor == nil {
		return pc.Spec.AC
	}
	return pc.Actor.AC()
}

// MaxHP returns maximum hit points.
func (pc *PC) MaxHP() int {
	if pc.Actor == nil {
		return pc.Spec.MaxHP
	}
	return pc.Actor.MaxHP()
}

// StartingHP returns the hit points the character entered the session with.
func (pc *PC) StartingHP() int {
	if pc.Actor == nil {
		return pc.Spec.HP
	}
	return pc.Actor.HP()
}

// Proficiency returns the proficiency bonus.
func (pc *PC) Proficiency() int {
	if pc.Spec.Proficiency > 0 {
		return pc.Spec.Proficiency
	}
	return DefaultProficiency
}

// CombatModifier sums d20 combat modifiers recorded under reason.
func (pc *PC) CombatModifier(reason string) int {
	if pc.Actor == nil {
		return pc.Spec.CombatModifiers[reason]
	}
	total := 0
	for _, mod := range pc.Actor.GetCombatModifiers() {
		if mod.Reason == reason {
			total += mod.Value
		}
	}
	return total
}

// AttackBonus is the flat bonus AttackRoll adds to the d20: the strength
// modifier, every d20 combat modifier, and proficiency when armed.
func (pc *PC) AttackBonus(armed bool) int {
	bonus := pc.Modifier("strength")
	if pc.Actor != nil {
		for _, mod := range pc.Actor.GetCombatModifiers() {
			bonus += mod.Value
		}
	} else {
		for _, v := range pc.Spec.CombatModifiers {
			bonus += v
		}
	}
	if armed {
		bonus += pc.Proficiency()
	}
	return bonus
}

// AttackRoll starts an attack roll on r with the actor's combat modifiers,
// the strength modifier, and proficiency when armed.
func (pc *PC) AttackRoll(r *d20.Roller, armed bool) (*d20.RollBuilder, error) {
	if pc.Actor == nil {
		return nil, fmt.Errorf("pc %s has no actor", pc.ID())
	}
	b := pc.Actor.AttackRoll(r).WithModifier("strength", pc.Modifier("strength"))
	if armed {
		b = b.WithModifier("proficiency", pc.Proficiency())
	}
	return b, nil
}

// SkillCheck starts a d20 check on r. A trained skill recorded in the
// actor's attributes (for example "athletics": 5) is used as is; otherwise
// the check falls back to the ability modifier.
func (pc *PC) SkillCheck(r *d20.Roller, skill, ability string) (*d20.RollBuilder, error) {
	if pc.Actor != nil && skill != "" && pc.Actor.HasAttribute(skill) {
		return pc.Actor.SkillCheck(skill, r)
	}
	if ability == "" {
		return r.Dice(1, 20), nil
	}
	return r.Dice(1, 20).WithModifier(ability, pc.Modifier(ability)), nil
}

// CarryCapacity is the maximum total weight the character can hold.
func (pc *PC) CarryCapacity() float64 {
	return float64(pc.Score("strength") * CarryPerStrength)
}

// MarshalJSON converts PC back to PCSpec format, reading stats from the Actor
func (pc *PC) MarshalJSON() ([]byte, error) {
	if pc == nil {
		return []byte("null"), nil
	}
	if pc.Actor == nil {
		return json.Marshal(pc.Spec)
	}

	spec := *pc.Spec
	spec.HP = pc.Actor.HP()
	spec.MaxHP = pc.Actor.MaxHP()
	spec.AC = pc.Actor.AC()
	spec.Stats = Stats5e{
		Strength:     pc.Score("strength"),
		Dexterity:    pc.Score("dexterity"),
		Constitution: pc.Score("constitution"),
		Intelligence: pc.Score("intelligence"),
		Wisdom:       pc.Score("wisdom"),
		Charisma:     pc.Score("charisma"),
	}
	return json.Marshal(spec)
}

// UnmarshalJSON reconstructs a PC from JSON and rebuilds its Actor
func (pc *PC) UnmarshalJSON(data []byte) error {
	var spec PCSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return fmt.Errorf("failed to unmarshal PC spec: %w", err)
	}
	a, err := buildActor(&spec)
	if err != nil {
		return fmt.Errorf("failed to rebuild actor: %w", err)
	}
	pc.Spec = &spec
	pc.Actor = a
	return nil
}

// Summary renders a one-line description of the character for prompts.
//
// Example output:
// Sir Galahad (he/him), Level 5 Human Paladin. A brave knight.
func (pc *PC) Summary() string {
	if pc == nil || pc.Spec == nil {
		return ""
	}
	sb := strings.Builder{}
	sb.WriteString(pc.Name())
	if pc.Spec.Pronouns != "" {
		fmt.Fprintf(&sb, " (%s)", pc.Spec.Pronouns)
	}
	summaryParts := []string{}
	if pc.Spec.Level > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("Level %d", pc.Spec.Level))
	}
	if pc.Spec.Race != "" {
		summaryParts = append(summaryParts, pc.Spec.Race)
	}
	if pc.Spec.Class != "" {
		summaryParts = append(summaryParts, pc.Spec.Class)
	}
	if len(summaryParts) > 0 {
		sb.WriteString(", " + strings.Join(summaryParts, " "))
	}
	if pc.Spec.Description != "" {
		sb.WriteString(". " + pc.Spec.Description)
	}
	return sb.String()
}
