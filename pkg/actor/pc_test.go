package actor

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jwebster45206/d20"
)

func testSpec() *PCSpec {
	return &PCSpec{
		ID:          "fighter",
		Name:        "Test Fighter",
		Class:       "Fighter",
		Level:       1,
		Race:        "Human",
		Pronouns:    "they/them",
		Description: "A test character",
		Stats: Stats5e{
			Strength:     14,
			Dexterity:    13,
			Constitution: 14,
			Intelligence: 10,
			Wisdom:       12,
			Charisma:     8,
		},
		HP:    12,
		MaxHP: 12,
		AC:    16,
		CombatModifiers: map[string]int{
			"attack": 1,
		},
		Attributes: map[string]int{
			"athletics": 5,
		},
	}
}

func TestStats5e_ToAttributes(t *testing.T) {
	stats := Stats5e{
		Strength:     16,
		Dexterity:    14,
		Constitution: 15,
		Intelligence: 10,
		Wisdom:       12,
		Charisma:     8,
	}

	attrs := stats.ToAttributes()

	tests := []struct {
		key      string
		expected int
	}{
		{"strength", 16},
		{"dexterity", 14},
		{"constitution", 15},
		{"intelligence", 10},
		{"wisdom", 12},
		{"charisma", 8},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := attrs[tt.key]; got != tt.expected {
				t.Errorf("ToAttributes()[%q] = %d, want %d", tt.key, got, tt.expected)
			}
		})
	}
}

func TestNewPCFromSpec(t *testing.T) {
	pc, err := NewPCFromSpec(testSpec())
	if err != nil {
		t.Fatalf("NewPCFromSpec() error = %v", err)
	}

	if pc.Actor == nil {
		t.Fatal("PC.Actor is nil, want non-nil")
	}
	if pc.MaxHP() != 12 {
		t.Errorf("MaxHP() = %d, want 12", pc.MaxHP())
	}
	if pc.AC() != 16 {
		t.Errorf("AC() = %d, want 16", pc.AC())
	}
	if pc.Score("strength") != 14 {
		t.Errorf("Score(strength) = %d, want 14", pc.Score("strength"))
	}
	if pc.Score("athletics") != 5 {
		t.Errorf("Score(athletics) = %d, want 5", pc.Score("athletics"))
	}
	if pc.Score("luck") != 10 {
		t.Errorf("Score(luck) = %d, want default 10", pc.Score("luck"))
	}
}

func TestNewPCFromSpec_Errors(t *testing.T) {
	if _, err := NewPCFromSpec(nil); err == nil {
		t.Error("expected error for nil spec")
	}
	if _, err := NewPCFromSpec(&PCSpec{MaxHP: 5, AC: 10}); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestPC_CombatNumbers(t *testing.T) {
	pc, err := NewPCFromSpec(testSpec())
	if err != nil {
		t.Fatalf("NewPCFromSpec() error = %v", err)
	}

	if got := pc.Modifier("strength"); got != 2 {
		t.Errorf("Modifier(strength) = %d, want 2", got)
	}
	if got := pc.CombatModifier("attack"); got != 1 {
		t.Errorf("CombatModifier(attack) = %d, want 1", got)
	}
	// strength +2, attack modifier +1, proficiency +2
	if got := pc.AttackBonus(true); got != 5 {
		t.Errorf("AttackBonus(true) = %d, want 5", got)
	}
	if got := pc.AttackBonus(false); got != 3 {
		t.Errorf("AttackBonus(false) = %d, want 3", got)
	}
	if got := pc.CarryCapacity(); got != 210 {
		t.Errorf("CarryCapacity() = %v, want 210", got)
	}
}

func TestPC_JSONRoundTripRebuildsActor(t *testing.T) {
	pc, err := NewPCFromSpec(testSpec())
	if err != nil {
		t.Fatalf("NewPCFromSpec() error = %v", err)
	}

	data, err := json.Marshal(pc)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}

	var restored PC
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if restored.Actor == nil {
		t.Fatal("restored Actor is nil")
	}
	if restored.ID() != "fighter" {
		t.Errorf("ID() = %q, want fighter", restored.ID())
	}
	if restored.Score("athletics") != 5 {
		t.Errorf("Score(athletics) = %d, want 5", restored.Score("athletics"))
	}
}

func TestPC_Summary(t *testing.T) {
	pc, err := NewPCFromSpec(testSpec())
	if err != nil {
		t.Fatalf("NewPCFromSpec() error = %v", err)
	}
	got := pc.Summary()
	for _, want := range []string{"Test Fighter", "(they/them)", "Level 1 Human Fighter", "A test character"} {
		if !strings.Contains(got, want) {
			t.Errorf("Summary() = %q, missing %q", got, want)
		}
	}

	var nilPC *PC
	if nilPC.Summary() != "" {
		t.Error("nil PC should summarize to empty string")
	}
}

func TestPC_AttackRoll(t *testing.T) {
	pc, err := NewPCFromSpec(testSpec())
	if err != nil {
		t.Fatalf("NewPCFromSpec() error = %v", err)
	}

	for _, armed := range []bool{true, false} {
		b, err := pc.AttackRoll(d20.NewRoller(3), armed)
		if err != nil {
			t.Fatalf("AttackRoll() error = %v", err)
		}
		out, err := b.Roll()
		if err != nil {
			t.Fatalf("Roll() error = %v", err)
		}
		if got, want := out.Value-out.DiceRolls[0], pc.AttackBonus(armed); got != want {
			t.Errorf("armed=%v: roll modifier = %d, want AttackBonus %d", armed, got, want)
		}
	}
}

func TestPC_SkillCheck(t *testing.T) {
	pc, err := NewPCFromSpec(testSpec())
	if err != nil {
		t.Fatalf("NewPCFromSpec() error = %v", err)
	}

	tests := []struct {
		name    string
		skill   string
		ability string
		want    int
	}{
		{name: "trained skill", skill: "athletics", ability: "strength", want: 5},
		{name: "untrained falls back to ability", skill: "stealth", ability: "dexterity", want: 1},
		{name: "no skill", skill: "", ability: "wisdom", want: 1},
		{name: "flat d20", skill: "", ability: "", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := pc.SkillCheck(d20.NewRoller(5), tt.skill, tt.ability)
			if err != nil {
				t.Fatalf("SkillCheck() error = %v", err)
			}
			out, err := b.Roll()
			if err != nil {
				t.Fatalf("Roll() error = %v", err)
			}
			if got := out.Value - out.DiceRolls[0]; got != tt.want {
				t.Errorf("modifier = %d, want %d", got, tt.want)
			}
		})
	}
}
