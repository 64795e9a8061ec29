package vitality

import "testing"

func TestOf(t *testing.T) {
	tests := []struct {
		name   string
		hp     int
		maxHP  int
		mortal bool
		want   Status
	}{
		{"full", 10, 10, true, Healthy},
		{"half", 5, 10, true, Wounded},
		{"quarter", 2, 10, true, Critical},
		{"zero creature", 0, 10, true, Dead},
		{"zero player", 0, 10, false, Dying},
		{"negative creature", -3, 10, true, Dead},
		{"no max", 3, 0, true, Healthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Of(tt.hp, tt.maxHP, tt.mortal); got != tt.want {
				t.Errorf("Of(%d, %d, %v) = %s, want %s", tt.hp, tt.maxHP, tt.mortal, got, tt.want)
			}
		})
	}
}

func TestStatus_Alive(t *testing.T) {
	if !Wounded.Alive() || !Critical.Alive() {
		t.Error("wounded and critical should be alive")
	}
	if Dead.Alive() || Dying.Alive() {
		t.Error("dead and dying should not be alive")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-2, 10) != 0 {
		t.Error("expected clamp to 0")
	}
	if Clamp(12, 10) != 10 {
		t.Error("expected clamp to max")
	}
	if Clamp(7, 10) != 7 {
		t.Error("expected unchanged")
	}
}
