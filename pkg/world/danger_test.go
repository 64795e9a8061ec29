package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyDanger(t *testing.T) {
	tests := []struct {
		name string
		loc  Location
		want DangerLevel
	}{
		{"structured wins", Location{Key: "home", Danger: DangerHostile}, DangerHostile},
		{"temple is safe", Location{Key: "sun_temple"}, DangerSafe},
		{"name is consulted", Location{Key: "loc_7", Name: "Goblin Cave"}, DangerDangerous},
		{"crypt", Location{Key: "old_crypt"}, DangerDangerous},
		{"forest road", Location{Key: "forest_road"}, DangerRisky},
		{"default", Location{Key: "village_square"}, DangerNeutral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDanger(tt.loc))
		})
	}
}
