package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntity(t *testing.T) {
	t.Run("nil inputs", func(t *testing.T) {
		assert.Nil(t, NewEntity(nil, &Entity{}))
		assert.Nil(t, NewEntity(&DefaultHostile, nil))
	})

	t.Run("template defaults", func(t *testing.T) {
		e := NewEntity(&DefaultHostile, &Entity{Key: "bandit_1", Location: "forest_road"})
		require.NotNil(t, e)
		assert.Equal(t, "bandit_1", e.Key)
		assert.Equal(t, "ambusher", e.TemplateID)
		assert.Equal(t, DefaultHostile.MaxHP, e.HP)
		assert.True(t, e.Hostile)
		assert.True(t, e.Alive())
	})

	t.Run("overrides", func(t *testing.T) {
		e := NewEntity(&DefaultHostile, &Entity{
			Key:        "bandit_chief",
			Location:   "forest_road",
			Name:       "Bandit Chief",
			AC:         15,
			MaxHP:      20,
			Attributes: map[string]int{"strength": 16},
		})
		assert.Equal(t, "Bandit Chief", e.Name)
		assert.Equal(t, 15, e.AC)
		assert.Equal(t, 20, e.HP)
		assert.Equal(t, 16, e.Attributes["strength"])
		assert.Equal(t, 12, e.Attributes["dexterity"])
	})

	t.Run("template not aliased", func(t *testing.T) {
		e := NewEntity(&DefaultHostile, &Entity{Key: "x", Attributes: map[string]int{"strength": 3}})
		e.Attributes["dexterity"] = 1
		assert.Equal(t, 12, DefaultHostile.Attributes["strength"])
		assert.Equal(t, 12, DefaultHostile.Attributes["dexterity"])
	})
}

func TestDisposition(t *testing.T) {
	assert.Equal(t, "hostile", Disposition(-60))
	assert.Equal(t, "unfriendly", Disposition(-10))
	assert.Equal(t, "neutral", Disposition(0))
	assert.Equal(t, "friendly", Disposition(30))
	assert.Equal(t, "devoted", Disposition(80))
}
