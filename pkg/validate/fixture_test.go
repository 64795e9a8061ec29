package validate

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/turn-authority/pkg/actor"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPC(t *testing.T) *actor.PC {
	t.Helper()
	pc, err := actor.NewPCFromSpec(&actor.PCSpec{
		ID:    "hero",
		Name:  "Hero",
		Stats: actor.Stats5e{Strength: 14, Dexterity: 12, Constitution: 12, Intelligence: 10, Wisdom: 10, Charisma: 10},
		HP:    12,
		MaxHP: 12,
		AC:    12,
	})
	require.NoError(t, err)
	return pc
}

// testWorld builds a small village: a square with a well to the north, a
// cave to the east and a barred gate to the west.
func testWorld(t *testing.T) *world.Memory {
	t.Helper()
	m, err := world.NewMemory(world.Snapshot{
		Locations: []world.Location{
			{
				Key:          "village_square",
				Name:         "Village Square",
				Exits:        map[string]string{"north": "old_well", "east": "dark_cave"},
				BlockedExits: map[string]string{"west": "the gate is barred"},
			},
			{Key: "old_well", Name: "Old Well", Exits: map[string]string{"south": "village_square", "down": "well_bottom"}, Properties: []string{"mysterious"}},
			{Key: "well_bottom", Name: "Bottom of the Well", Exits: map[string]string{"up": "old_well"}},
			{Key: "dark_cave", Name: "Dark Cave", Exits: map[string]string{"west": "village_square"}},
		},
		Items: []world.Item{
			{ID: 1, Key: "bucket", Name: "Bucket", Kind: world.ItemTool, Weight: 2, Holder: world.AtLocation("old_well")},
			{ID: 2, Key: "short_sword", Name: "Short Sword", Kind: world.ItemWeapon, Damage: "1d6", Weight: 3, Holder: world.AtLocation("village_square")},
			{ID: 3, Key: "anvil", Name: "Anvil", Weight: 150, Fixed: true, Holder: world.AtLocation("village_square")},
			{ID: 4, Key: "millstone", Name: "Millstone", Weight: 250, Holder: world.AtLocation("village_square")},
			{ID: 5, Key: "gem", Name: "Glowing Gem", Weight: 0.1, Properties: []string{"magical", "valuable"}, Holder: world.AtLocation("village_square")},
			{ID: 6, Key: "chest", Name: "Iron Chest", Kind: world.ItemContainer, Fixed: true, Openable: true, Locked: true, LockDC: 14, Holder: world.AtLocation("village_square")},
			{ID: 7, Key: "coin", Name: "Silver Coin", Hidden: true, Holder: world.AtLocation("village_square")},
			{ID: 8, Key: "bread", Name: "Bread", Kind: world.ItemFood, Nutrition: 30, Weight: 0.5, Holder: world.WithActor("hero")},
			{ID: 9, Key: "potion", Name: "Healing Potion", Kind: world.ItemPotion, Heal: 5, Weight: 0.5, Holder: world.WithActor("hero")},
			{ID: 10, Key: "locket", Name: "Locket", Holder: world.WithEntity("merchant")},
			{ID: 11, Key: "dagger", Name: "Dagger", Kind: world.ItemWeapon, Damage: "1d4", Weight: 1, Holder: world.WithActor("hero")},
			{ID: 12, Key: "chest_key", Name: "Iron Key", Kind: world.ItemKey, Unlocks: "chest", Holder: world.WithActor("hero")},
			{ID: 13, Key: "cellar_door", Name: "Cellar Door", Fixed: true, Openable: true, Holder: world.AtLocation("village_square")},
		},
		Entities: []world.Entity{
			{ID: 20, Key: "merchant", Name: "Merchant", Kind: world.EntityNPC, Location: "village_square", AC: 10, MaxHP: 8, Attitude: 10, Topics: map[string]string{"well": "It's older than the village."}},
			{ID: 21, Key: "wolf", Name: "Grey Wolf", Kind: world.EntityCreature, Location: "dark_cave", AC: 11, MaxHP: 7, Hostile: true},
			{ID: 22, Key: "scarecrow", Name: "Scarecrow", Kind: world.EntityCreature, Location: "village_square", AC: 5, MaxHP: 1, HP: -1},
		},
		Mentions: map[string][]string{"village_square": {"rope"}},
	})
	require.NoError(t, err)
	require.NoError(t, m.AddActor(world.ActorState{
		ID:        "hero",
		Location:  "village_square",
		HP:        12,
		MaxHP:     12,
		Equipment: map[string]int{world.SlotMainHand: 11},
	}))
	return m
}
