package execute

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/actor"
	"github.com/jwebster45206/turn-authority/pkg/dice"
	"github.com/jwebster45206/turn-authority/pkg/validate"
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
		HP:    8,
		MaxHP: 12,
		AC:    12,
	})
	require.NoError(t, err)
	return pc
}

// testWorld builds a village square with a well to the north and a bandit
// hideout to the east.
func testWorld(t *testing.T) *world.Memory {
	t.Helper()
	m, err := world.NewMemory(world.Snapshot{
		Locations: []world.Location{
			{Key: "village_square", Name: "Village Square", Exits: map[string]string{"north": "old_well", "east": "hideout"}},
			{Key: "old_well", Name: "Old Well", Exits: map[string]string{"south": "village_square", "down": "well_bottom"}},
			{Key: "well_bottom", Name: "Bottom of the Well", Exits: map[string]string{"up": "old_well"}},
			{Key: "hideout", Name: "Bandit Hideout", Exits: map[string]string{"west": "village_square"}},
		},
		Items: []world.Item{
			{ID: 1, Key: "short_sword", Name: "Short Sword", Kind: world.ItemWeapon, Damage: "1d6", Weight: 3, Holder: world.WithActor("hero")},
			{ID: 2, Key: "bread", Name: "Bread", Kind: world.ItemFood, Nutrition: 30, Weight: 0.5, Holder: world.WithActor("hero")},
			{ID: 3, Key: "potion", Name: "Healing Potion", Kind: world.ItemPotion, Heal: 5, Weight: 0.5, Holder: world.WithActor("hero")},
			{ID: 4, Key: "chest", Name: "Iron Chest", Kind: world.ItemContainer, Fixed: true, Openable: true, Locked: true, LockDC: 14, Holder: world.AtLocation("village_square")},
			{ID: 5, Key: "chest_key", Name: "Iron Key", Kind: world.ItemKey, Unlocks: "chest", Holder: world.WithActor("hero")},
			{ID: 6, Key: "coin", Name: "Silver Coin", Hidden: true, Holder: world.AtLocation("village_square")},
			{ID: 7, Key: "locket", Name: "Locket", Holder: world.WithEntity("merchant")},
			{ID: 8, Key: "lantern", Name: "Lantern", Kind: world.ItemTool, Weight: 2, Holder: world.AtLocation("village_square")},
			{ID: 9, Key: "buckler", Name: "Buckler", Kind: world.ItemShield, Weight: 3, Holder: world.WithActor("hero")},
		},
		Entities: []world.Entity{
			{ID: 20, Key: "merchant", Name: "Merchant", Kind: world.EntityNPC, Location: "village_square", AC: 10, MaxHP: 8, Attitude: 30, Topics: map[string]string{"well": "It's older than the village."}},
			{ID: 21, Key: "bandit", Name: "Bandit", Kind: world.EntityNPC, Location: "hideout", AC: 10, MaxHP: 10, Hostile: true, Attitude: -60},
		},
		Mentions: map[string][]string{"village_square": {"rope"}},
	})
	require.NoError(t, err)
	require.NoError(t, m.AddActor(world.ActorState{
		ID:        "hero",
		Location:  "village_square",
		HP:        8,
		MaxHP:     12,
		Needs:     map[string]int{world.NeedHunger: 50, world.NeedThirst: 40, world.NeedFatigue: 60},
		Equipment: map[string]int{world.SlotMainHand: 1},
	}))
	return m
}

// harness validates and executes against one world with one dice script.
type harness struct {
	t     *testing.T
	world *world.Memory
	pc    *actor.PC
	v     *validate.Validator
	e     *Executor
}

func newHarness(t *testing.T, roller dice.Roller) *harness {
	t.Helper()
	w := testWorld(t)
	if roller == nil {
		roller = dice.NewScripted(10)
	}
	return &harness{
		t:     t,
		world: w,
		pc:    testPC(t),
		v:     validate.New(w, quietLogger()),
		e:     New(Deps{World: w, Dice: roller}, quietLogger()),
	}
}

func (h *harness) run(a action.Action) action.ExecutionResult {
	h.t.Helper()
	vr := h.v.Validate(a, h.pc, "")
	require.True(h.t, vr.Valid, "validation failed: %s", vr.Reason)
	return h.e.ExecuteAction(context.Background(), vr, h.pc, Context{})
}

func (h *harness) actor() world.ActorState {
	h.t.Helper()
	a, err := h.world.Actor("hero")
	require.NoError(h.t, err)
	return a
}

func (h *harness) item(id int) world.Item {
	h.t.Helper()
	it, err := h.world.Item(id)
	require.NoError(h.t, err)
	return it
}

func (h *harness) entity(id int) world.Entity {
	h.t.Helper()
	e, err := h.world.Entity(id)
	require.NoError(h.t, err)
	return e
}

// mockItemFactory records materialize calls.
type mockItemFactory struct {
	MaterializeFunc func(ctx context.Context, name string, loc world.Location) (world.Item, error)
	Names           []string
}

func (m *mockItemFactory) Materialize(ctx context.Context, name string, loc world.Location) (world.Item, error) {
	m.Names = append(m.Names, name)
	if m.MaterializeFunc != nil {
		return m.MaterializeFunc(ctx, name, loc)
	}
	return DefaultItemFactory{}.Materialize(ctx, name, loc)
}

// panickyStore blows up on movement.
type panickyStore struct {
	*world.Memory
}

func (panickyStore) MoveActor(string, string) (string, error) {
	panic("store exploded")
}

// tiredStore cannot ease fatigue.
type tiredStore struct {
	*world.Memory
}

func (tiredStore) SatisfyNeed(string, string, int) (int, error) {
	return 0, errors.New("needs table is read-only")
}
