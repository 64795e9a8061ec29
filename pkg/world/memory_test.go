package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/turn-authority/pkg/vitality"
)

func newTestWorld(t *testing.T) *Memory {
	t.Helper()
	m, err := NewMemory(Snapshot{
		Locations: []Location{
			{Key: "village_square", Name: "Village Square", Exits: map[string]string{"north": "old_well"}},
			{Key: "old_well", Name: "Old Well", Exits: map[string]string{"south": "village_square"}},
		},
		Items: []Item{
			{Key: "bucket", Name: "Bucket", Kind: ItemTool, Weight: 2, Holder: AtLocation("old_well")},
			{Key: "sword", Name: "Short Sword", Kind: ItemWeapon, Weight: 3, Damage: "1d6", Holder: AtLocation("village_square")},
		},
		Entities: []Entity{
			{Key: "guard", Name: "Guard", Kind: EntityNPC, Location: "village_square", AC: 10, MaxHP: 10},
		},
		Mentions: map[string][]string{"old_well": {"Rope"}},
	})
	require.NoError(t, err)
	require.NoError(t, m.AddActor(ActorState{ID: "pc", Location: "village_square", HP: 12, MaxHP: 12}))
	return m
}

func TestNewMemory_AssignsIDs(t *testing.T) {
	m := newTestWorld(t)

	items := m.ItemsAt("old_well")
	require.Len(t, items, 1)
	assert.NotZero(t, items[0].ID)

	guards := m.EntitiesAt("village_square")
	require.Len(t, guards, 1)
	assert.Equal(t, 10, guards[0].HP, "hp defaults to max")
	assert.NotEqual(t, items[0].ID, guards[0].ID)
}

func TestNewMemory_Errors(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
	}{
		{"location without key", Snapshot{Locations: []Location{{Name: "Nowhere"}}}},
		{"duplicate location", Snapshot{Locations: []Location{{Key: "a"}, {Key: "a"}}}},
		{"duplicate item id", Snapshot{Items: []Item{{ID: 3, Key: "a"}, {ID: 3, Key: "b"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMemory(tt.snap)
			assert.Error(t, err)
		})
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	m := newTestWorld(t)

	loc, err := m.Location("village_square")
	require.NoError(t, err)
	loc.Exits["east"] = "nowhere"

	again, err := m.Location("village_square")
	require.NoError(t, err)
	assert.NotContains(t, again.Exits, "east")
}

func TestMemory_FindLocation(t *testing.T) {
	m := newTestWorld(t)

	loc, ok := m.FindLocation("old well")
	require.True(t, ok)
	assert.Equal(t, "old_well", loc.Key)

	_, ok = m.FindLocation("castle")
	assert.False(t, ok)
}

func TestMemory_MoveActor(t *testing.T) {
	m := newTestWorld(t)

	from, err := m.MoveActor("pc", "old_well")
	require.NoError(t, err)
	assert.Equal(t, "village_square", from)

	a, err := m.Actor("pc")
	require.NoError(t, err)
	assert.Equal(t, "old_well", a.Location)
	assert.Equal(t, "village_square", a.PreviousLocation)
	assert.True(t, a.HasVisited("old_well"))

	_, err = m.MoveActor("pc", "castle")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.MoveActor("ghost", "old_well")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_TransferAndEquip(t *testing.T) {
	m := newTestWorld(t)
	sword := m.ItemsAt("village_square")[0]

	require.NoError(t, m.TransferItem(sword.ID, WithActor("pc")))
	require.NoError(t, m.Equip("pc", SlotMainHand, sword.ID))

	a, _ := m.Actor("pc")
	assert.Equal(t, sword.ID, a.EquippedIn(SlotMainHand))

	// dropping an equipped item clears the slot
	require.NoError(t, m.TransferItem(sword.ID, AtLocation("village_square")))
	a, _ = m.Actor("pc")
	assert.Zero(t, a.EquippedIn(SlotMainHand))

	assert.Error(t, m.Equip("pc", SlotMainHand, sword.ID), "not carried")
	assert.ErrorIs(t, m.TransferItem(sword.ID, WithEntity("dragon")), ErrNotFound)
}

func TestMemory_SpawnAndForget(t *testing.T) {
	m := newTestWorld(t)
	assert.True(t, m.Mentioned("old_well", "rope"))

	rope, err := m.SpawnItem(Item{Name: "Rope", Kind: ItemTool}, AtLocation("old_well"))
	require.NoError(t, err)
	assert.Equal(t, "rope", rope.Key)
	m.Forget("old_well", "Rope")

	assert.False(t, m.Mentioned("old_well", "rope"))
	assert.Len(t, m.ItemsAt("old_well"), 2)
}

func TestMemory_SpawnEntityUniqueKey(t *testing.T) {
	m := newTestWorld(t)

	e, err := m.SpawnEntity(Entity{Key: "guard", Name: "Guard", Location: "old_well", MaxHP: 5})
	require.NoError(t, err)
	assert.Equal(t, "guard_2", e.Key)
	assert.Equal(t, 5, e.HP)

	_, err = m.SpawnEntity(Entity{Key: "bat", Location: "moon"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Vitality(t *testing.T) {
	m := newTestWorld(t)
	guard := m.EntitiesAt("village_square")[0]

	e, status, err := m.DamageEntity(guard.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, e.HP)
	assert.Equal(t, vitality.Wounded, status)

	e, status, err = m.DamageEntity(guard.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 0, e.HP)
	assert.Equal(t, vitality.Dead, status)

	a, status, err := m.DamageActor("pc", 20)
	require.NoError(t, err)
	assert.Equal(t, 0, a.HP)
	assert.Equal(t, vitality.Dying, status, "player characters drop to dying, not dead")

	a, err = m.HealActor("pc", 100)
	require.NoError(t, err)
	assert.Equal(t, 12, a.HP)
}

func TestMemory_DeadStayDeadAcrossReload(t *testing.T) {
	m := newTestWorld(t)
	guard := m.EntitiesAt("village_square")[0]
	_, status, err := m.DamageEntity(guard.ID, 50)
	require.NoError(t, err)
	require.Equal(t, vitality.Dead, status)

	reloaded, err := NewMemory(m.Snapshot())
	require.NoError(t, err)
	e, err := reloaded.Entity(guard.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, e.HP)
	assert.Equal(t, vitality.Dead, e.Status())

	require.NoError(t, m.Restore(m.Snapshot()))
	e, err = m.Entity(guard.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, e.HP)
}

func TestNewMemory_AuthoredEntitiesStartHealthy(t *testing.T) {
	m := newTestWorld(t)
	assert.Equal(t, 10, m.EntitiesAt("village_square")[0].HP)
}

func TestMemory_NeedsAndStatuses(t *testing.T) {
	m := newTestWorld(t)

	v, err := m.IncreaseNeed("pc", NeedHunger, 150)
	require.NoError(t, err)
	assert.Equal(t, MaxNeed, v)

	v, err = m.SatisfyNeed("pc", NeedHunger, 30)
	require.NoError(t, err)
	assert.Equal(t, 70, v)

	require.NoError(t, m.AddStatus("pc", "poisoned"))
	require.NoError(t, m.AddStatus("pc", "poisoned"))
	a, _ := m.Actor("pc")
	assert.Equal(t, []string{"poisoned"}, a.Statuses)

	require.NoError(t, m.RemoveStatus("pc", "poisoned"))
	a, _ = m.Actor("pc")
	assert.Empty(t, a.Statuses)
}

func TestMemory_AdjustAttitudeClamps(t *testing.T) {
	m := newTestWorld(t)
	guard := m.EntitiesAt("village_square")[0]

	e, err := m.AdjustAttitude(guard.ID, 250)
	require.NoError(t, err)
	assert.Equal(t, 100, e.Attitude)
	assert.Equal(t, "devoted", Disposition(e.Attitude))
}

func TestMemory_Transactions(t *testing.T) {
	m := newTestWorld(t)

	assert.ErrorIs(t, m.Commit(), ErrNoTransaction)
	assert.ErrorIs(t, m.Rollback(), ErrNoTransaction)

	require.NoError(t, m.Begin())
	assert.ErrorIs(t, m.Begin(), ErrTransactionActive)

	_, err := m.MoveActor("pc", "old_well")
	require.NoError(t, err)
	m.AdvanceTime(30)

	// flushed writes are visible before commit
	a, _ := m.Actor("pc")
	assert.Equal(t, "old_well", a.Location)
	assert.Equal(t, 30, m.Clock())

	require.NoError(t, m.Rollback())
	a, _ = m.Actor("pc")
	assert.Equal(t, "village_square", a.Location)
	assert.Zero(t, m.Clock())

	require.NoError(t, m.Begin())
	_, err = m.MoveActor("pc", "old_well")
	require.NoError(t, err)
	require.NoError(t, m.Commit())
	a, _ = m.Actor("pc")
	assert.Equal(t, "old_well", a.Location)
}

func TestMemory_SnapshotRestore(t *testing.T) {
	m := newTestWorld(t)
	_, err := m.MoveActor("pc", "old_well")
	require.NoError(t, err)

	snap := m.Snapshot()
	require.Len(t, snap.Actors, 1)
	assert.Equal(t, "old_well", snap.Actors[0].Location)

	_, err = m.MoveActor("pc", "village_square")
	require.NoError(t, err)
	require.NoError(t, m.Restore(snap))

	a, _ := m.Actor("pc")
	assert.Equal(t, "old_well", a.Location)

	require.NoError(t, m.Begin())
	assert.ErrorIs(t, m.Restore(snap), ErrTransactionActive)
}
