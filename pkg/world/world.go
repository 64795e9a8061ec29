// Package world defines the world-state contracts the turn engine reads and
// writes through, and an in-memory store implementing them.
package world

import (
	"errors"

	"github.com/jwebster45206/turn-authority/pkg/vitality"
)

var (
	// ErrNotFound is returned when a key or id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrNoTransaction is returned by Commit or Rollback outside a turn.
	ErrNoTransaction = errors.New("no turn transaction in progress")
	// ErrTransactionActive is returned by Begin when a turn is already open.
	ErrTransactionActive = errors.New("turn transaction already in progress")
)

// Reader is the read-only view used by validation. Implementations return
// copies, so callers can never mutate the store through a returned value.
type Reader interface {
	Location(key string) (Location, error)
	// FindLocation resolves a key or display name, case-insensitively.
	FindLocation(keyOrName string) (Location, bool)
	Item(id int) (Item, error)
	// ItemsAt lists items lying at a location, including hidden ones.
	ItemsAt(locationKey string) []Item
	// ItemsHeldBy lists items held by an entity.
	ItemsHeldBy(entityKey string) []Item
	Inventory(actorID string) []Item
	Entity(id int) (Entity, error)
	EntitiesAt(locationKey string) []Entity
	Actor(actorID string) (ActorState, error)
	// Mentioned reports whether narration referenced an item by name at a
	// location without it being materialized yet.
	Mentioned(locationKey, name string) bool
	Clock() int
}

// Vitality applies hit point changes and reports the resulting tier.
type Vitality interface {
	DamageEntity(id, amount int) (Entity, vitality.Status, error)
	DamageActor(actorID string, amount int) (ActorState, vitality.Status, error)
	HealActor(actorID string, amount int) (ActorState, error)
}

// Store is the read/write world used by execution. Every write is visible
// to subsequent reads immediately.
type Store interface {
	Reader
	Vitality

	MoveActor(actorID, destination string) (from string, err error)
	TransferItem(itemID int, to Holder) error
	DestroyItem(itemID int) error
	SpawnItem(item Item, to Holder) (Item, error)
	SpawnEntity(e Entity) (Entity, error)
	Forget(locationKey, name string)

	Equip(actorID, slot string, itemID int) error
	Unequip(actorID, slot string) error

	SetOpen(itemID int, open bool) error
	SetLocked(itemID int, locked bool) error
	Reveal(itemID int) error

	AdjustAttitude(entityID, delta int) (Entity, error)
	AdvanceTime(minutes int) int
	SatisfyNeed(actorID, need string, amount int) (int, error)
	IncreaseNeed(actorID, need string, amount int) (int, error)
	AddStatus(actorID, status string) error
	RemoveStatus(actorID, status string) error
}

// Transactional stores group one turn's writes so the caller can discard
// them. Writes are flushed (readable) before Commit.
type Transactional interface {
	Begin() error
	Commit() error
	Rollback() error
}
