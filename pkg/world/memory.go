package world

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/jwebster45206/turn-authority/pkg/vitality"
)

// Snapshot is the serializable form of a world. It is what scenario files
// decode into and what gets persisted between sessions.
type Snapshot struct {
	Locations []Location          `json:"locations" yaml:"locations"`
	Items     []Item              `json:"items,omitempty" yaml:"items,omitempty"`
	Entities  []Entity            `json:"entities,omitempty" yaml:"entities,omitempty"`
	Actors    []ActorState        `json:"actors,omitempty" yaml:"actors,omitempty"`
	Mentions  map[string][]string `json:"mentions,omitempty" yaml:"mentions,omitempty"` // location key → names narrated but not materialized
	Clock     int                 `json:"clock,omitempty" yaml:"clock,omitempty"`       // minutes since session start
	// Saved marks a snapshot taken from a running world. Its hit points are
	// kept as they are; authored snapshots start entities at full health.
	Saved bool `json:"saved,omitempty" yaml:"saved,omitempty"`
}

type memState struct {
	locations map[string]Location
	items     map[int]Item
	entities  map[int]Entity
	actors    map[string]ActorState
	mentions  map[string][]string
	clock     int
	nextID    int
}

// Memory is an in-memory Store. A turn is bracketed by Begin and Commit;
// writes in between are readable at once and Rollback restores the state
// captured by Begin.
type Memory struct {
	mu    sync.RWMutex
	st    *memState
	saved *memState
}

var (
	_ Store         = (*Memory)(nil)
	_ Transactional = (*Memory)(nil)
)

// NewMemory builds a store from a snapshot, assigning ids to items and
// entities that have none.
func NewMemory(snap Snapshot) (*Memory, error) {
	st, err := stateFrom(snap)
	if err != nil {
		return nil, err
	}
	return &Memory{st: st}, nil
}

// Restore replaces the whole state with a snapshot. It fails while a turn
// transaction is open.
func (m *Memory) Restore(snap Snapshot) error {
	st, err := stateFrom(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved != nil {
		return ErrTransactionActive
	}
	m.st = st
	return nil
}

func stateFrom(snap Snapshot) (*memState, error) {
	st := &memState{
		locations: make(map[string]Location),
		items:     make(map[int]Item),
		entities:  make(map[int]Entity),
		actors:    make(map[string]ActorState),
		mentions:  make(map[string][]string),
		clock:     snap.Clock,
		nextID:    1,
	}

	for _, loc := range snap.Locations {
		if loc.Key == "" {
			return nil, fmt.Errorf("location %q has no key", loc.Name)
		}
		if _, dup := st.locations[loc.Key]; dup {
			return nil, fmt.Errorf("duplicate location key %q", loc.Key)
		}
		st.locations[loc.Key] = cloneLocation(loc)
	}
	for _, it := range snap.Items {
		st.nextID = max(st.nextID, it.ID+1)
	}
	for _, e := range snap.Entities {
		st.nextID = max(st.nextID, e.ID+1)
	}
	for _, it := range snap.Items {
		if it.ID == 0 {
			it.ID = st.nextID
			st.nextID++
		}
		if _, dup := st.items[it.ID]; dup {
			return nil, fmt.Errorf("duplicate item id %d", it.ID)
		}
		st.items[it.ID] = cloneItem(it)
	}
	for _, e := range snap.Entities {
		if e.ID == 0 {
			e.ID = st.nextID
			st.nextID++
		}
		if _, dup := st.entities[e.ID]; dup {
			return nil, fmt.Errorf("duplicate entity id %d", e.ID)
		}
		if !snap.Saved && e.MaxHP > 0 && e.HP == 0 {
			e.HP = e.MaxHP
		}
		st.entities[e.ID] = cloneEntity(e)
	}
	for _, a := range snap.Actors {
		st.actors[a.ID] = cloneActor(a)
	}
	for loc, names := range snap.Mentions {
		for _, n := range names {
			st.mentions[loc] = append(st.mentions[loc], strings.ToLower(n))
		}
	}
	return st, nil
}

// AddActor registers a player character at a location.
func (m *Memory) AddActor(a ActorState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == "" {
		return fmt.Errorf("actor id cannot be empty")
	}
	if _, ok := m.st.locations[a.Location]; !ok {
		return fmt.Errorf("actor location %q: %w", a.Location, ErrNotFound)
	}
	if !slices.Contains(a.Visited, a.Location) {
		a.Visited = append(a.Visited, a.Location)
	}
	m.st.actors[a.ID] = cloneActor(a)
	return nil
}

// Snapshot returns a deep copy of the current state.
func (m *Memory) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{Clock: m.st.clock, Mentions: make(map[string][]string), Saved: true}
	for _, loc := range sortedValues(m.st.locations, func(l Location) string { return l.Key }) {
		snap.Locations = append(snap.Locations, cloneLocation(loc))
	}
	for _, it := range sortedValues(m.st.items, func(i Item) int { return i.ID }) {
		snap.Items = append(snap.Items, cloneItem(it))
	}
	for _, e := range sortedValues(m.st.entities, func(e Entity) int { return e.ID }) {
		snap.Entities = append(snap.Entities, cloneEntity(e))
	}
	for _, a := range sortedValues(m.st.actors, func(a ActorState) string { return a.ID }) {
		snap.Actors = append(snap.Actors, cloneActor(a))
	}
	for k, v := range m.st.mentions {
		snap.Mentions[k] = slices.Clone(v)
	}
	return snap
}

// Transaction bracket

func (m *Memory) Begin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved != nil {
		return ErrTransactionActive
	}
	m.saved = m.st.clone()
	return nil
}

func (m *Memory) Commit() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return ErrNoTransaction
	}
	m.saved = nil
	return nil
}

func (m *Memory) Rollback() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return ErrNoTransaction
	}
	m.st = m.saved
	m.saved = nil
	return nil
}

// Reads

func (m *Memory) Location(key string) (Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	loc, ok := m.st.locations[key]
	if !ok {
		return Location{}, fmt.Errorf("location %q: %w", key, ErrNotFound)
	}
	return cloneLocation(loc), nil
}

func (m *Memory) FindLocation(keyOrName string) (Location, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if loc, ok := m.st.locations[keyOrName]; ok {
		return cloneLocation(loc), true
	}
	q := strings.ToLower(strings.TrimSpace(keyOrName))
	for _, loc := range sortedValues(m.st.locations, func(l Location) string { return l.Key }) {
		if strings.ToLower(loc.Key) == q || strings.ToLower(loc.Name) == q {
			return cloneLocation(loc), true
		}
	}
	return Location{}, false
}

func (m *Memory) Item(id int) (Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.st.items[id]
	if !ok {
		return Item{}, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return cloneItem(it), nil
}

func (m *Memory) ItemsAt(locationKey string) []Item {
	return m.itemsHeldBy(AtLocation(locationKey))
}

func (m *Memory) ItemsHeldBy(entityKey string) []Item {
	return m.itemsHeldBy(WithEntity(entityKey))
}

func (m *Memory) Inventory(actorID string) []Item {
	return m.itemsHeldBy(WithActor(actorID))
}

func (m *Memory) itemsHeldBy(h Holder) []Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Item
	for _, it := range sortedValues(m.st.items, func(i Item) int { return i.ID }) {
		if it.Holder == h {
			out = append(out, cloneItem(it))
		}
	}
	return out
}

func (m *Memory) Entity(id int) (Entity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.st.entities[id]
	if !ok {
		return Entity{}, fmt.Errorf("entity %d: %w", id, ErrNotFound)
	}
	return cloneEntity(e), nil
}

func (m *Memory) EntitiesAt(locationKey string) []Entity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Entity
	for _, e := range sortedValues(m.st.entities, func(e Entity) int { return e.ID }) {
		if e.Location == locationKey {
			out = append(out, cloneEntity(e))
		}
	}
	return out
}

func (m *Memory) Actor(actorID string) (ActorState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.st.actors[actorID]
	if !ok {
		return ActorState{}, fmt.Errorf("actor %q: %w", actorID, ErrNotFound)
	}
	return cloneActor(a), nil
}

func (m *Memory) Mentioned(locationKey, name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Contains(m.st.mentions[locationKey], strings.ToLower(strings.TrimSpace(name)))
}

func (m *Memory) Clock() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.st.clock
}

// Writes

func (m *Memory) MoveActor(actorID, destination string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.st.actors[actorID]
	if !ok {
		return "", fmt.Errorf("actor %q: %w", actorID, ErrNotFound)
	}
	if _, ok := m.st.locations[destination]; !ok {
		return "", fmt.Errorf("location %q: %w", destination, ErrNotFound)
	}
	from := a.Location
	a.PreviousLocation = from
	a.Location = destination
	if !slices.Contains(a.Visited, destination) {
		a.Visited = append(a.Visited, destination)
	}
	m.st.actors[actorID] = a
	return from, nil
}

func (m *Memory) TransferItem(itemID int, to Holder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.st.items[itemID]
	if !ok {
		return fmt.Errorf("item %d: %w", itemID, ErrNotFound)
	}
	if err := m.checkHolder(to); err != nil {
		return err
	}
	if it.Holder.Kind == HeldByActor && it.Holder != to {
		m.unequipItem(it.Holder.Ref, itemID)
	}
	it.Holder = to
	m.st.items[itemID] = it
	return nil
}

func (m *Memory) DestroyItem(itemID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.st.items[itemID]
	if !ok {
		return fmt.Errorf("item %d: %w", itemID, ErrNotFound)
	}
	if it.Holder.Kind == HeldByActor {
		m.unequipItem(it.Holder.Ref, itemID)
	}
	delete(m.st.items, itemID)
	return nil
}

func (m *Memory) SpawnItem(item Item, to Holder) (Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkHolder(to); err != nil {
		return Item{}, err
	}
	item.ID = m.st.nextID
	m.st.nextID++
	item.Holder = to
	if item.Key == "" {
		item.Key = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(item.Name)), " ", "_")
	}
	m.st.items[item.ID] = cloneItem(item)
	return cloneItem(item), nil
}

func (m *Memory) SpawnEntity(e Entity) (Entity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.st.locations[e.Location]; !ok {
		return Entity{}, fmt.Errorf("location %q: %w", e.Location, ErrNotFound)
	}
	e.ID = m.st.nextID
	m.st.nextID++
	base := e.Key
	if base == "" {
		base = strings.ReplaceAll(strings.ToLower(e.Name), " ", "_")
	}
	e.Key = base
	for n := 2; m.entityKeyTaken(e.Key); n++ {
		e.Key = fmt.Sprintf("%s_%d", base, n)
	}
	if e.MaxHP > 0 && e.HP == 0 {
		e.HP = e.MaxHP
	}
	m.st.entities[e.ID] = cloneEntity(e)
	return cloneEntity(e), nil
}

func (m *Memory) Forget(locationKey, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(strings.TrimSpace(name))
	m.st.mentions[locationKey] = slices.DeleteFunc(m.st.mentions[locationKey], func(s string) bool { return s == q })
}

func (m *Memory) Equip(actorID, slot string, itemID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.st.actors[actorID]
	if !ok {
		return fmt.Errorf("actor %q: %w", actorID, ErrNotFound)
	}
	it, ok := m.st.items[itemID]
	if !ok {
		return fmt.Errorf("item %d: %w", itemID, ErrNotFound)
	}
	if it.Holder != WithActor(actorID) {
		return fmt.Errorf("item %d is not carried by %s", itemID, actorID)
	}
	if a.Equipment == nil {
		a.Equipment = make(map[string]int)
	}
	for s, id := range a.Equipment {
		if id == itemID {
			delete(a.Equipment, s)
		}
	}
	a.Equipment[slot] = itemID
	m.st.actors[actorID] = a
	return nil
}

func (m *Memory) Unequip(actorID, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.st.actors[actorID]
	if !ok {
		return fmt.Errorf("actor %q: %w", actorID, ErrNotFound)
	}
	if _, ok := a.Equipment[slot]; !ok {
		return fmt.Errorf("slot %q is empty", slot)
	}
	delete(a.Equipment, slot)
	m.st.actors[actorID] = a
	return nil
}

func (m *Memory) SetOpen(itemID int, open bool) error {
	return m.updateItem(itemID, func(it *Item) { it.Open = open })
}

func (m *Memory) SetLocked(itemID int, locked bool) error {
	return m.updateItem(itemID, func(it *Item) { it.Locked = locked })
}

func (m *Memory) Reveal(itemID int) error {
	return m.updateItem(itemID, func(it *Item) { it.Hidden = false })
}

func (m *Memory) DamageEntity(id, amount int) (Entity, vitality.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.st.entities[id]
	if !ok {
		return Entity{}, "", fmt.Errorf("entity %d: %w", id, ErrNotFound)
	}
	if amount > 0 {
		e.HP = vitality.Clamp(e.HP-amount, e.MaxHP)
	}
	if !e.Alive() {
		e.Hostile = false
	}
	m.st.entities[id] = e
	return cloneEntity(e), e.Status(), nil
}

func (m *Memory) DamageActor(actorID string, amount int) (ActorState, vitality.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.st.actors[actorID]
	if !ok {
		return ActorState{}, "", fmt.Errorf("actor %q: %w", actorID, ErrNotFound)
	}
	if amount > 0 {
		a.HP = vitality.Clamp(a.HP-amount, a.MaxHP)
	}
	m.st.actors[actorID] = a
	return cloneActor(a), a.Vitality(), nil
}

func (m *Memory) HealActor(actorID string, amount int) (ActorState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.st.actors[actorID]
	if !ok {
		return ActorState{}, fmt.Errorf("actor %q: %w", actorID, ErrNotFound)
	}
	if amount > 0 {
		a.HP = vitality.Clamp(a.HP+amount, a.MaxHP)
	}
	m.st.actors[actorID] = a
	return cloneActor(a), nil
}

func (m *Memory) AdjustAttitude(entityID, delta int) (Entity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.st.entities[entityID]
	if !ok {
		return Entity{}, fmt.Errorf("entity %d: %w", entityID, ErrNotFound)
	}
	e.Attitude = min(100, max(-100, e.Attitude+delta))
	m.st.entities[entityID] = e
	return cloneEntity(e), nil
}

func (m *Memory) AdvanceTime(minutes int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if minutes > 0 {
		m.st.clock += minutes
	}
	return m.st.clock
}

func (m *Memory) SatisfyNeed(actorID, need string, amount int) (int, error) {
	return m.shiftNeed(actorID, need, -amount)
}

func (m *Memory) IncreaseNeed(actorID, need string, amount int) (int, error) {
	return m.shiftNeed(actorID, need, amount)
}

func (m *Memory) shiftNeed(actorID, need string, delta int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.st.actors[actorID]
	if !ok {
		return 0, fmt.Errorf("actor %q: %w", actorID, ErrNotFound)
	}
	if a.Needs == nil {
		a.Needs = make(map[string]int)
	}
	v := min(MaxNeed, max(0, a.Needs[need]+delta))
	a.Needs[need] = v
	m.st.actors[actorID] = a
	return v, nil
}

func (m *Memory) AddStatus(actorID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.st.actors[actorID]
	if !ok {
		return fmt.Errorf("actor %q: %w", actorID, ErrNotFound)
	}
	if !slices.Contains(a.Statuses, status) {
		a.Statuses = append(a.Statuses, status)
	}
	m.st.actors[actorID] = a
	return nil
}

func (m *Memory) RemoveStatus(actorID, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.st.actors[actorID]
	if !ok {
		return fmt.Errorf("actor %q: %w", actorID, ErrNotFound)
	}
	a.Statuses = slices.DeleteFunc(a.Statuses, func(s string) bool { return s == status })
	m.st.actors[actorID] = a
	return nil
}

// checkHolder, entityKeyTaken and unequipItem expect the write lock held.

func (m *Memory) updateItem(itemID int, fn func(*Item)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.st.items[itemID]
	if !ok {
		return fmt.Errorf("item %d: %w", itemID, ErrNotFound)
	}
	fn(&it)
	m.st.items[itemID] = it
	return nil
}

func (m *Memory) checkHolder(h Holder) error {
	switch h.Kind {
	case HeldByLocation:
		if _, ok := m.st.locations[h.Ref]; !ok {
			return fmt.Errorf("location %q: %w", h.Ref, ErrNotFound)
		}
	case HeldByActor:
		if _, ok := m.st.actors[h.Ref]; !ok {
			return fmt.Errorf("actor %q: %w", h.Ref, ErrNotFound)
		}
	case HeldByEntity:
		if !m.entityKeyTaken(h.Ref) {
			return fmt.Errorf("entity %q: %w", h.Ref, ErrNotFound)
		}
	default:
		return fmt.Errorf("unknown holder kind %q", h.Kind)
	}
	return nil
}

func (m *Memory) entityKeyTaken(key string) bool {
	for _, e := range m.st.entities {
		if e.Key == key {
			return true
		}
	}
	return false
}

func (m *Memory) unequipItem(actorID string, itemID int) {
	a, ok := m.st.actors[actorID]
	if !ok {
		return
	}
	for slot, id := range a.Equipment {
		if id == itemID {
			delete(a.Equipment, slot)
		}
	}
	m.st.actors[actorID] = a
}

func (s *memState) clone() *memState {
	c := &memState{
		locations: make(map[string]Location, len(s.locations)),
		items:     make(map[int]Item, len(s.items)),
		entities:  make(map[int]Entity, len(s.entities)),
		actors:    make(map[string]ActorState, len(s.actors)),
		mentions:  make(map[string][]string, len(s.mentions)),
		clock:     s.clock,
		nextID:    s.nextID,
	}
	for k, v := range s.locations {
		c.locations[k] = cloneLocation(v)
	}
	for k, v := range s.items {
		c.items[k] = cloneItem(v)
	}
	for k, v := range s.entities {
		c.entities[k] = cloneEntity(v)
	}
	for k, v := range s.actors {
		c.actors[k] = cloneActor(v)
	}
	for k, v := range s.mentions {
		c.mentions[k] = slices.Clone(v)
	}
	return c
}

func cloneLocation(l Location) Location {
	l.Exits = maps.Clone(l.Exits)
	l.BlockedExits = maps.Clone(l.BlockedExits)
	l.Properties = slices.Clone(l.Properties)
	return l
}

func cloneItem(i Item) Item {
	i.Properties = slices.Clone(i.Properties)
	return i
}

func cloneEntity(e Entity) Entity {
	e.Attributes = maps.Clone(e.Attributes)
	e.Topics = maps.Clone(e.Topics)
	e.Properties = slices.Clone(e.Properties)
	return e
}

func cloneActor(a ActorState) ActorState {
	a.Statuses = slices.Clone(a.Statuses)
	a.Needs = maps.Clone(a.Needs)
	a.Equipment = maps.Clone(a.Equipment)
	a.Visited = slices.Clone(a.Visited)
	return a
}

func sortedValues[K comparable, V any, O cmp.Ordered](m map[K]V, by func(V) O) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b V) int { return cmp.Compare(by(a), by(b)) })
	return out
}
