package world

import (
	"slices"
	"strings"

	"github.com/jwebster45206/turn-authority/pkg/vitality"
)

// DangerLevel classifies how threatening a location is.
type DangerLevel string

const (
	DangerSafe      DangerLevel = "safe"
	DangerNeutral   DangerLevel = "neutral"
	DangerRisky     DangerLevel = "risky"
	DangerDangerous DangerLevel = "dangerous"
	DangerHostile   DangerLevel = "hostile"
)

// Location represents a place in the game world with exits.
type Location struct {
	Key          string            `json:"key" yaml:"key"`
	Name         string            `json:"name" yaml:"name"`
	Description  string            `json:"description,omitempty" yaml:"description,omitempty"`
	Exits        map[string]string `json:"exits,omitempty" yaml:"exits,omitempty"`                 // Direction → Location Key
	BlockedExits map[string]string `json:"blocked_exits,omitempty" yaml:"blocked_exits,omitempty"` // Direction → Reason for blocking
	Danger       DangerLevel       `json:"danger,omitempty" yaml:"danger,omitempty"`               // Structured danger, overrides keyword heuristics
	Properties   []string          `json:"properties,omitempty" yaml:"properties,omitempty"`       // e.g. "sacred", "magical"
	Climbable    bool              `json:"climbable,omitempty" yaml:"climbable,omitempty"`
}

// HasProperty reports whether the location carries a property.
func (l Location) HasProperty(p string) bool {
	return slices.Contains(l.Properties, p)
}

// DisplayName prefers the name over the key.
func (l Location) DisplayName() string {
	if l.Name != "" {
		return l.Name
	}
	return l.Key
}

// ItemKind determines how an item can be used.
type ItemKind string

const (
	ItemWeapon    ItemKind = "weapon"
	ItemArmor     ItemKind = "armor"
	ItemShield    ItemKind = "shield"
	ItemAccessory ItemKind = "accessory"
	ItemFood      ItemKind = "food"
	ItemDrink     ItemKind = "drink"
	ItemPotion    ItemKind = "potion"
	ItemTool      ItemKind = "tool"
	ItemKey       ItemKind = "key"
	ItemContainer ItemKind = "container"
	ItemMisc      ItemKind = "misc"
)

// Equipment slots.
const (
	SlotMainHand = "main_hand"
	SlotOffHand  = "off_hand"
	SlotBody     = "body"
	SlotNeck     = "neck"
)

// Item properties that feed risk tagging.
const (
	PropMagical    = "magical"
	PropCursed     = "cursed"
	PropValuable   = "valuable"
	PropSacred     = "sacred"
	PropDangerous  = "dangerous"
	PropMysterious = "mysterious"
)

// HolderKind says what kind of thing holds an item.
type HolderKind string

const (
	HeldByLocation HolderKind = "location"
	HeldByEntity   HolderKind = "entity"
	HeldByActor    HolderKind = "actor"
)

// Holder identifies who or what currently holds an item.
type Holder struct {
	Kind HolderKind `json:"kind" yaml:"kind"`
	Ref  string     `json:"ref" yaml:"ref"` // location key, entity key or actor id
}

// AtLocation holds an item at a location.
func AtLocation(key string) Holder { return Holder{Kind: HeldByLocation, Ref: key} }

// WithEntity holds an item in an entity's possession.
func WithEntity(key string) Holder { return Holder{Kind: HeldByEntity, Ref: key} }

// WithActor holds an item in a player's inventory.
func WithActor(id string) Holder { return Holder{Kind: HeldByActor, Ref: id} }

// Item is a physical object in the world.
type Item struct {
	ID          int      `json:"id" yaml:"id"`
	Key         string   `json:"key" yaml:"key"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Kind        ItemKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Weight      float64  `json:"weight,omitempty" yaml:"weight,omitempty"`
	Slot        string   `json:"slot,omitempty" yaml:"slot,omitempty"`
	Damage      string   `json:"damage,omitempty" yaml:"damage,omitempty"` // dice expression for weapons
	ArmorBonus  int      `json:"armor_bonus,omitempty" yaml:"armor_bonus,omitempty"`
	Nutrition   int      `json:"nutrition,omitempty" yaml:"nutrition,omitempty"` // need satisfied by eat/drink
	Heal        int      `json:"heal,omitempty" yaml:"heal,omitempty"`           // hit points restored when consumed
	Properties  []string `json:"properties,omitempty" yaml:"properties,omitempty"`
	Fixed       bool     `json:"fixed,omitempty" yaml:"fixed,omitempty"` // cannot be picked up
	Hidden      bool     `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Openable    bool     `json:"openable,omitempty" yaml:"openable,omitempty"`
	Open        bool     `json:"open,omitempty" yaml:"open,omitempty"`
	Locked      bool     `json:"locked,omitempty" yaml:"locked,omitempty"`
	LockDC      int      `json:"lock_dc,omitempty" yaml:"lock_dc,omitempty"`
	Unlocks     string   `json:"unlocks,omitempty" yaml:"unlocks,omitempty"` // key of the item this one unlocks
	Holder      Holder   `json:"holder" yaml:"holder"`
}

// TotalWeight sums the weight of items.
func TotalWeight(items []Item) float64 {
	var w float64
	for _, it := range items {
		w += it.Weight
	}
	return w
}

// HasProperty reports whether the item carries a property.
func (i Item) HasProperty(p string) bool {
	return slices.Contains(i.Properties, p)
}

// DisplayName prefers the name over the key.
func (i Item) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return strings.ReplaceAll(i.Key, "_", " ")
}

// Equippable reports whether the item can occupy an equipment slot.
func (i Item) Equippable() bool {
	return i.EquipSlot() != ""
}

// EquipSlot returns the slot the item occupies, derived from its kind when unset.
func (i Item) EquipSlot() string {
	if i.Slot != "" {
		return i.Slot
	}
	switch i.Kind {
	case ItemWeapon:
		return SlotMainHand
	case ItemShield:
		return SlotOffHand
	case ItemArmor:
		return SlotBody
	case ItemAccessory:
		return SlotNeck
	default:
		return ""
	}
}

// Consumable reports whether eat or drink can use the item up.
func (i Item) Consumable() bool {
	return i.Kind == ItemFood || i.Kind == ItemDrink || i.Kind == ItemPotion
}

// EntityKind separates talking NPCs from creatures.
type EntityKind string

const (
	EntityNPC      EntityKind = "npc"
	EntityCreature EntityKind = "creature"
)

// Entity is a creature or NPC present in the world.
type Entity struct {
	ID          int               `json:"id" yaml:"id"`
	Key         string            `json:"key" yaml:"key"`
	TemplateID  string            `json:"template_id,omitempty" yaml:"template_id,omitempty"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Kind        EntityKind        `json:"kind,omitempty" yaml:"kind,omitempty"`
	Location    string            `json:"location" yaml:"location"`
	AC          int               `json:"ac" yaml:"ac"`
	HP          int               `json:"hp" yaml:"hp"`
	MaxHP       int               `json:"max_hp" yaml:"max_hp"`
	Attributes  map[string]int    `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Damage      string            `json:"damage,omitempty" yaml:"damage,omitempty"`
	Hostile     bool              `json:"hostile,omitempty" yaml:"hostile,omitempty"`
	Attitude    int               `json:"attitude,omitempty" yaml:"attitude,omitempty"` // -100..100
	Topics      map[string]string `json:"topics,omitempty" yaml:"topics,omitempty"`     // ask-about answers
	Properties  []string          `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Status derives the vitality tier.
func (e Entity) Status() vitality.Status {
	return vitality.Of(e.HP, e.MaxHP, true)
}

// Alive reports whether the entity can still act.
func (e Entity) Alive() bool {
	return e.Status().Alive()
}

// DisplayName prefers the name over the key.
func (e Entity) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	return strings.ReplaceAll(e.Key, "_", " ")
}

// HasProperty reports whether the entity carries a property.
func (e Entity) HasProperty(p string) bool {
	return slices.Contains(e.Properties, p)
}

// Disposition names an attitude band.
func Disposition(attitude int) string {
	switch {
	case attitude <= -50:
		return "hostile"
	case attitude < 0:
		return "unfriendly"
	case attitude >= 75:
		return "devoted"
	case attitude >= 25:
		return "friendly"
	default:
		return "neutral"
	}
}

// Needs tracked per actor. Values run 0 (sated) to 100 (desperate).
const (
	NeedHunger  = "hunger"
	NeedThirst  = "thirst"
	NeedFatigue = "fatigue"
)

// MaxNeed caps every need.
const MaxNeed = 100

// ActorState is the mutable per-turn state of a player character.
type ActorState struct {
	ID               string         `json:"id" yaml:"id"`
	Location         string         `json:"location" yaml:"location"`
	PreviousLocation string         `json:"previous_location,omitempty" yaml:"previous_location,omitempty"`
	HP               int            `json:"hp" yaml:"hp"`
	MaxHP            int            `json:"max_hp" yaml:"max_hp"`
	Statuses         []string       `json:"statuses,omitempty" yaml:"statuses,omitempty"`
	Needs            map[string]int `json:"needs,omitempty" yaml:"needs,omitempty"`
	Equipment        map[string]int `json:"equipment,omitempty" yaml:"equipment,omitempty"` // slot → item id
	Visited          []string       `json:"visited,omitempty" yaml:"visited,omitempty"`
}

// HasStatus reports whether a status effect is active.
func (a ActorState) HasStatus(s string) bool {
	return slices.Contains(a.Statuses, s)
}

// Vitality derives the vitality tier. Player characters are not killed outright at zero.
func (a ActorState) Vitality() vitality.Status {
	return vitality.Of(a.HP, a.MaxHP, false)
}

// HasVisited reports whether the actor has been to a location before.
func (a ActorState) HasVisited(key string) bool {
	return slices.Contains(a.Visited, key)
}

// EquippedIn returns the item id in a slot, or zero.
func (a ActorState) EquippedIn(slot string) int {
	return a.Equipment[slot]
}

// SlotOf returns the slot an item is equipped in.
func (a ActorState) SlotOf(itemID int) (string, bool) {
	for slot, id := range a.Equipment {
		if id == itemID {
			return slot, true
		}
	}
	return "", false
}
