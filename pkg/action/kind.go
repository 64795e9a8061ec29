package action

import (
	"fmt"
	"strings"
)

// Kind identifies one mechanical action variant. The set is closed: every
// Kind listed in AllKinds must have a validator arm and an executor arm.
type Kind string

const (
	// Movement
	KindMove  Kind = "move"
	KindEnter Kind = "enter"
	KindLeave Kind = "leave"

	// Item
	KindTake    Kind = "take"
	KindDrop    Kind = "drop"
	KindGive    Kind = "give"
	KindUse     Kind = "use"
	KindEquip   Kind = "equip"
	KindUnequip Kind = "unequip"
	KindOpen    Kind = "open"
	KindClose   Kind = "close"

	// Combat
	KindAttack Kind = "attack"
	KindDefend Kind = "defend"
	KindFlee   Kind = "flee"

	// Social
	KindTalk     Kind = "talk"
	KindAsk      Kind = "ask"
	KindPersuade Kind = "persuade"
	KindTrade    Kind = "trade"

	// World
	KindLook    Kind = "look"
	KindExamine Kind = "examine"
	KindSearch  Kind = "search"
	KindWait    Kind = "wait"
	KindRest    Kind = "rest"
	KindSleep   Kind = "sleep"

	// Consumption
	KindEat   Kind = "eat"
	KindDrink Kind = "drink"

	// Skill
	KindClimb    Kind = "climb"
	KindSneak    Kind = "sneak"
	KindPickLock Kind = "pick_lock"

	// Meta
	KindInventory Kind = "inventory"
	KindStatus    Kind = "status"

	KindCustom Kind = "custom"
)

// Category groups kinds for dispatch and policy decisions.
type Category string

const (
	CategoryMovement    Category = "movement"
	CategoryItem        Category = "item"
	CategoryCombat      Category = "combat"
	CategorySocial      Category = "social"
	CategoryWorld       Category = "world"
	CategoryConsumption Category = "consumption"
	CategorySkill       Category = "skill"
	CategoryMeta        Category = "meta"
	CategoryCustom      Category = "custom"
)

var kindCategories = map[Kind]Category{
	KindMove:      CategoryMovement,
	KindEnter:     CategoryMovement,
	KindLeave:     CategoryMovement,
	KindTake:      CategoryItem,
	KindDrop:      CategoryItem,
	KindGive:      CategoryItem,
	KindUse:       CategoryItem,
	KindEquip:     CategoryItem,
	KindUnequip:   CategoryItem,
	KindOpen:      CategoryItem,
	KindClose:     CategoryItem,
	KindAttack:    CategoryCombat,
	KindDefend:    CategoryCombat,
	KindFlee:      CategoryCombat,
	KindTalk:      CategorySocial,
	KindAsk:       CategorySocial,
	KindPersuade:  CategorySocial,
	KindTrade:     CategorySocial,
	KindLook:      CategoryWorld,
	KindExamine:   CategoryWorld,
	KindSearch:    CategoryWorld,
	KindWait:      CategoryWorld,
	KindRest:      CategoryWorld,
	KindSleep:     CategoryWorld,
	KindEat:       CategoryConsumption,
	KindDrink:     CategoryConsumption,
	KindClimb:     CategorySkill,
	KindSneak:     CategorySkill,
	KindPickLock:  CategorySkill,
	KindInventory: CategoryMeta,
	KindStatus:    CategoryMeta,
	KindCustom:    CategoryCustom,
}

// allKinds is ordered by category so listings read naturally.
var allKinds = []Kind{
	KindMove, KindEnter, KindLeave,
	KindTake, KindDrop, KindGive, KindUse, KindEquip, KindUnequip, KindOpen, KindClose,
	KindAttack, KindDefend, KindFlee,
	KindTalk, KindAsk, KindPersuade, KindTrade,
	KindLook, KindExamine, KindSearch, KindWait, KindRest, KindSleep,
	KindEat, KindDrink,
	KindClimb, KindSneak, KindPickLock,
	KindInventory, KindStatus,
	KindCustom,
}

// synonyms maps loose verbs onto canonical kinds.
var synonyms = map[string]Kind{
	"go":       KindMove,
	"walk":     KindMove,
	"travel":   KindMove,
	"run":      KindMove,
	"exit":     KindLeave,
	"get":      KindTake,
	"grab":     KindTake,
	"pick_up":  KindTake,
	"pickup":   KindTake,
	"put_down": KindDrop,
	"hand":     KindGive,
	"wield":    KindEquip,
	"wear":     KindEquip,
	"remove":   KindUnequip,
	"hit":      KindAttack,
	"fight":    KindAttack,
	"strike":   KindAttack,
	"block":    KindDefend,
	"escape":   KindFlee,
	"speak":    KindTalk,
	"chat":     KindTalk,
	"question": KindAsk,
	"convince": KindPersuade,
	"barter":   KindTrade,
	"inspect":  KindExamine,
	"study":    KindExamine,
	"l":        KindLook,
	"x":        KindExamine,
	"i":        KindInventory,
	"inv":      KindInventory,
	"consume":  KindEat,
	"sip":      KindDrink,
	"lockpick": KindPickLock,
	"pick":     KindPickLock,
	"hide":     KindSneak,
	"nap":      KindRest,
}

// AllKinds returns every defined kind.
func AllKinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// Category derives the category of the kind. Unknown kinds report custom.
func (k Kind) Category() Category {
	if c, ok := kindCategories[k]; ok {
		return c
	}
	return CategoryCustom
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	_, ok := kindCategories[k]
	return ok
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind resolves a verb to a Kind, accepting canonical names and common synonyms.
func ParseKind(s string) (Kind, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	if k := Kind(key); k.Valid() {
		return k, nil
	}
	if k, ok := synonyms[key]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown action kind %q", s)
}

// UnmarshalText lets kinds be decoded from JSON and YAML using synonyms.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
