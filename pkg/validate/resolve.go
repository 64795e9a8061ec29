package validate

import (
	"maps"
	"slices"
	"strings"

	"github.com/jwebster45206/turn-authority/pkg/world"
)

var articles = []string{"the ", "a ", "an ", "some ", "my "}

// normalize lowercases a player reference and strips a leading article.
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range articles {
		if strings.HasPrefix(s, a) {
			return strings.TrimSpace(s[len(a):])
		}
	}
	return s
}

func keyForm(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}

// matchName applies exact-then-substring matching over a list. The first
// exact key or name match wins; otherwise the first substring match.
func matchName[T any](list []T, query string, key, name func(T) string) (T, bool) {
	var zero T
	q := normalize(query)
	if q == "" {
		return zero, false
	}
	for _, it := range list {
		if strings.ToLower(key(it)) == keyForm(q) || strings.ToLower(name(it)) == q {
			return it, true
		}
	}
	for _, it := range list {
		if strings.Contains(strings.ToLower(name(it)), q) || strings.Contains(strings.ToLower(key(it)), keyForm(q)) {
			return it, true
		}
	}
	return zero, false
}

func matchItem(items []world.Item, query string) (world.Item, bool) {
	return matchName(items, query,
		func(i world.Item) string { return i.Key },
		func(i world.Item) string { return i.Name })
}

func matchEntity(entities []world.Entity, query string) (world.Entity, bool) {
	return matchName(entities, query,
		func(e world.Entity) string { return e.Key },
		func(e world.Entity) string { return e.Name })
}

func visible(items []world.Item) []world.Item {
	out := items[:0:0]
	for _, it := range items {
		if !it.Hidden {
			out = append(out, it)
		}
	}
	return out
}

func (v *Validator) inventoryItem(r *request, query string) (world.Item, bool) {
	return matchItem(v.world.Inventory(r.actor.ID), query)
}

func (v *Validator) groundItem(r *request, query string) (world.Item, bool) {
	return matchItem(visible(v.world.ItemsAt(r.loc.Key)), query)
}

// reachableItem matches over the inventory and the visible ground items
// together, so an exact match on the ground beats a partial one in hand.
func (v *Validator) reachableItem(r *request, query string) (world.Item, bool) {
	items := v.world.Inventory(r.actor.ID)
	items = append(items, visible(v.world.ItemsAt(r.loc.Key))...)
	return matchItem(items, query)
}

func (v *Validator) presentEntity(r *request, query string) (world.Entity, bool) {
	return matchEntity(v.world.EntitiesAt(r.loc.Key), query)
}

// exit resolves a direction, destination key or destination name against
// the current location's exits.
func (v *Validator) exit(r *request, query string) (direction, destination string, ok bool) {
	q := normalize(query)
	if q == "" {
		return "", "", false
	}
	for dir, dest := range r.loc.Exits {
		if strings.ToLower(dir) == q {
			return dir, dest, true
		}
	}

	type exitInfo struct {
		dir  string
		dest world.Location
	}
	var exits []exitInfo
	for _, dir := range sortedKeys(r.loc.Exits) {
		dest, err := v.world.Location(r.loc.Exits[dir])
		if err != nil {
			continue
		}
		exits = append(exits, exitInfo{dir, dest})
	}
	hit, found := matchName(exits, q,
		func(e exitInfo) string { return e.dest.Key },
		func(e exitInfo) string { return e.dest.Name })
	if !found {
		return "", "", false
	}
	return hit.dir, hit.dest.Key, true
}

// blockedExit reports the reason a direction is blocked.
func blockedExit(loc world.Location, query string) (string, bool) {
	q := normalize(query)
	for dir, reason := range loc.BlockedExits {
		if strings.ToLower(dir) == q {
			return reason, true
		}
	}
	return "", false
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
