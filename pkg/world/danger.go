package world

import "strings"

var dangerKeywords = []struct {
	level    DangerLevel
	keywords []string
}{
	{DangerSafe, []string{"home", "temple", "shop", "tavern", "church", "shrine", "house"}},
	{DangerDangerous, []string{"dungeon", "cave", "crypt", "lair", "tomb", "catacomb", "ruin"}},
	{DangerRisky, []string{"forest", "road", "swamp", "wild", "marsh", "alley", "woods"}},
}

// ClassifyDanger returns the structured danger of a location when set, and
// otherwise falls back to keyword heuristics on its key and name.
func ClassifyDanger(loc Location) DangerLevel {
	if loc.Danger != "" {
		return loc.Danger
	}
	id := strings.ToLower(loc.Key + " " + loc.Name)
	for _, group := range dangerKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(id, kw) {
				return group.level
			}
		}
	}
	return DangerNeutral
}
