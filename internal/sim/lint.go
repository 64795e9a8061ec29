package sim

import (
	"fmt"
	"maps"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/jwebster45206/turn-authority/pkg/dice"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}

// linter collects problems that Validate lets through but that make a
// scenario misbehave at play time.
type linter struct {
	problems []string
}

func (l *linter) addf(format string, args ...any) {
	l.problems = append(l.problems, fmt.Sprintf(format, args...))
}

func (l *linter) checkID(field, id string) {
	if id != "" && !isValidID(id) {
		l.addf("%s '%s' should be lowercase snake_case", field, id)
	}
}

// Lint reports dangling references and badly formed keys. An empty result
// means the scenario is clean.
func (s *Scenario) Lint(filename string) []string {
	l := &linter{}

	if filename != "" {
		ext := filepath.Ext(filename)
		if ext != ".yaml" && ext != ".yml" {
			l.addf("scenario file must have a .yaml extension: %s", filepath.Base(filename))
		}
		name := strings.TrimSuffix(filepath.Base(filename), ext)
		if !isValidID(name) {
			l.addf("scenario filename '%s' must be lowercase snake_case", filepath.Base(filename))
		}
	}

	locations := make(map[string]bool, len(s.World.Locations))
	for _, loc := range s.World.Locations {
		l.checkID("location key", loc.Key)
		locations[loc.Key] = true
	}
	for _, loc := range s.World.Locations {
		for _, dir := range slices.Sorted(maps.Keys(loc.Exits)) {
			if dest := loc.Exits[dir]; !locations[dest] {
				l.addf("location '%s' exit '%s' leads to unknown location '%s'", loc.Key, dir, dest)
			}
		}
	}

	entities := make(map[string]bool, len(s.World.Entities))
	for _, e := range s.World.Entities {
		l.checkID("entity key", e.Key)
		if entities[e.Key] {
			l.addf("duplicate entity key '%s'", e.Key)
		}
		entities[e.Key] = true
		if !locations[e.Location] {
			l.addf("entity '%s' is at unknown location '%s'", e.Key, e.Location)
		}
	}

	actors := map[string]bool{s.PC.ID: true}
	for _, a := range s.World.Actors {
		actors[a.ID] = true
		if !locations[a.Location] {
			l.addf("actor '%s' is at unknown location '%s'", a.ID, a.Location)
		}
	}
	if s.Start != "" && !locations[s.Start] {
		l.addf("start location '%s' is unknown", s.Start)
	}

	for _, it := range s.World.Items {
		l.checkID("item key", it.Key)
		h := it.Holder
		switch {
		case h.Kind == world.HeldByLocation && !locations[h.Ref],
			h.Kind == world.HeldByEntity && !entities[h.Ref],
			h.Kind == world.HeldByActor && !actors[h.Ref]:
			l.addf("item '%s' is held by unknown %s '%s'", it.Key, h.Kind, h.Ref)
		}
		if it.Damage != "" && it.Kind != world.ItemWeapon {
			l.addf("item '%s' has damage but is not a weapon", it.Key)
		}
		if it.Damage != "" && !dice.Valid(it.Damage) {
			l.addf("item '%s' has invalid damage '%s'", it.Key, it.Damage)
		}
	}

	for _, loc := range slices.Sorted(maps.Keys(s.World.Mentions)) {
		if !locations[loc] {
			l.addf("mentions refer to unknown location '%s'", loc)
		}
	}
	return l.problems
}
