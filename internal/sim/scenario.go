// Package sim replays scripted turns against a world so that rules,
// odds and complication policy can be exercised end to end.
package sim

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/actor"
	"github.com/jwebster45206/turn-authority/pkg/complication"
	"github.com/jwebster45206/turn-authority/pkg/execute"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

// Scenario is a world plus the turns a player submits against it.
type Scenario struct {
	Name  string `yaml:"name"`
	Scene string `yaml:"scene,omitempty"`
	// Start places the player character when World has no actor for it.
	Start string             `yaml:"start,omitempty"`
	PC    actor.PCSpec       `yaml:"pc"`
	World world.Snapshot     `yaml:"world"`
	Arcs  []complication.Arc `yaml:"arcs,omitempty"`
	Plans execute.Plans      `yaml:"plans,omitempty"`
	Turns [][]action.Action  `yaml:"turns"`
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and checks a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks that the scenario can be built into a world.
func (s *Scenario) Validate() error {
	if s.PC.ID == "" {
		return errors.New("scenario pc has no id")
	}
	if len(s.World.Locations) == 0 {
		return errors.New("scenario world has no locations")
	}
	hasActor := slices.ContainsFunc(s.World.Actors, func(a world.ActorState) bool { return a.ID == s.PC.ID })
	if !hasActor && s.Start == "" {
		return fmt.Errorf("scenario has no start location for %q", s.PC.ID)
	}
	for key, p := range s.Plans {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("plan %q: %w", key, err)
		}
	}
	for i, turn := range s.Turns {
		for j, a := range turn {
			if !a.Kind.Valid() {
				return fmt.Errorf("turn %d action %d: unknown kind %q", i+1, j+1, a.Kind)
			}
		}
	}
	return nil
}

// Build materializes the scenario's world and player character.
func (s *Scenario) Build() (*world.Memory, *actor.PC, error) {
	m, err := world.NewMemory(s.World)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build world: %w", err)
	}
	spec := s.PC
	pc, err := actor.NewPCFromSpec(&spec)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build pc: %w", err)
	}
	if _, err := m.Actor(pc.ID()); err != nil {
		hp := spec.HP
		if hp == 0 {
			hp = pc.MaxHP()
		}
		if err := m.AddActor(world.ActorState{ID: pc.ID(), Location: s.Start, HP: hp, MaxHP: pc.MaxHP()}); err != nil {
			return nil, nil, fmt.Errorf("failed to place pc: %w", err)
		}
	}
	return m, pc, nil
}
