package world

import "maps"

// NewEntity creates an entity from a template with optional overrides.
// The overrides must carry the instance Key and Location; any other
// non-zero field replaces the template value.
func NewEntity(template *Entity, overrides *Entity) *Entity {
	if template == nil || overrides == nil {
		return nil
	}

	e := *template
	e.ID = overrides.ID
	e.Key = overrides.Key
	e.Location = overrides.Location
	if e.TemplateID == "" {
		e.TemplateID = template.Key
	}
	e.Attributes = maps.Clone(template.Attributes)
	e.Topics = maps.Clone(template.Topics)

	if overrides.Name != "" {
		e.Name = overrides.Name
	}
	if overrides.Description != "" {
		e.Description = overrides.Description
	}
	if overrides.Kind != "" {
		e.Kind = overrides.Kind
	}
	if overrides.AC != 0 {
		e.AC = overrides.AC
	}
	if overrides.HP != 0 {
		e.HP = overrides.HP
	}
	if overrides.MaxHP != 0 {
		e.MaxHP = overrides.MaxHP
	}
	if overrides.Damage != "" {
		e.Damage = overrides.Damage
	}
	if overrides.Hostile {
		e.Hostile = true
	}
	if overrides.Attitude != 0 {
		e.Attitude = overrides.Attitude
	}
	if len(overrides.Attributes) > 0 {
		if e.Attributes == nil {
			e.Attributes = make(map[string]int)
		}
		maps.Copy(e.Attributes, overrides.Attributes)
	}
	if len(overrides.Properties) > 0 {
		e.Properties = append([]string(nil), overrides.Properties...)
	}
	if e.MaxHP > 0 && e.HP == 0 {
		e.HP = e.MaxHP
	}
	if e.AC < 0 {
		e.AC = 0
	}
	return &e
}

// DefaultHostile is the template used when a complication spawns an
// unnamed hostile creature.
var DefaultHostile = Entity{
	Key:         "ambusher",
	Name:        "Ambusher",
	Description: "A hostile figure looking for trouble.",
	Kind:        EntityCreature,
	AC:          12,
	MaxHP:       9,
	Damage:      "1d6",
	Hostile:     true,
	Attitude:    -80,
	Attributes:  map[string]int{"strength": 12, "dexterity": 12},
}

// DefaultBystander is the template for an unnamed non-hostile arrival.
var DefaultBystander = Entity{
	Key:         "stranger",
	Name:        "Stranger",
	Description: "Someone who has wandered into the scene.",
	Kind:        EntityNPC,
	AC:          10,
	MaxHP:       4,
	Damage:      "1d4",
}
