package execute

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/turn-authority/pkg/world"
)

// ItemFactory materializes an item that narration mentioned but the world
// has not created yet.
type ItemFactory interface {
	Materialize(ctx context.Context, name string, loc world.Location) (world.Item, error)
}

// DefaultItemFactory builds a plain, light miscellaneous item from the name.
type DefaultItemFactory struct{}

func (DefaultItemFactory) Materialize(_ context.Context, name string, _ world.Location) (world.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return world.Item{}, fmt.Errorf("cannot materialize an unnamed item")
	}
	return world.Item{
		Key:    strings.ReplaceAll(strings.ToLower(name), " ", "_"),
		Name:   cases.Title(language.English).String(name),
		Kind:   world.ItemMisc,
		Weight: 1,
	}, nil
}

// spawnMentioned materializes a mentioned item at the current location.
// A failing factory falls back to the default so the take still resolves.
func (e *Executor) spawnMentioned(x *execution, name string) (world.Item, error) {
	it, err := e.items.Materialize(x.ctx, name, x.loc)
	if err != nil {
		e.logger.Warn("Item factory failed, using default", "name", name, "error", err)
		it, err = DefaultItemFactory{}.Materialize(x.ctx, name, x.loc)
		if err != nil {
			return world.Item{}, err
		}
	}
	spawned, err := e.world.SpawnItem(it, world.AtLocation(x.loc.Key))
	if err != nil {
		return world.Item{}, fmt.Errorf("failed to materialize %s: %w", name, err)
	}
	e.world.Forget(x.loc.Key, name)
	e.logger.Debug("Materialized mentioned item", "item_id", spawned.ID, "item_key", spawned.Key, "location", x.loc.Key)
	return spawned, nil
}
