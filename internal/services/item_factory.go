package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jwebster45206/turn-authority/pkg/execute"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

// GeneratedItemFactory asks a provider to flesh out items that are mentioned
// in a scene but not yet in the world. Structural fields come from
// execute.DefaultItemFactory; the provider only adds kind, weight and prose.
type GeneratedItemFactory struct {
	gen    TextGenerator
	logger *slog.Logger
}

var _ execute.ItemFactory = (*GeneratedItemFactory)(nil)

func NewGeneratedItemFactory(gen TextGenerator, logger *slog.Logger) *GeneratedItemFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &GeneratedItemFactory{gen: gen, logger: logger}
}

type generatedItem struct {
	Description string  `json:"description"`
	Kind        string  `json:"kind"`
	Weight      float64 `json:"weight"`
}

var generatedKinds = map[world.ItemKind]bool{
	world.ItemWeapon: true, world.ItemArmor: true, world.ItemShield: true,
	world.ItemAccessory: true, world.ItemFood: true, world.ItemDrink: true,
	world.ItemTool: true, world.ItemContainer: true, world.ItemMisc: true,
}

func (f *GeneratedItemFactory) Materialize(ctx context.Context, name string, loc world.Location) (world.Item, error) {
	base, err := execute.DefaultItemFactory{}.Materialize(ctx, name, loc)
	if err != nil {
		return world.Item{}, err
	}

	prompt := fmt.Sprintf(`A player picks up "%s" in %s. Reply with JSON only: `+
		`{"description": one sentence, "kind": one of weapon|armor|shield|accessory|food|drink|tool|container|misc, "weight": pounds}.`,
		name, loc.DisplayName())
	text, err := f.gen.Complete(ctx, prompt)
	if err != nil {
		return world.Item{}, fmt.Errorf("failed to generate item: %w", err)
	}

	var g generatedItem
	if err := json.Unmarshal([]byte(extractJSON(text)), &g); err != nil {
		return world.Item{}, fmt.Errorf("failed to parse generated item: %w", err)
	}

	base.Description = strings.TrimSpace(g.Description)
	if kind := world.ItemKind(strings.ToLower(g.Kind)); generatedKinds[kind] {
		base.Kind = kind
	}
	if g.Weight > 0 && g.Weight <= 200 {
		base.Weight = g.Weight
	}
	f.logger.Debug("Generated item", "name", base.Name, "kind", base.Kind)
	return base, nil
}

// extractJSON trims prose and code fences around the first JSON object.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return text
	}
	return text[start : end+1]
}
