package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/turn-authority/internal/config"
	"github.com/jwebster45206/turn-authority/pkg/complication"
)

// ErrEmptyCompletion is returned when a provider answers with no text.
var ErrEmptyCompletion = errors.New("empty completion")

// SystemPrompt frames every completion request.
const SystemPrompt = `You write content for a turn-based text adventure. ` +
	`You never decide whether the player's action succeeds. ` +
	`Reply with a single JSON object in the shape the request asks for and nothing else.`

// TextGenerator is satisfied by every provider in this package.
type TextGenerator interface {
	complication.Generator
}

// NewGenerator returns the provider selected by cfg, or nil when generation
// is disabled. The returned close func must be called on shutdown.
func NewGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (TextGenerator, func() error, error) {
	noop := func() error { return nil }
	switch cfg.LLMProvider {
	case config.ProviderAnthropic:
		return NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, logger), noop, nil
	case config.ProviderGemini:
		g, err := NewGeminiService(ctx, cfg.GeminiAPIKey, cfg.ModelName, logger)
		if err != nil {
			return nil, noop, err
		}
		return g, g.Close, nil
	case config.ProviderOllama:
		o := NewOllamaService(cfg.OllamaURL, cfg.ModelName, logger)
		if err := o.WaitForModel(ctx, 5, 2*time.Second); err != nil {
			return nil, noop, err
		}
		return o, noop, nil
	case config.ProviderNone, "":
		return nil, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}
