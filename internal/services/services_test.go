package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/turn-authority/internal/config"
	"github.com/jwebster45206/turn-authority/pkg/action"
	"github.com/jwebster45206/turn-authority/pkg/complication"
	"github.com/jwebster45206/turn-authority/pkg/world"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func anthropicStub(t *testing.T, status int, reply any) (*AnthropicService, *AnthropicRequest) {
	t.Helper()
	var got AnthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(reply)
	}))
	t.Cleanup(srv.Close)

	svc := NewAnthropicService("test-key", "", quietLogger())
	svc.baseURL = srv.URL
	return svc, &got
}

func TestAnthropicService_Complete(t *testing.T) {
	svc, got := anthropicStub(t, http.StatusOK, map[string]any{
		"content": []map[string]string{
			{"type": "text", "text": `{"type": "cost", `},
			{"type": "tool_use", "text": "ignored"},
			{"type": "text", "text": `"description": "Rain."}`},
		},
	})

	text, err := svc.Complete(context.Background(), "the player crosses the bridge")

	require.NoError(t, err)
	assert.Equal(t, `{"type": "cost", "description": "Rain."}`, text)
	assert.Equal(t, DefaultAnthropicModel, got.Model)
	assert.Equal(t, SystemPrompt, got.System)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "the player crosses the bridge", got.Messages[0].Content)
}

func TestAnthropicService_Errors(t *testing.T) {
	t.Run("non-200", func(t *testing.T) {
		svc, _ := anthropicStub(t, http.StatusTooManyRequests, map[string]string{"message": "slow down"})
		_, err := svc.Complete(context.Background(), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 429")
	})

	t.Run("api error body", func(t *testing.T) {
		svc, _ := anthropicStub(t, http.StatusOK, map[string]any{"error": map[string]string{"type": "overloaded", "message": "busy"}})
		_, err := svc.Complete(context.Background(), "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "busy")
	})

	t.Run("no text", func(t *testing.T) {
		svc, _ := anthropicStub(t, http.StatusOK, map[string]any{"content": []any{}})
		_, err := svc.Complete(context.Background(), "x")
		assert.ErrorIs(t, err, ErrEmptyCompletion)
	})
}

func TestGeminiResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":`), genai.Text(`1}`)}},
		}},
	}
	assert.Equal(t, `{"a":1}`, responseText(resp))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))
	assert.Empty(t, responseText(nil))
}

func TestNewGenerator(t *testing.T) {
	ctx := context.Background()

	gen, closeFn, err := NewGenerator(ctx, &config.Config{LLMProvider: config.ProviderNone}, quietLogger())
	require.NoError(t, err)
	assert.Nil(t, gen)
	assert.NoError(t, closeFn())

	gen, _, err = NewGenerator(ctx, &config.Config{LLMProvider: config.ProviderAnthropic, AnthropicAPIKey: "k"}, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &AnthropicService{}, gen)

	_, _, err = NewGenerator(ctx, &config.Config{LLMProvider: "parrot"}, quietLogger())
	assert.Error(t, err)
}

func TestGeneratedItemFactory(t *testing.T) {
	ctx := context.Background()
	loc := world.Location{Key: "old_well", Name: "Old Well"}

	t.Run("fills in generated fields", func(t *testing.T) {
		gen := NewMockGenerator("Sure!\n```json\n{\"description\": \"A frayed hemp rope.\", \"kind\": \"Tool\", \"weight\": 5}\n```")
		f := NewGeneratedItemFactory(gen, quietLogger())

		it, err := f.Materialize(ctx, "old rope", loc)

		require.NoError(t, err)
		assert.Equal(t, "old_rope", it.Key)
		assert.Equal(t, "Old Rope", it.Name)
		assert.Equal(t, world.ItemTool, it.Kind)
		assert.InDelta(t, 5.0, it.Weight, 1e-9)
		assert.Equal(t, "A frayed hemp rope.", it.Description)
		require.Equal(t, 1, gen.CallCount())
		assert.Contains(t, gen.Prompts[0], `"old rope"`)
		assert.Contains(t, gen.Prompts[0], "Old Well")
	})

	t.Run("ignores implausible fields", func(t *testing.T) {
		gen := NewMockGenerator(`{"description": "Heavy.", "kind": "key", "weight": 9000}`)
		it, err := NewGeneratedItemFactory(gen, quietLogger()).Materialize(ctx, "anvil", loc)

		require.NoError(t, err)
		assert.Equal(t, world.ItemMisc, it.Kind)
		assert.InDelta(t, 1.0, it.Weight, 1e-9)
	})

	t.Run("provider failure is an error", func(t *testing.T) {
		gen := &MockGenerator{CompleteFunc: func(context.Context, string) (string, error) {
			return "", errors.New("offline")
		}}
		_, err := NewGeneratedItemFactory(gen, quietLogger()).Materialize(ctx, "anvil", loc)
		assert.Error(t, err)
	})
}

func TestMockGenerator_DrivesOracle(t *testing.T) {
	gen := NewMockGenerator(`{"type": "interruption", "description": "A bell tolls.", "mechanical_effects": [{"type": "time_advance", "value": 10}]}`)
	o := complication.NewOracle(complication.Deps{
		Calculator: complication.NewCalculator(complication.DefaultConfig()),
		Trigger:    complication.FixedTrigger(0),
		Generator:  gen,
	}, quietLogger())

	res := o.Check(context.Background(), complication.CheckRequest{
		SessionID:      "s1",
		ActionsSummary: "wait",
		LocationName:   "Chapel",
		RiskTags:       action.RiskTags{action.RiskSacred},
		LocationDanger: world.DangerSafe,
	})

	require.True(t, res.Triggered)
	require.NotNil(t, res.Complication)
	assert.Equal(t, "A bell tolls.", res.Complication.Description)
	require.Len(t, res.Complication.Effects, 1)
	assert.Equal(t, 10, res.Complication.Effects[0].Amount)
	assert.Equal(t, 1, gen.CallCount())
}

func ollamaStub(t *testing.T, models []string, reply string) (*OllamaService, *ollamaChatRequest) {
	t.Helper()
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			var tags ollamaTagsResponse
			for _, m := range models {
				tags.Models = append(tags.Models, ollamaModel{Name: m})
			}
			_ = json.NewEncoder(w).Encode(tags)
		case "/api/chat":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_ = json.NewEncoder(w).Encode(ollamaChatResponse{Message: ollamaMessage{Role: "assistant", Content: reply}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return NewOllamaService(srv.URL, "llama3", quietLogger()), &got
}

func TestOllamaService_Complete(t *testing.T) {
	svc, got := ollamaStub(t, []string{"llama3"}, `{"description":"A rat bolts."}`)

	text, err := svc.Complete(context.Background(), "complicate this")
	require.NoError(t, err)
	assert.Equal(t, `{"description":"A rat bolts."}`, text)
	assert.Equal(t, "llama3", got.Model)
	assert.Equal(t, "json", got.Format)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, SystemPrompt, got.Messages[0].Content)
	assert.Equal(t, "complicate this", got.Messages[1].Content)

	empty, _ := ollamaStub(t, []string{"llama3"}, "")
	_, err = empty.Complete(context.Background(), "x")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestOllamaService_WaitForModel(t *testing.T) {
	ready, _ := ollamaStub(t, []string{"mistral", "llama3"}, "")
	assert.NoError(t, ready.WaitForModel(context.Background(), 2, time.Millisecond))

	missing, _ := ollamaStub(t, []string{"mistral"}, "")
	err := missing.WaitForModel(context.Background(), 2, time.Millisecond)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `model "llama3" is not pulled`)
}
