package services

import (
	"context"
	"sync"
)

// MockGenerator is a mock TextGenerator for testing
type MockGenerator struct {
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	// Track calls for testing
	Prompts []string

	mu sync.Mutex
}

func NewMockGenerator(reply string) *MockGenerator {
	return &MockGenerator{
		CompleteFunc: func(context.Context, string) (string, error) {
			return reply, nil
		},
	}
}

func (m *MockGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.Prompts = append(m.Prompts, prompt)
	fn := m.CompleteFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, prompt)
	}
	return "", ErrEmptyCompletion
}

// CallCount returns how many prompts were sent.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Prompts)
}
