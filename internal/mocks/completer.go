package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/mom-agent/internal/generation"
)

// CompletionResponse is a canned reply for one model.
type CompletionResponse struct {
	Reply string
	Err   error
}

// MockCompleter implements generation.Completer for testing.
type MockCompleter struct {
	// ProviderName is returned by Name; defaults to "Mock".
	ProviderName string

	// CompleteFn, when set, overrides every other behavior.
	CompleteFn func(ctx context.Context, req generation.CompletionRequest) (string, error)

	// Responses keyed by model take precedence over Reply and Err.
	Responses map[string]CompletionResponse

	// Default response values
	Reply string
	Err   error

	mu       sync.Mutex
	requests []generation.CompletionRequest
}

// Complete implements generation.Completer.
func (m *MockCompleter) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, req)
	}
	if resp, ok := m.Responses[req.Model]; ok {
		return resp.Reply, resp.Err
	}
	return m.Reply, m.Err
}

// Name implements generation.Completer.
func (m *MockCompleter) Name() string {
	if m.ProviderName == "" {
		return "Mock"
	}
	return m.ProviderName
}

// Requests returns a copy of every request received, in order.
func (m *MockCompleter) Requests() []generation.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generation.CompletionRequest(nil), m.requests...)
}

// RequestedModels returns the model of every request received, in order.
func (m *MockCompleter) RequestedModels() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.requests))
	for i, r := range m.requests {
		out[i] = r.Model
	}
	return out
}

// CallCount returns how many times Complete was called.
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
