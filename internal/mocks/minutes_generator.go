package mocks

import (
	"context"
	"sync"
)

// GenerateCall captures the arguments of one GenerateMoM call.
type GenerateCall struct {
	Transcript     string
	ProjectContext string
	ProjectName    string
}

// MockMinutesGenerator implements service.MinutesGenerator for testing.
type MockMinutesGenerator struct {
	GenerateMoMFn    func(ctx context.Context, transcript, projectContext, projectName string) (string, error)
	TestConnectionFn func(ctx context.Context) bool

	// Default response values
	Minutes      string
	Err          error
	Connected    bool
	ProviderName string
	ModelList    []string

	GenerateMoMCalls struct {
		mu    sync.Mutex
		Count int
		Calls []GenerateCall
	}
}

// GenerateMoM implements service.MinutesGenerator.
func (m *MockMinutesGenerator) GenerateMoM(ctx context.Context, transcript, projectContext, projectName string) (string, error) {
	m.GenerateMoMCalls.mu.Lock()
	m.GenerateMoMCalls.Count++
	m.GenerateMoMCalls.Calls = append(m.GenerateMoMCalls.Calls, GenerateCall{
		Transcript:     transcript,
		ProjectContext: projectContext,
		ProjectName:    projectName,
	})
	m.GenerateMoMCalls.mu.Unlock()

	if m.GenerateMoMFn != nil {
		return m.GenerateMoMFn(ctx, transcript, projectContext, projectName)
	}
	return m.Minutes, m.Err
}

// TestConnection implements service.MinutesGenerator.
func (m *MockMinutesGenerator) TestConnection(ctx context.Context) bool {
	if m.TestConnectionFn != nil {
		return m.TestConnectionFn(ctx)
	}
	return m.Connected
}

// Provider implements service.MinutesGenerator.
func (m *MockMinutesGenerator) Provider() string {
	if m.ProviderName == "" {
		return "Mock"
	}
	return m.ProviderName
}

// Models implements service.MinutesGenerator.
func (m *MockMinutesGenerator) Models() []string {
	return append([]string(nil), m.ModelList...)
}

// GenerateCount returns how many times GenerateMoM was called.
func (m *MockMinutesGenerator) GenerateCount() int {
	m.GenerateMoMCalls.mu.Lock()
	defer m.GenerateMoMCalls.mu.Unlock()
	return m.GenerateMoMCalls.Count
}

// LastGenerateCall returns the arguments of the most recent call.
func (m *MockMinutesGenerator) LastGenerateCall() (GenerateCall, bool) {
	m.GenerateMoMCalls.mu.Lock()
	defer m.GenerateMoMCalls.mu.Unlock()
	if len(m.GenerateMoMCalls.Calls) == 0 {
		return GenerateCall{}, false
	}
	return m.GenerateMoMCalls.Calls[len(m.GenerateMoMCalls.Calls)-1], true
}
