package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/tasks-api/internal/generation"
)

var _ generation.Generator = (*MockGenerator)(nil)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateTaskIdeasFn allows test cases to mock the GenerateTaskIdeas behavior
	GenerateTaskIdeasFn func(ctx context.Context, prompt string) ([]string, error)

	// Default response values
	Outputs []string
	Err     error

	mu      sync.Mutex
	prompts []string
}

// GenerateTaskIdeas implements the generation.Generator interface
func (m *MockGenerator) GenerateTaskIdeas(ctx context.Context, prompt string) ([]string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateTaskIdeasFn != nil {
		return m.GenerateTaskIdeasFn(ctx, prompt)
	}
	return m.Outputs, m.Err
}

// Prompts returns the prompts received so far, oldest first.
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// CallCount returns how many times GenerateTaskIdeas was called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// NewMockGeneratorWithOutputs creates a MockGenerator that returns outputs
func NewMockGeneratorWithOutputs(outputs ...string) *MockGenerator {
	return &MockGenerator{Outputs: outputs}
}

// NewMockGeneratorWithError creates a MockGenerator that returns err
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}
