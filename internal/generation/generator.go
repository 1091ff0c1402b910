package generation

import (
	"context"
)

// Generator defines the interface for generating task ideas from a prompt.
// It is the boundary between the application core and external LLM services.
type Generator interface {
	// GenerateTaskIdeas sends prompt to the language model and returns the raw
	// text of each candidate it produced. Callers post-filter the output.
	GenerateTaskIdeas(ctx context.Context, prompt string) ([]string, error)
}

// Disabled is a Generator used when no language model is configured.
type Disabled struct{}

var _ Generator = Disabled{}

// GenerateTaskIdeas always returns ErrGeneratorUnavailable.
func (Disabled) GenerateTaskIdeas(context.Context, string) ([]string, error) {
	return nil, ErrGeneratorUnavailable
}
