// Package mocks provides centralized mock implementations for testing.
//
// Mocks here are hand-written structs with function fields for custom
// behavior and default return values otherwise:
//
//	gen := &mocks.MockGenerator{
//	    GenerateTaskIdeasFn: func(ctx context.Context, prompt string) ([]string, error) {
//	        return []string{"Draft launch checklist"}, nil
//	    },
//	}
//
// When adding a new mock, name the file after the interface being mocked.
package mocks
