// Package gemini provides an implementation of the generation.Generator interface
// that uses Google's Gemini API to propose new task titles.
//
// This package is an infrastructure adapter: it translates a plain-text prompt
// into a Gemini GenerateContent request and returns the text of each candidate.
//
// Key components:
//
// 1. Generator:
//   - Implements the generation.Generator interface
//   - Sends prompts with the configured model, temperature and top-p
//
// 2. Error Handling:
//   - Retries transient API errors with exponential backoff and jitter
//   - Treats safety blocks and empty responses as permanent failures
//
// The package depends on the google.golang.org/genai client library.
package gemini
