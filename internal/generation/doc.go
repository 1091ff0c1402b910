// Package generation provides the interface for external text generation
// services used to propose new task titles. It keeps the application core
// independent of a specific LLM provider (Gemini) and defines the errors those
// providers report.
package generation
