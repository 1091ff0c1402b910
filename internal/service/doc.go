// Package service contains the application-specific use cases for tasks.
// It orchestrates domain validation and the store.TaskStore to fulfill the
// operations exposed by the API layer.
//
// Key components:
//
// 1. TaskService:
//   - Lists, reads, creates, updates and deletes tasks
//   - Runs every mutation inside a store transaction
//   - Translates store errors into ErrTaskNotFound, ErrIntegrity and ErrStorage
//
// 2. SuggestionService:
//   - Derives rule-based follow-up task titles from existing titles
//   - Asks an external generation.Generator for ideas and post-filters them
//
// The service layer depends on domain entities and the store interfaces, never
// on a specific database implementation.
package service
