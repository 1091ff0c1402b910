// Package postgres provides the PostgreSQL implementation of store.TaskStore.
// It uses database/sql with the pgx stdlib driver, maps PostgreSQL error codes
// to store errors, and ships the schema as embedded goose migrations.
package postgres
