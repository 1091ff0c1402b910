// Package sqlite implements store.TaskStore on SQLite through GORM.
//
// It is the default backend: a single database file, schema managed by
// GORM AutoMigrate, dates stored as YYYY-MM-DD text so that lexical order is
// calendar order.
package sqlite
