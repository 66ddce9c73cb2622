// Package sqlite provides a SQLite-backed publish history.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. It implements driven.PublishLog over a single database
// connection.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each applied version is recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.confrep/data/history.db
package sqlite
