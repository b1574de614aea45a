// Package db provides the database layer for the Avisha ledger.
// It encapsulates all interactions with the underlying SQLite database, which holds the
// persisted ledger as a blob in a key-value slot table.
//
// This package is responsible for:
// - Establishing and managing database connections (`db.go`).
// - Implementing the domain.BlobRepository interface on top of the `slot` table (`slot_repo.go`).
// - Managing database migrations (`migrations/`).
package db
