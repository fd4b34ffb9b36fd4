// Package sqlite provides a SQLite-backed implementation of driven.Storage.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Every key (uploaded documents, chat
// history, selected model, system prompt, account profile) is one row of a
// single key-value table holding the JSON value.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.ragchat/data/ragchat.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode. Concurrent writers to the same key are last-write-wins.
package sqlite
