// Package sqlite provides a SQLite-based implementation of the session store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. It persists the chat state the bot needs
// across restarts:
//
//   - sessions: chats that have been greeted, with first and last activity
//   - poll_cursor: the last processed chat update offset
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.docseek/data/state.db
package sqlite
