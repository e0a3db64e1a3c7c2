package persistence

import "strings"

// SQLiteDialect is the default backend: one file under the data
// directory, good enough for a single towerd process.
type SQLiteDialect struct{}

// DriverName returns "sqlite", matching the modernc.org/sqlite driver
// registered by persistence's blank import.
func (d *SQLiteDialect) DriverName() string {
	return "sqlite"
}

// Placeholder returns "?" regardless of position; SQLite doesn't
// number its placeholders the way PostgreSQL does.
func (d *SQLiteDialect) Placeholder(position int) string {
	return "?"
}

// SupportsLastInsertID is true: sql.Result.LastInsertId() works on
// SQLite, so account/player inserts don't need a RETURNING clause.
func (d *SQLiteDialect) SupportsLastInsertID() bool {
	return true
}

// ReturningClause is unused on SQLite.
func (d *SQLiteDialect) ReturningClause(column string) string {
	return ""
}

// InitStatements tunes the connection for a game server's access
// pattern: frequent small writes (autosave, forge, trade) from many
// goroutines sharing one *sql.DB.
func (d *SQLiteDialect) InitStatements() []string {
	return []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

// IsDuplicateKeyError matches SQLite's UNIQUE constraint error text,
// which covers both accounts.username and the per-slot uniqueness
// constraints on equipment and inventory.
func (d *SQLiteDialect) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// CaseInsensitiveCollation applies NOCASE to accounts.username so
// login lookups ignore case.
func (d *SQLiteDialect) CaseInsensitiveCollation() string {
	return "COLLATE NOCASE"
}
