package persistence

import (
	"fmt"
	"strings"
)

// PostgresDialect is the backend for a deployment where more than one
// towerd process needs to share the same accounts/players tables
// instead of each opening its own SQLite file.
type PostgresDialect struct{}

// DriverName returns "postgres", matching the lib/pq driver
// registered by persistence's blank import.
func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

// Placeholder returns "$N" for the given position; PostgreSQL
// requires its placeholders numbered in order of appearance.
func (d *PostgresDialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

// SupportsLastInsertID is false: lib/pq has no LastInsertId support,
// so account/player inserts need ReturningClause instead.
func (d *PostgresDialect) SupportsLastInsertID() bool {
	return false
}

// ReturningClause appends "RETURNING <column>" to an INSERT, the only
// way to get a new account's or player's id back on this backend.
func (d *PostgresDialect) ReturningClause(column string) string {
	return fmt.Sprintf(" RETURNING %s", column)
}

// InitStatements enables the citext extension migrate() relies on for
// a case-insensitive accounts.username column; PostgreSQL enforces
// foreign keys unconditionally, so there's no PRAGMA equivalent to run.
func (d *PostgresDialect) InitStatements() []string {
	return []string{
		"CREATE EXTENSION IF NOT EXISTS citext",
	}
}

// IsDuplicateKeyError matches PostgreSQL's unique_violation (SQLSTATE
// 23505), covering both a taken username and the per-slot uniqueness
// constraints on equipment and inventory.
func (d *PostgresDialect) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "23505") ||
		strings.Contains(errStr, "unique constraint")
}

// CaseInsensitiveCollation is empty: accounts.username is declared
// CITEXT on this backend instead of carrying a per-column collation.
func (d *PostgresDialect) CaseInsensitiveCollation() string {
	return ""
}
