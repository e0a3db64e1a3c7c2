package persistence

import "strings"

// QueryBuilder rewrites the "?"-placeholder queries repository.go is
// written against into whatever the active Dialect actually expects,
// so repository.go never needs an if-postgres branch of its own.
type QueryBuilder struct {
	dialect Dialect
}

// NewQueryBuilder builds a QueryBuilder bound to dialect.
func NewQueryBuilder(dialect Dialect) *QueryBuilder {
	return &QueryBuilder{dialect: dialect}
}

// Build rewrites a "?"-placeholder query for the bound dialect. On
// SQLite the query passes through unchanged; on PostgreSQL every "?"
// is renumbered to "$1", "$2", and so on.
//
// Example:
//
//	input:    "SELECT id, hp, gold FROM players WHERE account_id = ?"
//	SQLite:   "SELECT id, hp, gold FROM players WHERE account_id = ?"
//	Postgres: "SELECT id, hp, gold FROM players WHERE account_id = $1"
func (qb *QueryBuilder) Build(query string) string {
	if _, ok := qb.dialect.(*SQLiteDialect); ok {
		return query
	}

	var result strings.Builder
	position := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result.WriteString(qb.dialect.Placeholder(position))
			position++
		} else {
			result.WriteByte(query[i])
		}
	}
	return result.String()
}

// BuildWithReturning appends a RETURNING clause on backends that need
// one. repository.go's insertReturningID is the one caller: the
// account and player inserts need the new row's id back regardless of
// dialect.
//
// Example:
//
//	input:    "INSERT INTO accounts (username, password_hash) VALUES (?, ?)", "id"
//	SQLite:   "INSERT INTO accounts (username, password_hash) VALUES (?, ?)"
//	Postgres: "INSERT INTO accounts (username, password_hash) VALUES ($1, $2) RETURNING id"
func (qb *QueryBuilder) BuildWithReturning(query string, column string) string {
	converted := qb.Build(query)
	if !qb.dialect.SupportsLastInsertID() {
		converted += qb.dialect.ReturningClause(column)
	}
	return converted
}
