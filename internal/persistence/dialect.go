package persistence

// Dialect abstracts the SQL differences between the two backends a
// Database can run against: SQLite for a single towerd process, or
// PostgreSQL for a deployment where more than one process shares the
// same accounts/players/saves tables migrate() creates.
type Dialect interface {
	// DriverName returns the driver name for sql.Open().
	// SQLite: "sqlite", PostgreSQL: "postgres"
	DriverName() string

	// Placeholder returns the parameter placeholder for the given
	// position (1-indexed). QueryBuilder uses this to rewrite the
	// "?"-style queries repository.go is written against into
	// whatever the backend actually expects.
	// SQLite: "?" (ignores position), PostgreSQL: "$1", "$2", etc.
	Placeholder(position int) string

	// SupportsLastInsertID reports whether the id of a freshly
	// inserted row (an account, a player, a save) can be read back
	// with LastInsertId() rather than a RETURNING clause.
	// SQLite: true, PostgreSQL: false (uses RETURNING clause instead)
	SupportsLastInsertID() bool

	// ReturningClause returns the RETURNING clause repository.go's
	// account- and player-creation inserts need to get the new row's
	// id back on a backend that can't use LastInsertId().
	// SQLite: "" (not used), PostgreSQL: "RETURNING id"
	ReturningClause(column string) string

	// InitStatements returns the statements newDatabase runs once
	// against a freshly opened connection, before migrate() creates
	// any table.
	// SQLite: PRAGMA statements, PostgreSQL: extension creation
	InitStatements() []string

	// IsDuplicateKeyError reports whether err is a unique constraint
	// violation. auth.Register does not go through it: it looks the
	// username up first and returns auth.ErrAccountExists.
	IsDuplicateKeyError(err error) bool

	// CaseInsensitiveCollation returns the collation clause migrate()
	// applies to accounts.username, so logging in as "Hero" finds the
	// account registered as "hero".
	// SQLite: "COLLATE NOCASE", PostgreSQL: "" (uses CITEXT type instead)
	CaseInsensitiveCollation() string
}

// DialectType identifies which Dialect a Config selects.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect builds the Dialect named by dialectType. An empty or
// unrecognized type falls back to SQLite, so a Config left at its
// zero value still opens a working single-file database.
func NewDialect(dialectType DialectType) Dialect {
	switch dialectType {
	case DialectPostgres:
		return &PostgresDialect{}
	default:
		return &SQLiteDialect{}
	}
}
