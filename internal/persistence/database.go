// Package persistence is the opaque save/load store the game core
// talks to through player_id-keyed operations. It
// never imports internal/entity — callers marshal/unmarshal player
// state at the boundary (see record.go) so this package stays a thin
// SQL layer swappable between SQLite and PostgreSQL.
package persistence

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Database wraps a SQL connection and dialect, and provides the
// persistence operations the game core consumes.
type Database struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
	locks   *lockSet
}

// Open opens or creates the store described by cfg and runs migrations.
func Open(cfg Config) (*Database, error) {
	switch cfg.Driver {
	case "postgres":
		return openPostgres(cfg.Postgres)
	default:
		return openSQLite(cfg.SQLitePath)
	}
}

func openSQLite(path string) (*Database, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return newDatabase(db, &SQLiteDialect{})
}

func openPostgres(cfg PostgresConfig) (*Database, error) {
	cfg = applyPostgresPoolDefaults(cfg)

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return newDatabase(db, &PostgresDialect{})
}

// applyPostgresPoolDefaults fills any pool setting an operator left
// at its zero value with DefaultPostgresConfig's sizing, so a
// ServerConfig that only names Host/Port/User/Password/Database still
// gets pooling tuned for normal play load rather than sql.DB's
// unlimited-connections default.
func applyPostgresPoolDefaults(cfg PostgresConfig) PostgresConfig {
	defaults := DefaultPostgresConfig()
	if cfg.MaxOpenConns == 0 {
		cfg.MaxOpenConns = defaults.MaxOpenConns
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = defaults.MaxIdleConns
	}
	if cfg.ConnMaxLifetime == 0 {
		cfg.ConnMaxLifetime = defaults.ConnMaxLifetime
	}
	return cfg
}

func newDatabase(db *sql.DB, dialect Dialect) (*Database, error) {
	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("dialect init: %w", err)
		}
	}

	d := &Database{
		db:      db,
		dialect: dialect,
		qb:      NewQueryBuilder(dialect),
		locks:   newLockSet(),
	}

	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return d, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// DB returns the underlying sql.DB for advanced operations.
func (d *Database) DB() *sql.DB {
	return d.db
}

// migrate creates the schema described in record.go if it doesn't exist.
func (d *Database) migrate() error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	usernameType := "TEXT"
	if d.dialect.DriverName() == "postgres" {
		serial = "SERIAL PRIMARY KEY"
		usernameType = "CITEXT" // case-insensitive via the citext extension
	}
	coll := d.dialect.CaseInsensitiveCollation()

	statements := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS accounts (
			id %s,
			username %s UNIQUE NOT NULL %s,
			password_hash TEXT NOT NULL,
			nickname TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			last_login TIMESTAMP,
			last_ip TEXT,
			banned INTEGER NOT NULL DEFAULT 0
		)`, serial, usernameType, coll),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS login_attempts (
			id %s,
			account_id INTEGER REFERENCES accounts(id) ON DELETE CASCADE,
			username TEXT NOT NULL,
			ip TEXT NOT NULL,
			user_agent TEXT NOT NULL DEFAULT '',
			success INTEGER NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, serial),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS players (
			id %s,
			account_id INTEGER NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
			hp INTEGER NOT NULL,
			max_hp INTEGER NOT NULL,
			base_atk INTEGER NOT NULL,
			base_def INTEGER NOT NULL,
			exp INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			gold INTEGER NOT NULL DEFAULT 0,
			pos_x INTEGER NOT NULL DEFAULT 0,
			pos_y INTEGER NOT NULL DEFAULT 0,
			floor_level INTEGER NOT NULL DEFAULT 1,
			merchant_streak INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			last_played TIMESTAMP
		)`, serial),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS saves (
			id %s,
			player_id INTEGER NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			save_name TEXT NOT NULL DEFAULT 'autosave',
			floor_level INTEGER NOT NULL,
			active INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`, serial),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS equipment (
			id %s,
			player_id INTEGER NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			slot TEXT NOT NULL,
			name TEXT NOT NULL,
			atk INTEGER NOT NULL DEFAULT 0,
			def INTEGER NOT NULL DEFAULT 0,
			rarity TEXT NOT NULL,
			UNIQUE(player_id, slot)
		)`, serial),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS affixes (
			id %s,
			player_id INTEGER NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			slot TEXT NOT NULL,
			kind TEXT NOT NULL,
			base_value REAL NOT NULL,
			level INTEGER NOT NULL DEFAULT 0
		)`, serial),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS inventory (
			id %s,
			player_id INTEGER NOT NULL REFERENCES players(id) ON DELETE CASCADE,
			item_name TEXT NOT NULL,
			count INTEGER NOT NULL DEFAULT 0,
			UNIQUE(player_id, item_name)
		)`, serial),

		`CREATE INDEX IF NOT EXISTS idx_login_attempts_account_id ON login_attempts(account_id)`,
		`CREATE INDEX IF NOT EXISTS idx_players_account_id ON players(account_id)`,
		`CREATE INDEX IF NOT EXISTS idx_saves_player_id ON saves(player_id)`,
		`CREATE INDEX IF NOT EXISTS idx_equipment_player_id ON equipment(player_id)`,
		`CREATE INDEX IF NOT EXISTS idx_affixes_player_id ON affixes(player_id)`,
		`CREATE INDEX IF NOT EXISTS idx_inventory_player_id ON inventory(player_id)`,
	}

	for _, stmt := range statements {
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, stmt)
		}
	}

	return nil
}
