package persistence

import "time"

// Config selects and configures the backend persistence.Open talks
// to. cmd/towerd builds one from ServerConfig.Database; tests build
// one directly against a temp-file SQLite path.
type Config struct {
	// Driver is "sqlite" or "postgres". Anything else falls back to
	// sqlite via NewDialect.
	Driver string

	// SQLitePath is the data file Open creates/opens when Driver is
	// "sqlite" (or empty).
	SQLitePath string

	// Postgres holds connection settings used when Driver is
	// "postgres".
	Postgres PostgresConfig
}

// PostgresConfig holds the connection and pool settings openPostgres
// needs. Zero-valued pool fields (MaxOpenConns, MaxIdleConns,
// ConnMaxLifetime) are filled from DefaultPostgresConfig by
// applyPostgresPoolDefaults before the pool is configured.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns a Config pointed at a local SQLite file, the
// zero-configuration path a fresh towerd checkout runs with before an
// operator sets up PostgreSQL.
func DefaultConfig(sqlitePath string) Config {
	return Config{
		Driver:     "sqlite",
		SQLitePath: sqlitePath,
	}
}

// DefaultPostgresConfig returns pool settings sized for one towerd
// process under normal play load: enough open connections to cover
// concurrent autosaves without starving interactive command dispatch,
// recycled periodically so a long-lived process doesn't accumulate
// connections a load balancer has quietly dropped.
func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:            "localhost",
		Port:            5432,
		SSLMode:         "disable",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}
}
