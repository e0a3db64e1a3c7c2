// towerclimb-migrate migrates game data from SQLite to PostgreSQL.
//
// Usage:
//
//	go run ./cmd/towerclimb-migrate \
//	    -sqlite data/towerclimb.db \
//	    -pg-host localhost \
//	    -pg-port 5432 \
//	    -pg-user towerclimb \
//	    -pg-password towerclimb \
//	    -pg-database towerclimb
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/towerclimb/server/internal/persistence"
)

func main() {
	sqlitePath := flag.String("sqlite", "data/towerclimb.db", "Path to SQLite database")
	pgHost := flag.String("pg-host", "localhost", "PostgreSQL host")
	pgPort := flag.Int("pg-port", 5432, "PostgreSQL port")
	pgUser := flag.String("pg-user", "towerclimb", "PostgreSQL user")
	pgPassword := flag.String("pg-password", "towerclimb", "PostgreSQL password")
	pgDatabase := flag.String("pg-database", "towerclimb", "PostgreSQL database name")
	pgSSLMode := flag.String("pg-sslmode", "disable", "PostgreSQL SSL mode")
	dryRun := flag.Bool("dry-run", false, "Show what would be migrated without making changes")
	flag.Parse()

	log.Println("SQLite to PostgreSQL Migration Tool")
	log.Println("====================================")

	log.Printf("Opening SQLite database: %s", *sqlitePath)
	sqliteDB, err := sql.Open("sqlite", *sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open SQLite database: %v", err)
	}
	defer sqliteDB.Close()

	if err := sqliteDB.Ping(); err != nil {
		log.Fatalf("Failed to connect to SQLite database: %v", err)
	}

	// The Postgres side goes through persistence.Open so the schema is
	// created by the same migrate() the server itself runs, rather than
	// this tool carrying a second copy of the DDL.
	log.Printf("Opening PostgreSQL database: %s@%s:%d/%s", *pgUser, *pgHost, *pgPort, *pgDatabase)
	store, err := persistence.Open(persistence.Config{
		Driver: "postgres",
		Postgres: persistence.PostgresConfig{
			Host:     *pgHost,
			Port:     *pgPort,
			User:     *pgUser,
			Password: *pgPassword,
			Database: *pgDatabase,
			SSLMode:  *pgSSLMode,
		},
	})
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL database: %v", err)
	}
	defer store.Close()
	pgDB := store.DB()

	if *dryRun {
		log.Println("DRY RUN MODE - No changes will be made")
	}

	tables := []struct {
		name    string
		migrate func(*sql.DB, *sql.DB, bool) (int64, error)
	}{
		{"accounts", migrateAccounts},
		{"login_attempts", migrateLoginAttempts},
		{"players", migratePlayers},
		{"saves", migrateSaves},
		{"equipment", migrateEquipment},
		{"affixes", migrateAffixes},
		{"inventory", migrateInventory},
	}

	var totalRows int64
	for _, t := range tables {
		log.Printf("Migrating table: %s", t.name)
		count, err := t.migrate(sqliteDB, pgDB, *dryRun)
		if err != nil {
			log.Fatalf("Failed to migrate %s: %v", t.name, err)
		}
		log.Printf("  Migrated %d rows", count)
		totalRows += count
	}

	log.Println("====================================")
	log.Printf("Migration complete! Total rows migrated: %d", totalRows)
	if *dryRun {
		log.Println("(DRY RUN - No actual changes were made)")
	}
}

func migrateAccounts(sqlite, pg *sql.DB, dryRun bool) (int64, error) {
	rows, err := sqlite.Query(`
		SELECT id, username, password_hash, nickname, created_at, last_login, last_ip, banned
		FROM accounts
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var id int64
		var username, passwordHash, nickname string
		var createdAt sql.NullTime
		var lastLogin sql.NullTime
		var lastIP sql.NullString
		var banned int

		if err := rows.Scan(&id, &username, &passwordHash, &nickname, &createdAt, &lastLogin, &lastIP, &banned); err != nil {
			return count, err
		}

		if dryRun {
			count++
			continue
		}
		if rowExists(pg, "accounts", id) {
			continue
		}

		// Insert with the explicit ID to preserve relationships.
		_, err = pg.Exec(`
			INSERT INTO accounts (id, username, password_hash, nickname, created_at, last_login, last_ip, banned)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, id, username, passwordHash, nickname, nullTime(createdAt), nullTime(lastLogin), nullString(lastIP), banned)
		if err != nil {
			if !strings.Contains(err.Error(), "duplicate key") {
				return count, err
			}
		} else {
			count++
		}
	}

	resetSequence(pg, "accounts", dryRun)
	return count, rows.Err()
}

func migrateLoginAttempts(sqlite, pg *sql.DB, dryRun bool) (int64, error) {
	rows, err := sqlite.Query(`
		SELECT id, account_id, username, ip, user_agent, success, created_at
		FROM login_attempts
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var id int64
		var accountID sql.NullInt64
		var username, ip, userAgent string
		var success int
		var createdAt sql.NullTime

		if err := rows.Scan(&id, &accountID, &username, &ip, &userAgent, &success, &createdAt); err != nil {
			return count, err
		}

		if dryRun {
			count++
			continue
		}
		if rowExists(pg, "login_attempts", id) {
			continue
		}

		_, err = pg.Exec(`
			INSERT INTO login_attempts (id, account_id, username, ip, user_agent, success, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, id, nullInt(accountID), username, ip, userAgent, success, nullTime(createdAt))
		if err != nil {
			if !strings.Contains(err.Error(), "duplicate key") {
				return count, err
			}
		} else {
			count++
		}
	}

	resetSequence(pg, "login_attempts", dryRun)
	return count, rows.Err()
}

func migratePlayers(sqlite, pg *sql.DB, dryRun bool) (int64, error) {
	rows, err := sqlite.Query(`
		SELECT id, account_id, hp, max_hp, base_atk, base_def, exp, level, gold,
		       pos_x, pos_y, floor_level, merchant_streak, created_at, last_played
		FROM players
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var id, accountID int64
		var hp, maxHP, baseAtk, baseDef, exp, level, gold int
		var posX, posY, floorLevel, merchantStreak int
		var createdAt, lastPlayed sql.NullTime

		if err := rows.Scan(&id, &accountID, &hp, &maxHP, &baseAtk, &baseDef, &exp, &level, &gold,
			&posX, &posY, &floorLevel, &merchantStreak, &createdAt, &lastPlayed); err != nil {
			return count, err
		}

		if dryRun {
			count++
			continue
		}
		if rowExists(pg, "players", id) {
			continue
		}

		_, err = pg.Exec(`
			INSERT INTO players (id, account_id, hp, max_hp, base_atk, base_def, exp, level, gold,
				pos_x, pos_y, floor_level, merchant_streak, created_at, last_played)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		`, id, accountID, hp, maxHP, baseAtk, baseDef, exp, level, gold,
			posX, posY, floorLevel, merchantStreak, nullTime(createdAt), nullTime(lastPlayed))
		if err != nil {
			if !strings.Contains(err.Error(), "duplicate key") {
				return count, err
			}
		} else {
			count++
		}
	}

	resetSequence(pg, "players", dryRun)
	return count, rows.Err()
}

func migrateSaves(sqlite, pg *sql.DB, dryRun bool) (int64, error) {
	rows, err := sqlite.Query(`
		SELECT id, player_id, save_name, floor_level, active, created_at FROM saves
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var id, playerID int64
		var saveName string
		var floorLevel, active int
		var createdAt sql.NullTime

		if err := rows.Scan(&id, &playerID, &saveName, &floorLevel, &active, &createdAt); err != nil {
			return count, err
		}

		if dryRun {
			count++
			continue
		}
		if rowExists(pg, "saves", id) {
			continue
		}

		_, err = pg.Exec(`
			INSERT INTO saves (id, player_id, save_name, floor_level, active, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, id, playerID, saveName, floorLevel, active, nullTime(createdAt))
		if err != nil {
			if !strings.Contains(err.Error(), "duplicate key") {
				return count, err
			}
		} else {
			count++
		}
	}

	resetSequence(pg, "saves", dryRun)
	return count, rows.Err()
}

func migrateEquipment(sqlite, pg *sql.DB, dryRun bool) (int64, error) {
	rows, err := sqlite.Query(`
		SELECT id, player_id, slot, name, atk, def, rarity FROM equipment
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var id, playerID int64
		var slot, name, rarity string
		var atk, def int

		if err := rows.Scan(&id, &playerID, &slot, &name, &atk, &def, &rarity); err != nil {
			return count, err
		}

		if dryRun {
			count++
			continue
		}
		if rowExists(pg, "equipment", id) {
			continue
		}

		_, err = pg.Exec(`
			INSERT INTO equipment (id, player_id, slot, name, atk, def, rarity)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, id, playerID, slot, name, atk, def, rarity)
		if err != nil {
			if !strings.Contains(err.Error(), "duplicate key") {
				return count, err
			}
		} else {
			count++
		}
	}

	resetSequence(pg, "equipment", dryRun)
	return count, rows.Err()
}

func migrateAffixes(sqlite, pg *sql.DB, dryRun bool) (int64, error) {
	rows, err := sqlite.Query(`
		SELECT id, player_id, slot, kind, base_value, level FROM affixes
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var id, playerID int64
		var slot, kind string
		var baseValue float64
		var level int

		if err := rows.Scan(&id, &playerID, &slot, &kind, &baseValue, &level); err != nil {
			return count, err
		}

		if dryRun {
			count++
			continue
		}
		if rowExists(pg, "affixes", id) {
			continue
		}

		_, err = pg.Exec(`
			INSERT INTO affixes (id, player_id, slot, kind, base_value, level)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, id, playerID, slot, kind, baseValue, level)
		if err != nil {
			if !strings.Contains(err.Error(), "duplicate key") {
				return count, err
			}
		} else {
			count++
		}
	}

	resetSequence(pg, "affixes", dryRun)
	return count, rows.Err()
}

func migrateInventory(sqlite, pg *sql.DB, dryRun bool) (int64, error) {
	rows, err := sqlite.Query(`
		SELECT id, player_id, item_name, count FROM inventory
	`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var count int64
	for rows.Next() {
		var id, playerID int64
		var itemName string
		var itemCount int

		if err := rows.Scan(&id, &playerID, &itemName, &itemCount); err != nil {
			return count, err
		}

		if dryRun {
			count++
			continue
		}
		if rowExists(pg, "inventory", id) {
			continue
		}

		_, err = pg.Exec(`
			INSERT INTO inventory (id, player_id, item_name, count)
			VALUES ($1, $2, $3, $4)
		`, id, playerID, itemName, itemCount)
		if err != nil {
			if !strings.Contains(err.Error(), "duplicate key") {
				return count, err
			}
		} else {
			count++
		}
	}

	resetSequence(pg, "inventory", dryRun)
	return count, rows.Err()
}

// Helper functions

// rowExists reports whether the target table already carries the row,
// so a re-run of the tool skips instead of failing.
func rowExists(pg *sql.DB, table string, id int64) bool {
	var existing int64
	err := pg.QueryRow(fmt.Sprintf(`SELECT id FROM %s WHERE id = $1`, table), id).Scan(&existing)
	return err == nil
}

// resetSequence bumps a table's id sequence past the highest migrated
// row so fresh inserts don't collide with preserved IDs.
func resetSequence(pg *sql.DB, table string, dryRun bool) {
	if dryRun {
		return
	}
	query := fmt.Sprintf(
		`SELECT setval('%s_id_seq', COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)`,
		table, table,
	)
	_, _ = pg.Exec(query)
}

func nullTime(nt sql.NullTime) any {
	if !nt.Valid {
		return nil
	}
	return nt.Time
}

func nullString(ns sql.NullString) any {
	if !ns.Valid {
		return nil
	}
	return ns.String
}

func nullInt(ni sql.NullInt64) any {
	if !ni.Valid {
		return nil
	}
	return ni.Int64
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Migrates game data from SQLite to PostgreSQL.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s -sqlite data/towerclimb.db -pg-host localhost -pg-user towerclimb -pg-password towerclimb -pg-database towerclimb\n", os.Args[0])
	}
}
