package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("persistence: record not found")

// insertReturningID executes an INSERT and returns the new row's id,
// using RETURNING on dialects that need it and LastInsertId otherwise.
func (d *Database) insertReturningID(query string, args ...any) (int64, error) {
	if d.dialect.SupportsLastInsertID() {
		res, err := d.db.Exec(d.qb.Build(query), args...)
		if err != nil {
			return 0, err
		}
		return res.LastInsertId()
	}

	built := d.qb.BuildWithReturning(query, "id")
	var id int64
	if err := d.db.QueryRow(built, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// CreateAccount inserts a new login identity.
func (d *Database) CreateAccount(username, passwordHash, nickname string) (int64, error) {
	return d.insertReturningID(
		`INSERT INTO accounts (username, password_hash, nickname) VALUES (?, ?, ?)`,
		username, passwordHash, nickname,
	)
}

// GetAccountByUsername looks up an account case-insensitively.
func (d *Database) GetAccountByUsername(username string) (*AccountRecord, error) {
	query := d.qb.Build(`SELECT id, username, password_hash, nickname, created_at, last_login, last_ip, banned
		FROM accounts WHERE username = ?`)
	row := d.db.QueryRow(query, username)
	return scanAccount(row)
}

// GetAccountByID looks up an account by its primary key.
func (d *Database) GetAccountByID(id int64) (*AccountRecord, error) {
	query := d.qb.Build(`SELECT id, username, password_hash, nickname, created_at, last_login, last_ip, banned
		FROM accounts WHERE id = ?`)
	row := d.db.QueryRow(query, id)
	return scanAccount(row)
}

func scanAccount(row *sql.Row) (*AccountRecord, error) {
	var a AccountRecord
	var lastLogin sql.NullTime
	var lastIP sql.NullString
	var banned int

	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Nickname, &a.CreatedAt, &lastLogin, &lastIP, &banned)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan account: %w", err)
	}
	if lastLogin.Valid {
		a.LastLogin = &lastLogin.Time
	}
	a.LastIP = lastIP.String
	a.Banned = banned != 0
	return &a, nil
}

// RecordLoginAttempt appends one row to the login audit trail.
func (d *Database) RecordLoginAttempt(a LoginAttempt) error {
	query := d.qb.Build(`INSERT INTO login_attempts (account_id, username, ip, user_agent, success)
		VALUES (?, ?, ?, ?, ?)`)
	success := 0
	if a.Success {
		success = 1
	}
	_, err := d.db.Exec(query, a.AccountID, a.Username, a.IP, a.UserAgent, success)
	return err
}

// UpdateLastLogin stamps an account's last_login/last_ip on success.
func (d *Database) UpdateLastLogin(accountID int64, ip string) error {
	query := d.qb.Build(`UPDATE accounts SET last_login = ?, last_ip = ? WHERE id = ?`)
	_, err := d.db.Exec(query, time.Now().UTC(), ip, accountID)
	return err
}

// UpdateNickname updates the account's display name.
func (d *Database) UpdateNickname(accountID int64, nickname string) error {
	query := d.qb.Build(`UPDATE accounts SET nickname = ? WHERE id = ?`)
	_, err := d.db.Exec(query, nickname, accountID)
	return err
}

// CreatePlayer inserts a fresh player row bound to accountID.
func (d *Database) CreatePlayer(accountID int64, rec PlayerRecord) (int64, error) {
	return d.insertReturningID(
		`INSERT INTO players (account_id, hp, max_hp, base_atk, base_def, exp, level, gold, pos_x, pos_y, floor_level, merchant_streak)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		accountID, rec.HP, rec.MaxHP, rec.BaseAtk, rec.BaseDef, rec.Exp, rec.Level, rec.Gold,
		rec.PosX, rec.PosY, rec.FloorLevel, rec.MerchantStreak,
	)
}

// GetPlayerByAccountID finds the (single) player owned by an account.
func (d *Database) GetPlayerByAccountID(accountID int64) (*PlayerRecord, error) {
	query := d.qb.Build(`SELECT id, account_id, hp, max_hp, base_atk, base_def, exp, level, gold,
		pos_x, pos_y, floor_level, merchant_streak, last_played FROM players WHERE account_id = ?`)
	row := d.db.QueryRow(query, accountID)
	return scanPlayer(row)
}

func scanPlayer(row *sql.Row) (*PlayerRecord, error) {
	var p PlayerRecord
	var lastPlayed sql.NullTime

	err := row.Scan(&p.PlayerID, &p.AccountID, &p.HP, &p.MaxHP, &p.BaseAtk, &p.BaseDef,
		&p.Exp, &p.Level, &p.Gold, &p.PosX, &p.PosY, &p.FloorLevel, &p.MerchantStreak, &lastPlayed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan player: %w", err)
	}
	if lastPlayed.Valid {
		p.LastPlayed = &lastPlayed.Time
	}
	return &p, nil
}

// GetLatestSave returns the single active save row for a player, if
// any.
func (d *Database) GetLatestSave(playerID int64) (*SaveRecord, error) {
	query := d.qb.Build(`SELECT id, player_id, save_name, floor_level, active, created_at
		FROM saves WHERE player_id = ? AND active = 1 ORDER BY created_at DESC LIMIT 1`)
	row := d.db.QueryRow(query, playerID)

	var s SaveRecord
	var active int
	err := row.Scan(&s.ID, &s.PlayerID, &s.SaveName, &s.FloorLevel, &active, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan save: %w", err)
	}
	s.Active = active != 0
	return &s, nil
}

// UpsertSave keeps one save per player: an existing active row is
// replaced rather than duplicated.
func (d *Database) UpsertSave(playerID int64, floorLevel int, saveName string, active bool) error {
	return d.locks.withLock(playerID, func() error {
		del := d.qb.Build(`DELETE FROM saves WHERE player_id = ? AND active = 1`)
		if _, err := d.db.Exec(del, playerID); err != nil {
			return fmt.Errorf("clear prior save: %w", err)
		}

		activeInt := 0
		if active {
			activeInt = 1
		}
		ins := d.qb.Build(`INSERT INTO saves (player_id, save_name, floor_level, active) VALUES (?, ?, ?, ?)`)
		_, err := d.db.Exec(ins, playerID, saveName, floorLevel, activeInt)
		return err
	})
}

// DeleteSave clears a player's save, used by suicide and game-over.
func (d *Database) DeleteSave(playerID int64) error {
	return d.locks.withLock(playerID, func() error {
		query := d.qb.Build(`DELETE FROM saves WHERE player_id = ?`)
		_, err := d.db.Exec(query, playerID)
		return err
	})
}

// LoadPlayer returns the player row plus equipment, affixes, and
// inventory in one snapshot.
func (d *Database) LoadPlayer(playerID int64) (*PlayerSnapshot, error) {
	query := d.qb.Build(`SELECT id, account_id, hp, max_hp, base_atk, base_def, exp, level, gold,
		pos_x, pos_y, floor_level, merchant_streak, last_played FROM players WHERE id = ?`)
	row := d.db.QueryRow(query, playerID)
	player, err := scanPlayer(row)
	if err != nil {
		return nil, err
	}

	equipment, err := d.loadEquipment(playerID)
	if err != nil {
		return nil, err
	}
	affixes, err := d.loadAffixes(playerID)
	if err != nil {
		return nil, err
	}
	inventory, err := d.loadInventory(playerID)
	if err != nil {
		return nil, err
	}

	return &PlayerSnapshot{
		Player:    *player,
		Equipment: equipment,
		Affixes:   affixes,
		Inventory: inventory,
	}, nil
}

func (d *Database) loadEquipment(playerID int64) ([]EquipmentRecord, error) {
	query := d.qb.Build(`SELECT slot, name, atk, def, rarity FROM equipment WHERE player_id = ?`)
	rows, err := d.db.Query(query, playerID)
	if err != nil {
		return nil, fmt.Errorf("load equipment: %w", err)
	}
	defer rows.Close()

	var out []EquipmentRecord
	for rows.Next() {
		var e EquipmentRecord
		if err := rows.Scan(&e.Slot, &e.Name, &e.Atk, &e.Def, &e.Rarity); err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (d *Database) loadAffixes(playerID int64) ([]AffixRecord, error) {
	query := d.qb.Build(`SELECT slot, kind, base_value, level FROM affixes WHERE player_id = ?`)
	rows, err := d.db.Query(query, playerID)
	if err != nil {
		return nil, fmt.Errorf("load affixes: %w", err)
	}
	defer rows.Close()

	var out []AffixRecord
	for rows.Next() {
		var a AffixRecord
		if err := rows.Scan(&a.Slot, &a.Kind, &a.BaseValue, &a.Level); err != nil {
			return nil, fmt.Errorf("scan affix: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (d *Database) loadInventory(playerID int64) (map[string]int, error) {
	query := d.qb.Build(`SELECT item_name, count FROM inventory WHERE player_id = ?`)
	rows, err := d.db.Query(query, playerID)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, fmt.Errorf("scan inventory row: %w", err)
		}
		out[name] = count
	}
	return out, rows.Err()
}

// PersistPlayer overwrites the player's scalar fields.
func (d *Database) PersistPlayer(playerID int64, rec PlayerRecord) error {
	return d.locks.withLock(playerID, func() error {
		query := d.qb.Build(`UPDATE players SET hp = ?, max_hp = ?, base_atk = ?, base_def = ?,
			exp = ?, level = ?, gold = ?, pos_x = ?, pos_y = ?, floor_level = ?, merchant_streak = ?,
			last_played = ? WHERE id = ?`)
		_, err := d.db.Exec(query, rec.HP, rec.MaxHP, rec.BaseAtk, rec.BaseDef, rec.Exp, rec.Level,
			rec.Gold, rec.PosX, rec.PosY, rec.FloorLevel, rec.MerchantStreak, time.Now().UTC(), playerID)
		return err
	})
}

// PersistEquipment replaces one equipment slot. A nil eq
// clears the slot (used when an item swap leaves nothing equipped,
// which never actually happens in play but keeps the contract total).
func (d *Database) PersistEquipment(playerID int64, slot string, eq *EquipmentRecord) error {
	return d.locks.withLock(playerID, func() error {
		del := d.qb.Build(`DELETE FROM equipment WHERE player_id = ? AND slot = ?`)
		if _, err := d.db.Exec(del, playerID, slot); err != nil {
			return fmt.Errorf("clear equipment slot: %w", err)
		}
		if eq == nil {
			return nil
		}
		ins := d.qb.Build(`INSERT INTO equipment (player_id, slot, name, atk, def, rarity) VALUES (?, ?, ?, ?, ?, ?)`)
		_, err := d.db.Exec(ins, playerID, slot, eq.Name, eq.Atk, eq.Def, eq.Rarity)
		return err
	})
}

// PersistAffixes replaces every affix row for the given slot with the
// supplied set.
func (d *Database) PersistAffixes(playerID int64, slot string, affixes []AffixRecord) error {
	return d.locks.withLock(playerID, func() error {
		del := d.qb.Build(`DELETE FROM affixes WHERE player_id = ? AND slot = ?`)
		if _, err := d.db.Exec(del, playerID, slot); err != nil {
			return fmt.Errorf("clear affixes: %w", err)
		}
		ins := d.qb.Build(`INSERT INTO affixes (player_id, slot, kind, base_value, level) VALUES (?, ?, ?, ?, ?)`)
		for _, a := range affixes {
			if _, err := d.db.Exec(ins, playerID, slot, a.Kind, a.BaseValue, a.Level); err != nil {
				return fmt.Errorf("insert affix: %w", err)
			}
		}
		return nil
	})
}

// PersistInventory replaces the player's entire name-to-count map.
func (d *Database) PersistInventory(playerID int64, inventory map[string]int) error {
	return d.locks.withLock(playerID, func() error {
		del := d.qb.Build(`DELETE FROM inventory WHERE player_id = ?`)
		if _, err := d.db.Exec(del, playerID); err != nil {
			return fmt.Errorf("clear inventory: %w", err)
		}
		ins := d.qb.Build(`INSERT INTO inventory (player_id, item_name, count) VALUES (?, ?, ?)`)
		for name, count := range inventory {
			if count <= 0 {
				continue
			}
			if _, err := d.db.Exec(ins, playerID, name, count); err != nil {
				return fmt.Errorf("insert inventory row: %w", err)
			}
		}
		return nil
	})
}
