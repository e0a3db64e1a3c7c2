package persistence

import "time"

// AccountRecord is a registered login identity, independent of the
// player it currently owns.
type AccountRecord struct {
	ID           int64
	Username     string
	PasswordHash string
	Nickname     string
	CreatedAt    time.Time
	LastLogin    *time.Time
	LastIP       string
	Banned       bool
}

// LoginAttempt is one row of the login audit trail: every login,
// successful or not, is recorded.
type LoginAttempt struct {
	AccountID *int64
	Username  string
	IP        string
	UserAgent string
	Success   bool
	CreatedAt time.Time
}

// PlayerRecord is the flat, entity-independent shape of the player
// fields PersistPlayer/LoadPlayer operate on. Callers
// translate to/from *entity.Player at the boundary so this package
// never imports internal/entity.
type PlayerRecord struct {
	PlayerID       int64
	AccountID      int64
	HP             int
	MaxHP          int
	BaseAtk        int
	BaseDef        int
	Exp            int
	Level          int
	Gold           int
	PosX           int
	PosY           int
	FloorLevel     int
	MerchantStreak int
	LastPlayed     *time.Time
}

// EquipmentRecord is one equipped weapon or armor.
type EquipmentRecord struct {
	Slot   string // "weapon" or "armor"
	Name   string
	Atk    int
	Def    int
	Rarity string
}

// AffixRecord is one affix attached to an equipment slot.
type AffixRecord struct {
	Slot      string
	Kind      string
	BaseValue float64
	Level     int
}

// SaveRecord is one row of the saves table, the "latest save" pointer
// GetLatestSave/UpsertSave/DeleteSave operate on.
type SaveRecord struct {
	ID         int64
	PlayerID   int64
	SaveName   string
	FloorLevel int
	Active     bool
	CreatedAt  time.Time
}

// PlayerSnapshot bundles everything load_player returns in one call.
type PlayerSnapshot struct {
	Player    PlayerRecord
	Equipment []EquipmentRecord
	Affixes   []AffixRecord
	Inventory map[string]int
}
