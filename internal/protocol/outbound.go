package protocol

// Outbound type discriminators. Every message written to a client
// carries one of these in its "type" field.
const (
	TypeLog                   = "log"
	TypeMap                   = "map"
	TypeInfo                  = "info"
	TypeCombat                = "combat"
	TypeGameOver              = "gameover"
	TypeAuthSuccess           = "auth_success"
	TypeAuthError             = "auth_error"
	TypeRegisterSuccess       = "register_success"
	TypeRegisterError         = "register_error"
	TypeLogoutSuccess         = "logout_success"
	TypeMerchantInfo          = "merchant_info"
	TypeTradeSuccess          = "trade_success"
	TypeTradeFailed           = "trade_failed"
	TypeForgeInfo             = "forge_info"
	TypeForgeSuccess          = "forge_success"
	TypeForgeFailure          = "forge_failure"
	TypeForgeError            = "forge_error"
	TypeAutoPickup            = "auto_pickup"
	TypeAutoDescend           = "auto_descend"
	TypeNicknameUpdateSuccess = "nickname_update_success"
	TypeNicknameUpdateError   = "nickname_update_error"
)

// LogMessage carries the plain narration lines a command produced
// (combat.Result.Logs and friends), in order.
type LogMessage struct {
	Type  string   `json:"type"`
	Lines []string `json:"lines"`
}

// NewLog wraps lines in a LogMessage. Returns nil if there is nothing
// to say, so callers can append the result unconditionally and skip
// nils when building the outbound batch.
func NewLog(lines []string) *LogMessage {
	if len(lines) == 0 {
		return nil
	}
	return &LogMessage{Type: TypeLog, Lines: lines}
}

// MapMessage is the current floor rendered as a grid of single-glyph
// cell symbols, player position included.
type MapMessage struct {
	Type  string     `json:"type"`
	Level int        `json:"level"`
	Grid  [][]string `json:"grid"`
}

// WeaponAttribute describes one rolled affix for display.
type WeaponAttribute struct {
	AttributeType string  `json:"attribute_type"`
	Value         float64 `json:"value"`
	Description   string  `json:"description"`
	Level         int     `json:"level"`
}

// InventoryEntry is one (name, count) pair in the player's potion bag.
type InventoryEntry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// MarshalJSON renders an InventoryEntry as the ["name", count] pair the
// client expects rather than an object.
func (e InventoryEntry) MarshalJSON() ([]byte, error) {
	return marshalPair(e.Name, e.Count)
}

// InfoMessage is the full player status panel.
type InfoMessage struct {
	Type             string            `json:"type"`
	HP               int               `json:"hp"`
	MaxHP            int               `json:"max_hp"`
	Attack           int               `json:"attack"`
	WeaponAtk        int               `json:"weapon_atk"`
	Defense          int               `json:"defense"`
	ArmorDef         int               `json:"armor_def"`
	TotalAtk         int               `json:"total_atk"`
	TotalDef         int               `json:"total_def"`
	Exp              int               `json:"exp"`
	ExpNeeded        int               `json:"exp_needed"`
	Level            int               `json:"level"`
	Gold             int               `json:"gold"`
	Floor            int               `json:"floor"`
	Inventory        []InventoryEntry  `json:"inventory"`
	WeaponName       string            `json:"weapon_name"`
	WeaponRarity     string            `json:"weapon_rarity"`
	WeaponAttributes []WeaponAttribute `json:"weapon_attributes"`
	ArmorName        string            `json:"armor_name"`
}

// CombatMessage reports the outcome of one attack exchange.
type CombatMessage struct {
	Type         string `json:"type"`
	MonsterName  string `json:"monster_name,omitempty"`
	MonsterHP    int    `json:"monster_hp"`
	MonsterMaxHP int    `json:"monster_max_hp"`
	DamageDealt  int    `json:"damage_dealt"`
	DamageTaken  int    `json:"damage_taken"`
	MonsterSlain bool   `json:"monster_slain"`
}

// GameOverMessage ends a Playing session.
type GameOverMessage struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
	Floor  int    `json:"floor"`
	Level  int    `json:"level"`
}

// AuthSuccessMessage answers auth.login / auth.verify_token.
type AuthSuccessMessage struct {
	Type         string `json:"type"`
	PlayerID     int64  `json:"player_id"`
	Nickname     string `json:"nickname"`
	SessionToken string `json:"session_token,omitempty"`
}

// AuthErrorMessage answers a failed auth.login / auth.verify_token.
type AuthErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// RegisterSuccessMessage answers auth.register.
type RegisterSuccessMessage struct {
	Type     string `json:"type"`
	PlayerID int64  `json:"player_id"`
}

// RegisterErrorMessage answers a failed auth.register.
type RegisterErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// LogoutSuccessMessage answers auth.logout.
type LogoutSuccessMessage struct {
	Type string `json:"type"`
}

// MerchantInfoMessage lists what a merchant floor's shopkeeper sells.
type MerchantInfoMessage struct {
	Type  string           `json:"type"`
	Stock []MerchantListing `json:"stock"`
}

// MerchantListing is one priced item on a merchant_info message.
type MerchantListing struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

// TradeSuccessMessage answers a successful trade command.
type TradeSuccessMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Gold    int    `json:"gold"`
}

// TradeFailedMessage answers a rejected trade command.
type TradeFailedMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ForgeInfoMessage lists the four forge operations' current costs for
// the equipment in the targeted slot.
type ForgeInfoMessage struct {
	Type string            `json:"type"`
	Slot string            `json:"slot"`
	Cost map[string]int    `json:"cost"`
}

// ForgeSuccessMessage answers a successful forge roll.
type ForgeSuccessMessage struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	GoldSpent int    `json:"gold_spent"`
	Gold      int    `json:"gold"`
}

// ForgeFailureMessage answers a failed-but-charged forge roll.
type ForgeFailureMessage struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	GoldSpent int    `json:"gold_spent"`
	Gold      int    `json:"gold"`
}

// ForgeErrorMessage answers a rejected forge command (bad slot/index,
// insufficient gold, empty slot).
type ForgeErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// AutoPickupMessage reports an item picked up automatically after a
// move.
type AutoPickupMessage struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// AutoDescendMessage reports that a move stepped onto unblocked
// stairs and the floor regenerated.
type AutoDescendMessage struct {
	Type  string `json:"type"`
	Floor int    `json:"floor"`
}

// NicknameUpdateSuccessMessage answers a successful update_nickname.
type NicknameUpdateSuccessMessage struct {
	Type     string `json:"type"`
	Nickname string `json:"nickname"`
}

// NicknameUpdateErrorMessage answers a rejected update_nickname.
type NicknameUpdateErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
