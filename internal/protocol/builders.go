package protocol

import (
	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/forge"
)

// NewMerchantInfo lists a merchant floor's stock as priced listings.
func NewMerchantInfo(stock []entity.MerchantOffer) *MerchantInfoMessage {
	listings := make([]MerchantListing, 0, len(stock))
	for _, offer := range stock {
		listings = append(listings, MerchantListing{Name: offer.Item.Name, Price: offer.Price})
	}
	return &MerchantInfoMessage{Type: TypeMerchantInfo, Stock: listings}
}

// NewTradeSuccess reports a completed purchase.
func NewTradeSuccess(message string, gold int) *TradeSuccessMessage {
	return &TradeSuccessMessage{Type: TypeTradeSuccess, Message: message, Gold: gold}
}

// NewTradeFailed reports a rejected purchase (unknown item, insufficient gold).
func NewTradeFailed(message string) *TradeFailedMessage {
	return &TradeFailedMessage{Type: TypeTradeFailed, Message: message}
}

// NewForgeInfo reports what the four forge operations would currently
// cost for the targeted slot's equipment. Callers compute the cost map
// themselves since it depends on gameconfig tunables the protocol
// package has no business knowing about.
func NewForgeInfo(slot string, cost map[string]int) *ForgeInfoMessage {
	return &ForgeInfoMessage{Type: TypeForgeInfo, Slot: slot, Cost: cost}
}

// NewForgeOutcome wraps a forge.Result as either a success or failure
// message, since both carry the same shape and only differ in type.
func NewForgeOutcome(res forge.Result, gold int) any {
	if res.Success {
		return &ForgeSuccessMessage{Type: TypeForgeSuccess, Message: res.Message, GoldSpent: res.GoldSpent, Gold: gold}
	}
	return &ForgeFailureMessage{Type: TypeForgeFailure, Message: res.Message, GoldSpent: res.GoldSpent, Gold: gold}
}

// NewForgeError reports a rejected forge command.
func NewForgeError(message string) *ForgeErrorMessage {
	return &ForgeErrorMessage{Type: TypeForgeError, Message: message}
}

// NewAutoPickup reports an item auto-collected after a move.
func NewAutoPickup(name string) *AutoPickupMessage {
	return &AutoPickupMessage{Type: TypeAutoPickup, Name: name}
}

// NewAutoDescend reports a move that stepped onto unblocked stairs.
func NewAutoDescend(floor int) *AutoDescendMessage {
	return &AutoDescendMessage{Type: TypeAutoDescend, Floor: floor}
}

// NewCombat reports one attack exchange's outcome. The session layer
// reads the monster's hp before and after calling combat.Engine.Attack
// to compute damageDealt/damageTaken, since combat.Result only carries
// log lines and state-transition flags, not combat arithmetic.
func NewCombat(m *entity.Monster, damageDealt, damageTaken int, slain bool) *CombatMessage {
	msg := &CombatMessage{
		Type:         TypeCombat,
		DamageDealt:  damageDealt,
		DamageTaken:  damageTaken,
		MonsterSlain: slain,
	}
	if m != nil {
		msg.MonsterName = m.Name
		msg.MonsterHP = m.HP
		msg.MonsterMaxHP = m.MaxHP
	}
	return msg
}

// NewGameOver ends a session's Playing state.
func NewGameOver(reason string, floor, level int) *GameOverMessage {
	return &GameOverMessage{Type: TypeGameOver, Reason: reason, Floor: floor, Level: level}
}

// NewAuthSuccess answers a successful login or token verification.
func NewAuthSuccess(playerID int64, nickname, sessionToken string) *AuthSuccessMessage {
	return &AuthSuccessMessage{Type: TypeAuthSuccess, PlayerID: playerID, Nickname: nickname, SessionToken: sessionToken}
}

// NewAuthError answers a failed login or token verification.
func NewAuthError(message string) *AuthErrorMessage {
	return &AuthErrorMessage{Type: TypeAuthError, Message: message}
}

// NewRegisterSuccess answers a successful registration.
func NewRegisterSuccess(playerID int64) *RegisterSuccessMessage {
	return &RegisterSuccessMessage{Type: TypeRegisterSuccess, PlayerID: playerID}
}

// NewRegisterError answers a failed registration.
func NewRegisterError(message string) *RegisterErrorMessage {
	return &RegisterErrorMessage{Type: TypeRegisterError, Message: message}
}

// NewLogoutSuccess answers a logout.
func NewLogoutSuccess() *LogoutSuccessMessage {
	return &LogoutSuccessMessage{Type: TypeLogoutSuccess}
}

// NewNicknameUpdateSuccess answers a successful update_nickname.
func NewNicknameUpdateSuccess(nickname string) *NicknameUpdateSuccessMessage {
	return &NicknameUpdateSuccessMessage{Type: TypeNicknameUpdateSuccess, Nickname: nickname}
}

// NewNicknameUpdateError answers a rejected update_nickname.
func NewNicknameUpdateError(message string) *NicknameUpdateErrorMessage {
	return &NicknameUpdateErrorMessage{Type: TypeNicknameUpdateError, Message: message}
}
