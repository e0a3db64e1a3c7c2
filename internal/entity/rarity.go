package entity

// Rarity is one of the four closed item rarity tiers.
type Rarity string

const (
	Common    Rarity = "common"
	RareTier  Rarity = "rare"
	Epic      Rarity = "epic"
	Legendary Rarity = "legendary"
)

// Rarities lists all four tiers from common to legendary, the order
// item generation and forge cost tables iterate in.
var Rarities = []Rarity{Common, RareTier, Epic, Legendary}
