package entity

import "github.com/towerclimb/server/internal/geom"

// EffectType is the closed set of item effect tags. Rather than give
// Item subtypes with polymorphic behavior, every effect-specific rule is
// a switch over this tag (see DESIGN.md on the ItemEffect variant).
type EffectType string

const (
	EffectPotion      EffectType = "potion"
	EffectWeapon      EffectType = "weapon"
	EffectArmor       EffectType = "armor"
	EffectStairMarker EffectType = "stair_marker"
)

// Item is anything that can sit on a floor cell or live in a player's
// inventory/equipment slot.
type Item struct {
	ID          string
	Symbol      string
	Name        string
	BaseName    string
	EffectType  EffectType
	EffectValue float64 // potion: heal amount
	Position    geom.Position
	Rarity      Rarity

	// Weapon/armor base stats, populated only when EffectType is
	// EffectWeapon/EffectArmor respectively.
	Atk int
	Def int

	WeaponAffixes []Affix
	ArmorAffixes  []Affix
}

// NewPotion builds a potion Item positioned at pos with the given heal
// amount. Potions generated for merchant stock are positioned at the
// zero position and never placed on a floor.
func NewPotion(id, name string, heal int, pos geom.Position) *Item {
	return &Item{
		ID:          id,
		Symbol:      "+",
		Name:        name,
		BaseName:    name,
		EffectType:  EffectPotion,
		EffectValue: float64(heal),
		Position:    pos,
		Rarity:      Common,
	}
}

// NewWeapon builds a weapon Item with the given rarity and affixes.
func NewWeapon(id, name, baseName string, atk int, rarity Rarity, affixes []Affix, pos geom.Position) *Item {
	return &Item{
		ID:            id,
		Symbol:        "↑",
		Name:          name,
		BaseName:      baseName,
		EffectType:    EffectWeapon,
		Position:      pos,
		Rarity:        rarity,
		Atk:           atk,
		WeaponAffixes: affixes,
	}
}

// NewArmor builds an armor Item with the given rarity and affixes.
func NewArmor(id, name, baseName string, def int, rarity Rarity, affixes []Affix, pos geom.Position) *Item {
	return &Item{
		ID:           id,
		Symbol:       "◆",
		Name:         name,
		BaseName:     baseName,
		EffectType:   EffectArmor,
		Position:     pos,
		Rarity:       rarity,
		Def:          def,
		ArmorAffixes: affixes,
	}
}
