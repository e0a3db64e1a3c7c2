package entity

import "github.com/towerclimb/server/internal/geom"

// Equipment is a weapon or armor currently worn by the player. It mirrors
// the relevant fields of Item but drops the position/symbol that only
// make sense for floor-resident items.
type Equipment struct {
	Name    string
	Atk     int // weapon only
	Def     int // armor only
	Rarity  Rarity
	Affixes []Affix
}

// Player is the authoritative character state. Derived values (total
// attack, effective max HP, and so on) are never stored on Player —
// they are computed on demand from this struct plus the current floor
// level by the functions in derived.go.
type Player struct {
	HP       int
	MaxHP    int // base max HP, before armor hp_boost affixes
	BaseAtk  int
	BaseDef  int
	Exp      int
	Level    int
	Gold     int
	Position geom.Position

	Weapon *Equipment
	Armor  *Equipment

	// Inventory maps a potion's display name to how many the player
	// is carrying. Counts are always positive; a name is removed from
	// the map entirely when its count reaches zero.
	Inventory map[string]int
}

// NewPlayer builds a fresh player at the given starting stats.
func NewPlayer(maxHP, baseAtk, baseDef int, pos geom.Position) *Player {
	return &Player{
		HP:        maxHP,
		MaxHP:     maxHP,
		BaseAtk:   baseAtk,
		BaseDef:   baseDef,
		Level:     1,
		Position:  pos,
		Inventory: make(map[string]int),
	}
}

// AddInventory increments the count for name by delta, removing the key
// if the resulting count is zero or negative.
func (p *Player) AddInventory(name string, delta int) {
	if p.Inventory == nil {
		p.Inventory = make(map[string]int)
	}
	p.Inventory[name] += delta
	if p.Inventory[name] <= 0 {
		delete(p.Inventory, name)
	}
}
