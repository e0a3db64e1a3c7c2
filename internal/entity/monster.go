package entity

import "github.com/towerclimb/server/internal/geom"

// Monster is a stationary combat encounter. Monsters never act on
// their own; they only react when a player attacks the cell they
// occupy.
type Monster struct {
	ID         string
	Name       string
	HP         int
	MaxHP      int
	Atk        int
	Def        int
	ExpReward  int
	GoldReward int
	Position   geom.Position
}

// Dead reports whether the monster has been reduced to 0 HP.
func (m *Monster) Dead() bool {
	return m.HP <= 0
}

// ApplyDamage reduces HP by amount, floored at 0.
func (m *Monster) ApplyDamage(amount int) {
	m.HP -= amount
	if m.HP < 0 {
		m.HP = 0
	}
}
