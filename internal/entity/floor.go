package entity

import "github.com/towerclimb/server/internal/geom"

// FloorWidth and FloorHeight are fixed for every generated floor.
const (
	FloorWidth  = 15
	FloorHeight = 15
)

// Floor is one 15x15 grid the player inhabits between descents. Floors
// are transient: generated on entry, discarded on the next descent, and
// never persisted in full — only the player's position and current
// level survive a save (see DESIGN.md's note on
// floor regeneration).
type Floor struct {
	Level           int
	Grid            [FloorHeight][FloorWidth]Cell
	Monsters        map[string]*Monster
	Items           map[string]*Item
	PlayerStart     geom.Position
	StairsPos       *geom.Position
	IsMerchantFloor bool
	Merchant        *Merchant
}

// NewFloor allocates an empty floor of walls at the given level.
func NewFloor(level int) *Floor {
	f := &Floor{
		Level:    level,
		Monsters: make(map[string]*Monster),
		Items:    make(map[string]*Item),
	}
	for y := 0; y < FloorHeight; y++ {
		for x := 0; x < FloorWidth; x++ {
			f.Grid[y][x] = Cell{Type: Wall}
		}
	}
	return f
}

// CellAt returns the cell at p, or a wall cell if out of bounds.
func (f *Floor) CellAt(p geom.Position) Cell {
	if !geom.InBounds(p, FloorWidth, FloorHeight) {
		return Cell{Type: Wall}
	}
	return f.Grid[p.Y][p.X]
}

// SetCell writes a cell at p. Caller must ensure p is in bounds.
func (f *Floor) SetCell(p geom.Position, c Cell) {
	f.Grid[p.Y][p.X] = c
}

// IsPassable is the predicate geom.FloodFill expects: true for any
// walkable terrain regardless of current occupant (used for the
// connectivity invariant, which checks terrain reachability, not
// player-enterability).
func (f *Floor) IsPassable(p geom.Position) bool {
	return f.CellAt(p).Passable()
}

// MonsterAt returns the monster occupying p, if any.
func (f *Floor) MonsterAt(p geom.Position) *Monster {
	c := f.CellAt(p)
	if c.EntityKind != EntityMonster {
		return nil
	}
	return f.Monsters[c.EntityID]
}

// ItemAt returns the item occupying p, if any.
func (f *Floor) ItemAt(p geom.Position) *Item {
	c := f.CellAt(p)
	if c.EntityKind != EntityItem {
		return nil
	}
	return f.Items[c.EntityID]
}

// PlaceMonster registers a monster in the floor's map and marks its cell.
func (f *Floor) PlaceMonster(m *Monster) {
	f.Monsters[m.ID] = m
	f.SetCell(m.Position, Cell{Type: f.CellAt(m.Position).Type, EntityKind: EntityMonster, EntityID: m.ID})
}

// PlaceItem registers an item in the floor's map and marks its cell.
func (f *Floor) PlaceItem(it *Item) {
	f.Items[it.ID] = it
	f.SetCell(it.Position, Cell{Type: f.CellAt(it.Position).Type, EntityKind: EntityItem, EntityID: it.ID})
}

// RemoveMonster deletes a monster and clears its cell's occupant.
func (f *Floor) RemoveMonster(id string) {
	m, ok := f.Monsters[id]
	if !ok {
		return
	}
	delete(f.Monsters, id)
	c := f.CellAt(m.Position)
	c.EntityKind = NoEntity
	c.EntityID = ""
	f.SetCell(m.Position, c)
}

// RemoveItem deletes an item and clears its cell's occupant.
func (f *Floor) RemoveItem(id string) {
	it, ok := f.Items[id]
	if !ok {
		return
	}
	delete(f.Items, id)
	c := f.CellAt(it.Position)
	c.EntityKind = NoEntity
	c.EntityID = ""
	f.SetCell(it.Position, c)
}

// AnyMonsterWithin reports whether any alive monster sits within
// Manhattan distance radius of p — the "blocked by monster" rule
// shared by stairs and item pickup.
func (f *Floor) AnyMonsterWithin(p geom.Position, radius int) bool {
	for _, m := range f.Monsters {
		if m.Dead() {
			continue
		}
		if geom.ManhattanDistance(p, m.Position) <= radius {
			return true
		}
	}
	return false
}

// Merchant is the single shopkeeper entity on a merchant floor.
type Merchant struct {
	Position geom.Position
	Stock    []MerchantOffer
}

// MerchantOffer is one priced entry in a merchant's inventory.
type MerchantOffer struct {
	Item  *Item
	Price int
}
