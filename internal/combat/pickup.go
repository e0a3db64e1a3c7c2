package combat

import (
	"github.com/google/uuid"
	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/geom"
	"github.com/towerclimb/server/internal/grng"
)

// Pickup collects the item under the player; the caller (Move's
// auto-interact) has already confirmed the cell isn't monster-blocked.
func (e *Engine) Pickup(rng grng.RNG, p *entity.Player, f *entity.Floor) Result {
	var res Result

	it := f.ItemAt(p.Position)
	if it == nil {
		return res
	}

	switch it.EffectType {
	case entity.EffectPotion:
		p.AddInventory(it.Name, 1)
		f.RemoveItem(it.ID)
		res.log("You pick up a %s.", it.Name)

	case entity.EffectWeapon:
		old := p.Weapon
		p.Weapon = &entity.Equipment{Name: it.Name, Atk: it.Atk, Rarity: it.Rarity, Affixes: it.WeaponAffixes}
		f.RemoveItem(it.ID)
		res.log("You equip %s.", it.Name)
		if old != nil {
			e.dropOldWeapon(f, p.Position, old, &res)
		}

	case entity.EffectArmor:
		oldEffMax := entity.EffectiveMaxHP(p)
		oldHP := p.HP
		old := p.Armor
		p.Armor = &entity.Equipment{Name: it.Name, Def: it.Def, Rarity: it.Rarity, Affixes: it.ArmorAffixes}
		f.RemoveItem(it.ID)
		res.log("You equip %s.", it.Name)
		rescaleHPAfterArmorChange(p, oldHP, oldEffMax)
		if old != nil {
			e.dropOldArmor(f, p.Position, old, &res)
		}

	default:
		return res
	}

	res.PickedUp = it.Name
	return res
}

// rescaleHPAfterArmorChange implements the HP-ratio rescale applied on an armor
// swap: when effective_max_hp changes, current HP scales to keep the
// player's old HP ratio rather than being clamped or left unscaled.
func rescaleHPAfterArmorChange(p *entity.Player, oldHP, oldEffMax int) {
	if oldEffMax <= 0 {
		return
	}
	newEffMax := entity.EffectiveMaxHP(p)
	if newEffMax == oldEffMax {
		return
	}
	ratio := float64(oldHP) / float64(oldEffMax)
	scaled := int(float64(newEffMax) * ratio)
	if scaled > newEffMax {
		scaled = newEffMax
	}
	p.HP = scaled
}

func (e *Engine) dropOldWeapon(f *entity.Floor, pos geom.Position, old *entity.Equipment, res *Result) {
	dropPos, ok := nearestFreeCellForDrop(f, pos)
	if !ok {
		res.log("There was no room to drop your old %s.", old.Name)
		return
	}
	item := entity.NewWeapon(uuid.NewString(), old.Name, old.Name, old.Atk, old.Rarity, old.Affixes, dropPos)
	f.PlaceItem(item)
	res.log("Your old %s falls to the ground.", old.Name)
}

func (e *Engine) dropOldArmor(f *entity.Floor, pos geom.Position, old *entity.Equipment, res *Result) {
	dropPos, ok := nearestFreeCellForDrop(f, pos)
	if !ok {
		res.log("There was no room to drop your old %s.", old.Name)
		return
	}
	item := entity.NewArmor(uuid.NewString(), old.Name, old.Name, old.Def, old.Rarity, old.Affixes, dropPos)
	f.PlaceItem(item)
	res.log("Your old %s falls to the ground.", old.Name)
}

// nearestFreeCellForDrop spiral-searches for a cell with no item or
// monster occupant, starting at the player's own cell (which is free
// the instant the picked-up item is removed from it).
func nearestFreeCellForDrop(f *entity.Floor, start geom.Position) (geom.Position, bool) {
	if freeForDrop(f, start) {
		return start, true
	}
	maxRadius := entity.FloorWidth + entity.FloorHeight
	for radius := 1; radius <= maxRadius; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if abs(dx) != radius && abs(dy) != radius {
					continue
				}
				p := geom.Position{X: start.X + dx, Y: start.Y + dy}
				if !geom.InBounds(p, entity.FloorWidth, entity.FloorHeight) {
					continue
				}
				if freeForDrop(f, p) {
					return p, true
				}
			}
		}
	}
	return start, false
}

// freeForDrop excludes the stairs cell: dropped gear must never cover
// the way down.
func freeForDrop(f *entity.Floor, p geom.Position) bool {
	c := f.CellAt(p)
	return c.Type == entity.Empty && c.EntityKind == entity.NoEntity
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
