package floorgen

import (
	"github.com/towerclimb/server/internal/entity"
)

// placeStrategicLoot runs, in order: high-value weapon/armor
// placement, their guards, the remaining monster fill, and potions.
func (g *Generator) placeStrategicLoot(f *entity.Floor, rooms []rect, level int) {
	highValue := g.placeHighValueItems(f, rooms, level)
	targets := g.collectGuardTargets(f, highValue)
	g.placeGuards(f, level, targets)
	g.placeRemainingMonsters(f, rooms, level, len(targets))
	g.placePotions(f, level, len(highValue))
	g.ensureStairsApproachable(f)
}

// placeHighValueItems rolls and places the floor's weapon/armor loot.
func (g *Generator) placeHighValueItems(f *entity.Floor, rooms []rect, level int) []*entity.Item {
	fg := g.cfg.FloorGen

	wantWeapon := level == 1 || (fg.HighValueItemInterval > 0 && level%fg.HighValueItemInterval == 0)
	if !wantWeapon {
		return nil
	}

	slots := 1
	if g.rng.NextFloat() < fg.HighValueItemBaseChance {
		slots = 2
	}
	if slots > fg.HighValueItemMax {
		slots = fg.HighValueItemMax
	}

	var placed []*entity.Item

	// Slot 1 is always a weapon; slot 2 (if rolled) is the armor
	// counterpart, so a floor never carries two of the same kind.
	for slot := 0; slot < slots; slot++ {
		room := rooms[g.rng.NextInt(0, len(rooms)-1)]
		pos, ok := spiralSearch(f, randomCellInRoom(g, room), cellSpawnable)
		if !ok {
			continue
		}

		var item *entity.Item
		if slot == 0 {
			item = GenerateWeapon(g.cfg, g.rng, level, pos)
		} else {
			item = GenerateArmor(g.cfg, g.rng, level, pos)
		}
		f.PlaceItem(item)
		placed = append(placed, item)
	}

	return placed
}
