package floorgen

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/geom"
)

// monsterStats is the intermediate rolled-stat bundle, scaled by a
// guard multiplier before a Monster is constructed.
type monsterStats struct {
	hp, atk, def, exp, gold int
}

// rollMonsterStats rolls `(base + level * per_floor) * unif(1-v, 1+v)`
// independently for each stat.
func (g *Generator) rollMonsterStats(level int) monsterStats {
	mc := g.cfg.Monster
	roll := func(base, perFloor, variance float64) int {
		v := base + float64(level)*perFloor
		lo := 1 - variance
		hi := 1 + variance
		factor := lo + g.rng.NextFloat()*(hi-lo)
		result := int(v * factor)
		if result < 1 {
			result = 1
		}
		return result
	}
	return monsterStats{
		hp:   roll(mc.BaseHP, mc.HPPerFloor, mc.HPVariance),
		atk:  roll(mc.BaseAtk, mc.AtkPerFloor, mc.AtkVariance),
		def:  roll(mc.BaseDef, mc.DefPerFloor, mc.DefVariance),
		exp:  roll(mc.BaseExp, mc.ExpPerFloor, mc.ExpVariance),
		gold: roll(mc.BaseGold, mc.GoldPerFloor, mc.GoldVariance),
	}
}

func (g *Generator) newMonster(pos geom.Position, stats monsterStats) *entity.Monster {
	return &entity.Monster{
		ID:         uuid.NewString(),
		Name:       g.randomMonsterName(),
		HP:         stats.hp,
		MaxHP:      stats.hp,
		Atk:        stats.atk,
		Def:        stats.def,
		ExpReward:  stats.exp,
		GoldReward: stats.gold,
		Position:   pos,
	}
}

// randomMonsterName composes "<prefix> <base>" from the configured
// name pools.
func (g *Generator) randomMonsterName() string {
	mc := g.cfg.Monster
	if len(mc.NamePrefixes) == 0 || len(mc.NameBases) == 0 {
		return "Monster"
	}
	prefix := mc.NamePrefixes[g.rng.NextInt(0, len(mc.NamePrefixes)-1)]
	base := mc.NameBases[g.rng.NextInt(0, len(mc.NameBases)-1)]
	return fmt.Sprintf("%s %s", prefix, base)
}

// placeRemainingMonsters fills up to the floor's monster budget with
// randomly placed monsters. A spawn that can't find a free cell after
// 50 tries is simply dropped.
func (g *Generator) placeRemainingMonsters(f *entity.Floor, rooms []rect, level, alreadyPlaced int) {
	mc := g.cfg.Monster
	budget := mc.CountBase
	if mc.CountDivisor > 0 {
		budget += level / mc.CountDivisor
	}
	remaining := budget - alreadyPlaced

	for i := 0; i < remaining; i++ {
		const attempts = 50
		for a := 0; a < attempts; a++ {
			room := rooms[g.rng.NextInt(0, len(rooms)-1)]
			p := randomCellInRoom(g, room)
			if !cellSpawnable(f, p) {
				continue
			}
			stats := g.rollMonsterStats(level)
			f.PlaceMonster(g.newMonster(p, stats))
			break
		}
	}
}

func randomCellInRoom(g *Generator, r rect) geom.Position {
	return geom.Position{
		X: r.X + g.rng.NextInt(0, r.W-1),
		Y: r.Y + g.rng.NextInt(0, r.H-1),
	}
}

// placePotions places max(0, base + floor(level/divisor) -
// high_value_count) potions at random enterable unoccupied cells.
func (g *Generator) placePotions(f *entity.Floor, level, highValueCount int) {
	fg := g.cfg.FloorGen
	count := fg.PotionBaseCount - highValueCount
	if fg.PotionPerFloors > 0 {
		count += level / fg.PotionPerFloors
	}
	if count < 0 {
		count = 0
	}

	tiers := g.cfg.Merchant.PotionHealTiers
	for i := 0; i < count; i++ {
		pos, ok := spiralSearch(f, geom.Position{X: g.rng.NextInt(1, entity.FloorWidth-2), Y: g.rng.NextInt(1, entity.FloorHeight-2)}, cellSpawnable)
		if !ok {
			continue
		}
		heal := 50
		if len(tiers) > 0 {
			heal = tiers[g.rng.NextInt(0, len(tiers)-1)]
		}
		name := fmt.Sprintf("Potion+%d", heal)
		it := entity.NewPotion(uuid.NewString(), name, heal, pos)
		f.PlaceItem(it)
	}
}
