package floorgen

import (
	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/geom"
)

// guardTarget is a protected position the generator surrounds with a
// boosted guard monster.
type guardTarget struct {
	pos    geom.Position
	weight float64
	radius int
	hpMult, atkMult, defMult, expMult, goldMult float64
}

// collectGuardTargets gathers the stairs and any placed weapon/armor
// loot as protected targets, weapon/armor outweighing stairs.
func (g *Generator) collectGuardTargets(f *entity.Floor, highValue []*entity.Item) []guardTarget {
	gm := g.cfg.GuardMult
	radius := g.cfg.FloorGen.WeaponArmorGuardRadius

	var targets []guardTarget
	for _, it := range highValue {
		targets = append(targets, guardTarget{
			pos: it.Position, weight: 3, radius: radius,
			hpMult: gm.ItemGuardHP, atkMult: gm.ItemGuardAtk, defMult: gm.ItemGuardDef,
			expMult: gm.ItemGuardExp, goldMult: gm.ItemGuardGold,
		})
	}
	if f.StairsPos != nil {
		targets = append(targets, guardTarget{
			pos: *f.StairsPos, weight: 2, radius: g.cfg.FloorGen.StairsPotionGuardRadius,
			hpMult: gm.StairsGuardHP, atkMult: gm.StairsGuardAtk, defMult: 1,
			expMult: gm.StairsGuardExp, goldMult: 1,
		})
	}
	return targets
}

// scoreGuardCell scores a candidate cell by its distance to the
// protected target and the target's weight.
func scoreGuardCell(distance int, weight float64, radius int) float64 {
	switch {
	case distance == 0:
		return 0
	case distance <= 2:
		return 1.5 * weight
	case distance <= radius:
		return weight * (1 - 0.2*float64(distance-2))
	default:
		return 0.1 * weight
	}
}

// placeGuards spawns one guard monster per target, drawing a valid
// cell within the target's radius at random in proportion to each
// cell's weight (with a
// fallback that relaxes the minimum inter-guard spacing once the
// radius has already been searched).
func (g *Generator) placeGuards(f *entity.Floor, level int, targets []guardTarget) {
	var placed []geom.Position

	for _, target := range targets {
		pos, ok := g.pickGuardCell(f, target, placed, 1)
		if !ok {
			// Retry with the spacing requirement relaxed and the
			// search radius widened by one.
			relaxed := target
			relaxed.radius++
			pos, ok = g.pickGuardCell(f, relaxed, placed, 0)
		}
		if !ok {
			continue
		}

		stats := g.rollMonsterStats(level)
		stats.hp = int(float64(stats.hp) * target.hpMult)
		stats.atk = int(float64(stats.atk) * target.atkMult)
		stats.def = int(float64(stats.def) * target.defMult)
		stats.exp = int(float64(stats.exp) * target.expMult)
		stats.gold = int(float64(stats.gold) * target.goldMult)

		m := g.newMonster(pos, stats)
		f.PlaceMonster(m)
		placed = append(placed, pos)
	}
}

func (g *Generator) pickGuardCell(f *entity.Floor, target guardTarget, placed []geom.Position, minSpacing int) (geom.Position, bool) {
	var candidates []geom.Position
	var weights []float64

	for dy := -target.radius; dy <= target.radius; dy++ {
		for dx := -target.radius; dx <= target.radius; dx++ {
			p := geom.Position{X: target.pos.X + dx, Y: target.pos.Y + dy}
			if !cellSpawnable(f, p) {
				continue
			}
			d := geom.ManhattanDistance(target.pos, p)
			if d > target.radius {
				continue
			}
			tooClose := false
			for _, prev := range placed {
				if geom.ManhattanDistance(prev, p) < minSpacing {
					tooClose = true
					break
				}
			}
			if tooClose {
				continue
			}
			score := scoreGuardCell(d, target.weight, target.radius)
			if score <= 0 {
				continue
			}
			candidates = append(candidates, p)
			weights = append(weights, score)
		}
	}

	if len(candidates) == 0 {
		return geom.Position{}, false
	}
	idx := g.rng.WeightedChoice(weights)
	return candidates[idx], true
}
