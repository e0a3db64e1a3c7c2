// Package floorgen builds the 15x15 floors the player walks between
// descents: merchant floors, normal rejection-sampled room layouts, and
// the fixed floor-100 boss arena. Every random decision goes
// through the injected grng.RNG so a seeded run is fully reproducible.
package floorgen

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/gameconfig"
	"github.com/towerclimb/server/internal/geom"
	"github.com/towerclimb/server/internal/grng"
)

// Generator produces floors for one game session. It holds no mutable
// state of its own beyond the config and RNG handle it was built with.
type Generator struct {
	cfg *gameconfig.Config
	rng grng.RNG
}

// New builds a Generator bound to cfg and rng. Callers create one per
// session, sharing the session's own RNG instance.
func New(cfg *gameconfig.Config, rng grng.RNG) *Generator {
	return &Generator{cfg: cfg, rng: rng}
}

// Generate builds the floor for level, given the previous floor (nil
// for a brand-new game) and the session's current merchant_streak. It
// returns the new floor and the merchant_streak value that should
// replace the session's current one.
func (g *Generator) Generate(level int, prev *entity.Floor, merchantStreak int) (*entity.Floor, int) {
	if level >= 100 {
		return g.generateFinalBossFloor(level), merchantStreak
	}

	isMerchant, newStreak := g.merchantGate(level, merchantStreak)
	if isMerchant {
		return g.generateMerchantFloor(level), newStreak
	}
	return g.generateNormalFloor(level, prev), newStreak
}

// merchantGate decides whether level hosts the merchant: always on
// level 10, forced once the streak reaches the cap, otherwise
// probabilistic on later multiples of ten.
func (g *Generator) merchantGate(level, streak int) (bool, int) {
	if level < 10 || level%10 != 0 {
		return false, streak
	}
	if level == 10 {
		return true, 0
	}
	// The floor under evaluation counts toward the streak: a roll that
	// failed here would be the streak's force-interval-th consecutive
	// miss, so it is forced instead and the streak never exceeds the cap.
	if streak+1 >= g.cfg.FloorGen.MerchantForceInterval {
		return true, 0
	}
	chance := math.Min(1, g.cfg.FloorGen.MerchantBaseChance+float64(streak)*g.cfg.FloorGen.MerchantChanceIncrement)
	if g.rng.NextFloat() < chance {
		return true, 0
	}
	return false, streak + 1
}

// generateMerchantFloor builds the fixed merchant layout:
// outer wall ring, empty interior, merchant at (7,7), stairs at (1,1),
// player start at (13,13), no monsters or items.
func (g *Generator) generateMerchantFloor(level int) *entity.Floor {
	f := entity.NewFloor(level)
	f.IsMerchantFloor = true

	for y := 1; y < entity.FloorHeight-1; y++ {
		for x := 1; x < entity.FloorWidth-1; x++ {
			f.SetCell(geom.Position{X: x, Y: y}, entity.Cell{Type: entity.Empty})
		}
	}

	stairs := geom.Position{X: 1, Y: 1}
	f.SetCell(stairs, entity.Cell{Type: entity.Stairs})
	f.StairsPos = &stairs
	f.PlayerStart = geom.Position{X: 13, Y: 13}

	merchantPos := geom.Position{X: 7, Y: 7}
	f.Merchant = &entity.Merchant{Position: merchantPos}
	f.SetCell(merchantPos, entity.Cell{Type: entity.Empty, EntityKind: entity.EntityMerchant})

	return f
}

// generateNormalFloor carves rooms and corridors and places loot and
// monsters, under a soft wall-clock budget: if the layout work blows
// past the configured limit, the attempt is abandoned for the
// degenerate single-room fallback rather than stalling the command.
func (g *Generator) generateNormalFloor(level int, prev *entity.Floor) *entity.Floor {
	started := time.Now()
	f := entity.NewFloor(level)

	rooms := g.sampleRooms()
	if len(rooms) == 0 || g.overSoftLimit(started) {
		return g.degenerateFloor(level)
	}
	carveRooms(f, rooms)
	g.connectRooms(f, rooms)

	f.PlayerStart = g.choosePlayerStart(f, prev, rooms)
	f.SetCell(f.PlayerStart, withOccupantCleared(f.CellAt(f.PlayerStart)))

	stairs := g.chooseStairs(f, rooms, f.PlayerStart)
	if stairs != nil {
		f.SetCell(*stairs, entity.Cell{Type: entity.Stairs})
		f.StairsPos = stairs
		g.ensureReachable(f, f.PlayerStart, *stairs)
	}

	g.placeStrategicLoot(f, rooms, level)

	if g.overSoftLimit(started) {
		return g.degenerateFloor(level)
	}
	return f
}

// overSoftLimit reports whether a generation attempt has exceeded the
// configured per-command compute budget.
func (g *Generator) overSoftLimit(started time.Time) bool {
	limit := g.cfg.FloorGen.GenerationSoftLimitMillis
	if limit <= 0 {
		return false
	}
	return time.Since(started) > time.Duration(limit)*time.Millisecond
}

// degenerateFloor is the soft-timeout fallback: a single room with
// stairs adjacent to the player start, guaranteed reachable and valid.
func (g *Generator) degenerateFloor(level int) *entity.Floor {
	f := entity.NewFloor(level)
	room := rect{X: 5, Y: 5, W: 4, H: 4}
	carveRooms(f, []rect{room})

	f.PlayerStart = geom.Position{X: 6, Y: 6}
	if level < 100 {
		stairs := geom.Position{X: 7, Y: 6}
		f.SetCell(stairs, entity.Cell{Type: entity.Stairs})
		f.StairsPos = &stairs
	}
	return f
}

// generateFinalBossFloor builds the top-floor arena hosting
// only the final boss, no stairs, no items, no other monsters.
func (g *Generator) generateFinalBossFloor(level int) *entity.Floor {
	f := entity.NewFloor(level)

	rooms := g.sampleRooms()
	if len(rooms) == 0 {
		return g.degenerateFinalBossFloor(level)
	}
	carveRooms(f, rooms)
	g.connectRooms(f, rooms)

	f.PlayerStart = g.choosePlayerStart(f, nil, rooms)

	bossRoom := rooms[0]
	for _, r := range rooms {
		if r.center() != f.PlayerStart {
			bossRoom = r
			break
		}
	}
	bossPos := bossRoom.center()
	g.ensureReachable(f, f.PlayerStart, bossPos)

	boss := g.newFinalBoss(bossPos)
	f.PlaceMonster(boss)

	return f
}

func (g *Generator) degenerateFinalBossFloor(level int) *entity.Floor {
	f := g.degenerateFloor(level)
	f.StairsPos = nil
	bossPos := geom.Position{X: 8, Y: 6}
	f.SetCell(bossPos, entity.Cell{Type: entity.Empty})
	f.PlaceMonster(g.newFinalBoss(bossPos))
	return f
}

func (g *Generator) newFinalBoss(pos geom.Position) *entity.Monster {
	fb := g.cfg.FinalBoss
	return &entity.Monster{
		ID:         uuid.NewString(),
		Name:       fb.Name,
		HP:         fb.HP,
		MaxHP:      fb.HP,
		Atk:        fb.Atk,
		Def:        fb.Def,
		ExpReward:  fb.ExpReward,
		GoldReward: fb.GoldReward,
		Position:   pos,
	}
}

func withOccupantCleared(c entity.Cell) entity.Cell {
	c.EntityKind = entity.NoEntity
	c.EntityID = ""
	return c
}
