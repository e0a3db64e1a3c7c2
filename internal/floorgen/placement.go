package floorgen

import (
	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/geom"
)

// cellAvailable reports whether p is enterable by the player and not
// already occupied by a monster, item, or the merchant.
func cellAvailable(f *entity.Floor, p geom.Position) bool {
	if !geom.InBounds(p, entity.FloorWidth, entity.FloorHeight) {
		return false
	}
	c := f.CellAt(p)
	return c.EnterableByPlayer() && c.EntityKind == entity.NoEntity
}

// cellSpawnable is cellAvailable restricted further for monster/item
// placement: the stairs cell must never carry an entity, and nothing
// spawns on top of the player's start.
func cellSpawnable(f *entity.Floor, p geom.Position) bool {
	if !cellAvailable(f, p) {
		return false
	}
	if f.CellAt(p).Type == entity.Stairs {
		return false
	}
	return p != f.PlayerStart
}

// spiralSearch scans outward from start in expanding square rings,
// returning the first cell satisfying pred. Used for every "nearest
// enterable unoccupied cell" fallback.
func spiralSearch(f *entity.Floor, start geom.Position, pred func(*entity.Floor, geom.Position) bool) (geom.Position, bool) {
	if pred(f, start) {
		return start, true
	}

	maxRadius := entity.FloorWidth + entity.FloorHeight
	for radius := 1; radius <= maxRadius; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if abs(dx) != radius && abs(dy) != radius {
					continue // only the ring perimeter at this radius
				}
				p := geom.Position{X: start.X + dx, Y: start.Y + dy}
				if pred(f, p) {
					return p, true
				}
			}
		}
	}
	return start, false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// choosePlayerStart takes the available cell nearest the previous
// floor's stairs position (that cell itself when it is available).
// Without a previous floor, or if that search finds nothing, it takes
// the available cell nearest the first room's center.
func (g *Generator) choosePlayerStart(f *entity.Floor, prev *entity.Floor, rooms []rect) geom.Position {
	if prev != nil && prev.StairsPos != nil {
		if pos, ok := spiralSearch(f, *prev.StairsPos, cellAvailable); ok {
			return pos
		}
	}

	first := rooms[0].center()
	if pos, ok := spiralSearch(f, first, cellAvailable); ok {
		return pos
	}
	return first
}

// chooseStairs picks a random room whose center differs from
// player_start and returns that center; the caller marks the cell
// Stairs. Returns nil on floor
// 100 (no stairs there) or if every room center coincides with start.
func (g *Generator) chooseStairs(f *entity.Floor, rooms []rect, playerStart geom.Position) *geom.Position {
	if f.Level >= 100 {
		return nil
	}

	var candidates []rect
	for _, r := range rooms {
		if r.center() != playerStart {
			candidates = append(candidates, r)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	idx := g.rng.NextInt(0, len(candidates)-1)
	pos := candidates[idx].center()
	return &pos
}

// ensureStairsApproachable runs after all monster placement: the
// stairs must stay reachable from the player start without stepping
// through a monster-occupied cell, or a guard sitting in a one-wide
// corridor pinch could wall the player off from descending. Any
// monster found sealing the only route is removed, nearest to the
// reachable frontier first.
func (g *Generator) ensureStairsApproachable(f *entity.Floor) {
	if f.StairsPos == nil {
		return
	}
	open := func(p geom.Position) bool {
		c := f.CellAt(p)
		return c.Passable() && c.EntityKind != entity.EntityMonster
	}

	for {
		reachable := geom.FloodFill(f.PlayerStart, entity.FloorWidth, entity.FloorHeight, open)
		if reachable[*f.StairsPos] {
			return
		}

		// Pick the frontier monster at the lowest (y, x) so the repair
		// is independent of map iteration order.
		var victim *entity.Monster
		for _, m := range f.Monsters {
			onFrontier := false
			for _, n := range geom.Neighbors4(m.Position) {
				if reachable[n] {
					onFrontier = true
					break
				}
			}
			if !onFrontier {
				continue
			}
			if victim == nil || m.Position.Y < victim.Position.Y ||
				(m.Position.Y == victim.Position.Y && m.Position.X < victim.Position.X) {
				victim = m
			}
		}
		if victim == nil {
			return // terrain itself is disconnected; ensureReachable already ran
		}
		f.RemoveMonster(victim.ID)
	}
}

// ensureReachable flood-fills from `from` and, if `to` is not in the
// reachable set, L-carves a corridor to connect it.
func (g *Generator) ensureReachable(f *entity.Floor, from, to geom.Position) {
	reachable := geom.FloodFill(from, entity.FloorWidth, entity.FloorHeight, f.IsPassable)
	if reachable[to] {
		return
	}
	horizontalFirst := g.rng.NextFloat() < 0.5
	for _, p := range geom.LineCarve(from, to, horizontalFirst) {
		if f.CellAt(p).Type == entity.Wall {
			f.SetCell(p, entity.Cell{Type: entity.Empty})
		}
	}
}
