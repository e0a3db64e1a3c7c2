package floorgen

import (
	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/geom"
)

// rect is an axis-aligned room footprint in grid coordinates.
type rect struct {
	X, Y, W, H int
}

func (r rect) center() geom.Position {
	return geom.Position{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

func (r rect) containsCell(p geom.Position) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// overlaps reports whether r and other intersect, including a one-cell
// buffer so rooms never carve adjoining walls into one shapeless blob.
func (r rect) overlaps(other rect) bool {
	return r.X-1 < other.X+other.W &&
		r.X+r.W+1 > other.X &&
		r.Y-1 < other.Y+other.H &&
		r.Y+r.H+1 > other.Y
}

// sampleRooms samples N rooms in
// [RoomCountMin, RoomCountMax], each sized in [RoomSizeMin, RoomSizeMax]
// on a side, rejecting placements that overlap an already-placed room,
// up to MaxAttempts tries per room (a room that never fits is skipped).
func (g *Generator) sampleRooms() []rect {
	fg := g.cfg.FloorGen
	n := g.rng.NextInt(fg.RoomCountMin, fg.RoomCountMax)

	const margin = 1 // keep the outer ring solid

	var rooms []rect
	for i := 0; i < n; i++ {
		for attempt := 0; attempt < fg.MaxAttempts; attempt++ {
			w := g.rng.NextInt(fg.RoomSizeMin, fg.RoomSizeMax)
			h := g.rng.NextInt(fg.RoomSizeMin, fg.RoomSizeMax)
			maxX := entity.FloorWidth - margin - w
			maxY := entity.FloorHeight - margin - h
			if maxX < margin || maxY < margin {
				continue
			}
			x := g.rng.NextInt(margin, maxX)
			y := g.rng.NextInt(margin, maxY)
			candidate := rect{X: x, Y: y, W: w, H: h}

			fits := true
			for _, existing := range rooms {
				if candidate.overlaps(existing) {
					fits = false
					break
				}
			}
			if fits {
				rooms = append(rooms, candidate)
				break
			}
		}
	}
	return rooms
}

// carveRooms sets every cell inside each room to Empty.
func carveRooms(f *entity.Floor, rooms []rect) {
	for _, r := range rooms {
		for y := r.Y; y < r.Y+r.H; y++ {
			for x := r.X; x < r.X+r.W; x++ {
				f.SetCell(geom.Position{X: x, Y: y}, entity.Cell{Type: entity.Empty})
			}
		}
	}
}

// connectRooms connects consecutive rooms (in
// placement order) with an L-shaped corridor between their centers.
func (g *Generator) connectRooms(f *entity.Floor, rooms []rect) {
	for i := 1; i < len(rooms); i++ {
		a := rooms[i-1].center()
		b := rooms[i].center()
		horizontalFirst := g.rng.NextFloat() < 0.5
		for _, p := range geom.LineCarve(a, b, horizontalFirst) {
			if f.CellAt(p).Type != entity.Wall {
				continue
			}
			f.SetCell(p, entity.Cell{Type: entity.Empty})
		}
	}
}
