package entity

import (
	"testing"

	"github.com/towerclimb/server/internal/geom"
)

func TestNewFloorAllWalls(t *testing.T) {
	f := NewFloor(1)
	for y := 0; y < FloorHeight; y++ {
		for x := 0; x < FloorWidth; x++ {
			if f.Grid[y][x].Type != Wall {
				t.Fatalf("expected fresh floor to be all walls, found %v at (%d,%d)", f.Grid[y][x].Type, x, y)
			}
		}
	}
}

func TestPlaceAndRemoveMonsterClearsCell(t *testing.T) {
	f := NewFloor(1)
	pos := geom.Position{X: 3, Y: 3}
	f.SetCell(pos, Cell{Type: Empty})
	f.PlaceMonster(&Monster{ID: "m1", HP: 10, MaxHP: 10, Position: pos})

	if f.MonsterAt(pos) == nil {
		t.Fatal("expected monster at placed position")
	}
	if f.CellAt(pos).EntityKind != EntityMonster {
		t.Fatal("expected cell entity kind to be monster")
	}

	f.RemoveMonster("m1")
	if f.MonsterAt(pos) != nil {
		t.Fatal("expected monster removed")
	}
	if f.CellAt(pos).EntityKind != NoEntity {
		t.Fatal("expected cell entity kind cleared after removal")
	}
}

func TestAnyMonsterWithinIgnoresDead(t *testing.T) {
	f := NewFloor(1)
	dead := &Monster{ID: "dead", HP: 0, MaxHP: 10, Position: geom.Position{X: 1, Y: 1}}
	f.SetCell(dead.Position, Cell{Type: Empty})
	f.PlaceMonster(dead)

	if f.AnyMonsterWithin(geom.Position{X: 1, Y: 1}, 3) {
		t.Fatal("dead monster should not count as blocking")
	}

	alive := &Monster{ID: "alive", HP: 5, MaxHP: 10, Position: geom.Position{X: 2, Y: 2}}
	f.SetCell(alive.Position, Cell{Type: Empty})
	f.PlaceMonster(alive)

	if !f.AnyMonsterWithin(geom.Position{X: 1, Y: 1}, 3) {
		t.Fatal("expected alive monster within radius to block")
	}
}

func TestEnterableByPlayer(t *testing.T) {
	cases := []struct {
		c    Cell
		want bool
	}{
		{Cell{Type: Empty, EntityKind: NoEntity}, true},
		{Cell{Type: Stairs, EntityKind: NoEntity}, true},
		{Cell{Type: Wall, EntityKind: NoEntity}, false},
		{Cell{Type: Empty, EntityKind: EntityItem}, true},
		{Cell{Type: Empty, EntityKind: EntityMonster}, false},
		{Cell{Type: Empty, EntityKind: EntityMerchant}, false},
	}
	for _, tt := range cases {
		if got := tt.c.EnterableByPlayer(); got != tt.want {
			t.Errorf("EnterableByPlayer(%+v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}
