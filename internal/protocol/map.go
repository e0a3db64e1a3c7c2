package protocol

import (
	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/geom"
)

// Map glyphs, in the precedence order EncodeMap applies: the player
// always wins, then whatever entity occupies a cell, then bare terrain.
const (
	symbolPlayer   = "@"
	symbolMonster  = "M"
	symbolStairs   = ">"
	symbolPotion   = "+"
	symbolWeapon   = "↑"
	symbolArmor    = "◆"
	symbolMerchant = "$"
	symbolEmpty    = "."
	symbolWall     = "#"
)

// EncodeMap renders f as a grid of single-glyph cell symbols with p's
// position marked. Precedence at each cell: player > occupying entity
// (monster, stairs marker, potion, weapon, armor, merchant) > bare
// terrain (empty or wall).
func EncodeMap(f *entity.Floor, playerPos geom.Position) [][]string {
	grid := make([][]string, entity.FloorHeight)
	for y := 0; y < entity.FloorHeight; y++ {
		row := make([]string, entity.FloorWidth)
		for x := 0; x < entity.FloorWidth; x++ {
			pos := geom.Position{X: x, Y: y}
			row[x] = cellSymbol(f, pos, playerPos)
		}
		grid[y] = row
	}
	return grid
}

func cellSymbol(f *entity.Floor, pos, playerPos geom.Position) string {
	if pos == playerPos {
		return symbolPlayer
	}

	cell := f.CellAt(pos)
	switch cell.EntityKind {
	case entity.EntityMonster:
		return symbolMonster
	case entity.EntityItem:
		if it := f.ItemAt(pos); it != nil {
			return itemSymbol(it)
		}
	case entity.EntityMerchant:
		return symbolMerchant
	}

	if cell.Type == entity.Stairs {
		return symbolStairs
	}
	if cell.Type == entity.Wall {
		return symbolWall
	}
	return symbolEmpty
}

func itemSymbol(it *entity.Item) string {
	switch it.EffectType {
	case entity.EffectWeapon:
		return symbolWeapon
	case entity.EffectArmor:
		return symbolArmor
	case entity.EffectStairMarker:
		return symbolStairs
	default:
		return symbolPotion
	}
}

// NewMap builds the outbound map message for the current floor.
func NewMap(f *entity.Floor, playerPos geom.Position) *MapMessage {
	return &MapMessage{Type: TypeMap, Level: f.Level, Grid: EncodeMap(f, playerPos)}
}
