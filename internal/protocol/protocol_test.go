package protocol

import (
	"encoding/json"
	"testing"

	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/gameconfig"
	"github.com/towerclimb/server/internal/geom"
)

func TestDecodeAuthEnvelope(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"auth","action":"login","username":"hero","password":"pw"}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !msg.IsAuth() || msg.Action != "login" || msg.Username != "hero" {
		t.Errorf("unexpected decode: %+v", msg)
	}
}

func TestDecodeBareCommand(t *testing.T) {
	msg, err := Decode([]byte(`{"cmd":"move","direction":"north"}`))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if msg.IsAuth() || msg.Cmd != "move" || msg.Direction != "north" {
		t.Errorf("unexpected decode: %+v", msg)
	}
}

func TestInventoryEntryMarshalsAsPair(t *testing.T) {
	data, err := json.Marshal(InventoryEntry{Name: "Potion+50", Count: 3})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `["Potion+50",3]` {
		t.Errorf("got %s", data)
	}
}

func TestEncodeMapPlayerTakesPrecedence(t *testing.T) {
	f := entity.NewFloor(1)
	playerPos := geom.Position{X: 2, Y: 2}
	f.SetCell(playerPos, entity.Cell{Type: entity.Empty})
	f.PlaceMonster(&entity.Monster{ID: "m1", Name: "Rat", HP: 5, MaxHP: 5, Position: playerPos})

	grid := EncodeMap(f, playerPos)
	if grid[2][2] != symbolPlayer {
		t.Errorf("expected player glyph at occupied cell, got %q", grid[2][2])
	}
}

func TestEncodeMapMonsterOverEmptyCell(t *testing.T) {
	f := entity.NewFloor(1)
	pos := geom.Position{X: 3, Y: 3}
	f.SetCell(pos, entity.Cell{Type: entity.Empty})
	f.PlaceMonster(&entity.Monster{ID: "m1", Name: "Rat", HP: 5, MaxHP: 5, Position: pos})

	grid := EncodeMap(f, geom.Position{X: 0, Y: 0})
	if grid[3][3] != symbolMonster {
		t.Errorf("got %q, want monster glyph", grid[3][3])
	}
}

func TestEncodeMapWallDefault(t *testing.T) {
	f := entity.NewFloor(1)
	grid := EncodeMap(f, geom.Position{X: 0, Y: 0})
	if grid[5][5] != symbolWall {
		t.Errorf("got %q, want wall glyph for untouched cell", grid[5][5])
	}
}

func TestNewInfoReportsWeaponAttributes(t *testing.T) {
	p := entity.NewPlayer(100, 10, 5, geom.Position{})
	p.Weapon = &entity.Equipment{
		Name: "Sword", Atk: 20, Rarity: entity.Common,
		Affixes: []entity.Affix{{Kind: string(entity.CriticalChance), BaseValue: 0.1, Level: 1}},
	}
	p.AddInventory("Potion+50", 2)

	info := NewInfo(p, 3, gameconfig.Default())
	if info.Type != TypeInfo || info.Floor != 3 {
		t.Fatalf("unexpected info: %+v", info)
	}
	if info.WeaponName != "Sword" || len(info.WeaponAttributes) != 1 {
		t.Fatalf("weapon attributes missing: %+v", info)
	}
	if info.ExpNeeded != 100 {
		t.Errorf("ExpNeeded = %d, want 100", info.ExpNeeded)
	}
	if len(info.Inventory) != 1 || info.Inventory[0].Count != 2 {
		t.Errorf("inventory did not reflect added potions: %+v", info.Inventory)
	}
}

func TestDescribeAffixPercentageVsFlat(t *testing.T) {
	gcfg := gameconfig.Default()

	pct := describeAffix(entity.Affix{Kind: string(entity.CriticalChance), BaseValue: 0.1}, true, gcfg)
	if pct != "critical_chance +10.0%" {
		t.Errorf("percentage description = %q", pct)
	}

	flat := describeAffix(entity.Affix{Kind: string(entity.AttackBoost), BaseValue: 1234.56, Level: 0}, true, gcfg)
	if flat != "attack_boost +1,234.5" {
		t.Errorf("flat description = %q", flat)
	}
}
