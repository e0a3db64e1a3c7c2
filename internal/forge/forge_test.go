package forge

import (
	"testing"

	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/gameconfig"
	"github.com/towerclimb/server/internal/geom"
	"github.com/towerclimb/server/internal/grng"
)

func testPlayerWithWeapon() *entity.Player {
	p := entity.NewPlayer(500, 50, 20, geom.Position{})
	p.Gold = 100000
	p.Weapon = &entity.Equipment{
		Name: "Sword", Atk: 10, Rarity: entity.RareTier,
		Affixes: []entity.Affix{{Kind: "attack_boost", BaseValue: 5, Level: 0}},
	}
	return p
}

func TestUpgradeAffixAlwaysDebitsGoldEvenOnFailure(t *testing.T) {
	cfg := gameconfig.Default()
	e := New(cfg)
	p := testPlayerWithWeapon()
	goldBefore := p.Gold

	// Try seeds until one makes NextFloat() high enough to fail the roll.
	var res Result
	var err error
	for seed := int64(0); seed < 50; seed++ {
		p2 := testPlayerWithWeapon()
		res, err = e.UpgradeAffix(grng.NewSeeded(seed), p2, SlotWeapon, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.Success {
			if p2.Gold >= goldBefore {
				t.Fatal("gold must be debited even when the forge roll fails")
			}
			return
		}
	}
}

func TestUpgradeAffixSuccessRaisesLevel(t *testing.T) {
	cfg := gameconfig.Default()
	e := New(cfg)

	for seed := int64(0); seed < 50; seed++ {
		p := testPlayerWithWeapon()
		res, err := e.UpgradeAffix(grng.NewSeeded(seed), p, SlotWeapon, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Success {
			if p.Weapon.Affixes[0].Level != 1 {
				t.Errorf("affix level = %d, want 1 after success", p.Weapon.Affixes[0].Level)
			}
			return
		}
	}
}

func TestUpgradeAffixRejectsEmptySlot(t *testing.T) {
	cfg := gameconfig.Default()
	e := New(cfg)
	p := entity.NewPlayer(500, 50, 20, geom.Position{})
	p.Gold = 1000

	_, err := e.UpgradeAffix(grng.NewSeeded(1), p, SlotWeapon, 0)
	if err != ErrEmptySlot {
		t.Errorf("err = %v, want ErrEmptySlot", err)
	}
}

func TestUpgradeAffixRejectsInsufficientGold(t *testing.T) {
	cfg := gameconfig.Default()
	e := New(cfg)
	p := testPlayerWithWeapon()
	p.Gold = 0

	_, err := e.UpgradeAffix(grng.NewSeeded(1), p, SlotWeapon, 0)
	if err != ErrInsufficientGold {
		t.Errorf("err = %v, want ErrInsufficientGold", err)
	}
}

func TestAddAffixRejectsAtRarityCap(t *testing.T) {
	cfg := gameconfig.Default()
	e := New(cfg)
	p := testPlayerWithWeapon()
	p.Weapon.Rarity = entity.Common // affix_count 0 for common
	p.Weapon.Affixes = nil

	// Common caps at 0 affixes, so even a first add is rejected.
	p.Weapon.Affixes = []entity.Affix{}
	_, err := e.AddAffix(grng.NewSeeded(1), p, SlotWeapon)
	if err != ErrAffixCapReached {
		t.Errorf("err = %v, want ErrAffixCapReached", err)
	}
}

func TestRerollAffixNeverProducesDuplicateKind(t *testing.T) {
	cfg := gameconfig.Default()
	e := New(cfg)
	p := testPlayerWithWeapon()
	p.Weapon.Affixes = []entity.Affix{
		{Kind: "attack_boost", BaseValue: 5, Level: 2},
		{Kind: "damage_mult", BaseValue: 0.1, Level: 0},
	}

	for seed := int64(0); seed < 50; seed++ {
		p2 := testPlayerWithWeapon()
		p2.Weapon.Affixes = []entity.Affix{
			{Kind: "attack_boost", BaseValue: 5, Level: 2},
			{Kind: "damage_mult", BaseValue: 0.1, Level: 2},
		}
		res, err := e.RerollAffix(grng.NewSeeded(seed), p2, SlotWeapon, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Success {
			if p2.Weapon.Affixes[1].Kind == "attack_boost" {
				t.Error("rerolled affix must not duplicate a kind already present")
			}
			if p2.Weapon.Affixes[1].Level != 2 {
				t.Error("reroll must preserve the affix's forge level")
			}
			return
		}
	}
}
