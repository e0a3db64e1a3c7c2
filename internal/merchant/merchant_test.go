package merchant

import (
	"testing"

	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/gameconfig"
	"github.com/towerclimb/server/internal/geom"
	"github.com/towerclimb/server/internal/grng"
)

func TestGenerateInventoryStaysWithinConfiguredCounts(t *testing.T) {
	cfg := gameconfig.Default()
	e := New(cfg)
	mc := cfg.Merchant

	offers := e.GenerateInventory(grng.NewSeeded(1), 10)

	var potions, weapons, armors int
	for _, o := range offers {
		switch o.Item.EffectType {
		case entity.EffectPotion:
			potions++
		case entity.EffectWeapon:
			weapons++
		case entity.EffectArmor:
			armors++
		}
		if o.Price <= 0 {
			t.Errorf("offer %q has non-positive price %d", o.Item.Name, o.Price)
		}
	}

	if potions < mc.MinPotions || potions > mc.MaxPotions {
		t.Errorf("potion count = %d, want within [%d,%d]", potions, mc.MinPotions, mc.MaxPotions)
	}
	if weapons < mc.MinWeapons || weapons > mc.MaxWeapons {
		t.Errorf("weapon count = %d, want within [%d,%d]", weapons, mc.MinWeapons, mc.MaxWeapons)
	}
	if armors < mc.MinArmors || armors > mc.MaxArmors {
		t.Errorf("armor count = %d, want within [%d,%d]", armors, mc.MinArmors, mc.MaxArmors)
	}
}

func TestGenerateInventoryIsDeterministicForSameSeed(t *testing.T) {
	cfg := gameconfig.Default()
	e := New(cfg)

	a := e.GenerateInventory(grng.NewSeeded(42), 20)
	b := e.GenerateInventory(grng.NewSeeded(42), 20)

	if len(a) != len(b) {
		t.Fatalf("offer counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Item.Name != b[i].Item.Name || a[i].Price != b[i].Price {
			t.Errorf("offer %d differs between identically seeded runs", i)
		}
	}
}

func testBuyerPlayer(gold int) *entity.Player {
	p := entity.NewPlayer(500, 50, 20, geom.Position{})
	p.Gold = gold
	return p
}

func TestBuyPotionIncrementsInventoryAndDebitsGold(t *testing.T) {
	cfg := gameconfig.Default()
	e := New(cfg)
	p := testBuyerPlayer(100000)

	stock := e.GenerateInventory(grng.NewSeeded(2), 5)
	var potionName string
	for _, o := range stock {
		if o.Item.EffectType == entity.EffectPotion {
			potionName = o.Item.Name
			break
		}
	}
	if potionName == "" {
		t.Fatal("expected stock to contain at least one potion")
	}

	goldBefore := p.Gold
	res, err := e.Buy(p, stock, potionName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Gold >= goldBefore {
		t.Error("gold must be debited on purchase")
	}
	if res.NewGold != p.Gold {
		t.Errorf("NewGold = %d, want %d", res.NewGold, p.Gold)
	}
	if p.Inventory[potionName] != 1 {
		t.Errorf("inventory[%q] = %d, want 1", potionName, p.Inventory[potionName])
	}
}

func TestBuyWeaponEquipsWithoutDroppingOld(t *testing.T) {
	cfg := gameconfig.Default()
	e := New(cfg)
	p := testBuyerPlayer(100000)
	p.Weapon = &entity.Equipment{Name: "Rusty Sword", Atk: 5}

	stock := e.GenerateInventory(grng.NewSeeded(3), 5)
	var weaponName string
	for _, o := range stock {
		if o.Item.EffectType == entity.EffectWeapon {
			weaponName = o.Item.Name
			break
		}
	}
	if weaponName == "" {
		t.Fatal("expected stock to contain at least one weapon")
	}

	_, err := e.Buy(p, stock, weaponName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Weapon.Name != weaponName {
		t.Errorf("weapon = %q, want %q", p.Weapon.Name, weaponName)
	}
}

func TestBuyRejectsInsufficientGold(t *testing.T) {
	cfg := gameconfig.Default()
	e := New(cfg)
	p := testBuyerPlayer(0)

	stock := e.GenerateInventory(grng.NewSeeded(4), 5)
	if len(stock) == 0 {
		t.Fatal("expected non-empty stock")
	}

	_, err := e.Buy(p, stock, stock[0].Item.Name)
	if err != ErrInsufficientGold {
		t.Errorf("err = %v, want ErrInsufficientGold", err)
	}
}

func TestBuyRejectsUnknownItemName(t *testing.T) {
	cfg := gameconfig.Default()
	e := New(cfg)
	p := testBuyerPlayer(100000)

	stock := e.GenerateInventory(grng.NewSeeded(5), 5)

	_, err := e.Buy(p, stock, "Nonexistent Item Name")
	if err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
