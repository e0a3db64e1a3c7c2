// Package merchant implements the shopkeeper encountered on merchant
// floors: stock generation and purchase resolution.
package merchant

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/floorgen"
	"github.com/towerclimb/server/internal/gameconfig"
	"github.com/towerclimb/server/internal/geom"
	"github.com/towerclimb/server/internal/grng"
)

var ErrNotFound = errors.New("merchant: no stock entry with that name")
var ErrInsufficientGold = errors.New("merchant: insufficient gold")

// Engine bundles the tunables merchant pricing and stocking read from.
type Engine struct {
	cfg *gameconfig.Config
}

// New builds an Engine bound to cfg.
func New(cfg *gameconfig.Config) *Engine {
	return &Engine{cfg: cfg}
}

// GenerateInventory stocks the shop: potions priced
// by heal amount, and weapons/armor rolled through the same item
// generator floor loot uses so they carry rarity and affixes.
func (e *Engine) GenerateInventory(rng grng.RNG, floorLevel int) []entity.MerchantOffer {
	mc := e.cfg.Merchant
	basePrice := mc.BasePrice + float64(floorLevel)*mc.PricePerFloor

	var offers []entity.MerchantOffer

	potionCount := rng.NextInt(mc.MinPotions, mc.MaxPotions)
	tiers := mc.PotionHealTiers
	for i := 0; i < potionCount; i++ {
		heal := mc.MedianHeal
		if len(tiers) > 0 {
			heal = float64(tiers[rng.NextInt(0, len(tiers)-1)])
		}
		name := fmt.Sprintf("Potion+%d", int(heal))
		item := entity.NewPotion(uuid.NewString(), name, int(heal), geom.Position{})
		price := int(basePrice * mc.PotionMult * (heal / mc.MedianHeal))
		offers = append(offers, entity.MerchantOffer{Item: item, Price: price})
	}

	weaponCount := rng.NextInt(mc.MinWeapons, mc.MaxWeapons)
	for i := 0; i < weaponCount; i++ {
		item := floorgen.GenerateWeapon(e.cfg, rng, floorLevel, geom.Position{})
		price := int(basePrice * mc.WeaponMult)
		offers = append(offers, entity.MerchantOffer{Item: item, Price: price})
	}

	armorCount := rng.NextInt(mc.MinArmors, mc.MaxArmors)
	for i := 0; i < armorCount; i++ {
		item := floorgen.GenerateArmor(e.cfg, rng, floorLevel, geom.Position{})
		price := int(basePrice * mc.ArmorMult)
		offers = append(offers, entity.MerchantOffer{Item: item, Price: price})
	}

	return offers
}
