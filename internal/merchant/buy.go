package merchant

import (
	"fmt"

	"github.com/towerclimb/server/internal/entity"
)

// BuyResult reports the outcome of a purchase.
type BuyResult struct {
	NewGold int
	Message string
}

// Buy finds the first matching stock entry by name, debits gold, then
// applies potion/weapon/armor effects. Weapons
// bought from a merchant never drop the old one — it is simply lost.
func (e *Engine) Buy(p *entity.Player, stock []entity.MerchantOffer, itemName string) (BuyResult, error) {
	var offer *entity.MerchantOffer
	for i := range stock {
		if stock[i].Item.Name == itemName {
			offer = &stock[i]
			break
		}
	}
	if offer == nil {
		return BuyResult{}, ErrNotFound
	}
	if p.Gold < offer.Price {
		return BuyResult{}, ErrInsufficientGold
	}

	p.Gold -= offer.Price
	it := offer.Item

	switch it.EffectType {
	case entity.EffectPotion:
		p.AddInventory(it.Name, 1)
	case entity.EffectWeapon:
		p.Weapon = &entity.Equipment{Name: it.Name, Atk: it.Atk, Rarity: it.Rarity, Affixes: it.WeaponAffixes}
	case entity.EffectArmor:
		oldEffMax := entity.EffectiveMaxHP(p)
		oldHP := p.HP
		p.Armor = &entity.Equipment{Name: it.Name, Def: it.Def, Rarity: it.Rarity, Affixes: it.ArmorAffixes}
		rescaleHPAfterArmorChange(p, oldHP, oldEffMax)
	}

	return BuyResult{
		NewGold: p.Gold,
		Message: fmt.Sprintf("You buy %s for %d gold.", it.Name, offer.Price),
	}, nil
}

// rescaleHPAfterArmorChange mirrors combat.rescaleHPAfterArmorChange:
// buying armor applies the same HP-ratio rescale as picking it up.
func rescaleHPAfterArmorChange(p *entity.Player, oldHP, oldEffMax int) {
	if oldEffMax <= 0 {
		return
	}
	newEffMax := entity.EffectiveMaxHP(p)
	if newEffMax == oldEffMax {
		return
	}
	ratio := float64(oldHP) / float64(oldEffMax)
	scaled := int(float64(newEffMax) * ratio)
	if scaled > newEffMax {
		scaled = newEffMax
	}
	p.HP = scaled
}
