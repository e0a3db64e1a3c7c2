package combat

import (
	"strconv"
	"strings"

	"github.com/towerclimb/server/internal/entity"
)

// UseItem consumes one unit of the named inventory potion and heals
// by its encoded amount (name format "<base>+<amount>") or the
// configured default when the name carries no parseable suffix,
// scaled by any potion_boost armor affix.
func (e *Engine) UseItem(p *entity.Player, name string) Result {
	var res Result

	if p.Inventory[name] <= 0 {
		res.log("You don't have any %s.", name)
		return res
	}

	heal := parsePotionHeal(name, e.cfg.Player.DefaultPotionHeal)
	boost := entity.ArmorAffixSum(p, entity.PotionBoost)
	heal = int(float64(heal) * (1 + boost))

	maxHP := entity.EffectiveMaxHP(p)
	p.HP += heal
	if p.HP > maxHP {
		p.HP = maxHP
	}
	p.AddInventory(name, -1)

	res.log("You drink %s and recover %d HP.", name, heal)
	return res
}

// parsePotionHeal reads the trailing "+<amount>" suffix from a potion
// name, falling back to def when the name carries none.
func parsePotionHeal(name string, def int) int {
	idx := strings.LastIndex(name, "+")
	if idx < 0 || idx == len(name)-1 {
		return def
	}
	amount, err := strconv.Atoi(name[idx+1:])
	if err != nil {
		return def
	}
	return amount
}
