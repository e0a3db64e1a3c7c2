package protocol

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"

	"github.com/towerclimb/server/internal/combat"
	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/gameconfig"
)

// NewInfo builds the player status panel for floorLevel, computing the
// derived totals from internal/entity's on-demand formulas rather than
// caching them on Player. gcfg supplies the per-affix-kind
// AffixTuning.Percentage flag describeAffix needs to render an affix
// as a rate versus a flat amount.
func NewInfo(p *entity.Player, floorLevel int, gcfg *gameconfig.Config) *InfoMessage {
	msg := &InfoMessage{
		Type:      TypeInfo,
		HP:        p.HP,
		MaxHP:     entity.EffectiveMaxHP(p),
		Attack:    p.BaseAtk,
		Defense:   p.BaseDef,
		TotalAtk:  entity.TotalAtk(p, floorLevel),
		TotalDef:  entity.TotalDef(p),
		Exp:       p.Exp,
		ExpNeeded: combat.ExpForLevel(p.Level),
		Level:     p.Level,
		Gold:      p.Gold,
		Floor:     floorLevel,
		Inventory: inventoryEntries(p.Inventory),
	}

	if p.Weapon != nil {
		msg.WeaponAtk = p.Weapon.Atk
		msg.WeaponName = p.Weapon.Name
		msg.WeaponRarity = string(p.Weapon.Rarity)
		msg.WeaponAttributes = describeAffixes(p.Weapon.Affixes, true, gcfg)
	}
	if p.Armor != nil {
		msg.ArmorDef = p.Armor.Def
		msg.ArmorName = p.Armor.Name
	}

	return msg
}

func inventoryEntries(inv map[string]int) []InventoryEntry {
	entries := make([]InventoryEntry, 0, len(inv))
	for name, count := range inv {
		entries = append(entries, InventoryEntry{Name: name, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

func describeAffixes(affixes []entity.Affix, weapon bool, gcfg *gameconfig.Config) []WeaponAttribute {
	out := make([]WeaponAttribute, 0, len(affixes))
	for _, a := range affixes {
		out = append(out, WeaponAttribute{
			AttributeType: a.Kind,
			Value:         a.Effective(),
			Description:   describeAffix(a, weapon, gcfg),
			Level:         a.Level,
		})
	}
	return out
}

// describeAffix renders a human-readable line for one affix, rendering
// percentage-valued kinds as a rate and everything else as a flat,
// thousands-grouped amount. Whether a kind is percentage-valued is an
// operator tunable (AffixTuning.Percentage in gcfg.WeaponAffix /
// gcfg.ArmorAffix), not a fixed fact about the kind.
func describeAffix(a entity.Affix, weapon bool, gcfg *gameconfig.Config) string {
	value := a.Effective()
	if isPercentageKind(a.Kind, weapon, gcfg) {
		return fmt.Sprintf("%s +%.1f%%", a.Kind, value*100)
	}
	return fmt.Sprintf("%s +%s", a.Kind, humanize.CommafWithDigits(value, 1))
}

func isPercentageKind(kind string, weapon bool, gcfg *gameconfig.Config) bool {
	if weapon {
		return gcfg.WeaponAffix[kind].Percentage
	}
	return gcfg.ArmorAffix[kind].Percentage
}
