package session

import (
	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/geom"
	"github.com/towerclimb/server/internal/persistence"
)

// playerFromSnapshot rebuilds an entity.Player from the flat records
// persistence.LoadPlayer returns. persistence never imports entity, so
// this translation lives here instead.
func playerFromSnapshot(snap persistence.PlayerSnapshot) *entity.Player {
	rec := snap.Player
	p := &entity.Player{
		HP:        rec.HP,
		MaxHP:     rec.MaxHP,
		BaseAtk:   rec.BaseAtk,
		BaseDef:   rec.BaseDef,
		Exp:       rec.Exp,
		Level:     rec.Level,
		Gold:      rec.Gold,
		Position:  geom.Position{X: rec.PosX, Y: rec.PosY},
		Inventory: make(map[string]int),
	}

	for name, count := range snap.Inventory {
		p.Inventory[name] = count
	}

	weaponAffixes := affixesForSlot(snap.Affixes, "weapon")
	armorAffixes := affixesForSlot(snap.Affixes, "armor")
	for _, eq := range snap.Equipment {
		switch eq.Slot {
		case "weapon":
			p.Weapon = &entity.Equipment{Name: eq.Name, Atk: eq.Atk, Rarity: entity.Rarity(eq.Rarity), Affixes: weaponAffixes}
		case "armor":
			p.Armor = &entity.Equipment{Name: eq.Name, Def: eq.Def, Rarity: entity.Rarity(eq.Rarity), Affixes: armorAffixes}
		}
	}

	return p
}

func affixesForSlot(recs []persistence.AffixRecord, slot string) []entity.Affix {
	var out []entity.Affix
	for _, r := range recs {
		if r.Slot == slot {
			out = append(out, entity.Affix{Kind: r.Kind, BaseValue: r.BaseValue, Level: r.Level})
		}
	}
	return out
}

// playerToRecord flattens a player back into the persistence DTO
// shape, given the floor/streak state the session tracks alongside it.
func playerToRecord(p *entity.Player, floorLevel, merchantStreak int) persistence.PlayerRecord {
	return persistence.PlayerRecord{
		HP: p.HP, MaxHP: p.MaxHP,
		BaseAtk: p.BaseAtk, BaseDef: p.BaseDef,
		Exp: p.Exp, Level: p.Level, Gold: p.Gold,
		PosX: p.Position.X, PosY: p.Position.Y,
		FloorLevel:     floorLevel,
		MerchantStreak: merchantStreak,
	}
}

func equipmentToRecord(eq *entity.Equipment) *persistence.EquipmentRecord {
	if eq == nil {
		return nil
	}
	return &persistence.EquipmentRecord{Name: eq.Name, Atk: eq.Atk, Def: eq.Def, Rarity: string(eq.Rarity)}
}

func affixesToRecords(affixes []entity.Affix, slot string) []persistence.AffixRecord {
	recs := make([]persistence.AffixRecord, 0, len(affixes))
	for _, a := range affixes {
		recs = append(recs, persistence.AffixRecord{Slot: slot, Kind: a.Kind, BaseValue: a.BaseValue, Level: a.Level})
	}
	return recs
}
