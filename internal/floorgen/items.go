package floorgen

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/gameconfig"
	"github.com/towerclimb/server/internal/geom"
	"github.com/towerclimb/server/internal/grng"
)

// RollRarity picks an item rarity by each tier's configured drop
// weight. Exported so the merchant engine (through GenerateWeapon and
// GenerateArmor) generates items with the exact same distribution as
// floor loot.
func RollRarity(cfg *gameconfig.Config, rng grng.RNG) entity.Rarity {
	weights := make([]float64, len(entity.Rarities))
	for i, r := range entity.Rarities {
		weights[i] = cfg.Rarity[string(r)].DropWeight
	}
	idx := rng.WeightedChoice(weights)
	return entity.Rarities[idx]
}

// RollWeaponAffixes draws a distinct set of weapon affix kinds sized to
// rarity's affix_count and rolls each one's effective base value for
// the given level.
func RollWeaponAffixes(cfg *gameconfig.Config, rng grng.RNG, rarity entity.Rarity, level int) []entity.Affix {
	count := cfg.Rarity[string(rarity)].AffixCount
	kinds := entity.WeaponAffixKinds
	weights := make([]float64, len(kinds))
	for i, k := range kinds {
		weights[i] = cfg.WeaponAffix[string(k)].Weight
	}

	affixes := make([]entity.Affix, 0, count)
	for _, idx := range rng.WeightedSampleWithoutReplacement(weights, count) {
		kind := kinds[idx]
		tuning := cfg.WeaponAffix[string(kind)]
		value := (tuning.Base + float64(level)*tuning.PerFloorScale) * cfg.Rarity[string(rarity)].ValueMultiplier
		affixes = append(affixes, entity.Affix{Kind: string(kind), BaseValue: value})
	}
	return affixes
}

// RollArmorAffixes is RollWeaponAffixes for the armor affix set.
func RollArmorAffixes(cfg *gameconfig.Config, rng grng.RNG, rarity entity.Rarity, level int) []entity.Affix {
	count := cfg.Rarity[string(rarity)].AffixCount
	kinds := entity.ArmorAffixKinds
	weights := make([]float64, len(kinds))
	for i, k := range kinds {
		weights[i] = cfg.ArmorAffix[string(k)].Weight
	}

	affixes := make([]entity.Affix, 0, count)
	for _, idx := range rng.WeightedSampleWithoutReplacement(weights, count) {
		kind := kinds[idx]
		tuning := cfg.ArmorAffix[string(kind)]
		value := (tuning.Base + float64(level)*tuning.PerFloorScale) * cfg.Rarity[string(rarity)].ValueMultiplier
		affixes = append(affixes, entity.Affix{Kind: string(kind), BaseValue: value})
	}
	return affixes
}

// GenerateWeapon rolls a complete weapon Item for the given floor
// level, positioned at pos (use geom.Position{} for merchant stock).
func GenerateWeapon(cfg *gameconfig.Config, rng grng.RNG, level int, pos geom.Position) *entity.Item {
	rarity := RollRarity(cfg, rng)
	affixes := RollWeaponAffixes(cfg, rng, rarity, level)
	baseAtk := 5 + level/2
	name := themedName(cfg, rng, rarity, affixes, "Blade")
	return entity.NewWeapon(uuid.NewString(), name, "Blade", baseAtk, rarity, affixes, pos)
}

// GenerateArmor rolls a complete armor Item for the given floor level.
func GenerateArmor(cfg *gameconfig.Config, rng grng.RNG, level int, pos geom.Position) *entity.Item {
	rarity := RollRarity(cfg, rng)
	affixes := RollArmorAffixes(cfg, rng, rarity, level)
	baseDef := 3 + level/3
	name := themedName(cfg, rng, rarity, affixes, "Plate")
	return entity.NewArmor(uuid.NewString(), name, "Plate", baseDef, rarity, affixes, pos)
}

// affixThemeWords maps each affix kind to the noun used when composing
// an item's display name around its most prominent rolled affix.
var affixThemeWords = map[string]string{
	"attack_boost": "Fury", "damage_mult": "Ruin", "armor_pen": "Piercing",
	"life_steal": "Hunger", "gold_bonus": "Greed", "critical_chance": "Precision",
	"combo_chance": "Flurry", "kill_heal": "Vigor", "exp_bonus": "Wisdom",
	"thorn_damage": "Spite", "damage_reduction": "Warding", "percent_damage": "Execution",
	"floor_bonus": "Ascension", "lucky_hit": "Fortune", "berserk_mode": "Rage",
	"defense_boost": "Bulwark", "thorn_reflect": "Vengeance", "block_chance": "Aegis",
	"dodge_chance": "Evasion", "hp_boost": "Vitality", "floor_heal": "Renewal",
	"potion_boost": "Alchemy",
}

// themedName composes "<rarity prefix> <theme> <baseName>" from the
// rarity's configured prefix pool and the affix with the largest
// effective value, falling back to the bare base name for common items
// with no affixes.
func themedName(cfg *gameconfig.Config, rng grng.RNG, rarity entity.Rarity, affixes []entity.Affix, baseName string) string {
	if len(affixes) == 0 {
		return baseName
	}

	dominant := affixes[0]
	for _, a := range affixes[1:] {
		if a.Effective() > dominant.Effective() {
			dominant = a
		}
	}

	theme, ok := affixThemeWords[dominant.Kind]
	if !ok {
		theme = "Unknown"
	}

	name := fmt.Sprintf("%s %s", theme, baseName)
	if pool := cfg.Rarity[string(rarity)].NamePrefixes; len(pool) > 0 {
		if prefix := pool[rng.NextInt(0, len(pool)-1)]; prefix != "" {
			name = fmt.Sprintf("%s %s", prefix, name)
		}
	}
	return name
}
