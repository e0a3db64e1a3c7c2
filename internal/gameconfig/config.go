// Package gameconfig holds every tunable constant the game engine
// consults: stat scaling, drop/spawn probabilities, and pricing. It
// mirrors the shape of internal/config's ServerConfig (YAML-backed,
// DefaultConfig fallback) but is a separate package because it tunes
// the game simulation rather than the server process.
package gameconfig

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the immutable, process-wide set of game tunables. It is
// constructed once at startup and passed by reference through the
// session layer — never a package-level mutable singleton (DESIGN.md).
type Config struct {
	Player      PlayerConfig            `yaml:"player"`
	Monster     MonsterConfig           `yaml:"monster"`
	FinalBoss   FinalBossConfig         `yaml:"final_boss"`
	GuardMult   GuardMultConfig         `yaml:"guard_multipliers"`
	FloorGen    FloorGenConfig          `yaml:"floor_gen"`
	Merchant    MerchantConfig          `yaml:"merchant"`
	Forge       ForgeConfig             `yaml:"forge"`
	Combat      CombatConfig            `yaml:"combat"`
	WeaponAffix map[string]AffixTuning  `yaml:"weapon_affixes"`
	ArmorAffix  map[string]AffixTuning  `yaml:"armor_affixes"`
	Rarity      map[string]RarityTuning `yaml:"rarity"`
}

// PlayerConfig holds new-character starting stats.
type PlayerConfig struct {
	StartingMaxHP  int `yaml:"starting_max_hp"`
	StartingAtk    int `yaml:"starting_atk"`
	StartingDef    int `yaml:"starting_def"`
	HPPerLevel     int `yaml:"hp_per_level"`
	AtkPerLevel    int `yaml:"atk_per_level"`
	DefPerLevel    int `yaml:"def_per_level"`
	DefaultPotionHeal int `yaml:"default_potion_heal"` // fallback for use_item when name has no "+amount" suffix
}

// MonsterConfig holds base-stat scaling per floor for normally-spawned
// monsters.
type MonsterConfig struct {
	BaseHP        float64 `yaml:"base_hp"`
	HPPerFloor    float64 `yaml:"hp_per_floor"`
	HPVariance    float64 `yaml:"hp_variance"`
	BaseAtk       float64 `yaml:"base_atk"`
	AtkPerFloor   float64 `yaml:"atk_per_floor"`
	AtkVariance   float64 `yaml:"atk_variance"`
	BaseDef       float64 `yaml:"base_def"`
	DefPerFloor   float64 `yaml:"def_per_floor"`
	DefVariance   float64 `yaml:"def_variance"`
	BaseExp       float64 `yaml:"base_exp"`
	ExpPerFloor   float64 `yaml:"exp_per_floor"`
	ExpVariance   float64 `yaml:"exp_variance"`
	BaseGold      float64 `yaml:"base_gold"`
	GoldPerFloor  float64 `yaml:"gold_per_floor"`
	GoldVariance  float64 `yaml:"gold_variance"`

	CountBase     int `yaml:"count_base"`
	CountDivisor  int `yaml:"count_divisor"`

	NamePrefixes  []string `yaml:"name_prefixes"`
	NameBases     []string `yaml:"name_bases"`
}

// FinalBossConfig is the fixed stat block for the floor-100 encounter.
type FinalBossConfig struct {
	Name       string `yaml:"name"`
	HP         int    `yaml:"hp"`
	Atk        int    `yaml:"atk"`
	Def        int    `yaml:"def"`
	ExpReward  int    `yaml:"exp_reward"`
	GoldReward int    `yaml:"gold_reward"`
}

// GuardMultConfig holds the stat multipliers applied to a monster
// spawned as a guard over a protected target.
type GuardMultConfig struct {
	ItemGuardHP   float64 `yaml:"item_guard_hp"`
	ItemGuardAtk  float64 `yaml:"item_guard_atk"`
	ItemGuardDef  float64 `yaml:"item_guard_def"`
	ItemGuardExp  float64 `yaml:"item_guard_exp"`
	ItemGuardGold float64 `yaml:"item_guard_gold"`

	StairsGuardHP  float64 `yaml:"stairs_guard_hp"`
	StairsGuardAtk float64 `yaml:"stairs_guard_atk"`
	StairsGuardExp float64 `yaml:"stairs_guard_exp"`
}

// FloorGenConfig holds the room/corridor/placement tunables.
type FloorGenConfig struct {
	RoomCountMin  int `yaml:"room_count_min"`
	RoomCountMax  int `yaml:"room_count_max"`
	RoomSizeMin   int `yaml:"room_size_min"`
	RoomSizeMax   int `yaml:"room_size_max"`
	MaxAttempts   int `yaml:"max_attempts"`

	MerchantForceInterval   int     `yaml:"merchant_force_interval"`
	MerchantBaseChance      float64 `yaml:"merchant_base_chance"`
	MerchantChanceIncrement float64 `yaml:"merchant_chance_increment"`

	HighValueItemInterval   int     `yaml:"high_value_item_interval"`
	HighValueItemBaseChance float64 `yaml:"high_value_item_base_chance"`
	HighValueItemMax        int     `yaml:"high_value_item_max"`

	WeaponArmorGuardRadius  int `yaml:"weapon_armor_guard_radius"`
	StairsPotionGuardRadius int `yaml:"stairs_potion_guard_radius"`

	PotionBaseCount int `yaml:"potion_base_count"`
	PotionPerFloors int `yaml:"potion_per_floors"` // divisor: floor/this added to base

	// Soft wall-clock budget for a single generation attempt before
	// falling back to the degenerate single-room layout.
	GenerationSoftLimitMillis int `yaml:"generation_soft_limit_millis"`
}

// MerchantConfig holds pricing tunables.
type MerchantConfig struct {
	BasePrice      float64 `yaml:"base_price"`
	PricePerFloor  float64 `yaml:"price_per_floor"`
	PotionMult     float64 `yaml:"potion_mult"`
	WeaponMult     float64 `yaml:"weapon_mult"`
	ArmorMult      float64 `yaml:"armor_mult"`
	MedianHeal     float64 `yaml:"median_heal"`

	MinPotions int `yaml:"min_potions"`
	MaxPotions int `yaml:"max_potions"`
	MinWeapons int `yaml:"min_weapons"`
	MaxWeapons int `yaml:"max_weapons"`
	MinArmors  int `yaml:"min_armors"`
	MaxArmors  int `yaml:"max_armors"`

	PotionHealTiers []int `yaml:"potion_heal_tiers"`
}

// ForgeConfig holds the cost/success coefficients.
type ForgeConfig struct {
	UpgradeAffixBase         float64 `yaml:"upgrade_affix_base"`
	UpgradeAffixLevelCost    float64 `yaml:"upgrade_affix_level_cost"`
	UpgradeAffixMinSuccess   float64 `yaml:"upgrade_affix_min_success"`
	UpgradeAffixBaseSuccess  float64 `yaml:"upgrade_affix_base_success"`
	UpgradeAffixSuccessDecay float64 `yaml:"upgrade_affix_success_decay"`

	UpgradeBaseStatWeaponBase float64 `yaml:"upgrade_base_stat_weapon_base"`
	UpgradeBaseStatArmorBase  float64 `yaml:"upgrade_base_stat_armor_base"`
	UpgradeBaseStatSuccess    float64 `yaml:"upgrade_base_stat_success"`

	AddAffixBase           float64 `yaml:"add_affix_base"`
	AddAffixPerPlayerLevel float64 `yaml:"add_affix_per_player_level"`
	AddAffixPerExisting    float64 `yaml:"add_affix_per_existing"`
	AddAffixSuccess        float64 `yaml:"add_affix_success"`

	RerollBase           float64 `yaml:"reroll_base"`
	RerollPerAffixLevel  float64 `yaml:"reroll_per_affix_level"`
	RerollPerPlayerLevel float64 `yaml:"reroll_per_player_level"`
	RerollSuccess        float64 `yaml:"reroll_success"`

	RarityCostMult    map[string]float64 `yaml:"rarity_cost_mult"`
	RaritySuccessBonus map[string]float64 `yaml:"rarity_success_bonus"`
}

// CombatConfig holds the fixed combat constants.
type CombatConfig struct {
	MinDamage               int     `yaml:"min_damage"`
	CriticalHitMultiplier   float64 `yaml:"critical_hit_multiplier"`
	CriticalHitChance       float64 `yaml:"critical_hit_chance"`
	LuckyHitMultiplier      float64 `yaml:"lucky_hit_multiplier"`
	ComboFirstFraction      float64 `yaml:"combo_first_fraction"`
	ComboSecondFraction     float64 `yaml:"combo_second_fraction"`
	ComboThirdFraction      float64 `yaml:"combo_third_fraction"`
	ComboSecondChance       float64 `yaml:"combo_second_chance"`
	ComboThirdChance        float64 `yaml:"combo_third_chance"`
	BossPercentDamageCapHP  int     `yaml:"boss_percent_damage_cap_hp"` // max_hp threshold above which percent-damage is capped
	BossPercentDamageCap    float64 `yaml:"boss_percent_damage_cap"`    // fraction of max_hp
	BlockReduction          float64 `yaml:"block_reduction"`           // block reduces remaining damage to this fraction
	MonsterBlockRadius      int     `yaml:"monster_block_radius"`      // Manhattan radius for "blocked by monster" (glossary)
}

// AffixTuning is the per-kind generation table entry shared by weapon
// and armor affixes.
type AffixTuning struct {
	Weight        float64 `yaml:"weight"`
	Base          float64 `yaml:"base"`
	PerFloorScale float64 `yaml:"per_floor_scale"`
	Percentage    bool    `yaml:"percentage"`
}

// RarityTuning is the per-rarity generation table entry.
type RarityTuning struct {
	AffixCount      int      `yaml:"affix_count"`
	DropWeight      float64  `yaml:"drop_weight"`
	ValueMultiplier float64  `yaml:"value_multiplier"`
	NamePrefixes    []string `yaml:"name_prefixes"`
}

// Load reads game tunables from a YAML file, falling back to
// Default() if the file is absent, exactly as internal/config.LoadConfig
// does for the server config.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}
