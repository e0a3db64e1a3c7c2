package gameconfig

import "github.com/towerclimb/server/internal/entity"

// Default returns the built-in tuning used when no YAML override file
// is present: starting stats, combo chances, critical multiplier,
// forge costs, merchant pricing, and the affix and rarity tables.
// Values were chosen to keep floor-1 encounters survivable and
// floor-100 a genuine final boss.
func Default() *Config {
	return &Config{
		Player: PlayerConfig{
			StartingMaxHP:     500,
			StartingAtk:       50,
			StartingDef:       20,
			HPPerLevel:        50,
			AtkPerLevel:       5,
			DefPerLevel:       3,
			DefaultPotionHeal: 50,
		},
		Monster: MonsterConfig{
			BaseHP: 20, HPPerFloor: 8, HPVariance: 0.2,
			BaseAtk: 5, AtkPerFloor: 1.5, AtkVariance: 0.2,
			BaseDef: 2, DefPerFloor: 0.8, DefVariance: 0.2,
			BaseExp: 10, ExpPerFloor: 3, ExpVariance: 0.15,
			BaseGold: 5, GoldPerFloor: 2, GoldVariance: 0.25,
			CountBase:    3,
			CountDivisor: 10,
			NamePrefixes: []string{"Lesser", "Feral", "Gloom", "Rabid", "Ashen", "Hollow"},
			NameBases:    []string{"Rat", "Goblin", "Wraith", "Slime", "Skeleton", "Bat", "Spider"},
		},
		FinalBoss: FinalBossConfig{
			Name: "The Tower Warden", HP: 5000, Atk: 120, Def: 60,
			ExpReward: 10000, GoldReward: 5000,
		},
		GuardMult: GuardMultConfig{
			ItemGuardHP: 1.3, ItemGuardAtk: 1.2, ItemGuardDef: 1.1, ItemGuardExp: 1.5, ItemGuardGold: 1.3,
			StairsGuardHP: 1.2, StairsGuardAtk: 1.1, StairsGuardExp: 1.3,
		},
		FloorGen: FloorGenConfig{
			RoomCountMin: 5, RoomCountMax: 9,
			RoomSizeMin: 2, RoomSizeMax: 4,
			MaxAttempts: 100,

			MerchantForceInterval:   15,
			MerchantBaseChance:      0.05,
			MerchantChanceIncrement: 0.01,

			HighValueItemInterval:   5,
			HighValueItemBaseChance: 0.4,
			HighValueItemMax:        2,

			WeaponArmorGuardRadius:  3,
			StairsPotionGuardRadius: 2,

			PotionBaseCount: 2,
			PotionPerFloors: 8,

			GenerationSoftLimitMillis: 250,
		},
		Merchant: MerchantConfig{
			BasePrice: 50, PricePerFloor: 5,
			PotionMult: 1.0, WeaponMult: 3.0, ArmorMult: 3.0,
			MedianHeal: 50,
			MinPotions: 3, MaxPotions: 4,
			MinWeapons: 2, MaxWeapons: 3,
			MinArmors: 2, MaxArmors: 3,
			PotionHealTiers: []int{25, 50, 100, 200, 400},
		},
		Forge: ForgeConfig{
			UpgradeAffixBase: 50, UpgradeAffixLevelCost: 25,
			UpgradeAffixMinSuccess: 0.1, UpgradeAffixBaseSuccess: 0.9, UpgradeAffixSuccessDecay: 0.08,

			UpgradeBaseStatWeaponBase: 300, UpgradeBaseStatArmorBase: 300, UpgradeBaseStatSuccess: 0.9,

			AddAffixBase: 500, AddAffixPerPlayerLevel: 25, AddAffixPerExisting: 200, AddAffixSuccess: 0.7,

			RerollBase: 400, RerollPerAffixLevel: 100, RerollPerPlayerLevel: 20, RerollSuccess: 0.8,

			RarityCostMult: map[string]float64{
				string(entity.Common): 1.0, string(entity.RareTier): 1.4,
				string(entity.Epic): 2.0, string(entity.Legendary): 3.0,
			},
			RaritySuccessBonus: map[string]float64{
				string(entity.Common): 0.1, string(entity.RareTier): 0.05,
				string(entity.Epic): 0, string(entity.Legendary): -0.05,
			},
		},
		Combat: CombatConfig{
			MinDamage:             1,
			CriticalHitMultiplier: 2.0,
			CriticalHitChance:     0.1,
			LuckyHitMultiplier:    3.0,
			ComboFirstFraction:    0.25,
			ComboSecondFraction:   0.5,
			ComboThirdFraction:    0.75,
			ComboSecondChance:     0.25,
			ComboThirdChance:      0.05,
			BossPercentDamageCapHP: 1000,
			BossPercentDamageCap:   0.05,
			BlockReduction:         0.4,
			MonsterBlockRadius:     3,
		},
		WeaponAffix: map[string]AffixTuning{
			string(entity.AttackBoost):     {Weight: 10, Base: 5, PerFloorScale: 0.5},
			string(entity.DamageMult):      {Weight: 6, Base: 0.05, PerFloorScale: 0.002, Percentage: true},
			string(entity.ArmorPen):        {Weight: 6, Base: 2, PerFloorScale: 0.2},
			string(entity.LifeSteal):       {Weight: 7, Base: 0.05, PerFloorScale: 0.002, Percentage: true},
			string(entity.GoldBonus):       {Weight: 7, Base: 0.1, PerFloorScale: 0.003, Percentage: true},
			string(entity.CriticalChance):  {Weight: 6, Base: 0.05, PerFloorScale: 0.002, Percentage: true},
			string(entity.ComboChance):     {Weight: 5, Base: 0.05, PerFloorScale: 0.002, Percentage: true},
			string(entity.KillHealWeapon):  {Weight: 6, Base: 3, PerFloorScale: 0.3},
			string(entity.ExpBonus):        {Weight: 7, Base: 0.1, PerFloorScale: 0.003, Percentage: true},
			string(entity.ThornDamage):     {Weight: 5, Base: 2, PerFloorScale: 0.2},
			string(entity.DamageReduction): {Weight: 4, Base: 0.03, PerFloorScale: 0.001, Percentage: true},
			string(entity.PercentDamage):   {Weight: 3, Base: 0.02, PerFloorScale: 0.001, Percentage: true},
			string(entity.FloorBonus):      {Weight: 5, Base: 1, PerFloorScale: 0.05},
			string(entity.LuckyHit):        {Weight: 5, Base: 0.05, PerFloorScale: 0.002, Percentage: true},
			string(entity.BerserkMode):     {Weight: 3, Base: 0.3, PerFloorScale: 0.01, Percentage: true},
		},
		ArmorAffix: map[string]AffixTuning{
			string(entity.DefenseBoost): {Weight: 10, Base: 4, PerFloorScale: 0.4},
			string(entity.ArmorDmgRed):  {Weight: 7, Base: 0.05, PerFloorScale: 0.002, Percentage: true},
			string(entity.ThornReflect): {Weight: 5, Base: 0.1, PerFloorScale: 0.003, Percentage: true},
			string(entity.BlockChance):  {Weight: 6, Base: 0.05, PerFloorScale: 0.002, Percentage: true},
			string(entity.DodgeChance):  {Weight: 6, Base: 0.05, PerFloorScale: 0.002, Percentage: true},
			string(entity.HPBoost):      {Weight: 9, Base: 20, PerFloorScale: 2},
			string(entity.FloorHeal):    {Weight: 5, Base: 0.05, PerFloorScale: 0.002, Percentage: true},
			string(entity.KillHealArmor): {Weight: 6, Base: 2, PerFloorScale: 0.2},
			string(entity.PotionBoost):  {Weight: 5, Base: 0.1, PerFloorScale: 0.003, Percentage: true},
		},
		Rarity: map[string]RarityTuning{
			string(entity.Common):    {AffixCount: 0, DropWeight: 60, ValueMultiplier: 1.0, NamePrefixes: []string{""}},
			string(entity.RareTier):  {AffixCount: 1, DropWeight: 25, ValueMultiplier: 1.5, NamePrefixes: []string{"Fine", "Sturdy"}},
			string(entity.Epic):      {AffixCount: 2, DropWeight: 12, ValueMultiplier: 2.5, NamePrefixes: []string{"Exquisite", "Runed"}},
			string(entity.Legendary): {AffixCount: 3, DropWeight: 3, ValueMultiplier: 5.0, NamePrefixes: []string{"Mythic", "Ancient"}},
		},
	}
}
