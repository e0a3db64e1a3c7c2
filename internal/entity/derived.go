package entity

// EffectiveMaxHP returns max_hp plus the sum of all hp_boost armor
// affixes. Never cached: computed fresh every time it is needed so it
// can never drift from the player's current equipment.
func EffectiveMaxHP(p *Player) int {
	bonus := 0.0
	if p.Armor != nil {
		bonus = SumArmorAffix(p.Armor.Affixes, HPBoost)
	}
	return p.MaxHP + int(bonus)
}

// TotalDef returns base_def + armor.def + the sum of defense_boost
// armor affixes.
func TotalDef(p *Player) int {
	total := p.BaseDef
	if p.Armor != nil {
		total += p.Armor.Def
		total += int(SumArmorAffix(p.Armor.Affixes, DefenseBoost))
	}
	return total
}

// TotalAtk returns the player's attack for combat occurring on the
// given floor level: base_atk + weapon.atk + attack_boost affixes +
// a floor-scaled bonus from floor_bonus affixes, further multiplied up
// by berserk_mode affixes while the player is below 30% HP.
func TotalAtk(p *Player, floorLevel int) int {
	base := float64(p.BaseAtk)
	var berserkSum float64

	if p.Weapon != nil {
		base += float64(p.Weapon.Atk)
		base += SumWeaponAffix(p.Weapon.Affixes, AttackBoost)
		if floorBonus := SumWeaponAffix(p.Weapon.Affixes, FloorBonus); floorBonus > 0 {
			base += float64(floorLevel-1) * floorBonus
		}
		berserkSum = SumWeaponAffix(p.Weapon.Affixes, BerserkMode)
	}

	total := base
	if berserkSum > 0 && hpRatio(p) < 0.3 {
		total += base * berserkSum
	}

	return int(total)
}

func hpRatio(p *Player) float64 {
	maxHP := EffectiveMaxHP(p)
	if maxHP <= 0 {
		return 0
	}
	return float64(p.HP) / float64(maxHP)
}

// WeaponAffixSum sums a percentage/flat weapon affix kind across the
// player's equipped weapon only (armor never carries weapon kinds).
func WeaponAffixSum(p *Player, kind WeaponAffixKind) float64 {
	if p.Weapon == nil {
		return 0
	}
	return SumWeaponAffix(p.Weapon.Affixes, kind)
}

// ArmorAffixSum sums an armor affix kind across the player's equipped
// armor only.
func ArmorAffixSum(p *Player, kind ArmorAffixKind) float64 {
	if p.Armor == nil {
		return 0
	}
	return SumArmorAffix(p.Armor.Affixes, kind)
}

// KillHealTotal sums the flat kill_heal affix value from both the
// weapon and armor slots (the kind name is shared between the two
// closed sets but aggregated independently).
func KillHealTotal(p *Player) float64 {
	total := WeaponAffixSum(p, KillHealWeapon)
	total += ArmorAffixSum(p, KillHealArmor)
	return total
}
