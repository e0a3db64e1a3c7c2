package combat

import (
	"github.com/dustin/go-humanize"

	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/grng"
)

// Attack runs one full melee exchange: player hit (with crit,
// lucky, percent-damage, and combo chains), lifesteal, kill rewards or
// counterattack with block/dodge/thorns, in that order.
func (e *Engine) Attack(rng grng.RNG, p *entity.Player, f *entity.Floor, m *entity.Monster) Result {
	var res Result
	cc := e.cfg.Combat

	armorPen := entity.WeaponAffixSum(p, entity.ArmorPen)
	defReduction := max(0.0, float64(m.Def)-armorPen)
	base := float64(max(cc.MinDamage, int(float64(entity.TotalAtk(p, f.Level))-defReduction)))
	base *= 1 + entity.WeaponAffixSum(p, entity.DamageMult)

	totalDealt := 0

	mainHit := int(base)
	if rng.NextFloat() < cc.CriticalHitChance+entity.WeaponAffixSum(p, entity.CriticalChance) {
		mainHit = int(float64(mainHit) * cc.CriticalHitMultiplier)
		res.log("Critical hit!")
	}
	if rng.NextFloat() < entity.WeaponAffixSum(p, entity.LuckyHit) {
		mainHit = int(float64(mainHit) * cc.LuckyHitMultiplier)
		res.log("Lucky hit!")
	}
	m.ApplyDamage(mainHit)
	totalDealt += mainHit
	res.log("You hit %s for %d damage.", m.Name, mainHit)

	// Percent damage, capped against very high max HP targets (the
	// "boss cap" — prevents one-shotting late bosses via pure percent
	// scaling).
	if pd := entity.WeaponAffixSum(p, entity.PercentDamage); pd > 0 {
		percentDmg := int(float64(m.MaxHP) * pd)
		if m.MaxHP > cc.BossPercentDamageCapHP {
			cap := int(float64(m.MaxHP) * cc.BossPercentDamageCap)
			if percentDmg > cap {
				percentDmg = cap
			}
		}
		if percentDmg > 0 {
			m.ApplyDamage(percentDmg)
			totalDealt += percentDmg
			res.log("Your attack sears %s for an extra %d damage.", m.Name, percentDmg)
		}
	}

	totalDealt += e.resolveCombo(rng, p, f, m, base, &res)

	if lifeSteal := entity.WeaponAffixSum(p, entity.LifeSteal); lifeSteal > 0 {
		heal := int(float64(totalDealt) * lifeSteal)
		if heal > 0 {
			maxHP := entity.EffectiveMaxHP(p)
			p.HP += heal
			if p.HP > maxHP {
				p.HP = maxHP
			}
			res.log("You drain %d HP from the fight.", heal)
		}
	}

	if m.Dead() {
		e.onKill(p, m, f, &res)
		return res
	}

	e.counterattack(rng, p, f, m, &res)
	if p.HP <= 0 {
		res.GameOver = true
		res.GameOverReason = "killed by " + m.Name
	}
	return res
}

// resolveCombo implements the chained extra-hit sequence.
func (e *Engine) resolveCombo(rng grng.RNG, p *entity.Player, f *entity.Floor, m *entity.Monster, base float64, res *Result) int {
	cc := e.cfg.Combat
	dealt := 0

	if rng.NextFloat() >= entity.WeaponAffixSum(p, entity.ComboChance) {
		return dealt
	}
	first := int(base * cc.ComboFirstFraction)
	m.ApplyDamage(first)
	dealt += first
	res.log("Combo hit for %d!", first)
	if m.Dead() {
		return dealt
	}

	if rng.NextFloat() >= cc.ComboSecondChance {
		return dealt
	}
	second := int(base * cc.ComboSecondFraction)
	m.ApplyDamage(second)
	dealt += second
	res.log("Combo hit for %d!", second)
	if m.Dead() {
		return dealt
	}

	if rng.NextFloat() >= cc.ComboThirdChance {
		return dealt
	}
	third := int(base * cc.ComboThirdFraction)
	m.ApplyDamage(third)
	dealt += third
	res.log("Combo hit for %d!", third)

	return dealt
}

// onKill grants kill rewards, applies pending level-ups and kill
// heals, and removes the monster from the floor. Reward amounts are
// thousands-grouped so a late-floor boss drop reads "1,250 gold"
// rather than an unbroken digit run.
func (e *Engine) onKill(p *entity.Player, m *entity.Monster, f *entity.Floor, res *Result) {
	exp := int(float64(m.ExpReward) * (1 + entity.WeaponAffixSum(p, entity.ExpBonus)))
	gold := int(float64(m.GoldReward) * (1 + entity.WeaponAffixSum(p, entity.GoldBonus)))
	p.Exp += exp
	p.Gold += gold
	res.log("You defeated %s! (+%s exp, +%s gold)", m.Name, humanize.Comma(int64(exp)), humanize.Comma(int64(gold)))

	res.Logs = append(res.Logs, e.LevelUp(p)...)

	if heal := entity.KillHealTotal(p); heal > 0 {
		maxHP := entity.EffectiveMaxHP(p)
		p.HP += int(heal)
		if p.HP > maxHP {
			p.HP = maxHP
		}
		res.log("Your kill restores %d HP.", int(heal))
	}

	f.RemoveMonster(m.ID)
}

// counterattack resolves the monster's return strike: reduction,
// block, dodge, then thorns.
func (e *Engine) counterattack(rng grng.RNG, p *entity.Player, f *entity.Floor, m *entity.Monster, res *Result) {
	cc := e.cfg.Combat

	raw := max(cc.MinDamage, m.Atk-entity.TotalDef(p))
	damage := float64(raw) * (1 - entity.ArmorAffixSum(p, entity.ArmorDmgRed))

	blocked := false
	if rng.NextFloat() < entity.ArmorAffixSum(p, entity.BlockChance) {
		damage *= cc.BlockReduction
		blocked = true
	}

	dodged := false
	if rng.NextFloat() < entity.ArmorAffixSum(p, entity.DodgeChance) {
		damage = 0
		dodged = true
	}

	received := int(damage)
	p.HP -= received
	if p.HP < 0 {
		p.HP = 0
	}

	switch {
	case dodged:
		res.log("You dodge %s's attack!", m.Name)
	case blocked:
		res.log("You block most of %s's attack, taking %d damage.", m.Name, received)
	default:
		res.log("%s hits you for %d damage.", m.Name, received)
	}

	if received > 0 {
		thornsWeapon := int(float64(received) * entity.WeaponAffixSum(p, entity.ThornDamage))
		thornsArmor := int(float64(received) * entity.ArmorAffixSum(p, entity.ThornReflect))
		if total := thornsWeapon + thornsArmor; total > 0 {
			m.ApplyDamage(total)
			res.log("Your thorns reflect %d damage back at %s.", total, m.Name)
		}
	}
}
