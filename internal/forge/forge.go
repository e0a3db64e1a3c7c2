// Package forge implements the four equipment-modification
// operations: upgrade affix, upgrade base stat, add random affix, and
// reroll affix. Every operation debits gold before rolling success —
// on failure the gold is still spent and the equipment is untouched.
package forge

import (
	"errors"
	"math"

	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/gameconfig"
	"github.com/towerclimb/server/internal/grng"
)

// Slot names the equipment slot an operation targets.
type Slot string

const (
	SlotWeapon Slot = "weapon"
	SlotArmor  Slot = "armor"
)

var (
	ErrEmptySlot        = errors.New("forge: slot is empty")
	ErrInsufficientGold = errors.New("forge: insufficient gold")
	ErrInvalidAffix     = errors.New("forge: affix index out of range")
	ErrAffixCapReached  = errors.New("forge: affix cap reached for this rarity")
)

// Result reports what happened to gold and whether the roll succeeded.
type Result struct {
	GoldSpent int
	Success   bool
	Message   string
}

// Engine bundles the tunables every forge formula reads from.
type Engine struct {
	cfg *gameconfig.Config
}

// New builds an Engine bound to cfg.
func New(cfg *gameconfig.Config) *Engine {
	return &Engine{cfg: cfg}
}

func equipmentFor(p *entity.Player, slot Slot) *entity.Equipment {
	if slot == SlotWeapon {
		return p.Weapon
	}
	return p.Armor
}

func (e *Engine) rarityCostMult(r entity.Rarity) float64 {
	if m, ok := e.cfg.Forge.RarityCostMult[string(r)]; ok {
		return m
	}
	return 1
}

func (e *Engine) raritySuccessBonus(r entity.Rarity) float64 {
	return e.cfg.Forge.RaritySuccessBonus[string(r)]
}

// UpgradeAffix implements the affix upgrade operation.
func (e *Engine) UpgradeAffix(rng grng.RNG, p *entity.Player, slot Slot, affixIndex int) (Result, error) {
	eq := equipmentFor(p, slot)
	if eq == nil {
		return Result{}, ErrEmptySlot
	}
	if affixIndex < 0 || affixIndex >= len(eq.Affixes) {
		return Result{}, ErrInvalidAffix
	}
	fc := e.cfg.Forge

	affix := eq.Affixes[affixIndex]
	cost := int(float64(fc.UpgradeAffixBase+float64(affix.Level)*fc.UpgradeAffixLevelCost+float64(p.Level)*10) * e.rarityCostMult(eq.Rarity))
	if p.Gold < cost {
		return Result{}, ErrInsufficientGold
	}
	p.Gold -= cost

	chance := math.Max(fc.UpgradeAffixMinSuccess, fc.UpgradeAffixBaseSuccess-float64(affix.Level)*fc.UpgradeAffixSuccessDecay)
	chance += e.raritySuccessBonus(eq.Rarity)
	chance = math.Min(chance, 0.95)

	if rng.NextFloat() >= chance {
		return Result{GoldSpent: cost, Success: false, Message: "The forge fizzles. Nothing happens."}, nil
	}

	eq.Affixes[affixIndex].Level++
	return Result{GoldSpent: cost, Success: true, Message: "The affix grows stronger."}, nil
}

// UpgradeBaseStat implements "Upgrade base stat".
func (e *Engine) UpgradeBaseStat(rng grng.RNG, p *entity.Player, slot Slot) (Result, error) {
	eq := equipmentFor(p, slot)
	if eq == nil {
		return Result{}, ErrEmptySlot
	}
	fc := e.cfg.Forge

	var cost int
	if slot == SlotWeapon {
		cost = int(fc.UpgradeBaseStatWeaponBase + 2*float64(eq.Atk) + 15*float64(p.Level))
	} else {
		cost = int(fc.UpgradeBaseStatArmorBase + 3*float64(eq.Def) + 15*float64(p.Level))
	}
	if p.Gold < cost {
		return Result{}, ErrInsufficientGold
	}
	p.Gold -= cost

	if rng.NextFloat() >= fc.UpgradeBaseStatSuccess {
		return Result{GoldSpent: cost, Success: false, Message: "The forge fizzles. Nothing happens."}, nil
	}

	if slot == SlotWeapon {
		gain := max(1, int(0.05*float64(eq.Atk)))
		eq.Atk += gain
		return Result{GoldSpent: cost, Success: true, Message: "Your weapon's attack grows."}, nil
	}
	gain := max(1, int(0.05*float64(eq.Def)))
	eq.Def += gain
	return Result{GoldSpent: cost, Success: true, Message: "Your armor's defense grows."}, nil
}

// AddAffix implements "Add random affix".
func (e *Engine) AddAffix(rng grng.RNG, p *entity.Player, slot Slot) (Result, error) {
	eq := equipmentFor(p, slot)
	if eq == nil {
		return Result{}, ErrEmptySlot
	}
	fc := e.cfg.Forge

	affixCap := e.cfg.Rarity[string(eq.Rarity)].AffixCount
	if len(eq.Affixes) >= affixCap {
		return Result{}, ErrAffixCapReached
	}

	cost := int(fc.AddAffixBase + fc.AddAffixPerPlayerLevel*float64(p.Level) + fc.AddAffixPerExisting*float64(len(eq.Affixes)))
	if p.Gold < cost {
		return Result{}, ErrInsufficientGold
	}
	p.Gold -= cost

	if rng.NextFloat() >= fc.AddAffixSuccess {
		return Result{GoldSpent: cost, Success: false, Message: "The forge fizzles. Nothing happens."}, nil
	}

	newAffix, ok := e.rollExcluding(rng, slot, eq, p.Level, nil)
	if !ok {
		return Result{GoldSpent: cost, Success: false, Message: "No new affix could be found."}, nil
	}
	eq.Affixes = append(eq.Affixes, newAffix)
	return Result{GoldSpent: cost, Success: true, Message: "A new property awakens."}, nil
}

// RerollAffix implements "Reroll affix".
func (e *Engine) RerollAffix(rng grng.RNG, p *entity.Player, slot Slot, affixIndex int) (Result, error) {
	eq := equipmentFor(p, slot)
	if eq == nil {
		return Result{}, ErrEmptySlot
	}
	if affixIndex < 0 || affixIndex >= len(eq.Affixes) {
		return Result{}, ErrInvalidAffix
	}
	fc := e.cfg.Forge

	affix := eq.Affixes[affixIndex]
	cost := int(fc.RerollBase + fc.RerollPerAffixLevel*float64(affix.Level) + fc.RerollPerPlayerLevel*float64(p.Level))
	if p.Gold < cost {
		return Result{}, ErrInsufficientGold
	}
	p.Gold -= cost

	if rng.NextFloat() >= fc.RerollSuccess {
		return Result{GoldSpent: cost, Success: false, Message: "The forge fizzles. Nothing happens."}, nil
	}

	newAffix, ok := e.rollExcluding(rng, slot, eq, p.Level, &affixIndex)
	if !ok {
		return Result{GoldSpent: cost, Success: false, Message: "No replacement affix could be found."}, nil
	}
	newAffix.Level = affix.Level // level is preserved across a reroll
	eq.Affixes[affixIndex] = newAffix
	return Result{GoldSpent: cost, Success: true, Message: "The affix reforms anew."}, nil
}

// rollExcluding rolls a single new affix kind distinct from every kind
// already present on eq (skipIndex, if given, lets a reroll ignore the
// slot being replaced), using the same weighted tables floor loot draws
// from with the player's level standing in for floor_level.
func (e *Engine) rollExcluding(rng grng.RNG, slot Slot, eq *entity.Equipment, playerLevel int, skipIndex *int) (entity.Affix, bool) {
	present := make(map[string]bool)
	for i, a := range eq.Affixes {
		if skipIndex != nil && i == *skipIndex {
			continue
		}
		present[a.Kind] = true
	}
	valueMult := e.cfg.Rarity[string(eq.Rarity)].ValueMultiplier

	if slot == SlotWeapon {
		var candidates []entity.WeaponAffixKind
		var weights []float64
		for _, k := range entity.WeaponAffixKinds {
			if present[string(k)] {
				continue
			}
			candidates = append(candidates, k)
			weights = append(weights, e.cfg.WeaponAffix[string(k)].Weight)
		}
		if len(candidates) == 0 {
			return entity.Affix{}, false
		}
		kind := candidates[rng.WeightedChoice(weights)]
		tuning := e.cfg.WeaponAffix[string(kind)]
		value := (tuning.Base + float64(playerLevel)*tuning.PerFloorScale) * valueMult
		return entity.Affix{Kind: string(kind), BaseValue: value}, true
	}

	var candidates []entity.ArmorAffixKind
	var weights []float64
	for _, k := range entity.ArmorAffixKinds {
		if present[string(k)] {
			continue
		}
		candidates = append(candidates, k)
		weights = append(weights, e.cfg.ArmorAffix[string(k)].Weight)
	}
	if len(candidates) == 0 {
		return entity.Affix{}, false
	}
	kind := candidates[rng.WeightedChoice(weights)]
	tuning := e.cfg.ArmorAffix[string(kind)]
	value := (tuning.Base + float64(playerLevel)*tuning.PerFloorScale) * valueMult
	return entity.Affix{Kind: string(kind), BaseValue: value}, true
}
