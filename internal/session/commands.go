package session

import (
	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/forge"
	"github.com/towerclimb/server/internal/geom"
	"github.com/towerclimb/server/internal/logger"
	"github.com/towerclimb/server/internal/protocol"
)

func (m *Manager) handleMove(sess *GameSession, in protocol.Inbound) []any {
	dir, ok := geom.ParseDirection(in.Direction)
	if !ok {
		return []any{protocol.NewLog([]string{"Unknown direction."})}
	}

	target := sess.Player.Position.Add(dir.Delta())
	var monster *entity.Monster
	var monsterHPBefore int
	if geom.InBounds(target, entity.FloorWidth, entity.FloorHeight) {
		if mo := sess.Floor.MonsterAt(target); mo != nil {
			monster, monsterHPBefore = mo, mo.HP
		}
	}
	playerHPBefore := sess.Player.HP

	res := m.combat.Move(sess.RNG, sess.Player, sess.Floor, dir)
	sess.markDirty()

	var out []any
	out = append(out, protocol.NewLog(res.Logs))

	if monster != nil {
		dealt := monsterHPBefore - monster.HP
		if dealt < 0 {
			dealt = 0
		}
		taken := playerHPBefore - sess.Player.HP
		if taken < 0 {
			taken = 0
		}
		slain := sess.Floor.MonsterAt(target) == nil
		out = append(out, protocol.NewCombat(monster, dealt, taken, slain))
	}

	if res.GameOver {
		out = append(out, m.endGame(sess, res.GameOverReason)...)
		return out
	}

	// Slaying the final boss on the top floor ends the run.
	if monster != nil && sess.Floor.Level >= 100 && sess.Floor.StairsPos == nil && len(sess.Floor.Monsters) == 0 {
		out = append(out, m.endGame(sess, "victory")...)
		return out
	}

	if res.PickedUp != "" {
		out = append(out, protocol.NewAutoPickup(res.PickedUp))
	}

	if res.ShouldDescend {
		out = append(out, m.descend(sess)...)
		return out
	}

	// Every move answers with the refreshed view, blocked ones
	// included, so the client never has to infer what changed.
	out = append(out, protocol.NewMap(sess.Floor, sess.Player.Position))
	out = append(out, protocol.NewInfo(sess.Player, sess.Floor.Level, m.gcfg))
	return out
}

// descend regenerates the next floor once a move lands on unblocked
// stairs, then autosaves.
func (m *Manager) descend(sess *GameSession) []any {
	newFloor, newStreak, res := m.combat.Descend(sess.Floorgen, sess.Player, sess.Floor, sess.MerchantStreak)
	sess.Floor = newFloor
	sess.MerchantStreak = newStreak
	m.stockMerchant(sess, newFloor)
	sess.markDirty()

	if err := m.persist(sess); err != nil {
		logger.Error("failed to autosave after descent", "player_id", sess.PlayerID, "error", err)
	}

	if sess.Floor.Level >= 100 && sess.Floor.StairsPos == nil && len(sess.Floor.Monsters) == 0 {
		return m.endGame(sess, "victory")
	}

	out := []any{protocol.NewLog(res.Logs), protocol.NewAutoDescend(newFloor.Level)}
	out = append(out, protocol.NewMap(sess.Floor, sess.Player.Position))
	out = append(out, protocol.NewInfo(sess.Player, sess.Floor.Level, m.gcfg))
	if sess.Floor.IsMerchantFloor && sess.Floor.Merchant != nil {
		out = append(out, protocol.NewMerchantInfo(sess.Floor.Merchant.Stock))
	}
	return out
}

// endGame implements the Playing -> GameOver transition:
// persist final stats, clear the active save (there is no run left to
// resume), and report the reason.
func (m *Manager) endGame(sess *GameSession, reason string) []any {
	sess.State = StateGameOver
	if err := m.persist(sess); err != nil {
		logger.Error("failed to persist player on game over", "player_id", sess.PlayerID, "error", err)
	}
	if err := m.deleteSave(sess); err != nil {
		logger.Error("failed to clear save on game over", "player_id", sess.PlayerID, "error", err)
	}
	m.unregister(sess)
	return []any{protocol.NewGameOver(reason, sess.Floor.Level, sess.Player.Level)}
}

func (m *Manager) handleSuicide(sess *GameSession, in protocol.Inbound) []any {
	switch sess.State {
	case StatePlaying:
		sess.Player.HP = 0
		return m.endGame(sess, "suicide")
	case StateGameOver:
		// The save is already gone; a second suicide command begins a
		// fresh run on floor 1.
		return m.newRun(sess)
	default:
		return []any{protocol.NewLog([]string{"You must be playing to do that."})}
	}
}

// newRun seeds a fresh run for an already-authenticated session: new
// player at the configured starting stats, a regenerated floor 1, and
// an immediate save so a disconnect resumes the new climb.
func (m *Manager) newRun(sess *GameSession) []any {
	pc := m.gcfg.Player
	sess.Player = entity.NewPlayer(pc.StartingMaxHP, pc.StartingAtk, pc.StartingDef, geom.Position{})

	floor, streak := sess.Floorgen.Generate(1, nil, 0)
	sess.Floor = floor
	sess.MerchantStreak = streak
	sess.Player.Position = floor.PlayerStart
	sess.State = StatePlaying
	m.register(sess)
	sess.markDirty()

	if err := m.persist(sess); err != nil {
		logger.Error("failed to save fresh run", "player_id", sess.PlayerID, "error", err)
	}

	return []any{
		protocol.NewLog([]string{"A new climb begins."}),
		protocol.NewMap(sess.Floor, sess.Player.Position),
		protocol.NewInfo(sess.Player, sess.Floor.Level, m.gcfg),
	}
}

// stockMerchant fills a freshly generated merchant floor's stock from
// the merchant engine, using the session's own RNG so a seeded session
// replays the same shop.
func (m *Manager) stockMerchant(sess *GameSession, f *entity.Floor) {
	if f.IsMerchantFloor && f.Merchant != nil && len(f.Merchant.Stock) == 0 {
		f.Merchant.Stock = m.merchant.GenerateInventory(sess.RNG, f.Level)
	}
}

func (m *Manager) handleUseItem(sess *GameSession, in protocol.Inbound) []any {
	res := m.combat.UseItem(sess.Player, in.Name)
	sess.markDirty()
	return []any{protocol.NewLog(res.Logs), protocol.NewInfo(sess.Player, sess.Floor.Level, m.gcfg)}
}

func (m *Manager) handleMerchantInfo(sess *GameSession, in protocol.Inbound) []any {
	if !sess.Floor.IsMerchantFloor || sess.Floor.Merchant == nil {
		return []any{protocol.NewTradeFailed("there is no merchant here")}
	}
	return []any{protocol.NewMerchantInfo(sess.Floor.Merchant.Stock)}
}

func (m *Manager) handleTrade(sess *GameSession, in protocol.Inbound) []any {
	if !sess.Floor.IsMerchantFloor || sess.Floor.Merchant == nil {
		return []any{protocol.NewTradeFailed("there is no merchant here")}
	}

	res, err := m.merchant.Buy(sess.Player, sess.Floor.Merchant.Stock, in.Name)
	if err != nil {
		return []any{protocol.NewTradeFailed(err.Error())}
	}
	sess.markDirty()
	return []any{protocol.NewTradeSuccess(res.Message, res.NewGold), protocol.NewInfo(sess.Player, sess.Floor.Level, m.gcfg)}
}

func forgeSlot(s string) (forge.Slot, bool) {
	switch s {
	case "weapon":
		return forge.SlotWeapon, true
	case "armor":
		return forge.SlotArmor, true
	default:
		return "", false
	}
}

func (m *Manager) handleForgeInfo(sess *GameSession, in protocol.Inbound) []any {
	if in.Slot == "" {
		in.Slot = "weapon"
	}
	slot, ok := forgeSlot(in.Slot)
	if !ok {
		return []any{protocol.NewForgeError("unknown slot")}
	}
	eq := sess.Player.Weapon
	if slot == forge.SlotArmor {
		eq = sess.Player.Armor
	}
	if eq == nil {
		return []any{protocol.NewForgeError("that slot is empty")}
	}
	// Costs mirror each operation's own formula with no affix targeted
	// yet (index 0 stands in for "the first affix", since the client
	// asks about costs before committing to one).
	cost := map[string]int{}
	if len(eq.Affixes) > 0 {
		if res, err := m.forge.UpgradeAffix(zeroRNG{}, clonePlayerForQuote(sess.Player), slot, 0); err == nil {
			cost["upgrade_affix"] = res.GoldSpent
		}
		if res, err := m.forge.RerollAffix(zeroRNG{}, clonePlayerForQuote(sess.Player), slot, 0); err == nil {
			cost["reroll_affix"] = res.GoldSpent
		}
	}
	if res, err := m.forge.UpgradeBaseStat(zeroRNG{}, clonePlayerForQuote(sess.Player), slot); err == nil {
		cost["upgrade_base_stat"] = res.GoldSpent
	}
	if res, err := m.forge.AddAffix(zeroRNG{}, clonePlayerForQuote(sess.Player), slot); err == nil {
		cost["add_affix"] = res.GoldSpent
	}
	return []any{protocol.NewForgeInfo(in.Slot, cost)}
}

func (m *Manager) handleForge(sess *GameSession, in protocol.Inbound) []any {
	// A bare forge command with only an attribute index means "upgrade
	// that affix on my weapon".
	if in.Slot == "" {
		in.Slot = "weapon"
	}
	if in.Operation == "" {
		in.Operation = "upgrade_affix"
	}

	slot, ok := forgeSlot(in.Slot)
	if !ok {
		return []any{protocol.NewForgeError("unknown slot")}
	}

	var res forge.Result
	var err error
	switch in.Operation {
	case "upgrade_affix":
		res, err = m.forge.UpgradeAffix(sess.RNG, sess.Player, slot, in.AffixIndex)
	case "upgrade_base_stat":
		res, err = m.forge.UpgradeBaseStat(sess.RNG, sess.Player, slot)
	case "add_affix":
		res, err = m.forge.AddAffix(sess.RNG, sess.Player, slot)
	case "reroll_affix":
		res, err = m.forge.RerollAffix(sess.RNG, sess.Player, slot, in.AffixIndex)
	default:
		return []any{protocol.NewForgeError("unknown forge operation")}
	}
	if err != nil {
		return []any{protocol.NewForgeError(err.Error())}
	}

	sess.markDirty()
	return []any{protocol.NewForgeOutcome(res, sess.Player.Gold), protocol.NewInfo(sess.Player, sess.Floor.Level, m.gcfg)}
}

// clonePlayerForQuote copies just the gold/level/equipment fields
// forge's cost formulas read, so forge_info can quote a cost by
// running the real operation against a throwaway player rather than
// reimplementing its cost math a second time.
func clonePlayerForQuote(p *entity.Player) *entity.Player {
	clone := &entity.Player{Level: p.Level, Gold: 1 << 30}
	if p.Weapon != nil {
		affixes := make([]entity.Affix, len(p.Weapon.Affixes))
		copy(affixes, p.Weapon.Affixes)
		clone.Weapon = &entity.Equipment{Name: p.Weapon.Name, Atk: p.Weapon.Atk, Rarity: p.Weapon.Rarity, Affixes: affixes}
	}
	if p.Armor != nil {
		affixes := make([]entity.Affix, len(p.Armor.Affixes))
		copy(affixes, p.Armor.Affixes)
		clone.Armor = &entity.Equipment{Name: p.Armor.Name, Def: p.Armor.Def, Rarity: p.Armor.Rarity, Affixes: affixes}
	}
	return clone
}

// zeroRNG always reports failure, so a cost-quoting forge call never
// actually mutates the throwaway clone's affixes mid-quote.
type zeroRNG struct{}

func (zeroRNG) NextFloat() float64                                  { return 1 }
func (zeroRNG) NextInt(a, b int) int                                { return a }
func (zeroRNG) WeightedChoice(weights []float64) int                { return 0 }
func (zeroRNG) WeightedSampleWithoutReplacement(w []float64, k int) []int { return nil }
