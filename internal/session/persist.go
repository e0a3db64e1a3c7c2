package session

import (
	"fmt"
	"strconv"

	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/persistence"
)

// loadResult is what loadOrNewGame's singleflight call produces: enough
// to seed a GameSession regardless of which of the racing connections
// actually ran the load.
type loadResult struct {
	player *entity.Player
	floor  *entity.Floor
	streak int
}

// loadOrNewGame resumes from the latest save row if one exists,
// otherwise seeds a fresh player at floor 1. Either way the floor itself is
// regenerated — floors are never persisted (see DESIGN.md).
//
// The load and the floor generation it triggers run under loadGroup,
// keyed by player ID, so two connections racing to resume the same
// player (a reconnect racing a stale tab) share one load_player call
// and one generated floor instead of each generating its own and
// whichever autosaves last winning.
func (m *Manager) loadOrNewGame(sess *GameSession) error {
	key := strconv.FormatInt(sess.PlayerID, 10)
	v, err, _ := m.loadGroup.Do(key, func() (any, error) {
		snap, err := m.db.LoadPlayer(sess.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("session: load player: %w", err)
		}

		player := playerFromSnapshot(*snap)

		floorLevel := snap.Player.FloorLevel
		if floorLevel < 1 {
			floorLevel = 1
		}
		streak := snap.Player.MerchantStreak

		save, err := m.db.GetLatestSave(sess.PlayerID)
		if err == nil {
			floorLevel = save.FloorLevel
		} else if err != persistence.ErrNotFound {
			return nil, fmt.Errorf("session: load save: %w", err)
		}

		floor, newStreak := sess.Floorgen.Generate(floorLevel, nil, streak)
		m.stockMerchant(sess, floor)

		// The floor is regenerated, not restored, so the stored
		// position only survives if it is still somewhere a player
		// can stand on the new layout.
		if !floor.CellAt(player.Position).EnterableByPlayer() {
			player.Position = floor.PlayerStart
		}

		return &loadResult{player: player, floor: floor, streak: newStreak}, nil
	})
	if err != nil {
		return err
	}

	res := v.(*loadResult)
	sess.Player = res.player
	sess.Floor = res.floor
	sess.MerchantStreak = res.streak
	return nil
}

// persist writes the autosave: the player row, equipment,
// affixes, inventory, and a single active save row naming the current
// floor. Each of these writes takes the persistence layer's per-player
// lock on its own; the set as a whole is not one atomic step.
func (m *Manager) persist(sess *GameSession) error {
	p := sess.Player
	floorLevel := sess.Floor.Level

	rec := playerToRecord(p, floorLevel, sess.MerchantStreak)
	if err := m.db.PersistPlayer(sess.PlayerID, rec); err != nil {
		return fmt.Errorf("session: persist player: %w", err)
	}
	if err := m.db.PersistEquipment(sess.PlayerID, "weapon", equipmentToRecord(p.Weapon)); err != nil {
		return fmt.Errorf("session: persist weapon: %w", err)
	}
	if err := m.db.PersistEquipment(sess.PlayerID, "armor", equipmentToRecord(p.Armor)); err != nil {
		return fmt.Errorf("session: persist armor: %w", err)
	}
	if p.Weapon != nil {
		if err := m.db.PersistAffixes(sess.PlayerID, "weapon", affixesToRecords(p.Weapon.Affixes, "weapon")); err != nil {
			return fmt.Errorf("session: persist weapon affixes: %w", err)
		}
	}
	if p.Armor != nil {
		if err := m.db.PersistAffixes(sess.PlayerID, "armor", affixesToRecords(p.Armor.Affixes, "armor")); err != nil {
			return fmt.Errorf("session: persist armor affixes: %w", err)
		}
	}
	if err := m.db.PersistInventory(sess.PlayerID, p.Inventory); err != nil {
		return fmt.Errorf("session: persist inventory: %w", err)
	}
	if err := m.db.UpsertSave(sess.PlayerID, floorLevel, "autosave", true); err != nil {
		return fmt.Errorf("session: upsert save: %w", err)
	}

	sess.dirty = false
	return nil
}

// deleteSave removes the active save row, used on game over: the run
// is finished, so there is nothing left to resume from.
func (m *Manager) deleteSave(sess *GameSession) error {
	return m.db.DeleteSave(sess.PlayerID)
}
