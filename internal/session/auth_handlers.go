package session

import (
	"github.com/towerclimb/server/internal/logger"
	"github.com/towerclimb/server/internal/protocol"
)

func (m *Manager) handleLogin(sess *GameSession, in protocol.Inbound) []any {
	res, err := m.auth.Login(in.Username, in.Password, sess.IP, "")
	if err != nil {
		return []any{protocol.NewAuthError(err.Error())}
	}
	return m.enterWorld(sess, res.PlayerID, res.Profile.Nickname, res.SessionToken)
}

func (m *Manager) handleRegister(sess *GameSession, in protocol.Inbound) []any {
	playerID, err := m.auth.Register(in.Username, in.Password, in.Nickname, m.gcfg)
	if err != nil {
		return []any{protocol.NewRegisterError(err.Error())}
	}
	return []any{protocol.NewRegisterSuccess(playerID)}
}

func (m *Manager) handleVerifyToken(sess *GameSession, in protocol.Inbound) []any {
	playerID, err := m.auth.Verify(in.Token)
	if err != nil {
		return []any{protocol.NewAuthError(err.Error())}
	}
	profile, err := m.auth.Profile(playerID)
	if err != nil {
		return []any{protocol.NewAuthError(err.Error())}
	}
	return m.enterWorld(sess, playerID, profile.Nickname, "")
}

func (m *Manager) handleLogout(sess *GameSession, in protocol.Inbound) []any {
	if sess.State == StatePlaying {
		if err := m.persist(sess); err != nil {
			logger.Error("failed to autosave on logout", "player_id", sess.PlayerID, "error", err)
		}
		m.unregister(sess)
	}
	m.auth.Logout(in.Token)
	sess.State = StateConnected
	sess.PlayerID = 0
	sess.Player = nil
	sess.Floor = nil
	return []any{protocol.NewLogoutSuccess()}
}

// enterWorld implements the Authenticated -> Playing transition of
// the session state machine: resume or start a run, then hand back
// everything the client needs to render its first frame.
func (m *Manager) enterWorld(sess *GameSession, playerID int64, nickname, sessionToken string) []any {
	sess.State = StateAuthenticated
	sess.PlayerID = playerID
	sess.Nickname = nickname

	if err := m.loadOrNewGame(sess); err != nil {
		logger.Error("failed to load player into session", "player_id", playerID, "error", err)
		return []any{protocol.NewAuthError("failed to load character")}
	}

	sess.State = StatePlaying
	m.register(sess)

	out := []any{protocol.NewAuthSuccess(playerID, nickname, sessionToken)}
	out = append(out, protocol.NewMap(sess.Floor, sess.Player.Position))
	out = append(out, protocol.NewInfo(sess.Player, sess.Floor.Level, m.gcfg))
	if sess.Floor.IsMerchantFloor && sess.Floor.Merchant != nil {
		out = append(out, protocol.NewMerchantInfo(sess.Floor.Merchant.Stock))
	}
	return out
}

func (m *Manager) handleUpdateNickname(sess *GameSession, in protocol.Inbound) []any {
	if sess.State != StatePlaying && sess.State != StateAuthenticated {
		return []any{protocol.NewNicknameUpdateError("you must be logged in to do that")}
	}
	if err := m.auth.UpdateNickname(sess.PlayerID, in.Nickname); err != nil {
		return []any{protocol.NewNicknameUpdateError(err.Error())}
	}
	sess.Nickname = in.Nickname
	return []any{protocol.NewNicknameUpdateSuccess(in.Nickname)}
}
