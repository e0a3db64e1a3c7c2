package session

import "github.com/towerclimb/server/internal/protocol"

// dispatch routes one decoded inbound message to its handler and
// returns the outbound messages to write back. Called with sess
// already locked by Manager.Serve.
func (m *Manager) dispatch(sess *GameSession, in protocol.Inbound) []any {
	if in.IsAuth() {
		return m.dispatchAuth(sess, in)
	}

	switch in.Cmd {
	case "update_nickname":
		return m.handleUpdateNickname(sess, in)
	case "suicide":
		return m.handleSuicide(sess, in)
	}

	if sess.State != StatePlaying {
		return []any{protocol.NewLog([]string{"You must be playing to do that."})}
	}

	switch in.Cmd {
	case "move":
		return m.handleMove(sess, in)
	case "use_item":
		return m.handleUseItem(sess, in)
	case "merchant_info":
		return m.handleMerchantInfo(sess, in)
	case "trade":
		return m.handleTrade(sess, in)
	case "forge_info":
		return m.handleForgeInfo(sess, in)
	case "forge":
		return m.handleForge(sess, in)
	default:
		return []any{protocol.NewLog([]string{"Unknown command."})}
	}
}

func (m *Manager) dispatchAuth(sess *GameSession, in protocol.Inbound) []any {
	switch in.Action {
	case "login":
		return m.handleLogin(sess, in)
	case "register":
		return m.handleRegister(sess, in)
	case "verify_token":
		return m.handleVerifyToken(sess, in)
	case "logout":
		return m.handleLogout(sess, in)
	default:
		return []any{protocol.NewAuthError("unknown auth action")}
	}
}
