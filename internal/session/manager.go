package session

import (
	"encoding/json"
	"reflect"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/towerclimb/server/internal/auth"
	"github.com/towerclimb/server/internal/combat"
	"github.com/towerclimb/server/internal/config"
	"github.com/towerclimb/server/internal/forge"
	"github.com/towerclimb/server/internal/gameconfig"
	"github.com/towerclimb/server/internal/logger"
	"github.com/towerclimb/server/internal/merchant"
	"github.com/towerclimb/server/internal/persistence"
	"github.com/towerclimb/server/internal/protocol"
	"github.com/towerclimb/server/internal/transport"
)

// Manager owns every connected GameSession and the engines they share.
// One Manager serves the whole process; each connection gets its own
// goroutine via Serve.
type Manager struct {
	db       *persistence.Database
	auth     *auth.Engine
	gcfg     *gameconfig.Config
	scfg     config.SessionConfig
	combat   *combat.Engine
	forge    *forge.Engine
	merchant *merchant.Engine

	// loadGroup collapses two connections racing to load the same
	// player (a double-click reconnect, a stale tab plus a fresh one)
	// onto a single load_player + generate_floor call instead of
	// running it twice and persisting whichever lands last.
	loadGroup singleflight.Group

	mu       sync.RWMutex
	sessions map[int64]*GameSession

	stop chan struct{}
}

// NewManager builds a Manager wiring every engine a GameSession needs.
func NewManager(db *persistence.Database, authEngine *auth.Engine, gcfg *gameconfig.Config, scfg config.SessionConfig) *Manager {
	m := &Manager{
		db:       db,
		auth:     authEngine,
		gcfg:     gcfg,
		scfg:     scfg,
		combat:   combat.New(gcfg),
		forge:    forge.New(gcfg),
		merchant: merchant.New(gcfg),
		sessions: make(map[int64]*GameSession),
		stop:     make(chan struct{}),
	}
	if scfg.AutoSaveIntervalMinutes > 0 {
		go m.autosaveLoop()
	}
	return m
}

// Stop ends the autosave loop and persists every active session
// before shutdown.
func (m *Manager) Stop() {
	close(m.stop)

	m.mu.RLock()
	sessions := make([]*GameSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	for _, sess := range sessions {
		sess.withLock(func() {
			if sess.State == StatePlaying {
				if err := m.persist(sess); err != nil {
					logger.Error("failed to autosave player on shutdown", "player_id", sess.PlayerID, "error", err)
				}
			}
		})
	}
}

// ActiveSessionCount reports how many sessions are in the Playing
// state, for the admin health endpoint.
func (m *Manager) ActiveSessionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) autosaveLoop() {
	interval := time.Duration(m.scfg.AutoSaveIntervalMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.autosaveAll()
		}
	}
}

func (m *Manager) autosaveAll() {
	m.mu.RLock()
	sessions := make([]*GameSession, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mu.RUnlock()

	for _, sess := range sessions {
		sess.withLock(func() {
			if sess.State != StatePlaying || !sess.dirty {
				return
			}
			if err := m.persist(sess); err != nil {
				logger.Error("periodic autosave failed", "player_id", sess.PlayerID, "error", err)
			}
		})
	}
}

func (m *Manager) register(sess *GameSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.PlayerID] = sess
}

func (m *Manager) unregister(sess *GameSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sess.PlayerID)
}

// Serve drives one client connection end to end: decode a frame,
// dispatch it, write back whatever messages the command produced,
// until the client disconnects.
func (m *Manager) Serve(client transport.Client, ip string) {
	sess := newGameSession(client, ip, m.gcfg)
	defer m.finish(sess)

	for {
		data, err := client.ReadMessage()
		if err != nil {
			return
		}

		in, err := protocol.Decode(data)
		if err != nil {
			m.send(sess, protocol.NewAuthError("malformed message"))
			continue
		}

		var out []any
		sess.withLock(func() {
			out = m.dispatch(sess, in)
		})
		m.sendAll(sess, out)

		if sess.State == StateDisconnected {
			return
		}
	}
}

func (m *Manager) finish(sess *GameSession) {
	sess.withLock(func() {
		if sess.State == StatePlaying {
			if err := m.persist(sess); err != nil {
				logger.Error("failed to autosave player on disconnect", "player_id", sess.PlayerID, "error", err)
			}
		}
	})
	if sess.PlayerID != 0 {
		m.unregister(sess)
	}
	client := sess.Client
	client.Close()
	logger.Info("client disconnected", "remote_addr", client.RemoteAddr())
}

func (m *Manager) send(sess *GameSession, msg any) {
	m.sendAll(sess, []any{msg})
}

// isNilMessage catches both a bare nil and a typed nil pointer boxed in
// an any (protocol.NewLog returns a nil *LogMessage when there is
// nothing to say), since the latter is never == nil once boxed.
func isNilMessage(msg any) bool {
	if msg == nil {
		return true
	}
	v := reflect.ValueOf(msg)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func (m *Manager) sendAll(sess *GameSession, messages []any) {
	for _, msg := range messages {
		if isNilMessage(msg) {
			continue
		}
		data, err := json.Marshal(msg)
		if err != nil {
			logger.Error("failed to marshal outbound message", "error", err)
			continue
		}
		if err := sess.Client.WriteMessage(data); err != nil {
			return
		}
	}
}
