// Package session implements the per-connection game state machine:
// authentication, command dispatch while playing, and the save/load
// and autosave plumbing that ties entity.Player to the
// persistence layer.
package session

import (
	"sync"

	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/floorgen"
	"github.com/towerclimb/server/internal/gameconfig"
	"github.com/towerclimb/server/internal/grng"
	"github.com/towerclimb/server/internal/transport"
)

// State is one node of the connection's state machine.
type State int

const (
	StateConnected State = iota
	StateAuthenticated
	StatePlaying
	StateGameOver
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateAuthenticated:
		return "authenticated"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "gameover"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// GameSession is one connected client's full game state. mu serializes
// every access to it: the owning connection's dispatch loop, the
// periodic autosave ticker, and graceful shutdown all go through
// withLock rather than assuming a single owning goroutine.
type GameSession struct {
	mu sync.Mutex

	Client transport.Client
	IP     string
	State  State

	PlayerID       int64
	Nickname       string
	Player         *entity.Player
	Floor          *entity.Floor
	MerchantStreak int

	RNG      grng.RNG
	Floorgen *floorgen.Generator

	dirty bool // set on any mutating command, cleared by autosave
}

// newGameSession builds a fresh connection state with its own RNG and
// floorgen.Generator (floorgen.New's contract is one Generator per
// session sharing that session's RNG, not one shared across
// connections — sharing would race the RNG across goroutines).
func newGameSession(client transport.Client, ip string, gcfg *gameconfig.Config) *GameSession {
	rng := grng.New()
	return &GameSession{
		Client:   client,
		IP:       ip,
		State:    StateConnected,
		RNG:      rng,
		Floorgen: floorgen.New(gcfg, rng),
	}
}

// markDirty flags the session as having unsaved progress.
func (s *GameSession) markDirty() {
	s.dirty = true
}

// withLock runs fn while holding the session's mutex. Every command
// dispatch, the autosave ticker, and shutdown all go through this, so
// it is the sole synchronization point for the session's state.
func (s *GameSession) withLock(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}
