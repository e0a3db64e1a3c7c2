// Package combat implements the turn-based action engine: movement,
// auto-interactions, melee resolution, leveling, item pickup/use, and
// descent. Every function takes the player/floor/rng it needs
// explicitly rather than owning any state itself, so the session layer
// stays the only place that mutates a GameSession.
package combat

import (
	"fmt"

	"github.com/towerclimb/server/internal/entity"
	"github.com/towerclimb/server/internal/gameconfig"
	"github.com/towerclimb/server/internal/geom"
	"github.com/towerclimb/server/internal/grng"
)

// Result carries the log lines and terminal-state signal produced by
// one command. The session layer turns Logs into outbound messages and
// checks GameOver to transition the state machine.
type Result struct {
	Logs           []string
	GameOver       bool
	GameOverReason string

	// ShouldDescend signals that the player just stepped onto
	// unblocked stairs. Floor regeneration needs a floorgen.Generator
	// the combat engine isn't holding, so the session layer sees this
	// flag and calls Engine.Descend itself.
	ShouldDescend bool

	// PickedUp names the item a move auto-collected, if any, so the
	// session layer can emit an auto_pickup message without having to
	// diff the floor's item map around the call.
	PickedUp string
}

func (r *Result) log(format string, args ...any) {
	r.Logs = append(r.Logs, fmt.Sprintf(format, args...))
}

// Engine bundles the immutable game tunables every combat formula
// reads from.
type Engine struct {
	cfg *gameconfig.Config
}

// New builds an Engine bound to cfg.
func New(cfg *gameconfig.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Move resolves the target cell: attack if it holds a monster,
// otherwise step onto it and run auto-interactions.
func (e *Engine) Move(rng grng.RNG, p *entity.Player, f *entity.Floor, dir geom.Direction) Result {
	var res Result

	target := p.Position.Add(dir.Delta())
	if !geom.InBounds(target, entity.FloorWidth, entity.FloorHeight) {
		res.log("You can't go that way.")
		return res
	}

	cell := f.CellAt(target)
	if cell.EntityKind == entity.EntityMonster {
		monster := f.MonsterAt(target)
		return e.Attack(rng, p, f, monster)
	}

	if !cell.EnterableByPlayer() {
		res.log("There's a wall in the way.")
		return res
	}

	p.Position = target
	e.autoInteract(rng, p, f, &res)
	return res
}

// autoInteract implements the post-movement rules: auto-descend
// when standing on unblocked stairs, else auto-pickup when standing on
// an unblocked item.
func (e *Engine) autoInteract(rng grng.RNG, p *entity.Player, f *entity.Floor, res *Result) {
	blockRadius := e.cfg.Combat.MonsterBlockRadius

	if f.StairsPos != nil && p.Position == *f.StairsPos {
		if f.AnyMonsterWithin(p.Position, blockRadius) {
			res.log("A monster is too close to the stairs.")
			return
		}
		res.ShouldDescend = true
		return
	}

	if it := f.ItemAt(p.Position); it != nil {
		if f.AnyMonsterWithin(p.Position, blockRadius) {
			res.log("A monster is too close to pick that up.")
			return
		}
		pickupRes := e.Pickup(rng, p, f)
		res.Logs = append(res.Logs, pickupRes.Logs...)
		res.PickedUp = pickupRes.PickedUp
	}
}

// ExpForLevel returns the exp cost of the next level-up from level,
// the threshold LevelUp spends against.
func ExpForLevel(level int) int {
	return level * 100
}

// LevelUp implements the level-up chain, applied after every exp
// gain: while exp >= level*100, spend it for a level and a full heal.
func (e *Engine) LevelUp(p *entity.Player) []string {
	pc := e.cfg.Player
	var logs []string
	for p.Exp >= ExpForLevel(p.Level) {
		p.Exp -= ExpForLevel(p.Level)
		p.Level++
		p.MaxHP += pc.HPPerLevel
		p.HP = entity.EffectiveMaxHP(p)
		p.BaseAtk += pc.AtkPerLevel
		p.BaseDef += pc.DefPerLevel
		logs = append(logs, fmt.Sprintf("You reached level %d!", p.Level))
	}
	return logs
}
