// Package auth implements account authentication: register, login,
// verify, logout, and update_nickname, plus the rate limiting and
// account lockout the core only gates on the boolean outcome of.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/towerclimb/server/internal/config"
	"github.com/towerclimb/server/internal/gameconfig"
	"github.com/towerclimb/server/internal/logger"
	"github.com/towerclimb/server/internal/persistence"
	"github.com/towerclimb/server/internal/transport"
)

// bcryptCost balances hashing time against brute-force resistance.
const bcryptCost = 12

var (
	ErrAccountExists      = errors.New("auth: account already exists")
	ErrInvalidCredentials = errors.New("auth: invalid username or password")
	ErrAccountBanned      = errors.New("auth: account is banned")
	ErrLockedOut          = errors.New("auth: too many failed attempts, try again later")
)

// Profile is the subset of account state returned to a freshly logged
// in client.
type Profile struct {
	PlayerID int64
	Nickname string
}

// LoginResult is what login returns on success.
type LoginResult struct {
	PlayerID     int64
	SessionToken string
	Expiry       time.Time
	Profile      Profile
}

// Engine bundles the persistence store, the token signer, and the
// rate limiter behind the auth commands.
type Engine struct {
	db      *persistence.Database
	signer  *tokenSigner
	limiter *transport.LoginRateLimiter
	revoked *revocationList
	ttl     time.Duration
}

// New builds an Engine. cfg.TokenSecret signs session tokens; it is
// read from the environment, never from the YAML config file (see
// cmd/towerd).
func New(db *persistence.Database, cfg config.AuthConfig, rateLimit config.RateLimitConfig) *Engine {
	ttl := time.Duration(cfg.TokenTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Engine{
		db:      db,
		signer:  newTokenSigner(cfg.TokenSecret),
		limiter: transport.NewLoginRateLimiter(rateLimit),
		revoked: newRevocationList(),
		ttl:     ttl,
	}
}

// Stop releases the engine's background goroutines.
func (e *Engine) Stop() {
	e.limiter.Stop()
	e.revoked.Stop()
}

// Register creates an account and its single player, seeded with the
// configured starting stats.
func (e *Engine) Register(username, password, nickname string, gcfg *gameconfig.Config) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, errors.New("auth: username cannot be empty")
	}
	if nickname = strings.TrimSpace(nickname); nickname == "" {
		nickname = username
	}

	if _, err := e.db.GetAccountByUsername(username); err == nil {
		return 0, ErrAccountExists
	} else if !errors.Is(err, persistence.ErrNotFound) {
		return 0, fmt.Errorf("auth: lookup during register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return 0, fmt.Errorf("auth: hash password: %w", err)
	}

	accountID, err := e.db.CreateAccount(username, string(hash), nickname)
	if err != nil {
		return 0, fmt.Errorf("auth: create account: %w", err)
	}

	pc := gcfg.Player
	playerID, err := e.db.CreatePlayer(accountID, persistence.PlayerRecord{
		HP: pc.StartingMaxHP, MaxHP: pc.StartingMaxHP,
		BaseAtk: pc.StartingAtk, BaseDef: pc.StartingDef,
		Level: 1, FloorLevel: 1,
	})
	if err != nil {
		return 0, fmt.Errorf("auth: create player: %w", err)
	}

	return playerID, nil
}

// Login verifies credentials, enforces the lockout, and issues a
// session token on success.
func (e *Engine) Login(username, password, ip, userAgent string) (LoginResult, error) {
	if locked, _ := e.limiter.IsLocked(ip); locked {
		return LoginResult{}, ErrLockedOut
	}

	account, err := e.db.GetAccountByUsername(strings.TrimSpace(username))
	if err != nil {
		e.recordAttempt(nil, username, ip, userAgent, false)
		e.limiter.RecordFailure(ip)
		if errors.Is(err, persistence.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("auth: lookup account: %w", err)
	}

	if account.Banned {
		e.recordAttempt(&account.ID, username, ip, userAgent, false)
		return LoginResult{}, ErrAccountBanned
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		e.recordAttempt(&account.ID, username, ip, userAgent, false)
		e.limiter.RecordFailure(ip)
		return LoginResult{}, ErrInvalidCredentials
	}

	e.limiter.RecordSuccess(ip)
	e.recordAttempt(&account.ID, username, ip, userAgent, true)
	if err := e.db.UpdateLastLogin(account.ID, ip); err != nil {
		return LoginResult{}, fmt.Errorf("auth: update last login: %w", err)
	}

	player, err := e.db.GetPlayerByAccountID(account.ID)
	if err != nil {
		return LoginResult{}, fmt.Errorf("auth: load player for account: %w", err)
	}

	token := e.signer.issue(player.PlayerID, e.ttl)
	return LoginResult{
		PlayerID:     player.PlayerID,
		SessionToken: token,
		Expiry:       time.Now().Add(e.ttl),
		Profile:      Profile{PlayerID: player.PlayerID, Nickname: account.Nickname},
	}, nil
}

// recordAttempt appends to the login audit trail. A write failure is
// logged and otherwise ignored: the audit row must never decide
// whether a login succeeds.
func (e *Engine) recordAttempt(accountID *int64, username, ip, userAgent string, success bool) {
	err := e.db.RecordLoginAttempt(persistence.LoginAttempt{
		AccountID: accountID, Username: username, IP: ip, UserAgent: userAgent, Success: success,
	})
	if err != nil {
		logger.Error("failed to record login attempt", "username", username, "ip", ip, "error", err)
	}
}

// Verify checks a session token's signature and expiry, rejecting
// tokens that were explicitly logged out.
func (e *Engine) Verify(sessionToken string) (int64, error) {
	if e.revoked.isRevoked(sessionToken) {
		return 0, ErrInvalidToken
	}
	return e.signer.verify(sessionToken)
}

// Logout revokes the token for the remainder of its natural lifetime.
func (e *Engine) Logout(sessionToken string) {
	e.revoked.revoke(sessionToken, time.Now().Add(e.ttl))
}

// Profile loads the nickname for an already-verified player ID, used
// by auth.verify_token to answer with the same shape as login.
func (e *Engine) Profile(playerID int64) (Profile, error) {
	player, err := e.db.LoadPlayer(playerID)
	if err != nil {
		return Profile{}, fmt.Errorf("auth: load player: %w", err)
	}
	account, err := e.db.GetAccountByID(player.Player.AccountID)
	if err != nil {
		return Profile{}, fmt.Errorf("auth: load account: %w", err)
	}
	return Profile{PlayerID: playerID, Nickname: account.Nickname}, nil
}

// UpdateNickname changes the account's display name.
func (e *Engine) UpdateNickname(playerID int64, nickname string) error {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return errors.New("auth: nickname cannot be empty")
	}
	player, err := e.db.LoadPlayer(playerID)
	if err != nil {
		return fmt.Errorf("auth: load player: %w", err)
	}
	return e.db.UpdateNickname(player.Player.AccountID, nickname)
}
