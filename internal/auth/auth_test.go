package auth

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/towerclimb/server/internal/config"
	"github.com/towerclimb/server/internal/gameconfig"
	"github.com/towerclimb/server/internal/persistence"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := persistence.Open(persistence.DefaultConfig(path))
	if err != nil {
		t.Fatalf("persistence.Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	e := New(db, config.AuthConfig{TokenSecret: "test-secret", TokenTTLMinutes: 60},
		config.RateLimitConfig{MaxAttempts: 3, LockoutSeconds: 1, MaxLockoutSeconds: 2})
	t.Cleanup(e.Stop)
	return e
}

func TestRegisterThenLoginSucceeds(t *testing.T) {
	e := newTestEngine(t)
	gcfg := gameconfig.Default()

	playerID, err := e.Register("hero", "correct-password", "Heroic", gcfg)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if playerID == 0 {
		t.Fatal("expected a non-zero player ID")
	}

	res, err := e.Login("hero", "correct-password", "1.2.3.4", "test-agent")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.PlayerID != playerID {
		t.Errorf("PlayerID = %d, want %d", res.PlayerID, playerID)
	}
	if res.SessionToken == "" {
		t.Error("expected a non-empty session token")
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	e := newTestEngine(t)
	gcfg := gameconfig.Default()

	if _, err := e.Register("hero", "password1", "Heroic", gcfg); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	_, err := e.Register("hero", "password2", "Other", gcfg)
	if err != ErrAccountExists {
		t.Errorf("err = %v, want ErrAccountExists", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	e := newTestEngine(t)
	gcfg := gameconfig.Default()
	e.Register("hero", "correct-password", "Heroic", gcfg)

	_, err := e.Login("hero", "wrong-password", "1.2.3.4", "test-agent")
	if err != ErrInvalidCredentials {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginLocksOutAfterTooManyFailures(t *testing.T) {
	e := newTestEngine(t)
	gcfg := gameconfig.Default()
	e.Register("hero", "correct-password", "Heroic", gcfg)

	var lastErr error
	for i := 0; i < 5; i++ {
		_, lastErr = e.Login("hero", "wrong-password", "9.9.9.9", "test-agent")
	}
	if !errors.Is(lastErr, ErrInvalidCredentials) && lastErr != ErrLockedOut {
		t.Fatalf("unexpected error sequence, last = %v", lastErr)
	}

	_, err := e.Login("hero", "correct-password", "9.9.9.9", "test-agent")
	if err != ErrLockedOut {
		t.Errorf("err = %v, want ErrLockedOut once locked out", err)
	}
}

func TestVerifyRoundTripsIssuedToken(t *testing.T) {
	e := newTestEngine(t)
	gcfg := gameconfig.Default()
	e.Register("hero", "correct-password", "Heroic", gcfg)
	res, err := e.Login("hero", "correct-password", "1.2.3.4", "test-agent")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	playerID, err := e.Verify(res.SessionToken)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if playerID != res.PlayerID {
		t.Errorf("playerID = %d, want %d", playerID, res.PlayerID)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	e := newTestEngine(t)
	gcfg := gameconfig.Default()
	e.Register("hero", "correct-password", "Heroic", gcfg)
	res, _ := e.Login("hero", "correct-password", "1.2.3.4", "test-agent")

	tampered := res.SessionToken + "x"
	_, err := e.Verify(tampered)
	if err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	e := newTestEngine(t)
	gcfg := gameconfig.Default()
	e.Register("hero", "correct-password", "Heroic", gcfg)
	res, _ := e.Login("hero", "correct-password", "1.2.3.4", "test-agent")

	e.Logout(res.SessionToken)

	_, err := e.Verify(res.SessionToken)
	if err != ErrInvalidToken {
		t.Errorf("err = %v, want ErrInvalidToken after logout", err)
	}
}

func TestUpdateNicknamePersists(t *testing.T) {
	e := newTestEngine(t)
	gcfg := gameconfig.Default()
	playerID, _ := e.Register("hero", "correct-password", "Heroic", gcfg)

	if err := e.UpdateNickname(playerID, "NewName"); err != nil {
		t.Fatalf("UpdateNickname failed: %v", err)
	}

	res, err := e.Login("hero", "correct-password", "1.2.3.4", "test-agent")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.Profile.Nickname != "NewName" {
		t.Errorf("Nickname = %q, want NewName", res.Profile.Nickname)
	}
}
