package transport

import (
	"sync"
	"time"

	"github.com/towerclimb/server/internal/config"
)

// LoginRateLimiter throttles repeated failed logins per IP with
// exponential backoff. Like ConnLimiter, it's a per-key map guarded by
// one mutex — the same shape persistence's lockSet uses for per-player
// write locks, just keyed by IP and carrying attempt state instead of
// a bare lock. auth.Engine holds one of these and consults it before
// and after every Login call.
type LoginRateLimiter struct {
	mu                sync.Mutex
	attempts          map[string]*loginAttempts
	maxAttempts       int
	lockoutSeconds    int
	maxLockoutSeconds int
	cleanupInterval   time.Duration
	stopCleanup       chan struct{}
}

// loginAttempts tracks one IP's recent failures and, once locked out,
// how many times it's been locked before (lockoutCount drives the
// exponential backoff in RecordFailure).
type loginAttempts struct {
	failedAttempts int
	lockedUntil    time.Time
	lockoutCount   int
}

// NewLoginRateLimiter builds a limiter from auth's RateLimitConfig,
// substituting defaults for any field the operator left at zero, and
// starts the background goroutine that forgets IPs with nothing
// outstanding.
func NewLoginRateLimiter(cfg config.RateLimitConfig) *LoginRateLimiter {
	rl := &LoginRateLimiter{
		attempts:          make(map[string]*loginAttempts),
		maxAttempts:       cfg.MaxAttempts,
		lockoutSeconds:    cfg.LockoutSeconds,
		maxLockoutSeconds: cfg.MaxLockoutSeconds,
		cleanupInterval:   5 * time.Minute,
		stopCleanup:       make(chan struct{}),
	}

	if rl.maxAttempts == 0 {
		rl.maxAttempts = 5
	}
	if rl.lockoutSeconds == 0 {
		rl.lockoutSeconds = 30
	}
	if rl.maxLockoutSeconds == 0 {
		rl.maxLockoutSeconds = 300
	}

	go rl.cleanupLoop()
	return rl
}

// Stop ends the cleanup goroutine. auth.Engine calls this from its own
// Stop so the background loop doesn't outlive the Engine.
func (rl *LoginRateLimiter) Stop() {
	close(rl.stopCleanup)
}

// IsLocked reports whether ip is currently locked out and, if so, how
// much longer the lockout has left. auth.Engine.Login checks this
// before touching the database at all.
func (rl *LoginRateLimiter) IsLocked(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	info, exists := rl.attempts[ip]
	if !exists {
		return false, 0
	}
	if time.Now().Before(info.lockedUntil) {
		return true, time.Until(info.lockedUntil)
	}
	return false, 0
}

// RecordFailure records one more failed login attempt from ip. Once
// failedAttempts reaches maxAttempts, ip is locked out with a duration
// that doubles on each subsequent lockout up to maxLockoutSeconds —
// a password-guessing script gets slower with every round, not just
// the first.
func (rl *LoginRateLimiter) RecordFailure(ip string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	info, exists := rl.attempts[ip]
	if !exists {
		info = &loginAttempts{}
		rl.attempts[ip] = info
	}

	if time.Now().Before(info.lockedUntil) {
		return true, time.Until(info.lockedUntil)
	}

	info.failedAttempts++
	if info.failedAttempts >= rl.maxAttempts {
		info.lockoutCount++
		lockoutDuration := time.Duration(rl.lockoutSeconds) * time.Second
		maxDuration := time.Duration(rl.maxLockoutSeconds) * time.Second
		for i := 1; i < info.lockoutCount; i++ {
			if lockoutDuration >= maxDuration/2 {
				lockoutDuration = maxDuration
				break
			}
			lockoutDuration *= 2
		}
		if lockoutDuration > maxDuration {
			lockoutDuration = maxDuration
		}
		info.lockedUntil = time.Now().Add(lockoutDuration)
		info.failedAttempts = 0
		return true, lockoutDuration
	}

	return false, 0
}

// RecordSuccess clears ip's failure history after a successful login.
func (rl *LoginRateLimiter) RecordSuccess(ip string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.attempts, ip)
}

// GetAttempts reports ip's current failed-attempt count. auth's
// error messages do not include this count.
func (rl *LoginRateLimiter) GetAttempts(ip string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if info, exists := rl.attempts[ip]; exists {
		return info.failedAttempts
	}
	return 0
}

func (rl *LoginRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stopCleanup:
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

// cleanup drops any IP that's been unlocked for at least ten minutes
// and has no pending failures, so a long-lived towerd process doesn't
// accumulate one map entry per IP that ever mistyped a password.
func (rl *LoginRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, info := range rl.attempts {
		if info.lockedUntil.Before(cutoff) && info.failedAttempts == 0 {
			delete(rl.attempts, ip)
		}
	}
}
