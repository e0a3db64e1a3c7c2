package transport

import (
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/towerclimb/server/internal/config"
)

// ConnLimiter caps how many WebSocket connections a single IP (and
// the process as a whole) can hold open at once, the same per-key
// counter-map-behind-one-mutex shape persistence's lockSet uses for
// per-player write locks. cmd/towerd's /ws handler calls TryAcquire
// before upgrading a connection and Release when it drops.
type ConnLimiter struct {
	mu         sync.Mutex
	ipCounts   map[string]int
	totalCount int
	maxPerIP   int
	maxTotal   int
}

// NewConnLimiter builds a ConnLimiter from the server's connection
// caps. A zero MaxPerIP or MaxTotal disables that particular limit.
func NewConnLimiter(cfg config.ConnectionsConfig) *ConnLimiter {
	return &ConnLimiter{
		ipCounts: make(map[string]int),
		maxPerIP: cfg.MaxPerIP,
		maxTotal: cfg.MaxTotal,
	}
}

// TryAcquire reserves a connection slot for ip if doing so wouldn't
// exceed the per-IP or total cap. The /ws handler must call Release
// on every path once the connection ends, including the upgrade
// failure path, or the slot leaks.
func (c *ConnLimiter) TryAcquire(ip string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxTotal > 0 && c.totalCount >= c.maxTotal {
		return false
	}
	if c.maxPerIP > 0 && c.ipCounts[ip] >= c.maxPerIP {
		return false
	}

	c.ipCounts[ip]++
	c.totalCount++
	return true
}

// Release frees the slot ip held. Safe to call even if TryAcquire was
// never called for ip (a no-op, not a panic).
func (c *ConnLimiter) Release(ip string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ipCounts[ip] > 0 {
		c.ipCounts[ip]--
		if c.ipCounts[ip] == 0 {
			delete(c.ipCounts, ip)
		}
	}
	if c.totalCount > 0 {
		c.totalCount--
	}
}

// GetStats reports the current total connection count and the number
// of distinct IPs holding at least one slot, for the admin health
// endpoint.
func (c *ConnLimiter) GetStats() (totalCount int, ipCount int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalCount, len(c.ipCounts)
}

// GetIPCount reports how many open slots a specific IP currently
// holds.
func (c *ConnLimiter) GetIPCount(ip string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ipCounts[ip]
}

// ClientIP resolves the address the limiters should key on for an
// upgrade request. Behind a reverse proxy the socket address is the
// proxy's, so the forwarding headers win when present.
func ClientIP(r *http.Request) string {
	return getRealIP(r)
}

// getRealIP prefers the first X-Forwarded-For hop, then X-Real-IP,
// then the raw socket address.
func getRealIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.Index(xff, ","); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return extractIP(r.RemoteAddr)
}

// extractIP strips the port from a host:port remote address, tolerating
// addresses that never carried one.
func extractIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
