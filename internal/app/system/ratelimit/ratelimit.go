// Package ratelimit applies per-client rate limits to the credential
// endpoints. Register, login, and external-session are the only routes
// where an attacker gains anything from hammering, so the limiter is
// mounted on those route groups only.
package ratelimit

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/emeraldorbit/emeraldhub/internal/app/system/apierr"
)

// Limiter tracks one token bucket per client key (remote IP).
type Limiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	clients  map[string]*client
	stopCh   chan struct{}
	stopOnce sync.Once
}

type client struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// New creates a Limiter allowing limit events/sec with the given burst,
// and starts a background sweep of idle entries.
func New(limit rate.Limit, burst int) *Limiter {
	l := &Limiter{
		limit:   limit,
		burst:   burst,
		clients: make(map[string]*client),
		stopCh:  make(chan struct{}),
	}
	go l.sweep(5 * time.Minute)
	return l
}

// Allow reports whether a request from key may proceed.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastAccess = time.Now()
	return c.limiter.Allow()
}

// Middleware rejects over-limit requests with 429.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientKey(r)) {
			apierr.Write(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Stop ends the background sweep.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

func (l *Limiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-2 * every)
			l.mu.Lock()
			for key, c := range l.clients {
				if c.lastAccess.Before(cutoff) {
					delete(l.clients, key)
				}
			}
			l.mu.Unlock()
		}
	}
}

// clientKey extracts the remote IP, ignoring the port.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
