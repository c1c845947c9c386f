// Package timeouts provides centralized timeout values for handler
// operations.
//
// These are used with context.WithTimeout for database and broker I/O in
// HTTP handlers. Centralizing the values keeps behavior consistent and
// makes them easy to adjust at startup.
//
// Guidelines:
//   - Ping: health checks and connectivity verification
//   - Short: single-document reads or writes
//   - Medium: list queries and multi-step writes
//   - Broker: the outbound identity-exchange call
package timeouts

import (
	"sync"
	"time"
)

// Defaults (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultBroker = 10 * time.Second
)

var mu sync.RWMutex

var (
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	broker = DefaultBroker
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document operations: get by token,
// lookup by email, one insert or delete.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and writes touching more
// than one document.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Broker returns the timeout for the external identity exchange. The
// exchange must fail rather than hang the request.
func Broker() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return broker
}

// Config holds timeout overrides. Zero values are ignored.
type Config struct {
	Ping   time.Duration
	Short  time.Duration
	Medium time.Duration
	Broker time.Duration
}

// Configure sets custom timeout values during startup, before handlers are
// registered. Zero fields keep the current values.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Medium > 0 {
		medium = cfg.Medium
	}
	if cfg.Broker > 0 {
		broker = cfg.Broker
	}
}

// Reset restores defaults. Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	short = DefaultShort
	medium = DefaultMedium
	broker = DefaultBroker
}
