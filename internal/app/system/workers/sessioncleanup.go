package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	sessionstore "github.com/emeraldorbit/emeraldhub/internal/app/store/sessions"
)

// SessionCleanup reaps expired bearer sessions on a timer. Mongo's TTL
// monitor does the same roughly once a minute; this worker keeps the
// collection tidy when TTL indexes are disabled or lagging.
type SessionCleanup struct {
	sessions *sessionstore.Store
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewSessionCleanup creates the worker. Zero interval defaults to 10
// minutes.
func NewSessionCleanup(sessStore *sessionstore.Store, logger *zap.Logger, interval time.Duration) *SessionCleanup {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &SessionCleanup{
		sessions: sessStore,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *SessionCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("session cleanup worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *SessionCleanup) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("session cleanup worker stopped")
}

func (w *SessionCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.cleanup()
		}
	}
}

func (w *SessionCleanup) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.sessions.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		w.log.Error("failed to delete expired sessions", zap.Error(err))
		return
	}
	if count > 0 {
		w.log.Info("deleted expired sessions", zap.Int64("count", count))
	}
}
