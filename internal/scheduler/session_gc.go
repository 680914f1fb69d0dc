package scheduler

import (
	"context"
	"time"

	"github.com/sitecue/sitecue/internal/logger"
	redisstore "github.com/sitecue/sitecue/internal/store/redis"
)

// SessionGC removes expired refresh sessions. Redis TTLs already expire
// the records themselves, so this mostly prunes the session index set.
type SessionGC struct {
	store    *redisstore.Store
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewSessionGC creates a new session garbage collector
func NewSessionGC(
	store *redisstore.Store,
	log logger.Logger,
	interval time.Duration,
) *SessionGC {
	return &SessionGC{
		store:    store,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic collection process
func (gc *SessionGC) Start(ctx context.Context) error {
	// Run immediately on start
	if err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial session collection failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := gc.Collect(ctx); err != nil {
					gc.logger.Error("session collection failed",
						logger.Error(err))
				}
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the garbage collector
func (gc *SessionGC) Stop() {
	close(gc.stopCh)
}

// Collect deletes expired sessions
func (gc *SessionGC) Collect(ctx context.Context) error {
	sessions, err := gc.store.ListSessions(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	deleted := 0
	for _, session := range sessions {
		if !session.Expired(now) {
			continue
		}
		if err := gc.store.DeleteSession(ctx, session.Token); err != nil {
			gc.logger.Warn("failed to delete expired session",
				logger.String("user_id", session.UserID),
				logger.Error(err))
			continue
		}
		deleted++
	}

	if deleted > 0 {
		gc.logger.Info("session collection completed",
			logger.Int("deleted", deleted))
	} else {
		gc.logger.Debug("no sessions to collect")
	}

	return nil
}
