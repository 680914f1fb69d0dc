package scheduler

import (
	"context"
	"time"

	"github.com/sitecue/sitecue/internal/logger"
	redisstore "github.com/sitecue/sitecue/internal/store/redis"
)

// TokenRefresher keeps refresh sessions alive for connected clients.
// Every sweep it extends any session that is inside the refresh window,
// so an extension left open in a browser never goes stale mid-use.
// Failures are logged and retried on the next sweep, never surfaced.
type TokenRefresher struct {
	store      *redisstore.Store
	logger     logger.Logger
	interval   time.Duration
	window     time.Duration
	refreshTTL time.Duration
	stopCh     chan struct{}
}

// NewTokenRefresher creates a new token refresher
func NewTokenRefresher(
	store *redisstore.Store,
	log logger.Logger,
	interval time.Duration,
	window time.Duration,
	refreshTTL time.Duration,
) *TokenRefresher {
	return &TokenRefresher{
		store:      store,
		logger:     log,
		interval:   interval,
		window:     window,
		refreshTTL: refreshTTL,
		stopCh:     make(chan struct{}),
	}
}

// Start begins the periodic refresh sweep
func (tr *TokenRefresher) Start(ctx context.Context) error {
	ticker := time.NewTicker(tr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				tr.Sweep(ctx)
			case <-tr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the refresher
func (tr *TokenRefresher) Stop() {
	close(tr.stopCh)
}

// Sweep extends every session inside the refresh window
func (tr *TokenRefresher) Sweep(ctx context.Context) {
	sessions, err := tr.store.ListSessions(ctx)
	if err != nil {
		tr.logger.Warn("token refresh sweep failed to list sessions",
			logger.Error(err))
		return
	}

	now := time.Now()
	refreshed := 0
	for _, session := range sessions {
		if !session.NeedsRefresh(now, tr.window) {
			continue
		}

		if err := tr.store.ExtendSession(ctx, session.Token, tr.refreshTTL); err != nil {
			tr.logger.Warn("failed to extend session",
				logger.String("user_id", session.UserID),
				logger.Error(err))
			continue
		}
		refreshed++
	}

	if refreshed > 0 {
		tr.logger.Debug("token refresh sweep completed",
			logger.Int("refreshed", refreshed),
			logger.Int("total", len(sessions)))
	}
}
