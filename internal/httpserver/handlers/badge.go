package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/sitecue/sitecue/internal/badge"
	"github.com/sitecue/sitecue/internal/domain"
	"github.com/sitecue/sitecue/internal/httpserver/deps"
	"github.com/sitecue/sitecue/internal/httpserver/mw"
	"github.com/sitecue/sitecue/internal/logger"
	redisstore "github.com/sitecue/sitecue/internal/store/redis"
)

type badgeResponse struct {
	TabID           string `json:"tab"`
	Count           int    `json:"count"`
	Text            string `json:"text"`
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
	Stale           bool   `json:"stale,omitempty"`
}

// GetBadge computes the unresolved-note count for a tab's page.
//
// Each request takes a sequence token from the per-tab tracker before
// counting; a response whose token has been superseded by a newer request
// for the same tab is marked stale and does not overwrite the tracker.
func GetBadge(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())

		tabID := strings.TrimSpace(r.URL.Query().Get("tab"))
		if tabID == "" {
			writeError(w, http.StatusBadRequest, "tab is required")
			return
		}
		rawURL := strings.TrimSpace(r.URL.Query().Get("url"))
		if rawURL == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}

		// Non-http pages (chrome://, about:, file:) never show a badge.
		if !domain.IsHTTP(rawURL) {
			seq := d.BadgeTracker.Begin(tabID)
			d.BadgeTracker.Complete(tabID, seq, 0)
			writeJSON(w, http.StatusOK, badgeResponse{
				TabID:           tabID,
				Text:            badge.Render(0, false),
				BackgroundColor: badge.BackgroundColor,
				TextColor:       badge.TextColor,
			})
			return
		}

		keys := domain.GetScopeKeys(rawURL)
		seq := d.BadgeTracker.Begin(tabID)

		count, err := badgeCount(r, d, store, userID, keys)
		if err != nil {
			// Count failures render an empty badge; the tracker keeps its
			// previous displayed value for the tab.
			d.Logger.Warn("badge count failed",
				logger.String("tab", tabID),
				logger.Error(err))
			writeJSON(w, http.StatusOK, badgeResponse{
				TabID:           tabID,
				Text:            "",
				BackgroundColor: badge.BackgroundColor,
				TextColor:       badge.TextColor,
			})
			return
		}

		applied := d.BadgeTracker.Complete(tabID, seq, count)
		writeJSON(w, http.StatusOK, badgeResponse{
			TabID:           tabID,
			Count:           count,
			Text:            badge.Render(count, true),
			BackgroundColor: badge.BackgroundColor,
			TextColor:       badge.TextColor,
			Stale:           !applied,
		})
	}
}

// ForgetBadge drops a tab's tracker state when the tab closes.
func ForgetBadge(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tabID := strings.TrimSpace(r.URL.Query().Get("tab"))
		if tabID == "" {
			writeError(w, http.StatusBadRequest, "tab is required")
			return
		}
		d.BadgeTracker.Forget(tabID)
		w.WriteHeader(http.StatusNoContent)
	}
}

// badgeCount returns the unresolved-note count for the page, preferring
// the short-lived cache keyed by the exact scope key.
func badgeCount(r *http.Request, d deps.Deps, store *redisstore.Store, userID string, keys domain.ScopeKeys) (int, error) {
	cached, err := store.GetCachedBadgeCount(r.Context(), userID, keys.Exact)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, redisstore.ErrBadgeCacheMiss) {
		d.Logger.Debug("badge cache read failed", logger.Error(err))
	}

	filter := domain.Serialize(domain.BuildBadgeFilter(keys))
	count, err := store.CountNotes(r.Context(), userID, filter)
	if err != nil {
		return 0, err
	}

	if err := store.CacheBadgeCount(r.Context(), userID, keys.Exact, count, d.BadgeCacheTTL); err != nil {
		d.Logger.Debug("badge cache write failed", logger.Error(err))
	}
	return count, nil
}
