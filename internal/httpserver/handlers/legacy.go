package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sitecue/sitecue/internal/domain"
	"github.com/sitecue/sitecue/internal/httpserver/deps"
	"github.com/sitecue/sitecue/internal/httpserver/mw"
	"github.com/sitecue/sitecue/internal/logger"
	redisstore "github.com/sitecue/sitecue/internal/store/redis"
)

// The /notes endpoints predate scoped matching. They speak exact-URL only
// and return a flat list with no partitioning. Old extension builds still
// call them, so they keep their original shape instead of delegating to
// the scoped /cues surface.

type legacyNote struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Content   string    `json:"content"`
	Resolved  bool      `json:"resolved"`
	CreatedAt time.Time `json:"created_at"`
}

type legacyCreateRequest struct {
	URLPattern string `json:"url_pattern"`
	Content    string `json:"content"`
}

type legacyUpdateRequest struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// LegacyListNotes returns the exact-URL notes for a page as a flat list.
func LegacyListNotes(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())

		rawURL := strings.TrimSpace(r.URL.Query().Get("url"))
		if rawURL == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}
		exact := domain.Normalize(rawURL, domain.ScopeExact)

		filter := domain.Serialize(domain.And(
			domain.Eq("scope", string(domain.ScopeExact)),
			domain.Eq("url_pattern", exact),
		))

		notes, err := store.QueryNotes(r.Context(), userID, filter)
		if err != nil {
			d.Logger.Error("failed to query notes", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load notes")
			return
		}

		out := make([]legacyNote, 0, len(notes))
		for _, n := range notes {
			out = append(out, legacyNote{
				ID:        n.ID,
				URL:       n.URLPattern,
				Content:   n.Content,
				Resolved:  n.IsResolved,
				CreatedAt: n.CreatedAt,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// LegacyCreateNote creates a note from the old {url_pattern, content}
// shape. The original endpoint inserted rows without a scope and the
// storage default filled in domain; that default is kept here.
func LegacyCreateNote(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())

		var req legacyCreateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.URLPattern) == "" || strings.TrimSpace(req.Content) == "" {
			writeError(w, http.StatusBadRequest, "url_pattern and content are required")
			return
		}

		now := time.Now()
		note := &domain.Note{
			ID:         uuid.NewString(),
			UserID:     userID,
			Content:    req.Content,
			URLPattern: domain.Normalize(req.URLPattern, domain.ScopeDomain),
			Scope:      domain.ScopeDomain,
			NoteType:   domain.NoteTypeInfo,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		if err := store.SaveNote(r.Context(), note); err != nil {
			d.Logger.Error("failed to save note", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save note")
			return
		}

		invalidateBadges(r, d, store, userID)
		writeJSON(w, http.StatusCreated, legacyNote{
			ID:        note.ID,
			URL:       note.URLPattern,
			Content:   note.Content,
			Resolved:  note.IsResolved,
			CreatedAt: note.CreatedAt,
		})
	}
}

// LegacyUpdateNote edits a note's content by ID, the only field the old
// endpoint could change.
func LegacyUpdateNote(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())

		var req legacyUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.ID) == "" || strings.TrimSpace(req.Content) == "" {
			writeError(w, http.StatusBadRequest, "id and content are required")
			return
		}

		note, err := store.GetNote(r.Context(), userID, req.ID)
		if err != nil {
			if errors.Is(err, redisstore.ErrNoteNotFound) {
				writeError(w, http.StatusNotFound, "note not found")
				return
			}
			d.Logger.Error("failed to get note", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load note")
			return
		}

		note.Content = req.Content
		note.UpdatedAt = time.Now()

		if err := store.SaveNote(r.Context(), note); err != nil {
			d.Logger.Error("failed to save note", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save note")
			return
		}

		invalidateBadges(r, d, store, userID)
		writeJSON(w, http.StatusOK, legacyNote{
			ID:        note.ID,
			URL:       note.URLPattern,
			Content:   note.Content,
			Resolved:  note.IsResolved,
			CreatedAt: note.CreatedAt,
		})
	}
}
