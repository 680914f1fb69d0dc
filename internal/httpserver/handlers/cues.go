package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sitecue/sitecue/internal/domain"
	"github.com/sitecue/sitecue/internal/httpserver/deps"
	"github.com/sitecue/sitecue/internal/httpserver/mw"
	"github.com/sitecue/sitecue/internal/logger"
	redisstore "github.com/sitecue/sitecue/internal/store/redis"
)

type createCueRequest struct {
	Content    string `json:"content"`
	URL        string `json:"url"`
	Scope      string `json:"scope"`
	NoteType   string `json:"note_type"`
	IsPinned   bool   `json:"is_pinned"`
	IsFavorite bool   `json:"is_favorite"`
}

type updateCueRequest struct {
	Content    *string `json:"content"`
	URL        *string `json:"url"`
	Scope      *string `json:"scope"`
	NoteType   *string `json:"note_type"`
	IsResolved *bool   `json:"is_resolved"`
	IsPinned   *bool   `json:"is_pinned"`
	IsFavorite *bool   `json:"is_favorite"`
}

// ListCues returns the notes visible for a page, already partitioned for
// display. The display filter (type, show_resolved) runs before
// partitioning so favorites obey it too.
func ListCues(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())

		rawURL := strings.TrimSpace(r.URL.Query().Get("url"))
		if rawURL == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}

		typeFilter := r.URL.Query().Get("type")
		if typeFilter == "" {
			typeFilter = domain.FilterTypeAll
		}
		if typeFilter != domain.FilterTypeAll && !domain.NoteType(typeFilter).Valid() {
			writeError(w, http.StatusBadRequest, "unknown type filter")
			return
		}
		showResolved := r.URL.Query().Get("show_resolved") == "true"

		keys := domain.GetScopeKeys(rawURL)
		filter := domain.Serialize(domain.BuildCueFilter(keys))

		notes, err := store.QueryNotes(r.Context(), userID, filter)
		if err != nil {
			d.Logger.Error("failed to query notes", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load notes")
			return
		}

		display := domain.DisplayFilter{Type: typeFilter, ShowResolved: showResolved}
		partitioned := domain.Partition(display.Apply(notes), keys)

		writeJSON(w, http.StatusOK, partitioned)
	}
}

// CreateCue stores a new note. The submitted URL is normalized with the
// note's scope, so the stored pattern is canonical by construction.
func CreateCue(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())

		var req createCueRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if strings.TrimSpace(req.Content) == "" {
			writeError(w, http.StatusBadRequest, "content is required")
			return
		}
		if strings.TrimSpace(req.URL) == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}

		scope := domain.Scope(req.Scope)
		if req.Scope == "" {
			scope = domain.ScopeDomain
		}
		if !scope.Valid() {
			writeError(w, http.StatusBadRequest, "scope must be domain or exact")
			return
		}

		noteType := domain.NoteType(req.NoteType)
		if req.NoteType == "" {
			noteType = domain.NoteTypeInfo
		}
		if !noteType.Valid() {
			writeError(w, http.StatusBadRequest, "unknown note_type")
			return
		}

		now := time.Now()
		note := &domain.Note{
			ID:         uuid.NewString(),
			UserID:     userID,
			Content:    req.Content,
			URLPattern: domain.Normalize(req.URL, scope),
			Scope:      scope,
			NoteType:   noteType,
			IsPinned:   req.IsPinned,
			IsFavorite: req.IsFavorite,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		if err := store.SaveNote(r.Context(), note); err != nil {
			d.Logger.Error("failed to save note", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save note")
			return
		}

		invalidateBadges(r, d, store, userID)
		writeJSON(w, http.StatusCreated, note)
	}
}

// UpdateCue applies a partial edit to a note.
func UpdateCue(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())
		noteID := chi.URLParam(r, "id")

		var req updateCueRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		note, err := store.GetNote(r.Context(), userID, noteID)
		if err != nil {
			if errors.Is(err, redisstore.ErrNoteNotFound) {
				writeError(w, http.StatusNotFound, "note not found")
				return
			}
			d.Logger.Error("failed to get note", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load note")
			return
		}

		if req.Content != nil {
			if strings.TrimSpace(*req.Content) == "" {
				writeError(w, http.StatusBadRequest, "content cannot be empty")
				return
			}
			note.Content = *req.Content
		}
		if req.NoteType != nil {
			nt := domain.NoteType(*req.NoteType)
			if !nt.Valid() {
				writeError(w, http.StatusBadRequest, "unknown note_type")
				return
			}
			note.NoteType = nt
		}
		if req.IsResolved != nil {
			note.IsResolved = *req.IsResolved
		}
		if req.IsPinned != nil {
			note.IsPinned = *req.IsPinned
		}
		if req.IsFavorite != nil {
			note.IsFavorite = *req.IsFavorite
		}

		// Moving a note needs both a URL and a scope to renormalize from.
		// A scope change alone cannot be derived from the stored pattern.
		if req.Scope != nil && req.URL == nil {
			writeError(w, http.StatusBadRequest, "scope change requires url")
			return
		}
		if req.URL != nil {
			scope := note.Scope
			if req.Scope != nil {
				scope = domain.Scope(*req.Scope)
				if !scope.Valid() {
					writeError(w, http.StatusBadRequest, "scope must be domain or exact")
					return
				}
			}
			note.Scope = scope
			note.URLPattern = domain.Normalize(*req.URL, scope)
		}

		note.UpdatedAt = time.Now()

		if err := store.SaveNote(r.Context(), note); err != nil {
			d.Logger.Error("failed to save note", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save note")
			return
		}

		invalidateBadges(r, d, store, userID)
		writeJSON(w, http.StatusOK, note)
	}
}

// DeleteCue removes a note.
func DeleteCue(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())
		noteID := chi.URLParam(r, "id")

		if err := store.DeleteNote(r.Context(), userID, noteID); err != nil {
			if errors.Is(err, redisstore.ErrNoteNotFound) {
				writeError(w, http.StatusNotFound, "note not found")
				return
			}
			d.Logger.Error("failed to delete note", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to delete note")
			return
		}

		invalidateBadges(r, d, store, userID)
		w.WriteHeader(http.StatusNoContent)
	}
}

// invalidateBadges drops cached badge counts after a note write so the
// next badge request recomputes. Best effort.
func invalidateBadges(r *http.Request, d deps.Deps, store *redisstore.Store, userID string) {
	if err := store.InvalidateBadgeCounts(r.Context(), userID); err != nil {
		d.Logger.Warn("failed to invalidate badge cache",
			logger.String("user_id", userID),
			logger.Error(err))
	}
}
