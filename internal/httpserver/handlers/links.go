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

type createLinkRequest struct {
	URL       string `json:"url"`
	TargetURL string `json:"target_url"`
	Label     string `json:"label"`
	Type      string `json:"type"`
}

type updateLinkRequest struct {
	TargetURL *string `json:"target_url"`
	Label     *string `json:"label"`
	Type      *string `json:"type"`
}

type checkRequest struct {
	Host string `json:"host"`
}

type listLinksResponse struct {
	Links []*domain.QuickLink `json:"links"`
}

type switchResponse struct {
	URL string `json:"url"`
}

type checkResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// ListLinks returns the quick links visible on a page's domain: links
// authored for the domain, reverse env links derived from other domains
// pointing here, and synthetic env links from the shared environment map.
// Reverse and env-map links exist only in this response, never in storage.
func ListLinks(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())

		rawURL := strings.TrimSpace(r.URL.Query().Get("url"))
		if rawURL == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}
		currentDomain := domain.Normalize(rawURL, domain.ScopeDomain)

		all, err := store.ListLinks(r.Context(), userID)
		if err != nil {
			d.Logger.Error("failed to list links", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load links")
			return
		}

		links := domain.ReverseEnvLinks(all, currentDomain)
		links = append(links, envMapLinks(d, currentDomain)...)
		domain.SortLinks(links)

		writeJSON(w, http.StatusOK, listLinksResponse{Links: links})
	}
}

// CreateLink stores a quick link on the current page's domain.
func CreateLink(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())

		var req createLinkRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if strings.TrimSpace(req.URL) == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}
		target := strings.TrimSpace(req.TargetURL)
		if target == "" {
			writeError(w, http.StatusBadRequest, "target_url is required")
			return
		}

		linkType := domain.LinkType(req.Type)
		if req.Type == "" {
			linkType = domain.LinkRelated
		}
		if !linkType.Valid() {
			writeError(w, http.StatusBadRequest, "type must be related or env")
			return
		}

		targetHost := domain.Normalize(target, domain.ScopeDomain)
		if targetHost == "" {
			writeError(w, http.StatusBadRequest, "target_url has no host")
			return
		}

		if !d.SkipLinkCheck {
			if err := domain.CheckTarget(targetHost, d.LinkCheckTimeout); err != nil {
				d.Logger.Debug("link target check failed",
					logger.String("host", targetHost),
					logger.Error(err))
				writeError(w, http.StatusUnprocessableEntity, "target is not reachable")
				return
			}
		}

		label := strings.TrimSpace(req.Label)
		if label == "" {
			label = targetHost
		}

		link := &domain.QuickLink{
			ID:        uuid.NewString(),
			UserID:    userID,
			Domain:    domain.Normalize(req.URL, domain.ScopeDomain),
			TargetURL: target,
			Label:     label,
			Type:      linkType,
			CreatedAt: time.Now(),
		}

		if err := store.SaveLink(r.Context(), link); err != nil {
			d.Logger.Error("failed to save link", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save link")
			return
		}

		writeJSON(w, http.StatusCreated, link)
	}
}

// UpdateLink applies a partial edit to a quick link. A changed target is
// vetted the same way a new one is.
func UpdateLink(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())
		linkID := chi.URLParam(r, "id")

		var req updateLinkRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if req.Type != nil && !domain.LinkType(*req.Type).Valid() {
			writeError(w, http.StatusBadRequest, "type must be related or env")
			return
		}

		link, err := store.GetLink(r.Context(), userID, linkID)
		if err != nil {
			if errors.Is(err, redisstore.ErrLinkNotFound) {
				writeError(w, http.StatusNotFound, "link not found")
				return
			}
			d.Logger.Error("failed to get link", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load link")
			return
		}

		if req.Type != nil {
			link.Type = domain.LinkType(*req.Type)
		}
		if req.Label != nil {
			label := strings.TrimSpace(*req.Label)
			if label == "" {
				writeError(w, http.StatusBadRequest, "label cannot be empty")
				return
			}
			link.Label = label
		}
		if req.TargetURL != nil {
			target := strings.TrimSpace(*req.TargetURL)
			targetHost := domain.Normalize(target, domain.ScopeDomain)
			if target == "" || targetHost == "" {
				writeError(w, http.StatusBadRequest, "target_url has no host")
				return
			}
			if !d.SkipLinkCheck {
				if err := domain.CheckTarget(targetHost, d.LinkCheckTimeout); err != nil {
					d.Logger.Debug("link target check failed",
						logger.String("host", targetHost),
						logger.Error(err))
					writeError(w, http.StatusUnprocessableEntity, "target is not reachable")
					return
				}
			}
			link.TargetURL = target
		}

		if err := store.SaveLink(r.Context(), link); err != nil {
			d.Logger.Error("failed to save link", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save link")
			return
		}

		writeJSON(w, http.StatusOK, link)
	}
}

// DeleteLink removes a quick link.
func DeleteLink(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())
		linkID := chi.URLParam(r, "id")

		if err := store.DeleteLink(r.Context(), userID, linkID); err != nil {
			if errors.Is(err, redisstore.ErrLinkNotFound) {
				writeError(w, http.StatusNotFound, "link not found")
				return
			}
			d.Logger.Error("failed to delete link", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to delete link")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// SwitchLink rewrites the current tab URL onto an env link's origin,
// preserving path, query and fragment.
func SwitchLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current := strings.TrimSpace(r.URL.Query().Get("url"))
		target := strings.TrimSpace(r.URL.Query().Get("target"))
		if current == "" || target == "" {
			writeError(w, http.StatusBadRequest, "url and target are required")
			return
		}

		rewritten, err := domain.RewriteOrigin(current, target)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, switchResponse{URL: rewritten})
	}
}

// CheckLink reports whether a link target host answers.
func CheckLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		host := strings.TrimSpace(req.Host)
		if host == "" {
			writeError(w, http.StatusBadRequest, "host is required")
			return
		}

		if err := domain.CheckTarget(host, d.LinkCheckTimeout); err != nil {
			writeJSON(w, http.StatusOK, checkResponse{OK: false, Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, checkResponse{OK: true})
	}
}

// envMapLinks turns the current host's environment-map siblings into
// synthetic env links shared by all users.
func envMapLinks(d deps.Deps, currentDomain string) []*domain.QuickLink {
	if d.EnvMap == nil {
		return nil
	}

	siblings := d.EnvMap.Siblings(currentDomain)
	links := make([]*domain.QuickLink, 0, len(siblings))
	for _, o := range siblings {
		links = append(links, &domain.QuickLink{
			ID:        "envmap:" + o.Host,
			Domain:    currentDomain,
			TargetURL: domain.OriginURL(o.Host),
			Label:     o.Label,
			Type:      domain.LinkEnv,
		})
	}
	return links
}
