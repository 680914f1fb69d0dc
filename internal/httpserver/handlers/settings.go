package handlers

import (
	"errors"
	"fmt"
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

type upsertSettingRequest struct {
	Domain string `json:"domain"`
	Label  string `json:"label"`
	Color  string `json:"color"`
}

type listSettingsResponse struct {
	Settings []*domain.DomainSetting `json:"settings"`
}

// settingDomain reduces raw caller input, a bare domain or a full page
// URL, to the domain key settings are stored under.
func settingDomain(raw string) string {
	return domain.Normalize(strings.TrimSpace(raw), domain.ScopeDomain)
}

// ListDomainSettings returns the caller's domain settings. With ?url= it
// returns only the setting for that page's domain.
func ListDomainSettings(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())

		if rawURL := strings.TrimSpace(r.URL.Query().Get("url")); rawURL != "" {
			dom := settingDomain(rawURL)
			setting, err := store.GetDomainSetting(r.Context(), userID, dom)
			if err != nil {
				if errors.Is(err, redisstore.ErrSettingNotFound) {
					writeJSON(w, http.StatusOK, listSettingsResponse{Settings: []*domain.DomainSetting{}})
					return
				}
				d.Logger.Error("failed to get setting", logger.Error(err))
				writeError(w, http.StatusInternalServerError, "failed to load settings")
				return
			}
			writeJSON(w, http.StatusOK, listSettingsResponse{Settings: []*domain.DomainSetting{setting}})
			return
		}

		settings, err := store.ListDomainSettings(r.Context(), userID)
		if err != nil {
			d.Logger.Error("failed to list settings", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load settings")
			return
		}
		writeJSON(w, http.StatusOK, listSettingsResponse{Settings: settings})
	}
}

// UpsertDomainSetting creates or replaces the setting for (owner, domain).
func UpsertDomainSetting(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())

		var req upsertSettingRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		dom := settingDomain(req.Domain)
		if dom == "" {
			writeError(w, http.StatusBadRequest, "domain is required")
			return
		}

		label := strings.TrimSpace(req.Label)
		if len(label) > domain.MaxDomainLabelLen {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("label must be at most %d characters", domain.MaxDomainLabelLen))
			return
		}
		if !domain.ValidDomainColor(req.Color) {
			writeError(w, http.StatusBadRequest, "color not in palette")
			return
		}

		setting := &domain.DomainSetting{
			ID:        uuid.NewString(),
			UserID:    userID,
			Domain:    dom,
			Label:     label,
			Color:     req.Color,
			CreatedAt: time.Now(),
		}

		// Writing the same (owner, domain) pair again replaces the record
		// but keeps the original ID and creation time.
		if existing, err := store.GetDomainSetting(r.Context(), userID, dom); err == nil {
			setting.ID = existing.ID
			setting.CreatedAt = existing.CreatedAt
		}

		if err := store.SaveDomainSetting(r.Context(), setting); err != nil {
			d.Logger.Error("failed to save setting", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save setting")
			return
		}

		writeJSON(w, http.StatusOK, setting)
	}
}

// DeleteDomainSetting removes the setting for a domain.
func DeleteDomainSetting(d deps.Deps) http.HandlerFunc {
	store := redisstore.NewStore(d.RedisClient)

	return func(w http.ResponseWriter, r *http.Request) {
		userID := mw.UserID(r.Context())

		// Normalized the same way the upsert stores it, so deleting by
		// full page URL finds the record.
		dom := settingDomain(r.URL.Query().Get("domain"))
		if dom == "" {
			writeError(w, http.StatusBadRequest, "domain is required")
			return
		}

		if err := store.DeleteDomainSetting(r.Context(), userID, dom); err != nil {
			if errors.Is(err, redisstore.ErrSettingNotFound) {
				writeError(w, http.StatusNotFound, "setting not found")
				return
			}
			d.Logger.Error("failed to delete setting", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to delete setting")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
