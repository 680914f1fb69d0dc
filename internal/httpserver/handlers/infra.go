package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/sitecue/sitecue/internal/httpserver/deps"
)

type componentStatus struct {
	OK           bool   `json:"ok"`
	GroupsLoaded *int   `json:"groups_loaded,omitempty"`
	LastReload   string `json:"last_reload,omitempty"`
	TabsTracked  *int   `json:"tabs_tracked,omitempty"`
	Mode         string `json:"mode,omitempty"`
	Impact       string `json:"impact,omitempty"`
	Error        string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		components := map[string]componentStatus{
			"redis":  checkRedis(d),
			"envmap": checkEnvMap(d),
			"badge":  checkBadge(d),
		}

		response := infraResponse{
			Mode:       determineMode(components),
			Components: components,
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func determineMode(components map[string]componentStatus) string {
	// Redis carries all user data; without it the API cannot serve.
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "critical"
	}
	// The env map only feeds shared environment links.
	if envmap, exists := components["envmap"]; exists && !envmap.OK {
		return "degraded"
	}
	return "nominal"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Impact: "all-storage-unavailable",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Impact: "all-storage-unavailable",
			Error:  "timeout",
		}
	}

	return componentStatus{OK: true, Mode: "optimal"}
}

func checkEnvMap(d deps.Deps) componentStatus {
	if d.EnvMap == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "shared-env-links-disabled",
		}
	}

	groups := d.EnvMap.GroupCount()
	lastReload := d.EnvMap.LastReload()
	lastReloadStr := "never"
	if !lastReload.IsZero() {
		lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
	}

	return componentStatus{
		OK:           groups > 0,
		GroupsLoaded: &groups,
		LastReload:   lastReloadStr,
	}
}

func checkBadge(d deps.Deps) componentStatus {
	tabs := d.BadgeTracker.Count()
	return componentStatus{
		OK:          true,
		TabsTracked: &tabs,
	}
}
