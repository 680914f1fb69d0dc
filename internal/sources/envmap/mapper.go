package envmap

import (
	"fmt"
	"strings"
)

// Mapper normalizes a parsed Config into clean environment groups
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapGroups cleans a Config: hosts are lowercased with any scheme stripped,
// duplicates within a group are dropped, labels default to the host, and
// groups with fewer than two origins are discarded (nothing to switch to).
func (m *Mapper) MapGroups(config *Config) ([]EnvGroup, error) {
	groups := make([]EnvGroup, 0, len(config.Environments))

	for _, raw := range config.Environments {
		seen := make(map[string]bool, len(raw.Origins))
		origins := make([]OriginEntry, 0, len(raw.Origins))

		for _, origin := range raw.Origins {
			host := cleanHost(origin.Host)
			if host == "" || seen[host] {
				continue
			}
			seen[host] = true

			label := strings.TrimSpace(origin.Label)
			if label == "" {
				label = host
			}
			origins = append(origins, OriginEntry{Host: host, Label: label})
		}

		if len(origins) < 2 {
			continue
		}

		name := strings.TrimSpace(raw.Name)
		if name == "" {
			name = origins[0].Host
		}
		groups = append(groups, EnvGroup{Name: name, Origins: origins})
	}

	if len(groups) == 0 {
		return nil, fmt.Errorf("no usable environment groups in config")
	}

	return groups, nil
}

// cleanHost lowercases a host entry and strips any scheme or trailing slash
// people tend to paste in.
func cleanHost(raw string) string {
	host := strings.ToLower(strings.TrimSpace(raw))
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimSuffix(host, "/")
	return host
}
