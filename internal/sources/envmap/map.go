package envmap

import (
	"sync"
	"time"
)

// Map is the in-memory view of environment groups, safe for concurrent
// reads while the reloader swaps in fresh data.
type Map struct {
	mu         sync.RWMutex
	groups     []EnvGroup
	byHost     map[string]int // host -> index into groups
	lastReload time.Time
}

func NewMap() *Map {
	return &Map{
		byHost: make(map[string]int),
	}
}

// Update replaces the current groups wholesale
func (m *Map) Update(groups []EnvGroup) {
	byHost := make(map[string]int, len(groups)*2)
	for i, g := range groups {
		for _, o := range g.Origins {
			byHost[o.Host] = i
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups = groups
	m.byHost = byHost
	m.lastReload = time.Now()
}

// Siblings returns the other origins in host's environment group, or nil
// if the host belongs to no group.
func (m *Map) Siblings(host string) []OriginEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.byHost[host]
	if !ok {
		return nil
	}

	group := m.groups[i]
	siblings := make([]OriginEntry, 0, len(group.Origins)-1)
	for _, o := range group.Origins {
		if o.Host != host {
			siblings = append(siblings, o)
		}
	}
	return siblings
}

// GroupCount returns the number of loaded environment groups
func (m *Map) GroupCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.groups)
}

// LastReload returns the time of the last successful update
func (m *Map) LastReload() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastReload
}
