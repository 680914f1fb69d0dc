package badge

import "sync"

// State is the per-tab badge lifecycle: Unknown until the first
// computation starts, Computing while a count query is in flight,
// Displayed once a count has been accepted. Re-entry into Computing
// happens on every trigger (tab activated, URL changed, load complete,
// refresh signal); there is no terminal state while the tab exists.
type State int

const (
	StateUnknown State = iota
	StateComputing
	StateDisplayed
)

type tabEntry struct {
	state State
	seq   uint64
	count int
}

// Tracker sequences badge computations per tab. Triggers race freely; each
// Begin hands out a monotonically increasing token and Complete drops any
// result carrying a superseded token, so a slow older query can never
// overwrite a newer count.
type Tracker struct {
	mu   sync.RWMutex
	tabs map[string]*tabEntry
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		tabs: make(map[string]*tabEntry),
	}
}

// Begin marks a tab as computing and returns the request token the caller
// must present to Complete.
func (t *Tracker) Begin(tabID string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.tabs[tabID]
	if e == nil {
		e = &tabEntry{}
		t.tabs[tabID] = e
	}
	e.seq++
	e.state = StateComputing
	return e.seq
}

// Complete records a computed count for a tab. Returns false when the
// token has been superseded by a newer Begin; the stale count is dropped.
func (t *Tracker) Complete(tabID string, seq uint64, count int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.tabs[tabID]
	if e == nil || e.seq != seq {
		return false
	}
	e.state = StateDisplayed
	e.count = count
	return true
}

// Get returns the current state and last accepted count for a tab.
func (t *Tracker) Get(tabID string) (State, int) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e := t.tabs[tabID]
	if e == nil {
		return StateUnknown, 0
	}
	return e.state, e.count
}

// Forget drops a tab's entry (tab closed).
func (t *Tracker) Forget(tabID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.tabs, tabID)
}

// Count returns the number of tracked tabs.
func (t *Tracker) Count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.tabs)
}
