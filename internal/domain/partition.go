package domain

import "sort"

// FilterTypeAll disables type filtering in a DisplayFilter.
const FilterTypeAll = "all"

// DisplayFilter narrows the fetched note set before partitioning.
// It is a pure view concern; the underlying stored set is untouched.
type DisplayFilter struct {
	// Type keeps only notes of one NoteType; "all" (or empty) keeps every type.
	Type string
	// ShowResolved keeps resolved notes in the view. Default hides them.
	ShowResolved bool
}

// Apply returns the notes passing the display filter, preserving order.
func (f DisplayFilter) Apply(notes []*Note) []*Note {
	out := make([]*Note, 0, len(notes))
	for _, n := range notes {
		if n.IsResolved && !f.ShowResolved {
			continue
		}
		if f.Type != "" && f.Type != FilterTypeAll && string(n.NoteType) != f.Type {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Partitioned is the display shape of a fetched note set.
type Partitioned struct {
	// Favorites holds every favorite note regardless of URL pattern,
	// newest first.
	Favorites []*Note `json:"favorites"`
	// CurrentScope holds the non-favorite notes matching the current page,
	// pinned first, page-specific before domain-wide, then newest first.
	CurrentScope []*Note `json:"current_scope"`
}

// Partition splits notes into the favorites group and the current-scope
// group and sorts both. Pure function over an in-memory list; apply any
// DisplayFilter before calling.
func Partition(notes []*Note, keys ScopeKeys) Partitioned {
	p := Partitioned{
		Favorites:    make([]*Note, 0, len(notes)),
		CurrentScope: make([]*Note, 0, len(notes)),
	}

	for _, n := range notes {
		switch {
		case n.IsFavorite:
			p.Favorites = append(p.Favorites, n)
		case MatchesScope(n, keys):
			p.CurrentScope = append(p.CurrentScope, n)
		}
	}

	sort.SliceStable(p.Favorites, func(i, j int) bool {
		return p.Favorites[i].CreatedAt.After(p.Favorites[j].CreatedAt)
	})

	sort.SliceStable(p.CurrentScope, func(i, j int) bool {
		a, b := p.CurrentScope[i], p.CurrentScope[j]
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		if a.Scope != b.Scope {
			return a.Scope == ScopeExact
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	return p
}

// MatchesScope reports whether a note is attached to the current page under
// its own scope's canonicalization.
func MatchesScope(n *Note, keys ScopeKeys) bool {
	switch n.Scope {
	case ScopeDomain:
		return n.URLPattern == keys.Domain
	case ScopeExact:
		return n.URLPattern == keys.Exact
	default:
		return false
	}
}
