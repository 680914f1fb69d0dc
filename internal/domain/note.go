package domain

import "time"

// Scope determines which canonicalization of a page URL matches a note.
type Scope string

const (
	// ScopeDomain attaches a note to every page on a host.
	ScopeDomain Scope = "domain"
	// ScopeExact attaches a note to one exact page (host+path+query).
	ScopeExact Scope = "exact"
)

// Valid reports whether s is a known scope.
func (s Scope) Valid() bool {
	return s == ScopeDomain || s == ScopeExact
}

// NoteType classifies a note for display filtering.
type NoteType string

const (
	NoteTypeInfo  NoteType = "info"
	NoteTypeAlert NoteType = "alert"
	NoteTypeIdea  NoteType = "idea"
)

// Valid reports whether t is a known note type.
func (t NoteType) Valid() bool {
	return t == NoteTypeInfo || t == NoteTypeAlert || t == NoteTypeIdea
}

// Note is a user-authored annotation attached to a website.
//
// URLPattern must be consistent with Scope's canonicalization rule: a
// domain-scoped pattern is a bare host, an exact-scoped pattern is
// host+path+query. The write surfaces normalize the submitted URL with the
// note's scope, so stored patterns are consistent by construction.
type Note struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the canonical unique identifier, generated at creation.
	ID string `json:"id"`

	// UserID identifies the owner. Immutable; every storage key is
	// qualified by it, so a caller can never read another user's rows.
	UserID string `json:"user_id"`

	// ─────────────────────────────
	// Content & matching
	// ─────────────────────────────

	// Content is the free-text body.
	Content string `json:"content"`

	// URLPattern is the canonical key this note is attached to.
	URLPattern string `json:"url_pattern"`

	// Scope selects the canonicalization rule used for matching.
	Scope Scope `json:"scope"`

	// NoteType defaults to info.
	NoteType NoteType `json:"note_type"`

	// ─────────────────────────────
	// Flags (independent booleans)
	// ─────────────────────────────

	IsResolved bool `json:"is_resolved"`
	IsPinned   bool `json:"is_pinned"`
	IsFavorite bool `json:"is_favorite"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is immutable.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is set on every edit.
	UpdatedAt time.Time `json:"updated_at"`
}

// Field returns the note's value for a filter column, booleans as
// "true"/"false". Unknown columns return "" and never match.
func (n *Note) Field(col string) string {
	switch col {
	case "id":
		return n.ID
	case "content":
		return n.Content
	case "url_pattern":
		return n.URLPattern
	case "scope":
		return string(n.Scope)
	case "note_type":
		return string(n.NoteType)
	case "is_resolved":
		return boolField(n.IsResolved)
	case "is_pinned":
		return boolField(n.IsPinned)
	case "is_favorite":
		return boolField(n.IsFavorite)
	default:
		return ""
	}
}

func boolField(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// DomainSetting is a per-user, per-domain display preference.
// Unique per (UserID, Domain); writes are upserts on that pair.
type DomainSetting struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Domain    string    `json:"domain"`
	Label     string    `json:"label,omitempty"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MaxDomainLabelLen caps the optional short label shown next to a domain.
const MaxDomainLabelLen = 10

// DomainColors is the fixed palette a DomainSetting color must come from.
var DomainColors = []string{"gray", "red", "orange", "yellow", "green", "blue", "purple", "pink"}

// ValidDomainColor reports whether c is in the palette. Empty is allowed
// (no color set).
func ValidDomainColor(c string) bool {
	if c == "" {
		return true
	}
	for _, v := range DomainColors {
		if v == c {
			return true
		}
	}
	return false
}
