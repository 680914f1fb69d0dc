package domain

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func testNote(scope Scope, pattern string, mutate func(*Note)) *Note {
	n := &Note{
		ID:         "n1",
		UserID:     "u1",
		Content:    "note",
		URLPattern: pattern,
		Scope:      scope,
		NoteType:   NoteTypeInfo,
		CreatedAt:  time.Now(),
	}
	if mutate != nil {
		mutate(n)
	}
	return n
}

func TestBuildCueFilterSerialization(t *testing.T) {
	keys := ScopeKeys{Domain: "example.com", Exact: "example.com/foo?q=1"}

	got := Serialize(BuildCueFilter(keys))
	want := "and(scope.eq.domain,url_pattern.eq.example.com)," +
		"and(scope.eq.exact,url_pattern.eq.example.com/foo?q=1)," +
		"is_favorite.eq.true"

	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestBuildBadgeFilterSerialization(t *testing.T) {
	keys := ScopeKeys{Domain: "example.com", Exact: "example.com/foo"}

	got := Serialize(BuildBadgeFilter(keys))
	want := "and(is_resolved.eq.false," +
		"or(and(scope.eq.domain,url_pattern.eq.example.com)," +
		"and(scope.eq.exact,url_pattern.eq.example.com/foo)))"

	if got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}
}

func TestFilterRoundTripMatching(t *testing.T) {
	keys := ScopeKeys{Domain: "example.com", Exact: "example.com/foo?q=1"}
	filter := Serialize(BuildCueFilter(keys))

	parsed, err := ParseFilter(filter)
	if err != nil {
		t.Fatalf("ParseFilter(%q) failed: %v", filter, err)
	}

	tests := []struct {
		name string
		note *Note
		want bool
	}{
		{
			name: "domain note on host matches",
			note: testNote(ScopeDomain, "example.com", nil),
			want: true,
		},
		{
			name: "exact note on page matches",
			note: testNote(ScopeExact, "example.com/foo?q=1", nil),
			want: true,
		},
		{
			name: "exact note on other page does not match",
			note: testNote(ScopeExact, "example.com/bar", nil),
			want: false,
		},
		{
			name: "domain note on other host does not match",
			note: testNote(ScopeDomain, "other.com", nil),
			want: false,
		},
		{
			name: "favorite matches regardless of pattern",
			note: testNote(ScopeDomain, "other.com", func(n *Note) { n.IsFavorite = true }),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parsed.Match(tt.note); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBadgeFilterExcludesResolvedAndFavorites(t *testing.T) {
	keys := ScopeKeys{Domain: "example.com", Exact: "example.com/foo"}
	parsed, err := ParseFilter(Serialize(BuildBadgeFilter(keys)))
	if err != nil {
		t.Fatalf("ParseFilter failed: %v", err)
	}

	unresolved := testNote(ScopeDomain, "example.com", nil)
	if !parsed.Match(unresolved) {
		t.Error("unresolved note on current page should count toward badge")
	}

	resolved := testNote(ScopeDomain, "example.com", func(n *Note) { n.IsResolved = true })
	if parsed.Match(resolved) {
		t.Error("resolved note must not count toward badge")
	}

	favoriteElsewhere := testNote(ScopeDomain, "other.com", func(n *Note) { n.IsFavorite = true })
	if parsed.Match(favoriteElsewhere) {
		t.Error("favorites clause must be absent from the badge filter")
	}
}

// A url_pattern containing a comma is only matched correctly because
// Serialize quotes it. The unquoted interpolation produces a structurally
// different (broken) query instead of an error.
func TestCommaValueQuoting(t *testing.T) {
	keys := ScopeKeys{Domain: "example.com", Exact: "example.com/foo,bar"}
	note := testNote(ScopeExact, "example.com/foo,bar", nil)

	serialized := Serialize(BuildCueFilter(keys))
	wantQuoted := `and(scope.eq.exact,url_pattern.eq."example.com/foo,bar")`
	if !strings.Contains(serialized, wantQuoted) {
		t.Fatalf("Serialize() = %q, missing quoted group %q", serialized, wantQuoted)
	}

	parsed, err := ParseFilter(serialized)
	if err != nil {
		t.Fatalf("ParseFilter(%q) failed: %v", serialized, err)
	}
	if !parsed.Match(note) {
		t.Error("quoted filter must match the comma-containing note")
	}
}

// Regression for the defect class: hand-interpolated filters with unquoted
// commas silently change structure. The comma splits the conjunction, so
// the pattern condition compares against a truncated value and an orphan
// "bar" fragment is rejected by the parser.
func TestUnquotedCommaMisparses(t *testing.T) {
	raw := fmt.Sprintf("and(scope.eq.exact,url_pattern.eq.%s)", "example.com/foo,bar")

	parsed, err := ParseFilter(raw)
	if err != nil {
		// The orphan fragment is not a valid condition; rejecting the
		// whole filter is the acceptable outcome.
		return
	}

	note := testNote(ScopeExact, "example.com/foo,bar", nil)
	if parsed.Match(note) {
		t.Error("unquoted comma filter should NOT match the intended note")
	}
}

func TestQuoteEscaping(t *testing.T) {
	val := `weird"value\with,stuff()`
	parsed, err := ParseFilter(Serialize(Eq("content", val)))
	if err != nil {
		t.Fatalf("ParseFilter failed: %v", err)
	}
	eq, ok := parsed.(*EqExpr)
	if !ok {
		t.Fatalf("parsed = %T, want *EqExpr", parsed)
	}
	if eq.Val != val {
		t.Errorf("round-tripped value = %q, want %q", eq.Val, val)
	}
}

func TestParseFilterErrors(t *testing.T) {
	tests := []struct {
		name   string
		filter string
	}{
		{"empty", ""},
		{"unbalanced open", "and(scope.eq.domain"},
		{"unbalanced close", "scope.eq.domain)"},
		{"unterminated quote", `url_pattern.eq."example.com`},
		{"unsupported operator", "scope.neq.domain"},
		{"missing operator", "scope"},
		{"trailing comma", "scope.eq.domain,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseFilter(tt.filter); err == nil {
				t.Errorf("ParseFilter(%q) should fail", tt.filter)
			}
		})
	}
}
