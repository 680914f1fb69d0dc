package domain

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		scope Scope
		want  string
	}{
		{
			name:  "domain strips scheme and path",
			raw:   "https://example.com/foo?q=1",
			scope: ScopeDomain,
			want:  "example.com",
		},
		{
			name:  "domain bare origin",
			raw:   "https://example.com",
			scope: ScopeDomain,
			want:  "example.com",
		},
		{
			name:  "domain keeps port",
			raw:   "http://localhost:3000/admin",
			scope: ScopeDomain,
			want:  "localhost:3000",
		},
		{
			name:  "exact keeps path and query",
			raw:   "https://example.com/foo?q=1",
			scope: ScopeExact,
			want:  "example.com/foo?q=1",
		},
		{
			name:  "exact drops fragment",
			raw:   "https://example.com/foo?q=1#section",
			scope: ScopeExact,
			want:  "example.com/foo?q=1",
		},
		{
			name:  "exact bare origin has no path",
			raw:   "https://example.com",
			scope: ScopeExact,
			want:  "example.com",
		},
		{
			name:  "exact without query",
			raw:   "http://example.com/a/b/c",
			scope: ScopeExact,
			want:  "example.com/a/b/c",
		},
		{
			name:  "schemeless input falls back to prefix strip",
			raw:   "example.com/foo?q=1",
			scope: ScopeExact,
			want:  "example.com/foo?q=1",
		},
		{
			name:  "fallback strips http prefix verbatim",
			raw:   "http://%zz",
			scope: ScopeDomain,
			want:  "%zz",
		},
		{
			name:  "fallback returns garbage unchanged",
			raw:   "not a url at all",
			scope: ScopeDomain,
			want:  "not a url at all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, tt.scope)
			if got != tt.want {
				t.Errorf("Normalize(%q, %q) = %q, want %q", tt.raw, tt.scope, got, tt.want)
			}
		})
	}
}

func TestGetScopeKeysDeterministic(t *testing.T) {
	raw := "https://example.com/foo?q=1"

	first := GetScopeKeys(raw)
	second := GetScopeKeys(raw)

	if first != second {
		t.Errorf("GetScopeKeys not deterministic: %+v vs %+v", first, second)
	}
	if first.Domain != "example.com" {
		t.Errorf("domain key = %q, want example.com", first.Domain)
	}
	if first.Exact != "example.com/foo?q=1" {
		t.Errorf("exact key = %q, want example.com/foo?q=1", first.Exact)
	}
}

func TestIsHTTP(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"https://example.com/foo", true},
		{"http://localhost:3000", true},
		{"chrome://extensions", false},
		{"about:blank", false},
		{"file:///tmp/x.html", false},
		{"", false},
		{"example.com/foo", false},
	}

	for _, tt := range tests {
		if got := IsHTTP(tt.raw); got != tt.want {
			t.Errorf("IsHTTP(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
