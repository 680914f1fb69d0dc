package domain

import (
	"net/url"
	"strings"
)

// ScopeKeys is the pair of canonical keys derived from a raw tab URL.
// Derived at read time, used only as query parameters, never stored.
type ScopeKeys struct {
	Domain string `json:"domain"`
	Exact  string `json:"exact"`
}

// Normalize canonicalizes a raw page URL for the given scope.
//
// domain -> host only (port kept), exact -> host+path+query with no scheme
// and no fragment. When the URL does not parse, or parses without a host
// (typical for already-normalized schemeless input), Normalize degrades to
// stripping a leading http:// or https:// prefix and returning the
// remainder unchanged. The degraded path is intentional robustness
// behavior, not an error.
func Normalize(raw string, scope Scope) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return stripScheme(raw)
	}

	if scope == ScopeDomain {
		return u.Host
	}

	key := u.Host + u.Path
	if u.RawQuery != "" {
		key += "?" + u.RawQuery
	}
	return key
}

// GetScopeKeys derives both canonical keys from a raw URL.
// Pure and deterministic; no caching.
func GetScopeKeys(raw string) ScopeKeys {
	return ScopeKeys{
		Domain: Normalize(raw, ScopeDomain),
		Exact:  Normalize(raw, ScopeExact),
	}
}

// IsHTTP reports whether raw is an http or https URL. The badge renders
// empty for anything else (chrome://, about:, file:, ...).
func IsHTTP(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func stripScheme(raw string) string {
	if rest, ok := strings.CutPrefix(raw, "http://"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(raw, "https://"); ok {
		return rest
	}
	return raw
}
