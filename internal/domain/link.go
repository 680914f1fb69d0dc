package domain

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// LinkType distinguishes plain cross-references from environment links.
type LinkType string

const (
	// LinkRelated opens the target in a new tab.
	LinkRelated LinkType = "related"
	// LinkEnv rewrites the current tab's origin to the target's origin,
	// keeping path/query/fragment ("switch environment, same page").
	LinkEnv LinkType = "env"
)

// Valid reports whether t is a known link type.
func (t LinkType) Valid() bool {
	return t == LinkRelated || t == LinkEnv
}

// QuickLink is a user-authored cross-reference attached to a domain.
type QuickLink struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Domain    string    `json:"domain"`
	TargetURL string    `json:"target_url"`
	Label     string    `json:"label"`
	Type      LinkType  `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// RewriteOrigin swaps currentURL's origin for targetURL's origin while
// preserving path, query and fragment. This is the env-link navigation:
// same page, other deployment environment.
func RewriteOrigin(currentURL, targetURL string) (string, error) {
	cur, err := url.Parse(currentURL)
	if err != nil || cur.Host == "" {
		return "", fmt.Errorf("invalid current url %q", currentURL)
	}
	tgt, err := url.Parse(targetURL)
	if err != nil || tgt.Host == "" {
		return "", fmt.Errorf("invalid target url %q", targetURL)
	}

	out := *cur
	out.Scheme = tgt.Scheme
	out.Host = tgt.Host
	return out.String(), nil
}

// ReverseEnvLinks resolves the links visible on currentDomain from a
// fetched set: links attached to the domain pass through unchanged, and
// env links from *other* domains that point at us become synthetic reverse
// links back to their source. Reverse links are derived on every read,
// never persisted.
func ReverseEnvLinks(links []*QuickLink, currentDomain string) []*QuickLink {
	out := make([]*QuickLink, 0, len(links))
	for _, l := range links {
		if l.Domain == currentDomain {
			out = append(out, l)
			continue
		}
		if l.Type != LinkEnv {
			continue
		}
		tgt, err := url.Parse(l.TargetURL)
		if err != nil || tgt.Host == "" {
			continue
		}
		if tgt.Host != currentDomain {
			continue
		}
		rev := *l
		rev.Label = l.Domain
		rev.TargetURL = OriginURL(l.Domain)
		out = append(out, &rev)
	}
	return out
}

// OriginURL turns a bare domain key back into a navigable origin.
// Local development hosts get http, everything else https.
func OriginURL(domain string) string {
	if strings.Contains(domain, "localhost") || strings.Contains(domain, "127.0.0.1") {
		return "http://" + domain
	}
	return "https://" + domain
}

// SortLinks orders env links before related links, keeping insertion order
// within each group.
func SortLinks(links []*QuickLink) {
	sort.SliceStable(links, func(i, j int) bool {
		return links[i].Type == LinkEnv && links[j].Type != LinkEnv
	})
}
