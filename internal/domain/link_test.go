package domain

import "testing"

func TestRewriteOrigin(t *testing.T) {
	tests := []struct {
		name    string
		current string
		target  string
		want    string
		wantErr bool
	}{
		{
			name:    "swap host keep path and query",
			current: "https://app.example.com/users/42?tab=notes",
			target:  "https://staging.example.com",
			want:    "https://staging.example.com/users/42?tab=notes",
		},
		{
			name:    "keep fragment",
			current: "https://app.example.com/docs#install",
			target:  "https://dev.example.com",
			want:    "https://dev.example.com/docs#install",
		},
		{
			name:    "scheme follows target",
			current: "https://app.example.com/users",
			target:  "http://localhost:3000",
			want:    "http://localhost:3000/users",
		},
		{
			name:    "invalid current url",
			current: "not-a-url",
			target:  "https://staging.example.com",
			wantErr: true,
		},
		{
			name:    "invalid target url",
			current: "https://app.example.com/users",
			target:  "::::",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RewriteOrigin(tt.current, tt.target)
			if tt.wantErr {
				if err == nil {
					t.Errorf("RewriteOrigin() = %q, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("RewriteOrigin() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("RewriteOrigin() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReverseEnvLinks(t *testing.T) {
	links := []*QuickLink{
		{ID: "own", UserID: "u1", Domain: "app.example.com", TargetURL: "https://wiki.example.com", Label: "Wiki", Type: LinkRelated},
		{ID: "incoming", UserID: "u1", Domain: "staging.example.com", TargetURL: "https://app.example.com", Label: "prod", Type: LinkEnv},
		{ID: "unrelated", UserID: "u1", Domain: "other.com", TargetURL: "https://elsewhere.com", Type: LinkEnv},
		{ID: "foreign-related", UserID: "u1", Domain: "other.com", TargetURL: "https://app.example.com", Type: LinkRelated},
	}

	got := ReverseEnvLinks(links, "app.example.com")

	if len(got) != 2 {
		t.Fatalf("ReverseEnvLinks() returned %d links, want 2: %+v", len(got), got)
	}

	if got[0].ID != "own" || got[0].TargetURL != "https://wiki.example.com" {
		t.Errorf("outgoing link altered: %+v", got[0])
	}

	rev := got[1]
	if rev.ID != "incoming" {
		t.Fatalf("reverse link = %+v, want derived from incoming", rev)
	}
	if rev.Label != "staging.example.com" {
		t.Errorf("reverse label = %q, want source domain", rev.Label)
	}
	if rev.TargetURL != "https://staging.example.com" {
		t.Errorf("reverse target = %q, want https://staging.example.com", rev.TargetURL)
	}

	// Derivation must not mutate the stored row.
	if links[1].TargetURL != "https://app.example.com" {
		t.Errorf("stored link mutated: %+v", links[1])
	}
}

func TestReverseEnvLinksLocalhostProtocol(t *testing.T) {
	links := []*QuickLink{
		{ID: "local", Domain: "localhost:3000", TargetURL: "https://app.example.com", Type: LinkEnv},
	}

	got := ReverseEnvLinks(links, "app.example.com")
	if len(got) != 1 {
		t.Fatalf("ReverseEnvLinks() returned %d links, want 1", len(got))
	}
	if got[0].TargetURL != "http://localhost:3000" {
		t.Errorf("reverse target = %q, want http scheme for localhost", got[0].TargetURL)
	}
}

func TestSortLinksEnvFirst(t *testing.T) {
	links := []*QuickLink{
		{ID: "r1", Type: LinkRelated},
		{ID: "e1", Type: LinkEnv},
		{ID: "r2", Type: LinkRelated},
		{ID: "e2", Type: LinkEnv},
	}

	SortLinks(links)

	wantOrder := []string{"e1", "e2", "r1", "r2"}
	for i, want := range wantOrder {
		if links[i].ID != want {
			t.Fatalf("SortLinks() order = %v, want %v at %d", links[i].ID, want, i)
		}
	}
}

func TestOriginURL(t *testing.T) {
	tests := []struct {
		domain string
		want   string
	}{
		{"app.example.com", "https://app.example.com"},
		{"localhost:3000", "http://localhost:3000"},
		{"127.0.0.1:8080", "http://127.0.0.1:8080"},
	}

	for _, tt := range tests {
		if got := OriginURL(tt.domain); got != tt.want {
			t.Errorf("OriginURL(%q) = %q, want %q", tt.domain, got, tt.want)
		}
	}
}
