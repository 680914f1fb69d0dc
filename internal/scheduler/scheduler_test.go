package scheduler

import (
	"testing"
	"time"

	"github.com/sitecue/sitecue/internal/domain"
)

func sessionAt(now time.Time, expiresIn time.Duration) *domain.Session {
	return &domain.Session{
		Token:     "tok",
		UserID:    "user-1",
		IssuedAt:  now.Add(-time.Hour),
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestRefreshWindowSelection(t *testing.T) {
	now := time.Now()
	window := 5 * time.Minute

	tests := []struct {
		name      string
		expiresIn time.Duration
		want      bool
	}{
		{"far from expiry", time.Hour, false},
		{"just outside window", 5*time.Minute + time.Second, false},
		{"inside window", 3 * time.Minute, true},
		{"at window edge", 5 * time.Minute, true},
		{"already expired", -time.Minute, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sessionAt(now, tt.expiresIn)
			if got := s.NeedsRefresh(now, window); got != tt.want {
				t.Errorf("NeedsRefresh(expires in %v) = %v, want %v", tt.expiresIn, got, tt.want)
			}
		})
	}
}

func TestExpiredSelection(t *testing.T) {
	now := time.Now()

	if sessionAt(now, time.Minute).Expired(now) {
		t.Error("live session reported expired")
	}
	if !sessionAt(now, -time.Minute).Expired(now) {
		t.Error("expired session not reported")
	}
	// Expired sessions are never refresh candidates
	if sessionAt(now, -time.Minute).NeedsRefresh(now, time.Hour) {
		t.Error("expired session should not need refresh")
	}
}
