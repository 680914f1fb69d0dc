package domain

import "time"

// User is an account that owns notes, links and settings.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is a persisted refresh-token row. The token itself is the key;
// the row is the opaque serialized blob behind it.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// NeedsRefresh reports whether the session is within the refresh window of
// its expiry but not yet expired. The background refresher extends such
// sessions on its next sweep.
func (s *Session) NeedsRefresh(now time.Time, window time.Duration) bool {
	if s.Expired(now) {
		return false
	}
	return s.ExpiresAt.Sub(now) <= window
}
