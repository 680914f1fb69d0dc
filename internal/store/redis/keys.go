package redis

import "fmt"

const (
	// KeyPrefixUserEmail maps an email address to a user ID
	KeyPrefixUserEmail = "sitecue:user:email:"
	// KeyPrefixUser is the prefix for user records by ID
	KeyPrefixUser = "sitecue:user:id:"
	// KeyPrefixSession is the prefix for refresh session records
	KeyPrefixSession = "sitecue:session:"
	// KeyAllSessions is the set of all session tokens
	KeyAllSessions = "sitecue:sessions:all"
	// KeyPrefixNote is the prefix for note records (owner-qualified)
	KeyPrefixNote = "sitecue:note:"
	// KeyPrefixNotesAll is the prefix for per-owner note ID sets
	KeyPrefixNotesAll = "sitecue:notes:"
	// KeyPrefixLink is the prefix for quick link records (owner-qualified)
	KeyPrefixLink = "sitecue:link:"
	// KeyPrefixLinksAll is the prefix for per-owner link ID sets
	KeyPrefixLinksAll = "sitecue:links:"
	// KeyPrefixSetting is the prefix for domain setting records (owner-qualified)
	KeyPrefixSetting = "sitecue:setting:"
	// KeyPrefixSettingsAll is the prefix for per-owner setting domain sets
	KeyPrefixSettingsAll = "sitecue:settings:"
	// KeyPrefixBadge is the prefix for cached badge counts (owner-qualified)
	KeyPrefixBadge = "sitecue:badge:"
)

// Every record key below is qualified by the owning user ID. Ownership is
// enforced here, at the key level, never by the callers' filters.

func UserEmailKey(email string) string {
	return KeyPrefixUserEmail + email
}

func UserKey(id string) string {
	return KeyPrefixUser + id
}

func SessionKey(token string) string {
	return KeyPrefixSession + token
}

func AllSessionsKey() string {
	return KeyAllSessions
}

func NoteKey(ownerID, noteID string) string {
	return fmt.Sprintf("%s%s:%s", KeyPrefixNote, ownerID, noteID)
}

func AllNotesKey(ownerID string) string {
	return KeyPrefixNotesAll + ownerID + ":all"
}

func LinkKey(ownerID, linkID string) string {
	return fmt.Sprintf("%s%s:%s", KeyPrefixLink, ownerID, linkID)
}

func AllLinksKey(ownerID string) string {
	return KeyPrefixLinksAll + ownerID + ":all"
}

func SettingKey(ownerID, domain string) string {
	return fmt.Sprintf("%s%s:%s", KeyPrefixSetting, ownerID, domain)
}

func AllSettingsKey(ownerID string) string {
	return KeyPrefixSettingsAll + ownerID + ":all"
}

func BadgeKey(ownerID, scopeKey string) string {
	return fmt.Sprintf("%s%s:%s", KeyPrefixBadge, ownerID, scopeKey)
}

func BadgePattern(ownerID string) string {
	return KeyPrefixBadge + ownerID + ":*"
}
