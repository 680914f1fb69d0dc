package redis

import (
	"github.com/redis/go-redis/v9"
)

// Store handles Redis operations for users, sessions, notes, links,
// domain settings and cached badge counts.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}
