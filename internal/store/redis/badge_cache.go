package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrBadgeCacheMiss = errors.New("badge count not cached")

// CacheBadgeCount stores a computed badge count for an owner's scope key
func (s *Store) CacheBadgeCount(ctx context.Context, ownerID, scopeKey string, count int, ttl time.Duration) error {
	if err := s.client.Set(ctx, BadgeKey(ownerID, scopeKey), count, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache badge count: %w", err)
	}
	return nil
}

// GetCachedBadgeCount retrieves a cached badge count for an owner's scope key
func (s *Store) GetCachedBadgeCount(ctx context.Context, ownerID, scopeKey string) (int, error) {
	count, err := s.client.Get(ctx, BadgeKey(ownerID, scopeKey)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrBadgeCacheMiss
		}
		return 0, fmt.Errorf("failed to get cached badge count: %w", err)
	}
	return count, nil
}

// InvalidateBadgeCounts drops all cached badge counts for an owner.
// Called after any note write so the next badge request recomputes.
func (s *Store) InvalidateBadgeCounts(ctx context.Context, ownerID string) error {
	iter := s.client.Scan(ctx, 0, BadgePattern(ownerID), 100).Iterator()
	keys := make([]string, 0, 16)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan badge keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete badge keys: %w", err)
	}
	return nil
}
