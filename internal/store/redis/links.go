package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sitecue/sitecue/internal/domain"
)

var ErrLinkNotFound = errors.New("link not found")

// SaveLink stores a quick link under its owner's keyspace. Only links as
// authored are persisted; reverse environment links are derived at read
// time by the callers.
func (s *Store) SaveLink(ctx context.Context, link *domain.QuickLink) error {
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("failed to marshal link: %w", err)
	}

	if err := s.client.Set(ctx, LinkKey(link.UserID, link.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save link: %w", err)
	}
	if err := s.client.SAdd(ctx, AllLinksKey(link.UserID), link.ID).Err(); err != nil {
		return fmt.Errorf("failed to add link to set: %w", err)
	}

	return nil
}

// GetLink retrieves a quick link by owner and ID
func (s *Store) GetLink(ctx context.Context, ownerID, linkID string) (*domain.QuickLink, error) {
	data, err := s.client.Get(ctx, LinkKey(ownerID, linkID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	var link domain.QuickLink
	if err := json.Unmarshal(data, &link); err != nil {
		return nil, fmt.Errorf("failed to unmarshal link: %w", err)
	}

	return &link, nil
}

// DeleteLink removes a quick link from its owner's keyspace
func (s *Store) DeleteLink(ctx context.Context, ownerID, linkID string) error {
	n, err := s.client.Del(ctx, LinkKey(ownerID, linkID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	if n == 0 {
		return ErrLinkNotFound
	}
	if err := s.client.SRem(ctx, AllLinksKey(ownerID), linkID).Err(); err != nil {
		return fmt.Errorf("failed to remove link from set: %w", err)
	}
	return nil
}

// ListLinks retrieves all quick links belonging to an owner
func (s *Store) ListLinks(ctx context.Context, ownerID string) ([]*domain.QuickLink, error) {
	ids, err := s.client.SMembers(ctx, AllLinksKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get link IDs: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.QuickLink{}, nil
	}

	links := make([]*domain.QuickLink, 0, len(ids))
	for _, id := range ids {
		link, err := s.GetLink(ctx, ownerID, id)
		if err != nil {
			continue
		}
		links = append(links, link)
	}

	return links, nil
}
