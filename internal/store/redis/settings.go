package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sitecue/sitecue/internal/domain"
)

var ErrSettingNotFound = errors.New("domain setting not found")

// SaveDomainSetting stores a domain setting. The key is (owner, domain),
// so writing again for the same domain is an upsert.
func (s *Store) SaveDomainSetting(ctx context.Context, setting *domain.DomainSetting) error {
	data, err := json.Marshal(setting)
	if err != nil {
		return fmt.Errorf("failed to marshal setting: %w", err)
	}

	if err := s.client.Set(ctx, SettingKey(setting.UserID, setting.Domain), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	if err := s.client.SAdd(ctx, AllSettingsKey(setting.UserID), setting.Domain).Err(); err != nil {
		return fmt.Errorf("failed to add setting to set: %w", err)
	}

	return nil
}

// GetDomainSetting retrieves a setting by owner and domain
func (s *Store) GetDomainSetting(ctx context.Context, ownerID, dom string) (*domain.DomainSetting, error) {
	data, err := s.client.Get(ctx, SettingKey(ownerID, dom)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSettingNotFound
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}

	var setting domain.DomainSetting
	if err := json.Unmarshal(data, &setting); err != nil {
		return nil, fmt.Errorf("failed to unmarshal setting: %w", err)
	}

	return &setting, nil
}

// DeleteDomainSetting removes a setting from its owner's keyspace
func (s *Store) DeleteDomainSetting(ctx context.Context, ownerID, dom string) error {
	n, err := s.client.Del(ctx, SettingKey(ownerID, dom)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	if n == 0 {
		return ErrSettingNotFound
	}
	if err := s.client.SRem(ctx, AllSettingsKey(ownerID), dom).Err(); err != nil {
		return fmt.Errorf("failed to remove setting from set: %w", err)
	}
	return nil
}

// ListDomainSettings retrieves all settings belonging to an owner
func (s *Store) ListDomainSettings(ctx context.Context, ownerID string) ([]*domain.DomainSetting, error) {
	domains, err := s.client.SMembers(ctx, AllSettingsKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get setting domains: %w", err)
	}

	if len(domains) == 0 {
		return []*domain.DomainSetting{}, nil
	}

	settings := make([]*domain.DomainSetting, 0, len(domains))
	for _, dom := range domains {
		setting, err := s.GetDomainSetting(ctx, ownerID, dom)
		if err != nil {
			continue
		}
		settings = append(settings, setting)
	}

	return settings, nil
}
