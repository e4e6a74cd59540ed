package realtime

import (
	"context"
	"fmt"
	"time"
)

// Store is the subset of pkg/cache.RedisCache used by RedisMirror.
type Store interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Publish(ctx context.Context, channel string, message interface{}) error
}

type Update struct {
	Path  string                 `json:"path"`
	Value map[string]interface{} `json:"value"`
}

// RedisMirror stores each path as a JSON value and announces the write on a
// pub/sub channel so socket gateways can forward it to observers.
type RedisMirror struct {
	store   Store
	channel string
	now     func() time.Time
}

func NewRedisMirror(store Store, channel string) *RedisMirror {
	return &RedisMirror{
		store:   store,
		channel: channel,
		now:     time.Now,
	}
}

func (m *RedisMirror) SetPath(ctx context.Context, path string, fields map[string]interface{}) error {
	value := resolveTimestamps(fields, m.now().UnixMilli())

	if err := m.store.Set(ctx, path, value, 0); err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}

	if m.channel != "" {
		if err := m.store.Publish(ctx, m.channel, Update{Path: path, Value: value}); err != nil {
			return fmt.Errorf("failed to publish %s: %w", path, err)
		}
	}

	return nil
}
