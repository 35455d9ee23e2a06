package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/makishop/storefront/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the snapshot in redis, for profiles shared across several
// storefront surfaces on the same device.
type RedisStore struct {
	client  *redis.Client
	profile string
}

func NewRedisStore(client *redis.Client, profile string) *RedisStore {
	return &RedisStore{client: client, profile: profile}
}

func (s *RedisStore) key() string {
	return fmt.Sprintf("%s:%s", StorageKey, s.profile)
}

func (s *RedisStore) Load(ctx context.Context) ([]domain.CartLineItem, error) {
	data, err := s.client.Get(ctx, s.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []domain.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("malformed cart snapshot for %s, treating as empty: %v", s.key(), err)
		return nil, nil
	}
	return items, nil
}

func (s *RedisStore) Save(ctx context.Context, items []domain.CartLineItem) error {
	if items == nil {
		items = []domain.CartLineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart snapshot: %w", err)
	}
	// The cart is durable state, not a cache, so no TTL
	if err := s.client.Set(ctx, s.key(), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Append(ctx context.Context, item domain.CartLineItem) error {
	items, err := s.Load(ctx)
	if err != nil {
		return err
	}
	return s.Save(ctx, append(items, item))
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
