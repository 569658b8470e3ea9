package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// placeholder marks a key whose request is still in flight.
const placeholder = "processing"

// IdempotencyStore implements usecase.IdempotencyStore using Redis.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "idempotency:",
	}
}

// CheckAndSet atomically checks if key exists, sets if not. When response is
// nil the key is locked with a placeholder so a concurrent retry sees it.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if err == nil {
		if string(existing) == placeholder {
			return true, nil, nil
		}

		return true, existing, nil
	}
	if err != redis.Nil {
		return false, nil, err
	}

	if response != nil {
		if err := s.client.Set(ctx, fullKey, response, ttl).Err(); err != nil {
			return false, nil, err
		}

		return false, nil, nil
	}

	set, err := s.client.SetNX(ctx, fullKey, placeholder, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if !set {
		// Another request got there first.
		existing, err := s.client.Get(ctx, fullKey).Bytes()
		if err != nil && err != redis.Nil {
			return false, nil, err
		}
		if string(existing) == placeholder {
			return true, nil, nil
		}

		return true, existing, nil
	}

	return false, nil, nil
}

// Update stores the final response under an existing key.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, response, ttl).Err()
}

// Release drops the placeholder lock so the client can retry after a failed
// request. A key already holding a final response is left in place.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	fullKey := s.prefix + key

	current, err := s.client.Get(ctx, fullKey).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return err
	}

	if current != placeholder {
		return nil
	}

	return s.client.Del(ctx, fullKey).Err()
}
