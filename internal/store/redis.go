package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "studypulse:slot:"

// RedisStore keeps slot payloads in Redis. This is the primary backend.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSlotMissing
	}
	if err != nil {
		return nil, err
	}

	return payload, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, payload []byte) error {
	return s.client.Set(ctx, redisKeyPrefix+key, payload, 0).Err()
}
