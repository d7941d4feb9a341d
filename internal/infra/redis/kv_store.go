package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"kwikquiz/internal/store"
)

const keyPrefix = "kwikquiz:"

// KVStore persists blobs as plain Redis strings under a fixed prefix.
// A TTL of zero keeps entries forever, which is the normal mode for quiz
// data; a positive TTL is useful for shared demo instances.
type KVStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewKVStore(client *redis.Client, ttl time.Duration) *KVStore {
	return &KVStore{client: client, ttl: ttl}
}

func (s *KVStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", store.ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, keyPrefix+key, value, s.ttl).Err()
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+key).Err()
}
