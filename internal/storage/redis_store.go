package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps blobs in Redis. A positive ttl expires idle sessions.
type RedisStore struct {
	url    string
	ttl    time.Duration
	client *redis.Client
	shared bool
}

func NewRedisStore(url string, ttl time.Duration) *RedisStore {
	return &RedisStore{url: url, ttl: ttl}
}

// NewRedisStoreFromClient wraps a client owned by the caller, such as the
// book cache connection. Close leaves it open.
func NewRedisStoreFromClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, shared: true}
}

func (s *RedisStore) Init() error {
	return s.Load()
}

func (s *RedisStore) Load() error {
	if s.client == nil {
		opt, err := redis.ParseURL(s.url)
		if err != nil {
			return fmt.Errorf("failed to parse redis url: %w", err)
		}
		s.client = redis.NewClient(opt)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	if s.client != nil && !s.shared {
		return s.client.Close()
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	if s.client == nil {
		return nil, ErrNotInitialized
	}

	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if s.client == nil {
		return ErrNotInitialized
	}

	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return ErrNotInitialized
	}

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Location() string {
	if s.url != "" {
		return RedactDSN(s.url)
	}
	return "redis://" + s.client.Options().Addr
}
