package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces chirp keys in a shared Redis database.
const DefaultRedisPrefix = "chirp:cache:"

// RedisConfig configures a RedisStore.
type RedisConfig struct {
	Addr     string // host:port, e.g. "localhost:6379"
	Password string
	DB       int
	Prefix   string // Key prefix; defaults to DefaultRedisPrefix
}

// RedisStore keeps entries in Redis so several processes or hosts share one
// cache. Each entry is a hash with "data" and "stored_at" fields. Keys carry
// no Redis expiry: freshness is decided by the reader, and stale entries must
// remain available as a fallback.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStore connects to Redis and verifies the connection with PING.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", cfg.Addr, err)
	}
	return NewRedisStoreFromClient(client, cfg.Prefix), nil
}

// NewRedisStoreFromClient wraps an existing client. The store takes ownership
// of the client and closes it on Close.
func NewRedisStoreFromClient(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Get retrieves an entry from Redis.
func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	fields, err := s.client.HGetAll(ctx, s.prefix+key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	data, ok := fields["data"]
	if !ok {
		return nil, nil
	}

	nanos, err := strconv.ParseInt(fields["stored_at"], 10, 64)
	if err != nil {
		// Entry without a usable timestamp: treat as written long ago so it
		// only serves as a fallback.
		return &Entry{Data: []byte(data)}, nil
	}
	return &Entry{Data: []byte(data), StoredAt: time.Unix(0, nanos)}, nil
}

// Set stores data under key.
func (s *RedisStore) Set(ctx context.Context, key string, data []byte) error {
	err := s.client.HSet(ctx, s.prefix+key,
		"data", data,
		"stored_at", strconv.FormatInt(time.Now().UnixNano(), 10),
	).Err()
	if err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes an entry from Redis.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
