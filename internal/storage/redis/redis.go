// Package redis provides a storage.Backend that keeps each store as a single
// JSON document under one Redis key.
package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mmynk/innkeeper/internal/config"
	"github.com/mmynk/innkeeper/internal/storage"
)

// Ensure Backend implements storage.Backend
var _ storage.Backend[struct{}] = (*Backend[struct{}])(nil)

// NewClient creates a Redis client from configuration.
func NewClient(cfg config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// Ping checks the connection to Redis.
func Ping(ctx context.Context, client *goredis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Backend stores one mapping under key.
type Backend[T any] struct {
	client *goredis.Client
	store  string
	key    string
}

// New creates a backend for the named store. The key is prefix + ":" + store.
func New[T any](client *goredis.Client, prefix, store string) *Backend[T] {
	return &Backend[T]{
		client: client,
		store:  store,
		key:    fmt.Sprintf("%s:%s", prefix, store),
	}
}

// Key returns the Redis key holding the mapping.
func (b *Backend[T]) Key() string {
	return b.key
}

// Load fetches and decodes the mapping. A missing key is an empty store.
func (b *Backend[T]) Load(ctx context.Context) (map[string]T, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return map[string]T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", b.key, err)
	}

	return storage.DecodeSnapshot[T](data, b.store, "redis:"+b.key)
}

// Save overwrites the key with the encoded mapping.
func (b *Backend[T]) Save(ctx context.Context, records map[string]T) error {
	data, err := storage.EncodeSnapshot(records)
	if err != nil {
		return err
	}

	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", b.key, err)
	}
	return nil
}
