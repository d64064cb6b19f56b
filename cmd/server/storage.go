package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mmynk/innkeeper/internal/config"
	"github.com/mmynk/innkeeper/internal/models"
	"github.com/mmynk/innkeeper/internal/storage"
	"github.com/mmynk/innkeeper/internal/storage/jsonfile"
	"github.com/mmynk/innkeeper/internal/storage/memory"
	"github.com/mmynk/innkeeper/internal/storage/redis"
	"github.com/mmynk/innkeeper/internal/storage/sqlite"
)

// backends bundles the two store backends selected by configuration.
type backends struct {
	hotels    storage.Backend[models.Hotel]
	customers storage.Backend[models.Customer]
	location  string
	close     func() error
}

// Close releases connections held by the backends.
func (b *backends) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

func openBackends(ctx context.Context, cfg *config.Config) (*backends, error) {
	switch cfg.Storage.Backend {
	case config.BackendJSON:
		hotels := jsonfile.New[models.Hotel](storage.HotelsStore, filepath.Join(cfg.Storage.DataDir, "hotels.json"))
		customers := jsonfile.New[models.Customer](storage.CustomersStore, filepath.Join(cfg.Storage.DataDir, "customers.json"))
		return &backends{
			hotels:    hotels,
			customers: customers,
			location:  hotels.Path() + ", " + customers.Path(),
		}, nil

	case config.BackendSQLite:
		store, err := sqlite.New(cfg.Storage.DBPath)
		if err != nil {
			return nil, err
		}
		return &backends{
			hotels:    store.Hotels(),
			customers: store.Customers(),
			location:  cfg.Storage.DBPath,
			close:     store.Close,
		}, nil

	case config.BackendRedis:
		client := redis.NewClient(cfg.Redis)
		if err := redis.Ping(ctx, client); err != nil {
			client.Close()
			return nil, err
		}
		return &backends{
			hotels:    redis.New[models.Hotel](client, cfg.Redis.KeyPrefix, storage.HotelsStore),
			customers: redis.New[models.Customer](client, cfg.Redis.KeyPrefix, storage.CustomersStore),
			location:  cfg.Redis.Address,
			close:     client.Close,
		}, nil

	case config.BackendMemory:
		return &backends{
			hotels:    memory.New[models.Hotel](),
			customers: memory.New[models.Customer](),
			location:  "memory",
		}, nil
	}

	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
