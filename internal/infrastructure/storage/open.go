package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/bau-portal/internal/application/ports"
	"github.com/jhoicas/bau-portal/internal/infrastructure/postgres"
	"github.com/jhoicas/bau-portal/pkg/config"
)

// Open construye el almacenamiento según STORAGE_DRIVER. closeFn libera conexiones
// y siempre es no-nil.
func Open(ctx context.Context, cfg *config.Config) (store ports.KeyValueStore, closeFn func(), err error) {
	noop := func() {}
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return NewMemoryStore(), noop, nil
	case config.StorageFile:
		return NewFileStore(cfg.Storage.Path), noop, nil
	case config.StorageRedis:
		rs, err := NewRedisStore(ctx, cfg.Redis.URL, cfg.Redis.Prefix)
		if err != nil {
			return nil, noop, err
		}
		return rs, func() { _ = rs.Close() }, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, noop, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		kv, err := postgres.NewKVStore(ctx, pool, cfg.App.Name)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		return kv, pool.Close, nil
	default:
		return nil, noop, fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.Storage.Driver)
	}
}
