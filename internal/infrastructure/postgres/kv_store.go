package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/bau-portal/internal/application/ports"
)

// Asegura que KVStore implementa ports.KeyValueStore.
var _ ports.KeyValueStore = (*KVStore)(nil)

const kvSchema = `
	CREATE TABLE IF NOT EXISTS client_storage (
		namespace  TEXT        NOT NULL,
		key        TEXT        NOT NULL,
		value      TEXT        NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (namespace, key)
	)`

// KVStore almacenamiento duradero del cliente sobre PostgreSQL.
// namespace separa varios perfiles/usuarios que comparten la misma base.
type KVStore struct {
	pool      *pgxpool.Pool
	namespace string
}

// NewKVStore construye el adaptador y crea la tabla si no existe.
func NewKVStore(ctx context.Context, pool *pgxpool.Pool, namespace string) (*KVStore, error) {
	if _, err := pool.Exec(ctx, kvSchema); err != nil {
		return nil, fmt.Errorf("crear tabla client_storage: %w", err)
	}
	return &KVStore{pool: pool, namespace: namespace}, nil
}

// Get implementa ports.KeyValueStore.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM client_storage WHERE namespace = $1 AND key = $2`
	var v string
	err := s.pool.QueryRow(ctx, query, s.namespace, key).Scan(&v)
	if err != nil {
		if isNoRows(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return v, true, nil
}

// Set implementa ports.KeyValueStore (upsert).
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO client_storage (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := s.pool.Exec(ctx, query, s.namespace, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Remove implementa ports.KeyValueStore.
func (s *KVStore) Remove(ctx context.Context, key string) error {
	query := `DELETE FROM client_storage WHERE namespace = $1 AND key = $2`
	if _, err := s.pool.Exec(ctx, query, s.namespace, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
