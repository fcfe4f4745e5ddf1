package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/bau-portal/internal/application/ports"
)

var _ ports.KeyValueStore = (*RedisStore)(nil)

// RedisStore almacenamiento sobre Redis. Las claves llevan un prefijo para
// compartir la base entre varios clientes.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore parsea la URL y verifica la conexión con PING.
func NewRedisStore(ctx context.Context, redisURL, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsear URL de Redis: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}
	return &RedisStore{client: client, prefix: prefix}, nil
}

// Close cierra el cliente.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// Get implementa ports.KeyValueStore.
func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("leer clave %s: %w", key, err)
	}
	return v, true, nil
}

// Set implementa ports.KeyValueStore. Sin expiración: el token caduca en el backend.
func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("guardar clave %s: %w", key, err)
	}
	return nil
}

// Remove implementa ports.KeyValueStore.
func (r *RedisStore) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("borrar clave %s: %w", key, err)
	}
	return nil
}
