package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStorage keeps each collection under a plain redis string key. Useful
// when several portal instances should see the same data set.
type RedisStorage struct {
	client *redis.Client
}

func NewRedisStorage(cfg RedisConfig) *RedisStorage {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &RedisStorage{client: client}
}

func (rs *RedisStorage) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := rs.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to load %s from redis: %w", key, err)
	}

	return data, nil
}

func (rs *RedisStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := rs.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s to redis: %w", key, err)
	}

	return nil
}

func (rs *RedisStorage) Delete(ctx context.Context, key string) error {
	if err := rs.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s from redis: %w", key, err)
	}

	return nil
}

func (rs *RedisStorage) Close() error {
	return rs.client.Close()
}
