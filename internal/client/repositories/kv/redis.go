package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps every key in a single Redis hash so that List and
// Clear do not need to scan the keyspace.
type RedisRepository struct {
	rdb  redis.UniversalClient
	hash string
}

const DefaultRedisHash = "pgdesk:kv"

func NewRedisRepository(rdb redis.UniversalClient, hash string) *RedisRepository {
	if hash == "" {
		hash = DefaultRedisHash
	}
	return &RedisRepository{rdb: rdb, hash: hash}
}

func (r *RedisRepository) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.rdb.HGet(ctx, r.hash, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get kv[%s]: %w", key, err)
	}
	return v, true, nil
}

func (r *RedisRepository) Set(ctx context.Context, key string, value string) error {
	if err := r.rdb.HSet(ctx, r.hash, key, value).Err(); err != nil {
		return fmt.Errorf("failed to set kv[%s]: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	if err := r.rdb.HDel(ctx, r.hash, key).Err(); err != nil {
		return fmt.Errorf("failed to delete kv[%s]: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) List(ctx context.Context) (map[string]string, error) {
	m, err := r.rdb.HGetAll(ctx, r.hash).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list kv: %w", err)
	}
	return m, nil
}

func (r *RedisRepository) Clear(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.hash).Err(); err != nil {
		return fmt.Errorf("failed to clear kv: %w", err)
	}
	return nil
}

// SetMany writes all items inside MULTI/EXEC.
func (r *RedisRepository) SetMany(ctx context.Context, items map[string]string) error {
	if len(items) == 0 {
		return nil
	}
	values := make([]any, 0, len(items)*2)
	for k, v := range items {
		values = append(values, k, v)
	}
	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, r.hash, values...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set kv batch: %w", err)
	}
	return nil
}

func (r *RedisRepository) DeleteMany(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HDel(ctx, r.hash, keys...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete kv batch: %w", err)
	}
	return nil
}

func (r *RedisRepository) Close() error {
	return r.rdb.Close()
}
