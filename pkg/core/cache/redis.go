package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisPrefix = "proforma:stage"

// RedisStore keeps stage results in Redis, letting multiple API
// instances share one cache.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStore{client: rdb}
}

func redisKey(stage Stage, key string) string {
	return fmt.Sprintf("%s:%s:%s", redisPrefix, stage, key)
}

func (r *RedisStore) Get(ctx context.Context, stage Stage, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, redisKey(stage, key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}
	return val, true, nil
}

func (r *RedisStore) Set(ctx context.Context, stage Stage, key string, value []byte) error {
	if err := r.client.Set(ctx, redisKey(stage, key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// DropStage scans for every key under the stage prefix and deletes them.
func (r *RedisStore) DropStage(ctx context.Context, stage Stage) error {
	pattern := fmt.Sprintf("%s:%s:*", redisPrefix, stage)
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("redis del failed: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan failed: %w", err)
	}
	return nil
}
