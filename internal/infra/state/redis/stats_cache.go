package redisstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"team-project-api/internal/repository"
)

// RedisStatsCache 用 Redis 实现 StatsCache 和 RateLimiter
type RedisStatsCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStatsCache 创建 RedisStatsCache 实例
func NewRedisStatsCache(client *redis.Client, keyPrefix string) *RedisStatsCache {
	if client == nil {
		panic("redis client cannot be nil for RedisStatsCache")
	}
	if keyPrefix == "" {
		keyPrefix = "tpa:" // 默认前缀 (team-project-api)
	}
	return &RedisStatsCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// --- Key Generation Helpers ---
func (r *RedisStatsCache) entityCountsKey() string {
	return r.keyPrefix + "stats:entity_counts"
}

func (r *RedisStatsCache) rateLimitKey(key string) string {
	return r.keyPrefix + "ratelimit:" + key
}

// GetEntityCounts 读取缓存的实体计数，未命中时返回 repository.ErrNotFound
func (r *RedisStatsCache) GetEntityCounts(ctx context.Context) (*repository.EntityCounts, error) {
	key := r.entityCountsKey()
	raw, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("redis: failed to get entity counts from %s: %w", key, err)
	}
	var counts repository.EntityCounts
	if err := json.Unmarshal([]byte(raw), &counts); err != nil {
		return nil, fmt.Errorf("redis: failed to unmarshal entity counts from %s: %w", key, err)
	}
	return &counts, nil
}

// SetEntityCounts 写入实体计数，ttl 为 0 表示永不过期
func (r *RedisStatsCache) SetEntityCounts(ctx context.Context, counts repository.EntityCounts, ttl time.Duration) error {
	key := r.entityCountsKey()
	payload, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("redis: failed to marshal entity counts: %w", err)
	}
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis: failed to set entity counts on key %s: %w", key, err)
	}
	return nil
}

// CheckRateLimit 检查给定 key 的请求频率是否超限，并递增计数。
// 只在 key 没有过期时间时设置窗口，持续请求不会无限延长窗口。
func (r *RedisStatsCache) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	fullKey := r.rateLimitKey(key)
	pipe := r.client.Pipeline()
	incrCmd := pipe.Incr(ctx, fullKey)
	ttlCmd := pipe.TTL(ctx, fullKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis: pipeline failed for rate limit check on key %s: %w", fullKey, err)
	}
	if ttlCmd.Val() < 0 {
		if err := r.client.Expire(ctx, fullKey, window).Err(); err != nil {
			return false, fmt.Errorf("redis: failed to set rate limit window on key %s: %w", fullKey, err)
		}
	}
	return incrCmd.Val() > int64(limit), nil
}
