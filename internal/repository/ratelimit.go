package repository

import (
	"context"
	"time"
)

// RateLimiter 维护按 key 计数的固定窗口限流器。
type RateLimiter interface {
	// CheckRateLimit 递增 key 的计数，超过 limit 时返回 true。
	CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
