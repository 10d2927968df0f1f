package repository

import (
	"context"
	"time"
)

// EntityCounts 是各实体表行数的快照。
type EntityCounts struct {
	Users       int64     `json:"users"`
	Posts       int64     `json:"posts"`
	Comments    int64     `json:"comments"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// StatsCache 缓存实体计数，由后台任务刷新，/system/status 读取。
type StatsCache interface {
	// GetEntityCounts 缓存未命中时返回 ErrNotFound。
	GetEntityCounts(ctx context.Context) (*EntityCounts, error)
	SetEntityCounts(ctx context.Context, counts EntityCounts, ttl time.Duration) error
}
