package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// 定义任务类型常量
const (
	TypeStatsRefresh = "stats:refresh" // 刷新缓存的实体计数
)

// StatsRefreshPayload 是刷新任务的负载。
// EnqueuedAt 只在一次性入队时设置；注册给 Scheduler 的任务每次复用同一负载，不带时间。
type StatsRefreshPayload struct {
	EnqueuedAt *time.Time `json:"enqueued_at,omitempty"`
}

// NewStatsRefreshTask 创建供 Scheduler 周期入队的刷新任务
func NewStatsRefreshTask() (*asynq.Task, error) {
	return newStatsRefreshTask(StatsRefreshPayload{})
}

// NewStatsRefreshTaskAt 创建一次性入队的刷新任务，记录入队时间用于观测排队延迟
func NewStatsRefreshTaskAt(enqueuedAt time.Time) (*asynq.Task, error) {
	at := enqueuedAt.UTC()
	return newStatsRefreshTask(StatsRefreshPayload{EnqueuedAt: &at})
}

// 同一时间只允许一个同类任务排队，过期的刷新没有意义
func newStatsRefreshTask(p StatsRefreshPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeStatsRefresh, payload,
		asynq.Queue("low"),
		asynq.MaxRetry(0),
		asynq.Timeout(30*time.Second),
		asynq.Unique(time.Minute),
	), nil
}
