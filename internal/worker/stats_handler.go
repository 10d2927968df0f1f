package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"team-project-api/internal/repository"
	"team-project-api/internal/tasks"
)

// StatsRefresher 统计实体数量并写入缓存，由 service.SystemService 实现
type StatsRefresher interface {
	RefreshEntityCounts(ctx context.Context) (*repository.EntityCounts, error)
}

// StatsRefreshHandler 处理周期性的实体计数刷新任务
type StatsRefreshHandler struct {
	refresher StatsRefresher
}

// NewStatsRefreshHandler 创建 Handler 实例
func NewStatsRefreshHandler(refresher StatsRefresher) *StatsRefreshHandler {
	if refresher == nil {
		panic("StatsRefresher cannot be nil for StatsRefreshHandler")
	}
	return &StatsRefreshHandler{refresher: refresher}
}

// ProcessTask 实现 asynq.Handler 接口。
// 失败不重试，下一个周期会再次刷新。
func (h *StatsRefreshHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	taskID, _ := asynq.GetTaskID(ctx)
	logCtx := logrus.WithFields(logrus.Fields{
		"task_id":   taskID,
		"task_type": t.Type(),
	})

	var payload tasks.StatsRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logCtx.WithError(err).Error("Failed to unmarshal task payload")
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.EnqueuedAt != nil {
		logCtx = logCtx.WithField("queue_delay_ms", time.Since(*payload.EnqueuedAt).Milliseconds())
	}

	counts, err := h.refresher.RefreshEntityCounts(ctx)
	if err != nil {
		logCtx.WithError(err).Warn("Stats refresh failed")
		return fmt.Errorf("refresh entity counts: %v: %w", err, asynq.SkipRetry)
	}

	logCtx.WithFields(logrus.Fields{
		"users":    counts.Users,
		"posts":    counts.Posts,
		"comments": counts.Comments,
	}).Info("Entity counts refreshed")
	return nil
}
