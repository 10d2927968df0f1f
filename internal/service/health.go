package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"team-project-api/internal/repository"
)

// ErrSchemaNotReady 表示数据库可达但启动迁移尚未完成
var ErrSchemaNotReady = errors.New("database schema not initialized")

// DBHealth 是一次数据库探测的结果。Err 可能包含驱动细节，只用于日志。
// Status 是可以返回给客户端的固定描述。
type DBHealth struct {
	Connected bool
	Latency   time.Duration
	Err       error
}

// Status 返回不含连接细节的故障描述
func (h DBHealth) Status() string {
	switch {
	case h.Connected:
		return "connected"
	case errors.Is(h.Err, ErrSchemaNotReady):
		return "database schema not initialized"
	default:
		return "database unreachable"
	}
}

// HealthService 探测存储可用性
type HealthService struct {
	repo    repository.HealthRepository
	timeout time.Duration
	ready   func() bool // 为 nil 时视为表结构已就绪
}

// NewHealthService 创建 HealthService，timeout 限制单次探测时长
func NewHealthService(repo repository.HealthRepository, timeout time.Duration) *HealthService {
	if repo == nil {
		panic("HealthRepository cannot be nil for HealthService")
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &HealthService{repo: repo, timeout: timeout}
}

// WithReadiness 设置表结构就绪检查，未就绪时 CheckDatabase 报告不可用
func (s *HealthService) WithReadiness(ready func() bool) *HealthService {
	s.ready = ready
	return s
}

// CheckDatabase 执行一次 SELECT 1 往返并计时。探测失败不作为错误返回，而是体现在结果中。
func (s *HealthService) CheckDatabase(ctx context.Context) DBHealth {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := s.repo.Ping(ctx)
	latency := time.Since(start)
	if err != nil {
		logrus.WithError(err).Error("Database health check failed")
		return DBHealth{Connected: false, Latency: latency, Err: err}
	}
	if s.ready != nil && !s.ready() {
		logrus.Warn("Database reachable but schema not initialized yet")
		return DBHealth{Connected: false, Latency: latency, Err: ErrSchemaNotReady}
	}
	return DBHealth{Connected: true, Latency: latency}
}
