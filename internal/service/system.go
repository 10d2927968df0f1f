package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"team-project-api/internal/repository"
)

// StatsTTL 是缓存计数的有效期，刷新间隔应小于它
const StatsTTL = 10 * time.Minute

// SystemService 提供运行时间和实体计数
type SystemService struct {
	startedAt time.Time
	cache     repository.StatsCache // 可为 nil，表示未启用 Redis

	tx       repository.Transactor
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
}

// NewSystemService 创建 SystemService。cache 为 nil 时 EntityCounts 总是返回 false。
func NewSystemService(startedAt time.Time, cache repository.StatsCache, tx repository.Transactor,
	users repository.UserRepository, posts repository.PostRepository, comments repository.CommentRepository) *SystemService {
	if tx == nil || users == nil || posts == nil || comments == nil {
		panic("Transactor and repositories cannot be nil for SystemService")
	}
	return &SystemService{startedAt: startedAt, cache: cache, tx: tx, users: users, posts: posts, comments: comments}
}

// Uptime 返回进程启动至今的时长
func (s *SystemService) Uptime() time.Duration {
	return time.Since(s.startedAt)
}

// EntityCounts 读取缓存的实体计数，缓存未启用、未命中或出错时返回 false
func (s *SystemService) EntityCounts(ctx context.Context) (*repository.EntityCounts, bool) {
	if s.cache == nil {
		return nil, false
	}
	counts, err := s.cache.GetEntityCounts(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logrus.WithError(err).Warn("Failed to read cached entity counts")
		}
		return nil, false
	}
	return counts, true
}

// RefreshEntityCounts 在一个会话中统计三张表并写入缓存
func (s *SystemService) RefreshEntityCounts(ctx context.Context) (*repository.EntityCounts, error) {
	logCtx := logrus.WithField("task", "stats_refresh")

	counts := repository.EntityCounts{}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if counts.Users, err = s.users.Count(ctx); err != nil {
			return err
		}
		if counts.Posts, err = s.posts.Count(ctx); err != nil {
			return err
		}
		counts.Comments, err = s.comments.Count(ctx)
		return err
	})
	if err != nil {
		return nil, mapRepoError(err, logCtx)
	}
	counts.RefreshedAt = time.Now().UTC()

	if s.cache != nil {
		if err := s.cache.SetEntityCounts(ctx, counts, StatsTTL); err != nil {
			logCtx.WithError(err).Error("Failed to store entity counts")
			return nil, err
		}
	}
	logCtx.WithFields(logrus.Fields{
		"users": counts.Users, "posts": counts.Posts, "comments": counts.Comments,
	}).Debug("Entity counts refreshed")
	return &counts, nil
}
