package repository

import (
	"context"

	"team-project-api/internal/domain"
)

// PostRepository 定义了帖子数据的存储和检索操作。
type PostRepository interface {
	// List 分页返回帖子；userID 为 0 时返回全部用户的帖子。
	List(ctx context.Context, userID uint, page domain.Page) ([]domain.Post, int64, error)

	FindByID(ctx context.Context, id uint) (*domain.Post, error)

	// Create 插入新帖子。所属用户不存在时返回 ErrUserNotFound。
	Create(ctx context.Context, post *domain.Post) error

	Update(ctx context.Context, id uint, update domain.PostUpdate) (*domain.Post, error)

	// Delete 删除帖子及其评论。
	Delete(ctx context.Context, id uint) error

	Count(ctx context.Context) (int64, error)
}
