package repository

import (
	"context"

	"team-project-api/internal/domain"
)

// CommentRepository 定义了评论数据的存储和检索操作。
type CommentRepository interface {
	// ListByPost 分页返回某个帖子下的评论。
	ListByPost(ctx context.Context, postID uint, page domain.Page) ([]domain.Comment, int64, error)

	FindByID(ctx context.Context, id uint) (*domain.Comment, error)

	// Create 插入新评论。帖子或作者不存在时返回 ErrNotFound。
	Create(ctx context.Context, comment *domain.Comment) error

	UpdateContent(ctx context.Context, id uint, content string) (*domain.Comment, error)

	Delete(ctx context.Context, id uint) error

	Count(ctx context.Context) (int64, error)
}
