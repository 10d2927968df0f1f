package repository

import (
	"context"

	"team-project-api/internal/domain"
)

// UserRepository 定义了用户数据的存储和检索操作。
type UserRepository interface {
	// List 按 ID 升序分页返回用户，以及用户总数。
	List(ctx context.Context, page domain.Page) ([]domain.User, int64, error)

	// FindByID 根据用户 ID 查找用户。
	// 如果用户不存在，返回 ErrUserNotFound。
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// FindByUsername 根据用户名查找用户。
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// Create 插入新用户，回填 ID 和时间戳。
	// 用户名或邮箱冲突时返回 ErrDuplicateEntry。
	Create(ctx context.Context, user *domain.User) error

	// Update 应用部分更新并刷新 UpdatedAt，返回更新后的用户。
	Update(ctx context.Context, id uint, update domain.UserUpdate) (*domain.User, error)

	// Delete 删除用户及其所有帖子和评论。
	Delete(ctx context.Context, id uint) error

	// Count 返回用户总数。
	Count(ctx context.Context) (int64, error)
}
