package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"team-project-api/internal/domain"
	"team-project-api/internal/repository"
)

// GormPostRepository 是 PostRepository 接口的 GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository 创建 GormPostRepository 实例
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	if db == nil {
		panic("database connection cannot be nil for GormPostRepository")
	}
	return &GormPostRepository{db: db}
}

// List 分页查询帖子，按 ID 升序；userID 非零时只查该用户的帖子
func (r *GormPostRepository) List(ctx context.Context, userID uint, page domain.Page) ([]domain.Post, int64, error) {
	query := conn(ctx, r.db).Model(&domain.Post{})
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	query = query.Session(&gorm.Session{}) // Count 和 Find 共用条件

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(fmt.Errorf("gorm: count posts (user %d): %w", userID, err))
	}

	posts := make([]domain.Post, 0, page.Size)
	err := query.Order("id ASC").Limit(page.Size).Offset(page.Offset()).Find(&posts).Error
	if err != nil {
		return nil, 0, translateError(fmt.Errorf("gorm: list posts (user %d): %w", userID, err))
	}
	return posts, total, nil
}

func (r *GormPostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	var post domain.Post
	err := conn(ctx, r.db).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}
		return nil, translateError(fmt.Errorf("gorm: find post by id %d: %w", id, err))
	}
	return &post, nil
}

// Create 确认作者存在后插入帖子
func (r *GormPostRepository) Create(ctx context.Context, post *domain.Post) error {
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &domain.User{}, post.UserID, repository.ErrUserNotFound); err != nil {
			return err
		}
		return tx.Create(post).Error
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return translateError(fmt.Errorf("gorm: create post (user %d): %w", post.UserID, err))
	}
	return nil
}

// Update 部分更新帖子并刷新 updated_at
func (r *GormPostRepository) Update(ctx context.Context, id uint, update domain.PostUpdate) (*domain.Post, error) {
	var updated domain.Post
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var existing domain.Post
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrPostNotFound
			}
			return err
		}

		values := map[string]interface{}{
			"updated_at": refreshedAt(existing.CreatedAt, existing.UpdatedAt),
		}
		if update.Title != nil {
			values["title"] = *update.Title
		}
		if update.Content != nil {
			values["content"] = *update.Content
		}

		if err := tx.Model(&domain.Post{}).Where("id = ?", id).Updates(values).Error; err != nil {
			return err
		}
		return tx.First(&updated, id).Error
	})
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, err
		}
		return nil, translateError(fmt.Errorf("gorm: update post %d: %w", id, err))
	}
	return &updated, nil
}

// Delete 在一个事务中删除帖子及其评论
func (r *GormPostRepository) Delete(ctx context.Context, id uint) error {
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &domain.Post{}, id, repository.ErrPostNotFound); err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Post{}, id).Error
	})
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return err
		}
		return translateError(fmt.Errorf("gorm: delete post %d: %w", id, err))
	}
	return nil
}

func (r *GormPostRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&domain.Post{}).Count(&count).Error; err != nil {
		return 0, translateError(fmt.Errorf("gorm: count posts: %w", err))
	}
	return count, nil
}

// ensureExists 检查主键为 id 的记录是否存在，不存在时返回 notFound
func ensureExists(tx *gorm.DB, model interface{}, id uint, notFound error) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound
	}
	return nil
}
