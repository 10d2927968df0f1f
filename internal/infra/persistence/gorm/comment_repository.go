package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"team-project-api/internal/domain"
	"team-project-api/internal/repository"
)

// GormCommentRepository 是 CommentRepository 接口的 GORM 实现
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository 创建 GormCommentRepository 实例
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	if db == nil {
		panic("database connection cannot be nil for GormCommentRepository")
	}
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) ListByPost(ctx context.Context, postID uint, page domain.Page) ([]domain.Comment, int64, error) {
	query := conn(ctx, r.db).Model(&domain.Comment{}).Where("post_id = ?", postID).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(fmt.Errorf("gorm: count comments (post %d): %w", postID, err))
	}

	comments := make([]domain.Comment, 0, page.Size)
	err := query.Order("id ASC").Limit(page.Size).Offset(page.Offset()).Find(&comments).Error
	if err != nil {
		return nil, 0, translateError(fmt.Errorf("gorm: list comments (post %d): %w", postID, err))
	}
	return comments, total, nil
}

func (r *GormCommentRepository) FindByID(ctx context.Context, id uint) (*domain.Comment, error) {
	var comment domain.Comment
	err := conn(ctx, r.db).First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCommentNotFound
		}
		return nil, translateError(fmt.Errorf("gorm: find comment by id %d: %w", id, err))
	}
	return &comment, nil
}

// Create 确认帖子和作者都存在后插入评论
func (r *GormCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &domain.Post{}, comment.PostID, repository.ErrPostNotFound); err != nil {
			return err
		}
		if err := ensureExists(tx, &domain.User{}, comment.UserID, repository.ErrUserNotFound); err != nil {
			return err
		}
		return tx.Create(comment).Error
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return err
		}
		return translateError(fmt.Errorf("gorm: create comment (post %d, user %d): %w", comment.PostID, comment.UserID, err))
	}
	return nil
}

// UpdateContent 修改评论内容，评论没有 updated_at
func (r *GormCommentRepository) UpdateContent(ctx context.Context, id uint, content string) (*domain.Comment, error) {
	var updated domain.Comment
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists(tx, &domain.Comment{}, id, repository.ErrCommentNotFound); err != nil {
			return err
		}
		if err := tx.Model(&domain.Comment{}).Where("id = ?", id).Update("content", content).Error; err != nil {
			return err
		}
		return tx.First(&updated, id).Error
	})
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, err
		}
		return nil, translateError(fmt.Errorf("gorm: update comment %d: %w", id, err))
	}
	return &updated, nil
}

func (r *GormCommentRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&domain.Comment{}, id)
	if result.Error != nil {
		return translateError(fmt.Errorf("gorm: delete comment %d: %w", id, result.Error))
	}
	if result.RowsAffected == 0 {
		return repository.ErrCommentNotFound
	}
	return nil
}

func (r *GormCommentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&domain.Comment{}).Count(&count).Error; err != nil {
		return 0, translateError(fmt.Errorf("gorm: count comments: %w", err))
	}
	return count, nil
}
