package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"team-project-api/internal/domain"
	"team-project-api/internal/repository"
)

// GormUserRepository 是 UserRepository 接口的 GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository 创建 GormUserRepository 实例
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	if db == nil {
		panic("database connection cannot be nil for GormUserRepository")
	}
	return &GormUserRepository{db: db}
}

// List 分页查询用户
func (r *GormUserRepository) List(ctx context.Context, page domain.Page) ([]domain.User, int64, error) {
	db := conn(ctx, r.db)

	var total int64
	if err := db.Model(&domain.User{}).Count(&total).Error; err != nil {
		return nil, 0, translateError(fmt.Errorf("gorm: count users: %w", err))
	}

	users := make([]domain.User, 0, page.Size)
	err := db.Order("id ASC").Limit(page.Size).Offset(page.Offset()).Find(&users).Error
	if err != nil {
		return nil, 0, translateError(fmt.Errorf("gorm: list users: %w", err))
	}
	return users, total, nil
}

// FindByID 实现根据用户 ID 查找用户
func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := conn(ctx, r.db).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, translateError(fmt.Errorf("gorm: find user by id %d: %w", id, err))
	}
	return &user, nil
}

// FindByUsername 实现根据用户名查找用户
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := conn(ctx, r.db).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, translateError(fmt.Errorf("gorm: find user by username '%s': %w", username, err))
	}
	return &user, nil
}

// Create 插入新用户，ID 和时间戳由 GORM 回填
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := conn(ctx, r.db).Create(user).Error; err != nil {
		return translateError(fmt.Errorf("gorm: create user (username: %s): %w", user.Username, err))
	}
	return nil
}

// Update 部分更新用户并刷新 updated_at
func (r *GormUserRepository) Update(ctx context.Context, id uint, update domain.UserUpdate) (*domain.User, error) {
	var updated domain.User
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var existing domain.User
		if err := tx.First(&existing, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrUserNotFound
			}
			return err
		}

		values := map[string]interface{}{
			"updated_at": refreshedAt(existing.CreatedAt, existing.UpdatedAt),
		}
		if update.Username != nil {
			values["username"] = *update.Username
		}
		if update.Email != nil {
			values["email"] = *update.Email
		}
		if update.PasswordHash != nil {
			values["password_hash"] = *update.PasswordHash
		}

		if err := tx.Model(&domain.User{}).Where("id = ?", id).Updates(values).Error; err != nil {
			return err
		}
		return tx.First(&updated, id).Error
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
		return nil, translateError(fmt.Errorf("gorm: update user %d: %w", id, err))
	}
	return &updated, nil
}

// Delete 在一个事务中删除用户、其帖子下的全部评论、其发表的评论和帖子
func (r *GormUserRepository) Delete(ctx context.Context, id uint) error {
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var user domain.User
		if err := tx.Select("id").First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrUserNotFound
			}
			return err
		}

		var postIDs []uint
		if err := tx.Model(&domain.Post{}).Where("user_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&domain.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&domain.Post{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.User{}, id).Error
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return err
		}
		return translateError(fmt.Errorf("gorm: delete user %d: %w", id, err))
	}
	return nil
}

func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&domain.User{}).Count(&count).Error; err != nil {
		return 0, translateError(fmt.Errorf("gorm: count users: %w", err))
	}
	return count, nil
}

// refreshedAt 返回新的 updated_at，保证不早于 created_at 和上一次的 updated_at
func refreshedAt(createdAt, previous time.Time) time.Time {
	now := time.Now()
	if now.Before(previous) {
		now = previous
	}
	if now.Before(createdAt) {
		now = createdAt
	}
	return now
}
