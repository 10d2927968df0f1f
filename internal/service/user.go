package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"team-project-api/internal/domain"
	"team-project-api/internal/repository"
)

// UserUpdateInput 是部分更新用户的输入，nil 字段保持不变
type UserUpdateInput struct {
	Username *string
	Email    *string
	Password *string
}

// UserService 负责用户的增删改查
type UserService struct {
	tx    repository.Transactor
	users repository.UserRepository
}

// NewUserService 创建 UserService 实例
func NewUserService(tx repository.Transactor, users repository.UserRepository) *UserService {
	if tx == nil || users == nil {
		panic("Transactor and UserRepository cannot be nil for UserService")
	}
	return &UserService{tx: tx, users: users}
}

// List 分页返回用户和总数
func (s *UserService) List(ctx context.Context, page domain.Page) ([]domain.User, int64, error) {
	logCtx := logrus.WithFields(logrus.Fields{"page": page.Number, "limit": page.Size})

	var users []domain.User
	var total int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		users, total, err = s.users.List(ctx, page)
		return err
	})
	if err != nil {
		return nil, 0, mapRepoError(err, logCtx)
	}
	return users, total, nil
}

// Get 根据 ID 返回用户
func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	logCtx := logrus.WithField("user_id", id)

	var user *domain.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.users.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, mapRepoError(err, logCtx)
	}
	return user, nil
}

// Create 校验输入、哈希密码并创建用户
func (s *UserService) Create(ctx context.Context, username, email, password string) (*domain.User, error) {
	logCtx := logrus.WithFields(logrus.Fields{"username": username, "email": email})

	// 1. 校验
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	// 2. 哈希密码
	hashed, err := hashPassword(password)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during user creation")
		return nil, ErrInternalServer
	}

	// 3. 保存，唯一约束冲突由存储层报告
	user := &domain.User{Username: username, Email: email, PasswordHash: hashed}
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.users.Create(ctx, user)
	})
	if err != nil {
		mapped := mapRepoError(err, logCtx)
		if mapped == ErrDuplicateUser {
			logCtx.Warn("User creation rejected: username or email already exists")
		}
		return nil, mapped
	}

	logCtx.WithField("user_id", user.ID).Info("User created successfully")
	return user, nil
}

// Update 部分更新用户；提供了密码时重新哈希
func (s *UserService) Update(ctx context.Context, id uint, input UserUpdateInput) (*domain.User, error) {
	logCtx := logrus.WithField("user_id", id)

	// 1. 校验
	update := domain.UserUpdate{}
	if input.Username != nil {
		if err := validateUsername(*input.Username); err != nil {
			return nil, err
		}
		update.Username = input.Username
	}
	if input.Email != nil {
		if err := validateEmail(*input.Email); err != nil {
			return nil, err
		}
		update.Email = input.Email
	}
	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return nil, err
		}
		hashed, err := hashPassword(*input.Password)
		if err != nil {
			logCtx.WithError(err).Error("Failed to hash password during user update")
			return nil, ErrInternalServer
		}
		update.PasswordHash = &hashed
	}
	if update.IsEmpty() {
		return nil, invalidf("at least one field must be provided")
	}

	// 2. 更新
	var user *domain.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.users.Update(ctx, id, update)
		return err
	})
	if err != nil {
		return nil, mapRepoError(err, logCtx)
	}

	logCtx.Info("User updated successfully")
	return user, nil
}

// Delete 删除用户及其全部帖子和评论
func (s *UserService) Delete(ctx context.Context, id uint) error {
	logCtx := logrus.WithField("user_id", id)

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.users.Delete(ctx, id)
	})
	if err != nil {
		return mapRepoError(err, logCtx)
	}

	logCtx.Info("User deleted with posts and comments")
	return nil
}

// --- 私有辅助函数 ---

// hashPassword 使用 bcrypt 对密码进行哈希处理
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash from password: %w", err)
	}
	return string(bytes), nil
}

// checkPassword 验证提供的密码是否与存储的哈希匹配
func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
