package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"team-project-api/internal/domain"
	"team-project-api/internal/repository"
)

// PostService 负责帖子的增删改查
type PostService struct {
	tx    repository.Transactor
	posts repository.PostRepository
	users repository.UserRepository
}

// NewPostService 创建 PostService 实例
func NewPostService(tx repository.Transactor, posts repository.PostRepository, users repository.UserRepository) *PostService {
	if tx == nil || posts == nil || users == nil {
		panic("Transactor, PostRepository and UserRepository cannot be nil for PostService")
	}
	return &PostService{tx: tx, posts: posts, users: users}
}

// List 分页返回全部帖子
func (s *PostService) List(ctx context.Context, page domain.Page) ([]domain.Post, int64, error) {
	return s.list(ctx, 0, page)
}

// ListByUser 分页返回某个用户的帖子，用户不存在时返回 ErrUserNotFound
func (s *PostService) ListByUser(ctx context.Context, userID uint, page domain.Page) ([]domain.Post, int64, error) {
	if err := validateID("user_id", userID); err != nil {
		return nil, 0, err
	}
	return s.list(ctx, userID, page)
}

func (s *PostService) list(ctx context.Context, userID uint, page domain.Page) ([]domain.Post, int64, error) {
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "page": page.Number, "limit": page.Size})

	var posts []domain.Post
	var total int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if userID != 0 {
			if _, err := s.users.FindByID(ctx, userID); err != nil {
				return err
			}
		}
		var err error
		posts, total, err = s.posts.List(ctx, userID, page)
		return err
	})
	if err != nil {
		return nil, 0, mapRepoError(err, logCtx)
	}
	return posts, total, nil
}

// Get 根据 ID 返回帖子
func (s *PostService) Get(ctx context.Context, id uint) (*domain.Post, error) {
	logCtx := logrus.WithField("post_id", id)

	var post *domain.Post
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		post, err = s.posts.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, mapRepoError(err, logCtx)
	}
	return post, nil
}

// Create 为指定用户创建帖子
func (s *PostService) Create(ctx context.Context, userID uint, title, content string) (*domain.Post, error) {
	logCtx := logrus.WithField("user_id", userID)

	// 1. 校验
	if err := validateID("user_id", userID); err != nil {
		return nil, err
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateContent("content", content); err != nil {
		return nil, err
	}

	// 2. 保存，作者不存在时仓库返回 ErrUserNotFound
	post := &domain.Post{Title: title, Content: content, UserID: userID}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.posts.Create(ctx, post)
	})
	if err != nil {
		return nil, mapRepoError(err, logCtx)
	}

	logCtx.WithField("post_id", post.ID).Info("Post created successfully")
	return post, nil
}

// Update 部分更新帖子
func (s *PostService) Update(ctx context.Context, id uint, update domain.PostUpdate) (*domain.Post, error) {
	logCtx := logrus.WithField("post_id", id)

	if update.IsEmpty() {
		return nil, invalidf("at least one field must be provided")
	}
	if update.Title != nil {
		if err := validateTitle(*update.Title); err != nil {
			return nil, err
		}
	}
	if update.Content != nil {
		if err := validateContent("content", *update.Content); err != nil {
			return nil, err
		}
	}

	var post *domain.Post
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		post, err = s.posts.Update(ctx, id, update)
		return err
	})
	if err != nil {
		return nil, mapRepoError(err, logCtx)
	}

	logCtx.Info("Post updated successfully")
	return post, nil
}

// Delete 删除帖子及其评论
func (s *PostService) Delete(ctx context.Context, id uint) error {
	logCtx := logrus.WithField("post_id", id)

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.posts.Delete(ctx, id)
	})
	if err != nil {
		return mapRepoError(err, logCtx)
	}

	logCtx.Info("Post deleted with comments")
	return nil
}
