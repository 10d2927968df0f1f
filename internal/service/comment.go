package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"team-project-api/internal/domain"
	"team-project-api/internal/repository"
)

// CommentService 负责评论的增删改查
type CommentService struct {
	tx       repository.Transactor
	comments repository.CommentRepository
	posts    repository.PostRepository
}

// NewCommentService 创建 CommentService 实例
func NewCommentService(tx repository.Transactor, comments repository.CommentRepository, posts repository.PostRepository) *CommentService {
	if tx == nil || comments == nil || posts == nil {
		panic("Transactor, CommentRepository and PostRepository cannot be nil for CommentService")
	}
	return &CommentService{tx: tx, comments: comments, posts: posts}
}

// ListByPost 分页返回帖子下的评论，帖子不存在时返回 ErrPostNotFound
func (s *CommentService) ListByPost(ctx context.Context, postID uint, page domain.Page) ([]domain.Comment, int64, error) {
	logCtx := logrus.WithFields(logrus.Fields{"post_id": postID, "page": page.Number, "limit": page.Size})

	var comments []domain.Comment
	var total int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.posts.FindByID(ctx, postID); err != nil {
			return err
		}
		var err error
		comments, total, err = s.comments.ListByPost(ctx, postID, page)
		return err
	})
	if err != nil {
		return nil, 0, mapRepoError(err, logCtx)
	}
	return comments, total, nil
}

func (s *CommentService) Get(ctx context.Context, id uint) (*domain.Comment, error) {
	logCtx := logrus.WithField("comment_id", id)

	var comment *domain.Comment
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		comment, err = s.comments.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, mapRepoError(err, logCtx)
	}
	return comment, nil
}

// Create 在帖子下创建评论，帖子和作者都必须存在
func (s *CommentService) Create(ctx context.Context, postID, userID uint, content string) (*domain.Comment, error) {
	logCtx := logrus.WithFields(logrus.Fields{"post_id": postID, "user_id": userID})

	if err := validateID("post_id", postID); err != nil {
		return nil, err
	}
	if err := validateID("user_id", userID); err != nil {
		return nil, err
	}
	if err := validateContent("content", content); err != nil {
		return nil, err
	}

	comment := &domain.Comment{Content: content, PostID: postID, UserID: userID}
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.comments.Create(ctx, comment)
	})
	if err != nil {
		return nil, mapRepoError(err, logCtx)
	}

	logCtx.WithField("comment_id", comment.ID).Info("Comment created successfully")
	return comment, nil
}

// Update 修改评论内容
func (s *CommentService) Update(ctx context.Context, id uint, content string) (*domain.Comment, error) {
	logCtx := logrus.WithField("comment_id", id)

	if err := validateContent("content", content); err != nil {
		return nil, err
	}

	var comment *domain.Comment
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		comment, err = s.comments.UpdateContent(ctx, id, content)
		return err
	})
	if err != nil {
		return nil, mapRepoError(err, logCtx)
	}

	logCtx.Info("Comment updated successfully")
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, id uint) error {
	logCtx := logrus.WithField("comment_id", id)

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return s.comments.Delete(ctx, id)
	})
	if err != nil {
		return mapRepoError(err, logCtx)
	}

	logCtx.Info("Comment deleted")
	return nil
}
