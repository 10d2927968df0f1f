package service

import (
	"errors"

	"github.com/sirupsen/logrus"

	"team-project-api/internal/repository"
)

var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrUserNotFound         = errors.New("user not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrDuplicateUser        = errors.New("username or email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrServiceUnavailable   = errors.New("service temporarily unavailable")
	ErrInternalServer       = errors.New("internal server error")
)

// mapRepoError 把仓库层错误映射为服务层错误。
// 无法识别的错误记录日志后统一返回 ErrInternalServer，原始错误不会透出到客户端。
func mapRepoError(err error, logCtx *logrus.Entry) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrPostNotFound):
		return ErrPostNotFound
	case errors.Is(err, repository.ErrCommentNotFound):
		return ErrCommentNotFound
	case errors.Is(err, repository.ErrDuplicateEntry):
		return ErrDuplicateUser
	case errors.Is(err, repository.ErrStoreUnavailable):
		logCtx.WithError(err).Error("Store unavailable")
		return ErrServiceUnavailable
	}
	// 服务层自身的错误（校验失败等）原样返回
	if isServiceError(err) {
		return err
	}
	logCtx.WithError(err).Error("Unexpected repository error")
	return ErrInternalServer
}

func isServiceError(err error) bool {
	for _, target := range []error{
		ErrInvalidInput, ErrUserNotFound, ErrPostNotFound, ErrCommentNotFound,
		ErrDuplicateUser, ErrAuthenticationFailed, ErrServiceUnavailable, ErrInternalServer,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
