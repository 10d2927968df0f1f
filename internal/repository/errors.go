package repository

import (
	"errors"
	"fmt"
)

// 通用的存储库错误
var (
	// ErrNotFound 表示请求的记录未找到
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry 表示尝试插入或更新的数据违反了唯一约束
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
	// ErrStoreUnavailable 表示无法获取数据库连接或连接已断开
	ErrStoreUnavailable = errors.New("repository: store unavailable")
)

// 特定资源的错误，errors.Is(err, ErrNotFound) 对它们同样成立
var (
	ErrUserNotFound    = fmt.Errorf("user: %w", ErrNotFound)
	ErrPostNotFound    = fmt.Errorf("post: %w", ErrNotFound)
	ErrCommentNotFound = fmt.Errorf("comment: %w", ErrNotFound)
)
