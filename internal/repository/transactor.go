package repository

import "context"

// Transactor 为一次请求提供独占的数据库会话。
// fn 返回 nil 时提交，返回错误或 panic 时回滚；会话在返回前释放。
// 无法获取连接时返回 ErrStoreUnavailable。
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// HealthRepository 对存储做一次最小往返探测。
type HealthRepository interface {
	Ping(ctx context.Context) error
}
