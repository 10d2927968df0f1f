package gormpersistence

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"team-project-api/internal/repository"
)

type txContextKey struct{}

// GormTransactor 是 repository.Transactor 的 GORM 实现。
// 每次调用开启一个事务并把它放进 context，仓库通过 conn 取用。
type GormTransactor struct {
	db *gorm.DB
}

// NewGormTransactor 创建 GormTransactor 实例
func NewGormTransactor(db *gorm.DB) *GormTransactor {
	if db == nil {
		panic("database connection cannot be nil for GormTransactor")
	}
	return &GormTransactor{db: db}
}

// WithinTransaction 在一个事务会话中执行 fn。
// 已处于会话中时直接复用，不再开启新事务。
func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx := t.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("%w: begin transaction: %v", repository.ErrStoreUnavailable, tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err = fn(context.WithValue(ctx, txContextKey{}, tx)); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			logrus.WithError(rbErr).Warn("gorm: rollback failed")
		}
		return err
	}

	if err = tx.Commit().Error; err != nil {
		return translateError(fmt.Errorf("gorm: commit transaction: %w", err))
	}
	return nil
}

func txFromContext(ctx context.Context) *gorm.DB {
	tx, _ := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx
}

// conn 返回当前请求的会话：context 中有事务则用事务，否则用连接池。
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := txFromContext(ctx); tx != nil {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
