package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// GormHealthRepository 通过 SELECT 1 探测数据库
type GormHealthRepository struct {
	db *gorm.DB
}

func NewGormHealthRepository(db *gorm.DB) *GormHealthRepository {
	if db == nil {
		panic("database connection cannot be nil for GormHealthRepository")
	}
	return &GormHealthRepository{db: db}
}

func (r *GormHealthRepository) Ping(ctx context.Context) error {
	var result int
	if err := r.db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error; err != nil {
		return translateError(fmt.Errorf("gorm: ping: %w", err))
	}
	if result != 1 {
		return fmt.Errorf("gorm: ping: unexpected result %d", result)
	}
	return nil
}
