package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"team-project-api/internal/domain"
)

// MigrateDB 确保 users、posts、comments 表及其约束存在。
// 只创建缺失的表、列、索引和外键，不会删除已有数据，可重复执行。
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}

	// 按外键依赖顺序迁移
	tables := []struct {
		name  string
		model interface{}
	}{
		{"users", &domain.User{}},
		{"posts", &domain.Post{}},
		{"comments", &domain.Comment{}},
	}

	for _, t := range tables {
		existed := db.Migrator().HasTable(t.model)
		if err := db.AutoMigrate(t.model); err != nil {
			logrus.Errorf("Failed to migrate %s table: %v", t.name, err)
			return fmt.Errorf("failed to migrate %s table: %w", t.name, err)
		}
		if existed {
			logrus.Infof("%s table schema checked/updated successfully", t.name)
		} else {
			logrus.Infof("%s table created successfully", t.name)
		}
	}

	logrus.Info("Database migration completed successfully")
	return nil
}
