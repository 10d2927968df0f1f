package gormpersistence

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"team-project-api/internal/infra/setup"
)

// newTestDB 为每个测试创建独立的 SQLite 数据库并完成迁移
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "打开测试数据库不应失败")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // SQLite 单写者
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, setup.MigrateDB(db), "迁移不应失败")
	return db
}
