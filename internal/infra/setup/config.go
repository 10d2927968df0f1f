package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 支持的数据库驱动
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// DBOptions 描述数据库连接和连接池参数
type DBOptions struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Debug           bool // 为 true 时记录全部 SQL
}

// DSN 根据驱动构建连接字符串
func (o DBOptions) DSN() (string, error) {
	switch o.Driver {
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			o.User, o.Password, o.Host, o.Port, o.Name), nil
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			o.Host, o.Port, o.User, o.Password, o.Name), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", o.Driver)
	}
}

// InitDB 打开数据库连接池，但不要求数据库此刻可达。
// 可达性由 PingDB 单独检查，便于在数据库暂时不可用时降级启动。
func InitDB(opts DBOptions, log *logrus.Logger) (*gorm.DB, error) {
	dsn, err := opts.DSN()
	if err != nil {
		return nil, err
	}

	var dialector gorm.Dialector
	switch opts.Driver {
	case DriverMySQL:
		// 跳过 SELECT VERSION()，否则数据库不可达时 Open 直接失败
		dialector = mysql.New(mysql.Config{DSN: dsn, SkipInitializeWithVersion: true})
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError:       true,
		DisableAutomaticPing: true,
		Logger:               newGormLogger(log, opts.Debug),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", opts.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	return db, nil
}

// PingDB 检查数据库是否可达
func PingDB(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// CloseDB 关闭底层连接池
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// newGormLogger 让 GORM 的日志走应用的 logrus 实例
func newGormLogger(log *logrus.Logger, debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return logger.New(log, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// InitRedis 初始化 Redis 连接并检查可达性
func InitRedis(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     20,
		MinIdleConns: 5,
		MaxConnAge:   30 * time.Minute,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return client, nil
}
