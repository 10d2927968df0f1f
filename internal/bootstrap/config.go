package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"team-project-api/internal/infra/setup"
)

// 运行环境
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// 开发环境使用的默认 JWT 密钥，生产环境必须显式配置
const devJWTSecret = "team-project-secret-key-change-this-in-production"

// Config 结构体用于存储从环境变量或文件加载的配置
type Config struct {
	AppEnv             string
	ProjectName        string
	ProjectVersion     string
	ProjectDescription string
	ServerHost         string
	ServerPort         string
	Debug              bool
	LogLevel           string

	DB                  setup.DBOptions
	DBInitRequired      bool          // 为 true 时数据库不可用则启动失败
	DBInitRetryInterval time.Duration // 降级启动后重试迁移的间隔

	RedisAddr     string // 为空时不启用限流、统计缓存和后台任务
	RedisPassword string
	RedisDB       int
	KeyPrefix     string

	RateLimitMax    int
	RateLimitWindow time.Duration

	JWTSecret        string
	JWTExpireMinutes int
	AuthRequired     bool

	CORSAllowedOrigins   []string
	TrustedProxies       []string // 为空时 ClientIP 只取连接地址
	StatsRefreshSchedule string
}

// Addr 返回 HTTP 监听地址
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// IsProduction 报告是否运行在生产环境
func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// LoadConfig 从环境变量加载配置
func LoadConfig() (*Config, error) {
	// 优先加载 .env 文件 (如果存在)
	_ = godotenv.Load() // 忽略错误，允许只使用环境变量

	env := strings.ToLower(getEnv("APP_ENV", EnvDevelopment))
	switch env {
	case EnvDevelopment, EnvProduction, EnvTesting:
	default:
		return nil, fmt.Errorf("invalid APP_ENV %q: must be development, production or testing", env)
	}

	var err error
	cfg := &Config{
		AppEnv:             env,
		ProjectName:        getEnv("PROJECT_NAME", "Team Project API"),
		ProjectVersion:     getEnv("PROJECT_VERSION", "1.0.0"),
		ProjectDescription: getEnv("PROJECT_DESCRIPTION", "Team project backend API"),
		ServerHost:         getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:         getEnv("SERVER_PORT", "8000"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		KeyPrefix:          getEnv("REDIS_KEY_PREFIX", "tpa:"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
	}

	cfg.StatsRefreshSchedule = getEnv("STATS_REFRESH_SCHEDULE", "@every 5m")

	// 生产环境强制关闭 debug
	if cfg.Debug, err = getBool("DEBUG", env != EnvProduction); err != nil {
		return nil, err
	}
	if env == EnvProduction {
		cfg.Debug = false
	}

	// --- 数据库 ---
	cfg.DB = setup.DBOptions{
		Driver:   strings.ToLower(getEnv("DB_DRIVER", setup.DriverMySQL)),
		Host:     getEnv("DB_HOST", "localhost"),
		User:     getEnv("DB_USER", "team_user"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     getEnv("DB_NAME", "team_project_db"),
		Debug:    cfg.Debug,
	}
	switch cfg.DB.Driver {
	case setup.DriverMySQL:
		cfg.DB.Port = getEnv("DB_PORT", "3306")
	case setup.DriverPostgres:
		cfg.DB.Port = getEnv("DB_PORT", "5432")
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q: must be %s or %s", cfg.DB.Driver, setup.DriverMySQL, setup.DriverPostgres)
	}
	if env == EnvTesting && !strings.HasPrefix(cfg.DB.Name, "test_") {
		cfg.DB.Name = "test_" + cfg.DB.Name
	}
	if cfg.DB.MaxOpenConns, err = getInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.DB.MaxIdleConns, err = getInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return nil, err
	}
	if cfg.DB.MaxOpenConns <= 0 || cfg.DB.MaxIdleConns <= 0 {
		return nil, fmt.Errorf("DB_MAX_OPEN_CONNS and DB_MAX_IDLE_CONNS must be positive")
	}
	if cfg.DB.ConnMaxLifetime, err = getDuration("DB_CONN_MAX_LIFETIME", time.Hour); err != nil {
		return nil, err
	}
	if cfg.DBInitRequired, err = getBool("DB_INIT_REQUIRED", false); err != nil {
		return nil, err
	}
	if cfg.DBInitRetryInterval, err = getDuration("DB_INIT_RETRY_INTERVAL", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.DBInitRetryInterval <= 0 {
		return nil, fmt.Errorf("DB_INIT_RETRY_INTERVAL must be positive")
	}

	// --- Redis 与限流 ---
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimitMax, err = getInt("RATE_LIMIT_MAX", 100); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = getDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.RateLimitMax <= 0 || cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX and RATE_LIMIT_WINDOW must be positive")
	}

	// --- JWT ---
	if cfg.JWTSecret == "" {
		if env == EnvProduction {
			return nil, fmt.Errorf("environment variable JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.JWTExpireMinutes, err = getInt("JWT_EXPIRE_MINUTES", 30); err != nil {
		return nil, err
	}
	if cfg.JWTExpireMinutes <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRE_MINUTES must be positive")
	}
	if cfg.AuthRequired, err = getBool("AUTH_REQUIRED", false); err != nil {
		return nil, err
	}

	// --- CORS ---
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if len(cfg.CORSAllowedOrigins) == 0 {
		if cfg.Debug {
			cfg.CORSAllowedOrigins = []string{"*"}
		} else {
			cfg.CORSAllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
		}
	}

	// 只有列出的代理才能通过 X-Forwarded-For 改写客户端 IP
	cfg.TrustedProxies = splitList(os.Getenv("TRUSTED_PROXIES"))

	// 验证日志级别
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info" // 修正配置值
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getBool(key string, def bool) (bool, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

// getDuration 接受 Go duration 字符串 ("30s") 或整数秒
func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NewLogger 按配置构建 logrus Logger
func NewLogger(cfg *Config) *logrus.Logger {
	log := logrus.New()
	if cfg.IsProduction() {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, ForceColors: true})
	}
	logLevel, _ := logrus.ParseLevel(cfg.LogLevel) // cfg.LogLevel 已被 LoadConfig 验证
	log.SetLevel(logLevel)
	log.SetOutput(os.Stdout)
	return log
}
