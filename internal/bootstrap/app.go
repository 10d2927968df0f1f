package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	httpHandler "team-project-api/internal/handler/http"
	gormpersistence "team-project-api/internal/infra/persistence/gorm"
	"team-project-api/internal/infra/setup"
	redisstate "team-project-api/internal/infra/state/redis"
	"team-project-api/internal/middleware"
	"team-project-api/internal/repository"
	"team-project-api/internal/service"
	"team-project-api/internal/tasks"
	"team-project-api/internal/worker"
)

// App 结构体包含应用的所有组件和配置
type App struct {
	Config      *Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client // Redis 未配置或不可达时为 nil
	AsynqClient *asynq.Client
	AsynqServer *worker.WorkerServer
	Scheduler   *asynq.Scheduler
	HttpServer  *http.Server

	dbReady      atomic.Bool // 迁移完成后置为 true，之前 /api/v1 返回 503
	stopRetry    context.CancelFunc
	retryDone    sync.WaitGroup
	shutdownOnce sync.Once
}

// NewApp 加载配置并创建应用
func NewApp() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewAppWithConfig(cfg)
}

// NewAppWithConfig 按给定配置初始化应用的所有组件
func NewAppWithConfig(cfg *Config) (*App, error) {
	startedAt := time.Now()

	// 1. 初始化 Logger
	log := NewLogger(cfg)
	log.WithFields(logrus.Fields{
		"env":   cfg.AppEnv,
		"debug": cfg.Debug,
		"level": cfg.LogLevel,
	}).Info("Configuration loaded successfully")

	// 2. 初始化数据库
	db, err := setup.InitDB(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	log.WithFields(logrus.Fields{
		"driver":   cfg.DB.Driver,
		"database": fmt.Sprintf("%s:%s/%s", cfg.DB.Host, cfg.DB.Port, cfg.DB.Name),
	}).Info("Database pool initialized")

	app := &App{Config: cfg, Log: log, DB: db}

	if err := app.initSchema(context.Background()); err != nil {
		if cfg.DBInitRequired {
			_ = setup.CloseDB(db)
			return nil, fmt.Errorf("database initialization failed: %w", err)
		}
		log.WithError(err).Error("Database initialization failed, starting in degraded mode")
	} else {
		app.dbReady.Store(true)
	}

	// 3. Redis 是可选的：不可用时关闭限流、统计缓存和后台任务
	var (
		statsCache  repository.StatsCache
		rateLimiter repository.RateLimiter
	)
	if cfg.RedisAddr != "" {
		redisClient, err := setup.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, rate limiting and stats cache disabled")
		} else {
			app.RedisClient = redisClient
			cache := redisstate.NewRedisStatsCache(redisClient, cfg.KeyPrefix)
			statsCache, rateLimiter = cache, cache
			log.Info("Redis client initialized")
		}
	}

	// 4. 初始化 Repositories 和 Services
	tx := gormpersistence.NewGormTransactor(db)
	userRepo := gormpersistence.NewGormUserRepository(db)
	postRepo := gormpersistence.NewGormPostRepository(db)
	commentRepo := gormpersistence.NewGormCommentRepository(db)
	healthRepo := gormpersistence.NewGormHealthRepository(db)

	userService := service.NewUserService(tx, userRepo)
	postService := service.NewPostService(tx, postRepo, userRepo)
	commentService := service.NewCommentService(tx, commentRepo, postRepo)
	authService, err := service.NewAuthService(tx, userRepo, cfg.JWTSecret, cfg.JWTExpireMinutes)
	if err != nil {
		_ = setup.CloseDB(db)
		return nil, fmt.Errorf("failed to create AuthService: %w", err)
	}
	healthService := service.NewHealthService(healthRepo, 3*time.Second).WithReadiness(app.dbReady.Load)
	systemService := service.NewSystemService(startedAt, statsCache, tx, userRepo, postRepo, commentRepo)
	log.Info("Services initialized")

	// 5. 后台任务 (依赖 Redis)
	if app.RedisClient != nil {
		redisOpt := asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}
		app.AsynqClient = asynq.NewClient(redisOpt)
		app.AsynqServer = worker.NewWorkerServer(redisOpt, systemService, log)
		app.Scheduler = asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
			Logger:   log.WithField("component", "scheduler"),
			Location: time.UTC,
		})
		log.Info("Asynq client, scheduler and worker initialized")
	}

	// 6. Gin 路由
	// 生产环境的 Debug 已在 LoadConfig 中强制关闭
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	info := httpHandler.AppInfo{
		Name:        cfg.ProjectName,
		Description: cfg.ProjectDescription,
		Version:     cfg.ProjectVersion,
		Environment: cfg.AppEnv,
		Debug:       cfg.Debug,
		DBHost:      cfg.DB.Host,
		DBPort:      cfg.DB.Port,
		DBName:      cfg.DB.Name,
	}
	router := httpHandler.NewRouter(httpHandler.Handlers{
		Auth:    httpHandler.NewAuthHandler(authService),
		User:    httpHandler.NewUserHandler(userService, postService),
		Post:    httpHandler.NewPostHandler(postService, commentService),
		Comment: httpHandler.NewCommentHandler(commentService),
		Health:  httpHandler.NewHealthHandler(info, healthService),
		System:  httpHandler.NewSystemHandler(info, systemService),
	}, httpHandler.RouterOptions{
		Log:             log,
		AuthRequired:    cfg.AuthRequired,
		JWTSecret:       cfg.JWTSecret,
		RateLimiter:     rateLimiter,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
		Ready:           app.dbReady.Load,
		TrustedProxies:  cfg.TrustedProxies,
	})
	log.Info("Router setup complete")

	// 7. HTTP Server，CORS 包在 gin 外层以便预检请求不进入路由
	app.HttpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           middleware.CORS(cfg.CORSAllowedOrigins)(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info("Application assembled successfully")
	return app, nil
}

// initSchema 检查连接并执行自动迁移
func (a *App) initSchema(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := setup.PingDB(pingCtx, a.DB); err != nil {
		return err
	}
	return setup.MigrateDB(a.DB)
}

// retrySchema 降级启动后定期重试迁移，成功或 ctx 取消后退出
func (a *App) retrySchema(ctx context.Context) {
	defer a.retryDone.Done()
	ticker := time.NewTicker(a.Config.DBInitRetryInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := a.initSchema(ctx); err != nil {
				a.Log.WithError(err).Warn("Database still unavailable, will retry")
				continue
			}
			a.dbReady.Store(true)
			a.Log.Info("Database initialized after retry")
			return
		}
	}
}

// Start 启动应用的所有后台 Goroutine 和 HTTP 服务器
func (a *App) Start() {
	if !a.dbReady.Load() {
		ctx, cancel := context.WithCancel(context.Background())
		a.stopRetry = cancel
		a.retryDone.Add(1)
		go a.retrySchema(ctx)
		a.Log.Infof("Database retry loop started (interval %s)", a.Config.DBInitRetryInterval)
	}

	if a.AsynqServer != nil {
		if err := a.AsynqServer.Start(); err != nil {
			a.Log.WithError(err).Error("Asynq worker server failed to start")
		}
	}
	a.registerPeriodicTasks()

	// 启动 HTTP 服务器
	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

// registerPeriodicTasks 注册实体计数刷新任务并立即入队一次
func (a *App) registerPeriodicTasks() {
	if a.Scheduler == nil {
		return
	}
	task, err := tasks.NewStatsRefreshTask()
	if err != nil {
		a.Log.Errorf("Failed to create stats refresh task: %v", err)
		return
	}

	schedule := a.Config.StatsRefreshSchedule
	entryID, err := a.Scheduler.Register(schedule, task)
	if err != nil {
		a.Log.Errorf("Could not register periodic stats refresh task: %v", err)
		return
	}
	a.Log.Infof("Periodic stats refresh task registered with schedule '%s' (EntryID: %s)", schedule, entryID)

	if err := a.Scheduler.Start(); err != nil {
		a.Log.Errorf("Asynq scheduler failed to start: %v", err)
		return
	}
	a.Log.Info("Asynq scheduler started")

	// 启动时先刷新一次，避免第一个周期内没有统计数据
	initial, err := tasks.NewStatsRefreshTaskAt(time.Now())
	if err != nil {
		a.Log.Errorf("Failed to create initial stats refresh task: %v", err)
		return
	}
	if info, err := a.AsynqClient.Enqueue(initial); err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			a.Log.Debug("Stats refresh already queued")
		} else {
			a.Log.Warnf("Could not enqueue initial stats refresh: %v", err)
		}
	} else {
		a.Log.Debugf("Initial stats refresh enqueued (TaskID: %s)", info.ID)
	}
}

// Shutdown 优雅地关闭应用，可重复调用
func (a *App) Shutdown() {
	a.shutdownOnce.Do(a.shutdown)
}

func (a *App) shutdown() {
	a.Log.Info("Shutting down application...")

	// 1. 优雅关闭 HTTP 服务器
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HttpServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	// 2. 停止数据库重试
	if a.stopRetry != nil {
		a.stopRetry()
		a.retryDone.Wait()
	}

	// 3. 停止 Scheduler 和 Worker
	if a.Scheduler != nil {
		a.Scheduler.Shutdown()
	}
	if a.AsynqServer != nil {
		a.AsynqServer.Shutdown()
	}

	// 4. 关闭 Asynq Client 和 Redis
	if a.AsynqClient != nil {
		if err := a.AsynqClient.Close(); err != nil {
			a.Log.Errorf("Error closing Asynq client: %v", err)
		}
	}
	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		} else {
			a.Log.Info("Redis connection closed.")
		}
	}

	// 5. 关闭数据库连接池
	if err := setup.CloseDB(a.DB); err != nil {
		a.Log.Errorf("Error closing database connection: %v", err)
	} else {
		a.Log.Info("Database connection closed.")
	}

	a.Log.Info("Application shutdown complete.")
}
