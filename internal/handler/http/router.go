package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"team-project-api/internal/middleware"
	"team-project-api/internal/repository"
)

// Handlers 聚合所有 HTTP handler
type Handlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Post    *PostHandler
	Comment *CommentHandler
	Health  *HealthHandler
	System  *SystemHandler
}

// RouterOptions 控制路由上挂载的中间件
type RouterOptions struct {
	Log *logrus.Logger

	// AuthRequired 为 true 时写操作需要 Bearer JWT（创建用户和登录除外）
	AuthRequired bool
	JWTSecret    string

	// RateLimiter 为 nil 时不限流
	RateLimiter     repository.RateLimiter
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Ready 为 nil 时视为表结构已就绪；返回 false 时 /api/v1 一律 503
	Ready func() bool

	// TrustedProxies 为空时不信任任何代理，ClientIP 只取连接地址
	TrustedProxies []string
}

// NewRouter 创建 Gin Engine 并注册全部路由
func NewRouter(h Handlers, opts RouterOptions) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		logrus.WithError(err).Warn("Invalid trusted proxies, trusting none")
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	if opts.Log != nil {
		router.Use(middleware.Logger(opts.Log))
	}

	// --- 健康检查和系统信息，不限流 ---
	router.GET("/", h.System.Root)
	health := router.Group("/health")
	{
		health.GET("", h.Health.Health)
		health.GET("/db", h.Health.Database)
		health.GET("/detailed", h.Health.Detailed)
	}
	system := router.Group("/system")
	{
		system.GET("/info", h.System.Info)
		system.GET("/version", h.System.Version)
		system.GET("/status", h.System.Status)
	}

	// --- 业务 API ---
	api := router.Group("/api/v1")
	if opts.Ready != nil {
		api.Use(middleware.RequireReady(opts.Ready))
	}
	if opts.RateLimiter != nil {
		api.Use(middleware.RateLimit(opts.RateLimiter, opts.RateLimitMax, opts.RateLimitWindow))
	}

	// 写操作按配置决定是否需要认证
	protect := func(c *gin.Context) { c.Next() }
	if opts.AuthRequired {
		protect = middleware.Auth(opts.JWTSecret)
	}

	api.POST("/auth/login", h.Auth.Login)

	users := api.Group("/users")
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", protect, h.User.Update)
		users.DELETE("/:id", protect, h.User.Delete)
		users.GET("/:id/posts", h.User.ListPosts)
		users.POST("/:id/posts", protect, h.User.CreatePost)
	}

	posts := api.Group("/posts")
	{
		posts.GET("", h.Post.List)
		posts.GET("/:id", h.Post.Get)
		posts.PUT("/:id", protect, h.Post.Update)
		posts.DELETE("/:id", protect, h.Post.Delete)
		posts.GET("/:id/comments", h.Post.ListComments)
		posts.POST("/:id/comments", protect, h.Post.CreateComment)
	}

	comments := api.Group("/comments")
	{
		comments.GET("/:id", h.Comment.Get)
		comments.PUT("/:id", protect, h.Comment.Update)
		comments.DELETE("/:id", protect, h.Comment.Delete)
	}

	return router
}
