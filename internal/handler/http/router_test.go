package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	httpHandler "team-project-api/internal/handler/http"
	gormpersistence "team-project-api/internal/infra/persistence/gorm"
	"team-project-api/internal/infra/setup"
	"team-project-api/internal/repository"
	"team-project-api/internal/repository/mocks"
	"team-project-api/internal/service"
)

const testJWTSecret = "handler-test-secret"

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func init() {
	gin.SetMode(gin.TestMode)
}

// serverOptions 控制测试服务器的组装方式
type serverOptions struct {
	authRequired   bool
	skipMigrate    bool        // 模拟降级启动后数据库恢复、迁移未完成
	ready          func() bool // 传给 RouterOptions.Ready 和 HealthService
	rateLimiter    repository.RateLimiter
	trustedProxies []string
}

// newTestServer 用 SQLite 组装完整的请求处理链
func newTestServer(t *testing.T, authRequired bool) *testServer {
	t.Helper()
	return newTestServerWith(t, serverOptions{authRequired: authRequired})
}

func newTestServerWith(t *testing.T, opts serverOptions) *testServer {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "api.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true, Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if !opts.skipMigrate {
		require.NoError(t, setup.MigrateDB(db))
	}

	tx := gormpersistence.NewGormTransactor(db)
	userRepo := gormpersistence.NewGormUserRepository(db)
	postRepo := gormpersistence.NewGormPostRepository(db)
	commentRepo := gormpersistence.NewGormCommentRepository(db)

	authService, err := service.NewAuthService(tx, userRepo, testJWTSecret, 60)
	require.NoError(t, err)
	userService := service.NewUserService(tx, userRepo)
	postService := service.NewPostService(tx, postRepo, userRepo)
	commentService := service.NewCommentService(tx, commentRepo, postRepo)
	healthService := service.NewHealthService(gormpersistence.NewGormHealthRepository(db), time.Second).WithReadiness(opts.ready)
	systemService := service.NewSystemService(time.Now(), nil, tx, userRepo, postRepo, commentRepo)

	info := httpHandler.AppInfo{Name: "Team Project API", Version: "1.0.0", Environment: "testing", DBHost: "localhost", DBPort: "3306", DBName: "test_db"}
	router := httpHandler.NewRouter(httpHandler.Handlers{
		Auth:    httpHandler.NewAuthHandler(authService),
		User:    httpHandler.NewUserHandler(userService, postService),
		Post:    httpHandler.NewPostHandler(postService, commentService),
		Comment: httpHandler.NewCommentHandler(commentService),
		Health:  httpHandler.NewHealthHandler(info, healthService),
		System:  httpHandler.NewSystemHandler(info, systemService),
	}, httpHandler.RouterOptions{
		AuthRequired:    opts.authRequired,
		JWTSecret:       testJWTSecret,
		RateLimiter:     opts.rateLimiter,
		RateLimitMax:    100,
		RateLimitWindow: time.Minute,
		Ready:           opts.ready,
		TrustedProxies:  opts.trustedProxies,
	})

	return &testServer{router: router, db: db}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}

func (s *testServer) closeDB(t *testing.T) {
	sqlDB, err := s.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func createAlice(t *testing.T, s *testServer) map[string]interface{} {
	w, body := s.do(t, http.MethodPost, "/api/v1/users", gin.H{"username": "alice", "email": "alice@example.com", "password": "secret123"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return body
}

func TestScenario_AliceCascade(t *testing.T) {
	s := newTestServer(t, false)

	user := createAlice(t, s)
	assert.Equal(t, float64(1), user["id"])
	assert.NotContains(t, user, "password_hash", "响应不应包含密码哈希")
	assert.NotContains(t, user, "password")
	assert.NotEmpty(t, user["created_at"])

	w, post := s.do(t, http.MethodPost, "/api/v1/users/1/posts", gin.H{"title": "Hello", "content": "World"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, float64(1), post["id"])
	assert.Equal(t, float64(1), post["user_id"])

	w, comment := s.do(t, http.MethodPost, "/api/v1/posts/1/comments", gin.H{"content": "Nice", "user_id": 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, float64(1), comment["id"])
	assert.Equal(t, float64(1), comment["post_id"])

	w, _ = s.do(t, http.MethodDelete, "/api/v1/users/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/users/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = s.do(t, http.MethodGet, "/api/v1/posts/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = s.do(t, http.MethodGet, "/api/v1/comments/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUsers_ValidationAndConflicts(t *testing.T) {
	s := newTestServer(t, false)
	createAlice(t, s)

	w, _ := s.do(t, http.MethodPost, "/api/v1/users", gin.H{"username": "alice", "email": "other@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, w.Code, "重复用户名")

	w, _ = s.do(t, http.MethodPost, "/api/v1/users", gin.H{"username": "bob", "email": "alice@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, w.Code, "重复邮箱")

	w, _ = s.do(t, http.MethodPost, "/api/v1/users", gin.H{"username": "bob", "email": "not-an-email", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/users", gin.H{"username": "bob"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	for _, path := range []string{"/api/v1/users/abc", "/api/v1/users/0", "/api/v1/users/-1"} {
		w, _ = s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}

	w, _ = s.do(t, http.MethodGet, "/api/v1/users/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUsers_UpdateRefreshesTimestamp(t *testing.T) {
	s := newTestServer(t, false)
	created := createAlice(t, s)
	time.Sleep(5 * time.Millisecond)

	w, updated := s.do(t, http.MethodPut, "/api/v1/users/1", gin.H{"email": "alice@new.example.com"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, "alice@new.example.com", updated["email"])
	assert.Equal(t, "alice", updated["username"])
	before, err := time.Parse(time.RFC3339Nano, created["updated_at"].(string))
	require.NoError(t, err)
	after, err := time.Parse(time.RFC3339Nano, updated["updated_at"].(string))
	require.NoError(t, err)
	assert.True(t, after.After(before), "updated_at 应被刷新")

	w, _ = s.do(t, http.MethodPut, "/api/v1/users/1", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code, "空更新是校验错误")

	w, _ = s.do(t, http.MethodPut, "/api/v1/users/42", gin.H{"email": "x@example.com"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPosts_PaginationEnvelope(t *testing.T) {
	s := newTestServer(t, false)
	createAlice(t, s)
	for i := 0; i < 3; i++ {
		w, _ := s.do(t, http.MethodPost, "/api/v1/users/1/posts", gin.H{"title": "t", "content": "c"})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, body := s.do(t, http.MethodGet, "/api/v1/posts?page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["page"])
	assert.Equal(t, float64(2), body["limit"])
	assert.Equal(t, float64(3), body["total"])
	assert.Len(t, body["data"], 1)

	w, body = s.do(t, http.MethodGet, "/api/v1/posts?page=abc&limit=1000", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["page"], "非法页码回退为 1")
	assert.Equal(t, float64(100), body["limit"], "limit 上限为 100")

	w, _ = s.do(t, http.MethodGet, "/api/v1/users/9/posts", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = s.do(t, http.MethodPost, "/api/v1/users/9/posts", gin.H{"title": "t", "content": "c"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestComments_Lifecycle(t *testing.T) {
	s := newTestServer(t, false)
	createAlice(t, s)
	s.do(t, http.MethodPost, "/api/v1/users/1/posts", gin.H{"title": "t", "content": "c"})

	w, _ := s.do(t, http.MethodPost, "/api/v1/posts/1/comments", gin.H{"content": "x", "user_id": 99})
	assert.Equal(t, http.StatusNotFound, w.Code, "作者不存在")
	w, _ = s.do(t, http.MethodPost, "/api/v1/posts/9/comments", gin.H{"content": "x", "user_id": 1})
	assert.Equal(t, http.StatusNotFound, w.Code, "帖子不存在")
	w, _ = s.do(t, http.MethodPost, "/api/v1/posts/1/comments", gin.H{"content": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "缺少 user_id")

	w, _ = s.do(t, http.MethodPost, "/api/v1/posts/1/comments", gin.H{"content": "first", "user_id": 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w, updated := s.do(t, http.MethodPut, "/api/v1/comments/1", gin.H{"content": "edited"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "edited", updated["content"])

	w, list := s.do(t, http.MethodGet, "/api/v1/posts/1/comments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), list["total"])

	w, _ = s.do(t, http.MethodDelete, "/api/v1/posts/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = s.do(t, http.MethodGet, "/api/v1/comments/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "删除帖子应级联删除评论")
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t, true)
	createAlice(t, s) // 创建用户不需要认证

	w, _ := s.do(t, http.MethodPost, "/api/v1/users/1/posts", gin.H{"title": "t", "content": "c"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"username": "alice", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, login := s.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"username": "alice", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := login["token"].(string)

	w, _ = s.do(t, http.MethodPost, "/api/v1/users/1/posts", gin.H{"title": "t", "content": "c"}, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/posts", nil)
	assert.Equal(t, http.StatusOK, w.Code, "读操作不需要认证")
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, false)

	w, body := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "running", body["service"])

	w, body = s.do(t, http.MethodGet, "/health/db", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "connected", body["database"])

	w, body = s.do(t, http.MethodGet, "/health/detailed", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestHealth_DatabaseUnreachable(t *testing.T) {
	s := newTestServer(t, false)
	s.closeDB(t)

	w, body := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code, "/health 不依赖数据库")
	assert.Equal(t, "healthy", body["status"])

	w, body = s.do(t, http.MethodGet, "/health/db", nil)
	assert.Equal(t, http.StatusOK, w.Code, "/health/db 在响应体中报告故障")
	assert.Equal(t, "unhealthy", body["status"])
	assert.Equal(t, "disconnected", body["database"])
	assert.Equal(t, "database unreachable", body["error"], "不向客户端暴露驱动错误")

	w, body = s.do(t, http.MethodGet, "/health/detailed", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "database unreachable", body["error"])

	w, _ = s.do(t, http.MethodGet, "/api/v1/users", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code, "存储不可用映射为 503")
}

func TestSystemEndpoints(t *testing.T) {
	s := newTestServer(t, false)

	w, body := s.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1.0.0", body["version"])

	w, body = s.do(t, http.MethodGet, "/system/version", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Team Project API", body["name"])

	w, body = s.do(t, http.MethodGet, "/system/info", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "testing", body["environment"])

	w, body = s.do(t, http.MethodGet, "/system/status", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "running", body["status"])
	assert.Equal(t, "unknown", body["entities"], "未启用缓存时计数未知")
}

func TestDegradedStart_SchemaNotReady(t *testing.T) {
	var ready atomic.Bool
	s := newTestServerWith(t, serverOptions{skipMigrate: true, ready: ready.Load})

	w, body := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])

	w, body = s.do(t, http.MethodGet, "/health/db", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "unhealthy", body["status"], "数据库可达但表未建好")
	assert.Equal(t, "database schema not initialized", body["error"])

	w, _ = s.do(t, http.MethodGet, "/health/detailed", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	for _, path := range []string{"/api/v1/users", "/api/v1/users/1", "/api/v1/posts", "/api/v1/comments/1"} {
		w, _ = s.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
	w, _ = s.do(t, http.MethodPost, "/api/v1/users", gin.H{"username": "alice", "email": "alice@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// 重试循环完成迁移后恢复服务
	require.NoError(t, setup.MigrateDB(s.db))
	ready.Store(true)

	w, body = s.do(t, http.MethodGet, "/health/db", nil)
	assert.Equal(t, "healthy", body["status"])
	w, _ = s.do(t, http.MethodGet, "/api/v1/users/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	createAlice(t, s)
}

func TestRateLimit_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	limiter := mocks.NewRateLimiter(t)
	limiter.On("CheckRateLimit", mock.Anything, "192.0.2.1", 100, time.Minute).Return(false, nil).Twice()
	s := newTestServerWith(t, serverOptions{rateLimiter: limiter})

	for _, spoofed := range []string{"203.0.113.7", "198.51.100.9"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		req.RemoteAddr = "192.0.2.1:4321"
		req.Header.Set("X-Forwarded-For", spoofed)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimit_UsesForwardedForFromTrustedProxy(t *testing.T) {
	limiter := mocks.NewRateLimiter(t)
	limiter.On("CheckRateLimit", mock.Anything, "203.0.113.7", 100, time.Minute).Return(false, nil).Once()
	s := newTestServerWith(t, serverOptions{rateLimiter: limiter, trustedProxies: []string{"192.0.2.1"}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
	req.RemoteAddr = "192.0.2.1:4321"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
