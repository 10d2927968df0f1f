package http

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"team-project-api/internal/service"
)

// AppInfo 是健康检查和系统信息接口展示的静态信息
type AppInfo struct {
	Name        string
	Description string
	Version     string
	Environment string
	Debug       bool
	DBHost      string
	DBPort      string
	DBName      string
}

type HealthHandler struct {
	info          AppInfo
	healthService *service.HealthService
}

func NewHealthHandler(info AppInfo, healthService *service.HealthService) *HealthHandler {
	return &HealthHandler{info: info, healthService: healthService}
}

func timestamp() string {
	return time.Now().Format(time.RFC3339Nano)
}

func latencyMillis(d time.Duration) float64 {
	return math.Round(float64(d.Microseconds())/10) / 100
}

// Health 处理 GET /health，不访问数据库
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "running",
		"version":   h.info.Version,
		"timestamp": timestamp(),
	})
}

// Database 处理 GET /health/db。数据库不可用时仍返回 200，状态写在响应体里。
func (h *HealthHandler) Database(c *gin.Context) {
	result := h.healthService.CheckDatabase(c.Request.Context())
	if !result.Connected {
		c.JSON(http.StatusOK, gin.H{
			"status":    "unhealthy",
			"service":   "running",
			"database":  "disconnected",
			"error":     result.Status(),
			"timestamp": timestamp(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"service":    "running",
		"database":   "connected",
		"latency_ms": latencyMillis(result.Latency),
		"version":    h.info.Version,
		"timestamp":  timestamp(),
	})
}

// Detailed 处理 GET /health/detailed，数据库不可用时返回 503，可用作就绪探针
func (h *HealthHandler) Detailed(c *gin.Context) {
	result := h.healthService.CheckDatabase(c.Request.Context())
	if !result.Connected {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "unhealthy",
			"error":     result.Status(),
			"timestamp": timestamp(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"service": gin.H{
			"name":        h.info.Name,
			"version":     h.info.Version,
			"environment": h.info.Environment,
		},
		"database": gin.H{
			"status":     "connected",
			"latency_ms": latencyMillis(result.Latency),
			"host":       h.info.DBHost,
			"port":       h.info.DBPort,
			"database":   h.info.DBName,
		},
		"timestamp": timestamp(),
	})
}
