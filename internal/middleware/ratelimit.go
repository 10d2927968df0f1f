package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"team-project-api/internal/repository"
)

// RateLimit 返回一个按客户端 IP 限流的 Gin 中间件。
// 计数存储在 limiter 中 (Redis)；limiter 出错时放行请求，限流不应让 API 整体不可用。
func RateLimit(limiter repository.RateLimiter, maxRequests int, window time.Duration) gin.HandlerFunc {
	if limiter == nil {
		panic("RateLimiter cannot be nil for RateLimit middleware")
	}
	if maxRequests <= 0 {
		panic("maxRequests must be positive for RateLimit middleware")
	}
	if window <= 0 {
		panic("window duration must be positive for RateLimit middleware")
	}

	return func(c *gin.Context) {
		// 服务在反向代理后面时需要配置 gin 的 TrustedProxies 才能拿到真实 IP
		key := c.ClientIP()

		exceeded, err := limiter.CheckRateLimit(c.Request.Context(), key, maxRequests, window)
		if err != nil {
			logrus.WithError(err).WithField("client_ip", key).Error("RateLimit: limiter unavailable, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))
		if exceeded {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
