package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireReady 在 ready 返回 false 时以 503 拒绝请求。
// 用于降级启动：数据库恢复后、迁移完成前，表还不存在。
func RequireReady(ready func() bool) gin.HandlerFunc {
	if ready == nil {
		panic("ready func cannot be nil for RequireReady middleware")
	}
	return func(c *gin.Context) {
		if !ready() {
			c.Header("Retry-After", "5")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
			return
		}
		c.Next()
	}
}
